// SPDX-License-Identifier: Apache-2.0

package mapping

import (
	"context"
	"log/slog"
	"strings"

	"github.com/qautil/tcmapper/internal/logging"
	"github.com/qautil/tcmapper/internal/store"
)

// lookupCollections are queried by Lookup in this order.
var lookupCollections = []string{store.CollectionComplete, store.CollectionObserver}

// Client wraps a store.Store. Store failures are logged and reported as
// not found; a Client without a store finds nothing.
type Client struct {
	store  store.Store
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientLogger sets the logger used for lookup failures.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient returns a Client over s. s may be nil.
func NewClient(s store.Store, opts ...ClientOption) *Client {
	c := &Client{store: s, logger: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether the client has a store to query.
func (c *Client) Enabled() bool {
	return c != nil && c.store != nil
}

// Lookup normalizes key and returns the first record containing it, trying
// the complete collection before the observer collection.
func (c *Client) Lookup(ctx context.Context, key string) Result {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if !c.Enabled() || normalized == "" {
		return Result{}
	}

	for _, collection := range lookupCollections {
		rec, err := c.store.FindByKeyword(ctx, collection, normalized)
		if err != nil {
			c.logFailure(ctx, "lookup", collection, normalized, err)
			continue
		}
		if rec != nil {
			return fromRecord(rec, collection, normalized, TypeUnknown)
		}
	}
	return Result{}
}

// Search runs a broad match of term against one collection.
func (c *Client) Search(ctx context.Context, collection, term string) Result {
	if !c.Enabled() || strings.TrimSpace(term) == "" {
		return Result{}
	}
	rec, err := c.store.Search(ctx, collection, term)
	if err != nil {
		c.logFailure(ctx, "search", collection, term, err)
		return Result{}
	}
	if rec == nil {
		return Result{}
	}
	return fromRecord(rec, collection, term, TypeVerification)
}

func (c *Client) logFailure(ctx context.Context, op, collection, key string, err error) {
	if ctx.Err() != nil {
		c.logger.DebugContext(ctx, "lookup abandoned", "op", op, "collection", collection, "key", key, "error", err)
		return
	}
	c.logger.WarnContext(ctx, "mapping store query failed", "op", op, "collection", collection, "key", key, "error", err)
}

func fromRecord(rec *store.Record, collection, key, defaultType string) Result {
	return Result{
		Found:      true,
		Action:     rec.Action,
		Type:       rec.Type,
		GroovyCode: rec.GroovyCode,
		Key:        key,
		Collection: collection,
	}.withDefaultType(defaultType)
}
