// SPDX-License-Identifier: Apache-2.0

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseStore queries mapping collections through the Supabase
// PostgREST endpoint (/rest/v1/<collection>).
type SupabaseStore struct {
	restURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the SupabaseStore during construction.
type Option func(*supabaseConfig) error

type supabaseConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *supabaseConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *supabaseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout bounds every request. The client passed to WithHTTPClient
// is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(cfg *supabaseConfig) error {
		if d < 0 {
			return fmt.Errorf("supabase: negative timeout %s", d)
		}
		cfg.timeout = d
		return nil
	}
}

// APIError is an error response (status >= 400) from PostgREST.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Operation, e.StatusCode, e.Message)
}

// NewSupabaseStore creates a store for the project at baseURL. apiKey is
// sent both as the apikey header and as a bearer token.
func NewSupabaseStore(baseURL, apiKey string, opts ...Option) (*SupabaseStore, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("supabase: baseURL is required")
	}

	cfg := &supabaseConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	httpClient := &http.Client{}
	if cfg.httpClient != nil {
		c := *cfg.httpClient
		httpClient = &c
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	restURL := strings.TrimSuffix(baseURL, "/") + "/rest/v1"
	if c := postgrest.NewClient(restURL, "", nil); c.ClientError != nil {
		return nil, fmt.Errorf("supabase: %w", c.ClientError)
	}

	return &SupabaseStore{
		restURL:    restURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

func (s *SupabaseStore) FindByKeyword(ctx context.Context, collection, keyword string) (*Record, error) {
	if _, err := specFor(collection); err != nil {
		return nil, err
	}
	return s.first(ctx, "find by keyword", collection, "*", func(f *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return f.Filter("keywords", "cs", pgArray(keyword))
	})
}

func (s *SupabaseStore) Search(ctx context.Context, collection, term string) (*Record, error) {
	spec, err := specFor(collection)
	if err != nil {
		return nil, err
	}

	var filters []string
	if spec.keywordsContain {
		filters = append(filters, "keywords.cs."+pgArray(term))
	}
	for _, col := range spec.likeColumns {
		filters = append(filters, col+".ilike."+pgQuote("*"+term+"*"))
	}

	return s.first(ctx, "search", collection, "*", func(f *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return f.Or(strings.Join(filters, ","), "")
	})
}

func (s *SupabaseStore) Ping(ctx context.Context) error {
	_, err := s.first(ctx, "ping", CollectionComplete, "action", nil)
	return err
}

// first runs a limit-1 select and returns the only row, or nil.
func (s *SupabaseStore) first(ctx context.Context, operation, collection, columns string, filter func(*postgrest.FilterBuilder) *postgrest.FilterBuilder) (*Record, error) {
	rt := &roundTrip{ctx: ctx, client: s.httpClient}
	client := postgrest.NewClient(s.restURL, "", nil)
	if s.apiKey != "" {
		client.SetApiKey(s.apiKey).SetAuthToken(s.apiKey)
	}
	client.Transport.Parent = rt

	q := client.From(collection).Select(columns, "", false)
	if filter != nil {
		q = filter(q)
	}

	s.logger.DebugContext(ctx, "supabase request", "operation", operation, "collection", collection)

	var rows []Record
	if _, err := q.Limit(1, "").ExecuteTo(&rows); err != nil {
		if rt.status >= 400 {
			return nil, &APIError{Operation: operation, StatusCode: rt.status, Message: rt.message}
		}
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// roundTrip sends PostgREST requests with the caller's context and keeps
// the status and message of an error response.
type roundTrip struct {
	ctx    context.Context
	client *http.Client

	status  int
	message string
}

func (rt *roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := rt.client.Do(req.WithContext(rt.ctx))
	if err != nil || resp.StatusCode < 400 {
		return resp, err
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))

	var pgErr postgrest.ExecuteError
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &pgErr) == nil && pgErr.Message != "" {
		msg = pgErr.Message
	}
	if msg == "" {
		msg = resp.Status
	}
	rt.status, rt.message = resp.StatusCode, msg
	return resp, nil
}

// pgArray renders a one-element PostgreSQL array literal: {"value"}.
func pgArray(v string) string {
	return "{" + pgQuote(v) + "}"
}

func pgQuote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
