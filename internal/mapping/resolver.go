// SPDX-License-Identifier: Apache-2.0

package mapping

import (
	"context"
	"log/slog"
	"time"

	"github.com/qautil/tcmapper/internal/logging"
)

// Defaults for the alternative-table fan-out.
const (
	DefaultAlternativeTimeout  = 3 * time.Second
	DefaultAlternativeKeywords = 3
)

// Resolver runs the strategy cascade for one fragment at a time.
type Resolver struct {
	strategies []Strategy
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*resolverConfig)

type resolverConfig struct {
	logger     *slog.Logger
	clock      Clock
	timeout    time.Duration
	keywords   int
	onFanout   func(FanoutStats)
	strategies []Strategy
}

// WithLogger sets the resolver logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *resolverConfig) { c.logger = l }
}

// WithClock sets the clock used for the fan-out deadline.
func WithClock(clock Clock) Option {
	return func(c *resolverConfig) { c.clock = clock }
}

// WithAlternativeTimeout sets the fan-out deadline.
func WithAlternativeTimeout(d time.Duration) Option {
	return func(c *resolverConfig) { c.timeout = d }
}

// WithAlternativeKeywords caps how many keywords the fan-out searches.
func WithAlternativeKeywords(n int) Option {
	return func(c *resolverConfig) { c.keywords = n }
}

// WithFanoutObserver receives the stats of every alternative search.
func WithFanoutObserver(fn func(FanoutStats)) Option {
	return func(c *resolverConfig) { c.onFanout = fn }
}

// WithStrategies replaces the default cascade.
func WithStrategies(s ...Strategy) Option {
	return func(c *resolverConfig) { c.strategies = s }
}

// NewResolver builds the default cascade over client: full text, pairs,
// triples, individual keywords, alternative tables, synonyms and finally
// the local rule table.
func NewResolver(client *Client, opts ...Option) *Resolver {
	cfg := &resolverConfig{
		logger:   logging.Discard(),
		clock:    RealClock(),
		timeout:  DefaultAlternativeTimeout,
		keywords: DefaultAlternativeKeywords,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.Discard()
	}

	strategies := cfg.strategies
	if strategies == nil {
		strategies = []Strategy{
			FullTextStrategy{Client: client},
			CombinationStrategy{Client: client, Size: 2},
			CombinationStrategy{Client: client, Size: 3},
			IndividualStrategy{Client: client},
			AlternativeStrategy{
				Client:   client,
				Keywords: cfg.keywords,
				Timeout:  cfg.timeout,
				Clock:    cfg.clock,
				Logger:   cfg.logger,
				OnFanout: cfg.onFanout,
			},
			SynonymStrategy{Client: client},
			LocalStrategy{},
		}
	}

	return &Resolver{strategies: strategies, logger: cfg.logger}
}

// Strategies returns the names of the cascade tiers in order.
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

// Resolve maps text to exactly one action. It fails only when ctx is already
// done; remote failures fall through to the next tier.
func (r *Resolver) Resolve(ctx context.Context, text string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	f := NewFragment(text)
	r.logger.DebugContext(ctx, "resolving fragment", "text", text, "keywords", f.Keywords)

	for _, s := range r.strategies {
		res, ok := s.TryResolve(ctx, f)
		if !ok {
			r.logger.DebugContext(ctx, "tier produced no result", "tier", s.Name())
			continue
		}
		res.Found = true
		r.logger.DebugContext(ctx, "fragment resolved",
			"tier", s.Name(), "action", res.Action, "type", res.Type, "source", string(res.Source))
		return res, nil
	}

	res := LocalFallback(text)
	r.logger.DebugContext(ctx, "fragment resolved", "tier", "local", "action", res.Action)
	return res, nil
}
