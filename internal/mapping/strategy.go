// SPDX-License-Identifier: Apache-2.0

package mapping

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/qautil/tcmapper/internal/keyword"
)

// Fragment is one step of text together with its extracted keywords.
type Fragment struct {
	Text     string
	Keywords []string
}

// NewFragment extracts keywords from text.
func NewFragment(text string) Fragment {
	return Fragment{Text: text, Keywords: keyword.Extract(text)}
}

// Strategy is one tier of the cascade.
type Strategy interface {
	Name() string
	// TryResolve reports a match, or false to hand over to the next tier.
	TryResolve(ctx context.Context, f Fragment) (Result, bool)
}

// FullTextStrategy looks up the whole fragment as one key.
type FullTextStrategy struct{ Client *Client }

func (s FullTextStrategy) Name() string { return "full_text" }

func (s FullTextStrategy) TryResolve(ctx context.Context, f Fragment) (Result, bool) {
	res := s.Client.Lookup(ctx, f.Text)
	if !res.Found {
		return Result{}, false
	}
	res.Source = SourceRemoteFull
	return res, true
}

// CombinationStrategy looks up keyword pairs (Size 2) or triples (Size 3)
// in index order; the first hit wins.
type CombinationStrategy struct {
	Client *Client
	Size   int
}

func (s CombinationStrategy) Name() string {
	if s.Size == 3 {
		return "triples"
	}
	return "pairs"
}

func (s CombinationStrategy) TryResolve(ctx context.Context, f Fragment) (Result, bool) {
	if !s.Client.Enabled() {
		return Result{}, false
	}

	combos := keyword.Pairs(f.Keywords)
	source := SourceRemoteCombination
	if s.Size == 3 {
		combos = keyword.Triples(f.Keywords)
		source = SourceRemoteTriple
	}

	for _, combo := range combos {
		if ctx.Err() != nil {
			return Result{}, false
		}
		if res := s.Client.Lookup(ctx, combo); res.Found {
			res.Source = source
			return res, true
		}
	}
	return Result{}, false
}

// IndividualStrategy looks up every keyword, then keeps the hit with the
// highest PriorityScore. Ties keep keyword order.
type IndividualStrategy struct{ Client *Client }

func (s IndividualStrategy) Name() string { return "individual" }

func (s IndividualStrategy) TryResolve(ctx context.Context, f Fragment) (Result, bool) {
	if !s.Client.Enabled() {
		return Result{}, false
	}

	var (
		best  Result
		found bool
	)
	for _, kw := range f.Keywords {
		if ctx.Err() != nil {
			break
		}
		res := s.Client.Lookup(ctx, kw)
		if !res.Found {
			continue
		}
		res.Priority = PriorityScore(kw, f.Text)
		if !found || res.Priority > best.Priority {
			best, found = res, true
		}
	}
	if !found {
		return Result{}, false
	}
	best.Source = SourceRemoteIndividual
	return best, true
}

// AlternativeStrategy fans out broad searches across the alternative
// tables and races them against Timeout.
type AlternativeStrategy struct {
	Client *Client
	// Keywords caps how many leading keywords are searched.
	Keywords int
	Timeout  time.Duration
	Clock    Clock
	Logger   *slog.Logger
	// OnFanout, when set, receives the stats of every run.
	OnFanout func(FanoutStats)

	settled func()
}

func (s AlternativeStrategy) Name() string { return "alternative_tables" }

func (s AlternativeStrategy) TryResolve(ctx context.Context, f Fragment) (Result, bool) {
	if !s.Client.Enabled() {
		return Result{}, false
	}

	clock := s.Clock
	if clock == nil {
		clock = RealClock()
	}
	logger := s.Logger
	if logger == nil {
		logger = s.Client.logger
	}

	fo := &fanout{clock: clock, timeout: s.Timeout, logger: logger, settled: s.settled}
	res, ok, stats := fo.run(ctx, alternativeQueries(s.Client, f, s.Keywords))
	if s.OnFanout != nil {
		s.OnFanout(stats)
	}
	if !ok {
		return Result{}, false
	}
	res.Source = SourceRemoteAlternative
	return res, true
}

// SynonymStrategy retries each keyword's registered synonyms in order.
type SynonymStrategy struct{ Client *Client }

func (s SynonymStrategy) Name() string { return "synonyms" }

func (s SynonymStrategy) TryResolve(ctx context.Context, f Fragment) (Result, bool) {
	if !s.Client.Enabled() {
		return Result{}, false
	}

	for _, kw := range f.Keywords {
		for _, syn := range Synonyms(strings.ToLower(kw)) {
			if ctx.Err() != nil {
				return Result{}, false
			}
			if res := s.Client.Lookup(ctx, syn); res.Found {
				res.Source = SourceRemoteSynonym
				return res, true
			}
		}
	}
	return Result{}, false
}

// LocalStrategy always succeeds through LocalFallback.
type LocalStrategy struct{}

func (LocalStrategy) Name() string { return "local" }

func (LocalStrategy) TryResolve(_ context.Context, f Fragment) (Result, bool) {
	return LocalFallback(f.Text), true
}
