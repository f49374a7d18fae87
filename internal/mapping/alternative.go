// SPDX-License-Identifier: Apache-2.0

package mapping

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/qautil/tcmapper/internal/store"
)

// Clock supplies the fan-out deadline. Tests inject a controllable one.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock returns a Clock backed by time.After.
func RealClock() Clock { return realClock{} }

// FanoutStats reports what happened to one alternative search. Dropped
// queries were still outstanding when the deadline fired; their results,
// if any arrive later, are discarded.
type FanoutStats struct {
	Issued    int `json:"issued"`
	Completed int `json:"completed"`
	Dropped   int `json:"dropped"`
}

// alternativeTable is a collection searched by the fan-out with its
// static priority.
type alternativeTable struct {
	collection string
	priority   int
}

var alternativeTables = []alternativeTable{
	{collection: store.CollectionKeywordMappings, priority: 10},
	{collection: store.CollectionCompleteMappings, priority: 9},
	{collection: store.CollectionComplete, priority: 8},
	{collection: store.CollectionObserver, priority: 7},
}

// Priority bonuses for the fan-out. A keyword hit scores at most
// 10 + 25, so a full-text hit from any table outranks every keyword hit.
const (
	fullTextBonus      = 30
	lookupBasePriority = 5
)

type fanoutQuery struct {
	priority int
	run      func(ctx context.Context) Result
}

// fanout runs queries concurrently and keeps the best result that settled
// before the deadline.
type fanout struct {
	clock   Clock
	timeout time.Duration
	logger  *slog.Logger
	// settled, when set, is called after every query finishes.
	settled func()
}

func (f *fanout) run(ctx context.Context, queries []fanoutQuery) (Result, bool, FanoutStats) {
	stats := FanoutStats{Issued: len(queries)}
	if len(queries) == 0 {
		return Result{}, false, stats
	}

	qctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu        sync.Mutex
		closed    bool
		completed int
		hits      = make([]*Result, len(queries))
	)

	g, gctx := errgroup.WithContext(qctx)
	for i, q := range queries {
		g.Go(func() error {
			res := q.run(gctx)

			mu.Lock()
			if !closed {
				completed++
				if res.Found {
					res.Priority = q.priority
					hits[i] = &res
				}
			}
			mu.Unlock()

			if f.settled != nil {
				f.settled()
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	timedOut := false
	select {
	case <-done:
	case <-f.clock.After(f.timeout):
		timedOut = true
	case <-ctx.Done():
	}

	mu.Lock()
	closed = true
	stats.Completed = completed
	best := pickBest(hits)
	mu.Unlock()
	cancel()

	stats.Dropped = stats.Issued - stats.Completed
	if timedOut {
		f.logger.DebugContext(ctx, "alternative search deadline reached",
			"issued", stats.Issued, "completed", stats.Completed, "dropped", stats.Dropped)
	}
	if best == nil {
		return Result{}, false, stats
	}
	return *best, true, stats
}

// pickBest returns the highest-priority hit; ties keep issue order.
func pickBest(hits []*Result) *Result {
	var best *Result
	for _, h := range hits {
		if h != nil && (best == nil || h.Priority > best.Priority) {
			best = h
		}
	}
	return best
}

// alternativeQueries builds the fan-out: the first n keywords against every
// alternative table, the full text against every table, then the first n
// keywords through the primary lookup.
func alternativeQueries(client *Client, f Fragment, n int) []fanoutQuery {
	kws := f.Keywords
	if len(kws) > n {
		kws = kws[:n]
	}
	fullText := strings.TrimSpace(f.Text)

	var queries []fanoutQuery
	for _, kw := range kws {
		score := PriorityScore(kw, f.Text)
		for _, table := range alternativeTables {
			queries = append(queries, fanoutQuery{
				priority: table.priority + score,
				run: func(ctx context.Context) Result {
					return client.Search(ctx, table.collection, kw)
				},
			})
		}
	}
	if fullText != "" {
		for _, table := range alternativeTables {
			queries = append(queries, fanoutQuery{
				priority: table.priority + fullTextBonus,
				run: func(ctx context.Context) Result {
					return client.Search(ctx, table.collection, fullText)
				},
			})
		}
	}
	for _, kw := range kws {
		queries = append(queries, fanoutQuery{
			priority: lookupBasePriority + PriorityScore(kw, f.Text),
			run: func(ctx context.Context) Result {
				return client.Lookup(ctx, kw)
			},
		})
	}
	return queries
}
