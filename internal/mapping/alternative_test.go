// SPDX-License-Identifier: Apache-2.0

package mapping

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qautil/tcmapper/internal/store"
)

// manualClock fires only when the test sends on ch.
type manualClock struct{ ch chan time.Time }

func (c manualClock) After(time.Duration) <-chan time.Time { return c.ch }

// slowStore blocks every query mentioning "느림" until its context ends and
// answers "빠름" searches on keyword_mappings immediately.
type slowStore struct{}

func (slowStore) FindByKeyword(ctx context.Context, _, kw string) (*store.Record, error) {
	if strings.Contains(kw, "느림") {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return nil, nil
}

func (slowStore) Search(ctx context.Context, collection, term string) (*store.Record, error) {
	if strings.Contains(term, "느림") {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if collection == store.CollectionKeywordMappings && term == "빠름" {
		return &store.Record{Keyword: "빠름", Action: "Fast"}, nil
	}
	return nil, nil
}

func (slowStore) Ping(context.Context) error { return nil }

func TestAlternativeStrategy_DeadlineDropsStragglers(t *testing.T) {
	clock := manualClock{ch: make(chan time.Time)}
	var settled atomic.Int64
	var stats FanoutStats

	s := AlternativeStrategy{
		Client:   NewClient(slowStore{}),
		Keywords: DefaultAlternativeKeywords,
		Timeout:  DefaultAlternativeTimeout,
		Clock:    clock,
		OnFanout: func(st FanoutStats) { stats = st },
		settled:  func() { settled.Add(1) },
	}

	type outcome struct {
		res Result
		ok  bool
	}
	done := make(chan outcome, 1)
	go func() {
		res, ok := s.TryResolve(context.Background(), NewFragment("빠름 느림"))
		done <- outcome{res, ok}
	}()

	// "빠름": 4 table searches and 1 lookup settle without waiting.
	require.Eventually(t, func() bool { return settled.Load() == 5 }, 2*time.Second, 5*time.Millisecond)
	clock.ch <- time.Now()

	var got outcome
	select {
	case got = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fan-out did not return after the deadline")
	}

	require.True(t, got.ok)
	assert.Equal(t, "Fast", got.res.Action)
	assert.Equal(t, SourceRemoteAlternative, got.res.Source)
	assert.Equal(t, TypeVerification, got.res.Type)
	assert.Equal(t, 10+PriorityScore("빠름", "빠름 느림"), got.res.Priority)
	// 2 keywords x 4 tables + full text x 4 tables + 2 lookups.
	assert.Equal(t, FanoutStats{Issued: 14, Completed: 5, Dropped: 9}, stats)

	// Stragglers observe cancellation and settle, but are not counted.
	require.Eventually(t, func() bool { return settled.Load() == 14 }, 2*time.Second, 5*time.Millisecond)
}

func TestFanout_AllSettleBeforeDeadline(t *testing.T) {
	clock := manualClock{ch: make(chan time.Time)}
	f := &fanout{clock: clock, timeout: time.Second, logger: NewClient(nil).logger}

	queries := []fanoutQuery{
		{priority: 3, run: func(context.Context) Result { return Result{Found: true, Action: "first"} }},
		{priority: 7, run: func(context.Context) Result { return Result{Found: true, Action: "best"} }},
		{priority: 7, run: func(context.Context) Result { return Result{Found: true, Action: "tie"} }},
		{priority: 9, run: func(context.Context) Result { return Result{} }},
	}

	res, ok, stats := f.run(context.Background(), queries)
	require.True(t, ok)
	assert.Equal(t, "best", res.Action, "ties keep issue order")
	assert.Equal(t, 7, res.Priority)
	assert.Equal(t, FanoutStats{Issued: 4, Completed: 4}, stats)
}

func TestFanout_NoQueries(t *testing.T) {
	f := &fanout{clock: RealClock(), timeout: time.Second}
	_, ok, stats := f.run(context.Background(), nil)
	assert.False(t, ok)
	assert.Equal(t, FanoutStats{}, stats)
}

func TestAlternativeQueries_Order(t *testing.T) {
	f := NewFragment("클릭 버튼 로그인 화면")
	queries := alternativeQueries(NewClient(nil), f, 3)

	// 3 keywords x 4 tables, 4 full-text queries, 3 lookups.
	require.Len(t, queries, 19)
	assert.Equal(t, 10+PriorityScore("클릭", f.Text), queries[0].priority)
	assert.Equal(t, 7+PriorityScore("로그인", f.Text), queries[11].priority)
	assert.Equal(t, 10+fullTextBonus, queries[12].priority)
	assert.Equal(t, lookupBasePriority+PriorityScore("클릭", f.Text), queries[16].priority)
}
