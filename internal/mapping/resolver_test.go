// SPDX-License-Identifier: Apache-2.0

package mapping_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qautil/tcmapper/internal/mapping"
	"github.com/qautil/tcmapper/internal/store"
)

type failingStore struct{ calls atomic.Int64 }

func (s *failingStore) FindByKeyword(context.Context, string, string) (*store.Record, error) {
	s.calls.Add(1)
	return nil, errors.New("connection refused")
}

func (s *failingStore) Search(context.Context, string, string) (*store.Record, error) {
	return nil, errors.New("connection refused")
}

func (s *failingStore) Ping(context.Context) error { return errors.New("connection refused") }

func memoryStore(records map[string][]store.Record) *store.MemoryStore {
	return store.NewMemoryStore(store.Dictionary{Collections: records})
}

func TestResolver_Tiers(t *testing.T) {
	tests := []struct {
		name           string
		records        map[string][]store.Record
		text           string
		wantAction     string
		wantType       string
		wantSource     mapping.Source
		wantCollection string
	}{
		{
			name: "full text",
			records: map[string][]store.Record{
				store.CollectionComplete: {{Keywords: []string{"로그인 버튼 클릭"}, Action: "Click Login", Type: "click"}},
			},
			text:       "  로그인 버튼 클릭 ",
			wantAction: "Click Login",
			wantType:   mapping.TypeClick,
			wantSource: mapping.SourceRemoteFull,
		},
		{
			name: "pair",
			records: map[string][]store.Record{
				store.CollectionObserver: {{Keywords: []string{"로그인 클릭"}, Action: "Click", Type: "click"}},
			},
			text:           "로그인 버튼 클릭",
			wantAction:     "Click",
			wantType:       mapping.TypeClick,
			wantSource:     mapping.SourceRemoteCombination,
			wantCollection: store.CollectionObserver,
		},
		{
			name: "triple",
			records: map[string][]store.Record{
				store.CollectionComplete: {{Keywords: []string{"상단 로그인 클릭"}, Action: "Click Header Login"}},
			},
			text:       "상단 로그인 버튼 클릭",
			wantAction: "Click Header Login",
			wantType:   mapping.TypeUnknown,
			wantSource: mapping.SourceRemoteTriple,
		},
		{
			name: "individual keeps highest priority",
			records: map[string][]store.Record{
				store.CollectionComplete: {
					{Keywords: []string{"로그인"}, Action: "Verify Login Page", Type: "verification"},
					{Keywords: []string{"클릭"}, Action: "Click", Type: "click"},
				},
			},
			text:       "로그인 버튼 클릭",
			wantAction: "Click",
			wantType:   mapping.TypeClick,
			wantSource: mapping.SourceRemoteIndividual,
		},
		{
			name: "alternative table",
			records: map[string][]store.Record{
				store.CollectionKeywordMappings: {{Keyword: "뜬다", Action: "Verify Element Visible", Type: "visibility"}},
			},
			text:           "팝업창이 뜬다",
			wantAction:     "Verify Element Visible",
			wantType:       mapping.TypeVisibility,
			wantSource:     mapping.SourceRemoteAlternative,
			wantCollection: store.CollectionKeywordMappings,
		},
		{
			name: "alternative full text outranks keyword hit",
			records: map[string][]store.Record{
				store.CollectionKeywordMappings:  {{Keyword: "뜬다", Action: "Verify Element Visible"}},
				store.CollectionCompleteMappings: {{Keywords: []string{"팝업창이 뜬다"}, Action: "Verify Popup"}},
			},
			text:           "팝업창이 뜬다",
			wantAction:     "Verify Popup",
			wantType:       mapping.TypeVerification,
			wantSource:     mapping.SourceRemoteAlternative,
			wantCollection: store.CollectionCompleteMappings,
		},
		{
			name: "synonym",
			records: map[string][]store.Record{
				store.CollectionComplete: {{Keywords: []string{"upload"}, Action: "Upload File", Type: "upload"}},
			},
			text:       "파일 업로드",
			wantAction: "Upload File",
			wantType:   mapping.TypeUpload,
			wantSource: mapping.SourceRemoteSynonym,
		},
		{
			name:       "local fallback",
			records:    map[string][]store.Record{},
			text:       "비밀번호를 입력한다",
			wantAction: "Set Encrypted Text",
			wantType:   mapping.TypeEncryptedInput,
			wantSource: mapping.SourceLocal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mapping.NewClient(memoryStore(tt.records))
			r := mapping.NewResolver(client)

			got, err := r.Resolve(context.Background(), tt.text)
			require.NoError(t, err)
			assert.True(t, got.Found)
			assert.Equal(t, tt.wantAction, got.Action)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantSource, got.Source)
			if tt.wantCollection != "" {
				assert.Equal(t, tt.wantCollection, got.Collection)
			}
		})
	}
}

func TestResolver_NoStoreUsesLocalRules(t *testing.T) {
	r := mapping.NewResolver(mapping.NewClient(nil))

	got, err := r.Resolve(context.Background(), "파일 업로드 버튼 클릭")
	require.NoError(t, err)
	assert.Equal(t, "Upload File", got.Action)
	assert.Equal(t, mapping.SourceLocal, got.Source)
}

func TestResolver_StoreFailuresFallThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	fs := &failingStore{}

	var stats []mapping.FanoutStats
	r := mapping.NewResolver(
		mapping.NewClient(fs, mapping.WithClientLogger(logger)),
		mapping.WithLogger(logger),
		mapping.WithAlternativeTimeout(time.Second),
		mapping.WithFanoutObserver(func(s mapping.FanoutStats) { stats = append(stats, s) }),
	)

	got, err := r.Resolve(context.Background(), "로그인 버튼 클릭")
	require.NoError(t, err)
	assert.Equal(t, "Click", got.Action)
	assert.Equal(t, mapping.SourceLocal, got.Source)
	assert.Greater(t, fs.calls.Load(), int64(0))
	assert.Contains(t, buf.String(), "mapping store query failed")
	assert.Contains(t, buf.String(), "connection refused")

	require.Len(t, stats, 1)
	// 3 keywords x 4 tables + full text x 4 tables + 3 lookups.
	assert.Equal(t, mapping.FanoutStats{Issued: 19, Completed: 19}, stats[0])
}

func TestResolver_Idempotent(t *testing.T) {
	records := map[string][]store.Record{
		store.CollectionComplete: {{Keywords: []string{"클릭"}, Action: "Click", Type: "click"}},
	}
	r := mapping.NewResolver(mapping.NewClient(memoryStore(records)))

	first, err := r.Resolve(context.Background(), "확인 버튼 클릭")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), "확인 버튼 클릭")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mapping.NewResolver(mapping.NewClient(nil)).Resolve(ctx, "클릭")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolver_Strategies(t *testing.T) {
	r := mapping.NewResolver(mapping.NewClient(nil))
	assert.Equal(t, []string{
		"full_text", "pairs", "triples", "individual", "alternative_tables", "synonyms", "local",
	}, r.Strategies())

	custom := mapping.NewResolver(nil, mapping.WithStrategies(mapping.LocalStrategy{}))
	got, err := custom.Resolve(context.Background(), "이동")
	require.NoError(t, err)
	assert.Equal(t, "Navigate To Url", got.Action)
}

func TestClient_Lookup(t *testing.T) {
	records := map[string][]store.Record{
		store.CollectionComplete: {{Keywords: []string{"클릭"}, Action: "Click", GroovyCode: "WebUI.click(findTestObject('Object Repository/a'))"}},
		store.CollectionObserver: {{Keywords: []string{"클릭", "확인"}, Action: "Verify"}},
	}
	c := mapping.NewClient(memoryStore(records))

	got := c.Lookup(context.Background(), "  클릭 ")
	assert.True(t, got.Found)
	assert.Equal(t, "Click", got.Action)
	assert.Equal(t, mapping.TypeUnknown, got.Type)
	assert.Equal(t, store.CollectionComplete, got.Collection)
	assert.NotEmpty(t, got.GroovyCode)

	got = c.Lookup(context.Background(), "확인")
	assert.Equal(t, store.CollectionObserver, got.Collection)

	assert.False(t, c.Lookup(context.Background(), "   ").Found)
	assert.False(t, mapping.NewClient(nil).Lookup(context.Background(), "클릭").Found)
}
