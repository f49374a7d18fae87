// SPDX-License-Identifier: Apache-2.0

package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qautil/tcmapper/internal/store"
)

func TestSupabaseStore_FindByKeyword(t *testing.T) {
	var gotPath, gotKeywords, gotLimit, gotAPIKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKeywords = r.URL.Query().Get("keywords")
		gotLimit = r.URL.Query().Get("limit")
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{{
			"keywords":    []string{"로그인"},
			"action":      "Click",
			"type":        "click",
			"groovy_code": nil,
		}})
	}))
	defer srv.Close()

	s, err := store.NewSupabaseStore(srv.URL+"/", "anon-key")
	require.NoError(t, err)

	rec, err := s.FindByKeyword(context.Background(), store.CollectionComplete, "로그인")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Click", rec.Action)
	assert.Empty(t, rec.GroovyCode)

	assert.Equal(t, "/rest/v1/katalon_mapping_complete", gotPath)
	assert.Equal(t, `cs.{"로그인"}`, gotKeywords)
	assert.Equal(t, "1", gotLimit)
	assert.Equal(t, "anon-key", gotAPIKey)
	assert.Equal(t, "Bearer anon-key", gotAuth)
}

func TestSupabaseStore_Search(t *testing.T) {
	var gotOr string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOr = r.URL.Query().Get("or")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s, err := store.NewSupabaseStore(srv.URL, "k")
	require.NoError(t, err)

	rec, err := s.Search(context.Background(), store.CollectionCompleteMappings, `say "hi"`)
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, `(keywords.cs.{"say \"hi\""},action.ilike."*say \"hi\"*",groovy_code.ilike."*say \"hi\"*")`, gotOr)

	_, err = s.Search(context.Background(), store.CollectionKeywordMappings, "업로드")
	require.NoError(t, err)
	assert.Equal(t, `(keyword.ilike."*업로드*",action.ilike."*업로드*",meaning.ilike."*업로드*")`, gotOr)
}

func TestSupabaseStore_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	s, err := store.NewSupabaseStore(srv.URL, "bad", store.WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = s.FindByKeyword(context.Background(), store.CollectionObserver, "x")
	var apiErr *store.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid API key", apiErr.Message)

	assert.Error(t, s.Ping(context.Background()))

	_, err = s.FindByKeyword(context.Background(), "nope", "x")
	assert.ErrorIs(t, err, store.ErrUnknownCollection)
}

func TestSupabaseStore_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	s, err := store.NewSupabaseStore(srv.URL, "k")
	require.NoError(t, err)

	_, err = s.Search(context.Background(), store.CollectionKeywordMappings, "업로드")
	var apiErr *store.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "search", apiErr.Operation)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}

func TestSupabaseStore_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s, err := store.NewSupabaseStore(srv.URL, "k")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.FindByKeyword(ctx, store.CollectionComplete, "로그인")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSupabaseStore_TimeoutKeepsCallerClient(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	shared := srv.Client()
	shared.Timeout = 0

	s, err := store.NewSupabaseStore(srv.URL, "k", store.WithHTTPClient(shared), store.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)
	assert.Zero(t, shared.Timeout)

	require.NoError(t, s.Ping(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestSupabaseStore_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/katalon_mapping_complete", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s, err := store.NewSupabaseStore(srv.URL, "")
	require.NoError(t, err)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestNewSupabaseStore_Validation(t *testing.T) {
	_, err := store.NewSupabaseStore("", "k")
	assert.Error(t, err)

	_, err = store.NewSupabaseStore("http://x", "k", store.WithTimeout(-time.Second))
	assert.Error(t, err)
}
