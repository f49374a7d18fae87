// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/qautil/tcmapper/internal/config"
	"github.com/qautil/tcmapper/internal/logging"
	"github.com/qautil/tcmapper/internal/mapping"
	"github.com/qautil/tcmapper/internal/store"
)

// openStore builds the keyword store selected by cfg. A nil store with a
// nil error means the local rule table is used alone. The returned
// closer is never nil.
func openStore(cfg config.File) (store.Store, func() error, error) {
	noop := func() error { return nil }
	logger := logging.New("store")

	switch backend := cfg.ResolvedBackend(); backend {
	case config.BackendSupabase:
		s, err := store.NewSupabaseStore(cfg.Supabase.URL, cfg.Supabase.Key,
			store.WithTimeout(cfg.SupabaseTimeout()),
			store.WithLogger(logger),
		)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case config.BackendSQLite:
		s, err := store.OpenSQLite(cfg.Mapping.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case config.BackendDictionary:
		dict, err := store.LoadDictionaryFile(cfg.Mapping.DictionaryPath)
		if err != nil {
			return nil, noop, err
		}
		logger.Debug("loaded mapping dictionary", "path", cfg.Mapping.DictionaryPath, "records", dict.Len())
		return store.NewMemoryStore(dict), noop, nil
	case config.BackendNone:
		return nil, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown mapping backend %q", backend)
	}
}

// newResolver wires the mapping cascade to the configured store.
func newResolver(cfg config.File) (*mapping.Resolver, func() error, error) {
	s, closer, err := openStore(cfg)
	if err != nil {
		return nil, closer, fmt.Errorf("open mapping store: %w", err)
	}

	logger := logging.New("mapping")
	client := mapping.NewClient(s, mapping.WithClientLogger(logger))
	resolver := mapping.NewResolver(client,
		mapping.WithLogger(logger),
		mapping.WithAlternativeTimeout(cfg.AlternativeTimeout()),
		mapping.WithAlternativeKeywords(cfg.Mapping.AlternativeKeywords),
	)
	return resolver, closer, nil
}
