// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps records in process. It backs offline runs from a
// dictionary file and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]Record
}

// NewMemoryStore returns a store seeded with the dictionary's records.
func NewMemoryStore(dict Dictionary) *MemoryStore {
	s := &MemoryStore{records: make(map[string][]Record)}
	for name, recs := range dict.Collections {
		s.records[name] = slices.Clone(recs)
	}
	return s
}

// Add appends a record to collection.
func (s *MemoryStore) Add(collection string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[collection] = append(s.records[collection], rec)
}

func (s *MemoryStore) FindByKeyword(ctx context.Context, collection, keyword string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := specFor(collection); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records[collection] {
		if slices.Contains(rec.Keywords, keyword) {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Search(ctx context.Context, collection, term string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	spec, err := specFor(collection)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records[collection] {
		if spec.matches(rec, term) {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
