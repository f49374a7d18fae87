// SPDX-License-Identifier: Apache-2.0

// Package store is the boundary to the keyword mapping store: a set of
// named collections holding keyword lists mapped to automation actions.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Collections known to the mapping cascade.
const (
	CollectionComplete         = "katalon_mapping_complete"
	CollectionObserver         = "katalon_mapping_observer"
	CollectionKeywordMappings  = "keyword_mappings"
	CollectionCompleteMappings = "complete_mappings"
)

// Collections lists every collection in a stable order.
var Collections = []string{
	CollectionComplete,
	CollectionObserver,
	CollectionKeywordMappings,
	CollectionCompleteMappings,
}

// ErrUnknownCollection is returned for a collection outside Collections.
var ErrUnknownCollection = errors.New("unknown collection")

// Record is one mapping row.
type Record struct {
	Keywords   []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Keyword    string   `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Action     string   `json:"action" yaml:"action"`
	Type       string   `json:"type,omitempty" yaml:"type,omitempty"`
	GroovyCode string   `json:"groovy_code,omitempty" yaml:"groovy_code,omitempty"`
	Meaning    string   `json:"meaning,omitempty" yaml:"meaning,omitempty"`
}

// Store looks up mapping records. A lookup that matches nothing returns
// (nil, nil); an error always means the store could not be queried.
type Store interface {
	// FindByKeyword returns the first record whose keyword list contains
	// keyword exactly.
	FindByKeyword(ctx context.Context, collection, keyword string) (*Record, error)
	// Search returns the first record broadly matching term using the
	// collection's search columns.
	Search(ctx context.Context, collection, term string) (*Record, error)
	Ping(ctx context.Context) error
}

// searchSpec describes how Search matches within one collection: keyword
// array containment and/or case-insensitive substring match on columns.
type searchSpec struct {
	keywordsContain bool
	likeColumns     []string
}

var searchSpecs = map[string]searchSpec{
	CollectionKeywordMappings:  {likeColumns: []string{"keyword", "action", "meaning"}},
	CollectionCompleteMappings: {keywordsContain: true, likeColumns: []string{"action", "groovy_code"}},
	CollectionComplete:         {keywordsContain: true, likeColumns: []string{"action"}},
	CollectionObserver:         {keywordsContain: true, likeColumns: []string{"action"}},
}

func specFor(collection string) (searchSpec, error) {
	spec, ok := searchSpecs[collection]
	if !ok {
		return searchSpec{}, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return spec, nil
}

// IsKnownCollection reports whether name is one of Collections.
func IsKnownCollection(name string) bool {
	return slices.Contains(Collections, name)
}

// column returns the value of a search column on r.
func (r Record) column(name string) string {
	switch name {
	case "keyword":
		return r.Keyword
	case "action":
		return r.Action
	case "meaning":
		return r.Meaning
	case "groovy_code":
		return r.GroovyCode
	}
	return ""
}

// matches applies spec to r in memory.
func (spec searchSpec) matches(r Record, term string) bool {
	if spec.keywordsContain && slices.Contains(r.Keywords, term) {
		return true
	}
	lower := strings.ToLower(term)
	for _, col := range spec.likeColumns {
		if v := r.column(col); v != "" && strings.Contains(strings.ToLower(v), lower) {
			return true
		}
	}
	return false
}
