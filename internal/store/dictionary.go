// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// Dictionary is a file-based snapshot of mapping collections:
//
//	collections:
//	  katalon_mapping_complete:
//	    - keywords: [클릭, click]
//	      action: Click
//	      type: click
type Dictionary struct {
	Collections map[string][]Record `yaml:"collections" json:"collections"`
}

// Names returns the dictionary's collection names in sorted order.
func (d Dictionary) Names() []string {
	names := make([]string, 0, len(d.Collections))
	for name := range d.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of records.
func (d Dictionary) Len() int {
	n := 0
	for _, recs := range d.Collections {
		n += len(recs)
	}
	return n
}

// LoadDictionaryFile opens path and calls LoadDictionary.
func LoadDictionaryFile(path string) (Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dictionary{}, fmt.Errorf("open dictionary %q: %w", path, err)
	}
	defer f.Close()

	dict, err := LoadDictionary(f)
	if err != nil {
		return Dictionary{}, fmt.Errorf("dictionary %q: %w", path, err)
	}
	return dict, nil
}

// LoadDictionary decodes a YAML (or JSON) dictionary, validates every record
// and lowercases keywords so they match normalized lookup keys.
func LoadDictionary(r io.Reader) (Dictionary, error) {
	var dict Dictionary
	if err := yaml.NewDecoder(r).Decode(&dict); err != nil {
		return Dictionary{}, fmt.Errorf("decode dictionary: %w", err)
	}

	validator, err := NewValidator()
	if err != nil {
		return Dictionary{}, err
	}

	for _, name := range dict.Names() {
		if !IsKnownCollection(name) {
			return Dictionary{}, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
		}
		recs := dict.Collections[name]
		for i := range recs {
			recs[i].Keywords = normalizeKeywords(recs[i].Keywords)
			if err := validator.Validate(recs[i]); err != nil {
				return Dictionary{}, fmt.Errorf("%s[%d]: %w", name, i, err)
			}
		}
	}
	return dict, nil
}

func normalizeKeywords(kws []string) []string {
	out := kws[:0]
	for _, kw := range kws {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			out = append(out, kw)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
