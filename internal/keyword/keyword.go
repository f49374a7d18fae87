// SPDX-License-Identifier: Apache-2.0

// Package keyword extracts lookup keywords from free-form step text and
// builds the combinations the mapping cascade queries with.
package keyword

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinLength is the shortest token, in characters, kept as a keyword.
const MinLength = 2

var (
	punctuation = regexp.MustCompile(`[^\w\sㄱ-ㅎㅏ-ㅣ가-힣]`)
	numeric     = regexp.MustCompile(`^\d+\.?$`)
)

// Extract splits text into lowercase keywords. Punctuation becomes a
// separator, tokens shorter than MinLength and purely numeric tokens are
// dropped, and duplicates are removed keeping first-occurrence order.
func Extract(text string) []string {
	normalized := punctuation.ReplaceAllString(text, " ")

	seen := make(map[string]bool)
	var out []string
	for _, tok := range strings.Fields(normalized) {
		tok = strings.ToLower(tok)
		if utf8.RuneCountInString(tok) < MinLength || numeric.MatchString(tok) {
			continue
		}
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// Pairs returns every ordered pair (i < j) joined by a single space.
func Pairs(keywords []string) []string {
	var out []string
	for i := 0; i < len(keywords); i++ {
		for j := i + 1; j < len(keywords); j++ {
			out = append(out, keywords[i]+" "+keywords[j])
		}
	}
	return out
}

// Triples returns every ordered triple (i < j < k) joined by a single space.
func Triples(keywords []string) []string {
	var out []string
	for i := 0; i < len(keywords); i++ {
		for j := i + 1; j < len(keywords); j++ {
			for k := j + 1; k < len(keywords); k++ {
				out = append(out, keywords[i]+" "+keywords[j]+" "+keywords[k])
			}
		}
	}
	return out
}
