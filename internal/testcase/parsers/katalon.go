// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"regexp"
	"strings"

	"github.com/qautil/tcmapper/internal/testcase"
)

// KatalonParser extracts test cases from Katalon script exports in which
// each case carries a WebUI.comment("""...""") metadata block of
// "Key: value" lines.
type KatalonParser struct{}

func NewKatalonParser() *KatalonParser {
	return &KatalonParser{}
}

func (p *KatalonParser) Name() string {
	return "katalon"
}

var (
	commentBlock = regexp.MustCompile(`(?s)comment\("{2,3}[\r\n]+(.*?)[\r\n]+"{2,3}\)`)
	metadataKey  = regexp.MustCompile(`^[A-Za-z][A-Za-z _-]*$`)
)

func (p *KatalonParser) CanHandle(source testcase.Source) bool {
	switch strings.ToLower(source.Format) {
	case "katalon", "groovy":
		return true
	}
	return commentBlock.Match(source.Content)
}

func (p *KatalonParser) Parse(_ context.Context, source testcase.Source) ([]testcase.TestCase, error) {
	matches := commentBlock.FindAllSubmatch(source.Content, -1)
	cases := make([]testcase.TestCase, 0, len(matches))
	for i, m := range matches {
		tc := testcase.TestCase{Index: i + 1}
		for key, value := range parseMetadata(string(m[1])) {
			if field := canonicalField(key); field != "" {
				tc.SetField(field, value)
			}
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

// parseMetadata reads "Key: value" lines. Lines that do not start with a key
// continue the previous value; separator and blank lines are skipped.
func parseMetadata(block string) map[string]string {
	fields := make(map[string]string)
	var (
		key    string
		values []string
	)
	flush := func() {
		if key != "" {
			fields[key] = strings.Join(values, "\n")
		}
		key, values = "", nil
	}

	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "=") {
			continue
		}
		if head, rest, ok := strings.Cut(line, ":"); ok && metadataKey.MatchString(strings.TrimSpace(head)) {
			flush()
			key = strings.TrimSpace(head)
			values = append(values, strings.TrimSpace(rest))
			continue
		}
		if key != "" {
			values = append(values, line)
		}
	}
	flush()
	return fields
}

func canonicalField(key string) string {
	for _, f := range testcase.StandardFields {
		if strings.EqualFold(f, key) {
			return f
		}
	}
	return ""
}
