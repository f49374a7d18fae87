// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"strings"

	"github.com/qautil/tcmapper/internal/testcase"
)

// MarkdownParser parses Markdown test plans. A heading naming a field
// (## Steps, ## Expected Result, ## Test Level, ...) opens that field; any
// other heading starts a new test case whose title is the default summary.
//
//	# 로그인 성공
//	## Steps
//	1. 로그인 버튼 클릭
//	## Expected Result
//	홈 화면 노출
type MarkdownParser struct{}

func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

func (p *MarkdownParser) Name() string {
	return "markdown"
}

// CanHandle returns true for the "markdown" or "md" format hint, or for
// unhinted content with at least one field heading.
func (p *MarkdownParser) CanHandle(source testcase.Source) bool {
	switch strings.ToLower(source.Format) {
	case "markdown", "md":
		return true
	case "":
	default:
		return false
	}
	for _, line := range strings.Split(string(source.Content), "\n") {
		if title, ok := heading(line); ok && headingField(title) != "" {
			return true
		}
	}
	return false
}

func (p *MarkdownParser) Parse(_ context.Context, source testcase.Source) ([]testcase.TestCase, error) {
	var (
		cases   []testcase.TestCase
		title   string
		field   string
		started bool
		fields  = map[string][]string{}
	)

	flush := func() {
		if !started {
			return
		}
		tc := testcase.TestCase{Index: len(cases) + 1}
		for _, f := range testcase.StandardFields {
			tc.SetField(f, strings.TrimSpace(strings.Join(fields[f], "\n")))
		}
		if tc.Summary == "" {
			tc.SetField(testcase.FieldSummary, title)
		}
		if !tc.IsEmpty() {
			cases = append(cases, tc)
		}
		title, field, started = "", "", false
		fields = map[string][]string{}
	}

	for _, line := range strings.Split(string(source.Content), "\n") {
		text, ok := heading(line)
		if !ok {
			if field != "" {
				fields[field] = append(fields[field], unbullet(line))
			}
			continue
		}
		if f := headingField(text); f != "" {
			field, started = f, true
			continue
		}
		flush()
		title, field, started = text, "", true
	}
	flush()

	return cases, nil
}

// heading returns the text of an ATX heading line.
func heading(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	text := strings.TrimLeft(trimmed, "#")
	if text != "" && text[0] != ' ' && text[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(strings.TrimRight(text, "# ")), true
}

func headingField(text string) string {
	if f := canonicalField(text); f != "" {
		return f
	}
	return labelField(text)
}

// unbullet drops a leading "-", "*" or "+" list marker. Numbered items
// keep their numbers.
func unbullet(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "+ "} {
		if rest, ok := strings.CutPrefix(trimmed, marker); ok {
			return strings.TrimSpace(rest)
		}
	}
	return trimmed
}
