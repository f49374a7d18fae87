// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"regexp"
	"strings"

	"github.com/qautil/tcmapper/internal/testcase"
	"github.com/qautil/tcmapper/internal/textclean"
)

// TextParser parses labelled free text such as
//
//	Summary: 로그인 성공
//	Precondition:
//	1. 앱 설치
//	Steps:
//	1. 로그인 버튼 클릭
//	Expected Result: 홈 화면 노출
//
// A label may carry its first value after the colon; following lines belong
// to the most recent label until the next one.
type TextParser struct{}

func NewTextParser() *TextParser {
	return &TextParser{}
}

func (p *TextParser) Name() string {
	return "text"
}

var labelPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z _-]*$`)

func (p *TextParser) CanHandle(source testcase.Source) bool {
	switch strings.ToLower(source.Format) {
	case "text", "txt", "plain":
		return true
	case "":
	default:
		return false
	}
	for _, line := range strings.Split(string(source.Content), "\n") {
		if _, _, ok := splitLabel(line); ok {
			return true
		}
	}
	return false
}

func (p *TextParser) Parse(_ context.Context, source testcase.Source) ([]testcase.TestCase, error) {
	var (
		tc       = testcase.TestCase{Index: 1}
		current  string
		summary  []string
		expected []string
	)

	appendTo := func(field, value string) {
		if value == "" {
			return
		}
		switch field {
		case testcase.FieldSummary:
			summary = append(summary, value)
		case testcase.FieldPrecondition:
			tc.Precondition = append(tc.Precondition, value)
		case testcase.FieldSteps:
			tc.Steps = append(tc.Steps, value)
		case testcase.FieldExpectedResult:
			expected = append(expected, value)
		}
	}

	for _, line := range textclean.Lines(string(source.Content)) {
		if field, rest, ok := splitLabel(line); ok {
			current = field
			appendTo(current, rest)
			continue
		}
		appendTo(current, line)
	}

	tc.Summary = strings.Join(summary, "\n")
	tc.ExpectedResult = strings.Join(expected, "\n")
	return []testcase.TestCase{tc}, nil
}

// splitLabel reports whether line opens a section and returns the section's
// field and any value written after the colon.
func splitLabel(line string) (field, rest string, ok bool) {
	head, rest, _ := strings.Cut(strings.TrimSpace(line), ":")
	field = labelField(head)
	if field == "" {
		return "", "", false
	}
	return field, strings.TrimSpace(rest), true
}

// labelField maps a short English label to the field it introduces, or "".
func labelField(label string) string {
	label = strings.TrimSpace(label)
	if !labelPattern.MatchString(label) || len(strings.Fields(label)) > 3 {
		return ""
	}

	label = strings.ToLower(label)
	switch {
	case strings.Contains(label, "expected"):
		return testcase.FieldExpectedResult
	case strings.Contains(label, "precondition"):
		return testcase.FieldPrecondition
	case strings.Contains(label, "step"):
		return testcase.FieldSteps
	case strings.Contains(label, "summary"):
		return testcase.FieldSummary
	}
	return ""
}
