// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/qautil/tcmapper/internal/sheet"
	"github.com/qautil/tcmapper/internal/testcase"
)

// YAMLParser parses structured YAML or JSON test cases. A document may be a
// single case, a list of cases or a mapping with a "testcases" list. Keys are
// matched loosely, so "expected_result" and "Expected Result" are the same.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Name() string {
	return "yaml"
}

var yamlMarker = regexp.MustCompile(`(?m)^(?:testcases|expected_result)\s*:`)

func (p *YAMLParser) CanHandle(source testcase.Source) bool {
	switch strings.ToLower(source.Format) {
	case "yaml", "yml", "json":
		return true
	case "":
	default:
		return false
	}
	content := strings.TrimSpace(string(source.Content))
	for _, prefix := range []string{"{", "[", "---"} {
		if strings.HasPrefix(content, prefix) {
			return true
		}
	}
	return yamlMarker.MatchString(content)
}

func (p *YAMLParser) Parse(_ context.Context, source testcase.Source) ([]testcase.TestCase, error) {
	var doc interface{}
	if err := yaml.Unmarshal(source.Content, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML/JSON: %w", err)
	}

	var items []interface{}
	switch v := doc.(type) {
	case []interface{}:
		items = v
	case map[string]interface{}:
		if list, ok := lookup(v, "testcases").([]interface{}); ok {
			items = list
		} else {
			items = []interface{}{v}
		}
	default:
		return nil, fmt.Errorf("expected a mapping or a list of test cases, got %T", doc)
	}

	cases := make([]testcase.TestCase, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("test case %d: expected a mapping, got %T", i+1, item)
		}
		tc := testcase.TestCase{Index: i + 1}
		for _, field := range testcase.StandardFields {
			tc.SetField(field, render(lookup(m, field)))
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

// lookup finds a key by its normalized form.
func lookup(m map[string]interface{}, key string) interface{} {
	want := sheet.NormalizeHeader(key)
	for k, v := range m {
		if sheet.NormalizeHeader(k) == want {
			return v
		}
	}
	return nil
}

// render turns a scalar or a list into newline-separated text.
func render(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []interface{}:
		lines := make([]string, 0, len(val))
		for _, item := range val {
			lines = append(lines, render(item))
		}
		return strings.Join(lines, "\n")
	default:
		return fmt.Sprint(val)
	}
}
