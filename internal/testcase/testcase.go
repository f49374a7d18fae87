// SPDX-License-Identifier: Apache-2.0

// Package testcase defines the test-case record shared by the parsers,
// the script generator and the Katalon exporters.
package testcase

import (
	"context"
	"errors"
	"strings"

	"github.com/qautil/tcmapper/internal/textclean"
)

// Standard metadata fields, in export order.
const (
	FieldTestLevel      = "Test Level"
	FieldMainCategory   = "Main Category"
	FieldSubCategory    = "Sub Category"
	FieldDetailCategory = "Detail Category"
	FieldSummary        = "Summary"
	FieldPrecondition   = "Precondition"
	FieldSteps          = "Steps"
	FieldExpectedResult = "Expected Result"
)

var StandardFields = []string{
	FieldTestLevel,
	FieldMainCategory,
	FieldSubCategory,
	FieldDetailCategory,
	FieldSummary,
	FieldPrecondition,
	FieldSteps,
	FieldExpectedResult,
}

// TestCase is one parsed test case. Precondition and Steps hold one
// fragment per line.
type TestCase struct {
	Index          int      `json:"index,omitempty" yaml:"index,omitempty"`
	TestLevel      string   `json:"test_level,omitempty" yaml:"test_level,omitempty"`
	MainCategory   string   `json:"main_category,omitempty" yaml:"main_category,omitempty"`
	SubCategory    string   `json:"sub_category,omitempty" yaml:"sub_category,omitempty"`
	DetailCategory string   `json:"detail_category,omitempty" yaml:"detail_category,omitempty"`
	Summary        string   `json:"summary" yaml:"summary"`
	Precondition   []string `json:"precondition" yaml:"precondition"`
	Steps          []string `json:"steps" yaml:"steps"`
	ExpectedResult string   `json:"expected_result" yaml:"expected_result"`
}

// IsEmpty reports whether no field carries content.
func (tc TestCase) IsEmpty() bool {
	for _, f := range StandardFields {
		if strings.TrimSpace(tc.Field(f)) != "" {
			return false
		}
	}
	return true
}

// Field returns a standard field as text; list fields are newline-joined.
func (tc TestCase) Field(name string) string {
	switch name {
	case FieldTestLevel:
		return tc.TestLevel
	case FieldMainCategory:
		return tc.MainCategory
	case FieldSubCategory:
		return tc.SubCategory
	case FieldDetailCategory:
		return tc.DetailCategory
	case FieldSummary:
		return tc.Summary
	case FieldPrecondition:
		return strings.Join(tc.Precondition, "\n")
	case FieldSteps:
		return strings.Join(tc.Steps, "\n")
	case FieldExpectedResult:
		return tc.ExpectedResult
	}
	return ""
}

// SetField stores value into a standard field. Markup is cleaned and list
// fields are split into lines. Unknown names are ignored.
func (tc *TestCase) SetField(name, value string) {
	switch name {
	case FieldTestLevel:
		tc.TestLevel = textclean.Clean(value)
	case FieldMainCategory:
		tc.MainCategory = textclean.Clean(value)
	case FieldSubCategory:
		tc.SubCategory = textclean.Clean(value)
	case FieldDetailCategory:
		tc.DetailCategory = textclean.Clean(value)
	case FieldSummary:
		tc.Summary = textclean.Clean(value)
	case FieldPrecondition:
		tc.Precondition = textclean.Lines(value)
	case FieldSteps:
		tc.Steps = textclean.Lines(value)
	case FieldExpectedResult:
		tc.ExpectedResult = textclean.Clean(value)
	}
}

// Source describes the raw input to the parsing pipeline.
type Source struct {
	// Content is the raw document content.
	Content []byte
	// Format is an optional hint such as "text", "yaml", "csv" or "xlsx".
	Format string
	ID     string
}

type Parser interface {
	CanHandle(source Source) bool
	Parse(ctx context.Context, source Source) ([]TestCase, error)
	Name() string
}

// ErrUnsupportedFormat is returned when no registered parser accepts a source.
var ErrUnsupportedFormat = errors.New("unsupported test case format")
