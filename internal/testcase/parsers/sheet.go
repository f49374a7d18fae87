// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/qautil/tcmapper/internal/sheet"
	"github.com/qautil/tcmapper/internal/tcmerge"
	"github.com/qautil/tcmapper/internal/testcase"
)

// SheetParser reads one test case per row from CSV or XLSX tables with the
// standard headers. Step-per-column sheets are combined first.
type SheetParser struct{}

func NewSheetParser() *SheetParser {
	return &SheetParser{}
}

func (p *SheetParser) Name() string {
	return "sheet"
}

// knownHeaders are normalized headers that mark a CSV as a test-case sheet.
var knownHeaders = map[string]bool{
	"summary":        true,
	"tcsummary":      true,
	"steps":          true,
	"stepsstep":      true,
	"combinedsteps":  true,
	"expectedresult": true,
}

func (p *SheetParser) CanHandle(source testcase.Source) bool {
	switch strings.ToLower(source.Format) {
	case sheet.FormatCSV, sheet.FormatXLSX, "xls":
		return true
	case "":
	default:
		return false
	}
	if bytes.HasPrefix(source.Content, []byte("PK\x03\x04")) {
		return true
	}
	first, _, _ := strings.Cut(string(source.Content), "\n")
	if !strings.Contains(first, ",") {
		return false
	}
	t, err := sheet.ReadCSV(strings.NewReader(first))
	if err != nil {
		return false
	}
	for _, h := range t.Headers {
		if knownHeaders[sheet.NormalizeHeader(h)] {
			return true
		}
	}
	return false
}

func (p *SheetParser) Parse(ctx context.Context, source testcase.Source) ([]testcase.TestCase, error) {
	format := strings.ToLower(source.Format)
	if format != sheet.FormatCSV && format != sheet.FormatXLSX {
		format = sheet.DetectFormat(source.ID, source.Content)
	}
	t, err := sheet.Read(source.Content, format)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	cols := map[string]int{
		testcase.FieldTestLevel:      t.Index("Test Level"),
		testcase.FieldMainCategory:   t.Index("Main Category"),
		testcase.FieldSubCategory:    t.Index("Sub Category"),
		testcase.FieldDetailCategory: t.Index("Detail Category"),
		testcase.FieldSummary:        t.Index("Summary", "TC Summary", "Name"),
		testcase.FieldPrecondition:   t.Index("Precondition"),
		testcase.FieldSteps:          t.Index("Steps", "Combined Steps"),
		testcase.FieldExpectedResult: t.Index("Expected Result", "Expected Result (Expected Result)", "Expected"),
	}

	cases := make([]testcase.TestCase, 0, len(t.Rows))
	for i, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tc := testcase.TestCase{Index: i + 1}
		for _, field := range testcase.StandardFields {
			tc.SetField(field, sheet.Cell(row, cols[field]))
		}
		if len(tc.Steps) == 0 {
			tc.SetField(testcase.FieldSteps, tcmerge.CombineSteps(t, row))
		}
		cases = append(cases, tc)
	}
	return cases, nil
}
