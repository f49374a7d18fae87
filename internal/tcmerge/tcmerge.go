// SPDX-License-Identifier: Apache-2.0

// Package tcmerge converts between step-per-column test-case sheets and
// sheets with a single numbered "Combined Steps" column.
package tcmerge

import (
	"fmt"
	"strings"

	"github.com/qautil/tcmapper/internal/sheet"
	"github.com/qautil/tcmapper/internal/textclean"
)

// StepColumns is the number of "Step N" columns beside the lead step.
const StepColumns = textclean.StepSlots - 1

// MergedHeaders are the columns Merge produces.
var MergedHeaders = []string{
	"Folder", "Main Category", "Sub Category", "Detail Category",
	"TC Summary", "Precondition", "Test Level", "Expected Result", "Combined Steps",
}

// SplitHeaders are the columns Split produces.
var SplitHeaders = append(append([]string{}, MergedHeaders[:8]...),
	"Steps (Step)", "Step 1", "Step 2", "Step 3", "Step 4", "Step 5", "Step 6")

// columns resolves the input columns both directions need.
type columns struct {
	folder       int
	main         int
	sub          int
	detail       int
	summary      int
	precondition int
	level        int
	expected     int
	leadStep     int
	combined     int
	steps        [StepColumns]int
}

func locate(t sheet.Table) columns {
	c := columns{
		folder:       t.Index("Folder"),
		main:         t.Index("Main Category"),
		sub:          t.Index("Sub Category"),
		detail:       t.Index("Detail Category"),
		summary:      t.Index("TC Summary", "Summary"),
		precondition: t.Index("Precondition"),
		level:        t.Index("Test Level"),
		expected:     t.Index("Expected Result (Expected Result)", "Expected Result", "Expected"),
		leadStep:     t.Index("Steps (Step)"),
		combined:     t.Index("Combined Steps"),
	}
	if c.summary < 0 {
		c.summary = findColumn(t, func(h string) bool { return strings.Contains(h, "summary") })
	}
	if c.expected < 0 {
		c.expected = findColumn(t, func(h string) bool { return strings.Contains(h, "expectedresult") })
	}
	for i := range c.steps {
		n := i + 1
		c.steps[i] = t.Index(fmt.Sprintf("Step %d (Step %d)", n, n), fmt.Sprintf("Step %d", n))
	}
	return c
}

func findColumn(t sheet.Table, match func(normalized string) bool) int {
	for i, h := range t.Headers {
		if match(sheet.NormalizeHeader(h)) {
			return i
		}
	}
	return -1
}

func cell(row []string, col int) string {
	return textclean.Clean(sheet.Cell(row, col))
}

// CombineSteps numbers the lead step and Step 1..6 of a row into one list,
// skipping empty cells.
func CombineSteps(t sheet.Table, row []string) string {
	return locate(t).combine(row)
}

func (c columns) combine(row []string) string {
	var lines []string
	add := func(col int) {
		if v := strings.TrimSpace(cell(row, col)); v != "" {
			lines = append(lines, fmt.Sprintf("%d. %s", len(lines)+1, v))
		}
	}
	add(c.leadStep)
	for _, col := range c.steps {
		add(col)
	}
	return strings.Join(lines, "\n")
}

// Merge folds step columns into a numbered "Combined Steps" column and
// numbers the expected result.
func Merge(t sheet.Table) sheet.Table {
	c := locate(t)
	out := sheet.Table{Headers: append([]string{}, MergedHeaders...)}

	for _, row := range t.Rows {
		out.Rows = append(out.Rows, []string{
			cell(row, c.folder),
			cell(row, c.main),
			cell(row, c.sub),
			cell(row, c.detail),
			cell(row, c.summary),
			cell(row, c.precondition),
			cell(row, c.level),
			textclean.AddNumbering(cell(row, c.expected)),
			c.combine(row),
		})
	}
	return out
}

// Split spreads a combined step list back over the lead step and Step 1..6.
// Sheets without a combined column are combined from their step columns first.
func Split(t sheet.Table) sheet.Table {
	c := locate(t)
	if c.combined < 0 {
		c.combined = findColumn(t, func(h string) bool { return h == "steps" })
	}
	out := sheet.Table{Headers: append([]string{}, SplitHeaders...)}

	for _, row := range t.Rows {
		combined := cell(row, c.combined)
		if strings.TrimSpace(combined) == "" {
			combined = c.combine(row)
		}
		steps := textclean.SplitCombinedSteps(combined)

		split := []string{
			cell(row, c.folder),
			cell(row, c.main),
			cell(row, c.sub),
			cell(row, c.detail),
			cell(row, c.summary),
			cell(row, c.precondition),
			cell(row, c.level),
			cell(row, c.expected),
		}
		out.Rows = append(out.Rows, append(split, steps...))
	}
	return out
}
