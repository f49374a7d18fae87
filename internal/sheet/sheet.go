// SPDX-License-Identifier: Apache-2.0

// Package sheet reads and writes the header-plus-rows tables that test
// cases travel in, as CSV or XLSX.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// Formats understood by Read.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ErrNoHeader is returned when a table has no header row.
var ErrNoHeader = errors.New("sheet has no header row")

var zipMagic = []byte("PK\x03\x04")

// Table is a header row plus data rows. Every row has len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Index returns the column whose normalized header equals one of names,
// trying names in order, or -1.
func (t Table) Index(names ...string) int {
	for _, name := range names {
		want := NormalizeHeader(name)
		for i, h := range t.Headers {
			if NormalizeHeader(h) == want {
				return i
			}
		}
	}
	return -1
}

// Cell returns row[col], or "" when col is out of range.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// NormalizeHeader lowercases h and drops everything but letters and digits,
// so "Expected Result", "expected_result" and "ExpectedResult" compare equal.
func NormalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DetectFormat guesses the format from a file name, then from content.
func DetectFormat(name string, content []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".csv":
		return FormatCSV
	}
	if bytes.HasPrefix(content, zipMagic) {
		return FormatXLSX
	}
	return FormatCSV
}

// Read decodes content in the given format.
func Read(content []byte, format string) (Table, error) {
	switch format {
	case FormatXLSX:
		return ReadXLSX(bytes.NewReader(content))
	case FormatCSV, "":
		return ReadCSV(bytes.NewReader(content))
	}
	return Table{}, fmt.Errorf("unsupported sheet format %q", format)
}

// ReadCSV reads a CSV table. A UTF-8 BOM is stripped and blank rows skipped.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	return fromRecords(records)
}

// ReadXLSX reads the first worksheet of a workbook.
func ReadXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, ErrNoHeader
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRecords(rows)
}

func fromRecords(records [][]string) (Table, error) {
	var t Table
	for _, rec := range records {
		if len(t.Headers) == 0 {
			if isBlank(rec) {
				continue
			}
			headers := make([]string, len(rec))
			for i, h := range rec {
				headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
			}
			t.Headers = headers
			continue
		}
		if isBlank(rec) {
			continue
		}
		t.Rows = append(t.Rows, pad(rec, len(t.Headers)))
	}
	if len(t.Headers) == 0 {
		return Table{}, ErrNoHeader
	}
	return t, nil
}

func pad(rec []string, n int) []string {
	row := make([]string, n)
	copy(row, rec)
	return row
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteCSV encodes t as CSV.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX encodes t as a single-sheet workbook named sheetName.
func WriteXLSX(w io.Writer, sheetName string, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", cells(t.Headers)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, cells(row)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func cells(row []string) *[]interface{} {
	out := make([]interface{}, len(row))
	for i, c := range row {
		out[i] = c
	}
	return &out
}
