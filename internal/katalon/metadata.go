// SPDX-License-Identifier: Apache-2.0

// Package katalon exports test cases in the shapes Katalon Studio works
// with: metadata workbooks, Groovy test scripts and .tc descriptors.
package katalon

import (
	"strconv"

	"github.com/qautil/tcmapper/internal/sheet"
	"github.com/qautil/tcmapper/internal/testcase"
)

// Sheet names used in exported workbooks.
const (
	MetadataSheet = "Metadata"
	TemplateSheet = "Testcase"
)

// MetadataHeaders are the metadata export columns.
var MetadataHeaders = append([]string{"Index"}, testcase.StandardFields...)

// MetadataTable lays test cases out one per row. List fields keep their
// line breaks inside the cell.
func MetadataTable(cases []testcase.TestCase) sheet.Table {
	t := sheet.Table{Headers: append([]string{}, MetadataHeaders...)}
	for i, tc := range cases {
		index := tc.Index
		if index == 0 {
			index = i + 1
		}
		row := []string{strconv.Itoa(index)}
		for _, f := range testcase.StandardFields {
			row = append(row, tc.Field(f))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// TemplateTable is an empty workbook layout for authoring new test cases.
func TemplateTable() sheet.Table {
	return sheet.Table{Headers: append([]string{}, MetadataHeaders...)}
}
