// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qautil/tcmapper/internal/sheet"
	"github.com/qautil/tcmapper/internal/testcase"
	"github.com/qautil/tcmapper/internal/testcase/parsers"
)

// readSource loads path ("-" reads stdin) as a pipeline source. The format
// hint comes from the extension unless format is set.
func readSource(cmd *cobra.Command, path, format string) (testcase.Source, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return testcase.Source{}, fmt.Errorf("read %s: %w", path, err)
	}
	if format == "" {
		format = formatFromPath(path)
	}
	return testcase.Source{Content: data, Format: format, ID: path}, nil
}

func formatFromPath(path string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "txt", "text", "md", "markdown", "yaml", "yml", "json", "csv", "xlsx", "xls", "groovy":
		return ext
	}
	return ""
}

// parseCases runs the default pipeline over path.
func parseCases(ctx context.Context, cmd *cobra.Command, path, format string) ([]testcase.TestCase, error) {
	src, err := readSource(cmd, path, format)
	if err != nil {
		return nil, err
	}
	cases, err := parsers.NewDefaultPipeline().Run(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cases, nil
}

// readTable loads a CSV or XLSX table.
func readTable(path string) (sheet.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sheet.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	t, err := sheet.Read(data, sheet.DetectFormat(path, data))
	if err != nil {
		return sheet.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// writeTable writes t as XLSX when path ends in .xlsx, otherwise as CSV.
func writeTable(cmd *cobra.Command, path, sheetName string, t sheet.Table) error {
	return writeOutput(cmd, path, func(w io.Writer) error {
		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			return sheet.WriteXLSX(w, sheetName, t)
		}
		return sheet.WriteCSV(w, t)
	})
}

// writeOutput renders into a buffer and writes it to path, or to stdout
// when path is empty or "-". Nothing is written if render fails.
func writeOutput(cmd *cobra.Command, path string, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
