// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/qautil/tcmapper/internal/katalon"
	"github.com/qautil/tcmapper/internal/logging"
	"github.com/qautil/tcmapper/internal/script"
	"github.com/qautil/tcmapper/internal/session"
	"github.com/qautil/tcmapper/internal/testcase/parsers"
)

var generateFlags struct {
	output string
	format string
	glob   string
	dir    string
	sheet  string
	outDir string
}

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate a Katalon Groovy script from a test case",
	Long: `Generate parses one test case and writes the assembled script.

With --glob every matching file is parsed and one script is written per
test case into --out-dir. With --sheet every row of a CSV or XLSX sheet is
a test case.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateFlags.output, "output", "o", "", "Script output path (default stdout)")
	f.StringVar(&generateFlags.format, "format", "", "Input format hint: text, yaml, json, csv, xlsx, katalon")
	f.StringVar(&generateFlags.glob, "glob", "", "Doublestar pattern of test case files, relative to --dir")
	f.StringVar(&generateFlags.dir, "dir", ".", "Base directory for --glob")
	f.StringVar(&generateFlags.sheet, "sheet", "", "CSV or XLSX sheet with one test case per row")
	f.StringVar(&generateFlags.outDir, "out-dir", "scripts", "Output directory for --glob and --sheet")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	resolver, closeStore, err := newResolver(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	generator := script.NewGenerator(resolver, script.WithLogger(logging.New("script")))

	switch {
	case generateFlags.glob != "":
		files, err := doublestar.Glob(os.DirFS(generateFlags.dir), generateFlags.glob)
		if err != nil {
			return fmt.Errorf("glob %q: %w", generateFlags.glob, err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no files match %q", generateFlags.glob)
		}
		for _, name := range files {
			if err := generateAll(cmd, generator, filepath.Join(generateFlags.dir, name)); err != nil {
				return err
			}
		}
		return nil
	case generateFlags.sheet != "":
		return generateAll(cmd, generator, generateFlags.sheet)
	case len(args) == 1:
		return generateOne(cmd, generator, args[0])
	default:
		return fmt.Errorf("a file, --glob or --sheet is required")
	}
}

// generateOne runs the extract-then-generate session for the first test
// case in path.
func generateOne(cmd *cobra.Command, generator *script.Generator, path string) error {
	ctx := cmd.Context()
	src, err := readSource(cmd, path, generateFlags.format)
	if err != nil {
		return err
	}

	sess := session.New(parsers.NewDefaultPipeline(), generator,
		session.WithNotifier(session.LogNotifier{Logger: logging.New("session")}))
	if _, err := sess.Extract(ctx, src); err != nil {
		return err
	}
	out, err := sess.Generate(ctx)
	if err != nil {
		return err
	}
	return writeOutput(cmd, generateFlags.output, func(w io.Writer) error {
		_, err := io.WriteString(w, out.Text)
		return err
	})
}

// generateAll writes one script per test case in path.
func generateAll(cmd *cobra.Command, generator *script.Generator, path string) error {
	ctx := cmd.Context()
	cases, err := parseCases(ctx, cmd, path, generateFlags.format)
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i, tc := range cases {
		out, err := generator.Generate(ctx, tc)
		if err != nil {
			return fmt.Errorf("%s case %d: %w", path, i+1, err)
		}
		name := katalon.NewScaffold(tc, i+1, "").Name
		target := filepath.Join(generateFlags.outDir, katalon.SanitizeFileName(stem)+"_"+name+".groovy")
		err = writeOutput(cmd, target, func(w io.Writer) error {
			_, err := io.WriteString(w, out.Text)
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", target)
	}
	return nil
}
