// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/qautil/tcmapper/internal/katalon"
)

var scaffoldFlags struct {
	output string
	format string
	kind   string
}

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <file>",
	Short: "Zip Katalon script stubs or .tc descriptors for every test case",
	Args:  cobra.ExactArgs(1),
	RunE:  runScaffold,
}

func init() {
	f := scaffoldCmd.Flags()
	f.StringVarP(&scaffoldFlags.output, "output", "o", "", "Zip output path (required)")
	f.StringVar(&scaffoldFlags.format, "format", "", "Input format hint")
	f.StringVar(&scaffoldFlags.kind, "kind", katalon.BundleGroovy, "Bundle kind: groovy or tc")

	_ = scaffoldCmd.MarkFlagRequired("output")
}

func runScaffold(cmd *cobra.Command, args []string) error {
	cases, err := parseCases(cmd.Context(), cmd, args[0], scaffoldFlags.format)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return fmt.Errorf("%s: no test cases found", args[0])
	}
	scaffolds := katalon.Scaffolds(cases)
	err = writeOutput(cmd, scaffoldFlags.output, func(w io.Writer) error {
		return katalon.WriteBundle(w, scaffolds, scaffoldFlags.kind)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d %s scaffold(s) to %s\n", len(scaffolds), scaffoldFlags.kind, scaffoldFlags.output)
	return nil
}
