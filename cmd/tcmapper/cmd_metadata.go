// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qautil/tcmapper/internal/katalon"
)

var metadataFlags struct {
	output string
	format string
}

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Export test case metadata sheets",
}

var metadataExtractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Write one metadata row per test case",
	Long:  "Extract writes a sheet with one row per test case. Paths ending in .xlsx\nget a workbook, anything else gets CSV.",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetadataExtract,
}

var metadataTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write an empty test case template sheet",
	Args:  cobra.NoArgs,
	RunE:  runMetadataTemplate,
}

func init() {
	metadataCmd.PersistentFlags().StringVarP(&metadataFlags.output, "output", "o", "", "Output path, .xlsx or .csv (default CSV on stdout)")
	metadataExtractCmd.Flags().StringVar(&metadataFlags.format, "format", "", "Input format hint")

	metadataCmd.AddCommand(metadataExtractCmd)
	metadataCmd.AddCommand(metadataTemplateCmd)
}

func runMetadataExtract(cmd *cobra.Command, args []string) error {
	cases, err := parseCases(cmd.Context(), cmd, args[0], metadataFlags.format)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return fmt.Errorf("%s: no test cases found", args[0])
	}
	return writeTable(cmd, metadataFlags.output, katalon.MetadataSheet, katalon.MetadataTable(cases))
}

func runMetadataTemplate(cmd *cobra.Command, _ []string) error {
	return writeTable(cmd, metadataFlags.output, katalon.TemplateSheet, katalon.TemplateTable())
}
