// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/qautil/tcmapper/internal/sheet"
	"github.com/qautil/tcmapper/internal/tcmerge"
)

const sheetName = "Testcases"

var (
	mergeFlags struct {
		output string
	}
	splitFlags struct {
		output string
	}
)

var mergeCmd = &cobra.Command{
	Use:   "merge <sheet>",
	Short: "Merge step and expected-result columns into one row per test case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transformSheet(cmd, args[0], mergeFlags.output, tcmerge.Merge)
	},
}

var splitCmd = &cobra.Command{
	Use:   "split <sheet>",
	Short: "Split combined steps into numbered step columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transformSheet(cmd, args[0], splitFlags.output, tcmerge.Split)
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeFlags.output, "output", "o", "", "Output path, .xlsx or .csv (default CSV on stdout)")
	splitCmd.Flags().StringVarP(&splitFlags.output, "output", "o", "", "Output path, .xlsx or .csv (default CSV on stdout)")
}

func transformSheet(cmd *cobra.Command, path, output string, fn func(sheet.Table) sheet.Table) error {
	t, err := readTable(path)
	if err != nil {
		return err
	}
	return writeTable(cmd, output, sheetName, fn(t))
}
