// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qautil/tcmapper/internal/report"
)

var reportFlags struct {
	json bool
}

var reportCmd = &cobra.Command{
	Use:   "report <report.html>",
	Short: "Summarize a Katalon HTML execution report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportFlags.json, "json", false, "Print the summary as JSON")
}

func runReport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	summary, err := report.Parse(f)
	if err != nil {
		return fmt.Errorf("parse report %s: %w", args[0], err)
	}

	w := cmd.OutOrStdout()
	if reportFlags.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			report.Summary
			Distribution []report.Slice `json:"distribution"`
		}{summary, summary.Distribution()})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range summary.Rows() {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}
