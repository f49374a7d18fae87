// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qautil/tcmapper/internal/store"
)

var dictionaryCmd = &cobra.Command{
	Use:   "dictionary",
	Short: "Validate mapping dictionaries and load them into the offline store",
}

var dictionaryValidateCmd = &cobra.Command{
	Use:   "validate <dictionary.yaml>",
	Short: "Check every record against the mapping schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runDictionaryValidate,
}

var dictionaryImportCmd = &cobra.Command{
	Use:   "import <dictionary.yaml>",
	Short: "Replace the offline SQLite store contents with a dictionary",
	Long:  "Import validates the dictionary, then replaces each collection it names\nin the database given by --sqlite or mapping.sqlite_path.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDictionaryImport,
}

func init() {
	dictionaryCmd.AddCommand(dictionaryValidateCmd)
	dictionaryCmd.AddCommand(dictionaryImportCmd)
}

func runDictionaryValidate(cmd *cobra.Command, args []string) error {
	dict, err := store.LoadDictionaryFile(args[0])
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "COLLECTION\tRECORDS\n")
	for _, name := range dict.Names() {
		fmt.Fprintf(tw, "%s\t%d\n", name, len(dict.Collections[name]))
	}
	fmt.Fprintf(tw, "total\t%d\n", dict.Len())
	return tw.Flush()
}

func runDictionaryImport(cmd *cobra.Command, args []string) error {
	if cfg.Mapping.SQLitePath == "" {
		return fmt.Errorf("--sqlite or mapping.sqlite_path is required")
	}
	dict, err := store.LoadDictionaryFile(args[0])
	if err != nil {
		return err
	}

	db, err := store.OpenSQLite(cfg.Mapping.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.Import(cmd.Context(), dict)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s) into %s\n", n, cfg.Mapping.SQLitePath)
	return nil
}
