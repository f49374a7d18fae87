// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qautil/tcmapper/internal/keyword"
	"github.com/qautil/tcmapper/internal/script"
)

var resolveFlags struct {
	section string
	json    bool
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <step text>...",
	Short: "Resolve one step to a Katalon action",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.StringVar(&resolveFlags.section, "section", script.SectionSteps, "Section used to name the test object")
	f.BoolVar(&resolveFlags.json, "json", false, "Print the result as JSON")
}

type resolveOutput struct {
	Text       string   `json:"text"`
	Found      bool     `json:"found"`
	Action     string   `json:"action"`
	Type       string   `json:"type"`
	Source     string   `json:"source"`
	Key        string   `json:"key,omitempty"`
	Keywords   []string `json:"keywords"`
	ObjectPath string   `json:"object_path"`
	Code       string   `json:"code"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	resolver, closeStore, err := newResolver(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("step text is required")
	}
	res, err := resolver.Resolve(cmd.Context(), text)
	if err != nil {
		return err
	}
	objectPath := script.ObjectPath(text, resolveFlags.section, 1)
	out := resolveOutput{
		Text:       text,
		Found:      res.Found,
		Action:     res.Action,
		Type:       res.Type,
		Source:     string(res.Source),
		Key:        res.Key,
		Keywords:   keyword.Extract(text),
		ObjectPath: objectPath,
		Code:       script.Synthesize(res, objectPath, text),
	}

	w := cmd.OutOrStdout()
	if resolveFlags.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Text:\t%s\n", out.Text)
	fmt.Fprintf(tw, "Action:\t%s\n", out.Action)
	fmt.Fprintf(tw, "Type:\t%s\n", out.Type)
	fmt.Fprintf(tw, "Source:\t%s\n", out.Source)
	if out.Key != "" {
		fmt.Fprintf(tw, "Key:\t%s\n", out.Key)
	}
	fmt.Fprintf(tw, "Keywords:\t%s\n", strings.Join(out.Keywords, ", "))
	fmt.Fprintf(tw, "Object:\t%s\n", out.ObjectPath)
	fmt.Fprintf(tw, "Code:\t%s\n", out.Code)
	return tw.Flush()
}
