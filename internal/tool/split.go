// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qautil/tcmapper/internal/textclean"
)

// MetadataSplitCombinedSteps describes the split_combined_steps tool.
var MetadataSplitCombinedSteps = &mcp.Tool{
	Name: "split_combined_steps",
	Description: "Split a numbered step list into the seven step cells of a test case sheet " +
		"(Steps (Step) followed by Step 1 to Step 6). Numbering is stripped, blank lines skipped " +
		"and steps beyond the seventh dropped.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"combined"},
		"properties": map[string]interface{}{
			"combined": map[string]interface{}{
				"type":        "string",
				"description": "Newline-separated steps, e.g. \"1. Open app\\n2. Tap login\"",
			},
		},
	},
}

// InputSplitCombinedSteps is the input for the SplitCombinedSteps tool.
type InputSplitCombinedSteps struct {
	Combined string `json:"combined"`
}

// OutputSplitCombinedSteps is the output for the SplitCombinedSteps tool.
type OutputSplitCombinedSteps struct {
	// Steps always has one entry per step cell; unused cells are empty.
	Steps []string `json:"steps"`
}

// SplitCombinedSteps spreads markup-cleaned steps over the step cells.
func SplitCombinedSteps(_ context.Context, _ *mcp.CallToolRequest, input InputSplitCombinedSteps) (*mcp.CallToolResult, OutputSplitCombinedSteps, error) {
	return nil, OutputSplitCombinedSteps{
		Steps: textclean.SplitCombinedSteps(textclean.Clean(input.Combined)),
	}, nil
}
