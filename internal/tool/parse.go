// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qautil/tcmapper/internal/testcase"
)

var formatHints = []string{"text", "markdown", "yaml", "json", "csv", "xlsx", "katalon"}

// MetadataParseTestcase describes the parse_testcase tool.
var MetadataParseTestcase = &mcp.Tool{
	Name: "parse_testcase",
	Description: "Parse test case documentation into structured test cases with Summary, " +
		"Precondition, Steps and Expected Result fields. " +
		"Supported inputs: labelled free text, YAML/JSON, CSV sheets and Katalon scripts carrying " +
		"WebUI.comment metadata blocks. Markup in cells is converted to plain text.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw content of the test case document",
			},
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Format hint. If omitted, auto-detection is used.",
				"enum":        formatHints,
			},
			"source_id": map[string]interface{}{
				"type":        "string",
				"description": "Optional identifier for the document (file name, URL, etc.).",
			},
		},
	},
}

// InputParseTestcase is the input for the ParseTestcase tool.
type InputParseTestcase struct {
	Content  string `json:"content"`
	Format   string `json:"format"`
	SourceID string `json:"source_id"`
}

// OutputParseTestcase is the output for the ParseTestcase tool.
type OutputParseTestcase struct {
	// TestCases holds every non-empty test case found.
	TestCases []testcase.TestCase `json:"test_cases"`
	// ParserUsed is the name of the parser that was selected.
	ParserUsed string `json:"parser_used"`
}

// parseSource runs the parser pipeline over raw tool input.
func (h *Handlers) parseSource(ctx context.Context, content, format, sourceID string) (testcase.RunResult, error) {
	if content == "" {
		return testcase.RunResult{}, fmt.Errorf("content is required")
	}
	if sourceID == "" {
		sourceID = "unknown"
	}
	return h.pipeline.RunWithMeta(ctx, testcase.Source{
		Content: []byte(content),
		Format:  format,
		ID:      sourceID,
	})
}

// ParseTestcase runs the parser pipeline over the provided document.
func (h *Handlers) ParseTestcase(ctx context.Context, _ *mcp.CallToolRequest, input InputParseTestcase) (*mcp.CallToolResult, OutputParseTestcase, error) {
	result, err := h.parseSource(ctx, input.Content, input.Format, input.SourceID)
	if err != nil {
		return nil, OutputParseTestcase{}, err
	}
	h.logger.DebugContext(ctx, "test cases parsed", "parser", result.ParserUsed, "count", len(result.Cases))

	return nil, OutputParseTestcase{
		TestCases:  result.Cases,
		ParserUsed: result.ParserUsed,
	}, nil
}
