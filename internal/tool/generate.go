// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qautil/tcmapper/internal/script"
	"github.com/qautil/tcmapper/internal/testcase"
)

// MetadataGenerateKatalonScript describes the generate_katalon_script tool.
var MetadataGenerateKatalonScript = &mcp.Tool{
	Name: "generate_katalon_script",
	Description: "Generate a Katalon Groovy test method from a test case. " +
		"Either pass a raw document in content (the first test case found is used) or the " +
		"summary, precondition, steps and expected_result fields directly. Every fragment is " +
		"mapped to one Katalon action through the keyword mapping store, falling back to local rules.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw test case document to parse first",
			},
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Format hint for content",
				"enum":        formatHints,
			},
			"summary": map[string]interface{}{
				"type":        "string",
				"description": "Test case summary",
			},
			"precondition": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Precondition fragments, one per item",
			},
			"steps": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Step fragments, one per item",
			},
			"expected_result": map[string]interface{}{
				"type":        "string",
				"description": "Expected result",
			},
		},
	},
}

// InputGenerateKatalonScript is the input for the GenerateKatalonScript tool.
type InputGenerateKatalonScript struct {
	Content        string   `json:"content,omitempty"`
	Format         string   `json:"format,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	Precondition   []string `json:"precondition,omitempty"`
	Steps          []string `json:"steps,omitempty"`
	ExpectedResult string   `json:"expected_result,omitempty"`
}

// OutputGenerateKatalonScript is the output for the GenerateKatalonScript tool.
type OutputGenerateKatalonScript struct {
	// Script is the generated Groovy test method.
	Script string `json:"script"`
	// Lines traces the action chosen for every fragment.
	Lines []script.Line `json:"lines"`
	// GeneratedAt is the RFC 3339 generation time.
	GeneratedAt string `json:"generated_at"`
}

func (in InputGenerateKatalonScript) testCase() testcase.TestCase {
	return testcase.TestCase{
		Summary:        strings.TrimSpace(in.Summary),
		Precondition:   in.Precondition,
		Steps:          in.Steps,
		ExpectedResult: strings.TrimSpace(in.ExpectedResult),
	}
}

// GenerateKatalonScript maps a test case to a Katalon script.
func (h *Handlers) GenerateKatalonScript(ctx context.Context, _ *mcp.CallToolRequest, input InputGenerateKatalonScript) (*mcp.CallToolResult, OutputGenerateKatalonScript, error) {
	tc := input.testCase()
	if input.Content != "" {
		result, err := h.parseSource(ctx, input.Content, input.Format, "")
		if err != nil {
			return nil, OutputGenerateKatalonScript{}, err
		}
		if len(result.Cases) == 0 {
			return nil, OutputGenerateKatalonScript{}, fmt.Errorf("no test case found in content")
		}
		tc = result.Cases[0]
	}
	if tc.IsEmpty() {
		return nil, OutputGenerateKatalonScript{}, fmt.Errorf("content or at least one test case field is required")
	}

	out, err := h.generator.Generate(ctx, tc)
	if err != nil {
		return nil, OutputGenerateKatalonScript{}, err
	}
	lines := out.Lines
	if lines == nil {
		lines = []script.Line{}
	}
	return nil, OutputGenerateKatalonScript{
		Script:      out.Text,
		Lines:       lines,
		GeneratedAt: out.GeneratedAt.Format(time.RFC3339),
	}, nil
}
