// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qautil/tcmapper/internal/keyword"
	"github.com/qautil/tcmapper/internal/mapping"
	"github.com/qautil/tcmapper/internal/script"
)

// MetadataResolveTestAction describes the resolve_test_action tool.
var MetadataResolveTestAction = &mcp.Tool{
	Name: "resolve_test_action",
	Description: "Map one test step to a Katalon action. The lookup cascade tries the whole text, " +
		"keyword pairs and triples, single keywords, alternative mapping tables and synonyms " +
		"before falling back to local rules, so an action is always returned. " +
		"The result names the tier that produced it and the Groovy line it renders to.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "The step text, e.g. \"로그인 버튼 클릭\"",
			},
			"section": map[string]interface{}{
				"type":        "string",
				"description": "Section the step belongs to, used to name keyword-less objects. Defaults to Steps.",
			},
		},
	},
}

// InputResolveTestAction is the input for the ResolveTestAction tool.
type InputResolveTestAction struct {
	Text    string `json:"text"`
	Section string `json:"section,omitempty"`
}

// OutputResolveTestAction is the output for the ResolveTestAction tool.
type OutputResolveTestAction struct {
	Result     mapping.Result `json:"result"`
	Keywords   []string       `json:"keywords"`
	ObjectPath string         `json:"object_path"`
	Code       string         `json:"code"`
}

// ResolveTestAction resolves a single step.
func (h *Handlers) ResolveTestAction(ctx context.Context, _ *mcp.CallToolRequest, input InputResolveTestAction) (*mcp.CallToolResult, OutputResolveTestAction, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, OutputResolveTestAction{}, fmt.Errorf("text is required")
	}
	section := input.Section
	if section == "" {
		section = script.SectionSteps
	}

	res, err := h.resolver.Resolve(ctx, text)
	if err != nil {
		return nil, OutputResolveTestAction{}, err
	}
	keywords := keyword.Extract(text)
	if keywords == nil {
		keywords = []string{}
	}
	objectPath := script.ObjectPath(text, section, 1)
	return nil, OutputResolveTestAction{
		Result:     res,
		Keywords:   keywords,
		ObjectPath: objectPath,
		Code:       script.Synthesize(res, objectPath, text),
	}, nil
}
