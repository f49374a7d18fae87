// SPDX-License-Identifier: Apache-2.0

// Package tool exposes test-case parsing and Katalon script generation as
// MCP tools.
package tool

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qautil/tcmapper/internal/logging"
	"github.com/qautil/tcmapper/internal/mapping"
	"github.com/qautil/tcmapper/internal/script"
	"github.com/qautil/tcmapper/internal/testcase"
	"github.com/qautil/tcmapper/internal/testcase/parsers"
)

// ServerName identifies the MCP server to clients.
const ServerName = "tcmapper"

// Handlers implements the tools over a shared parser pipeline and
// action resolver.
type Handlers struct {
	pipeline  *testcase.Pipeline
	resolver  *mapping.Resolver
	generator *script.Generator
	logger    *slog.Logger
}

// NewHandlers wires the tools to resolver. A nil logger discards output.
func NewHandlers(resolver *mapping.Resolver, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handlers{
		pipeline:  parsers.NewDefaultPipeline(),
		resolver:  resolver,
		generator: script.NewGenerator(resolver, script.WithLogger(logger)),
		logger:    logger,
	}
}

// NewServer registers every tool on a new MCP server.
func NewServer(h *Handlers, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	mcp.AddTool(server, MetadataParseTestcase, h.ParseTestcase)
	mcp.AddTool(server, MetadataGenerateKatalonScript, h.GenerateKatalonScript)
	mcp.AddTool(server, MetadataResolveTestAction, h.ResolveTestAction)
	mcp.AddTool(server, MetadataSplitCombinedSteps, SplitCombinedSteps)
	return server
}
