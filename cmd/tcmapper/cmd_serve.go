// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/qautil/tcmapper/internal/api"
	"github.com/qautil/tcmapper/internal/logging"
	"github.com/qautil/tcmapper/internal/tool"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the test case tools over MCP or HTTP",
}

var serveMCPCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing parse_testcase,
generate_katalon_script, resolve_test_action and split_combined_steps.`,
	Args: cobra.NoArgs,
	RunE: runServeMCP,
}

var serveHTTPCmd = &cobra.Command{
	Use:   "http",
	Short: "Start the JSON HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServeHTTP,
}

func init() {
	serveHTTPCmd.Flags().StringVar(&serveFlags.addr, "addr", ":8080", "Listen address")

	serveCmd.AddCommand(serveMCPCmd)
	serveCmd.AddCommand(serveHTTPCmd)
}

func runServeMCP(cmd *cobra.Command, _ []string) error {
	resolver, closeStore, err := newResolver(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	logger := logging.New("mcp")
	srv := tool.NewServer(tool.NewHandlers(resolver, logger), version)

	logger.Info("starting tcmapper MCP server over stdio", "backend", cfg.ResolvedBackend())
	return srv.Run(cmd.Context(), &sdkmcp.StdioTransport{})
}

func runServeHTTP(cmd *cobra.Command, _ []string) error {
	resolver, closeStore, err := newResolver(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New("api")
	router := api.NewRouter(tool.NewHandlers(resolver, logger), logger)
	return api.ListenAndServe(ctx, serveFlags.addr, router, logger)
}
