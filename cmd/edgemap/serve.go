package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ironsheep/edgemap/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	Long: `Run an MCP (Model Context Protocol) server that exposes the pipeline
as tools over JSON-RPC 2.0 on stdin/stdout. Configure it in an MCP client
such as Claude Desktop. Edge defaults come from the EDGEMAP_* environment.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	slog.Info("serving MCP on stdio", "version", Version, "kernels", cfg.Kernels, "border", cfg.Border)
	return server.New(cfg, slog.Default()).Serve(cmd.InOrStdin(), cmd.OutOrStdout())
}
