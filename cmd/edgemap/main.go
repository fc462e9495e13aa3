package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/edgemap/internal/config"
	"github.com/ironsheep/edgemap/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// cfg is resolved in setup and shared by the subcommands.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "edgemap",
	Short: "Convert JPEG images to plain-text color, grayscale and Sobel edge rasters",
	Long: `edgemap decodes a JPEG, reduces it to grayscale, runs a Sobel edge
detector and writes any of the three stages as a plain-text PPM (P3) or
PGM (P2) file. It can also run as an MCP server over stdio.

Environment variables:
  EDGEMAP_LOG_LEVEL   debug, info, warn or error (default warn)
  EDGEMAP_LOG_JSON    log as JSON when true
  EDGEMAP_BORDER      edge map border value, 0-255 (default 0)
  EDGEMAP_KERNELS     source or standard (default source)
  EDGEMAP_MAX_DIM     downscale images whose longer side exceeds this`,
	Version:           fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "verbosity of logging output (overrides "+config.EnvLogLevel+")")
	rootCmd.PersistentFlags().Bool("log-json", false, "change logging format to JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// setup resolves configuration from the environment and flags, then
// installs the default logger. Logs go to stderr; stdout belongs to the
// command output or the MCP protocol.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.FromEnv()
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		cfg.LogJSON, _ = flags.GetBool("log-json")
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	server.Version = Version
	slog.Debug("edgemap starting", "version", Version, "built", BuildTime, "commit", GitCommit)
	return nil
}
