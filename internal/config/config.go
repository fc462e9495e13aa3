// Package config collects runtime settings shared by the CLI and the MCP
// server. Defaults come from EDGEMAP_* environment variables; command-line
// flags override them.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/edgemap/internal/raster"
)

// Environment variable names.
const (
	EnvLogLevel = "EDGEMAP_LOG_LEVEL"
	EnvLogJSON  = "EDGEMAP_LOG_JSON"
	EnvBorder   = "EDGEMAP_BORDER"
	EnvKernels  = "EDGEMAP_KERNELS"
	EnvMaxDim   = "EDGEMAP_MAX_DIM"
)

// Config holds resolved settings.
type Config struct {
	LogLevel string
	LogJSON  bool

	// Border is the sentinel written to uncomputed edge-map pixels.
	Border uint8

	// Kernels names the Sobel kernel pair ("source" or "standard").
	Kernels string

	// MaxDimension caps the longer side of decoded images; 0 disables it.
	MaxDimension int
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Kernels:  raster.KernelsSource.Name,
	}
}

// FromEnv returns Default overlaid with any EDGEMAP_* variables that are set.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogJSON); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogJSON, err)
		}
		cfg.LogJSON = b
	}
	if v, ok := lookup(EnvBorder); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvBorder, err)
		}
		cfg.Border = uint8(n)
	}
	if v, ok := lookup(EnvKernels); ok && v != "" {
		cfg.Kernels = strings.ToLower(v)
	}
	if v, ok := lookup(EnvMaxDim); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("%s: invalid value %q", EnvMaxDim, v)
		}
		cfg.MaxDimension = n
	}

	return cfg, cfg.Validate()
}

// Validate checks fields that can be wrong after flag parsing.
func (c Config) Validate() error {
	if _, ok := raster.KernelsByName(c.Kernels); !ok {
		return fmt.Errorf("unknown kernels %q (want source or standard)", c.Kernels)
	}
	if c.MaxDimension < 0 {
		return fmt.Errorf("max dimension must not be negative, got %d", c.MaxDimension)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	return nil
}

// SobelOptions converts the edge settings. Call Validate first; an unknown
// kernel name falls back to the source kernels.
func (c Config) SobelOptions() raster.SobelOptions {
	k, _ := raster.KernelsByName(c.Kernels)
	return raster.SobelOptions{Border: raster.Luma(c.Border), Kernels: k}
}

// Logger builds a slog.Logger writing to stderr in text or JSON form.
func (c Config) Logger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var handler slog.Handler
	if c.LogJSON {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler), nil
}
