package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/edgemap/internal/pnm"
	"github.com/ironsheep/edgemap/internal/source"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Show the dimensions of a JPEG or the header of a text raster",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm", ".pgm", ".pnm":
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		defer f.Close()

		h, err := pnm.ReadHeader(bufio.NewReader(f))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		fmt.Fprintf(out, "File:       %s\n", path)
		fmt.Fprintf(out, "Format:     %s (%d channel)\n", h.Magic, h.Channels())
		fmt.Fprintf(out, "Dimensions: %d x %d\n", h.Width, h.Height)
		fmt.Fprintf(out, "Max value:  %d\n", h.Max)
		return nil
	}

	d, err := source.Open(path, source.Options{})
	if err != nil {
		return err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	fmt.Fprintf(out, "File:       %s\n", path)
	fmt.Fprintf(out, "Format:     %s\n", d.Format)
	fmt.Fprintf(out, "Dimensions: %d x %d\n", d.Width, d.Height)
	fmt.Fprintf(out, "File size:  %d bytes (%.1f MB)\n", stat.Size(), float64(stat.Size())/(1024*1024))
	return nil
}
