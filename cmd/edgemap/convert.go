package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/edgemap/internal/pipeline"
	"github.com/ironsheep/edgemap/internal/raster"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a JPEG to a text raster of its color, gray or edge stage",
	Example: `  edgemap convert -i photo.jpg -o photo.ppm --stage color
  edgemap convert -i photo.jpg -o edges.pgm --border 255 --preview edges.png`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("input", "i", "", "Input JPEG file")
	convertCmd.Flags().StringP("output", "o", "", "Output text raster (.ppm for color, .pgm otherwise)")
	convertCmd.Flags().StringP("stage", "s", "edges", "Stage to write: color, gray or edges")
	convertCmd.Flags().Int("border", 0, "Value for uncomputed edge map border pixels (0-255)")
	convertCmd.Flags().String("kernels", raster.KernelsSource.Name, "Sobel kernel pair: source or standard")
	convertCmd.Flags().Int("max-dim", 0, "Downscale so the longer side is at most this many pixels (0 = off)")
	convertCmd.Flags().String("preview", "", "Also write the stage as PNG to this path")
	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	stageName, _ := cmd.Flags().GetString("stage")
	previewPath, _ := cmd.Flags().GetString("preview")

	if err := applyEdgeFlags(cmd); err != nil {
		return err
	}

	stage, err := pipeline.ParseStage(stageName)
	if err != nil {
		return err
	}

	img, err := pipeline.Load(inputPath, pipeline.LoadOptions{MaxDimension: cfg.MaxDimension})
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}
	slog.Debug("decoded", "path", inputPath, "width", img.Width(), "height", img.Height())

	opts := pipeline.ExportOptions{Sobel: cfg.SobelOptions()}
	res, err := pipeline.Export(img, stage, outputPath, opts)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if previewPath != "" {
		if err := pipeline.SavePreview(previewPath, img, stage, opts); err != nil {
			return err
		}
		slog.Info("wrote preview", "path", previewPath)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s %dx%d %s raster\n", res.Magic, res.Width, res.Height, res.Stage)
	fmt.Fprintf(cmd.OutOrStdout(), "Input:  %s\n", inputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Output: %s (%d bytes)\n", outputPath, res.Bytes)
	return nil
}

// applyEdgeFlags copies explicitly set edge flags over the environment
// defaults and validates the result.
func applyEdgeFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("border") {
		border, _ := flags.GetInt("border")
		if border < 0 || border > raster.MaxValue {
			return fmt.Errorf("--border must be in 0-255, got %d", border)
		}
		cfg.Border = uint8(border)
	}
	if flags.Changed("kernels") {
		kernels, _ := flags.GetString("kernels")
		cfg.Kernels = strings.ToLower(kernels)
	}
	if flags.Changed("max-dim") {
		cfg.MaxDimension, _ = flags.GetInt("max-dim")
	}
	return cfg.Validate()
}
