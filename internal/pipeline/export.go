package pipeline

import (
	"fmt"
	"io"

	"github.com/ironsheep/edgemap/internal/pnm"
	"github.com/ironsheep/edgemap/internal/raster"
)

// ExportOptions configures edge detection for StageEdges. It is ignored for
// the other stages.
type ExportOptions struct {
	Sobel raster.SobelOptions
}

// ExportResult summarizes a completed export.
type ExportResult struct {
	Output string `json:"output"`
	Stage  string `json:"stage"`
	Magic  string `json:"magic"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Max    uint32 `json:"max_value"`
	Bytes  int64  `json:"bytes"`
}

// Export writes one stage of img to the file at dst as a text raster.
//
// Returns an error wrapping pnm.ErrWrite if the file cannot be created or
// written. A partially written file may remain on failure.
func Export(img *Image, stage Stage, dst string, opts ExportOptions) (*ExportResult, error) {
	var (
		n     int64
		err   error
		magic string
		max   uint32
	)

	switch stage {
	case StageColor:
		n, err = pnm.WriteFile(dst, img.Color)
		magic, max = pnm.MagicFor[raster.RGB](), img.Color.Max
	case StageGray:
		n, err = pnm.WriteFile(dst, img.Gray)
		magic, max = pnm.MagicFor[raster.Luma](), img.Gray.Max
	case StageEdges:
		edges := img.Edges(opts.Sobel)
		n, err = pnm.WriteFile(dst, edges)
		magic, max = pnm.MagicFor[raster.Luma](), edges.Max
	default:
		return nil, fmt.Errorf("unknown stage: %v", stage)
	}
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Output: dst,
		Stage:  stage.String(),
		Magic:  magic,
		Width:  img.Width(),
		Height: img.Height(),
		Max:    max,
		Bytes:  n,
	}, nil
}

// WriteStage serializes one stage of img to w.
func WriteStage(w io.Writer, img *Image, stage Stage, opts ExportOptions) error {
	switch stage {
	case StageColor:
		return pnm.Write(w, img.Color)
	case StageGray:
		return pnm.Write(w, img.Gray)
	case StageEdges:
		return pnm.Write(w, img.Edges(opts.Sobel))
	}
	return fmt.Errorf("unknown stage: %v", stage)
}
