package pipeline

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/edgemap/internal/raster"
)

// PreviewResult contains a stage rendered as a base64 PNG.
type PreviewResult struct {
	Stage       string `json:"stage"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview renders one stage of img as a standard library image. Color
// stages are returned fully opaque.
func Preview(img *Image, stage Stage, opts ExportOptions) (image.Image, error) {
	switch stage {
	case StageColor:
		return colorImage(img.Color), nil
	case StageGray:
		return grayImage(img.Gray), nil
	case StageEdges:
		return grayImage(img.Edges(opts.Sobel)), nil
	}
	return nil, fmt.Errorf("unknown stage: %v", stage)
}

// SavePreview writes one stage of img to path as PNG.
func SavePreview(path string, img *Image, stage Stage, opts ExportOptions) error {
	out, err := Preview(img, stage, opts)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, out, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}

// PreviewBase64 renders one stage of img as a base64-encoded PNG.
func PreviewBase64(img *Image, stage Stage, opts ExportOptions) (*PreviewResult, error) {
	out, err := Preview(img, stage, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encode := imgio.PNGEncoder()
	if err := encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Stage:       stage.String(),
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func colorImage(buf *raster.Buffer[raster.RGB]) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, int(buf.Width), int(buf.Height)))
	for i, p := range buf.Pix {
		out.Pix[i*4+0] = p.R
		out.Pix[i*4+1] = p.G
		out.Pix[i*4+2] = p.B
		out.Pix[i*4+3] = 0xff
	}
	return out
}

func grayImage(buf *raster.Buffer[raster.Luma]) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, int(buf.Width), int(buf.Height)))
	for i, v := range buf.Pix {
		out.SetGray(i%int(buf.Width), i/int(buf.Width), color.Gray{Y: uint8(v)})
	}
	return out
}
