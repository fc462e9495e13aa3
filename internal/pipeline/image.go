package pipeline

import (
	"fmt"

	"github.com/ironsheep/edgemap/internal/raster"
	"github.com/ironsheep/edgemap/internal/source"
)

// LoadOptions controls how an image is decoded.
type LoadOptions struct {
	// MaxDimension caps the longer side of the decoded image. Zero keeps
	// the original size.
	MaxDimension int
}

// Image is a decoded color raster plus its cached grayscale reduction.
type Image struct {
	// Path is the file the image was decoded from, empty for in-memory images.
	Path string

	Color *raster.Buffer[raster.RGB]
	Gray  *raster.Buffer[raster.Luma]
}

// NewImage wraps a color buffer and derives its grayscale buffer.
func NewImage(path string, color *raster.Buffer[raster.RGB]) *Image {
	return &Image{
		Path:  path,
		Color: color,
		Gray:  raster.Grayscale(color),
	}
}

// Load decodes the JPEG at path and builds an Image from it.
//
// Returns an error wrapping source.ErrDecode if the file cannot be read or
// decoded, or raster.ErrMalformedInput if the decoder output does not match
// the dimensions it reported.
func Load(path string, opts LoadOptions) (*Image, error) {
	d, err := source.Open(path, source.Options{MaxDimension: opts.MaxDimension})
	if err != nil {
		return nil, err
	}

	color, err := raster.NewRGB(d.Pix, d.Width, d.Height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewImage(path, color), nil
}

// Width returns the image width in pixels.
func (img *Image) Width() uint32 { return img.Color.Width }

// Height returns the image height in pixels.
func (img *Image) Height() uint32 { return img.Color.Height }

// Edges runs edge detection over the cached grayscale buffer.
func (img *Image) Edges(opts raster.SobelOptions) *raster.Buffer[raster.Luma] {
	return raster.Sobel(img.Gray, opts)
}
