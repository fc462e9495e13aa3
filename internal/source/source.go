// Package source turns encoded image files into interleaved RGB bytes.
//
// Decoding itself is done by the standard library JPEG decoder through
// github.com/disintegration/imaging, which also applies EXIF orientation.
// Only JPEG input is accepted.
package source

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	"io"
	"os"

	"github.com/disintegration/imaging"
)

// ErrDecode is returned when a source cannot be opened or decoded.
var ErrDecode = errors.New("decode failed")

// FormatJPEG is the only format name Decode accepts.
const FormatJPEG = "jpeg"

// Options tunes decoding.
type Options struct {
	// MaxDimension caps the longer side of the decoded image. Larger images
	// are scaled down with a Lanczos filter, preserving aspect ratio.
	// Zero disables scaling.
	MaxDimension int
}

// Decoded is the output of a decode: three bytes (R, G, B) per pixel,
// row-major, Width*Height pixels.
type Decoded struct {
	Pix    []byte
	Width  uint32
	Height uint32
	Format string
}

// Open reads and decodes the JPEG file at path.
//
// # Errors
//
//   - the file does not exist or cannot be read
//   - the file is not a JPEG
//   - the JPEG bitstream is corrupt
//
// All errors wrap ErrDecode.
func Open(path string, opts Options) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	d, err := Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Decode decodes a JPEG stream. r must support seeking back to its start,
// because the format is sniffed before the full decode.
func Decode(r io.ReadSeeker, opts Options) (*Decoded, error) {
	_, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if format != FormatJPEG {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrDecode, format)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if opts.MaxDimension > 0 {
		b := img.Bounds()
		if b.Dx() > opts.MaxDimension || b.Dy() > opts.MaxDimension {
			img = imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)
		}
	}

	return FromImage(img, format), nil
}

// FromImage flattens any image.Image to interleaved RGB, dropping alpha.
func FromImage(img image.Image, format string) *Decoded {
	nrgba := imaging.Clone(img)
	w := nrgba.Rect.Dx()
	h := nrgba.Rect.Dy()

	pix := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			pix = append(pix, row[x], row[x+1], row[x+2])
		}
	}

	return &Decoded{
		Pix:    pix,
		Width:  uint32(w),
		Height: uint32(h),
		Format: format,
	}
}
