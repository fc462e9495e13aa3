package raster

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxValue is the channel maximum for 8-bit rasters.
const MaxValue = 255

// ErrMalformedInput is returned when raw pixel data does not match the
// dimensions it was declared with.
var ErrMalformedInput = errors.New("malformed input")

// RGB is one color pixel. A is carried for callers that need it but no
// transform in this package reads it.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Channels reports the number of serialized channels (alpha is not written).
func (RGB) Channels() int { return 3 }

// AppendText appends "r g b" to dst.
func (p RGB) AppendText(dst []byte) []byte {
	dst = strconv.AppendUint(dst, uint64(p.R), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(p.G), 10)
	dst = append(dst, ' ')
	return strconv.AppendUint(dst, uint64(p.B), 10)
}

// Luma is a single 8-bit intensity. Gradient maps use it too.
type Luma uint8

// Channels reports 1.
func (Luma) Channels() int { return 1 }

// AppendText appends the decimal value to dst.
func (l Luma) AppendText(dst []byte) []byte {
	return strconv.AppendUint(dst, uint64(l), 10)
}

// Sample is the set of element types a Buffer can hold.
type Sample interface {
	RGB | Luma
	Channels() int
	AppendText(dst []byte) []byte
}

// Buffer is a row-major raster of samples. Max is the largest value a
// channel may take, normally MaxValue.
//
// The invariant len(Pix) == Width*Height holds for every Buffer built through
// New, FromPix or NewRGB. Code that assembles a Buffer literal by hand is
// responsible for keeping it.
type Buffer[T Sample] struct {
	Width  uint32
	Height uint32
	Max    uint32
	Pix    []T
}

// New allocates a zeroed width x height buffer.
func New[T Sample](width, height, max uint32) *Buffer[T] {
	return &Buffer[T]{
		Width:  width,
		Height: height,
		Max:    max,
		Pix:    make([]T, int(width)*int(height)),
	}
}

// FromPix wraps pix as a width x height buffer without copying.
//
// Returns an error wrapping ErrMalformedInput if len(pix) != width*height.
func FromPix[T Sample](width, height, max uint32, pix []T) (*Buffer[T], error) {
	if uint64(len(pix)) != uint64(width)*uint64(height) {
		return nil, fmt.Errorf("%w: %d samples for %dx%d raster", ErrMalformedInput, len(pix), width, height)
	}
	return &Buffer[T]{Width: width, Height: height, Max: max, Pix: pix}, nil
}

// NewRGB builds a color buffer from interleaved R,G,B bytes as produced by a
// JPEG decoder. Alpha is set to 0 and no color-space conversion is done.
//
// # Errors
//
//   - len(raw) is not a multiple of 3
//   - len(raw)/3 != width*height
//
// Both wrap ErrMalformedInput.
func NewRGB(raw []byte, width, height uint32) (*Buffer[RGB], error) {
	if len(raw)%3 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of RGB triplets", ErrMalformedInput, len(raw))
	}
	n := len(raw) / 3
	if uint64(n) != uint64(width)*uint64(height) {
		return nil, fmt.Errorf("%w: %d pixels decoded, %dx%d declared", ErrMalformedInput, n, width, height)
	}

	pix := make([]RGB, n)
	for i := range pix {
		j := i * 3
		pix[i] = RGB{R: raw[j], G: raw[j+1], B: raw[j+2]}
	}
	return &Buffer[RGB]{Width: width, Height: height, Max: MaxValue, Pix: pix}, nil
}

// Len returns the number of samples.
func (b *Buffer[T]) Len() int { return len(b.Pix) }

// Index returns the flat index of (col, row).
func (b *Buffer[T]) Index(col, row int) int {
	return row*int(b.Width) + col
}

// At returns the sample at (col, row). It panics if the point is outside
// the buffer.
func (b *Buffer[T]) At(col, row int) T {
	return b.Pix[b.Index(col, row)]
}

// InBounds reports whether (col, row) addresses a sample.
func (b *Buffer[T]) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < int(b.Width) && row < int(b.Height)
}

// Row returns the samples of one row, sharing storage with the buffer.
func (b *Buffer[T]) Row(row int) []T {
	start := b.Index(0, row)
	return b.Pix[start : start+int(b.Width)]
}

// SameShape reports whether two buffers have identical dimensions.
func SameShape[A, B Sample](a *Buffer[A], b *Buffer[B]) bool {
	return a.Width == b.Width && a.Height == b.Height && len(a.Pix) == len(b.Pix)
}
