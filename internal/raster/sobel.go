package raster

import (
	"strings"

	"github.com/anthonynsimon/bild/parallel"
)

// Kernels is a pair of fixed 3x3 correlation kernels, flattened row-major in
// the same order as the neighbor offsets used by Gradient.
type Kernels struct {
	Name       string
	Horizontal [9]int32
	Vertical   [9]int32
}

// KernelsSource are the kernels edge maps have always been produced with.
// The middle row of Horizontal is sign-flipped relative to a textbook Sobel
// operator, so a perfectly vertical step cancels out in gx.
var KernelsSource = Kernels{
	Name: "source",
	Horizontal: [9]int32{
		-1, 0, 1,
		2, 0, -2,
		-1, 0, 1,
	},
	Vertical: [9]int32{
		1, 2, 1,
		0, 0, 0,
		-1, -2, -1,
	},
}

// KernelsStandard are the textbook Sobel operators.
var KernelsStandard = Kernels{
	Name: "standard",
	Horizontal: [9]int32{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	},
	Vertical: [9]int32{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	},
}

// KernelsByName looks up a kernel pair by its Name.
func KernelsByName(name string) (Kernels, bool) {
	switch strings.ToLower(name) {
	case "", KernelsSource.Name:
		return KernelsSource, true
	case KernelsStandard.Name:
		return KernelsStandard, true
	}
	return Kernels{}, false
}

// SobelOptions controls edge detection. The zero value uses KernelsSource and
// a border sentinel of 0.
type SobelOptions struct {
	// Border is written to every pixel in the first and last row and column.
	Border Luma

	// Kernels selects the operator pair. A zero value means KernelsSource.
	Kernels Kernels
}

func (o SobelOptions) kernels() Kernels {
	if o.Kernels.Name == "" {
		return KernelsSource
	}
	return o.Kernels
}

// Sobel computes the gradient magnitude map of src.
//
// For every interior pixel (0 < row < Height-1 and 0 < col < Width-1) the
// output is min(|gx|+|gy|, 255), where gx and gy are the correlations of the
// 3x3 neighborhood with the horizontal and vertical kernels. Pixels on the
// border are not computed and take opts.Border. Buffers narrower or shorter
// than 3 pixels are entirely border.
//
// The result has the same dimensions and max value as src. Sobel has no
// hidden state: calling it twice on the same input yields identical output.
func Sobel(src *Buffer[Luma], opts SobelOptions) *Buffer[Luma] {
	dst := New[Luma](src.Width, src.Height, src.Max)
	k := opts.kernels()
	w := int(src.Width)
	h := int(src.Height)

	parallel.Line(h, func(start, end int) {
		for row := start; row < end; row++ {
			out := dst.Row(row)
			if row == 0 || row >= h-1 || w < 3 {
				fill(out, opts.Border)
				continue
			}
			out[0] = opts.Border
			out[w-1] = opts.Border
			for col := 1; col < w-1; col++ {
				gx, gy := correlate(src, k, col, row)
				out[col] = Magnitude(gx, gy)
			}
		}
	})
	return dst
}

// Gradient returns the raw horizontal and vertical responses at an interior
// pixel. ok is false for border pixels, which have no full neighborhood.
// A zero k means KernelsSource, as in Sobel.
func Gradient(src *Buffer[Luma], k Kernels, col, row int) (gx, gy int32, ok bool) {
	if col <= 0 || row <= 0 || col >= int(src.Width)-1 || row >= int(src.Height)-1 {
		return 0, 0, false
	}
	gx, gy = correlate(src, SobelOptions{Kernels: k}.kernels(), col, row)
	return gx, gy, true
}

// correlate applies both kernels at (col, row) without bounds checks.
func correlate(src *Buffer[Luma], k Kernels, col, row int) (gx, gy int32) {
	w := int(src.Width)
	loc := row*w + col
	neighbors := [9]int{
		loc - w - 1, loc - w, loc - w + 1,
		loc - 1, loc, loc + 1,
		loc + w - 1, loc + w, loc + w + 1,
	}
	for i, n := range neighbors {
		v := int32(src.Pix[n])
		gx += k.Horizontal[i] * v
		gy += k.Vertical[i] * v
	}
	return gx, gy
}

// Magnitude is the L1 norm of a gradient, saturated to 8 bits.
func Magnitude(gx, gy int32) Luma {
	m := abs32(gx) + abs32(gy)
	if m > MaxValue {
		return MaxValue
	}
	return Luma(m)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func fill(dst []Luma, v Luma) {
	for i := range dst {
		dst[i] = v
	}
}
