package raster

import "github.com/anthonynsimon/bild/parallel"

// Luma weights. They sum to 1.030, so bright pixels saturate at 255.
const (
	lumaRed   = 0.299
	lumaGreen = 0.587
	lumaBlue  = 0.144
)

// LumaOf reduces one color pixel to an intensity.
//
// The weighted sum is truncated toward zero, and anything at or above 255
// saturates to 255.
func LumaOf(p RGB) Luma {
	v := float64(p.R)*lumaRed + float64(p.G)*lumaGreen + float64(p.B)*lumaBlue
	if v >= MaxValue {
		return MaxValue
	}
	return Luma(v)
}

// Grayscale returns a new single-channel buffer with the same dimensions and
// max value as src. Work is split across rows.
func Grayscale(src *Buffer[RGB]) *Buffer[Luma] {
	dst := New[Luma](src.Width, src.Height, src.Max)
	w := int(src.Width)

	parallel.Line(int(src.Height), func(start, end int) {
		for i := start * w; i < end*w; i++ {
			dst.Pix[i] = LumaOf(src.Pix[i])
		}
	})
	return dst
}
