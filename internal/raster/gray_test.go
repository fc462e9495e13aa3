package raster

import (
	"math/rand"
	"testing"
)

func TestLumaOf(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want Luma
	}{
		{"black", RGB{0, 0, 0, 0}, 0},
		{"pure red", RGB{255, 0, 0, 0}, 76},
		{"pure green", RGB{0, 255, 0, 0}, 149},
		{"pure blue", RGB{0, 0, 255, 0}, 36},
		{"mixed", RGB{100, 150, 200, 0}, 146},
		{"dark", RGB{10, 20, 30, 0}, 19},
		{"white saturates", RGB{255, 255, 255, 0}, 255},
		{"near white saturates", RGB{250, 250, 250, 0}, 255},
		{"alpha ignored", RGB{100, 150, 200, 255}, 146},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LumaOf(tt.in); got != tt.want {
				t.Errorf("LumaOf(%+v): got %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestGrayscale_WhiteSquare(t *testing.T) {
	raw := make([]byte, 3*3*3)
	for i := range raw {
		raw[i] = 255
	}
	src, err := NewRGB(raw, 3, 3)
	if err != nil {
		t.Fatalf("NewRGB failed: %v", err)
	}

	gray := Grayscale(src)

	if gray.Width != 3 || gray.Height != 3 || gray.Len() != 9 {
		t.Fatalf("shape: got %dx%d (%d), want 3x3 (9)", gray.Width, gray.Height, gray.Len())
	}
	for i, v := range gray.Pix {
		if v != 255 {
			t.Errorf("Pix[%d]: got %d, want 255", i, v)
		}
	}
}

func TestGrayscale_Shape(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	sizes := []struct{ w, h uint32 }{
		{1, 1}, {5, 1}, {1, 5}, {17, 9}, {64, 48},
	}

	for _, sz := range sizes {
		raw := make([]byte, int(sz.w*sz.h)*3)
		rng.Read(raw)
		src, err := NewRGB(raw, sz.w, sz.h)
		if err != nil {
			t.Fatalf("NewRGB(%dx%d) failed: %v", sz.w, sz.h, err)
		}

		gray := Grayscale(src)

		if !SameShape(src, gray) {
			t.Errorf("%dx%d: gray shape %dx%d", sz.w, sz.h, gray.Width, gray.Height)
		}
		if gray.Max != src.Max {
			t.Errorf("%dx%d: Max got %d, want %d", sz.w, sz.h, gray.Max, src.Max)
		}
		for i, p := range src.Pix {
			if gray.Pix[i] != LumaOf(p) {
				t.Fatalf("%dx%d: Pix[%d] got %d, want %d", sz.w, sz.h, i, gray.Pix[i], LumaOf(p))
			}
		}
	}
}

func TestGrayscale_Empty(t *testing.T) {
	src, _ := NewRGB(nil, 0, 0)
	gray := Grayscale(src)
	if gray.Len() != 0 {
		t.Errorf("Len: got %d, want 0", gray.Len())
	}
}
