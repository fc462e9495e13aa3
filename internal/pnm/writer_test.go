package pnm

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/edgemap/internal/raster"
)

func TestBuildHeader(t *testing.T) {
	got := BuildHeader(MagicColor, 1024, 1024, 255)
	want := "P3\n1024 1024\n255\n"
	if got != want {
		t.Errorf("BuildHeader: got %q, want %q", got, want)
	}

	if got := BuildHeader(MagicGray, 3, 2, 255); got != "P2\n3 2\n255\n" {
		t.Errorf("gray header: got %q", got)
	}
}

func TestMagicFor(t *testing.T) {
	if got := MagicFor[raster.RGB](); got != MagicColor {
		t.Errorf("MagicFor[RGB]: got %s, want %s", got, MagicColor)
	}
	if got := MagicFor[raster.Luma](); got != MagicGray {
		t.Errorf("MagicFor[Luma]: got %s, want %s", got, MagicGray)
	}
}

func TestWrite_Color(t *testing.T) {
	buf, err := raster.NewRGB([]byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 7, 8, 9,
	}, 2, 2)
	if err != nil {
		t.Fatalf("NewRGB failed: %v", err)
	}

	var out bytes.Buffer
	if err := Write(&out, buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "P3\n2 2\n255\n" +
		"255 0 0 0 255 0\n" +
		"0 0 255 7 8 9\n"
	if out.String() != want {
		t.Errorf("output:\ngot  %q\nwant %q", out.String(), want)
	}
}

func TestWrite_Gray(t *testing.T) {
	buf, err := raster.FromPix(3, 2, 255, []raster.Luma{0, 10, 255, 1, 2, 3})
	if err != nil {
		t.Fatalf("FromPix failed: %v", err)
	}

	var out bytes.Buffer
	if err := Write(&out, buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "P2\n3 2\n255\n0 10 255\n1 2 3\n"
	if out.String() != want {
		t.Errorf("output:\ngot  %q\nwant %q", out.String(), want)
	}
}

func TestWrite_OneLinePerRow(t *testing.T) {
	buf := raster.New[raster.Luma](17, 5, 255)

	var out bytes.Buffer
	if err := Write(&out, buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3+5 {
		t.Fatalf("line count: got %d, want 8", len(lines))
	}
	for i, l := range lines[3:] {
		if n := len(strings.Fields(l)); n != 17 {
			t.Errorf("row %d: got %d values, want 17", i, n)
		}
	}
}

func TestWrite_HeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
	}{
		{"square", 4, 4},
		{"wide", 31, 2},
		{"tall", 1, 19},
		{"empty", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := make([]byte, int(tt.width*tt.height)*3)
			buf, err := raster.NewRGB(raw, tt.width, tt.height)
			if err != nil {
				t.Fatalf("NewRGB failed: %v", err)
			}

			var out bytes.Buffer
			if err := Write(&out, buf); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			h, err := ReadHeader(bufio.NewReader(&out))
			if err != nil {
				t.Fatalf("ReadHeader failed: %v", err)
			}
			if h.Magic != MagicColor || h.Width != tt.width || h.Height != tt.height || h.Max != 255 {
				t.Errorf("header: got %+v", h)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite_Error(t *testing.T) {
	buf := raster.New[raster.Luma](2000, 2000, 255)

	err := Write(failingWriter{}, buf)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrWrite) {
		t.Errorf("error should wrap ErrWrite, got %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pgm")
	buf, _ := raster.FromPix(2, 1, 255, []raster.Luma{5, 6})

	n, err := WriteFile(path, buf)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(data) != "P2\n2 1\n255\n5 6\n" {
		t.Errorf("file contents: got %q", data)
	}
	if n != int64(len(data)) {
		t.Errorf("byte count: got %d, want %d", n, len(data))
	}
}

func TestWriteFile_BadDestination(t *testing.T) {
	buf := raster.New[raster.Luma](1, 1, 255)
	path := filepath.Join(t.TempDir(), "missing", "out.pgm")

	_, err := WriteFile(path, buf)
	if !errors.Is(err, ErrWrite) {
		t.Errorf("error should wrap ErrWrite, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}
