package pnm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ironsheep/edgemap/internal/raster"
)

// Magic numbers for the plain (ASCII) variants.
const (
	MagicGray  = "P2"
	MagicColor = "P3"
)

// ErrWrite is returned when the destination cannot be created or a write
// fails part way through.
var ErrWrite = errors.New("write failed")

// MagicFor returns the magic number for buffers of sample type T.
func MagicFor[T raster.Sample]() string {
	var zero T
	if zero.Channels() == 1 {
		return MagicGray
	}
	return MagicColor
}

// BuildHeader returns the three header lines, each terminated by '\n'.
func BuildHeader(magic string, width, height, max uint32) string {
	return fmt.Sprintf("%s\n%d %d\n%d\n", magic, width, height, max)
}

// Write serializes buf to w. Color and gray buffers go through the same
// path; the sample type decides the magic number and how each sample is
// rendered.
//
// Returns an error wrapping ErrWrite and the underlying I/O error.
func Write[T raster.Sample](w io.Writer, buf *raster.Buffer[T]) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(BuildHeader(MagicFor[T](), buf.Width, buf.Height, buf.Max)); err != nil {
		return fmt.Errorf("%w: header: %w", ErrWrite, err)
	}

	line := make([]byte, 0, int(buf.Width)*4*MagicChannels(MagicFor[T]()))
	for row := 0; row < int(buf.Height); row++ {
		line = line[:0]
		for i, s := range buf.Row(row) {
			if i > 0 {
				line = append(line, ' ')
			}
			line = s.AppendText(line)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrWrite, row, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", ErrWrite, err)
	}
	return nil
}

// WriteFile creates (or truncates) path and writes buf to it. A failed
// write may leave a partial file behind.
func WriteFile[T raster.Sample](path string, buf *raster.Buffer[T]) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	cw := &countingWriter{w: f}
	if err := Write(cw, buf); err != nil {
		f.Close()
		return cw.n, err
	}
	if err := f.Close(); err != nil {
		return cw.n, fmt.Errorf("%w: close %s: %w", ErrWrite, path, err)
	}
	return cw.n, nil
}

// MagicChannels returns the channel count for a magic number, or 0 if the
// magic is not one this package handles.
func MagicChannels(magic string) int {
	switch magic {
	case MagicGray:
		return 1
	case MagicColor:
		return 3
	}
	return 0
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
