package pnm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrFormat is returned when input is not a plain P2/P3 raster.
var ErrFormat = errors.New("invalid text raster")

// Header is the parsed preamble of a text raster.
type Header struct {
	Magic  string `json:"magic"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Max    uint32 `json:"max_value"`
}

// Channels returns the number of values per pixel.
func (h Header) Channels() int {
	return MagicChannels(h.Magic)
}

// ReadHeader parses the magic number, dimensions and max value. Tokens may
// be separated by any whitespace, and '#' starts a comment running to the
// end of the line.
func ReadHeader(r *bufio.Reader) (Header, error) {
	var h Header

	magic, err := readToken(r)
	if err != nil {
		return h, fmt.Errorf("%w: magic: %w", ErrFormat, err)
	}
	if MagicChannels(magic) == 0 {
		return h, fmt.Errorf("%w: unsupported magic %q", ErrFormat, magic)
	}
	h.Magic = magic

	fields := []*uint32{&h.Width, &h.Height, &h.Max}
	names := []string{"width", "height", "max value"}
	for i, dst := range fields {
		tok, err := readToken(r)
		if err != nil {
			return h, fmt.Errorf("%w: %s: %w", ErrFormat, names[i], err)
		}
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return h, fmt.Errorf("%w: %s: %w", ErrFormat, names[i], err)
		}
		*dst = uint32(v)
	}
	if h.Max == 0 {
		return h, fmt.Errorf("%w: max value must be positive", ErrFormat)
	}
	return h, nil
}

// maxPrealloc bounds the up-front allocation in Read; header dimensions are
// not trusted until the data backs them.
const maxPrealloc = 1 << 20

// Read parses a whole text raster and returns its header and the flattened
// channel values in file order.
func Read(r io.Reader) (Header, []uint32, error) {
	br := bufio.NewReader(r)

	h, err := ReadHeader(br)
	if err != nil {
		return h, nil, err
	}

	n := uint64(h.Width) * uint64(h.Height) * uint64(h.Channels())
	values := make([]uint32, 0, min(n, maxPrealloc))
	for uint64(len(values)) < n {
		tok, err := readToken(br)
		if err != nil {
			return h, nil, fmt.Errorf("%w: value %d of %d: %w", ErrFormat, len(values), n, err)
		}
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return h, nil, fmt.Errorf("%w: value %d: %w", ErrFormat, len(values), err)
		}
		if uint32(v) > h.Max {
			return h, nil, fmt.Errorf("%w: value %d exceeds max %d", ErrFormat, v, h.Max)
		}
		values = append(values, uint32(v))
	}
	return h, values, nil
}

// readToken returns the next whitespace-delimited token, skipping comments.
func readToken(r *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			if err == io.EOF {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}

		switch {
		case c == '#' && len(tok) == 0:
			if _, err := r.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}
