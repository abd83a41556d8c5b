// Package colorspec parses user supplied "r,g,b" color triples.
package colorspec

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

var (
	ErrArity      = errors.New("color must have exactly three components, as r,g,b")
	ErrNotInteger = errors.New("color component is not an integer")
	ErrOutOfRange = errors.New("color component must be within 0-255")
)

// RGB is an opaque color.
type RGB struct {
	R, G, B uint8
}

// White is returned by ParseOrDefault when the input is invalid.
var White = RGB{R: 255, G: 255, B: 255}

// NRGBA returns c as a fully opaque color.NRGBA.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c RGB) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// Parse reads a color written as three comma separated integers in [0,255].
// Whitespace around components is ignored.
func Parse(text string) (RGB, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("%w: got %d in %q", ErrArity, len(parts), text)
	}

	var v [3]uint8
	for i, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.Atoi(p)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrNotInteger, p)
		}
		if n < 0 || n > 255 {
			return RGB{}, fmt.Errorf("%w: %d", ErrOutOfRange, n)
		}
		v[i] = uint8(n)
	}
	return RGB{R: v[0], G: v[1], B: v[2]}, nil
}

// ParseOrDefault is Parse that falls back to White, writing a warning to w
// when text is invalid. w may be nil.
func ParseOrDefault(text string, w io.Writer) RGB {
	c, err := Parse(text)
	if err != nil {
		if w != nil {
			fmt.Fprintf(w, "warning: invalid color: %v, using white\n", err)
		}
		return White
	}
	return c
}
