package stamp

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// BasicFontSize is the only size the built-in fallback face can render at.
const BasicFontSize = 13

// PlatformFonts are tried in order when no explicit font is given.
var PlatformFonts = []string{
	"/System/Library/Fonts/PingFang.ttc",
	"C:/Windows/Fonts/simhei.ttf",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"arial.ttf",
}

// ErrNoFont is returned by ResolveFont when every provider failed.
var ErrNoFont = errors.New("no usable font")

// FontProvider produces a face for a requested pixel size.
type FontProvider interface {
	Name() string
	// Face returns the face and the size it actually renders at, which may
	// differ from the requested one.
	Face(size int) (font.Face, int, error)
}

// Font is a resolved face.
type Font struct {
	Face     font.Face
	Size     int
	Provider string
}

// FileFont loads a TrueType/OpenType font or collection from disk. For
// collections the first face is used.
type FileFont struct {
	Path string
}

func (f FileFont) Name() string { return f.Path }

func (f FileFont) Face(size int) (font.Face, int, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, 0, err
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		coll, collErr := opentype.ParseCollection(data)
		if collErr != nil {
			return nil, 0, fmt.Errorf("parse %s: %w", f.Path, err)
		}
		parsed, err = coll.Font(0)
		if err != nil {
			return nil, 0, fmt.Errorf("parse %s: %w", f.Path, err)
		}
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("new face %s: %w", f.Path, err)
	}
	return face, size, nil
}

// BasicFont is the built-in 7x13 bitmap face. It ignores the requested size.
type BasicFont struct{}

func (BasicFont) Name() string { return "basicfont.Face7x13" }

func (BasicFont) Face(int) (font.Face, int, error) {
	return basicfont.Face7x13, BasicFontSize, nil
}

// DefaultProviders returns the lookup chain: the user font (if any), the
// platform fonts, then the built-in face.
func DefaultProviders(userFont string) []FontProvider {
	providers := make([]FontProvider, 0, len(PlatformFonts)+2)
	if userFont != "" {
		providers = append(providers, FileFont{Path: userFont})
	}
	for _, p := range PlatformFonts {
		providers = append(providers, FileFont{Path: p})
	}
	return append(providers, BasicFont{})
}

// ResolveFont tries providers in order and returns the first face that loads.
func ResolveFont(providers []FontProvider, size int) (Font, error) {
	var errs []error
	for _, p := range providers {
		face, actual, err := p.Face(size)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		return Font{Face: face, Size: actual, Provider: p.Name()}, nil
	}
	return Font{}, fmt.Errorf("%w: %w", ErrNoFont, errors.Join(errs...))
}
