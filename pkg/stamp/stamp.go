package stamp

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/quidome/photo-datestamp/pkg/colorspec"
)

// ShadowOffset is how far the shadow is shifted right and down.
const ShadowOffset = 2

// ShadowColor is semi-transparent black.
var ShadowColor = color.NRGBA{A: 128}

var (
	ErrEmptyText   = errors.New("watermark text is empty")
	ErrEmptyImage  = errors.New("image has no pixels")
	ErrBadFontSize = errors.New("font size must be positive")
)

// Spec describes one watermark.
type Spec struct {
	Text     string
	FontSize int
	Color    colorspec.RGB
	Position Position
}

// Renderer stamps text using the first font its providers can load. Faces
// are resolved once per size and reused.
type Renderer struct {
	providers []FontProvider
	fonts     map[int]Font
}

// NewRenderer returns a Renderer using providers in order. Without providers
// it uses DefaultProviders("").
func NewRenderer(providers ...FontProvider) *Renderer {
	if len(providers) == 0 {
		providers = DefaultProviders("")
	}
	return &Renderer{providers: providers, fonts: make(map[int]Font)}
}

// Font returns the face used for the requested size.
func (r *Renderer) Font(size int) (Font, error) {
	if f, ok := r.fonts[size]; ok {
		return f, nil
	}
	f, err := ResolveFont(r.providers, size)
	if err != nil {
		return Font{}, err
	}
	r.fonts[size] = f
	return f, nil
}

// Close releases the cached faces.
func (r *Renderer) Close() error {
	var errs []error
	for size, f := range r.fonts {
		if err := f.Face.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(r.fonts, size)
	}
	return errors.Join(errs...)
}

// Stamp returns a copy of img with spec.Text drawn on it. img is not
// modified.
func (r *Renderer) Stamp(img image.Image, spec Spec) (*image.NRGBA, error) {
	if spec.Text == "" {
		return nil, ErrEmptyText
	}
	if spec.FontSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadFontSize, spec.FontSize)
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	f, err := r.Font(spec.FontSize)
	if err != nil {
		return nil, err
	}

	dst := imaging.Clone(img)
	size := dst.Bounds().Size()

	bounds := measure(f.Face, spec.Text)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()
	at := Anchor(size.X, size.Y, textW, textH, spec.Position)

	// The drawer positions text by its baseline origin; shift so the ink box
	// starts at the anchor.
	dot := fixed.P(at.X, at.Y).Sub(bounds.Min)

	drawText(dst, f.Face, spec.Text, dot.Add(fixed.P(ShadowOffset, ShadowOffset)), ShadowColor)
	drawText(dst, f.Face, spec.Text, dot, spec.Color.NRGBA())
	return dst, nil
}

// Measure returns the ink size of text in face.
func Measure(face font.Face, text string) (width, height int) {
	b := measure(face, text)
	return (b.Max.X - b.Min.X).Ceil(), (b.Max.Y - b.Min.Y).Ceil()
}

func measure(face font.Face, text string) fixed.Rectangle26_6 {
	b, _ := font.BoundString(face, text)
	return b
}

func drawText(dst *image.NRGBA, face font.Face, text string, dot fixed.Point26_6, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
}
