package stamp

import (
	"image"
	"strings"
)

// Margin is the distance in pixels kept between the text and the image edges
// for the corner positions.
const Margin = 20

// Position is where the text is anchored. The zero value is BottomRight.
type Position int

const (
	BottomRight Position = iota
	TopLeft
	Center
)

var positionLabels = map[string]Position{
	"top-left":     TopLeft,
	"center":       Center,
	"centre":       Center,
	"bottom-right": BottomRight,
	"左上角":          TopLeft,
	"居中":           Center,
	"右下角":          BottomRight,
}

// ParsePosition maps a label to a Position. Unrecognized labels map to
// BottomRight with ok == false.
func ParsePosition(label string) (Position, bool) {
	p, ok := positionLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return BottomRight, false
	}
	return p, true
}

func (p Position) String() string {
	switch p {
	case TopLeft:
		return "top-left"
	case Center:
		return "center"
	default:
		return "bottom-right"
	}
}

// Anchor returns the top-left corner of a textW×textH box placed on an
// imgW×imgH image.
func Anchor(imgW, imgH, textW, textH int, pos Position) image.Point {
	switch pos {
	case TopLeft:
		return image.Pt(Margin, Margin)
	case Center:
		return image.Pt((imgW-textW)/2, (imgH-textH)/2)
	default:
		return image.Pt(imgW-textW-Margin, imgH-textH-Margin)
	}
}
