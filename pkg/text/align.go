package text

import (
	"encoding/json"
	"fmt"

	"github.com/posterkit/posterkit/pkg/geometry"
)

// Align is the horizontal alignment of a text anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

var alignNames = map[Align]string{
	AlignLeft:   "left",
	AlignCenter: "center",
	AlignRight:  "right",
}

// MarshalJSON encodes the alignment as its lowercase name.
func (a Align) MarshalJSON() ([]byte, error) {
	return json.Marshal(alignNames[a])
}

// UnmarshalJSON decodes "left", "center", or "right".
func (a *Align) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for k, v := range alignNames {
		if v == s {
			*a = k
			return nil
		}
	}
	return fmt.Errorf("unknown text alignment %q", s)
}

// Direction is a writing direction.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

var directionNames = map[Direction]string{
	DirectionLTR: "ltr",
	DirectionRTL: "rtl",
}

// MarshalJSON encodes the direction as "ltr" or "rtl".
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(directionNames[d])
}

// UnmarshalJSON decodes "ltr" or "rtl".
func (d *Direction) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for k, v := range directionNames {
		if v == s {
			*d = k
			return nil
		}
	}
	return fmt.Errorf("unknown text direction %q", s)
}

// AnchorX converts the element anchor x into the drawing origin for a line
// of measured width w. The arithmetic is identical for both writing
// directions: direction influences shaping and default alignment upstream,
// not this placement.
func AnchorX(x, w float64, a Align) float64 {
	switch a {
	case AlignRight:
		return x - w
	case AlignCenter:
		return x - w/2
	default:
		return x
	}
}

// HighlightBox computes the background box drawn behind a text run anchored
// at (x, y) on the baseline. The box width is textW plus padding on both
// sides unless explicitW is positive, and likewise for the height. The
// x-origin depends on alignment and direction: for right-to-left text the
// left- and right-aligned cases swap, while center stays centered under x.
func HighlightBox(x, y, textW, textH, padding float64, a Align, d Direction, explicitW, explicitH float64) geometry.Rect {
	w := textW + 2*padding
	if explicitW > 0 {
		w = explicitW
	}
	h := textH + 2*padding
	if explicitH > 0 {
		h = explicitH
	}

	effective := a
	if d == DirectionRTL {
		switch a {
		case AlignLeft:
			effective = AlignRight
		case AlignRight:
			effective = AlignLeft
		}
	}

	var bx float64
	switch effective {
	case AlignRight:
		bx = x - w + padding
	case AlignCenter:
		bx = x - w/2
	default:
		bx = x - padding
	}

	return geometry.Rect{X: bx, Y: y - textH - padding, W: w, H: h}
}
