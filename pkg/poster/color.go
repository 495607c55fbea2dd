package poster

import (
	"image/color"
	"strconv"
)

// ParseColor parses a hex color token into an RGBA color.
//
// Accepted forms are "#RRGGBB" (opaque) and "#RRGGBBAA" (trailing alpha
// byte). Any other input, including malformed hex digits, yields opaque
// black rather than an error: a poster with a bad color still renders.
func ParseColor(s string) color.NRGBA {
	black := color.NRGBA{A: 0xFF}
	if len(s) == 0 || s[0] != '#' {
		return black
	}

	hex := s[1:]
	switch len(hex) {
	case 6:
		r, okR := parseHexByte(hex[0:2])
		g, okG := parseHexByte(hex[2:4])
		b, okB := parseHexByte(hex[4:6])
		if okR && okG && okB {
			return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
		}
	case 8:
		r, okR := parseHexByte(hex[0:2])
		g, okG := parseHexByte(hex[2:4])
		b, okB := parseHexByte(hex[4:6])
		a, okA := parseHexByte(hex[6:8])
		if okR && okG && okB && okA {
			return color.NRGBA{R: r, G: g, B: b, A: a}
		}
	}

	return black
}

func parseHexByte(s string) (uint8, bool) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(v), true
}
