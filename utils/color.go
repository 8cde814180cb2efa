package utils

import (
	"image/color"
	"strconv"
	"strings"
)

// HexToRGBA converts a hex color string to color.NRGBA. It accepts the
// "#rgb", "#rrggbb" and "#rrggbbaa" notations, with or without the leading
// number sign. Malformed values yield an opaque red, so a mistyped seam
// color stays visible instead of silently disappearing.
func HexToRGBA(hex string) color.NRGBA {
	hex = strings.TrimPrefix(hex, "#")

	switch len(hex) {
	case 3:
		var expanded strings.Builder
		for _, c := range hex {
			expanded.WriteRune(c)
			expanded.WriteRune(c)
		}
		hex = expanded.String() + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.NRGBA{R: 0xff, A: 0xff}
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{R: 0xff, A: 0xff}
	}

	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}
}
