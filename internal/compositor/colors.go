package compositor

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// parseHexColor accepts "#rrggbb" or "#rrggbbaa".
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	a := uint64(255)
	var r, g, b uint64
	var err error

	switch len(s) {
	case 6, 8:
		r, err = strconv.ParseUint(s[0:2], 16, 8)
		if err == nil {
			g, err = strconv.ParseUint(s[2:4], 16, 8)
		}
		if err == nil {
			b, err = strconv.ParseUint(s[4:6], 16, 8)
		}
		if err == nil && len(s) == 8 {
			a, err = strconv.ParseUint(s[6:8], 16, 8)
		}
	default:
		return color.RGBA{}, fmt.Errorf("compositor: invalid color %q", s)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("compositor: invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

func withAlpha(c color.RGBA, a float64) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: clampByte(a)}
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
