package facet

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{}
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// HexColor parses "rgb", "rgba", "rrggbb" or "rrggbbaa", with or
// without a leading '#'. Unparseable input yields Black.
func HexColor(x string) Color {
	x = strings.TrimPrefix(x, "#")
	var r, g, b, a int
	a = 255
	var err error
	switch len(x) {
	case 3:
		_, err = fmt.Sscanf(x, "%1x%1x%1x", &r, &g, &b)
		r, g, b = r*17, g*17, b*17
	case 4:
		_, err = fmt.Sscanf(x, "%1x%1x%1x%1x", &r, &g, &b, &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		_, err = fmt.Sscanf(x, "%02x%02x%02x", &r, &g, &b)
	case 8:
		_, err = fmt.Sscanf(x, "%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		return Black
	}
	if err != nil {
		return Black
	}
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
}

// NRGBA converts c to an 8-bit color, clamping each component.
func (c Color) NRGBA() color.NRGBA {
	const d = 0xff
	r := Clamp(c.R, 0, 1)
	g := Clamp(c.G, 0, 1)
	b := Clamp(c.B, 0, 1)
	a := Clamp(c.A, 0, 1)
	return color.NRGBA{
		uint8(math.Round(r * d)),
		uint8(math.Round(g * d)),
		uint8(math.Round(b * d)),
		uint8(math.Round(a * d)),
	}
}

func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
