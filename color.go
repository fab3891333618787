package bivariate

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit per channel, non-premultiplied colour.
// Channel arithmetic in mixing methods works on the 0..255 integers.
type Color struct {
	R, G, B, A uint8
}

// RGB creates an opaque colour from 0..255 components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA returns c as a standard library colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Name returns the colour as "#rrggbb". Alpha is not included.
func (c Color) Name() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// Lerp linearly interpolates between c and other in 8-bit RGB space,
// rounding each channel to the nearest integer.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: lerp8(c.R, other.R, t),
		G: lerp8(c.G, other.G, t),
		B: lerp8(c.B, other.B, t),
		A: lerp8(c.A, other.A, t),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(clamp255(math.Round(float64(a) + (float64(b)-float64(a))*t)))
}

// Hex creates a colour from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without a
// leading '#'. Unparseable input yields opaque black.
func Hex(hex string) Color {
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return Color{A: 255}
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// ParseColor parses "#rrggbb" or "#rgb" strictly. It is used when reading
// style documents, where a malformed colour is a configuration error.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("%w: colour %q: want #rgb or #rrggbb", ErrConfig, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: colour %q: %v", ErrConfig, s, err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colours
var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
	Red   = RGB(255, 0, 0)
	Green = RGB(0, 255, 0)
	Blue  = RGB(0, 0, 255)
	Grey  = RGB(204, 204, 204)
)
