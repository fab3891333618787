package bivariate

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// ColorStop represents a colour at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  Color   // Color at this position
}

// Gradient is a single-variable colour ramp running from Color1 at 0 to
// Color2 at 1, with optional intermediate stops. Sampling interpolates
// linearly in 8-bit RGB.
type Gradient struct {
	Color1 Color
	Color2 Color
	Stops  []ColorStop
}

// NewGradient creates a two-stop gradient.
func NewGradient(c1, c2 Color) Gradient {
	return Gradient{Color1: c1, Color2: c2}
}

// At samples the gradient at t. t is clamped to [0, 1].
func (g Gradient) At(t float64) Color {
	return colorAtOffset(g.allStops(), clamp01(t))
}

// Clone returns a copy that shares no slices with g.
func (g Gradient) Clone() Gradient {
	g.Stops = slices.Clone(g.Stops)
	return g
}

// Properties returns the gradient as string properties, in the shape a
// QGIS gradient colour ramp reports them. Equal gradients have equal maps.
func (g Gradient) Properties() map[string]string {
	p := map[string]string{
		"color1":   rgbaProperty(g.Color1),
		"color2":   rgbaProperty(g.Color2),
		"rampType": "gradient",
		"discrete": "0",
		"spec":     "rgb",
	}
	if len(g.Stops) > 0 {
		parts := make([]string, len(g.Stops))
		for i, s := range sortStops(g.Stops) {
			parts[i] = strconv.FormatFloat(s.Offset, 'g', -1, 64) + ";" + rgbaProperty(s.Color)
		}
		p["stops"] = strings.Join(parts, ":")
	}
	return p
}

// gradientFromProperties is the inverse of Properties.
func gradientFromProperties(p map[string]string) (Gradient, error) {
	c1, err := parseRGBAProperty(p["color1"])
	if err != nil {
		return Gradient{}, err
	}
	c2, err := parseRGBAProperty(p["color2"])
	if err != nil {
		return Gradient{}, err
	}
	g := NewGradient(c1, c2)
	if s := p["stops"]; s != "" {
		for _, part := range strings.Split(s, ":") {
			off, col, ok := strings.Cut(part, ";")
			if !ok {
				return Gradient{}, fmt.Errorf("%w: gradient stop %q", ErrConfig, part)
			}
			o, err := strconv.ParseFloat(off, 64)
			if err != nil {
				return Gradient{}, fmt.Errorf("%w: gradient stop offset %q", ErrConfig, off)
			}
			c, err := parseRGBAProperty(col)
			if err != nil {
				return Gradient{}, err
			}
			g.Stops = append(g.Stops, ColorStop{Offset: o, Color: c})
		}
	}
	return g, nil
}

func rgbaProperty(c Color) string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}

func parseRGBAProperty(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Color{}, fmt.Errorf("%w: colour property %q", ErrConfig, s)
	}
	var ch [4]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: colour property %q", ErrConfig, s)
		}
		ch[i] = uint8(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func (g Gradient) allStops() []ColorStop {
	stops := make([]ColorStop, 0, len(g.Stops)+2)
	stops = append(stops, ColorStop{Offset: 0, Color: g.Color1})
	stops = append(stops, g.Stops...)
	stops = append(stops, ColorStop{Offset: 1, Color: g.Color2})
	return sortStops(stops)
}

// sortStops sorts color stops by offset without modifying the input.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := slices.Clone(stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// colorAtOffset returns the interpolated colour at t for sorted stops.
func colorAtOffset(stops []ColorStop, t float64) Color {
	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})

	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	stop1 := stops[idx-1]
	stop2 := stops[idx]

	// Coincident stops
	if stop2.Offset == stop1.Offset {
		return stop1.Color
	}

	localT := (t - stop1.Offset) / (stop2.Offset - stop1.Offset)
	return stop1.Color.Lerp(stop2.Color, localT)
}
