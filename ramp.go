package bivariate

import (
	"fmt"
	"maps"
	"strconv"
)

// RampType discriminates colour ramp variants in style documents.
type RampType string

const (
	RampGradient RampType = "Gradient"
	RampManual   RampType = "Manual"
)

// ColorRamp converts a class pair into one colour.
//
// A ColorRamp is owned by one Renderer at a time. Hand a Clone to editors so
// their changes do not reach a renderer in use until they are committed.
type ColorRamp interface {
	Name() string
	Type() RampType
	NumberOfClasses() int

	// Color returns the colour of class pair (i, j), both zero-based.
	Color(i, j int) Color

	// Properties describes the ramp as flat string properties.
	// Two ramps with equal properties produce identical colours.
	Properties() map[string]string

	Clone() ColorRamp
}

// GradientRamp samples two gradients at i/(n-1) and j/(n-1) and mixes the two
// samples.
type GradientRamp struct {
	name    string
	icon    string
	ramp1   Gradient
	ramp2   Gradient
	mixing  MixingMethod
	classes int
}

// NewGradientRamp creates a gradient ramp. classes must be at least 2.
func NewGradientRamp(name string, ramp1, ramp2 Gradient, mixing MixingMethod, classes int) (*GradientRamp, error) {
	if classes < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewClasses, classes)
	}
	if mixing == nil {
		mixing = MultiplyMixing{}
	}
	return &GradientRamp{
		name:    name,
		ramp1:   ramp1.Clone(),
		ramp2:   ramp2.Clone(),
		mixing:  mixing,
		classes: classes,
	}, nil
}

func (r *GradientRamp) Name() string          { return r.name }
func (r *GradientRamp) Type() RampType        { return RampGradient }
func (r *GradientRamp) NumberOfClasses() int  { return r.classes }
func (r *GradientRamp) Ramp1() Gradient       { return r.ramp1 }
func (r *GradientRamp) Ramp2() Gradient       { return r.ramp2 }
func (r *GradientRamp) Mixing() MixingMethod  { return r.mixing }
func (r *GradientRamp) Icon() string          { return r.icon }
func (r *GradientRamp) SetName(name string)   { r.name = name }
func (r *GradientRamp) SetRamp1(g Gradient)   { r.ramp1 = g.Clone() }
func (r *GradientRamp) SetRamp2(g Gradient)   { r.ramp2 = g.Clone() }
func (r *GradientRamp) SetIcon(icon string)   { r.icon = icon }

// SetMixingMethod replaces the mixing method. A nil method is ignored.
func (r *GradientRamp) SetMixingMethod(m MixingMethod) {
	if m != nil {
		r.mixing = m
	}
}

// SetNumberOfClasses changes the class count; n must be at least 2.
func (r *GradientRamp) SetNumberOfClasses(n int) error {
	if n < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewClasses, n)
	}
	r.classes = n
	return nil
}

// Color implements ColorRamp.
func (r *GradientRamp) Color(i, j int) Color {
	last := float64(r.classes - 1)
	c1 := r.ramp1.At(float64(i) / last)
	c2 := r.ramp2.At(float64(j) / last)
	return r.mixing.Mix(c1, c2)
}

// Properties implements ColorRamp.
func (r *GradientRamp) Properties() map[string]string {
	p := map[string]string{
		"type":                string(RampGradient),
		"number_of_classes":   strconv.Itoa(r.classes),
		"color_mixing_method": r.mixing.Name(),
	}
	for k, v := range r.ramp1.Properties() {
		p["color_ramp_1."+k] = v
	}
	for k, v := range r.ramp2.Properties() {
		p["color_ramp_2."+k] = v
	}
	return p
}

// Clone implements ColorRamp.
func (r *GradientRamp) Clone() ColorRamp {
	c := *r
	c.ramp1 = r.ramp1.Clone()
	c.ramp2 = r.ramp2.Clone()
	return &c
}

// ManualRamp looks colours up in an explicit square table indexed [i][j].
type ManualRamp struct {
	name   string
	colors [][]Color
}

// NewManualRamp creates a manual ramp. The table must be square with at
// least two rows; otherwise the error wraps ErrConfig.
func NewManualRamp(colors [][]Color) (*ManualRamp, error) {
	n := len(colors)
	if n < 2 {
		return nil, fmt.Errorf("%w: manual colour table needs at least 2 rows, got %d", ErrConfig, n)
	}
	for i, row := range colors {
		if len(row) != n {
			return nil, fmt.Errorf("%w: manual colour table is not square: row %d has %d colours, want %d",
				ErrConfig, i, len(row), n)
		}
	}
	return &ManualRamp{name: "Manual", colors: cloneTable(colors)}, nil
}

func (r *ManualRamp) Name() string         { return r.name }
func (r *ManualRamp) Type() RampType       { return RampManual }
func (r *ManualRamp) NumberOfClasses() int { return len(r.colors) }
func (r *ManualRamp) SetName(name string)  { r.name = name }

// Colors returns a copy of the colour table.
func (r *ManualRamp) Colors() [][]Color { return cloneTable(r.colors) }

// Color implements ColorRamp.
func (r *ManualRamp) Color(i, j int) Color {
	return r.colors[i][j]
}

// Properties implements ColorRamp.
func (r *ManualRamp) Properties() map[string]string {
	p := map[string]string{
		"type":              string(RampManual),
		"number_of_classes": strconv.Itoa(len(r.colors)),
	}
	for i, row := range r.colors {
		for j, c := range row {
			p[fmt.Sprintf("color.%d.%d", i, j)] = c.Name()
		}
	}
	return p
}

// Clone implements ColorRamp.
func (r *ManualRamp) Clone() ColorRamp {
	return &ManualRamp{name: r.name, colors: cloneTable(r.colors)}
}

func cloneTable(colors [][]Color) [][]Color {
	out := make([][]Color, len(colors))
	for i, row := range colors {
		out[i] = append([]Color(nil), row...)
	}
	return out
}

// sameRamp reports whether two ramps have equal properties.
func sameRamp(a, b ColorRamp) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return maps.Equal(a.Properties(), b.Properties())
}
