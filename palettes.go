package bivariate

import "slices"

// Palette is a named pair of gradients from which gradient ramps are built.
type Palette struct {
	Name  string
	Ramp1 Gradient
	Ramp2 Gradient
	Icon  string // icon file name, resolved by the host UI
}

// Ramp builds a gradient ramp from the palette.
func (p Palette) Ramp(classes int, mixing MixingMethod) (*GradientRamp, error) {
	r, err := NewGradientRamp(p.Name, p.Ramp1, p.Ramp2, mixing, classes)
	if err != nil {
		return nil, err
	}
	r.SetIcon(p.Icon)
	return r, nil
}

// paletteBase is the common low end of the built-in palettes.
var paletteBase = Hex("#d3d3d3")

func builtinPalette(name, c1, c2, icon string) Palette {
	return Palette{
		Name:  name,
		Ramp1: NewGradient(paletteBase, Hex(c1)),
		Ramp2: NewGradient(paletteBase, Hex(c2)),
		Icon:  icon,
	}
}

// Built-in palette names.
const (
	PaletteCyanViolet = "Cyan - Violet"
	PaletteGreenPink  = "Green - Pink"
)

// BuiltinPalettes returns the built-in palettes in display order.
func BuiltinPalettes() []Palette {
	return []Palette{
		builtinPalette("Cyan - Brown", "#80b9b5", "#a86a25", "cp_cyan_brown.png"),
		builtinPalette("Turquoise - Gold", "#4e9ec2", "#f6b500", "cp_turquoise_gold.png"),
		builtinPalette("Orange - Blue", "#f6742e", "#17afe7", "cp_orange_blue.png"),
		builtinPalette("Yellow - Blue", "#f1d301", "#0097f1", "cp_yellow_blue.png"),
		builtinPalette("Ligth Yellow - Purple", "#cab55a", "#9a73af", "cp_ligth_yellow_purple.png"),
		builtinPalette(PaletteCyanViolet, "#5bcaca", "#bf64ad", "cp_cyan_violet.png"),
		builtinPalette("Blue - Green", "#6c84b7", "#73af7f", "cp_blue_green.png"),
		builtinPalette("Violet - Blue", "#ae3a4c", "#4886c2", "cp_violet_blue.png"),
		builtinPalette("Pink - Blue", "#cb5b5b", "#66adc0", "cp_pink_blue.png"),
		builtinPalette(PaletteGreenPink, "#4cac26", "#d0258c", "cp_green_pink.png"),
		builtinPalette("Green - Purple", "#028834", "#7a3293", "cp_green_purple.png"),
		builtinPalette("Orange - Purple", "#e95f00", "#5e3c96", "cp_orange_purple.png"),
	}
}

// RampRegistry resolves palettes by name.
type RampRegistry struct {
	palettes []Palette
}

// NewRampRegistry creates a registry holding palettes in the given order.
// Later palettes with a duplicate name are ignored.
func NewRampRegistry(palettes ...Palette) *RampRegistry {
	r := &RampRegistry{}
	for _, p := range palettes {
		if _, dup := r.ByName(p.Name); dup {
			continue
		}
		r.palettes = append(r.palettes, p)
	}
	return r
}

// DefaultRampRegistry returns a registry with the built-in palettes.
func DefaultRampRegistry() *RampRegistry {
	return NewRampRegistry(BuiltinPalettes()...)
}

// ByName returns the palette with exactly the given name.
func (r *RampRegistry) ByName(name string) (Palette, bool) {
	for _, p := range r.palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// Names returns palette names in registration order.
func (r *RampRegistry) Names() []string {
	names := make([]string, len(r.palettes))
	for i, p := range r.palettes {
		names[i] = p.Name
	}
	return names
}

// Icons returns palette icon file names in registration order.
func (r *RampRegistry) Icons() []string {
	icons := make([]string, len(r.palettes))
	for i, p := range r.palettes {
		icons[i] = p.Icon
	}
	return icons
}

// Palettes returns a copy of the registered palettes.
func (r *RampRegistry) Palettes() []Palette {
	return slices.Clone(r.palettes)
}
