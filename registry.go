package bivariate

// Registry bundles the name lookups the renderer and its editors need. Build
// one at start-up with NewRegistry and pass it by reference.
type Registry struct {
	Mixing          *MixingRegistry
	Ramps           *RampRegistry
	Classifications *ClassificationRegistry
}

// NewRegistry returns a registry populated with the built-in mixing
// methods, palettes and classification methods.
func NewRegistry() *Registry {
	return &Registry{
		Mixing:          DefaultMixingRegistry(),
		Ramps:           DefaultRampRegistry(),
		Classifications: DefaultClassificationRegistry(),
	}
}

// DefaultRamp builds the ramp new renderers start with: Cyan - Violet with
// Multiply mixing and 3 classes.
func (r *Registry) DefaultRamp() ColorRamp {
	p, ok := r.Ramps.ByName(PaletteCyanViolet)
	if !ok {
		p = BuiltinPalettes()[5]
	}
	ramp, err := p.Ramp(3, MultiplyMixing{})
	if err != nil {
		panic("bivariate: default ramp: " + err.Error())
	}
	return ramp
}
