package bivariate

import "slices"

// MixingMethod combines two colours into one. Implementations are pure and
// total over the whole 0..255 channel domain. Name is the stable key written
// into style documents.
type MixingMethod interface {
	Name() string
	Mix(a, b Color) Color
}

// Names of the built-in mixing methods.
const (
	DirectMixingName   = "Direct Mixing"
	DarkenMixingName   = "Blend Darken"
	MultiplyMixingName = "Blend Multiply"
)

// DirectMixing averages the channels, rounding down.
type DirectMixing struct{}

func (DirectMixing) Name() string { return DirectMixingName }

func (DirectMixing) Mix(a, b Color) Color {
	return RGB(
		uint8((int(a.R)+int(b.R))/2),
		uint8((int(a.G)+int(b.G))/2),
		uint8((int(a.B)+int(b.B))/2),
	)
}

// DarkenMixing keeps the darker value of each channel.
type DarkenMixing struct{}

func (DarkenMixing) Name() string { return DarkenMixingName }

func (DarkenMixing) Mix(a, b Color) Color {
	return RGB(min(a.R, b.R), min(a.G, b.G), min(a.B, b.B))
}

// MultiplyMixing multiplies the normalized channels and rescales to 0..255,
// truncating.
type MultiplyMixing struct{}

func (MultiplyMixing) Name() string { return MultiplyMixingName }

func (MultiplyMixing) Mix(a, b Color) Color {
	mul := func(x, y uint8) uint8 {
		return uint8((float64(x) / 255) * (float64(y) / 255) * 255)
	}
	return RGB(mul(a.R, b.R), mul(a.G, b.G), mul(a.B, b.B))
}

// MixingRegistry resolves mixing methods by name. The order of registration
// is the order reported by Names, which is what a UI lists.
type MixingRegistry struct {
	methods []MixingMethod
}

// NewMixingRegistry creates a registry holding methods in the given order.
// Later methods with a duplicate name are ignored.
func NewMixingRegistry(methods ...MixingMethod) *MixingRegistry {
	r := &MixingRegistry{}
	for _, m := range methods {
		if _, dup := r.ByName(m.Name()); dup {
			continue
		}
		r.methods = append(r.methods, m)
	}
	return r
}

// DefaultMixingRegistry returns a registry with Direct, Darken and Multiply.
func DefaultMixingRegistry() *MixingRegistry {
	return NewMixingRegistry(DirectMixing{}, DarkenMixing{}, MultiplyMixing{})
}

// ByName returns the method with exactly the given name.
// The boolean is false when no method matches.
func (r *MixingRegistry) ByName(name string) (MixingMethod, bool) {
	for _, m := range r.methods {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// Names returns the registered names in registration order.
func (r *MixingRegistry) Names() []string {
	names := make([]string, len(r.methods))
	for i, m := range r.methods {
		names[i] = m.Name()
	}
	return names
}

// Methods returns a copy of the registered methods.
func (r *MixingRegistry) Methods() []MixingMethod {
	return slices.Clone(r.methods)
}
