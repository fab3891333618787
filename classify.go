package bivariate

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"golang.org/x/text/language"

	"github.com/gogpu/bivariate/text"
)

// ClassRange is one class of a classified field: values in [Lower, Upper],
// both ends inclusive.
type ClassRange struct {
	Label string
	Lower float64
	Upper float64
}

// Contains reports whether v lies in [Lower, Upper].
func (c ClassRange) Contains(v float64) bool {
	return c.Lower <= v && v <= c.Upper
}

// Midpoint returns (Lower+Upper)/2.
func (c ClassRange) Midpoint() float64 {
	return (c.Lower + c.Upper) / 2
}

// Feature is one record of a layer.
type Feature interface {
	// ID identifies the feature within its layer.
	ID() int64

	// Attribute returns the numeric value of the named attribute. The boolean
	// is false when the attribute is missing, null or not numeric.
	Attribute(name string) (float64, bool)
}

// Layer is a collection of features.
type Layer interface {
	Features() iter.Seq[Feature]
	FeatureCount() int
}

// ClassificationMethod splits the values of a field into n contiguous classes.
type ClassificationMethod interface {
	// ID is the stable identifier written into style documents.
	ID() string

	// Classes returns n ordered, contiguous ranges covering the field's values.
	Classes(layer Layer, field string, n int) ([]ClassRange, error)

	LabelFormat() LabelFormat
	SetLabelFormat(LabelFormat)

	Clone() ClassificationMethod
}

// Classification method IDs.
const (
	EqualIntervalID = "EqualInterval"
	QuantileID      = "Quantile"
)

// LabelFormat controls class labels. Format uses %1 for the lower bound and
// %2 for the upper bound.
type LabelFormat struct {
	Format             string
	Precision          int
	TrimTrailingZeroes bool

	// Numbers formats the bounds; nil means English formatting.
	Numbers *text.NumberFormatter
}

// DefaultLabelFormat returns "%1 - %2" with 4 decimals, trimmed.
func DefaultLabelFormat() LabelFormat {
	return LabelFormat{
		Format:             "%1 - %2",
		Precision:          4,
		TrimTrailingZeroes: true,
	}
}

// Label formats a class label.
func (lf LabelFormat) Label(lower, upper float64) string {
	nf := lf.Numbers
	if nf == nil {
		nf = text.NewNumberFormatter(language.English)
	}
	format := func(v float64) string {
		if lf.TrimTrailingZeroes {
			return nf.FormatTrimmed(v, lf.Precision)
		}
		return nf.Format(v, lf.Precision)
	}
	return strings.NewReplacer("%1", format(lower), "%2", format(upper)).Replace(lf.Format)
}

// EqualInterval splits [min, max] of a field into n classes of equal width.
type EqualInterval struct {
	labels LabelFormat
}

// NewEqualInterval creates an equal interval method with the default labels.
func NewEqualInterval() *EqualInterval {
	return &EqualInterval{labels: DefaultLabelFormat()}
}

func (m *EqualInterval) ID() string                   { return EqualIntervalID }
func (m *EqualInterval) LabelFormat() LabelFormat     { return m.labels }
func (m *EqualInterval) SetLabelFormat(l LabelFormat) { m.labels = l }

func (m *EqualInterval) Clone() ClassificationMethod {
	c := *m
	return &c
}

// Classes implements ClassificationMethod.
func (m *EqualInterval) Classes(layer Layer, field string, n int) ([]ClassRange, error) {
	values, err := fieldValues(layer, field, n)
	if err != nil {
		return nil, err
	}
	lo, hi := stats.Bounds(values)
	step := (hi - lo) / float64(n)

	breaks := make([]float64, n+1)
	breaks[0] = lo
	for k := 1; k < n; k++ {
		breaks[k] = lo + float64(k)*step
	}
	breaks[n] = hi
	return rangesFromBreaks(breaks, m.labels), nil
}

// Quantile puts roughly the same number of values into each class.
type Quantile struct {
	labels LabelFormat
}

// NewQuantile creates a quantile method with the default labels.
func NewQuantile() *Quantile {
	return &Quantile{labels: DefaultLabelFormat()}
}

func (m *Quantile) ID() string                   { return QuantileID }
func (m *Quantile) LabelFormat() LabelFormat     { return m.labels }
func (m *Quantile) SetLabelFormat(l LabelFormat) { m.labels = l }

func (m *Quantile) Clone() ClassificationMethod {
	c := *m
	return &c
}

// Classes implements ClassificationMethod.
func (m *Quantile) Classes(layer Layer, field string, n int) ([]ClassRange, error) {
	values, err := fieldValues(layer, field, n)
	if err != nil {
		return nil, err
	}
	slices.Sort(values)
	sample := stats.Sample{Xs: values, Sorted: true}

	breaks := make([]float64, n+1)
	breaks[0] = values[0]
	for k := 1; k < n; k++ {
		breaks[k] = sample.Quantile(float64(k) / float64(n))
	}
	breaks[n] = values[len(values)-1]
	return rangesFromBreaks(breaks, m.labels), nil
}

func fieldValues(layer Layer, field string, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewClasses, n)
	}
	values := make([]float64, 0, layer.FeatureCount())
	for f := range layer.Features() {
		v, ok := f.Attribute(field)
		if !ok || math.IsNaN(v) {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: field %q has no numeric values", ErrNoClasses, field)
	}
	return values, nil
}

func rangesFromBreaks(breaks []float64, labels LabelFormat) []ClassRange {
	ranges := make([]ClassRange, len(breaks)-1)
	for i := range ranges {
		lo, hi := breaks[i], breaks[i+1]
		ranges[i] = ClassRange{Label: labels.Label(lo, hi), Lower: lo, Upper: hi}
	}
	return ranges
}

// PositionInClasses returns the index of the last range in list order that
// contains value. Ranges touch at their bounds, so a value on a shared bound
// belongs to the upper class. The error wraps ErrUnclassified when no range
// contains value.
func PositionInClasses(value float64, classes []ClassRange) (int, error) {
	pos := -1
	for i, c := range classes {
		if c.Contains(value) {
			pos = i
		}
	}
	if pos < 0 {
		return -1, fmt.Errorf("%w: %v", ErrUnclassified, value)
	}
	return pos, nil
}

// Breaks returns the legend break values of classes: the first lower bound
// followed by every upper bound.
func Breaks(classes []ClassRange) []float64 {
	if len(classes) == 0 {
		return nil
	}
	values := make([]float64, 0, len(classes)+1)
	values = append(values, classes[0].Lower)
	for _, c := range classes {
		values = append(values, c.Upper)
	}
	return values
}

// Midpoints returns the midpoint of every class.
func Midpoints(classes []ClassRange) []float64 {
	values := make([]float64, len(classes))
	for i, c := range classes {
		values[i] = c.Midpoint()
	}
	return values
}

// ClassificationRegistry creates classification methods by ID.
type ClassificationRegistry struct {
	ids       []string
	factories map[string]func() ClassificationMethod
}

// NewClassificationRegistry creates an empty registry.
func NewClassificationRegistry() *ClassificationRegistry {
	return &ClassificationRegistry{factories: make(map[string]func() ClassificationMethod)}
}

// DefaultClassificationRegistry returns a registry with EqualInterval and
// Quantile.
func DefaultClassificationRegistry() *ClassificationRegistry {
	r := NewClassificationRegistry()
	r.Register(EqualIntervalID, func() ClassificationMethod { return NewEqualInterval() })
	r.Register(QuantileID, func() ClassificationMethod { return NewQuantile() })
	return r
}

// Register adds a factory. It panics on a nil factory or a duplicate ID,
// which are programming errors caught at start-up.
func (r *ClassificationRegistry) Register(id string, factory func() ClassificationMethod) {
	if factory == nil {
		panic("bivariate: Register factory is nil")
	}
	if _, dup := r.factories[id]; dup {
		panic("bivariate: Register called twice for " + id)
	}
	r.ids = append(r.ids, id)
	r.factories[id] = factory
}

// ByID returns a new method for id.
func (r *ClassificationRegistry) ByID(id string) (ClassificationMethod, bool) {
	f, ok := r.factories[id]
	if !ok {
		return nil, false
	}
	return f(), true
}

// IDs returns registered IDs in registration order.
func (r *ClassificationRegistry) IDs() []string {
	return slices.Clone(r.ids)
}
