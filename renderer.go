package bivariate

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// RendererType is the type discriminator written into style documents.
const RendererType = "BivariateRenderer"

// Renderer classifies features on two numeric fields and colours each
// feature by mixing the colours of its two classes.
//
// Symbols are cached per class pair and the pairs seen while rendering are
// recorded. Both grow monotonically and are cleared by every setter that
// changes how colours are computed. A Renderer is not safe for concurrent
// use; give each goroutine its own Clone.
type Renderer struct {
	registry *Registry

	field1   string
	field2   string
	method   ClassificationMethod
	classes1 []ClassRange
	classes2 []ClassRange
	ramp     ColorRamp

	cache    map[string]FillSymbol
	existing map[string]struct{}
}

// Option configures a Renderer during creation.
type Option func(*Renderer)

// WithRegistry sets the registry used to resolve names. Without it the
// renderer uses NewRegistry.
func WithRegistry(reg *Registry) Option {
	return func(r *Renderer) {
		r.registry = reg
	}
}

// WithFields sets both field names.
func WithFields(field1, field2 string) Option {
	return func(r *Renderer) {
		r.field1 = field1
		r.field2 = field2
	}
}

// WithColorRamp sets the colour ramp. The renderer keeps a clone.
func WithColorRamp(ramp ColorRamp) Option {
	return func(r *Renderer) {
		if ramp != nil {
			r.ramp = ramp.Clone()
		}
	}
}

// WithClassificationMethod sets the classification method.
func WithClassificationMethod(m ClassificationMethod) Option {
	return func(r *Renderer) {
		if m != nil {
			r.method = m.Clone()
		}
	}
}

// WithClasses sets precomputed class ranges for both fields.
func WithClasses(classes1, classes2 []ClassRange) Option {
	return func(r *Renderer) {
		r.classes1 = slices.Clone(classes1)
		r.classes2 = slices.Clone(classes2)
	}
}

// NewRenderer creates a renderer. Unless overridden it uses the Cyan - Violet
// palette with Multiply mixing, 3 classes and equal interval classification.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		cache:    make(map[string]FillSymbol),
		existing: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = NewRegistry()
	}
	if r.ramp == nil {
		r.ramp = r.registry.DefaultRamp()
	}
	if r.method == nil {
		r.method = NewEqualInterval()
	}
	r.fitClasses()
	return r
}

// Config is the full classification configuration of a Renderer, applied
// in one step with Configure.
type Config struct {
	Field1               string
	Field2               string
	ClassificationMethod ClassificationMethod
	ColorRamp            ColorRamp
	Classes1             []ClassRange
	Classes2             []ClassRange
}

// Config returns a copy of the current configuration. Editing the copy does
// not affect the renderer until it is passed to Configure.
func (r *Renderer) Config() Config {
	return Config{
		Field1:               r.field1,
		Field2:               r.field2,
		ClassificationMethod: r.method.Clone(),
		ColorRamp:            r.ramp.Clone(),
		Classes1:             slices.Clone(r.classes1),
		Classes2:             slices.Clone(r.classes2),
	}
}

// Configure replaces the whole configuration and clears the symbol cache
// once. A nil ramp or method keeps the current one. Class lists longer than
// the ramp's class count are rejected with an error wrapping ErrConfig and
// leave the renderer unchanged.
func (r *Renderer) Configure(cfg Config) error {
	ramp := r.ramp
	if cfg.ColorRamp != nil {
		ramp = cfg.ColorRamp
	}
	if err := checkClasses(ramp, cfg.Classes1, cfg.Classes2); err != nil {
		return err
	}
	r.field1 = cfg.Field1
	r.field2 = cfg.Field2
	if cfg.ClassificationMethod != nil {
		r.method = cfg.ClassificationMethod.Clone()
	}
	if cfg.ColorRamp != nil {
		r.ramp = cfg.ColorRamp.Clone()
	}
	r.classes1 = slices.Clone(cfg.Classes1)
	r.classes2 = slices.Clone(cfg.Classes2)
	r.resetCache()
	return nil
}

func checkClasses(ramp ColorRamp, classes1, classes2 []ClassRange) error {
	n := ramp.NumberOfClasses()
	if len(classes1) > n || len(classes2) > n {
		return fmt.Errorf("%w: %d x %d classes do not fit a %d-class colour ramp",
			ErrConfig, len(classes1), len(classes2), n)
	}
	return nil
}

// fitClasses drops both class lists when either no longer fits the ramp.
func (r *Renderer) fitClasses() {
	if checkClasses(r.ramp, r.classes1, r.classes2) == nil {
		return
	}
	Logger().Warn("bivariate: class ranges exceed the colour ramp, cleared until reclassified",
		"classes1", len(r.classes1), "classes2", len(r.classes2), "ramp", r.ramp.NumberOfClasses())
	r.classes1, r.classes2 = nil, nil
}

func (r *Renderer) resetCache() {
	clear(r.cache)
	clear(r.existing)
	Logger().Debug("bivariate: symbol cache reset",
		"field1", r.field1, "field2", r.field2)
}

func (r *Renderer) Registry() *Registry { return r.registry }
func (r *Renderer) Field1() string      { return r.field1 }
func (r *Renderer) Field2() string      { return r.field2 }

// Classes1 returns a copy of the class ranges of the first field.
func (r *Renderer) Classes1() []ClassRange { return slices.Clone(r.classes1) }

// Classes2 returns a copy of the class ranges of the second field.
func (r *Renderer) Classes2() []ClassRange { return slices.Clone(r.classes2) }

// ColorRamp returns a clone of the colour ramp.
func (r *Renderer) ColorRamp() ColorRamp { return r.ramp.Clone() }

// ClassificationMethod returns a clone of the classification method.
func (r *Renderer) ClassificationMethod() ClassificationMethod { return r.method.Clone() }

// NumberOfClasses returns the class count of the colour ramp.
func (r *Renderer) NumberOfClasses() int { return r.ramp.NumberOfClasses() }

// SetField1 sets the first field name and clears the cache.
func (r *Renderer) SetField1(name string) {
	r.field1 = name
	r.resetCache()
}

// SetField2 sets the second field name and clears the cache.
func (r *Renderer) SetField2(name string) {
	r.field2 = name
	r.resetCache()
}

// SetColorRamp replaces the colour ramp with a clone of ramp and clears the
// cache. A nil ramp is ignored. Class ranges that no longer fit the ramp are
// cleared until the fields are classified again.
func (r *Renderer) SetColorRamp(ramp ColorRamp) {
	if ramp == nil {
		return
	}
	r.ramp = ramp.Clone()
	r.fitClasses()
	r.resetCache()
}

// SetClassificationMethod replaces the classification method and clears the
// cache. A nil method is ignored.
func (r *Renderer) SetClassificationMethod(m ClassificationMethod) {
	if m == nil {
		return
	}
	r.method = m.Clone()
	r.resetCache()
}

// SetMixingMethod changes the mixing method of a gradient ramp and clears the
// cache. Manual ramps have no mixing method; the error wraps ErrConfig.
func (r *Renderer) SetMixingMethod(m MixingMethod) error {
	g, ok := r.ramp.(*GradientRamp)
	if !ok {
		return fmt.Errorf("%w: %s ramp has no mixing method", ErrConfig, r.ramp.Type())
	}
	g.SetMixingMethod(m)
	r.resetCache()
	return nil
}

// SetNumberOfClasses changes the class count of a gradient ramp and clears
// the cache. Manual ramps have a fixed table; the error wraps ErrConfig.
func (r *Renderer) SetNumberOfClasses(n int) error {
	g, ok := r.ramp.(*GradientRamp)
	if !ok {
		return fmt.Errorf("%w: %s ramp has a fixed number of classes", ErrConfig, r.ramp.Type())
	}
	if err := g.SetNumberOfClasses(n); err != nil {
		return err
	}
	r.fitClasses()
	r.resetCache()
	return nil
}

// ClassifyField1 classifies attribute of layer into NumberOfClasses ranges
// and stores them as the first field's classes.
func (r *Renderer) ClassifyField1(layer Layer, attribute string) error {
	classes, err := r.classify(layer, attribute)
	if err != nil {
		return err
	}
	r.classes1 = classes
	r.resetCache()
	return nil
}

// ClassifyField2 is ClassifyField1 for the second field.
func (r *Renderer) ClassifyField2(layer Layer, attribute string) error {
	classes, err := r.classify(layer, attribute)
	if err != nil {
		return err
	}
	r.classes2 = classes
	r.resetCache()
	return nil
}

func (r *Renderer) classify(layer Layer, attribute string) ([]ClassRange, error) {
	classes, err := r.method.Classes(layer, attribute, r.ramp.NumberOfClasses())
	if err != nil {
		return nil, fmt.Errorf("classify %q: %w", attribute, err)
	}
	Logger().Debug("bivariate: classified field",
		"field", attribute, "method", r.method.ID(), "classes", len(classes))
	return classes, nil
}

// PairKey returns the identifier of class pair (i, j): "{i+1}-{j+1}".
func PairKey(i, j int) string {
	return strconv.Itoa(i+1) + "-" + strconv.Itoa(j+1)
}

// ColorFor returns the colour of class pair (i, j).
func (r *Renderer) ColorFor(i, j int) Color {
	return r.ramp.Color(i, j)
}

// Positions returns the class indices of a feature's two attribute values.
func (r *Renderer) Positions(f Feature) (int, int, error) {
	i, err := r.position(f, r.field1, r.classes1)
	if err != nil {
		return -1, -1, err
	}
	j, err := r.position(f, r.field2, r.classes2)
	if err != nil {
		return -1, -1, err
	}
	return i, j, nil
}

func (r *Renderer) position(f Feature, field string, classes []ClassRange) (int, error) {
	v, ok := f.Attribute(field)
	if !ok {
		return -1, fmt.Errorf("feature %d: %w: %q", f.ID(), ErrMissingAttribute, field)
	}
	pos, err := PositionInClasses(v, classes)
	if err != nil {
		return -1, fmt.Errorf("feature %d field %q: %w", f.ID(), field, err)
	}
	return pos, nil
}

// SymbolForFeature returns the symbol of the feature's class pair and records
// the pair as present in the data. The error wraps ErrMissingAttribute or
// ErrUnclassified.
func (r *Renderer) SymbolForFeature(f Feature) (FillSymbol, error) {
	i, j, err := r.Positions(f)
	if err != nil {
		return FillSymbol{}, err
	}
	sym := r.SymbolForValues(i, j)
	r.existing[PairKey(i, j)] = struct{}{}
	return sym, nil
}

// SymbolForValues returns the cached symbol of class pair (i, j), creating it
// on first use. It does not record the pair as present in the data.
func (r *Renderer) SymbolForValues(i, j int) FillSymbol {
	key := PairKey(i, j)
	if sym, ok := r.cache[key]; ok {
		return sym
	}
	sym := DefaultFillSymbol().WithColor(r.ColorFor(i, j))
	r.cache[key] = sym
	return sym
}

// GenerateCategories fills the cache for every class pair of the ramp.
func (r *Renderer) GenerateCategories() {
	n := r.ramp.NumberOfClasses()
	for i := range n {
		for j := range n {
			r.SymbolForValues(i, j)
		}
	}
}

// GenerateLegendPolygons returns one legend polygon per pair of the
// Classes1 × Classes2 cross product, i outer and j inner.
func (r *Renderer) GenerateLegendPolygons() []LegendPolygon {
	polygons := make([]LegendPolygon, 0, len(r.classes1)*len(r.classes2))
	for i := range r.classes1 {
		for j := range r.classes2 {
			_, exists := r.existing[PairKey(i, j)]
			polygons = append(polygons, LegendPolygon{
				X:           i,
				Y:           j,
				Symbol:      r.SymbolForValues(i, j),
				ExistsInMap: exists,
			})
		}
	}
	return polygons
}

// ExistingLabels returns the sorted pair keys observed while rendering.
func (r *Renderer) ExistingLabels() []string {
	return slices.Sorted(maps.Keys(r.existing))
}

// LegendSymbolItems returns the cached symbols of observed pairs, sorted by
// pair key.
func (r *Renderer) LegendSymbolItems() []LegendSymbolItem {
	var items []LegendSymbolItem
	for _, key := range slices.Sorted(maps.Keys(r.cache)) {
		if _, ok := r.existing[key]; ok {
			items = append(items, LegendSymbolItem{Key: key, Symbol: r.cache[key]})
		}
	}
	return items
}

// Symbols returns every cached symbol, sorted by pair key.
func (r *Renderer) Symbols() []FillSymbol {
	keys := slices.Sorted(maps.Keys(r.cache))
	symbols := make([]FillSymbol, len(keys))
	for i, k := range keys {
		symbols[i] = r.cache[k]
	}
	return symbols
}

// UsedAttributes returns the non-empty field names.
func (r *Renderer) UsedAttributes() []string {
	var attrs []string
	for _, f := range []string{r.field1, r.field2} {
		if f != "" {
			attrs = append(attrs, f)
		}
	}
	return attrs
}

// Field1Breaks returns the legend breaks of the first field.
func (r *Renderer) Field1Breaks() []float64 { return Breaks(r.classes1) }

// Field2Breaks returns the legend breaks of the second field.
func (r *Renderer) Field2Breaks() []float64 { return Breaks(r.classes2) }

// Field1Midpoints returns the class midpoints of the first field.
func (r *Renderer) Field1Midpoints() []float64 { return Midpoints(r.classes1) }

// Field2Midpoints returns the class midpoints of the second field.
func (r *Renderer) Field2Midpoints() []float64 { return Midpoints(r.classes2) }

// Field1Min returns the midpoint of the first class of the first field, or
// NaN when the field has no classes.
func (r *Renderer) Field1Min() float64 { lo, _ := summary(r.classes1); return lo }

// Field1Max returns the midpoint of the last class of the first field, or NaN.
func (r *Renderer) Field1Max() float64 { _, hi := summary(r.classes1); return hi }

// Field2Min is Field1Min for the second field.
func (r *Renderer) Field2Min() float64 { lo, _ := summary(r.classes2); return lo }

// Field2Max is Field1Max for the second field.
func (r *Renderer) Field2Max() float64 { _, hi := summary(r.classes2); return hi }

func summary(classes []ClassRange) (lo, hi float64) {
	if len(classes) == 0 {
		return math.NaN(), math.NaN()
	}
	return classes[0].Midpoint(), classes[len(classes)-1].Midpoint()
}

// Equal reports whether r and other classify and colour features the same
// way. It compares field names, class counts, the midpoints of the first and
// last class of each field and the ramp properties. Class labels, inner
// ranges and caches are not compared.
func (r *Renderer) Equal(other *Renderer) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.field1 == other.field1 &&
		r.field2 == other.field2 &&
		r.ramp.NumberOfClasses() == other.ramp.NumberOfClasses() &&
		sameSummary(r.classes1, other.classes1) &&
		sameSummary(r.classes2, other.classes2) &&
		sameRamp(r.ramp, other.ramp)
}

func sameSummary(a, b []ClassRange) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	alo, ahi := summary(a)
	blo, bhi := summary(b)
	return alo == blo && ahi == bhi
}

// Clone returns an independent renderer with the same configuration. The
// symbol cache and observed pairs are copied.
func (r *Renderer) Clone() *Renderer {
	return &Renderer{
		registry: r.registry,
		field1:   r.field1,
		field2:   r.field2,
		method:   r.method.Clone(),
		classes1: slices.Clone(r.classes1),
		classes2: slices.Clone(r.classes2),
		ramp:     r.ramp.Clone(),
		cache:    maps.Clone(r.cache),
		existing: maps.Clone(r.existing),
	}
}

// String describes the renderer for logs.
func (r *Renderer) String() string {
	return fmt.Sprintf("%s(field1=%q, field2=%q, classes=%d, method=%s, ramp=%q)",
		RendererType, r.field1, r.field2, r.ramp.NumberOfClasses(), r.method.ID(), r.ramp.Name())
}
