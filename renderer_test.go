package bivariate

import (
	"errors"
	"math"
	"slices"
	"testing"
)

// classifiedRenderer returns a renderer with a 3-class white→red ×
// white→blue Direct ramp, classified on a = {0, 1, 6} and b = {0, 8, 9}.
// Breaks are a: 0, 2, 4, 6 and b: 0, 3, 6, 9.
func classifiedRenderer(t *testing.T) (*Renderer, testFeatures) {
	t.Helper()
	l := testLayer(t, []float64{0, 1, 6}, []float64{0, 8, 9})
	r := NewRenderer(
		WithFields("a", "b"),
		WithColorRamp(newDirectRamp(t, 3)),
	)
	if err := r.ClassifyField1(l, "a"); err != nil {
		t.Fatalf("ClassifyField1: %v", err)
	}
	if err := r.ClassifyField2(l, "b"); err != nil {
		t.Fatalf("ClassifyField2: %v", err)
	}
	return r, l
}

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer()
	if r.ColorRamp().Name() != PaletteCyanViolet {
		t.Errorf("ramp = %q, want %q", r.ColorRamp().Name(), PaletteCyanViolet)
	}
	if r.ClassificationMethod().ID() != EqualIntervalID {
		t.Errorf("method = %q, want %q", r.ClassificationMethod().ID(), EqualIntervalID)
	}
	if r.NumberOfClasses() != 3 {
		t.Errorf("NumberOfClasses() = %d, want 3", r.NumberOfClasses())
	}
	if len(r.UsedAttributes()) != 0 {
		t.Errorf("UsedAttributes() = %v, want none", r.UsedAttributes())
	}
	if !math.IsNaN(r.Field1Min()) || !math.IsNaN(r.Field2Max()) {
		t.Error("unclassified min/max are not NaN")
	}
}

func TestPairKey(t *testing.T) {
	tests := []struct {
		i, j int
		want string
	}{
		{0, 0, "1-1"},
		{0, 2, "1-3"},
		{4, 1, "5-2"},
	}
	for _, tt := range tests {
		if got := PairKey(tt.i, tt.j); got != tt.want {
			t.Errorf("PairKey(%d, %d) = %q, want %q", tt.i, tt.j, got, tt.want)
		}
	}
}

func TestSymbolForFeature(t *testing.T) {
	r, _ := classifiedRenderer(t)
	f := testFeature{id: 7, attrs: map[string]float64{"a": 1, "b": 8}}

	i, j, err := r.Positions(f)
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if i != 0 || j != 2 {
		t.Fatalf("Positions() = (%d, %d), want (0, 2)", i, j)
	}

	sym, err := r.SymbolForFeature(f)
	if err != nil {
		t.Fatalf("SymbolForFeature: %v", err)
	}
	if want := RGB(127, 127, 255); sym.Color != want {
		t.Errorf("symbol colour = %v, want %v", sym.Color, want)
	}
	if labels := r.ExistingLabels(); !slices.Equal(labels, []string{"1-3"}) {
		t.Errorf("ExistingLabels() = %v, want [1-3]", labels)
	}
}

func TestSymbolForValuesDoesNotRecord(t *testing.T) {
	r, _ := classifiedRenderer(t)
	r.SymbolForValues(1, 1)
	if len(r.ExistingLabels()) != 0 {
		t.Errorf("ExistingLabels() = %v, want none", r.ExistingLabels())
	}
	if len(r.Symbols()) != 1 {
		t.Errorf("len(Symbols()) = %d, want 1", len(r.Symbols()))
	}
}

func TestPositionsErrors(t *testing.T) {
	r, _ := classifiedRenderer(t)
	tests := []struct {
		name    string
		attrs   map[string]float64
		wantErr error
	}{
		{"missing first", map[string]float64{"b": 1}, ErrMissingAttribute},
		{"missing second", map[string]float64{"a": 1}, ErrMissingAttribute},
		{"below range", map[string]float64{"a": -1, "b": 1}, ErrUnclassified},
		{"above range", map[string]float64{"a": 1, "b": 10}, ErrUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.SymbolForFeature(testFeature{id: 1, attrs: tt.attrs})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if len(r.ExistingLabels()) != 0 {
		t.Error("failed lookups recorded pairs")
	}
}

func TestSettersClearCache(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, r *Renderer)
	}{
		{"SetField1", func(_ *testing.T, r *Renderer) { r.SetField1("a") }},
		{"SetField2", func(_ *testing.T, r *Renderer) { r.SetField2("b") }},
		{"SetColorRamp", func(t *testing.T, r *Renderer) { r.SetColorRamp(newDirectRamp(t, 3)) }},
		{"SetClassificationMethod", func(_ *testing.T, r *Renderer) { r.SetClassificationMethod(NewQuantile()) }},
		{"SetMixingMethod", func(t *testing.T, r *Renderer) {
			if err := r.SetMixingMethod(DarkenMixing{}); err != nil {
				t.Fatal(err)
			}
		}},
		{"SetNumberOfClasses", func(t *testing.T, r *Renderer) {
			if err := r.SetNumberOfClasses(3); err != nil {
				t.Fatal(err)
			}
		}},
		{"ClassifyField1", func(t *testing.T, r *Renderer) {
			if err := r.ClassifyField1(testLayer(t, []float64{0, 6}, []float64{0, 9}), "a"); err != nil {
				t.Fatal(err)
			}
		}},
		{"Configure", func(t *testing.T, r *Renderer) {
			if err := r.Configure(r.Config()); err != nil {
				t.Fatal(err)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, l := classifiedRenderer(t)
			for f := range l.Features() {
				if _, err := r.SymbolForFeature(f); err != nil {
					t.Fatal(err)
				}
			}
			if len(r.Symbols()) == 0 || len(r.ExistingLabels()) == 0 {
				t.Fatal("nothing cached before the setter")
			}
			tt.mutate(t, r)
			if n := len(r.Symbols()); n != 0 {
				t.Errorf("%d symbols cached after %s", n, tt.name)
			}
			if n := len(r.ExistingLabels()); n != 0 {
				t.Errorf("%d observed pairs kept after %s", n, tt.name)
			}
		})
	}
}

func TestCacheNeverServesStaleColor(t *testing.T) {
	r, _ := classifiedRenderer(t)
	if got := r.SymbolForValues(0, 2).Color; got != RGB(127, 127, 255) {
		t.Fatalf("Direct colour = %v", got)
	}
	if err := r.SetMixingMethod(DarkenMixing{}); err != nil {
		t.Fatal(err)
	}
	if got, want := r.SymbolForValues(0, 2).Color, RGB(0, 0, 255); got != want {
		t.Errorf("colour after SetMixingMethod = %v, want %v", got, want)
	}
}

func TestNilSettersIgnored(t *testing.T) {
	r, _ := classifiedRenderer(t)
	r.SymbolForValues(0, 0)
	r.SetColorRamp(nil)
	r.SetClassificationMethod(nil)
	if r.ColorRamp() == nil || r.ClassificationMethod() == nil {
		t.Fatal("nil setter cleared the value")
	}
	if len(r.Symbols()) != 1 {
		t.Error("nil setter cleared the cache")
	}
}

func TestManualRampSettersFail(t *testing.T) {
	manual, err := NewManualRamp([][]Color{{White, Red}, {Blue, Black}})
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(WithColorRamp(manual))
	if err := r.SetMixingMethod(DirectMixing{}); !errors.Is(err, ErrConfig) {
		t.Errorf("SetMixingMethod error = %v, want ErrConfig", err)
	}
	if err := r.SetNumberOfClasses(4); !errors.Is(err, ErrConfig) {
		t.Errorf("SetNumberOfClasses error = %v, want ErrConfig", err)
	}
	if r.NumberOfClasses() != 2 {
		t.Errorf("NumberOfClasses() = %d, want 2", r.NumberOfClasses())
	}
}

func TestGenerateLegendPolygons(t *testing.T) {
	r, l := classifiedRenderer(t)
	for f := range l.Features() {
		if _, err := r.SymbolForFeature(f); err != nil {
			t.Fatal(err)
		}
	}

	polys := r.GenerateLegendPolygons()
	if len(polys) != 9 {
		t.Fatalf("len(polygons) = %d, want 9", len(polys))
	}
	// a = {0, 1, 6} and b = {0, 8, 9} put features in pairs (0,0), (0,2), (2,2).
	observed := map[[2]int]bool{{0, 0}: true, {0, 2}: true, {2, 2}: true}
	for k, p := range polys {
		if p.X != k/3 || p.Y != k%3 {
			t.Errorf("polygon %d at (%d, %d), want (%d, %d)", k, p.X, p.Y, k/3, k%3)
		}
		if p.ExistsInMap != observed[[2]int{p.X, p.Y}] {
			t.Errorf("polygon (%d, %d) ExistsInMap = %v", p.X, p.Y, p.ExistsInMap)
		}
		if p.Symbol.Color != r.ColorFor(p.X, p.Y) {
			t.Errorf("polygon (%d, %d) colour = %v, want %v", p.X, p.Y, p.Symbol.Color, r.ColorFor(p.X, p.Y))
		}
	}

	items := r.LegendSymbolItems()
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	if !slices.Equal(keys, []string{"1-1", "1-3", "3-3"}) {
		t.Errorf("LegendSymbolItems keys = %v", keys)
	}
}

func TestGenerateCategories(t *testing.T) {
	r, _ := classifiedRenderer(t)
	r.GenerateCategories()
	if n := len(r.Symbols()); n != 9 {
		t.Errorf("len(Symbols()) = %d, want 9", n)
	}
	if len(r.ExistingLabels()) != 0 {
		t.Error("GenerateCategories recorded observed pairs")
	}
}

func TestBreaksAndSummary(t *testing.T) {
	r, _ := classifiedRenderer(t)
	if got := r.Field1Breaks(); !slices.Equal(got, []float64{0, 2, 4, 6}) {
		t.Errorf("Field1Breaks() = %v", got)
	}
	if got := r.Field2Midpoints(); !slices.Equal(got, []float64{1.5, 4.5, 7.5}) {
		t.Errorf("Field2Midpoints() = %v", got)
	}
	if r.Field1Min() != 1 || r.Field1Max() != 5 {
		t.Errorf("Field1 min/max = %v/%v, want 1/5", r.Field1Min(), r.Field1Max())
	}
	if got := r.UsedAttributes(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("UsedAttributes() = %v", got)
	}
}

func TestRendererClone(t *testing.T) {
	r, l := classifiedRenderer(t)
	for f := range l.Features() {
		if _, err := r.SymbolForFeature(f); err != nil {
			t.Fatal(err)
		}
	}

	c := r.Clone()
	if !c.Equal(r) {
		t.Fatal("clone is not Equal to the original")
	}
	if !slices.Equal(c.ExistingLabels(), r.ExistingLabels()) {
		t.Error("clone lost observed pairs")
	}

	if err := c.SetMixingMethod(DarkenMixing{}); err != nil {
		t.Fatal(err)
	}
	if r.ColorRamp().(*GradientRamp).Mixing().Name() != DirectMixingName {
		t.Error("changing the clone's ramp changed the original")
	}
	if len(r.Symbols()) == 0 {
		t.Error("clearing the clone's cache cleared the original")
	}
}

func TestRendererEqual(t *testing.T) {
	a, _ := classifiedRenderer(t)
	b, _ := classifiedRenderer(t)
	if !a.Equal(b) {
		t.Fatal("identically built renderers differ")
	}

	// Labels and caches are not compared.
	b.SymbolForValues(1, 1)
	classes := b.Classes1()
	classes[1].Label = "changed"
	b.classes1 = classes
	if !a.Equal(b) {
		t.Error("labels or cache affected equality")
	}

	b.SetField2("c")
	if a.Equal(b) {
		t.Error("different field names compare equal")
	}

	c, _ := classifiedRenderer(t)
	if err := c.SetMixingMethod(MultiplyMixing{}); err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Error("different mixing methods compare equal")
	}

	var nilR *Renderer
	if a.Equal(nilR) || !nilR.Equal(nil) {
		t.Error("nil handling")
	}
}

func TestConfigIsACopy(t *testing.T) {
	r, _ := classifiedRenderer(t)
	cfg := r.Config()
	cfg.Classes1[0].Lower = -100
	cfg.ColorRamp.(*GradientRamp).SetName("edited")
	if r.Classes1()[0].Lower == -100 || r.ColorRamp().Name() == "edited" {
		t.Fatal("editing Config() changed the renderer")
	}

	if err := r.Configure(cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if r.Classes1()[0].Lower != -100 || r.ColorRamp().Name() != "edited" {
		t.Error("Configure did not apply the edited configuration")
	}
}

func TestSmallerRampClearsClasses(t *testing.T) {
	manual, err := NewManualRamp([][]Color{{White, Red}, {Blue, Black}})
	if err != nil {
		t.Fatal(err)
	}

	r, l := classifiedRenderer(t)
	r.SetColorRamp(manual)
	if len(r.Classes1()) != 0 || len(r.Classes2()) != 0 {
		t.Fatalf("classes kept after switching to a 2-class ramp: %v, %v", r.Classes1(), r.Classes2())
	}
	if p := r.GenerateLegendPolygons(); len(p) != 0 {
		t.Errorf("GenerateLegendPolygons() = %d polygons, want none", len(p))
	}
	for f := range l.Features() {
		if _, err := r.SymbolForFeature(f); !errors.Is(err, ErrUnclassified) {
			t.Errorf("SymbolForFeature error = %v, want ErrUnclassified", err)
		}
	}

	if err := r.ClassifyField1(l, "a"); err != nil {
		t.Fatal(err)
	}
	if err := r.ClassifyField2(l, "b"); err != nil {
		t.Fatal(err)
	}
	if p := r.GenerateLegendPolygons(); len(p) != 4 {
		t.Errorf("GenerateLegendPolygons() after reclassifying = %d polygons, want 4", len(p))
	}

	g, _ := classifiedRenderer(t)
	if err := g.SetNumberOfClasses(2); err != nil {
		t.Fatal(err)
	}
	if len(g.Classes1()) != 0 {
		t.Errorf("classes kept after SetNumberOfClasses(2): %v", g.Classes1())
	}
	if err := g.SetNumberOfClasses(4); err != nil {
		t.Fatal(err)
	}
}

func TestConfigureRejectsClassesBeyondRamp(t *testing.T) {
	manual, err := NewManualRamp([][]Color{{White, Red}, {Blue, Black}})
	if err != nil {
		t.Fatal(err)
	}
	r, _ := classifiedRenderer(t)
	cfg := r.Config()
	cfg.ColorRamp = manual
	if err := r.Configure(cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("Configure error = %v, want ErrConfig", err)
	}
	if r.ColorRamp().Type() != RampGradient || len(r.Classes1()) != 3 {
		t.Error("rejected Configure changed the renderer")
	}

	big := NewRenderer(
		WithColorRamp(manual),
		WithClasses(make([]ClassRange, 3), make([]ClassRange, 2)),
	)
	if len(big.Classes1()) != 0 || len(big.GenerateLegendPolygons()) != 0 {
		t.Error("NewRenderer kept classes that do not fit the ramp")
	}
}
