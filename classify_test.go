package bivariate

import (
	"errors"
	"iter"
	"math"
	"testing"

	"golang.org/x/text/language"

	"github.com/gogpu/bivariate/text"
)

type testFeature struct {
	id    int64
	attrs map[string]float64
}

func (f testFeature) ID() int64 { return f.id }

func (f testFeature) Attribute(name string) (float64, bool) {
	v, ok := f.attrs[name]
	return v, ok
}

type testFeatures []testFeature

func (l testFeatures) Features() iter.Seq[Feature] {
	return func(yield func(Feature) bool) {
		for _, f := range l {
			if !yield(f) {
				return
			}
		}
	}
}

func (l testFeatures) FeatureCount() int { return len(l) }

// testLayer builds features with attributes "a" and "b". NaN leaves the
// attribute out.
func testLayer(t *testing.T, a, b []float64) testFeatures {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("testLayer: %d a values, %d b values", len(a), len(b))
	}
	l := make(testFeatures, len(a))
	for i := range a {
		attrs := make(map[string]float64)
		if !math.IsNaN(a[i]) {
			attrs["a"] = a[i]
		}
		if !math.IsNaN(b[i]) {
			attrs["b"] = b[i]
		}
		l[i] = testFeature{id: int64(i + 1), attrs: attrs}
	}
	return l
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEqualInterval(t *testing.T) {
	values := []float64{0.042, 0.1, 0.15, 0.2, 0.241}
	l := testLayer(t, values, values)

	classes, err := NewEqualInterval().Classes(l, "a", 3)
	if err != nil {
		t.Fatalf("Classes: %v", err)
	}
	if len(classes) != 3 {
		t.Fatalf("len(classes) = %d, want 3", len(classes))
	}
	step := (0.241 - 0.042) / 3
	want := []float64{0.042, 0.042 + step, 0.042 + 2*step, 0.241}
	got := Breaks(classes)
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Errorf("break %d = %v, want %v", i, got[i], want[i])
		}
	}
	for i := 1; i < len(classes); i++ {
		if classes[i].Lower != classes[i-1].Upper {
			t.Errorf("class %d does not start where class %d ends", i, i-1)
		}
	}
	if classes[0].Label != "0.042 - 0.1083" {
		t.Errorf("label = %q, want %q", classes[0].Label, "0.042 - 0.1083")
	}
}

func TestQuantile(t *testing.T) {
	values := []float64{9, 1, 8, 2, 7, 3, 6, 4, 5}
	l := testLayer(t, values, values)

	classes, err := NewQuantile().Classes(l, "a", 3)
	if err != nil {
		t.Fatalf("Classes: %v", err)
	}
	if classes[0].Lower != 1 || classes[2].Upper != 9 {
		t.Errorf("extent = [%v, %v], want [1, 9]", classes[0].Lower, classes[2].Upper)
	}

	counts := make([]int, 3)
	for _, v := range values {
		pos, err := PositionInClasses(v, classes)
		if err != nil {
			t.Fatal(err)
		}
		counts[pos]++
	}
	for i, c := range counts {
		if c != 3 {
			t.Errorf("class %d holds %d values, want 3", i, c)
		}
	}
}

func TestClassesErrors(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name    string
		layer   testFeatures
		n       int
		wantErr error
	}{
		{"one class", testLayer(t, []float64{1, 2}, []float64{1, 2}), 1, ErrTooFewClasses},
		{"no values", testLayer(t, []float64{nan, nan}, []float64{1, 2}), 3, ErrNoClasses},
		{"empty layer", nil, 3, ErrNoClasses},
	}
	for _, tt := range tests {
		for _, m := range []ClassificationMethod{NewEqualInterval(), NewQuantile()} {
			t.Run(tt.name+"/"+m.ID(), func(t *testing.T) {
				if _, err := m.Classes(tt.layer, "a", tt.n); !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			})
		}
	}
}

func TestClassesSkipMissing(t *testing.T) {
	nan := math.NaN()
	l := testLayer(t, []float64{nan, 2, 10, nan}, []float64{1, 1, 1, 1})
	classes, err := NewEqualInterval().Classes(l, "a", 2)
	if err != nil {
		t.Fatal(err)
	}
	if classes[0].Lower != 2 || classes[1].Upper != 10 {
		t.Errorf("extent = [%v, %v], want [2, 10]", classes[0].Lower, classes[1].Upper)
	}
}

func TestPositionInClasses(t *testing.T) {
	classes := []ClassRange{
		{Lower: 0, Upper: 1},
		{Lower: 1, Upper: 2},
		{Lower: 2, Upper: 3},
	}
	tests := []struct {
		v    float64
		want int
	}{
		{0, 0},
		{0.5, 0},
		{1, 1}, // shared bound goes to the upper class
		{2, 2},
		{3, 2},
	}
	for _, tt := range tests {
		got, err := PositionInClasses(tt.v, classes)
		if err != nil {
			t.Fatalf("PositionInClasses(%v): %v", tt.v, err)
		}
		if got != tt.want {
			t.Errorf("PositionInClasses(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}

	for _, v := range []float64{-0.1, 3.1, math.NaN()} {
		if _, err := PositionInClasses(v, classes); !errors.Is(err, ErrUnclassified) {
			t.Errorf("PositionInClasses(%v) error = %v, want ErrUnclassified", v, err)
		}
	}
	if _, err := PositionInClasses(1, nil); !errors.Is(err, ErrUnclassified) {
		t.Errorf("no classes: error = %v, want ErrUnclassified", err)
	}
}

func TestBreaksAndMidpoints(t *testing.T) {
	classes := []ClassRange{{Lower: 0, Upper: 2}, {Lower: 2, Upper: 6}}
	b := Breaks(classes)
	if len(b) != 3 || b[0] != 0 || b[1] != 2 || b[2] != 6 {
		t.Errorf("Breaks() = %v, want [0 2 6]", b)
	}
	m := Midpoints(classes)
	if len(m) != 2 || m[0] != 1 || m[1] != 4 {
		t.Errorf("Midpoints() = %v, want [1 4]", m)
	}
	if Breaks(nil) != nil {
		t.Error("Breaks(nil) is not nil")
	}
}

func TestLabelFormat(t *testing.T) {
	tests := []struct {
		name   string
		lf     LabelFormat
		lo, hi float64
		want   string
	}{
		{"default trims", DefaultLabelFormat(), 1, 2.5, "1 - 2.5"},
		{"fixed decimals", LabelFormat{Format: "%1 - %2", Precision: 2}, 1, 2.5, "1.00 - 2.50"},
		{"custom format", LabelFormat{Format: "from %1 to %2", Precision: 0}, 1, 20, "from 1 to 20"},
		{"grouping", DefaultLabelFormat(), 1000, 25000.5, "1,000 - 25,000.5"},
		{
			"locale",
			LabelFormat{Format: "%1 - %2", Precision: 1, Numbers: text.NewNumberFormatter(language.German, text.WithoutGrouping())},
			1.5, 2000, "1,5 - 2000,0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lf.Label(tt.lo, tt.hi); got != tt.want {
				t.Errorf("Label(%v, %v) = %q, want %q", tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestClassificationRegistry(t *testing.T) {
	reg := DefaultClassificationRegistry()
	ids := reg.IDs()
	if len(ids) != 2 || ids[0] != EqualIntervalID || ids[1] != QuantileID {
		t.Errorf("IDs() = %v", ids)
	}

	a, _ := reg.ByID(QuantileID)
	b, _ := reg.ByID(QuantileID)
	if a == b {
		t.Error("ByID returned a shared instance")
	}
	if _, ok := reg.ByID("Jenks"); ok {
		t.Error("ByID found an unregistered method")
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	reg.Register(QuantileID, func() ClassificationMethod { return NewQuantile() })
}
