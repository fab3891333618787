package layer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAttributeNonFinite(t *testing.T) {
	tbl, err := NewTable("v")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"Inf", "-Inf", "+inf", "NaN", "1e999"} {
		r, _ := tbl.Append(s)
		if v, ok := r.Attribute("v"); ok {
			t.Errorf("Attribute of %q = %v, want no value", s, v)
		}
	}
	r, _ := tbl.Append(" 2.5 ")
	if v, ok := r.Attribute("v"); !ok || v != 2.5 {
		t.Errorf("Attribute of \" 2.5 \" = %v, %v", v, ok)
	}
}

func TestTable(t *testing.T) {
	tbl, err := NewTable("name", "pop")
	if err != nil {
		t.Fatal(err)
	}
	a, _ := tbl.Append("Brno", "380000")
	b, _ := tbl.Append("Jihlava", "")
	if a.ID() != 0 || b.ID() != 1 {
		t.Errorf("IDs = %d, %d, want 0, 1", a.ID(), b.ID())
	}

	if v, ok := a.Attribute("pop"); !ok || v != 380000 {
		t.Errorf("Attribute(pop) = %v, %v", v, ok)
	}
	for _, field := range []string{"pop", "name", "missing"} {
		if _, ok := b.Attribute(field); ok {
			t.Errorf("Attribute(%q) of an empty, text or unknown value reported ok", field)
		}
	}

	if err := tbl.AddField("class"); err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetAttribute(1, "class", "2-3"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Jihlava", "", "2-3"}, b.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if v, _ := a.Value("class"); v != "" {
		t.Errorf("new field on an existing row = %q", v)
	}
	if diff := cmp.Diff([]string{"name", "pop", "class"}, tbl.Fields()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}

	n := 0
	for f := range tbl.Features() {
		if f.ID() != int64(n) {
			t.Errorf("feature %d has ID %d", n, f.ID())
		}
		n++
	}
	if n != 2 || tbl.FeatureCount() != 2 {
		t.Errorf("iterated %d features, FeatureCount() = %d", n, tbl.FeatureCount())
	}
}

func TestTableErrors(t *testing.T) {
	tbl, _ := NewTable("a")
	if _, err := tbl.Append("1", "2"); !errors.Is(err, ErrFieldCount) {
		t.Errorf("Append error = %v, want ErrFieldCount", err)
	}
	if err := tbl.SetAttribute(7, "a", "1"); !errors.Is(err, ErrUnknownFeature) {
		t.Errorf("SetAttribute error = %v, want ErrUnknownFeature", err)
	}
	tbl.Insert(7, "x")
	if err := tbl.SetAttribute(7, "b", "1"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("SetAttribute error = %v, want ErrUnknownField", err)
	}
	if _, err := tbl.Insert(7, "y"); err == nil {
		t.Error("Insert accepted a duplicate id")
	}
	if err := tbl.AddField(" "); !errors.Is(err, ErrUnknownField) {
		t.Errorf("AddField(blank) error = %v", err)
	}
	// Append continues after the highest explicit id.
	if r, _ := tbl.Append("z"); r.ID() != 8 {
		t.Errorf("Append after Insert(7) got id %d", r.ID())
	}
	if _, err := NewTable("a", ""); err == nil {
		t.Error("NewTable accepted an empty field name")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	in := "id,income,density\n1, 25000.5,120\n2,,\n3,\"31,000\",7\n"
	tbl, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tbl.FeatureCount() != 3 {
		t.Fatalf("FeatureCount() = %d", tbl.FeatureCount())
	}
	r, _ := tbl.Row(0)
	if v, ok := r.Attribute("income"); !ok || v != 25000.5 {
		t.Errorf("income = %v, %v", v, ok)
	}
	r, _ = tbl.Row(2)
	if _, ok := r.Attribute("income"); ok {
		t.Error("grouped number parsed as a value")
	}

	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "id,income,density\n1,25000.5,120\n2,,\n3,\"31,000\",7\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"short record", "a,b\n1\n"},
		{"bad quote", "a\n\"1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.in)); err == nil {
				t.Error("ReadCSV succeeded")
			}
		})
	}
}
