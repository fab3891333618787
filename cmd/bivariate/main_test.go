package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/layer"
)

const parcels = `id,pop,income
1,0,0
2,1,8
3,6,9
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	orig := bivariate.Logger()
	t.Cleanup(func() { bivariate.SetLogger(orig) })

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeParcels(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parcels.csv")
	if err := os.WriteFile(path, []byte(parcels), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPalettes(t *testing.T) {
	out, err := run(t, "palettes")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{bivariate.PaletteCyanViolet, bivariate.MultiplyMixingName, bivariate.QuantileID, "raster"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not list %q:\n%s", want, out)
		}
	}
}

func TestCategorizeCSV(t *testing.T) {
	in := writeParcels(t)
	outPath := filepath.Join(t.TempDir(), "out.csv")

	out, err := run(t, "categorize", "-i", in, "-o", outPath, "--field1", "pop", "--field2", "income")
	if err != nil {
		t.Fatalf("categorize: %v", err)
	}
	if !strings.Contains(out, "3 features") {
		t.Errorf("output = %q", out)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	tbl, err := layer.ReadCSV(f)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, r := range tbl.Rows() {
		v, _ := r.Value("Category")
		got = append(got, v)
	}
	if strings.Join(got, " ") != "1-1 1-3 3-3" {
		t.Errorf("categories = %v", got)
	}
}

func TestCategorizeSQLiteInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parcels.gpkg")
	db, err := layer.OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`CREATE TABLE parcels (pop REAL, income REAL);
		INSERT INTO parcels VALUES (1, 10), (2, 20), (3, 30), (4, 40);`)
	db.Close()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "categorize", "-i", path, "--table", "parcels",
		"--field1", "pop", "--field2", "income", "--classes", "2", "--result", "pair"); err != nil {
		t.Fatalf("categorize: %v", err)
	}

	db, err = layer.OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	tbl, err := layer.ReadSQLite(context.Background(), db, "parcels")
	if err != nil {
		t.Fatal(err)
	}
	r, _ := tbl.Row(4)
	if v, _ := r.Value("pair"); v != "2-2" {
		t.Errorf("pair of the last row = %q, want 2-2", v)
	}
}

func TestCategorizeKeepsPartialWrites(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "gaps.csv")
	if err := os.WriteFile(in, []byte("pop,income\n0,0\n6,9\n,5\n3,3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out.csv")

	out, err := run(t, "categorize", "-i", in, "-o", outPath, "--field1", "pop", "--field2", "income")
	if !errors.Is(err, bivariate.ErrMissingAttribute) {
		t.Fatalf("categorize error = %v, want ErrMissingAttribute", err)
	}
	if !strings.Contains(out, "2 features") {
		t.Errorf("output = %q", out)
	}
	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("partial output not written: %v", err)
	}
	defer f.Close()
	tbl, err := layer.ReadCSV(f)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, r := range tbl.Rows() {
		v, _ := r.Value("Category")
		got = append(got, v)
	}
	if diff := cmp.Diff([]string{"1-1", "3-3", "", ""}, got); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(dir, "gaps.gpkg")
	db, err := layer.OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`CREATE TABLE parcels (pop REAL, income REAL);
		INSERT INTO parcels VALUES (1, 10), (4, 40), (NULL, 20), (2, 30);`)
	db.Close()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "categorize", "-i", path, "--table", "parcels",
		"--field1", "pop", "--field2", "income", "--classes", "2", "--result", "pair"); !errors.Is(err, bivariate.ErrMissingAttribute) {
		t.Fatalf("categorize error = %v, want ErrMissingAttribute", err)
	}
	db, err = layer.OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var pairs []string
	rows, err := db.Query(`SELECT COALESCE(pair, '') FROM parcels ORDER BY rowid`)
	if err != nil {
		t.Fatalf("pair column missing after a partial run: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			t.Fatal(err)
		}
		pairs = append(pairs, p)
	}
	if diff := cmp.Diff([]string{"1-1", "2-2", "", ""}, pairs); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestCategorizeErrors(t *testing.T) {
	in := writeParcels(t)
	tests := []struct {
		name string
		args []string
	}{
		{"missing field flag", []string{"categorize", "-i", in, "--field1", "pop"}},
		{"no input", []string{"categorize", "--field1", "pop", "--field2", "income"}},
		{"unknown method", []string{"categorize", "-i", in, "-o", "x.csv", "--field1", "pop", "--field2", "income", "--method", "Jenks"}},
		{"too many classes", []string{"categorize", "-i", in, "-o", "x.csv", "--field1", "pop", "--field2", "income", "--classes", "9"}},
		{"sqlite without table", []string{"categorize", "-i", "x.gpkg", "--field1", "pop", "--field2", "income"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("command succeeded")
			}
		})
	}
}

func TestLegend(t *testing.T) {
	in := writeParcels(t)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "style.yaml")
	err := os.WriteFile(cfg, []byte(`
renderer:
  field1: pop
  field2: income
legend:
  scale: 2
  addAxesArrows: true
  addAxesTexts: true
  addAxesTicksTexts: true
  replaceMissing: true
  background: "#ffffff"
`), 0o600)
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "legend.png")

	if _, err := run(t, "legend", "-i", in, "-c", cfg, "-o", out, "--width", "150", "--height", "100"); err != nil {
		t.Fatalf("legend: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Errorf("legend is %dx%d, want 300x200", b.Dx(), b.Dy())
	}
}

func TestLegendUnknownBackend(t *testing.T) {
	in := writeParcels(t)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "style.yaml")
	if err := os.WriteFile(cfg, []byte("renderer:\n  field1: pop\n  field2: income\nlegend:\n  backend: svg\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "legend", "-i", in, "-c", cfg, "-o", filepath.Join(dir, "legend.svg"))
	if !errors.Is(err, bivariate.ErrConfig) || !strings.Contains(err.Error(), "raster") {
		t.Errorf("error = %v, want ErrConfig listing the raster backend", err)
	}
}

func TestStyle(t *testing.T) {
	in := writeParcels(t)
	cfg := filepath.Join(t.TempDir(), "style.yaml")
	if err := os.WriteFile(cfg, []byte("renderer:\n  field1: pop\n  field2: income\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "style", "-i", in, "-c", cfg)
	if err != nil {
		t.Fatalf("style: %v", err)
	}
	r, err := bivariate.Load(strings.NewReader(out), nil)
	if err != nil {
		t.Fatalf("Load: %v\n%s", err, out)
	}
	if r.Field1() != "pop" || r.Field2() != "income" {
		t.Errorf("fields = %q, %q", r.Field1(), r.Field2())
	}
	if got := strings.Join(r.ExistingLabels(), " "); got != "1-1 1-3 3-3" {
		t.Errorf("existing labels = %q", got)
	}
}
