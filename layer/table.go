// Package layer provides an in-memory attribute table that implements
// bivariate.Layer, with CSV and SQLite import and export.
//
// Values are stored as text, the way they arrive from CSV files and
// GeoPackage attribute columns; Attribute parses them as numbers on demand.
package layer

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/bivariate"
)

var (
	// ErrUnknownField is returned for a field the table does not have.
	ErrUnknownField = errors.New("layer: unknown field")

	// ErrUnknownFeature is returned for a feature ID the table does not have.
	ErrUnknownFeature = errors.New("layer: unknown feature")

	// ErrFieldCount is returned when a record has the wrong number of values.
	ErrFieldCount = errors.New("layer: wrong number of values")
)

// Table is an ordered list of features sharing one set of text fields.
// It is not safe for concurrent use.
type Table struct {
	fields []string
	index  map[string]int
	rows   []*Row
	byID   map[int64]*Row
	nextID int64
}

var _ bivariate.Layer = (*Table)(nil)

// NewTable creates an empty table with the given fields.
func NewTable(fields ...string) (*Table, error) {
	t := &Table{
		index: make(map[string]int, len(fields)),
		byID:  make(map[int64]*Row),
	}
	for _, f := range fields {
		if err := t.AddField(f); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Fields returns the field names in column order.
func (t *Table) Fields() []string { return slices.Clone(t.fields) }

// HasField reports whether the table has field name.
func (t *Table) HasField(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AddField appends a text field. Existing rows get an empty value. Adding a
// field that already exists is a no-op.
func (t *Table) AddField(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty field name", ErrUnknownField)
	}
	if t.HasField(name) {
		return nil
	}
	t.index[name] = len(t.fields)
	t.fields = append(t.fields, name)
	for _, r := range t.rows {
		r.values = append(r.values, "")
	}
	return nil
}

// Append adds a feature with the next free ID.
func (t *Table) Append(values ...string) (*Row, error) {
	return t.insert(t.nextID, values)
}

// Insert adds a feature with an explicit ID, as read from a database.
func (t *Table) Insert(id int64, values ...string) (*Row, error) {
	if _, dup := t.byID[id]; dup {
		return nil, fmt.Errorf("layer: duplicate feature id %d", id)
	}
	return t.insert(id, values)
}

func (t *Table) insert(id int64, values []string) (*Row, error) {
	if len(values) != len(t.fields) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(values), len(t.fields))
	}
	r := &Row{id: id, table: t, values: slices.Clone(values)}
	t.rows = append(t.rows, r)
	t.byID[id] = r
	t.nextID = max(t.nextID, id+1)
	return r, nil
}

// Row returns the feature with id.
func (t *Table) Row(id int64) (*Row, bool) {
	r, ok := t.byID[id]
	return r, ok
}

// Rows returns the features in insertion order.
func (t *Table) Rows() []*Row { return slices.Clone(t.rows) }

// Features implements bivariate.Layer.
func (t *Table) Features() iter.Seq[bivariate.Feature] {
	return func(yield func(bivariate.Feature) bool) {
		for _, r := range t.rows {
			if !yield(r) {
				return
			}
		}
	}
}

// FeatureCount implements bivariate.Layer.
func (t *Table) FeatureCount() int { return len(t.rows) }

// SetAttribute sets the text value of field for feature id.
func (t *Table) SetAttribute(id int64, field, value string) error {
	r, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownFeature, id)
	}
	i, ok := t.index[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	r.values[i] = value
	return nil
}

// Row is one feature of a Table.
type Row struct {
	id     int64
	table  *Table
	values []string
}

// ID implements bivariate.Feature.
func (r *Row) ID() int64 { return r.id }

// Value returns the raw text of field.
func (r *Row) Value(field string) (string, bool) {
	i, ok := r.table.index[field]
	if !ok {
		return "", false
	}
	return r.values[i], true
}

// Values returns a copy of the row's values in column order.
func (r *Row) Values() []string { return slices.Clone(r.values) }

// Attribute implements bivariate.Feature. Empty, NULL, non-numeric and
// non-finite values report false.
func (r *Row) Attribute(name string) (float64, bool) {
	s, ok := r.Value(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
