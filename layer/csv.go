package layer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV reads a table from CSV. The first record names the fields.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("layer: csv: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("layer: csv header: %w", err)
	}
	t, err := NewTable(header...)
	if err != nil {
		return nil, err
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("layer: csv: %w", err)
		}
		if _, err := t.Append(rec...); err != nil {
			return nil, err
		}
	}
}

// WriteCSV writes the table as CSV with a header record.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.fields); err != nil {
		return err
	}
	for _, r := range t.rows {
		if err := cw.Write(r.values); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
