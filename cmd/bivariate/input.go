package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/bivariate/layer"
)

// source is an attribute table read from a CSV file or a SQLite table.
type source struct {
	table *layer.Table

	db        *sql.DB
	sqlTable  string
	inputPath string
}

func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpkg", ".sqlite", ".sqlite3", ".db":
		return true
	}
	return false
}

func openSource(ctx context.Context, path, table string) (*source, error) {
	if path == "" {
		return nil, errors.New("no input given (use -i)")
	}
	if isSQLite(path) {
		if table == "" {
			return nil, fmt.Errorf("%s: --table is required for SQLite input", path)
		}
		db, err := layer.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		t, err := layer.ReadSQLite(ctx, db, table)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &source{table: t, db: db, sqlTable: table, inputPath: path}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := layer.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &source{table: t, inputPath: path}, nil
}

// save writes fields back. SQLite tables are updated in place; CSV input is
// written whole to output.
func (s *source) save(ctx context.Context, output string, fields ...string) error {
	if s.db != nil {
		return layer.WriteSQLite(ctx, s.db, s.sqlTable, s.table, fields...)
	}
	if output == "" {
		return errors.New("no output given (use -o)")
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := s.table.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *source) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
