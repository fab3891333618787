package layer

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
)

// geometryTypes are column types holding geometry blobs rather than
// attributes; they are not loaded.
var geometryTypes = map[string]bool{
	"BLOB":               true,
	"GEOMETRY":           true,
	"POINT":              true,
	"LINESTRING":         true,
	"POLYGON":            true,
	"MULTIPOINT":         true,
	"MULTILINESTRING":    true,
	"MULTIPOLYGON":       true,
	"GEOMETRYCOLLECTION": true,
}

// OpenSQLite opens a SQLite database file, such as a GeoPackage, in WAL mode.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("layer: open %s: %w", path, err)
	}
	return db, nil
}

// ReadSQLite loads the attribute columns of table. Feature IDs are the
// SQLite rowids; geometry and blob columns are skipped.
func ReadSQLite(ctx context.Context, db *sql.DB, table string) (*Table, error) {
	rows, err := db.QueryContext(ctx, "SELECT rowid, * FROM "+quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("layer: read %s: %w", table, err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	var (
		fields []string
		keep   []int
	)
	for i, ct := range types[1:] {
		if geometryTypes[strings.ToUpper(ct.DatabaseTypeName())] {
			continue
		}
		fields = append(fields, ct.Name())
		keep = append(keep, i+1)
	}
	t, err := NewTable(fields...)
	if err != nil {
		return nil, err
	}

	holders := make([]any, len(types))
	ptrs := make([]any, len(types))
	for i := range holders {
		ptrs[i] = &holders[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("layer: read %s: %w", table, err)
		}
		id, ok := holders[0].(int64)
		if !ok {
			return nil, fmt.Errorf("layer: read %s: rowid %v is not an integer", table, holders[0])
		}
		values := make([]string, len(keep))
		for k, i := range keep {
			values[k] = textValue(holders[i])
		}
		if _, err := t.Insert(id, values...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("layer: read %s: %w", table, err)
	}
	return t, nil
}

// WriteSQLite writes fields of t back into table by rowid, adding TEXT
// columns that do not exist yet. All updates run in one transaction.
func WriteSQLite(ctx context.Context, db *sql.DB, table string, t *Table, fields ...string) error {
	existing, err := sqliteColumns(ctx, db, table)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if !t.HasField(f) {
			return fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
		if existing[f] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT", quoteIdent(table), quoteIdent(f))
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("layer: add column %s: %w", f, err)
		}
	}
	if len(fields) == 0 {
		return nil
	}

	sets := make([]string, len(fields))
	for i, f := range fields {
		sets[i] = quoteIdent(f) + " = ?"
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE rowid = ?", quoteIdent(table), strings.Join(sets, ", "))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("layer: write %s: %w", table, err)
	}
	defer stmt.Close()

	args := make([]any, len(fields)+1)
	for _, r := range t.rows {
		for i, f := range fields {
			if v, _ := r.Value(f); v != "" {
				args[i] = v
			} else {
				args[i] = nil
			}
		}
		args[len(fields)] = r.id
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("layer: write %s feature %d: %w", table, r.id, err)
		}
	}
	return tx.Commit()
}

func sqliteColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("layer: columns of %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("layer: no such table %q", table)
	}
	return cols, rows.Err()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func textValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []byte:
		return string(v)
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
