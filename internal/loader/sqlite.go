package loader

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"datalens/domain/table"
	"datalens/internal/apperrors"
	"datalens/internal/safenum"
)

// readSQLite loads the first user table of a SQLite database. The driver
// needs a file path, so the uploaded bytes are staged in a temp file that
// is removed before returning.
func (l *Loader) readSQLite(content []byte) (*table.Table, error) {
	tmp, err := os.CreateTemp("", "datalens-*.db")
	if err != nil {
		return nil, apperrors.ParseError("sqlite", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return nil, apperrors.ParseError("sqlite", err)
	}
	tmp.Close()

	db, err := sqlx.Open("sqlite", tmp.Name())
	if err != nil {
		return nil, apperrors.ParseError("sqlite", err)
	}
	defer db.Close()

	var name string
	err = db.Get(&name, `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name LIMIT 1`)
	if err != nil {
		return nil, apperrors.ParseError("sqlite", fmt.Errorf("no tables found: %w", err))
	}

	rows, err := db.Queryx(fmt.Sprintf(`SELECT * FROM "%s"`, strings.ReplaceAll(name, `"`, `""`)))
	if err != nil {
		return nil, apperrors.ParseError("sqlite", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, apperrors.ParseError("sqlite", err)
	}

	columns := make([][]table.Value, len(names))
	for rows.Next() {
		record, err := rows.SliceScan()
		if err != nil {
			return nil, apperrors.ParseError("sqlite", err)
		}
		for c := range names {
			var v table.Value
			if c < len(record) {
				v = sqlValue(record[c])
			} else {
				v = table.Missing()
			}
			columns[c] = append(columns[c], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.ParseError("sqlite", err)
	}

	cols := make([]table.Column, len(names))
	for c, colName := range names {
		col := table.Column{Name: colName, Values: columns[c]}
		col.Kind = InferKind(columns[c], l.coerce)
		NormalizeColumn(&col)
		cols[c] = col
	}
	return &table.Table{Columns: cols}, nil
}

// sqlValue converts one scanned SQLite cell to a value. SQLite is loosely
// typed, so text cells still pass through string coercion.
func sqlValue(raw any) table.Value {
	switch v := raw.(type) {
	case nil:
		return table.Missing()
	case int64:
		return table.NumberValue(float64(v))
	case float64:
		if f, ok := safenum.Finite(v); ok {
			return table.NumberValue(f)
		}
		return table.Missing()
	case bool:
		return table.BoolValue(v)
	case time.Time:
		return table.TimeValue(v)
	case []byte:
		return CoerceCell(string(v))
	case string:
		return CoerceCell(v)
	default:
		return table.TextValue(fmt.Sprintf("%v", v))
	}
}
