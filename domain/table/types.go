package table

import (
	"strconv"
	"time"

	"datalens/internal/apperrors"
)

// Kind is the storage-kind hint the loading layer attaches to a column.
// It describes how the raw values look, not what the column means; the
// classifier turns a Kind plus the actual values into a semantic type.
type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindString   Kind = "string"
	KindBoolean  Kind = "boolean"
	KindDatetime Kind = "datetime"
	KindUnknown  Kind = "unknown"
)

// ValueType defines the resolved storage type of a single cell
type ValueType string

const (
	ValueNumber  ValueType = "number"
	ValueText    ValueType = "text"
	ValueBool    ValueType = "bool"
	ValueTime    ValueType = "time"
	ValueMissing ValueType = "missing"
)

// Value is a tagged scalar resolved once at load time. Downstream code
// dispatches on Type and never re-inspects raw representations.
type Value struct {
	Type   ValueType
	Number float64
	Text   string
	Bool   bool
	Time   time.Time
}

// Number creates a numeric value
func NumberValue(f float64) Value { return Value{Type: ValueNumber, Number: f} }

// TextValue creates a text value
func TextValue(s string) Value { return Value{Type: ValueText, Text: s} }

// BoolValue creates a boolean value
func BoolValue(b bool) Value { return Value{Type: ValueBool, Bool: b} }

// TimeValue creates a datetime value
func TimeValue(t time.Time) Value { return Value{Type: ValueTime, Time: t} }

// Missing creates the explicit missing marker
func Missing() Value { return Value{Type: ValueMissing} }

// IsMissing reports whether the value is the missing marker
func (v Value) IsMissing() bool { return v.Type == ValueMissing }

// Key returns a canonical string identity for the value, used for
// uniqueness counting, mode detection and duplicate-row hashing. It is
// deterministic for a given value and never called on missing values.
func (v Value) Key() string {
	switch v.Type {
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case ValueText:
		return v.Text
	case ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValueTime:
		return v.Time.Format(time.RFC3339)
	}
	return ""
}

// Column is a named sequence of values with a loader-provided storage kind.
// Columns are immutable during analysis.
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// Len returns the row count of the column
func (c Column) Len() int { return len(c.Values) }

// NonMissing returns the number of non-missing values
func (c Column) NonMissing() int {
	n := 0
	for _, v := range c.Values {
		if !v.IsMissing() {
			n++
		}
	}
	return n
}

// Table is an ordered collection of equally sized columns. Column order is
// insertion order and is semantically meaningful for display.
type Table struct {
	Columns []Column
}

// RowCount returns the shared length of all columns (0 for empty tables)
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int { return len(t.Columns) }

// Validate checks the structural invariants: all columns share one length
// and column names are unique. A violation means the loading collaborator
// broke its contract and is surfaced, never worked around.
func (t *Table) Validate() error {
	seen := make(map[string]struct{}, len(t.Columns))
	rows := t.RowCount()
	for _, col := range t.Columns {
		if _, dup := seen[col.Name]; dup {
			return apperrors.StructureInvalid("duplicate column name: " + col.Name)
		}
		seen[col.Name] = struct{}{}
		if len(col.Values) != rows {
			return apperrors.StructureInvalid("column " + col.Name + " has mismatched length")
		}
	}
	return nil
}
