// Package safenum converts arbitrary scalar values to finite numbers or an
// explicit missing result. It is the single choke point guaranteeing that
// no NaN or Infinity reaches downstream statistics or serialized output.
// All functions are pure and safe to call from any goroutine.
package safenum

import (
	"math"
	"strconv"
	"strings"

	"datalens/domain/table"
)

// Float converts a value to a finite float64. The second return is false
// for missing values, non-finite numbers and unparseable strings.
func Float(v table.Value) (float64, bool) {
	switch v.Type {
	case table.ValueNumber:
		return Finite(v.Number)
	case table.ValueBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case table.ValueText:
		return FromString(v.Text)
	}
	return 0, false
}

// Int converts a value to an int64, truncating toward zero after float
// conversion (never rounding). Missing and non-finite inputs report false.
func Int(v table.Value) (int64, bool) {
	f, ok := Float(v)
	if !ok {
		return 0, false
	}
	return int64(math.Trunc(f)), true
}

// FromString parses a numeric-looking string into a finite float64.
// Parse failure is missing, not an error.
func FromString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return Finite(f)
}

// Finite reports f unchanged when it is a real number and false for
// NaN and ±Infinity.
func Finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
