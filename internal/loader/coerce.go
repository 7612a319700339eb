package loader

import (
	"strings"
	"time"

	"datalens/domain/table"
	"datalens/internal/safenum"
)

// CoerceConfig holds the thresholds for column-kind inference. A column
// adopts a typed kind only when enough of its non-missing cells parse as
// that type; otherwise it stays string and the raw text is preserved.
type CoerceConfig struct {
	NumericThreshold  float64
	DatetimeThreshold float64
}

// DefaultCoerceConfig returns the standard inference thresholds
func DefaultCoerceConfig() CoerceConfig {
	return CoerceConfig{
		NumericThreshold:  0.8,
		DatetimeThreshold: 0.8,
	}
}

// missing markers recognized case-insensitively after trimming
var missingMarkers = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"nan":  {},
	"none": {},
}

// timestamp layouts tried in order during cell coercion
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

// CoerceCell resolves one raw string cell into a typed value. Missing
// markers win first; then numbers, then the strict boolean literals, then
// timestamps; everything else stays text. Boolean parsing accepts only
// "true"/"false" so enumerations like yes/no keep their categorical text.
func CoerceCell(raw string) table.Value {
	s := strings.TrimSpace(raw)
	if _, ok := missingMarkers[strings.ToLower(s)]; ok {
		return table.Missing()
	}

	if f, ok := safenum.FromString(s); ok {
		return table.NumberValue(f)
	}

	switch strings.ToLower(s) {
	case "true":
		return table.BoolValue(true)
	case "false":
		return table.BoolValue(false)
	}

	if t, ok := parseTime(s); ok {
		return table.TimeValue(t)
	}

	return table.TextValue(s)
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InferKind decides a column's storage kind from its coerced cells. The
// kind is a hint for classification, not a promise: mixed columns fall
// back to string and keep every cell as-is.
func InferKind(values []table.Value, cfg CoerceConfig) table.Kind {
	nonMissing := 0
	numbers := 0
	bools := 0
	timestamps := 0
	for _, v := range values {
		switch v.Type {
		case table.ValueMissing:
			continue
		case table.ValueNumber:
			numbers++
		case table.ValueBool:
			bools++
		case table.ValueTime:
			timestamps++
		}
		nonMissing++
	}
	if nonMissing == 0 {
		return table.KindString
	}

	if bools == nonMissing {
		return table.KindBoolean
	}
	if float64(numbers+bools)/float64(nonMissing) >= cfg.NumericThreshold {
		return table.KindNumeric
	}
	if float64(timestamps)/float64(nonMissing) >= cfg.DatetimeThreshold {
		return table.KindDatetime
	}
	return table.KindString
}

// NormalizeColumn rewrites cells that do not match the inferred kind so a
// column never mixes representations: in a numeric column the stray text
// becomes missing, in a string column the minority numbers regain their
// text form.
func NormalizeColumn(col *table.Column) {
	switch col.Kind {
	case table.KindNumeric:
		for i, v := range col.Values {
			if v.IsMissing() {
				continue
			}
			if f, ok := safenum.Float(v); ok {
				col.Values[i] = table.NumberValue(f)
			} else {
				col.Values[i] = table.Missing()
			}
		}
	case table.KindDatetime:
		for i, v := range col.Values {
			if v.IsMissing() || v.Type == table.ValueTime {
				continue
			}
			col.Values[i] = table.Missing()
		}
	case table.KindString:
		for i, v := range col.Values {
			if v.IsMissing() || v.Type == table.ValueText {
				continue
			}
			col.Values[i] = table.TextValue(v.Key())
		}
	}
}
