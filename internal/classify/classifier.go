// Package classify assigns each column exactly one semantic type. The
// decision order is fixed: boolean, datetime, numeric, categorical, text —
// first match wins, and the assignment is never revised mid-analysis.
package classify

import (
	"datalens/domain/report"
	"datalens/domain/table"
	"datalens/internal/safenum"
)

// Config holds the classification thresholds
type Config struct {
	// CategoricalUniqueRatio is the cardinality-ratio boundary between
	// categorical and text for string-like columns. Strictly below the
	// boundary is categorical; at or above is text.
	CategoricalUniqueRatio float64
}

// DefaultConfig returns the standard thresholds
func DefaultConfig() Config {
	return Config{
		CategoricalUniqueRatio: 0.5,
	}
}

// Classifier infers semantic types from a column's values and its
// loader-provided storage kind
type Classifier struct {
	config Config
}

// New creates a classifier with the given config
func New(config Config) *Classifier {
	return &Classifier{config: config}
}

// Classify assigns a semantic type to the column
func (c *Classifier) Classify(col table.Column) report.SemanticType {
	nonMissing := 0
	distinct := make(map[string]struct{})
	boolLike := true

	for _, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		nonMissing++
		distinct[v.Key()] = struct{}{}
		if boolLike && !isBoolLike(v) {
			boolLike = false
		}
	}

	// Boolean requires exactly two distinct non-missing values, all drawn
	// from {true, false} or {0, 1}. A constant column is never boolean.
	if len(distinct) == 2 && boolLike {
		return report.TypeBoolean
	}

	if col.Kind == table.KindDatetime {
		return report.TypeDatetime
	}

	// Numeric storage stays numeric even when every value is missing, so
	// the numeric strategy can report the degenerate count==0 record.
	if col.Kind == table.KindNumeric {
		return report.TypeNumeric
	}

	// Degenerate string-like column: no cardinality ratio to compute.
	if nonMissing == 0 {
		return report.TypeText
	}

	// A single distinct value is trivially low cardinality.
	if len(distinct) == 1 {
		return report.TypeCategorical
	}

	ratio := float64(len(distinct)) / float64(nonMissing)
	if ratio < c.config.CategoricalUniqueRatio {
		return report.TypeCategorical
	}

	return report.TypeText
}

// isBoolLike reports whether a single value belongs to the boolean value
// set: a true boolean, or the numbers 0 and 1.
func isBoolLike(v table.Value) bool {
	switch v.Type {
	case table.ValueBool:
		return true
	case table.ValueNumber:
		f, ok := safenum.Finite(v.Number)
		return ok && (f == 0 || f == 1)
	}
	return false
}
