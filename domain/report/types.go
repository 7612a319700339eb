package report

import "time"

// SemanticType is the inferred meaning of a column's values, distinct from
// its raw storage representation. Exactly one per column, assigned once.
type SemanticType string

const (
	TypeBoolean     SemanticType = "boolean"
	TypeCategorical SemanticType = "categorical"
	TypeNumeric     SemanticType = "numeric"
	TypeDatetime    SemanticType = "datetime"
	TypeText        SemanticType = "text"
)

// Status marks whether a column's analysis completed or was replaced by an
// error record (failure isolated at column granularity).
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// NumericStats is the analysis record for numeric columns. All optional
// statistics use pointers so a missing statistic serializes as null; no
// NaN or Infinity ever reaches this struct.
type NumericStats struct {
	Count             int      `json:"count"`
	Missing           int      `json:"missing"`
	Mean              *float64 `json:"mean"`
	Median            *float64 `json:"median"`
	StdDev            *float64 `json:"std"`
	Min               *float64 `json:"min"`
	Max               *float64 `json:"max"`
	Q25               *float64 `json:"q25"`
	Q75               *float64 `json:"q75"`
	Outliers          int      `json:"outliers"`
	OutlierPct        float64  `json:"outlier_pct"`
	Zeros             int      `json:"zeros"`
	Negatives         int      `json:"negatives"`
	Skewness          *float64 `json:"skewness"`
	DistributionShape string   `json:"distribution_shape"`
	TypicalMin        *float64 `json:"typical_min"`
	TypicalMax        *float64 `json:"typical_max"`
	NoData            bool     `json:"no_data,omitempty"`
}

// ValueCount is one row of a categorical value-counts table. Pct is rounded
// to two decimals independently per entry; entries need not re-sum to 100.
type ValueCount struct {
	Value string  `json:"value"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// CategoricalStats is the analysis record for categorical (and boolean)
// columns. ValueCounts is display-truncated by cardinality tier; Remaining
// carries the number of categories not shown so nothing is silently lost.
type CategoricalStats struct {
	Count            int          `json:"count"`
	Unique           int          `json:"unique"`
	Missing          int          `json:"missing"`
	Mode             *string      `json:"mode"`
	ModeFreq         int          `json:"mode_freq"`
	ModePct          float64      `json:"mode_pct"`
	Diversity        string       `json:"diversity"`
	CardinalityLevel string       `json:"cardinality_level"`
	ValueCounts      []ValueCount `json:"value_counts"`
	Remaining        int          `json:"remaining_categories"`
}

// TextStats is the analysis record for free-text columns. PatternHint is
// probabilistic for very large columns: it is computed over a bounded
// sample, not the full column.
type TextStats struct {
	Count       int      `json:"count"`
	Unique      int      `json:"unique"`
	Missing     int      `json:"missing"`
	AvgLength   *float64 `json:"avg_length"`
	MinLength   int      `json:"min_length"`
	MaxLength   int      `json:"max_length"`
	PatternHint string   `json:"pattern_hint"`
	Samples     []string `json:"samples"`
}

// DatetimeStats is the analysis record for datetime columns
type DatetimeStats struct {
	Count      int        `json:"count"`
	Unique     int        `json:"unique"`
	Missing    int        `json:"missing"`
	MinDate    *time.Time `json:"min_date"`
	MaxDate    *time.Time `json:"max_date"`
	RangeDays  int        `json:"range_days"`
	MostCommon *time.Time `json:"most_common"`
}

// ChartSpec is a declarative chart description: kind plus data arrays,
// sufficient for a charting frontend to render without recomputing any
// statistic. Exactly one of (BinEdges, Labels) is populated per kind.
type ChartSpec struct {
	Kind     string    `json:"kind"` // "histogram", "bar" or "timeline"
	Title    string    `json:"title"`
	XLabel   string    `json:"x_label"`
	YLabel   string    `json:"y_label"`
	Labels   []string  `json:"labels,omitempty"`
	BinEdges []float64 `json:"bin_edges,omitempty"`
	Counts   []int     `json:"counts"`
}

// ColumnReport is the output of analyzing one column. Exactly one stats
// record is populated, matching Type (boolean columns carry Categorical).
type ColumnReport struct {
	Name        string            `json:"name"`
	Type        SemanticType      `json:"type"`
	Status      Status            `json:"status"`
	Error       string            `json:"error,omitempty"`
	Numeric     *NumericStats     `json:"numeric,omitempty"`
	Categorical *CategoricalStats `json:"categorical,omitempty"`
	Text        *TextStats        `json:"text,omitempty"`
	Datetime    *DatetimeStats    `json:"datetime,omitempty"`
	Chart       *ChartSpec        `json:"chart,omitempty"`
}

// DatasetReport aggregates per-column reports with dataset-wide quality
// checks. Columns preserves the table's original column order.
type DatasetReport struct {
	RowCount      int            `json:"row_count"`
	ColumnCount   int            `json:"column_count"`
	DuplicateRows int            `json:"duplicate_rows"`
	MissingCells  int            `json:"missing_cells"`
	MissingPct    float64        `json:"missing_pct"`
	Columns       []ColumnReport `json:"columns"`
}
