package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/domain/report"
)

func sampleReport() *report.DatasetReport {
	mean := 19.17
	mode := "red"
	return &report.DatasetReport{
		RowCount:      6,
		ColumnCount:   2,
		DuplicateRows: 1,
		MissingCells:  2,
		MissingPct:    16.67,
		Columns: []report.ColumnReport{
			{
				Name:   "value",
				Type:   report.TypeNumeric,
				Status: report.StatusOK,
				Numeric: &report.NumericStats{
					Count:             6,
					Mean:              &mean,
					Outliers:          1,
					OutlierPct:        16.67,
					DistributionShape: "Highly right-skewed",
				},
			},
			{
				Name:   "color",
				Type:   report.TypeCategorical,
				Status: report.StatusOK,
				Categorical: &report.CategoricalStats{
					Count:     6,
					Unique:    3,
					Mode:      &mode,
					ModeFreq:  3,
					ModePct:   50,
					Diversity: "medium",
					ValueCounts: []report.ValueCount{
						{Value: "red", Count: 3, Pct: 50},
						{Value: "blue", Count: 2, Pct: 33.33},
					},
					Remaining: 1,
				},
			},
			{
				Name:   "broken",
				Type:   report.TypeText,
				Status: report.StatusError,
				Error:  "failed to analyze column \"broken\"",
			},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown("test.csv", sampleReport())

	assert.Contains(t, md, "# Analysis: test.csv")
	assert.Contains(t, md, "| Rows | 6 |")
	assert.Contains(t, md, "| Duplicate rows | 1 |")
	assert.Contains(t, md, "## value (numeric)")
	assert.Contains(t, md, "Highly right-skewed")
	assert.Contains(t, md, "## color (categorical)")
	assert.Contains(t, md, "**red** (3, 50.00%)")
	assert.Contains(t, md, "...and 1 more categories")
	assert.Contains(t, md, "Analysis failed")
}

func TestMarkdownNoDataColumn(t *testing.T) {
	rep := &report.DatasetReport{
		RowCount:    3,
		ColumnCount: 1,
		Columns: []report.ColumnReport{{
			Name:    "empty",
			Type:    report.TypeNumeric,
			Status:  report.StatusOK,
			Numeric: &report.NumericStats{Missing: 3, NoData: true, DistributionShape: "N/A"},
		}},
	}
	md := Markdown("x.csv", rep)
	assert.Contains(t, md, "No numeric data (3 missing values)")
}

func TestHTML(t *testing.T) {
	out := HTML("test.csv", sampleReport())
	require.True(t, strings.Contains(out, "<h1"))
	assert.Contains(t, out, "Analysis: test.csv")
	assert.Contains(t, out, "<table>")
}
