// Package analyze implements the per-column statistical strategies and the
// dataset-level orchestration of the EDA engine. All analysis is pure:
// no I/O, no shared mutable state, deterministic output for a given table.
package analyze

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"datalens/domain/report"
	"datalens/domain/table"
	"datalens/internal/apperrors"
	"datalens/internal/classify"
)

// Config holds the analysis tunables. The constants are documented bounds,
// not contract: changing them changes output shape, never correctness.
type Config struct {
	// PatternSampleSize bounds text pattern detection cost: hints are
	// computed over the first N non-missing values only.
	PatternSampleSize int
	// MinHistogramBins / MaxHistogramBins clamp the sqrt(count) bin rule.
	MinHistogramBins int
	MaxHistogramBins int
	// MaxTimelineBuckets bounds the datetime chart's bucket count and
	// drives the day/week/month/year granularity choice.
	MaxTimelineBuckets int
	// Workers bounds concurrent column analysis. Column order in the
	// report is preserved regardless of completion order.
	Workers    int
	Classifier classify.Config
}

// DefaultConfig returns the standard analysis settings
func DefaultConfig() Config {
	return Config{
		PatternSampleSize:  500,
		MinHistogramBins:   10,
		MaxHistogramBins:   50,
		MaxTimelineBuckets: 50,
		Workers:            runtime.GOMAXPROCS(0),
		Classifier:         classify.DefaultConfig(),
	}
}

// Analyzer classifies and analyzes all columns of a table and aggregates
// dataset-wide quality checks into one report
type Analyzer struct {
	config     Config
	classifier *classify.Classifier
}

// New creates an analyzer with the given config
func New(config Config) *Analyzer {
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Analyzer{
		config:     config,
		classifier: classify.New(config.Classifier),
	}
}

// AnalyzeAll produces the dataset report for a loaded table. Structural
// invariant violations (mismatched column lengths, duplicate names) are
// fatal; any other per-column failure is isolated into an error-status
// column report and analysis continues.
func (a *Analyzer) AnalyzeAll(tbl *table.Table) (*report.DatasetReport, error) {
	if tbl == nil {
		return nil, apperrors.InvalidInput("no table provided")
	}
	if err := tbl.Validate(); err != nil {
		return nil, err
	}

	rows := tbl.RowCount()
	cols := tbl.ColumnCount()

	rep := &report.DatasetReport{
		RowCount:      rows,
		ColumnCount:   cols,
		DuplicateRows: countDuplicateRows(tbl),
		Columns:       make([]report.ColumnReport, cols),
	}

	missingCells := 0
	for _, col := range tbl.Columns {
		missingCells += col.Len() - col.NonMissing()
	}
	rep.MissingCells = missingCells
	if totalCells := rows * cols; totalCells > 0 {
		rep.MissingPct = 100 * float64(missingCells) / float64(totalCells)
	}

	// Columns are independent; fan out with bounded workers and write
	// each result to its original index.
	g := new(errgroup.Group)
	g.SetLimit(a.config.Workers)
	for i := range tbl.Columns {
		col := tbl.Columns[i]
		g.Go(func() error {
			rep.Columns[i] = a.AnalyzeColumn(col)
			return nil
		})
	}
	_ = g.Wait() // workers recover internally and never return errors

	return rep, nil
}

// AnalyzeColumn classifies one column and runs the matching strategy. A
// panic during analysis is converted into an error-status report so one
// bad column cannot abort the dataset.
func (a *Analyzer) AnalyzeColumn(col table.Column) (cr report.ColumnReport) {
	cr = report.ColumnReport{Name: col.Name, Status: report.StatusOK}
	defer func() {
		if r := recover(); r != nil {
			err := apperrors.ColumnAnalysis(col.Name, fmt.Errorf("%v", r))
			cr = report.ColumnReport{
				Name:   col.Name,
				Type:   cr.Type,
				Status: report.StatusError,
				Error:  err.Error(),
			}
		}
	}()

	cr.Type = a.classifier.Classify(col)
	switch cr.Type {
	case report.TypeNumeric:
		cr.Numeric, cr.Chart = a.analyzeNumeric(col)
	case report.TypeBoolean, report.TypeCategorical:
		cr.Categorical, cr.Chart = a.analyzeCategorical(col)
	case report.TypeDatetime:
		cr.Datetime, cr.Chart = a.analyzeDatetime(col)
	default:
		cr.Text = a.analyzeText(col)
	}
	return cr
}

// countDuplicateRows counts rows that fully repeat an earlier row, using
// each cell's canonical key for equality. Cell keys are length-prefixed so
// cell content can never shift a value across a column boundary.
func countDuplicateRows(tbl *table.Table) int {
	rows := tbl.RowCount()
	if rows == 0 || tbl.ColumnCount() == 0 {
		return 0
	}

	seen := make(map[string]struct{}, rows)
	var sb strings.Builder
	dups := 0
	for r := 0; r < rows; r++ {
		sb.Reset()
		for _, col := range tbl.Columns {
			v := col.Values[r]
			if v.IsMissing() {
				sb.WriteString("-:")
				continue
			}
			cell := v.Key()
			sb.WriteString(strconv.Itoa(len(cell)))
			sb.WriteByte(':')
			sb.WriteString(cell)
		}
		key := sb.String()
		if _, dup := seen[key]; dup {
			dups++
		} else {
			seen[key] = struct{}{}
		}
	}
	return dups
}
