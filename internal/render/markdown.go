// Package render turns dataset reports into human-readable Markdown and
// HTML documents.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"datalens/domain/report"
)

// Markdown renders a dataset report as a Markdown document
func Markdown(title string, rep *report.DatasetReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis: %s\n\n", title)
	b.WriteString("## Dataset Overview\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Rows | %d |\n", rep.RowCount)
	fmt.Fprintf(&b, "| Columns | %d |\n", rep.ColumnCount)
	fmt.Fprintf(&b, "| Duplicate rows | %d |\n", rep.DuplicateRows)
	fmt.Fprintf(&b, "| Missing cells | %d (%.2f%%) |\n\n", rep.MissingCells, rep.MissingPct)

	for _, col := range rep.Columns {
		fmt.Fprintf(&b, "## %s (%s)\n\n", col.Name, col.Type)
		if col.Status == report.StatusError {
			fmt.Fprintf(&b, "Analysis failed: %s\n\n", col.Error)
			continue
		}
		switch {
		case col.Numeric != nil:
			writeNumeric(&b, col.Numeric)
		case col.Categorical != nil:
			writeCategorical(&b, col.Categorical)
		case col.Text != nil:
			writeText(&b, col.Text)
		case col.Datetime != nil:
			writeDatetime(&b, col.Datetime)
		}
	}
	return b.String()
}

// HTML renders a dataset report as a standalone HTML fragment
func HTML(title string, rep *report.DatasetReport) string {
	md := Markdown(title, rep)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(md), p, renderer))
}

func writeNumeric(b *strings.Builder, ns *report.NumericStats) {
	if ns.NoData {
		fmt.Fprintf(b, "No numeric data (%d missing values).\n\n", ns.Missing)
		return
	}
	fmt.Fprintf(b, "| Statistic | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Count | %d |\n", ns.Count)
	fmt.Fprintf(b, "| Missing | %d |\n", ns.Missing)
	fmt.Fprintf(b, "| Mean | %s |\n", fmtFloat(ns.Mean))
	fmt.Fprintf(b, "| Median | %s |\n", fmtFloat(ns.Median))
	fmt.Fprintf(b, "| Std dev | %s |\n", fmtFloat(ns.StdDev))
	fmt.Fprintf(b, "| Min / Max | %s / %s |\n", fmtFloat(ns.Min), fmtFloat(ns.Max))
	fmt.Fprintf(b, "| Q25 / Q75 | %s / %s |\n", fmtFloat(ns.Q25), fmtFloat(ns.Q75))
	fmt.Fprintf(b, "| Typical range | %s to %s |\n", fmtFloat(ns.TypicalMin), fmtFloat(ns.TypicalMax))
	fmt.Fprintf(b, "| Outliers | %d (%.2f%%) |\n", ns.Outliers, ns.OutlierPct)
	fmt.Fprintf(b, "| Zeros / Negatives | %d / %d |\n", ns.Zeros, ns.Negatives)
	fmt.Fprintf(b, "| Distribution | %s |\n\n", ns.DistributionShape)
}

func writeCategorical(b *strings.Builder, cs *report.CategoricalStats) {
	fmt.Fprintf(b, "%d values, %d unique, %d missing. Diversity: %s, cardinality: %s.\n\n",
		cs.Count, cs.Unique, cs.Missing, cs.Diversity, cs.CardinalityLevel)
	if cs.Mode != nil {
		fmt.Fprintf(b, "Most common: **%s** (%d, %.2f%%).\n\n", *cs.Mode, cs.ModeFreq, cs.ModePct)
	}
	if len(cs.ValueCounts) > 0 {
		fmt.Fprintf(b, "| Value | Count | %% |\n|---|---|---|\n")
		for _, vc := range cs.ValueCounts {
			fmt.Fprintf(b, "| %s | %d | %.2f |\n", vc.Value, vc.Count, vc.Pct)
		}
		if cs.Remaining > 0 {
			fmt.Fprintf(b, "\n...and %d more categories.\n", cs.Remaining)
		}
		b.WriteString("\n")
	}
}

func writeText(b *strings.Builder, ts *report.TextStats) {
	fmt.Fprintf(b, "%d values, %d unique, %d missing. Pattern: %s.\n\n",
		ts.Count, ts.Unique, ts.Missing, ts.PatternHint)
	fmt.Fprintf(b, "Length: avg %s, min %d, max %d.\n\n",
		fmtFloat(ts.AvgLength), ts.MinLength, ts.MaxLength)
	if len(ts.Samples) > 0 {
		b.WriteString("Samples:\n\n")
		for _, s := range ts.Samples {
			fmt.Fprintf(b, "- `%s`\n", s)
		}
		b.WriteString("\n")
	}
}

func writeDatetime(b *strings.Builder, ds *report.DatetimeStats) {
	fmt.Fprintf(b, "%d values, %d unique, %d missing.\n\n", ds.Count, ds.Unique, ds.Missing)
	if ds.MinDate != nil && ds.MaxDate != nil {
		fmt.Fprintf(b, "Range: %s to %s (%d days).\n\n",
			fmtDate(ds.MinDate), fmtDate(ds.MaxDate), ds.RangeDays)
	}
	if ds.MostCommon != nil {
		fmt.Fprintf(b, "Most common: %s.\n\n", fmtDate(ds.MostCommon))
	}
}

func fmtFloat(f *float64) string {
	if f == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*f, 'g', 6, 64)
}

func fmtDate(t *time.Time) string {
	return t.Format("2006-01-02")
}
