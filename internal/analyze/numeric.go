package analyze

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"datalens/domain/report"
	"datalens/domain/table"
	"datalens/internal/safenum"
)

// analyzeNumeric computes summary statistics, IQR outlier detection,
// skewness classification and a histogram spec for a numeric column.
// Every value passes through safenum first, so all arithmetic below runs
// on finite inputs only.
func (a *Analyzer) analyzeNumeric(col table.Column) (*report.NumericStats, *report.ChartSpec) {
	values := make([]float64, 0, col.Len())
	for _, v := range col.Values {
		if f, ok := safenum.Float(v); ok {
			values = append(values, f)
		}
	}
	missing := col.Len() - len(values)

	if len(values) == 0 {
		return &report.NumericStats{
			Missing:           missing,
			DistributionShape: "N/A",
			NoData:            true,
		}, nil
	}

	count := len(values)
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	minVal, _ := stats.Min(values)
	maxVal, _ := stats.Max(values)

	// Sample standard deviation (ddof=1); 0 by convention for a single value.
	stdDev := 0.0
	if count >= 2 {
		stdDev, _ = stats.StandardDeviationSample(values)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)

	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	outliers := 0
	zeros := 0
	negatives := 0
	typicalMin := math.Inf(1)
	typicalMax := math.Inf(-1)
	for _, x := range values {
		if x < lower || x > upper {
			outliers++
		} else {
			if x < typicalMin {
				typicalMin = x
			}
			if x > typicalMax {
				typicalMax = x
			}
		}
		if x == 0 {
			zeros++
		}
		if x < 0 {
			negatives++
		}
	}
	// Degenerate case: every value flagged as outlier, fall back to the
	// full range so typical bounds stay meaningful.
	if outliers == count {
		typicalMin = minVal
		typicalMax = maxVal
	}
	outlierPct := 100 * float64(outliers) / float64(count)

	skew, skewDefined := skewness(values, mean)

	ns := &report.NumericStats{
		Count:             count,
		Missing:           missing,
		Mean:              floatPtr(mean),
		Median:            floatPtr(median),
		StdDev:            floatPtr(stdDev),
		Min:               floatPtr(minVal),
		Max:               floatPtr(maxVal),
		Q25:               floatPtr(q1),
		Q75:               floatPtr(q3),
		Outliers:          outliers,
		OutlierPct:        outlierPct,
		Zeros:             zeros,
		Negatives:         negatives,
		DistributionShape: classifyShape(skew, skewDefined),
		TypicalMin:        floatPtr(typicalMin),
		TypicalMax:        floatPtr(typicalMax),
	}
	if skewDefined {
		ns.Skewness = floatPtr(skew)
	}

	edges, counts := a.histogram(sorted)
	return ns, histogramChart(col.Name, edges, counts)
}

// classifyShape maps a skewness coefficient to a distribution shape label.
// Undefined skewness (constant data or fewer than 3 values) is "Normal"
// by convention.
func classifyShape(skew float64, defined bool) string {
	if !defined {
		return "Normal"
	}
	switch {
	case math.Abs(skew) < 0.5:
		return "Normal"
	case skew >= 1:
		return "Highly right-skewed"
	case skew >= 0.5:
		return "Right-skewed"
	case skew <= -1:
		return "Highly left-skewed"
	default:
		return "Left-skewed"
	}
}

// floatPtr returns a pointer to f, or nil when f is not finite, so a
// missing statistic serializes as null instead of NaN/Infinity.
func floatPtr(f float64) *float64 {
	f, ok := safenum.Finite(f)
	if !ok {
		return nil
	}
	return &f
}
