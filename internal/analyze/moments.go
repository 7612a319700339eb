package analyze

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"datalens/domain/report"
)

// quantile computes the p-th quantile of sorted data using linear
// interpolation between order statistics (type 7): position p*(n-1),
// fractional positions interpolate between the bracketing values. For
// [1,2,3,4,5,100] quantile(0.25) is 2.25 and quantile(0.75) is 4.75.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// skewness computes the Fisher-Pearson coefficient of skewness (population
// third moment, no bias correction). The second return is false when
// skewness is undefined: fewer than 3 values or zero variance.
func skewness(values []float64, mean float64) (float64, bool) {
	n := len(values)
	if n < 3 {
		return 0, false
	}

	sumSq := 0.0
	sumCubed := 0.0
	for _, x := range values {
		d := x - mean
		sumSq += d * d
		sumCubed += d * d * d
	}

	variance := sumSq / float64(n)
	if variance == 0 {
		return 0, false
	}
	std := math.Sqrt(variance)

	return sumCubed / float64(n) / (std * std * std), true
}

// histogram builds equal-width bin edges and counts covering [min,max]
// exactly. Bin count follows min(MaxBins, max(MinBins, round(sqrt(n))));
// a constant column collapses to a single bin. Values on the right edge
// of the last bin are counted in it, so no data point is ever dropped.
func (a *Analyzer) histogram(sorted []float64) ([]float64, []int) {
	n := len(sorted)
	lo := sorted[0]
	hi := sorted[n-1]
	if lo == hi {
		return []float64{lo, hi}, []int{n}
	}

	bins := int(math.Round(math.Sqrt(float64(n))))
	if bins < a.config.MinHistogramBins {
		bins = a.config.MinHistogramBins
	}
	if bins > a.config.MaxHistogramBins {
		bins = a.config.MaxHistogramBins
	}

	edges := make([]float64, bins+1)
	floats.Span(edges, lo, hi)

	counts := make([]int, bins)
	width := (hi - lo) / float64(bins)
	for _, x := range sorted {
		idx := int((x - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return edges, counts
}

// histogramChart wraps histogram output in a renderable chart spec
func histogramChart(name string, edges []float64, counts []int) *report.ChartSpec {
	return &report.ChartSpec{
		Kind:     "histogram",
		Title:    "Distribution of " + name,
		XLabel:   name,
		YLabel:   "Count",
		BinEdges: edges,
		Counts:   counts,
	}
}

// round2 rounds to two decimal places. Display percentages are rounded
// independently per entry and need not re-sum to exactly 100.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
