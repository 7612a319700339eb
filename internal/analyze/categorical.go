package analyze

import (
	"fmt"
	"sort"

	"datalens/domain/report"
	"datalens/domain/table"
)

// cardinality tiers: how many value counts to report and how many bars to
// chart, keyed by the column's unique count. Low-cardinality columns show
// everything; high-cardinality columns are truncated with an explicit
// remaining-categories count.
type cardinalityTier struct {
	maxUnique  int
	listLimit  int
	chartLimit int
	level      string
}

var cardinalityTiers = []cardinalityTier{
	{maxUnique: 10, listLimit: -1, chartLimit: -1, level: "low"},
	{maxUnique: 30, listLimit: 15, chartLimit: 12, level: "medium"},
	{maxUnique: 100, listLimit: 10, chartLimit: 10, level: "high"},
}

// analyzeCategorical computes frequency statistics for categorical and
// boolean columns. Value counts are ordered by frequency descending with
// first-appearance order breaking ties, so output is deterministic.
func (a *Analyzer) analyzeCategorical(col table.Column) (*report.CategoricalStats, *report.ChartSpec) {
	freq := make(map[string]int)
	firstSeen := make(map[string]int)
	count := 0
	for _, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		key := v.Key()
		if _, ok := freq[key]; !ok {
			firstSeen[key] = count
		}
		freq[key]++
		count++
	}
	missing := col.Len() - count

	if count == 0 {
		return &report.CategoricalStats{
			Missing:          missing,
			Diversity:        "low",
			CardinalityLevel: "low",
			ValueCounts:      []report.ValueCount{},
		}, nil
	}

	unique := len(freq)
	entries := make([]report.ValueCount, 0, unique)
	for key, c := range freq {
		entries = append(entries, report.ValueCount{
			Value: key,
			Count: c,
			Pct:   round2(100 * float64(c) / float64(count)),
		})
	}
	sortValueCounts(entries, firstSeen)

	mode := entries[0].Value
	modeFreq := entries[0].Count
	modePct := 100 * float64(modeFreq) / float64(count)

	listLimit, chartLimit, level := tierFor(unique)
	shown := entries
	if listLimit >= 0 && len(shown) > listLimit {
		shown = shown[:listLimit]
	}
	remaining := unique - len(shown)

	cs := &report.CategoricalStats{
		Count:            count,
		Unique:           unique,
		Missing:          missing,
		Mode:             &mode,
		ModeFreq:         modeFreq,
		ModePct:          modePct,
		Diversity:        diversityLabel(unique, count),
		CardinalityLevel: level,
		ValueCounts:      shown,
		Remaining:        remaining,
	}

	charted := entries
	if chartLimit >= 0 && len(charted) > chartLimit {
		charted = charted[:chartLimit]
	}
	return cs, barChart(col.Name, charted, unique)
}

// tierFor resolves the display limits for a unique count. Above the last
// tier the list and chart are capped at 10 each.
func tierFor(unique int) (listLimit, chartLimit int, level string) {
	for _, t := range cardinalityTiers {
		if unique <= t.maxUnique {
			return t.listLimit, t.chartLimit, t.level
		}
	}
	return 10, 10, "very_high"
}

// diversityLabel buckets the unique/count ratio into a coarse label
func diversityLabel(unique, count int) string {
	ratio := float64(unique) / float64(count)
	switch {
	case ratio < 0.1:
		return "low"
	case ratio < 0.5:
		return "medium"
	case ratio < 0.9:
		return "high"
	default:
		return "very_high"
	}
}

// sortValueCounts orders entries by count descending, breaking ties by the
// value's first appearance in the column, so equal inputs always produce
// identical orderings.
func sortValueCounts(entries []report.ValueCount, firstSeen map[string]int) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Value] < firstSeen[entries[j].Value]
	})
}

// barChart builds the top-values chart for a categorical column
func barChart(name string, entries []report.ValueCount, totalUnique int) *report.ChartSpec {
	labels := make([]string, len(entries))
	counts := make([]int, len(entries))
	for i, e := range entries {
		labels[i] = e.Value
		counts[i] = e.Count
	}
	title := "Top Values in " + name
	if len(entries) < totalUnique {
		title = fmt.Sprintf("Top Values in %s (showing %d of %d)", name, len(entries), totalUnique)
	}
	return &report.ChartSpec{
		Kind:   "bar",
		Title:  title,
		XLabel: name,
		YLabel: "Count",
		Labels: labels,
		Counts: counts,
	}
}
