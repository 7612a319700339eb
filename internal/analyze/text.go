package analyze

import (
	"regexp"
	"unicode/utf8"

	"github.com/montanaflynn/stats"

	"datalens/domain/report"
	"datalens/domain/table"
)

// pattern detectors, checked in priority order. The first pattern whose
// sample fraction exceeds one half (and is not beaten by a later pattern)
// names the column's hint.
var textPatterns = []struct {
	hint string
	re   *regexp.Regexp
}{
	{"Email addresses", regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)},
	{"URLs", regexp.MustCompile(`^https?://`)},
	{"Numeric IDs (as text)", regexp.MustCompile(`^\d+$`)},
	{"IDs/Codes", regexp.MustCompile(`^[A-Z0-9\-_]+$`)},
}

// analyzeText computes length statistics, sample values and a pattern hint
// for free-text columns. Pattern detection is bounded to the first
// PatternSampleSize values so wide text columns stay cheap to profile.
func (a *Analyzer) analyzeText(col table.Column) *report.TextStats {
	texts := make([]string, 0, col.Len())
	for _, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		texts = append(texts, v.Key())
	}
	missing := col.Len() - len(texts)

	if len(texts) == 0 {
		return &report.TextStats{
			Missing:     missing,
			PatternHint: "N/A",
			Samples:     []string{},
		}
	}

	lengths := make([]float64, len(texts))
	minLen := -1
	maxLen := 0
	distinct := make(map[string]struct{}, len(texts))
	samples := make([]string, 0, 5)
	for i, s := range texts {
		n := utf8.RuneCountInString(s)
		lengths[i] = float64(n)
		if minLen < 0 || n < minLen {
			minLen = n
		}
		if n > maxLen {
			maxLen = n
		}
		if _, seen := distinct[s]; !seen {
			distinct[s] = struct{}{}
			if len(samples) < 5 {
				samples = append(samples, s)
			}
		}
	}
	avg, _ := stats.Mean(lengths)

	return &report.TextStats{
		Count:       len(texts),
		Unique:      len(distinct),
		Missing:     missing,
		AvgLength:   floatPtr(avg),
		MinLength:   minLen,
		MaxLength:   maxLen,
		PatternHint: a.patternHint(texts),
		Samples:     samples,
	}
}

// patternHint matches a bounded sample against the known patterns and
// returns the dominant one. When two patterns clear the majority bar with
// equal fractions the higher-priority pattern wins.
func (a *Analyzer) patternHint(texts []string) string {
	sample := texts
	if len(sample) > a.config.PatternSampleSize {
		sample = sample[:a.config.PatternSampleSize]
	}

	best := "Free text"
	bestFraction := 0.5
	for _, p := range textPatterns {
		matched := 0
		for _, s := range sample {
			if p.re.MatchString(s) {
				matched++
			}
		}
		fraction := float64(matched) / float64(len(sample))
		if fraction > bestFraction {
			best = p.hint
			bestFraction = fraction
		}
	}
	return best
}
