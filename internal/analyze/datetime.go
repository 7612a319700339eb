package analyze

import (
	"sort"
	"time"

	"datalens/domain/report"
	"datalens/domain/table"
)

// analyzeDatetime computes the time range, modal timestamp and a bucketed
// timeline chart for datetime columns. Bucket granularity widens from days
// to years until the bucket count fits under MaxTimelineBuckets.
func (a *Analyzer) analyzeDatetime(col table.Column) (*report.DatetimeStats, *report.ChartSpec) {
	times := make([]time.Time, 0, col.Len())
	for _, v := range col.Values {
		if v.Type == table.ValueTime {
			times = append(times, v.Time)
		}
	}
	missing := col.Len() - len(times)

	if len(times) == 0 {
		return &report.DatetimeStats{Missing: missing}, nil
	}

	minT := times[0]
	maxT := times[0]
	freq := make(map[time.Time]int, len(times))
	firstSeen := make(map[time.Time]int, len(times))
	for i, t := range times {
		if t.Before(minT) {
			minT = t
		}
		if t.After(maxT) {
			maxT = t
		}
		if _, ok := freq[t]; !ok {
			firstSeen[t] = i
		}
		freq[t]++
	}

	mostCommon := times[0]
	bestCount := 0
	for t, c := range freq {
		if c > bestCount || (c == bestCount && firstSeen[t] < firstSeen[mostCommon]) {
			mostCommon = t
			bestCount = c
		}
	}

	rangeDays := daysBetween(minT, maxT)

	ds := &report.DatetimeStats{
		Count:      len(times),
		Unique:     len(freq),
		Missing:    missing,
		MinDate:    &minT,
		MaxDate:    &maxT,
		RangeDays:  rangeDays,
		MostCommon: &mostCommon,
	}
	return ds, a.timelineChart(col.Name, times, rangeDays)
}

// timelineChart buckets timestamps by day, week, month or multi-year
// spans so the chart never exceeds MaxTimelineBuckets bars. Labels are
// chronological.
func (a *Analyzer) timelineChart(name string, times []time.Time, rangeDays int) *report.ChartSpec {
	maxBuckets := a.config.MaxTimelineBuckets
	var truncate func(time.Time) time.Time
	var format string
	switch {
	case rangeDays < maxBuckets:
		truncate = truncateDay
		format = "2006-01-02"
	case rangeDays < 7*maxBuckets:
		truncate = truncateWeek
		format = "2006-01-02"
	case rangeDays < 30*maxBuckets:
		truncate = truncateMonth
		format = "2006-01"
	default:
		// year buckets, widened to step-year spans when the range
		// covers more years than the bucket cap
		minYear := times[0].Year()
		maxYear := minYear
		for _, t := range times {
			if y := t.Year(); y < minYear {
				minYear = y
			} else if y > maxYear {
				maxYear = y
			}
		}
		step := 1
		if span := maxYear - minYear + 1; span > maxBuckets {
			step = (span + maxBuckets - 1) / maxBuckets
		}
		truncate = func(t time.Time) time.Time {
			y := minYear + (t.Year()-minYear)/step*step
			return time.Date(y, 1, 1, 0, 0, 0, 0, t.Location())
		}
		format = "2006"
	}

	buckets := make(map[time.Time]int)
	for _, t := range times {
		buckets[truncate(t)]++
	}
	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	labels := make([]string, len(keys))
	counts := make([]int, len(keys))
	for i, k := range keys {
		labels[i] = k.Format(format)
		counts[i] = buckets[k]
	}
	return &report.ChartSpec{
		Kind:   "timeline",
		Title:  "Timeline of " + name,
		XLabel: name,
		YLabel: "Count",
		Labels: labels,
		Counts: counts,
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// truncateWeek maps a timestamp to the Monday starting its week
func truncateWeek(t time.Time) time.Time {
	d := truncateDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func truncateMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole days between two instants. Duration arithmetic
// saturates at roughly 292 years, so the difference is taken on epoch
// seconds instead.
func daysBetween(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / 86400)
}
