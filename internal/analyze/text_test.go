package analyze

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/domain/table"
)

func TestAnalyzeTextLengths(t *testing.T) {
	a := New(DefaultConfig())
	ts := a.analyzeText(stringColumn("s", "ab", "abcd", "abcdef"))
	require.NotNil(t, ts)

	assert.Equal(t, 3, ts.Count)
	assert.Equal(t, 3, ts.Unique)
	assert.Equal(t, 0, ts.Missing)
	require.NotNil(t, ts.AvgLength)
	assert.InDelta(t, 4.0, *ts.AvgLength, 1e-9)
	assert.Equal(t, 2, ts.MinLength)
	assert.Equal(t, 6, ts.MaxLength)
	assert.Equal(t, "Free text", ts.PatternHint)
}

func TestAnalyzeTextRuneLengths(t *testing.T) {
	a := New(DefaultConfig())
	ts := a.analyzeText(stringColumn("s", "héllo", "日本語"))

	assert.Equal(t, 3, ts.MinLength, "lengths count runes, not bytes")
	assert.Equal(t, 5, ts.MaxLength)
}

func TestAnalyzeTextSamplesAreDistinct(t *testing.T) {
	a := New(DefaultConfig())
	ts := a.analyzeText(stringColumn("s", "x", "x", "y", "z", "x", "w", "v", "u"))

	assert.Equal(t, []string{"x", "y", "z", "w", "v"}, ts.Samples)
}

func TestAnalyzeTextAllMissing(t *testing.T) {
	a := New(DefaultConfig())
	col := table.Column{Name: "s", Kind: table.KindString, Values: []table.Value{
		table.Missing(), table.Missing(),
	}}
	ts := a.analyzeText(col)

	assert.Equal(t, 0, ts.Count)
	assert.Equal(t, 2, ts.Missing)
	assert.Equal(t, "N/A", ts.PatternHint)
	assert.Empty(t, ts.Samples)
}

func TestPatternHints(t *testing.T) {
	a := New(DefaultConfig())

	tests := []struct {
		name string
		vals []string
		want string
	}{
		{
			name: "emails",
			vals: []string{"a@example.com", "b.c@test.org", "x+y@mail.co.uk", "not-an-email"},
			want: "Email addresses",
		},
		{
			name: "urls",
			vals: []string{"http://example.com", "https://test.org/page", "https://a.b", "plain"},
			want: "URLs",
		},
		{
			name: "numeric ids",
			vals: []string{"0012", "0034", "0056", "apple"},
			want: "Numeric IDs (as text)",
		},
		{
			name: "codes",
			vals: []string{"SKU-001", "SKU-002", "AB_99", "lowercase"},
			want: "IDs/Codes",
		},
		{
			name: "free text",
			vals: []string{"the quick brown fox", "jumps over", "the lazy dog", "again"},
			want: "Free text",
		},
		{
			name: "majority not reached",
			vals: []string{"a@b.co", "x@y.io", "plain one", "plain two"},
			want: "Free text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := a.analyzeText(stringColumn("s", tt.vals...))
			assert.Equal(t, tt.want, ts.PatternHint)
		})
	}
}

func TestPatternHintDigitsBeatCodesOnPriority(t *testing.T) {
	// pure digit strings match both the numeric-id and the code pattern;
	// the numeric-id hint wins because the fractions tie and it has
	// higher priority
	a := New(DefaultConfig())
	ts := a.analyzeText(stringColumn("s", "123", "456", "789"))
	assert.Equal(t, "Numeric IDs (as text)", ts.PatternHint)
}

func TestPatternHintHonorsSampleBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PatternSampleSize = 10
	a := New(cfg)

	// first 10 values are emails, the rest free text; only the sample
	// window drives the hint
	vals := make([]string, 0, 100)
	for i := 0; i < 10; i++ {
		vals = append(vals, fmt.Sprintf("user%d@example.com", i))
	}
	for i := 0; i < 90; i++ {
		vals = append(vals, fmt.Sprintf("note number %d", i))
	}
	ts := a.analyzeText(stringColumn("s", vals...))
	assert.Equal(t, "Email addresses", ts.PatternHint)
}
