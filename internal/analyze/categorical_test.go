package analyze

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/domain/table"
)

func stringColumn(name string, vals ...string) table.Column {
	values := make([]table.Value, len(vals))
	for i, v := range vals {
		values[i] = table.TextValue(v)
	}
	return table.Column{Name: name, Kind: table.KindString, Values: values}
}

func TestAnalyzeCategoricalBasic(t *testing.T) {
	a := New(DefaultConfig())
	cs, chart := a.analyzeCategorical(stringColumn("color", "red", "blue", "red", "green", "red", "blue"))
	require.NotNil(t, cs)

	assert.Equal(t, 6, cs.Count)
	assert.Equal(t, 3, cs.Unique)
	assert.Equal(t, 0, cs.Missing)
	require.NotNil(t, cs.Mode)
	assert.Equal(t, "red", *cs.Mode)
	assert.Equal(t, 3, cs.ModeFreq)
	assert.InDelta(t, 50.0, cs.ModePct, 1e-9)
	assert.Equal(t, "high", cs.Diversity)
	assert.Equal(t, "low", cs.CardinalityLevel)
	assert.Equal(t, 0, cs.Remaining)

	// low cardinality shows everything
	require.Len(t, cs.ValueCounts, 3)
	assert.Equal(t, "red", cs.ValueCounts[0].Value)
	assert.Equal(t, 3, cs.ValueCounts[0].Count)
	assert.InDelta(t, 50.0, cs.ValueCounts[0].Pct, 1e-9)

	require.NotNil(t, chart)
	assert.Equal(t, "bar", chart.Kind)
	assert.Equal(t, []string{"red", "blue", "green"}, chart.Labels)
	assert.Equal(t, []int{3, 2, 1}, chart.Counts)
}

func TestAnalyzeCategoricalTieBreakByFirstAppearance(t *testing.T) {
	a := New(DefaultConfig())
	cs, _ := a.analyzeCategorical(stringColumn("c", "b", "a", "b", "a"))

	require.NotNil(t, cs.Mode)
	assert.Equal(t, "b", *cs.Mode, "equal counts resolve to first appearance")
	assert.Equal(t, "b", cs.ValueCounts[0].Value)
	assert.Equal(t, "a", cs.ValueCounts[1].Value)
}

func TestAnalyzeCategoricalCardinalityTiers(t *testing.T) {
	a := New(DefaultConfig())

	tests := []struct {
		unique    int
		wantList  int
		wantLevel string
	}{
		{unique: 8, wantList: 8, wantLevel: "low"},
		{unique: 20, wantList: 15, wantLevel: "medium"},
		{unique: 60, wantList: 10, wantLevel: "high"},
		{unique: 150, wantList: 10, wantLevel: "very_high"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d unique", tt.unique), func(t *testing.T) {
			// each distinct value appears 3 times so the column stays
			// comfortably categorical
			vals := make([]string, 0, tt.unique*3)
			for rep := 0; rep < 3; rep++ {
				for i := 0; i < tt.unique; i++ {
					vals = append(vals, fmt.Sprintf("v%03d", i))
				}
			}
			cs, _ := a.analyzeCategorical(stringColumn("c", vals...))

			assert.Equal(t, tt.unique, cs.Unique)
			assert.Equal(t, tt.wantLevel, cs.CardinalityLevel)
			assert.Len(t, cs.ValueCounts, tt.wantList)
			assert.Equal(t, tt.unique-tt.wantList, cs.Remaining)
		})
	}
}

func TestAnalyzeCategoricalAllMissing(t *testing.T) {
	a := New(DefaultConfig())
	col := table.Column{Name: "c", Kind: table.KindString, Values: []table.Value{
		table.Missing(), table.Missing(),
	}}
	cs, chart := a.analyzeCategorical(col)

	assert.Equal(t, 0, cs.Count)
	assert.Equal(t, 2, cs.Missing)
	assert.Nil(t, cs.Mode)
	assert.Equal(t, "low", cs.Diversity)
	assert.Empty(t, cs.ValueCounts)
	assert.Nil(t, chart)
}

func TestAnalyzeCategoricalBooleanColumn(t *testing.T) {
	a := New(DefaultConfig())
	col := table.Column{Name: "flag", Kind: table.KindNumeric, Values: []table.Value{
		table.NumberValue(0), table.NumberValue(0), table.NumberValue(1),
		table.NumberValue(1), table.NumberValue(0),
	}}
	cs, _ := a.analyzeCategorical(col)

	assert.Equal(t, 5, cs.Count)
	assert.Equal(t, 2, cs.Unique)
	require.NotNil(t, cs.Mode)
	assert.Equal(t, "0", *cs.Mode)
	assert.Equal(t, 3, cs.ModeFreq)
}

func TestDiversityLabel(t *testing.T) {
	assert.Equal(t, "low", diversityLabel(5, 100))
	assert.Equal(t, "medium", diversityLabel(30, 100))
	assert.Equal(t, "high", diversityLabel(70, 100))
	assert.Equal(t, "very_high", diversityLabel(95, 100))
}

func TestAnalyzeCategoricalPctRounding(t *testing.T) {
	a := New(DefaultConfig())
	cs, _ := a.analyzeCategorical(stringColumn("c", "a", "a", "b"))

	assert.InDelta(t, 66.67, cs.ValueCounts[0].Pct, 1e-9)
	assert.InDelta(t, 33.33, cs.ValueCounts[1].Pct, 1e-9)
}
