package loader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/domain/table"
	"datalens/internal/apperrors"
)

func newLoader() *Loader {
	return New(DefaultCoerceConfig())
}

func TestReadCSV(t *testing.T) {
	csv := "name,age,score,active,joined\n" +
		"alice,30,9.5,true,2024-01-15\n" +
		"bob,25,7.25,false,2024-02-20\n" +
		"carol,NA,8.0,true,2024-03-05\n"

	tbl, err := newLoader().Read([]byte(csv), "people.csv")
	require.NoError(t, err)

	require.Equal(t, 5, tbl.ColumnCount())
	assert.Equal(t, 3, tbl.RowCount())

	assert.Equal(t, "name", tbl.Columns[0].Name)
	assert.Equal(t, table.KindString, tbl.Columns[0].Kind)

	age := tbl.Columns[1]
	assert.Equal(t, table.KindNumeric, age.Kind)
	assert.Equal(t, table.NumberValue(30), age.Values[0])
	assert.True(t, age.Values[2].IsMissing(), "NA marker becomes missing")

	assert.Equal(t, table.KindNumeric, tbl.Columns[2].Kind)
	assert.Equal(t, table.KindBoolean, tbl.Columns[3].Kind)

	joined := tbl.Columns[4]
	assert.Equal(t, table.KindDatetime, joined.Kind)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), joined.Values[0].Time)
}

func TestReadCSVDuplicateHeaders(t *testing.T) {
	csv := "id,value,value,value\n1,2,3,4\n5,6,7,8\n"
	tbl, err := newLoader().Read([]byte(csv), "x.csv")
	require.NoError(t, err)

	require.Equal(t, 4, tbl.ColumnCount())
	assert.Equal(t, "id", tbl.Columns[0].Name)
	assert.Equal(t, "value", tbl.Columns[1].Name)
	assert.Equal(t, "value_2", tbl.Columns[2].Name)
	assert.Equal(t, "value_3", tbl.Columns[3].Name)
	require.NoError(t, tbl.Validate(), "loaded tables satisfy the uniqueness invariant")
	assert.Equal(t, table.NumberValue(3), tbl.Columns[2].Values[0])
}

func TestHeaderNamesSuffixCollision(t *testing.T) {
	// a literal value_2 already in the header must not collide with the
	// generated suffix
	got := headerNames([]string{"value", "value_2", "value"})
	assert.Equal(t, []string{"value", "value_2", "value_3"}, got)
}

func TestReadCSVBOMAndBlankHeader(t *testing.T) {
	csv := "\xEF\xBB\xBFa,,c\n1,2,3\n"
	tbl, err := newLoader().Read([]byte(csv), "x.csv")
	require.NoError(t, err)

	require.Equal(t, 3, tbl.ColumnCount())
	assert.Equal(t, "a", tbl.Columns[0].Name, "BOM is stripped from the first header")
	assert.Equal(t, "column_2", tbl.Columns[1].Name, "blank headers get positional names")
}

func TestReadCSVLatin1Fallback(t *testing.T) {
	// "café" with Latin-1 encoded é (0xE9), invalid as UTF-8
	raw := []byte("word\ncaf\xE9\n")
	tbl, err := newLoader().Read(raw, "words.csv")
	require.NoError(t, err)

	require.Equal(t, 1, tbl.ColumnCount())
	assert.Equal(t, "café", tbl.Columns[0].Values[0].Text)
}

func TestReadCSVShortRowsPadAsMissing(t *testing.T) {
	csv := "a,b\n1,2\n3\n"
	tbl, err := newLoader().Read([]byte(csv), "x.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.RowCount())
	assert.True(t, tbl.Columns[1].Values[1].IsMissing())
}

func TestReadTSV(t *testing.T) {
	tsv := "a\tb\n1\thello\n"
	tbl, err := newLoader().Read([]byte(tsv), "x.tsv")
	require.NoError(t, err)

	require.Equal(t, 2, tbl.ColumnCount())
	assert.Equal(t, table.NumberValue(1), tbl.Columns[0].Values[0])
}

func TestReadTxtSniffsDelimiter(t *testing.T) {
	txt := "a;b;c\n1;2;3\n"
	tbl, err := newLoader().Read([]byte(txt), "x.txt")
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.ColumnCount())

	piped := "a|b\n1|2\n"
	tbl, err = newLoader().Read([]byte(piped), "x.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.ColumnCount())
}

func TestReadJSON(t *testing.T) {
	data := `[
		{"id": 1, "name": "alice", "tags": ["a", "b"]},
		{"id": 2, "name": "bob", "extra": true},
		{"id": 3, "name": null}
	]`
	tbl, err := newLoader().Read([]byte(data), "records.json")
	require.NoError(t, err)

	require.Equal(t, 4, tbl.ColumnCount())
	// first-object key order, later keys appended
	assert.Equal(t, "id", tbl.Columns[0].Name)
	assert.Equal(t, "name", tbl.Columns[1].Name)
	assert.Equal(t, "tags", tbl.Columns[2].Name)
	assert.Equal(t, "extra", tbl.Columns[3].Name)

	assert.Equal(t, table.KindNumeric, tbl.Columns[0].Kind)
	assert.True(t, tbl.Columns[1].Values[2].IsMissing(), "JSON null becomes missing")
	assert.Equal(t, `["a","b"]`, tbl.Columns[2].Values[0].Text, "nested values flatten to JSON text")
	assert.True(t, tbl.Columns[2].Values[1].IsMissing(), "absent keys become missing")
}

func TestReadEmptyInputs(t *testing.T) {
	tbl, err := newLoader().Read([]byte(""), "empty.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.ColumnCount())

	tbl, err = newLoader().Read([]byte("[]"), "empty.json")
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.ColumnCount())
}

func TestReadUnsupportedFormat(t *testing.T) {
	_, err := newLoader().Read([]byte("x"), "data.parquet")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnsupportedFormat))
}

func TestCoerceCell(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want table.Value
	}{
		{"integer", "42", table.NumberValue(42)},
		{"float", "3.14", table.NumberValue(3.14)},
		{"padded number", " 7 ", table.NumberValue(7)},
		{"true", "true", table.BoolValue(true)},
		{"TRUE", "TRUE", table.BoolValue(true)},
		{"false", "false", table.BoolValue(false)},
		{"yes stays text", "yes", table.TextValue("yes")},
		{"date", "2024-05-01", table.TimeValue(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))},
		{"empty is missing", "", table.Missing()},
		{"NA is missing", "NA", table.Missing()},
		{"null is missing", "null", table.Missing()},
		{"NaN is missing", "NaN", table.Missing()},
		{"plain text", "hello world", table.TextValue("hello world")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceCell(tt.raw))
		})
	}
}

func TestInferKindMixedColumnStaysString(t *testing.T) {
	cfg := DefaultCoerceConfig()
	values := []table.Value{
		table.NumberValue(1),
		table.TextValue("apple"),
		table.TextValue("pear"),
		table.TextValue("plum"),
	}
	assert.Equal(t, table.KindString, InferKind(values, cfg))
}

func TestNormalizeColumnRestoresMinorityText(t *testing.T) {
	col := table.Column{Name: "c", Kind: table.KindString, Values: []table.Value{
		table.NumberValue(1),
		table.TextValue("apple"),
		table.TextValue("pear"),
		table.TextValue("plum"),
	}}
	NormalizeColumn(&col)
	assert.Equal(t, table.TextValue("1"), col.Values[0])
}
