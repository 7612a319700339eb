package loader

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"datalens/domain/table"
	"datalens/internal/apperrors"
)

// readCSV parses delimiter-separated text into a table. The first row is
// the header; every cell is coerced, then each column's kind is inferred
// and normalized. Non-UTF-8 input is retried as Latin-1 before failing.
func (l *Loader) readCSV(content []byte, delimiter rune) (*table.Table, error) {
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(content) {
		decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), content)
		if err != nil {
			return nil, apperrors.ParseError("csv", err)
		}
		content = decoded
	}

	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.ParseError("csv", err)
	}
	if len(records) == 0 {
		return &table.Table{}, nil
	}

	names := headerNames(records[0])
	rows := records[1:]

	cols := make([]table.Column, len(names))
	for c, name := range names {
		values := make([]table.Value, len(rows))
		for r, row := range rows {
			if c < len(row) {
				values[r] = CoerceCell(row[c])
			} else {
				values[r] = table.Missing()
			}
		}
		col := table.Column{Name: name, Values: values}
		col.Kind = InferKind(values, l.coerce)
		NormalizeColumn(&col)
		cols[c] = col
	}
	return &table.Table{Columns: cols}, nil
}

// sniffDelimiter picks the delimiter producing the most fields in the
// first line. Comma wins ties, matching its position in the candidate list.
func sniffDelimiter(content []byte) rune {
	line := string(content)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	best := ','
	bestCount := 0
	for _, d := range []rune{',', '\t', ';', '|'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best = d
			bestCount = n
		}
	}
	return best
}
