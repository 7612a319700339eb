package loader

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"datalens/domain/table"
	"datalens/internal/apperrors"
)

// readExcel parses the first sheet of an xlsx workbook. Cells arrive as
// display strings from the sheet, so they flow through the same coercion
// pipeline as CSV cells.
func (l *Loader) readExcel(content []byte) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, apperrors.ParseError("xlsx", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &table.Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.ParseError("xlsx", err)
	}
	if len(rows) == 0 {
		return &table.Table{}, nil
	}

	names := headerNames(rows[0])
	data := rows[1:]

	// GetRows returns ragged rows with trailing empties stripped; pad by
	// treating absent cells as missing.
	cols := make([]table.Column, len(names))
	for c, name := range names {
		values := make([]table.Value, len(data))
		for r, row := range data {
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
