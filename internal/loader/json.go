package loader

import (
	"bytes"
	"encoding/json"
	"sort"

	"datalens/domain/table"
	"datalens/internal/apperrors"
	"datalens/internal/safenum"
)

// readJSON parses an array of flat objects into a table. Column order
// follows key order in the first object; keys appearing only in later
// objects are appended in sorted order. Nested values are flattened to
// their JSON text.
func (l *Loader) readJSON(content []byte) (*table.Table, error) {
	var records []map[string]any
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, apperrors.ParseError("json", err)
	}
	if len(records) == 0 {
		return &table.Table{}, nil
	}

	names, err := firstObjectKeys(content)
	if err != nil {
		return nil, apperrors.ParseError("json", err)
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		seen[n] = struct{}{}
	}
	var extra []string
	for _, rec := range records {
		for k := range rec {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	cols := make([]table.Column, len(names))
	for c, name := range names {
		values := make([]table.Value, len(records))
		for r, rec := range records {
			raw, ok := rec[name]
			if !ok {
				values[r] = table.Missing()
				continue
			}
			values[r] = jsonValue(raw)
		}
		col := table.Column{Name: name, Values: values}
		col.Kind = InferKind(values, l.coerce)
		NormalizeColumn(&col)
		cols[c] = col
	}
	return &table.Table{Columns: cols}, nil
}

// jsonValue converts one decoded JSON scalar to a cell value. Strings go
// through the full coercion pipeline so dates and missing markers embedded
// in JSON strings are recognized.
func jsonValue(raw any) table.Value {
	switch v := raw.(type) {
	case nil:
		return table.Missing()
	case float64:
		if f, ok := safenum.Finite(v); ok {
			return table.NumberValue(f)
		}
		return table.Missing()
	case bool:
		return table.BoolValue(v)
	case string:
		return CoerceCell(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return table.Missing()
		}
		return table.TextValue(string(encoded))
	}
}

// firstObjectKeys streams the first object of the array to recover its key
// order, which json.Unmarshal into maps discards.
func firstObjectKeys(content []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	if _, err := dec.Token(); err != nil { // opening '['
		return nil, err
	}
	if !dec.More() {
		return nil, nil
	}
	if _, err := dec.Token(); err != nil { // opening '{'
		return nil, err
	}
	var keys []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return keys, nil
		}
		key, ok := tok.(string)
		if !ok {
			continue
		}
		keys = append(keys, key)
		// skip the key's value, including nested structures
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
}
