// Package loader turns uploaded file bytes into the canonical table model.
// Each format parses into raw cells, then shares one coercion pipeline:
// per-cell type resolution, per-column kind inference, normalization.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"datalens/domain/table"
	"datalens/internal/apperrors"
)

// Loader reads supported file formats into tables
type Loader struct {
	coerce CoerceConfig
}

// New creates a loader with the given coercion config
func New(coerce CoerceConfig) *Loader {
	return &Loader{coerce: coerce}
}

// SupportedFormats lists the file extensions Read accepts
func SupportedFormats() []string {
	return []string{".csv", ".tsv", ".txt", ".xlsx", ".json", ".db", ".sqlite", ".sqlite3"}
}

// Read parses content into a table, dispatching on the filename extension
func (l *Loader) Read(content []byte, filename string) (*table.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return l.readCSV(content, ',')
	case ".tsv":
		return l.readCSV(content, '\t')
	case ".txt":
		return l.readCSV(content, sniffDelimiter(content))
	case ".xlsx":
		return l.readExcel(content)
	case ".json":
		return l.readJSON(content)
	case ".db", ".sqlite", ".sqlite3":
		return l.readSQLite(content)
	default:
		return nil, apperrors.UnsupportedFormat(ext, strings.Join(SupportedFormats(), ", "))
	}
}

// headerNames trims the raw header row and makes every name unique: blank
// names get positional names, repeats get an occurrence suffix (value,
// value_2, value_3). Tables must carry unique column names and real files
// frequently do not.
func headerNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if _, dup := seen[name]; dup {
			base := name
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", base, n)
				if _, taken := seen[candidate]; !taken {
					name = candidate
					break
				}
			}
		}
		seen[name] = struct{}{}
		names[i] = name
	}
	return names
}
