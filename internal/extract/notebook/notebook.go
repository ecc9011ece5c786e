// Package notebook extracts Python entities from Jupyter notebook (.ipynb)
// files by concatenating each code cell's source and delegating to pyast,
// then rebasing the returned line numbers by the cumulative line count of
// the cells that came before.
package notebook

import (
	"encoding/json"
	"strings"

	"github.com/jaimade/watch-docs/internal/extract/pyast"
	"github.com/jaimade/watch-docs/internal/model"
)

// Sink receives warnings for malformed notebooks or unreadable cells.
type Sink interface {
	Warnf(format string, args ...any)
}

type nullSink struct{}

func (nullSink) Warnf(string, ...any) {}

type rawNotebook struct {
	Cells []rawCell `json:"cells"`
}

type rawCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

// IsNotebook reports whether path has the .ipynb extension.
func IsNotebook(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".ipynb")
}

// Extract parses raw notebook JSON and extracts entities/imports from every
// code cell in order, rebasing line numbers by cumulative cell length.
func Extract(relPath string, raw []byte, extractor *pyast.Extractor, sink Sink) ([]model.CodeEntity, []string) {
	if sink == nil {
		sink = nullSink{}
	}

	var nb rawNotebook
	if err := json.Unmarshal(raw, &nb); err != nil {
		sink.Warnf("failed to parse notebook %s: %v", relPath, err)
		return nil, nil
	}

	var entities []model.CodeEntity
	var imports []string
	lineOffset := 0

	for cellIdx, cell := range nb.Cells {
		source, lineCount := decodeSource(cell.Source)

		if cell.CellType == "code" && strings.TrimSpace(source) != "" {
			cellEntities, cellImports := extractor.Extract(relPath, []byte(source))
			for _, e := range cellEntities {
				e.Location.LineStart += lineOffset
				if e.Location.LineEnd != nil {
					end := *e.Location.LineEnd + lineOffset
					e.Location.LineEnd = &end
				}
				entities = append(entities, e)
			}
			for _, imp := range cellImports {
				imports = append(imports, imp)
			}
			_ = cellIdx
		}

		lineOffset += lineCount
	}

	return entities, model.DedupePreserveOrder(imports)
}

// decodeSource handles both the list-of-lines and single-string notebook
// cell source encodings, returning the joined text and its line count.
func decodeSource(raw json.RawMessage) (string, int) {
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, ""), len(lines)
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, strings.Count(single, "\n") + 1
	}

	return "", 0
}
