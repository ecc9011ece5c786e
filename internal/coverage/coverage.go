// Package coverage computes documentation coverage statistics and
// per-issue priority scores, per spec sections 4.5 and 4.6.
package coverage

import (
	"sort"

	"github.com/jaimade/watch-docs/internal/model"
)

// Stats summarizes documentation coverage across a project.
type Stats struct {
	TotalEntities      int
	DocumentedEntities int
	TotalReferences    int
	LinkedReferences   int
}

// UndocumentedEntities returns the count of entities with no link.
func (s Stats) UndocumentedEntities() int { return s.TotalEntities - s.DocumentedEntities }

// BrokenReferences returns the count of references with no link.
func (s Stats) BrokenReferences() int { return s.TotalReferences - s.LinkedReferences }

// CoveragePercent returns documented/total as a percentage, 0 when there
// are no entities at all.
func (s Stats) CoveragePercent() float64 {
	if s.TotalEntities == 0 {
		return 0.0
	}
	return roundTo2(float64(s.DocumentedEntities) / float64(s.TotalEntities) * 100)
}

type refKey struct {
	file string
	line int
}

// Calculator computes coverage statistics and queries from a fixed set of
// code files, doc files, and the links resolved between them.
type Calculator struct {
	codeFiles []model.CodeFile
	docFiles  []model.DocFile
	links     []model.CodeDocLink

	documentedNames map[string]struct{}
	linkedRefKeys   map[refKey]struct{}
}

// New builds a calculator, pre-computing the documented-name and
// linked-reference-key sets used by every query.
func New(codeFiles []model.CodeFile, docFiles []model.DocFile, links []model.CodeDocLink) *Calculator {
	documented := make(map[string]struct{}, len(links))
	linkedKeys := make(map[refKey]struct{}, len(links))
	for _, l := range links {
		documented[l.Entity.QualifiedName()] = struct{}{}
		linkedKeys[refKey{file: l.Reference.Location.File, line: l.Reference.Location.LineStart}] = struct{}{}
	}
	return &Calculator{
		codeFiles:       codeFiles,
		docFiles:        docFiles,
		links:           links,
		documentedNames: documented,
		linkedRefKeys:   linkedKeys,
	}
}

// Stats returns overall coverage statistics.
func (c *Calculator) Stats() Stats {
	totalEntities := 0
	for _, cf := range c.codeFiles {
		totalEntities += len(cf.Entities)
	}
	totalRefs := 0
	for _, df := range c.docFiles {
		totalRefs += len(df.References)
	}
	return Stats{
		TotalEntities:      totalEntities,
		DocumentedEntities: len(c.documentedNames),
		TotalReferences:    totalRefs,
		LinkedReferences:   len(c.linkedRefKeys),
	}
}

// UndocumentedEntities returns every entity with no documenting link.
func (c *Calculator) UndocumentedEntities() []model.CodeEntity {
	var out []model.CodeEntity
	for _, cf := range c.codeFiles {
		for _, e := range cf.Entities {
			if _, ok := c.documentedNames[e.QualifiedName()]; !ok {
				out = append(out, e)
			}
		}
	}
	return out
}

// BrokenReferences returns every reference with no matching entity.
func (c *Calculator) BrokenReferences() []model.DocReference {
	var out []model.DocReference
	for _, df := range c.docFiles {
		for _, r := range df.References {
			key := refKey{file: r.Location.File, line: r.Location.LineStart}
			if _, ok := c.linkedRefKeys[key]; !ok {
				out = append(out, r)
			}
		}
	}
	return out
}

// CoverageByFile returns the per-file documentation coverage percentage,
// excluding files with no entities at all.
func (c *Calculator) CoverageByFile() map[string]float64 {
	out := make(map[string]float64)
	for _, cf := range c.codeFiles {
		if len(cf.Entities) == 0 {
			continue
		}
		documented := 0
		for _, e := range cf.Entities {
			if _, ok := c.documentedNames[e.QualifiedName()]; ok {
				documented++
			}
		}
		out[cf.Path] = roundTo2(float64(documented) / float64(len(cf.Entities)) * 100)
	}
	return out
}

// SortedFiles returns CoverageByFile's keys in sorted order, useful for
// deterministic report rendering.
func (c *Calculator) SortedFiles() []string {
	byFile := c.CoverageByFile()
	out := make([]string, 0, len(byFile))
	for path := range byFile {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func roundTo2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
