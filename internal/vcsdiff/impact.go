package vcsdiff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jaimade/watch-docs/internal/graph"
	"github.com/jaimade/watch-docs/internal/model"
)

// ImpactType classifies how a code change may have affected documentation.
type ImpactType string

const (
	ImpactBrokenReference   ImpactType = "broken_reference"
	ImpactPossiblyStale     ImpactType = "possibly_stale"
	ImpactNeedsUpdate       ImpactType = "needs_update"
	ImpactAddedUndocumented ImpactType = "added_undocumented"
)

// Confidence values for each impact type, carried over from the original
// tracker's inline reasoning (no shared constants module defines them):
// a deleted entity's references are certainly broken, a signature change
// likely needs a doc update, a docstring change only possibly does, and a
// newly added entity with no documentation is a lower-confidence nudge.
const (
	confidenceDeleted           = 1.0
	confidenceSignatureChanged  = 0.8
	confidenceDocstringChanged  = 0.6
	confidenceAddedUndocumented = 0.5
)

// Severity returns the human-facing urgency bucket for an impact type.
func (t ImpactType) Severity() string {
	switch t {
	case ImpactBrokenReference:
		return "high"
	case ImpactPossiblyStale:
		return "medium"
	case ImpactNeedsUpdate, ImpactAddedUndocumented:
		return "low"
	default:
		return "low"
	}
}

// DocumentationImpact is one documentation location that a code change may
// have made stale.
type DocumentationImpact struct {
	DocPath          string
	DocLine          int
	ReferencedEntity string
	ImpactType       ImpactType
	Confidence       float64
	Change           EntityChange
}

// Severity delegates to the impact type's severity bucket.
func (i DocumentationImpact) Severity() string { return i.ImpactType.Severity() }

// String renders a single-line human-readable summary. ADDED_UNDOCUMENTED
// impacts have no doc location, so the entity's own source file stands in
// for it.
func (i DocumentationImpact) String() string {
	if i.DocPath == "" {
		return fmt.Sprintf("[%s] %s: %s (%s)", i.Severity(), i.ImpactType, i.ReferencedEntity, i.Change.FilePath)
	}
	return fmt.Sprintf("[%s] %s:%d references %s (%s)", i.Severity(), i.DocPath, i.DocLine, i.ReferencedEntity, i.ImpactType)
}

// ImpactAnalyzer maps detected entity changes onto a documentation graph to
// find which documentation locations they may have made stale.
type ImpactAnalyzer struct {
	graph *graph.Graph
}

// NewImpactAnalyzer builds an analyzer bound to g.
func NewImpactAnalyzer(g *graph.Graph) *ImpactAnalyzer {
	return &ImpactAnalyzer{graph: g}
}

// qualifiedName reconstructs the graph's entity identity from an
// EntityChange's file path and display name, mirroring
// model.CodeEntity.QualifiedName without requiring a full entity value.
func qualifiedName(filePath, displayName string) string {
	mp := model.ModulePath(filePath)
	if mp == "" {
		return displayName
	}
	return mp + "." + displayName
}

// AnalyzeChanges maps each entity change onto the documentation that
// references it, producing one impact per affected doc location. Deleted,
// signature-changed, and docstring-changed entities are matched against
// their existing documenting references; added entities with no
// documentation yet produce a single entity-level impact.
func (a *ImpactAnalyzer) AnalyzeChanges(changes []EntityChange) []DocumentationImpact {
	var impacts []DocumentationImpact

	for _, change := range changes {
		entityID := graph.EntityNodeID(qualifiedName(change.FilePath, change.EntityName))

		switch change.ChangeType {
		case ChangeAdded:
			if len(a.graph.DocumentingRefs(entityID)) == 0 {
				impacts = append(impacts, DocumentationImpact{
					ReferencedEntity: change.EntityName,
					ImpactType:       ImpactAddedUndocumented,
					Confidence:       confidenceAddedUndocumented,
					Change:           change,
				})
			}
		case ChangeDeleted:
			impacts = append(impacts, a.impactsForRefs(entityID, change, ImpactBrokenReference, confidenceDeleted)...)
		case ChangeSignatureChanged:
			impacts = append(impacts, a.impactsForRefs(entityID, change, ImpactNeedsUpdate, confidenceSignatureChanged)...)
		case ChangeDocstringChanged:
			impacts = append(impacts, a.impactsForRefs(entityID, change, ImpactPossiblyStale, confidenceDocstringChanged)...)
		}
	}

	return impacts
}

func (a *ImpactAnalyzer) impactsForRefs(entityID string, change EntityChange, impactType ImpactType, confidence float64) []DocumentationImpact {
	var impacts []DocumentationImpact
	for _, refID := range a.graph.DocumentingRefs(entityID) {
		node, ok := a.graph.Node(refID)
		if !ok || node.Ref == nil {
			continue
		}
		impacts = append(impacts, DocumentationImpact{
			DocPath:          node.Ref.Location.File,
			DocLine:          node.Ref.Location.LineStart,
			ReferencedEntity: change.EntityName,
			ImpactType:       impactType,
			Confidence:       confidence,
			Change:           change,
		})
	}
	return impacts
}

// RenderImpactReport renders impacts as a markdown report grouped by
// severity, highest first.
func RenderImpactReport(impacts []DocumentationImpact) string {
	if len(impacts) == 0 {
		return "No documentation impact detected.\n"
	}

	bySeverity := map[string][]DocumentationImpact{}
	for _, imp := range impacts {
		bySeverity[imp.Severity()] = append(bySeverity[imp.Severity()], imp)
	}

	var b strings.Builder
	b.WriteString("# Documentation Impact Report\n\n")

	for _, severity := range []string{"high", "medium", "low"} {
		group := bySeverity[severity]
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			if group[i].DocPath != group[j].DocPath {
				return group[i].DocPath < group[j].DocPath
			}
			return group[i].DocLine < group[j].DocLine
		})

		fmt.Fprintf(&b, "## %s severity (%d)\n\n", strings.ToUpper(severity[:1])+severity[1:], len(group))
		for _, imp := range group {
			fmt.Fprintf(&b, "- %s\n", imp.String())
		}
		b.WriteString("\n")
	}

	return b.String()
}
