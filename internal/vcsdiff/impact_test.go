package vcsdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaimade/watch-docs/internal/graph"
	"github.com/jaimade/watch-docs/internal/model"
)

func buildGraphWithDocumentedFunction(t *testing.T) (*graph.Graph, model.CodeEntity, model.DocReference) {
	t.Helper()
	g := graph.New()

	entity := model.CodeEntity{Name: "process_data", Kind: model.EntityFunction, Location: model.Location{File: "src/mod.py"}}
	ref := model.DocReference{Text: "process_data", Location: model.Location{File: "README.md", LineStart: 10}, Kind: model.ReferenceInlineCode}

	g.AddCodeFile(model.CodeFile{Path: "src/mod.py", Entities: []model.CodeEntity{entity}})
	g.AddDocFile(model.DocFile{Path: "README.md", References: []model.DocReference{ref}})
	g.AddLink(model.CodeDocLink{Entity: entity, Reference: ref, Kind: model.LinkExact, Confidence: 1.0})

	return g, entity, ref
}

func TestAnalyzeChangesDeletedEntityProducesBrokenReference(t *testing.T) {
	g, entity, ref := buildGraphWithDocumentedFunction(t)
	analyzer := NewImpactAnalyzer(g)

	changes := []EntityChange{
		{EntityName: entity.Name, FilePath: entity.Location.File, ChangeType: ChangeDeleted},
	}

	impacts := analyzer.AnalyzeChanges(changes)
	require.Len(t, impacts, 1)
	assert.Equal(t, ImpactBrokenReference, impacts[0].ImpactType)
	assert.Equal(t, "high", impacts[0].Severity())
	assert.Equal(t, ref.Location.File, impacts[0].DocPath)
	assert.Equal(t, 1.0, impacts[0].Confidence)
}

func TestAnalyzeChangesSignatureChangeProducesNeedsUpdate(t *testing.T) {
	g, entity, _ := buildGraphWithDocumentedFunction(t)
	analyzer := NewImpactAnalyzer(g)

	changes := []EntityChange{
		{EntityName: entity.Name, FilePath: entity.Location.File, ChangeType: ChangeSignatureChanged},
	}

	impacts := analyzer.AnalyzeChanges(changes)
	require.Len(t, impacts, 1)
	assert.Equal(t, ImpactNeedsUpdate, impacts[0].ImpactType)
	assert.Equal(t, "low", impacts[0].Severity())
}

func TestAnalyzeChangesAddedUndocumentedEntity(t *testing.T) {
	g := graph.New()
	analyzer := NewImpactAnalyzer(g)

	changes := []EntityChange{
		{EntityName: "new_func", FilePath: "src/mod.py", ChangeType: ChangeAdded},
	}

	impacts := analyzer.AnalyzeChanges(changes)
	require.Len(t, impacts, 1)
	assert.Equal(t, ImpactAddedUndocumented, impacts[0].ImpactType)
	assert.Empty(t, impacts[0].DocPath)
}

func TestAnalyzeChangesAddedDocumentedEntityProducesNoImpact(t *testing.T) {
	g, entity, _ := buildGraphWithDocumentedFunction(t)
	analyzer := NewImpactAnalyzer(g)

	changes := []EntityChange{
		{EntityName: entity.Name, FilePath: entity.Location.File, ChangeType: ChangeAdded},
	}

	impacts := analyzer.AnalyzeChanges(changes)
	assert.Empty(t, impacts)
}

func TestRenderImpactReportGroupsBySeverity(t *testing.T) {
	impacts := []DocumentationImpact{
		{DocPath: "a.md", DocLine: 1, ReferencedEntity: "f", ImpactType: ImpactBrokenReference},
		{DocPath: "b.md", DocLine: 2, ReferencedEntity: "g", ImpactType: ImpactPossiblyStale},
	}
	report := RenderImpactReport(impacts)
	assert.Contains(t, report, "High severity")
	assert.Contains(t, report, "Medium severity")
	assert.Contains(t, report, "a.md")
	assert.Contains(t, report, "b.md")
}

func TestRenderImpactReportEmpty(t *testing.T) {
	assert.Equal(t, "No documentation impact detected.\n", RenderImpactReport(nil))
}
