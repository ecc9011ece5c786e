package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaimade/watch-docs/internal/model"
)

func TestStatsAndCoveragePercent(t *testing.T) {
	codeFiles := []model.CodeFile{
		{Path: "a.py", Entities: []model.CodeEntity{
			{Name: "f", Location: model.Location{File: "a.py"}},
			{Name: "g", Location: model.Location{File: "a.py"}},
		}},
	}
	docFiles := []model.DocFile{
		{Path: "README.md", References: []model.DocReference{
			{Text: "f", Location: model.Location{File: "README.md", LineStart: 1}},
		}},
	}
	links := []model.CodeDocLink{
		{Entity: codeFiles[0].Entities[0], Reference: docFiles[0].References[0], Kind: model.LinkExact, Confidence: 1.0},
	}

	c := New(codeFiles, docFiles, links)
	stats := c.Stats()
	assert.Equal(t, 2, stats.TotalEntities)
	assert.Equal(t, 1, stats.DocumentedEntities)
	assert.Equal(t, 1, stats.UndocumentedEntities())
	assert.Equal(t, 50.0, stats.CoveragePercent())
}

func TestCoveragePercentZeroEntities(t *testing.T) {
	c := New(nil, nil, nil)
	assert.Equal(t, 0.0, c.Stats().CoveragePercent())
}

func TestUndocumentedEntitiesAndBrokenReferences(t *testing.T) {
	codeFiles := []model.CodeFile{
		{Path: "a.py", Entities: []model.CodeEntity{{Name: "f", Location: model.Location{File: "a.py"}}}},
	}
	docFiles := []model.DocFile{
		{Path: "README.md", References: []model.DocReference{
			{Text: "nonexistent", Location: model.Location{File: "README.md", LineStart: 5}},
		}},
	}
	c := New(codeFiles, docFiles, nil)

	undocumented := c.UndocumentedEntities()
	assert.Len(t, undocumented, 1)
	assert.Equal(t, "f", undocumented[0].Name)

	broken := c.BrokenReferences()
	assert.Len(t, broken, 1)
}

func TestCoverageByFileExcludesEmptyFiles(t *testing.T) {
	codeFiles := []model.CodeFile{
		{Path: "empty.py"},
		{Path: "a.py", Entities: []model.CodeEntity{{Name: "f", Location: model.Location{File: "a.py"}}}},
	}
	c := New(codeFiles, nil, nil)
	byFile := c.CoverageByFile()
	assert.NotContains(t, byFile, "empty.py")
	assert.Contains(t, byFile, "a.py")
	assert.Equal(t, 0.0, byFile["a.py"])
}

type stubMatcher struct{ names []string }

func (s stubMatcher) CloseMatches(text string, cutoff float64) []string { return s.names }

func TestScoreUndocumentedEntity(t *testing.T) {
	sc := NewScorer(nil)

	score, reason := sc.ScoreUndocumentedEntity(model.CodeEntity{Name: "PublicClass", Kind: model.EntityClass})
	assert.GreaterOrEqual(t, score, 0.7)
	assert.Contains(t, reason, "class")

	score, _ = sc.ScoreUndocumentedEntity(model.CodeEntity{Name: "__init__", Kind: model.EntityMethod, ParentName: "MyClass"})
	assert.LessOrEqual(t, score, 0.3)

	score, _ = sc.ScoreUndocumentedEntity(model.CodeEntity{Name: "_helper", Kind: model.EntityFunction})
	assert.LessOrEqual(t, score, 0.4)
}

func TestScoreBrokenReference(t *testing.T) {
	sc := NewScorer(stubMatcher{names: []string{"process_data"}})
	score, reason := sc.ScoreBrokenReference(model.DocReference{
		Text: "proces_data", Kind: model.ReferenceHeader, Location: model.Location{LineStart: 2},
	})
	assert.Greater(t, score, 0.5)
	assert.Contains(t, reason, "prominent location")
	assert.Contains(t, reason, "in header")
	assert.Contains(t, reason, "similar to 'process_data'")
}

func TestScoreBrokenReferenceNoSignals(t *testing.T) {
	sc := NewScorer(nil)
	score, reason := sc.ScoreBrokenReference(model.DocReference{
		Text: "xyz", Kind: model.ReferenceInlineCode, Location: model.Location{LineStart: 500},
	})
	assert.Equal(t, 0.5, score)
	assert.Equal(t, "Broken reference", reason)
}
