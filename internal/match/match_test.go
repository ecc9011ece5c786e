package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaimade/watch-docs/internal/model"
)

func entity(name, parent string) model.CodeEntity {
	return model.CodeEntity{Name: name, Kind: model.EntityFunction, ParentName: parent, Location: model.Location{File: "utils.py"}}
}

func TestExactMatch(t *testing.T) {
	m := New([]model.CodeEntity{entity("process_data", "")})
	ref := model.DocReference{Text: "process_data", Kind: model.ReferenceInlineCode}
	matches := m.Match(ref)
	assert.Len(t, matches, 1)
	assert.Equal(t, model.LinkExact, matches[0].Kind)
	assert.Equal(t, 1.0, matches[0].Confidence)
}

func TestExactMatchCodeBlockPenalty(t *testing.T) {
	m := New([]model.CodeEntity{entity("process_data", "")})
	ref := model.DocReference{Text: "process_data", Kind: model.ReferenceCodeBlock}
	matches := m.Match(ref)
	assert.Len(t, matches, 1)
	assert.InDelta(t, 0.6, matches[0].Confidence, 1e-9)
}

func TestQualifiedMatch(t *testing.T) {
	e := model.CodeEntity{Name: "process", Location: model.Location{File: "src/utils.py"}}
	m := New([]model.CodeEntity{e})
	ref := model.DocReference{Text: "utils.process", Kind: model.ReferenceInlineCode}
	matches := m.Match(ref)
	assert.Len(t, matches, 1)
	assert.Equal(t, model.LinkQualified, matches[0].Kind)
	assert.InDelta(t, 0.9, matches[0].Confidence, 1e-9)
}

func TestPartialQualifiedMatch(t *testing.T) {
	e := model.CodeEntity{Name: "process", Location: model.Location{File: "other.py"}}
	m := New([]model.CodeEntity{e})
	ref := model.DocReference{Text: "mod.process", Kind: model.ReferenceInlineCode}
	matches := m.Match(ref)
	assert.Len(t, matches, 1)
	assert.Equal(t, model.LinkPartial, matches[0].Kind)
	assert.InDelta(t, 0.7, matches[0].Confidence, 1e-9)
}

func TestPartialMatchViaTrigram(t *testing.T) {
	m := New([]model.CodeEntity{entity("process_data_batch", "")})
	ref := model.DocReference{Text: "process_data", Kind: model.ReferenceInlineCode}
	matches := m.Match(ref)
	assert.Len(t, matches, 1)
	assert.Equal(t, model.LinkPartial, matches[0].Kind)
	assert.InDelta(t, 0.5, matches[0].Confidence, 1e-9)
}

func TestNoMatchBelowMinLength(t *testing.T) {
	m := New([]model.CodeEntity{entity("ab", "")})
	ref := model.DocReference{Text: "xy", Kind: model.ReferenceInlineCode}
	assert.Empty(t, m.Match(ref))
}

func TestCloseMatches(t *testing.T) {
	m := New([]model.CodeEntity{entity("process_data", "")})
	close := m.CloseMatches("proces_data", 0.6)
	assert.Equal(t, []string{"process_data"}, close)
}
