package analyzer

import (
	"sort"

	"github.com/jaimade/watch-docs/internal/model"
)

// IssueType classifies a priority issue.
type IssueType string

const (
	IssueUndocumented    IssueType = "undocumented"
	IssueBrokenReference IssueType = "broken_reference"
)

// Issue is one scored documentation problem, combining an undocumented
// entity or a broken reference with its priority score and reason.
type Issue struct {
	Type      IssueType
	Priority  float64
	Entity    *model.CodeEntity
	Reference *model.DocReference
	Reason    string
}

// PriorityIssues collects undocumented entities and broken references,
// scores each, and returns them sorted by priority, highest first.
func (a *Analyzer) PriorityIssues() []Issue {
	var issues []Issue

	for _, e := range a.UndocumentedEntities() {
		entity := e
		priority, reason := a.scorer.ScoreUndocumentedEntity(entity)
		issues = append(issues, Issue{
			Type: IssueUndocumented, Priority: priority, Entity: &entity, Reason: reason,
		})
	}

	for _, r := range a.BrokenReferences() {
		ref := r
		priority, reason := a.scorer.ScoreBrokenReference(ref)
		issues = append(issues, Issue{
			Type: IssueBrokenReference, Priority: priority, Reference: &ref, Reason: reason,
		})
	}

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Priority > issues[j].Priority })
	return issues
}
