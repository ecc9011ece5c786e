package coverage

import (
	"fmt"
	"strings"

	"github.com/jaimade/watch-docs/internal/model"
)

const (
	priorityBaseScore = 0.5

	priorityClassBonus      = 0.2
	priorityFunctionBonus   = 0.1
	priorityPrivatePenalty  = 0.3
	priorityPublicBonus     = 0.2
	priorityMethodPenalty   = 0.1
	priorityDunderPenalty   = 0.3

	locationProminentThreshold = 20
	locationVisibleThreshold   = 50

	priorityProminentBonus   = 0.2
	priorityVisibleBonus     = 0.1
	priorityHeaderBonus      = 0.2
	priorityCodeBlockBonus   = 0.1
	prioritySimilarNameBonus = 0.2
)

// CloseMatcher is the subset of match.Matcher the scorer needs, kept as an
// interface so the scorer package doesn't depend on match's internals.
type CloseMatcher interface {
	CloseMatches(text string, cutoff float64) []string
}

// Scorer computes priority scores and human-readable reasons for
// undocumented entities and broken references, per spec section 4.5.
type Scorer struct {
	matcher CloseMatcher
	cutoff  float64
}

// NewScorer builds a scorer that consults matcher for typo detection, using
// the default fuzzy-match cutoff.
func NewScorer(matcher CloseMatcher) *Scorer {
	return &Scorer{matcher: matcher}
}

// NewScorerWithCutoff builds a scorer whose typo detection uses a
// caller-supplied Jaro-Winkler cutoff instead of the default, for the CLI's
// --fuzzy-cutoff flag.
func NewScorerWithCutoff(matcher CloseMatcher, cutoff float64) *Scorer {
	return &Scorer{matcher: matcher, cutoff: cutoff}
}

// ScoreUndocumentedEntity scores an entity with no documenting link.
func (s *Scorer) ScoreUndocumentedEntity(e model.CodeEntity) (float64, string) {
	score := priorityBaseScore
	var reasons []string

	switch e.Kind {
	case model.EntityClass:
		score += priorityClassBonus
		reasons = append(reasons, "class")
	case model.EntityFunction:
		score += priorityFunctionBonus
		reasons = append(reasons, "function")
	}

	if strings.HasPrefix(e.Name, "_") {
		score -= priorityPrivatePenalty
		reasons = append(reasons, "private")
	} else {
		score += priorityPublicBonus
		reasons = append(reasons, "public API")
	}

	if e.ParentName != "" {
		score -= priorityMethodPenalty
		reasons = append(reasons, fmt.Sprintf("method of %s", e.ParentName))
	}

	if e.IsDunder() {
		score -= priorityDunderPenalty
		reasons = append(reasons, "dunder method")
	}

	score = clamp01(score)
	return roundTo2(score), "Undocumented " + strings.Join(reasons, ", ")
}

// ScoreBrokenReference scores a reference with no matching entity.
func (s *Scorer) ScoreBrokenReference(ref model.DocReference) (float64, string) {
	score := priorityBaseScore
	var reasons []string

	switch {
	case ref.Location.LineStart <= locationProminentThreshold:
		score += priorityProminentBonus
		reasons = append(reasons, "prominent location")
	case ref.Location.LineStart <= locationVisibleThreshold:
		score += priorityVisibleBonus
		reasons = append(reasons, "visible location")
	}

	switch ref.Kind {
	case model.ReferenceHeader:
		score += priorityHeaderBonus
		reasons = append(reasons, "in header")
	case model.ReferenceCodeBlock:
		score += priorityCodeBlockBonus
		reasons = append(reasons, "in code block")
	}

	if s.matcher != nil {
		if close := s.matcher.CloseMatches(ref.CleanText(), s.cutoff); len(close) > 0 {
			score += prioritySimilarNameBonus
			reasons = append(reasons, fmt.Sprintf("similar to '%s'", close[0]))
		}
	}

	score = clamp01(score)
	if len(reasons) == 0 {
		return roundTo2(score), "Broken reference"
	}
	return roundTo2(score), "Broken reference: " + strings.Join(reasons, ", ")
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
