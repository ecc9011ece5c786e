// Package match resolves documentation references to code entities via an
// inverted trigram index and a confidence-scored exact/qualified/partial
// cascade, per spec section 4.4.
package match

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/jaimade/watch-docs/internal/model"
)

const (
	confidenceExact           = 1.0
	confidenceQualified       = 0.9
	confidencePartialQualified = 0.7
	confidencePartial         = 0.5

	minIdentifierLength = 3
	defaultFuzzyCutoff  = 0.6
)

// Candidate is one (entity, link kind, confidence) match result.
type Candidate struct {
	Entity     model.CodeEntity
	Kind       model.LinkKind
	Confidence float64
}

// Matcher resolves references against a fixed set of entities, indexed by
// name for exact/qualified lookup and by trigram for partial lookup.
type Matcher struct {
	byName  map[string][]model.CodeEntity
	trigram map[string]map[string]struct{}
	names   []string
}

// New builds a matcher over entities, grouped by bare name.
func New(entities []model.CodeEntity) *Matcher {
	m := &Matcher{
		byName:  make(map[string][]model.CodeEntity),
		trigram: make(map[string]map[string]struct{}),
	}
	for _, e := range entities {
		m.byName[e.Name] = append(m.byName[e.Name], e)
	}
	m.names = make([]string, 0, len(m.byName))
	for name := range m.byName {
		m.names = append(m.names, name)
		for _, tg := range trigrams(name) {
			set, ok := m.trigram[tg]
			if !ok {
				set = make(map[string]struct{})
				m.trigram[tg] = set
			}
			set[name] = struct{}{}
		}
	}
	sort.Strings(m.names)
	return m
}

// Match resolves one reference against the indexed entity set, per the
// exact/qualified/partial cascade.
func (m *Matcher) Match(ref model.DocReference) []Candidate {
	cleanText := ref.CleanText()

	multiplier := 1.0
	if ref.Kind == model.ReferenceCodeBlock {
		multiplier = model.CodeBlockPenalty
	}

	if entities, ok := m.byName[cleanText]; ok {
		out := make([]Candidate, 0, len(entities))
		for _, e := range entities {
			out = append(out, Candidate{Entity: e, Kind: model.LinkExact, Confidence: confidenceExact * multiplier})
		}
		return out
	}

	var matches []Candidate

	if idx := strings.LastIndex(cleanText, "."); idx >= 0 {
		lastPart := cleanText[idx+1:]
		if entities, ok := m.byName[lastPart]; ok {
			for _, e := range entities {
				if strings.Contains(e.QualifiedName(), cleanText) {
					matches = append(matches, Candidate{Entity: e, Kind: model.LinkQualified, Confidence: confidenceQualified * multiplier})
				} else {
					matches = append(matches, Candidate{Entity: e, Kind: model.LinkPartial, Confidence: confidencePartialQualified * multiplier})
				}
			}
		}
	}

	if len(matches) == 0 && len(cleanText) >= minIdentifierLength {
		candidates := m.partialCandidates(cleanText)
		cleanLower := strings.ToLower(cleanText)
		for name := range candidates {
			nameLower := strings.ToLower(name)
			if strings.Contains(nameLower, cleanLower) || strings.Contains(cleanLower, nameLower) {
				for _, e := range m.byName[name] {
					matches = append(matches, Candidate{Entity: e, Kind: model.LinkPartial, Confidence: confidencePartial * multiplier})
				}
			}
		}
	}

	return matches
}

func (m *Matcher) partialCandidates(text string) map[string]struct{} {
	tgs := trigrams(text)
	if len(tgs) == 0 {
		out := make(map[string]struct{}, len(m.names))
		for _, n := range m.names {
			out[n] = struct{}{}
		}
		return out
	}

	candidates := make(map[string]struct{})
	for _, tg := range tgs {
		for name := range m.trigram[tg] {
			candidates[name] = struct{}{}
		}
	}
	return candidates
}

func trigrams(text string) []string {
	if len(text) < 3 {
		return nil
	}
	lower := strings.ToLower(text)
	out := make([]string, 0, len(lower)-2)
	for i := 0; i+3 <= len(lower); i++ {
		out = append(out, lower[i:i+3])
	}
	return out
}

// CloseMatches returns up to one entity name similar to text at or above
// cutoff Jaro-Winkler similarity, used to flag likely typos in references.
func (m *Matcher) CloseMatches(text string, cutoff float64) []string {
	if cutoff <= 0 {
		cutoff = defaultFuzzyCutoff
	}

	best := ""
	bestScore := float32(0)
	for _, name := range m.names {
		score, err := edlib.StringsSimilarity(text, name, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if float64(score) >= cutoff && score > bestScore {
			best = name
			bestScore = score
		}
	}
	if best == "" {
		return nil
	}
	return []string{best}
}
