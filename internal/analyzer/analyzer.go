// Package analyzer is the top-level orchestrator: it walks a directory,
// extracts code entities and documentation references, builds the
// documentation graph, matches references to entities, and answers
// coverage/priority/cluster queries over the result. It mirrors
// DocumentationAnalyzer from the original implementation, generalized to
// the multi-language extraction pipeline spec section 4.2 describes.
package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/jaimade/watch-docs/internal/coverage"
	"github.com/jaimade/watch-docs/internal/errors"
	"github.com/jaimade/watch-docs/internal/extract/docext"
	"github.com/jaimade/watch-docs/internal/extract/jsregex"
	"github.com/jaimade/watch-docs/internal/extract/notebook"
	"github.com/jaimade/watch-docs/internal/extract/pyast"
	"github.com/jaimade/watch-docs/internal/extract/supplemental"
	"github.com/jaimade/watch-docs/internal/graph"
	"github.com/jaimade/watch-docs/internal/match"
	"github.com/jaimade/watch-docs/internal/model"
	"github.com/jaimade/watch-docs/internal/scanner"
)

// Sink receives warnings for unreadable or malformed files.
type Sink interface {
	Warnf(format string, args ...any)
}

type nullSink struct{}

func (nullSink) Warnf(string, ...any) {}

var extToLanguage = map[string]model.Language{
	".py": model.LanguagePython, ".pyi": model.LanguagePython,
	".js": model.LanguageJavaScript, ".jsx": model.LanguageJavaScript,
	".mjs": model.LanguageJavaScript, ".cjs": model.LanguageJavaScript,
	".ts": model.LanguageTypeScript, ".tsx": model.LanguageTypeScript,
	".go": model.LanguageGo, ".rs": model.LanguageRust, ".java": model.LanguageJava,
	".php": model.LanguagePHP, ".cs": model.LanguageCSharp,
	".cpp": model.LanguageCPP, ".cc": model.LanguageCPP, ".hpp": model.LanguageCPP,
	".c": model.LanguageC, ".h": model.LanguageC,
}

var extToFormat = map[string]model.DocFormat{
	".md": model.DocFormatMarkdown, ".markdown": model.DocFormatMarkdown,
	".rst":      model.DocFormatRST,
	".adoc":     model.DocFormatAsciiDoc,
	".asciidoc": model.DocFormatAsciiDoc,
}

func languageFor(ext string) model.Language {
	if lang, ok := extToLanguage[ext]; ok {
		return lang
	}
	return model.LanguageUnknown
}

func formatFor(ext string) model.DocFormat {
	if format, ok := extToFormat[ext]; ok {
		return format
	}
	return model.DocFormatPlain
}

// Options configures an Analyzer beyond the fixed spec section 6 rules.
type Options struct {
	ScanOptions scanner.Options
	FuzzyCutoff float64
	Sink        Sink
}

// cachedFile is one file's extraction result, keyed by content fingerprint
// so a re-run over an unchanged tree skips re-extraction entirely. This is
// a pure performance optimization: identical content always produces an
// identical CodeFile/DocFile, so skipping extraction never changes a
// result, only how fast it's produced.
type cachedFile struct {
	hash uint64
	code *model.CodeFile
	doc  *model.DocFile
}

// Analyzer orchestrates scanning, extraction, graph construction, matching
// and coverage scoring for one root directory.
type Analyzer struct {
	opts         Options
	sink         Sink
	pyExtractor  *pyast.Extractor
	supplemental *supplemental.Extractor

	fileCache map[string]cachedFile

	graph     *graph.Graph
	codeFiles []model.CodeFile
	docFiles  []model.DocFile
	links     []model.CodeDocLink

	matcher      *match.Matcher
	scorer       *coverage.Scorer
	coverageCalc *coverage.Calculator
	cacheLengths [3]int
}

// New constructs an Analyzer with no analysis performed yet.
func New(opts Options) *Analyzer {
	sink := opts.Sink
	if sink == nil {
		sink = nullSink{}
	}
	py := pyast.New()
	py.Sink = sink

	return &Analyzer{
		opts:         opts,
		sink:         sink,
		pyExtractor:  py,
		supplemental: supplemental.New(),
		fileCache:    make(map[string]cachedFile),
		graph:        graph.New(),
	}
}

func (a *Analyzer) warnf(format string, args ...any) { a.sink.Warnf(format, args...) }

// Graph returns the documentation graph built by the last AnalyzeDirectory
// call, for callers (such as vcsdiff.ImpactAnalyzer) that need direct
// access.
func (a *Analyzer) Graph() *graph.Graph { return a.graph }

// CodeFiles returns the code files from the last analysis, for callers
// that persist analyzer state (internal/serialize).
func (a *Analyzer) CodeFiles() []model.CodeFile { return a.codeFiles }

// DocFiles returns the doc files from the last analysis.
func (a *Analyzer) DocFiles() []model.DocFile { return a.docFiles }

// Links returns the code-doc links from the last analysis.
func (a *Analyzer) Links() []model.CodeDocLink { return a.links }

// LoadState replaces the analyzer's state with previously serialized code
// files, doc files, and links, rebuilding the graph and matcher without
// recomputing reference matches — the links are taken as already resolved,
// mirroring the original's load path which reconstructs the graph from
// stored links instead of rematching.
func (a *Analyzer) LoadState(codeFiles []model.CodeFile, docFiles []model.DocFile, links []model.CodeDocLink) {
	a.codeFiles = codeFiles
	a.docFiles = docFiles
	a.links = links

	a.graph = graph.New()
	var allEntities []model.CodeEntity
	for _, cf := range a.codeFiles {
		a.graph.AddCodeFile(cf)
		allEntities = append(allEntities, cf.Entities...)
	}
	for _, df := range a.docFiles {
		a.graph.AddDocFile(df)
	}
	for _, link := range a.links {
		a.graph.AddLink(link)
	}

	a.matcher = match.New(allEntities)
	if a.opts.FuzzyCutoff > 0 {
		a.scorer = coverage.NewScorerWithCutoff(a.matcher, a.opts.FuzzyCutoff)
	} else {
		a.scorer = coverage.NewScorer(a.matcher)
	}

	a.coverageCalc = coverage.New(a.codeFiles, a.docFiles, a.links)
	a.cacheLengths = [3]int{len(a.codeFiles), len(a.docFiles), len(a.links)}
}

// AnalyzeDirectory walks root, extracts every code and doc file, builds
// the graph, and matches references to entities. It replaces any prior
// analysis state entirely.
func (a *Analyzer) AnalyzeDirectory(root string) error {
	paths, err := scanner.Walk(root, a.opts.ScanOptions)
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}

	var codeFiles []model.CodeFile
	var docFiles []model.DocFile

	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		category := scanner.Classify(path, a.opts.ScanOptions)
		if category == scanner.CategoryOther {
			continue
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			a.warnf("%s", errors.NewFileAccessError("read", path, err))
			continue
		}

		hash := xxhash.Sum64(raw)
		if cached, ok := a.fileCache[rel]; ok && cached.hash == hash {
			if cached.code != nil {
				codeFiles = append(codeFiles, *cached.code)
			}
			if cached.doc != nil {
				docFiles = append(docFiles, *cached.doc)
			}
			continue
		}

		var entry cachedFile
		entry.hash = hash

		switch category {
		case scanner.CategoryCode:
			cf := a.extractCodeFile(rel, raw)
			entry.code = &cf
			codeFiles = append(codeFiles, cf)
		case scanner.CategoryDocs:
			df := a.extractDocFile(rel, raw)
			entry.doc = &df
			docFiles = append(docFiles, df)
		}

		a.fileCache[rel] = entry
	}

	a.codeFiles = codeFiles
	a.docFiles = docFiles
	a.rebuild()
	return nil
}

func (a *Analyzer) extractCodeFile(rel string, raw []byte) model.CodeFile {
	ext := strings.ToLower(filepath.Ext(rel))
	lang := languageFor(ext)

	var entities []model.CodeEntity
	var imports []string

	switch {
	case notebook.IsNotebook(rel):
		lang = model.LanguagePython
		entities, imports = notebook.Extract(rel, raw, a.pyExtractor, a.sink)
	case lang == model.LanguagePython:
		entities, imports = a.pyExtractor.ExtractFile(rel, raw)
	case lang == model.LanguageJavaScript || lang == model.LanguageTypeScript:
		result := jsregex.Extract(rel, raw)
		entities, imports = result.Entities, result.Imports
	case supplemental.Supported(lang):
		entities = a.supplemental.Extract(rel, lang, raw)
	}

	return model.CodeFile{Path: rel, Language: lang, Entities: entities, Imports: imports}
}

func (a *Analyzer) extractDocFile(rel string, raw []byte) model.DocFile {
	ext := strings.ToLower(filepath.Ext(rel))
	format := formatFor(ext)
	return docext.Extract(rel, format, string(raw))
}

// rebuild reconstructs the graph, matcher, scorer, and links from the
// current codeFiles/docFiles, then matches every doc reference.
func (a *Analyzer) rebuild() {
	a.graph = graph.New()

	var allEntities []model.CodeEntity
	for _, cf := range a.codeFiles {
		a.graph.AddCodeFile(cf)
		allEntities = append(allEntities, cf.Entities...)
	}
	for _, df := range a.docFiles {
		a.graph.AddDocFile(df)
	}

	a.matcher = match.New(allEntities)
	if a.opts.FuzzyCutoff > 0 {
		a.scorer = coverage.NewScorerWithCutoff(a.matcher, a.opts.FuzzyCutoff)
	} else {
		a.scorer = coverage.NewScorer(a.matcher)
	}

	var links []model.CodeDocLink
	for _, df := range a.docFiles {
		for _, ref := range df.References {
			for _, candidate := range a.matcher.Match(ref) {
				link := model.CodeDocLink{
					Entity: candidate.Entity, Reference: ref,
					Kind: candidate.Kind, Confidence: candidate.Confidence,
				}
				links = append(links, link)
				a.graph.AddLink(link)
			}
		}
	}
	a.links = links

	a.coverageCalc = coverage.New(a.codeFiles, a.docFiles, a.links)
	a.cacheLengths = [3]int{len(a.codeFiles), len(a.docFiles), len(a.links)}
}

// currentCoverage returns the coverage calculator, rebuilding it if the
// underlying slices were mutated in place since the last build.
func (a *Analyzer) currentCoverage() *coverage.Calculator {
	current := [3]int{len(a.codeFiles), len(a.docFiles), len(a.links)}
	if current != a.cacheLengths {
		a.coverageCalc = coverage.New(a.codeFiles, a.docFiles, a.links)
		a.cacheLengths = current
	}
	return a.coverageCalc
}

// Stats returns overall coverage statistics.
func (a *Analyzer) Stats() coverage.Stats { return a.currentCoverage().Stats() }

// UndocumentedEntities returns every entity with no documenting link.
func (a *Analyzer) UndocumentedEntities() []model.CodeEntity {
	return a.currentCoverage().UndocumentedEntities()
}

// BrokenReferences returns every reference with no matching entity.
func (a *Analyzer) BrokenReferences() []model.DocReference {
	return a.currentCoverage().BrokenReferences()
}

// CoverageByFile returns the per-file documentation coverage percentage.
func (a *Analyzer) CoverageByFile() map[string]float64 {
	return a.currentCoverage().CoverageByFile()
}

// LinksForEntity returns every link whose entity has the given bare name.
func (a *Analyzer) LinksForEntity(name string) []model.CodeDocLink {
	var out []model.CodeDocLink
	for _, l := range a.links {
		if l.Entity.Name == name {
			out = append(out, l)
		}
	}
	return out
}

// LinksForDoc returns every link whose reference lives in the given doc
// file path.
func (a *Analyzer) LinksForDoc(docPath string) []model.CodeDocLink {
	var out []model.CodeDocLink
	for _, l := range a.links {
		if l.Reference.Location.File == docPath {
			out = append(out, l)
		}
	}
	return out
}

// DocumentationClusters groups related code and doc files via graph
// connectivity.
func (a *Analyzer) DocumentationClusters() [][]string {
	return a.graph.ConnectedFileClusters()
}

// IssueKind distinguishes the two sources PriorityIssues combines.
type IssueKind string

const (
	IssueUndocumentedEntity IssueKind = "undocumented_entity"
	IssueBrokenReference    IssueKind = "broken_reference"
)

// PriorityIssue is one scored, ranked decay finding: either an
// undocumented entity or a broken documentation reference, carrying
// whichever of Entity/Reference applies.
type PriorityIssue struct {
	Kind      IssueKind
	Score     float64
	Reason    string
	Entity    *model.CodeEntity
	Reference *model.DocReference
}

// PriorityIssues combines every undocumented entity and broken reference
// from the last analysis, scores each via the same scorer AnalyzeDirectory
// built, and returns them sorted by descending score. Mirrors the
// original's get_priority_issues.
func (a *Analyzer) PriorityIssues() []PriorityIssue {
	cov := a.currentCoverage()
	issues := make([]PriorityIssue, 0, len(cov.UndocumentedEntities())+len(cov.BrokenReferences()))

	for _, e := range cov.UndocumentedEntities() {
		entity := e
		score, reason := a.scorer.ScoreUndocumentedEntity(entity)
		issues = append(issues, PriorityIssue{
			Kind: IssueUndocumentedEntity, Score: score, Reason: reason, Entity: &entity,
		})
	}
	for _, ref := range cov.BrokenReferences() {
		reference := ref
		score, reason := a.scorer.ScoreBrokenReference(reference)
		issues = append(issues, PriorityIssue{
			Kind: IssueBrokenReference, Score: score, Reason: reason, Reference: &reference,
		})
	}

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Score > issues[j].Score })
	return issues
}
