package vcsdiff

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jaimade/watch-docs/internal/extract/pyast"
	"github.com/jaimade/watch-docs/internal/model"
	"github.com/jaimade/watch-docs/internal/scanner"
	"github.com/jaimade/watch-docs/internal/vcs"
)

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

func classifyFile(path string) (isCode, isDoc bool, language model.Language) {
	ext := strings.ToLower(filepath.Ext(path))
	_, isCode = scanner.CodeExtensions[ext]
	_, isDoc = scanner.DocExtensions[ext]
	if isCode {
		language = extToLanguage[ext]
	}
	return isCode, isDoc, language
}

// AnalyzedChange enriches a vcs.ChangedFile with code/doc classification
// and an optionally-loaded, memoized diff.
type AnalyzedChange struct {
	File     vcs.ChangedFile
	IsCode   bool
	IsDoc    bool
	Language model.Language

	diffOnce sync.Once
	diffVal  string
	diffErr  error
	loadDiff func() (string, error)
}

// Path is a convenience accessor for the underlying file's path.
func (c *AnalyzedChange) Path() string { return c.File.Path }

// Status is a convenience accessor for the underlying file's status.
func (c *AnalyzedChange) Status() vcs.ChangeStatus { return c.File.Status }

// Diff loads and caches the change's diff text on first access. Returns
// ("", nil) if no diff loader was configured (include_diffs was false).
func (c *AnalyzedChange) Diff() (string, error) {
	if c.loadDiff == nil {
		return "", nil
	}
	c.diffOnce.Do(func() { c.diffVal, c.diffErr = c.loadDiff() })
	return c.diffVal, c.diffErr
}

// AnalyzedCommit is a commit with every changed file classified.
type AnalyzedCommit struct {
	Commit  vcs.Commit
	Changes []AnalyzedChange
}

// CodeChanges returns only the changes touching code files.
func (c AnalyzedCommit) CodeChanges() []AnalyzedChange {
	var out []AnalyzedChange
	for _, ch := range c.Changes {
		if ch.IsCode {
			out = append(out, ch)
		}
	}
	return out
}

// DocChanges returns only the changes touching documentation files.
func (c AnalyzedCommit) DocChanges() []AnalyzedChange {
	var out []AnalyzedChange
	for _, ch := range c.Changes {
		if ch.IsDoc {
			out = append(out, ch)
		}
	}
	return out
}

// HasCodeChanges reports whether any change touches a code file.
func (c AnalyzedCommit) HasCodeChanges() bool {
	for _, ch := range c.Changes {
		if ch.IsCode {
			return true
		}
	}
	return false
}

// HasDocChanges reports whether any change touches a documentation file.
func (c AnalyzedCommit) HasDocChanges() bool {
	for _, ch := range c.Changes {
		if ch.IsDoc {
			return true
		}
	}
	return false
}

// Tracker builds AnalyzedCommits from a vcs.Backend and detects
// entity-level changes within them. Entity-level detection is Python-only;
// other languages still get file-level classification.
type Tracker struct {
	backend   vcs.Backend
	extractor *pyast.Extractor
	warn      func(format string, args ...any)
}

// NewTracker builds a Tracker. warn may be nil to discard diagnostics.
func NewTracker(backend vcs.Backend, extractor *pyast.Extractor, warn func(format string, args ...any)) *Tracker {
	return &Tracker{backend: backend, extractor: extractor, warn: warn}
}

func (t *Tracker) warnf(format string, args ...any) {
	if t.warn != nil {
		t.warn(format, args...)
	}
}

// GetRecentChanges returns the most recent count commits, analyzed.
func (t *Tracker) GetRecentChanges(ctx context.Context, count int, includeDiffs bool) ([]AnalyzedCommit, error) {
	commits, err := t.backend.RecentCommits(ctx, count)
	if err != nil {
		return nil, err
	}
	return t.analyzeAll(ctx, commits, includeDiffs), nil
}

// GetChangesSince returns every commit since the given git date expression,
// analyzed.
func (t *Tracker) GetChangesSince(ctx context.Context, since string, count int, includeDiffs bool) ([]AnalyzedCommit, error) {
	commits, err := t.backend.CommitsSince(ctx, since, count)
	if err != nil {
		return nil, err
	}
	return t.analyzeAll(ctx, commits, includeDiffs), nil
}

// GetChangesBetween returns every commit in (oldRef, newRef], analyzed.
func (t *Tracker) GetChangesBetween(ctx context.Context, oldRef, newRef string, includeDiffs bool) ([]AnalyzedCommit, error) {
	commits, err := t.backend.CommitsBetween(ctx, oldRef, newRef)
	if err != nil {
		return nil, err
	}
	return t.analyzeAll(ctx, commits, includeDiffs), nil
}

// AnalyzeCommit fully analyzes a single commit reference.
func (t *Tracker) AnalyzeCommit(ctx context.Context, ref string, includeDiffs bool) (AnalyzedCommit, error) {
	commit, err := t.backend.CommitByRef(ctx, ref)
	if err != nil {
		return AnalyzedCommit{}, err
	}
	return t.analyzeCommit(ctx, commit, includeDiffs), nil
}

func (t *Tracker) analyzeAll(ctx context.Context, commits []vcs.Commit, includeDiffs bool) []AnalyzedCommit {
	out := make([]AnalyzedCommit, 0, len(commits))
	for _, c := range commits {
		out = append(out, t.analyzeCommit(ctx, c, includeDiffs))
	}
	return out
}

func (t *Tracker) analyzeCommit(ctx context.Context, commit vcs.Commit, includeDiffs bool) AnalyzedCommit {
	changedFiles, err := t.backend.ChangedFiles(ctx, commit.Hash)
	if err != nil {
		t.warnf("vcsdiff: cannot list changed files for %s: %v", commit.Hash, err)
		return AnalyzedCommit{Commit: commit}
	}

	changes := make([]AnalyzedChange, 0, len(changedFiles))
	for _, cf := range changedFiles {
		isCode, isDoc, lang := classifyFile(cf.Path)

		change := AnalyzedChange{File: cf, IsCode: isCode, IsDoc: isDoc, Language: lang}
		if includeDiffs {
			hash, path := commit.Hash, cf.Path
			change.loadDiff = func() (string, error) { return t.backend.FileDiff(ctx, hash, path) }
		}
		changes = append(changes, change)
	}

	return AnalyzedCommit{Commit: commit, Changes: changes}
}

// DetectEntityChanges compares the before/after AST of every Python file
// touched by a commit and reports what functions/classes/methods changed.
// Non-Python code changes are skipped at file granularity.
func (t *Tracker) DetectEntityChanges(ctx context.Context, commit AnalyzedCommit) ([]EntityChange, error) {
	var changes []EntityChange

	for _, change := range commit.CodeChanges() {
		if change.Language != model.LanguagePython {
			if change.Language != "" {
				t.warnf("vcsdiff: skipping entity detection for %s (language %s unsupported)", change.Path(), change.Language)
			}
			continue
		}

		entityChanges, err := t.comparePythonEntities(ctx, commit.Commit.Hash, change.Path())
		if err != nil {
			t.warnf("vcsdiff: entity comparison failed for %s: %v", change.Path(), err)
			continue
		}
		changes = append(changes, entityChanges...)
	}

	return changes, nil
}

func (t *Tracker) comparePythonEntities(ctx context.Context, commitHash, filePath string) ([]EntityChange, error) {
	oldContent, oldExisted, err := t.backend.FileAtCommit(ctx, commitHash+"^", filePath)
	if err != nil {
		oldExisted = false
	}

	newContent, newExisted, err := t.backend.FileAtCommit(ctx, commitHash, filePath)
	if err != nil {
		return nil, err
	}

	oldSnapshots := map[string]entitySnapshot{}
	if oldExisted {
		entities, _ := t.extractor.Extract(filePath, []byte(oldContent))
		oldSnapshots = snapshotEntities(entities)
	}

	newSnapshots := map[string]entitySnapshot{}
	if newExisted {
		entities, _ := t.extractor.Extract(filePath, []byte(newContent))
		newSnapshots = snapshotEntities(entities)
	}

	return compareEntities(oldSnapshots, newSnapshots, filePath), nil
}
