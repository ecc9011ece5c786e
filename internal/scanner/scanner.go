// Package scanner walks a directory tree, classifying files as code, docs,
// or other, honoring an ignore-set of directory basenames and a suffix
// rule. It tolerates unreadable entries, emitting a warning rather than
// aborting.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jaimade/watch-docs/internal/debug"
)

// Category is the three-way classification of a scanned file.
type Category string

const (
	CategoryCode  Category = "code"
	CategoryDocs  Category = "docs"
	CategoryOther Category = "other"
)

// DefaultIgnoreDirs is the fixed ignore-set from spec section 6.
var DefaultIgnoreDirs = map[string]struct{}{
	".git": {}, ".hg": {}, ".svn": {},
	"node_modules": {}, "vendor": {},
	"__pycache__": {}, ".pytest_cache": {},
	"venv": {}, ".venv": {}, "env": {}, ".env": {},
	".idea": {}, ".vscode": {},
	"dist": {}, "build": {}, "target": {},
	".tox": {}, ".nox": {},
}

// CodeExtensions is the fixed code-extension set from spec section 6.
var CodeExtensions = toSet(
	".py", ".pyi", ".ipynb", ".js", ".ts", ".tsx", ".jsx", ".mjs", ".cjs",
	".php", ".rb", ".java", ".c", ".cpp", ".h", ".hpp", ".cs", ".go", ".rs",
	".swift", ".kt", ".scala", ".sh", ".bash", ".zsh", ".fish", ".sql",
	".html", ".css", ".scss", ".sass", ".tcss", ".vue", ".svelte", ".lua",
	".r", ".m", ".mm", ".pl", ".pm", ".asp", ".aspx", ".jsp", ".erb", ".ejs",
	".twig", ".xsl", ".xslt",
)

// DocExtensions is the fixed doc-extension set from spec section 6.
var DocExtensions = toSet(
	".md", ".markdown", ".rst", ".txt", ".adoc", ".asciidoc", ".org", ".tex", ".latex",
)

func toSet(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

// Sink receives warnings about unreadable entries.
type Sink interface {
	Warnf(format string, args ...any)
}

// Options configures a scan beyond the fixed spec section 6 rules.
type Options struct {
	IgnoreDirs     map[string]struct{} // merged with DefaultIgnoreDirs if non-nil
	IgnoreGlobs    []string            // doublestar patterns, matched against the path relative to root
	CodeExtensions map[string]struct{} // overrides CodeExtensions if non-nil
	DocExtensions  map[string]struct{} // overrides DocExtensions if non-nil
	Sink           Sink
}

func (o Options) ignoreDirs() map[string]struct{} {
	if o.IgnoreDirs == nil {
		return DefaultIgnoreDirs
	}
	merged := make(map[string]struct{}, len(DefaultIgnoreDirs)+len(o.IgnoreDirs))
	for k := range DefaultIgnoreDirs {
		merged[k] = struct{}{}
	}
	for k := range o.IgnoreDirs {
		merged[k] = struct{}{}
	}
	return merged
}

func (o Options) codeExt() map[string]struct{} {
	if o.CodeExtensions != nil {
		return o.CodeExtensions
	}
	return CodeExtensions
}

func (o Options) docExt() map[string]struct{} {
	if o.DocExtensions != nil {
		return o.DocExtensions
	}
	return DocExtensions
}

func (o Options) warnf(format string, args ...any) {
	if o.Sink != nil {
		o.Sink.Warnf(format, args...)
		return
	}
	debug.Warnf(format, args...)
}

// ShouldIgnoreDir reports whether a directory basename should be skipped.
func ShouldIgnoreDir(name string, ignore map[string]struct{}) bool {
	if _, ok := ignore[name]; ok {
		return true
	}
	return strings.HasSuffix(name, ".egg-info")
}

// Classify returns the category of a path by its lowercased extension.
func Classify(path string, opts Options) Category {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := opts.codeExt()[ext]; ok {
		return CategoryCode
	}
	if _, ok := opts.docExt()[ext]; ok {
		return CategoryDocs
	}
	return CategoryOther
}

// IsCodeFile reports whether path classifies as code.
func IsCodeFile(path string, opts Options) bool { return Classify(path, opts) == CategoryCode }

// IsDocFile reports whether path classifies as docs.
func IsDocFile(path string, opts Options) bool { return Classify(path, opts) == CategoryDocs }

// Walk recursively enumerates files under root in pre-order, lexicographic
// order within each directory, skipping ignored directories and glob
// matches, and tolerating unreadable entries by warning and continuing.
func Walk(root string, opts Options) ([]string, error) {
	var files []string
	ignore := opts.ignoreDirs()

	var walkDir func(dir string) error
	walkDir = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			opts.warnf("cannot read directory %s: %v", dir, err)
			return nil
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			rel, _ := filepath.Rel(root, full)
			rel = filepath.ToSlash(rel)

			if matchesIgnoreGlob(rel, opts.IgnoreGlobs) {
				continue
			}

			if entry.IsDir() {
				if ShouldIgnoreDir(entry.Name(), ignore) {
					continue
				}
				if err := walkDir(full); err != nil {
					return err
				}
				continue
			}

			info, err := entry.Info()
			if err != nil {
				opts.warnf("cannot stat %s: %v", full, err)
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}
			files = append(files, full)
		}
		return nil
	}

	if err := walkDir(root); err != nil {
		return nil, err
	}
	return files, nil
}

func matchesIgnoreGlob(rel string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}

// BatchCallback receives a batch of file paths and the cumulative count
// emitted so far (including this batch).
type BatchCallback func(batch []string, cumulative int)

// DefaultBatchSize matches the original implementation's batching default.
const DefaultBatchSize = 1000

// WalkBatched walks root exactly like Walk but invokes onBatch every
// batchSize files (the final batch may be smaller), preserving the same
// ordering as the unbatched walk.
func WalkBatched(root string, opts Options, batchSize int, onBatch BatchCallback) ([]string, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	all, err := Walk(root, opts)
	if err != nil {
		return nil, err
	}
	cumulative := 0
	for i := 0; i < len(all); i += batchSize {
		end := i + batchSize
		if end > len(all) {
			end = len(all)
		}
		batch := all[i:end]
		cumulative += len(batch)
		if onBatch != nil {
			onBatch(batch, cumulative)
		}
	}
	return all, nil
}

// Categorized groups scanned files by Category.
type Categorized struct {
	Code  []string
	Docs  []string
	Other []string
}

// CategorizeFiles walks root and partitions every file by Classify.
func CategorizeFiles(root string, opts Options) (Categorized, error) {
	files, err := Walk(root, opts)
	if err != nil {
		return Categorized{}, err
	}
	var out Categorized
	for _, f := range files {
		switch Classify(f, opts) {
		case CategoryCode:
			out.Code = append(out.Code, f)
		case CategoryDocs:
			out.Docs = append(out.Docs, f)
		default:
			out.Other = append(out.Other, f)
		}
	}
	return out, nil
}

// DirectoryStats reports the top-N largest files and an extension
// histogram, supplementing spec section 4.1 per the original
// scanner.get_directory_stats.
type DirectoryStats struct {
	TotalFiles      int
	TotalBytes      int64
	LargestFiles    []FileSize
	ExtensionCounts map[string]int
}

// FileSize pairs a path with its size in bytes.
type FileSize struct {
	Path string
	Size int64
}

// ComputeDirectoryStats walks root and computes DirectoryStats, keeping the
// topN largest files.
func ComputeDirectoryStats(root string, opts Options, topN int) (DirectoryStats, error) {
	stats := DirectoryStats{ExtensionCounts: map[string]int{}}
	files, err := Walk(root, opts)
	if err != nil {
		return stats, err
	}
	var sizes []FileSize
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			opts.warnf("cannot stat %s: %v", f, err)
			continue
		}
		stats.TotalFiles++
		stats.TotalBytes += info.Size()
		ext := strings.ToLower(filepath.Ext(f))
		if ext == "" {
			ext = "(none)"
		}
		stats.ExtensionCounts[ext]++
		sizes = append(sizes, FileSize{Path: f, Size: info.Size()})
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i].Size > sizes[j].Size })
	if topN > 0 && len(sizes) > topN {
		sizes = sizes[:topN]
	}
	stats.LargestFiles = sizes
	return stats, nil
}
