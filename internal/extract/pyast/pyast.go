// Package pyast is the authoritative Python entity and import extractor
// (spec section 4.2.1). It parses the full file into a syntax tree via
// go-tree-sitter and walks it producing entities in source order, tracking
// a class stack and function-nesting depth exactly as the original AST
// walker does.
package pyast

import (
	"regexp"
	"strings"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/jaimade/watch-docs/internal/model"
)

// Sink receives warnings for syntax errors and decode fallbacks.
type Sink interface {
	Warnf(format string, args ...any)
}

type nullSink struct{}

func (nullSink) Warnf(string, ...any) {}

// Extractor wraps a reusable tree-sitter Python parser. It is not safe for
// concurrent use by multiple goroutines against the same instance; callers
// extracting files in parallel should construct one Extractor per worker.
type Extractor struct {
	parser   *tree_sitter.Parser
	language *tree_sitter.Language
	Sink     Sink
}

// New constructs a Python extractor with its tree-sitter grammar loaded.
func New() *Extractor {
	language := tree_sitter.NewLanguage(tree_sitter_python.Language())
	parser := tree_sitter.NewParser()
	parser.SetLanguage(language)
	return &Extractor{parser: parser, language: language, Sink: nullSink{}}
}

func (e *Extractor) warnf(format string, args ...any) {
	if e.Sink != nil {
		e.Sink.Warnf(format, args...)
	}
}

// Extract parses source (already decoded/normalized) and returns entities
// and deduplicated top-level imports, in source order. relPath is used
// only to stamp Location.File on every entity.
func (e *Extractor) Extract(relPath string, source []byte) (entities []model.CodeEntity, imports []string) {
	tree := e.parser.Parse(source, nil)
	if tree == nil {
		e.warnf("failed to parse %s: parser returned nil tree", relPath)
		return nil, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		e.warnf("syntax error in %s, emitting no entities", relPath)
		return nil, nil
	}

	w := &walker{
		source:  source,
		relPath: relPath,
	}
	w.walkBlock(root, 0)

	return w.entities, model.DedupePreserveOrder(w.imports)
}

// ExtractFile decodes raw bytes (BOM / PEP-263 coding-declaration / UTF-8 /
// lossless 8-bit fallback, per spec section 4.2.1) and extracts from the
// result.
func (e *Extractor) ExtractFile(relPath string, raw []byte) ([]model.CodeEntity, []string) {
	source, fellBack := decode(raw)
	if fellBack {
		e.warnf("UTF-8 decode failed for %s, fell back to latin-1", relPath)
	}
	return e.Extract(relPath, source)
}

var codingDeclRe = regexp.MustCompile(`coding[:=]\s*([-\w.]+)`)

// decode detects a UTF-8 BOM or a PEP-263 coding declaration in the first
// two lines; absent either, assumes UTF-8; on invalid UTF-8 it falls back
// to treating each byte as a Latin-1 code point, which can never fail.
func decode(raw []byte) (source []byte, fellBack bool) {
	body := raw
	if len(body) >= 3 && body[0] == 0xEF && body[1] == 0xBB && body[2] == 0xBF {
		body = body[3:]
	}

	// PEP-263: look for a coding declaration in the first two lines. We
	// don't act on the declared name beyond confirming UTF-8 is valid;
	// non-UTF-8 declared encodings fall through to the latin-1 fallback
	// below, which is a lossless superset for the byte values that matter
	// to entity/structure extraction.
	lines := splitFirstTwoLines(body)
	_ = codingDeclRe.FindSubmatch(lines)

	if utf8.Valid(body) {
		return body, false
	}
	return latin1ToUTF8(body), true
}

func splitFirstTwoLines(b []byte) []byte {
	count := 0
	for i, c := range b {
		if c == '\n' {
			count++
			if count == 2 {
				return b[:i]
			}
		}
	}
	return b
}

func latin1ToUTF8(b []byte) []byte {
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return []byte(sb.String())
}
