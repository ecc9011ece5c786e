// Package jsregex extracts functions, classes, imports, and exports from
// JavaScript/TypeScript source using the same regex patterns as the
// original Python extractor, attaching line numbers via lineindex since
// the source patterns themselves carry no location information.
package jsregex

import (
	"regexp"
	"strings"

	"github.com/jaimade/watch-docs/internal/lineindex"
	"github.com/jaimade/watch-docs/internal/model"
)

var (
	functionDeclRe = regexp.MustCompile(`\b(?:async\s+)?function\s+(\w+)\s*\(`)
	arrowAssignRe  = regexp.MustCompile(`\b(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:\([^)]*\)|\w+)\s*=>`)
	funcExprRe     = regexp.MustCompile(`\b(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?function\s*\(`)

	classDeclRe = regexp.MustCompile(`\bclass\s+(\w+)(?:\s+extends\s+[\w.]+)?(?:\s+implements\s+[\w.,\s]+)?\s*\{`)

	es6ImportRe   = regexp.MustCompile(`\bimport\s+.*?\s+from\s+['"]([^'"]+)['"]`)
	sideEffectRe  = regexp.MustCompile(`\bimport\s+['"]([^'"]+)['"]`)
	requireRe     = regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	dynamicImport = regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"]+)['"]\s*\)`)

	exportDeclRe  = regexp.MustCompile(`\bexport\s+(?:default\s+)?(?:async\s+)?(?:function|class|const|let|var)\s+(\w+)`)
	exportBraceRe = regexp.MustCompile(`\bexport\s*\{([^}]+)\}`)

	identifierRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
)

// Result is the outcome of extracting one JS/TS file: the entities found
// (functions and classes, in match order) plus the deduplicated module
// names imported and names exported.
type Result struct {
	Entities []model.CodeEntity
	Imports  []string
	Exports  []string
}

// Extract scans content for function declarations, arrow/function-expression
// assignments, class declarations, imports (ES6, side-effect, CommonJS
// require, dynamic), and exports, matching the original regex extractor's
// patterns exactly.
func Extract(relPath string, content []byte) Result {
	idx := lineindex.Build(content)
	text := string(content)

	var entities []model.CodeEntity
	seenFn := map[string]struct{}{}

	addFn := func(kind model.EntityKind, loc []int) {
		name := text[loc[2]:loc[3]]
		if _, ok := seenFn[name]; ok {
			return
		}
		seenFn[name] = struct{}{}
		entities = append(entities, model.CodeEntity{
			Name:     name,
			Kind:     kind,
			Location: model.Location{File: relPath, LineStart: idx.LineAt(loc[0])},
		})
	}

	for _, m := range functionDeclRe.FindAllStringSubmatchIndex(text, -1) {
		addFn(model.EntityFunction, m)
	}
	for _, m := range arrowAssignRe.FindAllStringSubmatchIndex(text, -1) {
		addFn(model.EntityFunction, m)
	}
	for _, m := range funcExprRe.FindAllStringSubmatchIndex(text, -1) {
		addFn(model.EntityFunction, m)
	}

	seenClass := map[string]struct{}{}
	for _, m := range classDeclRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		if _, ok := seenClass[name]; ok {
			continue
		}
		seenClass[name] = struct{}{}
		entities = append(entities, model.CodeEntity{
			Name:     name,
			Kind:     model.EntityClass,
			Location: model.Location{File: relPath, LineStart: idx.LineAt(m[0])},
		})
	}

	imports := dedupeGroup(
		findGroup(es6ImportRe, text),
		findGroup(sideEffectRe, text),
		findGroup(requireRe, text),
		findGroup(dynamicImport, text),
	)

	exports := collectExports(text)

	return Result{Entities: entities, Imports: imports, Exports: exports}
}

func findGroup(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

func dedupeGroup(groups ...[]string) []string {
	var all []string
	for _, g := range groups {
		all = append(all, g...)
	}
	return model.DedupePreserveOrder(all)
}

func collectExports(text string) []string {
	var names []string
	names = append(names, findGroup(exportDeclRe, text)...)

	for _, m := range exportBraceRe.FindAllStringSubmatch(text, -1) {
		for _, part := range strings.Split(m[1], ",") {
			fields := strings.Fields(strings.TrimSpace(part))
			if len(fields) == 0 {
				continue
			}
			name := fields[0]
			if name != "" && identifierRe.MatchString(name) {
				names = append(names, name)
			}
		}
	}

	return model.DedupePreserveOrder(names)
}
