// Package docext extracts headers, code blocks, inline code, links, and
// (Markdown-only) code-block identifiers from Markdown, RST, and AsciiDoc
// documentation, matching each original Python extractor's patterns.
package docext

import (
	"regexp"
	"strings"

	"github.com/jaimade/watch-docs/internal/model"
)

const defaultCodeBlockLanguage = "text"

var (
	markdownHeaderRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	// (?s) lets '.' span newlines for the code body; the language token is
	// optional and made of word characters, '+' and '-'.
	markdownFencedBlockRe = regexp.MustCompile("(?s)```([\\w+-]*)[ \\t]*\\r?\\n(.*?)```")
	markdownInlineCodeRe  = regexp.MustCompile("(?:^|[^`])`([^`]+)`(?:[^`]|$)")
	markdownLinkRe        = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

	pythonImportRe  = regexp.MustCompile(`^\s*import\s+([\w.]+)`)
	fromImportRe    = regexp.MustCompile(`from\s+[\w.]+\s+import\s+([^#\n]+)`)
	functionCallRe  = regexp.MustCompile(`\b([A-Za-z_][\w.]*)\s*\(`)
	classNameRe     = regexp.MustCompile(`\b([A-Z][A-Za-z0-9_]*)\b`)
	jsDestructureRe = regexp.MustCompile(`import\s*\{([^}]+)\}\s*from`)
	codeWordRe      = regexp.MustCompile(`[A-Za-z_][\w]*`)
)

var pythonAliases = map[string]struct{}{"python": {}, "py": {}, "": {}}
var jsAliases = map[string]struct{}{"javascript": {}, "js": {}, "typescript": {}, "ts": {}}

var pythonFilter = union(pythonBuiltins, pythonKeywords)
var jsFilter = jsBuiltins

const minIdentifierLength = 3

// CodeBlock is an intermediate representation of one fenced/indented block,
// kept internal to this package; only the derived references and
// identifiers cross the package boundary.
type CodeBlock struct {
	Language  string
	Code      string
	StartLine int
	EndLine   int
}

// ExtractMarkdownHeaders returns every '#'-prefixed header, skipping lines
// inside fenced code blocks.
func ExtractMarkdownHeaders(content string) []model.HeaderInfo {
	codeLines := markdownCodeBlockLines(content)
	var headers []model.HeaderInfo
	for i, line := range splitLines(content) {
		lineNum := i + 1
		if codeLines[lineNum] {
			continue
		}
		m := markdownHeaderRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		headers = append(headers, model.HeaderInfo{
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
			Line:  lineNum,
		})
	}
	return headers
}

func markdownCodeBlockLines(content string) map[int]bool {
	lines := map[int]bool{}
	for _, m := range markdownFencedBlockRe.FindAllStringIndex(content, -1) {
		start := strings.Count(content[:m[0]], "\n") + 1
		end := strings.Count(content[:m[1]], "\n") + 1
		for l := start; l <= end; l++ {
			lines[l] = true
		}
	}
	return lines
}

// ExtractMarkdownCodeBlocks returns every fenced code block with its
// language (or the default, "text"), code body, and line span.
func ExtractMarkdownCodeBlocks(content string) []CodeBlock {
	var blocks []CodeBlock
	for _, m := range markdownFencedBlockRe.FindAllStringSubmatchIndex(content, -1) {
		lang := content[m[2]:m[3]]
		if lang == "" {
			lang = defaultCodeBlockLanguage
		}
		code := content[m[4]:m[5]]
		start := strings.Count(content[:m[0]], "\n") + 1
		end := strings.Count(content[:m[1]], "\n") + 1
		blocks = append(blocks, CodeBlock{Language: lang, Code: code, StartLine: start, EndLine: end})
	}
	return blocks
}

// ExtractMarkdownInlineCode returns unique single-backtick spans, in
// first-seen order.
func ExtractMarkdownInlineCode(content string) []string {
	matches := markdownInlineCodeRe.FindAllStringSubmatch(content, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return model.DedupePreserveOrder(out)
}

// ExtractMarkdownLinks returns every '[text](url)' occurrence with its
// 1-based line number.
func ExtractMarkdownLinks(content string) []model.DocReference {
	var refs []model.DocReference
	for i, line := range splitLines(content) {
		lineNum := i + 1
		for _, m := range markdownLinkRe.FindAllStringSubmatch(line, -1) {
			refs = append(refs, model.DocReference{
				Text:     m[1],
				Location: model.Location{LineStart: lineNum},
				Kind:     model.ReferenceLink,
				Context:  m[2],
			})
		}
	}
	return refs
}

// ExtractMarkdownCodeBlockIdentifiers parses imports, call sites, and
// PascalCase names out of Python/JS fenced blocks, filtering common
// builtins/keywords and names shorter than minIdentifierLength.
func ExtractMarkdownCodeBlockIdentifiers(content string) []string {
	identifiers := map[string]struct{}{}

	for _, block := range ExtractMarkdownCodeBlocks(content) {
		lang := strings.ToLower(block.Language)
		code := block.Code

		if _, ok := pythonAliases[lang]; ok {
			for _, m := range fromImportRe.FindAllStringSubmatch(code, -1) {
				for _, name := range codeWordRe.FindAllString(m[1], -1) {
					identifiers[name] = struct{}{}
				}
			}
			for _, line := range splitLines(code) {
				if m := pythonImportRe.FindStringSubmatch(line); m != nil {
					parts := strings.Split(m[1], ".")
					identifiers[parts[len(parts)-1]] = struct{}{}
				}
			}
			for _, m := range functionCallRe.FindAllStringSubmatch(code, -1) {
				name := m[1]
				if _, blocked := pythonFilter[name]; !blocked {
					identifiers[name] = struct{}{}
				}
			}
			for _, m := range classNameRe.FindAllStringSubmatch(code, -1) {
				name := m[1]
				if _, blocked := pythonCommonTypes[name]; !blocked {
					identifiers[name] = struct{}{}
				}
			}
		} else if _, ok := jsAliases[lang]; ok {
			for _, m := range jsDestructureRe.FindAllStringSubmatch(code, -1) {
				for _, name := range codeWordRe.FindAllString(m[1], -1) {
					identifiers[name] = struct{}{}
				}
			}
			for _, m := range functionCallRe.FindAllStringSubmatch(code, -1) {
				name := m[1]
				if _, blocked := jsFilter[name]; !blocked {
					identifiers[name] = struct{}{}
				}
			}
		}
	}

	out := make([]string, 0, len(identifiers))
	for id := range identifiers {
		if len(id) >= minIdentifierLength {
			out = append(out, id)
		}
	}
	return out
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

func union(sets ...map[string]struct{}) map[string]struct{} {
	out := map[string]struct{}{}
	for _, s := range sets {
		for k := range s {
			out[k] = struct{}{}
		}
	}
	return out
}
