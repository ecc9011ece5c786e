package docext

import (
	"regexp"
	"strings"

	"github.com/jaimade/watch-docs/internal/model"
)

var (
	rstCodeBlockDirectiveRe = regexp.MustCompile(`^\.\.\s+code-block::\s*(\w*)`)
	rstInlineCodeRe         = regexp.MustCompile("``([^`]+)``")
	rstInlineLinkRe         = regexp.MustCompile("`([^`<]+)<([^>]+)>`_")
	rstReferenceDefRe       = regexp.MustCompile(`^\.\.\s+_([^:]+):\s*(.+)$`)
)

// ExtractRSTHeaders finds text lines followed by a matching underline,
// assigning levels by the order underline characters first appear.
func ExtractRSTHeaders(content string) []model.HeaderInfo {
	lines := splitLines(content)
	var headers []model.HeaderInfo
	var seenStyles []byte

	for i := 0; i+1 < len(lines); i++ {
		line := lines[i]
		next := lines[i+1]

		trimmedLine := strings.TrimRight(line, " \t")
		if len(strings.TrimSpace(line)) == 0 || len(next) == 0 {
			continue
		}
		if len(next) < len(trimmedLine) {
			continue
		}
		ch := next[0]
		if !strings.ContainsRune(rstUnderlineChars, rune(ch)) {
			continue
		}
		if !allBytesEqual(strings.TrimRight(next, " \t"), ch) {
			continue
		}

		styleIdx := indexByte(seenStyles, ch)
		if styleIdx < 0 {
			seenStyles = append(seenStyles, ch)
			styleIdx = len(seenStyles) - 1
		}

		headers = append(headers, model.HeaderInfo{
			Level: styleIdx + 1,
			Text:  strings.TrimSpace(line),
			Line:  i + 1,
		})
	}

	return headers
}

func allBytesEqual(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			return false
		}
	}
	return len(s) > 0
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

// ExtractRSTCodeBlocks finds ".. code-block:: lang" directives and
// "::"-terminated literal blocks, collecting their indented bodies.
func ExtractRSTCodeBlocks(content string) []CodeBlock {
	lines := splitLines(content)
	var blocks []CodeBlock
	i := 0

	for i < len(lines) {
		line := lines[i]

		if m := rstCodeBlockDirectiveRe.FindStringSubmatch(line); m != nil {
			language := m[1]
			if language == "" {
				language = defaultCodeBlockLanguage
			}
			start := i + 1
			i++
			for i < len(lines) && (strings.TrimSpace(lines[i]) == "" || strings.HasPrefix(lines[i], "   :")) {
				i++
			}
			var code []string
			for i < len(lines) && (strings.HasPrefix(lines[i], "   ") || strings.TrimSpace(lines[i]) == "") {
				if strings.TrimSpace(lines[i]) != "" {
					code = append(code, stripN(lines[i], 3))
				} else if len(code) > 0 {
					code = append(code, "")
				}
				i++
			}
			if len(code) > 0 {
				blocks = append(blocks, CodeBlock{
					Language:  language,
					Code:      strings.TrimSpace(strings.Join(code, "\n")),
					StartLine: start,
					EndLine:   i,
				})
			}
			continue
		}

		if strings.HasSuffix(strings.TrimRight(line, " \t"), "::") {
			start := i + 1
			i++
			for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
				i++
			}
			var code []string
			for i < len(lines) && (strings.HasPrefix(lines[i], "   ") || strings.TrimSpace(lines[i]) == "") {
				if strings.TrimSpace(lines[i]) != "" {
					code = append(code, stripN(lines[i], 3))
				} else if len(code) > 0 {
					code = append(code, "")
				}
				i++
			}
			if len(code) > 0 {
				blocks = append(blocks, CodeBlock{
					Language:  defaultCodeBlockLanguage,
					Code:      strings.TrimSpace(strings.Join(code, "\n")),
					StartLine: start,
					EndLine:   i,
				})
			}
			continue
		}

		i++
	}

	return blocks
}

func stripN(s string, n int) string {
	if len(s) < n {
		return ""
	}
	return s[n:]
}

// ExtractRSTInlineCode returns unique double-backtick spans.
func ExtractRSTInlineCode(content string) []string {
	var out []string
	for _, m := range rstInlineCodeRe.FindAllStringSubmatch(content, -1) {
		out = append(out, m[1])
	}
	return model.DedupePreserveOrder(out)
}

// ExtractRSTLinks returns inline links (`text <url>`_) and reference
// definitions (.. _name: url).
func ExtractRSTLinks(content string) []model.DocReference {
	var refs []model.DocReference
	lines := splitLines(content)

	for i, line := range lines {
		lineNum := i + 1
		for _, m := range rstInlineLinkRe.FindAllStringSubmatch(line, -1) {
			refs = append(refs, model.DocReference{
				Text:     strings.TrimSpace(m[1]),
				Location: model.Location{LineStart: lineNum},
				Kind:     model.ReferenceLink,
				Context:  m[2],
			})
		}
	}

	for i, line := range lines {
		lineNum := i + 1
		if m := rstReferenceDefRe.FindStringSubmatch(line); m != nil {
			refs = append(refs, model.DocReference{
				Text:     strings.TrimSpace(m[1]),
				Location: model.Location{LineStart: lineNum},
				Kind:     model.ReferenceLink,
				Context:  strings.TrimSpace(m[2]),
			})
		}
	}

	return refs
}
