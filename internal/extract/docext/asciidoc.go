package docext

import (
	"regexp"
	"strings"

	"github.com/jaimade/watch-docs/internal/model"
)

var (
	asciidocHeaderRe     = regexp.MustCompile(`^(={1,6})\s+(.+)$`)
	asciidocSourceAttrRe = regexp.MustCompile(`\[source,?\s*(\w*)\]`)
	asciidocBacktickRe   = regexp.MustCompile("`([^`]+)`")
	asciidocPlusRe       = regexp.MustCompile(`\+([^+]+)\+`)
	asciidocLinkRe       = regexp.MustCompile(`link:([^\[]+)\[([^\]]*)\]`)
	asciidocBareURLRe    = regexp.MustCompile(`(https?://[^\[]+)\[([^\]]*)\]`)
)

// ExtractAsciiDocHeaders finds '='-prefixed section headers.
func ExtractAsciiDocHeaders(content string) []model.HeaderInfo {
	var headers []model.HeaderInfo
	for i, line := range splitLines(content) {
		m := asciidocHeaderRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		headers = append(headers, model.HeaderInfo{
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
			Line:  i + 1,
		})
	}
	return headers
}

// ExtractAsciiDocCodeBlocks finds "----"-delimited blocks, optionally
// preceded by a "[source,language]" attribute line.
func ExtractAsciiDocCodeBlocks(content string) []CodeBlock {
	lines := splitLines(content)
	var blocks []CodeBlock
	i := 0

	for i < len(lines) {
		line := lines[i]
		language := "text"

		if m := asciidocSourceAttrRe.FindStringSubmatch(line); m != nil {
			if m[1] != "" {
				language = m[1]
			}
			i++
			if i >= len(lines) {
				break
			}
			line = lines[i]
		}

		if strings.TrimSpace(line) == "----" {
			start := i + 1
			i++
			var code []string
			for i < len(lines) && strings.TrimSpace(lines[i]) != "----" {
				code = append(code, lines[i])
				i++
			}
			if len(code) > 0 {
				blocks = append(blocks, CodeBlock{
					Language:  language,
					Code:      strings.Join(code, "\n"),
					StartLine: start,
					EndLine:   i + 1,
				})
			}
		}

		i++
	}

	return blocks
}

// ExtractAsciiDocInlineCode returns unique backtick- and plus-delimited
// inline code spans.
func ExtractAsciiDocInlineCode(content string) []string {
	var out []string
	for _, m := range asciidocBacktickRe.FindAllStringSubmatch(content, -1) {
		out = append(out, m[1])
	}
	for _, m := range asciidocPlusRe.FindAllStringSubmatch(content, -1) {
		out = append(out, m[1])
	}
	return model.DedupePreserveOrder(out)
}

// ExtractAsciiDocLinks returns "link:url[text]" references and bare
// "http(s)://url[text]" references, excluding the latter when immediately
// preceded by a "link:" prefix already matched by the former.
func ExtractAsciiDocLinks(content string) []model.DocReference {
	var refs []model.DocReference
	for i, line := range splitLines(content) {
		lineNum := i + 1

		for _, m := range asciidocLinkRe.FindAllStringSubmatch(line, -1) {
			text := m[2]
			if text == "" {
				text = m[1]
			}
			refs = append(refs, model.DocReference{
				Text:     text,
				Location: model.Location{LineStart: lineNum},
				Kind:     model.ReferenceLink,
				Context:  m[1],
			})
		}

		for _, m := range asciidocBareURLRe.FindAllStringSubmatchIndex(line, -1) {
			start := m[0]
			if start >= 5 && line[start-5:start] == "link:" {
				continue
			}
			url := line[m[2]:m[3]]
			text := line[m[4]:m[5]]
			if text == "" {
				text = url
			}
			refs = append(refs, model.DocReference{
				Text:     text,
				Location: model.Location{LineStart: lineNum},
				Kind:     model.ReferenceLink,
				Context:  url,
			})
		}
	}
	return refs
}
