package docext

import "github.com/jaimade/watch-docs/internal/model"

// Extract dispatches to the format-specific extractors and assembles a
// DocFile, stamping relPath onto every reference's Location. Inline-code
// and code-block-identifier findings are folded in as ReferenceInlineCode
// and ReferenceCodeBlock references respectively so the matcher can apply
// the code-block confidence penalty uniformly (spec section 4.4).
func Extract(relPath string, format model.DocFormat, content string) model.DocFile {
	var headers []model.HeaderInfo
	var refs []model.DocReference

	switch format {
	case model.DocFormatMarkdown:
		headers = ExtractMarkdownHeaders(content)
		refs = append(refs, stamp(relPath, headerRefs(headers, model.ReferenceHeader))...)
		refs = append(refs, stamp(relPath, inlineRefs(ExtractMarkdownInlineCode(content)))...)
		refs = append(refs, stamp(relPath, ExtractMarkdownLinks(content))...)
		refs = append(refs, stamp(relPath, codeBlockRefs(ExtractMarkdownCodeBlocks(content)))...)
		refs = append(refs, stamp(relPath, inlineRefsAsCodeBlock(ExtractMarkdownCodeBlockIdentifiers(content)))...)
	case model.DocFormatRST:
		headers = ExtractRSTHeaders(content)
		refs = append(refs, stamp(relPath, headerRefs(headers, model.ReferenceHeader))...)
		refs = append(refs, stamp(relPath, inlineRefs(ExtractRSTInlineCode(content)))...)
		refs = append(refs, stamp(relPath, ExtractRSTLinks(content))...)
		refs = append(refs, stamp(relPath, codeBlockRefs(ExtractRSTCodeBlocks(content)))...)
	case model.DocFormatAsciiDoc:
		headers = ExtractAsciiDocHeaders(content)
		refs = append(refs, stamp(relPath, headerRefs(headers, model.ReferenceHeader))...)
		refs = append(refs, stamp(relPath, inlineRefs(ExtractAsciiDocInlineCode(content)))...)
		refs = append(refs, stamp(relPath, ExtractAsciiDocLinks(content))...)
		refs = append(refs, stamp(relPath, codeBlockRefs(ExtractAsciiDocCodeBlocks(content)))...)
	}

	title := ""
	if len(headers) > 0 {
		title = headers[0].Text
	}

	return model.DocFile{
		Path:       relPath,
		Format:     format,
		Title:      title,
		References: refs,
		Headers:    headers,
	}
}

func stamp(relPath string, refs []model.DocReference) []model.DocReference {
	for i := range refs {
		refs[i].Location.File = relPath
	}
	return refs
}

func headerRefs(headers []model.HeaderInfo, kind model.ReferenceKind) []model.DocReference {
	out := make([]model.DocReference, 0, len(headers))
	for _, h := range headers {
		out = append(out, model.DocReference{
			Text:     h.Text,
			Location: model.Location{LineStart: h.Line},
			Kind:     kind,
		})
	}
	return out
}

// inlineRefs has no line attribution in the original extractors (which
// return bare name lists); references are anchored to line 1 as a
// placeholder location, matched by text only.
func inlineRefs(names []string) []model.DocReference {
	out := make([]model.DocReference, 0, len(names))
	for _, n := range names {
		out = append(out, model.DocReference{
			Text:     n,
			Location: model.Location{LineStart: 1},
			Kind:     model.ReferenceInlineCode,
		})
	}
	return out
}

func inlineRefsAsCodeBlock(names []string) []model.DocReference {
	out := make([]model.DocReference, 0, len(names))
	for _, n := range names {
		out = append(out, model.DocReference{
			Text:     n,
			Location: model.Location{LineStart: 1},
			Kind:     model.ReferenceCodeBlock,
		})
	}
	return out
}

func codeBlockRefs(blocks []CodeBlock) []model.DocReference {
	out := make([]model.DocReference, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, model.DocReference{
			Text:     b.Code,
			Location: model.Location{LineStart: b.StartLine},
			Kind:     model.ReferenceCodeBlock,
			Context:  b.Language,
		})
	}
	return out
}
