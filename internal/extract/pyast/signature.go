package pyast

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// buildFunctionSignature renders
// "[async] def NAME(params)[-> return]" per spec section 4.2.1, walking the
// parameters node left to right and preserving each parameter's own
// surface syntax (identifier, typed, defaulted, *args, **kwargs, bare '*'
// keyword-only separator, '/' positional-only separator).
func buildFunctionSignature(w *walker, node *tree_sitter.Node, name string, async bool) string {
	var b strings.Builder
	if async {
		b.WriteString("async ")
	}
	b.WriteString("def ")
	b.WriteString(name)
	b.WriteString("(")

	if params := node.ChildByFieldName("parameters"); params != nil {
		b.WriteString(renderParameterList(w, params))
	}
	b.WriteString(")")

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		b.WriteString(" -> ")
		b.WriteString(w.text(ret))
	}
	return b.String()
}

func renderParameterList(w *walker, params *tree_sitter.Node) string {
	var parts []string
	count := params.ChildCount()
	for i := uint(0); i < count; i++ {
		child := params.Child(i)
		if child == nil || !child.IsNamed() {
			// Bare '*' or '/' separators are unnamed tokens in the grammar.
			if child != nil {
				txt := w.text(child)
				if txt == "*" || txt == "/" {
					parts = append(parts, txt)
				}
			}
			continue
		}
		parts = append(parts, renderParameter(w, child))
	}
	return strings.Join(parts, ", ")
}

func renderParameter(w *walker, p *tree_sitter.Node) string {
	switch p.Kind() {
	case "identifier":
		return w.text(p)
	case "typed_parameter":
		// typed_parameter: identifier, ':', type — or list_splat_pattern/
		// dictionary_splat_pattern with a type.
		return w.text(p)
	case "default_parameter":
		nameNode := p.ChildByFieldName("name")
		valueNode := p.ChildByFieldName("value")
		return w.text(nameNode) + "=" + w.text(valueNode)
	case "typed_default_parameter":
		nameNode := p.ChildByFieldName("name")
		typeNode := p.ChildByFieldName("type")
		valueNode := p.ChildByFieldName("value")
		return w.text(nameNode) + ": " + w.text(typeNode) + " = " + w.text(valueNode)
	case "list_splat_pattern":
		return "*" + strings.TrimPrefix(w.text(p), "*")
	case "dictionary_splat_pattern":
		return "**" + strings.TrimPrefix(w.text(p), "**")
	case "keyword_separator":
		return "*"
	case "positional_separator":
		return "/"
	default:
		return w.text(p)
	}
}

// buildClassSignature renders "class NAME(bases, kw=value, **kwarg)".
func buildClassSignature(w *walker, node *tree_sitter.Node, name string) string {
	var b strings.Builder
	b.WriteString("class ")
	b.WriteString(name)

	superclasses := node.ChildByFieldName("superclasses")
	if superclasses == nil {
		return b.String()
	}

	var parts []string
	count := superclasses.ChildCount()
	for i := uint(0); i < count; i++ {
		child := superclasses.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		switch child.Kind() {
		case "keyword_argument":
			nameNode := child.ChildByFieldName("name")
			valueNode := child.ChildByFieldName("value")
			parts = append(parts, w.text(nameNode)+"="+w.text(valueNode))
		case "dictionary_splat":
			parts = append(parts, "**"+strings.TrimPrefix(w.text(child), "**"))
		case "list_splat":
			parts = append(parts, "*"+strings.TrimPrefix(w.text(child), "*"))
		default:
			parts = append(parts, w.text(child))
		}
	}
	if len(parts) > 0 {
		b.WriteString("(")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(")")
	}
	return b.String()
}
