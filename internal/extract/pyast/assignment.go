package pyast

import (
	"strings"
	"unicode"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/jaimade/watch-docs/internal/model"
)

// handleExpressionStatement dispatches module-level expression statements:
// plain/annotated assignments (for type-alias and constant detection, per
// spec section 4.2.1) and import statements (handled separately by
// collectImports at the tree root, see imports.go) are both
// expression-statement-adjacent but imports use their own top-level node
// kinds (import_statement / import_from_statement), so this function only
// concerns itself with assignment.
func (w *walker) handleExpressionStatement(node *tree_sitter.Node) {
	if node.ChildCount() == 0 {
		return
	}
	inner := node.Child(0)
	if inner == nil {
		return
	}
	switch inner.Kind() {
	case "assignment":
		w.handleAssignment(inner)
	}
}

// handleAssignment covers both plain ("NAME = expr") and annotated
// ("NAME: TYPE = expr" or bare "NAME: TYPE") assignment nodes, matching
// spec section 4.2.1's module-level-assignment and annotated-assignment
// rules. Skipped entirely when functionDepth > 0.
func (w *walker) handleAssignment(node *tree_sitter.Node) {
	if w.functionDepth > 0 {
		return
	}

	left := node.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return
	}
	name := w.text(left)

	typeNode := node.ChildByFieldName("type")
	rightNode := node.ChildByFieldName("right")

	if typeNode != nil {
		w.handleAnnotated(node, name, typeNode, rightNode)
		return
	}

	if rightNode == nil {
		return
	}

	if isTypeAliasName(name) && isTypeExpression(w, rightNode) {
		w.emitVariable(node, name, name+" = "+unparseSafe(w, rightNode))
		return
	}
	if isConstantName(name) {
		w.emitConstant(node, name, "")
	}
}

// handleTypeAliasStatement covers Python 3.12's native "type X = ..."
// syntax, recorded as a variable entity whose signature is prefixed with
// the language's type-alias keyword, per spec section 4.2.1.
func (w *walker) handleTypeAliasStatement(node *tree_sitter.Node) {
	if w.functionDepth > 0 {
		return
	}
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := w.text(nameNode)
	valueNode := node.ChildByFieldName("value")
	rhs := unparseSafe(w, valueNode)
	w.emitVariable(node, name, "type "+name+" = "+rhs)
}

func (w *walker) handleAnnotated(node *tree_sitter.Node, name string, typeNode, rightNode *tree_sitter.Node) {
	typeText := w.text(typeNode)
	if isTypeAliasAnnotation(typeText) {
		rhs := ""
		if rightNode != nil {
			rhs = unparseSafe(w, rightNode)
		}
		w.emitVariable(node, name, "type "+name+" = "+rhs)
		return
	}
	if isConstantName(name) {
		w.emitConstant(node, name, ": "+typeText)
	}
}

func (w *walker) emitVariable(node *tree_sitter.Node, name, sig string) {
	w.entities = append(w.entities, model.CodeEntity{
		Name:      name,
		Kind:      model.EntityVariable,
		Location:  model.Location{File: w.relPath, LineStart: w.line(node)},
		Signature: sig,
	})
}

func (w *walker) emitConstant(node *tree_sitter.Node, name, annotation string) {
	sig := name
	if annotation != "" {
		sig = name + annotation
	}
	w.entities = append(w.entities, model.CodeEntity{
		Name:      name,
		Kind:      model.EntityConstant,
		Location:  model.Location{File: w.relPath, LineStart: w.line(node)},
		Signature: sig,
	})
}

// isTypeAliasName matches the convention: initial uppercase, contains at
// least one lowercase letter, not all-uppercase, length >= 2.
func isTypeAliasName(name string) bool {
	r := []rune(name)
	if len(r) < 2 || !unicode.IsUpper(r[0]) {
		return false
	}
	hasLower := false
	for _, c := range r {
		if unicode.IsLower(c) {
			hasLower = true
			break
		}
	}
	return hasLower
}

// isConstantName matches the convention: uppercase-start, composed only of
// uppercase letters, digits, or underscores.
func isConstantName(name string) bool {
	if name == "" || !unicode.IsUpper(rune(name[0])) {
		return false
	}
	for _, c := range name {
		if !(unicode.IsUpper(c) || unicode.IsDigit(c) || c == '_') {
			return false
		}
	}
	return true
}

var knownBuiltinTypes = map[string]struct{}{
	"int": {}, "str": {}, "float": {}, "bool": {}, "bytes": {}, "list": {},
	"dict": {}, "set": {}, "tuple": {}, "frozenset": {}, "complex": {},
	"List": {}, "Dict": {}, "Set": {}, "Tuple": {}, "Optional": {}, "Union": {},
	"Any": {}, "Callable": {}, "Sequence": {}, "Mapping": {},
}

// isTypeExpression recognizes a known builtin type name, a subscript
// (Generic[...]), a bitwise-or union of types, or the literal None.
func isTypeExpression(w *walker, node *tree_sitter.Node) bool {
	switch node.Kind() {
	case "identifier":
		_, ok := knownBuiltinTypes[w.text(node)]
		return ok
	case "none":
		return true
	case "subscript":
		return true
	case "binary_operator":
		text := w.text(node)
		return strings.Contains(text, "|")
	case "attribute":
		return true
	default:
		return false
	}
}

// isTypeAliasAnnotation matches a bare or dotted "TypeAlias" annotation.
func isTypeAliasAnnotation(typeText string) bool {
	return typeText == "TypeAlias" || strings.HasSuffix(typeText, ".TypeAlias")
}

// unparseSafe renders a node's surface syntax, falling back to "..." if the
// node is nil (mirrors the original's unparse-with-fallback behavior for
// expressions that can't be cleanly rendered).
func unparseSafe(w *walker, node *tree_sitter.Node) string {
	if node == nil {
		return "..."
	}
	return w.text(node)
}
