package pyast

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/jaimade/watch-docs/internal/model"
)

// walker holds the per-file mutable state tracked while descending the
// syntax tree: a class stack (for parent_name and method-vs-function
// classification) and a function-nesting depth (module-level assignments
// are only recorded when this is zero).
type walker struct {
	source  []byte
	relPath string

	classStack    []string
	functionDepth int

	entities []model.CodeEntity
	imports  []string
}

func (w *walker) text(n *tree_sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(w.source[n.StartByte():n.EndByte()])
}

func (w *walker) line(n *tree_sitter.Node) int {
	return int(n.StartPosition().Row) + 1
}

func (w *walker) endLine(n *tree_sitter.Node) int {
	return int(n.EndPosition().Row) + 1
}

func (w *walker) currentParent() string {
	if len(w.classStack) == 0 {
		return ""
	}
	return w.classStack[len(w.classStack)-1]
}

// walkBlock walks the statements of a module or block body in order,
// dispatching each to the right handler. The int argument is unused;
// function-nesting depth is tracked in w.functionDepth.
func (w *walker) walkBlock(node *tree_sitter.Node, _ int) {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		w.walkStatement(child)
	}
}

func (w *walker) walkStatement(node *tree_sitter.Node) {
	switch node.Kind() {
	case "decorated_definition":
		w.walkDecorated(node)
	case "class_definition":
		w.handleClass(node, nil)
	case "function_definition":
		w.handleFunction(node, nil, isAsync(w, node))
	case "expression_statement":
		w.handleExpressionStatement(node)
	case "import_statement":
		w.collectImportStatement(node)
	case "import_from_statement":
		w.collectImportFromStatement(node)
	case "type_alias_statement":
		w.handleTypeAliasStatement(node)
	case "if_statement", "try_statement", "with_statement", "for_statement", "while_statement",
		"elif_clause", "else_clause", "except_clause", "finally_clause":
		// Control-flow wrappers: descend into their block children so
		// conditionally-defined top-level entities are still found, matching
		// the original AST walker's full-tree traversal.
		w.descendInto(node)
	}
}

func (w *walker) descendInto(node *tree_sitter.Node) {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		if child.Kind() == "block" {
			w.walkBlock(child, 0)
		} else {
			w.walkStatement(child)
		}
	}
}

func (w *walker) walkDecorated(node *tree_sitter.Node) {
	var decorators []string
	def := node.ChildByFieldName("definition")
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == "decorator" {
			decorators = append(decorators, "@"+strings.TrimPrefix(w.text(child), "@"))
		}
	}
	if def == nil {
		return
	}
	switch def.Kind() {
	case "class_definition":
		w.handleClass(def, decorators)
	case "function_definition":
		w.handleFunction(def, decorators, isAsync(w, def))
	}
}

func isAsync(w *walker, fn *tree_sitter.Node) bool {
	count := fn.ChildCount()
	for i := uint(0); i < count; i++ {
		child := fn.Child(i)
		if child != nil && w.text(child) == "async" {
			return true
		}
		if child != nil && child.Kind() == "def" {
			break
		}
	}
	return false
}

func (w *walker) handleClass(node *tree_sitter.Node, decorators []string) {
	nameNode := node.ChildByFieldName("name")
	name := w.text(nameNode)
	if name == "" {
		return
	}

	sig := buildClassSignature(w, node, name)
	doc := firstDocstring(w, node.ChildByFieldName("body"))

	end := w.endLine(node)
	w.entities = append(w.entities, model.CodeEntity{
		Name:       name,
		Kind:       model.EntityClass,
		Location:   model.Location{File: w.relPath, LineStart: w.line(node), LineEnd: &end},
		Signature:  joinDecorators(decorators, sig),
		Docstring:  doc,
		ParentName: w.currentParent(),
	})

	w.classStack = append(w.classStack, name)
	if body := node.ChildByFieldName("body"); body != nil {
		w.walkBlock(body, 0)
	}
	w.classStack = w.classStack[:len(w.classStack)-1]
}

func (w *walker) handleFunction(node *tree_sitter.Node, decorators []string, async bool) {
	nameNode := node.ChildByFieldName("name")
	name := w.text(nameNode)
	if name == "" {
		return
	}

	kind := model.EntityFunction
	parent := ""
	if len(w.classStack) > 0 {
		kind = model.EntityMethod
		parent = w.currentParent()
	}

	sig := buildFunctionSignature(w, node, name, async)
	doc := firstDocstring(w, node.ChildByFieldName("body"))

	end := w.endLine(node)
	w.entities = append(w.entities, model.CodeEntity{
		Name:       name,
		Kind:       kind,
		Location:   model.Location{File: w.relPath, LineStart: w.line(node), LineEnd: &end},
		Signature:  joinDecorators(decorators, sig),
		Docstring:  doc,
		ParentName: parent,
	})

	w.functionDepth++
	if body := node.ChildByFieldName("body"); body != nil {
		w.walkBlock(body, 0)
	}
	w.functionDepth--
}

func joinDecorators(decorators []string, sig string) string {
	if len(decorators) == 0 {
		return sig
	}
	return strings.Join(decorators, "\n") + "\n" + sig
}

// firstDocstring returns the text of the first statement in a body when it
// is a bare string expression, unquoted of its outer quote characters.
func firstDocstring(w *walker, body *tree_sitter.Node) string {
	if body == nil {
		return ""
	}
	count := body.ChildCount()
	for i := uint(0); i < count; i++ {
		child := body.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		if child.Kind() != "expression_statement" {
			return ""
		}
		if child.ChildCount() == 0 {
			return ""
		}
		expr := child.Child(0)
		if expr == nil || expr.Kind() != "string" {
			return ""
		}
		return unquotePythonString(w.text(expr))
	}
	return ""
}

func unquotePythonString(raw string) string {
	s := raw
	for _, prefix := range []string{"r", "R", "u", "U", "b", "B", "f", "F", "rb", "Rb", "rB", "RB", "br", "Br", "bR", "BR"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}
	for _, q := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return strings.TrimSpace(s[len(q) : len(s)-len(q)])
		}
	}
	return strings.TrimSpace(s)
}
