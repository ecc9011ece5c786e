package pyast

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// collectImportStatement handles "import a.b.c" and "import a.b.c as x",
// possibly comma-separated, emitting only the top-level root of each
// dotted path per spec section 4.2.1.
func (w *walker) collectImportStatement(node *tree_sitter.Node) {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			w.addImportRoot(w.text(child))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				w.addImportRoot(w.text(name))
			}
		}
	}
}

// collectImportFromStatement handles "from a.b import c, d" and
// "from . import x", emitting only the top-level root of the module path.
// Relative imports with no module name (bare "from . import x") contribute
// no root.
func (w *walker) collectImportFromStatement(node *tree_sitter.Node) {
	moduleName := node.ChildByFieldName("module_name")
	if moduleName == nil {
		return
	}
	if moduleName.Kind() == "relative_import" {
		for i := uint(0); i < moduleName.ChildCount(); i++ {
			if child := moduleName.Child(i); child != nil && child.Kind() == "dotted_name" {
				w.addImportRoot(w.text(child))
			}
		}
		return
	}
	if moduleName.Kind() == "dotted_name" || moduleName.Kind() == "identifier" {
		w.addImportRoot(w.text(moduleName))
	}
}

func (w *walker) addImportRoot(dotted string) {
	dotted = strings.TrimPrefix(dotted, ".")
	if dotted == "" {
		return
	}
	root := dotted
	if idx := strings.IndexByte(dotted, '.'); idx >= 0 {
		root = dotted[:idx]
	}
	if root == "" {
		return
	}
	w.imports = append(w.imports, root)
}
