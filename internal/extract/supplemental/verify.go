package supplemental

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/jaimade/watch-docs/internal/model"
)

var jsVerifySpec = languageSpec{
	language: tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
	query: `
		(function_declaration name: (identifier) @function.name) @function
		(method_definition name: (property_identifier) @method.name) @method
		(class_declaration name: (identifier) @class.name) @class
	`,
}

var tsVerifySpec = languageSpec{
	language: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
	query: `
		(function_declaration name: (identifier) @function.name) @function
		(method_definition name: (property_identifier) @method.name) @method
		(class_declaration name: (type_identifier) @class.name) @class
	`,
}

// VerifyJS structurally cross-checks the regex-based jsregex extractor
// against a real parse: it parses source with tree-sitter and returns the
// names of function, method and class declarations the parse finds that entities
// (jsregex's output) does not. It never feeds back into the primary entity
// stream — --verify-js is a diagnostic only, per the regex extractor being
// pinned as the source of truth for JS/TS entities.
func VerifyJS(lang model.Language, source []byte, entities []model.CodeEntity) []string {
	spec, ok := jsVerifySpecFor(lang)
	if !ok {
		return nil
	}

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(spec.language); err != nil {
		return nil
	}

	query, err := tree_sitter.NewQuery(spec.language, spec.query)
	if err != nil || query == nil {
		return nil
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		seen[e.Name] = struct{}{}
	}

	var missing []string
	matches := cursor.Matches(query, tree.RootNode(), source)
	captureNames := query.CaptureNames()
	reported := map[string]struct{}{}

	for {
		match := matches.Next()
		if match == nil {
			break
		}
		for _, c := range match.Captures {
			name := captureNames[c.Index]
			if name != "function.name" && name != "method.name" && name != "class.name" {
				continue
			}
			ident := string(source[c.Node.StartByte():c.Node.EndByte()])
			if _, ok := seen[ident]; ok {
				continue
			}
			if _, ok := reported[ident]; ok {
				continue
			}
			reported[ident] = struct{}{}
			missing = append(missing, ident)
		}
	}

	return missing
}

func jsVerifySpecFor(lang model.Language) (languageSpec, bool) {
	switch lang {
	case model.LanguageJavaScript:
		return jsVerifySpec, true
	case model.LanguageTypeScript:
		return tsVerifySpec, true
	default:
		return languageSpec{}, false
	}
}
