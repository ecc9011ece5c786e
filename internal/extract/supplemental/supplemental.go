// Package supplemental provides best-effort tree-sitter entity extraction
// for code extensions spec section 6 classifies as code but the primary
// pipeline (pyast for Python, jsregex for JS/TS) does not cover: Go, Java,
// PHP, Rust, C#, and C++. Each language contributes a minimal query that
// captures functions/methods and classes/structs so these files are not
// silently entity-less in the coverage graph. This is intentionally shallow
// compared to pyast: no docstring extraction, no nested-class tracking.
package supplemental

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/jaimade/watch-docs/internal/model"
)

type languageSpec struct {
	language *tree_sitter.Language
	query    string
}

var goSpec = languageSpec{
	language: tree_sitter.NewLanguage(tree_sitter_go.Language()),
	query: `
		(function_declaration name: (identifier) @function.name) @function
		(method_declaration name: (field_identifier) @method.name) @method
		(type_spec name: (type_identifier) @class.name (struct_type)) @class
	`,
}

var rustSpec = languageSpec{
	language: tree_sitter.NewLanguage(tree_sitter_rust.Language()),
	query: `
		(function_item name: (identifier) @function.name) @function
		(struct_item name: (type_identifier) @class.name) @class
		(enum_item name: (type_identifier) @class.name) @class
	`,
}

var javaSpec = languageSpec{
	language: tree_sitter.NewLanguage(tree_sitter_java.Language()),
	query: `
		(method_declaration name: (identifier) @method.name) @method
		(class_declaration name: (identifier) @class.name) @class
		(interface_declaration name: (identifier) @class.name) @class
	`,
}

var phpSpec = languageSpec{
	language: tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP()),
	query: `
		(function_definition name: (name) @function.name) @function
		(method_declaration name: (name) @method.name) @method
		(class_declaration name: (name) @class.name) @class
	`,
}

var csharpSpec = languageSpec{
	language: tree_sitter.NewLanguage(tree_sitter_csharp.Language()),
	query: `
		(method_declaration name: (identifier) @method.name) @method
		(class_declaration name: (identifier) @class.name) @class
		(struct_declaration name: (identifier) @class.name) @class
		(interface_declaration name: (identifier) @class.name) @class
	`,
}

var cppSpec = languageSpec{
	language: tree_sitter.NewLanguage(tree_sitter_cpp.Language()),
	query: `
		(function_definition declarator: (function_declarator declarator: (identifier) @function.name)) @function
		(class_specifier name: (type_identifier) @class.name) @class
		(struct_specifier name: (type_identifier) @class.name) @class
	`,
}

var specsByLanguage = map[model.Language]languageSpec{
	model.LanguageGo:     goSpec,
	model.LanguageRust:   rustSpec,
	model.LanguageJava:   javaSpec,
	model.LanguagePHP:    phpSpec,
	model.LanguageCSharp: csharpSpec,
	model.LanguageCPP:    cppSpec,
	model.LanguageC:      cppSpec,
}

// Supported reports whether lang has a supplemental extractor.
func Supported(lang model.Language) bool {
	_, ok := specsByLanguage[lang]
	return ok
}

// Extractor wraps one compiled tree-sitter parser/query pair per supported
// language, built lazily on first use.
type Extractor struct {
	parsers map[model.Language]*tree_sitter.Parser
	queries map[model.Language]*tree_sitter.Query
}

// New constructs an extractor with no parsers compiled yet; each language is
// compiled on first Extract call for that language.
func New() *Extractor {
	return &Extractor{
		parsers: make(map[model.Language]*tree_sitter.Parser),
		queries: make(map[model.Language]*tree_sitter.Query),
	}
}

func (e *Extractor) ensure(lang model.Language) (*tree_sitter.Parser, *tree_sitter.Query, bool) {
	if parser, ok := e.parsers[lang]; ok {
		return parser, e.queries[lang], e.queries[lang] != nil
	}

	spec, ok := specsByLanguage[lang]
	if !ok {
		return nil, nil, false
	}

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(spec.language); err != nil {
		e.parsers[lang] = parser
		return parser, nil, false
	}
	e.parsers[lang] = parser

	query, _ := tree_sitter.NewQuery(spec.language, spec.query)
	e.queries[lang] = query
	return parser, query, query != nil
}

// Extract parses source with the language's tree-sitter grammar and returns
// the function/method/class entities its query captures, in match order.
// Returns nil for an unsupported language or a parse/query failure.
func (e *Extractor) Extract(relPath string, lang model.Language, source []byte) []model.CodeEntity {
	parser, query, ok := e.ensure(lang)
	if !ok {
		return nil
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, tree.RootNode(), source)
	captureNames := query.CaptureNames()

	var entities []model.CodeEntity
	for {
		match := matches.Next()
		if match == nil {
			break
		}

		var name string
		for _, c := range match.Captures {
			if strings.HasSuffix(captureNames[c.Index], ".name") {
				name = string(source[c.Node.StartByte():c.Node.EndByte()])
			}
		}
		if name == "" {
			continue
		}

		for _, c := range match.Captures {
			kind, ok := entityKindFor(captureNames[c.Index])
			if !ok {
				continue
			}
			end := int(c.Node.EndPosition().Row) + 1
			entities = append(entities, model.CodeEntity{
				Name:     name,
				Kind:     kind,
				Location: model.Location{File: relPath, LineStart: int(c.Node.StartPosition().Row) + 1, LineEnd: &end},
			})
		}
	}

	return entities
}

func entityKindFor(captureName string) (model.EntityKind, bool) {
	switch captureName {
	case "function":
		return model.EntityFunction, true
	case "method":
		return model.EntityMethod, true
	case "class":
		return model.EntityClass, true
	default:
		return "", false
	}
}
