// Package model defines the value types shared by every stage of the
// documentation decay pipeline: Location, CodeEntity, DocReference,
// CodeDocLink, CodeFile, and DocFile, plus their closed enumerations.
//
// Every type here is a plain value with content-based equality; identity is
// carried separately as a derived key (qualified name, or a location-based
// tuple), never as a pointer. This mirrors the frozen-dataclass shape of the
// original docwatch.models module field-for-field.
package model

import (
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// sourceRootPrefixes is the fixed ordered list a module path strips its
// leading segment against. Order matters only in that each is tried in
// turn; at most one is stripped.
var sourceRootPrefixes = []string{"src", "lib", "source", "pkg", "packages", "app"}

// ModulePath derives a dotted module path from a file path: drop the
// extension, split on '/', drop a single leading segment if it matches one
// of sourceRootPrefixes, and join the remainder with '.'.
func ModulePath(filePath string) string {
	clean := filepath_ToSlash(filePath)
	ext := path.Ext(clean)
	noExt := strings.TrimSuffix(clean, ext)
	parts := strings.Split(noExt, "/")
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) > 1 {
		for _, prefix := range sourceRootPrefixes {
			if out[0] == prefix {
				out = out[1:]
				break
			}
		}
	}
	if len(out) == 0 {
		return noExt
	}
	return strings.Join(out, ".")
}

// filepath_ToSlash normalizes backslashes without importing path/filepath,
// keeping this package platform-agnostic for pure string manipulation.
func filepath_ToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// Language is the closed set of source languages the scanner/extractors
// recognize.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageGo         Language = "go"
	LanguageRust       Language = "rust"
	LanguageJava       Language = "java"
	LanguagePHP        Language = "php"
	LanguageCSharp     Language = "csharp"
	LanguageCPP        Language = "cpp"
	LanguageC          Language = "c"
	LanguageUnknown    Language = "unknown"
)

// DocFormat is the closed set of documentation formats.
type DocFormat string

const (
	DocFormatMarkdown DocFormat = "markdown"
	DocFormatRST       DocFormat = "restructuredtext"
	DocFormatAsciiDoc  DocFormat = "asciidoc"
	DocFormatPlain     DocFormat = "plain"
)

// EntityKind is the closed set of named-definition kinds this system
// tracks, matching spec section 3 exactly.
type EntityKind string

const (
	EntityFunction EntityKind = "function"
	EntityClass    EntityKind = "class"
	EntityMethod   EntityKind = "method"
	EntityVariable EntityKind = "variable"
	EntityConstant EntityKind = "constant"
	EntityModule   EntityKind = "module"
)

// ReferenceKind is the closed set of documentation reference kinds.
type ReferenceKind string

const (
	ReferenceInlineCode ReferenceKind = "inline_code"
	ReferenceCodeBlock  ReferenceKind = "code_block"
	ReferenceLink       ReferenceKind = "link"
	ReferenceHeader     ReferenceKind = "header"
)

// LinkKind is the closed set of match qualities the matcher can assign.
type LinkKind string

const (
	LinkExact     LinkKind = "exact"
	LinkQualified LinkKind = "qualified"
	LinkPartial   LinkKind = "partial"
)

// CodeBlockPenalty is applied multiplicatively to confidence whenever the
// reference kind is code_block (spec section 3 invariant).
const CodeBlockPenalty = 0.6

// Location is a 1-based half-open-free span: file, a required start line,
// and an optional end line.
type Location struct {
	File      string `json:"file"`
	LineStart int    `json:"line_start"`
	LineEnd   *int   `json:"line_end,omitempty"`
}

// Span returns "file:start" or "file:start-end".
func (l Location) Span() string {
	if l.LineEnd != nil && *l.LineEnd != l.LineStart {
		return fmt.Sprintf("%s:%d-%d", l.File, l.LineStart, *l.LineEnd)
	}
	return fmt.Sprintf("%s:%d", l.File, l.LineStart)
}

// ParseLocation parses "path:42" or "path:42-50", mirroring the original's
// Location.from_str (rsplit on the last ':').
func ParseLocation(s string) (Location, error) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return Location{}, fmt.Errorf("invalid location %q: missing ':'", s)
	}
	file := s[:idx]
	spanPart := s[idx+1:]
	var startStr, endStr string
	if dash := strings.Index(spanPart, "-"); dash >= 0 {
		startStr = spanPart[:dash]
		endStr = spanPart[dash+1:]
	} else {
		startStr = spanPart
	}
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return Location{}, fmt.Errorf("invalid location %q: bad line_start: %w", s, err)
	}
	loc := Location{File: file, LineStart: start}
	if endStr != "" {
		end, err := strconv.Atoi(endStr)
		if err != nil {
			return Location{}, fmt.Errorf("invalid location %q: bad line_end: %w", s, err)
		}
		loc.LineEnd = &end
	}
	return loc, nil
}

// CodeEntity is a named, located code construct.
type CodeEntity struct {
	Name       string     `json:"name"`
	Kind       EntityKind `json:"type"`
	Location   Location   `json:"location"`
	Signature  string     `json:"signature,omitempty"`
	Docstring  string     `json:"docstring,omitempty"`
	ParentName string     `json:"parent,omitempty"`
}

// DisplayName is "parent.name" when a parent is present, else "name".
func (e CodeEntity) DisplayName() string {
	if e.ParentName != "" {
		return e.ParentName + "." + e.Name
	}
	return e.Name
}

// QualifiedName derives the globally stable identity of an entity: the
// module path of its file, plus its display name.
func (e CodeEntity) QualifiedName() string {
	mp := ModulePath(e.Location.File)
	if mp == "" {
		return e.DisplayName()
	}
	return mp + "." + e.DisplayName()
}

// IsDunder reports whether the entity's bare name is of the form __x__.
func (e CodeEntity) IsDunder() bool {
	return strings.HasPrefix(e.Name, "__") && strings.HasSuffix(e.Name, "__") && len(e.Name) > 4
}

// MarshalJSON adds the derived qualified_name field alongside the stored
// fields, matching the persisted analysis schema.
func (e CodeEntity) MarshalJSON() ([]byte, error) {
	type alias CodeEntity
	return json.Marshal(struct {
		alias
		QualifiedName string `json:"qualified_name"`
	}{alias(e), e.QualifiedName()})
}

// CleanText strips surrounding whitespace, then every leading and trailing
// backtick/quote/bracket character, matching the original's
// text.strip("`'\"[]").
func CleanText(text string) string {
	return strings.Trim(strings.TrimSpace(text), "`'\"[]")
}

// DocReference is a documentation mention that may name an entity.
type DocReference struct {
	Text     string        `json:"text"`
	Location Location      `json:"location"`
	Kind     ReferenceKind `json:"type"`
	Context  string        `json:"context,omitempty"`
}

// CleanText returns the reference's stripped text per spec section 3.
func (r DocReference) CleanText() string {
	return CleanText(r.Text)
}

// MarshalJSON adds the derived clean_text field alongside the stored
// fields, matching the persisted analysis schema.
func (r DocReference) MarshalJSON() ([]byte, error) {
	type alias DocReference
	return json.Marshal(struct {
		alias
		CleanText string `json:"clean_text"`
	}{alias(r), r.CleanText()})
}

// LinkedKey identifies a reference for the linked-reference set: (file, line).
func (r DocReference) LinkedKey() [2]any {
	return [2]any{r.Location.File, r.Location.LineStart}
}

// CodeDocLink asserts a correspondence between one entity and one reference.
type CodeDocLink struct {
	Entity     CodeEntity   `json:"entity"`
	Reference  DocReference `json:"reference"`
	Kind       LinkKind     `json:"link_kind"`
	Confidence float64      `json:"confidence"`
}

// CodeFile is the extracted shape of one source file.
type CodeFile struct {
	Path     string       `json:"path"`
	Language Language     `json:"language"`
	Entities []CodeEntity `json:"entities"`
	Imports  []string     `json:"imports"`
}

// Functions returns entities of kind function.
func (f CodeFile) Functions() []CodeEntity { return f.filterKind(EntityFunction) }

// Classes returns entities of kind class.
func (f CodeFile) Classes() []CodeEntity { return f.filterKind(EntityClass) }

func (f CodeFile) filterKind(k EntityKind) []CodeEntity {
	var out []CodeEntity
	for _, e := range f.Entities {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// EntityNames returns the bare names of every entity, in source order.
func (f CodeFile) EntityNames() []string {
	out := make([]string, len(f.Entities))
	for i, e := range f.Entities {
		out[i] = e.Name
	}
	return out
}

// GetEntity finds the first entity with the given name, if any.
func (f CodeFile) GetEntity(name string) (CodeEntity, bool) {
	for _, e := range f.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return CodeEntity{}, false
}

// HeaderInfo is one extracted documentation header.
type HeaderInfo struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
}

// DocFile is the extracted shape of one documentation file.
type DocFile struct {
	Path       string         `json:"path"`
	Format     DocFormat      `json:"format"`
	Title      string         `json:"title,omitempty"`
	References []DocReference `json:"references"`
	Headers    []HeaderInfo   `json:"headers"`
}

// DedupePreserveOrder removes duplicate strings, keeping first occurrence.
func DedupePreserveOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// TopLevelModule returns the root segment of a dotted import path: for
// "a.b.c" it returns "a".
func TopLevelModule(importPath string) string {
	if idx := strings.Index(importPath, "."); idx >= 0 {
		return importPath[:idx]
	}
	return importPath
}
