package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulePathStripsSourceRoot(t *testing.T) {
	assert.Equal(t, "utils", ModulePath("src/utils.py"))
	assert.Equal(t, "pkg.analyzer", ModulePath("lib/pkg/analyzer.py"))
	assert.Equal(t, "top", ModulePath("top.py"))
}

func TestQualifiedName(t *testing.T) {
	e := CodeEntity{Name: "process", Location: Location{File: "src/utils.py", LineStart: 10}}
	assert.Equal(t, "utils.process", e.QualifiedName())

	method := CodeEntity{Name: "__init__", ParentName: "MyClass", Location: Location{File: "src/utils.py", LineStart: 5}}
	assert.Equal(t, "utils.MyClass.__init__", method.QualifiedName())
}

func TestIsDunder(t *testing.T) {
	assert.True(t, CodeEntity{Name: "__init__"}.IsDunder())
	assert.False(t, CodeEntity{Name: "_helper"}.IsDunder())
	assert.False(t, CodeEntity{Name: "public"}.IsDunder())
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "process_data", CleanText("`process_data`"))
	assert.Equal(t, "foo", CleanText("  [foo]  "))
	assert.Equal(t, "bar", CleanText(`"bar"`))
}

func TestLocationSpanAndParseRoundTrip(t *testing.T) {
	end := 50
	loc := Location{File: "a/b.py", LineStart: 42, LineEnd: &end}
	assert.Equal(t, "a/b.py:42-50", loc.Span())

	parsed, err := ParseLocation("a/b.py:42-50")
	require.NoError(t, err)
	assert.Equal(t, loc.File, parsed.File)
	assert.Equal(t, loc.LineStart, parsed.LineStart)
	require.NotNil(t, parsed.LineEnd)
	assert.Equal(t, 50, *parsed.LineEnd)

	single, err := ParseLocation("a/b.py:7")
	require.NoError(t, err)
	assert.Nil(t, single.LineEnd)
	assert.Equal(t, "a/b.py:7", single.Span())
}

func TestCodeEntityJSONRoundTrip(t *testing.T) {
	end := 12
	e := CodeEntity{
		Name:       "greet",
		Kind:       EntityFunction,
		Location:   Location{File: "src/app.py", LineStart: 10, LineEnd: &end},
		Signature:  "def greet(name)",
		Docstring:  "Say hello.",
		ParentName: "",
	}
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var out CodeEntity
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, e.Name, out.Name)
	assert.Equal(t, e.Kind, out.Kind)
	assert.Equal(t, e.Location, out.Location)
	assert.Equal(t, e.Signature, out.Signature)
	assert.Equal(t, e.Docstring, out.Docstring)
	assert.Equal(t, e.QualifiedName(), out.QualifiedName())
}

func TestDocReferenceJSONRoundTrip(t *testing.T) {
	r := DocReference{
		Text:     "`process_data`",
		Location: Location{File: "README.md", LineStart: 1},
		Kind:     ReferenceInlineCode,
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"clean_text":"process_data"`)

	var out DocReference
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, r.Text, out.Text)
	assert.Equal(t, r.CleanText(), out.CleanText())
}

func TestDedupePreserveOrder(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, DedupePreserveOrder([]string{"a", "b", "a", "c", "b"}))
}

func TestTopLevelModule(t *testing.T) {
	assert.Equal(t, "a", TopLevelModule("a.b.c"))
	assert.Equal(t, "os", TopLevelModule("os"))
}

func TestCodeFileHelpers(t *testing.T) {
	f := CodeFile{
		Path: "src/app.py",
		Entities: []CodeEntity{
			{Name: "Foo", Kind: EntityClass},
			{Name: "bar", Kind: EntityFunction},
		},
	}
	assert.Len(t, f.Classes(), 1)
	assert.Len(t, f.Functions(), 1)
	assert.Equal(t, []string{"Foo", "bar"}, f.EntityNames())

	e, ok := f.GetEntity("bar")
	require.True(t, ok)
	assert.Equal(t, EntityFunction, e.Kind)

	_, ok = f.GetEntity("missing")
	assert.False(t, ok)
}
