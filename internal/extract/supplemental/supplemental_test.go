package supplemental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaimade/watch-docs/internal/model"
)

func TestSupported(t *testing.T) {
	assert.True(t, Supported(model.LanguageGo))
	assert.True(t, Supported(model.LanguageRust))
	assert.True(t, Supported(model.LanguageJava))
	assert.True(t, Supported(model.LanguagePHP))
	assert.True(t, Supported(model.LanguageCSharp))
	assert.True(t, Supported(model.LanguageCPP))
	assert.True(t, Supported(model.LanguageC))
	assert.False(t, Supported(model.LanguagePython))
}

func TestExtractGo(t *testing.T) {
	src := []byte(`package main

func DoThing(x int) int {
	return x + 1
}

type Widget struct {
	Name string
}

func (w Widget) Describe() string {
	return w.Name
}
`)

	e := New()
	entities := e.Extract("main.go", model.LanguageGo, src)
	require.NotEmpty(t, entities)

	names := entityNames(entities)
	assert.Contains(t, names, "DoThing")
	assert.Contains(t, names, "Widget")
	assert.Contains(t, names, "Describe")
}

func TestExtractRust(t *testing.T) {
	src := []byte(`
fn add(a: i32, b: i32) -> i32 {
    a + b
}

struct Point {
    x: i32,
    y: i32,
}
`)
	e := New()
	entities := e.Extract("lib.rs", model.LanguageRust, src)
	require.NotEmpty(t, entities)

	names := entityNames(entities)
	assert.Contains(t, names, "add")
	assert.Contains(t, names, "Point")
}

func TestExtractJava(t *testing.T) {
	src := []byte(`
public class Greeter {
    public String greet(String name) {
        return "hi " + name;
    }
}
`)
	e := New()
	entities := e.Extract("Greeter.java", model.LanguageJava, src)
	require.NotEmpty(t, entities)

	names := entityNames(entities)
	assert.Contains(t, names, "Greeter")
	assert.Contains(t, names, "greet")
}

func TestExtractUnsupportedLanguageReturnsNil(t *testing.T) {
	e := New()
	entities := e.Extract("mod.py", model.LanguagePython, []byte("def f(): pass"))
	assert.Nil(t, entities)
}

func TestExtractCIsRoutedThroughCppGrammar(t *testing.T) {
	src := []byte(`
int add(int a, int b) {
    return a + b;
}
`)
	e := New()
	entities := e.Extract("math.c", model.LanguageC, src)
	require.NotEmpty(t, entities)
	assert.Contains(t, entityNames(entities), "add")
}

func entityNames(entities []model.CodeEntity) []string {
	var names []string
	for _, e := range entities {
		names = append(names, e.Name)
	}
	return names
}
