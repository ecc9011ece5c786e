package pyast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaimade/watch-docs/internal/model"
)

func findEntity(entities []model.CodeEntity, name string) (model.CodeEntity, bool) {
	for _, e := range entities {
		if e.Name == name {
			return e, true
		}
	}
	return model.CodeEntity{}, false
}

func TestExtractFunctionAndClass(t *testing.T) {
	src := `
def greet(name: str, loud=False) -> str:
    """Say hello."""
    return name

class Greeter(Base, metaclass=Meta):
    """Greets people."""

    def __init__(self, name):
        self.name = name

    async def greet_async(self):
        pass
`
	e := New()
	entities, imports := e.Extract("greet.py", []byte(src))
	require.NotEmpty(t, entities)
	assert.Empty(t, imports)

	fn, ok := findEntity(entities, "greet")
	require.True(t, ok)
	assert.Equal(t, model.EntityFunction, fn.Kind)
	assert.Equal(t, "Say hello.", fn.Docstring)
	assert.Contains(t, fn.Signature, "def greet(name: str, loud=False) -> str")

	class, ok := findEntity(entities, "Greeter")
	require.True(t, ok)
	assert.Equal(t, model.EntityClass, class.Kind)
	assert.Contains(t, class.Signature, "class Greeter(Base, metaclass=Meta)")

	init, ok := findEntity(entities, "__init__")
	require.True(t, ok)
	assert.Equal(t, model.EntityMethod, init.Kind)
	assert.Equal(t, "Greeter", init.ParentName)

	asyncMethod, ok := findEntity(entities, "greet_async")
	require.True(t, ok)
	assert.Contains(t, asyncMethod.Signature, "async def greet_async")
}

func TestExtractDecoratedFunction(t *testing.T) {
	src := `
@staticmethod
@cached
def compute():
    pass
`
	e := New()
	entities, _ := e.Extract("d.py", []byte(src))
	fn, ok := findEntity(entities, "compute")
	require.True(t, ok)
	assert.Contains(t, fn.Signature, "@staticmethod")
	assert.Contains(t, fn.Signature, "@cached")
	assert.Contains(t, fn.Signature, "def compute()")
}

func TestModuleLevelConstantAndTypeAlias(t *testing.T) {
	src := `
MAX_RETRIES = 3
UserId = int
Handler: TypeAlias = Callable
TIMEOUT: int = 30
`
	e := New()
	entities, _ := e.Extract("m.py", []byte(src))

	c, ok := findEntity(entities, "MAX_RETRIES")
	require.True(t, ok)
	assert.Equal(t, model.EntityConstant, c.Kind)

	alias, ok := findEntity(entities, "UserId")
	require.True(t, ok)
	assert.Equal(t, model.EntityVariable, alias.Kind)
	assert.Contains(t, alias.Signature, "UserId = int")

	annotated, ok := findEntity(entities, "Handler")
	require.True(t, ok)
	assert.Equal(t, model.EntityVariable, annotated.Kind)
	assert.Contains(t, annotated.Signature, "type Handler = Callable")

	timeout, ok := findEntity(entities, "TIMEOUT")
	require.True(t, ok)
	assert.Equal(t, model.EntityConstant, timeout.Kind)
	assert.Contains(t, timeout.Signature, ": int")
}

func TestModuleLevelAssignmentSkippedInsideFunction(t *testing.T) {
	src := `
def f():
    LOCAL_CONST = 1
    return LOCAL_CONST
`
	e := New()
	entities, _ := e.Extract("f.py", []byte(src))
	_, ok := findEntity(entities, "LOCAL_CONST")
	assert.False(t, ok)
}

func TestImportsCollectedAndDeduped(t *testing.T) {
	src := `
import os
import os.path
import numpy as np
from collections.abc import Mapping
from . import sibling
from ..pkg import thing
`
	e := New()
	_, imports := e.Extract("i.py", []byte(src))
	assert.ElementsMatch(t, []string{"os", "numpy", "collections", "pkg"}, imports)
}

func TestSyntaxErrorReturnsEmptyWithWarning(t *testing.T) {
	var warnings []string
	e := New()
	e.Sink = sinkFunc(func(format string, args ...any) {
		warnings = append(warnings, format)
	})
	entities, imports := e.Extract("broken.py", []byte("def f(:\n  pass"))
	assert.Empty(t, entities)
	assert.Empty(t, imports)
	assert.NotEmpty(t, warnings)
}

func TestExtractFileFallsBackToLatin1(t *testing.T) {
	var warnings []string
	e := New()
	e.Sink = sinkFunc(func(format string, args ...any) {
		warnings = append(warnings, format)
	})
	raw := append([]byte("x = \""), 0xE9, '"', '\n')
	entities, _ := e.ExtractFile("latin1.py", raw)
	_ = entities
	assert.NotEmpty(t, warnings)
}

type sinkFunc func(format string, args ...any)

func (f sinkFunc) Warnf(format string, args ...any) { f(format, args...) }
