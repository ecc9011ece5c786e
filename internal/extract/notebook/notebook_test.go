package notebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaimade/watch-docs/internal/extract/pyast"
)

func TestIsNotebook(t *testing.T) {
	assert.True(t, IsNotebook("analysis.ipynb"))
	assert.True(t, IsNotebook("Analysis.IPYNB"))
	assert.False(t, IsNotebook("script.py"))
}

const sampleNotebook = `{
  "cells": [
    {"cell_type": "markdown", "source": ["# Title\n"]},
    {"cell_type": "code", "source": ["import os\n", "\n", "def first():\n", "    pass\n"]},
    {"cell_type": "code", "source": "def second():\n    pass\n"}
  ]
}`

func TestExtractRebasesLineNumbers(t *testing.T) {
	e := pyast.New()
	entities, imports := Extract("nb.ipynb", []byte(sampleNotebook), e, nil)
	require.Len(t, entities, 2)
	assert.Equal(t, "first", entities[0].Name)
	assert.Equal(t, "second", entities[1].Name)
	assert.Greater(t, entities[1].Location.LineStart, entities[0].Location.LineStart)
	assert.Contains(t, imports, "os")
}

func TestExtractMalformedNotebook(t *testing.T) {
	e := pyast.New()
	entities, imports := Extract("bad.ipynb", []byte("not json"), e, nil)
	assert.Empty(t, entities)
	assert.Empty(t, imports)
}
