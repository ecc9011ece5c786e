package jsregex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sample = `
import React from 'react';
import { useState } from 'react';
import './styles.css';
const axios = require('axios');
const mod = import('./lazy');

export function greet(name) {
  return "hi " + name;
}

const add = (a, b) => a + b;
const subtract = async (a, b) => a - b;

const Shout = function(name) {
  return name.toUpperCase();
};

export class Widget extends Base implements Renderable {
  render() {}
}

export { greet, add };
`

func TestExtractEntities(t *testing.T) {
	res := Extract("app.js", []byte(sample))

	names := map[string]bool{}
	for _, e := range res.Entities {
		names[e.Name] = true
	}
	assert.True(t, names["greet"])
	assert.True(t, names["add"])
	assert.True(t, names["subtract"])
	assert.True(t, names["Shout"])
	assert.True(t, names["Widget"])

	for _, e := range res.Entities {
		assert.Equal(t, "app.js", e.Location.File)
		assert.Greater(t, e.Location.LineStart, 0)
	}
}

func TestExtractImports(t *testing.T) {
	res := Extract("app.js", []byte(sample))
	assert.ElementsMatch(t, []string{"react", "./styles.css", "axios", "./lazy"}, res.Imports)
}

func TestExtractExports(t *testing.T) {
	res := Extract("app.js", []byte(sample))
	assert.Contains(t, res.Exports, "greet")
	assert.Contains(t, res.Exports, "Widget")
	assert.Contains(t, res.Exports, "add")
}

func TestDedupPreservesFirstOccurrence(t *testing.T) {
	src := `
function a() {}
function a() {}
`
	res := Extract("dup.js", []byte(src))
	count := 0
	for _, e := range res.Entities {
		if e.Name == "a" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
