package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"."}, cfg.ScanRoots)
	assert.True(t, cfg.RespectGitignore)
	assert.Equal(t, 30, cfg.VCSTimeoutSeconds)
}

func TestMergeIntoOverridesScanRoots(t *testing.T) {
	base := Default()
	overlay := &Config{ScanRoots: []string{"src", "docs"}}

	mergeInto(base, overlay)

	assert.Equal(t, []string{"src", "docs"}, base.ScanRoots)
}

func TestMergeIntoAppendsIgnoreLists(t *testing.T) {
	base := &Config{IgnoreDirs: []string{"vendor"}, IgnoreGlobs: []string{"**/*.bak"}}
	overlay := &Config{IgnoreDirs: []string{"node_modules"}, IgnoreGlobs: []string{"**/*.generated.go"}}

	mergeInto(base, overlay)

	assert.Equal(t, []string{"vendor", "node_modules"}, base.IgnoreDirs)
	assert.Equal(t, []string{"**/*.bak", "**/*.generated.go"}, base.IgnoreGlobs)
}

func TestMergeIntoLeavesZeroOverlayFieldsAlone(t *testing.T) {
	base := &Config{FuzzyCutoff: 0.8, VCSTimeoutSeconds: 30, RespectGitignore: true}
	overlay := &Config{}

	mergeInto(base, overlay)

	assert.Equal(t, 0.8, base.FuzzyCutoff)
	assert.Equal(t, 30, base.VCSTimeoutSeconds)
	assert.True(t, base.RespectGitignore)
}

func TestMergeIntoRespectsExplicitGitignoreFalse(t *testing.T) {
	base := &Config{RespectGitignore: true}
	overlay := &Config{RespectGitignore: false, respectGitignoreSet: true}

	mergeInto(base, overlay)

	assert.False(t, base.RespectGitignore)
}

func TestLoadWithNoFilesReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"."}, cfg.ScanRoots)
	assert.Equal(t, 30, cfg.VCSTimeoutSeconds)
}

func TestLoadMergesTOMLThenKDL(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "pyproject.toml", `
[tool.watchdocs]
scan_roots = ["src"]
fuzzy_cutoff = 0.6
vcs_timeout_seconds = 10
`)
	writeFile(t, dir, "watchdocs.kdl", `
scan {
    roots "src" "docs"
}
matcher {
    fuzzy_cutoff 0.9
}
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"src", "docs"}, cfg.ScanRoots)
	assert.Equal(t, 0.9, cfg.FuzzyCutoff)
	assert.Equal(t, 10, cfg.VCSTimeoutSeconds)
}

func TestScannerOptionsMergesExtensions(t *testing.T) {
	cfg := &Config{CodeExtensions: []string{".zig"}, DocExtensions: []string{".wiki"}}

	opts := cfg.ScannerOptions(nil)

	_, hasZig := opts.CodeExtensions[".zig"]
	assert.True(t, hasZig)
	_, hasWiki := opts.DocExtensions[".wiki"]
	assert.True(t, hasWiki)
}

func TestDeduplicatePatternsPreservesOrder(t *testing.T) {
	in := []string{"a", "b", "a", "c", "b"}
	out := DeduplicatePatterns(in)
	assert.Equal(t, []string{"a", "b", "c"}, out)
}
