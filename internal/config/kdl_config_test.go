package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKDLEmptyReturnsZeroConfig(t *testing.T) {
	cfg, err := parseKDL("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Empty(t, cfg.ScanRoots)
	assert.False(t, cfg.respectGitignoreSet)
}

func TestParseKDLScanRoots(t *testing.T) {
	cfg, err := parseKDL(`
scan {
    roots "." "docs"
}
`)
	require.NoError(t, err)
	assert.Equal(t, []string{".", "docs"}, cfg.ScanRoots)
}

func TestParseKDLIgnore(t *testing.T) {
	cfg, err := parseKDL(`
ignore {
    dirs "fixtures" "third_party"
    globs "**/*.generated.go"
}
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"fixtures", "third_party"}, cfg.IgnoreDirs)
	assert.Equal(t, []string{"**/*.generated.go"}, cfg.IgnoreGlobs)
}

func TestParseKDLExtensions(t *testing.T) {
	cfg, err := parseKDL(`
extensions {
    code ".zig"
    doc ".wiki"
}
`)
	require.NoError(t, err)
	assert.Equal(t, []string{".zig"}, cfg.CodeExtensions)
	assert.Equal(t, []string{".wiki"}, cfg.DocExtensions)
}

func TestParseKDLMatcherAndVCS(t *testing.T) {
	cfg, err := parseKDL(`
matcher {
    fuzzy_cutoff 0.75
}
vcs {
    timeout_seconds 45
}
`)
	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.FuzzyCutoff)
	assert.Equal(t, 45, cfg.VCSTimeoutSeconds)
}

func TestParseKDLRespectGitignore(t *testing.T) {
	cfg, err := parseKDL(`respect_gitignore false`)
	require.NoError(t, err)
	assert.True(t, cfg.respectGitignoreSet)
	assert.False(t, cfg.RespectGitignore)
}

func TestLoadKDLMissingFileReturnsNil(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadKDL(dir)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadKDLReadsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "watchdocs.kdl", `
scan {
    roots "src"
}
`)

	cfg, err := LoadKDL(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"src"}, cfg.ScanRoots)
}
