package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func buildSampleProject(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, dir, "src/mod.py", `def process_data(items):
    """Process a batch of items."""
    return items


def _internal_helper():
    pass


class Widget:
    def render(self):
        pass
`)
	writeFile(t, dir, "README.md", `# Overview

Use ` + "`process_data`" + ` to process items.

See also ` + "`missing_function`" + ` for more.
`)
	return dir
}

func TestAnalyzeDirectoryBuildsCoverage(t *testing.T) {
	dir := buildSampleProject(t)
	a := New(Options{})
	require.NoError(t, a.AnalyzeDirectory(dir))

	stats := a.Stats()
	assert.GreaterOrEqual(t, stats.TotalEntities, 3)
	assert.GreaterOrEqual(t, stats.DocumentedEntities, 1)
	assert.GreaterOrEqual(t, stats.TotalReferences, 2)
	assert.GreaterOrEqual(t, stats.LinkedReferences, 1)
}

func TestAnalyzeDirectoryBrokenReferenceDetected(t *testing.T) {
	dir := buildSampleProject(t)
	a := New(Options{})
	require.NoError(t, a.AnalyzeDirectory(dir))

	broken := a.BrokenReferences()
	require.NotEmpty(t, broken)

	var names []string
	for _, r := range broken {
		names = append(names, r.CleanText())
	}
	assert.Contains(t, names, "missing_function")
}

func TestPriorityIssuesSortedDescending(t *testing.T) {
	dir := buildSampleProject(t)
	a := New(Options{})
	require.NoError(t, a.AnalyzeDirectory(dir))

	issues := a.PriorityIssues()
	require.NotEmpty(t, issues)
	for i := 1; i < len(issues); i++ {
		assert.GreaterOrEqual(t, issues[i-1].Score, issues[i].Score)
	}
}

func TestDocumentationClustersGroupsRelatedFiles(t *testing.T) {
	dir := buildSampleProject(t)
	a := New(Options{})
	require.NoError(t, a.AnalyzeDirectory(dir))

	clusters := a.DocumentationClusters()
	assert.NotEmpty(t, clusters)
}

func TestAnalyzeDirectoryReanalysisIsIdempotent(t *testing.T) {
	dir := buildSampleProject(t)
	a := New(Options{})
	require.NoError(t, a.AnalyzeDirectory(dir))
	first := a.Stats()

	require.NoError(t, a.AnalyzeDirectory(dir))
	second := a.Stats()

	assert.Equal(t, first, second)
}

func TestAnalyzeDirectorySkipsOtherFiles(t *testing.T) {
	dir := buildSampleProject(t)
	writeFile(t, dir, "image.png", "binarydata")

	a := New(Options{})
	require.NoError(t, a.AnalyzeDirectory(dir))

	for _, cf := range a.codeFiles {
		assert.NotEqual(t, "image.png", cf.Path)
	}
}

func TestLinksForEntityAndDoc(t *testing.T) {
	dir := buildSampleProject(t)
	a := New(Options{})
	require.NoError(t, a.AnalyzeDirectory(dir))

	links := a.LinksForEntity("process_data")
	require.NotEmpty(t, links)

	docLinks := a.LinksForDoc("README.md")
	require.NotEmpty(t, docLinks)
}
