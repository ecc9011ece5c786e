package serialize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaimade/watch-docs/internal/analyzer"
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
`)
	writeFile(t, dir, "README.md", "Use `process_data` to process items.\n")
	return dir
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := buildSampleProject(t)
	a := analyzer.New(analyzer.Options{})
	require.NoError(t, a.AnalyzeDirectory(dir))

	out := filepath.Join(dir, "analysis.json")
	require.NoError(t, Save(a, out))

	loaded := analyzer.New(analyzer.Options{})
	require.NoError(t, Load(out, dir, true, loaded))

	assert.Equal(t, a.Stats().TotalEntities, loaded.Stats().TotalEntities)
	assert.Equal(t, a.Stats().TotalReferences, loaded.Stats().TotalReferences)
	assert.Equal(t, len(a.Links()), len(loaded.Links()))
}

func TestLoadDefaultsBaseDirToFileParent(t *testing.T) {
	dir := buildSampleProject(t)
	a := analyzer.New(analyzer.Options{})
	require.NoError(t, a.AnalyzeDirectory(dir))

	out := filepath.Join(dir, "analysis.json")
	require.NoError(t, Save(a, out))

	loaded := analyzer.New(analyzer.Options{})
	require.NoError(t, Load(out, "", true, loaded))
	assert.Equal(t, a.Stats().TotalEntities, loaded.Stats().TotalEntities)
}

func TestLoadRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	outer := t.TempDir()

	malicious := `{
  "version": "1.0",
  "created_at": "2026-01-01T00:00:00Z",
  "code_files": [
    {"path": "../../etc/passwd", "language": "python", "entities": [], "imports": []}
  ],
  "doc_files": [],
  "links": []
}`
	path := filepath.Join(dir, "analysis.json")
	require.NoError(t, os.WriteFile(path, []byte(malicious), 0644))

	a := analyzer.New(analyzer.Options{})
	err := Load(path, outer, true, a)
	require.Error(t, err)
}

func TestLoadSkipsPathValidationWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	outer := t.TempDir()

	doc := `{
  "version": "1.0",
  "created_at": "2026-01-01T00:00:00Z",
  "code_files": [
    {"path": "../../elsewhere.py", "language": "python", "entities": [], "imports": []}
  ],
  "doc_files": [],
  "links": []
}`
	path := filepath.Join(dir, "analysis.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	a := analyzer.New(analyzer.Options{})
	err := Load(path, outer, false, a)
	require.NoError(t, err)
	assert.Len(t, a.CodeFiles(), 1)
}

func TestLoadRejectsMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": "1.0"}`), 0644))

	a := analyzer.New(analyzer.Options{})
	err := Load(path, dir, true, a)
	require.Error(t, err)
}
