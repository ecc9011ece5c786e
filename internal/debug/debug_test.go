package debug

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func saveAndRestoreState() func() {
	originalDebug := EnableDebug
	originalOutput := output
	originalFile := file
	return func() {
		EnableDebug = originalDebug
		output = originalOutput
		file = originalFile
	}
}

func TestPrintfGatedByEnableDebug(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	EnableDebug = "false"
	Printf("hidden %s", "message")
	assert.Empty(t, buf.String())

	EnableDebug = "true"
	Printf("visible %s", "message")
	assert.Contains(t, buf.String(), "[DEBUG] visible message")
}

func TestWarnfAlwaysWrites(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	EnableDebug = "false"
	Warnf("skipping %s: %s", "file.py", "permission denied")

	assert.Contains(t, buf.String(), "[WARN] skipping file.py: permission denied")
}

func TestWarnfFallsBackToStderrWithoutOutput(t *testing.T) {
	defer saveAndRestoreState()()
	SetOutput(nil)
	// Should not panic even with no configured writer.
	Warnf("no sink configured")
}

func TestStdSinkImplementsSink(t *testing.T) {
	var s Sink = StdSink{}
	defer saveAndRestoreState()()
	var buf bytes.Buffer
	SetOutput(&buf)
	s.Warnf("via sink %d", 1)
	assert.Contains(t, buf.String(), "via sink 1")
}

func TestInitLogFile(t *testing.T) {
	defer saveAndRestoreState()()

	path, err := InitLogFile()
	assert.NoError(t, err)
	assert.NotEmpty(t, path)
	defer os.Remove(path)

	EnableDebug = "true"
	Printf("hello log file")
	assert.NoError(t, Close())

	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "hello log file")
}

func TestDebugEnabledByEnvironment(t *testing.T) {
	defer saveAndRestoreState()()
	defer os.Unsetenv("DEBUG")

	EnableDebug = "false"
	os.Setenv("DEBUG", "1")
	assert.True(t, isEnabled())
}
