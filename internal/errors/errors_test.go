package errors

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileAccessError(t *testing.T) {
	underlying := errors.New("permission denied")
	err := NewFileAccessError("read", "/path/to/file", underlying)

	assert.Equal(t, "/path/to/file", err.Path)
	assert.Equal(t, "read", err.Op)
	assert.True(t, errors.Is(err, underlying))
	assert.Equal(t, "file access: read failed for /path/to/file: permission denied", err.Error())
	assert.False(t, err.Timestamp.IsZero())
}

func TestDecodeFailureError(t *testing.T) {
	err := NewDecodeFailureError("/path/to/file.py", "latin-1")
	assert.Equal(t, "decode failure for /path/to/file.py, fell back to latin-1", err.Error())
}

func TestParseFailureError(t *testing.T) {
	underlying := errors.New("syntax error")
	err := NewParseFailureError("/path/to/file.py", "python", underlying)

	assert.Equal(t, "python", err.Language)
	assert.True(t, errors.Is(err, underlying))
	assert.Contains(t, err.Error(), "parse failure (python) for /path/to/file.py")
}

func TestPathTraversalError(t *testing.T) {
	err := NewPathTraversalError("../../etc/passwd", "/base")
	assert.Contains(t, err.Error(), "escapes base directory")
}

func TestVcsCommandError(t *testing.T) {
	err := NewVcsCommandError([]string{"git", "show"}, 128, "fatal: bad revision")
	assert.Equal(t, 128, err.ExitCode)
	assert.Contains(t, err.Error(), "exit 128")
}

func TestVcsTimeoutError(t *testing.T) {
	err := NewVcsTimeoutError([]string{"git", "clone"}, 120*time.Second)
	assert.Contains(t, err.Error(), "timed out after 2m0s")
}

func TestVcsBinaryMissingError(t *testing.T) {
	err := NewVcsBinaryMissingError("git")
	assert.Contains(t, err.Error(), "git is not installed")
}

func TestVcsContextError(t *testing.T) {
	underlying := errors.New("dirty working tree")
	err := NewVcsContextError("checkout", underlying)
	assert.True(t, errors.Is(err, underlying))
	assert.Contains(t, err.Error(), "checkout scope")
}

func TestInvalidRefError(t *testing.T) {
	err := NewInvalidRefError("HEAD; rm -rf /")
	assert.Contains(t, err.Error(), "invalid commit reference")
}
