// Package debug provides the process-wide warning/debug sink used by the
// CLI entry point. Core packages never call into this package directly —
// per spec section 9's design note on global mutable state, they accept a
// Sink through their constructors instead; this package is the default
// implementation cmd/docwatch wires in.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnableDebug can be set at build time:
// go build -ldflags "-X github.com/jaimade/watch-docs/internal/debug.EnableDebug=true"
var EnableDebug = "false"

var (
	output io.Writer
	file   *os.File
	mu     sync.Mutex
)

// Sink is the minimal interface core packages accept for warning output.
type Sink interface {
	Warnf(format string, args ...any)
}

// StdSink adapts this package's process-wide writer to the Sink interface.
type StdSink struct{}

func (StdSink) Warnf(format string, args ...any) { Warnf(format, args...) }

// SetOutput sets the writer debug/warning output goes to. With a nil
// writer, Warnf falls back to stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// InitLogFile creates a timestamped log file under the OS temp directory
// and routes subsequent output to it. Returns the file path.
func InitLogFile() (string, error) {
	mu.Lock()
	defer mu.Unlock()

	dir := filepath.Join(os.TempDir(), "watch-docs-logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("watch-docs-%s.log", time.Now().Format("2006-01-02T150405")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("create log file: %w", err)
	}
	file = f
	output = f
	return path, nil
}

// Close closes the log file opened by InitLogFile, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	output = nil
	return err
}

func isEnabled() bool {
	if EnableDebug == "true" {
		return true
	}
	v := os.Getenv("DEBUG")
	return v == "1" || v == "true"
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return output
}

// Printf writes a debug-level message, gated by EnableDebug/$DEBUG.
func Printf(format string, args ...any) {
	if !isEnabled() {
		return
	}
	if w := writer(); w != nil {
		fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
	}
}

// Warnf writes a warning. Unlike Printf it is not gated by EnableDebug —
// warnings are the side-channel spec section 4.1 and 7 require for
// unreadable files and recoverable failures, and should surface regardless
// of debug mode. If no output has been configured, it falls back to stderr.
func Warnf(format string, args ...any) {
	w := writer()
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "[WARN] "+format+"\n", args...)
}
