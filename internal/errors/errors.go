// Package errors defines the tagged error taxonomy used across the
// documentation decay analyzer: per-file access/decode/parse failures that
// never abort a run, and VCS/deserialization failures that do.
package errors

import (
	"fmt"
	"time"
)

// ErrorType is a closed enumeration of the taxonomy in spec section 7.
type ErrorType string

const (
	ErrorTypeFileAccess      ErrorType = "file_access"
	ErrorTypeDecodeFailure   ErrorType = "decode_failure"
	ErrorTypeParseFailure    ErrorType = "parse_failure"
	ErrorTypePathTraversal   ErrorType = "path_traversal"
	ErrorTypeVcsCommand      ErrorType = "vcs_command_failed"
	ErrorTypeVcsTimeout      ErrorType = "vcs_timeout"
	ErrorTypeVcsBinaryMiss   ErrorType = "vcs_binary_missing"
	ErrorTypeVcsContext      ErrorType = "vcs_context_error"
	ErrorTypeInvalidRef      ErrorType = "invalid_ref"
)

// FileAccessError wraps a not-found/permission-denied/is-a-directory failure
// encountered while scanning or reading a single file. The scanner and
// extractors record these and continue; they are never returned to a caller
// as a fatal error.
type FileAccessError struct {
	Path       string
	Op         string
	Underlying error
	Timestamp  time.Time
}

func NewFileAccessError(op, path string, err error) *FileAccessError {
	return &FileAccessError{Op: op, Path: path, Underlying: err, Timestamp: time.Now()}
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("file access: %s failed for %s: %v", e.Op, e.Path, e.Underlying)
}

func (e *FileAccessError) Unwrap() error { return e.Underlying }

// DecodeFailureError records that UTF-8 decoding failed and a lossless
// fallback encoding was used instead. Informational only; never fatal.
type DecodeFailureError struct {
	Path     string
	Fallback string
}

func NewDecodeFailureError(path, fallback string) *DecodeFailureError {
	return &DecodeFailureError{Path: path, Fallback: fallback}
}

func (e *DecodeFailureError) Error() string {
	return fmt.Sprintf("decode failure for %s, fell back to %s", e.Path, e.Fallback)
}

// ParseFailureError records that an extractor produced an empty result for
// a file because the source could not be parsed.
type ParseFailureError struct {
	Path       string
	Language   string
	Underlying error
	Timestamp  time.Time
}

func NewParseFailureError(path, language string, err error) *ParseFailureError {
	return &ParseFailureError{Path: path, Language: language, Underlying: err, Timestamp: time.Now()}
}

func (e *ParseFailureError) Error() string {
	return fmt.Sprintf("parse failure (%s) for %s: %v", e.Language, e.Path, e.Underlying)
}

func (e *ParseFailureError) Unwrap() error { return e.Underlying }

// PathTraversalError is raised only at analysis deserialization when a
// stored path, once resolved, escapes the caller-supplied base directory.
type PathTraversalError struct {
	Path    string
	BaseDir string
}

func NewPathTraversalError(path, baseDir string) *PathTraversalError {
	return &PathTraversalError{Path: path, BaseDir: baseDir}
}

func (e *PathTraversalError) Error() string {
	return fmt.Sprintf("path %q escapes base directory %q", e.Path, e.BaseDir)
}

// VcsCommandError wraps a non-zero exit from a VCS subprocess invocation.
type VcsCommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func NewVcsCommandError(args []string, exitCode int, stderr string) *VcsCommandError {
	return &VcsCommandError{Args: args, ExitCode: exitCode, Stderr: stderr}
}

func (e *VcsCommandError) Error() string {
	return fmt.Sprintf("git %v failed (exit %d): %s", e.Args, e.ExitCode, e.Stderr)
}

// VcsTimeoutError wraps a VCS invocation that exceeded its deadline.
type VcsTimeoutError struct {
	Args    []string
	Timeout time.Duration
}

func NewVcsTimeoutError(args []string, timeout time.Duration) *VcsTimeoutError {
	return &VcsTimeoutError{Args: args, Timeout: timeout}
}

func (e *VcsTimeoutError) Error() string {
	return fmt.Sprintf("git %v timed out after %s", e.Args, e.Timeout)
}

// VcsBinaryMissingError reports that no git binary could be found on PATH.
type VcsBinaryMissingError struct {
	Binary string
}

func NewVcsBinaryMissingError(binary string) *VcsBinaryMissingError {
	return &VcsBinaryMissingError{Binary: binary}
}

func (e *VcsBinaryMissingError) Error() string {
	return fmt.Sprintf("%s is not installed or not on PATH", e.Binary)
}

// VcsContextError is raised at scoped-resource entry (clone/checkout/stash)
// when the scope cannot be safely entered.
type VcsContextError struct {
	Scope      string
	Underlying error
}

func NewVcsContextError(scope string, err error) *VcsContextError {
	return &VcsContextError{Scope: scope, Underlying: err}
}

func (e *VcsContextError) Error() string {
	return fmt.Sprintf("cannot enter %s scope: %v", e.Scope, e.Underlying)
}

func (e *VcsContextError) Unwrap() error { return e.Underlying }

// InvalidRefError is raised before any subprocess is spawned when a commit
// reference fails the whitelist check.
type InvalidRefError struct {
	Ref string
}

func NewInvalidRefError(ref string) *InvalidRefError {
	return &InvalidRefError{Ref: ref}
}

func (e *InvalidRefError) Error() string {
	return fmt.Sprintf("invalid commit reference: %q", e.Ref)
}
