// Package vcs wraps git as a subprocess to read commit metadata, diffs, and
// file content at arbitrary refs, per spec section 5.
package vcs

import "time"

// ChangeStatus classifies how a file changed in a commit.
type ChangeStatus string

const (
	StatusAdded       ChangeStatus = "added"
	StatusModified    ChangeStatus = "modified"
	StatusDeleted     ChangeStatus = "deleted"
	StatusRenamed     ChangeStatus = "renamed"
	StatusCopied      ChangeStatus = "copied"
	StatusTypeChanged ChangeStatus = "type_changed"
	StatusUnknown     ChangeStatus = "unknown"
)

var statusMap = map[byte]ChangeStatus{
	'A': StatusAdded,
	'M': StatusModified,
	'D': StatusDeleted,
	'R': StatusRenamed,
	'C': StatusCopied,
	'T': StatusTypeChanged,
}

// Commit is a single commit's metadata.
type Commit struct {
	Hash    string
	Author  string
	Date    time.Time
	Message string
}

// ChangedFile describes one file touched by a commit.
type ChangedFile struct {
	Path      string
	OldPath   string
	Status    ChangeStatus
	Additions int
	Deletions int
}
