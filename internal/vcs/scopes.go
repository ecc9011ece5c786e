package vcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	vcserrors "github.com/jaimade/watch-docs/internal/errors"
)

// CloneOptions configures WithClone.
type CloneOptions struct {
	// Depth is the shallow-clone depth; 0 means a full clone.
	Depth int
	// Branch, if set, is passed to `git clone --branch`.
	Branch string
	// Timeout bounds the clone itself, separate from the backend's
	// per-command timeout used once inside the scope.
	Timeout time.Duration
}

// WithClone clones repoURL into a fresh temp directory, invokes fn with a
// Backend rooted there, and always removes the temp directory on return.
// The clone is shallow only when opts.Depth > 0.
func WithClone(ctx context.Context, repoURL string, opts CloneOptions, fn func(Backend) error) error {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	tempParent, err := os.MkdirTemp("", "watch-docs-clone-")
	if err != nil {
		return vcserrors.NewVcsContextError("clone", err)
	}
	defer os.RemoveAll(tempParent)

	repoPath := filepath.Join(tempParent, "repo")

	args := []string{"clone"}
	if opts.Depth > 0 {
		args = append(args, "--depth", fmt.Sprint(opts.Depth))
	}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	args = append(args, repoURL, repoPath)

	cloner := New(tempParent, timeout)
	if _, err := cloner.Run(ctx, args...); err != nil {
		return vcserrors.NewVcsContextError("clone", err)
	}

	return fn(New(repoPath, 30*time.Second))
}

// WithCheckout checks out commitRef against backend, runs fn, then
// restores the original ref. If discardUncommitted is false and the
// working tree is dirty, it returns without touching the repository. If
// restoring the original ref fails even with --force, the failure is
// reported to warn (never silently swallowed) and the repo is left at
// commitRef.
func WithCheckout(ctx context.Context, backend *Git, commitRef string, discardUncommitted bool, warn func(format string, args ...any), fn func() error) error {
	if !discardUncommitted {
		dirty, err := backend.HasUncommittedChanges(ctx)
		if err != nil {
			return vcserrors.NewVcsContextError("checkout", err)
		}
		if dirty {
			return vcserrors.NewVcsContextError("checkout", fmt.Errorf("repository has uncommitted changes; commit, stash, or pass discardUncommitted"))
		}
	}

	originalRef, err := backend.HeadRef(ctx)
	if err != nil {
		return vcserrors.NewVcsContextError("checkout", err)
	}

	checkoutArgs := []string{"checkout"}
	if discardUncommitted {
		checkoutArgs = append(checkoutArgs, "--force")
	}
	checkoutArgs = append(checkoutArgs, commitRef)
	if _, err := backend.Run(ctx, checkoutArgs...); err != nil {
		return vcserrors.NewVcsContextError("checkout", err)
	}

	fnErr := fn()

	if _, err := backend.Run(ctx, "checkout", originalRef); err != nil {
		if _, err := backend.Run(ctx, "checkout", "--force", originalRef); err != nil {
			if warn != nil {
				warn("failed to restore git state to %s: %v; repository may be in unexpected state", originalRef, err)
			}
		}
	}

	return fnErr
}

// WithStash stashes tracked and untracked changes (if any), runs fn, then
// pops the stash. fn receives whether anything was actually stashed.
func WithStash(ctx context.Context, backend *Git, warn func(format string, args ...any), fn func(hadChanges bool) error) error {
	hadChanges, err := backend.HasUncommittedChanges(ctx)
	if err != nil {
		return vcserrors.NewVcsContextError("stash", err)
	}

	if hadChanges {
		msg := "watch-docs: temporary stash"
		if _, err := backend.Run(ctx, "stash", "push", "--include-untracked", "-m", msg); err != nil {
			return vcserrors.NewVcsContextError("stash", err)
		}
	}

	fnErr := fn(hadChanges)

	if hadChanges {
		if _, err := backend.Run(ctx, "stash", "pop"); err != nil {
			if warn != nil {
				warn("failed to restore stashed changes: %v; changes may still be in stash", err)
			}
		}
	}

	return fnErr
}
