package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on PATH")
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)

	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=Test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=Test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoErrorf(t, err, "git %v: %s", args, out)
	}

	run("init", "-b", "main")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# hello\n"), 0644))
	run("add", "README.md")
	run("commit", "-m", "initial commit")

	return dir
}

func TestGitRecentCommitsAndChangedFiles(t *testing.T) {
	dir := initRepo(t)
	g := New(dir, 10*time.Second)
	ctx := context.Background()

	commits, err := g.RecentCommits(ctx, 10)
	require.NoError(t, err)
	if assert.Len(t, commits, 1) {
		assert.Equal(t, "initial commit", commits[0].Message)
	}

	head, err := g.HeadRef(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, head)

	files, err := g.ChangedFiles(ctx, commits[0].Hash)
	require.NoError(t, err)
	if assert.Len(t, files, 1) {
		assert.Equal(t, "README.md", files[0].Path)
		assert.Equal(t, StatusAdded, files[0].Status)
	}
}

func TestGitFileAtCommitMissing(t *testing.T) {
	dir := initRepo(t)
	g := New(dir, 10*time.Second)
	ctx := context.Background()

	commits, err := g.RecentCommits(ctx, 1)
	require.NoError(t, err)

	_, existed, err := g.FileAtCommit(ctx, commits[0].Hash, "nonexistent.txt")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestGitInvalidRefRejectedBeforeSubprocess(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := New(t.TempDir(), time.Second)
	_, err := g.CommitByRef(context.Background(), "HEAD; echo pwned")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid commit reference")
}

func TestGitHasUncommittedChanges(t *testing.T) {
	dir := initRepo(t)
	g := New(dir, 10*time.Second)
	ctx := context.Background()

	clean, err := g.HasUncommittedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, clean)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# changed\n"), 0644))

	dirty, err := g.HasUncommittedChanges(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestWithStashRoundTrips(t *testing.T) {
	dir := initRepo(t)
	g := New(dir, 10*time.Second)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# changed\n"), 0644))

	var sawClean bool
	err := WithStash(ctx, g, nil, func(hadChanges bool) error {
		assert.True(t, hadChanges)
		dirty, err := g.HasUncommittedChanges(ctx)
		require.NoError(t, err)
		sawClean = !dirty
		return nil
	})
	require.NoError(t, err)
	assert.True(t, sawClean)

	dirtyAfter, err := g.HasUncommittedChanges(ctx)
	require.NoError(t, err)
	assert.True(t, dirtyAfter)
}

func TestWithCheckoutRestoresOriginalRef(t *testing.T) {
	dir := initRepo(t)
	g := New(dir, 10*time.Second)
	ctx := context.Background()

	cmd := exec.Command("git", "checkout", "-b", "feature")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	addCmd := exec.Command("git", "add", "other.txt")
	addCmd.Dir = dir
	require.NoError(t, addCmd.Run())
	commitCmd := exec.Command("git", "commit", "-m", "second")
	commitCmd.Dir = dir
	commitCmd.Env = append(os.Environ(), "GIT_AUTHOR_NAME=Test", "GIT_AUTHOR_EMAIL=test@example.com", "GIT_COMMITTER_NAME=Test", "GIT_COMMITTER_EMAIL=test@example.com")
	require.NoError(t, commitCmd.Run())

	var insideBranch string
	err := WithCheckout(ctx, g, "main", false, nil, func() error {
		b, err := g.CurrentBranch(ctx)
		insideBranch = b
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "main", insideBranch)

	finalBranch, err := g.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "feature", finalBranch)
}
