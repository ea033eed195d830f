package gitrepo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) (string, *git.Worktree) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return dir, wt
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestTrackedFiles(t *testing.T) {
	dir, wt := initRepo(t)
	writeFile(t, dir, "a.txt", "a")
	writeFile(t, dir, "sub/b.txt", "b")
	writeFile(t, dir, "untracked.txt", "u")

	_, err := wt.Add("a.txt")
	require.NoError(t, err)
	_, err = wt.Add("sub/b.txt")
	require.NoError(t, err)

	tracked, err := NewLister(nil).TrackedFiles(dir)
	require.NoError(t, err)

	assert.Contains(t, tracked, "a.txt")
	assert.Contains(t, tracked, "sub/b.txt")
	assert.NotContains(t, tracked, "untracked.txt")
}

func TestTrackedFilesSubdirectory(t *testing.T) {
	dir, wt := initRepo(t)
	writeFile(t, dir, "top.txt", "t")
	writeFile(t, dir, "sub/b.txt", "b")

	_, err := wt.Add("top.txt")
	require.NoError(t, err)
	_, err = wt.Add("sub/b.txt")
	require.NoError(t, err)

	// Keys are relative to the queried path; entries outside it drop out.
	tracked, err := NewLister(nil).TrackedFiles(filepath.Join(dir, "sub"))
	require.NoError(t, err)
	assert.Contains(t, tracked, "b.txt")
	assert.NotContains(t, tracked, "top.txt")
	assert.NotContains(t, tracked, "../top.txt")
}

func TestTrackedFilesNoRepository(t *testing.T) {
	_, err := NewLister(nil).TrackedFiles(t.TempDir())
	assert.ErrorIs(t, err, ErrNoRepository)
}
