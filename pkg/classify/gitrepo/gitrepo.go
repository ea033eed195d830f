// Package gitrepo lists git-tracked files for the scan engine's
// tracked-only filter, using go-git so no git binary is required.
package gitrepo

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ErrNoRepository indicates no git repository encloses the given path.
var ErrNoRepository = errors.New("gitrepo: no repository found")

// Lister resolves the set of tracked files for a path inside a git
// worktree.
type Lister struct {
	logger *slog.Logger
}

// NewLister builds a Lister. A nil handler falls back to stderr logging.
func NewLister(loggerHandler slog.Handler) *Lister {
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(loggerHandler).With(slog.String("component", "gitLister"))
	return &Lister{logger: logger}
}

// TrackedFiles returns the index entries of the repository enclosing
// path, keyed by slash-separated path relative to path itself. Entries
// outside path are dropped, so scanning a subdirectory of a worktree
// yields keys the walker can match directly.
func (l *Lister) TrackedFiles(path string) (map[string]struct{}, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", path, err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: at or above %q", ErrNoRepository, absPath)
		}
		return nil, fmt.Errorf("open repository at %q: %w", absPath, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}
	root := worktree.Filesystem.Root()

	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	tracked := make(map[string]struct{}, len(idx.Entries))
	for _, entry := range idx.Entries {
		abs := filepath.Join(root, filepath.FromSlash(entry.Name))
		rel, err := filepath.Rel(absPath, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		tracked[filepath.ToSlash(rel)] = struct{}{}
	}
	l.logger.Debug("Tracked files resolved", slog.String("root", root), slog.Int("count", len(tracked)))
	return tracked, nil
}
