package classify

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName is the per-tree ignore file read from the scan root.
const IgnoreFileName = ".identifyignore"

// Walker traverses the input directory, applies ignore rules and the
// optional git-tracked filter, and dispatches eligible entry paths to
// the worker pool. Directories are descended into but not dispatched;
// files, symlinks, and other non-directory entries are classified.
type Walker struct {
	opts        *Options
	workerChan  chan<- string
	resultsChan chan<- interface{}
	hooks       Hooks
	logger      *slog.Logger
	ignorer     *ignore.GitIgnore
	tracked     map[string]struct{}
	absInput    string
}

// NewWalker builds a Walker. Ignore patterns come from Options plus the
// .identifyignore file at the scan root, compiled with gitignore
// semantics. tracked may be nil when the git filter is off.
func NewWalker(opts *Options, workerChan chan<- string, resultsChan chan<- interface{}, tracked map[string]struct{}, loggerHandler slog.Handler) (*Walker, error) {
	logger := slog.New(loggerHandler).With(slog.String("component", "walker"))

	absInput, err := filepath.Abs(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("resolve input path: %w", err)
	}

	ignorer, err := compileIgnorer(absInput, opts.IgnorePatterns)
	if err != nil {
		return nil, err
	}
	logger.Debug("Ignore rules compiled", slog.Int("configPatterns", len(opts.IgnorePatterns)))

	return &Walker{
		opts:        opts,
		workerChan:  workerChan,
		resultsChan: resultsChan,
		hooks:       opts.EventHooks,
		logger:      logger,
		ignorer:     ignorer,
		tracked:     tracked,
		absInput:    absInput,
	}, nil
}

func compileIgnorer(absInput string, patterns []string) (*ignore.GitIgnore, error) {
	ignoreFile := filepath.Join(absInput, IgnoreFileName)
	if _, err := os.Stat(ignoreFile); err == nil {
		ignorer, err := ignore.CompileIgnoreFileAndLines(ignoreFile, patterns...)
		if err != nil {
			return nil, fmt.Errorf("load ignore file %s: %w", ignoreFile, err)
		}
		return ignorer, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("check ignore file %s: %w", ignoreFile, err)
	}
	return ignore.CompileIgnoreLines(patterns...), nil
}

// StartWalk runs the traversal and closes the worker channel when done.
func (w *Walker) StartWalk(ctx context.Context) error {
	w.logger.Info("Starting directory walk", slog.String("path", w.absInput))
	walkErr := filepath.WalkDir(w.absInput, w.walkFunc(ctx))
	close(w.workerChan)
	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			w.logger.Info("Directory walk cancelled", slog.String("reason", walkErr.Error()))
			return walkErr
		}
		w.logger.Error("Directory walk failed", slog.String("error", walkErr.Error()))
		return fmt.Errorf("directory walk failed: %w", walkErr)
	}
	w.logger.Debug("Directory walk completed")
	return nil
}

func (w *Walker) walkFunc(ctx context.Context) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == w.absInput {
				return fmt.Errorf("cannot read input directory %q: %w", path, err)
			}
			w.logger.Warn("Error accessing path during walk", slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := filepath.Rel(w.absInput, path)
		if err != nil {
			w.logger.Warn("Could not compute relative path", slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if hookErr := w.hooks.OnFileDiscovered(rel); hookErr != nil {
			w.logger.Warn("OnFileDiscovered hook failed", slog.String("path", rel), slog.String("error", hookErr.Error()))
		}

		isDir := d.IsDir()
		if w.matchesIgnore(rel, isDir) {
			w.recordSkip(rel, "ignored", "matched ignore pattern")
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}
		if isDir {
			return nil
		}

		if w.tracked != nil {
			if _, ok := w.tracked[rel]; !ok {
				w.recordSkip(rel, "untracked", "not tracked by git")
				return nil
			}
		}

		select {
		case w.workerChan <- path:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	}
}

func (w *Walker) matchesIgnore(rel string, isDir bool) bool {
	if w.ignorer.MatchesPath(rel) {
		return true
	}
	// Directory-only patterns ("build/") need the trailing separator.
	return isDir && w.ignorer.MatchesPath(rel+"/")
}

func (w *Walker) recordSkip(rel, reason, details string) {
	w.logger.Debug("Skipping path", slog.String("path", rel), slog.String("reason", reason))
	w.resultsChan <- SkippedInfo{Path: rel, Reason: reason, Details: details}
	if hookErr := w.hooks.OnFileStatusUpdate(rel, StatusSkipped, reason, 0); hookErr != nil {
		w.logger.Warn("OnFileStatusUpdate hook failed", slog.String("path", rel), slog.String("error", hookErr.Error()))
	}
}
