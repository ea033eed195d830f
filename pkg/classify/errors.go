package classify

import "errors"

// Exported error variables. These represent the categories of failure that
// TagsFromPath, Scan, and the configuration layer can return. Callers should
// test against them with errors.Is.

var (
	// ErrNotFound indicates that the target path has no directory entry.
	// The existence check never follows a trailing symlink, so a dangling
	// symlink is found (and tagged "symlink"), not reported as missing.
	// Returned wrapped by TagsFromPath and the path-based convenience
	// functions.
	ErrNotFound = errors.New("path does not exist")

	// ErrInvalidTagSet indicates that a classification produced a tag set
	// violating the facet invariants (exactly one type tag; exactly one
	// mode and encoding tag for regular files; neither for anything else).
	// A violation means the catalog data or the classifier logic is broken,
	// so it is surfaced as a hard error rather than returning the
	// defective set.
	ErrInvalidTagSet = errors.New("invalid tag combination")

	// ErrConfigValidation indicates that the provided Options failed the
	// validation checks performed before a scan starts (missing handler,
	// empty input path, negative concurrency, and so on).
	// Returned directly as a fatal error by Scan and NewEngine.
	ErrConfigValidation = errors.New("invalid configuration options provided")

	// ErrScanFailed indicates that a bulk scan run stopped before visiting
	// every eligible path, either because the walk itself failed or because
	// a per-file error occurred while OnErrorMode was "stop".
	// The report returned alongside it still contains everything aggregated
	// up to the stop.
	ErrScanFailed = errors.New("scan run failed")

	// ErrGitOperation indicates a failure while listing tracked files for
	// the GitTrackedOnly filter, such as the input path not being inside a
	// repository. Returned wrapped by Scan when the filter was requested.
	ErrGitOperation = errors.New("git operation failed")
)
