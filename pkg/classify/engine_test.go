package classify_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/starthal/identify/internal/testutil"
	"github.com/starthal/identify/pkg/classify"
)

func scanOptions(input string) classify.Options {
	return classify.Options{
		InputPath:   input,
		Logger:      discardLogger(),
		Concurrency: 2,
	}
}

func resultFor(t *testing.T, report classify.Report, path string) classify.FileResult {
	t.Helper()
	for _, f := range report.Files {
		if f.Path == path {
			return f
		}
	}
	t.Fatalf("no result for %q in %v", path, report.Files)
	return classify.FileResult{}
}

func TestNewEngineValidation(t *testing.T) {
	ctx := context.Background()

	_, err := classify.NewEngine(ctx, classify.Options{InputPath: t.TempDir()})
	assert.ErrorIs(t, err, classify.ErrConfigValidation, "missing logger")

	opts := scanOptions("")
	_, err = classify.NewEngine(ctx, opts)
	assert.ErrorIs(t, err, classify.ErrConfigValidation, "empty input path")

	opts = scanOptions(t.TempDir())
	opts.Concurrency = -1
	_, err = classify.NewEngine(ctx, opts)
	assert.ErrorIs(t, err, classify.ErrConfigValidation, "negative concurrency")

	opts = scanOptions(filepath.Join(t.TempDir(), "missing"))
	_, err = classify.NewEngine(ctx, opts)
	assert.ErrorIs(t, err, classify.ErrConfigValidation, "missing input path")

	dir := t.TempDir()
	file := writeFile(t, dir, "plain.txt", []byte("x"), 0o644)
	opts = scanOptions(file)
	_, err = classify.NewEngine(ctx, opts)
	assert.ErrorIs(t, err, classify.ErrConfigValidation, "input path is a file")
}

func TestScanClassifiesTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "script.py", []byte("print('hi')\n"), 0o644)
	writeFile(t, dir, "image.png", []byte{0x89, 0x50, 0x4E, 0x47, 0x00}, 0o644)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(dir, "sub"), "notes.txt", []byte("hello\n"), 0o644)

	report, err := classify.Scan(context.Background(), scanOptions(dir))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Summary.ClassifiedCount)
	assert.Zero(t, report.Summary.SkippedCount)
	assert.Zero(t, report.Summary.ErrorCount)
	assert.False(t, report.Summary.FatalErrorOccurred)
	assert.Equal(t, classify.ReportSchemaVersion, report.Summary.SchemaVersion)

	assert.Contains(t, resultFor(t, report, "script.py").Tags, "python")
	assert.Contains(t, resultFor(t, report, "image.png").Tags, "binary")
	assert.Contains(t, resultFor(t, report, "sub/notes.txt").Tags, "text")

	assert.Equal(t, 3, report.Summary.TypeCounts["file"])
	assert.Equal(t, 2, report.Summary.EncodingCounts["text"])
	assert.Equal(t, 1, report.Summary.EncodingCounts["binary"])
	assert.Equal(t, 1, report.Summary.TagCounts["python"])
}

func TestScanEmptyDirectory(t *testing.T) {
	report, err := classify.Scan(context.Background(), scanOptions(t.TempDir()))
	require.NoError(t, err)
	assert.Zero(t, report.Summary.ClassifiedCount)
	assert.Zero(t, report.Summary.TotalScanned)
	assert.Empty(t, report.Files)
}

func TestScanIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.py", []byte("x = 1\n"), 0o644)
	writeFile(t, dir, "drop.log", []byte("log\n"), 0o644)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor"), 0o755))
	writeFile(t, filepath.Join(dir, "vendor"), "dep.py", []byte("y = 2\n"), 0o644)

	opts := scanOptions(dir)
	opts.IgnorePatterns = []string{"*.log", "vendor/"}

	report, err := classify.Scan(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.ClassifiedCount)
	assert.Equal(t, "keep.py", report.Files[0].Path)

	skippedPaths := make([]string, 0, len(report.Skipped))
	for _, s := range report.Skipped {
		assert.Equal(t, "ignored", s.Reason)
		skippedPaths = append(skippedPaths, s.Path)
	}
	assert.Contains(t, skippedPaths, "drop.log")
	assert.Contains(t, skippedPaths, "vendor")
	// The ignored directory is pruned, so its children never appear.
	assert.NotContains(t, skippedPaths, "vendor/dep.py")
}

func TestScanIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, classify.IgnoreFileName, []byte("# build output\n*.min.js\n"), 0o644)
	writeFile(t, dir, "app.js", []byte("let x = 1\n"), 0o644)
	writeFile(t, dir, "app.min.js", []byte("let x=1\n"), 0o644)

	report, err := classify.Scan(context.Background(), scanOptions(dir))
	require.NoError(t, err)

	paths := make([]string, 0, len(report.Files))
	for _, f := range report.Files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "app.js")
	assert.Contains(t, paths, classify.IgnoreFileName)
	assert.NotContains(t, paths, "app.min.js")
}

func TestScanSymlinkEntries(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", []byte("x\n"), 0o644)
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link")))

	report, err := classify.Scan(context.Background(), scanOptions(dir))
	require.NoError(t, err)

	assert.Equal(t, []string{"symlink"}, resultFor(t, report, "link").Tags)
	assert.Equal(t, 1, report.Summary.TypeCounts["symlink"])
}

func TestScanHookSequence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", []byte("x = 1\n"), 0o644)

	hooks := new(testutil.RecordingHooks)
	opts := scanOptions(dir)
	opts.EventHooks = hooks

	_, err := classify.Scan(context.Background(), opts)
	require.NoError(t, err)

	assert.Contains(t, hooks.Discovered(), "a.py")
	assert.Equal(t, []classify.Status{classify.StatusProcessing, classify.StatusClassified}, hooks.StatusesFor("a.py"))
	require.Len(t, hooks.Reports(), 1)
	assert.Equal(t, 1, hooks.Reports()[0].Summary.ClassifiedCount)
}

func TestScanOnErrorContinue(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.py", []byte("x = 1\n"), 0o644)
	writeFile(t, dir, "bad.data", []byte{0x00, 0x01}, 0o644)

	// .data is not in the catalog, so classification needs the sniffer;
	// make it fail for that file only.
	sniffer := new(testutil.MockSniffer)
	sniffer.On("FileIsText", mock.MatchedBy(func(p string) bool {
		return filepath.Base(p) == "bad.data"
	})).Return(false, errors.New("disk exploded"))

	opts := scanOptions(dir)
	opts.Sniffer = sniffer
	opts.OnErrorMode = classify.OnErrorContinue

	report, err := classify.Scan(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.ClassifiedCount)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "bad.data", report.Errors[0].Path)
	assert.False(t, report.Errors[0].IsFatal)
	assert.False(t, report.Summary.FatalErrorOccurred)
}

func TestScanOnErrorStop(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.data", []byte{0x00, 0x01}, 0o644)

	sniffer := new(testutil.MockSniffer)
	sniffer.On("FileIsText", mock.Anything).Return(false, errors.New("disk exploded"))

	opts := scanOptions(dir)
	opts.Sniffer = sniffer
	opts.OnErrorMode = classify.OnErrorStop

	report, err := classify.Scan(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, classify.ErrScanFailed)
	assert.True(t, report.Summary.FatalErrorOccurred)
	require.NotEmpty(t, report.Errors)
	assert.True(t, report.Errors[0].IsFatal)
}

func TestScanGitTrackedOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tracked.py", []byte("x = 1\n"), 0o644)
	writeFile(t, dir, "untracked.py", []byte("y = 2\n"), 0o644)

	lister := new(testutil.MockGitLister)
	lister.On("TrackedFiles", mock.Anything).Return(map[string]struct{}{"tracked.py": {}}, nil)

	opts := scanOptions(dir)
	opts.GitTrackedOnly = true
	opts.GitLister = lister

	report, err := classify.Scan(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.ClassifiedCount)
	assert.Equal(t, "tracked.py", report.Files[0].Path)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "untracked.py", report.Skipped[0].Path)
	assert.Equal(t, "untracked", report.Skipped[0].Reason)
}

func TestScanGitTrackedOnlyListerError(t *testing.T) {
	lister := new(testutil.MockGitLister)
	lister.On("TrackedFiles", mock.Anything).Return(nil, errors.New("no repo"))

	opts := scanOptions(t.TempDir())
	opts.GitTrackedOnly = true
	opts.GitLister = lister

	_, err := classify.NewEngine(context.Background(), opts)
	assert.ErrorIs(t, err, classify.ErrGitOperation)
}

func TestScanLanguageDetection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", []byte("package main\n\nfunc main() {}\n"), 0o644)
	writeFile(t, dir, "image.png", []byte{0x89, 0x50, 0x4E, 0x47, 0x00}, 0o644)

	opts := scanOptions(dir)
	opts.DetectLanguages = true

	report, err := classify.Scan(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "go", resultFor(t, report, "main.go").Language)
	// Binary entries are not run through the detector.
	assert.Empty(t, resultFor(t, report, "image.png").Language)
}

func TestScanCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", []byte("x = 1\n"), 0o644)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := classify.Scan(ctx, scanOptions(dir))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, report.Summary.FatalErrorOccurred)
}
