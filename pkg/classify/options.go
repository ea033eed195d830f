package classify

import (
	"log/slog"
	"time"

	"github.com/starthal/identify/pkg/classify/catalog"
	"github.com/starthal/identify/pkg/classify/language"
)

// ContentSniffer decides whether a file's content looks like text. The
// default implementation inspects the first kilobyte; tests inject mocks
// to verify the classifier never opens files it does not need to.
type ContentSniffer interface {
	FileIsText(path string) (bool, error)
}

// ShebangReader extracts the interpreter command from a script file.
type ShebangReader interface {
	ParseFile(path string) ([]string, error)
}

// GitLister lists the files tracked by the repository enclosing a path,
// as repo-relative slash-separated paths.
type GitLister interface {
	TrackedFiles(repoPath string) (map[string]struct{}, error)
}

// Hooks defines callbacks for status updates during a bulk scan.
// Implementations must be safe for concurrent use: workers invoke
// OnFileStatusUpdate in parallel.
type Hooks interface {
	OnFileDiscovered(path string) error
	OnFileStatusUpdate(path string, status Status, message string, duration time.Duration) error
	OnRunComplete(report Report) error
}

// NoOpHooks is the default do-nothing Hooks implementation.
type NoOpHooks struct{}

// OnFileDiscovered implements Hooks.
func (h *NoOpHooks) OnFileDiscovered(string) error { return nil }

// OnFileStatusUpdate implements Hooks.
func (h *NoOpHooks) OnFileStatusUpdate(string, Status, string, time.Duration) error { return nil }

// OnRunComplete implements Hooks.
func (h *NoOpHooks) OnRunComplete(Report) error { return nil }

// Options configures a Classifier and a Scan run. Zero values select the
// documented defaults; Logger is the only field New requires.
type Options struct {
	// InputPath is the directory a Scan traverses. Single-path
	// classification through Classifier.TagsFromPath ignores it.
	InputPath string `mapstructure:"inputPath"`

	// ConfigFilePath records where configuration was loaded from, for
	// the report. Informational only.
	ConfigFilePath string `mapstructure:"-"`

	// AppVersion is stamped into the report summary.
	AppVersion string `mapstructure:"-"`

	Verbose    bool `mapstructure:"verbose"`
	TuiEnabled bool `mapstructure:"tuiEnabled"`

	// OnErrorMode selects whether a per-file classification error stops
	// the scan or is recorded and skipped.
	OnErrorMode OnErrorMode `mapstructure:"onError"`

	// Concurrency is the scan worker count; 0 means one per CPU.
	Concurrency int `mapstructure:"concurrency"`

	// IgnorePatterns are gitignore-style patterns excluded from scans,
	// aggregated with any .identifyignore file at the input root.
	IgnorePatterns []string `mapstructure:"ignore"`

	// GitTrackedOnly restricts a scan to files tracked in the git
	// repository enclosing InputPath.
	GitTrackedOnly bool `mapstructure:"gitTrackedOnly"`

	// DetectLanguages adds a per-file language column to scan results.
	// The detection result never enters a TagSet.
	DetectLanguages bool `mapstructure:"detectLanguages"`

	// CatalogOverridePath points at a user catalog override document
	// (YAML, TOML, or JSON) merged over the vendored tables.
	CatalogOverridePath string `mapstructure:"catalogOverride"`

	// MaxNixShellLines caps the nix-shell continuation scan; 0 uses the
	// shebang package default.
	MaxNixShellLines int `mapstructure:"maxNixShellLines"`

	OutputFormat OutputFormat `mapstructure:"outputFormat"`

	// Injected dependencies. EventHooks and Logger follow the usual
	// contract: hooks default to NoOpHooks, the logger is required.
	EventHooks       Hooks             `mapstructure:"-"`
	Logger           slog.Handler      `mapstructure:"-"`
	Catalog          *catalog.Catalog  `mapstructure:"-"`
	Sniffer          ContentSniffer    `mapstructure:"-"`
	Shebang          ShebangReader     `mapstructure:"-"`
	LanguageDetector language.Detector `mapstructure:"-"`
	GitLister        GitLister         `mapstructure:"-"`
}
