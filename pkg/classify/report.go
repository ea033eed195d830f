package classify

import (
	"sync"
	"time"
)

// Report summarizes the result of a single Scan run.
type Report struct {
	Summary ReportSummary `json:"summary"`
	Files   []FileResult  `json:"files"`
	Skipped []SkippedInfo `json:"skipped"`
	Errors  []ErrorInfo   `json:"errors"`
}

// ReportSummary contains aggregated statistics for a Scan run.
type ReportSummary struct {
	InputPath          string    `json:"inputPath"`
	ConfigFilePath     string    `json:"configFilePath,omitempty"`
	TotalScanned       int       `json:"totalScanned"`
	ClassifiedCount    int       `json:"classifiedCount"`
	SkippedCount       int       `json:"skippedCount"`
	ErrorCount         int       `json:"errorCount"`
	FatalErrorOccurred bool      `json:"fatalError"`
	DurationSeconds    float64   `json:"durationSeconds"`
	Concurrency        int       `json:"concurrency"`
	Timestamp          time.Time `json:"timestamp"`
	AppVersion         string    `json:"appVersion,omitempty"`
	SchemaVersion      string    `json:"schemaVersion,omitempty"`

	// Frequency tables over the classified entries. TypeCounts,
	// ModeCounts, and EncodingCounts bucket the closed facets;
	// TagCounts covers every tag including catalog ones.
	TypeCounts     map[string]int `json:"typeCounts"`
	ModeCounts     map[string]int `json:"modeCounts"`
	EncodingCounts map[string]int `json:"encodingCounts"`
	TagCounts      map[string]int `json:"tagCounts"`
}

// FileResult details a single successfully classified entry.
type FileResult struct {
	// Path is relative to the scan input, slash-separated.
	Path string `json:"path"`
	// Tags is the sorted classification result.
	Tags []string `json:"tags"`
	// Language is the optional detection result; empty when language
	// detection is disabled or inconclusive.
	Language   string `json:"language,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

// SkippedInfo details an entry that was intentionally not classified.
type SkippedInfo struct {
	Path    string `json:"path"`
	Reason  string `json:"reason"`
	Details string `json:"details,omitempty"`
}

// ErrorInfo details an error encountered while classifying one entry.
type ErrorInfo struct {
	Path    string `json:"path"`
	Error   string `json:"error"`
	IsFatal bool   `json:"isFatal"`
}

// reportAggregator collects worker results during a scan run.
type reportAggregator struct {
	mu      sync.Mutex
	files   []FileResult
	skipped []SkippedInfo
	errors  []ErrorInfo

	typeCounts     map[string]int
	modeCounts     map[string]int
	encodingCounts map[string]int
	tagCounts      map[string]int
}

func newReportAggregator() *reportAggregator {
	return &reportAggregator{
		files:          make([]FileResult, 0, 512),
		skipped:        make([]SkippedInfo, 0, 128),
		errors:         make([]ErrorInfo, 0, 32),
		typeCounts:     make(map[string]int),
		modeCounts:     make(map[string]int),
		encodingCounts: make(map[string]int),
		tagCounts:      make(map[string]int),
	}
}

func (a *reportAggregator) addClassified(res FileResult) {
	a.mu.Lock()
	a.files = append(a.files, res)
	for _, t := range res.Tags {
		a.tagCounts[t]++
		tag := Tag(t)
		switch {
		case TypeTags.Has(tag):
			a.typeCounts[t]++
		case ModeTags.Has(tag):
			a.modeCounts[t]++
		case EncodingTags.Has(tag):
			a.encodingCounts[t]++
		}
	}
	a.mu.Unlock()
}

func (a *reportAggregator) addSkipped(info SkippedInfo) {
	a.mu.Lock()
	a.skipped = append(a.skipped, info)
	a.mu.Unlock()
}

func (a *reportAggregator) addError(info ErrorInfo) {
	a.mu.Lock()
	a.errors = append(a.errors, info)
	a.mu.Unlock()
}

// firstFatalError returns the first recorded error marked fatal, or nil.
func (a *reportAggregator) firstFatalError() *ErrorInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.errors {
		if a.errors[i].IsFatal {
			e := a.errors[i]
			return &e
		}
	}
	return nil
}

// getReport compiles the final Report. Slices and maps are copied so the
// returned report is detached from the aggregator.
func (a *reportAggregator) getReport(opts *Options, startTime time.Time, totalScanned int64, fatalOccurred bool) Report {
	a.mu.Lock()
	files := make([]FileResult, len(a.files))
	copy(files, a.files)
	skipped := make([]SkippedInfo, len(a.skipped))
	copy(skipped, a.skipped)
	errorsList := make([]ErrorInfo, len(a.errors))
	copy(errorsList, a.errors)
	typeCounts := copyCounts(a.typeCounts)
	modeCounts := copyCounts(a.modeCounts)
	encodingCounts := copyCounts(a.encodingCounts)
	tagCounts := copyCounts(a.tagCounts)
	a.mu.Unlock()

	return Report{
		Summary: ReportSummary{
			InputPath:          opts.InputPath,
			ConfigFilePath:     opts.ConfigFilePath,
			TotalScanned:       int(totalScanned),
			ClassifiedCount:    len(files),
			SkippedCount:       len(skipped),
			ErrorCount:         len(errorsList),
			FatalErrorOccurred: fatalOccurred,
			DurationSeconds:    time.Since(startTime).Seconds(),
			Concurrency:        opts.Concurrency,
			Timestamp:          time.Now().UTC(),
			AppVersion:         opts.AppVersion,
			SchemaVersion:      ReportSchemaVersion,
			TypeCounts:         typeCounts,
			ModeCounts:         modeCounts,
			EncodingCounts:     encodingCounts,
			TagCounts:          tagCounts,
		},
		Files:   files,
		Skipped: skipped,
		Errors:  errorsList,
	}
}

func copyCounts(src map[string]int) map[string]int {
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
