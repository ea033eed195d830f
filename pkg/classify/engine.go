package classify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/starthal/identify/pkg/classify/gitrepo"
	"github.com/starthal/identify/pkg/classify/language"
)

// Scan classifies every eligible entry under opts.InputPath and returns
// the aggregated report. It is the bulk counterpart of
// Classifier.TagsFromPath and the main entry point for the CLI.
func Scan(ctx context.Context, opts Options) (Report, error) {
	engine, err := NewEngine(ctx, opts)
	if err != nil {
		return Report{}, err
	}
	return engine.Run()
}

// Engine orchestrates a scan run: a walker feeding a worker pool whose
// results are folded into a Report.
type Engine struct {
	opts          *Options
	logger        *slog.Logger
	classifier    *Classifier
	detector      language.Detector
	aggregator    *reportAggregator
	ctx           context.Context
	cancelFunc    context.CancelFunc
	concurrency   int
	absInput      string
	tracked       map[string]struct{}
	totalScanned  atomic.Int64
	fatalOccurred atomic.Bool
}

// NewEngine validates options and prepares an Engine. The git tracked-file
// set is resolved up front so listing failures surface before any work.
func NewEngine(ctx context.Context, opts Options) (*Engine, error) {
	if opts.Logger == nil {
		return nil, fmt.Errorf("%w: Logger implementation (slog.Handler) cannot be nil", ErrConfigValidation)
	}
	if opts.EventHooks == nil {
		opts.EventHooks = &NoOpHooks{}
	}
	logger := slog.New(opts.Logger).With(slog.String("component", "engine"))

	if opts.InputPath == "" {
		return nil, fmt.Errorf("%w: input path cannot be empty", ErrConfigValidation)
	}
	if opts.Concurrency < 0 {
		return nil, fmt.Errorf("%w: concurrency cannot be negative", ErrConfigValidation)
	}

	absInput, err := filepath.Abs(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot resolve input path %q: %w", ErrConfigValidation, opts.InputPath, err)
	}
	info, err := os.Stat(absInput)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot access input path %q: %w", ErrConfigValidation, opts.InputPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: input path %q is not a directory", ErrConfigValidation, opts.InputPath)
	}

	classifier, err := New(opts)
	if err != nil {
		return nil, err
	}

	var detector language.Detector
	if opts.DetectLanguages {
		detector = opts.LanguageDetector
		if detector == nil {
			detector = language.NewEnryDetector(nil)
			logger.Debug("LanguageDetector not provided, using default enry detector")
		}
	}

	var tracked map[string]struct{}
	if opts.GitTrackedOnly {
		lister := opts.GitLister
		if lister == nil {
			lister = gitrepo.NewLister(opts.Logger)
		}
		tracked, err = lister.TrackedFiles(absInput)
		if err != nil {
			return nil, fmt.Errorf("%w: listing tracked files: %w", ErrGitOperation, err)
		}
		logger.Debug("Git tracked-file filter active", slog.Int("trackedFiles", len(tracked)))
	}

	concurrency := opts.Concurrency
	if concurrency == 0 {
		concurrency = runtime.NumCPU()
		opts.Concurrency = concurrency
		logger.Debug("Concurrency auto-detected", slog.Int("count", concurrency))
	}

	engineCtx, cancelFunc := context.WithCancel(ctx)
	return &Engine{
		opts:        &opts,
		logger:      logger,
		classifier:  classifier,
		detector:    detector,
		aggregator:  newReportAggregator(),
		ctx:         engineCtx,
		cancelFunc:  cancelFunc,
		concurrency: concurrency,
		absInput:    absInput,
		tracked:     tracked,
	}, nil
}

// Run executes the scan and returns the final report. The report is
// returned even when an error occurred, reflecting the work completed
// before the stop.
func (e *Engine) Run() (Report, error) {
	startTime := time.Now()
	e.logger.Info("Starting scan", slog.String("path", e.absInput), slog.Int("concurrency", e.concurrency))
	var finalErr error

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Panic recovered during scan", "panicValue", r)
			e.fatalOccurred.Store(true)
			if finalErr == nil {
				finalErr = fmt.Errorf("panic during scan: %v", r)
			}
		}
		e.cancelFunc()

		finalReport := e.aggregator.getReport(e.opts, startTime, e.totalScanned.Load(), e.fatalOccurred.Load())
		e.logger.Info("Scan finished",
			slog.Duration("duration", time.Since(startTime)),
			slog.Int("classified", finalReport.Summary.ClassifiedCount),
			slog.Int("skipped", finalReport.Summary.SkippedCount),
			slog.Int("errors", finalReport.Summary.ErrorCount),
			slog.Bool("fatalErrorOccurred", finalReport.Summary.FatalErrorOccurred),
		)
		if hookErr := e.opts.EventHooks.OnRunComplete(finalReport); hookErr != nil {
			e.logger.Warn("OnRunComplete hook returned an error", slog.String("error", hookErr.Error()))
		}
	}()

	workerChan := make(chan string, e.concurrency)
	resultsChan := make(chan interface{}, e.concurrency)
	var wg sync.WaitGroup

	e.startWorkers(&wg, workerChan, resultsChan)

	aggregatorDone := make(chan struct{})
	go e.aggregateResults(resultsChan, aggregatorDone)

	walker, walkInitErr := NewWalker(e.opts, workerChan, resultsChan, e.tracked, e.opts.Logger)
	if walkInitErr != nil {
		e.logger.Error("Failed to initialize walker", slog.String("error", walkInitErr.Error()))
		e.fatalOccurred.Store(true)
		close(workerChan)
		wg.Wait()
		close(resultsChan)
		<-aggregatorDone
		finalErr = fmt.Errorf("%w: %w", ErrScanFailed, walkInitErr)
		return e.aggregator.getReport(e.opts, startTime, 0, true), finalErr
	}

	walkerDone := make(chan error, 1)
	go func() {
		defer close(walkerDone)
		if walkErr := walker.StartWalk(e.ctx); walkErr != nil {
			if !errors.Is(walkErr, context.Canceled) && !errors.Is(walkErr, context.DeadlineExceeded) {
				walkerDone <- walkErr
			}
			if !e.fatalOccurred.Load() {
				e.fatalOccurred.Store(true)
				e.cancelFunc()
			}
		}
	}()

	finalWalkErr := <-walkerDone
	wg.Wait()
	close(resultsChan)
	<-aggregatorDone

	if ctxErr := e.ctx.Err(); ctxErr != nil && e.aggregator.firstFatalError() == nil && finalWalkErr == nil {
		e.fatalOccurred.Store(true)
		finalErr = ctxErr
	} else if finalWalkErr != nil {
		finalErr = fmt.Errorf("%w: %w", ErrScanFailed, finalWalkErr)
	} else if fatal := e.aggregator.firstFatalError(); fatal != nil {
		finalErr = fmt.Errorf("%w: %s: %s", ErrScanFailed, fatal.Path, fatal.Error)
	}

	return e.aggregator.getReport(e.opts, startTime, e.totalScanned.Load(), e.fatalOccurred.Load()), finalErr
}

func (e *Engine) startWorkers(wg *sync.WaitGroup, workerChan <-chan string, resultsChan chan<- interface{}) {
	e.logger.Debug("Starting worker pool", slog.Int("count", e.concurrency))
	for i := 0; i < e.concurrency; i++ {
		wg.Add(1)
		go e.classifyWorker(wg, i, workerChan, resultsChan)
	}
}

// classifyWorker pulls paths off the worker channel and classifies them
// until the channel closes or the run is cancelled.
func (e *Engine) classifyWorker(wg *sync.WaitGroup, workerID int, workerChan <-chan string, resultsChan chan<- interface{}) {
	wLogger := e.logger.With(slog.Int("workerID", workerID))
	defer func() {
		if r := recover(); r != nil {
			wLogger.Error("Panic recovered in worker", "panicValue", r)
			resultsChan <- ErrorInfo{Path: "unknown (panic)", Error: fmt.Sprintf("panic: %v", r), IsFatal: true}
			if !e.fatalOccurred.Load() {
				e.fatalOccurred.Store(true)
				e.cancelFunc()
			}
		}
		wg.Done()
	}()

	for {
		select {
		case path, ok := <-workerChan:
			if !ok {
				return
			}
			e.classifyOne(wLogger, path, resultsChan)
		case <-e.ctx.Done():
			return
		}
	}
}

func (e *Engine) classifyOne(wLogger *slog.Logger, path string, resultsChan chan<- interface{}) {
	rel, err := filepath.Rel(e.absInput, path)
	if err != nil || rel == "." {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)

	hooks := e.opts.EventHooks
	if hookErr := hooks.OnFileStatusUpdate(rel, StatusProcessing, "", 0); hookErr != nil {
		wLogger.Warn("OnFileStatusUpdate hook failed", slog.String("path", rel), slog.String("error", hookErr.Error()))
	}

	start := time.Now()
	tags, err := e.classifier.TagsFromPath(path)
	duration := time.Since(start)

	if err != nil {
		isFatal := e.opts.OnErrorMode == OnErrorStop
		wLogger.Debug("Classification failed", slog.String("path", rel), slog.String("error", err.Error()))
		resultsChan <- ErrorInfo{Path: rel, Error: err.Error(), IsFatal: isFatal}
		if hookErr := hooks.OnFileStatusUpdate(rel, StatusFailed, err.Error(), duration); hookErr != nil {
			wLogger.Warn("OnFileStatusUpdate hook failed", slog.String("path", rel), slog.String("error", hookErr.Error()))
		}
		if isFatal && !e.fatalOccurred.Load() {
			wLogger.Info("Stopping scan on first error", slog.String("path", rel))
			e.fatalOccurred.Store(true)
			e.cancelFunc()
		}
		return
	}

	result := FileResult{Path: rel, Tags: tags.Slice(), DurationMs: duration.Milliseconds()}
	if e.detector != nil && tags.Has(TagText) {
		result.Language = e.detectLanguage(wLogger, path, rel)
	}

	resultsChan <- result
	if hookErr := hooks.OnFileStatusUpdate(rel, StatusClassified, tags.String(), duration); hookErr != nil {
		wLogger.Warn("OnFileStatusUpdate hook failed", slog.String("path", rel), slog.String("error", hookErr.Error()))
	}
}

// detectLanguage reads a bounded prefix of the file and runs the optional
// language detector. Failures degrade to an empty result.
func (e *Engine) detectLanguage(wLogger *slog.Logger, path, rel string) string {
	f, err := os.Open(path)
	if err != nil {
		wLogger.Debug("Cannot open file for language detection", slog.String("path", rel), slog.String("error", err.Error()))
		return ""
	}
	defer f.Close()

	buf := make([]byte, languageSniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		wLogger.Debug("Cannot read file for language detection", slog.String("path", rel), slog.String("error", err.Error()))
		return ""
	}

	lang, _, err := e.detector.Detect(buf[:n], rel)
	if err != nil {
		wLogger.Debug("Language detection failed", slog.String("path", rel), slog.String("error", err.Error()))
		return ""
	}
	if lang == "unknown" {
		return ""
	}
	return lang
}

// aggregateResults folds worker and walker results into the aggregator.
func (e *Engine) aggregateResults(resultsChan <-chan interface{}, done chan<- struct{}) {
	defer close(done)
	scanCount := int64(0)
	for result := range resultsChan {
		scanCount++
		switch r := result.(type) {
		case FileResult:
			e.aggregator.addClassified(r)
		case SkippedInfo:
			e.aggregator.addSkipped(r)
		case ErrorInfo:
			e.aggregator.addError(r)
		default:
			e.logger.Warn("Aggregator received unknown result type", "type", fmt.Sprintf("%T", result))
		}
	}
	e.totalScanned.Store(scanCount)
}
