// Package cli orchestrates a scan run: it selects the output mode
// (TUI, progress bar, or plain logs), wires the event hooks, invokes
// the classify engine, and renders the final report.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/starthal/identify/internal/cli/hooks"
	"github.com/starthal/identify/internal/cli/ui"
	"github.com/starthal/identify/pkg/classify"
)

// tuiShutdownGrace gives Bubble Tea time to paint the final frame
// before the program is asked to quit.
const tuiShutdownGrace = 150 * time.Millisecond

// progressBarAdapter adapts *progressbar.ProgressBar to the
// hooks.ProgressBar interface (the library's Describe returns no error).
type progressBarAdapter struct {
	bar *progressbar.ProgressBar
}

func (a *progressBarAdapter) Add(num int) error { return a.bar.Add(num) }

func (a *progressBarAdapter) Describe(description string) error {
	a.bar.Describe(description)
	return nil
}

func (a *progressBarAdapter) Close() error { return a.bar.Close() }

// Run executes a scan with the given validated options, handling
// progress display and final report output. It returns a non-nil
// error when the scan failed fatally.
func Run(ctx context.Context, opts classify.Options, logger *slog.Logger) error {
	interactive := term.IsTerminal(int(os.Stderr.Fd()))
	useTUI := opts.TuiEnabled && interactive && !opts.Verbose

	var report classify.Report
	var scanErr error

	if useTUI {
		model := ui.NewModel(opts.AppVersion)
		program := tea.NewProgram(&model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
		opts.EventHooks = hooks.NewCLIHooks(logger, true, false, program, nil)

		done := make(chan struct{})
		go func() {
			defer close(done)
			report, scanErr = classify.Scan(ctx, opts)
			time.Sleep(tuiShutdownGrace)
			program.Quit()
		}()

		if _, err := program.Run(); err != nil && ctx.Err() == nil {
			logger.Warn("TUI terminated unexpectedly", slog.Any("error", err))
		}
		<-done
	} else {
		var bar hooks.ProgressBar
		if interactive && !opts.Verbose {
			bar = &progressBarAdapter{bar: progressbar.NewOptions(-1,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("Classifying"),
				progressbar.OptionSpinnerType(14),
				progressbar.OptionShowCount(),
				progressbar.OptionSetRenderBlankState(true),
			)}
		}
		opts.EventHooks = hooks.NewCLIHooks(logger, false, opts.Verbose, nil, bar)
		report, scanErr = classify.Scan(ctx, opts)
	}

	if renderErr := RenderReport(os.Stdout, report, opts.OutputFormat); renderErr != nil {
		logger.Error("Failed to render report", slog.Any("error", renderErr))
		if scanErr == nil {
			scanErr = renderErr
		}
	}

	if scanErr != nil {
		logger.Error("Scan finished with fatal error", slog.Any("error", scanErr))
		return scanErr
	}
	logger.Debug("Scan finished",
		slog.Int("classified", report.Summary.ClassifiedCount),
		slog.Int("skipped", report.Summary.SkippedCount),
		slog.Int("errors", report.Summary.ErrorCount),
	)
	return nil
}

// RenderReport writes the final report to w in the requested format.
func RenderReport(w io.Writer, report classify.Report, format classify.OutputFormat) error {
	if format == classify.OutputFormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding JSON report: %w", err)
		}
		return nil
	}
	return renderTextReport(w, report)
}

func renderTextReport(w io.Writer, report classify.Report) error {
	s := report.Summary
	fmt.Fprintf(w, "Scanned %d entries in %.2fs: %d classified, %d skipped, %d errors\n",
		s.TotalScanned, s.DurationSeconds, s.ClassifiedCount, s.SkippedCount, s.ErrorCount)

	printCounts(w, "Types", s.TypeCounts)
	printCounts(w, "Modes", s.ModeCounts)
	printCounts(w, "Encodings", s.EncodingCounts)
	printCounts(w, "Tags", s.TagCounts)

	if len(report.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range report.Errors {
			marker := ""
			if e.IsFatal {
				marker = " (fatal)"
			}
			fmt.Fprintf(w, "  %s: %s%s\n", e.Path, e.Error, marker)
		}
	}
	if s.FatalErrorOccurred {
		fmt.Fprintln(w, "Scan halted due to a fatal error; results are partial.")
	}
	return nil
}

// printCounts renders one facet's tag counts sorted by count
// descending, then tag name for ties.
func printCounts(w io.Writer, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	type entry struct {
		tag   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for tag, count := range counts {
		entries = append(entries, entry{tag, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].tag < entries[j].tag
	})
	fmt.Fprintf(w, "%s:\n", label)
	for _, e := range entries {
		fmt.Fprintf(w, "  %-20s %d\n", e.tag, e.count)
	}
}
