// Package hooks bridges classify library events to the CLI's output
// layer: the TUI, the progress bar, or plain structured logging.
package hooks

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starthal/identify/pkg/classify"
)

// --- TUI message structs ---

// FileDiscoveredMsg signals that the walker found an entry.
type FileDiscoveredMsg struct{ Path string }

// FileStatusUpdateMsg signals a change in an entry's scan status.
type FileStatusUpdateMsg struct {
	Path     string
	Status   classify.Status
	Message  string
	Duration time.Duration
}

// RunCompleteMsg signals the completion of the entire scan run.
type RunCompleteMsg struct{ Report classify.Report }

// TUIProgram is the interface needed to feed the Bubble Tea program.
// The signature matches (*tea.Program).Send so a program satisfies it
// directly.
type TUIProgram interface {
	Send(msg tea.Msg)
}

// ProgressBar is the interface needed to drive the progress bar.
type ProgressBar interface {
	Add(num int) error
	Describe(description string) error
	Close() error
}

// NoOpTUIProgram is the null TUIProgram.
type NoOpTUIProgram struct{}

// Send implements TUIProgram.
func (n *NoOpTUIProgram) Send(msg tea.Msg) {}

// NoOpProgressBar is the null ProgressBar.
type NoOpProgressBar struct{}

// Add implements ProgressBar.
func (n *NoOpProgressBar) Add(num int) error { return nil }

// Describe implements ProgressBar.
func (n *NoOpProgressBar) Describe(description string) error { return nil }

// Close implements ProgressBar.
func (n *NoOpProgressBar) Close() error { return nil }

// CLIHooks implements classify.Hooks, routing library events to the
// active output mode: TUI messages, verbose logs, or progress ticks.
type CLIHooks struct {
	logger         *slog.Logger
	tuiEnabled     bool
	verboseEnabled bool
	tuiProgram     TUIProgram
	progressBar    ProgressBar
	hasProgressBar bool
	mu             sync.Mutex
}

// NewCLIHooks builds a CLIHooks. Pass nil for tuiProgram or progressBar
// when not applicable; NoOp versions are substituted.
func NewCLIHooks(logger *slog.Logger, tuiEnabled, verboseEnabled bool, tuiProg TUIProgram, progBar ProgressBar) classify.Hooks {
	hasBar := progBar != nil
	if tuiProg == nil {
		tuiProg = &NoOpTUIProgram{}
	}
	if progBar == nil {
		progBar = &NoOpProgressBar{}
	}
	return &CLIHooks{
		logger:         logger,
		tuiEnabled:     tuiEnabled,
		verboseEnabled: verboseEnabled,
		tuiProgram:     tuiProg,
		progressBar:    progBar,
		hasProgressBar: hasBar,
	}
}

// OnFileDiscovered handles walker discovery events.
func (h *CLIHooks) OnFileDiscovered(path string) error {
	if h.tuiEnabled {
		h.tuiProgram.Send(FileDiscoveredMsg{Path: path})
	} else if h.verboseEnabled {
		h.logger.Debug("Entry discovered", "path", path)
	}
	return nil
}

// OnFileStatusUpdate handles per-entry status changes. Must be
// thread-safe: scan workers call it concurrently.
func (h *CLIHooks) OnFileStatusUpdate(path string, status classify.Status, message string, duration time.Duration) error {
	if h.tuiEnabled {
		h.tuiProgram.Send(FileStatusUpdateMsg{
			Path:     path,
			Status:   status,
			Message:  message,
			Duration: duration,
		})
		return nil
	}

	if h.verboseEnabled {
		logLevel := slog.LevelDebug
		logMsg := "Entry status updated"
		attrs := []any{
			slog.String("path", path),
			slog.String("status", string(status)),
		}
		if duration > 0 {
			attrs = append(attrs, slog.Duration("duration", duration))
		}
		if message != "" {
			logKey := "message"
			if status == classify.StatusFailed {
				logKey = "error"
			}
			attrs = append(attrs, slog.String(logKey, message))
		}
		switch status {
		case classify.StatusClassified, classify.StatusSkipped:
			logLevel = slog.LevelInfo
		case classify.StatusFailed:
			logLevel = slog.LevelError
			logMsg = "Entry classification failed"
		}
		h.logger.Log(nil, logLevel, logMsg, attrs...)
		return nil
	}

	if h.hasProgressBar {
		h.mu.Lock()
		defer h.mu.Unlock()
		if isFinalStatus(status) {
			_ = h.progressBar.Add(1)
		}
		if status == classify.StatusFailed {
			h.logger.Error("Entry classification failed", "path", path, "error", message)
		}
		return nil
	}

	// Plain log mode: surface errors only.
	if status == classify.StatusFailed {
		h.logger.Error("Entry classification failed", "path", path, "error", message)
	}
	return nil
}

// OnRunComplete forwards the final report to the TUI or finalizes the
// progress bar. Report rendering itself happens in the cli package.
func (h *CLIHooks) OnRunComplete(report classify.Report) error {
	if h.tuiEnabled {
		h.tuiProgram.Send(RunCompleteMsg{Report: report})
		return nil
	}
	if h.hasProgressBar {
		h.mu.Lock()
		_ = h.progressBar.Close()
		h.mu.Unlock()
		// Newline so the shell prompt does not overlap the bar.
		_, _ = fmt.Fprintf(os.Stderr, "\n")
	}
	return nil
}

func isFinalStatus(status classify.Status) bool {
	return status == classify.StatusClassified ||
		status == classify.StatusFailed ||
		status == classify.StatusSkipped
}
