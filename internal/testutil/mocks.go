// Package testutil provides mock implementations for the interfaces
// defined in pkg/classify and its subpackages, plus small helpers shared
// across test suites.
package testutil

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/starthal/identify/pkg/classify"
)

// MockSniffer mocks classify.ContentSniffer. Configure expectations with
// testify/mock methods, e.g. .On("FileIsText", path).Return(true, nil).
type MockSniffer struct {
	mock.Mock
}

// FileIsText mocks the FileIsText method.
func (m *MockSniffer) FileIsText(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

// MockShebangReader mocks classify.ShebangReader.
type MockShebangReader struct {
	mock.Mock
}

// ParseFile mocks the ParseFile method.
func (m *MockShebangReader) ParseFile(path string) ([]string, error) {
	args := m.Called(path)
	cmd, _ := args.Get(0).([]string)
	return cmd, args.Error(1)
}

// MockLanguageDetector mocks language.Detector.
type MockLanguageDetector struct {
	mock.Mock
}

// Detect mocks the Detect method.
func (m *MockLanguageDetector) Detect(content []byte, path string) (string, float64, error) {
	args := m.Called(content, path)
	lang, _ := args.Get(0).(string)
	confidence, _ := args.Get(1).(float64)
	return lang, confidence, args.Error(2)
}

// MockGitLister mocks classify.GitLister.
type MockGitLister struct {
	mock.Mock
}

// TrackedFiles mocks the TrackedFiles method.
func (m *MockGitLister) TrackedFiles(repoPath string) (map[string]struct{}, error) {
	args := m.Called(repoPath)
	tracked, _ := args.Get(0).(map[string]struct{})
	return tracked, args.Error(1)
}

// MockHooks mocks classify.Hooks for expectation-style tests. For tests
// that only need to observe the event stream, prefer RecordingHooks.
type MockHooks struct {
	mock.Mock
}

// OnFileDiscovered mocks the OnFileDiscovered method.
func (m *MockHooks) OnFileDiscovered(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// OnFileStatusUpdate mocks the OnFileStatusUpdate method.
func (m *MockHooks) OnFileStatusUpdate(path string, status classify.Status, message string, duration time.Duration) error {
	args := m.Called(path, status, message, duration)
	return args.Error(0)
}

// OnRunComplete mocks the OnRunComplete method.
func (m *MockHooks) OnRunComplete(report classify.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

// StatusEvent is one recorded OnFileStatusUpdate call.
type StatusEvent struct {
	Path    string
	Status  classify.Status
	Message string
}

// RecordingHooks is a thread-safe classify.Hooks that records every event
// for later assertions.
type RecordingHooks struct {
	mu         sync.Mutex
	discovered []string
	statuses   []StatusEvent
	reports    []classify.Report
}

// OnFileDiscovered implements classify.Hooks.
func (h *RecordingHooks) OnFileDiscovered(path string) error {
	h.mu.Lock()
	h.discovered = append(h.discovered, path)
	h.mu.Unlock()
	return nil
}

// OnFileStatusUpdate implements classify.Hooks.
func (h *RecordingHooks) OnFileStatusUpdate(path string, status classify.Status, message string, _ time.Duration) error {
	h.mu.Lock()
	h.statuses = append(h.statuses, StatusEvent{Path: path, Status: status, Message: message})
	h.mu.Unlock()
	return nil
}

// OnRunComplete implements classify.Hooks.
func (h *RecordingHooks) OnRunComplete(report classify.Report) error {
	h.mu.Lock()
	h.reports = append(h.reports, report)
	h.mu.Unlock()
	return nil
}

// Discovered returns a copy of the recorded discovery paths.
func (h *RecordingHooks) Discovered() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.discovered))
	copy(out, h.discovered)
	return out
}

// Statuses returns a copy of the recorded status events.
func (h *RecordingHooks) Statuses() []StatusEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]StatusEvent, len(h.statuses))
	copy(out, h.statuses)
	return out
}

// StatusesFor returns the recorded status values for one path, in order.
func (h *RecordingHooks) StatusesFor(path string) []classify.Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []classify.Status
	for _, ev := range h.statuses {
		if ev.Path == path {
			out = append(out, ev.Status)
		}
	}
	return out
}

// Reports returns a copy of the recorded run-complete reports.
func (h *RecordingHooks) Reports() []classify.Report {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]classify.Report, len(h.reports))
	copy(out, h.reports)
	return out
}
