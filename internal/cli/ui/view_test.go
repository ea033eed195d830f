package ui

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/stretchr/testify/assert"

	"github.com/starthal/identify/pkg/classify"
)

// newViewModel creates a sized model in a known state for view tests.
func newViewModel(phase string, items []listItem, summary Summary, fatalErr string) *Model {
	m := NewModel("test")
	m.width = 120
	m.height = 30
	m.phaseMessage = phase
	m.fatalError = fatalErr
	m.initialized = true
	m.summary = summary
	if m.summary.StartTime.IsZero() {
		m.summary.StartTime = time.Now().Add(-10 * time.Second)
	}
	m.fileItems = items
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}
	m.list.SetSize(m.width, m.height-listHeightMargin)
	m.list.SetItems(listItems)
	return &m
}

func TestViewUninitialized(t *testing.T) {
	m := NewModel("test")
	assert.Equal(t, "Initializing...", m.View())
}

func TestViewQuitting(t *testing.T) {
	m := newViewModel("Classifying...", nil, Summary{}, "")
	m.quitting = true
	assert.Equal(t, "Exiting...\n", m.View())
}

func TestViewHeaderAndFooter(t *testing.T) {
	summary := Summary{TotalScanned: 5, ClassifiedCount: 3, SkippedCount: 1, ErrorCount: 1}
	m := newViewModel("Classifying...", nil, summary, "")

	out := m.View()
	assert.Contains(t, out, "identify vtest")
	assert.Contains(t, out, "Classified: 3")
	assert.Contains(t, out, "Skipped: 1")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "Total: 5")
	assert.Contains(t, out, "q: quit")
}

func TestViewFatalError(t *testing.T) {
	m := newViewModel("Complete", nil, Summary{}, "Fatal Error: disk exploded (b.py)")
	assert.Contains(t, m.View(), "disk exploded")
}

func TestListItemDescription(t *testing.T) {
	tests := []struct {
		name string
		item listItem
		want []string
	}{
		{"classified", listItem{path: "a.py", status: classify.StatusClassified, message: "file, text", duration: 3 * time.Millisecond}, []string{"✓", "file, text", "(3ms)"}},
		{"failed", listItem{path: "b.py", status: classify.StatusFailed, message: "boom"}, []string{"✗", "boom"}},
		{"skipped", listItem{path: "vendor", status: classify.StatusSkipped, message: "ignored"}, []string{"S", "ignored"}},
		{"processing", listItem{path: "c.py", status: classify.StatusProcessing}, []string{"…"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := tt.item.Description()
			for _, want := range tt.want {
				assert.Contains(t, desc, want)
			}
		})
	}
}
