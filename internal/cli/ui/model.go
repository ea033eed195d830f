// Package ui implements the interactive terminal UI for scan runs,
// built on Bubble Tea.
package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/starthal/identify/internal/cli/hooks"
	"github.com/starthal/identify/pkg/classify"
)

const listHeightMargin = 4 // header + footer + padding

// Model represents the state of the TUI application: the scrollable
// entry list, the spinner, layout dimensions, and aggregated counts.
type Model struct {
	list    list.Model
	spinner spinner.Model
	width   int
	height  int
	// initialized tracks if the model has received initial dimensions.
	initialized bool
	// fileItems holds the data for each list entry. Access MUST be
	// protected by listLock; hook messages arrive concurrently.
	fileItems []listItem
	summary   Summary
	// phaseMessage displays the overall stage (Scanning, Classifying...).
	phaseMessage string
	fatalError   string
	quitting     bool
	version      string
	// processTime maps paths to processing start times for durations.
	processTime map[string]time.Time
	// itemMap maps paths to fileItems indices. Protected by listLock.
	itemMap       map[string]int
	listLock      sync.Mutex
	debounceTimer *time.Timer
}

// listItem represents a single entry in the TUI list.
type listItem struct {
	path     string
	status   classify.Status
	message  string
	duration time.Duration
}

// Summary holds the aggregated statistics shown in the footer.
type Summary struct {
	TotalScanned    int
	ClassifiedCount int
	SkippedCount    int
	ErrorCount      int
	StartTime       time.Time
}

// NewModel creates the initial TUI model.
func NewModel(version string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorStatusProcessing)

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	delegate.ShowDescription = true
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorSelectedFg).
		Background(ColorSelectedBg).
		Bold(true).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorSelectedDescFg).
		Background(ColorSelectedBg).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.
		Foreground(ColorNormalFg).Padding(0, 0, 0, 1)
	delegate.Styles.NormalDesc = delegate.Styles.NormalDesc.
		Foreground(ColorNormalDescFg).Padding(0, 0, 0, 1)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return Model{
		list:         l,
		spinner:      s,
		summary:      Summary{StartTime: time.Now()},
		phaseMessage: "Initializing...",
		version:      version,
		fileItems:    make([]listItem, 0, 1000),
		itemMap:      make(map[string]int),
		processTime:  make(map[string]time.Time),
	}
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles user input and hook messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var listCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := m.height - listHeightMargin
		if listHeight < 1 {
			listHeight = 1
		}
		m.list.SetSize(m.width, listHeight)
		m.initialized = true

	case tea.KeyMsg:
		if m.quitting {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
		m.list, listCmd = m.list.Update(msg)
		cmds = append(cmds, listCmd)

	case spinner.TickMsg:
		if m.quitting {
			return m, nil
		}
		var spinnerCmd tea.Cmd
		m.spinner, spinnerCmd = m.spinner.Update(msg)
		cmds = append(cmds, spinnerCmd)

	case hooks.FileDiscoveredMsg:
		m.listLock.Lock()
		if _, exists := m.itemMap[msg.Path]; !exists {
			m.fileItems = append(m.fileItems, listItem{path: msg.Path, status: classify.StatusPending})
			m.itemMap[msg.Path] = len(m.fileItems) - 1
			m.summary.TotalScanned++
			cmds = append(cmds, m.debounceListUpdate())
		}
		m.listLock.Unlock()
		if !m.quitting && (m.phaseMessage == "" || m.phaseMessage == "Initializing...") {
			m.phaseMessage = "Scanning..."
		}

	case hooks.FileStatusUpdateMsg:
		m.listLock.Lock()
		if idx, ok := m.itemMap[msg.Path]; ok && idx < len(m.fileItems) {
			currentItem := &m.fileItems[idx]

			if isFinalStatus(msg.Status) && currentItem.status == classify.StatusProcessing {
				if startTime, found := m.processTime[msg.Path]; found {
					currentItem.duration = time.Since(startTime)
					delete(m.processTime, msg.Path)
				}
			} else if msg.Status == classify.StatusProcessing {
				m.processTime[msg.Path] = time.Now()
				currentItem.duration = 0
			}

			oldFinal := isFinalStatus(currentItem.status)
			newFinal := isFinalStatus(msg.Status)
			if newFinal && !oldFinal {
				m.incrementSummaryCount(msg.Status)
			} else if !newFinal && oldFinal {
				m.decrementSummaryCount(currentItem.status)
			}

			currentItem.status = msg.Status
			currentItem.message = msg.Message
			cmds = append(cmds, m.debounceListUpdate())
		} else {
			// Status for an entry we never saw discovered; add it anyway.
			m.fileItems = append(m.fileItems, listItem{path: msg.Path, status: msg.Status, message: msg.Message, duration: msg.Duration})
			m.itemMap[msg.Path] = len(m.fileItems) - 1
			m.summary.TotalScanned++
			if isFinalStatus(msg.Status) {
				m.incrementSummaryCount(msg.Status)
			}
			cmds = append(cmds, m.debounceListUpdate())
		}
		m.listLock.Unlock()

		if !m.quitting && m.phaseMessage != "Classifying..." && msg.Status == classify.StatusProcessing {
			m.phaseMessage = "Classifying..."
		}

	case hooks.RunCompleteMsg:
		m.phaseMessage = "Complete"
		m.summary.TotalScanned = msg.Report.Summary.TotalScanned
		m.summary.ClassifiedCount = msg.Report.Summary.ClassifiedCount
		m.summary.SkippedCount = msg.Report.Summary.SkippedCount
		m.summary.ErrorCount = msg.Report.Summary.ErrorCount
		if msg.Report.Summary.FatalErrorOccurred {
			m.fatalError = "Scan halted due to fatal error."
			for _, e := range msg.Report.Errors {
				if e.IsFatal {
					m.fatalError = fmt.Sprintf("Fatal Error: %s (%s)", e.Error, e.Path)
					break
				}
			}
		}

	case UpdateListMsg:
		m.listLock.Lock()
		items := make([]list.Item, len(m.fileItems))
		for i, item := range m.fileItems {
			items[i] = item
		}
		m.listLock.Unlock()
		cmds = append(cmds, m.list.SetItems(items))
	}

	if listCmd != nil {
		cmds = append(cmds, listCmd)
	}
	return m, tea.Batch(cmds...)
}

// View renders the current state.
func (m *Model) View() string {
	if m.quitting {
		return "Exiting...\n"
	}
	if !m.initialized {
		return "Initializing..."
	}

	headerLeft := fmt.Sprintf("identify v%s", m.version)
	headerRight := m.phaseMessage
	if m.phaseMessage != "Complete" && m.phaseMessage != "Initializing..." {
		headerRight = m.spinner.View() + " " + m.phaseMessage
	}
	headerCenter := ""
	headerWidth := m.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerWidth > 0 {
		headerCenter = lipgloss.PlaceHorizontal(headerWidth, lipgloss.Center, " ")
	}
	header := HeaderStyle.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, headerLeft, headerCenter, headerRight))

	elapsed := time.Since(m.summary.StartTime).Round(time.Millisecond)
	footerLeft := fmt.Sprintf(
		"Classified: %d | Skipped: %d | Failed: %d | Total: %d | Elapsed: %s",
		m.summary.ClassifiedCount,
		m.summary.SkippedCount,
		m.summary.ErrorCount,
		m.summary.TotalScanned,
		elapsed,
	)
	footerRight := "q: quit"
	footerCenter := ""
	footerWidth := m.width - lipgloss.Width(footerLeft) - lipgloss.Width(footerRight)
	if footerWidth > 0 {
		footerCenter = lipgloss.PlaceHorizontal(footerWidth, lipgloss.Center, " ")
	}
	footer := FooterStyle.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, footerLeft, footerCenter, footerRight))

	errorView := ""
	if m.fatalError != "" {
		errorView = StatusStyleFailed.Render(m.fatalError) + "\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.list.View(),
		errorView,
		footer,
	)
}

func isFinalStatus(status classify.Status) bool {
	return status == classify.StatusClassified ||
		status == classify.StatusFailed ||
		status == classify.StatusSkipped
}

// incrementSummaryCount updates counts for a new final status.
// MUST be called with listLock held.
func (m *Model) incrementSummaryCount(status classify.Status) {
	switch status {
	case classify.StatusClassified:
		m.summary.ClassifiedCount++
	case classify.StatusSkipped:
		m.summary.SkippedCount++
	case classify.StatusFailed:
		m.summary.ErrorCount++
	}
}

// decrementSummaryCount reverses counts if a status leaves a final state.
// MUST be called with listLock held.
func (m *Model) decrementSummaryCount(status classify.Status) {
	switch status {
	case classify.StatusClassified:
		m.summary.ClassifiedCount--
	case classify.StatusSkipped:
		m.summary.SkippedCount--
	case classify.StatusFailed:
		m.summary.ErrorCount--
	}
}

// FilterValue implements list.Item.
func (i listItem) FilterValue() string { return i.path }

// Title implements list.Item.
func (i listItem) Title() string { return i.path }

// Description implements list.Item.
func (i listItem) Description() string {
	var statusStyle lipgloss.Style
	statusIcon := " "
	switch i.status {
	case classify.StatusClassified:
		statusStyle = StatusStyleClassified
		statusIcon = "✓"
	case classify.StatusFailed:
		statusStyle = StatusStyleFailed
		statusIcon = "✗"
	case classify.StatusSkipped:
		statusStyle = StatusStyleSkipped
		statusIcon = "S"
	case classify.StatusProcessing:
		statusStyle = StatusStyleProcessing
		statusIcon = "…"
	default:
		statusStyle = StatusStylePending
	}

	statusStr := statusStyle.Render(fmt.Sprintf("[%s]", statusIcon))
	details := ""
	switch i.status {
	case classify.StatusFailed, classify.StatusSkipped:
		details = i.message
	case classify.StatusClassified:
		details = i.message
		if i.duration > 0 {
			details = fmt.Sprintf("%s (%s)", i.message, formatDuration(i.duration))
		}
	}
	return fmt.Sprintf("%s %s", statusStr, details)
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		if d == 0 {
			return ""
		}
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// UpdateListMsg signals that the list component should refresh its items.
type UpdateListMsg struct{}

const listUpdateDebounceDuration = 50 * time.Millisecond

// debounceListUpdate coalesces rapid status changes into one list
// refresh. MUST be called with listLock held.
func (m *Model) debounceListUpdate() tea.Cmd {
	if m.debounceTimer != nil {
		m.debounceTimer.Stop()
	}
	m.debounceTimer = time.NewTimer(listUpdateDebounceDuration)
	return func() tea.Msg {
		<-m.debounceTimer.C
		return UpdateListMsg{}
	}
}

// --- Styles ---

const (
	ColorHeaderFg = lipgloss.Color("252")
	ColorHeaderBg = lipgloss.Color("62")

	ColorFooterFg = lipgloss.Color("252")
	ColorFooterBg = lipgloss.Color("56")

	ColorNormalFg     = lipgloss.Color("250")
	ColorNormalDescFg = lipgloss.Color("244")

	ColorSelectedFg     = lipgloss.Color("255")
	ColorSelectedBg     = lipgloss.Color("56")
	ColorSelectedDescFg = lipgloss.Color("248")

	ColorStatusClassified = lipgloss.Color("40")
	ColorStatusFailed     = lipgloss.Color("196")
	ColorStatusSkipped    = lipgloss.Color("214")
	ColorStatusPending    = lipgloss.Color("244")
	ColorStatusProcessing = lipgloss.Color("205")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeaderFg).
			Background(ColorHeaderBg).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorFooterFg).
			Background(ColorFooterBg).
			Padding(0, 1)

	StatusStyleClassified = lipgloss.NewStyle().Foreground(ColorStatusClassified)
	StatusStyleFailed     = lipgloss.NewStyle().Foreground(ColorStatusFailed)
	StatusStyleSkipped    = lipgloss.NewStyle().Foreground(ColorStatusSkipped)
	StatusStylePending    = lipgloss.NewStyle().Foreground(ColorStatusPending)
	StatusStyleProcessing = lipgloss.NewStyle().Foreground(ColorStatusProcessing)
)
