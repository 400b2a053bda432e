package tui

import (
	"github.com/mos1128/scoop-easy/internal/oplog"
	"github.com/mos1128/scoop-easy/internal/service"
	"github.com/mos1128/scoop-easy/pkg/scoop"
)

// View represents the different tabs in the TUI.
type View int

const (
	ViewApps View = iota
	ViewBuckets
	ViewSearch
	ViewLogs
)

// Tab is a navigable tab.
type Tab struct {
	Name string
	View View
}

// DefaultTabs returns the tab configuration.
func DefaultTabs() []Tab {
	return []Tab{
		{Name: "Apps", View: ViewApps},
		{Name: "Buckets", View: ViewBuckets},
		{Name: "Search", View: ViewSearch},
		{Name: "Logs", View: ViewLogs},
	}
}

// Model holds the application state.
type Model struct {
	ready    bool
	quitting bool

	width  int
	height int

	tabs      []Tab
	activeTab int

	svc *service.Service

	apps          []scoop.InstalledApp
	buckets       []scoop.Bucket
	searchResults []scoop.SearchResult
	logEntries    []oplog.Entry

	loading    bool
	loadingMsg string
	errorMsg   string
	successMsg string

	searchQuery string
	inputMode   bool

	// Cursor position per view
	cursors map[View]int

	styles *Styles
	keys   KeyMap

	showConfirm   bool
	confirmTitle  string
	confirmAction func()
}

// NewModel creates a new TUI model around the service layer.
func NewModel(svc *service.Service) *Model {
	return &Model{
		tabs:    DefaultTabs(),
		svc:     svc,
		cursors: make(map[View]int),
		styles:  DefaultStyles(),
		keys:    DefaultKeyMap(),
	}
}

// SetSize records the terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ActiveView returns the view of the active tab.
func (m *Model) ActiveView() View {
	return m.tabs[m.activeTab].View
}

// Cursor returns the cursor position for the active view.
func (m *Model) Cursor() int {
	return m.cursors[m.ActiveView()]
}

// rowCount returns how many rows the active view has.
func (m *Model) rowCount() int {
	switch m.ActiveView() {
	case ViewApps:
		return len(m.apps)
	case ViewBuckets:
		return len(m.buckets)
	case ViewSearch:
		return len(m.searchResults)
	case ViewLogs:
		return len(m.logEntries)
	}
	return 0
}

// MoveCursor moves the cursor for the active view, clamped to the rows.
func (m *Model) MoveCursor(delta int) {
	view := m.ActiveView()
	count := m.rowCount()
	if count == 0 {
		m.cursors[view] = 0
		return
	}

	pos := m.cursors[view] + delta
	if pos < 0 {
		pos = 0
	}
	if pos >= count {
		pos = count - 1
	}
	m.cursors[view] = pos
}

// SelectedApp returns the app under the cursor, or nil.
func (m *Model) SelectedApp() *scoop.InstalledApp {
	if m.ActiveView() != ViewApps || len(m.apps) == 0 {
		return nil
	}
	return &m.apps[m.Cursor()]
}

// SelectedBucket returns the bucket under the cursor, or nil.
func (m *Model) SelectedBucket() *scoop.Bucket {
	if m.ActiveView() != ViewBuckets || len(m.buckets) == 0 {
		return nil
	}
	return &m.buckets[m.Cursor()]
}

// SelectedResult returns the search result under the cursor, or nil.
func (m *Model) SelectedResult() *scoop.SearchResult {
	if m.ActiveView() != ViewSearch || len(m.searchResults) == 0 {
		return nil
	}
	return &m.searchResults[m.Cursor()]
}

// Confirm opens the confirmation dialog.
func (m *Model) Confirm(title string, action func()) {
	m.showConfirm = true
	m.confirmTitle = title
	m.confirmAction = action
}

// ConfirmYes runs the pending action and closes the dialog.
func (m *Model) ConfirmYes() {
	if m.confirmAction != nil {
		m.confirmAction()
	}
	m.showConfirm = false
	m.confirmAction = nil
}

// ConfirmNo closes the dialog without running the action.
func (m *Model) ConfirmNo() {
	m.showConfirm = false
	m.confirmAction = nil
}
