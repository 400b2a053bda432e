package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mos1128/scoop-easy/internal/oplog"
	"github.com/mos1128/scoop-easy/internal/service"
	"github.com/mos1128/scoop-easy/pkg/scoop"
)

// Messages for async operations
type (
	appsLoadedMsg struct {
		apps []scoop.InstalledApp
		err  error
	}

	bucketsLoadedMsg struct {
		buckets []scoop.Bucket
		err     error
	}

	searchResultsMsg struct {
		results []scoop.SearchResult
		err     error
	}

	logsLoadedMsg struct {
		entries []oplog.Entry
		err     error
	}

	operationCompleteMsg struct {
		message string
		err     error
	}
)

// App wraps the Model with bubbletea components
type App struct {
	*Model
	spinner   spinner.Model
	textInput textinput.Model
	pending   tea.Cmd
}

// NewApp creates a new TUI application
func NewApp(svc *service.Service) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.CharLimit = 100
	ti.Width = 40

	return &App{
		Model:     NewModel(svc),
		spinner:   sp,
		textInput: ti,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.loadApps(),
		a.loadBuckets(),
		a.loadLogs(),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		a.ready = true

	case tea.KeyMsg:
		// Confirmation dialog swallows all keys
		if a.showConfirm {
			switch msg.String() {
			case "y", "Y", "enter":
				a.ConfirmYes()
				if a.loading {
					cmds = append(cmds, a.spinner.Tick, a.pendingCmd())
				}
			case "n", "N", "esc", "q":
				a.ConfirmNo()
			}
			return a, tea.Batch(cmds...)
		}

		// Search input mode
		if a.inputMode {
			switch msg.String() {
			case "enter":
				a.inputMode = false
				query := strings.TrimSpace(a.textInput.Value())
				if query != "" {
					a.searchQuery = query
					a.setLoading("Searching...")
					cmds = append(cmds, a.spinner.Tick, a.runSearch(query))
				}
				return a, tea.Batch(cmds...)
			case "esc":
				a.inputMode = false
				return a, nil
			default:
				var cmd tea.Cmd
				a.textInput, cmd = a.textInput.Update(msg)
				return a, cmd
			}
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit

		case key.Matches(msg, a.keys.PrevTab):
			a.activeTab = (a.activeTab + len(a.tabs) - 1) % len(a.tabs)
		case key.Matches(msg, a.keys.NextTab):
			a.activeTab = (a.activeTab + 1) % len(a.tabs)

		case key.Matches(msg, a.keys.Up):
			a.MoveCursor(-1)
		case key.Matches(msg, a.keys.Down):
			a.MoveCursor(1)

		case key.Matches(msg, a.keys.Cancel):
			a.clearMessages()

		case key.Matches(msg, a.keys.Refresh):
			cmds = append(cmds, a.refreshActive()...)

		case key.Matches(msg, a.keys.Search):
			if a.ActiveView() == ViewSearch {
				a.startSearch()
			}

		case key.Matches(msg, a.keys.Hold):
			if app := a.SelectedApp(); app != nil && !app.Held {
				a.setLoading("Holding " + app.Name + "...")
				cmds = append(cmds, a.spinner.Tick, a.holdApp(app.Name))
			}

		case key.Matches(msg, a.keys.Unhold):
			if app := a.SelectedApp(); app != nil && app.Held {
				a.setLoading("Unholding " + app.Name + "...")
				cmds = append(cmds, a.spinner.Tick, a.unholdApp(app.Name))
			}

		case key.Matches(msg, a.keys.Update):
			if app := a.SelectedApp(); app != nil {
				a.Confirm(fmt.Sprintf("Update %s?", app.Name), a.queue("Updating "+app.Name+"...", a.updateApp(app.Name)))
			}

		case key.Matches(msg, a.keys.Install):
			if res := a.SelectedResult(); res != nil {
				name := res.Name
				a.Confirm(fmt.Sprintf("Install %s?", name), a.queue("Installing "+name+"...", a.installApp(name, res.Bucket)))
			}

		case key.Matches(msg, a.keys.Remove):
			switch a.ActiveView() {
			case ViewApps:
				if app := a.SelectedApp(); app != nil {
					name := app.Name
					a.Confirm(fmt.Sprintf("Uninstall %s?", name), a.queue("Uninstalling "+name+"...", a.uninstallApp(name)))
				}
			case ViewBuckets:
				if b := a.SelectedBucket(); b != nil {
					name := b.Name
					a.Confirm(fmt.Sprintf("Remove bucket %s?", name), a.queue("Removing bucket "+name+"...", a.removeBucket(name)))
				}
			}
		}

	case appsLoadedMsg:
		a.setLoaded(msg.err)
		if msg.err == nil {
			a.apps = msg.apps
			a.MoveCursor(0)
		}

	case bucketsLoadedMsg:
		a.setLoaded(msg.err)
		if msg.err == nil {
			a.buckets = msg.buckets
			a.MoveCursor(0)
		}

	case searchResultsMsg:
		a.setLoaded(msg.err)
		if msg.err == nil {
			a.searchResults = msg.results
			a.cursors[ViewSearch] = 0
		}

	case logsLoadedMsg:
		if msg.err == nil {
			a.logEntries = msg.entries
		}

	case operationCompleteMsg:
		a.setLoaded(msg.err)
		if msg.err == nil {
			a.successMsg = msg.message
			cmds = append(cmds, a.loadApps(), a.loadBuckets(), a.loadLogs())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) setLoading(msg string) {
	a.loading = true
	a.loadingMsg = msg
	a.errorMsg = ""
	a.successMsg = ""
}

func (a *App) setLoaded(err error) {
	a.loading = false
	a.loadingMsg = ""
	if err != nil {
		a.errorMsg = err.Error()
	}
}

func (a *App) clearMessages() {
	a.errorMsg = ""
	a.successMsg = ""
}

// queue returns an action for the confirm dialog that flags the loading state
// and stashes the command to run on confirmation.
func (a *App) queue(loadingMsg string, cmd tea.Cmd) func() {
	return func() {
		a.setLoading(loadingMsg)
		a.pending = cmd
	}
}

// pendingCmd hands over the stashed command once.
func (a *App) pendingCmd() tea.Cmd {
	cmd := a.pending
	a.pending = nil
	return cmd
}

func (a *App) refreshActive() []tea.Cmd {
	switch a.ActiveView() {
	case ViewApps:
		a.setLoading("Refreshing apps...")
		return []tea.Cmd{a.spinner.Tick, a.refreshApps()}
	case ViewBuckets:
		a.setLoading("Refreshing buckets...")
		return []tea.Cmd{a.spinner.Tick, a.loadBuckets()}
	case ViewSearch:
		if a.searchQuery != "" {
			a.setLoading("Searching...")
			return []tea.Cmd{a.spinner.Tick, a.runSearch(a.searchQuery)}
		}
	case ViewLogs:
		return []tea.Cmd{a.loadLogs()}
	}
	return nil
}

func (a *App) startSearch() {
	a.textInput.SetValue("")
	a.textInput.Focus()
	a.inputMode = true
}

// Async commands

func (a *App) loadApps() tea.Cmd {
	return func() tea.Msg {
		apps, err := a.svc.Apps(context.Background())
		return appsLoadedMsg{apps: apps, err: err}
	}
}

func (a *App) refreshApps() tea.Cmd {
	return func() tea.Msg {
		apps, err := a.svc.RefreshApps(context.Background())
		return appsLoadedMsg{apps: apps, err: err}
	}
}

func (a *App) loadBuckets() tea.Cmd {
	return func() tea.Msg {
		buckets, err := a.svc.Buckets(context.Background())
		return bucketsLoadedMsg{buckets: buckets, err: err}
	}
}

func (a *App) loadLogs() tea.Cmd {
	return func() tea.Msg {
		entries, err := a.svc.Logs(oplog.DefaultLimit)
		return logsLoadedMsg{entries: entries, err: err}
	}
}

func (a *App) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.svc.SearchApps(context.Background(), query)
		return searchResultsMsg{results: results, err: err}
	}
}

func (a *App) installApp(name, bucket string) tea.Cmd {
	return func() tea.Msg {
		msg, err := a.svc.InstallApp(context.Background(), name, bucket, "")
		return operationCompleteMsg{message: msg, err: err}
	}
}

func (a *App) updateApp(name string) tea.Cmd {
	return func() tea.Msg {
		msg, err := a.svc.UpdateApps(context.Background(), []string{name})
		return operationCompleteMsg{message: msg, err: err}
	}
}

func (a *App) uninstallApp(name string) tea.Cmd {
	return func() tea.Msg {
		msg, err := a.svc.UninstallApps(context.Background(), []string{name})
		return operationCompleteMsg{message: msg, err: err}
	}
}

func (a *App) holdApp(name string) tea.Cmd {
	return func() tea.Msg {
		msg, err := a.svc.HoldApps(context.Background(), []string{name})
		return operationCompleteMsg{message: msg, err: err}
	}
}

func (a *App) unholdApp(name string) tea.Cmd {
	return func() tea.Msg {
		msg, err := a.svc.UnholdApps(context.Background(), []string{name})
		return operationCompleteMsg{message: msg, err: err}
	}
}

func (a *App) removeBucket(name string) tea.Cmd {
	return func() tea.Msg {
		msg, err := a.svc.RemoveBucket(context.Background(), name)
		return operationCompleteMsg{message: msg, err: err}
	}
}

// Run starts the TUI application
func Run(svc *service.Service) error {
	app := NewApp(svc)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
