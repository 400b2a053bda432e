package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderTabs())
	b.WriteString("\n")
	b.WriteString(a.renderContent())
	b.WriteString(a.renderFooter())

	if a.showConfirm {
		return a.renderWithDialog()
	}

	return b.String()
}

func (a *App) renderHeader() string {
	title := a.styles.Header.Render(" scoop-easy ")

	var right string
	if a.loading {
		right = a.spinner.View() + " " + a.loadingMsg
	} else if a.errorMsg != "" {
		right = a.styles.Error.Render(a.errorMsg)
	} else if a.successMsg != "" {
		right = a.styles.Success.Render(a.successMsg)
	}

	padding := a.width - lipgloss.Width(title) - lipgloss.Width(right) - 2
	if padding < 0 {
		padding = 0
	}

	return title + strings.Repeat(" ", padding) + right
}

func (a *App) renderTabs() string {
	var tabs []string
	for i, tab := range a.tabs {
		style := a.styles.TabInactive
		if i == a.activeTab {
			style = a.styles.TabActive
		}
		tabs = append(tabs, style.Render(tab.Name))
	}
	return strings.Join(tabs, " ")
}

func (a *App) renderContent() string {
	height := a.height - 5

	var content string
	switch a.ActiveView() {
	case ViewApps:
		content = a.renderAppsView()
	case ViewBuckets:
		content = a.renderBucketsView()
	case ViewSearch:
		content = a.renderSearchView()
	case ViewLogs:
		content = a.renderLogsView()
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Render(content)
}

// visibleRows returns how many list rows fit in the content area.
func (a *App) visibleRows() int {
	rows := a.height - 8
	if rows < 1 {
		rows = 1
	}
	return rows
}

// visibleRange computes the scroll window that keeps the cursor in view.
func (a *App) visibleRange(count int) (start, end int) {
	rows := a.visibleRows()
	cursor := a.Cursor()

	start = cursor - rows + 1
	if start < 0 {
		start = 0
	}
	end = start + rows
	if end > count {
		end = count
	}
	return start, end
}

func (a *App) renderAppsView() string {
	var b strings.Builder

	b.WriteString(a.styles.Header.Render(fmt.Sprintf("Installed Apps (%d)", len(a.apps))))
	b.WriteString("\n\n")

	if len(a.apps) == 0 {
		b.WriteString(a.styles.Muted.Render("  No apps installed"))
		return b.String()
	}

	start, end := a.visibleRange(len(a.apps))
	for i := start; i < end; i++ {
		app := a.apps[i]

		cursor := "  "
		name := a.styles.AppName.Render(app.Name)
		if i == a.Cursor() {
			cursor = a.styles.ListItemSelected.Render("> ")
			name = a.styles.ListItemSelected.Render(app.Name)
		}

		var status []string
		if app.HasUpdate {
			status = append(status, a.styles.Update.Render("update: "+app.LatestVersion))
		}
		if app.Held {
			status = append(status, a.styles.Held.Render("held"))
		}

		line := fmt.Sprintf("%s%-28s %-14s %-12s %s",
			cursor, name,
			a.styles.AppVersion.Render(app.Version),
			a.styles.BucketName.Render(app.Bucket),
			strings.Join(status, " "))
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) renderBucketsView() string {
	var b strings.Builder

	b.WriteString(a.styles.Header.Render(fmt.Sprintf("Buckets (%d)", len(a.buckets))))
	b.WriteString("\n\n")

	if len(a.buckets) == 0 {
		b.WriteString(a.styles.Muted.Render("  No buckets configured"))
		return b.String()
	}

	start, end := a.visibleRange(len(a.buckets))
	for i := start; i < end; i++ {
		bucket := a.buckets[i]

		cursor := "  "
		name := a.styles.BucketName.Render(bucket.Name)
		if i == a.Cursor() {
			cursor = a.styles.ListItemSelected.Render("> ")
			name = a.styles.ListItemSelected.Render(bucket.Name)
		}

		manifests := ""
		if bucket.Manifests > 0 {
			manifests = fmt.Sprintf("%d manifests", bucket.Manifests)
		}

		line := fmt.Sprintf("%s%-20s %-50s %s",
			cursor, name,
			a.styles.Muted.Render(bucket.Source),
			a.styles.Muted.Render(manifests))
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) renderSearchView() string {
	var b strings.Builder

	if a.inputMode {
		b.WriteString(a.styles.Header.Render("Search: "))
		b.WriteString(a.textInput.View())
		b.WriteString("\n\n")
	} else if a.searchQuery != "" {
		b.WriteString(a.styles.Header.Render(fmt.Sprintf("Results for %q (%d)", a.searchQuery, len(a.searchResults))))
		b.WriteString("\n\n")
	} else {
		b.WriteString(a.styles.Header.Render("Search"))
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render("  Press / to search"))
		b.WriteString("\n\n")
	}

	if len(a.searchResults) == 0 {
		if a.searchQuery != "" && !a.loading && !a.inputMode {
			b.WriteString(a.styles.Muted.Render("  No results"))
		}
		return b.String()
	}

	start, end := a.visibleRange(len(a.searchResults))
	for i := start; i < end; i++ {
		res := a.searchResults[i]

		cursor := "  "
		name := a.styles.AppName.Render(res.Name)
		if i == a.Cursor() {
			cursor = a.styles.ListItemSelected.Render("> ")
			name = a.styles.ListItemSelected.Render(res.Name)
		}

		line := fmt.Sprintf("%s%-28s %-14s %s",
			cursor, name,
			a.styles.AppVersion.Render(res.Version),
			a.styles.BucketName.Render(res.Bucket))
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) renderLogsView() string {
	var b strings.Builder

	b.WriteString(a.styles.Header.Render(fmt.Sprintf("Operation Log (%d)", len(a.logEntries))))
	b.WriteString("\n\n")

	if len(a.logEntries) == 0 {
		b.WriteString(a.styles.Muted.Render("  No log entries"))
		return b.String()
	}

	start, end := a.visibleRange(len(a.logEntries))
	for i := start; i < end; i++ {
		entry := a.logEntries[i]

		cursor := "  "
		if i == a.Cursor() {
			cursor = a.styles.ListItemSelected.Render("> ")
		}

		status := a.styles.Success.Render("OK")
		if !entry.Success {
			status = a.styles.Error.Render("FAILED")
		}

		msg := entry.Message
		if len(msg) > 60 {
			msg = msg[:57] + "..."
		}

		line := fmt.Sprintf("%s%s  %-14s  %-6s  %s",
			cursor,
			a.styles.Muted.Render(entry.FormatTime()),
			entry.Operation,
			status,
			a.styles.Muted.Render(msg))
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) renderFooter() string {
	var hints []string

	switch a.ActiveView() {
	case ViewApps:
		hints = []string{"u:update", "x:uninstall", "h:hold", "H:unhold", "r:refresh"}
	case ViewBuckets:
		hints = []string{"x:remove", "r:refresh"}
	case ViewSearch:
		hints = []string{"/:search", "enter:install"}
	case ViewLogs:
		hints = []string{"r:refresh"}
	}

	hints = append(hints, "tab:switch", "q:quit")

	footer := strings.Join(hints, "  ")
	return a.styles.StatusBar.Width(a.width).Render(footer)
}

func (a *App) renderWithDialog() string {
	dialog := a.styles.Dialog.Render(
		a.styles.HelpKey.Render(a.confirmTitle) + "\n\n" +
			a.styles.Success.Render("[Y]es") + " " +
			a.styles.Muted.Render("[N]o"),
	)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, dialog)
}
