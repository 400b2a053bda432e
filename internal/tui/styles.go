// Package tui provides an interactive terminal user interface for
// scoop-easy.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette - matches the CLI colors
var (
	ColorPrimary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Yellow
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorText    = lipgloss.Color("#F3F4F6") // Light gray
)

// Styles contains the lipgloss styles used in the TUI.
type Styles struct {
	Header      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	StatusBar   lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style

	AppName    lipgloss.Style
	AppVersion lipgloss.Style
	BucketName lipgloss.Style
	Held       lipgloss.Style
	Update     lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style

	Dialog   lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1),
		TabActive: lipgloss.NewStyle().Bold(true).Foreground(ColorText).
			Background(ColorPrimary).Padding(0, 2),
		TabInactive: lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 2),
		StatusBar:   lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1),

		ListItem: lipgloss.NewStyle().PaddingLeft(2),
		ListItemSelected: lipgloss.NewStyle().PaddingLeft(0).Bold(true).
			Foreground(ColorPrimary),

		AppName:    lipgloss.NewStyle().Bold(true),
		AppVersion: lipgloss.NewStyle().Foreground(ColorSuccess),
		BucketName: lipgloss.NewStyle().Foreground(ColorPrimary),
		Held:       lipgloss.NewStyle().Foreground(ColorWarning),
		Update:     lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess),

		Success: lipgloss.NewStyle().Foreground(ColorSuccess),
		Error:   lipgloss.NewStyle().Foreground(ColorError),
		Muted:   lipgloss.NewStyle().Foreground(ColorMuted),

		Dialog: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).Padding(1, 2),
		HelpKey:  lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		HelpDesc: lipgloss.NewStyle().Foreground(ColorMuted),
	}
}
