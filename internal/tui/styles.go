package tui

import "github.com/charmbracelet/lipgloss"

// Styles is the palette for one theme mode
type Styles struct {
	Dark bool

	Title      lipgloss.Style
	Card       lipgloss.Style
	ActiveCard lipgloss.Style
	CardTitle  lipgloss.Style
	Muted      lipgloss.Style
	Tag        lipgloss.Style
	Link       lipgloss.Style
	Error      lipgloss.Style
	PageActive lipgloss.Style
	Page       lipgloss.Style
	Disabled   lipgloss.Style
	Tab        lipgloss.Style
	TabActive  lipgloss.Style
}

// NewStyles returns the palette for the dark or light scheme
func NewStyles(dark bool) Styles {
	primary := lipgloss.Color("#2563EB")
	text := lipgloss.Color("#1F2937")
	muted := lipgloss.Color("#6B7280")
	surface := lipgloss.Color("#E5E7EB")
	if dark {
		primary = lipgloss.Color("#60A5FA")
		text = lipgloss.Color("#F3F4F6")
		muted = lipgloss.Color("#9CA3AF")
		surface = lipgloss.Color("#374151")
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(surface).
		Foreground(text).
		Padding(0, 1).
		MarginBottom(1)

	return Styles{
		Dark:       dark,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1),
		Card:       card,
		ActiveCard: card.BorderForeground(primary),
		CardTitle:  lipgloss.NewStyle().Bold(true).Foreground(text),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		Tag:        lipgloss.NewStyle().Foreground(text).Background(surface).Padding(0, 1),
		Link:       lipgloss.NewStyle().Foreground(primary).Underline(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		PageActive: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(primary).Padding(0, 1),
		Page:       lipgloss.NewStyle().Foreground(text).Background(surface).Padding(0, 1),
		Disabled:   lipgloss.NewStyle().Foreground(muted).Faint(true).Padding(0, 1),
		Tab:        lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		TabActive:  lipgloss.NewStyle().Foreground(primary).Bold(true).Underline(true).Padding(0, 1),
	}
}
