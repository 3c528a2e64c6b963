package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/s0up4200/cinefeed/prefs"
)

type palette struct {
	primary lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	accent  lipgloss.Color
	rating  lipgloss.Color
	error   lipgloss.Color
}

var (
	darkPalette = palette{
		primary: lipgloss.Color("#E50914"),
		text:    lipgloss.Color("#F5F5F1"),
		muted:   lipgloss.Color("#8C8C8C"),
		accent:  lipgloss.Color("#564D4D"),
		rating:  lipgloss.Color("#F5C518"),
		error:   lipgloss.Color("#FF5F5F"),
	}
	lightPalette = palette{
		primary: lipgloss.Color("#B20710"),
		text:    lipgloss.Color("#1A1A1A"),
		muted:   lipgloss.Color("#6B6B6B"),
		accent:  lipgloss.Color("#D0C8C8"),
		rating:  lipgloss.Color("#B8860B"),
		error:   lipgloss.Color("#C00000"),
	}
)

type styles struct {
	title       lipgloss.Style
	tab         lipgloss.Style
	activeTab   lipgloss.Style
	control     lipgloss.Style
	search      lipgloss.Style
	item        lipgloss.Style
	selected    lipgloss.Style
	overview    lipgloss.Style
	meta        lipgloss.Style
	rating      lipgloss.Style
	status      lipgloss.Style
	errorPanel  lipgloss.Style
	errorText   lipgloss.Style
	heading     lipgloss.Style
	label       lipgloss.Style
	empty       lipgloss.Style
	spinner     lipgloss.Style
	detailFrame lipgloss.Style
}

func newStyles(theme prefs.Theme) styles {
	p := darkPalette
	if theme == prefs.Light {
		p = lightPalette
	}

	return styles{
		title: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		tab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		activeTab: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.primary).
			Bold(true).
			Padding(0, 1),
		control: lipgloss.NewStyle().
			Foreground(p.muted),
		search: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),
		item: lipgloss.NewStyle().
			Foreground(p.text),
		selected: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		overview: lipgloss.NewStyle().
			Foreground(p.muted),
		meta: lipgloss.NewStyle().
			Foreground(p.muted),
		rating: lipgloss.NewStyle().
			Foreground(p.rating),
		status: lipgloss.NewStyle().
			Foreground(p.muted),
		errorPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.error).
			Padding(0, 1),
		errorText: lipgloss.NewStyle().
			Foreground(p.error).
			Bold(true),
		heading: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),
		label: lipgloss.NewStyle().
			Foreground(p.text).
			Bold(true),
		empty: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
		spinner: lipgloss.NewStyle().
			Foreground(p.primary),
		detailFrame: lipgloss.NewStyle().
			BorderForeground(p.accent),
	}
}
