// Package theme holds the light and dark style sets of the dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette is one colour scheme.
type Palette struct {
	Accent  lipgloss.Color
	Green   lipgloss.Color
	Yellow  lipgloss.Color
	Red     lipgloss.Color
	Gray    lipgloss.Color
	Text    lipgloss.Color
	Subtle  lipgloss.Color
	Border  lipgloss.Color
	Surface lipgloss.Color
}

var (
	darkPalette = Palette{
		Accent:  "#5B9BD5",
		Green:   "#6BCB77",
		Yellow:  "#FFD93D",
		Red:     "#FF6B6B",
		Gray:    "#868E96",
		Text:    "#F8F9FA",
		Subtle:  "#495057",
		Border:  "#495057",
		Surface: "#212529",
	}
	lightPalette = Palette{
		Accent:  "#2B6CB0",
		Green:   "#2F855A",
		Yellow:  "#B7791F",
		Red:     "#C53030",
		Gray:    "#718096",
		Text:    "#1A202C",
		Subtle:  "#CBD5E0",
		Border:  "#E2E8F0",
		Surface: "#F7FAFC",
	}
)

// Theme is the full set of styles for one palette.
type Theme struct {
	Dark    bool
	Palette Palette

	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Banner    lipgloss.Style
	Title     lipgloss.Style
	Count     lipgloss.Style
	Help      lipgloss.Style
	Panel     lipgloss.Style
	Divider   lipgloss.Style
	Dragging  lipgloss.Style

	Row         lipgloss.Style
	RowUnread   lipgloss.Style
	RowSelected lipgloss.Style
	Star        lipgloss.Style
	Preview     lipgloss.Style
	Date        lipgloss.Style

	Subject lipgloss.Style
	Meta    lipgloss.Style
	Badge   lipgloss.Style
	Action  lipgloss.Style
	Empty   lipgloss.Style
}

// New builds the dark or light theme.
func New(dark bool) Theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	return Theme{
		Dark:    dark,
		Palette: p,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8F9FA")).
			Background(p.Accent).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Subtle).
			Padding(0, 1),
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8F9FA")).
			Background(p.Red).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),
		Count: lipgloss.NewStyle().
			Foreground(p.Gray),
		Help: lipgloss.NewStyle().
			Foreground(p.Gray).
			Italic(true),
		Panel: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		Divider: lipgloss.NewStyle().
			Foreground(p.Border),
		Dragging: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		Row: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(p.Gray),
		RowUnread: lipgloss.NewStyle().
			PaddingLeft(2).
			Bold(true).
			Foreground(p.Text),
		RowSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(p.Accent).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Accent),
		Star: lipgloss.NewStyle().
			Foreground(p.Yellow),
		Preview: lipgloss.NewStyle().
			Foreground(p.Gray),
		Date: lipgloss.NewStyle().
			Foreground(p.Gray),

		Subject: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			MarginBottom(1),
		Meta: lipgloss.NewStyle().
			Foreground(p.Gray),
		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A202C")).
			Background(p.Yellow).
			Padding(0, 1),
		Action: lipgloss.NewStyle().
			Foreground(p.Accent),
		Empty: lipgloss.NewStyle().
			Foreground(p.Gray).
			Align(lipgloss.Center, lipgloss.Center),
	}
}
