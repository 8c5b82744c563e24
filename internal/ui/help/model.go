package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-triage/internal/keys"
	"github.com/nhle/email-triage/internal/theme"
)

// commands lists what the palette understands, for the overlay.
var commands = []string{
	"important, regular   switch bucket",
	"search <text>        filter the list",
	"clear                clear the search",
	"refresh              reload emails",
	"theme                toggle light/dark",
	"logout               forget the session",
	"quit                 exit",
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	theme  *theme.Theme
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(k *keys.KeyMap, t *theme.Theme, width, height int) Model {
	h := help.New()
	h.Width = width
	h.ShowAll = true
	return Model{
		keys:   k,
		theme:  t,
		help:   h,
		width:  width,
		height: height,
	}
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	t := m.theme
	m.help.Width = m.width - 4

	sections := []string{
		t.Title.MarginBottom(1).Render("Keyboard Shortcuts"),
		m.help.View(m.keys),
		"",
		t.Title.MarginBottom(1).Render("Commands (:)"),
	}
	for _, c := range commands {
		sections = append(sections, t.Meta.Render(c))
	}
	sections = append(sections, "", t.Help.Render("Drag the divider with the mouse to resize the panes."))

	return t.Panel.
		Width(max(0, m.width-4)).
		Height(max(0, m.height-4)).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
