package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-triage/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg struct {
	Name string
	Arg  string
}

// CancelMsg is emitted when the palette is dismissed.
type CancelMsg struct{}

// Parse splits a palette line into a lower-cased command name and the
// remaining argument text.
func Parse(line string) CommandMsg {
	line = strings.TrimSpace(line)
	name, arg, _ := strings.Cut(line, " ")
	return CommandMsg{Name: strings.ToLower(name), Arg: strings.TrimSpace(arg)}
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	theme  *theme.Theme
	width  int
	height int
}

// New creates a new command palette model.
func New(t *theme.Theme, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "important, regular, search <text>, refresh, theme, logout, quit"
	ti.Prompt = ": "
	ti.Width = max(0, width-6)

	return Model{
		input:  ti,
		theme:  t,
		width:  width,
		height: height,
	}
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			line := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(line) == "" {
				return m, func() tea.Msg { return CancelMsg{} }
			}
			cmd := Parse(line)
			return m, func() tea.Msg { return cmd }
		case "esc":
			m.input.Reset()
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	t := m.theme
	content := lipgloss.JoinVertical(lipgloss.Left,
		t.Title.MarginBottom(1).Render("Command Palette"),
		m.input.View(),
	)
	return t.Panel.Width(max(0, m.width-4)).Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(0, width-6)
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
