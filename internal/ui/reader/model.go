// Package reader renders the selected email.
package reader

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-triage/internal/keys"
	"github.com/nhle/email-triage/internal/model"
	"github.com/nhle/email-triage/internal/theme"
)

// BackMsg asks the parent to clear the selection.
type BackMsg struct{}

// Model is the reading pane.
type Model struct {
	record   *model.EmailRecord
	viewport viewport.Model
	keys     *keys.KeyMap
	theme    *theme.Theme
	width    int
	height   int
}

// New creates a reading pane.
func New(k *keys.KeyMap, t *theme.Theme, width, height int) Model {
	vp := viewport.New(width, max(0, height-2))
	return Model{
		viewport: vp,
		keys:     k,
		theme:    t,
		width:    width,
		height:   height,
	}
}

// SetRecord shows rec, or nothing when rec is nil. The scroll position is
// kept when the same email is shown again.
func (m *Model) SetRecord(rec *model.EmailRecord) {
	same := rec != nil && m.record != nil && rec.ID == m.record.ID
	m.record = rec
	m.viewport.SetContent(m.renderContent())
	if !same {
		m.viewport.GotoTop()
	}
}

// Update handles messages for the reading pane.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		return m, func() tea.Msg { return BackMsg{} }
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the pane.
func (m Model) View() string {
	if m.record == nil {
		return m.theme.Empty.Width(m.width).Height(m.height).Render("Select an email to read.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), "", m.renderActions())
}

func (m Model) renderContent() string {
	if m.record == nil {
		return ""
	}
	t := m.theme
	r := m.record
	width := max(10, m.width-2)

	var b strings.Builder
	subject := t.Subject.Width(width).Render(r.Subject)
	if model.IsImportant(*r) {
		subject = lipgloss.JoinHorizontal(lipgloss.Top, t.Subject.Render(r.Subject), " ", t.Badge.Render("Important"))
	}
	b.WriteString(subject)
	b.WriteString("\n")
	b.WriteString(t.Meta.Render("From: " + r.Sender))
	b.WriteString("\n")
	b.WriteString(t.Meta.Render(r.Date.Local().Format("Mon, Jan 2 2006 15:04")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(r.Content))
	return b.String()
}

func (m Model) renderActions() string {
	t := m.theme
	move := "Move to Important"
	if model.IsImportant(*m.record) {
		move = "Move to Regular"
	}
	return t.Action.Render("[i] "+move) + "   " + t.Action.Render("[d] Delete") + "   " + t.Help.Render("esc back")
}

// SetSize updates the pane dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(0, height-2)
	m.viewport.SetContent(m.renderContent())
}
