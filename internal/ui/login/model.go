// Package login is the sign-in form shown before the dashboard.
package login

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-triage/internal/theme"
)

// SubmitMsg carries the entered credentials.
type SubmitMsg struct {
	Email    string
	Password string
}

// CancelMsg is sent when the form is aborted.
type CancelMsg struct{}

type fields struct {
	email    string
	password string
}

// Model wraps the huh sign-in form.
type Model struct {
	form    *huh.Form
	fields  *fields
	theme   *theme.Theme
	server  string
	err     string
	pending bool
	width   int
	height  int
}

// New creates a login form for the server at serverURL.
func New(t *theme.Theme, serverURL string, width, height int) Model {
	m := Model{
		fields: &fields{},
		theme:  t,
		server: serverURL,
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

func (m Model) formWidth() int {
	return min(60, max(20, m.width-4))
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fields.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fields.password).
				Validate(validateRequired("Password")),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func validateRequired(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("Email is required")
	}
	if !strings.Contains(s, "@") {
		return errors.New("Enter a valid email address")
	}
	return nil
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Reset clears the form, showing errMsg above it when non-empty. The
// email is kept so only the password needs retyping.
func (m *Model) Reset(errMsg string) tea.Cmd {
	m.err = errMsg
	m.pending = false
	m.fields.password = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.pending = true
		submit := SubmitMsg{Email: strings.TrimSpace(m.fields.email), Password: m.fields.password}
		return m, func() tea.Msg { return submit }
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	t := m.theme
	parts := []string{
		t.Title.Render("Sign in"),
		t.Meta.Render(m.server),
		"",
	}
	if m.err != "" {
		parts = append(parts, t.Banner.Render(m.err), "")
	}
	if m.pending {
		parts = append(parts, t.Help.Render("Signing in..."))
	} else {
		parts = append(parts, m.form.View())
	}

	box := t.Panel.Width(m.formWidth() + 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.form = m.form.WithWidth(m.formWidth())
}
