package app

import (
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-triage/internal/apiclient"
	"github.com/nhle/email-triage/internal/dashboard"
	"github.com/nhle/email-triage/internal/keys"
	"github.com/nhle/email-triage/internal/model"
	"github.com/nhle/email-triage/internal/theme"
	"github.com/nhle/email-triage/internal/ui"
	"github.com/nhle/email-triage/internal/ui/command"
	"github.com/nhle/email-triage/internal/ui/emaillist"
	helpview "github.com/nhle/email-triage/internal/ui/help"
	"github.com/nhle/email-triage/internal/ui/login"
	"github.com/nhle/email-triage/internal/ui/reader"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewVerifying ViewState = iota
	ViewLogin
	ViewDashboard
	ViewHelp
	ViewCommand
)

// Deps are the collaborators of the root model.
type Deps struct {
	Client           *apiclient.Client
	Prefs            dashboard.PreferenceStore
	Tokens           TokenStore
	Logger           *slog.Logger
	ServerURL        string
	MobileBreakpoint int
}

// Model is the root Bubble Tea model that routes between the login form
// and the dashboard and turns controller effects into commands.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	client      *apiclient.Client
	tokens      TokenStore
	logger      *slog.Logger
	ctrl        *dashboard.Controller
	drag        *dashboard.ResizeSession
	keys        *keys.KeyMap
	theme       *theme.Theme
	spinner     spinner.Model
	listView    emaillist.Model
	readerView  reader.Model
	loginView   login.Model
	helpView    helpview.Model
	commandView command.Model
	notice      string
	ready       bool
}

// New creates the root model. A saved session token is verified on Init;
// without one the login form is shown.
func New(d Deps) Model {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctrl := dashboard.New(d.Client, d.Prefs, 80,
		dashboard.WithMobileBreakpoint(d.MobileBreakpoint),
		dashboard.WithLogger(logger),
	)
	k := keys.DefaultKeyMap()
	t := theme.New(ctrl.State().DarkTheme)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(t.Palette.Accent)

	m := Model{
		currentView: ViewLogin,
		layout:      ui.NewLayout(80, 24),
		client:      d.Client,
		tokens:      d.Tokens,
		logger:      logger,
		ctrl:        ctrl,
		keys:        k,
		theme:       &t,
		spinner:     sp,
		listView:    emaillist.New(k, &t, 80, 22),
		readerView:  reader.New(k, &t, 80, 22),
		loginView:   login.New(&t, d.ServerURL, 80, 24),
		helpView:    helpview.New(k, &t, 80, 22),
		commandView: command.New(&t, 80, 22),
	}

	token, err := d.Tokens.Load()
	if err != nil {
		logger.Warn("loading session token", "error", err)
	}
	if token != "" {
		d.Client.SetToken(token)
		m.currentView = ViewVerifying
	}
	return m
}

// Init verifies a saved session or starts the login form.
func (m Model) Init() tea.Cmd {
	if m.currentView == ViewVerifying {
		return tea.Batch(m.spinner.Tick, m.verifySession())
	}
	return tea.Batch(m.spinner.Tick, m.loginView.Init())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.ctrl.SetViewport(msg.Width)
		if !m.ctrl.State().Resizing {
			m.drag = nil
		}
		h := m.layout.ContentHeight()
		m.loginView.SetSize(msg.Width, msg.Height)
		m.helpView.SetSize(msg.Width, h)
		m.commandView.SetSize(msg.Width, h)
		cmd := m.syncViews()
		if m.currentView == ViewLogin {
			var formCmd tea.Cmd
			m.loginView, formCmd = m.loginView.Update(msg)
			return m, tea.Batch(cmd, formCmd)
		}
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case verifiedMsg:
		if msg.err != nil {
			m.logger.Info("saved session not accepted", "error", msg.err)
			return m, m.logout("")
		}
		m.currentView = ViewDashboard
		return m, m.refresh()

	case login.SubmitMsg:
		return m, m.login(msg.Email, msg.Password)

	case login.CancelMsg:
		return m, tea.Quit

	case loggedInMsg:
		if msg.err != nil {
			m.logger.Info("login failed", "error", msg.err)
			return m, m.loginView.Reset(loginError(msg.err))
		}
		m.client.SetToken(msg.session.Token)
		m.saveToken()
		m.logger.Info("signed in", "user", msg.session.User.Email)
		m.currentView = ViewDashboard
		return m, m.refresh()

	case effectMsg:
		return m, m.applyEffect(msg.result)

	case emaillist.OpenMsg:
		return m, m.open(msg.ID)

	case emaillist.SearchMsg:
		return m, m.search(msg.Text)

	case reader.BackMsg:
		m.ctrl.ClearSelection()
		m.drag = nil
		return m, m.syncViews()

	case command.CommandMsg:
		m.currentView = ViewDashboard
		return m, m.executeCommand(msg)

	case command.CancelMsg:
		m.currentView = ViewDashboard
		return m, nil

	case tea.MouseMsg:
		if m.currentView == ViewDashboard {
			return m, m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.ctrl.ReleaseResize()
			return m, tea.Quit
		}
		switch m.currentView {
		case ViewDashboard:
			return m.handleDashboardKeys(msg)
		case ViewHelp:
			if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
				m.currentView = ViewDashboard
			}
			return m, nil
		}
	}

	return m.updateActiveView(msg)
}

// updateActiveView forwards msg to the view that has focus.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewDashboard:
		m.listView, cmd = m.listView.Update(msg)
	}
	return m, cmd
}

// handleDashboardKeys handles keys while the email panes are shown.
func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	// The search bar owns the keyboard while it has focus.
	if m.listView.Searching() {
		var cmd tea.Cmd
		m.listView, cmd = m.listView.Update(msg)
		return m, cmd
	}

	_, selected := m.ctrl.Selected()
	mobileReader := m.ctrl.State().Mobile && selected

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.ReleaseResize()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.currentView = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.currentView = ViewCommand
		return m, m.commandView.Focus()

	case key.Matches(msg, m.keys.Important):
		return m, m.switchBucket(model.BucketImportant)

	case key.Matches(msg, m.keys.Regular):
		return m, m.switchBucket(model.BucketRegular)

	case key.Matches(msg, m.keys.SwitchBucket):
		return m, m.switchBucket(m.otherBucket())

	case key.Matches(msg, m.keys.ToggleImportance):
		return m, m.toggleImportance()

	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteTarget()

	case key.Matches(msg, m.keys.Back):
		if !selected {
			return m, nil
		}
		var cmd tea.Cmd
		m.readerView, cmd = m.readerView.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, m.keys.ToggleTheme):
		return m, m.toggleTheme()

	case key.Matches(msg, m.keys.Narrow):
		m.ctrl.NudgeSplit(-splitStep)
		m.resizePanes()
		return m, nil

	case key.Matches(msg, m.keys.Widen):
		m.ctrl.NudgeSplit(splitStep)
		m.resizePanes()
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.DismissBanner()
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case mobileReader:
		m.readerView, cmd = m.readerView.Update(msg)
	case selected && isPageKey(msg):
		m.readerView, cmd = m.readerView.Update(msg)
	default:
		m.listView, cmd = m.listView.Update(msg)
	}
	return m, cmd
}

// isPageKey reports whether msg scrolls the reader while the list has focus.
func isPageKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		return true
	}
	return false
}

// handleMouse drives the divider drag. A press on the divider starts a
// resize session, motion moves it and release ends it.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.drag != nil {
			return nil
		}
		if !m.layout.OnDivider(msg.X, msg.Y, m.ctrl.State().SplitRatio) {
			return nil
		}
		if s, ok := m.ctrl.BeginResize(); ok {
			m.drag = s
		}

	case tea.MouseActionMotion:
		if m.drag == nil {
			return nil
		}
		m.drag.Move(float64(msg.X), 0, float64(m.layout.Width))
		m.resizePanes()

	case tea.MouseActionRelease:
		if m.drag != nil {
			m.drag.End()
			m.drag = nil
		}
	}
	return nil
}

// View renders the active view.
func (m Model) View() string {
	if !m.ready {
		return ""
	}

	t := *m.theme
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewVerifying:
		return lipgloss.Place(m.layout.Width, m.layout.Height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Checking session...")
	}

	var content string
	switch m.currentView {
	case ViewHelp:
		content = m.helpView.View()
	case ViewCommand:
		content = lipgloss.JoinVertical(lipgloss.Left, m.commandView.View(), m.dashboardView())
	default:
		content = m.dashboardView()
	}

	header := m.layout.RenderHeader(t, "Email Triage", m.headerStatus())
	statusBar := m.layout.RenderStatusBar(t, m.keyHints(), m.ctrl.State().Banner)
	return m.layout.RenderWithFrame(header, content, statusBar)
}

// dashboardView renders the list and reader for the current layout.
func (m Model) dashboardView() string {
	st := m.ctrl.State()
	if st.Loading {
		return lipgloss.Place(m.layout.Width, m.layout.ContentHeight(), lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading emails...")
	}

	_, selected := m.ctrl.Selected()
	switch {
	case st.Mobile && selected:
		return m.readerView.View()
	case st.Mobile || !selected:
		return m.listView.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.listView.View(),
		m.layout.RenderDivider(*m.theme, st.Resizing),
		m.readerView.View(),
	)
}

// headerStatus summarises the buckets for the header.
func (m Model) headerStatus() string {
	c := m.ctrl.Counts()
	mark := func(b model.Bucket) string {
		if m.ctrl.State().Bucket == b {
			return "▸"
		}
		return " "
	}
	return mark(model.BucketImportant) + "Important " + strconv.Itoa(c.Important) +
		"  " + mark(model.BucketRegular) + "Regular " + strconv.Itoa(c.Regular)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.notice != "" {
		return m.notice
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc cancel"
	}

	if m.listView.Searching() {
		return "enter keep search | esc clear search"
	}
	if _, ok := m.ctrl.Selected(); ok {
		return "esc close | i move | d delete | [ ] resize | ? help"
	}
	return "q quit | ? help | enter open | tab bucket | / search | r refresh | t theme"
}
