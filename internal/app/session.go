package app

import (
	"context"
	"errors"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/email-triage/internal/apiclient"
	"github.com/nhle/email-triage/internal/credential"
)

// TokenStore keeps the session token between launches.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// KeyringTokens stores the session token in the OS keyring.
type KeyringTokens struct{}

// Load returns the saved token, or "" when none is stored.
func (KeyringTokens) Load() (string, error) {
	return credential.Lookup(credential.KeySessionToken)
}

// Save stores token.
func (KeyringTokens) Save(token string) error {
	return credential.Set(credential.KeySessionToken, token)
}

// Clear forgets the stored token.
func (KeyringTokens) Clear() error {
	return credential.Delete(credential.KeySessionToken)
}

// verifiedMsg reports the outcome of checking a saved token.
type verifiedMsg struct {
	err error
}

// loggedInMsg reports the outcome of a login attempt.
type loggedInMsg struct {
	session *apiclient.Session
	err     error
}

// verifySession checks the token already set on the client.
func (m Model) verifySession() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := c.Verify(ctx)
		return verifiedMsg{err: err}
	}
}

// login exchanges credentials for a token.
func (m Model) login(email, password string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		s, err := c.Login(ctx, email, password)
		return loggedInMsg{session: s, err: err}
	}
}

// loginError turns a login failure into the message shown on the form.
func loginError(err error) string {
	var urlErr *url.Error
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		return "Invalid credentials"
	case errors.As(err, &urlErr):
		return "Network error"
	default:
		return "Server error"
	}
}

// saveToken persists the client's token, logging failures.
func (m Model) saveToken() {
	if err := m.tokens.Save(m.client.Token()); err != nil {
		m.logger.Warn("saving session token", "error", err)
	}
}

// logout drops the session and shows the login form with msg.
func (m *Model) logout(msg string) tea.Cmd {
	if err := m.tokens.Clear(); err != nil {
		m.logger.Warn("clearing session token", "error", err)
	}
	m.client.SetToken("")
	m.ctrl.ReleaseResize()
	m.drag = nil
	m.currentView = ViewLogin
	return m.loginView.Reset(msg)
}
