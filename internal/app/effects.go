package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/email-triage/internal/apiclient"
	"github.com/nhle/email-triage/internal/dashboard"
	"github.com/nhle/email-triage/internal/model"
	"github.com/nhle/email-triage/internal/theme"
)

// requestTimeout bounds every call to the API.
const requestTimeout = 15 * time.Second

// splitStep is how far [ and ] move the divider, in percent.
const splitStep = 5.0

// effectMsg carries a finished remote call back to the controller.
type effectMsg struct {
	result dashboard.Result
}

// run performs p off the update loop. A nil p yields no command.
func run(p *dashboard.Pending) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return effectMsg{result: p.Run(ctx)}
	}
}

// applyEffect folds a result into the controller. An expired session sends
// the user back to the login form, except on mark-read, whose failures are
// only logged.
func (m *Model) applyEffect(r dashboard.Result) tea.Cmd {
	if r.Op != dashboard.OpMarkRead && errors.Is(r.Err, apiclient.ErrUnauthorized) {
		m.logger.Info("session rejected", "op", r.Op.String())
		return m.logout("Session expired, please sign in again")
	}
	m.ctrl.Apply(r)
	return m.syncViews()
}

// refresh re-fetches the full list.
func (m *Model) refresh() tea.Cmd {
	return run(m.ctrl.Fetch())
}

// open selects id.
func (m *Model) open(id string) tea.Cmd {
	p := m.ctrl.Select(id)
	return tea.Batch(run(p), m.syncViews())
}

// target returns the email actions apply to: the open one, or the row
// under the cursor when nothing is open.
func (m Model) target() (model.EmailRecord, bool) {
	if rec, ok := m.ctrl.Selected(); ok {
		return rec, true
	}
	if m.ctrl.State().Mobile {
		return model.EmailRecord{}, false
	}
	return m.listView.Highlighted()
}

// toggleImportance moves the target email to the other bucket.
func (m *Model) toggleImportance() tea.Cmd {
	rec, ok := m.target()
	if !ok {
		return nil
	}
	p := m.ctrl.ToggleImportance(rec.ID)
	return tea.Batch(run(p), m.syncViews())
}

// deleteTarget removes the target email.
func (m *Model) deleteTarget() tea.Cmd {
	rec, ok := m.target()
	if !ok {
		return nil
	}
	p := m.ctrl.Delete(rec.ID)
	return tea.Batch(run(p), m.syncViews())
}

// switchBucket shows bucket b.
func (m *Model) switchBucket(b model.Bucket) tea.Cmd {
	m.ctrl.SwitchBucket(b)
	return m.syncViews()
}

// otherBucket returns the bucket not currently shown.
func (m Model) otherBucket() model.Bucket {
	if m.ctrl.State().Bucket == model.BucketImportant {
		return model.BucketRegular
	}
	return model.BucketImportant
}

// toggleTheme flips light/dark. Persisting failures are logged by the
// controller and the new theme stays in effect.
func (m *Model) toggleTheme() tea.Cmd {
	_ = m.ctrl.ToggleTheme()
	*m.theme = theme.New(m.ctrl.State().DarkTheme)
	return m.syncViews()
}

// search applies text to the visible list.
func (m *Model) search(text string) tea.Cmd {
	m.ctrl.Search(text)
	return m.syncViews()
}

// syncViews pushes the controller state into the list and reader panes.
func (m *Model) syncViews() tea.Cmd {
	st := m.ctrl.State()
	counts := m.ctrl.Counts()

	cmd := m.listView.SetRecords(m.ctrl.Visible(), st.Bucket.Title(), counts.For(st.Bucket), st.SelectedID)
	if rec, ok := m.ctrl.Selected(); ok {
		m.readerView.SetRecord(&rec)
	} else {
		m.readerView.SetRecord(nil)
	}
	m.resizePanes()
	return cmd
}

// resizePanes lays the list and reader out for the current split.
func (m *Model) resizePanes() {
	st := m.ctrl.State()
	h := m.layout.ContentHeight()
	_, selected := m.ctrl.Selected()

	switch {
	case st.Mobile:
		m.listView.SetSize(m.layout.Width, h)
		m.readerView.SetSize(m.layout.Width, h)
	case !selected:
		m.listView.SetSize(m.layout.Width, h)
	default:
		listW, readerW := m.layout.SplitWidths(st.SplitRatio)
		m.listView.SetSize(listW, h)
		m.readerView.SetSize(readerW, h)
	}
}
