package emaillist

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-triage/internal/keys"
	"github.com/nhle/email-triage/internal/model"
	"github.com/nhle/email-triage/internal/theme"
)

// OpenMsg asks the parent to select an email.
type OpenMsg struct {
	ID string
}

// SearchMsg carries the search text as it is typed.
type SearchMsg struct {
	Text string
}

// Model is the email list pane.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	theme       *theme.Theme
	selectedID  *string
	searchMode  bool
	searchInput textinput.Model
	title       string
	total       int
	width       int
	height      int
}

// New creates an email list. t is shared with the parent so theme changes
// apply without rebuilding the list.
func New(k *keys.KeyMap, t *theme.Theme, width, height int) Model {
	selected := new(string)
	delegate := Delegate{theme: t, selectedID: selected, now: time.Now}

	l := list.New([]list.Item{}, delegate, width, max(0, height-2))
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	si := textinput.New()
	si.Placeholder = "search emails..."
	si.Prompt = "/ "
	si.Width = max(0, width-4)

	return Model{
		list:        l,
		keys:        k,
		theme:       t,
		selectedID:  selected,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// SetRecords replaces the rows. title names the bucket and total is the
// unfiltered bucket size. The cursor stays on the same email when it is
// still present.
func (m *Model) SetRecords(records []model.EmailRecord, title string, total int, selectedID string) tea.Cmd {
	m.title = title
	m.total = total
	*m.selectedID = selectedID

	var cursorID string
	if it, ok := m.list.SelectedItem().(Item); ok {
		cursorID = it.Record.ID
	}

	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = Item{Record: r}
	}
	cmd := m.list.SetItems(items)

	if i := slices.IndexFunc(records, func(r model.EmailRecord) bool { return r.ID == cursorID }); i >= 0 {
		m.list.Select(i)
	} else if m.list.Index() >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
	return cmd
}

// Highlighted returns the email under the cursor.
func (m Model) Highlighted() (model.EmailRecord, bool) {
	it, ok := m.list.SelectedItem().(Item)
	if !ok {
		return model.EmailRecord{}, false
	}
	return it.Record, true
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// SearchText returns the current search input.
func (m Model) SearchText() string {
	return m.searchInput.Value()
}

// StartSearch focuses the search input, seeded with text.
func (m *Model) StartSearch(text string) tea.Cmd {
	m.searchMode = true
	m.searchInput.SetValue(text)
	m.searchInput.CursorEnd()
	return m.searchInput.Focus()
}

// SetSearchText replaces the query shown in the search bar without
// focusing it.
func (m *Model) SetSearchText(text string) {
	m.searchMode = false
	m.searchInput.Blur()
	m.searchInput.SetValue(text)
}

// Update handles messages for the list pane.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Select):
			it, ok := m.list.SelectedItem().(Item)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return OpenMsg{ID: it.Record.ID} }

		case key.Matches(msg, m.keys.Search):
			return m, m.StartSearch(m.searchInput.Value())
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys edits the query live. enter keeps it, esc clears it.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		return m, func() tea.Msg { return SearchMsg{} }
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if after := m.searchInput.Value(); after != before {
		return m, tea.Batch(cmd, func() tea.Msg { return SearchMsg{Text: after} })
	}
	return m, cmd
}

// View renders the bucket title, count line, search bar and rows.
func (m Model) View() string {
	t := m.theme
	header := t.Title.Render(m.title) + "  " + t.Count.Render(fmt.Sprintf("%d emails", m.total))

	var search string
	if m.searchMode || m.searchInput.Value() != "" {
		search = m.searchInput.View()
	}

	var body string
	if len(m.list.Items()) == 0 {
		msg := "No emails in this bucket."
		if m.searchInput.Value() != "" {
			msg = "No emails match your search."
		}
		body = t.Empty.Width(m.width).Height(max(1, m.height-2)).Render(msg)
	} else {
		body = m.list.View()
	}

	parts := []string{header}
	if search != "" {
		parts = append(parts, search)
	} else {
		parts = append(parts, "")
	}
	parts = append(parts, body)
	return lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(0, height-2))
	m.searchInput.Width = max(0, width-4)
}
