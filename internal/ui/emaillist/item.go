package emaillist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-triage/internal/model"
	"github.com/nhle/email-triage/internal/theme"
)

// PreviewLength is the number of content characters shown in a row.
const PreviewLength = 40

// Preview shortens content to PreviewLength characters, adding "..." when
// anything was cut. Line breaks are folded into spaces.
func Preview(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)
	if len(runes) <= PreviewLength {
		return flat
	}
	return string(runes[:PreviewLength]) + "..."
}

// FormatDate renders a row date: the time for today, otherwise the day.
func FormatDate(d, now time.Time) string {
	d = d.In(now.Location())
	y1, m1, d1 := d.Date()
	y2, m2, d2 := now.Date()
	switch {
	case y1 == y2 && m1 == m2 && d1 == d2:
		return d.Format("15:04")
	case y1 == y2:
		return d.Format("Jan 2")
	default:
		return d.Format("2006-01-02")
	}
}

// Item wraps a record for bubbles/list.
type Item struct {
	Record model.EmailRecord
}

// FilterValue is unused; filtering happens before items reach the list.
func (i Item) FilterValue() string { return i.Record.Subject }

// Delegate renders one email per line.
type Delegate struct {
	theme      *theme.Theme
	selectedID *string
	now        func() time.Time
}

// Height returns the number of lines each item takes.
func (d Delegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d Delegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws the sender line and the preview line of one email.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}
	t := d.theme
	rec := it.Record

	style := t.Row
	if !rec.IsRead {
		style = t.RowUnread
	}
	if index == m.Index() || rec.ID == *d.selectedID {
		style = t.RowSelected
	}

	width := max(0, m.Width()-style.GetHorizontalFrameSize())

	star := "  "
	if model.IsImportant(rec) {
		star = t.Star.Render("★ ")
	}
	date := t.Date.Render(FormatDate(rec.Date, d.now()))
	sender := rec.Sender
	room := width - lipgloss.Width(star) - lipgloss.Width(date) - 1
	if room < 1 {
		room = 1
	}
	sender = truncate(sender, room)
	gap := max(1, width-lipgloss.Width(star)-lipgloss.Width(sender)-lipgloss.Width(date))
	top := star + sender + strings.Repeat(" ", gap) + date

	bottom := truncate(rec.Subject+" · "+Preview(rec.Content), width)
	bottom = t.Preview.Render(bottom)

	fmt.Fprint(w, style.Render(top+"\n"+bottom))
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
