package ui

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/email-triage/internal/theme"
)

// DividerWidth is the number of columns the pane divider occupies.
const DividerWidth = 1

// Layout manages the terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentHeight returns the height available for the panes.
func (l Layout) ContentHeight() int {
	return max(0, l.Height-l.HeaderHeight-l.StatusBarHeight)
}

// ContentTop is the first terminal row of the panes.
func (l Layout) ContentTop() int {
	return l.HeaderHeight
}

// SplitWidths divides the width between list and reader for a split ratio
// given in percent. The divider column is taken from the reader.
func (l Layout) SplitWidths(ratio float64) (list, reader int) {
	list = int(math.Round(float64(l.Width) * ratio / 100))
	list = min(max(list, 0), l.Width)
	reader = max(0, l.Width-list-DividerWidth)
	return list, reader
}

// DividerX returns the column of the divider for a split ratio.
func (l Layout) DividerX(ratio float64) int {
	list, _ := l.SplitWidths(ratio)
	return list
}

// OnDivider reports whether the cell (x, y) grabs the divider. One column
// either side is accepted.
func (l Layout) OnDivider(x, y int, ratio float64) bool {
	if y < l.ContentTop() || y >= l.ContentTop()+l.ContentHeight() {
		return false
	}
	d := l.DividerX(ratio)
	return x >= d-1 && x <= d+1
}

// RenderHeader renders the top bar with a title on the left and status on
// the right.
func (l Layout) RenderHeader(t theme.Theme, title, status string) string {
	left := t.Header.Render(title)
	right := t.Header.Render(status)
	gap := max(0, l.Width-lipgloss.Width(left)-lipgloss.Width(right))

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(t.Header.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}

// RenderStatusBar renders the bottom bar. A non-empty banner replaces the
// hints.
func (l Layout) RenderStatusBar(t theme.Theme, hints, banner string) string {
	style := t.StatusBar
	text := hints
	if banner != "" {
		style = t.Banner
		text = banner + "  (x to dismiss)"
	}
	return style.Width(l.Width).MaxWidth(l.Width).Render(text)
}

// RenderDivider draws the vertical divider for the content height.
func (l Layout) RenderDivider(t theme.Theme, dragging bool) string {
	style := t.Divider
	if dragging {
		style = t.Dragging
	}
	h := l.ContentHeight()
	lines := make([]string, h)
	for i := range lines {
		lines[i] = "│"
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderWithFrame stacks header, content and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	content = lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}
