package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/email-triage/internal/theme"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want CommandMsg
	}{
		{"refresh", CommandMsg{Name: "refresh"}},
		{"  Regular ", CommandMsg{Name: "regular"}},
		{"search quarterly report", CommandMsg{Name: "search", Arg: "quarterly report"}},
		{"search   spaced  ", CommandMsg{Name: "search", Arg: "spaced"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestEnterEmitsCommand(t *testing.T) {
	th := theme.New(true)
	m := New(&th, 80, 24)
	m.Focus()
	m.input.SetValue("search invoice")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg{Name: "search", Arg: "invoice"}, cmd())
	assert.Empty(t, m.input.Value())
}

func TestEmptyEnterCancels(t *testing.T) {
	th := theme.New(true)
	m := New(&th, 80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}
