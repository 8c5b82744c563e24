package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/email-triage/internal/model"
	"github.com/nhle/email-triage/internal/ui/command"
)

// executeCommand handles a command from the command palette.
func (m *Model) executeCommand(cmd command.CommandMsg) tea.Cmd {
	switch cmd.Name {
	case "important", "regular":
		b, _ := model.ParseBucket(cmd.Name)
		return m.switchBucket(b)
	case "refresh", "r":
		return m.refresh()
	case "theme":
		return m.toggleTheme()
	case "search", "s":
		m.listView.SetSearchText(cmd.Arg)
		return m.search(cmd.Arg)
	case "clear":
		m.listView.SetSearchText("")
		return m.search("")
	case "logout":
		return m.logout("")
	case "quit", "q":
		m.ctrl.ReleaseResize()
		return tea.Quit
	default:
		m.notice = "Unknown command: " + cmd.Name
		return nil
	}
}
