package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/tui/handlers"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string

	switch m.State {
	case constants.StateBoard:
		content = docStyle.Render(m.BoardModel.View())
	case constants.StateHabits:
		content = docStyle.Render(m.HabitsModel.View())
	case constants.StateSettings:
		content = m.SettingsModel.View()
	case constants.StateAddHabit, constants.StateEditHabit, constants.StateStartTimer,
		constants.StateNewDay, constants.StateEditSettings, constants.StateConfirmation:
		content = docStyle.Render(m.Form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirm("Delete this habit? Its cards stay in history and it can be restored.")
	case constants.StateConfirmRestore:
		content = m.viewConfirm("Restore this habit?")
	}

	parts := []string{m.viewTabs(), m.viewStatus(), content}
	if handlers.IsMainView(m.State) {
		parts = append(parts, m.Help.View(m))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	titles := []struct {
		title string
		state constants.SessionState
	}{
		{"Board", constants.StateBoard},
		{"Habits", constants.StateHabits},
		{"Settings", constants.StateSettings},
	}
	var tabs []string
	for _, t := range titles {
		if m.State == t.state {
			tabs = append(tabs, activeTabStyle.Render(t.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.FormError != "":
		return dangerStyle.Render(m.FormError)
	case m.Warning != "":
		return warningStyle.Render(m.Warning)
	case m.Status != "":
		return statusStyle.Render(m.Status)
	}
	return ""
}

func (m Model) viewConfirm(question string) string {
	return lipgloss.Place(m.Width, m.Height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
