package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/tui/components/board"
	"github.com/julianstephens/tidystreak/internal/tui/handlers"
)

// chromeHeight is the space taken by the tabs, status line and help
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		contentHeight := msg.Height - chromeHeight
		if contentHeight < 0 {
			contentHeight = 0
		}
		m.BoardModel.SetSize(msg.Width, contentHeight)
		m.HabitsModel.SetSize(msg.Width-4, contentHeight)
		m.SettingsModel.SetSize(msg.Width, contentHeight)
		return m, nil

	case board.TickMsg:
		// The countdown keeps running behind forms and other tabs
		m.BoardModel, cmd = m.BoardModel.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, msg); handled {
			return m, cmd
		}
	}

	if handled, cmd := handlers.HandleConfirmationMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleBoardMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleHabitMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleSettingsMessages(&m.Model, msg); handled {
		return m, cmd
	}

	switch m.State {
	case constants.StateAddHabit:
		return m, handlers.HandleAddHabitState(&m.Model, msg)
	case constants.StateEditHabit:
		return m, handlers.HandleEditHabitState(&m.Model, msg)
	case constants.StateStartTimer:
		return m, handlers.HandleStartTimerState(&m.Model, msg)
	case constants.StateNewDay:
		return m, handlers.HandleNewDayState(&m.Model, msg)
	case constants.StateEditSettings:
		return m, handlers.HandleEditSettingsState(&m.Model, msg)
	case constants.StateConfirmation:
		return m, handlers.HandleConfirmationState(&m.Model, msg)
	case constants.StateConfirmDelete:
		return m, handlers.HandleConfirmDeleteState(&m.Model, msg)
	case constants.StateConfirmRestore:
		return m, handlers.HandleConfirmRestoreState(&m.Model, msg)
	case constants.StateBoard:
		m.BoardModel, cmd = m.BoardModel.Update(msg)
	case constants.StateHabits:
		m.HabitsModel, cmd = m.HabitsModel.Update(msg)
	case constants.StateSettings:
		m.SettingsModel, cmd = m.SettingsModel.Update(msg)
	}
	return m, cmd
}
