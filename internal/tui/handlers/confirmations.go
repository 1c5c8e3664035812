package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/tui/state"
)

// HandleConfirmationState handles the generic confirmation state
func HandleConfirmationState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.PendingAction = nil
		m.State = m.PreviousState
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		m.State = m.PreviousState
		if m.ConfirmationForm.Confirmed && m.PendingAction != nil {
			cmds = append(cmds, m.PendingAction())
		}
		m.PendingAction = nil
	case huh.StateAborted:
		m.PendingAction = nil
		m.State = m.PreviousState
	}
	return tea.Batch(cmds...)
}

// HandleConfirmDeleteState handles the habit delete confirmation state
func HandleConfirmDeleteState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if m.HabitToDeleteID != "" {
				h, err := m.App.DeleteHabit(m.HabitToDeleteID)
				if report(m, fmt.Sprintf("Deleted %s", h.Label()), err) {
					refresh(m)
				}
				m.HabitToDeleteID = ""
			}
			m.State = constants.StateHabits
		case "n", "N", "esc":
			m.HabitToDeleteID = ""
			m.State = constants.StateHabits
		}
	}
	return nil
}

// HandleConfirmRestoreState handles the habit restore confirmation state
func HandleConfirmRestoreState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if m.HabitToRestoreID != "" {
				h, err := m.App.RestoreHabit(m.HabitToRestoreID)
				if report(m, fmt.Sprintf("Restored %s", h.Label()), err) {
					refresh(m)
				}
				m.HabitToRestoreID = ""
			}
			m.State = constants.StateHabits
		case "n", "N", "esc":
			m.HabitToRestoreID = ""
			m.State = constants.StateHabits
		}
	}
	return nil
}

// HandleConfirmationMessages handles messages related to confirmations
func HandleConfirmationMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case constants.ConfirmationMsg:
		m.ConfirmationForm = &state.ConfirmationFormModel{
			Message: msg.Message,
		}
		m.PendingAction = msg.Action
		m.Form = NewConfirmationForm(m.ConfirmationForm)
		m.PreviousState = m.State
		m.State = constants.StateConfirmation
		return true, m.Form.Init()
	}
	return false, nil
}
