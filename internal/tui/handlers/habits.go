package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tidystreak/internal/constants"
	domain "github.com/julianstephens/tidystreak/internal/habits"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/tui/components/habits"
	"github.com/julianstephens/tidystreak/internal/tui/state"
)

func habitInput(fm *state.HabitFormModel) domain.Input {
	return domain.Input{
		Name:            fm.Name,
		Emoji:           fm.Emoji,
		ColorHex:        fm.Color,
		ReminderEnabled: fm.ReminderEnabled,
		ReminderTime:    fm.ReminderTime,
	}
}

// HandleAddHabitState handles the add habit state
func HandleAddHabitState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = ""
		m.State = constants.StateHabits
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		h, err := m.App.AddHabit(habitInput(m.HabitForm))
		if !report(m, fmt.Sprintf("✓ Added habit %s", h.Label()), err) {
			// Stay in the form so the user can fix the input or cancel with ESC
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		refresh(m)
		if domain.TooManyActive(m.HabitsModel.Habits()) {
			m.Warning = fmt.Sprintf("You have %d active habits. Consider focusing on fewer.",
				domain.ActiveCount(m.HabitsModel.Habits()))
		}
		m.FormError = ""
		m.State = constants.StateHabits
	case huh.StateAborted:
		m.FormError = ""
		m.State = constants.StateHabits
	}
	return tea.Batch(cmds...)
}

// HandleEditHabitState handles the edit habit state
func HandleEditHabitState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = ""
		m.EditingHabitID = ""
		m.State = constants.StateHabits
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		h, err := m.App.EditHabit(m.EditingHabitID, habitInput(m.HabitForm))
		if !report(m, fmt.Sprintf("✓ Updated habit %s", h.Label()), err) {
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		refresh(m)
		m.FormError = ""
		m.EditingHabitID = ""
		m.State = constants.StateHabits
	case huh.StateAborted:
		m.FormError = ""
		m.EditingHabitID = ""
		m.State = constants.StateHabits
	}
	return tea.Batch(cmds...)
}

// HandleHabitMessages handles messages from the habits component
func HandleHabitMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.FormError = ""
		m.HabitForm = &state.HabitFormModel{}
		m.Form = NewHabitForm(m.HabitForm)
		m.State = constants.StateAddHabit
		return true, m.Form.Init()

	case habits.EditHabitMsg:
		h, ok := findHabit(m.HabitsModel.Habits(), msg.ID)
		if !ok {
			return true, nil
		}
		m.FormError = ""
		m.EditingHabitID = h.ID
		m.HabitForm = &state.HabitFormModel{
			Name:            h.Name,
			Emoji:           h.Emoji,
			Color:           h.ColorHex,
			ReminderEnabled: h.ReminderEnabled,
			ReminderTime:    h.ReminderTime,
		}
		m.Form = NewHabitForm(m.HabitForm)
		m.State = constants.StateEditHabit
		return true, m.Form.Init()

	case habits.ToggleHabitMsg:
		m.FormError = ""
		h, err := m.App.ToggleHabit(msg.ID)
		active := "inactive"
		if h.IsActive {
			active = "active"
		}
		if report(m, fmt.Sprintf("%s is now %s", h.Label(), active), err) {
			refresh(m)
		}
		return true, nil

	case habits.DeleteHabitMsg:
		m.HabitToDeleteID = msg.ID
		m.State = constants.StateConfirmDelete
		return true, nil

	case habits.RestoreHabitMsg:
		m.HabitToRestoreID = msg.ID
		m.State = constants.StateConfirmRestore
		return true, nil
	}
	return false, nil
}

func findHabit(hs []models.Habit, id string) (models.Habit, bool) {
	for _, h := range hs {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}
