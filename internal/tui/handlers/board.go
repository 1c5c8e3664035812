package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tidystreak/internal/app"
	kanban "github.com/julianstephens/tidystreak/internal/board"
	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/generator"
	"github.com/julianstephens/tidystreak/internal/logger"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/tui/components/board"
	"github.com/julianstephens/tidystreak/internal/tui/state"
)

// openNewDayMsg opens the habit picker once replacing the board is confirmed
type openNewDayMsg struct{}

// HandleBoardMessages handles messages from the board component
func HandleBoardMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case board.MoveCardMsg:
		m.FormError = ""
		res, err := m.App.Move(msg.ID, msg.Target)
		if err != nil && !app.IsNotifyError(err) {
			report(m, "", err)
			return true, nil
		}
		switch res.Outcome {
		case kanban.OutcomeRejectedWIP:
			m.Status = ""
			m.Warning = fmt.Sprintf("WIP limit reached (%d/%d). Move a card out of DOING first.",
				constants.WIPLimit, constants.WIPLimit)
			return true, nil
		case kanban.OutcomeUnchanged:
			return true, nil
		}

		status := fmt.Sprintf("%s → %s", res.Card.Label(), res.Card.Status)
		if res.Habit != nil {
			status += fmt.Sprintf(" · 🔥 %d day streak", res.Habit.CurrentStreak)
		}
		report(m, status, err)
		refresh(m)
		m.BoardModel.Select(res.Card.ID)
		return true, nil

	case board.StartTimerMsg:
		card, ok := kanban.Find(m.BoardModel.Board().Cards, msg.ID)
		if !ok {
			return true, nil
		}
		m.FormError = ""
		m.TimerCardID = card.ID
		m.TimerForm = &state.TimerFormModel{Minutes: constants.TimerDurations[0]}
		m.Form = NewTimerForm(m.TimerForm, card)
		m.State = constants.StateStartTimer
		return true, m.Form.Init()

	case board.NewDayMsg:
		m.FormError = ""
		if len(m.BoardModel.Board().Cards) > 0 {
			return true, func() tea.Msg {
				return constants.ConfirmationMsg{
					Message: "Replace today's board? Progress on today's cards will be lost.",
					Action: func() tea.Cmd {
						return func() tea.Msg { return openNewDayMsg{} }
					},
				}
			}
		}
		return true, openNewDay(m)

	case openNewDayMsg:
		return true, openNewDay(m)
	}
	return false, nil
}

func openNewDay(m *state.Model) tea.Cmd {
	all, err := m.App.Habits(false)
	if err != nil {
		report(m, "", err)
		return nil
	}
	var active []models.Habit
	for _, h := range all {
		if h.IsActive {
			active = append(active, h)
		}
	}
	if len(active) == 0 {
		m.Status = ""
		m.Warning = "No active habits. Add one in the Habits tab first."
		return nil
	}

	m.NewDayForm = &state.NewDayFormModel{Selected: generator.DefaultSelection(all)}
	m.Form = NewDayForm(m.NewDayForm, active)
	m.State = constants.StateNewDay
	return m.Form.Init()
}

// HandleStartTimerState handles the timer duration picker
func HandleStartTimerState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.TimerCardID = ""
		m.State = constants.StateBoard
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		res, err := m.App.StartTimer(m.TimerCardID, m.TimerForm.Minutes)
		if report(m, fmt.Sprintf("⏱ %d min timer started for %s", m.TimerForm.Minutes, res.Card.Label()), err) {
			refresh(m)
		}
		m.TimerCardID = ""
		m.State = constants.StateBoard
	case huh.StateAborted:
		m.TimerCardID = ""
		m.State = constants.StateBoard
	}
	return tea.Batch(cmds...)
}

// HandleNewDayState handles the new day habit picker
func HandleNewDayState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.State = constants.StateBoard
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		if len(m.NewDayForm.Selected) == 0 {
			m.Status = ""
			m.Warning = "No habits selected, today's board was left unchanged."
			m.State = constants.StateBoard
			break
		}
		res, err := m.App.NewDay(m.NewDayForm.Selected)
		if report(m, fmt.Sprintf("✓ Generated %d card(s) for today", len(res.Create)), err) {
			logger.Debug("New day from TUI", "cards", len(res.Create))
			refresh(m)
		}
		m.State = constants.StateBoard
	case huh.StateAborted:
		m.State = constants.StateBoard
	}
	return tea.Batch(cmds...)
}

// refresh reloads the board and habit views after a change
func refresh(m *state.Model) {
	if err := m.ReloadBoard(); err != nil {
		m.FormError = err.Error()
		return
	}
	if err := m.ReloadHabits(); err != nil {
		m.FormError = err.Error()
	}
}
