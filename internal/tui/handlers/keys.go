package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/tui/state"
)

var tabs = []constants.SessionState{
	constants.StateBoard,
	constants.StateHabits,
	constants.StateSettings,
}

// IsMainView reports whether s is one of the tabbed views rather than a form or dialog
func IsMainView(s constants.SessionState) bool {
	for _, t := range tabs {
		if t == s {
			return true
		}
	}
	return false
}

// HandleGlobalKeys handles global key presses
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return true, tea.Quit
	}
	if !IsMainView(m.State) {
		// Forms and dialogs own every other key
		return false, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	case key.Matches(msg, m.Keys.Refresh):
		m.Status, m.Warning, m.FormError = "", "", ""
		if err := m.Reload(); err != nil {
			m.FormError = err.Error()
		}
		return true, nil
	case key.Matches(msg, m.Keys.Tab):
		m.State = cycle(m.State, 1)
		return true, nil
	case key.Matches(msg, m.Keys.ShiftTab):
		m.State = cycle(m.State, -1)
		return true, nil
	}
	return false, nil
}

func cycle(s constants.SessionState, step int) constants.SessionState {
	for i, t := range tabs {
		if t == s {
			return tabs[(i+step+len(tabs))%len(tabs)]
		}
	}
	return s
}
