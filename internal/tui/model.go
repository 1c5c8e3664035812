// Package tui is the interactive board. It talks to the store only through
// app.Service, so the TUI and the CLI commands share the same rules.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tidystreak/internal/app"
	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/tui/state"
)

type Model struct {
	state.Model
}

func NewModel(svc *app.Service) Model {
	return Model{Model: state.New(svc)}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.Keys.Tab, m.Keys.Quit, m.Keys.Help}
	switch m.State {
	case constants.StateBoard:
		bk := m.BoardModel.Keys()
		keys = append(keys, bk.Forward, bk.Backward, bk.Timer, bk.NewDay)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.Keys.Tab, m.Keys.ShiftTab, m.Keys.Quit, m.Keys.Help, m.Keys.Refresh}

	var navigation, actions []key.Binding
	switch m.State {
	case constants.StateBoard:
		bk := m.BoardModel.Keys()
		navigation = []key.Binding{bk.Up, bk.Down, bk.Left, bk.Right}
		actions = []key.Binding{bk.Forward, bk.Backward, bk.Todo, bk.Doing, bk.Done, bk.Timer, bk.NewDay}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.BoardModel.Init()
}
