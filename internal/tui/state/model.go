package state

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tidystreak/internal/app"
	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/logger"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/tui/components/board"
	"github.com/julianstephens/tidystreak/internal/tui/components/habits"
	"github.com/julianstephens/tidystreak/internal/tui/components/settings"
)

// HabitFormModel represents the form model for habit creation and editing
type HabitFormModel struct {
	Name            string
	Emoji           string
	Color           string
	ReminderEnabled bool
	ReminderTime    string
}

// SettingsFormModel represents the form model for settings
type SettingsFormModel struct {
	Timezone               string
	NotificationsEnabled   bool
	MorningReminderEnabled bool
	EveningReminderEnabled bool
	SmartReminders         bool
}

// TimerFormModel represents the form model for starting a card timer
type TimerFormModel struct {
	Minutes int
}

// NewDayFormModel holds the habit ids picked for today's board
type NewDayFormModel struct {
	Selected []string
}

// ConfirmationFormModel represents a yes/no confirmation
type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

// Model represents the shared state for the TUI
type Model struct {
	App              *app.Service
	State            constants.SessionState
	PreviousState    constants.SessionState
	Keys             KeyMap
	Help             help.Model
	BoardModel       board.Model
	HabitsModel      habits.Model
	SettingsModel    settings.Model
	Form             *huh.Form
	HabitForm        *HabitFormModel
	SettingsForm     *SettingsFormModel
	TimerForm        *TimerFormModel
	NewDayForm       *NewDayFormModel
	ConfirmationForm *ConfirmationFormModel
	PendingAction    func() tea.Cmd
	EditingHabitID   string
	TimerCardID      string
	HabitToDeleteID  string
	HabitToRestoreID string
	Status           string // Result of the last action, shown under the tabs
	Warning          string // Set when a change was saved but notifications failed
	FormError        string // Error message to display for form operations
	Quitting         bool
	Width            int
	Height           int
}

// New creates a new state Model
func New(svc *app.Service) Model {
	m := Model{
		App:           svc,
		State:         constants.StateBoard,
		Keys:          DefaultKeyMap(),
		Help:          help.New(),
		BoardModel:    board.New(app.Board{Date: time.Now()}, time.Now()),
		HabitsModel:   habits.New(nil, 0, 0),
		SettingsModel: settings.New(models.DefaultSettings(), 0, 0),
	}
	if err := m.Reload(); err != nil {
		logger.Warn("Failed to load board", "error", err)
		m.FormError = err.Error()
	}
	return m
}

// Reload refreshes every view from the store
func (m *Model) Reload() error {
	if err := m.ReloadBoard(); err != nil {
		return err
	}
	if err := m.ReloadHabits(); err != nil {
		return err
	}
	return m.ReloadSettings()
}

func (m *Model) ReloadBoard() error {
	b, err := m.App.Board()
	if err != nil {
		return err
	}
	now, err := m.App.Now()
	if err != nil {
		return err
	}
	m.BoardModel.SetBoard(b, now)
	return nil
}

func (m *Model) ReloadHabits() error {
	hs, err := m.App.Habits(true)
	if err != nil {
		return err
	}
	m.HabitsModel.SetHabits(hs)
	return nil
}

func (m *Model) ReloadSettings() error {
	s, err := m.App.Settings()
	if err != nil {
		return err
	}
	m.SettingsModel.SetSettings(s)
	return nil
}
