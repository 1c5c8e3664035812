package handlers

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/tui/components/settings"
	"github.com/julianstephens/tidystreak/internal/tui/state"
)

// HandleEditSettingsState handles the edit settings state
func HandleEditSettingsState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = ""
		m.State = constants.StateSettings
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		newSettings := models.Settings{
			Timezone:               strings.TrimSpace(m.SettingsForm.Timezone),
			NotificationsEnabled:   m.SettingsForm.NotificationsEnabled,
			MorningReminderEnabled: m.SettingsForm.MorningReminderEnabled,
			EveningReminderEnabled: m.SettingsForm.EveningReminderEnabled,
			SmartReminders:         m.SettingsForm.SmartReminders,
		}

		if !report(m, "✓ Settings saved", m.App.SaveSettings(newSettings)) {
			m.FormError = "Failed to update settings: " + m.FormError
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		if err := m.ReloadSettings(); err != nil {
			m.FormError = err.Error()
		} else {
			m.FormError = ""
		}
		// The timezone decides which day the board shows
		refresh(m)
		m.State = constants.StateSettings
	case huh.StateAborted:
		m.FormError = ""
		m.State = constants.StateSettings
	}
	return tea.Batch(cmds...)
}

// HandleSettingsMessages handles messages from the settings component
func HandleSettingsMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case settings.EditSettingsMsg:
		current, err := m.App.Settings()
		if err != nil {
			m.FormError = "Failed to load settings: " + err.Error()
			current = models.DefaultSettings()
		} else {
			m.FormError = ""
		}

		m.SettingsForm = &state.SettingsFormModel{
			Timezone:               current.Timezone,
			NotificationsEnabled:   current.NotificationsEnabled,
			MorningReminderEnabled: current.MorningReminderEnabled,
			EveningReminderEnabled: current.EveningReminderEnabled,
			SmartReminders:         current.SmartReminders,
		}
		m.Form = NewSettingsForm(m.SettingsForm)
		m.State = constants.StateEditSettings
		return true, m.Form.Init()
	}
	return false, nil
}
