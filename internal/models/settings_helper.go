package models

import (
	"fmt"

	"github.com/julianstephens/tidystreak/internal/constants"
)

// DefaultSettings returns the settings written by init
func DefaultSettings() Settings {
	return Settings{
		Timezone:               constants.DefaultTimezone,
		NotificationsEnabled:   constants.DefaultNotificationsEnabled,
		MorningReminderEnabled: constants.DefaultMorningReminderEnabled,
		EveningReminderEnabled: constants.DefaultEveningReminderEnabled,
		SmartReminders:         constants.DefaultSmartReminders,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys missing from data keep their default value.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotificationsEnabled:
			b, err := parseBool(key, value)
			if err != nil {
				return Settings{}, err
			}
			settings.NotificationsEnabled = b
		case constants.SettingMorningReminderEnabled:
			b, err := parseBool(key, value)
			if err != nil {
				return Settings{}, err
			}
			settings.MorningReminderEnabled = b
		case constants.SettingEveningReminderEnabled:
			b, err := parseBool(key, value)
			if err != nil {
				return Settings{}, err
			}
			settings.EveningReminderEnabled = b
		case constants.SettingSmartReminders:
			b, err := parseBool(key, value)
			if err != nil {
				return Settings{}, err
			}
			settings.SmartReminders = b
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:               settings.Timezone,
		constants.SettingNotificationsEnabled:   fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingMorningReminderEnabled: fmt.Sprintf("%v", settings.MorningReminderEnabled),
		constants.SettingEveningReminderEnabled: fmt.Sprintf("%v", settings.EveningReminderEnabled),
		constants.SettingSmartReminders:         fmt.Sprintf("%v", settings.SmartReminders),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}

func parseBool(key, value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("parsing %s: invalid boolean %q", key, value)
}
