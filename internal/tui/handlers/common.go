package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tidystreak/internal/app"
	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/habits"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/tui/state"
	"github.com/julianstephens/tidystreak/internal/utils"
)

// NewHabitForm creates a form for adding or editing a habit
func NewHabitForm(fm *state.HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Emoji").
				Description("Leave blank for " + constants.DefaultHabitEmoji).
				Value(&fm.Emoji),
			huh.NewInput().
				Title("Color").
				Description("Hex like 34C759; leave blank for a random color").
				Value(&fm.Color).
				Validate(func(s string) error {
					_, err := habits.NormalizeColor(s)
					return err
				}),
			huh.NewConfirm().
				Title("Daily reminder").
				Value(&fm.ReminderEnabled),
			huh.NewInput().
				Title("Reminder time (HH:MM)").
				Value(&fm.ReminderTime).
				Validate(func(s string) error {
					if !fm.ReminderEnabled && strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := utils.ParseTime(strings.TrimSpace(s)); err != nil {
						return habits.ErrInvalidReminderTime
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewSettingsForm creates a form for editing settings
func NewSettingsForm(fm *state.SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone").
				Description("IANA name such as Europe/Berlin, or Local").
				Value(&fm.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(strings.TrimSpace(s)) {
						return fmt.Errorf("invalid timezone %q", s)
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Notifications").
				Value(&fm.NotificationsEnabled),
			huh.NewConfirm().
				Title(fmt.Sprintf("Morning reminder (%02d:00)", constants.MorningReminderHour)).
				Value(&fm.MorningReminderEnabled),
			huh.NewConfirm().
				Title(fmt.Sprintf("Evening reminder (%02d:00)", constants.EveningReminderHour)).
				Value(&fm.EveningReminderEnabled),
			huh.NewConfirm().
				Title("Smart reminders").
				Description("Only remind when there is something to do").
				Value(&fm.SmartReminders),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewTimerForm creates a form for picking a timer length
func NewTimerForm(fm *state.TimerFormModel, card models.Card) *huh.Form {
	opts := make([]huh.Option[int], 0, len(constants.TimerDurations))
	for _, d := range constants.TimerDurations {
		opts = append(opts, huh.NewOption(strconv.Itoa(d)+" min", d))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Timer for " + card.Label()).
				Options(opts...).
				Value(&fm.Minutes),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewDayForm creates the habit picker for a new day. Every option starts selected.
func NewDayForm(fm *state.NewDayFormModel, active []models.Habit) *huh.Form {
	opts := make([]huh.Option[string], 0, len(active))
	for _, h := range active {
		opts = append(opts, huh.NewOption(h.Label(), h.ID).Selected(true))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Habits for today").
				Description("Space toggles, enter confirms.").
				Options(opts...).
				Value(&fm.Selected),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmationForm creates a yes/no form
func NewConfirmationForm(fm *state.ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}

// report records the outcome of a service call on the model. A NotifyError
// means the change was saved, so it counts as success with a warning.
func report(m *state.Model, success string, err error) bool {
	m.Warning = ""
	switch {
	case err == nil:
		m.Status = success
		return true
	case app.IsNotifyError(err):
		m.Status = success
		m.Warning = "⚠ " + err.Error()
		return true
	}
	m.Status = ""
	m.FormError = err.Error()
	return false
}
