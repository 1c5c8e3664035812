// Package reminders builds the local notifications the app schedules:
// card timers, per-habit daily reminders and the morning/evening board reminders.
package reminders

import (
	"fmt"
	"time"

	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/utils"
)

const (
	morningTitle = "Good Morning! ☀️"
	eveningTitle = "Time to wrap up! 🌙"

	morningBody = "Your board is ready for today. Let's get things done!"
	eveningBody = "Don't forget to complete your cards and keep your streak alive!"

	timerBody         = "Time's up! Don't forget to finish this task."
	habitReminderBody = "Don't forget to complete this habit today!"
)

// CardTimerID is the notification identifier for a card's timer.
func CardTimerID(cardID string) string {
	return constants.CardTimerPrefix + cardID
}

// HabitReminderID is the notification identifier for a habit's daily reminder.
func HabitReminderID(habitID string) string {
	return constants.HabitReminderPrefix + habitID
}

// CardTimer builds the one-shot notification fired when a card's timer runs out.
func CardTimer(card models.Card, fireAt time.Time) models.Notification {
	return models.Notification{
		ID:     CardTimerID(card.ID),
		Title:  card.Label(),
		Body:   timerBody,
		FireAt: fireAt,
	}
}

// HabitReminder builds the daily reminder for h, firing next at its reminder time.
func HabitReminder(h models.Habit, now time.Time) (models.Notification, error) {
	t, err := utils.ParseTime(h.ReminderTime)
	if err != nil {
		return models.Notification{}, fmt.Errorf("invalid reminder time %q: %w", h.ReminderTime, err)
	}
	return models.Notification{
		ID:          HabitReminderID(h.ID),
		Title:       fmt.Sprintf("%s Time for: %s", h.Emoji, h.Name),
		Body:        habitReminderBody,
		FireAt:      utils.NextOccurrence(now, t.Hour(), t.Minute()),
		RepeatDaily: true,
	}, nil
}

// HabitReminderEffects returns the effects needed to move from before to after.
// before is nil for a newly created habit. Nothing is emitted when the reminder
// and the text it shows are unchanged.
func HabitReminderEffects(before *models.Habit, after models.Habit, now time.Time) ([]models.Effect, error) {
	if before != nil && !reminderChanged(*before, after) {
		return nil, nil
	}

	var effects []models.Effect
	if before != nil && before.ReminderEnabled {
		effects = append(effects, models.CancelEffect(HabitReminderID(before.ID)))
	}
	if after.ReminderEnabled && after.IsLive() {
		n, err := HabitReminder(after, now)
		if err != nil {
			return nil, err
		}
		effects = append(effects, models.ScheduleEffect(n))
	}
	return effects, nil
}

func reminderChanged(a, b models.Habit) bool {
	if a.ReminderEnabled != b.ReminderEnabled {
		return true
	}
	if !b.ReminderEnabled {
		return false
	}
	return a.ReminderTime != b.ReminderTime || a.Name != b.Name || a.Emoji != b.Emoji
}

// Daily returns the effects that reschedule the morning and evening reminders.
// The two daily identifiers are always cancelled first; timer and habit
// notifications are left alone. In smart mode the morning reminder is only
// scheduled when there are active habits and the evening reminder only when
// today's board still has open cards.
func Daily(settings models.Settings, activeHabits, openCards int, now time.Time) []models.Effect {
	effects := []models.Effect{
		models.CancelEffect(constants.MorningNotificationID),
		models.CancelEffect(constants.EveningNotificationID),
	}
	if !settings.NotificationsEnabled {
		return effects
	}

	if settings.MorningReminderEnabled && (!settings.SmartReminders || activeHabits > 0) {
		body := morningBody
		if settings.SmartReminders {
			body = morningSmartBody(activeHabits)
		}
		effects = append(effects, models.ScheduleEffect(models.Notification{
			ID:          constants.MorningNotificationID,
			Title:       morningTitle,
			Body:        body,
			FireAt:      utils.NextOccurrence(now, constants.MorningReminderHour, 0),
			RepeatDaily: true,
		}))
	}

	if settings.EveningReminderEnabled && (!settings.SmartReminders || openCards > 0) {
		body := eveningBody
		if settings.SmartReminders {
			body = eveningSmartBody(openCards)
		}
		effects = append(effects, models.ScheduleEffect(models.Notification{
			ID:          constants.EveningNotificationID,
			Title:       eveningTitle,
			Body:        body,
			FireAt:      utils.NextOccurrence(now, constants.EveningReminderHour, 0),
			RepeatDaily: true,
		}))
	}

	return effects
}

func morningSmartBody(activeHabits int) string {
	if activeHabits == 1 {
		return "You have 1 active habit. Time to generate today's card!"
	}
	return fmt.Sprintf("You have %d active habits. Time to generate today's cards!", activeHabits)
}

func eveningSmartBody(openCards int) string {
	if openCards == 1 {
		return "You still have 1 open card. Don't forget to complete it!"
	}
	return fmt.Sprintf("You still have %d open cards. Keep your streak alive!", openCards)
}
