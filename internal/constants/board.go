package constants

const (
	// WIPLimit is the maximum number of cards allowed in DOING at once
	WIPLimit = 2

	// MaxHabits is the maximum number of live (non-deleted) habits
	MaxHabits = 20

	// ManyActiveHabitsWarning is the active habit count at which the UI warns
	ManyActiveHabitsWarning = 10

	DefaultHabitEmoji = "📝"
	DefaultHabitColor = "007AFF"

	// Notification identifiers
	MorningNotificationID = "morning"
	EveningNotificationID = "evening"
	CardTimerPrefix       = "card-timer-"
	HabitReminderPrefix   = "habit-"

	MorningReminderHour = 8
	EveningReminderHour = 20
)

// TimerDurations are the permitted card timer lengths, in minutes
var TimerDurations = []int{15, 30, 60, 90}

// HabitColorPalette is the set of colors assigned to new habits at random
var HabitColorPalette = []string{"007AFF", "FF9500", "FF3B30", "34C759", "5856D6", "FF2D55", "5AC8FA"}

// IsValidTimerDuration reports whether minutes is one of TimerDurations
func IsValidTimerDuration(minutes int) bool {
	for _, d := range TimerDurations {
		if d == minutes {
			return true
		}
	}
	return false
}
