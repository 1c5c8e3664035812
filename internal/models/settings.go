package models

// Settings represents application-wide settings
type Settings struct {
	Timezone               string `json:"timezone"`                 // IANA timezone name or "Local"; decides which calendar day is "today"
	NotificationsEnabled   bool   `json:"notifications_enabled"`    // whether the notify command delivers anything
	MorningReminderEnabled bool   `json:"morning_reminder_enabled"` // 08:00 "generate today's cards" reminder
	EveningReminderEnabled bool   `json:"evening_reminder_enabled"` // 20:00 "open cards" reminder
	SmartReminders         bool   `json:"smart_reminders"`          // only schedule daily reminders when there is something to do
}
