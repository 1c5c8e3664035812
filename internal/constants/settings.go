package constants

const (
	SettingTimezone               = "timezone"
	SettingNotificationsEnabled   = "notifications_enabled"
	SettingMorningReminderEnabled = "morning_reminder_enabled"
	SettingEveningReminderEnabled = "evening_reminder_enabled"
	SettingSmartReminders         = "smart_reminders"

	// Default Settings Values
	DefaultTimezone               = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled   = true
	DefaultMorningReminderEnabled = true
	DefaultEveningReminderEnabled = true
	DefaultSmartReminders         = true
)
