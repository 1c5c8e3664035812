package models

import "time"

// Habit is a recurring practice that produces one card per generated day
type Habit struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Emoji             string     `json:"emoji"`
	ColorHex          string     `json:"color_hex"` // six hex digits, no leading '#'
	IsActive          bool       `json:"is_active"`
	CurrentStreak     int        `json:"current_streak"`
	LongestStreak     int        `json:"longest_streak"`
	LastCompletedDate *time.Time `json:"last_completed_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	ReminderEnabled   bool       `json:"reminder_enabled"`
	ReminderTime      string     `json:"reminder_time,omitempty"` // HH:MM format
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
}

// Label returns the emoji and name as shown on cards and notifications
func (h Habit) Label() string {
	return h.Emoji + " " + h.Name
}

// IsLive reports whether the habit has not been soft deleted
func (h Habit) IsLive() bool {
	return h.DeletedAt == nil
}
