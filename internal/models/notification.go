package models

import "time"

// Notification is a local notification request keyed by a stable identifier.
// Scheduling an identifier that already exists replaces it.
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	FireAt      time.Time `json:"fire_at"`
	RepeatDaily bool      `json:"repeat_daily"`
}

// EffectKind says what the notification port should do
type EffectKind string

const (
	EffectSchedule EffectKind = "schedule"
	EffectCancel   EffectKind = "cancel"
)

// Effect is a side effect requested by the board core and executed by the caller
// after state has been committed.
type Effect struct {
	Kind         EffectKind   `json:"kind"`
	Notification Notification `json:"notification"`
}

// ScheduleEffect builds a schedule effect
func ScheduleEffect(n Notification) Effect {
	return Effect{Kind: EffectSchedule, Notification: n}
}

// CancelEffect builds a cancel effect for the given identifier
func CancelEffect(id string) Effect {
	return Effect{Kind: EffectCancel, Notification: Notification{ID: id}}
}
