package models

import (
	"fmt"
	"strings"
	"time"
)

// CardStatus is the Kanban column a card sits in
type CardStatus string

const (
	StatusTodo  CardStatus = "TODO"
	StatusDoing CardStatus = "DOING"
	StatusDone  CardStatus = "DONE"
)

// Statuses lists the columns in board order
var Statuses = []CardStatus{StatusTodo, StatusDoing, StatusDone}

// Valid reports whether s is one of the three board columns
func (s CardStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// ParseCardStatus accepts a status name in any case ("todo", "Doing", "DONE")
func ParseCardStatus(s string) (CardStatus, error) {
	status := CardStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid card status %q (expected todo, doing or done)", s)
	}
	return status, nil
}

// Card is one day's instance of a habit on the board.
// Habit fields are copied at generation time so the card survives habit edits and deletion.
type Card struct {
	ID               string     `json:"id"`
	HabitID          string     `json:"habit_id"`
	HabitName        string     `json:"habit_name"`
	Emoji            string     `json:"emoji"`
	ColorHex         string     `json:"color_hex"`
	Status           CardStatus `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	MovedToDoingAt   *time.Time `json:"moved_to_doing_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	TimerDurationMin *int       `json:"timer_duration_min,omitempty"`
	TimerStartedAt   *time.Time `json:"timer_started_at,omitempty"`
}

// Label returns the emoji and habit name
func (c Card) Label() string {
	return c.Emoji + " " + c.HabitName
}

// HasTimer reports whether a timer has been started on the card
func (c Card) HasTimer() bool {
	return c.TimerDurationMin != nil && c.TimerStartedAt != nil
}

// TimerEnd returns the moment the card's timer expires
func (c Card) TimerEnd() (time.Time, bool) {
	if !c.HasTimer() {
		return time.Time{}, false
	}
	return c.TimerStartedAt.Add(time.Duration(*c.TimerDurationMin) * time.Minute), true
}

// Clone returns a deep copy so callers can mutate pointer fields freely
func (c Card) Clone() Card {
	out := c
	out.MovedToDoingAt = cloneTime(c.MovedToDoingAt)
	out.CompletedAt = cloneTime(c.CompletedAt)
	out.TimerStartedAt = cloneTime(c.TimerStartedAt)
	if c.TimerDurationMin != nil {
		d := *c.TimerDurationMin
		out.TimerDurationMin = &d
	}
	return out
}

// Clone returns a deep copy of the habit
func (h Habit) Clone() Habit {
	out := h
	out.LastCompletedDate = cloneTime(h.LastCompletedDate)
	out.DeletedAt = cloneTime(h.DeletedAt)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
