// Package board implements the card lifecycle for today's Kanban board.
//
// Every operation takes a Snapshot, never mutates it, and returns the new
// state together with the notification effects the caller must execute once
// the new state has been persisted.
package board

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/reminders"
	"github.com/julianstephens/tidystreak/internal/streak"
)

var (
	ErrCardNotFound         = errors.New("card not found")
	ErrInvalidStatus        = errors.New("invalid card status")
	ErrNotDoing             = errors.New("timer can only be started on a card in DOING")
	ErrTimerAlreadySet      = errors.New("timer already set for this card")
	ErrInvalidTimerDuration = errors.New("invalid timer duration")
)

// Outcome describes what a transition did
type Outcome int

const (
	OutcomeMoved Outcome = iota
	OutcomeUnchanged
	OutcomeRejectedWIP
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeRejectedWIP:
		return "rejected (WIP limit)"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Snapshot is the state a board operation works on: today's cards and the
// habits that own them.
type Snapshot struct {
	Cards  []models.Card
	Habits []models.Habit
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Cards:  make([]models.Card, len(s.Cards)),
		Habits: make([]models.Habit, len(s.Habits)),
	}
	for i, c := range s.Cards {
		out.Cards[i] = c.Clone()
	}
	for i, h := range s.Habits {
		out.Habits[i] = h.Clone()
	}
	return out
}

// Result is the outcome of a board operation
type Result struct {
	Snapshot Snapshot
	// Card is the card after the operation
	Card models.Card
	// Habit is set when the operation updated the owning habit's streak
	Habit   *models.Habit
	Effects []models.Effect
	Outcome Outcome
}

// Transition moves a card to target.
//
// Entering DOING is refused with OutcomeRejectedWIP when the WIP limit is
// already reached. Entering DONE for the first time stamps CompletedAt and
// updates the owning habit's streak. Leaving DOING clears the timer and emits
// a cancel for the card's timer notification. Moving a card to the column it
// is already in changes nothing.
func Transition(snap Snapshot, cardID string, target models.CardStatus, now time.Time) (Result, error) {
	if !target.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	idx := indexOf(snap.Cards, cardID)
	if idx < 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}

	out := snap.Clone()
	card := out.Cards[idx]

	if card.Status == target {
		return Result{Snapshot: out, Card: card, Outcome: OutcomeUnchanged}, nil
	}

	if target == models.StatusDoing && DoingCount(out.Cards) >= constants.WIPLimit {
		return Result{Snapshot: out, Card: card, Outcome: OutcomeRejectedWIP}, nil
	}

	previous := card.Status
	card.Status = target
	res := Result{Outcome: OutcomeMoved}

	if target == models.StatusDoing && card.MovedToDoingAt == nil {
		t := now
		card.MovedToDoingAt = &t
	}

	if target == models.StatusDone && card.CompletedAt == nil {
		t := now
		card.CompletedAt = &t
		if hi := habitIndex(out.Habits, card.HabitID); hi >= 0 {
			updated := streak.Apply(out.Habits[hi], now)
			out.Habits[hi] = updated
			h := updated.Clone()
			res.Habit = &h
		}
	}

	if previous == models.StatusDoing {
		card.TimerDurationMin = nil
		card.TimerStartedAt = nil
		card.MovedToDoingAt = nil
		res.Effects = append(res.Effects, models.CancelEffect(reminders.CardTimerID(card.ID)))
	}

	out.Cards[idx] = card
	res.Snapshot = out
	res.Card = card.Clone()
	return res, nil
}

// StartTimer starts a countdown of minutes on a DOING card and emits the
// notification to fire when it runs out.
func StartTimer(snap Snapshot, cardID string, minutes int, now time.Time) (Result, error) {
	idx := indexOf(snap.Cards, cardID)
	if idx < 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}
	if !constants.IsValidTimerDuration(minutes) {
		return Result{}, fmt.Errorf("%w: %d minutes (allowed: %v)", ErrInvalidTimerDuration, minutes, constants.TimerDurations)
	}

	out := snap.Clone()
	card := out.Cards[idx]

	if card.Status != models.StatusDoing {
		return Result{}, ErrNotDoing
	}
	if card.TimerDurationMin != nil || card.TimerStartedAt != nil {
		return Result{}, ErrTimerAlreadySet
	}

	d := minutes
	started := now
	card.TimerDurationMin = &d
	card.TimerStartedAt = &started
	out.Cards[idx] = card

	end, _ := card.TimerEnd()
	return Result{
		Snapshot: out,
		Card:     card.Clone(),
		Effects:  []models.Effect{models.ScheduleEffect(reminders.CardTimer(card, end))},
		Outcome:  OutcomeMoved,
	}, nil
}

// Remaining returns the time left on the card's timer. ok is false when no
// timer is set. An expired timer reports zero.
func Remaining(card models.Card, now time.Time) (remaining time.Duration, ok bool) {
	end, ok := card.TimerEnd()
	if !ok {
		return 0, false
	}
	remaining = end.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// Expired reports whether the card has a timer that has run out
func Expired(card models.Card, now time.Time) bool {
	end, ok := card.TimerEnd()
	return ok && !now.Before(end)
}

// DoingCount counts the cards currently in DOING
func DoingCount(cards []models.Card) int {
	n := 0
	for _, c := range cards {
		if c.Status == models.StatusDoing {
			n++
		}
	}
	return n
}

// OpenCount counts the cards that are not DONE
func OpenCount(cards []models.Card) int {
	n := 0
	for _, c := range cards {
		if c.Status != models.StatusDone {
			n++
		}
	}
	return n
}

// Column returns the cards with the given status, keeping their order
func Column(cards []models.Card, status models.CardStatus) []models.Card {
	var out []models.Card
	for _, c := range cards {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the card with the given id
func Find(cards []models.Card, id string) (models.Card, bool) {
	if i := indexOf(cards, id); i >= 0 {
		return cards[i], true
	}
	return models.Card{}, false
}

func indexOf(cards []models.Card, id string) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func habitIndex(habits []models.Habit, id string) int {
	for i, h := range habits {
		if h.ID == id && h.IsLive() {
			return i
		}
	}
	return -1
}
