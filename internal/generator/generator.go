// Package generator builds a new day's board from the selected habits.
package generator

import (
	"time"

	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/reminders"
	"github.com/julianstephens/tidystreak/internal/utils"
)

// IDFunc returns a fresh card identifier
type IDFunc func() string

// Result lists what has to change to replace today's board.
// Apply it atomically: remove every card in Delete and insert every card in Create.
type Result struct {
	Delete  []string
	Create  []models.Card
	Effects []models.Effect
}

// Generate replaces today's board.
//
// Every card in existing created on now's calendar day is scheduled for
// deletion; older cards are kept as history. One TODO card is created for each
// live, active habit whose id is in selected, in the order habits are given.
// Unknown and inactive ids in selected are ignored. Deleted cards that carried
// a timer get their pending timer notification cancelled.
func Generate(existing []models.Card, habits []models.Habit, selected []string, now time.Time, newID IDFunc) Result {
	var res Result

	for _, c := range existing {
		if !utils.IsSameDay(c.CreatedAt, now, now.Location()) {
			continue
		}
		res.Delete = append(res.Delete, c.ID)
		if c.HasTimer() {
			res.Effects = append(res.Effects, models.CancelEffect(reminders.CardTimerID(c.ID)))
		}
	}

	want := make(map[string]bool, len(selected))
	for _, id := range selected {
		want[id] = true
	}

	for _, h := range habits {
		if !want[h.ID] || !h.IsActive || !h.IsLive() {
			continue
		}
		// one card per habit even if an id was selected twice
		delete(want, h.ID)
		res.Create = append(res.Create, models.Card{
			ID:        newID(),
			HabitID:   h.ID,
			HabitName: h.Name,
			Emoji:     h.Emoji,
			ColorHex:  h.ColorHex,
			Status:    models.StatusTodo,
			CreatedAt: now,
		})
	}

	return res
}

// DefaultSelection returns the ids of every live, active habit.
// New-day pickers start with all of them selected.
func DefaultSelection(habits []models.Habit) []string {
	var ids []string
	for _, h := range habits {
		if h.IsActive && h.IsLive() {
			ids = append(ids, h.ID)
		}
	}
	return ids
}
