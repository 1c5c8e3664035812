// Package streak derives habit streak statistics from card completions.
package streak

import (
	"time"

	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/utils"
)

// Apply records a completion of h at now and returns the updated habit.
//
// The gap is counted in calendar days in now's location: a completion on the
// day after the last one extends the streak, a longer gap restarts it at 1 and
// a second completion on the same day leaves it unchanged. A last completion
// dated after now (clock moved backwards) also leaves the count unchanged.
func Apply(h models.Habit, now time.Time) models.Habit {
	out := h.Clone()

	if out.LastCompletedDate == nil {
		out.CurrentStreak = 1
	} else {
		gap := utils.DaysBetween(*out.LastCompletedDate, now, now.Location())
		switch {
		case gap == 1:
			out.CurrentStreak++
		case gap > 1:
			out.CurrentStreak = 1
		}
	}

	completed := now
	out.LastCompletedDate = &completed
	if out.CurrentStreak > out.LongestStreak {
		out.LongestStreak = out.CurrentStreak
	}
	return out
}

// IsBroken reports whether the habit's current streak can no longer be extended,
// i.e. more than one calendar day has passed since the last completion.
func IsBroken(h models.Habit, now time.Time) bool {
	if h.LastCompletedDate == nil || h.CurrentStreak == 0 {
		return false
	}
	return utils.DaysBetween(*h.LastCompletedDate, now, now.Location()) > 1
}
