package streak

import (
	"testing"
	"time"

	"github.com/julianstephens/tidystreak/internal/models"
)

func ptr(t time.Time) *time.Time { return &t }

func TestApply(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2024, 6, d, h, 0, 0, 0, time.UTC) }

	tests := []struct {
		name        string
		habit       models.Habit
		now         time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "first completion starts at one",
			habit:       models.Habit{},
			now:         day(10, 9),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "consecutive day extends",
			habit:       models.Habit{CurrentStreak: 3, LongestStreak: 5, LastCompletedDate: ptr(day(9, 22))},
			now:         day(10, 9),
			wantCurrent: 4,
			wantLongest: 5,
		},
		{
			name:        "gap resets to one",
			habit:       models.Habit{CurrentStreak: 4, LongestStreak: 7, LastCompletedDate: ptr(day(7, 9))},
			now:         day(10, 9),
			wantCurrent: 1,
			wantLongest: 7,
		},
		{
			name:        "same day is unchanged",
			habit:       models.Habit{CurrentStreak: 2, LongestStreak: 2, LastCompletedDate: ptr(day(10, 8))},
			now:         day(10, 21),
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "extension raises longest",
			habit:       models.Habit{CurrentStreak: 5, LongestStreak: 5, LastCompletedDate: ptr(day(9, 9))},
			now:         day(10, 9),
			wantCurrent: 6,
			wantLongest: 6,
		},
		{
			name:        "last completion in the future is a no-op on current",
			habit:       models.Habit{CurrentStreak: 3, LongestStreak: 3, LastCompletedDate: ptr(day(12, 9))},
			now:         day(10, 9),
			wantCurrent: 3,
			wantLongest: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.habit, tt.now)
			if got.CurrentStreak != tt.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.wantCurrent)
			}
			if got.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.wantLongest)
			}
			if got.LastCompletedDate == nil || !got.LastCompletedDate.Equal(tt.now) {
				t.Errorf("LastCompletedDate = %v, want %v", got.LastCompletedDate, tt.now)
			}
			if got.LongestStreak < got.CurrentStreak {
				t.Errorf("LongestStreak %d < CurrentStreak %d", got.LongestStreak, got.CurrentStreak)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	last := time.Date(2024, 6, 9, 9, 0, 0, 0, time.UTC)
	h := models.Habit{CurrentStreak: 1, LongestStreak: 1, LastCompletedDate: &last}

	_ = Apply(h, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))

	if h.CurrentStreak != 1 || !h.LastCompletedDate.Equal(last) {
		t.Errorf("input habit was modified: %+v", h)
	}
}

func TestApplyUsesCalendarDaysInLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	// 23:30 and 00:10 the next calendar day are 40 minutes apart but one day apart
	last := time.Date(2024, 3, 9, 23, 30, 0, 0, ny)
	h := models.Habit{CurrentStreak: 2, LongestStreak: 2, LastCompletedDate: &last}
	got := Apply(h, time.Date(2024, 3, 10, 0, 10, 0, 0, ny))
	if got.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got.CurrentStreak)
	}

	// Across the spring-forward night the next day is still exactly one day later
	last = time.Date(2024, 3, 10, 1, 0, 0, 0, ny)
	h = models.Habit{CurrentStreak: 1, LongestStreak: 4, LastCompletedDate: &last}
	got = Apply(h, time.Date(2024, 3, 11, 0, 30, 0, 0, ny))
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak across DST = %d, want 2", got.CurrentStreak)
	}
}

func TestLongestNeverBelowCurrent(t *testing.T) {
	h := models.Habit{}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	// Completion pattern in days since start: extend, same-day, gap, extend, ...
	steps := []int{0, 1, 1, 2, 5, 6, 7, 7, 8, 20, 21}
	for _, s := range steps {
		h = Apply(h, now.AddDate(0, 0, s))
		if h.LongestStreak < h.CurrentStreak {
			t.Fatalf("after day %d: longest %d < current %d", s, h.LongestStreak, h.CurrentStreak)
		}
	}
	if h.LongestStreak != 4 {
		t.Errorf("LongestStreak = %d, want 4", h.LongestStreak)
	}
	if h.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", h.CurrentStreak)
	}
}

func TestIsBroken(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	older := now.AddDate(0, 0, -3)

	if IsBroken(models.Habit{}, now) {
		t.Error("habit without completions reported broken")
	}
	if IsBroken(models.Habit{CurrentStreak: 2, LastCompletedDate: &yesterday}, now) {
		t.Error("streak completed yesterday reported broken")
	}
	if !IsBroken(models.Habit{CurrentStreak: 2, LastCompletedDate: &older}, now) {
		t.Error("streak with a gap not reported broken")
	}
}
