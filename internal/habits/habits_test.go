package habits

import (
	"errors"
	"fmt"
	"testing"
	"time"

	apperrors "github.com/julianstephens/tidystreak/internal/errors"
	"github.com/julianstephens/tidystreak/internal/models"
)

var now = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func idSeq() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func withFixedColor(t *testing.T, color string) {
	t.Helper()
	old := randomColor
	randomColor = func() string { return color }
	t.Cleanup(func() { randomColor = old })
}

func TestCreateDefaults(t *testing.T) {
	withFixedColor(t, "FF9500")

	change, err := Create(nil, Input{Name: "  Read  "}, now, idSeq())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	h := change.Habit
	if h.Name != "Read" || h.Emoji != "📝" || h.ColorHex != "FF9500" || !h.IsActive {
		t.Errorf("unexpected habit: %+v", h)
	}
	if h.CurrentStreak != 0 || h.LongestStreak != 0 || h.LastCompletedDate != nil {
		t.Errorf("new habit should have no streak: %+v", h)
	}
	if len(change.Effects) != 0 {
		t.Errorf("habit without reminder emitted effects: %+v", change.Effects)
	}
}

func TestCreateWithReminder(t *testing.T) {
	change, err := Create(nil, Input{Name: "Walk", Emoji: "🚶", ColorHex: "#34c759", ReminderEnabled: true, ReminderTime: "7:05"}, now, idSeq())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if change.Habit.ColorHex != "34C759" || change.Habit.ReminderTime != "07:05" {
		t.Errorf("unexpected habit: %+v", change.Habit)
	}
	if len(change.Effects) != 1 || change.Effects[0].Notification.ID != "habit-id-1" {
		t.Errorf("effects = %+v", change.Effects)
	}
}

func TestCreateValidation(t *testing.T) {
	existing := []models.Habit{{ID: "a", Name: "Read"}}
	deleted := now
	existing = append(existing, models.Habit{ID: "b", Name: "Swim", DeletedAt: &deleted})

	tests := []struct {
		name    string
		in      Input
		wantErr error
	}{
		{name: "blank name", in: Input{Name: "   "}, wantErr: apperrors.ErrEmptyName},
		{name: "duplicate ignoring case and space", in: Input{Name: " read "}, wantErr: apperrors.ErrDuplicateName},
		{name: "bad color", in: Input{Name: "Run", ColorHex: "blue"}, wantErr: ErrInvalidColor},
		{name: "bad reminder", in: Input{Name: "Run", ReminderEnabled: true, ReminderTime: "soon"}, wantErr: ErrInvalidReminderTime},
		{name: "deleted habit name is free", in: Input{Name: "swim"}, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(existing, tt.in, now, idSeq())
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateCapacity(t *testing.T) {
	var existing []models.Habit
	for i := 0; i < 20; i++ {
		existing = append(existing, models.Habit{ID: fmt.Sprintf("h%d", i), Name: fmt.Sprintf("Habit %d", i)})
	}

	if _, err := Create(existing, Input{Name: "One more"}, now, idSeq()); !errors.Is(err, apperrors.ErrCapacityExceeded) {
		t.Errorf("err = %v, want ErrCapacityExceeded", err)
	}

	// deleted habits do not count toward the cap
	deleted := now
	existing[0].DeletedAt = &deleted
	if _, err := Create(existing, Input{Name: "One more"}, now, idSeq()); err != nil {
		t.Errorf("unexpected error with a free slot: %v", err)
	}
}

func TestEdit(t *testing.T) {
	last := now.AddDate(0, 0, -1)
	current := models.Habit{ID: "a", Name: "Read", Emoji: "📚", ColorHex: "007AFF", IsActive: true, CurrentStreak: 3, LongestStreak: 5, LastCompletedDate: &last}
	existing := []models.Habit{current, {ID: "b", Name: "Write"}}

	t.Run("case-only rename of self is allowed", func(t *testing.T) {
		change, err := Edit(existing, current, Input{Name: "READ", Emoji: "📚"}, now)
		if err != nil {
			t.Fatalf("Edit() error = %v", err)
		}
		if change.Habit.Name != "READ" || change.Habit.ColorHex != "007AFF" {
			t.Errorf("unexpected habit: %+v", change.Habit)
		}
		if change.Habit.CurrentStreak != 3 || change.Habit.LongestStreak != 5 {
			t.Errorf("streak lost on edit: %+v", change.Habit)
		}
	})

	t.Run("collision with another habit", func(t *testing.T) {
		if _, err := Edit(existing, current, Input{Name: "write"}, now); !errors.Is(err, apperrors.ErrDuplicateName) {
			t.Errorf("err = %v, want ErrDuplicateName", err)
		}
	})

	t.Run("reminder change cancels then schedules", func(t *testing.T) {
		withReminder := current
		withReminder.ReminderEnabled = true
		withReminder.ReminderTime = "08:00"

		change, err := Edit(existing, withReminder, Input{Name: "Read", Emoji: "📚", ReminderEnabled: true, ReminderTime: "09:15"}, now)
		if err != nil {
			t.Fatalf("Edit() error = %v", err)
		}
		if len(change.Effects) != 2 || change.Effects[0].Kind != models.EffectCancel || change.Effects[1].Kind != models.EffectSchedule {
			t.Errorf("effects = %+v", change.Effects)
		}
	})
}

func TestToggleActive(t *testing.T) {
	h := models.Habit{ID: "a", IsActive: true}
	if ToggleActive(h).IsActive {
		t.Error("ToggleActive did not deactivate")
	}
	if !ToggleActive(ToggleActive(h)).IsActive {
		t.Error("ToggleActive twice did not reactivate")
	}
}

func TestDeleteAndRestore(t *testing.T) {
	h := models.Habit{ID: "a", Name: "Read", ReminderEnabled: true, ReminderTime: "08:00"}

	del := Delete(h, now)
	if del.Habit.DeletedAt == nil {
		t.Fatal("DeletedAt not set")
	}
	if len(del.Effects) != 1 || del.Effects[0] != models.CancelEffect("habit-a") {
		t.Errorf("effects = %+v", del.Effects)
	}

	restored, err := Restore(nil, del.Habit, now)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if restored.Habit.DeletedAt != nil {
		t.Error("DeletedAt still set after restore")
	}
	if len(restored.Effects) != 1 || restored.Effects[0].Kind != models.EffectSchedule {
		t.Errorf("restore effects = %+v", restored.Effects)
	}

	taken := []models.Habit{{ID: "b", Name: "read"}}
	if _, err := Restore(taken, del.Habit, now); !errors.Is(err, apperrors.ErrDuplicateName) {
		t.Errorf("err = %v, want ErrDuplicateName", err)
	}
	if _, err := Restore(nil, h, now); err == nil {
		t.Error("restoring a live habit should fail")
	}
}

func TestCounts(t *testing.T) {
	deleted := now
	var hs []models.Habit
	for i := 0; i < 12; i++ {
		hs = append(hs, models.Habit{ID: fmt.Sprintf("h%d", i), IsActive: i%4 != 0})
	}
	hs[1].DeletedAt = &deleted

	if got := LiveCount(hs); got != 11 {
		t.Errorf("LiveCount = %d, want 11", got)
	}
	// inactive: 0, 4, 8; deleted: 1
	if got := ActiveCount(hs); got != 8 {
		t.Errorf("ActiveCount = %d, want 8", got)
	}
	if TooManyActive(hs) {
		t.Error("TooManyActive with 8 active")
	}
	hs[0].IsActive, hs[4].IsActive = true, true
	if !TooManyActive(hs) {
		t.Error("TooManyActive false with 10 active")
	}
}

func TestFindByName(t *testing.T) {
	deleted := now
	hs := []models.Habit{
		{ID: "a", Name: "Read", DeletedAt: &deleted},
		{ID: "b", Name: "Read"},
	}
	h, ok := FindByName(hs, "  rEAD ")
	if !ok || h.ID != "b" {
		t.Errorf("FindByName = %+v, %v", h, ok)
	}
	if _, ok := FindByName(hs, "Write"); ok {
		t.Error("found a habit that does not exist")
	}
}
