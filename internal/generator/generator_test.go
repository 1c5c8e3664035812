package generator

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/tidystreak/internal/models"
)

var now = time.Date(2024, 6, 10, 7, 30, 0, 0, time.UTC)

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func habits(n int) []models.Habit {
	var out []models.Habit
	for i := 1; i <= n; i++ {
		out = append(out, models.Habit{
			ID:       fmt.Sprintf("h%d", i),
			Name:     fmt.Sprintf("Habit %d", i),
			Emoji:    "📝",
			ColorHex: "007AFF",
			IsActive: true,
		})
	}
	return out
}

func TestGenerateReplacesTodaysBoard(t *testing.T) {
	duration := 30
	started := now.Add(-time.Hour)
	existing := []models.Card{
		{ID: "old-1", HabitID: "h1", Status: models.StatusDone, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "old-2", HabitID: "h2", Status: models.StatusDoing, CreatedAt: now.Add(-2 * time.Hour), TimerDurationMin: &duration, TimerStartedAt: &started},
		{ID: "old-3", HabitID: "h3", Status: models.StatusTodo, CreatedAt: now.Add(-time.Hour)},
		{ID: "history", HabitID: "h1", Status: models.StatusDone, CreatedAt: now.AddDate(0, 0, -1)},
	}

	res := Generate(existing, habits(5), []string{"h2", "h4"}, now, sequentialIDs())

	if diff := cmp.Diff([]string{"old-1", "old-2", "old-3"}, res.Delete); diff != "" {
		t.Errorf("Delete mismatch (-want +got):\n%s", diff)
	}

	want := []models.Card{
		{ID: "new-1", HabitID: "h2", HabitName: "Habit 2", Emoji: "📝", ColorHex: "007AFF", Status: models.StatusTodo, CreatedAt: now},
		{ID: "new-2", HabitID: "h4", HabitName: "Habit 4", Emoji: "📝", ColorHex: "007AFF", Status: models.StatusTodo, CreatedAt: now},
	}
	if diff := cmp.Diff(want, res.Create); diff != "" {
		t.Errorf("Create mismatch (-want +got):\n%s", diff)
	}

	wantEffects := []models.Effect{models.CancelEffect("card-timer-old-2")}
	if diff := cmp.Diff(wantEffects, res.Effects); diff != "" {
		t.Errorf("Effects mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateSkipsInactiveDeletedAndUnknown(t *testing.T) {
	hs := habits(3)
	hs[0].IsActive = false
	deleted := now.Add(-time.Hour)
	hs[1].DeletedAt = &deleted

	res := Generate(nil, hs, []string{"h1", "h2", "h3", "h3", "ghost"}, now, sequentialIDs())

	if len(res.Create) != 1 || res.Create[0].HabitID != "h3" {
		t.Errorf("Create = %+v, want one card for h3", res.Create)
	}
}

func TestGenerateEmptySelectionClearsBoard(t *testing.T) {
	existing := []models.Card{{ID: "old", CreatedAt: now}}

	res := Generate(existing, habits(2), nil, now, sequentialIDs())

	if len(res.Create) != 0 {
		t.Errorf("Create = %+v, want none", res.Create)
	}
	if len(res.Delete) != 1 {
		t.Errorf("Delete = %v, want [old]", res.Delete)
	}
}

func TestGenerateUsesHabitOrder(t *testing.T) {
	res := Generate(nil, habits(3), []string{"h3", "h1"}, now, sequentialIDs())
	if len(res.Create) != 2 || res.Create[0].HabitID != "h1" || res.Create[1].HabitID != "h3" {
		t.Errorf("Create order = %+v", res.Create)
	}
}

func TestDefaultSelection(t *testing.T) {
	hs := habits(4)
	hs[1].IsActive = false
	deleted := now
	hs[2].DeletedAt = &deleted

	if diff := cmp.Diff([]string{"h1", "h4"}, DefaultSelection(hs)); diff != "" {
		t.Errorf("DefaultSelection mismatch (-want +got):\n%s", diff)
	}
}
