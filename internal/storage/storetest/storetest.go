// Package storetest runs the same behavioural checks against every storage.Provider.
package storetest

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/storage"
)

// Factory returns a freshly initialized, empty store
type Factory func(t *testing.T) storage.Provider

var base = time.Date(2025, 3, 10, 9, 30, 0, 123456789, time.UTC)

func intPtr(i int) *int { return &i }

func timePtr(t time.Time) *time.Time { return &t }

func habit(id, name string, created time.Time) models.Habit {
	return models.Habit{
		ID:        id,
		Name:      name,
		Emoji:     "🏃",
		ColorHex:  "34C759",
		IsActive:  true,
		CreatedAt: created,
	}
}

func card(id, habitID string, created time.Time) models.Card {
	return models.Card{
		ID:        id,
		HabitID:   habitID,
		HabitName: "Run",
		Emoji:     "🏃",
		ColorHex:  "34C759",
		Status:    models.StatusTodo,
		CreatedAt: created,
	}
}

// Run exercises newStore against the Provider contract
func Run(t *testing.T, newStore Factory) {
	t.Run("Settings", func(t *testing.T) { testSettings(t, newStore(t)) })
	t.Run("Habits", func(t *testing.T) { testHabits(t, newStore(t)) })
	t.Run("SoftDelete", func(t *testing.T) { testSoftDelete(t, newStore(t)) })
	t.Run("Cards", func(t *testing.T) { testCards(t, newStore(t)) })
	t.Run("SaveTransition", func(t *testing.T) { testSaveTransition(t, newStore(t)) })
	t.Run("Notifications", func(t *testing.T) { testNotifications(t, newStore(t)) })
}

func testSettings(t *testing.T, s storage.Provider) {
	got, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() after Init: %v", err)
	}
	if diff := cmp.Diff(models.DefaultSettings(), got); diff != "" {
		t.Errorf("default settings mismatch (-want +got):\n%s", diff)
	}

	want := models.Settings{
		Timezone:               "America/New_York",
		NotificationsEnabled:   false,
		MorningReminderEnabled: true,
		EveningReminderEnabled: false,
		SmartReminders:         false,
	}
	if err := s.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	got, err = s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func testHabits(t *testing.T, s storage.Provider) {
	run := habit("h1", "Run", base)
	read := habit("h2", "Read", base.Add(time.Minute))
	read.ReminderEnabled = true
	read.ReminderTime = "21:30"

	// Added out of order; reads come back in creation order
	for _, h := range []models.Habit{read, run} {
		if err := s.AddHabit(h); err != nil {
			t.Fatalf("AddHabit(%s) error = %v", h.ID, err)
		}
	}

	got, err := s.GetAllHabits(false)
	if err != nil {
		t.Fatalf("GetAllHabits() error = %v", err)
	}
	if diff := cmp.Diff([]models.Habit{run, read}, got); diff != "" {
		t.Errorf("GetAllHabits mismatch (-want +got):\n%s", diff)
	}

	run.CurrentStreak = 3
	run.LongestStreak = 5
	run.LastCompletedDate = timePtr(base.Add(2 * time.Hour))
	run.IsActive = false
	if err := s.UpdateHabit(run); err != nil {
		t.Fatalf("UpdateHabit() error = %v", err)
	}
	gotRun, err := s.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit() error = %v", err)
	}
	if diff := cmp.Diff(run, gotRun); diff != "" {
		t.Errorf("updated habit mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.GetHabit("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.UpdateHabit(habit("missing", "Ghost", base)); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateHabit(missing) error = %v, want ErrNotFound", err)
	}

	// Live names are unique regardless of case and surrounding space
	if err := s.AddHabit(habit("h3", "  run ", base)); err == nil {
		t.Error("AddHabit() with duplicate live name should fail")
	}
}

func testSoftDelete(t *testing.T, s storage.Provider) {
	h := habit("h1", "Stretch", base)
	if err := s.AddHabit(h); err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}

	deletedAt := base.Add(time.Hour)
	if err := s.DeleteHabit("h1", deletedAt); err != nil {
		t.Fatalf("DeleteHabit() error = %v", err)
	}
	if err := s.DeleteHabit("h1", deletedAt); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteHabit() error = %v, want ErrNotFound", err)
	}

	live, _ := s.GetAllHabits(false)
	if len(live) != 0 {
		t.Errorf("GetAllHabits(false) returned %d habits, want 0", len(live))
	}
	all, _ := s.GetAllHabits(true)
	if len(all) != 1 || all[0].DeletedAt == nil || !all[0].DeletedAt.Equal(deletedAt) {
		t.Fatalf("GetAllHabits(true) = %+v, want the deleted habit", all)
	}

	// The name is free again while the habit is deleted
	if err := s.AddHabit(habit("h2", "stretch", base.Add(2*time.Hour))); err != nil {
		t.Fatalf("AddHabit() reusing a deleted name: %v", err)
	}
	if err := s.DeleteHabit("h2", deletedAt); err != nil {
		t.Fatalf("DeleteHabit(h2) error = %v", err)
	}

	if err := s.RestoreHabit("h1"); err != nil {
		t.Fatalf("RestoreHabit() error = %v", err)
	}
	if err := s.RestoreHabit("h1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second RestoreHabit() error = %v, want ErrNotFound", err)
	}
	got, err := s.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit() error = %v", err)
	}
	if got.DeletedAt != nil {
		t.Errorf("restored habit still has DeletedAt = %v", got.DeletedAt)
	}
}

func testCards(t *testing.T, s storage.Provider) {
	yesterday := base.Add(-24 * time.Hour)
	old := card("old", "h1", yesterday)
	old.Status = models.StatusDone
	old.CompletedAt = timePtr(yesterday.Add(time.Hour))

	todayB := card("b", "h2", base)
	todayA := card("a", "h1", base)

	if err := s.ReplaceCards(nil, []models.Card{old}); err != nil {
		t.Fatalf("ReplaceCards(old) error = %v", err)
	}
	// Same created_at; insertion order wins over id order
	if err := s.ReplaceCards(nil, []models.Card{todayB, todayA}); err != nil {
		t.Fatalf("ReplaceCards(today) error = %v", err)
	}

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got, err := s.GetCardsBetween(start, start.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("GetCardsBetween() error = %v", err)
	}
	if diff := cmp.Diff([]models.Card{todayB, todayA}, got); diff != "" {
		t.Errorf("GetCardsBetween mismatch (-want +got):\n%s", diff)
	}

	// Regenerating replaces today's cards only
	fresh := card("c", "h1", base.Add(time.Minute))
	if err := s.ReplaceCards([]string{"a", "b"}, []models.Card{fresh}); err != nil {
		t.Fatalf("ReplaceCards(regenerate) error = %v", err)
	}
	all, err := s.GetAllCards()
	if err != nil {
		t.Fatalf("GetAllCards() error = %v", err)
	}
	if diff := cmp.Diff([]models.Card{old, fresh}, all); diff != "" {
		t.Errorf("GetAllCards mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.GetCard("a"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCard(deleted) error = %v, want ErrNotFound", err)
	}

	// A failing insert leaves the previous board untouched
	if err := s.ReplaceCards([]string{"c"}, []models.Card{old}); err == nil {
		t.Fatal("ReplaceCards() with duplicate id should fail")
	}
	if _, err := s.GetCard("c"); err != nil {
		t.Errorf("GetCard(c) after rolled back replace: %v", err)
	}
}

func testSaveTransition(t *testing.T, s storage.Provider) {
	h := habit("h1", "Run", base)
	if err := s.AddHabit(h); err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}
	c := card("c1", "h1", base)
	if err := s.ReplaceCards(nil, []models.Card{c}); err != nil {
		t.Fatalf("ReplaceCards() error = %v", err)
	}

	doing := c
	doing.Status = models.StatusDoing
	doing.MovedToDoingAt = timePtr(base.Add(time.Minute))
	doing.TimerDurationMin = intPtr(30)
	doing.TimerStartedAt = timePtr(base.Add(2 * time.Minute))
	if err := s.SaveTransition(doing, nil); err != nil {
		t.Fatalf("SaveTransition(doing) error = %v", err)
	}
	got, err := s.GetCard("c1")
	if err != nil {
		t.Fatalf("GetCard() error = %v", err)
	}
	if diff := cmp.Diff(doing, got); diff != "" {
		t.Errorf("card after DOING mismatch (-want +got):\n%s", diff)
	}

	done := c
	done.Status = models.StatusDone
	done.CompletedAt = timePtr(base.Add(time.Hour))
	h.CurrentStreak = 1
	h.LongestStreak = 1
	h.LastCompletedDate = done.CompletedAt
	if err := s.SaveTransition(done, &h); err != nil {
		t.Fatalf("SaveTransition(done) error = %v", err)
	}
	gotHabit, _ := s.GetHabit("h1")
	if diff := cmp.Diff(h, gotHabit); diff != "" {
		t.Errorf("habit after DONE mismatch (-want +got):\n%s", diff)
	}

	// The card update rolls back when the habit write fails
	again := done
	again.Status = models.StatusTodo
	ghost := habit("ghost", "Ghost", base)
	if err := s.SaveTransition(again, &ghost); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("SaveTransition() with missing habit error = %v, want ErrNotFound", err)
	}
	got, _ = s.GetCard("c1")
	if got.Status != models.StatusDone {
		t.Errorf("card status = %s after rolled back transition, want DONE", got.Status)
	}

	if err := s.SaveTransition(card("missing", "h1", base), nil); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("SaveTransition(missing) error = %v, want ErrNotFound", err)
	}
}

func testNotifications(t *testing.T, s storage.Provider) {
	morning := models.Notification{ID: "morning", Title: "Good morning", Body: "Plan your day", FireAt: base, RepeatDaily: true}
	timer := models.Notification{ID: "card-timer-c1", Title: "🏃 Run", Body: "Time's up!", FireAt: base.Add(time.Hour)}

	for _, n := range []models.Notification{timer, morning} {
		if err := s.SaveNotification(n); err != nil {
			t.Fatalf("SaveNotification(%s) error = %v", n.ID, err)
		}
	}

	due, err := s.GetDueNotifications(base.Add(time.Minute))
	if err != nil {
		t.Fatalf("GetDueNotifications() error = %v", err)
	}
	if diff := cmp.Diff([]models.Notification{morning}, due); diff != "" {
		t.Errorf("due notifications mismatch (-want +got):\n%s", diff)
	}

	// Same id replaces
	timer.FireAt = base.Add(-time.Minute)
	if err := s.SaveNotification(timer); err != nil {
		t.Fatalf("SaveNotification(replace) error = %v", err)
	}
	all, err := s.GetAllNotifications()
	if err != nil {
		t.Fatalf("GetAllNotifications() error = %v", err)
	}
	if diff := cmp.Diff([]models.Notification{timer, morning}, all); diff != "" {
		t.Errorf("all notifications mismatch (-want +got):\n%s", diff)
	}

	if err := s.DeleteNotification(timer.ID); err != nil {
		t.Fatalf("DeleteNotification() error = %v", err)
	}
	if err := s.DeleteNotification(timer.ID); err != nil {
		t.Errorf("DeleteNotification() of unknown id error = %v, want nil", err)
	}
	all, _ = s.GetAllNotifications()
	if len(all) != 1 || all[0].ID != "morning" {
		t.Errorf("GetAllNotifications() = %+v, want only morning", all)
	}
}
