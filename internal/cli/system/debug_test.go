package system

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/julianstephens/tidystreak/internal/habits"
	"github.com/julianstephens/tidystreak/internal/models"
)

func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := debugOut
	debugOut = &buf
	t.Cleanup(func() { debugOut = orig })
	return &buf
}

func TestDebugDBPathCmd(t *testing.T) {
	ctx, dbPath := setupTestDB(t)
	buf := captureDebug(t)

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug db-path command failed: %v", err)
	}
	var out map[string]string
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if out["path"] != dbPath {
		t.Errorf("path = %q, want %q", out["path"], dbPath)
	}
}

func TestDebugDumpHabitCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)
	h, err := ctx.App.AddHabit(habits.Input{Name: "Read", Emoji: "📚"})
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	buf := captureDebug(t)
	if err := (&DebugDumpHabitCmd{ID: h.ID}).Run(ctx); err != nil {
		t.Fatalf("dump habit failed: %v", err)
	}
	var got models.Habit
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a habit: %v", err)
	}
	if got.ID != h.ID || got.Name != "Read" || got.Emoji != "📚" {
		t.Errorf("dumped habit = %+v", got)
	}

	err = (&DebugDumpHabitCmd{ID: "missing"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "habit not found") {
		t.Errorf("dump of missing habit error = %v", err)
	}
}

func TestDebugDumpBoardCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)
	h, err := ctx.App.AddHabit(habits.Input{Name: "Read"})
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	res, err := ctx.App.NewDay([]string{h.ID})
	if err != nil {
		t.Fatalf("failed to generate board: %v", err)
	}

	buf := captureDebug(t)
	if err := (&DebugDumpBoardCmd{}).Run(ctx); err != nil {
		t.Fatalf("dump board failed: %v", err)
	}
	var out struct {
		Date  string        `json:"date"`
		Doing int           `json:"doing"`
		Cards []models.Card `json:"cards"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if out.Date != "2025-06-02" || len(out.Cards) != 1 || out.Cards[0].ID != res.Create[0].ID {
		t.Errorf("dumped board = %+v", out)
	}

	buf.Reset()
	if err := (&DebugDumpCardCmd{ID: res.Create[0].ID}).Run(ctx); err != nil {
		t.Fatalf("dump card failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"status": "TODO"`) {
		t.Errorf("dumped card = %s", buf.String())
	}
}

func TestDebugDumpSettingsAndReminders(t *testing.T) {
	ctx, _ := setupTestDB(t)
	buf := captureDebug(t)

	if err := (&DebugDumpSettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("dump settings failed: %v", err)
	}
	var settings models.Settings
	if err := json.Unmarshal(buf.Bytes(), &settings); err != nil {
		t.Fatalf("output is not settings: %v", err)
	}
	if settings.Timezone != "UTC" {
		t.Errorf("dumped timezone = %q", settings.Timezone)
	}

	buf.Reset()
	if err := (&DebugDumpRemindersCmd{}).Run(ctx); err != nil {
		t.Fatalf("dump reminders failed: %v", err)
	}
}
