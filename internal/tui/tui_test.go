package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tidystreak/internal/app"
	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/habits"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/notifier"
	"github.com/julianstephens/tidystreak/internal/storage/sqlite"
	"github.com/julianstephens/tidystreak/internal/tui/components/board"
	habitsview "github.com/julianstephens/tidystreak/internal/tui/components/habits"
)

var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func setupModel(t *testing.T, names ...string) (Model, *app.Service) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "tidystreak.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	n := 0
	svc := app.New(store, notifier.NewQueue(store),
		app.WithClock(func() time.Time { return testNow }),
		app.WithIDs(func() string {
			n++
			return fmt.Sprintf("id-%02d", n)
		}),
	)

	var ids []string
	for _, name := range names {
		h, err := svc.AddHabit(habits.Input{Name: name, ColorHex: "34C759"})
		if err != nil {
			t.Fatalf("AddHabit(%q) error = %v", name, err)
		}
		ids = append(ids, h.ID)
	}
	if len(ids) > 0 {
		if _, err := svc.NewDay(ids); err != nil {
			t.Fatalf("NewDay() error = %v", err)
		}
	}
	return NewModel(svc), svc
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want tui.Model", next)
	}
	return out, cmd
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func cardIDs(m Model, status models.CardStatus) []string {
	var ids []string
	for _, c := range m.BoardModel.Board().Column(status) {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestNewModelLoadsBoard(t *testing.T) {
	m, _ := setupModel(t, "Read", "Stretch")

	if m.State != constants.StateBoard {
		t.Errorf("State = %v, want StateBoard", m.State)
	}
	if got := len(m.BoardModel.Board().Cards); got != 2 {
		t.Errorf("board has %d cards, want 2", got)
	}
	if got := len(m.HabitsModel.Habits()); got != 2 {
		t.Errorf("habits list has %d habits, want 2", got)
	}
	if got := m.SettingsModel.Settings().Timezone; got != "UTC" {
		t.Errorf("settings timezone = %q, want UTC", got)
	}
}

func TestTabCycling(t *testing.T) {
	m, _ := setupModel(t)

	want := []constants.SessionState{constants.StateHabits, constants.StateSettings, constants.StateBoard}
	for i, w := range want {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.State != w {
			t.Fatalf("after %d tabs State = %v, want %v", i+1, m.State, w)
		}
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.State != constants.StateSettings {
		t.Errorf("after shift+tab State = %v, want StateSettings", m.State)
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupModel(t)

	m, cmd := update(t, m, keyMsg("q"))
	if !m.Quitting {
		t.Error("Quitting = false after q")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestMoveCard(t *testing.T) {
	m, _ := setupModel(t, "Read", "Stretch", "Walk")
	first := cardIDs(m, models.StatusTodo)[0]

	// The board key emits a move message for the selected card
	m, cmd := update(t, m, keyMsg("2"))
	if cmd == nil {
		t.Fatal("pressing 2 on a TODO card should emit a move")
	}
	msg := cmd()
	move, ok := msg.(board.MoveCardMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want board.MoveCardMsg", msg)
	}
	if move.ID != first || move.Target != models.StatusDoing {
		t.Errorf("move = %+v, want %s to DOING", move, first)
	}

	m, _ = update(t, m, msg)
	if got := cardIDs(m, models.StatusDoing); len(got) != 1 || got[0] != first {
		t.Errorf("DOING = %v, want [%s]", got, first)
	}
	if !strings.Contains(m.Status, "DOING") {
		t.Errorf("Status = %q, want it to mention DOING", m.Status)
	}
}

func TestMoveCardWIPLimit(t *testing.T) {
	m, _ := setupModel(t, "Read", "Stretch", "Walk")
	todo := cardIDs(m, models.StatusTodo)

	for _, id := range todo[:2] {
		m, _ = update(t, m, board.MoveCardMsg{ID: id, Target: models.StatusDoing})
	}
	m, _ = update(t, m, board.MoveCardMsg{ID: todo[2], Target: models.StatusDoing})

	if got := len(cardIDs(m, models.StatusDoing)); got != constants.WIPLimit {
		t.Errorf("DOING has %d cards, want %d", got, constants.WIPLimit)
	}
	if !strings.Contains(m.Warning, "WIP limit") {
		t.Errorf("Warning = %q, want WIP limit message", m.Warning)
	}
	if !strings.Contains(m.View(), "WIP limit") {
		t.Error("View() does not show the WIP warning")
	}
}

func TestMoveCardDoneUpdatesStreak(t *testing.T) {
	m, _ := setupModel(t, "Read")
	id := cardIDs(m, models.StatusTodo)[0]

	m, _ = update(t, m, board.MoveCardMsg{ID: id, Target: models.StatusDone})

	if !strings.Contains(m.Status, "1 day streak") {
		t.Errorf("Status = %q, want streak of 1", m.Status)
	}
	if got := m.HabitsModel.Habits()[0].CurrentStreak; got != 1 {
		t.Errorf("habit streak = %d, want 1", got)
	}
}

func TestStartTimerOpensForm(t *testing.T) {
	m, _ := setupModel(t, "Read")
	id := cardIDs(m, models.StatusTodo)[0]
	m, _ = update(t, m, board.MoveCardMsg{ID: id, Target: models.StatusDoing})

	m, _ = update(t, m, board.StartTimerMsg{ID: id})
	if m.State != constants.StateStartTimer {
		t.Fatalf("State = %v, want StateStartTimer", m.State)
	}
	if m.TimerCardID != id {
		t.Errorf("TimerCardID = %q, want %q", m.TimerCardID, id)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State != constants.StateBoard {
		t.Errorf("esc left State = %v, want StateBoard", m.State)
	}
}

func TestNewDayAsksBeforeReplacing(t *testing.T) {
	m, _ := setupModel(t, "Read")

	m, cmd := update(t, m, board.NewDayMsg{})
	if cmd == nil {
		t.Fatal("expected a confirmation command")
	}
	msg := cmd()
	if _, ok := msg.(constants.ConfirmationMsg); !ok {
		t.Fatalf("cmd() = %T, want constants.ConfirmationMsg", msg)
	}

	m, _ = update(t, m, msg)
	if m.State != constants.StateConfirmation {
		t.Fatalf("State = %v, want StateConfirmation", m.State)
	}
	if m.PendingAction == nil {
		t.Error("PendingAction not set")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State != constants.StateBoard {
		t.Errorf("esc left State = %v, want StateBoard", m.State)
	}
	if m.PendingAction != nil {
		t.Error("PendingAction should be cleared on cancel")
	}
}

func TestNewDayWithoutActiveHabits(t *testing.T) {
	m, _ := setupModel(t)

	m, _ = update(t, m, board.NewDayMsg{})
	if m.State != constants.StateBoard {
		t.Errorf("State = %v, want StateBoard", m.State)
	}
	if !strings.Contains(m.Warning, "No active habits") {
		t.Errorf("Warning = %q", m.Warning)
	}
}

func TestHabitToggle(t *testing.T) {
	m, svc := setupModel(t, "Read")
	id := m.HabitsModel.Habits()[0].ID

	m, _ = update(t, m, habitsview.ToggleHabitMsg{ID: id})

	h, err := svc.FindHabit(id, false)
	if err != nil {
		t.Fatalf("FindHabit() error = %v", err)
	}
	if h.IsActive {
		t.Error("habit still active after toggle")
	}
	if !strings.Contains(m.Status, "inactive") {
		t.Errorf("Status = %q", m.Status)
	}
}

func TestHabitDeleteAndRestore(t *testing.T) {
	m, svc := setupModel(t, "Read")
	id := m.HabitsModel.Habits()[0].ID
	m.State = constants.StateHabits

	m, _ = update(t, m, habitsview.DeleteHabitMsg{ID: id})
	if m.State != constants.StateConfirmDelete {
		t.Fatalf("State = %v, want StateConfirmDelete", m.State)
	}
	m, _ = update(t, m, keyMsg("y"))
	if m.State != constants.StateHabits {
		t.Errorf("State = %v, want StateHabits", m.State)
	}
	if _, err := svc.FindHabit(id, false); !app.IsNotFound(err) {
		t.Errorf("FindHabit() after delete error = %v, want not found", err)
	}
	listed := m.HabitsModel.Habits()
	if len(listed) != 1 || listed[0].IsLive() {
		t.Errorf("habits list = %+v, want the deleted habit", listed)
	}

	m, _ = update(t, m, habitsview.RestoreHabitMsg{ID: id})
	m, _ = update(t, m, keyMsg("n"))
	if _, err := svc.FindHabit(id, false); !app.IsNotFound(err) {
		t.Error("answering n should not restore the habit")
	}

	m, _ = update(t, m, habitsview.RestoreHabitMsg{ID: id})
	m, _ = update(t, m, keyMsg("y"))
	if _, err := svc.FindHabit(id, false); err != nil {
		t.Errorf("FindHabit() after restore error = %v", err)
	}
	if !strings.Contains(m.Status, "Restored") {
		t.Errorf("Status = %q", m.Status)
	}
}

func TestFormsSwallowGlobalKeys(t *testing.T) {
	m, _ := setupModel(t)
	m.State = constants.StateHabits

	m, _ = update(t, m, habitsview.AddHabitMsg{})
	if m.State != constants.StateAddHabit {
		t.Fatalf("State = %v, want StateAddHabit", m.State)
	}

	m, _ = update(t, m, keyMsg("q"))
	if m.Quitting {
		t.Error("q should be typed into the form, not quit")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.State != constants.StateAddHabit {
		t.Errorf("tab switched State to %v inside a form", m.State)
	}
}
