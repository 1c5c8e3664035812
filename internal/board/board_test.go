package board

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/models"
)

var now = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func newSnapshot(statuses ...models.CardStatus) Snapshot {
	var snap Snapshot
	for i, s := range statuses {
		habitID := fmt.Sprintf("h%d", i+1)
		snap.Habits = append(snap.Habits, models.Habit{ID: habitID, Name: "Habit " + habitID, Emoji: "📝", IsActive: true})
		card := models.Card{
			ID:        fmt.Sprintf("c%d", i+1),
			HabitID:   habitID,
			HabitName: "Habit " + habitID,
			Emoji:     "📝",
			Status:    s,
			CreatedAt: now.Add(-time.Hour),
		}
		if s == models.StatusDoing {
			t := now.Add(-30 * time.Minute)
			card.MovedToDoingAt = &t
		}
		snap.Cards = append(snap.Cards, card)
	}
	return snap
}

func TestTransitionWIPLimit(t *testing.T) {
	snap := newSnapshot(models.StatusDoing, models.StatusDoing, models.StatusTodo)

	res, err := Transition(snap, "c3", models.StatusDoing, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeRejectedWIP {
		t.Errorf("Outcome = %v, want %v", res.Outcome, OutcomeRejectedWIP)
	}
	if len(res.Effects) != 0 {
		t.Errorf("rejected transition emitted effects: %+v", res.Effects)
	}
	if diff := cmp.Diff(snap, res.Snapshot); diff != "" {
		t.Errorf("rejected transition changed state (-before +after):\n%s", diff)
	}

	// Completing one DOING card frees a slot
	res, err = Transition(snap, "c1", models.StatusDone, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err = Transition(res.Snapshot, "c3", models.StatusDoing, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeMoved {
		t.Errorf("Outcome = %v, want moved", res.Outcome)
	}
	if got := DoingCount(res.Snapshot.Cards); got != 2 {
		t.Errorf("DoingCount = %d, want 2", got)
	}
}

func TestTransitionDoingCardAlreadyDoingIsUnchangedNotRejected(t *testing.T) {
	snap := newSnapshot(models.StatusDoing, models.StatusDoing)

	res, err := Transition(snap, "c1", models.StatusDoing, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeUnchanged {
		t.Errorf("Outcome = %v, want unchanged", res.Outcome)
	}
}

func TestTransitionSameStatusIsIdempotent(t *testing.T) {
	for _, s := range models.Statuses {
		t.Run(string(s), func(t *testing.T) {
			snap := newSnapshot(s)
			res, err := Transition(snap, "c1", s, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Outcome != OutcomeUnchanged {
				t.Errorf("Outcome = %v, want unchanged", res.Outcome)
			}
			if len(res.Effects) != 0 || res.Habit != nil {
				t.Errorf("same-status move had side effects: %+v", res)
			}
			if diff := cmp.Diff(snap, res.Snapshot); diff != "" {
				t.Errorf("state changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestTransitionEnterDoingStampsOnce(t *testing.T) {
	snap := newSnapshot(models.StatusTodo)

	res, err := Transition(snap, "c1", models.StatusDoing, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Card.MovedToDoingAt == nil || !res.Card.MovedToDoingAt.Equal(now) {
		t.Errorf("MovedToDoingAt = %v, want %v", res.Card.MovedToDoingAt, now)
	}
	if len(res.Effects) != 0 {
		t.Errorf("entering DOING emitted effects: %+v", res.Effects)
	}
}

func TestTransitionLeavingDoingClearsTimer(t *testing.T) {
	for _, target := range []models.CardStatus{models.StatusTodo, models.StatusDone} {
		t.Run(string(target), func(t *testing.T) {
			snap := newSnapshot(models.StatusDoing)
			started, err := StartTimer(snap, "c1", 30, now)
			if err != nil {
				t.Fatalf("StartTimer() error = %v", err)
			}

			res, err := Transition(started.Snapshot, "c1", target, now.Add(10*time.Minute))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			c := res.Card
			if c.TimerDurationMin != nil || c.TimerStartedAt != nil || c.MovedToDoingAt != nil {
				t.Errorf("leaving DOING left fields set: %+v", c)
			}
			want := []models.Effect{models.CancelEffect("card-timer-c1")}
			if diff := cmp.Diff(want, res.Effects); diff != "" {
				t.Errorf("effects mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransitionLeavingDoingWithoutTimerStillCancels(t *testing.T) {
	snap := newSnapshot(models.StatusDoing)

	res, err := Transition(snap, "c1", models.StatusTodo, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Effects) != 1 || res.Effects[0].Kind != models.EffectCancel {
		t.Errorf("effects = %+v, want one cancel", res.Effects)
	}
}

func TestTransitionCompletionIsStampedOnce(t *testing.T) {
	snap := newSnapshot(models.StatusTodo)

	first, err := Transition(snap, "c1", models.StatusDone, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Card.CompletedAt == nil || !first.Card.CompletedAt.Equal(now) {
		t.Fatalf("CompletedAt = %v, want %v", first.Card.CompletedAt, now)
	}
	if first.Habit == nil || first.Habit.CurrentStreak != 1 {
		t.Fatalf("habit streak not updated: %+v", first.Habit)
	}

	later := now.Add(2 * time.Hour)
	back, err := Transition(first.Snapshot, "c1", models.StatusTodo, later)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Card.CompletedAt == nil || !back.Card.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt reset on DONE->TODO: %v", back.Card.CompletedAt)
	}

	again, err := Transition(back.Snapshot, "c1", models.StatusDone, later)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.Card.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt changed on second DONE: %v", again.Card.CompletedAt)
	}
	if again.Habit != nil {
		t.Errorf("streak updated twice for one card: %+v", again.Habit)
	}
	if got := again.Snapshot.Habits[0].CurrentStreak; got != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got)
	}
}

func TestTransitionCompletionForRemovedHabitOnlyTouchesCard(t *testing.T) {
	snap := newSnapshot(models.StatusTodo)
	deleted := now.Add(-time.Minute)
	snap.Habits[0].DeletedAt = &deleted

	res, err := Transition(snap, "c1", models.StatusDone, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Habit != nil {
		t.Errorf("deleted habit updated: %+v", res.Habit)
	}
	if res.Card.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}

	snap = newSnapshot(models.StatusTodo)
	snap.Habits = nil
	if _, err := Transition(snap, "c1", models.StatusDone, now); err != nil {
		t.Errorf("missing habit should not fail: %v", err)
	}
}

func TestTransitionAllCrossMovesAllowed(t *testing.T) {
	for _, from := range models.Statuses {
		for _, to := range models.Statuses {
			if from == to {
				continue
			}
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				res, err := Transition(newSnapshot(from), "c1", to, now)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if res.Outcome != OutcomeMoved || res.Card.Status != to {
					t.Errorf("Outcome = %v, Status = %s", res.Outcome, res.Card.Status)
				}
			})
		}
	}
}

func TestTransitionErrors(t *testing.T) {
	snap := newSnapshot(models.StatusTodo)

	if _, err := Transition(snap, "missing", models.StatusDone, now); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("err = %v, want ErrCardNotFound", err)
	}
	if _, err := Transition(snap, "c1", models.CardStatus("ARCHIVED"), now); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	snap := newSnapshot(models.StatusDoing, models.StatusTodo)
	before := snap.Clone()

	if _, err := Transition(snap, "c1", models.StatusDone, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(before, snap); diff != "" {
		t.Errorf("input snapshot mutated (-before +after):\n%s", diff)
	}
}

func TestRandomTransitionsNeverExceedWIPLimit(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	snap := newSnapshot(models.StatusTodo, models.StatusTodo, models.StatusTodo, models.StatusTodo, models.StatusTodo)
	clock := now

	for i := 0; i < 500; i++ {
		id := snap.Cards[rng.Intn(len(snap.Cards))].ID
		target := models.Statuses[rng.Intn(len(models.Statuses))]
		clock = clock.Add(time.Minute)

		res, err := Transition(snap, id, target, clock)
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		snap = res.Snapshot

		if got := DoingCount(snap.Cards); got > constants.WIPLimit {
			t.Fatalf("step %d: DoingCount = %d", i, got)
		}
		for _, c := range snap.Cards {
			if (c.TimerDurationMin == nil) != (c.TimerStartedAt == nil) {
				t.Fatalf("step %d: half-set timer on %s", i, c.ID)
			}
			if c.Status != models.StatusDoing && c.MovedToDoingAt != nil {
				t.Fatalf("step %d: %s outside DOING has MovedToDoingAt", i, c.ID)
			}
		}
		for _, h := range snap.Habits {
			if h.LongestStreak < h.CurrentStreak {
				t.Fatalf("step %d: habit %s longest < current", i, h.ID)
			}
		}
	}
}

func TestStartTimer(t *testing.T) {
	snap := newSnapshot(models.StatusDoing, models.StatusTodo)

	res, err := StartTimer(snap, "c1", 30, now)
	if err != nil {
		t.Fatalf("StartTimer() error = %v", err)
	}
	if *res.Card.TimerDurationMin != 30 || !res.Card.TimerStartedAt.Equal(now) {
		t.Errorf("timer fields = %v / %v", res.Card.TimerDurationMin, res.Card.TimerStartedAt)
	}
	if len(res.Effects) != 1 {
		t.Fatalf("effects = %+v, want one schedule", res.Effects)
	}
	n := res.Effects[0].Notification
	if res.Effects[0].Kind != models.EffectSchedule || n.ID != "card-timer-c1" || !n.FireAt.Equal(now.Add(30*time.Minute)) {
		t.Errorf("unexpected effect: %+v", res.Effects[0])
	}

	if _, err := StartTimer(res.Snapshot, "c1", 15, now); !errors.Is(err, ErrTimerAlreadySet) {
		t.Errorf("err = %v, want ErrTimerAlreadySet", err)
	}
	if _, err := StartTimer(snap, "c2", 15, now); !errors.Is(err, ErrNotDoing) {
		t.Errorf("err = %v, want ErrNotDoing", err)
	}
	if _, err := StartTimer(snap, "c1", 45, now); !errors.Is(err, ErrInvalidTimerDuration) {
		t.Errorf("err = %v, want ErrInvalidTimerDuration", err)
	}
	if _, err := StartTimer(snap, "nope", 15, now); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("err = %v, want ErrCardNotFound", err)
	}
}

func TestRemainingAndExpired(t *testing.T) {
	snap := newSnapshot(models.StatusDoing)
	res, err := StartTimer(snap, "c1", 15, now)
	if err != nil {
		t.Fatalf("StartTimer() error = %v", err)
	}
	card := res.Card

	if got, ok := Remaining(card, now.Add(5*time.Minute)); !ok || got != 10*time.Minute {
		t.Errorf("Remaining = %v, %v", got, ok)
	}
	if Expired(card, now.Add(14*time.Minute)) {
		t.Error("expired too early")
	}
	if !Expired(card, now.Add(15*time.Minute)) {
		t.Error("not expired at end")
	}
	if got, _ := Remaining(card, now.Add(time.Hour)); got != 0 {
		t.Errorf("Remaining after expiry = %v", got)
	}
	if _, ok := Remaining(snap.Cards[0], now); ok {
		t.Error("Remaining reported a timer on a card without one")
	}
}
