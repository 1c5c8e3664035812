package app

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/tidystreak/internal/errors"
	"github.com/julianstephens/tidystreak/internal/habits"
	"github.com/julianstephens/tidystreak/internal/logger"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/storage"
)

// Habits returns habits in creation order
func (s *Service) Habits(includeDeleted bool) ([]models.Habit, error) {
	hs, err := s.store.GetAllHabits(includeDeleted)
	if err != nil {
		return nil, apperrors.Persistence("load habits", err)
	}
	return hs, nil
}

// FindHabit looks a habit up by id or by name. Names only match live habits
// unless includeDeleted is set, in which case a deleted habit is returned
// when no live habit has that name.
func (s *Service) FindHabit(ref string, includeDeleted bool) (models.Habit, error) {
	hs, err := s.Habits(true)
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range hs {
		if h.ID == ref && (includeDeleted || h.IsLive()) {
			return h, nil
		}
	}
	if h, ok := habits.FindByName(hs, ref); ok {
		return h, nil
	}
	if includeDeleted {
		// newest first
		for i := len(hs) - 1; i >= 0; i-- {
			if !hs[i].IsLive() && habits.SameName(hs[i].Name, ref) {
				return hs[i], nil
			}
		}
	}
	return models.Habit{}, fmt.Errorf("%w: %q", ErrHabitNotFound, ref)
}

// AddHabit creates a new active habit
func (s *Service) AddHabit(in habits.Input) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.Now()
	if err != nil {
		return models.Habit{}, err
	}
	existing, err := s.Habits(false)
	if err != nil {
		return models.Habit{}, err
	}

	change, err := habits.Create(existing, in, now, s.newID)
	if err != nil {
		return models.Habit{}, err
	}
	if err := s.store.AddHabit(change.Habit); err != nil {
		return models.Habit{}, apperrors.Persistence("add habit", err)
	}
	logger.Info("Habit added", "habit", change.Habit.Name, "id", change.Habit.ID)
	if habits.TooManyActive(append(existing, change.Habit)) {
		logger.Warn("Many active habits", "active", habits.ActiveCount(existing)+1)
	}
	return change.Habit, s.afterHabitChange(now, change.Effects)
}

// EditHabit applies in to the live habit with the given id
func (s *Service) EditHabit(id string, in habits.Input) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.Now()
	if err != nil {
		return models.Habit{}, err
	}
	current, existing, err := s.liveHabit(id)
	if err != nil {
		return models.Habit{}, err
	}

	change, err := habits.Edit(existing, current, in, now)
	if err != nil {
		return models.Habit{}, err
	}
	if err := s.store.UpdateHabit(change.Habit); err != nil {
		return models.Habit{}, apperrors.Persistence("update habit", err)
	}
	logger.Info("Habit updated", "habit", change.Habit.Name, "id", id)
	return change.Habit, s.dispatch(change.Effects)
}

// ToggleHabit flips whether a habit is offered when generating a new day.
// Its reminder is left as it is.
func (s *Service) ToggleHabit(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.Now()
	if err != nil {
		return models.Habit{}, err
	}
	current, _, err := s.liveHabit(id)
	if err != nil {
		return models.Habit{}, err
	}

	updated := habits.ToggleActive(current)
	if err := s.store.UpdateHabit(updated); err != nil {
		return models.Habit{}, apperrors.Persistence("update habit", err)
	}
	logger.Info("Habit toggled", "habit", updated.Name, "active", updated.IsActive)
	return updated, s.afterHabitChange(now, nil)
}

// DeleteHabit soft deletes a habit. Its cards stay on the board.
func (s *Service) DeleteHabit(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.Now()
	if err != nil {
		return models.Habit{}, err
	}
	current, _, err := s.liveHabit(id)
	if err != nil {
		return models.Habit{}, err
	}

	change := habits.Delete(current, now)
	if err := s.store.DeleteHabit(id, now); err != nil {
		return models.Habit{}, apperrors.Persistence("delete habit", err)
	}
	logger.Info("Habit deleted", "habit", current.Name, "id", id)
	return change.Habit, s.afterHabitChange(now, change.Effects)
}

// RestoreHabit brings back a soft-deleted habit
func (s *Service) RestoreHabit(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.Now()
	if err != nil {
		return models.Habit{}, err
	}
	all, err := s.Habits(true)
	if err != nil {
		return models.Habit{}, err
	}

	var (
		target models.Habit
		found  bool
		live   []models.Habit
	)
	for _, h := range all {
		if h.ID == id {
			target, found = h, true
		}
		if h.IsLive() {
			live = append(live, h)
		}
	}
	if !found {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}

	change, err := habits.Restore(live, target, now)
	if err != nil {
		return models.Habit{}, err
	}
	if err := s.store.RestoreHabit(id); err != nil {
		return models.Habit{}, apperrors.Persistence("restore habit", err)
	}
	logger.Info("Habit restored", "habit", target.Name, "id", id)
	return change.Habit, s.afterHabitChange(now, change.Effects)
}

// liveHabit returns the live habit with id and every live habit
func (s *Service) liveHabit(id string) (models.Habit, []models.Habit, error) {
	existing, err := s.Habits(false)
	if err != nil {
		return models.Habit{}, nil, err
	}
	for _, h := range existing {
		if h.ID == id {
			return h, existing, nil
		}
	}
	return models.Habit{}, nil, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
}

// afterHabitChange runs the habit's own effects and refreshes the daily
// reminders, whose smart text depends on the number of active habits.
func (s *Service) afterHabitChange(now time.Time, effects []models.Effect) error {
	b, err := s.loadBoard(now)
	if err != nil {
		return err
	}
	daily, err := s.dailyEffects(now, b.Cards, b.Habits)
	if err != nil {
		return err
	}
	return s.dispatch(append(effects, daily...))
}

// IsNotFound reports whether err means a habit or card does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrHabitNotFound) || errors.Is(err, storage.ErrNotFound)
}
