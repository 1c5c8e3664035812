// Package app runs board operations against the store.
//
// Every mutating call loads a fresh snapshot, runs the pure core, commits the
// result and only then hands the returned effects to the notification port.
package app

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tidystreak/internal/board"
	apperrors "github.com/julianstephens/tidystreak/internal/errors"
	"github.com/julianstephens/tidystreak/internal/generator"
	"github.com/julianstephens/tidystreak/internal/habits"
	"github.com/julianstephens/tidystreak/internal/logger"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/notifier"
	"github.com/julianstephens/tidystreak/internal/reminders"
	"github.com/julianstephens/tidystreak/internal/storage"
	"github.com/julianstephens/tidystreak/internal/utils"
)

var (
	// ErrAmbiguousCard is returned when a card reference matches more than one of today's cards
	ErrAmbiguousCard = errors.New("card reference is ambiguous")
	// ErrHabitNotFound is returned when no habit matches a name
	ErrHabitNotFound = errors.New("habit not found")
)

// NotifyError reports notification effects that failed after the new state
// was committed. The operation itself succeeded.
type NotifyError struct {
	Err error
}

func (e *NotifyError) Error() string {
	return "notification update failed: " + e.Err.Error()
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}

// IsNotifyError reports whether err only concerns notification delivery
func IsNotifyError(err error) bool {
	var ne *NotifyError
	return errors.As(err, &ne)
}

// Service serializes board operations for one process
type Service struct {
	mu    sync.Mutex
	store storage.Provider
	port  notifier.Port
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs replaces the uuid generator
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func New(store storage.Provider, port notifier.Port, opts ...Option) *Service {
	s := &Service{
		store: store,
		port:  port,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the backing store
func (s *Service) Store() storage.Provider {
	return s.store
}

// Now returns the current time in the configured time zone
func (s *Service) Now() (time.Time, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return time.Time{}, apperrors.Persistence("load settings", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in settings, using local time", "timezone", settings.Timezone, "error", err)
		loc = time.Local
	}
	return s.now().In(loc), nil
}

// dispatch runs effects after a commit and wraps any failure as NotifyError
func (s *Service) dispatch(effects []models.Effect) error {
	if len(effects) == 0 {
		return nil
	}
	if err := notifier.Dispatch(s.port, effects); err != nil {
		return &NotifyError{Err: err}
	}
	return nil
}

// Board is today's board as shown to the user
type Board struct {
	Date   time.Time
	Cards  []models.Card
	Habits []models.Habit
}

// Doing returns the number of cards in DOING
func (b Board) Doing() int {
	return board.DoingCount(b.Cards)
}

// Column returns the cards in one column
func (b Board) Column(status models.CardStatus) []models.Card {
	return board.Column(b.Cards, status)
}

// Snapshot returns the engine view of the board
func (b Board) Snapshot() board.Snapshot {
	return board.Snapshot{Cards: b.Cards, Habits: b.Habits}
}

// Board loads today's cards and every habit, deleted ones included
func (s *Service) Board() (Board, error) {
	now, err := s.Now()
	if err != nil {
		return Board{}, err
	}
	return s.loadBoard(now)
}

func (s *Service) loadBoard(now time.Time) (Board, error) {
	start, end := utils.DayBounds(now)
	cards, err := s.store.GetCardsBetween(start, end)
	if err != nil {
		return Board{}, apperrors.Persistence("load cards", err)
	}
	hs, err := s.store.GetAllHabits(true)
	if err != nil {
		return Board{}, apperrors.Persistence("load habits", err)
	}
	return Board{Date: start, Cards: cards, Habits: hs}, nil
}

// ResolveCard finds one of today's cards by id, unique id prefix or habit name
func (s *Service) ResolveCard(ref string) (models.Card, error) {
	b, err := s.Board()
	if err != nil {
		return models.Card{}, err
	}
	return resolveCard(b.Cards, ref)
}

func resolveCard(cards []models.Card, ref string) (models.Card, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Card{}, fmt.Errorf("%w: empty reference", board.ErrCardNotFound)
	}
	if c, ok := board.Find(cards, ref); ok {
		return c, nil
	}

	var matches []models.Card
	for _, c := range cards {
		if habits.SameName(c.HabitName, ref) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		for _, c := range cards {
			if strings.HasPrefix(c.ID, ref) {
				matches = append(matches, c)
			}
		}
	}

	switch len(matches) {
	case 0:
		if len(cards) == 0 {
			return models.Card{}, apperrors.ErrNoBoard
		}
		return models.Card{}, fmt.Errorf("%w: %q", board.ErrCardNotFound, ref)
	case 1:
		return matches[0], nil
	}
	return models.Card{}, fmt.Errorf("%w: %q matches %d cards", ErrAmbiguousCard, ref, len(matches))
}

// Move transitions a card and persists the new card and habit in one transaction.
// A WIP rejection is reported through the result's Outcome, not as an error.
func (s *Service) Move(cardID string, target models.CardStatus) (board.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.Now()
	if err != nil {
		return board.Result{}, err
	}
	b, err := s.loadBoard(now)
	if err != nil {
		return board.Result{}, err
	}

	res, err := board.Transition(b.Snapshot(), cardID, target, now)
	if err != nil {
		return board.Result{}, err
	}

	log := logger.With("card", cardID, "habit", res.Card.HabitName, "target", target)
	switch res.Outcome {
	case board.OutcomeUnchanged:
		log.Debug("Card already in target column")
		return res, nil
	case board.OutcomeRejectedWIP:
		log.Info("Move rejected by WIP limit", "doing", board.DoingCount(b.Cards))
		return res, nil
	}

	if err := s.store.SaveTransition(res.Card, res.Habit); err != nil {
		return board.Result{}, apperrors.Persistence("save transition", err)
	}
	log.Info("Card moved")
	if res.Habit != nil {
		log.Info("Streak updated", "current", res.Habit.CurrentStreak, "longest", res.Habit.LongestStreak)
	}

	// the evening reminder counts open cards
	daily, err := s.dailyEffects(now, res.Snapshot.Cards, res.Snapshot.Habits)
	if err != nil {
		return res, err
	}
	return res, s.dispatch(append(res.Effects, daily...))
}

// StartTimer starts a countdown on a DOING card
func (s *Service) StartTimer(cardID string, minutes int) (board.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.Now()
	if err != nil {
		return board.Result{}, err
	}
	b, err := s.loadBoard(now)
	if err != nil {
		return board.Result{}, err
	}

	res, err := board.StartTimer(b.Snapshot(), cardID, minutes, now)
	if err != nil {
		return board.Result{}, err
	}
	if err := s.store.SaveTransition(res.Card, nil); err != nil {
		return board.Result{}, apperrors.Persistence("save timer", err)
	}
	logger.Info("Timer started", "card", cardID, "minutes", minutes)
	return res, s.dispatch(res.Effects)
}

// NewDay replaces today's cards with fresh TODO cards for the selected habits.
// The swap is a single transaction, so a failure leaves the previous board.
func (s *Service) NewDay(selected []string) (generator.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.Now()
	if err != nil {
		return generator.Result{}, err
	}
	b, err := s.loadBoard(now)
	if err != nil {
		return generator.Result{}, err
	}

	res := generator.Generate(b.Cards, b.Habits, selected, now, s.newID)
	if err := s.store.ReplaceCards(res.Delete, res.Create); err != nil {
		return generator.Result{}, apperrors.Persistence("generate cards", err)
	}
	logger.Info("New day generated", "removed", len(res.Delete), "created", len(res.Create))

	daily, err := s.dailyEffects(now, res.Create, b.Habits)
	if err != nil {
		return res, err
	}
	return res, s.dispatch(append(res.Effects, daily...))
}

func (s *Service) dailyEffects(now time.Time, todayCards []models.Card, hs []models.Habit) ([]models.Effect, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return nil, apperrors.Persistence("load settings", err)
	}
	return reminders.Daily(settings, habits.ActiveCount(hs), board.OpenCount(todayCards), now), nil
}

// RescheduleDaily recomputes the morning and evening reminders
func (s *Service) RescheduleDaily() ([]models.Effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.Now()
	if err != nil {
		return nil, err
	}
	b, err := s.loadBoard(now)
	if err != nil {
		return nil, err
	}
	effects, err := s.dailyEffects(now, b.Cards, b.Habits)
	if err != nil {
		return nil, err
	}
	return effects, s.dispatch(effects)
}
