package storage

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/julianstephens/tidystreak/internal/models"
)

// ErrNotFound is returned when a record does not exist or is soft deleted
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	// GetAllHabits returns habits in creation order. Soft-deleted habits are
	// only included when includeDeleted is set.
	GetAllHabits(includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string, at time.Time) error
	RestoreHabit(id string) error

	// Cards
	GetCard(id string) (models.Card, error)
	// GetCardsBetween returns cards created in [start, end) in board order.
	GetCardsBetween(start, end time.Time) ([]models.Card, error)
	GetAllCards() ([]models.Card, error)
	// SaveTransition persists a moved card and, when non-nil, its habit's new
	// streak in a single transaction.
	SaveTransition(card models.Card, habit *models.Habit) error
	// ReplaceCards deletes the given cards and inserts the new ones in a
	// single transaction. Insertion order is the board order.
	ReplaceCards(deleteIDs []string, cards []models.Card) error

	// Notifications
	SaveNotification(models.Notification) error
	DeleteNotification(id string) error
	GetDueNotifications(before time.Time) ([]models.Notification, error)
	GetAllNotifications() ([]models.Notification, error)

	// Utils
	GetConfigPath() string
}

// IsPostgresConnString reports whether s names a PostgreSQL database rather than a SQLite file
func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL URL carries a password
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return false
	}
	_, set := u.User.Password()
	return set
}
