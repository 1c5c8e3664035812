package notifier

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tidystreak/internal/logger"
	"github.com/julianstephens/tidystreak/internal/models"
)

// Store is the part of storage.Provider the queue needs
type Store interface {
	SaveNotification(models.Notification) error
	DeleteNotification(id string) error
	GetDueNotifications(before time.Time) ([]models.Notification, error)
}

// Sender shows a notification to the user
type Sender interface {
	Send(models.Notification) error
}

// Queue is a Port that persists pending notifications in the store
type Queue struct {
	store Store
}

func NewQueue(store Store) *Queue {
	return &Queue{store: store}
}

func (q *Queue) Schedule(n models.Notification) error {
	return q.store.SaveNotification(n)
}

func (q *Queue) Cancel(id string) error {
	return q.store.DeleteNotification(id)
}

// Report summarizes one delivery run
type Report struct {
	Delivered []models.Notification
	Failed    []models.Notification
}

// Deliver sends every notification due at now. Delivered one-shot
// notifications are removed and daily ones move to their next occurrence
// after now. Failed notifications stay queued for the next run.
func Deliver(store Store, sender Sender, now time.Time) (Report, error) {
	var report Report

	due, err := store.GetDueNotifications(now)
	if err != nil {
		return report, fmt.Errorf("failed to load due notifications: %w", err)
	}

	var errs []error
	for _, n := range due {
		if err := sender.Send(n); err != nil {
			logger.Warn("Failed to send notification", "id", n.ID, "error", err)
			report.Failed = append(report.Failed, n)
			errs = append(errs, fmt.Errorf("send %s: %w", n.ID, err))
			continue
		}
		report.Delivered = append(report.Delivered, n)

		if n.RepeatDaily {
			n.FireAt = NextDaily(n.FireAt, now)
			err = store.SaveNotification(n)
		} else {
			err = store.DeleteNotification(n.ID)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("requeue %s: %w", n.ID, err))
		}
	}
	return report, errors.Join(errs...)
}

// NextDaily returns the first occurrence of fireAt's wall-clock time that is
// strictly after now, stepping by calendar days in now's location. Stored
// times come back in UTC, so the wall clock is read in now's location.
func NextDaily(fireAt, now time.Time) time.Time {
	fireAt = fireAt.In(now.Location())
	next := fireAt
	for i := 1; !next.After(now); i++ {
		next = fireAt.AddDate(0, 0, i)
	}
	return next
}
