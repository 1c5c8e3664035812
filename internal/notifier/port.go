// Package notifier executes the notification effects produced by the board core.
//
// Scheduled notifications are kept in the store by Queue and handed to a
// Sender, normally the desktop tray app, when they fall due.
package notifier

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tidystreak/internal/logger"
	"github.com/julianstephens/tidystreak/internal/models"
)

// Port schedules and cancels local notifications by stable identifier.
// Scheduling an existing id replaces it; cancelling an unknown id is not an error.
type Port interface {
	Schedule(models.Notification) error
	Cancel(id string) error
}

// Dispatch executes effects in order. A failing effect does not stop the
// rest; all failures are logged and returned joined.
func Dispatch(port Port, effects []models.Effect) error {
	var errs []error
	for _, e := range effects {
		var err error
		switch e.Kind {
		case models.EffectSchedule:
			err = port.Schedule(e.Notification)
		case models.EffectCancel:
			err = port.Cancel(e.Notification.ID)
		default:
			err = fmt.Errorf("unknown effect kind %q", e.Kind)
		}
		if err != nil {
			logger.Warn("Notification effect failed", "kind", e.Kind, "id", e.Notification.ID, "error", err)
			errs = append(errs, fmt.Errorf("%s %s: %w", e.Kind, e.Notification.ID, err))
			continue
		}
		logger.Debug("Notification effect applied", "kind", e.Kind, "id", e.Notification.ID)
	}
	return errors.Join(errs...)
}
