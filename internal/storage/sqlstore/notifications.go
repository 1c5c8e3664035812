package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/utils"
)

const notificationColumns = `id, title, body, fire_at, repeat_daily`

func scanNotification(row scanner) (models.Notification, error) {
	var n models.Notification
	var fireAt string
	var repeat int
	if err := row.Scan(&n.ID, &n.Title, &n.Body, &fireAt, &repeat); err != nil {
		return models.Notification{}, err
	}
	t, err := utils.ParseTimestamp(fireAt)
	if err != nil {
		return models.Notification{}, fmt.Errorf("failed to parse fire_at for notification %s: %w", n.ID, err)
	}
	n.FireAt = t
	n.RepeatDaily = repeat != 0
	return n, nil
}

func (d *DB) scanNotifications(rows *sql.Rows) ([]models.Notification, error) {
	defer rows.Close()
	var out []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// SaveNotification replaces any pending notification with the same id
func (d *DB) SaveNotification(n models.Notification) error {
	_, err := d.exec(d.db, `
		INSERT INTO notifications (`+notificationColumns+`) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			fire_at = excluded.fire_at,
			repeat_daily = excluded.repeat_daily`,
		n.ID, n.Title, n.Body, utils.FormatTimestamp(n.FireAt), boolToInt(n.RepeatDaily))
	return err
}

// DeleteNotification removes a pending notification. Unknown ids are not an error.
func (d *DB) DeleteNotification(id string) error {
	_, err := d.exec(d.db, `DELETE FROM notifications WHERE id = ?`, id)
	return err
}

func (d *DB) GetDueNotifications(before time.Time) ([]models.Notification, error) {
	rows, err := d.query(`SELECT `+notificationColumns+` FROM notifications WHERE fire_at <= ? ORDER BY fire_at, id`,
		utils.FormatTimestamp(before))
	if err != nil {
		return nil, err
	}
	return d.scanNotifications(rows)
}

func (d *DB) GetAllNotifications() ([]models.Notification, error) {
	rows, err := d.query(`SELECT ` + notificationColumns + ` FROM notifications ORDER BY fire_at, id`)
	if err != nil {
		return nil, err
	}
	return d.scanNotifications(rows)
}
