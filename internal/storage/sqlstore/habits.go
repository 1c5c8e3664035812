package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/utils"
)

const habitColumns = `id, name, emoji, color_hex, is_active, current_streak, longest_streak,
	last_completed_date, created_at, reminder_enabled, reminder_time, deleted_at`

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var isActive, reminderEnabled int
	var createdAt string
	var lastCompleted, reminderTime, deletedAt sql.NullString

	err := row.Scan(&h.ID, &h.Name, &h.Emoji, &h.ColorHex, &isActive, &h.CurrentStreak, &h.LongestStreak,
		&lastCompleted, &createdAt, &reminderEnabled, &reminderTime, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.IsActive = isActive != 0
	h.ReminderEnabled = reminderEnabled != 0
	h.ReminderTime = reminderTime.String

	if h.CreatedAt, err = utils.ParseTimestamp(createdAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	if h.LastCompletedDate, err = parseNullTime(lastCompleted); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse last_completed_date for habit %s: %w", h.ID, err)
	}
	if h.DeletedAt, err = parseNullTime(deletedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse deleted_at for habit %s: %w", h.ID, err)
	}
	return h, nil
}

func (d *DB) AddHabit(h models.Habit) error {
	_, err := d.exec(d.db, `
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Emoji, h.ColorHex, boolToInt(h.IsActive), h.CurrentStreak, h.LongestStreak,
		nullTime(h.LastCompletedDate), utils.FormatTimestamp(h.CreatedAt), boolToInt(h.ReminderEnabled),
		nullString(h.ReminderTime), nullTime(h.DeletedAt))
	return err
}

func (d *DB) GetHabit(id string) (models.Habit, error) {
	h, err := scanHabit(d.queryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id))
	if err != nil {
		return models.Habit{}, noRows(err, "habit")
	}
	return h, nil
}

func (d *DB) GetAllHabits(includeDeleted bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits`
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY created_at, id"

	rows, err := d.query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (d *DB) UpdateHabit(h models.Habit) error {
	return updateHabit(d, d.db, h)
}

func updateHabit(d *DB, e execer, h models.Habit) error {
	res, err := d.exec(e, `
		UPDATE habits SET
			name = ?, emoji = ?, color_hex = ?, is_active = ?,
			current_streak = ?, longest_streak = ?, last_completed_date = ?,
			reminder_enabled = ?, reminder_time = ?, deleted_at = ?
		WHERE id = ?`,
		h.Name, h.Emoji, h.ColorHex, boolToInt(h.IsActive),
		h.CurrentStreak, h.LongestStreak, nullTime(h.LastCompletedDate),
		boolToInt(h.ReminderEnabled), nullString(h.ReminderTime), nullTime(h.DeletedAt),
		h.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "habit")
}

func (d *DB) DeleteHabit(id string, at time.Time) error {
	res, err := d.exec(d.db, `UPDATE habits SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		utils.FormatTimestamp(at), id)
	if err != nil {
		return err
	}
	return requireRow(res, "habit")
}

func (d *DB) RestoreHabit(id string) error {
	res, err := d.exec(d.db, `UPDATE habits SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "deleted habit")
}
