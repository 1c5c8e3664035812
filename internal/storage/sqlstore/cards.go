package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/utils"
)

const cardColumns = `id, habit_id, habit_name, emoji, color_hex, status, created_at,
	moved_to_doing_at, completed_at, timer_duration_min, timer_started_at`

const cardOrder = " ORDER BY created_at, position, id"

func scanCard(row scanner) (models.Card, error) {
	var c models.Card
	var status, createdAt string
	var movedToDoing, completed, timerStarted sql.NullString
	var timerDuration sql.NullInt64

	err := row.Scan(&c.ID, &c.HabitID, &c.HabitName, &c.Emoji, &c.ColorHex, &status, &createdAt,
		&movedToDoing, &completed, &timerDuration, &timerStarted)
	if err != nil {
		return models.Card{}, err
	}

	c.Status = models.CardStatus(status)
	if !c.Status.Valid() {
		return models.Card{}, fmt.Errorf("card %s has invalid status %q", c.ID, status)
	}
	if c.CreatedAt, err = utils.ParseTimestamp(createdAt); err != nil {
		return models.Card{}, fmt.Errorf("failed to parse created_at for card %s: %w", c.ID, err)
	}
	if c.MovedToDoingAt, err = parseNullTime(movedToDoing); err != nil {
		return models.Card{}, fmt.Errorf("failed to parse moved_to_doing_at for card %s: %w", c.ID, err)
	}
	if c.CompletedAt, err = parseNullTime(completed); err != nil {
		return models.Card{}, fmt.Errorf("failed to parse completed_at for card %s: %w", c.ID, err)
	}
	if c.TimerStartedAt, err = parseNullTime(timerStarted); err != nil {
		return models.Card{}, fmt.Errorf("failed to parse timer_started_at for card %s: %w", c.ID, err)
	}
	c.TimerDurationMin = parseNullInt(timerDuration)
	return c, nil
}

func (d *DB) scanCards(rows *sql.Rows) ([]models.Card, error) {
	defer rows.Close()
	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (d *DB) GetCard(id string) (models.Card, error) {
	c, err := scanCard(d.queryRow(`SELECT `+cardColumns+` FROM cards WHERE id = ?`, id))
	if err != nil {
		return models.Card{}, noRows(err, "card")
	}
	return c, nil
}

func (d *DB) GetCardsBetween(start, end time.Time) ([]models.Card, error) {
	rows, err := d.query(`SELECT `+cardColumns+` FROM cards WHERE created_at >= ? AND created_at < ?`+cardOrder,
		utils.FormatTimestamp(start), utils.FormatTimestamp(end))
	if err != nil {
		return nil, err
	}
	return d.scanCards(rows)
}

func (d *DB) GetAllCards() ([]models.Card, error) {
	rows, err := d.query(`SELECT ` + cardColumns + ` FROM cards` + cardOrder)
	if err != nil {
		return nil, err
	}
	return d.scanCards(rows)
}

func (d *DB) SaveTransition(card models.Card, habit *models.Habit) error {
	return d.withTx(func(tx *sql.Tx) error {
		res, err := d.exec(tx, `
			UPDATE cards SET
				status = ?, moved_to_doing_at = ?, completed_at = ?,
				timer_duration_min = ?, timer_started_at = ?
			WHERE id = ?`,
			string(card.Status), nullTime(card.MovedToDoingAt), nullTime(card.CompletedAt),
			nullInt(card.TimerDurationMin), nullTime(card.TimerStartedAt), card.ID)
		if err != nil {
			return fmt.Errorf("updating card %s: %w", card.ID, err)
		}
		if err := requireRow(res, "card"); err != nil {
			return err
		}
		if habit != nil {
			if err := updateHabit(d, tx, *habit); err != nil {
				return fmt.Errorf("updating habit %s: %w", habit.ID, err)
			}
		}
		return nil
	})
}

func (d *DB) ReplaceCards(deleteIDs []string, cards []models.Card) error {
	return d.withTx(func(tx *sql.Tx) error {
		for _, id := range deleteIDs {
			if _, err := d.exec(tx, `DELETE FROM cards WHERE id = ?`, id); err != nil {
				return fmt.Errorf("deleting card %s: %w", id, err)
			}
		}
		for i, c := range cards {
			_, err := d.exec(tx, `
				INSERT INTO cards (id, habit_id, habit_name, emoji, color_hex, status, position, created_at,
					moved_to_doing_at, completed_at, timer_duration_min, timer_started_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				c.ID, c.HabitID, c.HabitName, c.Emoji, c.ColorHex, string(c.Status), i, utils.FormatTimestamp(c.CreatedAt),
				nullTime(c.MovedToDoingAt), nullTime(c.CompletedAt), nullInt(c.TimerDurationMin), nullTime(c.TimerStartedAt))
			if err != nil {
				return fmt.Errorf("inserting card %s: %w", c.ID, err)
			}
		}
		return nil
	})
}
