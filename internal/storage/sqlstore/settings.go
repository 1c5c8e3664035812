package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/tidystreak/internal/models"
)

func (d *DB) GetSettings() (models.Settings, error) {
	rows, err := d.query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if len(data) == 0 {
		return models.Settings{}, notFound("settings")
	}

	settings, err := models.MapToSettings(data)
	if err != nil {
		return models.Settings{}, fmt.Errorf("invalid stored settings: %w", err)
	}
	return settings, nil
}

func (d *DB) SaveSettings(settings models.Settings) error {
	return d.withTx(func(tx *sql.Tx) error {
		for key, value := range models.SettingsToMap(settings) {
			if _, err := d.exec(tx, `
				INSERT INTO settings (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
				return fmt.Errorf("saving setting %s: %w", key, err)
			}
		}
		return nil
	})
}
