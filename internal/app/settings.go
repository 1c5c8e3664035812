package app

import (
	"fmt"

	apperrors "github.com/julianstephens/tidystreak/internal/errors"
	"github.com/julianstephens/tidystreak/internal/logger"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/utils"
)

// Settings returns the stored settings
func (s *Service) Settings() (models.Settings, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.Settings{}, apperrors.Persistence("load settings", err)
	}
	return settings, nil
}

// SaveSettings validates and stores settings, then reschedules the daily reminders
func (s *Service) SaveSettings(settings models.Settings) error {
	models.ApplyDefaultSettings(&settings)
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}

	s.mu.Lock()
	if err := s.store.SaveSettings(settings); err != nil {
		s.mu.Unlock()
		return apperrors.Persistence("save settings", err)
	}
	s.mu.Unlock()
	logger.Info("Settings saved", "timezone", settings.Timezone, "notifications", settings.NotificationsEnabled)

	_, err := s.RescheduleDaily()
	return err
}
