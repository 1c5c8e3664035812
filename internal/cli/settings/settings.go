package settings

import (
	"fmt"

	"github.com/julianstephens/tidystreak/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone               *string `help:"IANA time zone that decides which day is today (or 'Local')."`
	NotificationsEnabled   *bool   `help:"Enable or disable notifications."`
	MorningReminderEnabled *bool   `help:"Remind at 08:00 to generate today's cards."`
	EveningReminderEnabled *bool   `help:"Remind at 20:00 about open cards."`
	SmartReminders         *bool   `help:"Only remind when there is something to do."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.App.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Morning Reminder:      %v\n", settings.MorningReminderEnabled)
		fmt.Printf("  Evening Reminder:      %v\n", settings.EveningReminderEnabled)
		fmt.Printf("  Smart Reminders:       %v\n", settings.SmartReminders)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.MorningReminderEnabled != nil {
		settings.MorningReminderEnabled = *c.MorningReminderEnabled
		updated = true
	}
	if c.EveningReminderEnabled != nil {
		settings.EveningReminderEnabled = *c.EveningReminderEnabled
		updated = true
	}
	if c.SmartReminders != nil {
		settings.SmartReminders = *c.SmartReminders
		updated = true
	}

	if updated {
		if err := cli.HandleNotifyError(ctx.App.SaveSettings(settings)); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
