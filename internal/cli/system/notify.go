package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/tidystreak/internal/cli"
	"github.com/julianstephens/tidystreak/internal/notifier"
)

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

// newSender returns where due notifications go; tests replace it
var newSender = func(dryRun bool) notifier.Sender {
	if dryRun {
		return notifier.WriterSender{W: os.Stdout}
	}
	return notifier.NewTrayClient()
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.App.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	now, err := ctx.App.Now()
	if err != nil {
		return err
	}

	report, err := notifier.Deliver(ctx.Store, newSender(c.DryRun), now)
	if c.DryRun {
		fmt.Printf("Delivered %d notification(s), %d failed.\n", len(report.Delivered), len(report.Failed))
	}
	if err != nil {
		// failed notifications stay queued for the next run
		fmt.Printf("Failed to send notification: %v\n", err)
	}
	return nil
}
