package system

import (
	"fmt"

	"github.com/julianstephens/tidystreak/internal/cli"
	"github.com/julianstephens/tidystreak/internal/models"
)

type RemindersCmd struct {
	List bool `help:"List queued notifications instead of rescheduling."`
}

func (c *RemindersCmd) Run(ctx *cli.Context) error {
	if c.List {
		pending, err := ctx.Store.GetAllNotifications()
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Println("No notifications queued.")
			return nil
		}
		for _, n := range pending {
			repeat := ""
			if n.RepeatDaily {
				repeat = " (daily)"
			}
			fmt.Printf("  %s  %-24s %s%s\n", n.FireAt.Local().Format("2006-01-02 15:04"), n.ID, n.Title, repeat)
		}
		return nil
	}

	effects, err := ctx.App.RescheduleDaily()
	if err := cli.HandleNotifyError(err); err != nil {
		return err
	}

	scheduled := 0
	for _, e := range effects {
		if e.Kind == models.EffectSchedule {
			scheduled++
			fmt.Printf("✓ %s at %s\n", e.Notification.Title, e.Notification.FireAt.Local().Format("2006-01-02 15:04"))
		}
	}
	if scheduled == 0 {
		fmt.Println("No daily reminders needed right now.")
	}
	return nil
}
