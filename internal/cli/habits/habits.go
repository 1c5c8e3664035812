package habits

import (
	"fmt"
	"time"

	"github.com/julianstephens/tidystreak/internal/cli"
	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/habits"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/streak"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit a habit."`
	Toggle  HabitToggleCmd  `cmd:"" help:"Turn a habit on or off for new days."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Emoji    string `help:"Emoji shown on the habit's cards." default:""`
	Color    string `help:"Hex color such as 34C759 (random when omitted)." default:""`
	Reminder string `help:"Daily reminder time (HH:MM)." default:""`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	h, err := ctx.App.AddHabit(habits.Input{
		Name:            c.Name,
		Emoji:           c.Emoji,
		ColorHex:        c.Color,
		ReminderEnabled: c.Reminder != "",
		ReminderTime:    c.Reminder,
	})
	if err := cli.HandleNotifyError(err); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", h.Label())
	if h.ReminderEnabled {
		fmt.Printf("  Reminder every day at %s\n", h.ReminderTime)
	}
	if all, err := ctx.App.Habits(false); err == nil && habits.TooManyActive(all) {
		fmt.Printf("⚠️  You have %d active habits. Consider focusing on fewer habits at once.\n", habits.ActiveCount(all))
	}
	return nil
}

type HabitListCmd struct {
	Deleted bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	all, err := ctx.App.Habits(c.Deleted)
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	now, err := ctx.App.Now()
	if err != nil {
		return err
	}
	for _, h := range all {
		fmt.Println(describe(h, now))
	}
	fmt.Printf("\nActive: %d/%d (limit %d habits)\n", habits.ActiveCount(all), habits.LiveCount(all), constants.MaxHabits)
	return nil
}

func describe(h models.Habit, now time.Time) string {
	status := ""
	switch {
	case !h.IsLive():
		status = " [DELETED]"
	case !h.IsActive:
		status = " [INACTIVE]"
	}
	line := fmt.Sprintf("%s%s  🔥 %d (best %d)", h.Label(), status, h.CurrentStreak, h.LongestStreak)
	if h.IsLive() && streak.IsBroken(h, now) {
		line += "  (streak broken)"
	}
	if h.ReminderEnabled {
		line += "  ⏰ " + h.ReminderTime
	}
	return line
}

type HabitEditCmd struct {
	Habit      string `arg:"" help:"Name of the habit to edit."`
	Name       string `help:"New name." default:""`
	Emoji      string `help:"New emoji." default:""`
	Color      string `help:"New hex color." default:""`
	Reminder   string `help:"Daily reminder time (HH:MM)." default:"" xor:"reminder"`
	NoReminder bool   `help:"Turn the daily reminder off." xor:"reminder"`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	current, err := ctx.App.FindHabit(c.Habit, false)
	if err != nil {
		return err
	}

	in := habits.FromHabit(current)
	if c.Name != "" {
		in.Name = c.Name
	}
	if c.Emoji != "" {
		in.Emoji = c.Emoji
	}
	if c.Color != "" {
		in.ColorHex = c.Color
	}
	switch {
	case c.Reminder != "":
		in.ReminderEnabled = true
		in.ReminderTime = c.Reminder
	case c.NoReminder:
		in.ReminderEnabled = false
	}

	updated, err := ctx.App.EditHabit(current.ID, in)
	if err := cli.HandleNotifyError(err); err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", describe(updated))
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	h, err := ctx.App.FindHabit(c.Name, false)
	if err != nil {
		return err
	}
	updated, err := ctx.App.ToggleHabit(h.ID)
	if err := cli.HandleNotifyError(err); err != nil {
		return err
	}
	state := "inactive"
	if updated.IsActive {
		state = "active"
	}
	fmt.Printf("Habit %s is now %s\n", updated.Label(), state)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, err := ctx.App.FindHabit(c.Name, false)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := cli.Confirm(fmt.Sprintf("Delete habit %s? Its cards stay on today's board.", h.Label()))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if _, err := ctx.App.DeleteHabit(h.ID); cli.HandleNotifyError(err) != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", h.Label())
	fmt.Printf("Run 'tidystreak habit restore %q' to undo.\n", h.Name)
	return nil
}

type HabitRestoreCmd struct {
	Name string `arg:"" help:"Name of the deleted habit."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	h, err := ctx.App.FindHabit(c.Name, true)
	if err != nil {
		return err
	}
	if h.IsLive() {
		return fmt.Errorf("habit %q is not deleted", h.Name)
	}
	restored, err := ctx.App.RestoreHabit(h.ID)
	if err := cli.HandleNotifyError(err); err != nil {
		return err
	}
	fmt.Printf("Restored habit: %s\n", restored.Label())
	return nil
}
