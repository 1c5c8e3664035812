package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tidystreak/internal/backup"
	"github.com/julianstephens/tidystreak/internal/cli"
	"github.com/julianstephens/tidystreak/internal/constants"
	"github.com/julianstephens/tidystreak/internal/habits"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/utils"
)

// staleAfter is how overdue a queued notification may be before doctor warns
const staleAfter = time.Hour

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*cli.Context) error
	needsDB bool
	warning bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warning: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
	{name: "Habit integrity", run: checkHabitsIntegrity, needsDB: true},
	{name: "Board integrity", run: checkBoardIntegrity, needsDB: true},
	{name: "Notification queue", run: checkNotificationQueue, needsDB: true, warning: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, err := asMigrator(ctx.Store)
	if errors.Is(err, errNoMigrations) {
		return nil
	}
	return m.ValidateSchema()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, err := asMigrator(ctx.Store)
	if errors.Is(err, errNoMigrations) {
		return nil
	}
	pending, err := m.PendingMigrations()
	if err != nil {
		return fmt.Errorf("failed to check migrations: %w", err)
	}
	if pending > 0 {
		return fmt.Errorf("migrations incomplete: %d pending, run '%s migrate'", pending, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	if !mgr.Supported() {
		return fmt.Errorf("file backups are not available for this storage backend")
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}

	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("unknown timezone %q", settings.Timezone)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}

func checkHabitsIntegrity(ctx *cli.Context) error {
	all, err := ctx.Store.GetAllHabits(true)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}

	if live := habits.LiveCount(all); live > constants.MaxHabits {
		return fmt.Errorf("found %d habits, limit is %d", live, constants.MaxHabits)
	}

	seen := make(map[string]bool)
	for _, h := range all {
		if h.CurrentStreak < 0 || h.LongestStreak < h.CurrentStreak {
			return fmt.Errorf("habit %q has inconsistent streaks (current %d, longest %d)", h.Name, h.CurrentStreak, h.LongestStreak)
		}
		if h.ReminderEnabled && !utils.ValidateTimeFormat(h.ReminderTime) {
			return fmt.Errorf("habit %q has an invalid reminder time %q", h.Name, h.ReminderTime)
		}
		if !h.IsLive() {
			continue
		}
		for name := range seen {
			if habits.SameName(name, h.Name) {
				return fmt.Errorf("duplicate habit name %q", h.Name)
			}
		}
		seen[h.Name] = true
	}
	return nil
}

func checkBoardIntegrity(ctx *cli.Context) error {
	b, err := ctx.App.Board()
	if err != nil {
		return err
	}
	if doing := b.Doing(); doing > constants.WIPLimit {
		return fmt.Errorf("%d cards in DOING, limit is %d", doing, constants.WIPLimit)
	}

	perHabit := make(map[string]int)
	for _, c := range b.Cards {
		perHabit[c.HabitID]++
		if perHabit[c.HabitID] > 1 {
			return fmt.Errorf("habit %q has more than one card today", c.HabitName)
		}
		if c.HasTimer() && c.Status != models.StatusDoing {
			return fmt.Errorf("card %q has a timer outside DOING", c.HabitName)
		}
		if c.Status == models.StatusDone && c.CompletedAt == nil {
			return fmt.Errorf("card %q is DONE without a completion time", c.HabitName)
		}
	}
	return nil
}

func checkNotificationQueue(ctx *cli.Context) error {
	now, err := ctx.App.Now()
	if err != nil {
		return err
	}
	stale, err := ctx.Store.GetDueNotifications(now.Add(-staleAfter))
	if err != nil {
		return fmt.Errorf("failed to read notification queue: %w", err)
	}
	if len(stale) > 0 {
		return fmt.Errorf("%d notification(s) overdue by more than %s - is '%s notify' scheduled?", len(stale), staleAfter, constants.AppName)
	}
	return nil
}
