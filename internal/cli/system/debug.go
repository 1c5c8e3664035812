package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/tidystreak/internal/cli"
	"github.com/julianstephens/tidystreak/internal/logger"
	"github.com/julianstephens/tidystreak/internal/storage"
)

// debugOut receives debug JSON; tests replace it
var debugOut io.Writer = os.Stdout

type DebugCmd struct {
	DBPath        DebugDBPathCmd        `cmd:"" name:"db-path" help:"Show database and log paths."`
	DumpBoard     DebugDumpBoardCmd     `cmd:"" help:"Dump today's board as JSON."`
	DumpHabit     DebugDumpHabitCmd     `cmd:"" help:"Dump habit data as JSON."`
	DumpCard      DebugDumpCardCmd      `cmd:"" help:"Dump card data as JSON."`
	DumpSettings  DebugDumpSettingsCmd  `cmd:"" help:"Dump settings data as JSON."`
	DumpReminders DebugDumpRemindersCmd `cmd:"" help:"Dump queued notifications as JSON."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(debugOut, string(jsonBytes))
	return err
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
		"log":  logger.Path(),
	})
}

type DebugDumpBoardCmd struct{}

func (cmd *DebugDumpBoardCmd) Run(ctx *cli.Context) error {
	b, err := ctx.App.Board()
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	return printJSON(struct {
		Date  string `json:"date"`
		Doing int    `json:"doing"`
		Cards any    `json:"cards"`
	}{
		Date:  b.Date.Format("2006-01-02"),
		Doing: b.Doing(),
		Cards: b.Cards,
	})
}

type DebugDumpHabitCmd struct {
	ID string `arg:"" help:"ID of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.GetHabit(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("habit not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get habit: %w", err)
	}
	return printJSON(habit)
}

type DebugDumpCardCmd struct {
	ID string `arg:"" help:"ID of the card to dump."`
}

func (cmd *DebugDumpCardCmd) Run(ctx *cli.Context) error {
	card, err := ctx.Store.GetCard(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("card not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get card: %w", err)
	}
	return printJSON(card)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}

type DebugDumpRemindersCmd struct{}

func (cmd *DebugDumpRemindersCmd) Run(ctx *cli.Context) error {
	pending, err := ctx.Store.GetAllNotifications()
	if err != nil {
		return fmt.Errorf("failed to get notifications: %w", err)
	}
	return printJSON(pending)
}
