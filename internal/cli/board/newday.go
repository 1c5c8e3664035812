package board

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tidystreak/internal/app"
	"github.com/julianstephens/tidystreak/internal/cli"
	"github.com/julianstephens/tidystreak/internal/generator"
	"github.com/julianstephens/tidystreak/internal/habits"
	"github.com/julianstephens/tidystreak/internal/models"
)

// ErrNothingSelected is returned when a new day would start with an empty board
var ErrNothingSelected = errors.New("no habits selected, pass --allow-empty to clear today's board")

type NewDayCmd struct {
	Habit      []string `help:"Habit to put on today's board (repeatable)." short:"H"`
	All        bool     `help:"Use every active habit without asking."`
	AllowEmpty bool     `help:"Allow generating a board with no cards."`
}

// pickHabits asks which habits to include; tests replace it
var pickHabits = func(options []models.Habit, preselected []string) ([]string, error) {
	selected := preselected
	opts := make([]huh.Option[string], 0, len(options))
	for _, h := range options {
		opts = append(opts, huh.NewOption(h.Label(), h.ID))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Habits for today").
				Description("All active habits are selected. Space toggles, enter confirms.").
				Options(opts...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}

func (c *NewDayCmd) Run(ctx *cli.Context) error {
	all, err := ctx.App.Habits(false)
	if err != nil {
		return err
	}

	var active []models.Habit
	for _, h := range all {
		if h.IsActive {
			active = append(active, h)
		}
	}

	selected, err := c.selection(all, active)
	if err != nil {
		return err
	}
	if len(selected) == 0 && !c.AllowEmpty {
		return ErrNothingSelected
	}

	ctx.PerformAutomaticBackup()

	res, err := ctx.App.NewDay(selected)
	if err := cli.HandleNotifyError(err); err != nil {
		return err
	}
	printResult(res)
	return nil
}

func (c *NewDayCmd) selection(all, active []models.Habit) ([]string, error) {
	preselected := generator.DefaultSelection(all)
	switch {
	case len(c.Habit) > 0:
		var ids []string
		for _, name := range c.Habit {
			h, ok := habits.FindByName(all, name)
			if !ok {
				return nil, fmt.Errorf("%w: %q", app.ErrHabitNotFound, name)
			}
			if !h.IsActive {
				return nil, fmt.Errorf("habit %q is inactive, toggle it on first", h.Name)
			}
			ids = append(ids, h.ID)
		}
		return ids, nil
	case c.All || len(active) == 0:
		return preselected, nil
	}
	return pickHabits(active, preselected)
}

func printResult(res generator.Result) {
	if len(res.Delete) > 0 {
		fmt.Printf("Removed %d card(s) from today's board\n", len(res.Delete))
	}
	if len(res.Create) == 0 {
		fmt.Println("Today's board is empty.")
		return
	}
	fmt.Printf("✓ Generated %d card(s) for today:\n", len(res.Create))
	for _, card := range res.Create {
		fmt.Printf("  %s\n", card.Label())
	}
}
