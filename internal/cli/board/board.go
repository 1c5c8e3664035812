package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tidystreak/internal/app"
	"github.com/julianstephens/tidystreak/internal/board"
	"github.com/julianstephens/tidystreak/internal/cli"
	"github.com/julianstephens/tidystreak/internal/constants"
	apperrors "github.com/julianstephens/tidystreak/internal/errors"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/utils"
)

const columnWidth = 28

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	columnStyle = lipgloss.NewStyle().
			Width(columnWidth).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type BoardCmd struct {
	Plain bool `help:"Print one card per line without columns."`
}

func (c *BoardCmd) Run(ctx *cli.Context) error {
	b, err := ctx.App.Board()
	if err != nil {
		return err
	}
	now, err := ctx.App.Now()
	if err != nil {
		return err
	}

	fmt.Println(Header(b))
	if len(b.Cards) == 0 {
		fmt.Println()
		fmt.Println("No cards for today. Run 'tidystreak newday' to generate them.")
		return nil
	}

	if c.Plain {
		for _, card := range b.Cards {
			fmt.Printf("%-5s  %s\n", card.Status, CardLine(card, now))
		}
		return nil
	}

	fmt.Println(Render(b, now))
	return nil
}

// Header returns the board's date and WIP counter
func Header(b app.Board) string {
	wip := fmt.Sprintf("WIP: %d/%d", b.Doing(), constants.WIPLimit)
	if b.Doing() >= constants.WIPLimit {
		wip = warnStyle.Render(wip)
	}
	return headerStyle.Render(b.Date.Format("Monday, January 2, 2006")) + "   " + wip
}

// Render draws the three columns side by side
func Render(b app.Board, now time.Time) string {
	var cols []string
	for _, status := range models.Statuses {
		cards := b.Column(status)
		lines := []string{titleStyle.Render(fmt.Sprintf("%s (%d)", status, len(cards)))}
		for _, card := range cards {
			lines = append(lines, cardStyle(card).Render(CardLine(card, now)))
		}
		if len(cards) == 0 {
			lines = append(lines, mutedStyle.Render("empty"))
		}
		cols = append(cols, columnStyle.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// CardLine describes a card on one line, with its timer when one is running
func CardLine(card models.Card, now time.Time) string {
	line := card.Label()
	switch remaining, ok := board.Remaining(card, now); {
	case board.Expired(card, now):
		line += " ⏰ time's up"
	case ok:
		line += " ⏱ " + utils.FormatRemaining(remaining)
	}
	return line
}

func cardStyle(card models.Card) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#" + card.ColorHex))
	if card.Status == models.StatusDone {
		style = style.Strikethrough(true)
	}
	return style
}

type MoveCmd struct {
	Card   string `arg:"" help:"Card id, id prefix or habit name."`
	Status string `arg:"" help:"Target column (todo, doing, done)."`
}

func (c *MoveCmd) Run(ctx *cli.Context) error {
	target, err := models.ParseCardStatus(c.Status)
	if err != nil {
		return err
	}
	card, err := ctx.App.ResolveCard(c.Card)
	if err != nil {
		return err
	}

	res, err := ctx.App.Move(card.ID, target)
	if err := cli.HandleNotifyError(err); err != nil {
		return err
	}

	switch res.Outcome {
	case board.OutcomeUnchanged:
		fmt.Printf("%s is already in %s\n", card.Label(), target)
	case board.OutcomeRejectedWIP:
		return apperrors.ErrWIPLimit
	default:
		fmt.Printf("✓ Moved %s to %s\n", card.Label(), target)
		if res.Habit != nil {
			fmt.Printf("🔥 Streak: %d day(s) (best %d)\n", res.Habit.CurrentStreak, res.Habit.LongestStreak)
		}
	}
	return nil
}

type TimerCmd struct {
	Card    string `arg:"" help:"Card id, id prefix or habit name."`
	Minutes int    `arg:"" help:"Timer length in minutes (15, 30, 60 or 90)."`
}

func (c *TimerCmd) Run(ctx *cli.Context) error {
	card, err := ctx.App.ResolveCard(c.Card)
	if err != nil {
		return err
	}
	res, err := ctx.App.StartTimer(card.ID, c.Minutes)
	if err := cli.HandleNotifyError(err); err != nil {
		return err
	}
	end, _ := res.Card.TimerEnd()
	fmt.Printf("⏱ Timer started for %s: %d min (ends %s)\n", card.Label(), c.Minutes, end.Format(constants.TimeFormat))
	return nil
}
