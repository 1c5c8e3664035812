package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tidystreak/internal/app"
	cliboard "github.com/julianstephens/tidystreak/internal/cli/board"
	"github.com/julianstephens/tidystreak/internal/models"
)

type MoveCardMsg struct {
	ID     string
	Target models.CardStatus
}

type StartTimerMsg struct {
	ID string
}

type NewDayMsg struct{}

// TickMsg redraws running timers
type TickMsg time.Time

// Tick schedules the next countdown refresh
func Tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Forward  key.Binding
	Backward key.Binding
	Todo     key.Binding
	Doing    key.Binding
	Done     key.Binding
	Timer    key.Binding
	NewDay   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]", "enter"),
			key.WithHelp("]", "move right"),
		),
		Backward: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "move left"),
		),
		Todo: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "to TODO"),
		),
		Doing: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "to DOING"),
		),
		Done: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "to DONE"),
		),
		Timer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "start timer"),
		),
		NewDay: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new day"),
		),
	}
}

const columnWidth = 30

var (
	columnStyle = lipgloss.NewStyle().
			Width(columnWidth).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeColumnStyle = columnStyle.
				BorderForeground(lipgloss.Color("205"))

	columnTitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().Reverse(true)

	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

type Model struct {
	board  app.Board
	now    time.Time
	keys   KeyMap
	col    int
	row    int
	width  int
	height int
}

func New(b app.Board, now time.Time) Model {
	return Model{
		board: b,
		now:   now,
		keys:  DefaultKeyMap(),
	}
}

// SetBoard swaps in a freshly loaded board and keeps the cursor in range
func (m *Model) SetBoard(b app.Board, now time.Time) {
	m.board = b
	m.now = now
	m.clamp()
}

func (m Model) Board() app.Board {
	return m.board
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// Select moves the cursor onto the card with the given id
func (m *Model) Select(cardID string) {
	for ci, status := range models.Statuses {
		for ri, c := range m.board.Column(status) {
			if c.ID == cardID {
				m.col, m.row = ci, ri
				return
			}
		}
	}
}

// Selected returns the card under the cursor
func (m Model) Selected() (models.Card, bool) {
	cards := m.board.Column(models.Statuses[m.col])
	if m.row < 0 || m.row >= len(cards) {
		return models.Card{}, false
	}
	return cards[m.row], true
}

func (m *Model) clamp() {
	if m.col < 0 {
		m.col = 0
	}
	if m.col >= len(models.Statuses) {
		m.col = len(models.Statuses) - 1
	}
	n := len(m.board.Column(models.Statuses[m.col]))
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m Model) Init() tea.Cmd {
	return Tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		loc := m.board.Date.Location()
		if loc == nil {
			loc = time.Local
		}
		m.now = time.Time(msg).In(loc)
		return m, Tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.row--
			m.clamp()
		case key.Matches(msg, m.keys.Down):
			m.row++
			m.clamp()
		case key.Matches(msg, m.keys.Left):
			m.col--
			m.clamp()
		case key.Matches(msg, m.keys.Right):
			m.col++
			m.clamp()
		case key.Matches(msg, m.keys.Forward):
			if m.col < len(models.Statuses)-1 {
				return m, m.move(models.Statuses[m.col+1])
			}
		case key.Matches(msg, m.keys.Backward):
			if m.col > 0 {
				return m, m.move(models.Statuses[m.col-1])
			}
		case key.Matches(msg, m.keys.Todo):
			return m, m.move(models.StatusTodo)
		case key.Matches(msg, m.keys.Doing):
			return m, m.move(models.StatusDoing)
		case key.Matches(msg, m.keys.Done):
			return m, m.move(models.StatusDone)
		case key.Matches(msg, m.keys.Timer):
			if c, ok := m.Selected(); ok && c.Status == models.StatusDoing && !c.HasTimer() {
				return m, func() tea.Msg { return StartTimerMsg{ID: c.ID} }
			}
		case key.Matches(msg, m.keys.NewDay):
			return m, func() tea.Msg { return NewDayMsg{} }
		}
	}
	return m, nil
}

func (m Model) move(target models.CardStatus) tea.Cmd {
	c, ok := m.Selected()
	if !ok || c.Status == target {
		return nil
	}
	return func() tea.Msg { return MoveCardMsg{ID: c.ID, Target: target} }
}

func (m Model) View() string {
	header := cliboard.Header(m.board)
	if len(m.board.Cards) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			emptyStyle.Render("No cards for today. Press 'n' to start a new day."),
		)
	}

	cols := make([]string, 0, len(models.Statuses))
	for ci, status := range models.Statuses {
		cards := m.board.Column(status)
		lines := []string{columnTitleStyle.Render(fmt.Sprintf("%s (%d)", status, len(cards)))}
		for ri, c := range cards {
			line := cardStyle(c).Render(cliboard.CardLine(c, m.now))
			if ci == m.col && ri == m.row {
				line = selectedStyle.Render(cliboard.CardLine(c, m.now))
			}
			lines = append(lines, line)
		}
		if len(cards) == 0 {
			lines = append(lines, emptyStyle.Render("empty"))
		}
		style := columnStyle
		if ci == m.col {
			style = activeColumnStyle
		}
		cols = append(cols, style.Render(strings.Join(lines, "\n")))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
	)
}

func cardStyle(c models.Card) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#" + c.ColorHex))
	if c.Status == models.StatusDone {
		style = style.Strikethrough(true).Faint(true)
	}
	return style
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
