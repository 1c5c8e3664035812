// Package habits holds the rules for creating and changing habits:
// unique names, the habit cap, defaults and reminder bookkeeping.
package habits

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/julianstephens/tidystreak/internal/constants"
	apperrors "github.com/julianstephens/tidystreak/internal/errors"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/reminders"
	"github.com/julianstephens/tidystreak/internal/utils"
)

var (
	ErrInvalidColor        = errors.New("color must be six hex digits, e.g. 34C759")
	ErrInvalidReminderTime = errors.New("reminder time must be HH:MM")
)

// randomColor picks a palette color for new habits; tests replace it
var randomColor = func() string {
	return constants.HabitColorPalette[rand.IntN(len(constants.HabitColorPalette))]
}

// Input carries user-editable habit fields
type Input struct {
	Name            string
	Emoji           string
	ColorHex        string
	ReminderEnabled bool
	ReminderTime    string
}

// FromHabit returns the editable fields of h
func FromHabit(h models.Habit) Input {
	return Input{
		Name:            h.Name,
		Emoji:           h.Emoji,
		ColorHex:        h.ColorHex,
		ReminderEnabled: h.ReminderEnabled,
		ReminderTime:    h.ReminderTime,
	}
}

// Change is a validated habit plus the notification effects it needs
type Change struct {
	Habit   models.Habit
	Effects []models.Effect
}

// Create validates in against the existing habits and returns a new active habit.
// A blank emoji becomes the default emoji and a blank color is picked from the palette.
func Create(existing []models.Habit, in Input, now time.Time, newID func() string) (Change, error) {
	if LiveCount(existing) >= constants.MaxHabits {
		return Change{}, fmt.Errorf("%w: at most %d habits", apperrors.ErrCapacityExceeded, constants.MaxHabits)
	}

	in, err := normalize(in)
	if err != nil {
		return Change{}, err
	}
	if in.ColorHex == "" {
		in.ColorHex = randomColor()
	}
	if err := checkDuplicate(existing, in.Name, ""); err != nil {
		return Change{}, err
	}

	h := models.Habit{
		ID:              newID(),
		Name:            in.Name,
		Emoji:           in.Emoji,
		ColorHex:        in.ColorHex,
		IsActive:        true,
		CreatedAt:       now,
		ReminderEnabled: in.ReminderEnabled,
		ReminderTime:    in.ReminderTime,
	}

	effects, err := reminders.HabitReminderEffects(nil, h, now)
	if err != nil {
		return Change{}, err
	}
	return Change{Habit: h, Effects: effects}, nil
}

// Edit applies in to current. The duplicate check ignores current itself, so
// changing only the case of a name is allowed. Streak fields are kept.
func Edit(existing []models.Habit, current models.Habit, in Input, now time.Time) (Change, error) {
	in, err := normalize(in)
	if err != nil {
		return Change{}, err
	}
	if in.ColorHex == "" {
		in.ColorHex = current.ColorHex
	}
	if err := checkDuplicate(existing, in.Name, current.ID); err != nil {
		return Change{}, err
	}

	updated := current.Clone()
	updated.Name = in.Name
	updated.Emoji = in.Emoji
	updated.ColorHex = in.ColorHex
	updated.ReminderEnabled = in.ReminderEnabled
	updated.ReminderTime = in.ReminderTime

	effects, err := reminders.HabitReminderEffects(&current, updated, now)
	if err != nil {
		return Change{}, err
	}
	return Change{Habit: updated, Effects: effects}, nil
}

// ToggleActive flips whether the habit is offered when generating a new day
func ToggleActive(h models.Habit) models.Habit {
	out := h.Clone()
	out.IsActive = !out.IsActive
	return out
}

// Delete soft deletes h and cancels its reminder
func Delete(h models.Habit, now time.Time) Change {
	out := h.Clone()
	t := now
	out.DeletedAt = &t

	var effects []models.Effect
	if h.ReminderEnabled {
		effects = append(effects, models.CancelEffect(reminders.HabitReminderID(h.ID)))
	}
	return Change{Habit: out, Effects: effects}
}

// Restore brings back a soft-deleted habit. It is held to the same cap and
// name uniqueness rules as a new habit.
func Restore(existing []models.Habit, h models.Habit, now time.Time) (Change, error) {
	if h.IsLive() {
		return Change{}, fmt.Errorf("habit %q is not deleted", h.Name)
	}
	if LiveCount(existing) >= constants.MaxHabits {
		return Change{}, fmt.Errorf("%w: at most %d habits", apperrors.ErrCapacityExceeded, constants.MaxHabits)
	}
	if err := checkDuplicate(existing, h.Name, h.ID); err != nil {
		return Change{}, err
	}

	out := h.Clone()
	out.DeletedAt = nil
	effects, err := reminders.HabitReminderEffects(nil, out, now)
	if err != nil {
		return Change{}, err
	}
	return Change{Habit: out, Effects: effects}, nil
}

// LiveCount counts habits that have not been deleted
func LiveCount(habits []models.Habit) int {
	n := 0
	for _, h := range habits {
		if h.IsLive() {
			n++
		}
	}
	return n
}

// ActiveCount counts live, active habits
func ActiveCount(habits []models.Habit) int {
	n := 0
	for _, h := range habits {
		if h.IsLive() && h.IsActive {
			n++
		}
	}
	return n
}

// TooManyActive reports whether the user should be nudged to focus on fewer habits
func TooManyActive(habits []models.Habit) bool {
	return ActiveCount(habits) >= constants.ManyActiveHabitsWarning
}

// SameName compares habit names the way uniqueness is enforced
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// FindByName returns the live habit called name, ignoring case and surrounding space
func FindByName(habits []models.Habit, name string) (models.Habit, bool) {
	for _, h := range habits {
		if h.IsLive() && SameName(h.Name, name) {
			return h, true
		}
	}
	return models.Habit{}, false
}

func checkDuplicate(existing []models.Habit, name, selfID string) error {
	for _, h := range existing {
		if h.ID == selfID || !h.IsLive() {
			continue
		}
		if SameName(h.Name, name) {
			return fmt.Errorf("%w: %q", apperrors.ErrDuplicateName, strings.TrimSpace(h.Name))
		}
	}
	return nil
}

func normalize(in Input) (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Input{}, apperrors.ErrEmptyName
	}

	in.Emoji = strings.TrimSpace(in.Emoji)
	if in.Emoji == "" {
		in.Emoji = constants.DefaultHabitEmoji
	}

	color, err := NormalizeColor(in.ColorHex)
	if err != nil {
		return Input{}, err
	}
	in.ColorHex = color

	in.ReminderTime = strings.TrimSpace(in.ReminderTime)
	if in.ReminderEnabled {
		t, err := utils.ParseTime(in.ReminderTime)
		if err != nil {
			return Input{}, fmt.Errorf("%w: %q", ErrInvalidReminderTime, in.ReminderTime)
		}
		in.ReminderTime = t.Format(constants.TimeFormat)
	} else {
		in.ReminderTime = ""
	}
	return in, nil
}

// NormalizeColor upper-cases a hex color and strips a leading '#'. Blank stays blank.
func NormalizeColor(s string) (string, error) {
	s = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if s == "" {
		return "", nil
	}
	if len(s) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789ABCDEF", r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	return s, nil
}
