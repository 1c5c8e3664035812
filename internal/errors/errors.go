package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/tidystreak/internal/logger"
)

var (
	// ErrWIPLimit is returned to command line callers when a move into DOING is refused
	ErrWIPLimit = errors.New("WIP limit reached: you can only have 2 tasks in progress at once, complete or move a task first")
	// ErrDuplicateName is returned when a habit name collides with a live habit, ignoring case and surrounding space
	ErrDuplicateName = errors.New("a habit with this name already exists")
	// ErrCapacityExceeded is returned when adding a habit would exceed the habit cap
	ErrCapacityExceeded = errors.New("habit limit reached")
	// ErrEmptyName is returned when a habit name is blank
	ErrEmptyName = errors.New("habit name cannot be empty")
	// ErrNoBoard is returned when today's board has not been generated
	ErrNoBoard = errors.New("no cards for today, run 'tidystreak newday' first")
)

// PersistenceError wraps a failure of the backing store
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err as a PersistenceError for op. A nil err stays nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistence reports whether err came from the backing store
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
