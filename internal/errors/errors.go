package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/ruleoflife/internal/logger"
)

// Error kinds surfaced by the practice engine. Callers wrap them with %w and
// test for them with errors.Is.
var (
	ErrUnauthenticated   = errors.New("not signed in")
	ErrNotFound          = errors.New("practice not found")
	ErrDisabled          = errors.New("practice is disabled")
	ErrNotScheduledToday = errors.New("weekly practice is not scheduled for today")
	ErrInvalidInput      = errors.New("invalid input")
)

// Kind returns the sentinel kind wrapped by err, or nil if err carries none.
func Kind(err error) error {
	for _, kind := range []error{ErrUnauthenticated, ErrNotFound, ErrDisabled, ErrNotScheduledToday, ErrInvalidInput} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Code returns a stable machine-readable code for err.
func Code(err error) string {
	switch Kind(err) {
	case ErrUnauthenticated:
		return "unauthenticated"
	case ErrNotFound:
		return "not_found"
	case ErrDisabled:
		return "disabled"
	case ErrNotScheduledToday:
		return "not_scheduled_today"
	case ErrInvalidInput:
		return "invalid_input"
	default:
		return "server_error"
	}
}

// Message returns the user-facing sentence for err.
func Message(err error) string {
	switch Kind(err) {
	case ErrUnauthenticated:
		return "Not signed in."
	case ErrNotFound:
		return "Practice not found."
	case ErrDisabled:
		return "This practice is disabled."
	case ErrNotScheduledToday:
		return "This weekly practice isn't scheduled for today."
	case ErrInvalidInput:
		return err.Error()
	default:
		if err == nil {
			return ""
		}
		return err.Error()
	}
}

// Invalidf returns an ErrInvalidInput wrapping a formatted detail.
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

type friendlyError struct {
	err error
}

func (e friendlyError) Error() string { return Message(e.err) }
func (e friendlyError) Unwrap() error { return e.err }

// Friendly wraps err so that its text is the user-facing message for its
// kind. Errors without a kind are returned unchanged.
func Friendly(err error) error {
	if err == nil || Kind(err) == nil {
		return err
	}
	return friendlyError{err: err}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
