package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("something went wrong"), expected: "Error: something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestKindAndCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		code string
	}{
		{name: "unauthenticated", err: ErrUnauthenticated, kind: ErrUnauthenticated, code: "unauthenticated"},
		{name: "wrapped not found", err: fmt.Errorf("toggle p1: %w", ErrNotFound), kind: ErrNotFound, code: "not_found"},
		{name: "disabled", err: ErrDisabled, kind: ErrDisabled, code: "disabled"},
		{name: "not scheduled", err: fmt.Errorf("x: %w", ErrNotScheduledToday), kind: ErrNotScheduledToday, code: "not_scheduled_today"},
		{name: "invalidf", err: Invalidf("bad weekday %d", 9), kind: ErrInvalidInput, code: "invalid_input"},
		{name: "plain", err: errors.New("disk full"), kind: nil, code: "server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
			if got := Code(tt.err); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	if got := Message(fmt.Errorf("wrap: %w", ErrDisabled)); got != "This practice is disabled." {
		t.Errorf("Message(disabled) = %q", got)
	}
	if got := Message(Invalidf("bad date %q", "2024-13-01")); got != `invalid input: bad date "2024-13-01"` {
		t.Errorf("Message(invalid) = %q", got)
	}
	if got := Message(nil); got != "" {
		t.Errorf("Message(nil) = %q, want empty", got)
	}
}

func TestFriendly(t *testing.T) {
	if Friendly(nil) != nil {
		t.Error("Friendly(nil) should be nil")
	}

	plain := errors.New("disk full")
	if got := Friendly(plain); got != plain {
		t.Errorf("Friendly(plain) = %v, want it unchanged", got)
	}

	err := Friendly(fmt.Errorf("toggle p1: %w", ErrNotFound))
	if err.Error() != "Practice not found." {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("Friendly error lost its kind")
	}
}
