package models

import (
	"fmt"
	"time"
)

// UserSettings holds per-user preferences
type UserSettings struct {
	UserID    string    `json:"user_id"`
	WakeTime  *string   `json:"wake_time"` // HH:MM, nil when unset
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidateWakeTime checks the HH:MM wake time format.
func ValidateWakeTime(s string) error {
	if len(s) != 5 {
		return fmt.Errorf("invalid wake time %q (expected HH:MM)", s)
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid wake time %q (expected HH:MM): %w", s, err)
	}
	return nil
}
