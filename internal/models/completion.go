package models

import "time"

// Completion records that a user did a practice on a local calendar date.
// Row presence is the done state.
type Completion struct {
	UserID      string    `json:"user_id"`
	PracticeID  string    `json:"practice_id"`
	DateLocal   string    `json:"date_local"` // YYYY-MM-DD in the user's timezone
	CompletedAt time.Time `json:"completed_at"`
}
