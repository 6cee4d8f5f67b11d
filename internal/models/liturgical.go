package models

// Celebration ranks reported by the liturgical calendar.
const (
	CelebrationSolemnity     = "SOLEMNITY"
	CelebrationFeast         = "FEAST"
	CelebrationSunday        = "SUNDAY"
	CelebrationTriduum       = "TRIDUUM"
	CelebrationHolyWeek      = "HOLY_WEEK"
	CelebrationFeria         = "FERIA"
	CelebrationCommemoration = "COMMEMORATION"
)

// LiturgicalDay is the liturgical identity of one calendar date.
type LiturgicalDay struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	Season          Season  `json:"season"`
	CelebrationKey  *string `json:"celebration_key,omitempty"`
	CelebrationName *string `json:"celebration_name,omitempty"`
	CelebrationType *string `json:"celebration_type,omitempty"`
}
