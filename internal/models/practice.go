package models

import (
	"fmt"
	"strings"
	"time"
)

type Season string

const (
	SeasonAdvent       Season = "ADVENT"
	SeasonChristmas    Season = "CHRISTMAS"
	SeasonLent         Season = "LENT"
	SeasonHolyWeek     Season = "HOLY_WEEK"
	SeasonEaster       Season = "EASTER"
	SeasonOrdinaryTime Season = "ORDINARY_TIME"
)

// Seasons lists every season in liturgical-year order.
var Seasons = []Season{
	SeasonAdvent,
	SeasonChristmas,
	SeasonLent,
	SeasonHolyWeek,
	SeasonEaster,
	SeasonOrdinaryTime,
}

type Lane string

const (
	LanePrayer    Lane = "PRAYER"
	LaneAscetic   Lane = "ASCETIC"
	LaneCharity   Lane = "CHARITY"
	LaneAttention Lane = "ATTENTION"
)

// LaneOrder is the fixed display order of lanes.
var LaneOrder = []Lane{LanePrayer, LaneAscetic, LaneCharity, LaneAttention}

type Recurrence string

const (
	RecurrenceDaily  Recurrence = "DAILY"
	RecurrenceWeekly Recurrence = "WEEKLY"
)

// ParseSeason accepts a season in any letter case, with spaces or dashes for underscores.
func ParseSeason(s string) (Season, error) {
	norm := Season(normalizeEnum(s))
	for _, season := range Seasons {
		if season == norm {
			return season, nil
		}
	}
	return "", fmt.Errorf("unknown season %q", s)
}

func ParseLane(s string) (Lane, error) {
	norm := Lane(normalizeEnum(s))
	for _, lane := range LaneOrder {
		if lane == norm {
			return lane, nil
		}
	}
	return "", fmt.Errorf("unknown lane %q", s)
}

func ParseRecurrence(s string) (Recurrence, error) {
	switch r := Recurrence(normalizeEnum(s)); r {
	case RecurrenceDaily, RecurrenceWeekly:
		return r, nil
	}
	return "", fmt.Errorf("unknown recurrence %q", s)
}

// ParseWeekday accepts 0-6 (0=Sunday) or an English day name or its three-letter prefix.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return time.Weekday(s[0] - '0'), nil
	}
	lower := strings.ToLower(s)
	if len(lower) >= 3 {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			name := strings.ToLower(wd.String())
			if strings.HasPrefix(name, lower) {
				return wd, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid weekday %q (expected 0-6 or a day name)", s)
}

func normalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "-", "_")
}

// Practice is an entry of the shared practice catalog.
type Practice struct {
	ID               string        `json:"id"`
	Key              string        `json:"key"`
	Season           Season        `json:"season"`
	Lane             Lane          `json:"lane"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Recurrence       Recurrence    `json:"recurrence"`
	ScheduledWeekday *time.Weekday `json:"scheduled_weekday"` // 0=Sunday; only meaningful for WEEKLY
	IsActive         bool          `json:"is_active"`
	SortOrder        int           `json:"sort_order"`
}

// PracticeOverride is a user's customization of one catalog practice.
type PracticeOverride struct {
	UserID            string        `json:"user_id"`
	PracticeID        string        `json:"practice_id"`
	ScheduledWeekday  *time.Weekday `json:"scheduled_weekday"`
	IsEnabled         bool          `json:"is_enabled"`
	CustomTitle       *string       `json:"custom_title"`
	CustomDescription *string       `json:"custom_description"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// EffectivePractice is a practice with a user's override applied. It is derived
// on every read and never stored.
type EffectivePractice struct {
	Practice
	IsEnabled                 bool          `json:"is_enabled"`
	EffectiveScheduledWeekday *time.Weekday `json:"effective_scheduled_weekday"`
	EffectiveTitle            string        `json:"effective_title"`
	EffectiveDescription      string        `json:"effective_description"`
}

// Weekday returns a pointer to a copy of wd.
func Weekday(wd time.Weekday) *time.Weekday {
	return &wd
}

// String returns a pointer to a copy of s.
func String(s string) *string {
	return &s
}

// PracticeFilter narrows a catalog listing. Zero fields do not filter.
type PracticeFilter struct {
	Season     Season
	Recurrence Recurrence
	ActiveOnly bool
}
