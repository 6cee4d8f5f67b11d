// Package scheduler decides which effective practices are due on a weekday
// and which weekly practices come up next.
package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/ruleoflife/internal/clock"
	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/practices"
)

// Upcoming is a weekly practice scheduled later this week.
type Upcoming struct {
	Practice  models.EffectivePractice `json:"practice"`
	DaysUntil int                      `json:"days_until"` // 1..6
}

// Label returns "Tomorrow" or "In N days".
func (u Upcoming) Label() string {
	return FormatDaysUntil(u.DaysUntil)
}

// ShortWeekday returns the three-letter name of the scheduled day.
func (u Upcoming) ShortWeekday() string {
	if u.Practice.EffectiveScheduledWeekday == nil {
		return "?"
	}
	return clock.ShortWeekday(*u.Practice.EffectiveScheduledWeekday)
}

// IsDue reports whether p should be done on today. Inactive and disabled
// practices are never due. Daily practices always are; weekly practices only
// on their effective weekday.
func IsDue(p models.EffectivePractice, today time.Weekday) bool {
	if !p.IsActive || !p.IsEnabled {
		return false
	}
	switch p.Recurrence {
	case models.RecurrenceDaily:
		return true
	case models.RecurrenceWeekly:
		return p.EffectiveScheduledWeekday != nil && *p.EffectiveScheduledWeekday == today
	default:
		return false
	}
}

// DueToday returns the practices due on today, preserving input order.
func DueToday(effective []models.EffectivePractice, today time.Weekday) []models.EffectivePractice {
	out := make([]models.EffectivePractice, 0, len(effective))
	for _, p := range effective {
		if IsDue(p, today) {
			out = append(out, p)
		}
	}
	return out
}

// UpcomingWeekly returns up to limit active, enabled weekly practices whose
// effective weekday is set and is not today, soonest first and then by title.
func UpcomingWeekly(effective []models.EffectivePractice, today time.Weekday, limit int) []Upcoming {
	if limit <= 0 || clock.ValidateWeekday(today) != nil {
		return []Upcoming{}
	}

	var out []Upcoming
	for _, p := range effective {
		if !p.IsActive || !p.IsEnabled || p.Recurrence != models.RecurrenceWeekly {
			continue
		}
		wd := p.EffectiveScheduledWeekday
		if wd == nil || clock.ValidateWeekday(*wd) != nil || *wd == today {
			continue
		}
		out = append(out, Upcoming{Practice: p, DaysUntil: DaysUntil(today, *wd)})
	}

	titles := practices.NewTitleComparer()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysUntil != out[j].DaysUntil {
			return out[i].DaysUntil < out[j].DaysUntil
		}
		if c := titles.Compare(out[i].Practice.EffectiveTitle, out[j].Practice.EffectiveTitle); c != 0 {
			return c < 0
		}
		return out[i].Practice.ID < out[j].Practice.ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []Upcoming{}
	}
	return out
}

// DaysUntil is the number of days from today forward to wd, in 0..6.
func DaysUntil(today, wd time.Weekday) int {
	return (int(wd) - int(today) + 7) % 7
}

// FormatDaysUntil renders a look-ahead distance.
func FormatDaysUntil(n int) string {
	if n == 1 {
		return "Tomorrow"
	}
	return fmt.Sprintf("In %d days", n)
}
