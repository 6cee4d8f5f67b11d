// Package practices merges the shared catalog with per-user overrides and
// orders the result for display.
package practices

import (
	"strings"
	"time"

	"github.com/julianstephens/ruleoflife/internal/models"
)

// Resolve applies each practice's override, if any, and returns one
// EffectivePractice per input practice in input order. Inputs are not modified.
// When overrides contains more than one row for a practice the last one wins;
// see DuplicateOverrides.
func Resolve(practices []models.Practice, overrides []models.PracticeOverride) []models.EffectivePractice {
	byID := make(map[string]*models.PracticeOverride, len(overrides))
	for i := range overrides {
		byID[overrides[i].PracticeID] = &overrides[i]
	}

	out := make([]models.EffectivePractice, 0, len(practices))
	for _, p := range practices {
		out = append(out, ResolveOne(p, byID[p.ID]))
	}
	return out
}

// ResolveOne derives the effective view of p under o. A nil override means
// enabled with no customization.
func ResolveOne(p models.Practice, o *models.PracticeOverride) models.EffectivePractice {
	ep := models.EffectivePractice{
		Practice:                  p,
		IsEnabled:                 true,
		EffectiveScheduledWeekday: copyWeekday(p.ScheduledWeekday),
		EffectiveTitle:            p.Title,
		EffectiveDescription:      p.Description,
	}
	ep.Practice.ScheduledWeekday = copyWeekday(p.ScheduledWeekday)
	if o == nil {
		return ep
	}

	ep.IsEnabled = o.IsEnabled
	if o.ScheduledWeekday != nil {
		ep.EffectiveScheduledWeekday = copyWeekday(o.ScheduledWeekday)
	}
	if title, ok := nonBlank(o.CustomTitle); ok {
		ep.EffectiveTitle = title
	}
	if desc, ok := nonBlank(o.CustomDescription); ok {
		ep.EffectiveDescription = desc
	}
	return ep
}

// DuplicateOverrides returns the practice IDs that appear in more than one
// override, in first-seen order.
func DuplicateOverrides(overrides []models.PracticeOverride) []string {
	seen := make(map[string]int, len(overrides))
	var dups []string
	for _, o := range overrides {
		seen[o.PracticeID]++
		if seen[o.PracticeID] == 2 {
			dups = append(dups, o.PracticeID)
		}
	}
	return dups
}

func nonBlank(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	t := strings.TrimSpace(*s)
	return t, t != ""
}

func copyWeekday(wd *time.Weekday) *time.Weekday {
	if wd == nil {
		return nil
	}
	v := *wd
	return &v
}
