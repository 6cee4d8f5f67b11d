package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/practices"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateKey        ConflictType = "duplicate_key"
	ConflictBlankTitle          ConflictType = "blank_title"
	ConflictUnknownSeason       ConflictType = "unknown_season"
	ConflictUnknownLane         ConflictType = "unknown_lane"
	ConflictUnknownRecurrence   ConflictType = "unknown_recurrence"
	ConflictWeeklyWithoutDay    ConflictType = "weekly_without_weekday"
	ConflictWeekdayOutOfRange   ConflictType = "weekday_out_of_range"
	ConflictDailyWithWeekday    ConflictType = "daily_with_weekday"
	ConflictDuplicateOverride   ConflictType = "duplicate_override"
	ConflictOrphanOverride      ConflictType = "orphan_override"
	ConflictOverrideWeekdayMode ConflictType = "override_weekday_on_daily"
)

// Conflict represents a problem found in the catalog or in overrides
type Conflict struct {
	Type        ConflictType
	Description string
	Keys        []string // practice keys involved
	PracticeIDs []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator checks the practice catalog and user overrides
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidatePractices checks catalog entries for shape errors and duplicate keys.
func (v *Validator) ValidatePractices(list []models.Practice) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byKey := make(map[string][]string)
	var keys []string
	for _, p := range list {
		if _, seen := byKey[p.Key]; !seen {
			keys = append(keys, p.Key)
		}
		byKey[p.Key] = append(byKey[p.Key], p.ID)
	}
	for _, key := range keys {
		if ids := byKey[key]; len(ids) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateKey,
				Description: fmt.Sprintf("Duplicate practice key %q (IDs: %v)", key, ids),
				Keys:        []string{key},
				PracticeIDs: ids,
			})
		}
	}

	for _, p := range list {
		involved := func(t ConflictType, format string, args ...any) {
			result.add(Conflict{
				Type:        t,
				Description: fmt.Sprintf("Practice %q ", p.Key) + fmt.Sprintf(format, args...),
				Keys:        []string{p.Key},
				PracticeIDs: []string{p.ID},
			})
		}

		if strings.TrimSpace(p.Title) == "" {
			involved(ConflictBlankTitle, "has a blank title")
		}
		if !knownSeason(p.Season) {
			involved(ConflictUnknownSeason, "has unknown season %q", p.Season)
		}
		if practices.LaneRank(p.Lane) >= len(models.LaneOrder) {
			involved(ConflictUnknownLane, "has unknown lane %q", p.Lane)
		}

		switch p.Recurrence {
		case models.RecurrenceWeekly:
			if p.ScheduledWeekday == nil {
				involved(ConflictWeeklyWithoutDay, "is weekly but has no scheduled weekday")
			}
		case models.RecurrenceDaily:
			if p.ScheduledWeekday != nil {
				involved(ConflictDailyWithWeekday, "is daily but has scheduled weekday %d", int(*p.ScheduledWeekday))
			}
		default:
			involved(ConflictUnknownRecurrence, "has unknown recurrence %q", p.Recurrence)
		}
		if p.ScheduledWeekday != nil && !validWeekday(*p.ScheduledWeekday) {
			involved(ConflictWeekdayOutOfRange, "has weekday %d outside 0-6", int(*p.ScheduledWeekday))
		}
	}

	return result
}

// ValidateOverrides checks one user's overrides against the catalog.
func (v *Validator) ValidateOverrides(catalog []models.Practice, overrides []models.PracticeOverride) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byID := make(map[string]models.Practice, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	for _, id := range practices.DuplicateOverrides(overrides) {
		result.add(Conflict{
			Type:        ConflictDuplicateOverride,
			Description: fmt.Sprintf("Multiple overrides for practice %s; the last one is used", id),
			Keys:        []string{byID[id].Key},
			PracticeIDs: []string{id},
		})
	}

	sorted := make([]models.PracticeOverride, len(overrides))
	copy(sorted, overrides)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PracticeID < sorted[j].PracticeID })

	for _, o := range sorted {
		p, ok := byID[o.PracticeID]
		if !ok {
			result.add(Conflict{
				Type:        ConflictOrphanOverride,
				Description: fmt.Sprintf("Override for unknown practice %s", o.PracticeID),
				PracticeIDs: []string{o.PracticeID},
			})
			continue
		}
		if o.ScheduledWeekday == nil {
			continue
		}
		if !validWeekday(*o.ScheduledWeekday) {
			result.add(Conflict{
				Type:        ConflictWeekdayOutOfRange,
				Description: fmt.Sprintf("Override for %q has weekday %d outside 0-6", p.Key, int(*o.ScheduledWeekday)),
				Keys:        []string{p.Key},
				PracticeIDs: []string{p.ID},
			})
		}
		if p.Recurrence != models.RecurrenceWeekly {
			result.add(Conflict{
				Type:        ConflictOverrideWeekdayMode,
				Description: fmt.Sprintf("Override for daily practice %q sets a weekday, which is ignored", p.Key),
				Keys:        []string{p.Key},
				PracticeIDs: []string{p.ID},
			})
		}
	}

	return result
}

func knownSeason(s models.Season) bool {
	for _, season := range models.Seasons {
		if season == s {
			return true
		}
	}
	return false
}

func validWeekday(wd time.Weekday) bool {
	return wd >= time.Sunday && wd <= time.Saturday
}
