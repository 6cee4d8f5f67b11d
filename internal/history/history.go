// Package history builds the month calendar of a user's completions.
package history

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/ruleoflife/internal/clock"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/practices"
)

const UnknownPractice = "Unknown practice"

// WeekdayHeaders label the calendar columns, Sunday first.
var WeekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type Store interface {
	ListPractices(ctx context.Context, filter models.PracticeFilter) ([]models.Practice, error)
	ListOverrides(ctx context.Context, userID string, practiceIDs []string) ([]models.PracticeOverride, error)
	ListCompletions(ctx context.Context, userID, startDate, endDate string) ([]models.Completion, error)
}

// Cell is one day of the grid. Padding cells are nil.
type Cell struct {
	Date     string `json:"date"`
	Day      int    `json:"day"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// Entry is a completed practice on the selected day.
type Entry struct {
	PracticeID  string      `json:"practice_id"`
	Title       string      `json:"title"`
	Lane        models.Lane `json:"lane"`
	LaneLabel   string      `json:"lane_label"`
	When        string      `json:"when"`
	CompletedAt time.Time   `json:"completed_at"`
}

type View struct {
	Month    string  `json:"month"`
	Title    string  `json:"title"`
	Prev     string  `json:"prev"`
	Next     string  `json:"next"`
	Bounds   Bounds  `json:"bounds"`
	Cells    []*Cell `json:"cells"`
	Total    int     `json:"total"`
	Selected string  `json:"selected,omitempty"`
	Entries  []Entry `json:"entries"`
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Month builds the grid for month. selected is ignored unless it is a valid
// date inside the month.
func (s *Service) Month(ctx context.Context, userID string, month Month, selected string) (View, error) {
	if userID == "" {
		return View{}, apperrors.ErrUnauthenticated
	}
	bounds := month.Bounds()

	completions, err := s.store.ListCompletions(ctx, userID, bounds.Start, bounds.End)
	if err != nil {
		return View{}, fmt.Errorf("list completions: %w", err)
	}
	byDate := make(map[string][]models.Completion)
	for _, c := range completions {
		byDate[c.DateLocal] = append(byDate[c.DateLocal], c)
	}

	if !month.Contains(selected) {
		selected = ""
	}

	view := View{
		Month:    month.String(),
		Title:    month.Title(),
		Prev:     month.AddMonths(-1).String(),
		Next:     month.AddMonths(1).String(),
		Bounds:   bounds,
		Cells:    Grid(month),
		Total:    len(completions),
		Selected: selected,
		Entries:  []Entry{},
	}
	for _, cell := range view.Cells {
		if cell == nil {
			continue
		}
		cell.Count = len(byDate[cell.Date])
		cell.Selected = cell.Date == selected
	}

	if selected == "" || len(byDate[selected]) == 0 {
		return view, nil
	}

	catalog, err := s.store.ListPractices(ctx, models.PracticeFilter{})
	if err != nil {
		return View{}, fmt.Errorf("list practices: %w", err)
	}
	overrides, err := s.store.ListOverrides(ctx, userID, nil)
	if err != nil {
		return View{}, fmt.Errorf("list overrides: %w", err)
	}
	effective := make(map[string]models.EffectivePractice, len(catalog))
	for _, p := range practices.Resolve(catalog, overrides) {
		effective[p.ID] = p
	}

	view.Entries = Entries(byDate[selected], effective)
	return view, nil
}

// Grid lays out the days of month in Sunday-first weeks. Leading and trailing
// padding cells are nil.
func Grid(month Month) []*Cell {
	b := month.Bounds()
	lead := int(b.FirstWeekday)
	total := (lead + b.DaysInMonth + 6) / 7 * 7

	cells := make([]*Cell, total)
	for i := range cells {
		day := i - lead + 1
		if day < 1 || day > b.DaysInMonth {
			continue
		}
		cells[i] = &Cell{Date: month.Date(day), Day: day}
	}
	return cells
}

// Entries describes completions using the effective practices, ordered by
// lane display order and then title. Practices no longer in the catalog show
// as UnknownPractice in the attention lane.
func Entries(completions []models.Completion, effective map[string]models.EffectivePractice) []Entry {
	entries := make([]Entry, 0, len(completions))
	for _, c := range completions {
		p, ok := effective[c.PracticeID]
		if !ok {
			entries = append(entries, Entry{
				PracticeID:  c.PracticeID,
				Title:       UnknownPractice,
				Lane:        models.LaneAttention,
				LaneLabel:   practices.LaneLabel(models.LaneAttention),
				CompletedAt: c.CompletedAt,
			})
			continue
		}
		entries = append(entries, Entry{
			PracticeID:  p.ID,
			Title:       p.EffectiveTitle,
			Lane:        p.Lane,
			LaneLabel:   practices.LaneLabel(p.Lane),
			When:        practices.WhenLabel(p),
			CompletedAt: c.CompletedAt,
		})
	}

	titles := practices.NewTitleComparer()
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if ra, rb := practices.LaneRank(a.Lane), practices.LaneRank(b.Lane); ra != rb {
			return ra < rb
		}
		if c := titles.Compare(a.Title, b.Title); c != 0 {
			return c < 0
		}
		return a.PracticeID < b.PracticeID
	})
	return entries
}

// DefaultMonth resolves the month to show: the parsed value when valid,
// otherwise the clock's current month.
func DefaultMonth(value string, c clock.Clock) Month {
	if m, err := ParseMonth(value); err == nil {
		return m
	}
	return CurrentMonth(c)
}
