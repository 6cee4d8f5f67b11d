package today

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/ruleoflife/internal/clock"
	"github.com/julianstephens/ruleoflife/internal/constants"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/liturgical"
	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/practices"
	"github.com/julianstephens/ruleoflife/internal/scheduler"
	"github.com/julianstephens/ruleoflife/internal/verse"
)

// Store is the slice of storage the today view reads.
type Store interface {
	ListPractices(ctx context.Context, filter models.PracticeFilter) ([]models.Practice, error)
	ListOverrides(ctx context.Context, userID string, practiceIDs []string) ([]models.PracticeOverride, error)
	ListCompletions(ctx context.Context, userID, startDate, endDate string) ([]models.Completion, error)
	GetUserSettings(ctx context.Context, userID string) (models.UserSettings, error)
}

// Item is one checklist row.
type Item struct {
	ID          string      `json:"id"`
	Key         string      `json:"key"`
	Lane        models.Lane `json:"lane"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Completed   bool        `json:"completed"`
}

type Group struct {
	Lane  models.Lane `json:"lane"`
	Label string      `json:"label"`
	Items []Item      `json:"items"`
}

type UpcomingItem struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Weekday     time.Weekday `json:"weekday"`
	WeekdayName string       `json:"weekday_label"`
	DaysUntil   int          `json:"days_until"`
	When        string       `json:"when"`
}

// View is everything the today screen shows.
type View struct {
	Date           string               `json:"date"`
	Weekday        time.Weekday         `json:"weekday"`
	Liturgical     models.LiturgicalDay `json:"liturgical"`
	SeasonLabel    string               `json:"season_label"`
	PracticeSeason models.Season        `json:"practice_season"`
	Groups         []Group              `json:"groups"`
	Upcoming       []UpcomingItem       `json:"upcoming"`
	Verse          *models.Verse        `json:"verse,omitempty"`
	Total          int                  `json:"total"`
	Completed      int                  `json:"completed"`
}

type Service struct {
	store    Store
	resolver liturgical.Resolver
	clock    clock.Clock
	verses   *verse.List
}

func NewService(store Store, resolver liturgical.Resolver, c clock.Clock, verses *verse.List) *Service {
	return &Service{store: store, resolver: resolver, clock: c, verses: verses}
}

// Build assembles the view for the clock's current local date.
func (s *Service) Build(ctx context.Context, userID string) (View, error) {
	if userID == "" {
		return View{}, apperrors.ErrUnauthenticated
	}

	date := s.clock.Today()
	weekday, err := clock.WeekdayOf(date)
	if err != nil {
		return View{}, err
	}

	day, err := s.resolver.Day(ctx, date)
	if err != nil {
		return View{}, fmt.Errorf("resolve liturgical day: %w", err)
	}
	season := liturgical.PracticeSeason(day.Season)

	catalog, err := s.store.ListPractices(ctx, models.PracticeFilter{Season: season, ActiveOnly: true})
	if err != nil {
		return View{}, fmt.Errorf("list practices: %w", err)
	}
	ids := make([]string, len(catalog))
	for i, p := range catalog {
		ids[i] = p.ID
	}
	overrides, err := s.store.ListOverrides(ctx, userID, ids)
	if err != nil {
		return View{}, fmt.Errorf("list overrides: %w", err)
	}
	completions, err := s.store.ListCompletions(ctx, userID, date, date)
	if err != nil {
		return View{}, fmt.Errorf("list completions: %w", err)
	}
	settings, err := s.store.GetUserSettings(ctx, userID)
	if err != nil {
		return View{}, fmt.Errorf("get settings: %w", err)
	}

	effective := practices.Resolve(catalog, overrides)
	due := practices.Sort(scheduler.DueToday(effective, weekday))

	done := make(map[string]bool, len(completions))
	for _, c := range completions {
		done[c.PracticeID] = true
	}

	view := View{
		Date:           date,
		Weekday:        weekday,
		Liturgical:     day,
		SeasonLabel:    practices.SeasonLabel(day.Season),
		PracticeSeason: season,
		Groups:         []Group{},
		Upcoming:       []UpcomingItem{},
	}

	for _, g := range practices.GroupByLane(due) {
		group := Group{Lane: g.Lane, Label: g.Label}
		for _, p := range g.Practices {
			item := Item{
				ID:          p.ID,
				Key:         p.Key,
				Lane:        p.Lane,
				Title:       p.EffectiveTitle,
				Description: Description(p, settings.WakeTime),
				Completed:   done[p.ID],
			}
			group.Items = append(group.Items, item)
			view.Total++
			if item.Completed {
				view.Completed++
			}
		}
		view.Groups = append(view.Groups, group)
	}

	for _, u := range scheduler.UpcomingWeekly(effective, weekday, constants.UpcomingLimit) {
		view.Upcoming = append(view.Upcoming, UpcomingItem{
			ID:          u.Practice.ID,
			Title:       u.Practice.EffectiveTitle,
			Description: u.Practice.EffectiveDescription,
			Weekday:     *u.Practice.EffectiveScheduledWeekday,
			WeekdayName: u.ShortWeekday(),
			DaysUntil:   u.DaysUntil,
			When:        u.Label(),
		})
	}

	if s.verses != nil {
		v, _, err := s.verses.ForDate(date)
		if err != nil {
			return View{}, err
		}
		view.Verse = &v
	}

	return view, nil
}

// Description is the text shown under a practice. The fixed wake time
// practice shows the user's wake time when one is set.
func Description(p models.EffectivePractice, wakeTime *string) string {
	if p.Key == constants.WakeTimePracticeKey && wakeTime != nil && *wakeTime != "" {
		wake := *wakeTime
		if len(wake) > 5 {
			wake = wake[:5]
		}
		return "Wake time: " + wake
	}
	return p.EffectiveDescription
}
