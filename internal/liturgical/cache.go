package liturgical

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/logger"
	"github.com/julianstephens/ruleoflife/internal/models"
)

// DayCache stores computed liturgical days. GetLiturgicalDay returns nil, nil
// on a miss. PutLiturgicalDays upserts by date.
type DayCache interface {
	GetLiturgicalDay(ctx context.Context, date string) (*models.LiturgicalDay, error)
	PutLiturgicalDays(ctx context.Context, days []models.LiturgicalDay) error
}

// CacheObserver is told about cache lookups.
type CacheObserver interface {
	LiturgicalCacheLookup(hit bool)
}

// Cached answers from a DayCache and fills it a whole year at a time on a
// miss. A cached day whose season is not a known Season counts as a miss.
// Cache errors are returned; wrap it in Fallback to tolerate them.
type Cached struct {
	cache    DayCache
	calendar *Calendar
	observer CacheObserver
}

func NewCached(cache DayCache, calendar *Calendar) *Cached {
	return &Cached{cache: cache, calendar: calendar}
}

// WithObserver sets an observer for cache hits and misses.
func (c *Cached) WithObserver(o CacheObserver) *Cached {
	c.observer = o
	return c
}

func (c *Cached) Day(ctx context.Context, date string) (models.LiturgicalDay, error) {
	t, err := parseYearDate(date)
	if err != nil {
		return models.LiturgicalDay{}, err
	}

	hit, err := c.cache.GetLiturgicalDay(ctx, date)
	if err != nil {
		return models.LiturgicalDay{}, fmt.Errorf("read liturgical cache for %s: %w", date, err)
	}
	if hit != nil && !knownSeason(hit.Season) {
		// Refill the year so the bad row is overwritten.
		logger.Warn("Discarding cached liturgical day with unknown season", "date", date, "season", hit.Season)
		hit = nil
	}
	c.observe(hit != nil)
	if hit != nil {
		return *hit, nil
	}

	year, err := c.calendar.Year(t.Year())
	if err != nil {
		return models.LiturgicalDay{}, err
	}
	if err := c.cache.PutLiturgicalDays(ctx, year); err != nil {
		return models.LiturgicalDay{}, fmt.Errorf("fill liturgical cache for %d: %w", t.Year(), err)
	}
	logger.Debug("Liturgical year cached", "year", t.Year(), "days", len(year))

	return year[t.YearDay()-1], nil
}

// knownSeason reports whether s is one of the seasons the calendar writes.
func knownSeason(s models.Season) bool {
	for _, season := range models.Seasons {
		if s == season {
			return true
		}
	}
	return false
}

func (c *Cached) observe(hit bool) {
	if c.observer != nil {
		c.observer.LiturgicalCacheLookup(hit)
	}
}

// Fallback answers from Secondary when Primary fails for any reason other
// than invalid input.
type Fallback struct {
	Primary   Resolver
	Secondary Resolver
}

func (f Fallback) Day(ctx context.Context, date string) (models.LiturgicalDay, error) {
	day, err := f.Primary.Day(ctx, date)
	if err == nil {
		return day, nil
	}
	if errors.Is(err, apperrors.ErrInvalidInput) {
		return models.LiturgicalDay{}, err
	}
	logger.Warn("Liturgical cache unavailable, computing directly", "date", date, "error", err)
	return f.Secondary.Day(ctx, date)
}

// NewResolver returns a resolver backed by cache, falling back to direct
// computation. A nil cache yields the plain calendar.
func NewResolver(cache DayCache, observer CacheObserver) Resolver {
	calendar := NewCalendar()
	if cache == nil {
		return calendar
	}
	return Fallback{
		Primary:   NewCached(cache, calendar).WithObserver(observer),
		Secondary: calendar,
	}
}
