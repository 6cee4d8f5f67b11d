package liturgical

import (
	"context"
	"errors"
	"os"
	"testing"

	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/models"
)

type memoryCache struct {
	days    map[string]models.LiturgicalDay
	gets    int
	puts    int
	failGet error
	failPut error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{days: map[string]models.LiturgicalDay{}}
}

func (m *memoryCache) GetLiturgicalDay(_ context.Context, date string) (*models.LiturgicalDay, error) {
	m.gets++
	if m.failGet != nil {
		return nil, m.failGet
	}
	d, ok := m.days[date]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memoryCache) PutLiturgicalDays(_ context.Context, days []models.LiturgicalDay) error {
	m.puts++
	if m.failPut != nil {
		return m.failPut
	}
	for _, d := range days {
		m.days[d.Date] = d
	}
	return nil
}

type lookupCounter struct{ hits, misses int }

func (l *lookupCounter) LiturgicalCacheLookup(hit bool) {
	if hit {
		l.hits++
	} else {
		l.misses++
	}
}

func TestCached_MissFillsYearThenHits(t *testing.T) {
	cache := newMemoryCache()
	counter := &lookupCounter{}
	resolver := NewCached(cache, NewCalendar()).WithObserver(counter)
	ctx := context.Background()

	day, err := resolver.Day(ctx, "2024-03-24")
	if err != nil {
		t.Fatalf("Day() error = %v", err)
	}
	if day.Season != models.SeasonHolyWeek {
		t.Errorf("Season = %s, want HOLY_WEEK", day.Season)
	}
	if len(cache.days) != 366 || cache.puts != 1 {
		t.Errorf("cache holds %d days after %d puts, want 366 after 1", len(cache.days), cache.puts)
	}

	if _, err := resolver.Day(ctx, "2024-07-04"); err != nil {
		t.Fatalf("second Day() error = %v", err)
	}
	if cache.puts != 1 {
		t.Errorf("cache filled again on a hit")
	}
	if counter.hits != 1 || counter.misses != 1 {
		t.Errorf("hits=%d misses=%d, want 1 and 1", counter.hits, counter.misses)
	}
}

func TestCached_ReturnsCachedValue(t *testing.T) {
	cache := newMemoryCache()
	cache.days["2024-06-01"] = models.LiturgicalDay{Date: "2024-06-01", Season: models.SeasonAdvent}

	day, err := NewCached(cache, NewCalendar()).Day(context.Background(), "2024-06-01")
	if err != nil {
		t.Fatalf("Day() error = %v", err)
	}
	if day.Season != models.SeasonAdvent {
		t.Errorf("Season = %s, want the cached ADVENT", day.Season)
	}
}

func TestCached_UnknownSeasonIsRecomputed(t *testing.T) {
	ctx := context.Background()

	for _, bad := range []models.Season{"Christmastide", "", "ordinary_time"} {
		t.Run(string(bad), func(t *testing.T) {
			cache := newMemoryCache()
			cache.days["2024-07-01"] = models.LiturgicalDay{Date: "2024-07-01", Season: bad}
			counter := &lookupCounter{}

			day, err := NewResolver(cache, counter).Day(ctx, "2024-07-01")
			if err != nil {
				t.Fatalf("Day() error = %v", err)
			}
			if day.Season != models.SeasonOrdinaryTime {
				t.Errorf("Season = %q, want ORDINARY_TIME", day.Season)
			}
			if PracticeSeason(day.Season) != models.SeasonOrdinaryTime {
				t.Errorf("PracticeSeason = %q", PracticeSeason(day.Season))
			}
			if got := cache.days["2024-07-01"].Season; got != models.SeasonOrdinaryTime {
				t.Errorf("cached row not repaired, season = %q", got)
			}
			if counter.misses != 1 || counter.hits != 0 {
				t.Errorf("lookups = %d hits, %d misses; want the bad row counted as a miss", counter.hits, counter.misses)
			}
		})
	}
}

func TestCached_UnknownSeasonWithFailingWriteFallsBack(t *testing.T) {
	cache := newMemoryCache()
	cache.days["2024-07-01"] = models.LiturgicalDay{Date: "2024-07-01", Season: "Christmastide"}
	cache.failPut = errors.New("readonly database")

	if _, err := NewCached(cache, NewCalendar()).Day(context.Background(), "2024-07-01"); err == nil || errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("Cached.Day() error = %v, want a cache failure", err)
	}

	day, err := NewResolver(cache, nil).Day(context.Background(), "2024-07-01")
	if err != nil {
		t.Fatalf("Day() error = %v", err)
	}
	if day.Season != models.SeasonOrdinaryTime {
		t.Errorf("Season = %q, want ORDINARY_TIME", day.Season)
	}
}

func TestCached_InvalidInputSkipsCache(t *testing.T) {
	cache := newMemoryCache()
	_, err := NewCached(cache, NewCalendar()).Day(context.Background(), "1400-01-01")
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("Day() error = %v, want ErrInvalidInput", err)
	}
	if cache.gets != 0 {
		t.Errorf("cache consulted %d times for invalid input", cache.gets)
	}
}

func TestFallback(t *testing.T) {
	boom := errors.New("database is locked")
	ctx := context.Background()

	tests := []struct {
		name    string
		cache   *memoryCache
		date    string
		wantErr error
	}{
		{name: "read failure computes", cache: &memoryCache{days: map[string]models.LiturgicalDay{}, failGet: boom}, date: "2024-12-25"},
		{name: "write failure computes", cache: &memoryCache{days: map[string]models.LiturgicalDay{}, failPut: boom}, date: "2024-12-25"},
		{name: "invalid input is not masked", cache: newMemoryCache(), date: "2024-13-40", wantErr: apperrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(tt.cache, nil)
			day, err := resolver.Day(ctx, tt.date)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Day() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Day() error = %v", err)
			}
			if day.Season != models.SeasonChristmas {
				t.Errorf("Season = %s, want CHRISTMAS", day.Season)
			}
		})
	}
}

func TestNewResolverWithoutCache(t *testing.T) {
	if _, ok := NewResolver(nil, nil).(*Calendar); !ok {
		t.Error("NewResolver(nil) should return the plain calendar")
	}
}

// TestRedisCache_Integration runs against a real Redis server.
// Example: RULE_TEST_REDIS="redis://localhost:6379/15"
func TestRedisCache_Integration(t *testing.T) {
	url := os.Getenv("RULE_TEST_REDIS")
	if url == "" {
		t.Skip("RULE_TEST_REDIS not set, skipping Redis integration test")
	}
	ctx := context.Background()

	cache, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	defer cache.Close()
	defer cache.rdb.Del(ctx, cache.key("2031-01-01"))

	if got, err := cache.GetLiturgicalDay(ctx, "2031-06-01"); err != nil || got != nil {
		t.Fatalf("GetLiturgicalDay(miss) = %v, %v", got, err)
	}

	resolver := NewCached(cache, NewCalendar())
	want, err := resolver.Day(ctx, "2031-04-13")
	if err != nil {
		t.Fatalf("Day() error = %v", err)
	}

	got, err := cache.GetLiturgicalDay(ctx, "2031-04-13")
	if err != nil || got == nil {
		t.Fatalf("GetLiturgicalDay(hit) = %v, %v", got, err)
	}
	if got.Season != want.Season || got.Date != want.Date {
		t.Errorf("cached %+v, want %+v", got, want)
	}
}
