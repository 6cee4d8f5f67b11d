package history

import (
	"fmt"
	"regexp"
	"time"

	"github.com/julianstephens/ruleoflife/internal/clock"
	"github.com/julianstephens/ruleoflife/internal/constants"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	if !monthPattern.MatchString(s) {
		return Month{}, apperrors.Invalidf("bad month %q (expected YYYY-MM)", s)
	}
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return Month{}, apperrors.Invalidf("bad month %q (expected YYYY-MM)", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// CurrentMonth is the month containing the clock's local date.
func CurrentMonth(c clock.Clock) Month {
	now := c.Now()
	return Month{Year: now.Year(), Month: now.Month()}
}

// MonthOf returns the month of a YYYY-MM-DD date.
func MonthOf(date string) (Month, error) {
	t, err := clock.ParseDate(date)
	if err != nil {
		return Month{}, err
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Title renders the month as "March 2025".
func (m Month) Title() string {
	return m.first().Format("January 2006")
}

func (m Month) first() time.Time {
	return time.Date(m.Year, m.Month, 1, 12, 0, 0, 0, time.UTC)
}

// AddMonths shifts by delta months, normalizing across years.
func (m Month) AddMonths(delta int) Month {
	t := m.first().AddDate(0, delta, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Contains reports whether date (YYYY-MM-DD) falls in m.
func (m Month) Contains(date string) bool {
	t, err := clock.ParseDate(date)
	return err == nil && t.Year() == m.Year && t.Month() == m.Month
}

// Bounds are the first and last dates of a month.
type Bounds struct {
	Start        string       `json:"start"`
	End          string       `json:"end"`
	DaysInMonth  int          `json:"days_in_month"`
	FirstWeekday time.Weekday `json:"first_weekday"`
}

func (m Month) Bounds() Bounds {
	first := m.first()
	last := first.AddDate(0, 1, -1)
	return Bounds{
		Start:        first.Format(constants.DateFormat),
		End:          last.Format(constants.DateFormat),
		DaysInMonth:  last.Day(),
		FirstWeekday: first.Weekday(),
	}
}

// Date returns the YYYY-MM-DD string of day d in m.
func (m Month) Date(d int) string {
	return fmt.Sprintf("%s-%02d", m.String(), d)
}
