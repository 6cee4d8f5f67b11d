// Package clock resolves "now" to a local calendar date and weekday in a
// configured time zone.
package clock

import (
	"fmt"
	"time"

	"github.com/julianstephens/ruleoflife/internal/constants"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
)

// Clock supplies the current instant and local calendar date.
type Clock interface {
	Now() time.Time
	// Today returns the local date as YYYY-MM-DD.
	Today() string
	// Weekday returns the local weekday (0=Sunday).
	Weekday() time.Weekday
	Location() *time.Location
}

// LoadLocation loads an IANA zone. Empty means the default zone and "Local"
// means the system zone.
func LoadLocation(name string) (*time.Location, error) {
	switch name {
	case "":
		name = constants.DefaultTimezone
	case "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, apperrors.Invalidf("timezone %q: %v", name, err)
	}
	return loc, nil
}

// Zone is a wall clock pinned to a time zone.
type Zone struct {
	loc *time.Location
	now func() time.Time
}

func NewZone(name string) (*Zone, error) {
	loc, err := LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return &Zone{loc: loc, now: time.Now}, nil
}

func (z *Zone) Now() time.Time           { return z.now().In(z.loc) }
func (z *Zone) Today() string            { return z.Now().Format(constants.DateFormat) }
func (z *Zone) Weekday() time.Weekday    { return z.Now().Weekday() }
func (z *Zone) Location() *time.Location { return z.loc }

// Fixed always reports the same instant. Used by tests and by --date overrides.
type Fixed struct {
	T time.Time
}

// NewFixed returns a clock stopped at noon of date in loc.
func NewFixed(date string, loc *time.Location) (*Fixed, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return &Fixed{T: time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc)}, nil
}

func (f *Fixed) Now() time.Time           { return f.T }
func (f *Fixed) Today() string            { return f.T.Format(constants.DateFormat) }
func (f *Fixed) Weekday() time.Weekday    { return f.T.Weekday() }
func (f *Fixed) Location() *time.Location { return f.T.Location() }

// ParseDate parses a strict YYYY-MM-DD date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, apperrors.Invalidf("date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// ValidateDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	_, err := ParseDate(s)
	return err
}

// ValidateWeekday rejects weekday indexes outside 0..6.
func ValidateWeekday(wd time.Weekday) error {
	if wd < time.Sunday || wd > time.Saturday {
		return apperrors.Invalidf("weekday %d out of range 0-6", int(wd))
	}
	return nil
}

// WeekdayOf returns the weekday of a YYYY-MM-DD date.
func WeekdayOf(date string) (time.Weekday, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// ShortWeekday returns the three-letter name of wd, or "?" when out of range.
func ShortWeekday(wd time.Weekday) string {
	if ValidateWeekday(wd) != nil {
		return "?"
	}
	return wd.String()[:3]
}

// Describe formats a clock for logs.
func Describe(c Clock) string {
	return fmt.Sprintf("%s (%s)", c.Today(), c.Location())
}
