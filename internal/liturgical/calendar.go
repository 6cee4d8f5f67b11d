// Package liturgical maps calendar dates to the season and celebration of
// the Roman Catholic liturgical year as kept in the United States.
package liturgical

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/ruleoflife/internal/clock"
	"github.com/julianstephens/ruleoflife/internal/constants"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/models"
)

// Resolver returns the liturgical day for a YYYY-MM-DD date.
type Resolver interface {
	Day(ctx context.Context, date string) (models.LiturgicalDay, error)
}

// Calendar computes liturgical days without any storage. It is safe for
// concurrent use.
type Calendar struct{}

func NewCalendar() *Calendar {
	return &Calendar{}
}

// Day computes the liturgical day for date.
func (c *Calendar) Day(_ context.Context, date string) (models.LiturgicalDay, error) {
	t, err := parseYearDate(date)
	if err != nil {
		return models.LiturgicalDay{}, err
	}
	y := newYear(t.Year())
	return y.day(t), nil
}

// Year returns every day of year y in date order.
func (c *Calendar) Year(year int) ([]models.LiturgicalDay, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}
	y := newYear(year)
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := make([]models.LiturgicalDay, 0, 366)
	for t := start; t.Year() == year; t = t.AddDate(0, 0, 1) {
		days = append(days, y.day(t))
	}
	return days, nil
}

// ValidateYear rejects years before the Gregorian reform.
func ValidateYear(year int) error {
	if year < constants.MinGregorianYear {
		return apperrors.Invalidf("year %d is before %d", year, constants.MinGregorianYear)
	}
	return nil
}

func parseYearDate(date string) (time.Time, error) {
	t, err := clock.ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	if err := ValidateYear(t.Year()); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Easter returns Easter Sunday of year (Gregorian computus).
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// FirstSundayOfAdvent is the Sunday falling between November 27 and December 3.
func FirstSundayOfAdvent(year int) time.Time {
	return sundayOnOrAfter(time.Date(year, time.November, 27, 0, 0, 0, 0, time.UTC))
}

// Epiphany is kept in the United States on the Sunday between January 2 and 8.
func Epiphany(year int) time.Time {
	return sundayOnOrAfter(time.Date(year, time.January, 2, 0, 0, 0, 0, time.UTC))
}

// BaptismOfTheLord is the Sunday after Epiphany, or the Monday after it when
// Epiphany falls on January 7 or 8.
func BaptismOfTheLord(year int) time.Time {
	ep := Epiphany(year)
	if ep.Day() >= 7 {
		return ep.AddDate(0, 0, 1)
	}
	return ep.AddDate(0, 0, 7)
}

func sundayOnOrAfter(t time.Time) time.Time {
	return t.AddDate(0, 0, (7-int(t.Weekday()))%7)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

type celebration struct {
	key  string
	name string
	typ  string
	rank int
}

// Precedence ranks, lower wins.
const (
	rankTriduum        = 1
	rankPrincipal      = 2 // Christmas, Epiphany, Ascension, Pentecost, privileged Sundays and weekdays
	rankSolemnity      = 3
	rankFeastOfLord    = 5
	rankOrdinarySunday = 6
	rankFeast          = 7
)

// year holds the movable anchors of one civil year and its celebrations.
type year struct {
	n            int
	easter       time.Time
	ashWednesday time.Time
	palmSunday   time.Time
	pentecost    time.Time
	baptism      time.Time
	advent       time.Time
	christmas    time.Time
	celebrations map[int]celebration // key: day of year
}

func newYear(n int) *year {
	easter := Easter(n)
	y := &year{
		n:            n,
		easter:       easter,
		ashWednesday: easter.AddDate(0, 0, -46),
		palmSunday:   easter.AddDate(0, 0, -7),
		pentecost:    easter.AddDate(0, 0, 49),
		baptism:      BaptismOfTheLord(n),
		advent:       FirstSundayOfAdvent(n),
		christmas:    time.Date(n, time.December, 25, 0, 0, 0, 0, time.UTC),
		celebrations: map[int]celebration{},
	}
	y.plan()
	return y
}

func (y *year) season(t time.Time) models.Season {
	switch {
	case !t.After(y.baptism):
		return models.SeasonChristmas
	case !t.Before(y.christmas):
		return models.SeasonChristmas
	case !t.Before(y.advent):
		return models.SeasonAdvent
	case !t.Before(y.easter) && !t.After(y.pentecost):
		return models.SeasonEaster
	case !t.Before(y.palmSunday) && t.Before(y.easter):
		return models.SeasonHolyWeek
	case !t.Before(y.ashWednesday) && t.Before(y.palmSunday):
		return models.SeasonLent
	default:
		return models.SeasonOrdinaryTime
	}
}

func (y *year) day(t time.Time) models.LiturgicalDay {
	d := models.LiturgicalDay{
		Date:   t.Format(constants.DateFormat),
		Season: y.season(t),
	}
	if c, ok := y.celebrations[t.YearDay()]; ok {
		d.CelebrationKey = models.String(c.key)
		d.CelebrationName = models.String(c.name)
		d.CelebrationType = models.String(c.typ)
	}
	return d
}

// place records c on t unless a higher-ranked celebration is already there.
// An impeded solemnity moves to the next free day.
func (y *year) place(t time.Time, c celebration) {
	for t.Year() == y.n {
		existing, taken := y.celebrations[t.YearDay()]
		if !taken || c.rank < existing.rank {
			y.celebrations[t.YearDay()] = c
			return
		}
		if c.rank != rankSolemnity {
			return
		}
		t = t.AddDate(0, 0, 1)
	}
}

func (y *year) fixed(month time.Month, day int, c celebration) {
	y.place(time.Date(y.n, month, day, 0, 0, 0, 0, time.UTC), c)
}

func (y *year) plan() {
	e := y.easter

	// Paschal Triduum and Easter.
	y.place(e.AddDate(0, 0, -3), celebration{"holy_thursday", "Thursday of the Lord's Supper", models.CelebrationTriduum, rankTriduum})
	y.place(e.AddDate(0, 0, -2), celebration{"good_friday", "Friday of the Passion of the Lord", models.CelebrationTriduum, rankTriduum})
	y.place(e.AddDate(0, 0, -1), celebration{"holy_saturday", "Holy Saturday", models.CelebrationTriduum, rankTriduum})
	y.place(e, celebration{"easter_sunday", "Easter Sunday of the Resurrection of the Lord", models.CelebrationSolemnity, rankTriduum})

	// Principal celebrations.
	y.place(y.christmas, celebration{"christmas", "The Nativity of the Lord", models.CelebrationSolemnity, rankPrincipal})
	y.place(Epiphany(y.n), celebration{"epiphany", "The Epiphany of the Lord", models.CelebrationSolemnity, rankPrincipal})
	y.place(e.AddDate(0, 0, 42), celebration{"ascension", "The Ascension of the Lord", models.CelebrationSolemnity, rankPrincipal})
	y.place(y.pentecost, celebration{"pentecost_sunday", "Pentecost Sunday", models.CelebrationSolemnity, rankPrincipal})
	y.place(y.ashWednesday, celebration{"ash_wednesday", "Ash Wednesday", models.CelebrationFeria, rankPrincipal})
	y.place(y.palmSunday, celebration{"palm_sunday", "Palm Sunday of the Passion of the Lord", models.CelebrationSunday, rankPrincipal})
	for i, name := range []string{"Monday", "Tuesday", "Wednesday"} {
		y.place(y.palmSunday.AddDate(0, 0, i+1), celebration{
			fmt.Sprintf("holy_week_%s", strings.ToLower(name)), name + " of Holy Week", models.CelebrationHolyWeek, rankPrincipal,
		})
	}
	for i, name := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"} {
		y.place(e.AddDate(0, 0, i+1), celebration{
			fmt.Sprintf("easter_octave_%s", strings.ToLower(name)), name + " within the Octave of Easter", models.CelebrationSolemnity, rankPrincipal,
		})
	}
	y.place(e.AddDate(0, 0, 7), celebration{"divine_mercy_sunday", "Second Sunday of Easter (Divine Mercy Sunday)", models.CelebrationSunday, rankPrincipal})

	// Sundays of the privileged seasons.
	advent := FirstSundayOfAdvent(y.n)
	for i := 0; i < 4; i++ {
		y.place(advent.AddDate(0, 0, 7*i), sunday("advent", i+1, "of Advent", rankPrincipal))
	}
	firstLent := y.ashWednesday.AddDate(0, 0, 4)
	for i := 0; i < 5; i++ {
		y.place(firstLent.AddDate(0, 0, 7*i), sunday("lent", i+1, "of Lent", rankPrincipal))
	}
	for i := 2; i <= 7; i++ {
		y.place(e.AddDate(0, 0, 7*(i-1)), sunday("easter", i, "of Easter", rankPrincipal))
	}

	// Movable solemnities and feasts.
	christKing := advent.AddDate(0, 0, -7)
	y.place(e.AddDate(0, 0, 56), celebration{"trinity_sunday", "The Most Holy Trinity", models.CelebrationSolemnity, rankSolemnity})
	y.place(e.AddDate(0, 0, 63), celebration{"corpus_christi", "The Most Holy Body and Blood of Christ", models.CelebrationSolemnity, rankSolemnity})
	y.place(e.AddDate(0, 0, 68), celebration{"sacred_heart", "The Most Sacred Heart of Jesus", models.CelebrationSolemnity, rankSolemnity})
	y.place(christKing, celebration{"christ_the_king", "Our Lord Jesus Christ, King of the Universe", models.CelebrationSolemnity, rankSolemnity})
	y.place(y.baptism, celebration{"baptism_of_the_lord", "The Baptism of the Lord", models.CelebrationFeast, rankFeastOfLord})
	y.place(holyFamily(y.n), celebration{"holy_family", "The Holy Family of Jesus, Mary and Joseph", models.CelebrationFeast, rankFeastOfLord})

	// Fixed solemnities and feasts.
	y.fixed(time.January, 1, celebration{"mary_mother_of_god", "Mary, the Holy Mother of God", models.CelebrationSolemnity, rankSolemnity})
	y.fixed(time.March, 19, celebration{"joseph_spouse_of_mary", "Saint Joseph, Spouse of the Blessed Virgin Mary", models.CelebrationSolemnity, rankSolemnity})
	y.fixed(time.March, 25, celebration{"annunciation", "The Annunciation of the Lord", models.CelebrationSolemnity, rankSolemnity})
	y.fixed(time.June, 24, celebration{"birth_of_john_the_baptist", "The Nativity of Saint John the Baptist", models.CelebrationSolemnity, rankSolemnity})
	y.fixed(time.June, 29, celebration{"peter_and_paul", "Saints Peter and Paul, Apostles", models.CelebrationSolemnity, rankSolemnity})
	y.fixed(time.August, 15, celebration{"assumption", "The Assumption of the Blessed Virgin Mary", models.CelebrationSolemnity, rankSolemnity})
	y.fixed(time.November, 1, celebration{"all_saints", "All Saints", models.CelebrationSolemnity, rankSolemnity})
	y.fixed(time.November, 2, celebration{"all_souls", "The Commemoration of All the Faithful Departed", models.CelebrationCommemoration, rankSolemnity})
	y.fixed(time.December, 8, celebration{"immaculate_conception", "The Immaculate Conception of the Blessed Virgin Mary", models.CelebrationSolemnity, rankSolemnity})
	y.fixed(time.February, 2, celebration{"presentation_of_the_lord", "The Presentation of the Lord", models.CelebrationFeast, rankFeastOfLord})
	y.fixed(time.August, 6, celebration{"transfiguration", "The Transfiguration of the Lord", models.CelebrationFeast, rankFeastOfLord})
	y.fixed(time.September, 14, celebration{"exaltation_of_the_holy_cross", "The Exaltation of the Holy Cross", models.CelebrationFeast, rankFeastOfLord})
	y.fixed(time.December, 12, celebration{"our_lady_of_guadalupe", "Our Lady of Guadalupe", models.CelebrationFeast, rankFeast})

	// Sundays in Ordinary Time, numbered forward from the Baptism of the Lord
	// and backward from Christ the King (the 34th).
	for t := sundayOnOrAfter(y.baptism.AddDate(0, 0, 1)); t.Before(y.ashWednesday); t = t.AddDate(0, 0, 7) {
		y.place(t, sunday("ordinary_time", (daysBetween(y.baptism, t)+6)/7+1, "in Ordinary Time", rankOrdinarySunday))
	}
	for t := christKing.AddDate(0, 0, -7); t.After(y.pentecost); t = t.AddDate(0, 0, -7) {
		y.place(t, sunday("ordinary_time", 34-daysBetween(t, christKing)/7, "in Ordinary Time", rankOrdinarySunday))
	}
}

// holyFamily is the Sunday within the Octave of Christmas, or December 30
// when Christmas itself is a Sunday.
func holyFamily(year int) time.Time {
	t := sundayOnOrAfter(time.Date(year, time.December, 26, 0, 0, 0, 0, time.UTC))
	if t.Year() != year {
		return time.Date(year, time.December, 30, 0, 0, 0, 0, time.UTC)
	}
	return t
}

func sunday(season string, n int, suffix string, rank int) celebration {
	return celebration{
		key:  fmt.Sprintf("%s_sunday_%d", season, n),
		name: fmt.Sprintf("%s Sunday %s", ordinal(n), suffix),
		typ:  models.CelebrationSunday,
		rank: rank,
	}
}

var ordinalUnits = []string{"", "First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh", "Eighth", "Ninth"}
var ordinalTeens = []string{"Tenth", "Eleventh", "Twelfth", "Thirteenth", "Fourteenth", "Fifteenth", "Sixteenth", "Seventeenth", "Eighteenth", "Nineteenth"}
var ordinalTens = map[int][2]string{2: {"Twentieth", "Twenty"}, 3: {"Thirtieth", "Thirty"}}

// ordinal spells out 1..39.
func ordinal(n int) string {
	switch {
	case n < 1 || n > 39:
		return fmt.Sprintf("%dth", n)
	case n < 10:
		return ordinalUnits[n]
	case n < 20:
		return ordinalTeens[n-10]
	}
	tens := ordinalTens[n/10]
	if n%10 == 0 {
		return tens[0]
	}
	return tens[1] + "-" + strings.ToLower(ordinalUnits[n%10])
}
