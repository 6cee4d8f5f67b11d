package practices

import (
	"fmt"
	"time"

	"github.com/julianstephens/ruleoflife/internal/models"
)

var laneLabels = map[models.Lane]string{
	models.LanePrayer:    "Prayer",
	models.LaneAscetic:   "Ascetic",
	models.LaneCharity:   "Charity",
	models.LaneAttention: "Attention",
}

var seasonLabels = map[models.Season]string{
	models.SeasonAdvent:       "Advent",
	models.SeasonChristmas:    "Christmas",
	models.SeasonLent:         "Lent",
	models.SeasonHolyWeek:     "Holy Week",
	models.SeasonEaster:       "Easter",
	models.SeasonOrdinaryTime: "Ordinary Time",
}

func LaneLabel(lane models.Lane) string {
	if l, ok := laneLabels[lane]; ok {
		return l
	}
	return string(lane)
}

func SeasonLabel(season models.Season) string {
	if l, ok := seasonLabels[season]; ok {
		return l
	}
	return string(season)
}

// WeekdayLabel returns the full day name, or "Day N" outside 0..6.
func WeekdayLabel(wd time.Weekday) string {
	if wd < time.Sunday || wd > time.Saturday {
		return fmt.Sprintf("Day %d", int(wd))
	}
	return wd.String()
}

// WhenLabel describes how often p recurs: "Daily", "Weekly on <day>" or
// "Weekly" when no day is set.
func WhenLabel(p models.EffectivePractice) string {
	if p.Recurrence != models.RecurrenceWeekly {
		return "Daily"
	}
	if p.EffectiveScheduledWeekday == nil {
		return "Weekly"
	}
	return "Weekly on " + WeekdayLabel(*p.EffectiveScheduledWeekday)
}
