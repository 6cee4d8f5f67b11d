package liturgical

import (
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/models"
)

var externalSeasons = map[string]models.Season{
	"Advent":              models.SeasonAdvent,
	"Christmastide":       models.SeasonChristmas,
	"Lent":                models.SeasonLent,
	"Holy Week":           models.SeasonHolyWeek,
	"Easter":              models.SeasonEaster,
	"Early Ordinary Time": models.SeasonOrdinaryTime,
	"Later Ordinary Time": models.SeasonOrdinaryTime,
}

// NormalizeSeason accepts a Season in any of the spellings models.ParseSeason
// takes, or a season name used by published liturgical calendars such as
// "Christmastide" or "Later Ordinary Time".
func NormalizeSeason(key string) (models.Season, error) {
	if s, ok := externalSeasons[key]; ok {
		return s, nil
	}
	if s, err := models.ParseSeason(key); err == nil {
		return s, nil
	}
	return "", apperrors.Invalidf("unsupported season %q", key)
}

// PracticeSeason returns the catalog season whose practices apply during
// season. Holy Week keeps the Lenten practices.
func PracticeSeason(season models.Season) models.Season {
	if season == models.SeasonHolyWeek {
		return models.SeasonLent
	}
	return season
}
