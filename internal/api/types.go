package api

import (
	"bytes"
	"encoding/json"
	"strconv"

	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/practices"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PracticeView is an effective practice with display labels.
type PracticeView struct {
	models.EffectivePractice
	LaneLabel   string `json:"lane_label"`
	SeasonLabel string `json:"season_label"`
	When        string `json:"when"`
}

type ListPracticesResponse struct {
	Practices []PracticeView `json:"practices"`
}

func toPracticeView(ep models.EffectivePractice) PracticeView {
	return PracticeView{
		EffectivePractice: ep,
		LaneLabel:         practices.LaneLabel(ep.Lane),
		SeasonLabel:       practices.SeasonLabel(ep.Season),
		When:              practices.WhenLabel(ep),
	}
}

type SeasonResponse struct {
	models.LiturgicalDay
	SeasonLabel    string        `json:"season_label"`
	PracticeSeason models.Season `json:"practice_season"`
}

type VerseResponse struct {
	Date  string `json:"date"`
	Index int    `json:"index"`
	models.Verse
}

type SettingsRequest struct {
	WakeTime *string `json:"wake_time"`
}

// OverrideRequest is the body of PUT /v1/practices/{id}/override. Absent
// fields are left unchanged. "weekday": null clears a weekday override; a
// day is given as 0-6 or a day name. A blank title or description clears
// the customization.
type OverrideRequest struct {
	Weekday     json.RawMessage `json:"weekday"`
	Enabled     *bool           `json:"enabled"`
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
}

// Patch converts the request into a practices.Patch.
func (r OverrideRequest) Patch() (practices.Patch, error) {
	patch := practices.Patch{
		Enabled:     r.Enabled,
		Title:       r.Title,
		Description: r.Description,
	}

	raw := bytes.TrimSpace(r.Weekday)
	switch {
	case len(raw) == 0:
	case bytes.Equal(raw, []byte("null")):
		patch.ClearWeekday = true
	default:
		var value interface{}
		if err := json.Unmarshal(raw, &value); err != nil {
			return practices.Patch{}, apperrors.Invalidf("invalid weekday: %v", err)
		}
		var text string
		switch v := value.(type) {
		case float64:
			if v != float64(int(v)) {
				return practices.Patch{}, apperrors.Invalidf("invalid weekday %v", v)
			}
			text = strconv.Itoa(int(v))
		case string:
			text = v
		default:
			return practices.Patch{}, apperrors.Invalidf("invalid weekday %s", raw)
		}
		wd, err := models.ParseWeekday(text)
		if err != nil {
			return practices.Patch{}, apperrors.Invalidf("%v", err)
		}
		patch.Weekday = models.Weekday(wd)
	}
	return patch, nil
}
