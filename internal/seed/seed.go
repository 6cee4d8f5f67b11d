// Package seed loads the practice catalog and writes it to storage.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/logger"
	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/validation"
)

//go:embed catalog.yaml
var catalogYAML []byte

// practiceNamespace scopes the name-based practice ids.
var practiceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/julianstephens/ruleoflife/practices"))

type catalogFile struct {
	Practices []entry `yaml:"practices"`
}

type entry struct {
	Key         string `yaml:"key"`
	Season      string `yaml:"season"`
	Lane        string `yaml:"lane"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Recurrence  string `yaml:"recurrence"`
	Weekday     string `yaml:"weekday"`
	SortOrder   int    `yaml:"sort_order"`
	Inactive    bool   `yaml:"inactive"`
}

// PracticeID is the deterministic id of the practice with key.
func PracticeID(key string) string {
	return uuid.NewSHA1(practiceNamespace, []byte(key)).String()
}

// Catalog returns the embedded catalog.
func Catalog() ([]models.Practice, error) {
	return Parse(catalogYAML)
}

func Load(path string) ([]models.Practice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) ([]models.Practice, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Invalidf("parsing catalog: %v", err)
	}
	if len(doc.Practices) == 0 {
		return nil, apperrors.Invalidf("catalog has no practices")
	}

	out := make([]models.Practice, 0, len(doc.Practices))
	for i, e := range doc.Practices {
		p, err := e.practice()
		if err != nil {
			return nil, apperrors.Invalidf("catalog entry %d (%s): %v", i+1, e.Key, err)
		}
		out = append(out, p)
	}

	if result := validation.New().ValidatePractices(out); result.HasConflicts() {
		return nil, apperrors.Invalidf("%s", strings.TrimSpace(result.FormatReport()))
	}
	return out, nil
}

func (e entry) practice() (models.Practice, error) {
	key := strings.TrimSpace(e.Key)
	if key == "" {
		return models.Practice{}, fmt.Errorf("missing key")
	}
	season, err := models.ParseSeason(e.Season)
	if err != nil {
		return models.Practice{}, err
	}
	lane, err := models.ParseLane(e.Lane)
	if err != nil {
		return models.Practice{}, err
	}
	rec, err := models.ParseRecurrence(e.Recurrence)
	if err != nil {
		return models.Practice{}, err
	}

	p := models.Practice{
		ID:          PracticeID(key),
		Key:         key,
		Season:      season,
		Lane:        lane,
		Title:       strings.TrimSpace(e.Title),
		Description: strings.TrimSpace(e.Description),
		Recurrence:  rec,
		IsActive:    !e.Inactive,
		SortOrder:   e.SortOrder,
	}
	if strings.TrimSpace(e.Weekday) != "" {
		wd, err := models.ParseWeekday(e.Weekday)
		if err != nil {
			return models.Practice{}, err
		}
		p.ScheduledWeekday = models.Weekday(wd)
	}
	return p, nil
}

type Store interface {
	GetPracticeByKey(ctx context.Context, key string) (*models.Practice, error)
	UpsertPractice(ctx context.Context, p models.Practice) error
}

// Result counts what Apply changed.
type Result struct {
	Inserted  int
	Updated   int
	Unchanged int
}

// Apply upserts practices by key. A practice already stored under a
// different id keeps that id so existing overrides and completions stay
// attached.
func Apply(ctx context.Context, store Store, list []models.Practice) (Result, error) {
	var res Result
	for _, p := range list {
		existing, err := store.GetPracticeByKey(ctx, p.Key)
		if err != nil {
			return res, fmt.Errorf("looking up %s: %w", p.Key, err)
		}
		switch {
		case existing == nil:
			res.Inserted++
		case samePractice(*existing, p):
			res.Unchanged++
			continue
		default:
			p.ID = existing.ID
			res.Updated++
		}
		if err := store.UpsertPractice(ctx, p); err != nil {
			return res, err
		}
	}
	logger.Info("Catalog applied", "inserted", res.Inserted, "updated", res.Updated, "unchanged", res.Unchanged)
	return res, nil
}

func samePractice(a, b models.Practice) bool {
	sameDay := (a.ScheduledWeekday == nil && b.ScheduledWeekday == nil) ||
		(a.ScheduledWeekday != nil && b.ScheduledWeekday != nil && *a.ScheduledWeekday == *b.ScheduledWeekday)
	return sameDay &&
		a.Season == b.Season &&
		a.Lane == b.Lane &&
		a.Title == b.Title &&
		a.Description == b.Description &&
		a.Recurrence == b.Recurrence &&
		a.IsActive == b.IsActive &&
		a.SortOrder == b.SortOrder
}
