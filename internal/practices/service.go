package practices

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/ruleoflife/internal/clock"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/logger"
	"github.com/julianstephens/ruleoflife/internal/models"
)

// Store is the persistence the practice service needs. Get methods return
// nil, nil when the row does not exist.
type Store interface {
	ListPractices(ctx context.Context, filter models.PracticeFilter) ([]models.Practice, error)
	GetPractice(ctx context.Context, id string) (*models.Practice, error)
	GetPracticeByKey(ctx context.Context, key string) (*models.Practice, error)
	ListOverrides(ctx context.Context, userID string, practiceIDs []string) ([]models.PracticeOverride, error)
	GetOverride(ctx context.Context, userID, practiceID string) (*models.PracticeOverride, error)
	UpsertOverride(ctx context.Context, o models.PracticeOverride) error
	GetUserSettings(ctx context.Context, userID string) (models.UserSettings, error)
	SaveUserSettings(ctx context.Context, s models.UserSettings) error
}

// Patch describes a change to a user's override. Nil fields are left as they
// are. A blank Title or Description clears the customization.
type Patch struct {
	Weekday      *time.Weekday
	ClearWeekday bool
	Enabled      *bool
	Title        *string
	Description  *string
}

func (p Patch) empty() bool {
	return p.Weekday == nil && !p.ClearWeekday && p.Enabled == nil && p.Title == nil && p.Description == nil
}

type Service struct {
	store Store
	clock clock.Clock
}

func NewService(store Store, c clock.Clock) *Service {
	return &Service{store: store, clock: c}
}

// Lookup finds an active or inactive practice by ID, falling back to its key.
func (s *Service) Lookup(ctx context.Context, idOrKey string) (models.Practice, error) {
	p, err := s.store.GetPractice(ctx, idOrKey)
	if err != nil {
		return models.Practice{}, fmt.Errorf("get practice %s: %w", idOrKey, err)
	}
	if p == nil {
		p, err = s.store.GetPracticeByKey(ctx, idOrKey)
		if err != nil {
			return models.Practice{}, fmt.Errorf("get practice by key %s: %w", idOrKey, err)
		}
	}
	if p == nil {
		return models.Practice{}, fmt.Errorf("practice %q: %w", idOrKey, apperrors.ErrNotFound)
	}
	return *p, nil
}

// Effective lists the catalog matching filter with the user's overrides
// applied, in display order.
func (s *Service) Effective(ctx context.Context, userID string, filter models.PracticeFilter) ([]models.EffectivePractice, error) {
	catalog, err := s.store.ListPractices(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list practices: %w", err)
	}
	var overrides []models.PracticeOverride
	if userID != "" && len(catalog) > 0 {
		ids := make([]string, len(catalog))
		for i, p := range catalog {
			ids[i] = p.ID
		}
		overrides, err = s.store.ListOverrides(ctx, userID, ids)
		if err != nil {
			return nil, fmt.Errorf("list overrides: %w", err)
		}
		if dups := DuplicateOverrides(overrides); len(dups) > 0 {
			logger.Warn("Duplicate overrides, using the last row", "user", userID, "practices", dups)
		}
	}
	return Sort(Resolve(catalog, overrides)), nil
}

// SetOverride applies patch to the user's override for practiceID, creating
// it if needed, and returns the stored override.
func (s *Service) SetOverride(ctx context.Context, userID, practiceID string, patch Patch) (models.PracticeOverride, error) {
	if userID == "" {
		return models.PracticeOverride{}, apperrors.ErrUnauthenticated
	}
	if patch.empty() {
		return models.PracticeOverride{}, apperrors.Invalidf("no override fields given")
	}
	if patch.Weekday != nil {
		if err := clock.ValidateWeekday(*patch.Weekday); err != nil {
			return models.PracticeOverride{}, err
		}
	}

	p, err := s.Lookup(ctx, practiceID)
	if err != nil {
		return models.PracticeOverride{}, err
	}
	if patch.Weekday != nil && p.Recurrence != models.RecurrenceWeekly {
		return models.PracticeOverride{}, apperrors.Invalidf("practice %q is not weekly", p.Key)
	}

	existing, err := s.store.GetOverride(ctx, userID, p.ID)
	if err != nil {
		return models.PracticeOverride{}, fmt.Errorf("get override: %w", err)
	}

	now := s.clock.Now()
	o := models.PracticeOverride{
		UserID:     userID,
		PracticeID: p.ID,
		IsEnabled:  true,
		CreatedAt:  now,
	}
	if existing != nil {
		o = *existing
	}
	o.UpdatedAt = now

	switch {
	case patch.ClearWeekday:
		o.ScheduledWeekday = nil
	case patch.Weekday != nil:
		o.ScheduledWeekday = models.Weekday(*patch.Weekday)
	}
	if patch.Enabled != nil {
		o.IsEnabled = *patch.Enabled
	}
	if patch.Title != nil {
		o.CustomTitle = customText(*patch.Title)
	}
	if patch.Description != nil {
		o.CustomDescription = customText(*patch.Description)
	}

	if err := s.store.UpsertOverride(ctx, o); err != nil {
		return models.PracticeOverride{}, fmt.Errorf("save override: %w", err)
	}
	logger.Debug("Override saved", "user", userID, "practice", p.Key, "enabled", o.IsEnabled)
	return o, nil
}

// SetWakeTime stores the user's HH:MM wake time. An empty value clears it.
func (s *Service) SetWakeTime(ctx context.Context, userID, wake string) (models.UserSettings, error) {
	if userID == "" {
		return models.UserSettings{}, apperrors.ErrUnauthenticated
	}
	wake = strings.TrimSpace(wake)
	if wake != "" {
		if err := models.ValidateWakeTime(wake); err != nil {
			return models.UserSettings{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
	}

	settings, err := s.store.GetUserSettings(ctx, userID)
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("get settings: %w", err)
	}
	now := s.clock.Now()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UserID = userID
	settings.UpdatedAt = now
	settings.WakeTime = nil
	if wake != "" {
		settings.WakeTime = models.String(wake)
	}

	if err := s.store.SaveUserSettings(ctx, settings); err != nil {
		return models.UserSettings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

func customText(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return models.String(s)
}
