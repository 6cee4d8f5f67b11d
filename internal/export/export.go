// Package export serializes everything stored for one user.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/ruleoflife/internal/clock"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/models"
)

type Store interface {
	ListPractices(ctx context.Context, filter models.PracticeFilter) ([]models.Practice, error)
	ListOverrides(ctx context.Context, userID string, practiceIDs []string) ([]models.PracticeOverride, error)
	ListCompletions(ctx context.Context, userID, startDate, endDate string) ([]models.Completion, error)
	GetUserSettings(ctx context.Context, userID string) (models.UserSettings, error)
}

type User struct {
	ID string `json:"id"`
}

// Payload is the export document. Settings is null for a user who never
// saved any.
type Payload struct {
	ExportedAt  time.Time                 `json:"exported_at"`
	User        User                      `json:"user"`
	Practices   []models.Practice         `json:"practices"`
	Overrides   []models.PracticeOverride `json:"overrides"`
	Settings    *models.UserSettings      `json:"settings"`
	Completions []models.Completion       `json:"completions"`
}

type Service struct {
	store Store
	clock clock.Clock
}

func NewService(store Store, c clock.Clock) *Service {
	return &Service{store: store, clock: c}
}

func (s *Service) Build(ctx context.Context, userID string) (Payload, error) {
	if userID == "" {
		return Payload{}, apperrors.ErrUnauthenticated
	}

	practices, err := s.store.ListPractices(ctx, models.PracticeFilter{})
	if err != nil {
		return Payload{}, fmt.Errorf("list practices: %w", err)
	}
	overrides, err := s.store.ListOverrides(ctx, userID, nil)
	if err != nil {
		return Payload{}, fmt.Errorf("list overrides: %w", err)
	}
	settings, err := s.store.GetUserSettings(ctx, userID)
	if err != nil {
		return Payload{}, fmt.Errorf("get settings: %w", err)
	}
	completions, err := s.store.ListCompletions(ctx, userID, "", "")
	if err != nil {
		return Payload{}, fmt.Errorf("list completions: %w", err)
	}

	p := Payload{
		ExportedAt:  s.clock.Now().UTC(),
		User:        User{ID: userID},
		Practices:   nonNil(practices),
		Overrides:   nonNil(overrides),
		Completions: nonNil(completions),
	}
	if !settings.CreatedAt.IsZero() {
		p.Settings = &settings
	}
	return p, nil
}

// Filename is the download name for an export taken on date.
func (s *Service) Filename() string {
	return Filename(s.clock.Today())
}

func Filename(date string) string {
	return fmt.Sprintf("rule-of-life-export-%s.json", date)
}

// Write encodes p as indented JSON.
func Write(w io.Writer, p Payload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// WriteFile writes p to path, or to Filename inside path when path is a
// directory. It returns the file written.
func (s *Service) WriteFile(path string, p Payload) (string, error) {
	if path == "" {
		path = "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, s.Filename())
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := Write(f, p); err != nil {
		f.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
