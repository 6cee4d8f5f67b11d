// Package completion toggles whether a user did a practice today.
package completion

import (
	"context"
	"fmt"

	"github.com/julianstephens/ruleoflife/internal/clock"
	"github.com/julianstephens/ruleoflife/internal/constants"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/logger"
	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/practices"
)

// State is the done state of a practice after a toggle.
type State string

const (
	NotDone State = "NOT_DONE"
	Done    State = "DONE"
)

// Result reports the outcome of a successful toggle.
type Result struct {
	PracticeID string `json:"practice_id"`
	DateLocal  string `json:"date_local"`
	State      State  `json:"state"`
}

// Store is the persistence the toggle needs. Get methods return nil, nil
// when the row does not exist. AddCompletion must ignore an existing row and
// DeleteCompletion must treat a missing row as success.
type Store interface {
	GetPractice(ctx context.Context, id string) (*models.Practice, error)
	GetOverride(ctx context.Context, userID, practiceID string) (*models.PracticeOverride, error)
	GetCompletion(ctx context.Context, userID, practiceID, dateLocal string) (*models.Completion, error)
	AddCompletion(ctx context.Context, c models.Completion) (bool, error)
	DeleteCompletion(ctx context.Context, userID, practiceID, dateLocal string) (bool, error)
}

// Recorder observes toggle outcomes. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ToggleCompleted(state State)
	ToggleRejected(err error)
}

type Service struct {
	store    Store
	clock    clock.Clock
	recorder Recorder
}

func NewService(store Store, c clock.Clock) *Service {
	return &Service{store: store, clock: c}
}

// WithRecorder sets a recorder for toggle outcomes.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// Toggle flips the done state of practiceID for userID on the clock's current
// local date. Eligibility is checked before anything is written: the user
// must be signed in, the practice must exist and be active, it must not be
// disabled for the user, and a weekly practice must fall on today.
func (s *Service) Toggle(ctx context.Context, userID, practiceID string) (Result, error) {
	res, err := s.toggle(ctx, userID, practiceID)
	if s.recorder != nil {
		if err != nil {
			s.recorder.ToggleRejected(err)
		} else {
			s.recorder.ToggleCompleted(res.State)
		}
	}
	return res, err
}

func (s *Service) toggle(ctx context.Context, userID, practiceID string) (Result, error) {
	if userID == "" {
		return Result{}, apperrors.ErrUnauthenticated
	}

	p, err := s.store.GetPractice(ctx, practiceID)
	if err != nil {
		return Result{}, fmt.Errorf("get practice %s: %w", practiceID, err)
	}
	if p == nil || !p.IsActive {
		return Result{}, fmt.Errorf("practice %s: %w", practiceID, apperrors.ErrNotFound)
	}

	o, err := s.store.GetOverride(ctx, userID, practiceID)
	if err != nil {
		return Result{}, fmt.Errorf("get override %s: %w", practiceID, err)
	}
	ep := practices.ResolveOne(*p, o)
	if !ep.IsEnabled {
		return Result{}, fmt.Errorf("practice %s: %w", practiceID, apperrors.ErrDisabled)
	}

	// Date and weekday come from one reading of the clock.
	now := s.clock.Now()
	date := now.Format(constants.DateFormat)
	if ep.Recurrence == models.RecurrenceWeekly {
		if ep.EffectiveScheduledWeekday == nil || *ep.EffectiveScheduledWeekday != now.Weekday() {
			return Result{}, fmt.Errorf("practice %s: %w", practiceID, apperrors.ErrNotScheduledToday)
		}
	}

	existing, err := s.store.GetCompletion(ctx, userID, practiceID, date)
	if err != nil {
		return Result{}, fmt.Errorf("get completion %s on %s: %w", practiceID, date, err)
	}

	res := Result{PracticeID: practiceID, DateLocal: date}
	if existing != nil {
		if _, err := s.store.DeleteCompletion(ctx, userID, practiceID, date); err != nil {
			return Result{}, fmt.Errorf("delete completion %s on %s: %w", practiceID, date, err)
		}
		res.State = NotDone
	} else {
		c := models.Completion{UserID: userID, PracticeID: practiceID, DateLocal: date, CompletedAt: now}
		if _, err := s.store.AddCompletion(ctx, c); err != nil {
			return Result{}, fmt.Errorf("add completion %s on %s: %w", practiceID, date, err)
		}
		res.State = Done
	}

	logger.Debug("Practice toggled", "user", userID, "practice", practiceID, "date", date, "state", res.State)
	return res, nil
}
