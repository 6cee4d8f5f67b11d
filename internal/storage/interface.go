package storage

import (
	"context"

	"github.com/julianstephens/ruleoflife/internal/migration"
	"github.com/julianstephens/ruleoflife/internal/models"
)

// Provider is the persistence backend. Get methods return nil, nil when the
// row does not exist. Dates are YYYY-MM-DD strings.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	MigrationStatus(ctx context.Context) (migration.Status, error)
	// Migrate applies pending migrations, reporting progress to logFn.
	Migrate(ctx context.Context, logFn func(string)) (int, error)

	// Practice catalog
	ListPractices(ctx context.Context, filter models.PracticeFilter) ([]models.Practice, error)
	GetPractice(ctx context.Context, id string) (*models.Practice, error)
	GetPracticeByKey(ctx context.Context, key string) (*models.Practice, error)
	UpsertPractice(ctx context.Context, p models.Practice) error

	// Overrides. A nil practiceIDs lists every override of the user.
	ListOverrides(ctx context.Context, userID string, practiceIDs []string) ([]models.PracticeOverride, error)
	GetOverride(ctx context.Context, userID, practiceID string) (*models.PracticeOverride, error)
	UpsertOverride(ctx context.Context, o models.PracticeOverride) error

	// Completions. AddCompletion reports false when the row already existed;
	// DeleteCompletion reports false when there was nothing to delete.
	GetCompletion(ctx context.Context, userID, practiceID, dateLocal string) (*models.Completion, error)
	AddCompletion(ctx context.Context, c models.Completion) (bool, error)
	DeleteCompletion(ctx context.Context, userID, practiceID, dateLocal string) (bool, error)
	// ListCompletions returns completions with startDate <= date <= endDate,
	// ordered by date then practice. Empty bounds are open.
	ListCompletions(ctx context.Context, userID, startDate, endDate string) ([]models.Completion, error)

	// Settings. A user without a row gets a zero UserSettings with UserID set.
	GetUserSettings(ctx context.Context, userID string) (models.UserSettings, error)
	SaveUserSettings(ctx context.Context, s models.UserSettings) error

	// Liturgical day cache
	GetLiturgicalDay(ctx context.Context, date string) (*models.LiturgicalDay, error)
	PutLiturgicalDays(ctx context.Context, days []models.LiturgicalDay) error

	// Utils
	GetConfigPath() string
}
