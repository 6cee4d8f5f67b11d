package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/ruleoflife/internal/models"
)

func (s *Store) GetUserSettings(ctx context.Context, userID string) (models.UserSettings, error) {
	row := s.db.QueryRowContext(ctx, "SELECT user_id, wake_time, created_at, updated_at FROM user_settings WHERE user_id = $1", userID)

	settings := models.UserSettings{UserID: userID}
	var wake sql.NullString
	err := row.Scan(&settings.UserID, &wake, &settings.CreatedAt, &settings.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserSettings{UserID: userID}, nil
	}
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("getting settings: %w", err)
	}
	settings.WakeTime = stringPtr(wake)
	return settings, nil
}

func (s *Store) SaveUserSettings(ctx context.Context, settings models.UserSettings) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO user_settings (user_id, wake_time, created_at, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE SET
	wake_time = EXCLUDED.wake_time,
	updated_at = EXCLUDED.updated_at`,
		settings.UserID, nullString(settings.WakeTime), settings.CreatedAt.UTC(), settings.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
