package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/ruleoflife/internal/models"
)

func (s *Store) GetUserSettings(ctx context.Context, userID string) (models.UserSettings, error) {
	row := s.db.QueryRowContext(ctx, "SELECT user_id, wake_time, created_at, updated_at FROM user_settings WHERE user_id = ?", userID)

	settings := models.UserSettings{UserID: userID}
	var wake sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&settings.UserID, &wake, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return settings, nil
	}
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("getting settings: %w", err)
	}

	settings.WakeTime = stringPtr(wake)
	if settings.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.UserSettings{}, err
	}
	if settings.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.UserSettings{}, err
	}
	return settings, nil
}

func (s *Store) SaveUserSettings(ctx context.Context, settings models.UserSettings) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO user_settings (user_id, wake_time, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
	wake_time = excluded.wake_time,
	updated_at = excluded.updated_at`,
		settings.UserID, nullString(settings.WakeTime), formatTime(settings.CreatedAt), formatTime(settings.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
