package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	pq "github.com/lib/pq"

	"github.com/julianstephens/ruleoflife/internal/models"
)

const overrideColumns = `user_id, practice_id, scheduled_weekday, is_enabled, custom_title, custom_description, created_at, updated_at`

func scanOverride(row rowScanner) (models.PracticeOverride, error) {
	var o models.PracticeOverride
	var weekday sql.NullInt64
	var title, description sql.NullString
	if err := row.Scan(&o.UserID, &o.PracticeID, &weekday, &o.IsEnabled, &title, &description, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return models.PracticeOverride{}, err
	}
	o.ScheduledWeekday = weekdayPtr(weekday)
	o.CustomTitle = stringPtr(title)
	o.CustomDescription = stringPtr(description)
	return o, nil
}

func (s *Store) ListOverrides(ctx context.Context, userID string, practiceIDs []string) ([]models.PracticeOverride, error) {
	if practiceIDs != nil && len(practiceIDs) == 0 {
		return nil, nil
	}

	query := "SELECT " + overrideColumns + " FROM user_practice_overrides WHERE user_id = $1"
	args := []any{userID}
	if len(practiceIDs) > 0 {
		query += " AND practice_id = ANY($2)"
		args = append(args, pq.Array(practiceIDs))
	}
	query += " ORDER BY practice_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing overrides: %w", err)
	}
	defer rows.Close()

	var out []models.PracticeOverride
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning override: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *Store) GetOverride(ctx context.Context, userID, practiceID string) (*models.PracticeOverride, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+overrideColumns+" FROM user_practice_overrides WHERE user_id = $1 AND practice_id = $2", userID, practiceID)
	o, err := scanOverride(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting override for %s: %w", practiceID, err)
	}
	return &o, nil
}

func (s *Store) UpsertOverride(ctx context.Context, o models.PracticeOverride) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO user_practice_overrides (`+overrideColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id, practice_id) DO UPDATE SET
	scheduled_weekday = EXCLUDED.scheduled_weekday,
	is_enabled = EXCLUDED.is_enabled,
	custom_title = EXCLUDED.custom_title,
	custom_description = EXCLUDED.custom_description,
	updated_at = EXCLUDED.updated_at`,
		o.UserID, o.PracticeID, nullWeekday(o.ScheduledWeekday), o.IsEnabled,
		nullString(o.CustomTitle), nullString(o.CustomDescription),
		o.CreatedAt.UTC(), o.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving override for %s: %w", o.PracticeID, err)
	}
	return nil
}
