package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/ruleoflife/internal/models"
)

const overrideColumns = `user_id, practice_id, scheduled_weekday, is_enabled, custom_title, custom_description, created_at, updated_at`

func scanOverride(row rowScanner) (models.PracticeOverride, error) {
	var o models.PracticeOverride
	var weekday sql.NullInt64
	var title, description sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&o.UserID, &o.PracticeID, &weekday, &o.IsEnabled, &title, &description, &createdAt, &updatedAt); err != nil {
		return models.PracticeOverride{}, err
	}
	o.ScheduledWeekday = weekdayPtr(weekday)
	o.CustomTitle = stringPtr(title)
	o.CustomDescription = stringPtr(description)

	var err error
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.PracticeOverride{}, err
	}
	if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.PracticeOverride{}, err
	}
	return o, nil
}

func (s *Store) ListOverrides(ctx context.Context, userID string, practiceIDs []string) ([]models.PracticeOverride, error) {
	if practiceIDs != nil && len(practiceIDs) == 0 {
		return nil, nil
	}

	query := "SELECT " + overrideColumns + " FROM user_practice_overrides WHERE user_id = ?"
	args := []any{userID}
	if len(practiceIDs) > 0 {
		query += " AND practice_id IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(practiceIDs)), ", ") + ")"
		for _, id := range practiceIDs {
			args = append(args, id)
		}
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
	row := s.db.QueryRowContext(ctx, "SELECT "+overrideColumns+" FROM user_practice_overrides WHERE user_id = ? AND practice_id = ?", userID, practiceID)
	o, err := scanOverride(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting override for %s: %w", practiceID, err)
	}
	return &o, nil
}

// UpsertOverride writes the override keyed by (user, practice). The first
// write keeps its created_at.
func (s *Store) UpsertOverride(ctx context.Context, o models.PracticeOverride) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO user_practice_overrides (`+overrideColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, practice_id) DO UPDATE SET
	scheduled_weekday = excluded.scheduled_weekday,
	is_enabled = excluded.is_enabled,
	custom_title = excluded.custom_title,
	custom_description = excluded.custom_description,
	updated_at = excluded.updated_at`,
		o.UserID, o.PracticeID, nullWeekday(o.ScheduledWeekday), o.IsEnabled,
		nullString(o.CustomTitle), nullString(o.CustomDescription),
		formatTime(o.CreatedAt), formatTime(o.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving override for %s: %w", o.PracticeID, err)
	}
	return nil
}
