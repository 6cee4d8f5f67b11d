package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ruleoflife/internal/models"
)

func (s *Store) GetLiturgicalDay(ctx context.Context, date string) (*models.LiturgicalDay, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT date, season, celebration_key, celebration_name, celebration_type
FROM liturgical_days WHERE date = ?`, date)

	var day models.LiturgicalDay
	var season string
	var key, name, typ sql.NullString
	err := row.Scan(&day.Date, &season, &key, &name, &typ)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting liturgical day %s: %w", date, err)
	}
	day.Season = models.Season(season)
	day.CelebrationKey = stringPtr(key)
	day.CelebrationName = stringPtr(name)
	day.CelebrationType = stringPtr(typ)
	return &day, nil
}

// PutLiturgicalDays upserts the days in one transaction.
func (s *Store) PutLiturgicalDays(ctx context.Context, days []models.LiturgicalDay) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO liturgical_days (date, season, celebration_key, celebration_name, celebration_type, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
	season = excluded.season,
	celebration_key = excluded.celebration_key,
	celebration_name = excluded.celebration_name,
	celebration_type = excluded.celebration_type`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := formatTime(time.Now())
	for _, d := range days {
		if _, err := stmt.ExecContext(ctx, d.Date, string(d.Season),
			nullString(d.CelebrationKey), nullString(d.CelebrationName), nullString(d.CelebrationType), now); err != nil {
			return fmt.Errorf("caching liturgical day %s: %w", d.Date, err)
		}
	}
	return tx.Commit()
}
