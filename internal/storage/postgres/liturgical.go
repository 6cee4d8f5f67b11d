package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/ruleoflife/internal/models"
)

func (s *Store) GetLiturgicalDay(ctx context.Context, date string) (*models.LiturgicalDay, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT date, season, celebration_key, celebration_name, celebration_type
FROM liturgical_days WHERE date = $1`, date)

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

func (s *Store) PutLiturgicalDays(ctx context.Context, days []models.LiturgicalDay) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO liturgical_days (date, season, celebration_key, celebration_name, celebration_type)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (date) DO UPDATE SET
	season = EXCLUDED.season,
	celebration_key = EXCLUDED.celebration_key,
	celebration_name = EXCLUDED.celebration_name,
	celebration_type = EXCLUDED.celebration_type`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range days {
		if _, err := stmt.ExecContext(ctx, d.Date, string(d.Season),
			nullString(d.CelebrationKey), nullString(d.CelebrationName), nullString(d.CelebrationType)); err != nil {
			return fmt.Errorf("caching liturgical day %s: %w", d.Date, err)
		}
	}
	return tx.Commit()
}
