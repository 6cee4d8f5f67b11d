package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/ruleoflife/internal/models"
)

const practiceColumns = `id, key, season, lane, title, description, recurrence, scheduled_weekday, is_active, sort_order`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPractice(row rowScanner) (models.Practice, error) {
	var p models.Practice
	var season, lane, recurrence string
	var weekday sql.NullInt64
	if err := row.Scan(&p.ID, &p.Key, &season, &lane, &p.Title, &p.Description, &recurrence, &weekday, &p.IsActive, &p.SortOrder); err != nil {
		return models.Practice{}, err
	}
	p.Season = models.Season(season)
	p.Lane = models.Lane(lane)
	p.Recurrence = models.Recurrence(recurrence)
	p.ScheduledWeekday = weekdayPtr(weekday)
	return p, nil
}

func (s *Store) ListPractices(ctx context.Context, filter models.PracticeFilter) ([]models.Practice, error) {
	var where []string
	var args []any
	if filter.Season != "" {
		args = append(args, string(filter.Season))
		where = append(where, fmt.Sprintf("season = $%d", len(args)))
	}
	if filter.Recurrence != "" {
		args = append(args, string(filter.Recurrence))
		where = append(where, fmt.Sprintf("recurrence = $%d", len(args)))
	}
	if filter.ActiveOnly {
		where = append(where, "is_active")
	}

	query := "SELECT " + practiceColumns + " FROM practices"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY season, sort_order, key"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing practices: %w", err)
	}
	defer rows.Close()

	var out []models.Practice
	for rows.Next() {
		p, err := scanPractice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning practice: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPractice(ctx context.Context, id string) (*models.Practice, error) {
	return s.getPractice(ctx, "id", id)
}

func (s *Store) GetPracticeByKey(ctx context.Context, key string) (*models.Practice, error) {
	return s.getPractice(ctx, "key", key)
}

func (s *Store) getPractice(ctx context.Context, column, value string) (*models.Practice, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+practiceColumns+" FROM practices WHERE "+column+" = $1", value)
	p, err := scanPractice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting practice %s: %w", value, err)
	}
	return &p, nil
}

func (s *Store) UpsertPractice(ctx context.Context, p models.Practice) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO practices (`+practiceColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	key = EXCLUDED.key,
	season = EXCLUDED.season,
	lane = EXCLUDED.lane,
	title = EXCLUDED.title,
	description = EXCLUDED.description,
	recurrence = EXCLUDED.recurrence,
	scheduled_weekday = EXCLUDED.scheduled_weekday,
	is_active = EXCLUDED.is_active,
	sort_order = EXCLUDED.sort_order`,
		p.ID, p.Key, string(p.Season), string(p.Lane), p.Title, p.Description, string(p.Recurrence),
		nullWeekday(p.ScheduledWeekday), p.IsActive, p.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("saving practice %s: %w", p.Key, err)
	}
	return nil
}
