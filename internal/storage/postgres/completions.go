package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/ruleoflife/internal/models"
)

func (s *Store) GetCompletion(ctx context.Context, userID, practiceID, dateLocal string) (*models.Completion, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT user_id, practice_id, date_local, completed_at FROM practice_completions
WHERE user_id = $1 AND practice_id = $2 AND date_local = $3`, userID, practiceID, dateLocal)

	var c models.Completion
	err := row.Scan(&c.UserID, &c.PracticeID, &c.DateLocal, &c.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting completion: %w", err)
	}
	return &c, nil
}

func (s *Store) AddCompletion(ctx context.Context, c models.Completion) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO practice_completions (user_id, practice_id, date_local, completed_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, practice_id, date_local) DO NOTHING`,
		c.UserID, c.PracticeID, c.DateLocal, c.CompletedAt.UTC())
	if err != nil {
		return false, fmt.Errorf("adding completion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("adding completion: %w", err)
	}
	return n > 0, nil
}

func (s *Store) DeleteCompletion(ctx context.Context, userID, practiceID, dateLocal string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
DELETE FROM practice_completions WHERE user_id = $1 AND practice_id = $2 AND date_local = $3`,
		userID, practiceID, dateLocal)
	if err != nil {
		return false, fmt.Errorf("deleting completion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting completion: %w", err)
	}
	return n > 0, nil
}

func (s *Store) ListCompletions(ctx context.Context, userID, startDate, endDate string) ([]models.Completion, error) {
	query := "SELECT user_id, practice_id, date_local, completed_at FROM practice_completions WHERE user_id = $1"
	args := []any{userID}
	if startDate != "" {
		args = append(args, startDate)
		query += fmt.Sprintf(" AND date_local >= $%d", len(args))
	}
	if endDate != "" {
		args = append(args, endDate)
		query += fmt.Sprintf(" AND date_local <= $%d", len(args))
	}
	query += " ORDER BY date_local, practice_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing completions: %w", err)
	}
	defer rows.Close()

	var out []models.Completion
	for rows.Next() {
		var c models.Completion
		if err := rows.Scan(&c.UserID, &c.PracticeID, &c.DateLocal, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning completion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
