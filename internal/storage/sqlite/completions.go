package sqlite

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
WHERE user_id = ? AND practice_id = ? AND date_local = ?`, userID, practiceID, dateLocal)

	c, err := scanCompletion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting completion: %w", err)
	}
	return &c, nil
}

func scanCompletion(row rowScanner) (models.Completion, error) {
	var c models.Completion
	var completedAt string
	if err := row.Scan(&c.UserID, &c.PracticeID, &c.DateLocal, &completedAt); err != nil {
		return models.Completion{}, err
	}
	t, err := parseTime(completedAt)
	if err != nil {
		return models.Completion{}, err
	}
	c.CompletedAt = t
	return c, nil
}

// AddCompletion inserts the row unless one already exists for the same
// (user, practice, date).
func (s *Store) AddCompletion(ctx context.Context, c models.Completion) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO practice_completions (user_id, practice_id, date_local, completed_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(user_id, practice_id, date_local) DO NOTHING`,
		c.UserID, c.PracticeID, c.DateLocal, formatTime(c.CompletedAt))
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
DELETE FROM practice_completions WHERE user_id = ? AND practice_id = ? AND date_local = ?`,
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
	query := "SELECT user_id, practice_id, date_local, completed_at FROM practice_completions WHERE user_id = ?"
	args := []any{userID}
	if startDate != "" {
		query += " AND date_local >= ?"
		args = append(args, startDate)
	}
	if endDate != "" {
		query += " AND date_local <= ?"
		args = append(args, endDate)
	}
	query += " ORDER BY date_local, practice_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing completions: %w", err)
	}
	defer rows.Close()

	var out []models.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning completion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
