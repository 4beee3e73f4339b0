package repository

import (
	"context"
	"fmt"
	"time"

	"viralcast/database"
	"viralcast/models"
)

// AttemptRepository implements the service.AttemptRepository interface.
// The posting_attempts table is append-only; rows are never updated.
type AttemptRepository struct {
	q Queryable
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db *database.DB) *AttemptRepository {
	return &AttemptRepository{q: db.Pool}
}

// NewAttemptRepositoryWithTx creates a new attempt repository with a transaction
func NewAttemptRepositoryWithTx(tx Queryable) *AttemptRepository {
	return &AttemptRepository{q: tx}
}

// Create appends a new posting attempt record
func (r *AttemptRepository) Create(ctx context.Context, attempt *models.PostingAttempt) error {
	query := `
		INSERT INTO posting_attempts (content_id, account_id, platform, attempt_number, result, error_message, post_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		attempt.ContentID,
		attempt.AccountID,
		attempt.Platform,
		attempt.AttemptNumber,
		attempt.Result,
		attempt.ErrorMessage,
		attempt.PostURL,
	).Scan(&attempt.ID, &attempt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create posting attempt for content %s: %w", attempt.ContentID, err)
	}
	return nil
}

// GetSince returns all attempts recorded at or after the given time
func (r *AttemptRepository) GetSince(ctx context.Context, since time.Time) ([]*models.PostingAttempt, error) {
	query := `
		SELECT id, content_id, account_id, platform, attempt_number, result, error_message, post_url, created_at
		FROM posting_attempts
		WHERE created_at >= $1
		ORDER BY created_at
	`

	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query posting attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*models.PostingAttempt
	for rows.Next() {
		var attempt models.PostingAttempt
		err := rows.Scan(
			&attempt.ID,
			&attempt.ContentID,
			&attempt.AccountID,
			&attempt.Platform,
			&attempt.AttemptNumber,
			&attempt.Result,
			&attempt.ErrorMessage,
			&attempt.PostURL,
			&attempt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posting attempt: %w", err)
		}
		attempts = append(attempts, &attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posting attempts: %w", err)
	}
	return attempts, nil
}
