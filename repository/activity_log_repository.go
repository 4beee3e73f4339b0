package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"viralcast/database"
	"viralcast/models"
)

// ActivityLogRepository implements the service.ActivityLogRepository interface
type ActivityLogRepository struct {
	q Queryable
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *database.DB) *ActivityLogRepository {
	return &ActivityLogRepository{q: db.Pool}
}

// NewActivityLogRepositoryWithTx creates a new activity log repository with a transaction
func NewActivityLogRepositoryWithTx(tx Queryable) *ActivityLogRepository {
	return &ActivityLogRepository{q: tx}
}

// Record appends a new activity log entry
func (r *ActivityLogRepository) Record(ctx context.Context, entry *models.ActivityLog) error {
	var metadata []byte
	if entry.Metadata != nil {
		var err error
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal activity log metadata: %w", err)
		}
	}

	query := `
		INSERT INTO activity_logs (type, message, status, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, entry.Type, entry.Message, entry.Status, metadata).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record activity log: %w", err)
	}
	return nil
}
