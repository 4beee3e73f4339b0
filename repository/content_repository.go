package repository

import (
	"context"
	"fmt"
	"time"

	"viralcast/database"
	"viralcast/models"

	"github.com/jackc/pgx/v5"
)

const contentColumns = `
	id, title, video_url, thumbnail_url, caption, tags,
	target_platforms, status, scheduled_at, created_at, updated_at
`

// ContentRepository implements the service.ContentRepository interface
type ContentRepository struct {
	q Queryable
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *database.DB) *ContentRepository {
	return &ContentRepository{q: db.Pool}
}

// NewContentRepositoryWithTx creates a new content repository with a transaction
func NewContentRepositoryWithTx(tx Queryable) *ContentRepository {
	return &ContentRepository{q: tx}
}

// GetByID retrieves a content item by its ID
func (r *ContentRepository) GetByID(ctx context.Context, id string) (*models.Content, error) {
	query := `SELECT` + contentColumns + `FROM content WHERE id = $1`

	content, err := scanContent(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content %s: %w", id, err)
	}
	return content, nil
}

// SetStatus updates a content item's delivery status
func (r *ContentRepository) SetStatus(ctx context.Context, id string, status models.ContentStatus) error {
	query := `UPDATE content SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to set status for content %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("content %s not found", id)
	}
	return nil
}

// GetDueScheduled returns pending content whose scheduled time has passed
func (r *ContentRepository) GetDueScheduled(ctx context.Context, now time.Time, limit int) ([]*models.Content, error) {
	query := `SELECT` + contentColumns + `
		FROM content
		WHERE status = $1 AND scheduled_at IS NOT NULL AND scheduled_at <= $2
		ORDER BY scheduled_at
		LIMIT $3`

	rows, err := r.q.Query(ctx, query, models.ContentStatusPending, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due scheduled content: %w", err)
	}
	defer rows.Close()

	var items []*models.Content
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		items = append(items, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate content: %w", err)
	}
	return items, nil
}

// scanContent scans a single content row
func scanContent(row pgx.Row) (*models.Content, error) {
	var content models.Content
	var platforms []string

	err := row.Scan(
		&content.ID,
		&content.Title,
		&content.VideoURL,
		&content.ThumbnailURL,
		&content.Caption,
		&content.Tags,
		&platforms,
		&content.Status,
		&content.ScheduledAt,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	content.TargetPlatforms = make([]models.Platform, len(platforms))
	for i, p := range platforms {
		content.TargetPlatforms[i] = models.Platform(p)
	}

	return &content, nil
}
