package service

import (
	"context"
	"time"

	"viralcast/events"
	"viralcast/models"
)

// AccountRepository defines the interface for posting account data access.
// The engine only ever touches health and usage fields; credentials are
// written by the dashboard, never here.
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// GetEligibleAccounts returns all active accounts for a platform
	GetEligibleAccounts(ctx context.Context, platform models.Platform) ([]*models.Account, error)

	// GetAll returns all accounts
	GetAll(ctx context.Context) ([]*models.Account, error)

	// ApplySuccess atomically bumps usage counters after a successful delivery
	// (total_posts, daily_post_count, last_used)
	ApplySuccess(ctx context.Context, accountID int64) error

	// ApplyFailure atomically records a failed delivery (error_count,
	// last_error) and returns the new error count
	ApplyFailure(ctx context.Context, accountID int64, errorMessage string) (int, error)
}

// ContentRepository defines the interface for content data access.
// Status is the only field the posting engine mutates.
type ContentRepository interface {
	// GetByID retrieves a content item by its ID
	GetByID(ctx context.Context, id string) (*models.Content, error)

	// SetStatus updates a content item's delivery status
	SetStatus(ctx context.Context, id string, status models.ContentStatus) error

	// GetDueScheduled returns pending content whose scheduled time has passed
	GetDueScheduled(ctx context.Context, now time.Time, limit int) ([]*models.Content, error)
}

// AttemptRepository defines the interface for the append-only attempt log
type AttemptRepository interface {
	// Create appends a new posting attempt record
	Create(ctx context.Context, attempt *models.PostingAttempt) error

	// GetSince returns all attempts recorded at or after the given time
	GetSince(ctx context.Context, since time.Time) ([]*models.PostingAttempt, error)
}

// ActivityLogRepository is the append-only operational log sink
type ActivityLogRepository interface {
	// Record appends a new activity log entry
	Record(ctx context.Context, entry *models.ActivityLog) error
}

// DeliveryResult is a successful delivery's outcome
type DeliveryResult struct {
	PostID  string
	PostURL string
}

// DeliveryAdapter performs the actual network call to post content using one
// account's credentials. One implementation per platform; the rotation
// service only sees this contract.
type DeliveryAdapter interface {
	// Platform returns the platform this adapter delivers to
	Platform() models.Platform

	// Deliver posts the payload using the given account. A returned error is
	// a delivery failure for that account; the rotation service decides
	// whether to try another account.
	Deliver(ctx context.Context, account *models.Account, payload *models.PostPayload) (*DeliveryResult, error)
}

// AdapterRegistry resolves a platform identifier to its delivery adapter
type AdapterRegistry interface {
	// Get returns the adapter registered for a platform, if any
	Get(platform models.Platform) (DeliveryAdapter, bool)
}

// SelectionCriteria describes which account the selector should pick
type SelectionCriteria struct {
	Platform              models.Platform
	ExcludeAccountIDs     map[int64]struct{}
	PrioritizeByFrequency bool
	RespectRateLimits     bool
}

// AccountSelector picks the single best candidate account for a delivery
type AccountSelector interface {
	// SelectAccount returns the best eligible account, or nil when no
	// candidate exists. A nil result is a normal outcome, not an error.
	SelectAccount(ctx context.Context, criteria SelectionCriteria) (*models.Account, error)
}

// PostingService runs the bounded retry-with-exclusion loop for one
// content/platform pair
type PostingService interface {
	// PostWithRotation attempts delivery, rotating to a different account on
	// each failure, up to the attempt budget. Returns a structured result;
	// the error return is reserved for infrastructure failures.
	PostWithRotation(ctx context.Context, content *models.Content, platform models.Platform, payload *models.PostPayload) (*models.PostingResult, error)
}

// BatchService fans one content item out to several platforms concurrently
type BatchService interface {
	// BatchPost runs one independent rotation per platform and returns
	// exactly one result per requested platform.
	BatchPost(ctx context.Context, content *models.Content, platforms []models.Platform) ([]*models.PostingResult, error)
}

// StatsService aggregates historical posting attempts for reporting
type StatsService interface {
	// GetPostingStats returns success/failure breakdowns over a timeframe
	GetPostingStats(ctx context.Context, timeframe models.Timeframe) (*models.PostingStats, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
