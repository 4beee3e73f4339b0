package models

import "time"

// AttemptResult is the outcome of a single delivery attempt
type AttemptResult string

const (
	AttemptResultSuccess AttemptResult = "success"
	AttemptResultFailure AttemptResult = "failure"
)

// PostingAttempt is the append-only record of one delivery attempt for a
// (content, account, platform) triple. Never mutated after creation.
type PostingAttempt struct {
	ID            int64         `db:"id"`
	ContentID     string        `db:"content_id"`
	AccountID     int64         `db:"account_id"`
	Platform      Platform      `db:"platform"`
	AttemptNumber int           `db:"attempt_number"`
	Result        AttemptResult `db:"result"`
	ErrorMessage  string        `db:"error_message"`
	PostURL       string        `db:"post_url"`
	CreatedAt     time.Time     `db:"created_at"`
}

// PostingResult is the transient outcome of one rotation run, returned to
// the caller. It is not persisted directly.
type PostingResult struct {
	Platform         Platform
	Success          bool
	AccountID        int64
	AccountUsername  string
	PostURL          string
	RotationAttempts int
	Error            string
}

// ActivityLog is a generic append-only operational log record
type ActivityLog struct {
	ID        int64          `db:"id"`
	Type      string         `db:"type"`
	Message   string         `db:"message"`
	Status    string         `db:"status"`
	Metadata  map[string]any `db:"metadata"`
	CreatedAt time.Time      `db:"created_at"`
}
