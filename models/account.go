package models

import (
	"time"
)

// CredentialMode distinguishes how an account authenticates against its platform
type CredentialMode string

const (
	// CredentialModeOfficial uses the platform's official API with OAuth tokens
	CredentialModeOfficial CredentialMode = "official"
	// CredentialModeUnofficial uses a captured browser automation session
	CredentialModeUnofficial CredentialMode = "unofficial"
)

// AutomationSession holds the opaque session blob for automation-backed accounts.
// Stored as jsonb; the cookie string is the only field the engine validates.
type AutomationSession struct {
	Cookies   string `json:"cookies"`
	UserAgent string `json:"user_agent,omitempty"`
	Proxy     string `json:"proxy,omitempty"`
}

// Account represents one credentialed posting identity on a platform
type Account struct {
	ID             int64          `db:"id"`
	Platform       Platform       `db:"platform"`
	Username       string         `db:"username"`
	CredentialMode CredentialMode `db:"credential_mode"`

	// Official API credentials
	AccessToken       string `db:"access_token"`
	RefreshToken      string `db:"refresh_token"`
	BusinessAccountID string `db:"business_account_id"`

	// Automation session for unofficial accounts
	AutomationSession *AutomationSession `db:"automation_session"`

	// Scheduling limits set by operators
	IsActive        bool `db:"is_active"`
	PostingPriority int  `db:"posting_priority"` // 1-10, higher is preferred
	MaxDailyPosts   int  `db:"max_daily_posts"`
	DailyPostCount  int  `db:"daily_post_count"`

	// Health and usage counters maintained by the rotation engine
	ErrorCount int        `db:"error_count"`
	LastError  string     `db:"last_error"`
	LastUsed   *time.Time `db:"last_used"`
	TotalPosts int        `db:"total_posts"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// AtDailyLimit reports whether the account has used up today's posting budget
func (a *Account) AtDailyLimit() bool {
	return a.MaxDailyPosts > 0 && a.DailyPostCount >= a.MaxDailyPosts
}
