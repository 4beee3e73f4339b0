package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"viralcast/database"
	"viralcast/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// CreateTestAccount builds an account with sensible defaults
func CreateTestAccount(platform models.Platform, username string) *models.Account {
	return &models.Account{
		Platform:        platform,
		Username:        username,
		CredentialMode:  models.CredentialModeOfficial,
		AccessToken:     "test-token",
		IsActive:        true,
		PostingPriority: 5,
		MaxDailyPosts:   10,
	}
}

// InsertTestAccount writes an account row and fills in its generated ID.
// The engine never creates accounts itself, so tests insert rows directly.
func InsertTestAccount(t *testing.T, db *database.DB, account *models.Account) *models.Account {
	t.Helper()
	ctx := context.Background()

	var sessionJSON []byte
	if account.AutomationSession != nil {
		data, err := json.Marshal(account.AutomationSession)
		require.NoError(t, err)
		sessionJSON = data
	}

	err := db.QueryRow(ctx, `
		INSERT INTO accounts (platform, username, credential_mode, access_token, refresh_token,
			business_account_id, automation_session, is_active, posting_priority, max_daily_posts,
			daily_post_count, error_count, last_error, last_used, total_posts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`,
		account.Platform, account.Username, account.CredentialMode, account.AccessToken,
		account.RefreshToken, account.BusinessAccountID, sessionJSON, account.IsActive,
		account.PostingPriority, account.MaxDailyPosts, account.DailyPostCount,
		account.ErrorCount, account.LastError, account.LastUsed, account.TotalPosts,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	require.NoError(t, err)

	return account
}

// CreateTestContent builds a content item with sensible defaults
func CreateTestContent(platforms ...models.Platform) *models.Content {
	return &models.Content{
		ID:              uuid.New().String(),
		Title:           "Test Video",
		VideoURL:        "https://cdn.example.com/video.mp4",
		Caption:         "test caption",
		Tags:            []string{"test"},
		TargetPlatforms: platforms,
		Status:          models.ContentStatusPending,
	}
}

// InsertTestContent writes a content row
func InsertTestContent(t *testing.T, db *database.DB, content *models.Content) *models.Content {
	t.Helper()
	ctx := context.Background()

	platforms := make([]string, len(content.TargetPlatforms))
	for i, p := range content.TargetPlatforms {
		platforms[i] = string(p)
	}

	err := db.QueryRow(ctx, `
		INSERT INTO content (id, title, video_url, thumbnail_url, caption, tags, target_platforms, status, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		content.ID, content.Title, content.VideoURL, content.ThumbnailURL, content.Caption,
		content.Tags, platforms, content.Status, content.ScheduledAt,
	).Scan(&content.CreatedAt, &content.UpdatedAt)
	require.NoError(t, err)

	return content
}

// CreateTestAttempt builds a posting attempt for a content/account pair
func CreateTestAttempt(contentID string, accountID int64, platform models.Platform, result models.AttemptResult) *models.PostingAttempt {
	attempt := &models.PostingAttempt{
		ContentID:     contentID,
		AccountID:     accountID,
		Platform:      platform,
		AttemptNumber: 1,
		Result:        result,
	}
	if result == models.AttemptResultFailure {
		attempt.ErrorMessage = "test failure"
	} else {
		attempt.PostURL = "https://example.com/post/1"
	}
	return attempt
}

// ScheduledInPast returns a schedule time already due
func ScheduledInPast() *time.Time {
	past := time.Now().Add(-10 * time.Minute)
	return &past
}

// ScheduledInFuture returns a schedule time not yet due
func ScheduledInFuture() *time.Time {
	future := time.Now().Add(1 * time.Hour)
	return &future
}
