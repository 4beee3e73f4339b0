package repository

import (
	"context"
	"testing"
	"time"

	"viralcast/models"
	"viralcast/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptRepository_CreateAndGetSince(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAttemptRepository(testDB.DB)
	ctx := context.Background()

	account := testutil.InsertTestAccount(t, testDB.DB, testutil.CreateTestAccount(models.PlatformTikTok, "creator"))
	content := testutil.InsertTestContent(t, testDB.DB, testutil.CreateTestContent(models.PlatformTikTok))

	success := testutil.CreateTestAttempt(content.ID, account.ID, models.PlatformTikTok, models.AttemptResultSuccess)
	require.NoError(t, repo.Create(ctx, success))
	assert.NotZero(t, success.ID)
	assert.False(t, success.CreatedAt.IsZero())

	failure := testutil.CreateTestAttempt(content.ID, account.ID, models.PlatformTikTok, models.AttemptResultFailure)
	failure.AttemptNumber = 2
	require.NoError(t, repo.Create(ctx, failure))

	t.Run("returns attempts in window", func(t *testing.T) {
		attempts, err := repo.GetSince(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		require.Len(t, attempts, 2)

		assert.Equal(t, models.AttemptResultSuccess, attempts[0].Result)
		assert.Equal(t, "https://example.com/post/1", attempts[0].PostURL)
		assert.Equal(t, models.AttemptResultFailure, attempts[1].Result)
		assert.Equal(t, "test failure", attempts[1].ErrorMessage)
		assert.Equal(t, 2, attempts[1].AttemptNumber)
	})

	t.Run("empty window", func(t *testing.T) {
		attempts, err := repo.GetSince(ctx, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Empty(t, attempts)
	})

	t.Run("rejects unknown foreign keys", func(t *testing.T) {
		orphan := testutil.CreateTestAttempt("missing-content", account.ID, models.PlatformTikTok, models.AttemptResultFailure)
		err := repo.Create(ctx, orphan)
		assert.Error(t, err)
	})
}

func TestActivityLogRepository_Record(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewActivityLogRepository(testDB.DB)
	ctx := context.Background()

	entry := &models.ActivityLog{
		Type:    "batch_post",
		Message: "batch post for content abc: 1/2 platforms succeeded",
		Status:  "partial",
		Metadata: map[string]any{
			"content_id": "abc",
		},
	}
	require.NoError(t, repo.Record(ctx, entry))
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	t.Run("nil metadata", func(t *testing.T) {
		bare := &models.ActivityLog{Type: "rotation_failure", Status: "failed"}
		require.NoError(t, repo.Record(ctx, bare))
		assert.NotZero(t, bare.ID)
	})
}
