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

func TestContentRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewContentRepository(testDB.DB)
	ctx := context.Background()

	t.Run("content not found", func(t *testing.T) {
		content, err := repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, content)
	})

	t.Run("content found with platforms and tags", func(t *testing.T) {
		inserted := testutil.CreateTestContent(models.PlatformTikTok, models.PlatformInstagram)
		inserted.Tags = []string{"fyp", "viral"}
		testutil.InsertTestContent(t, testDB.DB, inserted)

		content, err := repo.GetByID(ctx, inserted.ID)
		require.NoError(t, err)
		require.NotNil(t, content)

		assert.Equal(t, inserted.Title, content.Title)
		assert.Equal(t, inserted.VideoURL, content.VideoURL)
		assert.Equal(t, []string{"fyp", "viral"}, content.Tags)
		assert.Equal(t, []models.Platform{models.PlatformTikTok, models.PlatformInstagram}, content.TargetPlatforms)
		assert.Equal(t, models.ContentStatusPending, content.Status)
	})
}

func TestContentRepository_SetStatus(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewContentRepository(testDB.DB)
	ctx := context.Background()

	inserted := testutil.CreateTestContent(models.PlatformTikTok)
	testutil.InsertTestContent(t, testDB.DB, inserted)

	require.NoError(t, repo.SetStatus(ctx, inserted.ID, models.ContentStatusPublished))

	content, err := repo.GetByID(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContentStatusPublished, content.Status)

	t.Run("unknown content", func(t *testing.T) {
		err := repo.SetStatus(ctx, "missing", models.ContentStatusFailed)
		assert.Error(t, err)
	})
}

func TestContentRepository_GetDueScheduled(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewContentRepository(testDB.DB)
	ctx := context.Background()

	due := testutil.CreateTestContent(models.PlatformTikTok)
	due.ScheduledAt = testutil.ScheduledInPast()
	testutil.InsertTestContent(t, testDB.DB, due)

	notYet := testutil.CreateTestContent(models.PlatformTikTok)
	notYet.ScheduledAt = testutil.ScheduledInFuture()
	testutil.InsertTestContent(t, testDB.DB, notYet)

	unscheduled := testutil.CreateTestContent(models.PlatformTikTok)
	testutil.InsertTestContent(t, testDB.DB, unscheduled)

	alreadyPublished := testutil.CreateTestContent(models.PlatformTikTok)
	alreadyPublished.ScheduledAt = testutil.ScheduledInPast()
	alreadyPublished.Status = models.ContentStatusPublished
	testutil.InsertTestContent(t, testDB.DB, alreadyPublished)

	items, err := repo.GetDueScheduled(ctx, time.Now(), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, due.ID, items[0].ID)

	t.Run("limit applies", func(t *testing.T) {
		second := testutil.CreateTestContent(models.PlatformInstagram)
		second.ScheduledAt = testutil.ScheduledInPast()
		testutil.InsertTestContent(t, testDB.DB, second)

		items, err := repo.GetDueScheduled(ctx, time.Now(), 1)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}
