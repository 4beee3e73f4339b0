package service

import (
	"context"
	"fmt"
	"time"

	"viralcast/models"
)

// statsService implements the StatsService interface
type statsService struct {
	attemptRepo AttemptRepository
}

// NewStatsService creates a new stats service
func NewStatsService(attemptRepo AttemptRepository) StatsService {
	return &statsService{attemptRepo: attemptRepo}
}

// GetPostingStats aggregates the attempt log over the given timeframe. An
// empty window yields zero counts and empty maps, never an error.
func (s *statsService) GetPostingStats(ctx context.Context, timeframe models.Timeframe) (*models.PostingStats, error) {
	window, err := timeframe.Duration()
	if err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.GetSince(ctx, time.Now().Add(-window))
	if err != nil {
		return nil, fmt.Errorf("failed to get posting attempts: %w", err)
	}

	stats := &models.PostingStats{
		Timeframe:             timeframe,
		PlatformBreakdown:     make(map[models.Platform]*models.PlatformStats),
		TopPerformingAccounts: make(map[int64]int),
		ErrorBreakdown:        make(map[models.ErrorCategory]int),
	}

	for _, attempt := range attempts {
		stats.TotalAttempts++

		platformStats := stats.PlatformBreakdown[attempt.Platform]
		if platformStats == nil {
			platformStats = &models.PlatformStats{}
			stats.PlatformBreakdown[attempt.Platform] = platformStats
		}
		platformStats.Attempts++

		if attempt.Result == models.AttemptResultSuccess {
			stats.SuccessfulPosts++
			platformStats.Successes++
			// Only successes count toward the account ranking
			stats.TopPerformingAccounts[attempt.AccountID]++
			continue
		}

		stats.FailedPosts++
		stats.ErrorBreakdown[ClassifyError(attempt.ErrorMessage)]++
	}

	return stats, nil
}
