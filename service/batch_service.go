package service

import (
	"context"
	"fmt"
	"sync"

	"viralcast/events"
	"viralcast/infrastructure/observability"
	"viralcast/models"

	log "github.com/sirupsen/logrus"
)

// batchService implements the BatchService interface
type batchService struct {
	postingService  PostingService
	activityLogRepo ActivityLogRepository
	eventPublisher  EventPublisher
}

// NewBatchService creates a new batch service
func NewBatchService(postingService PostingService, activityLogRepo ActivityLogRepository, eventPublisher EventPublisher) BatchService {
	return &batchService{
		postingService:  postingService,
		activityLogRepo: activityLogRepo,
		eventPublisher:  eventPublisher,
	}
}

// BatchPost fans the content out to every requested platform concurrently.
// Each platform runs its own independent rotation: exclusion sets are not
// shared and one platform's failure never cancels the others. The returned
// slice always has exactly one result per requested platform, in order.
func (s *batchService) BatchPost(ctx context.Context, content *models.Content, platforms []models.Platform) ([]*models.PostingResult, error) {
	results := make([]*models.PostingResult, len(platforms))
	payload := models.PayloadForContent(content)

	var wg sync.WaitGroup
	for i, platform := range platforms {
		wg.Add(1)
		go func(idx int, p models.Platform) {
			defer wg.Done()
			defer func() {
				// A panicking rotation must not take the batch down; it
				// yields a synthesized failure for its platform instead
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"contentID": content.ID,
						"platform":  p,
						"panic":     r,
					}).Error("Rotation run panicked")
					results[idx] = &models.PostingResult{
						Platform:         p,
						Success:          false,
						RotationAttempts: 0,
						Error:            fmt.Sprintf("internal error: %v", r),
					}
				}
			}()

			result, err := s.postingService.PostWithRotation(ctx, content, p, payload)
			if err != nil {
				log.WithError(err).WithFields(log.Fields{
					"contentID": content.ID,
					"platform":  p,
				}).Error("Rotation run failed")
				results[idx] = &models.PostingResult{
					Platform:         p,
					Success:          false,
					RotationAttempts: 0,
					Error:            err.Error(),
				}
				return
			}
			results[idx] = result
		}(i, platform)
	}
	wg.Wait()

	s.logBatchSummary(ctx, content, platforms, results)

	return results, nil
}

// logBatchSummary writes one aggregate record for the whole batch and
// publishes the completion event
func (s *batchService) logBatchSummary(ctx context.Context, content *models.Content, platforms []models.Platform, results []*models.PostingResult) {
	succeeded := 0
	outcomes := make(map[string]any, len(results))
	for _, result := range results {
		outcome := map[string]any{
			"success":  result.Success,
			"attempts": result.RotationAttempts,
		}
		if result.Success {
			succeeded++
			outcome["account_id"] = result.AccountID
			outcome["post_url"] = result.PostURL
		} else {
			outcome["error"] = result.Error
		}
		outcomes[string(result.Platform)] = outcome
	}
	failed := len(results) - succeeded

	status := "success"
	switch {
	case succeeded == 0:
		status = "failed"
	case failed > 0:
		status = "partial"
	}

	observability.GetMetrics().RecordBatchOutcome(status)

	if err := s.activityLogRepo.Record(ctx, &models.ActivityLog{
		Type:    "batch_post",
		Message: fmt.Sprintf("batch post for content %s: %d/%d platforms succeeded", content.ID, succeeded, len(results)),
		Status:  status,
		Metadata: map[string]any{
			"content_id": content.ID,
			"platforms":  outcomes,
		},
	}); err != nil {
		log.WithError(err).WithField("contentID", content.ID).Error("Failed to record batch summary log")
	}

	if err := s.eventPublisher.Publish(events.BatchCompletedEvent{
		ContentID: content.ID,
		Platforms: platforms,
		Succeeded: succeeded,
		Failed:    failed,
	}); err != nil {
		log.WithError(err).Error("Failed to publish batch completed event")
	}

	log.WithFields(log.Fields{
		"contentID": content.ID,
		"succeeded": succeeded,
		"failed":    failed,
		"status":    status,
	}).Info("Batch post completed")
}
