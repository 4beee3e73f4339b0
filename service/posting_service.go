package service

import (
	"context"
	"fmt"
	"time"

	"viralcast/config"
	"viralcast/events"
	"viralcast/infrastructure/observability"
	"viralcast/models"

	log "github.com/sirupsen/logrus"
)

// MaxRotationAttempts bounds how many different accounts one rotation run
// may try for a single content/platform pair
const MaxRotationAttempts = 3

// postingService implements the PostingService interface
type postingService struct {
	selector        AccountSelector
	accountRepo     AccountRepository
	contentRepo     ContentRepository
	attemptRepo     AttemptRepository
	activityLogRepo ActivityLogRepository
	adapters        AdapterRegistry
	eventPublisher  EventPublisher
}

// NewPostingService creates a new posting service
func NewPostingService(
	selector AccountSelector,
	accountRepo AccountRepository,
	contentRepo ContentRepository,
	attemptRepo AttemptRepository,
	activityLogRepo ActivityLogRepository,
	adapters AdapterRegistry,
	eventPublisher EventPublisher,
) PostingService {
	return &postingService{
		selector:        selector,
		accountRepo:     accountRepo,
		contentRepo:     contentRepo,
		attemptRepo:     attemptRepo,
		activityLogRepo: activityLogRepo,
		adapters:        adapters,
		eventPublisher:  eventPublisher,
	}
}

// PostWithRotation drives the bounded retry loop for one content/platform
// pair. Every failed account is excluded from reselection, so no account is
// ever tried twice within one rotation.
func (s *postingService) PostWithRotation(ctx context.Context, content *models.Content, platform models.Platform, payload *models.PostPayload) (*models.PostingResult, error) {
	adapter, ok := s.adapters.Get(platform)
	if !ok {
		return nil, fmt.Errorf("no delivery adapter registered for platform %s", platform)
	}

	defer observability.GetMetrics().MeasureRotation(string(platform))()

	cfg := config.Get()
	deliveryTimeout := time.Duration(cfg.DeliveryTimeoutSeconds) * time.Second

	excluded := make(map[int64]struct{})
	attempts := 0
	lastError := ""

	for attempt := 1; attempt <= MaxRotationAttempts; attempt++ {
		account, err := s.selector.SelectAccount(ctx, SelectionCriteria{
			Platform:              platform,
			ExcludeAccountIDs:     excluded,
			PrioritizeByFrequency: true,
			RespectRateLimits:     true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to select account: %w", err)
		}
		if account == nil {
			// Nothing left to try; terminate without spending the budget
			log.WithFields(log.Fields{
				"contentID": content.ID,
				"platform":  platform,
				"attempts":  attempts,
			}).Warn("No eligible account available, rotation exhausted")
			break
		}

		attempts = attempt
		log.WithFields(log.Fields{
			"contentID": content.ID,
			"platform":  platform,
			"accountID": account.ID,
			"username":  account.Username,
			"attempt":   attempt,
		}).Info("Attempting delivery")

		deliveryCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
		delivery, deliveryErr := adapter.Deliver(deliveryCtx, account, payload)
		cancel()

		if deliveryErr == nil {
			observability.GetMetrics().RecordDeliveryAttempt(string(platform), observability.ResultSuccess, "")
			return s.completeSuccess(ctx, content, platform, account, delivery, attempt)
		}

		lastError = deliveryErr.Error()
		s.recordFailure(ctx, content, platform, account, attempt, lastError)
		excluded[account.ID] = struct{}{}
	}

	return s.completeExhausted(ctx, content, platform, attempts, lastError)
}

// completeSuccess records the winning attempt and finalizes the content item
func (s *postingService) completeSuccess(ctx context.Context, content *models.Content, platform models.Platform, account *models.Account, delivery *DeliveryResult, attempt int) (*models.PostingResult, error) {
	// Delivery already happened on the platform; record-keeping failures are
	// logged but never turn a delivered post into a reported failure
	attemptRecord := &models.PostingAttempt{
		ContentID:     content.ID,
		AccountID:     account.ID,
		Platform:      platform,
		AttemptNumber: attempt,
		Result:        models.AttemptResultSuccess,
		PostURL:       delivery.PostURL,
	}
	if err := s.attemptRepo.Create(ctx, attemptRecord); err != nil {
		log.WithError(err).WithField("contentID", content.ID).Error("Failed to record successful attempt")
	}
	if err := s.accountRepo.ApplySuccess(ctx, account.ID); err != nil {
		log.WithError(err).WithField("accountID", account.ID).Error("Failed to apply success counters")
	}
	if err := s.contentRepo.SetStatus(ctx, content.ID, models.ContentStatusPublished); err != nil {
		log.WithError(err).WithField("contentID", content.ID).Error("Failed to mark content published")
	}

	if err := s.eventPublisher.Publish(events.PostPublishedEvent{
		ContentID:        content.ID,
		Platform:         platform,
		AccountID:        account.ID,
		PostURL:          delivery.PostURL,
		RotationAttempts: attempt,
	}); err != nil {
		log.WithError(err).Error("Failed to publish post published event")
	}

	log.WithFields(log.Fields{
		"contentID": content.ID,
		"platform":  platform,
		"accountID": account.ID,
		"postURL":   delivery.PostURL,
		"attempts":  attempt,
	}).Info("Content delivered")

	return &models.PostingResult{
		Platform:         platform,
		Success:          true,
		AccountID:        account.ID,
		AccountUsername:  account.Username,
		PostURL:          delivery.PostURL,
		RotationAttempts: attempt,
	}, nil
}

// recordFailure applies failure side effects for one attempt. Each account is
// mutated at most once per rotation because it is excluded afterwards.
func (s *postingService) recordFailure(ctx context.Context, content *models.Content, platform models.Platform, account *models.Account, attempt int, errorMessage string) {
	log.WithFields(log.Fields{
		"contentID": content.ID,
		"platform":  platform,
		"accountID": account.ID,
		"attempt":   attempt,
		"error":     errorMessage,
		"category":  ClassifyError(errorMessage),
	}).Warn("Delivery attempt failed, rotating account")

	observability.GetMetrics().RecordDeliveryAttempt(string(platform), observability.ResultFailure, string(ClassifyError(errorMessage)))

	attemptRecord := &models.PostingAttempt{
		ContentID:     content.ID,
		AccountID:     account.ID,
		Platform:      platform,
		AttemptNumber: attempt,
		Result:        models.AttemptResultFailure,
		ErrorMessage:  errorMessage,
	}
	if err := s.attemptRepo.Create(ctx, attemptRecord); err != nil {
		log.WithError(err).WithField("contentID", content.ID).Error("Failed to record failed attempt")
	}

	errorCount, err := s.accountRepo.ApplyFailure(ctx, account.ID, errorMessage)
	if err != nil {
		log.WithError(err).WithField("accountID", account.ID).Error("Failed to apply failure counters")
		return
	}

	if errorCount >= config.Get().DegradedErrorThreshold {
		if err := s.eventPublisher.Publish(events.AccountDegradedEvent{
			AccountID:  account.ID,
			Platform:   platform,
			ErrorCount: errorCount,
			LastError:  errorMessage,
		}); err != nil {
			log.WithError(err).Error("Failed to publish account degraded event")
		}
	}
}

// completeExhausted finalizes a rotation that ran out of accounts or budget
func (s *postingService) completeExhausted(ctx context.Context, content *models.Content, platform models.Platform, attempts int, lastError string) (*models.PostingResult, error) {
	var message string
	if attempts == 0 && lastError == "" {
		message = fmt.Sprintf("no eligible account available for %s", platform)
	} else {
		message = fmt.Sprintf("rotation exhausted after %d attempts, last error: %s", attempts, lastError)
	}

	if err := s.contentRepo.SetStatus(ctx, content.ID, models.ContentStatusFailed); err != nil {
		log.WithError(err).WithField("contentID", content.ID).Error("Failed to mark content failed")
	}

	if err := s.activityLogRepo.Record(ctx, &models.ActivityLog{
		Type:    "rotation_failure",
		Message: message,
		Status:  "failed",
		Metadata: map[string]any{
			"content_id": content.ID,
			"platform":   string(platform),
			"attempts":   attempts,
			"category":   string(ClassifyError(lastError)),
		},
	}); err != nil {
		log.WithError(err).Error("Failed to record rotation failure log")
	}

	if err := s.eventPublisher.Publish(events.RotationExhaustedEvent{
		ContentID:        content.ID,
		Platform:         platform,
		RotationAttempts: attempts,
		LastError:        lastError,
	}); err != nil {
		log.WithError(err).Error("Failed to publish rotation exhausted event")
	}

	return &models.PostingResult{
		Platform:         platform,
		Success:          false,
		RotationAttempts: attempts,
		Error:            message,
	}, nil
}
