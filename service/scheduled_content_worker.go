package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// scheduledBatchSize caps how many due items one worker pass picks up
const scheduledBatchSize = 20

// StartScheduledContentWorker starts a background worker that polls for
// scheduled content whose time has come and fans it out to its target
// platforms. Returns a cleanup function to stop the worker gracefully.
func StartScheduledContentWorker(ctx context.Context, contentRepo ContentRepository, batchService BatchService) func() {
	ticker := time.NewTicker(1 * time.Minute)
	stopChan := make(chan struct{})

	processDueContent := func() {
		items, err := contentRepo.GetDueScheduled(context.Background(), time.Now(), scheduledBatchSize)
		if err != nil {
			log.WithError(err).Error("Failed to query due scheduled content")
			return
		}
		if len(items) == 0 {
			return
		}

		log.WithField("count", len(items)).Info("Processing due scheduled content")
		for _, content := range items {
			if len(content.TargetPlatforms) == 0 {
				log.WithField("contentID", content.ID).Warn("Scheduled content has no target platforms, skipping")
				continue
			}

			results, err := batchService.BatchPost(context.Background(), content, content.TargetPlatforms)
			if err != nil {
				log.WithError(err).WithField("contentID", content.ID).Error("Failed to post scheduled content")
				continue
			}

			succeeded := 0
			for _, result := range results {
				if result.Success {
					succeeded++
				}
			}
			log.WithFields(log.Fields{
				"contentID": content.ID,
				"succeeded": succeeded,
				"total":     len(results),
			}).Info("Scheduled content processed")
		}
	}

	go func() {
		log.Info("Scheduled content worker started")

		// Run immediately on startup
		processDueContent()

		for {
			select {
			case <-ctx.Done():
				log.Info("Scheduled content worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Scheduled content worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				processDueContent()
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
	}
}
