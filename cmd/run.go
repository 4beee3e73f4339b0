package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"viralcast/config"
	"viralcast/database"
	"viralcast/events"
	"viralcast/infrastructure"
	"viralcast/infrastructure/observability"
	"viralcast/models"
	"viralcast/platform"
	"viralcast/repository"
	"viralcast/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting viralcast posting engine...")

	// Load configuration
	cfg := config.Get()

	// Initialize metrics
	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize NATS event publishing
	log.Printf("Connecting to NATS at %s...", cfg.NATSServers)
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	if err := natsClient.EnsureDistributionEventStream(); err != nil {
		return fmt.Errorf("failed to ensure event stream: %w", err)
	}
	subjectMapper := infrastructure.NewEventSubjectMapper()
	eventPublisher := infrastructure.NewNATSEventPublisher(natsClient, subjectMapper)
	log.Println("NATS connection established successfully")

	// Degraded accounts need an operator, so surface them in the process
	// log in addition to the published event
	eventPublisher.RegisterLocalHandler(events.EventTypeAccountDegraded, func(_ context.Context, event events.Event) error {
		degraded, ok := event.(events.AccountDegradedEvent)
		if !ok {
			return nil
		}
		log.Printf("ALERT: account %d on %s degraded after %d consecutive errors: %s",
			degraded.AccountID, degraded.Platform, degraded.ErrorCount, degraded.LastError)
		return nil
	})

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	contentRepo := repository.NewContentRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	activityLogRepo := repository.NewActivityLogRepository(db)

	// Mirror lifecycle events from the bus into the activity log
	auditor := infrastructure.NewEventAuditor(natsClient, subjectMapper, activityLogRepo)
	if err := auditor.Start(); err != nil {
		return fmt.Errorf("failed to start event auditor: %w", err)
	}

	// Register delivery adapters. Officials first, then any platform
	// configured for automation replaces its official adapter.
	registry := platform.NewRegistry()
	registry.Register(platform.NewTikTokAdapter())
	registry.Register(platform.NewInstagramAdapter())
	registry.Register(platform.NewYouTubeAdapter())
	registry.Register(platform.NewDiscordAdapter())
	for _, name := range cfg.AutomationPlatforms {
		p, err := models.ParsePlatform(name)
		if err != nil {
			return fmt.Errorf("invalid automation platform %q: %w", name, err)
		}
		registry.Register(platform.NewAutomationAdapter(p, cfg.AutomationDriverURL))
	}
	log.Printf("Registered delivery adapters for %d platforms", len(registry.Platforms()))

	// Initialize services
	selector := service.NewAccountSelector(accountRepo)
	postingService := service.NewPostingService(
		selector,
		accountRepo,
		contentRepo,
		attemptRepo,
		activityLogRepo,
		registry,
		eventPublisher,
	)
	batchService := service.NewBatchService(postingService, activityLogRepo, eventPublisher)
	statsService := service.NewStatsService(attemptRepo)

	// Start background workers
	stopScheduledWorker := service.StartScheduledContentWorker(ctx, contentRepo, batchService)
	stopStatsWorker := startStatsReporter(ctx, statsService)

	// Wait for context cancellation
	log.Printf("Posting engine is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down posting engine...")
	stopScheduledWorker()
	stopStatsWorker()

	if err := natsClient.Close(); err != nil {
		log.Printf("Error closing NATS connection: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Flush pending metrics before the process exits
	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.Printf("Error shutting down metrics: %v", err)
	}

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}

// startStatsReporter periodically logs the last day's posting outcomes so
// operators get a heartbeat without querying the database
func startStatsReporter(ctx context.Context, statsService service.StatsService) func() {
	ticker := time.NewTicker(1 * time.Hour)
	stopChan := make(chan struct{})

	report := func() {
		stats, err := statsService.GetPostingStats(context.Background(), models.TimeframeDay)
		if err != nil {
			log.Printf("Failed to get posting stats: %v", err)
			return
		}
		log.Printf("Posting stats (last day): %d attempts, %d succeeded, %d failed",
			stats.TotalAttempts, stats.SuccessfulPosts, stats.FailedPosts)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-stopChan:
				return
			case <-ticker.C:
				report()
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
	}
}
