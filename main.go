package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"viralcast/cmd"
	"viralcast/config"
	"viralcast/database"
	"viralcast/infrastructure"
	"viralcast/models"
	"viralcast/platform"
	"viralcast/repository"
	"viralcast/service"
)

func main() {
	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatal("Migration error:", err)
		}
		return
	}

	// Check for the one-off posting subcommand
	if len(os.Args) > 1 && os.Args[1] == "post" {
		if err := handleManualPost(); err != nil {
			log.Fatal("Post error:", err)
		}
		return
	}

	// Normal engine operation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	// Run the application
	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error:", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: viralcast migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

// handleManualPost posts one content item to its target platforms right now.
// Used by operators to retry a failed item or push something out of band.
func handleManualPost() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: viralcast post content-id [platform...]")
	}
	contentID := os.Args[2]

	ctx := context.Background()
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	accountRepo := repository.NewAccountRepository(db)
	contentRepo := repository.NewContentRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	activityLogRepo := repository.NewActivityLogRepository(db)

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

	content, err := contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}
	if content == nil {
		return fmt.Errorf("content %s not found", contentID)
	}

	// Explicit platform arguments override the content's own targets
	platforms := content.TargetPlatforms
	if len(os.Args) > 3 {
		platforms = nil
		for _, arg := range os.Args[3:] {
			p, err := models.ParsePlatform(arg)
			if err != nil {
				return err
			}
			platforms = append(platforms, p)
		}
	}
	if len(platforms) == 0 {
		return fmt.Errorf("content %s has no target platforms", contentID)
	}

	// One-off runs do not publish events
	eventPublisher := infrastructure.NewNoopEventPublisher()

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

	results, err := batchService.BatchPost(ctx, content, platforms)
	if err != nil {
		return fmt.Errorf("batch post failed: %w", err)
	}

	for _, result := range results {
		if result.Success {
			log.Printf("%s: posted as %s after %d attempt(s): %s",
				result.Platform, result.AccountUsername, result.RotationAttempts, result.PostURL)
		} else {
			log.Printf("%s: failed after %d attempt(s): %s",
				result.Platform, result.RotationAttempts, result.Error)
		}
	}
	return nil
}
