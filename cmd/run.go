package cmd

import (
	"context"
	"fmt"
	"log"

	"harvester/config"
	"harvester/database"
	"harvester/events"
	"harvester/notifier"
	"harvester/repository"
	"harvester/riot"
	"harvester/service"
)

// CollectOptions are the CLI overrides for a collection run; zero values
// fall back to the configured defaults
type CollectOptions struct {
	Region   string
	Tier     string
	Division string
	Page     int
	Pages    int
}

// Run executes a collection run end to end
func Run(ctx context.Context, opts CollectOptions) error {
	log.Println("Starting collector...")

	// Load configuration
	cfg := config.Get()

	params := service.CollectParams{
		Region:   cfg.Region,
		Tier:     cfg.Tier,
		Division: cfg.Division,
		Page:     cfg.Page,
		Pages:    cfg.Pages,
	}
	if opts.Region != "" {
		params.Region = opts.Region
	}
	if opts.Tier != "" {
		params.Tier = opts.Tier
	}
	if opts.Division != "" {
		params.Division = opts.Division
	}
	if opts.Page > 0 {
		params.Page = opts.Page
	}
	if opts.Pages > 0 {
		params.Pages = opts.Pages
	}

	// Initialize database connection
	log.Println("Opening database...")
	if err := database.MigrateUp(cfg.DatabasePath); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	db, err := database.NewConnection(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Initialize event bus
	eventBus := events.NewBus()

	// Optional Discord notifications
	if cfg.DiscordToken != "" && cfg.DiscordChannelID != "" {
		n, err := notifier.New(notifier.Config{
			Token:     cfg.DiscordToken,
			ChannelID: cfg.DiscordChannelID,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize notifier: %w", err)
		}
		n.Subscribe(eventBus)
		log.Println("Discord notifications enabled")
	}

	// Initialize services
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	client := riot.NewClient(cfg.RiotAPIKey)
	collector := service.NewCollectorService(client, uowFactory, cfg.RequestInterval)

	run, err := collector.Collect(ctx, params)
	if err != nil {
		return err
	}

	// Handlers run asynchronously; the notifier must finish before we exit
	eventBus.Wait()

	log.Printf("Run #%d done: %d entries, %d summoners stored, %d requests",
		run.ID, run.EntriesSeen, run.SummonersUpserted, run.RequestsMade)
	return nil
}
