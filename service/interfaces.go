package service

import (
	"context"

	"harvester/events"
	"harvester/models"
	"harvester/riot"
)

// SummonerRepository defines the interface for summoner data access
type SummonerRepository interface {
	// BatchUpsert inserts or updates a batch of summoners keyed by puuid
	// and returns the number of rows written
	BatchUpsert(ctx context.Context, summoners []*models.Summoner) (int, error)

	// GetByPUUID retrieves a summoner by puuid, returning nil when absent
	GetByPUUID(ctx context.Context, puuid string) (*models.Summoner, error)

	// ListByRegion returns the most recently updated summoners for a region
	ListByRegion(ctx context.Context, region string, limit int) ([]*models.Summoner, error)

	// CountByRegionTier returns how many summoners are stored for a region
	// and tier; an empty tier counts the whole region
	CountByRegionTier(ctx context.Context, region, tier string) (int64, error)
}

// CollectionRunRepository defines the interface for collection run tracking
type CollectionRunRepository interface {
	// Create records a new collection run
	Create(ctx context.Context, run *models.CollectionRun) error

	// GetLatest returns the most recent collection run, nil when none exist
	GetLatest(ctx context.Context) (*models.CollectionRun, error)

	// ListRecent returns the most recent collection runs, newest first
	ListRecent(ctx context.Context, limit int) ([]*models.CollectionRun, error)
}

// RiotClient defines the interface for the remote game-statistics API
type RiotClient interface {
	// LeagueEntries fetches the ladder entries for a region, tier and
	// division; the page parameter applies to non-apex tiers only
	LeagueEntries(ctx context.Context, region, tier, division string, page int) ([]riot.LeagueEntry, error)

	// SummonerByID fetches the summoner record for an encrypted summoner ID
	SummonerByID(ctx context.Context, region, summonerID string) (*riot.Summoner, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	// Publish stages an event for delivery
	Publish(event events.Event)
}

// UnitOfWork defines a transactional scope over the repositories
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes staged events
	Commit() error

	// Rollback rolls back the transaction and discards staged events
	Rollback() error

	// SummonerRepository returns the summoner repository bound to this transaction
	SummonerRepository() SummonerRepository

	// CollectionRunRepository returns the run repository bound to this transaction
	CollectionRunRepository() CollectionRunRepository

	// EventBus returns the transactional event publisher
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// CollectParams describes one collection request
type CollectParams struct {
	Region   string
	Tier     string
	Division string
	Page     int
	Pages    int
}

// CollectorService defines the interface for ladder collection
type CollectorService interface {
	// Collect fetches the requested ladder pages, resolves each entry to a
	// full summoner record and persists the batch. It returns the recorded
	// collection run.
	Collect(ctx context.Context, params CollectParams) (*models.CollectionRun, error)
}
