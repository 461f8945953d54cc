package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"harvester/events"
	"harvester/models"
	"harvester/riot"

	log "github.com/sirupsen/logrus"
)

// DefaultRequestInterval paces per-summoner lookups to stay inside the
// personal API key rate limit
const DefaultRequestInterval = 1200 * time.Millisecond

// collectorService implements the CollectorService interface
type collectorService struct {
	client          RiotClient
	uowFactory      UnitOfWorkFactory
	requestInterval time.Duration
}

// NewCollectorService creates a new collector service
func NewCollectorService(client RiotClient, uowFactory UnitOfWorkFactory, requestInterval time.Duration) CollectorService {
	if requestInterval <= 0 {
		requestInterval = DefaultRequestInterval
	}
	return &collectorService{
		client:          client,
		uowFactory:      uowFactory,
		requestInterval: requestInterval,
	}
}

// Collect fetches the requested ladder pages, resolves each entry to a full
// summoner record and persists the batch in a single transaction
func (s *collectorService) Collect(ctx context.Context, params CollectParams) (*models.CollectionRun, error) {
	if err := validateParams(&params); err != nil {
		return nil, err
	}

	start := time.Now()
	requests := 0

	entries, pagesFetched, err := s.fetchEntries(ctx, params, &requests)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"region":  params.Region,
		"tier":    params.Tier,
		"entries": len(entries),
		"pages":   pagesFetched,
	}).Info("Fetched ladder entries")

	summoners, skipped, err := s.resolveSummoners(ctx, params, entries, &requests)
	if err != nil {
		return nil, err
	}

	division, _ := riot.DivisionNumeral(params.Division)
	run := &models.CollectionRun{
		Region:         params.Region,
		Tier:           strings.ToUpper(params.Tier),
		Division:       division,
		PagesRequested: params.Pages,
		EntriesSeen:    len(entries),
		RequestsMade:   requests,
		Summary: map[string]interface{}{
			"skipped":       skipped,
			"pages_fetched": pagesFetched,
		},
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	written, err := uow.SummonerRepository().BatchUpsert(ctx, summoners)
	if err != nil {
		return nil, fmt.Errorf("failed to persist summoner batch: %w", err)
	}
	run.SummonersUpserted = written
	run.DurationMS = time.Since(start).Milliseconds()

	if err := uow.CollectionRunRepository().Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record collection run: %w", err)
	}

	uow.EventBus().Publish(events.SummonerBatchUpsertedEvent{
		Region: run.Region,
		Tier:   run.Tier,
		Count:  written,
	})
	uow.EventBus().Publish(events.CollectionCompletedEvent{
		RunID:             run.ID,
		Region:            run.Region,
		Tier:              run.Tier,
		Division:          run.Division,
		EntriesSeen:       run.EntriesSeen,
		SummonersUpserted: run.SummonersUpserted,
		RequestsMade:      run.RequestsMade,
		Duration:          time.Duration(run.DurationMS) * time.Millisecond,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"runId":    run.ID,
		"region":   run.Region,
		"tier":     run.Tier,
		"upserted": run.SummonersUpserted,
		"skipped":  skipped,
	}).Info("Collection run completed")

	return run, nil
}

// fetchEntries pulls the league page(s) for the requested ladder. Apex tiers
// return the whole league in a single request regardless of paging.
func (s *collectorService) fetchEntries(ctx context.Context, params CollectParams, requests *int) ([]riot.LeagueEntry, int, error) {
	if riot.IsApexTier(params.Tier) {
		*requests++
		entries, err := s.client.LeagueEntries(ctx, params.Region, params.Tier, params.Division, params.Page)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to fetch league: %w", err)
		}
		return entries, 1, nil
	}

	var all []riot.LeagueEntry
	pagesFetched := 0
	for page := params.Page; page < params.Page+params.Pages; page++ {
		*requests++
		entries, err := s.client.LeagueEntries(ctx, params.Region, params.Tier, params.Division, page)
		if err != nil {
			return nil, pagesFetched, fmt.Errorf("failed to fetch league page %d: %w", page, err)
		}
		pagesFetched++
		all = append(all, entries...)

		// The API signals the end of the ladder with an empty page
		if len(entries) == 0 {
			break
		}
	}
	return all, pagesFetched, nil
}

// resolveSummoners looks up the full summoner record for each league entry.
// Entries whose lookup fails are skipped and counted, not fatal.
func (s *collectorService) resolveSummoners(ctx context.Context, params CollectParams, entries []riot.LeagueEntry, requests *int) ([]*models.Summoner, int, error) {
	tier := strings.ToUpper(params.Tier)
	division, _ := riot.DivisionNumeral(params.Division)

	summoners := make([]*models.Summoner, 0, len(entries))
	skipped := 0

	for i, entry := range entries {
		if i > 0 {
			if err := sleepContext(ctx, s.requestInterval); err != nil {
				return nil, skipped, err
			}
		}

		*requests++
		summoner, err := s.client.SummonerByID(ctx, params.Region, entry.SummonerID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, skipped, ctx.Err()
			}
			skipped++
			log.WithFields(log.Fields{
				"summonerId": entry.SummonerID,
				"region":     params.Region,
				"error":      err,
			}).Warn("Skipping entry, summoner lookup failed")
			continue
		}

		name := entry.SummonerName
		if name == "" {
			name = summoner.Name
		}

		summoners = append(summoners, &models.Summoner{
			PUUID:        summoner.PUUID,
			SummonerID:   entry.SummonerID,
			AccountID:    summoner.AccountID,
			SummonerName: name,
			Region:       params.Region,
			Tier:         tier,
			Division:     division,
			LeaguePoints: entry.LeaguePoints,
			Wins:         entry.Wins,
			Losses:       entry.Losses,
		})
	}

	return summoners, skipped, nil
}

// validateParams normalizes and validates a collection request
func validateParams(params *CollectParams) error {
	params.Region = strings.ToUpper(strings.TrimSpace(params.Region))
	params.Tier = strings.TrimSpace(params.Tier)

	if _, err := riot.BaseURL(params.Region); err != nil {
		return err
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Pages < 1 {
		params.Pages = 1
	}
	if _, err := riot.LeaguePath(params.Tier, params.Division, params.Page); err != nil {
		return err
	}
	return nil
}

// sleepContext sleeps for d or until the context is cancelled
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
