package testutil

import (
	"fmt"

	"harvester/models"
)

// CreateTestSummoner creates a test summoner with default values
func CreateTestSummoner(puuid string) *models.Summoner {
	return &models.Summoner{
		PUUID:        puuid,
		SummonerID:   "sid-" + puuid,
		AccountID:    "aid-" + puuid,
		SummonerName: "Summoner " + puuid,
		Region:       "NA",
		Tier:         "MASTER",
		Division:     "",
		LeaguePoints: 100,
		Wins:         50,
		Losses:       40,
	}
}

// CreateTestSummonerInRegion creates a test summoner in a specific region and tier
func CreateTestSummonerInRegion(puuid, region, tier string) *models.Summoner {
	summoner := CreateTestSummoner(puuid)
	summoner.Region = region
	summoner.Tier = tier
	return summoner
}

// CreateTestSummonerBatch creates n test summoners with sequential puuids
func CreateTestSummonerBatch(n int) []*models.Summoner {
	summoners := make([]*models.Summoner, 0, n)
	for i := 0; i < n; i++ {
		summoners = append(summoners, CreateTestSummoner(fmt.Sprintf("puuid-%03d", i)))
	}
	return summoners
}

// CreateTestCollectionRun creates a test collection run with default values
func CreateTestCollectionRun() *models.CollectionRun {
	return &models.CollectionRun{
		Region:            "NA",
		Tier:              "MASTER",
		Division:          "",
		PagesRequested:    1,
		EntriesSeen:       25,
		SummonersUpserted: 25,
		RequestsMade:      26,
		DurationMS:        31000,
		Summary: map[string]interface{}{
			"skipped": 0,
		},
	}
}

// CreateTestCollectionRunWithCounts creates a test collection run with specific counts
func CreateTestCollectionRunWithCounts(entries, upserted int) *models.CollectionRun {
	run := CreateTestCollectionRun()
	run.EntriesSeen = entries
	run.SummonersUpserted = upserted
	return run
}
