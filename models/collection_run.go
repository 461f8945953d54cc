package models

import (
	"time"
)

// CollectionRun represents one execution of the ladder collector
type CollectionRun struct {
	ID                int64                  `db:"id"`
	Region            string                 `db:"region"`
	Tier              string                 `db:"tier"`
	Division          string                 `db:"division"`
	PagesRequested    int                    `db:"pages_requested"`
	EntriesSeen       int                    `db:"entries_seen"`
	SummonersUpserted int                    `db:"summoners_upserted"`
	RequestsMade      int                    `db:"requests_made"`
	DurationMS        int64                  `db:"duration_ms"`
	Summary           map[string]interface{} `db:"summary"`
	CreatedAt         time.Time              `db:"created_at"`
}
