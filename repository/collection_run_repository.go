package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"harvester/database"
	"harvester/models"
)

// CollectionRunRepository implements the service.CollectionRunRepository interface
type CollectionRunRepository struct {
	q queryable
}

// NewCollectionRunRepository creates a new collection run repository
func NewCollectionRunRepository(db *database.DB) *CollectionRunRepository {
	return &CollectionRunRepository{q: db.DB}
}

// newCollectionRunRepositoryWithTx creates a new collection run repository with a transaction
func newCollectionRunRepositoryWithTx(tx queryable) *CollectionRunRepository {
	return &CollectionRunRepository{q: tx}
}

// Create records a new collection run
func (r *CollectionRunRepository) Create(ctx context.Context, run *models.CollectionRun) error {
	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	query := `
		INSERT INTO collection_runs
			(region, tier, division, pages_requested, entries_seen, summoners_upserted,
			 requests_made, duration_ms, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err = r.q.QueryRowContext(ctx, query,
		run.Region,
		run.Tier,
		run.Division,
		run.PagesRequested,
		run.EntriesSeen,
		run.SummonersUpserted,
		run.RequestsMade,
		run.DurationMS,
		string(summaryJSON),
	).Scan(&run.ID, &run.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create collection run for %s/%s: %w", run.Region, run.Tier, err)
	}

	return nil
}

// GetLatest returns the most recent collection run
func (r *CollectionRunRepository) GetLatest(ctx context.Context) (*models.CollectionRun, error) {
	query := `
		SELECT id, region, tier, division, pages_requested, entries_seen,
		       summoners_upserted, requests_made, duration_ms, summary, created_at
		FROM collection_runs
		ORDER BY id DESC
		LIMIT 1`

	run, err := r.scanRun(r.q.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest collection run: %w", err)
	}

	return run, nil
}

// ListRecent returns the most recent collection runs, newest first
func (r *CollectionRunRepository) ListRecent(ctx context.Context, limit int) ([]*models.CollectionRun, error) {
	query := `
		SELECT id, region, tier, division, pages_requested, entries_seen,
		       summoners_upserted, requests_made, duration_ms, summary, created_at
		FROM collection_runs
		ORDER BY id DESC
		LIMIT ?`

	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.CollectionRun
	for rows.Next() {
		run, err := r.scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collection runs: %w", err)
	}

	return runs, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *CollectionRunRepository) scanRun(s scanner) (*models.CollectionRun, error) {
	var run models.CollectionRun
	var summaryJSON sql.NullString

	err := s.Scan(
		&run.ID,
		&run.Region,
		&run.Tier,
		&run.Division,
		&run.PagesRequested,
		&run.EntriesSeen,
		&run.SummonersUpserted,
		&run.RequestsMade,
		&run.DurationMS,
		&summaryJSON,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if summaryJSON.Valid && summaryJSON.String != "" {
		if err := json.Unmarshal([]byte(summaryJSON.String), &run.Summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run summary: %w", err)
		}
	}

	return &run, nil
}
