package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"harvester/database"
	"harvester/models"
)

// SummonerRepository implements the service.SummonerRepository interface
type SummonerRepository struct {
	q queryable
}

// NewSummonerRepository creates a new summoner repository
func NewSummonerRepository(db *database.DB) *SummonerRepository {
	return &SummonerRepository{q: db.DB}
}

// newSummonerRepositoryWithTx creates a new summoner repository with a transaction
func newSummonerRepositoryWithTx(tx queryable) *SummonerRepository {
	return &SummonerRepository{q: tx}
}

// BatchUpsert inserts or updates a batch of summoners keyed by puuid
func (r *SummonerRepository) BatchUpsert(ctx context.Context, summoners []*models.Summoner) (int, error) {
	query := `
		INSERT INTO summoners
			(puuid, summoner_id, account_id, summoner_name, region, tier, division, league_points, wins, losses)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (puuid) DO UPDATE SET
			summoner_id = excluded.summoner_id,
			account_id = excluded.account_id,
			summoner_name = excluded.summoner_name,
			region = excluded.region,
			tier = excluded.tier,
			division = excluded.division,
			league_points = excluded.league_points,
			wins = excluded.wins,
			losses = excluded.losses,
			updated_at = CURRENT_TIMESTAMP`

	written := 0
	for _, summoner := range summoners {
		_, err := r.q.ExecContext(ctx, query,
			summoner.PUUID,
			summoner.SummonerID,
			summoner.AccountID,
			summoner.SummonerName,
			summoner.Region,
			summoner.Tier,
			summoner.Division,
			summoner.LeaguePoints,
			summoner.Wins,
			summoner.Losses,
		)
		if err != nil {
			return written, fmt.Errorf("failed to upsert summoner %s: %w", summoner.PUUID, err)
		}
		written++
	}

	return written, nil
}

// GetByPUUID retrieves a summoner by puuid
func (r *SummonerRepository) GetByPUUID(ctx context.Context, puuid string) (*models.Summoner, error) {
	query := `
		SELECT puuid, summoner_id, account_id, summoner_name, region, tier, division,
		       league_points, wins, losses, created_at, updated_at
		FROM summoners
		WHERE puuid = ?`

	var summoner models.Summoner
	err := r.q.QueryRowContext(ctx, query, puuid).Scan(
		&summoner.PUUID,
		&summoner.SummonerID,
		&summoner.AccountID,
		&summoner.SummonerName,
		&summoner.Region,
		&summoner.Tier,
		&summoner.Division,
		&summoner.LeaguePoints,
		&summoner.Wins,
		&summoner.Losses,
		&summoner.CreatedAt,
		&summoner.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summoner by puuid %s: %w", puuid, err)
	}

	return &summoner, nil
}

// ListByRegion returns the most recently updated summoners for a region
func (r *SummonerRepository) ListByRegion(ctx context.Context, region string, limit int) ([]*models.Summoner, error) {
	return r.ListByRegionTier(ctx, region, "", limit)
}

// ListByRegionTier returns the most recently updated summoners for a region
// and tier; an empty tier lists the whole region. Stored tiers are uppercase,
// so the tier argument is normalized before the comparison.
func (r *SummonerRepository) ListByRegionTier(ctx context.Context, region, tier string, limit int) ([]*models.Summoner, error) {
	query := `
		SELECT puuid, summoner_id, account_id, summoner_name, region, tier, division,
		       league_points, wins, losses, created_at, updated_at
		FROM summoners
		WHERE region = ?`
	args := []interface{}{region}

	if tier != "" {
		query += ` AND tier = ?`
		args = append(args, strings.ToUpper(tier))
	}

	query += `
		ORDER BY updated_at DESC, puuid
		LIMIT ?`
	args = append(args, limit)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list summoners for region %s: %w", region, err)
	}
	defer rows.Close()

	var summoners []*models.Summoner
	for rows.Next() {
		var summoner models.Summoner
		err := rows.Scan(
			&summoner.PUUID,
			&summoner.SummonerID,
			&summoner.AccountID,
			&summoner.SummonerName,
			&summoner.Region,
			&summoner.Tier,
			&summoner.Division,
			&summoner.LeaguePoints,
			&summoner.Wins,
			&summoner.Losses,
			&summoner.CreatedAt,
			&summoner.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summoner: %w", err)
		}
		summoners = append(summoners, &summoner)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate summoners: %w", err)
	}

	return summoners, nil
}

// CountByRegionTier returns how many summoners are stored for a region and
// tier; an empty tier counts the whole region
func (r *SummonerRepository) CountByRegionTier(ctx context.Context, region, tier string) (int64, error) {
	var count int64
	var err error

	if tier == "" {
		err = r.q.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM summoners WHERE region = ?", region).Scan(&count)
	} else {
		err = r.q.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM summoners WHERE region = ? AND tier = ?",
			region, strings.ToUpper(tier)).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count summoners for region %s tier %q: %w", region, tier, err)
	}

	return count, nil
}
