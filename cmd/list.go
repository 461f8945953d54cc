package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"harvester/config"
	"harvester/database"
	"harvester/repository"
)

// ListSummoners prints the most recently updated summoners for a region
func ListSummoners(ctx context.Context, region, tier string, limit int) error {
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	region = strings.ToUpper(region)
	repo := repository.NewSummonerRepository(db)

	summoners, err := repo.ListByRegionTier(ctx, region, tier, limit)
	if err != nil {
		return err
	}

	count, err := repo.CountByRegionTier(ctx, region, tier)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PUUID\tNAME\tTIER\tLP\tW/L")
	for _, s := range summoners {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%d\t%d/%d\n",
			s.PUUID, s.SummonerName, s.Tier, s.Division, s.LeaguePoints, s.Wins, s.Losses)
	}
	w.Flush()

	if tier == "" {
		fmt.Printf("%d summoners stored for %s\n", count, region)
	} else {
		fmt.Printf("%d summoners stored for %s %s\n", count, region, tier)
	}
	return nil
}

// ListRuns prints the most recent collection runs
func ListRuns(ctx context.Context, limit int) error {
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runs, err := repository.NewCollectionRunRepository(db).ListRecent(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tLADDER\tENTRIES\tSTORED\tREQUESTS\tDURATION")
	for _, run := range runs {
		ladder := fmt.Sprintf("%s %s %s", run.Region, run.Tier, run.Division)
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%dms\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), ladder,
			run.EntriesSeen, run.SummonersUpserted, run.RequestsMade, run.DurationMS)
	}
	return w.Flush()
}
