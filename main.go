package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"harvester/cmd"
	"harvester/config"
	"harvester/database"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

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

	command := "collect"
	args := os.Args[1:]
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	var err error
	switch command {
	case "collect":
		err = handleCollect(ctx, args)
	case "migrate":
		err = handleMigrationCommand(args)
	case "summoners":
		err = handleListSummoners(ctx, args)
	case "runs":
		err = handleListRuns(ctx, args)
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		err = fmt.Errorf("unknown command: %s", command)
	}

	if err != nil {
		log.Fatal("Error: ", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: harvester <command> [flags]

commands:
  collect    fetch a ladder and store its summoners (default)
             flags: -region -tier -division -page -pages
  migrate    manage the database schema: up | down [steps] | status
  summoners  list stored summoners: -region [-tier] [-n]
  runs       list recent collection runs: [-n]`)
}

func handleCollect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("collect", flag.ExitOnError)
	region := fs.String("region", "", "region code (NA, EUW, KR, ...)")
	tier := fs.String("tier", "", "ranked tier (iron ... challenger)")
	division := fs.String("division", "", "division within the tier (1-4, empty for apex tiers)")
	page := fs.Int("page", 0, "first ladder page to fetch")
	pages := fs.Int("pages", 0, "number of ladder pages to fetch")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return cmd.Run(ctx, cmd.CollectOptions{
		Region:   *region,
		Tier:     *tier,
		Division: *division,
		Page:     *page,
		Pages:    *pages,
	})
}

func handleMigrationCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: harvester migrate [up|down|status] [args...]")
	}

	cfg := config.Get()

	switch args[0] {
	case "up":
		return database.MigrateUp(cfg.DatabasePath)
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(cfg.DatabasePath, steps)
	case "status":
		return database.MigrateStatus(cfg.DatabasePath)
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}

func handleListSummoners(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("summoners", flag.ExitOnError)
	region := fs.String("region", "NA", "region code")
	tier := fs.String("tier", "", "filter by tier")
	limit := fs.Int("n", 50, "maximum rows to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return cmd.ListSummoners(ctx, *region, *tier, *limit)
}

func handleListRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	limit := fs.Int("n", 10, "maximum rows to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return cmd.ListRuns(ctx, *limit)
}
