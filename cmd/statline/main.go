// Command statline ingests exported basketball boxscores and serves the
// aggregated results.
//
// Usage:
//
//	statline ingest export.html --date 2025-03-08 --season 2024-25 --team-id pretty-good --team-name "Pretty Good"
//	statline rebuild
//	statline roster add jordan-todd "Jordan Todd" --teams pretty-good
//	statline roster list
//	statline serve
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna/statline/internal/api/rest"
	"github.com/fortuna/statline/internal/api/websocket"
	"github.com/fortuna/statline/internal/cache"
	"github.com/fortuna/statline/internal/config"
	"github.com/fortuna/statline/internal/derive"
	"github.com/fortuna/statline/internal/ingest"
	"github.com/fortuna/statline/internal/ingest/easystats"
	"github.com/fortuna/statline/internal/publisher"
	"github.com/fortuna/statline/internal/store"
	"github.com/fortuna/statline/internal/store/repository"
)

func main() {
	root := &cobra.Command{
		Use:           "statline",
		Short:         "Basketball boxscore ingestion and aggregation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(ingestCmd())
	root.AddCommand(rebuildCmd())
	root.AddCommand(rosterCmd())
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func ingestCmd() *cobra.Command {
	var (
		date, season, gameType    string
		teamID, teamName, oppName string
		teamScore, oppScore       int
		twoSided                  bool
	)

	cmd := &cobra.Command{
		Use:   "ingest <export.html>",
		Short: "Ingest one exported boxscore file and rebuild derived stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPipeline(func(ctx context.Context, in *ingest.Ingester) error {
				gameDate, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid --date (use YYYY-MM-DD): %w", err)
				}

				meta := easystats.GameMeta{
					Date:          gameDate,
					Season:        season,
					GameType:      gameType,
					TeamID:        teamID,
					TeamName:      teamName,
					Opponent:      oppName,
					TeamScore:     teamScore,
					OpponentScore: oppScore,
				}

				game, err := in.IngestFile(ctx, args[0], meta, twoSided)
				if err != nil {
					return err
				}
				log.Printf("Ingested %s: %s vs %s (%d-%d)",
					game.GameID, game.TeamName, game.Opponent, game.TeamScore, game.OpponentScore)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Game date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&season, "season", "", "Season label, e.g. 2024-25")
	cmd.Flags().StringVar(&gameType, "type", store.GameTypeRegular, "Game type (regular, playoff, preseason)")
	cmd.Flags().StringVar(&teamID, "team-id", "", "Stable team identifier")
	cmd.Flags().StringVar(&teamName, "team-name", "", "Team display name")
	cmd.Flags().StringVar(&oppName, "opp", "", "Opponent display name")
	cmd.Flags().IntVar(&teamScore, "score", 0, "Final team score")
	cmd.Flags().IntVar(&oppScore, "opp-score", 0, "Final opponent score")
	cmd.Flags().BoolVar(&twoSided, "two-sided", false, "Export contains both teams' tables, ours first")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("season")
	cmd.MarkFlagRequired("team-id")
	cmd.MarkFlagRequired("team-name")

	return cmd
}

func rebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Regenerate all derived stats from the stored games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPipeline(func(ctx context.Context, in *ingest.Ingester) error {
				return in.Rebuild(ctx)
			})
		},
	}
}

func rosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the player roster",
	}
	cmd.AddCommand(rosterAddCmd())
	cmd.AddCommand(rosterListCmd())
	return cmd
}

func rosterAddCmd() *cobra.Command {
	var teams []string

	cmd := &cobra.Command{
		Use:   "add <player-id> <full name>",
		Short: "Add or update a roster entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(ctx context.Context, db *store.Database) error {
				entry := store.RosterEntry{
					PlayerID: args[0],
					FullName: args[1],
					TeamIDs:  teams,
				}
				if err := repository.NewRosterRepository(db).Upsert(ctx, entry); err != nil {
					return err
				}
				log.Printf("Roster entry saved: %s (%s)", entry.FullName, entry.PlayerID)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&teams, "teams", nil, "Team ids this player belongs to (empty = all teams)")
	return cmd
}

func rosterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roster entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(ctx context.Context, db *store.Database) error {
				entries, err := repository.NewRosterRepository(db).ListAll(ctx)
				if err != nil {
					return err
				}
				for _, e := range entries {
					teams := "all teams"
					if len(e.TeamIDs) > 0 {
						teams = fmt.Sprintf("%v", e.TeamIDs)
					}
					fmt.Printf("%-24s %-24s %s\n", e.PlayerID, e.FullName, teams)
				}
				return nil
			})
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API and WebSocket rebuild notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg := config.Load()

	db, err := store.NewDatabase(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Println("Database ready")

	redisCache := connectCache(cfg.RedisURL)
	if redisCache != nil {
		defer redisCache.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	restServer := rest.NewServer(cfg.RESTPort, db)
	go func() {
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()
	log.Printf("REST API listening on :%s", cfg.RESTPort)

	wsServer := websocket.NewServer(redisCache)
	go func() {
		if err := wsServer.Start(ctx, cfg.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()
	log.Printf("WebSocket listening on :%s", cfg.WSPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket shutdown error: %v", err)
	}

	log.Println("Stopped")
	return nil
}

// withPipeline sets up the database, optional Redis collaborators, and an
// ingester, then runs fn.
func withPipeline(fn func(ctx context.Context, in *ingest.Ingester) error) error {
	cfg := config.Load()

	return withDatabase(func(ctx context.Context, db *store.Database) error {
		redisCache := connectCache(cfg.RedisURL)
		var pub *publisher.RedisStreamPublisher
		if redisCache != nil {
			defer redisCache.Close()
			pub = publisher.NewRedisStreamPublisher(redisCache.Client())
		}

		opts := derive.Options{
			RankedKeys:             cfg.RankedKeys,
			LeaderTopN:             cfg.LeaderTopN,
			RecordTopN:             cfg.RecordTopN,
			SplitRecordsByGameType: cfg.SplitRecordsByGameType,
		}

		return fn(ctx, ingest.NewIngester(db, redisCache, pub, opts))
	})
}

// withDatabase connects, migrates, runs fn, and handles interrupts.
func withDatabase(fn func(ctx context.Context, db *store.Database) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	db, err := store.NewDatabase(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return fn(ctx, db)
}

// connectCache returns nil when Redis is unreachable; the pipeline still
// works, it just skips caching and event publication.
func connectCache(redisURL string) *cache.RedisCache {
	c, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Redis unavailable (%v), continuing without cache", err)
		return nil
	}
	return c
}
