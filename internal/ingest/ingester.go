// Package ingest orchestrates the boxscore pipeline: parse an exported
// HTML file, extract player rows, assemble the game record, store it, and
// rebuild the derived artifacts.
package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fortuna/statline/internal/cache"
	"github.com/fortuna/statline/internal/derive"
	"github.com/fortuna/statline/internal/ingest/easystats"
	"github.com/fortuna/statline/internal/publisher"
	"github.com/fortuna/statline/internal/roster"
	"github.com/fortuna/statline/internal/store"
	"github.com/fortuna/statline/internal/store/repository"
)

// Ingester runs the ingest and rebuild pipeline. Cache and publisher are
// optional; when nil the rebuild still lands in Postgres, it just is not
// announced.
type Ingester struct {
	gameRepo    *repository.GameRepository
	rosterRepo  *repository.RosterRepository
	derivedRepo *repository.DerivedRepository
	cache       *cache.RedisCache
	publisher   *publisher.RedisStreamPublisher
	opts        derive.Options
}

// NewIngester creates an ingester over the given database. cache and pub
// may be nil.
func NewIngester(db *store.Database, c *cache.RedisCache, pub *publisher.RedisStreamPublisher, opts derive.Options) *Ingester {
	return &Ingester{
		gameRepo:    repository.NewGameRepository(db),
		rosterRepo:  repository.NewRosterRepository(db),
		derivedRepo: repository.NewDerivedRepository(db),
		cache:       c,
		publisher:   pub,
		opts:        opts,
	}
}

// IngestFile parses one exported boxscore file, stores the game it
// describes, and triggers a full derived rebuild. With twoSided set the
// file must contain two stats tables, ours first.
func (in *Ingester) IngestFile(ctx context.Context, path string, meta easystats.GameMeta, twoSided bool) (*store.GameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	tables, err := easystats.ParseTables(f)
	if err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no stats table found in %s", path)
	}
	if twoSided && len(tables) < 2 {
		return nil, fmt.Errorf("expected two stats tables in %s, found %d", path, len(tables))
	}

	resolver, err := in.loadResolver(ctx, meta.TeamID)
	if err != nil {
		return nil, err
	}

	players := easystats.ExtractRows(tables[0], resolver)
	if len(players) == 0 {
		return nil, fmt.Errorf("no player rows extracted from %s", path)
	}

	var opponents []store.PlayerGameRecord
	if twoSided {
		// Opponent players are never on our roster; every id is synthesized.
		opponents = easystats.ExtractRows(tables[1], roster.NewResolver(nil))
	}

	game, err := easystats.AssembleGame(meta, players, opponents)
	if err != nil {
		return nil, fmt.Errorf("assembling game: %w", err)
	}

	if err := in.gameRepo.Upsert(ctx, game); err != nil {
		return nil, fmt.Errorf("storing game: %w", err)
	}
	log.Printf("Stored game %s (%d players)", game.GameID, len(game.Players))

	if err := in.rebuild(ctx, "ingest", game.GameID); err != nil {
		return nil, err
	}
	return game, nil
}

// Rebuild regenerates every derived artifact from the full stored game
// set, without ingesting anything new.
func (in *Ingester) Rebuild(ctx context.Context) error {
	return in.rebuild(ctx, "rebuild", "")
}

func (in *Ingester) rebuild(ctx context.Context, trigger, gameID string) error {
	games, err := in.gameRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("loading games for rebuild: %w", err)
	}
	entries, err := in.rosterRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("loading roster for rebuild: %w", err)
	}

	artifacts := derive.Build(games, entries, in.opts, time.Now().UTC())

	if err := in.derivedRepo.Publish(ctx, artifacts); err != nil {
		return fmt.Errorf("publishing derived artifacts: %w", err)
	}
	log.Printf("Rebuilt derived artifacts: %d games, %d player totals, %d leaderboards, %d record boards",
		len(games), len(artifacts.PlayerTotals), len(artifacts.Leaderboards), len(artifacts.Records))

	if in.cache != nil {
		if err := in.cache.SetDerivedSnapshot(ctx, artifacts, 0); err != nil {
			log.Printf("Warning: caching derived snapshot failed: %v", err)
		}
	}
	if in.publisher != nil {
		event := publisher.RebuildEvent{
			TriggeredBy:  trigger,
			GameID:       gameID,
			Games:        len(games),
			PlayerTotals: len(artifacts.PlayerTotals),
			Leaderboards: len(artifacts.Leaderboards),
			Records:      len(artifacts.Records),
			RebuiltAt:    artifacts.GeneratedAt,
		}
		if err := in.publisher.PublishRebuild(ctx, event); err != nil {
			log.Printf("Warning: publishing rebuild event failed: %v", err)
		}
	}
	return nil
}

// loadResolver builds a roster resolver scoped to one team. Entries with
// no team claim are treated as global and included for every team.
func (in *Ingester) loadResolver(ctx context.Context, teamID string) (*roster.Resolver, error) {
	entries, err := in.rosterRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}

	var scoped []store.RosterEntry
	for _, e := range entries {
		if len(e.TeamIDs) == 0 {
			scoped = append(scoped, e)
			continue
		}
		for _, t := range e.TeamIDs {
			if t == teamID {
				scoped = append(scoped, e)
				break
			}
		}
	}
	return roster.NewResolver(scoped), nil
}
