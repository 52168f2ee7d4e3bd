package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fortuna/statline/internal/stats"
	"github.com/fortuna/statline/internal/store"
)

// DerivedRepository persists the derived artifact set. Publish replaces
// everything inside one transaction, so readers always see a complete,
// consistent rebuild and never a partial delta.
type DerivedRepository struct {
	db *store.Database
}

// NewDerivedRepository creates a new derived-artifact repository.
func NewDerivedRepository(db *store.Database) *DerivedRepository {
	return &DerivedRepository{db: db}
}

// Publish overwrites the stored derived artifacts wholesale.
func (r *DerivedRepository) Publish(ctx context.Context, artifacts *store.DerivedArtifacts) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning publish transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"player_totals", "team_leaders", "team_records"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertTotals(ctx, tx, artifacts.PlayerTotals); err != nil {
		return err
	}
	if err := insertLeaders(ctx, tx, artifacts.Leaderboards); err != nil {
		return err
	}
	if err := insertRecords(ctx, tx, artifacts.Records); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing publish: %w", err)
	}
	return nil
}

func insertTotals(ctx context.Context, tx *sql.Tx, totals []store.PlayerAggregate) error {
	query := `
		INSERT INTO player_totals (player_id, season, game_type, team_id, games, totals, averages)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, agg := range totals {
		totalsJSON, err := json.Marshal(agg.Totals)
		if err != nil {
			return fmt.Errorf("encoding totals: %w", err)
		}
		avgJSON, err := json.Marshal(agg.Averages)
		if err != nil {
			return fmt.Errorf("encoding averages: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query,
			agg.PlayerID, agg.Season, agg.GameType, agg.TeamID, agg.Games, totalsJSON, avgJSON,
		); err != nil {
			return fmt.Errorf("inserting player totals: %w", err)
		}
	}
	return nil
}

func insertLeaders(ctx context.Context, tx *sql.Tx, boards []store.Leaderboard) error {
	query := `
		INSERT INTO team_leaders (team_id, season, game_type, stat, rank, player_id, value)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, board := range boards {
		for _, e := range board.Entries {
			if _, err := tx.ExecContext(ctx, query,
				board.TeamID, board.Season, board.GameType, string(board.Stat),
				e.Rank, e.PlayerID, e.Value,
			); err != nil {
				return fmt.Errorf("inserting leaderboard entry: %w", err)
			}
		}
	}
	return nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, boards []store.RecordBoard) error {
	query := `
		INSERT INTO team_records (team_id, season, game_type, stat, rank, player_id, value, game_id, game_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, board := range boards {
		for _, e := range board.Entries {
			if _, err := tx.ExecContext(ctx, query,
				board.TeamID, board.Season, board.GameType, string(board.Stat),
				e.Rank, e.PlayerID, e.Value, e.GameID, e.Date,
			); err != nil {
				return fmt.Errorf("inserting record entry: %w", err)
			}
		}
	}
	return nil
}

// ListPlayerTotals returns stored aggregates for one player, optionally
// filtered by season and game type.
func (r *DerivedRepository) ListPlayerTotals(ctx context.Context, playerID, season, gameType string) ([]store.PlayerAggregate, error) {
	query := `
		SELECT player_id, season, game_type, team_id, games, totals, averages
		FROM player_totals
		WHERE player_id = $1
			AND ($2 = '' OR season = $2)
			AND ($3 = '' OR game_type = $3)
		ORDER BY season, game_type, team_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, playerID, season, gameType)
	if err != nil {
		return nil, fmt.Errorf("querying player totals: %w", err)
	}
	defer rows.Close()

	var out []store.PlayerAggregate
	for rows.Next() {
		var agg store.PlayerAggregate
		var totalsJSON, avgJSON []byte
		if err := rows.Scan(&agg.PlayerID, &agg.Season, &agg.GameType, &agg.TeamID,
			&agg.Games, &totalsJSON, &avgJSON); err != nil {
			return nil, fmt.Errorf("scanning player totals: %w", err)
		}
		agg.Totals = stats.NewLine()
		agg.Averages = stats.NewLine()
		if err := json.Unmarshal(totalsJSON, &agg.Totals); err != nil {
			return nil, fmt.Errorf("decoding totals: %w", err)
		}
		if err := json.Unmarshal(avgJSON, &agg.Averages); err != nil {
			return nil, fmt.Errorf("decoding averages: %w", err)
		}
		out = append(out, agg)
	}
	return out, rows.Err()
}

// ListLeaderboards returns a team's leaderboards, optionally filtered by
// season, game type and stat.
func (r *DerivedRepository) ListLeaderboards(ctx context.Context, teamID, season, gameType, stat string) ([]store.Leaderboard, error) {
	query := `
		SELECT team_id, season, game_type, stat, rank, player_id, value
		FROM team_leaders
		WHERE team_id = $1
			AND ($2 = '' OR season = $2)
			AND ($3 = '' OR game_type = $3)
			AND ($4 = '' OR stat = $4)
		ORDER BY season, game_type, stat, rank
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID, season, gameType, stat)
	if err != nil {
		return nil, fmt.Errorf("querying leaderboards: %w", err)
	}
	defer rows.Close()

	var boards []store.Leaderboard
	var current *store.Leaderboard
	for rows.Next() {
		var teamID, season, gameType, statName string
		var e store.LeaderEntry
		if err := rows.Scan(&teamID, &season, &gameType, &statName, &e.Rank, &e.PlayerID, &e.Value); err != nil {
			return nil, fmt.Errorf("scanning leaderboard entry: %w", err)
		}
		if current == nil || current.Season != season || current.GameType != gameType || string(current.Stat) != statName {
			boards = append(boards, store.Leaderboard{
				TeamID: teamID, Season: season, GameType: gameType, Stat: stats.Key(statName),
			})
			current = &boards[len(boards)-1]
		}
		current.Entries = append(current.Entries, e)
	}
	return boards, rows.Err()
}

// ListRecords returns a team's single-game record boards, optionally
// filtered by season and stat.
func (r *DerivedRepository) ListRecords(ctx context.Context, teamID, season, stat string) ([]store.RecordBoard, error) {
	query := `
		SELECT team_id, season, game_type, stat, rank, player_id, value, game_id, game_date::text
		FROM team_records
		WHERE team_id = $1
			AND ($2 = '' OR season = $2)
			AND ($3 = '' OR stat = $3)
		ORDER BY season, game_type, stat, rank
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID, season, stat)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var boards []store.RecordBoard
	var current *store.RecordBoard
	for rows.Next() {
		var teamID, season, gameType, statName string
		var e store.RecordEntry
		if err := rows.Scan(&teamID, &season, &gameType, &statName,
			&e.Rank, &e.PlayerID, &e.Value, &e.GameID, &e.Date); err != nil {
			return nil, fmt.Errorf("scanning record entry: %w", err)
		}
		if current == nil || current.Season != season || current.GameType != gameType || string(current.Stat) != statName {
			boards = append(boards, store.RecordBoard{
				TeamID: teamID, Season: season, GameType: gameType, Stat: stats.Key(statName),
			})
			current = &boards[len(boards)-1]
		}
		current.Entries = append(current.Entries, e)
	}
	return boards, rows.Err()
}
