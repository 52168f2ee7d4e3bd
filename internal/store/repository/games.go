// Package repository provides data access over the statline database.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fortuna/statline/internal/stats"
	"github.com/fortuna/statline/internal/store"
)

// GameRepository handles game-record access. A record's player lists and
// totals are stored as JSONB documents: the per-game record is read and
// written wholesale, never queried per stat column.
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `game_id, game_date::text, season, game_type, team_id, team_name,
		opponent_id, opponent, team_score, opponent_score,
		players, opponent_players, team_totals, opponent_totals`

// GetByID finds a game by its deterministic id.
func (r *GameRepository) GetByID(ctx context.Context, gameID string) (*store.GameRecord, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1`

	game, err := scanGame(r.db.DB().QueryRowContext(ctx, query, gameID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}
	return game, nil
}

// ListAll returns every stored game in date order. Aggregation reads the
// complete set on every run; this is the full-rebuild read path.
func (r *GameRepository) ListAll(ctx context.Context) ([]*store.GameRecord, error) {
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY game_date, game_id`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// ListByTeam returns a team's games, optionally filtered by season and
// game type (empty strings match everything).
func (r *GameRepository) ListByTeam(ctx context.Context, teamID, season, gameType string) ([]*store.GameRecord, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE (team_id = $1 OR opponent_id = $1)
			AND ($2 = '' OR season = $2)
			AND ($3 = '' OR game_type = $3)
		ORDER BY game_date, game_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID, season, gameType)
	if err != nil {
		return nil, fmt.Errorf("querying team games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// Upsert inserts or overwrites a game by id. Re-ingesting a corrected
// export for the same date and team replaces the old record in place.
func (r *GameRepository) Upsert(ctx context.Context, game *store.GameRecord) error {
	players, err := json.Marshal(game.Players)
	if err != nil {
		return fmt.Errorf("encoding players: %w", err)
	}
	teamTotals, err := json.Marshal(game.TeamTotals)
	if err != nil {
		return fmt.Errorf("encoding team totals: %w", err)
	}

	var oppPlayers, oppTotals []byte
	if game.OpponentPlayers != nil {
		if oppPlayers, err = json.Marshal(game.OpponentPlayers); err != nil {
			return fmt.Errorf("encoding opponent players: %w", err)
		}
		if oppTotals, err = json.Marshal(game.OpponentTotals); err != nil {
			return fmt.Errorf("encoding opponent totals: %w", err)
		}
	}

	query := `
		INSERT INTO games (game_id, game_date, season, game_type, team_id, team_name,
			opponent_id, opponent, team_score, opponent_score,
			players, opponent_players, team_totals, opponent_totals)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (game_id) DO UPDATE SET
			game_date = EXCLUDED.game_date,
			season = EXCLUDED.season,
			game_type = EXCLUDED.game_type,
			team_id = EXCLUDED.team_id,
			team_name = EXCLUDED.team_name,
			opponent_id = EXCLUDED.opponent_id,
			opponent = EXCLUDED.opponent,
			team_score = EXCLUDED.team_score,
			opponent_score = EXCLUDED.opponent_score,
			players = EXCLUDED.players,
			opponent_players = EXCLUDED.opponent_players,
			team_totals = EXCLUDED.team_totals,
			opponent_totals = EXCLUDED.opponent_totals,
			updated_at = NOW()
	`

	_, err = r.db.DB().ExecContext(ctx, query,
		game.GameID, game.Date, game.Season, game.GameType, game.TeamID, game.TeamName,
		game.OpponentID, game.Opponent, game.TeamScore, game.OpponentScore,
		players, nullableJSON(oppPlayers), teamTotals, nullableJSON(oppTotals),
	)
	if err != nil {
		return fmt.Errorf("upserting game: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGame(row rowScanner) (*store.GameRecord, error) {
	game := &store.GameRecord{}
	var players, teamTotals []byte
	var oppPlayers, oppTotals []byte

	err := row.Scan(
		&game.GameID, &game.Date, &game.Season, &game.GameType, &game.TeamID, &game.TeamName,
		&game.OpponentID, &game.Opponent, &game.TeamScore, &game.OpponentScore,
		&players, &oppPlayers, &teamTotals, &oppTotals,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(players, &game.Players); err != nil {
		return nil, fmt.Errorf("decoding players for %s: %w", game.GameID, err)
	}
	game.TeamTotals = stats.NewLine()
	if err := json.Unmarshal(teamTotals, &game.TeamTotals); err != nil {
		return nil, fmt.Errorf("decoding team totals for %s: %w", game.GameID, err)
	}
	if len(oppPlayers) > 0 {
		if err := json.Unmarshal(oppPlayers, &game.OpponentPlayers); err != nil {
			return nil, fmt.Errorf("decoding opponent players for %s: %w", game.GameID, err)
		}
	}
	if len(oppTotals) > 0 {
		game.OpponentTotals = stats.NewLine()
		if err := json.Unmarshal(oppTotals, &game.OpponentTotals); err != nil {
			return nil, fmt.Errorf("decoding opponent totals for %s: %w", game.GameID, err)
		}
	}

	return game, nil
}

func scanGames(rows *sql.Rows) ([]*store.GameRecord, error) {
	var games []*store.GameRecord
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// nullableJSON maps an absent document to SQL NULL.
func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
