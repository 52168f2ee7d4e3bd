// Package service holds the read-side business logic behind the REST API.
package service

import (
	"context"
	"fmt"

	"github.com/fortuna/statline/internal/store"
	"github.com/fortuna/statline/internal/store/repository"
)

// GameService handles game-record reads.
type GameService struct {
	gameRepo *repository.GameRepository
}

// NewGameService creates a new game service.
func NewGameService(db *store.Database) *GameService {
	return &GameService{
		gameRepo: repository.NewGameRepository(db),
	}
}

// GetGame retrieves a single game by its deterministic id.
func (s *GameService) GetGame(ctx context.Context, gameID string) (*store.GameRecord, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}
	return game, nil
}

// ListGames returns a team's games, or every game when teamID is empty.
// Season and game type filters are optional.
func (s *GameService) ListGames(ctx context.Context, teamID, season, gameType string) ([]*store.GameRecord, error) {
	if teamID == "" {
		games, err := s.gameRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing games: %w", err)
		}
		return filterGames(games, season, gameType), nil
	}

	games, err := s.gameRepo.ListByTeam(ctx, teamID, season, gameType)
	if err != nil {
		return nil, fmt.Errorf("listing team games: %w", err)
	}
	return games, nil
}

func filterGames(games []*store.GameRecord, season, gameType string) []*store.GameRecord {
	if season == "" && gameType == "" {
		return games
	}
	var out []*store.GameRecord
	for _, g := range games {
		if season != "" && g.Season != season {
			continue
		}
		if gameType != "" && g.GameType != gameType {
			continue
		}
		out = append(out, g)
	}
	return out
}
