package service

import (
	"context"
	"fmt"

	"github.com/fortuna/statline/internal/store"
	"github.com/fortuna/statline/internal/store/repository"
)

// DerivedService reads the derived artifact tables: player totals,
// leaderboards, and single-game records.
type DerivedService struct {
	derivedRepo *repository.DerivedRepository
	rosterRepo  *repository.RosterRepository
}

// NewDerivedService creates a new derived-artifact service.
func NewDerivedService(db *store.Database) *DerivedService {
	return &DerivedService{
		derivedRepo: repository.NewDerivedRepository(db),
		rosterRepo:  repository.NewRosterRepository(db),
	}
}

// GetPlayerTotals returns a player's stored aggregates, optionally filtered
// by season and game type.
func (s *DerivedService) GetPlayerTotals(ctx context.Context, playerID, season, gameType string) ([]store.PlayerAggregate, error) {
	totals, err := s.derivedRepo.ListPlayerTotals(ctx, playerID, season, gameType)
	if err != nil {
		return nil, fmt.Errorf("fetching player totals: %w", err)
	}
	return totals, nil
}

// GetLeaderboards returns a team's leaderboards, optionally filtered by
// season, game type and stat.
func (s *DerivedService) GetLeaderboards(ctx context.Context, teamID, season, gameType, stat string) ([]store.Leaderboard, error) {
	boards, err := s.derivedRepo.ListLeaderboards(ctx, teamID, season, gameType, stat)
	if err != nil {
		return nil, fmt.Errorf("fetching leaderboards: %w", err)
	}
	return boards, nil
}

// GetRecords returns a team's single-game record boards, optionally
// filtered by season and stat.
func (s *DerivedService) GetRecords(ctx context.Context, teamID, season, stat string) ([]store.RecordBoard, error) {
	boards, err := s.derivedRepo.ListRecords(ctx, teamID, season, stat)
	if err != nil {
		return nil, fmt.Errorf("fetching records: %w", err)
	}
	return boards, nil
}

// GetRoster returns every roster entry.
func (s *DerivedService) GetRoster(ctx context.Context) ([]store.RosterEntry, error) {
	entries, err := s.rosterRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}
	return entries, nil
}
