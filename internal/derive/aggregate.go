package derive

import (
	"sort"

	"github.com/fortuna/statline/internal/stats"
	"github.com/fortuna/statline/internal/store"
)

type aggregateKey struct {
	playerID string
	season   string
	gameType string
	teamID   string
}

// BuildPlayerTotals folds the full game-record set into per-player season
// totals and per-game averages, grouped by (player, season, game type,
// team). Both sides of a two-sided game contribute, each under its own
// team id. Games played counts the records a player appears in; zero games
// yields zero averages, never a division error. Output order is
// deterministic so repeated runs over the same set are identical.
func BuildPlayerTotals(games []*store.GameRecord) []store.PlayerAggregate {
	groups := make(map[aggregateKey]*store.PlayerAggregate)

	for _, g := range sortedGames(games) {
		accumulateSide(groups, g, g.TeamID, g.Players)
		accumulateSide(groups, g, g.OpponentID, g.OpponentPlayers)
	}

	out := make([]store.PlayerAggregate, 0, len(groups))
	for _, agg := range groups {
		agg.Averages = agg.Totals.Div(agg.Games)
		out = append(out, *agg)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.GameType != b.GameType {
			return a.GameType < b.GameType
		}
		if a.TeamID != b.TeamID {
			return a.TeamID < b.TeamID
		}
		return a.PlayerID < b.PlayerID
	})
	return out
}

func accumulateSide(groups map[aggregateKey]*store.PlayerAggregate, g *store.GameRecord, teamID string, players []store.PlayerGameRecord) {
	for _, p := range players {
		key := aggregateKey{
			playerID: p.PlayerID,
			season:   g.Season,
			gameType: g.GameType,
			teamID:   teamID,
		}
		agg, ok := groups[key]
		if !ok {
			agg = &store.PlayerAggregate{
				PlayerID: p.PlayerID,
				Season:   g.Season,
				GameType: g.GameType,
				TeamID:   teamID,
				Totals:   stats.NewLine(),
			}
			groups[key] = agg
		}
		agg.Games++
		agg.Totals.Add(p.Stats)
	}
}

// sortedGames orders games by date then id without mutating the input, so
// the fold walks records in a stable order regardless of store iteration.
func sortedGames(games []*store.GameRecord) []*store.GameRecord {
	out := make([]*store.GameRecord, len(games))
	copy(out, games)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].GameID < out[j].GameID
	})
	return out
}
