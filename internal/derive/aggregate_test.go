package derive

import (
	"reflect"
	"testing"

	"github.com/fortuna/statline/internal/stats"
	"github.com/fortuna/statline/internal/store"
)

func line(kv map[stats.Key]float64) stats.Line {
	l := stats.NewLine()
	for k, v := range kv {
		l[k] = v
	}
	l.Normalize()
	return l
}

func game(id, date, season, gameType, teamID string, players ...store.PlayerGameRecord) *store.GameRecord {
	return &store.GameRecord{
		GameID:   id,
		Date:     date,
		Season:   season,
		GameType: gameType,
		TeamID:   teamID,
		Players:  players,
	}
}

func TestBuildPlayerTotalsAverages(t *testing.T) {
	games := []*store.GameRecord{
		game("game-2025-01-04-pg", "2025-01-04", "2025", "regular", "pg",
			store.PlayerGameRecord{PlayerID: "jamal-todd", Stats: line(map[stats.Key]float64{stats.Points: 10})}),
		game("game-2025-01-11-pg", "2025-01-11", "2025", "regular", "pg",
			store.PlayerGameRecord{PlayerID: "jamal-todd", Stats: line(map[stats.Key]float64{stats.Points: 20})}),
	}

	aggs := BuildPlayerTotals(games)
	if len(aggs) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(aggs))
	}

	agg := aggs[0]
	if agg.Games != 2 {
		t.Fatalf("expected 2 games, got %d", agg.Games)
	}
	if agg.Totals[stats.Points] != 30 {
		t.Fatalf("expected pts total 30, got %v", agg.Totals[stats.Points])
	}
	if agg.Averages[stats.Points] != 15 {
		t.Fatalf("expected pts average 15, got %v", agg.Averages[stats.Points])
	}
}

func TestBuildPlayerTotalsGroupsBySeasonAndType(t *testing.T) {
	games := []*store.GameRecord{
		game("game-2025-01-04-pg", "2025-01-04", "2025", "regular", "pg",
			store.PlayerGameRecord{PlayerID: "jamal-todd", Stats: line(map[stats.Key]float64{stats.Points: 10})}),
		game("game-2025-04-12-pg", "2025-04-12", "2025", "playoff", "pg",
			store.PlayerGameRecord{PlayerID: "jamal-todd", Stats: line(map[stats.Key]float64{stats.Points: 30})}),
		game("game-2024-11-02-pg", "2024-11-02", "2024", "regular", "pg",
			store.PlayerGameRecord{PlayerID: "jamal-todd", Stats: line(map[stats.Key]float64{stats.Points: 8})}),
	}

	aggs := BuildPlayerTotals(games)
	if len(aggs) != 3 {
		t.Fatalf("expected 3 aggregates (per season/type), got %d", len(aggs))
	}
	for _, agg := range aggs {
		if agg.Games != 1 {
			t.Fatalf("each group has 1 game, got %d for %+v", agg.Games, agg)
		}
	}
}

func TestBuildPlayerTotalsIncludesOpponentSide(t *testing.T) {
	g := game("game-2025-01-04-pg", "2025-01-04", "2025", "regular", "pg",
		store.PlayerGameRecord{PlayerID: "jamal-todd", Stats: line(map[stats.Key]float64{stats.Points: 10})})
	g.OpponentID = "ringers"
	g.OpponentPlayers = []store.PlayerGameRecord{
		{PlayerID: "12-k-ward", Stats: line(map[stats.Key]float64{stats.Points: 21})},
	}

	aggs := BuildPlayerTotals([]*store.GameRecord{g})
	if len(aggs) != 2 {
		t.Fatalf("expected aggregates for both sides, got %d", len(aggs))
	}

	byPlayer := map[string]store.PlayerAggregate{}
	for _, a := range aggs {
		byPlayer[a.PlayerID] = a
	}
	if byPlayer["12-k-ward"].TeamID != "ringers" {
		t.Fatalf("opponent players aggregate under the opponent team, got %+v", byPlayer["12-k-ward"])
	}
}

func TestBuildPlayerTotalsDeterministic(t *testing.T) {
	games := []*store.GameRecord{
		game("game-2025-01-11-pg", "2025-01-11", "2025", "regular", "pg",
			store.PlayerGameRecord{PlayerID: "b", Stats: line(map[stats.Key]float64{stats.Points: 5})},
			store.PlayerGameRecord{PlayerID: "a", Stats: line(map[stats.Key]float64{stats.Points: 7})}),
		game("game-2025-01-04-pg", "2025-01-04", "2025", "regular", "pg",
			store.PlayerGameRecord{PlayerID: "a", Stats: line(map[stats.Key]float64{stats.Points: 3})}),
	}

	first := BuildPlayerTotals(games)
	for i := 0; i < 10; i++ {
		if got := BuildPlayerTotals(games); !reflect.DeepEqual(first, got) {
			t.Fatal("aggregation over a fixed set must reproduce identical output")
		}
	}
}

func TestBuildPlayerTotalsEmptySet(t *testing.T) {
	if aggs := BuildPlayerTotals(nil); len(aggs) != 0 {
		t.Fatalf("empty input yields empty output, got %d", len(aggs))
	}
}
