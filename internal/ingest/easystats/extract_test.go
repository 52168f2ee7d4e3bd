package easystats

import (
	"math"
	"testing"

	"github.com/fortuna/statline/internal/roster"
	"github.com/fortuna/statline/internal/stats"
	"github.com/fortuna/statline/internal/store"
)

func boxscoreTable() *CellTable {
	return &CellTable{
		Head: []string{"Player", "FG", "3PT", "FT", "OREB", "DREB", "AST", "STL", "BLK", "TO", "PTS"},
		Body: [][]string{
			{"#23 J. Smith", "5-10", "2-5", "3-4", "2", "4", "3", "1", "0", "2", "15"},
		},
	}
}

func TestExtractRowsFullLine(t *testing.T) {
	players := ExtractRows(boxscoreTable(), roster.NewResolver(nil))
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}

	p := players[0]
	if p.PlayerID != "23-j-smith" || p.Jersey != "23" || p.Name != "J. Smith" {
		t.Fatalf("unexpected identity: %+v", p)
	}

	want := map[stats.Key]float64{
		stats.FGM: 5, stats.FGA: 10,
		stats.FG3M: 2, stats.FG3A: 5,
		stats.FTM: 3, stats.FTA: 4,
		stats.OffReb: 2, stats.DefReb: 4, stats.Reb: 6,
		stats.Assists: 3, stats.Steals: 1, stats.Blocks: 0,
		stats.Turnovers: 2, stats.Points: 15,
		stats.FGPct: 50, stats.FG3Pct: 40, stats.FTPct: 75,
	}
	for k, v := range want {
		if math.Abs(p.Stats[k]-v) > 1e-9 {
			t.Errorf("stat %s = %v, want %v", k, p.Stats[k], v)
		}
	}
}

func TestExtractRowsDropsDNP(t *testing.T) {
	tbl := boxscoreTable()
	tbl.Body = append(tbl.Body,
		[]string{"#8 B. Jones", "0-0", "0-0", "0-0", "0", "0", "0", "0", "0", "0", "0"})

	players := ExtractRows(tbl, roster.NewResolver(nil))
	if len(players) != 1 {
		t.Fatalf("DNP row must be dropped, got %d players", len(players))
	}
}

func TestExtractRowsKeepsSingleNonzeroStat(t *testing.T) {
	tbl := boxscoreTable()
	tbl.Body = [][]string{
		{"#8 B. Jones", "0-0", "0-0", "0-0", "0", "0", "0", "1", "0", "0", "0"},
	}

	players := ExtractRows(tbl, roster.NewResolver(nil))
	if len(players) != 1 {
		t.Fatalf("row with one nonzero stat must be retained, got %d", len(players))
	}
	if players[0].Stats[stats.Steals] != 1 {
		t.Fatalf("expected stl=1, got %v", players[0].Stats[stats.Steals])
	}
}

func TestExtractRowsSkipsTotalsRow(t *testing.T) {
	tbl := boxscoreTable()
	tbl.Body = append(tbl.Body,
		[]string{"Totals", "30-60", "8-20", "10-12", "10", "20", "15", "5", "3", "9", "78"})

	players := ExtractRows(tbl, roster.NewResolver(nil))
	if len(players) != 1 {
		t.Fatalf("totals row must be skipped, got %d players", len(players))
	}
}

func TestExtractRowsToleratesShortRow(t *testing.T) {
	tbl := boxscoreTable()
	tbl.Body = [][]string{
		{"#9 A. Brown", "4-8", "1-2"},
	}

	players := ExtractRows(tbl, roster.NewResolver(nil))
	if len(players) != 1 {
		t.Fatalf("short row must yield a partial record, got %d", len(players))
	}
	p := players[0]
	if p.Stats[stats.FGM] != 4 || p.Stats[stats.FG3A] != 2 {
		t.Fatalf("unexpected partial stats: %v", p.Stats)
	}
	if p.Stats[stats.Points] != 0 {
		t.Fatalf("missing columns must default to zero, got pts=%v", p.Stats[stats.Points])
	}
}

func TestExtractRowsToleratesExtraCells(t *testing.T) {
	tbl := boxscoreTable()
	tbl.Body = [][]string{
		{"#9 A. Brown", "4-8", "1-2", "0-0", "1", "2", "0", "0", "0", "1", "9", "stray", "cells"},
	}

	players := ExtractRows(tbl, roster.NewResolver(nil))
	if len(players) != 1 {
		t.Fatalf("extra data cells must be ignored, got %d players", len(players))
	}
	if players[0].Stats[stats.Points] != 9 {
		t.Fatalf("expected pts=9, got %v", players[0].Stats[stats.Points])
	}
}

func TestExtractRowsSplitMadeAttemptColumns(t *testing.T) {
	// Some export versions put FGM/FGA in separate columns; others write the
	// combined text into the made column.
	tbl := &CellTable{
		Head: []string{"Player", "FGM", "FGA", "PTS"},
		Body: [][]string{
			{"#5 C. Diaz", "6", "11", "14"},
			{"#6 D. Evans", "3-7", "", "8"},
		},
	}

	players := ExtractRows(tbl, roster.NewResolver(nil))
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].Stats[stats.FGM] != 6 || players[0].Stats[stats.FGA] != 11 {
		t.Fatalf("split columns: %v", players[0].Stats)
	}
	if players[1].Stats[stats.FGM] != 3 || players[1].Stats[stats.FGA] != 7 {
		t.Fatalf("combined text in split column: %v", players[1].Stats)
	}
}

func TestExtractRowsResolvesAgainstRoster(t *testing.T) {
	res := roster.NewResolver([]store.RosterEntry{
		{PlayerID: "jamal-todd", FullName: "Jamal Todd", TeamIDs: []string{"pretty-good"}},
	})
	tbl := &CellTable{
		Head: []string{"Player", "PTS"},
		Body: [][]string{{"#4 J. Todd", "12"}},
	}

	players := ExtractRows(tbl, res)
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}
	if !players[0].Rostered || players[0].PlayerID != "jamal-todd" {
		t.Fatalf("expected roster resolution, got %+v", players[0])
	}
}
