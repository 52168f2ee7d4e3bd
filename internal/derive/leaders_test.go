package derive

import (
	"testing"

	"github.com/fortuna/statline/internal/stats"
	"github.com/fortuna/statline/internal/store"
)

func avg(playerID string, pts float64) store.PlayerAggregate {
	l := stats.NewLine()
	l[stats.Points] = pts
	return store.PlayerAggregate{
		PlayerID: playerID,
		Season:   "2025",
		GameType: "regular",
		TeamID:   "pg",
		Games:    1,
		Totals:   l.Clone(),
		Averages: l,
	}
}

func rosterFor(teamID string, playerIDs ...string) []store.RosterEntry {
	var out []store.RosterEntry
	for _, id := range playerIDs {
		out = append(out, store.RosterEntry{PlayerID: id, FullName: id, TeamIDs: []string{teamID}})
	}
	return out
}

func findBoard(t *testing.T, boards []store.Leaderboard, stat stats.Key) store.Leaderboard {
	t.Helper()
	for _, b := range boards {
		if b.Stat == stat {
			return b
		}
	}
	t.Fatalf("no board for %s", stat)
	return store.Leaderboard{}
}

func TestLeaderboardStableTieBreak(t *testing.T) {
	aggs := []store.PlayerAggregate{
		avg("a", 10), avg("b", 7), avg("c", 7), avg("d", 3),
	}
	opts := DefaultOptions()
	opts.RankedKeys = []stats.Key{stats.Points}

	boards := BuildLeaderboards(aggs, rosterFor("pg", "a", "b", "c", "d"), opts)
	board := findBoard(t, boards, stats.Points)

	wantOrder := []string{"a", "b", "c", "d"}
	if len(board.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(board.Entries))
	}
	for i, want := range wantOrder {
		if board.Entries[i].PlayerID != want {
			t.Fatalf("rank %d: got %s, want %s (ties must keep first-seen order)",
				i+1, board.Entries[i].PlayerID, want)
		}
		if board.Entries[i].Rank != i+1 {
			t.Fatalf("entry %d has rank %d", i, board.Entries[i].Rank)
		}
	}
}

func TestLeaderboardTruncation(t *testing.T) {
	var aggs []store.PlayerAggregate
	var ids []string
	for i := 0; i < 15; i++ {
		id := string(rune('a' + i))
		aggs = append(aggs, avg(id, float64(100-i)))
		ids = append(ids, id)
	}
	opts := DefaultOptions()
	opts.RankedKeys = []stats.Key{stats.Points}

	boards := BuildLeaderboards(aggs, rosterFor("pg", ids...), opts)
	board := findBoard(t, boards, stats.Points)
	if len(board.Entries) != 10 {
		t.Fatalf("expected top-10 truncation, got %d", len(board.Entries))
	}
	// truncation never reorders the kept prefix
	for i := 0; i < 10; i++ {
		if board.Entries[i].PlayerID != ids[i] {
			t.Fatalf("prefix reordered at %d: %s", i, board.Entries[i].PlayerID)
		}
	}
}

func TestLeaderboardRosterGatesMembership(t *testing.T) {
	aggs := []store.PlayerAggregate{avg("a", 10), avg("stranger", 50)}
	opts := DefaultOptions()
	opts.RankedKeys = []stats.Key{stats.Points}

	boards := BuildLeaderboards(aggs, rosterFor("pg", "a"), opts)
	board := findBoard(t, boards, stats.Points)
	if len(board.Entries) != 1 || board.Entries[0].PlayerID != "a" {
		t.Fatalf("players outside the roster must not rank: %+v", board.Entries)
	}
}

func TestLeaderboardMultiTeamPlayer(t *testing.T) {
	a := avg("a", 12)
	a.TeamID = "" // team not determinable from the aggregate
	roster := []store.RosterEntry{
		{PlayerID: "a", FullName: "a", TeamIDs: []string{"pg", "ringers"}},
	}
	opts := DefaultOptions()
	opts.RankedKeys = []stats.Key{stats.Points}

	boards := BuildLeaderboards([]store.PlayerAggregate{a}, roster, opts)
	teams := map[string]bool{}
	for _, b := range boards {
		if len(b.Entries) > 0 {
			teams[b.TeamID] = true
		}
	}
	if !teams["pg"] || !teams["ringers"] {
		t.Fatalf("player on two teams must appear on both leaderboards, got %v", teams)
	}
}
