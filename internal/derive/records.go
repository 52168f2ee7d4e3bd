package derive

import (
	"sort"

	"github.com/fortuna/statline/internal/store"
)

// BuildRecords ranks individual single-game stat values within each
// (team, season) group — one entry per player per game, never aggregated —
// and attaches the originating date and game id. With
// SplitRecordsByGameType set, groups split further per game type.
func BuildRecords(games []*store.GameRecord, opts Options) []store.RecordBoard {
	opts = opts.normalized()

	type groupKey struct {
		teamID   string
		season   string
		gameType string
	}

	grouped := make(map[groupKey][]*store.GameRecord)
	var order []groupKey
	add := func(key groupKey, g *store.GameRecord) {
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], g)
	}

	for _, g := range sortedGames(games) {
		gameType := ""
		if opts.SplitRecordsByGameType {
			gameType = g.GameType
		}
		add(groupKey{g.TeamID, g.Season, gameType}, g)
		if len(g.OpponentPlayers) > 0 && g.OpponentID != "" {
			add(groupKey{g.OpponentID, g.Season, gameType}, g)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.teamID != b.teamID {
			return a.teamID < b.teamID
		}
		if a.season != b.season {
			return a.season < b.season
		}
		return a.gameType < b.gameType
	})

	var boards []store.RecordBoard
	for _, key := range order {
		for _, stat := range opts.RankedKeys {
			board := store.RecordBoard{
				TeamID:   key.teamID,
				Season:   key.season,
				GameType: key.gameType,
				Stat:     stat,
			}
			for _, g := range grouped[key] {
				players := g.Players
				if g.TeamID != key.teamID {
					players = g.OpponentPlayers
				}
				for _, p := range players {
					board.Entries = append(board.Entries, store.RecordEntry{
						PlayerID: p.PlayerID,
						Value:    p.Stats[stat],
						Date:     g.Date,
						GameID:   g.GameID,
					})
				}
			}
			board.Entries = rankRecords(board.Entries, opts.RecordTopN)
			boards = append(boards, board)
		}
	}

	return boards
}

func rankRecords(entries []store.RecordEntry, topN int) []store.RecordEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
