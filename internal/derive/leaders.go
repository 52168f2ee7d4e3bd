package derive

import (
	"sort"

	"github.com/fortuna/statline/internal/store"
)

// BuildLeaderboards ranks per-game averages within each (team, season,
// game type) group for every ranked stat. Team membership comes from the
// roster: only players whose entry claims the team appear, and a player on
// several teams ranks independently on each. Sorting is descending by value
// with a stable tie-break, so equal values keep first-encountered order.
func BuildLeaderboards(aggregates []store.PlayerAggregate, roster []store.RosterEntry, opts Options) []store.Leaderboard {
	opts = opts.normalized()

	membership := make(map[string]map[string]bool) // teamID -> playerID set
	var teamOrder []string
	for _, entry := range roster {
		for _, teamID := range entry.TeamIDs {
			if membership[teamID] == nil {
				membership[teamID] = make(map[string]bool)
				teamOrder = append(teamOrder, teamID)
			}
			membership[teamID][entry.PlayerID] = true
		}
	}
	sort.Strings(teamOrder)

	type groupKey struct {
		season   string
		gameType string
	}
	var boards []store.Leaderboard

	for _, teamID := range teamOrder {
		members := membership[teamID]

		// group this team's aggregates by (season, game type), preserving
		// the deterministic aggregate order within each group
		grouped := make(map[groupKey][]store.PlayerAggregate)
		var order []groupKey
		for _, agg := range aggregates {
			if !members[agg.PlayerID] {
				continue
			}
			if agg.TeamID != "" && agg.TeamID != teamID {
				continue
			}
			key := groupKey{agg.Season, agg.GameType}
			if _, ok := grouped[key]; !ok {
				order = append(order, key)
			}
			grouped[key] = append(grouped[key], agg)
		}

		for _, key := range order {
			for _, stat := range opts.RankedKeys {
				board := store.Leaderboard{
					TeamID:   teamID,
					Season:   key.season,
					GameType: key.gameType,
					Stat:     stat,
				}
				for _, agg := range grouped[key] {
					board.Entries = append(board.Entries, store.LeaderEntry{
						PlayerID: agg.PlayerID,
						Value:    agg.Averages[stat],
					})
				}
				board.Entries = rankLeaders(board.Entries, opts.LeaderTopN)
				boards = append(boards, board)
			}
		}
	}

	return boards
}

// rankLeaders sorts descending with stable tie-break, truncates to topN and
// assigns 1-based ranks.
func rankLeaders(entries []store.LeaderEntry, topN int) []store.LeaderEntry {
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
