package derive

import (
	"time"

	"github.com/fortuna/statline/internal/store"
)

// Build runs the full derived rebuild over the complete game-record set:
// player totals, then leaderboards over those totals, then single-game
// records straight from the games.
func Build(games []*store.GameRecord, roster []store.RosterEntry, opts Options, now time.Time) *store.DerivedArtifacts {
	totals := BuildPlayerTotals(games)
	return &store.DerivedArtifacts{
		GeneratedAt:  now.UTC(),
		PlayerTotals: totals,
		Leaderboards: BuildLeaderboards(totals, roster, opts),
		Records:      BuildRecords(games, opts),
	}
}
