// Package derive folds the complete persisted game-record set into season
// totals, per-game averages, team leaderboards and single-game records.
// Every builder here is a pure function of the full input set: derived
// artifacts are recomputed wholesale on each run, never patched, so they
// cannot drift from the underlying games.
package derive

import "github.com/fortuna/statline/internal/stats"

// Options configures ranking. The source stat-tracking iterations disagree
// on which stats rank and whether records split by game type, so both are
// configuration rather than hard-coded.
type Options struct {
	// RankedKeys lists the stats leaderboards and records are built for,
	// in output order.
	RankedKeys []stats.Key
	// LeaderTopN and RecordTopN truncate the ranked lists.
	LeaderTopN int
	RecordTopN int
	// SplitRecordsByGameType groups single-game records per game type
	// instead of across the whole season.
	SplitRecordsByGameType bool
}

// DefaultOptions ranks the uncontested counting stats; plus-minus and
// personal fouls are opt-in.
func DefaultOptions() Options {
	return Options{
		RankedKeys: []stats.Key{
			stats.Points, stats.Reb, stats.Assists,
			stats.Steals, stats.Blocks, stats.FG3M,
		},
		LeaderTopN: 10,
		RecordTopN: 10,
	}
}

func (o Options) normalized() Options {
	if len(o.RankedKeys) == 0 {
		o.RankedKeys = DefaultOptions().RankedKeys
	}
	if o.LeaderTopN <= 0 {
		o.LeaderTopN = 10
	}
	if o.RecordTopN <= 0 {
		o.RecordTopN = 10
	}
	return o
}
