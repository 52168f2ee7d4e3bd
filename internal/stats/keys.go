// Package stats defines the canonical statistic schema every export variant
// is normalized into, plus the invariants recomputed on every stat line.
package stats

// Key identifies one canonical statistic.
type Key string

const (
	FGM       Key = "fgm"
	FGA       Key = "fga"
	FGPct     Key = "fg_pct"
	FG3M      Key = "fg3m"
	FG3A      Key = "fg3a"
	FG3Pct    Key = "fg3_pct"
	FTM       Key = "ftm"
	FTA       Key = "fta"
	FTPct     Key = "ft_pct"
	OffReb    Key = "oreb"
	DefReb    Key = "dreb"
	Reb       Key = "reb"
	Assists   Key = "ast"
	Steals    Key = "stl"
	Blocks    Key = "blk"
	Turnovers Key = "turnovers"
	Fouls     Key = "pf"
	PlusMinus Key = "plusminus"
	Points    Key = "pts"
)

// All lists every key in canonical order. Aggregation and ranking iterate
// this slice rather than a map so output order is deterministic.
var All = []Key{
	FGM, FGA, FGPct,
	FG3M, FG3A, FG3Pct,
	FTM, FTA, FTPct,
	OffReb, DefReb, Reb,
	Assists, Steals, Blocks, Turnovers, Fouls,
	PlusMinus, Points,
}

// percentPairs maps each derived percentage to its made/attempt pair.
var percentPairs = map[Key][2]Key{
	FGPct:  {FGM, FGA},
	FG3Pct: {FG3M, FG3A},
	FTPct:  {FTM, FTA},
}

// IsPercent reports whether k is a derived percentage field. Percentage
// columns reported by the source are never trusted; they are always
// recomputed from the made/attempt pair.
func IsPercent(k Key) bool {
	_, ok := percentPairs[k]
	return ok
}

// IsCounter reports whether k holds a whole-number counting stat.
// Counter cells that decode to fractional values are truncated.
func IsCounter(k Key) bool {
	return !IsPercent(k)
}
