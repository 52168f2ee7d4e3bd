// Package easystats normalizes EasyStats HTML boxscore exports into
// per-player, per-game stat records. Export versions vary in column
// vocabulary, cell formatting and table layout; everything here decodes
// leniently and maps onto the fixed schema in internal/stats.
package easystats

import (
	"strings"

	"github.com/fortuna/statline/internal/stats"
)

// Column describes what one mapped header column holds: a single counter
// key, a combined made-attempt pair, or a source-reported percentage that
// is recognized but ignored (percentages are always re-derived).
type Column struct {
	Key       stats.Key
	Made, Att stats.Key
	IgnorePct bool
}

// IsPair reports whether the column carries a combined "M-A" cell.
func (c Column) IsPair() bool { return c.Made != "" }

// headerSynonyms rewrites known label variants onto one spelling before the
// final strip-and-lookup. Order matters: multi-character variants first.
var headerSynonyms = [][2]string{
	{"+/-", "plusminus"},
	{"t/o", "to"},
	{"3-pt", "3p"},
	{"3 pt", "3p"},
	{"3pt", "3p"},
	{"fg3", "3p"},
	{"%", "pct"},
	{"assists", "ast"},
	{"assist", "ast"},
	{"asst", "ast"},
	{"points", "pts"},
	{"turnovers", "to"},
	{"fouls", "pf"},
}

// columnTable is the closed synonym table: normalized label -> column.
// Supporting a new export vocabulary is a row here, not a code change.
var columnTable = map[string]Column{
	// combined made-attempt columns
	"fg":     {Made: stats.FGM, Att: stats.FGA},
	"3p":     {Made: stats.FG3M, Att: stats.FG3A},
	"ft":     {Made: stats.FTM, Att: stats.FTA},
	"fgmfga": {Made: stats.FGM, Att: stats.FGA},
	"3pm3pa": {Made: stats.FG3M, Att: stats.FG3A},
	"ftmfta": {Made: stats.FTM, Att: stats.FTA},

	// split counters
	"fgm": {Key: stats.FGM},
	"fga": {Key: stats.FGA},
	"3pm": {Key: stats.FG3M},
	"3pa": {Key: stats.FG3A},
	"ftm": {Key: stats.FTM},
	"fta": {Key: stats.FTA},

	// source-reported percentages: recognized, never decoded
	"fgpct": {IgnorePct: true},
	"3ppct": {IgnorePct: true},
	"ftpct": {IgnorePct: true},

	"oreb":   {Key: stats.OffReb},
	"offreb": {Key: stats.OffReb},
	"or":     {Key: stats.OffReb},
	"dreb":   {Key: stats.DefReb},
	"defreb": {Key: stats.DefReb},
	"dr":     {Key: stats.DefReb},
	"reb":    {Key: stats.Reb},
	"trb":    {Key: stats.Reb},
	"tot":    {Key: stats.Reb},

	"ast": {Key: stats.Assists},
	"stl": {Key: stats.Steals},
	"blk": {Key: stats.Blocks},
	"to":  {Key: stats.Turnovers},
	"tov": {Key: stats.Turnovers},
	"pf":  {Key: stats.Fouls},

	"plusminus": {Key: stats.PlusMinus},
	"pts":       {Key: stats.Points},
}

// MapHeader maps one raw header cell onto a column. Unmapped labels (player
// name column, minutes, anything unknown) return ok=false and the column is
// simply dropped during extraction; an unknown header is never fatal.
func MapHeader(raw string) (Column, bool) {
	label := strings.ToLower(strings.TrimSpace(raw))
	for _, syn := range headerSynonyms {
		label = strings.ReplaceAll(label, syn[0], syn[1])
	}
	label = stripNonAlnum(label)
	col, ok := columnTable[label]
	return col, ok
}

// MapHeaders maps a full header row; unmapped positions are left zero so
// extraction can index the slice directly.
func MapHeaders(raw []string) []Column {
	cols := make([]Column, len(raw))
	for i, h := range raw {
		if col, ok := MapHeader(h); ok {
			cols[i] = col
		}
	}
	return cols
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
