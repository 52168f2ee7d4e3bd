package easystats

import (
	"strings"

	"github.com/fortuna/statline/internal/roster"
	"github.com/fortuna/statline/internal/stats"
	"github.com/fortuna/statline/internal/store"
)

// ExtractRows walks one boxscore table and produces the retained player
// records. The first cell of each row is the player label; remaining cells
// decode according to their header-mapped column. Iteration is bounds
// checked on both sides so header/data misalignment shortens a row instead
// of failing it. Rows whose label is a team-totals line are skipped, and
// all-zero (DNP) rows are dropped after normalization.
func ExtractRows(tbl Table, resolver *roster.Resolver) []store.PlayerGameRecord {
	cols := MapHeaders(tbl.Headers())

	var out []store.PlayerGameRecord
	for _, row := range tbl.Rows() {
		if len(row) == 0 {
			continue
		}

		label := row[0]
		if strings.Contains(strings.ToLower(label), "total") {
			continue
		}

		line := stats.Line{}
		for i := 1; i < len(row) && i < len(cols); i++ {
			decodeCell(line, cols[i], row[i])
		}
		line.Normalize()

		if line.AllZero() {
			continue
		}

		id := resolver.Resolve(label)
		out = append(out, store.PlayerGameRecord{
			PlayerID: id.ID,
			Name:     id.Name,
			Jersey:   id.Jersey,
			Rostered: id.Rostered,
			Stats:    line,
		})
	}
	return out
}

func decodeCell(line stats.Line, col Column, raw string) {
	switch {
	case col.IgnorePct:
		// source percentages are re-derived, never trusted
	case col.IsPair():
		made, att := DecodeMadeAttempt(raw)
		line[col.Made] = float64(made)
		line[col.Att] = float64(att)
	case col.Key != "":
		if _, exists := line[col.Key]; exists && isEmptyCell(raw) {
			// a combined "M-A" cell already populated this key; an empty
			// sibling column must not zero it back out
			return
		}
		v := DecodeNumber(raw)
		// split made-attempt columns occasionally still carry "M-A" text
		if v == 0 && strings.Contains(raw, "-") && !strings.HasPrefix(strings.TrimSpace(raw), "-") {
			if pair, ok := pairForKey(col.Key); ok {
				made, att := DecodeMadeAttempt(raw)
				line[pair[0]] = float64(made)
				line[pair[1]] = float64(att)
				return
			}
		}
		if stats.IsCounter(col.Key) {
			v = stats.Trunc(v)
		}
		line[col.Key] = v
	}
}

// pairForKey maps a split made/attempt key back to its pair, covering
// exports that label a combined column "FGM" or "FGA".
func pairForKey(k stats.Key) ([2]stats.Key, bool) {
	switch k {
	case stats.FGM, stats.FGA:
		return [2]stats.Key{stats.FGM, stats.FGA}, true
	case stats.FG3M, stats.FG3A:
		return [2]stats.Key{stats.FG3M, stats.FG3A}, true
	case stats.FTM, stats.FTA:
		return [2]stats.Key{stats.FTM, stats.FTA}, true
	}
	return [2]stats.Key{}, false
}
