package stats

import "math"

// Line maps every canonical key to its value for one player in one game.
// Values are non-negative except plus-minus; percentages run 0-100.
type Line map[Key]float64

// NewLine returns a line with every key present at zero.
func NewLine() Line {
	l := make(Line, len(All))
	for _, k := range All {
		l[k] = 0
	}
	return l
}

// Clone returns an independent copy of l.
func (l Line) Clone() Line {
	out := make(Line, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Add accumulates other into l elementwise.
func (l Line) Add(other Line) {
	for _, k := range All {
		l[k] += other[k]
	}
}

// AllZero reports whether every stat value is exactly zero. A row that is
// all zeros is a DNP entry and is dropped from extraction output.
func (l Line) AllZero() bool {
	for _, v := range l {
		if v != 0 {
			return false
		}
	}
	return true
}

// Normalize fills absent keys with zero and enforces the schema invariants:
// total rebounds are recomputed from OREB+DREB, and each percentage is
// recomputed from its made/attempt pair (zero attempts yields zero, never a
// division error). Source-reported values for these fields are discarded.
func (l Line) Normalize() {
	for _, k := range All {
		if _, ok := l[k]; !ok {
			l[k] = 0
		}
	}

	l[Reb] = l[OffReb] + l[DefReb]

	for pct, pair := range percentPairs {
		made, att := l[pair[0]], l[pair[1]]
		if att == 0 {
			l[pct] = 0
			continue
		}
		l[pct] = 100 * made / att
	}
}

// Div returns l divided elementwise by n. n <= 0 yields an all-zero line.
func (l Line) Div(n int) Line {
	out := NewLine()
	if n <= 0 {
		return out
	}
	for _, k := range All {
		out[k] = l[k] / float64(n)
	}
	return out
}

// Trunc drops the fractional part of v; counting stats are whole numbers
// even when an export reports them as floats.
func Trunc(v float64) float64 {
	return math.Trunc(v)
}
