package easystats

import (
	"regexp"
	"strconv"
	"strings"
)

// Exports render no-attempt cells as an empty string, a dash or an em-dash.
// Every decoder here returns a defined default instead of an error: the
// tables are exported, not hand-authored, and partial data beats a hard
// stop.

var madeAttemptPattern = regexp.MustCompile(`^\s*(\d+)\s*-\s*(\d+)\s*$`)

// DecodeMadeAttempt splits a combined "M-A" cell like "10-16" into its two
// counts. Empty, dash and malformed cells all decode to (0, 0).
func DecodeMadeAttempt(raw string) (made, attempted int) {
	if isEmptyCell(raw) {
		return 0, 0
	}
	m := madeAttemptPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0
	}
	made, _ = strconv.Atoi(m[1])
	attempted, _ = strconv.Atoi(m[2])
	return made, attempted
}

// DecodeNumber parses a plain numeric cell as a float. Percent signs and a
// leading "+" (plus-minus) are tolerated; anything unparseable is zero.
func DecodeNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "%", "")
	s = strings.TrimPrefix(s, "+")
	if isEmptyCell(s) {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func isEmptyCell(raw string) bool {
	switch strings.TrimSpace(raw) {
	case "", "-", "–", "—":
		return true
	}
	return false
}
