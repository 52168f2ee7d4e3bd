package easystats

import (
	"fmt"
	"time"

	"github.com/fortuna/statline/internal/stats"
	"github.com/fortuna/statline/internal/store"
)

// GameMeta is the externally supplied metadata for one export. The HTML
// carries none of it; missing or invalid metadata is fatal because no
// amount of lenient decoding produces a meaningful game record without it.
type GameMeta struct {
	Date          time.Time
	Season        string
	GameType      string
	TeamID        string
	TeamName      string
	Opponent      string
	TeamScore     int
	OpponentScore int
}

func (m GameMeta) validate() error {
	if m.Date.IsZero() {
		return fmt.Errorf("game date is required")
	}
	if m.Season == "" {
		return fmt.Errorf("season is required")
	}
	if !store.ValidGameType(m.GameType) {
		return fmt.Errorf("invalid game type %q (want regular, playoff or preseason)", m.GameType)
	}
	if store.Slug(m.TeamID) == "" {
		return fmt.Errorf("team id is required")
	}
	return nil
}

// GameID derives the deterministic id for this game: re-ingesting the same
// export with the same date and team resolves to the same id, so the store
// updates in place instead of duplicating.
func (m GameMeta) GameID() string {
	return fmt.Sprintf("game-%s-%s", m.Date.Format("2006-01-02"), store.Slug(m.TeamID))
}

// AssembleGame combines one or two extracted sides with the supplied
// metadata into a single immutable GameRecord, computing per-side totals.
// opponents may be nil for single-sided exports. The output is a pure
// function of its inputs: identical inputs produce a byte-identical record.
func AssembleGame(meta GameMeta, players, opponents []store.PlayerGameRecord) (*store.GameRecord, error) {
	if err := meta.validate(); err != nil {
		return nil, err
	}

	rec := &store.GameRecord{
		GameID:        meta.GameID(),
		Date:          meta.Date.Format("2006-01-02"),
		Season:        meta.Season,
		GameType:      meta.GameType,
		TeamID:        store.Slug(meta.TeamID),
		TeamName:      meta.TeamName,
		Opponent:      meta.Opponent,
		OpponentID:    store.Slug(meta.Opponent),
		TeamScore:     meta.TeamScore,
		OpponentScore: meta.OpponentScore,
		Players:       players,
		TeamTotals:    sumStats(players),
	}

	if len(opponents) > 0 {
		rec.OpponentPlayers = opponents
		rec.OpponentTotals = sumStats(opponents)
	}

	return rec, nil
}

func sumStats(players []store.PlayerGameRecord) stats.Line {
	totals := stats.NewLine()
	for _, p := range players {
		totals.Add(p.Stats)
	}
	// summed percentages are meaningless; re-derive from the summed pairs
	totals.Normalize()
	return totals
}
