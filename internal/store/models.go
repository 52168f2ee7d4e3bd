package store

import (
	"time"

	"github.com/fortuna/statline/internal/stats"
)

// Game types form a closed set; anything else is rejected at assembly time.
const (
	GameTypeRegular   = "regular"
	GameTypePlayoff   = "playoff"
	GameTypePreseason = "preseason"
)

// ValidGameType reports whether t is one of the supported game types.
func ValidGameType(t string) bool {
	switch t {
	case GameTypeRegular, GameTypePlayoff, GameTypePreseason:
		return true
	}
	return false
}

// PlayerGameRecord is one player's line in one game. Rostered distinguishes
// identities resolved against the roster from synthesized fallback ids; the
// two id spaces must never be conflated.
type PlayerGameRecord struct {
	PlayerID string     `json:"player_id"`
	Name     string     `json:"name"`
	Jersey   string     `json:"number,omitempty"`
	Rostered bool       `json:"rostered"`
	Stats    stats.Line `json:"stats"`
}

// GameRecord is one ingested boxscore. It is immutable once persisted;
// re-ingesting the same export produces the same GameID and overwrites the
// row wholesale.
type GameRecord struct {
	GameID        string             `json:"game_id" db:"game_id"`
	Date          string             `json:"date" db:"game_date"` // YYYY-MM-DD
	Season        string             `json:"season" db:"season"`
	GameType      string             `json:"type" db:"game_type"`
	TeamID        string             `json:"team_id" db:"team_id"`
	TeamName      string             `json:"team_name" db:"team_name"`
	OpponentID    string             `json:"opponent_id" db:"opponent_id"`
	Opponent      string             `json:"opponent" db:"opponent"`
	TeamScore     int                `json:"team_score" db:"team_score"`
	OpponentScore int                `json:"opponent_score" db:"opponent_score"`
	Players       []PlayerGameRecord `json:"players"`
	// OpponentPlayers is populated only for two-sided exports.
	OpponentPlayers []PlayerGameRecord `json:"opponent_players,omitempty"`
	TeamTotals      stats.Line         `json:"team_totals"`
	OpponentTotals  stats.Line         `json:"opponent_totals,omitempty"`
}

// RosterEntry is a known player. TeamIDs lists every team the player
// belongs to; a player on several teams ranks independently on each.
type RosterEntry struct {
	PlayerID string    `json:"player_id" db:"player_id"`
	FullName string    `json:"full_name" db:"full_name"`
	TeamIDs  []string  `json:"team_ids" db:"team_ids"`
	AddedAt  time.Time `json:"added_at,omitempty" db:"added_at"`
}

// PlayerAggregate is one player's season totals and per-game averages for a
// (season, game type, team) group. It is recomputed in full from the game
// records on every rebuild, never patched incrementally.
type PlayerAggregate struct {
	PlayerID string     `json:"player_id"`
	Season   string     `json:"season"`
	GameType string     `json:"type"`
	TeamID   string     `json:"team_id,omitempty"`
	Games    int        `json:"games"`
	Totals   stats.Line `json:"totals"`
	Averages stats.Line `json:"averages"`
}

// LeaderEntry is one ranked row in a per-stat leaderboard.
type LeaderEntry struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"player_id"`
	Value    float64 `json:"value"`
}

// Leaderboard ranks per-game averages for one stat within a
// (team, season, game type) group, descending, ties in first-seen order.
type Leaderboard struct {
	TeamID   string        `json:"team_id"`
	Season   string        `json:"season"`
	GameType string        `json:"type"`
	Stat     stats.Key     `json:"stat"`
	Entries  []LeaderEntry `json:"entries"`
}

// RecordEntry is one ranked single-game performance.
type RecordEntry struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"player_id"`
	Value    float64 `json:"value"`
	Date     string  `json:"date"`
	GameID   string  `json:"game_id"`
}

// RecordBoard ranks individual single-game values for one stat within a
// (team, season[, game type]) group.
type RecordBoard struct {
	TeamID   string        `json:"team_id"`
	Season   string        `json:"season"`
	GameType string        `json:"type,omitempty"`
	Stat     stats.Key     `json:"stat"`
	Entries  []RecordEntry `json:"entries"`
}

// DerivedArtifacts is the complete derived output of one rebuild. It
// replaces the previous set wholesale when published.
type DerivedArtifacts struct {
	GeneratedAt  time.Time         `json:"generated_at"`
	PlayerTotals []PlayerAggregate `json:"player_totals"`
	Leaderboards []Leaderboard     `json:"leaderboards"`
	Records      []RecordBoard     `json:"records"`
}
