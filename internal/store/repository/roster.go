package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/fortuna/statline/internal/store"
)

// RosterRepository handles roster access. The core reads the roster; only
// the CLI roster subcommands write it.
type RosterRepository struct {
	db *store.Database
}

// NewRosterRepository creates a new roster repository.
func NewRosterRepository(db *store.Database) *RosterRepository {
	return &RosterRepository{db: db}
}

// ListAll returns every roster entry in player-id order.
func (r *RosterRepository) ListAll(ctx context.Context) ([]store.RosterEntry, error) {
	query := `SELECT player_id, full_name, team_ids, added_at FROM roster ORDER BY player_id`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying roster: %w", err)
	}
	defer rows.Close()

	var entries []store.RosterEntry
	for rows.Next() {
		var e store.RosterEntry
		if err := rows.Scan(&e.PlayerID, &e.FullName, pq.Array(&e.TeamIDs), &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scanning roster entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Upsert inserts or updates a roster entry by player id.
func (r *RosterRepository) Upsert(ctx context.Context, entry store.RosterEntry) error {
	query := `
		INSERT INTO roster (player_id, full_name, team_ids)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			team_ids = EXCLUDED.team_ids
	`

	_, err := r.db.DB().ExecContext(ctx, query, entry.PlayerID, entry.FullName, pq.Array(entry.TeamIDs))
	if err != nil {
		return fmt.Errorf("upserting roster entry: %w", err)
	}
	return nil
}
