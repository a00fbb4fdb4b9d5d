// Package repository defines the history store interface and errors.
package repository

import (
	"context"

	"github.com/grdn/statfuse/internal/domain/model"
)

// Store provides read/write access to the run's merged-record state.
// Writes happen from the single merge coordinator; reads may be
// concurrent once a season's ingestion completes.
type Store interface {
	// PutSeason records a merged season row for its player, replacing
	// any earlier row for the same (player, season).
	PutSeason(ctx context.Context, rec model.MergedSeasonRecord) error

	// History returns the season-ascending history for a player.
	// Returns ErrNotFound if the player is unknown.
	History(ctx context.Context, id model.PlayerID) (model.PlayerHistory, error)

	// Histories returns all histories sorted by player name.
	Histories(ctx context.Context) ([]model.PlayerHistory, error)

	// Count returns the number of players tracked.
	Count(ctx context.Context) int
}
