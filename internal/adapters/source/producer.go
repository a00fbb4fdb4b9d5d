// Package source contains the Raw Row producers: goquery scrapers for
// the two statistics sites and a static producer for fixtures. The
// producers only fetch and label cells; all schema interpretation
// happens downstream in the normalizer.
package source

import (
	"context"

	"github.com/grdn/statfuse/internal/domain/model"
)

// Producer yields the raw rows of one table for one season. Producers
// fail independently; a failed (season, table) fetch never aborts the
// run.
type Producer interface {
	// Source identifies which site this producer scrapes.
	Source() model.Source

	// Produce fetches one season of one table type.
	Produce(ctx context.Context, season int, table model.TableType) ([]model.RawRow, error)
}
