package source

import (
	"context"

	"github.com/grdn/statfuse/internal/domain/model"
)

// Static serves pre-built raw rows, filtered per Produce call. It backs
// tests and dry runs where no network is wanted.
type Static struct {
	source model.Source
	rows   []model.RawRow
}

// NewStatic creates a producer serving the given rows for one source.
func NewStatic(src model.Source, rows []model.RawRow) *Static {
	return &Static{source: src, rows: rows}
}

// Source identifies this producer.
func (s *Static) Source() model.Source { return s.source }

// Produce returns the subset of rows matching the season and table.
func (s *Static) Produce(_ context.Context, season int, table model.TableType) ([]model.RawRow, error) {
	var out []model.RawRow
	for _, row := range s.rows {
		if row.Season == season && row.Table == table {
			out = append(out, row)
		}
	}
	return out, nil
}
