// Package normalize reshapes raw scraped rows into canonical
// per-category stat records.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grdn/statfuse/internal/domain/model"
	"github.com/grdn/statfuse/internal/domain/schema"
)

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithLookup overrides the schema lookup, used by tests to feed
// synthetic bindings.
func WithLookup(fn func(model.Source, model.TableType) (schema.Binding, bool)) Option {
	return func(n *Normalizer) {
		if fn != nil {
			n.lookup = fn
		}
	}
}

// Normalizer maps each source's raw row layout onto the category's
// canonical field set. Normalization is a pure function of the row; it
// keeps no state across calls.
type Normalizer struct {
	lookup func(model.Source, model.TableType) (schema.Binding, bool)
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{lookup: schema.Lookup}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts a raw row into a NormalizedStatRecord. It fails
// with ErrUnrecognizedTableType when no binding exists for the row's
// (source, table), and with ErrMissingRequiredField when the player
// name, the source-native identifier, or the season is absent. Textual
// "no value" cells become the explicit-absent marker, never zero.
func (n *Normalizer) Normalize(row model.RawRow) (model.NormalizedStatRecord, error) {
	binding, ok := n.lookup(row.Source, row.Table)
	if !ok {
		return model.NormalizedStatRecord{}, fmt.Errorf("%w: %s/%s", ErrUnrecognizedTableType, row.Source, row.Table)
	}

	if row.Season == 0 {
		return model.NormalizedStatRecord{}, fmt.Errorf("%w: season", ErrMissingRequiredField)
	}
	name := CleanName(row.Cells[binding.NameCol])
	if name == "" {
		return model.NormalizedStatRecord{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, binding.NameCol)
	}
	nativeID := strings.TrimSpace(row.Cells[binding.IDCol])
	if nativeID == "" {
		return model.NormalizedStatRecord{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, binding.IDCol)
	}

	rec := model.NormalizedStatRecord{
		Source:   row.Source,
		Table:    row.Table,
		Season:   row.Season,
		NativeID: nativeID,
		Name:     name,
		Team:     strings.TrimSpace(row.Cells[binding.TeamCol]),
		Fields:   make(map[string]model.StatValue),
	}
	if binding.PosCol != "" {
		rec.Position = strings.ToUpper(strings.TrimSpace(row.Cells[binding.PosCol]))
	}

	// Emit every canonical field of the category so the field set is
	// identical across sources and seasons.
	fields, _ := schema.Category(row.Table)
	for _, f := range fields {
		rec.Fields[f.Name] = model.Absent()
	}
	for _, col := range binding.Columns {
		cell, ok := row.Cells[col.Label]
		if !ok {
			continue
		}
		rec.Fields[col.Field] = parseCell(cell, col.Kind)
	}
	return rec, nil
}

// CleanName strips the accolade markers pro-football-reference appends
// to player names ('*' Pro Bowl, '+' All-Pro) and collapses whitespace.
func CleanName(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), "*+")
	return strings.Join(strings.Fields(s), " ")
}

// parseCell converts one table cell into a StatValue. Empty cells and
// the dash placeholders both sources use for "no value" map to absent.
// A cell that cannot be parsed under the declared kind is treated as
// absent as well; zero is reserved for a recorded zero.
func parseCell(cell string, kind schema.Kind) model.StatValue {
	s := cleanCell(cell)
	if s == "" {
		return model.Absent()
	}
	switch kind {
	case schema.Text:
		return model.Str(s)
	case schema.Int:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return model.Absent()
		}
		return model.Num(float64(v))
	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.Absent()
		}
		return model.Num(v)
	}
}

func cleanCell(cell string) string {
	s := strings.TrimSpace(cell)
	switch s {
	case "", "-", "--", "—":
		return ""
	}
	s = strings.TrimRight(s, "*+")
	s = strings.TrimSuffix(s, "%")
	return strings.ReplaceAll(s, ",", "")
}
