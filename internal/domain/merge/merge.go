// Package merge joins a player's normalized records across sources and
// categories for one season, backfilling gaps in the primary source
// from the secondary.
package merge

import (
	"github.com/grdn/statfuse/internal/domain/model"
	"github.com/grdn/statfuse/internal/domain/schema"
)

// Option applies a configuration option to the Merger.
type Option func(*Merger)

// WithPrimary overrides the primary source for one category.
func WithPrimary(table model.TableType, src model.Source) Option {
	return func(m *Merger) {
		m.primary[table] = src
	}
}

// Merger builds MergedSeasonRecords. For every field the primary
// source's value wins when present; disagreement with the secondary is
// not an error. The secondary only fills gaps; a field absent in both
// stays absent and is reported as a BackfillGap diagnostic.
type Merger struct {
	primary map[model.TableType]model.Source
}

// New creates a Merger with the default primary-source table applied,
// then any options.
func New(opts ...Option) *Merger {
	m := &Merger{primary: make(map[model.TableType]model.Source)}
	for t, s := range DefaultPrimaries() {
		m.primary[t] = s
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DefaultPrimaries designates the most complete source per category:
// pro-football-reference for the scoring-relevant tables it serves,
// footballdb for fumbles, split returns, all-purpose yardage.
func DefaultPrimaries() map[model.TableType]model.Source {
	return map[model.TableType]model.Source{
		model.TableRushing:     model.SourcePFR,
		model.TablePassing:     model.SourcePFR,
		model.TableReceiving:   model.SourcePFR,
		model.TableKicking:     model.SourcePFR,
		model.TableReturns:     model.SourcePFR,
		model.TableScoring:     model.SourcePFR,
		model.TableFantasy:     model.SourcePFR,
		model.TableDefense:     model.SourcePFR,
		model.TableAllPurpose:  model.SourceFDB,
		model.TableFumbles:     model.SourceFDB,
		model.TableKickReturns: model.SourceFDB,
		model.TablePuntReturns: model.SourceFDB,
	}
}

// Primary returns the configured primary source for a category.
func (m *Merger) Primary(table model.TableType) model.Source {
	if src, ok := m.primary[table]; ok {
		return src
	}
	return model.SourcePFR
}

// Merge joins all normalized records for one (player, season) into a
// MergedSeasonRecord. Categories are walked in schema.MergeOrder; a
// field set by an earlier category is never overwritten by a later one.
// The fantasy point total is left zero; scoring owns it.
func (m *Merger) Merge(id model.PlayerID, season int, recs []model.NormalizedStatRecord) (model.MergedSeasonRecord, model.Diagnostics) {
	merged := model.MergedSeasonRecord{
		PlayerID: id,
		Season:   season,
		Fields:   make(map[string]model.StatValue),
	}
	var diags model.Diagnostics

	byTable := make(map[model.TableType]map[model.Source]model.NormalizedStatRecord)
	for _, rec := range recs {
		if byTable[rec.Table] == nil {
			byTable[rec.Table] = make(map[model.Source]model.NormalizedStatRecord)
		}
		byTable[rec.Table][rec.Source] = rec
	}

	for _, table := range schema.MergeOrder() {
		bySource, ok := byTable[table]
		if !ok {
			continue
		}
		primarySrc := m.Primary(table)
		primary, hasPrimary := bySource[primarySrc]
		var secondary model.NormalizedStatRecord
		hasSecondary := false
		for src, rec := range bySource {
			if src != primarySrc {
				secondary = rec
				hasSecondary = true
				break
			}
		}

		fields, _ := schema.Category(table)
		for _, f := range fields {
			if existing, ok := merged.Fields[f.Name]; ok && existing.Present {
				continue
			}
			v := model.Absent()
			if hasPrimary {
				v = primary.Fields[f.Name]
			}
			if !v.Present && hasSecondary {
				v = secondary.Fields[f.Name]
			}
			merged.Fields[f.Name] = v
			if !v.Present {
				diags.Add(model.Diagnostic{
					Kind:     model.DiagBackfillGap,
					Table:    table,
					Season:   season,
					PlayerID: id,
					Field:    f.Name,
				})
			}
		}

		fillIdentity(&merged, primary, hasPrimary)
		fillIdentity(&merged, secondary, hasSecondary)
	}

	addCombinedReturns(&merged)
	return merged, diags
}

// fillIdentity copies name/team/position from a record into the merged
// row, first value wins.
func fillIdentity(merged *model.MergedSeasonRecord, rec model.NormalizedStatRecord, ok bool) {
	if !ok {
		return
	}
	if merged.Name == "" {
		merged.Name = rec.Name
	}
	if merged.Team == "" {
		merged.Team = rec.Team
	}
	if merged.Position == "" {
		merged.Position = rec.Position
	}
}

// addCombinedReturns derives the combined return_yards and return_td
// fields the default scoring rule weighs, treating absent inputs as
// zero. Derived only when at least one input is present.
func addCombinedReturns(merged *model.MergedSeasonRecord) {
	combine := func(out string, ins ...string) {
		if v, ok := merged.Fields[out]; ok && v.Present {
			return
		}
		total := 0.0
		any := false
		for _, in := range ins {
			if v, ok := merged.Fields[in]; ok && v.Present {
				total += v.Number
				any = true
			}
		}
		if any {
			merged.Fields[out] = model.Num(total)
		}
	}
	combine("return_yards", "kick_return_yards", "punt_return_yards")
	combine("return_td", "kick_return_td", "punt_return_td")
}
