// Package schema is the versioned registry of table layouts: the
// canonical field set for every stat category, and the per-source
// column bindings that map a site's own column labels onto it. All
// records of one category share the same field set no matter which
// source produced them.
package schema

import "github.com/grdn/statfuse/internal/domain/model"

// Version of the field schemas. Bump when a source changes its table
// layout.
const Version = 1

// Kind is the declared type of a field or column.
type Kind int

// Field kinds.
const (
	Text Kind = iota
	Int
	Float
)

// Field is one canonical field of a category schema.
type Field struct {
	Name string
	Kind Kind
}

// Column maps one source column label onto a canonical field.
type Column struct {
	Label string
	Field string
	Kind  Kind
}

// Binding describes how one source lays out one category table: the
// labels of the join columns and the stat columns in table order.
type Binding struct {
	Source  model.Source
	Table   model.TableType
	NameCol string
	IDCol   string
	TeamCol string
	PosCol  string // empty when the table has no position column
	Columns []Column
}

// Category returns the canonical field set for a table type.
func Category(t model.TableType) ([]Field, bool) {
	f, ok := categories[t]
	return f, ok
}

// Lookup returns the column binding for a (source, table) pair.
func Lookup(src model.Source, t model.TableType) (Binding, bool) {
	m, ok := bindings[src]
	if !ok {
		return Binding{}, false
	}
	b, ok := m[t]
	return b, ok
}

// Sources returns the sources that serve a table type, in precedence
// order (pfr before fdb).
func Sources(t model.TableType) []model.Source {
	var out []model.Source
	for _, src := range []model.Source{model.SourcePFR, model.SourceFDB} {
		if _, ok := bindings[src][t]; ok {
			out = append(out, src)
		}
	}
	return out
}

// Tables returns the table types a source serves, in merge order.
func Tables(src model.Source) []model.TableType {
	var out []model.TableType
	for _, t := range MergeOrder() {
		if _, ok := bindings[src][t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Known reports whether any source serves the table type.
func Known(t model.TableType) bool {
	_, ok := categories[t]
	return ok
}

// MergeOrder is the deterministic category order used when joining a
// player's records: the comprehensive tables come first so they seed
// the merged row, matching how the original data set was assembled
// around its widest table.
func MergeOrder() []model.TableType {
	return []model.TableType{
		model.TableFantasy,
		model.TableAllPurpose,
		model.TableRushing,
		model.TablePassing,
		model.TableReceiving,
		model.TableScoring,
		model.TableReturns,
		model.TableKickReturns,
		model.TablePuntReturns,
		model.TableFumbles,
		model.TableKicking,
		model.TableDefense,
	}
}
