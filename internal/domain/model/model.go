// Package model contains domain models passed between pipeline stages.
package model

// Source identifies one of the external statistics sites.
type Source string

// Known sources.
const (
	SourcePFR Source = "pfr" // pro-football-reference.com
	SourceFDB Source = "fdb" // footballdb.com
)

// TableType names a statistical category with its own field schema.
type TableType string

// Recognized table types. Which source serves which table is defined by
// the schema registry; a table present in only one source is still a
// valid category.
const (
	TableRushing     TableType = "rushing"
	TablePassing     TableType = "passing"
	TableReceiving   TableType = "receiving"
	TableKicking     TableType = "kicking"
	TableReturns     TableType = "returns"
	TableScoring     TableType = "scoring"
	TableFantasy     TableType = "fantasy"
	TableDefense     TableType = "defense"
	TableAllPurpose  TableType = "all_purpose"
	TableFumbles     TableType = "fumbles"
	TableKickReturns TableType = "kick_returns"
	TablePuntReturns TableType = "punt_returns"
)

// PlayerID is the canonical player identity, stable for the duration of
// a run and independent of any one source's identifier scheme.
type PlayerID string

// RawRow is one scraped table row: an untyped bag of cells keyed by the
// source's own column labels. A missing key means the cell was absent.
type RawRow struct {
	Source Source
	Table  TableType
	Season int
	Cells  map[string]string
}

// StatValue is a single normalized cell. Present distinguishes a
// recorded zero from a cell the source left empty.
type StatValue struct {
	Number  float64
	Text    string
	Present bool
}

// Num returns a present numeric value.
func Num(v float64) StatValue { return StatValue{Number: v, Present: true} }

// Str returns a present textual value.
func Str(s string) StatValue { return StatValue{Text: s, Present: true} }

// Absent returns the explicit-absent marker.
func Absent() StatValue { return StatValue{} }

// NormalizedStatRecord is one player's row for a single (source, table,
// season), reshaped to the category's canonical field set. Every field
// of the category schema appears in Fields, absent where the source had
// no value.
type NormalizedStatRecord struct {
	Source   Source
	Table    TableType
	Season   int
	NativeID string
	Name     string
	Team     string
	Position string
	Fields   map[string]StatValue
}

// MergedSeasonRecord is the cross-source union of a player's normalized
// records for one season, with backfill applied and the fantasy point
// total computed.
type MergedSeasonRecord struct {
	PlayerID      PlayerID
	Season        int
	Name          string
	Team          string
	Position      string
	Fields        map[string]StatValue
	FantasyPoints float64
}

// Value returns the named field, or the absent marker if the merged
// field set does not carry it.
func (r MergedSeasonRecord) Value(field string) StatValue {
	v, ok := r.Fields[field]
	if !ok {
		return Absent()
	}
	return v
}

// PlayerHistory is a player's merged records ordered by season
// ascending.
type PlayerHistory struct {
	PlayerID PlayerID
	Name     string
	Seasons  []MergedSeasonRecord
}

// Season returns the record for a season and whether one exists.
func (h PlayerHistory) Season(year int) (MergedSeasonRecord, bool) {
	for _, rec := range h.Seasons {
		if rec.Season == year {
			return rec, true
		}
	}
	return MergedSeasonRecord{}, false
}
