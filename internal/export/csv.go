// Package export writes run results as CSV with a stable column order
// independent of which seasons were requested.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/grdn/statfuse/internal/domain/model"
	"github.com/grdn/statfuse/internal/domain/schema"
)

// fixedColumns lead every projection.
var fixedColumns = []string{"player", "player_id", "season", "team", "position"}

// Columns returns the projection's column order for the given
// categories: the fixed identity columns, each category's fields in
// merge order (first occurrence wins for shared names), the derived
// return totals, and the fantasy point total last.
func Columns(tables []model.TableType) []string {
	cols := append([]string{}, fixedColumns...)
	seen := make(map[string]bool)
	requested := make(map[model.TableType]bool, len(tables))
	for _, t := range tables {
		requested[t] = true
	}
	for _, t := range schema.MergeOrder() {
		if !requested[t] {
			continue
		}
		fields, _ := schema.Category(t)
		for _, f := range fields {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			cols = append(cols, f.Name)
		}
	}
	for _, derived := range []string{"return_yards", "return_td"} {
		if !seen[derived] {
			cols = append(cols, derived)
		}
	}
	return append(cols, "fantasy_points")
}

// WriteMerged writes one CSV row per merged season record.
func WriteMerged(w io.Writer, recs []model.MergedSeasonRecord, tables []model.TableType) error {
	cw := csv.NewWriter(w)
	cols := Columns(tables)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := cw.Write(row(rec, cols)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHistories flattens histories season by season into the same
// projection as WriteMerged.
func WriteHistories(w io.Writer, histories []model.PlayerHistory, tables []model.TableType) error {
	var recs []model.MergedSeasonRecord
	for _, h := range histories {
		recs = append(recs, h.Seasons...)
	}
	return WriteMerged(w, recs, tables)
}

func row(rec model.MergedSeasonRecord, cols []string) []string {
	out := make([]string, len(cols))
	for i, col := range cols {
		switch col {
		case "player":
			out[i] = rec.Name
		case "player_id":
			out[i] = string(rec.PlayerID)
		case "season":
			out[i] = strconv.Itoa(rec.Season)
		case "team":
			out[i] = rec.Team
		case "position":
			out[i] = rec.Position
		case "fantasy_points":
			out[i] = formatNumber(rec.FantasyPoints)
		default:
			out[i] = formatValue(rec.Value(col))
		}
	}
	return out
}

// formatValue renders a stat cell; absent stays empty so a gap remains
// distinguishable from a recorded zero in the output.
func formatValue(v model.StatValue) string {
	if !v.Present {
		return ""
	}
	if v.Text != "" {
		return v.Text
	}
	return formatNumber(v.Number)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
