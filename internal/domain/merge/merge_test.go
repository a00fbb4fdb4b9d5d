package merge_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/grdn/statfuse/internal/domain/merge"
	"github.com/grdn/statfuse/internal/domain/model"
)

func record(src model.Source, table model.TableType, fields map[string]model.StatValue) model.NormalizedStatRecord {
	return model.NormalizedStatRecord{
		Source:   src,
		Table:    table,
		Season:   2017,
		NativeID: "native-" + string(src),
		Name:     "Alex Ample",
		Team:     "DAL",
		Fields:   fields,
	}
}

func TestMerge(t *testing.T) {
	Convey("Given a merger with default primaries", t, func() {
		m := merge.New()
		id := model.PlayerID("p1")

		Convey("When both sources report the same rushing field with different values", func() {
			pfr := record(model.SourcePFR, model.TableRushing, map[string]model.StatValue{
				"rush_yards": model.Num(1305),
			})
			fdb := record(model.SourceFDB, model.TableRushing, map[string]model.StatValue{
				"rush_yards": model.Num(1300),
			})
			merged, diags := m.Merge(id, 2017, []model.NormalizedStatRecord{fdb, pfr})

			Convey("Then the primary source's value wins", func() {
				So(merged.Fields["rush_yards"], ShouldResemble, model.Num(1305))
			})

			Convey("And disagreement is not a diagnostic", func() {
				for _, d := range diags {
					So(d.Field, ShouldNotEqual, "rush_yards")
				}
			})
		})

		Convey("When the primary has a gap the secondary can fill", func() {
			pfr := record(model.SourcePFR, model.TableRushing, map[string]model.StatValue{
				"rush_yards":   model.Num(1305),
				"longest_rush": model.Absent(),
			})
			fdb := record(model.SourceFDB, model.TableRushing, map[string]model.StatValue{
				"rush_yards":   model.Num(1300),
				"longest_rush": model.Num(57),
			})
			merged, diags := m.Merge(id, 2017, []model.NormalizedStatRecord{pfr, fdb})

			Convey("Then the secondary fills the gap", func() {
				So(merged.Fields["longest_rush"], ShouldResemble, model.Num(57))
			})

			Convey("And a filled field is not a BackfillGap", func() {
				for _, d := range diags {
					So(d.Field, ShouldNotEqual, "longest_rush")
				}
			})
		})

		Convey("When a field is absent in both sources", func() {
			pfr := record(model.SourcePFR, model.TableRushing, map[string]model.StatValue{
				"rush_yards": model.Num(1305),
			})
			fdb := record(model.SourceFDB, model.TableRushing, map[string]model.StatValue{
				"rush_yards": model.Num(1300),
			})
			merged, diags := m.Merge(id, 2017, []model.NormalizedStatRecord{pfr, fdb})

			Convey("Then it stays explicitly absent", func() {
				So(merged.Fields["longest_rush"].Present, ShouldBeFalse)
			})

			Convey("And a BackfillGap diagnostic names the field", func() {
				gaps := diags.OfKind(model.DiagBackfillGap)
				found := false
				for _, d := range gaps {
					if d.Field == "longest_rush" {
						found = true
						So(d.Table, ShouldEqual, model.TableRushing)
						So(d.PlayerID, ShouldEqual, id)
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When records span disjoint categories", func() {
			rushing := record(model.SourcePFR, model.TableRushing, map[string]model.StatValue{
				"rush_yards": model.Num(120),
			})
			fumbles := record(model.SourceFDB, model.TableFumbles, map[string]model.StatValue{
				"fumbles_lost": model.Num(2),
			})
			merged, _ := m.Merge(id, 2017, []model.NormalizedStatRecord{fumbles, rushing})

			Convey("Then the merged row carries both categories' fields", func() {
				So(merged.Fields["rush_yards"], ShouldResemble, model.Num(120))
				So(merged.Fields["fumbles_lost"], ShouldResemble, model.Num(2))
			})

			Convey("And identity is filled from the records", func() {
				So(merged.Name, ShouldEqual, "Alex Ample")
				So(merged.Team, ShouldEqual, "DAL")
			})
		})

		Convey("When split return yardage is present without a scoring table", func() {
			kr := record(model.SourceFDB, model.TableKickReturns, map[string]model.StatValue{
				"kick_return_yards": model.Num(500),
				"kick_return_td":    model.Num(1),
			})
			pr := record(model.SourceFDB, model.TablePuntReturns, map[string]model.StatValue{
				"punt_return_yards": model.Num(250),
			})
			merged, _ := m.Merge(id, 2017, []model.NormalizedStatRecord{kr, pr})

			Convey("Then combined return fields are derived", func() {
				So(merged.Fields["return_yards"], ShouldResemble, model.Num(750))
				So(merged.Fields["return_td"], ShouldResemble, model.Num(1))
			})
		})

		Convey("When the scoring table already carries return_td", func() {
			scoringRec := record(model.SourcePFR, model.TableScoring, map[string]model.StatValue{
				"return_td": model.Num(3),
			})
			kr := record(model.SourceFDB, model.TableKickReturns, map[string]model.StatValue{
				"kick_return_td": model.Num(1),
			})
			merged, _ := m.Merge(id, 2017, []model.NormalizedStatRecord{kr, scoringRec})

			Convey("Then the reported value is not overwritten by the derivation", func() {
				So(merged.Fields["return_td"], ShouldResemble, model.Num(3))
			})
		})

		Convey("When no return input is present at all", func() {
			rushing := record(model.SourcePFR, model.TableRushing, map[string]model.StatValue{
				"rush_yards": model.Num(120),
			})
			merged, _ := m.Merge(id, 2017, []model.NormalizedStatRecord{rushing})

			Convey("Then no combined return field is fabricated", func() {
				_, ok := merged.Fields["return_yards"]
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Given a merger with an overridden primary", t, func() {
		m := merge.New(merge.WithPrimary(model.TableRushing, model.SourceFDB))
		pfr := record(model.SourcePFR, model.TableRushing, map[string]model.StatValue{
			"rush_yards": model.Num(1305),
		})
		fdb := record(model.SourceFDB, model.TableRushing, map[string]model.StatValue{
			"rush_yards": model.Num(1300),
		})

		Convey("When merging", func() {
			merged, _ := m.Merge("p1", 2017, []model.NormalizedStatRecord{pfr, fdb})

			Convey("Then the overridden primary wins", func() {
				So(merged.Fields["rush_yards"], ShouldResemble, model.Num(1300))
			})
		})
	})
}
