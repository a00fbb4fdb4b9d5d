package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/grdn/statfuse/internal/adapters/source"
	app "github.com/grdn/statfuse/internal/app"
	"github.com/grdn/statfuse/internal/domain/aggregate"
	"github.com/grdn/statfuse/internal/domain/model"
	"github.com/grdn/statfuse/internal/domain/scoring"
)

var errSiteDown = errors.New("site down")

type failing struct{ src model.Source }

func (f failing) Source() model.Source { return f.src }

func (f failing) Produce(context.Context, int, model.TableType) ([]model.RawRow, error) {
	return nil, errSiteDown
}

// pfrRushing builds a complete pro-football-reference rushing row so a
// single-source merge produces no backfill gaps.
func pfrRushing(season int, name, url, team string, attempts, yards, td int) model.RawRow {
	return model.RawRow{
		Source: model.SourcePFR,
		Table:  model.TableRushing,
		Season: season,
		Cells: map[string]string{
			"player":           name,
			"player_url":       url,
			"team":             team,
			"pos":              "RB",
			"g":                "16",
			"rush_att":         fmt.Sprintf("%d", attempts),
			"rush_yds":         fmt.Sprintf("%d", yards),
			"rush_yds_per_att": "4.0",
			"rush_yds_per_g":   "60.0",
			"rush_long":        "45",
			"rush_td":          fmt.Sprintf("%d", td),
		},
	}
}

func fdbFumbles(season int, name, url, team string, fumbles, lost int) model.RawRow {
	return model.RawRow{
		Source: model.SourceFDB,
		Table:  model.TableFumbles,
		Season: season,
		Cells: map[string]string{
			"name":             name,
			"player_url":       url,
			"team":             team,
			"fumbles":          fmt.Sprintf("%d", fumbles),
			"fumbles_lost":     fmt.Sprintf("%d", lost),
			"forced_fumbles":   "0",
			"own_fum_recovery": "1",
			"opp_fum_recovery": "0",
			"fum_return_yards": "0",
			"fum_return_td":    "0",
		},
	}
}

func TestRunMergesAcrossSources(t *testing.T) {
	Convey("Given one player seen by both sources in 2017", t, func() {
		pfr := source.NewStatic(model.SourcePFR, []model.RawRow{
			pfrRushing(2017, "Alex Ample", "/players/A/AmplAl00.htm", "DAL", 30, 120, 1),
		})
		fdb := source.NewStatic(model.SourceFDB, []model.RawRow{
			fdbFumbles(2017, "Alex Ample", "/players/alex-ample-amplal01", "DAL", 3, 2),
		})

		engine := app.New(
			app.WithProducers(pfr, fdb),
			app.WithSeasons(2017),
			app.WithTables(model.TableRushing, model.TableFumbles),
			app.WithScoringRule(scoring.Rule{
				{Field: "rush_yards", Points: 0.1},
				{Field: "fumbles_lost", Points: -2},
			}),
			app.WithWorkerCount(1),
		)

		Convey("When running", func() {
			result, err := engine.Run(context.Background())
			So(err, ShouldBeNil)

			Convey("Then the two source rows merge into one record", func() {
				So(result.Merged, ShouldHaveLength, 1)
				rec := result.Merged[0]
				So(rec.Name, ShouldEqual, "Alex Ample")
				So(rec.Team, ShouldEqual, "DAL")
				So(rec.Position, ShouldEqual, "RB")
				So(rec.Fields["rush_yards"], ShouldResemble, model.Num(120))
				So(rec.Fields["fumbles_lost"], ShouldResemble, model.Num(2))
			})

			Convey("And the fantasy total follows the rule", func() {
				So(result.Merged[0].FantasyPoints, ShouldAlmostEqual, 8.0)
			})

			Convey("And the run is diagnostically clean", func() {
				So(result.Diagnostics.Count(model.DiagBackfillGap), ShouldEqual, 0)
				So(result.Diagnostics.Count(model.DiagAmbiguousIdentity), ShouldEqual, 0)
				So(result.Diagnostics.Count(model.DiagRowDropped), ShouldEqual, 0)
			})

			Convey("And the history store carries the single player", func() {
				So(result.Histories, ShouldHaveLength, 1)
				So(result.Histories[0].Seasons, ShouldHaveLength, 1)
			})
		})
	})
}

func TestRunSeasonOrderIndependence(t *testing.T) {
	Convey("Given three seasons of rushing rows", t, func() {
		rows := []model.RawRow{
			pfrRushing(2017, "Frank Gore", "/players/G/GoreFr00.htm", "IND", 261, 961, 3),
			pfrRushing(2018, "Frank Gore", "/players/G/GoreFr00.htm", "MIA", 156, 722, 0),
			pfrRushing(2019, "Frank Gore", "/players/G/GoreFr00.htm", "BUF", 166, 599, 2),
		}
		run := func(start, end int) *app.Result {
			engine := app.New(
				app.WithProducers(source.NewStatic(model.SourcePFR, rows)),
				app.WithSeasonRange(start, end),
				app.WithTables(model.TableRushing),
				app.WithWorkerCount(1),
			)
			result, err := engine.Run(context.Background())
			So(err, ShouldBeNil)
			return result
		}

		Convey("When running the range forward and backward", func() {
			forward := run(2017, 2019)
			backward := run(2019, 2017)

			Convey("Then both runs cover the same ascending seasons", func() {
				So(forward.Seasons, ShouldResemble, []int{2017, 2018, 2019})
				So(backward.Seasons, ShouldResemble, forward.Seasons)
			})

			Convey("And produce the same merged rows season by season", func() {
				So(backward.Merged, ShouldHaveLength, len(forward.Merged))
				for i := range forward.Merged {
					So(backward.Merged[i].Season, ShouldEqual, forward.Merged[i].Season)
					So(backward.Merged[i].Name, ShouldEqual, forward.Merged[i].Name)
					So(backward.Merged[i].FantasyPoints, ShouldAlmostEqual, forward.Merged[i].FantasyPoints)
				}
			})

			Convey("And histories stay season-ascending", func() {
				So(backward.Histories, ShouldHaveLength, 1)
				seasons := backward.Histories[0].Seasons
				So(seasons[0].Season, ShouldEqual, 2017)
				So(seasons[2].Season, ShouldEqual, 2019)
			})
		})
	})
}

func TestRunDiagnostics(t *testing.T) {
	Convey("Given a producer that cannot reach its site", t, func() {
		engine := app.New(
			app.WithProducers(
				source.NewStatic(model.SourcePFR, []model.RawRow{
					pfrRushing(2017, "Alex Ample", "/players/A/AmplAl00.htm", "DAL", 30, 120, 1),
				}),
				failing{src: model.SourceFDB},
			),
			app.WithSeasons(2017),
			app.WithTables(model.TableRushing),
			app.WithWorkerCount(1),
		)

		Convey("When running", func() {
			result, err := engine.Run(context.Background())

			Convey("Then the run still succeeds with the healthy source", func() {
				So(err, ShouldBeNil)
				So(result.Merged, ShouldHaveLength, 1)
			})

			Convey("And the failure is a FetchFailed diagnostic", func() {
				failures := result.Diagnostics.OfKind(model.DiagFetchFailed)
				So(failures, ShouldHaveLength, 1)
				So(failures[0].Source, ShouldEqual, model.SourceFDB)
				So(errors.Is(failures[0].Err, errSiteDown), ShouldBeTrue)
			})
		})
	})

	Convey("Given a row missing its native identifier", t, func() {
		broken := pfrRushing(2017, "Alex Ample", "", "DAL", 30, 120, 1)
		delete(broken.Cells, "player_url")
		engine := app.New(
			app.WithProducers(source.NewStatic(model.SourcePFR, []model.RawRow{broken})),
			app.WithSeasons(2017),
			app.WithTables(model.TableRushing),
		)

		Convey("When running", func() {
			result, err := engine.Run(context.Background())
			So(err, ShouldBeNil)

			Convey("Then the row is dropped with a diagnostic and nothing merges", func() {
				So(result.Diagnostics.Count(model.DiagRowDropped), ShouldEqual, 1)
				So(result.Merged, ShouldBeEmpty)
			})
		})
	})

	Convey("Given two namesakes and a third sighting matching both", t, func() {
		pfr := source.NewStatic(model.SourcePFR, []model.RawRow{
			pfrRushing(2017, "Chris Johnson", "/players/J/JohnCh04.htm", "TEN", 50, 200, 1),
			pfrRushing(2017, "Chris Johnson", "/players/J/JohnCh08.htm", "OAK", 40, 160, 0),
		})
		fdb := source.NewStatic(model.SourceFDB, []model.RawRow{
			fdbFumbles(2018, "Chris Johnson", "/players/chris-johnson-johnch05", "ARI", 2, 1),
		})
		engine := app.New(
			app.WithProducers(pfr, fdb),
			app.WithSeasons(2017, 2018),
			app.WithTables(model.TableRushing, model.TableFumbles),
			app.WithWorkerCount(1),
		)

		Convey("When running", func() {
			result, err := engine.Run(context.Background())
			So(err, ShouldBeNil)

			Convey("Then the undecidable sighting is reported, not guessed", func() {
				So(result.Diagnostics.Count(model.DiagAmbiguousIdentity), ShouldEqual, 1)
			})

			Convey("And only the two namesakes survive", func() {
				So(result.Histories, ShouldHaveLength, 2)
				So(result.Merged, ShouldHaveLength, 2)
			})
		})
	})
}

func TestRunThreshold(t *testing.T) {
	Convey("Given a steady carrier and a one-season player", t, func() {
		pfr := source.NewStatic(model.SourcePFR, []model.RawRow{
			pfrRushing(2017, "Frank Gore", "/players/G/GoreFr00.htm", "IND", 261, 961, 3),
			pfrRushing(2018, "Frank Gore", "/players/G/GoreFr00.htm", "MIA", 156, 722, 0),
			pfrRushing(2018, "Rookie Back", "/players/B/BackRo00.htm", "CLE", 80, 300, 2),
		})
		engine := app.New(
			app.WithProducers(pfr),
			app.WithSeasonRange(2017, 2018),
			app.WithTables(model.TableRushing),
			app.WithThreshold(aggregate.Threshold{
				Stat:   "rush_attempts",
				Min:    50,
				Window: 2,
			}),
			app.WithWorkerCount(1),
		)

		Convey("When running", func() {
			result, err := engine.Run(context.Background())
			So(err, ShouldBeNil)

			Convey("Then only the player covering the full window qualifies", func() {
				So(result.Qualified, ShouldHaveLength, 1)
				So(result.Qualified[0].Name, ShouldEqual, "Frank Gore")
			})

			Convey("And the unfiltered histories keep both", func() {
				So(result.Histories, ShouldHaveLength, 2)
			})
		})
	})
}

func TestRunValidation(t *testing.T) {
	Convey("Given structurally broken configurations", t, func() {
		prod := source.NewStatic(model.SourcePFR, nil)

		Convey("No producers", func() {
			_, err := app.New(app.WithSeasons(2017)).Run(context.Background())
			So(errors.Is(err, app.ErrNoProducers), ShouldBeTrue)
		})

		Convey("No seasons", func() {
			_, err := app.New(app.WithProducers(prod)).Run(context.Background())
			So(errors.Is(err, app.ErrEmptySeasonRange), ShouldBeTrue)
		})

		Convey("Unknown table type", func() {
			engine := app.New(
				app.WithProducers(prod),
				app.WithSeasons(2017),
				app.WithTables(model.TableType("sideline_reports")),
			)
			_, err := engine.Run(context.Background())
			So(errors.Is(err, app.ErrUnknownTableType), ShouldBeTrue)
		})

		Convey("Window wider than the season range", func() {
			engine := app.New(
				app.WithProducers(prod),
				app.WithSeasons(2017),
				app.WithThreshold(aggregate.Threshold{Stat: "rush_attempts", Min: 50, Window: 5}),
			)
			_, err := engine.Run(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}
