package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/grdn/statfuse/internal/config"
)

// clearEnv removes every override so each branch starts clean; the
// surrounding closure reruns before every leaf.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STATFUSE_CONFIG",
		"STATFUSE_START_YEAR",
		"STATFUSE_END_YEAR",
		"STATFUSE_TABLE_TYPE",
		"STATFUSE_LOG_LEVEL",
		"STATFUSE_THRESHOLD__STAT",
		"STATFUSE_THRESHOLD__MIN",
		"STATFUSE_THRESHOLD__WINDOW",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		clearEnv(t)

		Convey("When loading with no overrides", func() {
			cfg, err := config.Load()
			So(err, ShouldBeNil)

			Convey("Then the defaults apply", func() {
				So(cfg.TableType, ShouldEqual, config.TableComprehensive)
				So(cfg.StartYear, ShouldEqual, cfg.EndYear)
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.Threshold.Window, ShouldEqual, 0)
			})
		})

		Convey("When env vars override flat and nested keys", func() {
			t.Setenv("STATFUSE_START_YEAR", "2014")
			t.Setenv("STATFUSE_END_YEAR", "2018")
			t.Setenv("STATFUSE_TABLE_TYPE", "rushing")
			t.Setenv("STATFUSE_THRESHOLD__STAT", "rush_attempts")
			t.Setenv("STATFUSE_THRESHOLD__MIN", "50")
			t.Setenv("STATFUSE_THRESHOLD__WINDOW", "5")

			cfg, err := config.Load()
			So(err, ShouldBeNil)

			Convey("Then the overridden values land", func() {
				So(cfg.StartYear, ShouldEqual, 2014)
				So(cfg.EndYear, ShouldEqual, 2018)
				So(cfg.TableType, ShouldEqual, "rushing")
				So(cfg.Threshold.Stat, ShouldEqual, "rush_attempts")
				So(cfg.Threshold.Min, ShouldEqual, 50)
				So(cfg.Threshold.Window, ShouldEqual, 5)
			})
		})

		Convey("When a YAML file is layered under the env", func() {
			path := filepath.Join(t.TempDir(), "statfuse.yaml")
			yaml := "start_year: 2015\nend_year: 2017\nlog_level: debug\n"
			So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
			t.Setenv("STATFUSE_CONFIG", path)
			t.Setenv("STATFUSE_END_YEAR", "2018")

			cfg, err := config.Load()
			So(err, ShouldBeNil)

			Convey("Then file values apply and env still wins", func() {
				So(cfg.StartYear, ShouldEqual, 2015)
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.EndYear, ShouldEqual, 2018)
			})
		})

		Convey("When the table type is not a recognized category", func() {
			t.Setenv("STATFUSE_TABLE_TYPE", "sideline_reports")
			_, err := config.Load()

			Convey("Then loading fails with ErrInvalidConfig", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When the threshold window exceeds the requested seasons", func() {
			t.Setenv("STATFUSE_START_YEAR", "2017")
			t.Setenv("STATFUSE_END_YEAR", "2018")
			t.Setenv("STATFUSE_THRESHOLD__WINDOW", "5")
			_, err := config.Load()

			Convey("Then loading fails with ErrInvalidConfig", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}

func TestSeasons(t *testing.T) {
	Convey("Given a season range supplied in either order", t, func() {
		forward := &config.Config{StartYear: 2017, EndYear: 2019}
		backward := &config.Config{StartYear: 2019, EndYear: 2017}

		Convey("Then both yield the same ascending list", func() {
			So(forward.Seasons(), ShouldResemble, []int{2017, 2018, 2019})
			So(backward.Seasons(), ShouldResemble, forward.Seasons())
		})
	})
}
