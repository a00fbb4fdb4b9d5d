// Package config defines run configuration and loading hooks.
package config

import (
	"runtime"
	"time"
)

// TableComprehensive requests the full cross-table fantasy join rather
// than a single category.
const TableComprehensive = "comprehensive"

// Threshold configures the trailing-window qualification filter. A zero
// Window disables the filter.
type Threshold struct {
	// Stat is the merged field name the minimum applies to.
	Stat string `koanf:"stat"`

	// Min is the per-season minimum value.
	Min float64 `koanf:"min"`

	// Window is the trailing window size in seasons.
	Window int `koanf:"window"`

	// Position optionally restricts the filter to one roster position.
	Position string `koanf:"position"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// StartYear and EndYear bound the inclusive season range. Order
	// does not matter; min/max are taken internally.
	StartYear int `koanf:"start_year"`
	EndYear   int `koanf:"end_year"`

	// TableType selects one stat category, or "comprehensive" for the
	// full cross-table join.
	TableType string `koanf:"table_type"`

	// WorkerCount sets the number of fetch workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the fetched-rows result buffer.
	QueueSize int `koanf:"queue_size"`

	// FantasySettings overrides per-field scoring weights; unnamed
	// fields keep the standard Yahoo 0-PPR defaults.
	FantasySettings map[string]float64 `koanf:"fantasy_settings"`

	// Threshold configures the window filter.
	Threshold Threshold `koanf:"threshold"`

	// Output is the CSV destination path; empty means stdout.
	Output string `koanf:"output"`
}

// New creates a Config with defaults: the most recently completed
// season, the comprehensive join, no window filter.
func New() *Config {
	lastSeason := time.Now().Year() - 1
	return &Config{
		LogLevel:    "info",
		StartYear:   lastSeason,
		EndYear:     lastSeason,
		TableType:   TableComprehensive,
		WorkerCount: runtime.NumCPU(),
		QueueSize:   64,
	}
}

// Seasons returns the inclusive season range ascending, regardless of
// the order start and end were supplied in.
func (c *Config) Seasons() []int {
	lo, hi := c.StartYear, c.EndYear
	if lo > hi {
		lo, hi = hi, lo
	}
	out := make([]int, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		out = append(out, y)
	}
	return out
}
