// Package aggregate assembles per-season merged records into
// multi-season player histories and applies the trailing-window
// threshold filter.
package aggregate

import (
	"sort"
	"strings"

	"github.com/grdn/statfuse/internal/domain/model"
)

// Aggregator collects merged season records per canonical player. It
// exclusively owns the final history set; seasons are kept sorted
// ascending no matter what order records arrive in.
type Aggregator struct {
	histories map[model.PlayerID]*model.PlayerHistory
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{histories: make(map[model.PlayerID]*model.PlayerHistory)}
}

// Add appends a season record to the player's history, replacing any
// earlier record for the same season.
func (a *Aggregator) Add(rec model.MergedSeasonRecord) {
	h, ok := a.histories[rec.PlayerID]
	if !ok {
		h = &model.PlayerHistory{PlayerID: rec.PlayerID, Name: rec.Name}
		a.histories[rec.PlayerID] = h
	}
	if h.Name == "" {
		h.Name = rec.Name
	}
	for i := range h.Seasons {
		if h.Seasons[i].Season == rec.Season {
			h.Seasons[i] = rec
			return
		}
	}
	h.Seasons = append(h.Seasons, rec)
	sort.Slice(h.Seasons, func(i, j int) bool { return h.Seasons[i].Season < h.Seasons[j].Season })
}

// History returns one player's aggregated history.
func (a *Aggregator) History(id model.PlayerID) (model.PlayerHistory, bool) {
	h, ok := a.histories[id]
	if !ok {
		return model.PlayerHistory{}, false
	}
	return *h, true
}

// Histories returns the aggregated histories sorted by player name,
// then id for a stable order among namesakes.
func (a *Aggregator) Histories() []model.PlayerHistory {
	out := make([]model.PlayerHistory, 0, len(a.histories))
	for _, h := range a.histories {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// Threshold is the window qualification rule: Stat at or above Min in
// every season of the trailing Window seasons. Position optionally
// restricts the rule to one roster position.
type Threshold struct {
	Stat     string
	Min      float64
	Window   int
	Position string
}

// FilterWindow selects the histories qualifying under t for the window
// ending at maxSeason. A player missing a record in any window season
// is excluded outright — no partial-window credit. An absent stat
// counts as zero, so it fails any positive minimum.
func FilterWindow(histories []model.PlayerHistory, t Threshold, maxSeason int) []model.PlayerHistory {
	if t.Window <= 0 {
		return histories
	}
	var out []model.PlayerHistory
	for _, h := range histories {
		if qualifies(h, t, maxSeason) {
			out = append(out, h)
		}
	}
	return out
}

func qualifies(h model.PlayerHistory, t Threshold, maxSeason int) bool {
	for season := maxSeason - t.Window + 1; season <= maxSeason; season++ {
		rec, ok := h.Season(season)
		if !ok {
			return false
		}
		if !positionMatches(rec.Position, t.Position) {
			return false
		}
		v := rec.Value(t.Stat)
		stat := 0.0
		if v.Present {
			stat = v.Number
		}
		if stat < t.Min {
			return false
		}
	}
	return true
}

// positionMatches compares case-insensitively. A record with no
// recorded position passes: the sources leave position blank for some
// qualifying players, and the original data set treated those as
// belonging to the filtered position.
func positionMatches(recorded, want string) bool {
	if want == "" || recorded == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(recorded), strings.TrimSpace(want))
}
