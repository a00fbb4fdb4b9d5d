// Package identity derives canonical player identities from
// source-specific identifiers and keeps the per-run source key map.
package identity

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/grdn/statfuse/internal/domain/model"
)

// Observation is one sighting of a player in a source table. Team and
// Season feed disambiguation when two sources share a display name.
type Observation struct {
	Source   model.Source
	NativeID string
	Name     string
	Team     string
	Season   int
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithMintFunc overrides canonical id minting, used by tests for
// deterministic ids.
func WithMintFunc(mint func() model.PlayerID) Option {
	return func(r *Resolver) {
		if mint != nil {
			r.mint = mint
		}
	}
}

type sourceKey struct {
	source   model.Source
	nativeID string
}

type player struct {
	id       model.PlayerID
	name     string // display name as first observed
	normName string
	// season -> team abbreviation, as observed
	seasons map[int]string
	// source -> native id bound to this player
	bindings map[model.Source]string
}

// Resolver owns the SourceKeyMap for a run: every (source, native id)
// pair maps to exactly one canonical id, and a canonical id carries at
// most one native id per source. Registration is serialized behind a
// mutex; bindings are monotonic within a run.
type Resolver struct {
	mu      sync.Mutex
	forward map[sourceKey]model.PlayerID
	players map[model.PlayerID]*player
	byName  map[string][]model.PlayerID
	mint    func() model.PlayerID
}

// NewResolver creates a Resolver with configuration options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		forward: make(map[sourceKey]model.PlayerID),
		players: make(map[model.PlayerID]*player),
		byName:  make(map[string][]model.PlayerID),
		mint:    func() model.PlayerID { return model.PlayerID(uuid.NewString()) },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the canonical id for an observation, binding or
// minting as needed.
//
// Precedence: an existing (source, native id) binding always wins.
// Otherwise candidates are players with the same normalized display
// name that have no binding for this source yet; a candidate observed
// in the same season on a different team is contradicted and dropped,
// one observed in the same season on the same team is confirmed.
// Exactly one confirmed candidate binds; with none confirmed, a single
// remaining candidate binds on name alone. Zero candidates mint a new
// id. More than one surviving candidate fails with
// AmbiguousIdentityError rather than guessing.
func (r *Resolver) Resolve(obs Observation) (model.PlayerID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sourceKey{obs.Source, obs.NativeID}
	if id, ok := r.forward[key]; ok {
		r.observe(r.players[id], obs)
		return id, nil
	}

	norm := normalizeName(obs.Name)
	var confirmed, open []*player
	for _, id := range r.byName[norm] {
		p := r.players[id]
		if _, bound := p.bindings[obs.Source]; bound {
			// Already carries a different native id for this source.
			continue
		}
		team, seen := p.seasons[obs.Season]
		switch {
		case seen && !teamEqual(team, obs.Team):
			// Same season on another team: a different player.
		case seen:
			confirmed = append(confirmed, p)
		default:
			open = append(open, p)
		}
	}

	var match *player
	switch {
	case len(confirmed) == 1:
		match = confirmed[0]
	case len(confirmed) > 1:
		return "", r.ambiguous(obs, confirmed)
	case len(open) == 1:
		match = open[0]
	case len(open) > 1:
		return "", r.ambiguous(obs, open)
	}

	if match == nil {
		match = &player{
			id:       r.mint(),
			name:     obs.Name,
			normName: norm,
			seasons:  make(map[int]string),
			bindings: make(map[model.Source]string),
		}
		r.players[match.id] = match
		r.byName[norm] = append(r.byName[norm], match.id)
	}

	r.forward[key] = match.id
	match.bindings[obs.Source] = obs.NativeID
	r.observe(match, obs)
	return match.id, nil
}

// observe records the team sighting for a season. The first sighting
// for a season sticks. Caller holds the lock.
func (r *Resolver) observe(p *player, obs Observation) {
	if obs.Season == 0 || obs.Team == "" {
		return
	}
	if _, ok := p.seasons[obs.Season]; !ok {
		p.seasons[obs.Season] = obs.Team
	}
}

func (r *Resolver) ambiguous(obs Observation, candidates []*player) error {
	ids := make([]model.PlayerID, len(candidates))
	for i, p := range candidates {
		ids[i] = p.id
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return &AmbiguousIdentityError{
		Source:     obs.Source,
		NativeID:   obs.NativeID,
		Name:       obs.Name,
		Candidates: ids,
	}
}

// NativeID returns the native id bound to a canonical id for a source.
func (r *Resolver) NativeID(id model.PlayerID, src model.Source) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return "", false
	}
	native, ok := p.bindings[src]
	return native, ok
}

// Name returns the display name recorded for a canonical id.
func (r *Resolver) Name(id model.PlayerID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return "", false
	}
	return p.name, true
}

// Count returns the number of canonical players registered this run.
func (r *Resolver) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func teamEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
