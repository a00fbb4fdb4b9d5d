package repository

import (
	"context"
	"sync"

	"github.com/grdn/statfuse/internal/domain/aggregate"
	"github.com/grdn/statfuse/internal/domain/model"
)

// MemStore implements Store in memory for a single run; there is no
// persistence across runs by design. It delegates season ordering to
// the aggregator it wraps.
type MemStore struct {
	mu  sync.RWMutex
	agg *aggregate.Aggregator
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{agg: aggregate.NewAggregator()}
}

// PutSeason records a merged season row.
func (s *MemStore) PutSeason(_ context.Context, rec model.MergedSeasonRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agg.Add(rec)
	return nil
}

// History returns one player's history.
func (s *MemStore) History(_ context.Context, id model.PlayerID) (model.PlayerHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.agg.History(id)
	if !ok {
		return model.PlayerHistory{}, ErrNotFound
	}
	return h, nil
}

// Histories returns all histories sorted by player name.
func (s *MemStore) Histories(_ context.Context) ([]model.PlayerHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agg.Histories(), nil
}

// Count returns the number of players tracked.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agg.Histories())
}
