package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
)

// Store implements ports.PositionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Position
	max  int
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store. maxEntries bounds memory growth:
// once full, new keys are dropped silently (the oracle recomputes them).
// Zero means unbounded.
func NewStore(maxEntries int) *Store {
	return &Store{
		data: make(map[string]domain.Position),
		max:  maxEntries,
	}
}

func key(body domain.Body, jd float64) string {
	return fmt.Sprintf("%s:%.6f", body, jd)
}

// Get retrieves a cached position.
func (s *Store) Get(ctx context.Context, body domain.Body, jd float64) (domain.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.data[key(body, jd)]
	if !ok {
		return domain.Position{}, domain.ErrPositionNotCached
	}
	return pos, nil
}

// Put stores a position sample. Positions are value types, so no copy
// discipline is needed on either side.
func (s *Store) Put(ctx context.Context, body domain.Body, jd float64, pos domain.Position) error {
	k := key(body, jd)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[k]; !exists && s.max > 0 && len(s.data) >= s.max {
		return nil
	}
	s.data[k] = pos
	return nil
}

// Len reports the number of cached samples.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
