package ports

import (
	"context"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
)

// PositionStore memoizes position oracle samples.
//
// Stores cache oracle output only, never search results: a cached sample is
// a pure function value and can be shared across runs and processes.
type PositionStore interface {
	// Get retrieves a cached position.
	// Returns domain.ErrPositionNotCached when the key is absent.
	Get(ctx context.Context, body domain.Body, jd float64) (domain.Position, error)

	// Put stores a position sample. Overwriting an existing key is allowed
	// (the value is deterministic, so any write is idempotent).
	Put(ctx context.Context, body domain.Body, jd float64, pos domain.Position) error
}
