package ephemeris

import (
	"context"
	"errors"
	"math"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ports"
)

// cacheQuantum quantizes Julian-date cache keys. Bisection re-queries land
// on nearby but not bit-identical dates; one microday (~0.086s) is far below
// every solver tolerance, so quantized hits are exact for engine purposes.
const cacheQuantum = 1e-6

// Cached decorates an Ephemeris with a PositionStore memo.
// Store failures degrade to direct oracle calls; the cache is best-effort.
type Cached struct {
	inner ports.Ephemeris
	store ports.PositionStore
}

// NewCached wraps an oracle with a position store.
func NewCached(inner ports.Ephemeris, store ports.PositionStore) *Cached {
	return &Cached{inner: inner, store: store}
}

// Position implements ports.Ephemeris.
func (c *Cached) Position(body domain.Body, jd float64) (domain.Position, error) {
	key := math.Round(jd/cacheQuantum) * cacheQuantum
	ctx := context.Background()

	if pos, err := c.store.Get(ctx, body, key); err == nil {
		return pos, nil
	} else if !errors.Is(err, domain.ErrPositionNotCached) {
		// Broken store: fall through to the oracle, skip the write-back.
		return c.inner.Position(body, jd)
	}

	pos, err := c.inner.Position(body, jd)
	if err != nil {
		return domain.Position{}, err
	}
	_ = c.store.Put(ctx, body, key, pos)
	return pos, nil
}
