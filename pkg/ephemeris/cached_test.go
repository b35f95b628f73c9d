package ephemeris_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ephemeris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingOracle struct {
	calls int
}

func (c *countingOracle) Position(body domain.Body, jd float64) (domain.Position, error) {
	c.calls++
	return domain.Position{Longitude: 123, Speed: 1}, nil
}

type mapStore struct {
	data map[string]domain.Position
	fail bool
}

func (s *mapStore) key(body domain.Body, jd float64) string {
	return fmt.Sprintf("%s:%.6f", body, jd)
}

func (s *mapStore) Get(_ context.Context, body domain.Body, jd float64) (domain.Position, error) {
	if s.fail {
		return domain.Position{}, errors.New("store down")
	}
	if pos, ok := s.data[s.key(body, jd)]; ok {
		return pos, nil
	}
	return domain.Position{}, domain.ErrPositionNotCached
}

func (s *mapStore) Put(_ context.Context, body domain.Body, jd float64, pos domain.Position) error {
	if s.fail {
		return errors.New("store down")
	}
	if s.data == nil {
		s.data = make(map[string]domain.Position)
	}
	s.data[s.key(body, jd)] = pos
	return nil
}

func TestCached_MemoizesOracleCalls(t *testing.T) {
	oracle := &countingOracle{}
	cached := ephemeris.NewCached(oracle, &mapStore{})

	first, err := cached.Position(domain.Mars, ephemeris.J2000)
	require.NoError(t, err)
	second, err := cached.Position(domain.Mars, ephemeris.J2000)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, oracle.calls, "second call must be served from the store")
}

func TestCached_QuantizesNearbyDates(t *testing.T) {
	oracle := &countingOracle{}
	cached := ephemeris.NewCached(oracle, &mapStore{})

	_, err := cached.Position(domain.Mars, ephemeris.J2000)
	require.NoError(t, err)
	// A re-query within a fraction of the quantum lands on the same key.
	_, err = cached.Position(domain.Mars, ephemeris.J2000+1e-9)
	require.NoError(t, err)

	assert.Equal(t, 1, oracle.calls)
}

func TestCached_BrokenStoreFallsThrough(t *testing.T) {
	oracle := &countingOracle{}
	cached := ephemeris.NewCached(oracle, &mapStore{fail: true})

	pos, err := cached.Position(domain.Mars, ephemeris.J2000)
	require.NoError(t, err)
	assert.InDelta(t, 123, pos.Longitude, 1e-9)
	assert.Equal(t, 1, oracle.calls)
}
