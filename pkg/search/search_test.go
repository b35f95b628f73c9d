package search_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ephemeris"
	"github.com/Anonyfox/celestine-sub000/pkg/orb"
	"github.com/Anonyfox/celestine-sub000/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jdOf(y int, m time.Month, d int) float64 {
	return ephemeris.JulianDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func newOrchestrator(hooks domain.SearchHooks) *search.Orchestrator {
	return search.New(ephemeris.New(), orb.DefaultPolicy(), nil, hooks)
}

func ariesPoint() []domain.NatalPoint {
	return []domain.NatalPoint{{Name: "Aries Point", Longitude: 0, Class: domain.ClassStandard}}
}

func TestSearchTransits_SunConjunctionOverOneYear(t *testing.T) {
	o := newOrchestrator(domain.SearchHooks{})

	result, err := o.SearchTransits(context.Background(), ariesPoint(),
		jdOf(2024, 1, 1), jdOf(2025, 1, 1), search.Config{
			Bodies:  []domain.Body{domain.Sun},
			Aspects: []domain.AspectType{domain.Conjunction},
		})
	require.NoError(t, err)
	require.Len(t, result.Timings, 1)

	tt := result.Timings[0]
	assert.Equal(t, domain.Sun, tt.Body)
	assert.Equal(t, 1, tt.ExactPasses)
	assert.False(t, tt.HasRetrogradePass)
	assert.Equal(t, time.March, ephemeris.Time(tt.FirstExactJD()).Month())

	assert.Equal(t, 1, result.Summary.Total)
	assert.Equal(t, 1, result.Summary.ByAspect[domain.Conjunction])
	assert.Equal(t, 1, result.Summary.ByBody[domain.Sun])
	assert.InDelta(t, 366, result.Summary.SpanDays, 1)

	byMonth := result.ByMonth()
	require.Contains(t, byMonth, "2024-03")
	assert.Len(t, byMonth["2024-03"], 1)
	assert.Len(t, result.ByBody()[domain.Sun], 1)
	assert.Len(t, result.ByNatalPoint()["Aries Point"], 1)
}

func TestSearchTransits_TriplePassCountsOnce(t *testing.T) {
	o := newOrchestrator(domain.SearchHooks{})
	points := []domain.NatalPoint{{Name: "Virgo Cusp", Longitude: 150, Class: domain.ClassStandard}}

	result, err := o.SearchTransits(context.Background(), points,
		jdOf(2024, 7, 1), jdOf(2024, 10, 1), search.Config{
			Bodies:  []domain.Body{domain.Mercury},
			Aspects: []domain.AspectType{domain.Conjunction},
		})
	require.NoError(t, err)

	// The August retrograde loop crosses 150 deg three times; dedup must
	// yield one logical event, not three.
	require.Len(t, result.Timings, 1)
	assert.Equal(t, 3, result.Timings[0].ExactPasses)
	assert.True(t, result.Timings[0].HasRetrogradePass)
}

func TestSearchTransits_SortedByFirstExact(t *testing.T) {
	o := newOrchestrator(domain.SearchHooks{})

	result, err := o.SearchTransits(context.Background(), ariesPoint(),
		jdOf(2024, 1, 1), jdOf(2025, 1, 1), search.Config{
			Bodies:  []domain.Body{domain.Sun, domain.Venus, domain.Mars},
			Aspects: []domain.AspectType{domain.Conjunction, domain.Opposition},
		})
	require.NoError(t, err)
	require.NotEmpty(t, result.Timings)

	for i := 1; i < len(result.Timings); i++ {
		assert.GreaterOrEqual(t, result.Timings[i].FirstExactJD(), result.Timings[i-1].FirstExactJD())
	}
}

func TestSearchTransits_ParallelMatchesSequential(t *testing.T) {
	o := newOrchestrator(domain.SearchHooks{})
	cfg := search.Config{
		Bodies:  []domain.Body{domain.Sun, domain.Mercury, domain.Venus},
		Aspects: []domain.AspectType{domain.Conjunction, domain.Square},
	}

	seq, err := o.SearchTransits(context.Background(), ariesPoint(),
		jdOf(2024, 1, 1), jdOf(2024, 7, 1), cfg)
	require.NoError(t, err)

	cfg.Parallelism = 4
	par, err := o.SearchTransits(context.Background(), ariesPoint(),
		jdOf(2024, 1, 1), jdOf(2024, 7, 1), cfg)
	require.NoError(t, err)

	require.Len(t, par.Timings, len(seq.Timings))
	for i := range seq.Timings {
		assert.InDelta(t, seq.Timings[i].FirstExactJD(), par.Timings[i].FirstExactJD(), 1e-9)
	}
}

func TestSearchTransits_HooksObserveWork(t *testing.T) {
	var combos, timings atomic.Int64
	o := newOrchestrator(domain.SearchHooks{
		OnCombination: func(_ context.Context, _ *domain.CombinationEvent) { combos.Add(1) },
		OnTimingFound: func(_ context.Context, _ *domain.TimingEvent) { timings.Add(1) },
	})

	result, err := o.SearchTransits(context.Background(), ariesPoint(),
		jdOf(2024, 1, 1), jdOf(2025, 1, 1), search.Config{
			Bodies:  []domain.Body{domain.Sun},
			Aspects: []domain.AspectType{domain.Conjunction, domain.Opposition},
		})
	require.NoError(t, err)

	assert.EqualValues(t, 2, combos.Load(), "one callback per combination")
	assert.EqualValues(t, len(result.Timings), timings.Load())
}

func TestSearchTransits_ZeroOrbOverrideDisablesAspect(t *testing.T) {
	o := newOrchestrator(domain.SearchHooks{})

	result, err := o.SearchTransits(context.Background(), ariesPoint(),
		jdOf(2024, 1, 1), jdOf(2025, 1, 1), search.Config{
			Bodies:       []domain.Body{domain.Sun},
			Aspects:      []domain.AspectType{domain.Conjunction},
			OrbOverrides: domain.OrbTable{domain.Conjunction: 0},
		})
	require.NoError(t, err)
	assert.Empty(t, result.Timings)
}

func TestSearchTransits_BudgetReturnsPartialResult(t *testing.T) {
	o := newOrchestrator(domain.SearchHooks{})

	// 3 bodies x 1 point x 1 aspect = 3 combinations, budget 1: the Sun
	// conjunction still lands, the error flags the truncation.
	result, err := o.SearchTransits(context.Background(), ariesPoint(),
		jdOf(2024, 1, 1), jdOf(2025, 1, 1), search.Config{
			Bodies:          []domain.Body{domain.Sun, domain.Venus, domain.Mars},
			Aspects:         []domain.AspectType{domain.Conjunction},
			MaxCombinations: 1,
		})
	require.ErrorIs(t, err, domain.ErrBudgetExhausted)
	require.NotNil(t, result)
	assert.Len(t, result.Timings, 1)
	assert.Equal(t, domain.Sun, result.Timings[0].Body)
}

func TestSearchTransits_ParallelBudgetExpiryReturns(t *testing.T) {
	o := newOrchestrator(domain.SearchHooks{})

	// An already expired wall-clock budget with parallel workers must still
	// return promptly with the budget error: failed workers keep receiving
	// so the producer is never stranded mid-send.
	done := make(chan struct{})
	var result *search.Result
	var err error
	go func() {
		defer close(done)
		result, err = o.SearchTransits(context.Background(), ariesPoint(),
			jdOf(2024, 1, 1), jdOf(2025, 1, 1), search.Config{
				Aspects:     []domain.AspectType{domain.Conjunction, domain.Square, domain.Opposition},
				MaxDuration: time.Nanosecond,
				Parallelism: 4,
			})
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("search did not return after the budget expired")
	}
	assert.ErrorIs(t, err, domain.ErrBudgetExhausted)
	assert.Nil(t, result)
}

func TestSearchTransits_CancelledContext(t *testing.T) {
	o := newOrchestrator(domain.SearchHooks{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.SearchTransits(ctx, ariesPoint(),
		jdOf(2024, 1, 1), jdOf(2025, 1, 1), search.Config{
			Bodies:  []domain.Body{domain.Sun},
			Aspects: []domain.AspectType{domain.Conjunction},
		})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchTransits_Validation(t *testing.T) {
	o := newOrchestrator(domain.SearchHooks{})
	ctx := context.Background()
	start, end := jdOf(2024, 1, 1), jdOf(2024, 2, 1)

	_, err := o.SearchTransits(ctx, nil, start, end, search.Config{})
	assert.ErrorIs(t, err, domain.ErrEmptyRange)

	_, err = o.SearchTransits(ctx, ariesPoint(), end, start, search.Config{})
	assert.ErrorIs(t, err, domain.ErrEmptyRange)

	_, err = o.SearchTransits(ctx, ariesPoint(), start, end, search.Config{
		Bodies: []domain.Body{domain.Body("vulcan")},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownBody)

	_, err = o.SearchTransits(ctx, ariesPoint(), start, end, search.Config{
		Aspects: []domain.AspectType{domain.AspectType("nonagon")},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownAspect)

	_, err = o.SearchTransits(ctx, ariesPoint(), start, end, search.Config{
		OrbOverrides: domain.OrbTable{domain.Conjunction: -1},
	})
	assert.ErrorIs(t, err, domain.ErrNegativeOrb)

	_, err = o.SearchTransits(ctx, ariesPoint(), start, end, search.Config{MinStrength: 101})
	assert.Error(t, err)

	_, err = o.SearchTransits(ctx, ariesPoint(), 0, 1, search.Config{})
	assert.ErrorIs(t, err, domain.ErrDateOutOfRange)
}
