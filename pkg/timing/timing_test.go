package timing_test

import (
	"testing"
	"time"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ephemeris"
	"github.com/Anonyfox/celestine-sub000/pkg/solver"
	"github.com/Anonyfox/celestine-sub000/pkg/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jdOf(y int, m time.Month, d int) float64 {
	return ephemeris.JulianDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func newAssembler() *timing.Assembler {
	oracle := ephemeris.New()
	return timing.New(solver.New(oracle, nil), oracle, nil)
}

func assertLifecycleInvariants(t *testing.T, tt domain.TransitTiming) {
	t.Helper()
	require.NotEmpty(t, tt.ExactJDs)
	assert.Equal(t, len(tt.ExactJDs), tt.ExactPasses)
	assert.Equal(t, len(tt.ExactJDs), len(tt.ExactDates))
	assert.LessOrEqual(t, tt.EnterOrbJD, tt.ExactJDs[0])
	assert.GreaterOrEqual(t, tt.LeaveOrbJD, tt.ExactJDs[len(tt.ExactJDs)-1])
	assert.InDelta(t, tt.LeaveOrbJD-tt.EnterOrbJD, tt.DurationDays, 1e-9)
	for i := 1; i < len(tt.ExactJDs); i++ {
		assert.Greater(t, tt.ExactJDs[i], tt.ExactJDs[i-1], "exact passes sorted")
	}
}

func TestAssemble_SunConjunctionSinglePass(t *testing.T) {
	a := newAssembler()
	point := domain.NatalPoint{Name: "Aries Point", Longitude: 0}

	timings, err := a.Assemble(domain.Sun, point, domain.Conjunction, 8,
		jdOf(2024, 1, 1), jdOf(2025, 1, 1), 0)
	require.NoError(t, err)
	require.Len(t, timings, 1)

	tt := timings[0]
	assertLifecycleInvariants(t, tt)
	assert.Equal(t, 1, tt.ExactPasses)
	assert.False(t, tt.HasRetrogradePass)

	exact := ephemeris.Time(tt.ExactJDs[0])
	assert.Equal(t, time.March, exact.Month())
	assert.InDelta(t, 20, exact.Day(), 1)

	// The Sun covers ~1 deg/day, so an 8 deg orb spans roughly 8 days on
	// each side of the exact pass.
	assert.InDelta(t, 16.2, tt.DurationDays, 1.5)
}

func TestAssemble_MercuryRetrogradeTriplePass(t *testing.T) {
	a := newAssembler()
	point := domain.NatalPoint{Name: "Natal Virgo Cusp", Longitude: 150}

	// Mercury's August 2024 loop crosses 150 deg three times (late July,
	// mid August retrograde, early September). One lifecycle, three passes.
	timings, err := a.Assemble(domain.Mercury, point, domain.Conjunction, 7,
		jdOf(2024, 7, 1), jdOf(2024, 10, 1), 0)
	require.NoError(t, err)
	require.Len(t, timings, 1)

	tt := timings[0]
	assertLifecycleInvariants(t, tt)
	assert.Equal(t, 3, tt.ExactPasses)
	assert.Equal(t, 1, tt.ExactPasses%2, "a fully captured loop yields an odd pass count")
	assert.True(t, tt.HasRetrogradePass, "middle pass happens in retrograde motion")
}

func TestAssemble_MoonMonthlyReturnsStaySeparate(t *testing.T) {
	a := newAssembler()
	point := domain.NatalPoint{Name: "Aries Point", Longitude: 0}

	// The Moon returns to the same longitude every ~27.3 days; two months
	// hold at least two occurrences and they must not merge into one.
	timings, err := a.Assemble(domain.Moon, point, domain.Conjunction, 8,
		jdOf(2024, 1, 1), jdOf(2024, 3, 1), 0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(timings), 2)
	require.LessOrEqual(t, len(timings), 3)

	for i, tt := range timings {
		assertLifecycleInvariants(t, tt)
		assert.Equal(t, 1, tt.ExactPasses)
		assert.False(t, tt.HasRetrogradePass)
		if i > 0 {
			assert.Greater(t, tt.EnterOrbJD, timings[i-1].LeaveOrbJD,
				"occurrences are disjoint in time")
		}
	}
}

func TestAssemble_MoonEntryBelongsToOwnReturn(t *testing.T) {
	a := newAssembler()
	point := domain.NatalPoint{Name: "Aries Point", Longitude: 0}

	// Sixty days hold two Moon returns to natal 0, and each return enters
	// and leaves the 8 deg orb within about a day. Every lifecycle's entry
	// must sit hours before its own exact pass; attributing the previous
	// return's entry would inflate the duration to a full month.
	timings, err := a.Assemble(domain.Moon, point, domain.Conjunction, 8,
		jdOf(2024, 1, 1), jdOf(2024, 3, 1), 0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(timings), 2)

	for _, tt := range timings {
		assertLifecycleInvariants(t, tt)
		assert.Less(t, tt.ExactJDs[0]-tt.EnterOrbJD, 2.0)
		assert.Less(t, tt.DurationDays, 4.0)
	}
}

func TestAssemble_NoCrossingsYieldsEmpty(t *testing.T) {
	a := newAssembler()
	point := domain.NatalPoint{Name: "Opposite", Longitude: 180}

	// The Sun sits around 40..70 deg in May; it never conjoins natal 180.
	timings, err := a.Assemble(domain.Sun, point, domain.Conjunction, 8,
		jdOf(2024, 5, 1), jdOf(2024, 6, 1), 0)
	require.NoError(t, err)
	assert.Empty(t, timings)
}

func TestAssemble_UnknownAspectRejected(t *testing.T) {
	a := newAssembler()
	point := domain.NatalPoint{Name: "Aries Point", Longitude: 0}

	_, err := a.Assemble(domain.Sun, point, domain.AspectType("nonagon"), 8,
		jdOf(2024, 1, 1), jdOf(2024, 2, 1), 0)
	assert.ErrorIs(t, err, domain.ErrUnknownAspect)
}

func TestClusterGuard(t *testing.T) {
	a := newAssembler()

	// Fast bodies are capped by half their zodiac return: the Moon's guard
	// must sit below its 27-day return or monthly occurrences would merge.
	assert.Less(t, a.ClusterGuard(domain.Moon, 0), 27.0)

	// Mercury's guard must swallow the widest pass gap inside one loop
	// (~26 days) yet stay far below its synodic return.
	guard := a.ClusterGuard(domain.Mercury, 0)
	assert.Greater(t, guard, 26.0)
	assert.Less(t, guard, 100.0)

	// Slow bodies take the loop-plus-approach bound.
	assert.InDelta(t, 170.0, a.ClusterGuard(domain.Saturn, 0), 1e-9)
}
