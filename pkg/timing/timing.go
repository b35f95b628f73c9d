// Package timing assembles complete transit lifecycles: orb entry, one or
// more exact passes, orb exit. It sits on top of the crossing scan in
// package solver and turns raw crossing instants into TransitTiming records.
package timing

import (
	"fmt"
	"math"
	"time"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ephemeris"
	"github.com/Anonyfox/celestine-sub000/pkg/ports"
	"github.com/Anonyfox/celestine-sub000/pkg/solver"
)

// boundaryLookbackDays bounds the entry search before the first crossing
// and the exit search after the last one (about six months), clipped to the
// caller's window.
const boundaryLookbackDays = 183.0

// DefaultClusterGuardDays is the base guard for grouping crossings into one
// occurrence. Tunable per call; see ClusterGuard for the per-body scaling.
const DefaultClusterGuardDays = 30.0

// Assembler builds TransitTiming records for one oracle.
type Assembler struct {
	sol      *solver.Solver
	eph      ports.Ephemeris
	motion   domain.MotionTable
	loopDays map[domain.Body]float64
}

// New creates an Assembler sharing the given solver and oracle.
// Nil tables fall back to the defaults.
func New(sol *solver.Solver, eph ports.Ephemeris, motion domain.MotionTable) *Assembler {
	if motion == nil {
		motion = domain.DefaultMeanDailyMotion()
	}
	return &Assembler{
		sol:      sol,
		eph:      eph,
		motion:   motion,
		loopDays: domain.DefaultRetroLoopDays(),
	}
}

// ClusterGuard returns the gap, in days, above which two crossings belong
// to separate occurrences of the same aspect.
//
// The guard must exceed the widest pass spacing inside one retrograde loop
// yet stay below the body's return period to the same longitude. Half the
// zodiac return covers the fast bodies (the Moon returns in 27 days), the
// loop duration plus the base guard covers the slow ones.
func (a *Assembler) ClusterGuard(body domain.Body, guardDays float64) float64 {
	if guardDays <= 0 {
		guardDays = DefaultClusterGuardDays
	}
	halfReturn := 0.5 * 360.0 / a.motion.Speed(body)
	loop := a.loopDays[body] + guardDays
	return math.Min(halfReturn, loop)
}

// Assemble runs the crossing scan for one (body, natal point, aspect) and
// returns one lifecycle per crossing cluster, in chronological order. Zero
// crossings in the window yield an empty result, not an error.
func (a *Assembler) Assemble(body domain.Body, point domain.NatalPoint, aspect domain.AspectType, orbDeg, startJD, endJD, guardDays float64) ([]domain.TransitTiming, error) {
	target, ok := aspect.Angle()
	if !ok {
		return nil, fmt.Errorf("aspect %q: %w", aspect, domain.ErrUnknownAspect)
	}

	crossings, err := a.sol.FindAllCrossings(body, point.Longitude, target, startJD, endJD, 0)
	if err != nil {
		return nil, err
	}
	if len(crossings) == 0 {
		return nil, nil
	}

	var timings []domain.TransitTiming
	for _, cluster := range clusterBy(crossings, a.ClusterGuard(body, guardDays)) {
		t, err := a.assembleCluster(body, point, aspect, target, orbDeg, cluster, startJD, endJD)
		if err != nil {
			return nil, err
		}
		timings = append(timings, t)
	}
	return timings, nil
}

func (a *Assembler) assembleCluster(body domain.Body, point domain.NatalPoint, aspect domain.AspectType, target, orbDeg float64, cluster []float64, startJD, endJD float64) (domain.TransitTiming, error) {
	first, last := cluster[0], cluster[len(cluster)-1]

	// Entry is the latest threshold crossing before the first exact pass,
	// searched backward and clipped to the window start. A previous return
	// that entered and left the same orb inside the lookback belongs to its
	// own occurrence, never to this one.
	entryStart := math.Max(first-boundaryLookbackDays, startJD)
	enter := entryStart
	if entryStart < first {
		jd, found, err := a.sol.FindOrbEntry(body, point.Longitude, target, orbDeg, entryStart, first)
		if err != nil {
			return domain.TransitTiming{}, err
		}
		if found {
			enter = jd
		}
	}

	// Exit searched forward from the last crossing, symmetric bound; the
	// solver returns the scan end when the body never leaves orb in it.
	exitEnd := math.Min(last+boundaryLookbackDays, endJD)
	leave := exitEnd
	if last < exitEnd {
		jd, found, err := a.sol.FindOrbBoundary(body, point.Longitude, target, orbDeg, last, exitEnd, solver.BoundaryExit)
		if err != nil {
			return domain.TransitTiming{}, err
		}
		if found {
			leave = jd
		}
	}

	retro := false
	for _, jd := range cluster {
		pos, err := a.eph.Position(body, jd)
		if err != nil {
			return domain.TransitTiming{}, err
		}
		if pos.Retrograde {
			retro = true
		}
	}

	exactJDs := make([]float64, len(cluster))
	copy(exactJDs, cluster)
	exactDates := make([]time.Time, len(exactJDs))
	for i, jd := range exactJDs {
		exactDates[i] = ephemeris.Time(jd)
	}

	return domain.TransitTiming{
		Body:              body,
		NatalPoint:        point,
		AspectType:        aspect,
		Orb:               orbDeg,
		EnterOrbJD:        enter,
		EnterOrbDate:      ephemeris.Time(enter),
		ExactJDs:          exactJDs,
		ExactDates:        exactDates,
		LeaveOrbJD:        leave,
		LeaveOrbDate:      ephemeris.Time(leave),
		DurationDays:      leave - enter,
		ExactPasses:       len(exactJDs),
		HasRetrogradePass: retro,
	}, nil
}

// clusterBy splits sorted crossings into groups separated by more than the
// guard gap.
func clusterBy(sorted []float64, guard float64) [][]float64 {
	var clusters [][]float64
	cur := []float64{sorted[0]}
	for _, jd := range sorted[1:] {
		if jd-cur[len(cur)-1] > guard {
			clusters = append(clusters, cur)
			cur = nil
		}
		cur = append(cur, jd)
	}
	return append(clusters, cur)
}
