// Package solver finds the exact times at which a moving body forms a target
// aspect to a fixed natal longitude, and the times it enters or leaves the
// aspect's orb. It is a bisection root-finder over the signed deviation from
// exact; the companion package station bisects over speed instead, and the
// two primitives are deliberately kept apart.
package solver

import (
	"fmt"
	"math"
	"sort"

	"github.com/Anonyfox/celestine-sub000/pkg/angle"
	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ports"
)

const (
	// DefaultTolerance is the deviation tolerance, in degrees, for an exact
	// crossing.
	DefaultTolerance = 1e-4

	// boundaryTolerance is the |deviation - orb| tolerance for orb
	// boundaries, in degrees.
	boundaryTolerance = 1e-3

	// intervalFloor stops bisection when the bracket is narrower than about
	// 0.86 seconds; together with iterCap it guarantees termination.
	intervalFloor = 1e-5
	iterCap       = 100

	// mergeGuardDays collapses crossings closer than one day into one.
	mergeGuardDays = 1.0

	// degreesPerWindow sizes scan sub-windows: each window should see the
	// body move only a few degrees so a sign change cannot hide a double
	// crossing.
	degreesPerWindow = 5.0

	minStepDays = 0.5
	maxStepDays = 20.0
)

// Boundary selects the orb-boundary search direction.
type Boundary string

const (
	BoundaryEntry Boundary = "entry"
	BoundaryExit  Boundary = "exit"
)

// Solver runs deviation root-finding against a position oracle.
type Solver struct {
	eph    ports.Ephemeris
	motion domain.MotionTable
}

// New creates a Solver. A nil motion table falls back to the defaults.
func New(eph ports.Ephemeris, motion domain.MotionTable) *Solver {
	if motion == nil {
		motion = domain.DefaultMeanDailyMotion()
	}
	return &Solver{eph: eph, motion: motion}
}

// deviationFrom returns the signed offset of the body from a fixed branch
// longitude. The branch is held constant for an entire scan so the root
// function stays continuous (apart from the +-180 wrap, which the callers
// guard against).
func (s *Solver) deviationFrom(body domain.Body, branch, jd float64) (float64, error) {
	pos, err := s.eph.Position(body, jd)
	if err != nil {
		return 0, err
	}
	return angle.SignedDiff(pos.Longitude, branch), nil
}

// FindExactCrossing bisects one bracket [t0,t1] for a zero of the signed
// deviation from the aspect branch nearest the body at t0. It returns
// found=false when the endpoints share a sign (no crossing is detectable in
// the interval; callers must have scanned finely enough).
//
// Bisection always terminates: it stops at the tolerance, at an interval
// width of about a second, or at the iteration cap, and returns its best
// midpoint estimate regardless.
func (s *Solver) FindExactCrossing(body domain.Body, natalLon, aspectAngle, t0, t1, tolerance float64) (float64, bool, error) {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	pos, err := s.eph.Position(body, t0)
	if err != nil {
		return 0, false, err
	}
	branch := angle.NearestBranch(pos.Longitude, natalLon, aspectAngle)
	return s.bisectCrossing(body, branch, t0, t1, tolerance)
}

func (s *Solver) bisectCrossing(body domain.Body, branch, t0, t1, tolerance float64) (float64, bool, error) {
	d0, err := s.deviationFrom(body, branch, t0)
	if err != nil {
		return 0, false, err
	}
	if math.Abs(d0) < tolerance {
		return t0, true, nil
	}
	d1, err := s.deviationFrom(body, branch, t1)
	if err != nil {
		return 0, false, err
	}
	if math.Abs(d1) < tolerance {
		return t1, true, nil
	}
	if sameSign(d0, d1) {
		return 0, false, nil
	}
	if math.Abs(d0-d1) > 180 {
		// Wrap jump through the branch antipode, not a crossing.
		return 0, false, nil
	}

	lo, hi := t0, t1
	mid := 0.5 * (lo + hi)
	for i := 0; i < iterCap && hi-lo > intervalFloor; i++ {
		mid = 0.5 * (lo + hi)
		dm, err := s.deviationFrom(body, branch, mid)
		if err != nil {
			return 0, false, err
		}
		if math.Abs(dm) < tolerance {
			return mid, true, nil
		}
		if sameSign(d0, dm) {
			lo, d0 = mid, dm
		} else {
			hi = mid
		}
	}
	return mid, true, nil
}

// FindAllCrossings scans [start,end] for every exact crossing of the aspect,
// across both mirror branches for intermediate angles. Sub-windows are sized
// inversely to the body's mean daily motion so fast bodies get finer steps.
// Crossings within the one-day merge guard collapse into one. The result is
// sorted ascending and possibly empty.
func (s *Solver) FindAllCrossings(body domain.Body, natalLon, aspectAngle, start, end, stepDays float64) ([]float64, error) {
	if end <= start {
		return nil, fmt.Errorf("crossing scan [%f,%f]: %w", start, end, domain.ErrEmptyRange)
	}
	if stepDays <= 0 {
		stepDays = s.scanStep(body)
	}

	var crossings []float64
	for _, branch := range angle.Branches(natalLon, aspectAngle) {
		found, err := s.scanBranch(body, branch, start, end, stepDays)
		if err != nil {
			return nil, err
		}
		crossings = append(crossings, found...)
	}

	sort.Float64s(crossings)
	return mergeWithin(crossings, mergeGuardDays), nil
}

func (s *Solver) scanBranch(body domain.Body, branch, start, end, stepDays float64) ([]float64, error) {
	var out []float64
	for t0 := start; t0 < end; t0 += stepDays {
		t1 := math.Min(t0+stepDays, end)
		found, err := s.scanWindow(body, branch, t0, t1)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

func (s *Solver) scanWindow(body domain.Body, branch, t0, t1 float64) ([]float64, error) {
	jd, ok, err := s.bisectCrossing(body, branch, t0, t1, DefaultTolerance)
	if err != nil {
		return nil, err
	}
	if ok {
		return []float64{jd}, nil
	}

	// Same-sign endpoints can still hide a crossing pair when the body
	// reverses inside the window, as it does near a station. An opposite
	// sign at the midpoint exposes the pair; each half brackets one crossing.
	mid := 0.5 * (t0 + t1)
	d0, err := s.deviationFrom(body, branch, t0)
	if err != nil {
		return nil, err
	}
	dm, err := s.deviationFrom(body, branch, mid)
	if err != nil {
		return nil, err
	}
	if sameSign(d0, dm) || math.Abs(d0-dm) > 180 {
		return nil, nil
	}

	var out []float64
	for _, half := range [][2]float64{{t0, mid}, {mid, t1}} {
		jd, ok, err := s.bisectCrossing(body, branch, half[0], half[1], DefaultTolerance)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, jd)
		}
	}
	return out, nil
}

// FindOrbBoundary locates the time the deviation (not the raw separation)
// crosses the orb threshold in the requested direction, to a 0.001 degree
// tolerance. The scan runs forward and returns the first threshold crossing
// in the window; lifecycle entry attribution needs the latest one before a
// known in-orb instant, which FindOrbEntry provides.
//
// Entry semantics: already inside orb at start returns start; never entering
// returns found=false. Exit semantics: never leaving before end returns end;
// a window that is never inside orb at all returns found=false.
func (s *Solver) FindOrbBoundary(body domain.Body, natalLon, aspectAngle, orbDeg, start, end float64, kind Boundary) (float64, bool, error) {
	if end <= start {
		return 0, false, fmt.Errorf("boundary scan [%f,%f]: %w", start, end, domain.ErrEmptyRange)
	}

	step := s.boundaryStep(body, orbDeg)

	over, err := s.overOrb(body, natalLon, aspectAngle, orbDeg, start)
	if err != nil {
		return 0, false, err
	}

	switch kind {
	case BoundaryEntry:
		if !over {
			return start, true, nil
		}
	case BoundaryExit:
		// Skip ahead to the in-orb region first if the window opens outside.
		for over {
			start += step
			if start >= end {
				return 0, false, nil
			}
			over, err = s.overOrb(body, natalLon, aspectAngle, orbDeg, start)
			if err != nil {
				return 0, false, err
			}
		}
	default:
		return 0, false, fmt.Errorf("unknown boundary kind %q", kind)
	}

	// Coarse forward scan for the threshold crossing.
	prev := start
	for t := start + step; ; t += step {
		if t > end {
			t = end
		}
		over, err = s.overOrb(body, natalLon, aspectAngle, orbDeg, t)
		if err != nil {
			return 0, false, err
		}
		crossed := (kind == BoundaryEntry && !over) || (kind == BoundaryExit && over)
		if crossed {
			return s.bisectBoundary(body, natalLon, aspectAngle, orbDeg, prev, t, kind)
		}
		if t >= end {
			break
		}
		prev = t
	}

	if kind == BoundaryExit {
		// Still inside at the end of the window.
		return end, true, nil
	}
	return 0, false, nil
}

// FindOrbEntry locates the orb entry belonging to a known in-orb instant:
// the latest outside-to-inside threshold crossing at or before ref. The scan
// runs backward from ref, so an earlier visit that entered and left the same
// orb within [start, ref] is never attributed to this one. Fast bodies
// revisit an aspect's orb well inside any practical lookback (the Moon every
// 27 days), which rules out a forward scan here.
//
// Still inside orb all the way back to start returns start; ref already
// outside orb returns found=false.
func (s *Solver) FindOrbEntry(body domain.Body, natalLon, aspectAngle, orbDeg, start, ref float64) (float64, bool, error) {
	if ref <= start {
		return 0, false, fmt.Errorf("entry scan [%f,%f]: %w", start, ref, domain.ErrEmptyRange)
	}

	over, err := s.overOrb(body, natalLon, aspectAngle, orbDeg, ref)
	if err != nil {
		return 0, false, err
	}
	if over {
		return 0, false, nil
	}

	step := s.boundaryStep(body, orbDeg)
	inside := ref
	for t := ref - step; ; t -= step {
		if t < start {
			t = start
		}
		over, err = s.overOrb(body, natalLon, aspectAngle, orbDeg, t)
		if err != nil {
			return 0, false, err
		}
		if over {
			return s.bisectBoundary(body, natalLon, aspectAngle, orbDeg, t, inside, BoundaryEntry)
		}
		if t <= start {
			return start, true, nil
		}
		inside = t
	}
}

func (s *Solver) overOrb(body domain.Body, natalLon, aspectAngle, orbDeg, jd float64) (bool, error) {
	pos, err := s.eph.Position(body, jd)
	if err != nil {
		return false, err
	}
	return angle.Deviation(pos.Longitude, natalLon, aspectAngle) > orbDeg, nil
}

func (s *Solver) bisectBoundary(body domain.Body, natalLon, aspectAngle, orbDeg, lo, hi float64, kind Boundary) (float64, bool, error) {
	mid := 0.5 * (lo + hi)
	for i := 0; i < iterCap && hi-lo > intervalFloor; i++ {
		mid = 0.5 * (lo + hi)
		pos, err := s.eph.Position(body, mid)
		if err != nil {
			return 0, false, err
		}
		dev := angle.Deviation(pos.Longitude, natalLon, aspectAngle)
		if math.Abs(dev-orbDeg) < boundaryTolerance {
			return mid, true, nil
		}
		over := dev > orbDeg
		// Entry runs outside->inside, exit inside->outside.
		if (kind == BoundaryEntry) == over {
			lo = mid
		} else {
			hi = mid
		}
	}
	return mid, true, nil
}

// scanStep sizes crossing-scan windows so the body moves about
// degreesPerWindow per window at mean speed.
func (s *Solver) scanStep(body domain.Body) float64 {
	return clamp(degreesPerWindow/s.motion.Speed(body), minStepDays, maxStepDays)
}

// boundaryStep tunes the coarse boundary scan to body speed and orb width.
func (s *Solver) boundaryStep(body domain.Body, orbDeg float64) float64 {
	width := math.Max(orbDeg/2, 1)
	return clamp(width/s.motion.Speed(body), 0.25, maxStepDays)
}

func sameSign(a, b float64) bool {
	return (a >= 0) == (b >= 0)
}

func mergeWithin(sorted []float64, guard float64) []float64 {
	if len(sorted) == 0 {
		return nil
	}
	out := sorted[:1]
	for _, jd := range sorted[1:] {
		if jd-out[len(out)-1] > guard {
			out = append(out, jd)
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
