// Package station detects the instants a body's longitudinal speed crosses
// zero and pairs them into retrograde periods. It bisects on speed, a
// different root function with different units and tolerances than the
// deviation root in package solver; the two are intentionally not shared.
package station

import (
	"errors"
	"fmt"
	"math"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ports"
)

const (
	// speedProbeDays offsets the before/after samples that disambiguate a
	// near-stationary body's direction.
	speedProbeDays = 0.5

	// bisection bounds for the speed root.
	intervalFloor = 1e-4
	iterCap       = 100

	// lookbackDays bounds the backward search for a station that opened
	// before the requested window.
	lookbackDays = 180.0

	// stationaryFraction of mean daily motion under which motion counts as
	// stationary.
	stationaryFraction = 0.05
)

// Finder locates stations and retrograde periods for one oracle.
type Finder struct {
	eph    ports.Ephemeris
	motion domain.MotionTable
}

// New creates a Finder. A nil motion table falls back to the defaults.
func New(eph ports.Ephemeris, motion domain.MotionTable) *Finder {
	if motion == nil {
		motion = domain.DefaultMeanDailyMotion()
	}
	return &Finder{eph: eph, motion: motion}
}

// ClassifyMotion reports direct, retrograde, or one of the two stationary
// states. Stationary samples are disambiguated by the speed trend just
// before and after t: decreasing speed means the body is about to turn
// retrograde.
func (f *Finder) ClassifyMotion(body domain.Body, jd float64) (domain.MotionState, error) {
	pos, err := f.eph.Position(body, jd)
	if err != nil {
		return "", err
	}

	threshold := stationaryFraction * f.motion.Speed(body)
	if math.Abs(pos.Speed) >= threshold {
		if pos.Speed > 0 {
			return domain.MotionDirect, nil
		}
		return domain.MotionRetrograde, nil
	}

	before, err := f.eph.Position(body, jd-speedProbeDays)
	if err != nil {
		return "", err
	}
	after, err := f.eph.Position(body, jd+speedProbeDays)
	if err != nil {
		return "", err
	}
	if after.Speed < before.Speed {
		return domain.MotionStationaryRetro, nil
	}
	return domain.MotionStationaryDirect, nil
}

// FindStationPoints scans [start,end] for speed zero-crossings. Bodies
// incapable of retrograde motion return empty immediately without scanning.
// Results are chronological and strictly alternate in type.
func (f *Finder) FindStationPoints(body domain.Body, start, end float64) ([]domain.StationPoint, error) {
	if end <= start {
		return nil, fmt.Errorf("station scan [%f,%f]: %w", start, end, domain.ErrEmptyRange)
	}
	if !body.CanRetrograde() {
		return nil, nil
	}

	step := f.scanStep(body)
	prev, err := f.eph.Position(body, start)
	if err != nil {
		return nil, err
	}

	var stations []domain.StationPoint
	prevT := start
	for t := start + step; prevT < end; t += step {
		if t > end {
			t = end
		}
		pos, err := f.eph.Position(body, t)
		if err != nil {
			return nil, err
		}
		if (prev.Speed < 0) != (pos.Speed < 0) {
			st, err := f.bisectStation(body, prevT, t, prev.Speed)
			if err != nil {
				return nil, err
			}
			stations = append(stations, st)
		}
		prev, prevT = pos, t
	}
	return stations, nil
}

// bisectStation narrows a bracketed speed sign change to the zero-crossing.
// loSpeed is the speed at the lower bracket edge; its sign decides the tag.
func (f *Finder) bisectStation(body domain.Body, lo, hi, loSpeed float64) (domain.StationPoint, error) {
	mid := 0.5 * (lo + hi)
	for i := 0; i < iterCap && hi-lo > intervalFloor; i++ {
		mid = 0.5 * (lo + hi)
		pos, err := f.eph.Position(body, mid)
		if err != nil {
			return domain.StationPoint{}, err
		}
		if (pos.Speed < 0) == (loSpeed < 0) {
			lo = mid
		} else {
			hi = mid
		}
	}

	pos, err := f.eph.Position(body, mid)
	if err != nil {
		return domain.StationPoint{}, err
	}
	kind := domain.StationRetrograde // + -> -
	if loSpeed < 0 {
		kind = domain.StationDirect // - -> +
	}
	return domain.StationPoint{Body: body, Type: kind, JD: mid, Longitude: pos.Longitude}, nil
}

// FindRetrogradePeriods pairs each station-retrograde with the next
// chronological station-direct. A window opening mid-retrograde triggers a
// bounded backward search for the missing retrograde station; a window
// closing mid-retrograde leaves the trailing station unpaired rather than
// guessed.
func (f *Finder) FindRetrogradePeriods(body domain.Body, start, end float64) ([]domain.RetrogradePeriod, error) {
	stations, err := f.FindStationPoints(body, start, end)
	if err != nil {
		return nil, err
	}

	if len(stations) > 0 && stations[0].Type == domain.StationDirect {
		// Mid-retrograde window start: look back for the opening station.
		if back, err := f.lastStationBefore(body, start, domain.StationRetrograde); err != nil {
			return nil, err
		} else if back != nil {
			stations = append([]domain.StationPoint{*back}, stations...)
		}
	}

	var periods []domain.RetrogradePeriod
	for i := 0; i < len(stations)-1; i++ {
		if stations[i].Type != domain.StationRetrograde || stations[i+1].Type != domain.StationDirect {
			continue
		}
		periods = append(periods, pair(body, stations[i], stations[i+1]))
	}
	return periods, nil
}

// GetCurrentRetrogradePeriod returns the period bracketing t, or nil when
// the body is not retrograde at t.
func (f *Finder) GetCurrentRetrogradePeriod(body domain.Body, jd float64) (*domain.RetrogradePeriod, error) {
	if !body.CanRetrograde() {
		return nil, nil
	}
	pos, err := f.eph.Position(body, jd)
	if err != nil {
		return nil, err
	}
	if !pos.Retrograde {
		return nil, nil
	}

	back, err := f.lastStationBefore(body, jd, domain.StationRetrograde)
	if err != nil {
		return nil, err
	}
	forward, err := f.FindStationPoints(body, jd, jd+lookbackDays)
	if errors.Is(err, domain.ErrDateOutOfRange) {
		// Bounded forward search ran off the ephemeris envelope.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if back == nil || len(forward) == 0 || forward[0].Type != domain.StationDirect {
		return nil, nil
	}

	p := pair(body, *back, forward[0])
	return &p, nil
}

// lastStationBefore scans up to lookbackDays before t for the most recent
// station of the wanted type.
func (f *Finder) lastStationBefore(body domain.Body, jd float64, want domain.StationType) (*domain.StationPoint, error) {
	stations, err := f.FindStationPoints(body, jd-lookbackDays, jd)
	if errors.Is(err, domain.ErrDateOutOfRange) {
		// Bounded lookback ran off the ephemeris envelope; treat as absent.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := len(stations) - 1; i >= 0; i-- {
		if stations[i].Type == want {
			return &stations[i], nil
		}
	}
	return nil, nil
}

func pair(body domain.Body, retro, direct domain.StationPoint) domain.RetrogradePeriod {
	return domain.RetrogradePeriod{
		Body:                   body,
		StationRetroJD:         retro.JD,
		StationDirectJD:        direct.JD,
		StationRetroLongitude:  retro.Longitude,
		StationDirectLongitude: direct.Longitude,
		DurationDays:           direct.JD - retro.JD,
	}
}

// scanStep adapts the station scan to body speed: fast bodies flip speed
// sign quickly and need daily sampling, slow ones can be probed sparsely.
func (f *Finder) scanStep(body domain.Body) float64 {
	step := 2.0 / f.motion.Speed(body)
	if step < 1 {
		return 1
	}
	if step > 10 {
		return 10
	}
	return step
}
