// Package detect classifies single (time, body, natal point) samples against
// an aspect catalog: in-orb match, strength, applying/exact/separating phase
// and the out-of-sign flag.
package detect

import (
	"math"

	"github.com/Anonyfox/celestine-sub000/pkg/angle"
	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/orb"
)

// Config holds the classification thresholds. Immutable after construction.
type Config struct {
	// ExactThreshold is the deviation, in degrees, under which a sample is
	// phase "exact" regardless of trend. Default one arcminute.
	ExactThreshold float64

	// StationaryFraction scales each body's mean daily motion into its
	// stationary speed threshold. A near-stationary body counts as exact
	// at maximum intensity regardless of the deviation trend.
	StationaryFraction float64

	// Motion supplies mean daily motion per body.
	Motion domain.MotionTable
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		ExactThreshold:     1.0 / 60.0,
		StationaryFraction: 0.05,
		Motion:             domain.DefaultMeanDailyMotion(),
	}
}

// Detector classifies samples against a fixed aspect set and orb policy.
type Detector struct {
	policy  orb.Policy
	aspects []domain.AspectType
	cfg     Config
}

// New creates a Detector. A nil aspect set defaults to the major aspects.
func New(policy orb.Policy, aspects []domain.AspectType, cfg Config) *Detector {
	if len(aspects) == 0 {
		aspects = domain.MajorAspects()
	}
	if cfg.Motion == nil {
		cfg.Motion = domain.DefaultMeanDailyMotion()
	}
	return &Detector{policy: policy, aspects: aspects, cfg: cfg}
}

// Detect classifies one sample against every candidate aspect and returns
// the in-orb matches. No match is an empty result, not an error; errors are
// reserved for configuration problems (unknown aspect, negative orb).
func (d *Detector) Detect(body domain.Body, pos domain.Position, point domain.NatalPoint, overrides domain.OrbTable) ([]domain.TransitEvent, error) {
	natal := angle.Normalize(point.Longitude)
	var events []domain.TransitEvent

	for _, aspect := range d.aspects {
		target, _ := aspect.Angle()
		effOrb, err := d.policy.EffectiveOrb(aspect, point.EffectiveClass(), body, overrides)
		if err != nil {
			return nil, err
		}

		sep := angle.Separation(pos.Longitude, natal)
		dev := math.Abs(sep - target)
		if dev > effOrb {
			continue
		}

		branch := angle.NearestBranch(pos.Longitude, natal, target)
		offset := angle.SignedDiff(pos.Longitude, branch)
		stationary := d.cfg.StationaryFraction * d.cfg.Motion.Speed(body)

		events = append(events, domain.TransitEvent{
			Body:        body,
			NatalPoint:  point,
			AspectType:  aspect,
			AspectAngle: target,
			Separation:  sep,
			Deviation:   dev,
			Orb:         effOrb,
			Strength:    strength(dev, effOrb),
			Phase:       ClassifyPhase(offset, pos.Speed, d.cfg.ExactThreshold, stationary),
			Retrograde:  pos.Retrograde,
			OutOfSign:   OutOfSign(pos.Longitude, natal, target),
		})
	}
	return events, nil
}

// ClassifyPhase decides applying/exact/separating from the signed offset to
// the chosen aspect branch and the signed daily speed.
//
// The offset sign says which side of the exact point the body is on; the
// deviation |offset| is shrinking exactly when offset and speed disagree in
// sign, so retrograde motion reverses the classification for free. The
// branch itself is chosen by angle.NearestBranch and must stay fixed for the
// life of one scan window.
func ClassifyPhase(signedOffset, speed, exactThreshold, stationaryThreshold float64) domain.Phase {
	if math.Abs(signedOffset) <= exactThreshold || math.Abs(speed) < stationaryThreshold {
		return domain.PhaseExact
	}
	if signedOffset*speed < 0 {
		return domain.PhaseApplying
	}
	return domain.PhaseSeparating
}

// OutOfSign reports whether an aspect is dissociate: the zodiac-sign
// distance between the longitudes matches neither the nominal sign distance
// implied by the aspect angle (rounded to the nearest whole sign) nor its
// complement.
func OutOfSign(bodyLon, natalLon, aspectAngle float64) bool {
	nominal := int(math.Round(aspectAngle/30)) % 12
	complement := (12 - nominal) % 12

	actual := (angle.SignIndex(bodyLon) - angle.SignIndex(natalLon)) % 12
	if actual < 0 {
		actual += 12
	}
	return actual != nominal && actual != complement
}

// strength maps deviation linearly to 0..100, clamped. An orb of zero only
// matches an exactly zero deviation and scores full strength.
func strength(dev, effOrb float64) int {
	if effOrb == 0 {
		return 100
	}
	s := int(math.Round((1 - dev/effOrb) * 100))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
