// Package orb composes effective orbs from a base table plus additive
// modifiers for luminaries, chart angles and outer planets.
package orb

import (
	"fmt"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
)

// Policy holds the orb catalog and the three extension constants.
// The zero value is unusable; construct via DefaultPolicy and adjust fields.
// Policies are value objects: copy, never share mutable state.
type Policy struct {
	// Base maps each aspect type to its base orb in degrees.
	Base domain.OrbTable

	// LuminaryExtension is added when the body or the natal point is a luminary.
	LuminaryExtension float64

	// AngleExtension is added when the natal point is a chart angle.
	AngleExtension float64

	// OuterExtension is added when the body is Saturn through Pluto.
	OuterExtension float64
}

// DefaultPolicy returns the stock policy: default orb table, +2 for
// luminaries, +1 for chart angles, +1 for outer planets.
func DefaultPolicy() Policy {
	return Policy{
		Base:              domain.DefaultOrbs(),
		LuminaryExtension: 2,
		AngleExtension:    1,
		OuterExtension:    1,
	}
}

// EffectiveOrb composes the orb for one (aspect, natal class, body)
// combination. Overrides replace only the base term, before extensions are
// added. A configured base of 0 disables the aspect: extensions still apply
// to a positive base, but a zero override yields orb 0 and only an exact
// zero-deviation sample can match.
//
// Unknown aspect types and negative composed orbs are rejected at this
// boundary so they never reach the solvers.
func (p Policy) EffectiveOrb(aspect domain.AspectType, pointClass domain.PointClass, body domain.Body, overrides domain.OrbTable) (float64, error) {
	if !aspect.Valid() {
		return 0, fmt.Errorf("effective orb for %q: %w", aspect, domain.ErrUnknownAspect)
	}
	if !body.Valid() {
		return 0, fmt.Errorf("effective orb for %q: %w", body, domain.ErrUnknownBody)
	}

	base, ok := overrides[aspect]
	if !ok {
		base, ok = p.Base[aspect]
		if !ok {
			return 0, fmt.Errorf("no base orb configured for %q: %w", aspect, domain.ErrUnknownAspect)
		}
	}
	if base < 0 {
		return 0, fmt.Errorf("base orb %.3f for %q: %w", base, aspect, domain.ErrNegativeOrb)
	}
	if base == 0 {
		// Explicitly disabled: no extensions can re-enable it.
		return 0, nil
	}

	orb := base
	if body.IsLuminary() || pointClass == domain.ClassLuminary {
		orb += p.LuminaryExtension
	}
	if pointClass == domain.ClassAngle {
		orb += p.AngleExtension
	}
	if body.IsOuter() {
		orb += p.OuterExtension
	}
	if orb < 0 {
		return 0, fmt.Errorf("composed orb %.3f for %q: %w", orb, aspect, domain.ErrNegativeOrb)
	}
	return orb, nil
}
