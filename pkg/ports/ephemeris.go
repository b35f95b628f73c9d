package ports

import "github.com/Anonyfox/celestine-sub000/pkg/domain"

// Ephemeris is the position oracle contract.
//
// Implementations must be stateless pure functions of (body, jd): the whole
// engine assumes Position is safe for concurrent use and that the invariant
// Retrograde == (Speed < 0) holds. Dates outside the implementation's
// accuracy envelope must be rejected with domain.ErrDateOutOfRange.
type Ephemeris interface {
	// Position returns the geocentric ecliptic longitude, signed daily speed
	// and retrograde flag of a body at a Julian date.
	Position(body domain.Body, jd float64) (domain.Position, error)
}

// EphemerisFunc adapts a plain function to the Ephemeris interface.
type EphemerisFunc func(body domain.Body, jd float64) (domain.Position, error)

// Position implements Ephemeris.
func (f EphemerisFunc) Position(body domain.Body, jd float64) (domain.Position, error) {
	return f(body, jd)
}
