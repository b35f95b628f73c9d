package ephemeris

import (
	"fmt"

	"github.com/Anonyfox/celestine-sub000/pkg/angle"
	"github.com/Anonyfox/celestine-sub000/pkg/domain"
)

// speedStep is the half-width, in days, of the symmetric finite difference
// used for longitudinal speed. Small enough that even the Moon moves well
// under a degree across it.
const speedStep = 0.02

// Oracle is the default ports.Ephemeris implementation. It is stateless and
// safe for concurrent use; construct once and share.
type Oracle struct{}

// New returns the default position oracle.
func New() *Oracle {
	return &Oracle{}
}

// Position returns the geocentric longitude, signed daily speed and
// retrograde flag of a body at a Julian date.
//
// The retrograde flag is derived from the speed sign, so the oracle contract
// Retrograde == (Speed < 0) holds by construction. Luminaries always report
// a positive speed.
func (o *Oracle) Position(body domain.Body, jd float64) (domain.Position, error) {
	if !body.Valid() {
		return domain.Position{}, fmt.Errorf("position of %q: %w", body, domain.ErrUnknownBody)
	}
	if err := ValidateJD(jd); err != nil {
		return domain.Position{}, fmt.Errorf("position of %q: %w", body, err)
	}

	lon := geocentricLongitude(body, jd)
	before := geocentricLongitude(body, jd-speedStep)
	after := geocentricLongitude(body, jd+speedStep)
	speed := angle.SignedDiff(after, before) / (2 * speedStep)

	return domain.Position{
		Longitude:  lon,
		Speed:      speed,
		Retrograde: speed < 0,
	}, nil
}
