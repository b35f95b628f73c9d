package ephemeris

import (
	"math"

	"github.com/Anonyfox/celestine-sub000/pkg/angle"
	"github.com/Anonyfox/celestine-sub000/pkg/domain"
)

const deg = math.Pi / 180

// heliocentric returns the body's heliocentric ecliptic rectangular
// coordinates (AU) at jd, from its Keplerian elements.
func heliocentric(body domain.Body, jd float64) (x, y, z float64) {
	t := (jd - J2000) / 36525.0
	el := planetElements[body].at(t)

	meanAnom := angle.SignedDiff(el.l, el.peri) * deg
	eccAnom := solveKepler(meanAnom, el.e)

	// Orbital-plane coordinates with the x axis toward perihelion.
	xp := el.a * (math.Cos(eccAnom) - el.e)
	yp := el.a * math.Sqrt(1-el.e*el.e) * math.Sin(eccAnom)

	argPeri := (el.peri - el.node) * deg
	node := el.node * deg
	incl := el.i * deg

	cw, sw := math.Cos(argPeri), math.Sin(argPeri)
	co, so := math.Cos(node), math.Sin(node)
	ci, si := math.Cos(incl), math.Sin(incl)

	x = (cw*co-sw*so*ci)*xp + (-sw*co-cw*so*ci)*yp
	y = (cw*so+sw*co*ci)*xp + (-sw*so+cw*co*ci)*yp
	z = (sw*si)*xp + (cw*si)*yp
	return x, y, z
}

// geocentricLongitude returns the apparent ecliptic longitude of a body as
// seen from Earth, in [0,360).
func geocentricLongitude(body domain.Body, jd float64) float64 {
	switch body {
	case domain.Sun:
		ex, ey, _ := heliocentric(bodyEarth, jd)
		return angle.Normalize(math.Atan2(-ey, -ex) / deg)
	case domain.Moon:
		return moonLongitude(jd)
	default:
		px, py, _ := heliocentric(body, jd)
		ex, ey, _ := heliocentric(bodyEarth, jd)
		return angle.Normalize(math.Atan2(py-ey, px-ex) / deg)
	}
}
