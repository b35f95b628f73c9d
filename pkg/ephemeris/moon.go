package ephemeris

import (
	"math"

	"github.com/Anonyfox/celestine-sub000/pkg/angle"
)

// moonLongitude returns the Moon's geocentric ecliptic longitude from a
// truncated mean-element series (leading periodic terms: equation of the
// center, evection, variation, annual equation). Accuracy is a few
// arcminutes, well inside orb scale.
func moonLongitude(jd float64) float64 {
	d := jd - J2000

	// Mean elements, degrees.
	lp := 218.3164477 + 13.17639648*d // mean longitude
	el := 297.8501921 + 12.19074912*d // mean elongation from the Sun
	ms := 357.5291092 + 0.98560028*d  // solar mean anomaly
	mm := 134.9633964 + 13.06499295*d // lunar mean anomaly
	f := 93.2720950 + 13.22935024*d   // argument of latitude

	s := func(x float64) float64 { return math.Sin(x * deg) }

	lon := lp +
		6.288774*s(mm) +
		1.274027*s(2*el-mm) +
		0.658314*s(2*el) +
		0.213618*s(2*mm) -
		0.185116*s(ms) -
		0.114332*s(2*f) +
		0.058793*s(2*el-2*mm) +
		0.057066*s(2*el-ms-mm) +
		0.053322*s(2*el+mm) +
		0.045758*s(2*el-ms) -
		0.040923*s(ms-mm) -
		0.034720*s(el) -
		0.030383*s(ms+mm) +
		0.015327*s(2*el-2*f) -
		0.012528*s(mm+2*f) +
		0.010980*s(mm-2*f)

	return angle.Normalize(lon)
}
