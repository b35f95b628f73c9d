package ephemeris

import "math"

// keplerIterCap bounds the Newton iteration; the solver always terminates.
const keplerIterCap = 30

// keplerTol is the convergence tolerance on the eccentric anomaly, radians.
const keplerTol = 1e-10

// solveKepler solves E - e*sin(E) = M for the eccentric anomaly E by
// Newton-Raphson. M is in radians; e < 1 for every supported body, so the
// derivative 1 - e*cos(E) never vanishes.
func solveKepler(m, e float64) float64 {
	eccAnom := m + e*math.Sin(m)
	for i := 0; i < keplerIterCap; i++ {
		delta := (eccAnom - e*math.Sin(eccAnom) - m) / (1 - e*math.Cos(eccAnom))
		eccAnom -= delta
		if math.Abs(delta) < keplerTol {
			break
		}
	}
	return eccAnom
}
