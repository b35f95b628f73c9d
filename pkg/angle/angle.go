// Package angle provides the angular-separation primitives the whole engine
// is built on: normalization, shortest-arc separation, signed differences and
// aspect-branch selection on the 360 degree ecliptic circle.
package angle

import "math"

// Normalize wraps any angle into [0,360).
func Normalize(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Separation returns the shortest arc between two longitudes, in [0,180].
// It is symmetric, zero iff the angles coincide modulo 360, and satisfies
// the triangle inequality.
func Separation(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// SignedDiff returns the directional difference a-b wrapped into (-180,180].
// |SignedDiff(a,b)| equals Separation(a,b) up to floating tolerance.
func SignedDiff(a, b float64) float64 {
	d := Normalize(a) - Normalize(b)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// Branches returns the exact-aspect longitudes for a natal longitude and a
// target angle. Conjunctions and oppositions have a single solution; every
// intermediate angle has two mirror solutions around the natal point.
func Branches(natal, aspectAngle float64) []float64 {
	if aspectAngle == 0 || aspectAngle == 180 {
		return []float64{Normalize(natal + aspectAngle)}
	}
	return []float64{Normalize(natal + aspectAngle), Normalize(natal - aspectAngle)}
}

// NearestBranch picks the exact-aspect longitude closest to the body's
// current position. The branch must be fixed once per scan window and held
// for the life of one bisection call; re-picking mid-bisection would make
// the root function discontinuous.
func NearestBranch(bodyLon, natal, aspectAngle float64) float64 {
	branches := Branches(natal, aspectAngle)
	best := branches[0]
	bestSep := Separation(bodyLon, best)
	for _, br := range branches[1:] {
		if s := Separation(bodyLon, br); s < bestSep {
			best, bestSep = br, s
		}
	}
	return best
}

// Deviation returns the absolute distance of the separation between two
// longitudes from a target aspect angle.
func Deviation(bodyLon, natal, aspectAngle float64) float64 {
	return math.Abs(Separation(bodyLon, natal) - aspectAngle)
}

// SignIndex returns the zodiac sign index of a longitude (0 = Aries).
func SignIndex(lon float64) int {
	return int(Normalize(lon) / 30)
}
