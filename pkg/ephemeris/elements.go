package ephemeris

import "github.com/Anonyfox/celestine-sub000/pkg/domain"

// elements holds heliocentric Keplerian osculating elements at J2000 plus
// linear rates per Julian century: semi-major axis (AU), eccentricity,
// inclination, mean longitude, longitude of perihelion, longitude of the
// ascending node (degrees).
type elements struct {
	a, aDot       float64
	e, eDot       float64
	i, iDot       float64
	l, lDot       float64
	peri, periDot float64
	node, nodeDot float64
}

// planetElements is the element catalog (Standish-style mean elements and
// rates, heliocentric, ecliptic of J2000). The Earth entry is the Earth-Moon
// barycenter and doubles as the Sun's reflected geocentric position.
var planetElements = map[domain.Body]elements{
	domain.Mercury: {
		a: 0.38709927, aDot: 0.00000037,
		e: 0.20563593, eDot: 0.00001906,
		i: 7.00497902, iDot: -0.00594749,
		l: 252.25032350, lDot: 149472.67411175,
		peri: 77.45779628, periDot: 0.16047689,
		node: 48.33076593, nodeDot: -0.12534081,
	},
	domain.Venus: {
		a: 0.72333566, aDot: 0.00000390,
		e: 0.00677672, eDot: -0.00004107,
		i: 3.39467605, iDot: -0.00078890,
		l: 181.97909950, lDot: 58517.81538729,
		peri: 131.60246718, periDot: 0.00268329,
		node: 76.67984255, nodeDot: -0.27769418,
	},
	bodyEarth: {
		a: 1.00000261, aDot: 0.00000562,
		e: 0.01671123, eDot: -0.00004392,
		i: -0.00001531, iDot: -0.01294668,
		l: 100.46457166, lDot: 35999.37244981,
		peri: 102.93768193, periDot: 0.32327364,
		node: 0, nodeDot: 0,
	},
	domain.Mars: {
		a: 1.52371034, aDot: 0.00001847,
		e: 0.09339410, eDot: 0.00007882,
		i: 1.84969142, iDot: -0.00813131,
		l: -4.55343205, lDot: 19140.30268499,
		peri: -23.94362959, periDot: 0.44441088,
		node: 49.55953891, nodeDot: -0.29257343,
	},
	domain.Jupiter: {
		a: 5.20288700, aDot: -0.00011607,
		e: 0.04838624, eDot: -0.00013253,
		i: 1.30439695, iDot: -0.00183714,
		l: 34.39644051, lDot: 3034.74612775,
		peri: 14.72847983, periDot: 0.21252668,
		node: 100.47390909, nodeDot: 0.20469106,
	},
	domain.Saturn: {
		a: 9.53667594, aDot: -0.00125060,
		e: 0.05386179, eDot: -0.00050991,
		i: 2.48599187, iDot: 0.00193609,
		l: 49.95424423, lDot: 1222.49362201,
		peri: 92.59887831, periDot: -0.41897216,
		node: 113.66242448, nodeDot: -0.28867794,
	},
	domain.Uranus: {
		a: 19.18916464, aDot: -0.00196176,
		e: 0.04725744, eDot: -0.00004397,
		i: 0.77263783, iDot: -0.00242939,
		l: 313.23810451, lDot: 428.48202785,
		peri: 170.95427630, periDot: 0.40805281,
		node: 74.01692503, nodeDot: 0.04240589,
	},
	domain.Neptune: {
		a: 30.06992276, aDot: 0.00026291,
		e: 0.00859048, eDot: 0.00005105,
		i: 1.77004347, iDot: 0.00035372,
		l: -55.12002969, lDot: 218.45945325,
		peri: 44.96476227, periDot: -0.32241464,
		node: 131.78422574, nodeDot: -0.00508664,
	},
	domain.Pluto: {
		a: 39.48211675, aDot: -0.00031596,
		e: 0.24882730, eDot: 0.00005170,
		i: 17.14001206, iDot: 0.00004818,
		l: 238.92903833, lDot: 145.20780515,
		peri: 224.06891629, periDot: -0.04062942,
		node: 110.30393684, nodeDot: -0.01183482,
	},
}

// bodyEarth keys the Earth-Moon barycenter entry. It is not a public Body:
// callers ask for the Sun and get the reflected barycenter position.
const bodyEarth = domain.Body("earth")

// at evaluates the linear element rates at T Julian centuries from J2000.
func (el elements) at(t float64) elements {
	return elements{
		a: el.a + el.aDot*t,
		e: el.e + el.eDot*t,
		i: el.i + el.iDot*t,
		l: el.l + el.lDot*t,
		peri: el.peri + el.periDot*t,
		node: el.node + el.nodeDot*t,
	}
}
