package domain

// AspectType names a target angular relationship between two longitudes.
type AspectType string

const (
	Conjunction    AspectType = "conjunction"
	SemiSextile    AspectType = "semisextile"
	Decile         AspectType = "decile"
	Novile         AspectType = "novile"
	SemiSquare     AspectType = "semisquare"
	Septile        AspectType = "septile"
	Sextile        AspectType = "sextile"
	Quintile       AspectType = "quintile"
	Square         AspectType = "square"
	Trine          AspectType = "trine"
	Sesquiquadrate AspectType = "sesquiquadrate"
	Quincunx       AspectType = "quincunx"
	Opposition     AspectType = "opposition"
)

// aspectAngles is the canonical angle catalog in exact degrees.
var aspectAngles = map[AspectType]float64{
	Conjunction:    0,
	SemiSextile:    30,
	Decile:         36,
	Novile:         40,
	SemiSquare:     45,
	Septile:        360.0 / 7.0,
	Sextile:        60,
	Quintile:       72,
	Square:         90,
	Trine:          120,
	Sesquiquadrate: 135,
	Quincunx:       150,
	Opposition:     180,
}

// Angle returns the exact aspect angle in degrees and whether the type is known.
func (a AspectType) Angle() (float64, bool) {
	deg, ok := aspectAngles[a]
	return deg, ok
}

// Valid reports whether a names a known aspect type.
func (a AspectType) Valid() bool {
	_, ok := aspectAngles[a]
	return ok
}

// MajorAspects returns the five Ptolemaic aspects, the default search set.
func MajorAspects() []AspectType {
	return []AspectType{Conjunction, Sextile, Square, Trine, Opposition}
}

// AllAspects returns every supported aspect type, majors first, then minors
// in ascending angle order.
func AllAspects() []AspectType {
	return []AspectType{
		Conjunction, Sextile, Square, Trine, Opposition,
		SemiSextile, Decile, Novile, SemiSquare, Septile,
		Quintile, Sesquiquadrate, Quincunx,
	}
}

// OrbTable maps aspect types to a base orb in degrees.
type OrbTable map[AspectType]float64

// DefaultOrbs returns a fresh copy of the base orb catalog.
func DefaultOrbs() OrbTable {
	return OrbTable{
		Conjunction:    8,
		Opposition:     8,
		Trine:          7,
		Square:         7,
		Sextile:        5,
		Quincunx:       3,
		SemiSextile:    2,
		SemiSquare:     2,
		Sesquiquadrate: 2,
		Quintile:       2,
		Septile:        1.5,
		Novile:         1.5,
		Decile:         1.5,
	}
}
