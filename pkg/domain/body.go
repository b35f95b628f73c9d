package domain

// Body identifies a transiting celestial body.
type Body string

const (
	Sun     Body = "sun"
	Moon    Body = "moon"
	Mercury Body = "mercury"
	Venus   Body = "venus"
	Mars    Body = "mars"
	Jupiter Body = "jupiter"
	Saturn  Body = "saturn"
	Uranus  Body = "uranus"
	Neptune Body = "neptune"
	Pluto   Body = "pluto"
)

// Bodies lists every supported body in traditional order.
// Callers must not mutate the returned slice backing array; use Copy semantics
// if a reordered subset is needed.
func Bodies() []Body {
	return []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}
}

// IsLuminary reports whether the body is the Sun or the Moon.
// Luminaries widen orbs and are structurally incapable of apparent retrograde
// motion (the Sun's geocentric longitude and the Moon's always increase).
func (b Body) IsLuminary() bool {
	return b == Sun || b == Moon
}

// IsOuter reports whether the body belongs to the slow outer group
// (Saturn through Pluto) that receives the outer-planet orb extension.
func (b Body) IsOuter() bool {
	switch b {
	case Saturn, Uranus, Neptune, Pluto:
		return true
	}
	return false
}

// CanRetrograde reports whether the body can show apparent retrograde motion.
func (b Body) CanRetrograde() bool {
	return !b.IsLuminary()
}

// Valid reports whether b names a supported body.
func (b Body) Valid() bool {
	switch b {
	case Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto:
		return true
	}
	return false
}

// MotionTable maps each body to its mean apparent daily motion in degrees.
// It is an injectable catalog: the scan-step sizing, stationary thresholds and
// dedup-guard scaling all derive from it, so tests can substitute their own.
type MotionTable map[Body]float64

// DefaultMeanDailyMotion returns a fresh copy of the mean daily motion
// catalog (degrees/day, geocentric).
func DefaultMeanDailyMotion() MotionTable {
	return MotionTable{
		Sun:     0.9856,
		Moon:    13.1764,
		Mercury: 1.3833,
		Venus:   1.2000,
		Mars:    0.5240,
		Jupiter: 0.0831,
		Saturn:  0.0334,
		Uranus:  0.0117,
		Neptune: 0.0060,
		Pluto:   0.0040,
	}
}

// Speed returns the mean daily motion for a body, falling back to the Sun's
// rate for unknown entries so step sizing never divides by zero.
func (m MotionTable) Speed(b Body) float64 {
	if v, ok := m[b]; ok && v > 0 {
		return v
	}
	return 0.9856
}

// DefaultRetroLoopDays returns the typical duration of one retrograde
// period per body, in days. Crossing-cluster guards derive from it: all
// passes of one occurrence fall within roughly a loop plus approach.
func DefaultRetroLoopDays() map[Body]float64 {
	return map[Body]float64{
		Mercury: 24,
		Venus:   43,
		Mars:    75,
		Jupiter: 120,
		Saturn:  140,
		Uranus:  155,
		Neptune: 160,
		Pluto:   160,
	}
}
