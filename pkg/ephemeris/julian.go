package ephemeris

import (
	"fmt"
	"math"
	"time"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
)

// J2000 is the Julian date of the reference epoch 2000-01-01T12:00:00 TT.
const J2000 = 2451545.0

// MinJD and MaxJD bound the accuracy envelope: [1800-01-01, 2200-01-01) UTC.
// Dates outside are rejected before any series math runs.
const (
	MinJD = 2378496.5
	MaxJD = 2524593.5
)

// unixEpochJD is the Julian date of 1970-01-01T00:00:00Z.
const unixEpochJD = 2440587.5

// JulianDate converts a wall-clock time to a Julian date.
func JulianDate(t time.Time) float64 {
	return unixEpochJD + float64(t.UTC().UnixMilli())/86400000.0
}

// Time converts a Julian date back to UTC, rounded to the millisecond.
func Time(jd float64) time.Time {
	ms := (jd - unixEpochJD) * 86400000.0
	return time.UnixMilli(int64(math.Round(ms))).UTC()
}

// ValidateJD rejects Julian dates outside the supported envelope.
func ValidateJD(jd float64) error {
	if jd < MinJD || jd >= MaxJD {
		return fmt.Errorf("jd %.5f outside [%.1f, %.1f): %w", jd, MinJD, MaxJD, domain.ErrDateOutOfRange)
	}
	return nil
}

// ValidateRange rejects empty or out-of-envelope date ranges.
func ValidateRange(startJD, endJD float64) error {
	if endJD <= startJD {
		return fmt.Errorf("range [%.5f, %.5f]: %w", startJD, endJD, domain.ErrEmptyRange)
	}
	if err := ValidateJD(startJD); err != nil {
		return err
	}
	return ValidateJD(endJD)
}
