package domain

import "time"

// TransitTiming is the assembled lifecycle of one aspect occurrence:
// orb entry, one or more exact passes, orb exit.
//
// Invariants: ExactJDs is sorted ascending and non-empty, ExactPasses ==
// len(ExactJDs), EnterOrbJD <= ExactJDs[0] and ExactJDs[last] <= LeaveOrbJD.
// The record owns copies of its dates; it holds no live oracle handles.
type TransitTiming struct {
	Body       Body       `json:"body"`
	NatalPoint NatalPoint `json:"natal_point"`
	AspectType AspectType `json:"aspect_type"`

	// Orb is the effective orb the lifecycle was assembled against.
	Orb float64 `json:"orb"`

	EnterOrbJD   float64   `json:"enter_orb_jd"`
	EnterOrbDate time.Time `json:"enter_orb_date"`

	ExactJDs   []float64   `json:"exact_jds"`
	ExactDates []time.Time `json:"exact_dates"`

	LeaveOrbJD   float64   `json:"leave_orb_jd"`
	LeaveOrbDate time.Time `json:"leave_orb_date"`

	DurationDays float64 `json:"duration_days"`

	// ExactPasses is normally 1; slow bodies yield 1, 3 or (rarely) 5 when
	// the window overlaps a retrograde loop over the natal longitude.
	ExactPasses int `json:"exact_passes"`

	// HasRetrogradePass is set when any exact pass happens in retrograde motion.
	HasRetrogradePass bool `json:"has_retrograde_pass"`
}

// FirstExactJD returns the earliest exact pass, or 0 for a zero record.
func (t TransitTiming) FirstExactJD() float64 {
	if len(t.ExactJDs) == 0 {
		return 0
	}
	return t.ExactJDs[0]
}
