package domain

// Phase describes the deviation trend of an in-orb aspect sample.
type Phase string

const (
	PhaseApplying   Phase = "applying"
	PhaseExact      Phase = "exact"
	PhaseSeparating Phase = "separating"
)

// TransitEvent is the ephemeral classification of a single
// (time, body, natal point) sample against one aspect type.
//
// Invariants: Deviation == |Separation - AspectAngle|, Separation in [0,180],
// Strength is 100 at zero deviation, 0 at the orb edge, linear in between.
type TransitEvent struct {
	Body        Body       `json:"body"`
	NatalPoint  NatalPoint `json:"natal_point"`
	AspectType  AspectType `json:"aspect_type"`
	AspectAngle float64    `json:"aspect_angle"`

	// Separation is the shortest arc between the two longitudes, [0,180].
	Separation float64 `json:"separation"`

	// Deviation is the absolute distance from the exact aspect angle.
	Deviation float64 `json:"deviation"`

	// Orb is the effective orb the sample was classified against.
	Orb float64 `json:"orb"`

	// Strength is 0..100, linear in deviation, clamped.
	Strength int `json:"strength"`

	Phase      Phase `json:"phase"`
	Retrograde bool  `json:"retrograde"`

	// OutOfSign marks a dissociate aspect: the zodiac-sign distance of the
	// two longitudes matches neither the nominal sign distance implied by
	// the aspect angle nor its complement.
	OutOfSign bool `json:"out_of_sign,omitempty"`
}
