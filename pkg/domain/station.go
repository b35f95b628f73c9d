package domain

// MotionState classifies a body's longitudinal motion at an instant.
type MotionState string

const (
	MotionDirect           MotionState = "direct"
	MotionRetrograde       MotionState = "retrograde"
	MotionStationaryRetro  MotionState = "stationary-retrograde"
	MotionStationaryDirect MotionState = "stationary-direct"
)

// StationType tags a speed zero-crossing by its direction.
type StationType string

const (
	// StationRetrograde is a +/- speed crossing: the body is about to move backward.
	StationRetrograde StationType = "station-retrograde"
	// StationDirect is a -/+ speed crossing: the body resumes forward motion.
	StationDirect StationType = "station-direct"
)

// StationPoint is the instant a body's longitudinal speed crosses zero.
// Produced only for bodies capable of retrograde motion.
type StationPoint struct {
	Body      Body        `json:"body"`
	Type      StationType `json:"type"`
	JD        float64     `json:"jd"`
	Longitude float64     `json:"longitude"`
}

// RetrogradePeriod pairs a station-retrograde with the next station-direct.
// Invariant: StationRetroJD < StationDirectJD.
type RetrogradePeriod struct {
	Body                   Body    `json:"body"`
	StationRetroJD         float64 `json:"station_retro_jd"`
	StationDirectJD        float64 `json:"station_direct_jd"`
	StationRetroLongitude  float64 `json:"station_retro_longitude"`
	StationDirectLongitude float64 `json:"station_direct_longitude"`
	DurationDays           float64 `json:"duration_days"`
}
