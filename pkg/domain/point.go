package domain

// PointClass categorizes a natal point for orb composition.
type PointClass string

const (
	// ClassLuminary marks the chart's Sun or Moon.
	ClassLuminary PointClass = "luminary"
	// ClassAngle marks the four chart angles (Ascendant, MC, ...).
	ClassAngle PointClass = "angle"
	// ClassStandard marks every other point.
	ClassStandard PointClass = "standard"
)

// NatalPoint is a fixed reference longitude from a chart. Immutable input.
type NatalPoint struct {
	// Name must be unique within one chart (e.g. "Sun", "MC").
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Longitude is the ecliptic longitude in degrees, normalized to [0,360).
	Longitude float64 `json:"longitude" yaml:"longitude" mapstructure:"longitude"`

	// Class drives orb extensions. Empty defaults to ClassStandard.
	Class PointClass `json:"class,omitempty" yaml:"class,omitempty" mapstructure:"class"`
}

// EffectiveClass returns the class, treating empty as ClassStandard.
func (p NatalPoint) EffectiveClass() PointClass {
	if p.Class == "" {
		return ClassStandard
	}
	return p.Class
}

// Position is the position oracle's output contract for one sample.
// Invariant: Retrograde == (Speed < 0).
type Position struct {
	// Longitude is the geocentric ecliptic longitude in degrees, [0,360).
	Longitude float64 `json:"longitude"`

	// Speed is the signed longitudinal speed in degrees/day.
	Speed float64 `json:"speed"`

	// Retrograde mirrors the sign of Speed.
	Retrograde bool `json:"retrograde"`
}
