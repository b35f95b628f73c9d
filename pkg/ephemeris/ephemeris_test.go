package ephemeris_test

import (
	"testing"
	"time"

	"github.com/Anonyfox/celestine-sub000/pkg/angle"
	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ephemeris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJulianDate_Roundtrip(t *testing.T) {
	ts := time.Date(2024, 4, 8, 18, 18, 0, 0, time.UTC)
	jd := ephemeris.JulianDate(ts)
	assert.Equal(t, ts, ephemeris.Time(jd))

	// Known anchor: J2000 epoch.
	assert.InDelta(t, ephemeris.J2000,
		ephemeris.JulianDate(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)), 1e-9)
}

func TestValidateJD_Envelope(t *testing.T) {
	assert.NoError(t, ephemeris.ValidateJD(ephemeris.J2000))
	assert.NoError(t, ephemeris.ValidateJD(ephemeris.MinJD))

	assert.ErrorIs(t, ephemeris.ValidateJD(ephemeris.MinJD-1), domain.ErrDateOutOfRange)
	assert.ErrorIs(t, ephemeris.ValidateJD(ephemeris.MaxJD), domain.ErrDateOutOfRange)
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, ephemeris.ValidateRange(ephemeris.J2000, ephemeris.J2000+365))
	assert.ErrorIs(t, ephemeris.ValidateRange(ephemeris.J2000, ephemeris.J2000), domain.ErrEmptyRange)
	assert.ErrorIs(t, ephemeris.ValidateRange(ephemeris.MinJD-10, ephemeris.J2000), domain.ErrDateOutOfRange)
}

func TestOracle_SunAtJ2000(t *testing.T) {
	pos, err := ephemeris.New().Position(domain.Sun, ephemeris.J2000)
	require.NoError(t, err)

	// Swiss-ephemeris reference: 280.37 deg, just past the Capricorn ingress.
	assert.InDelta(t, 280.38, pos.Longitude, 0.3)
	assert.InDelta(t, 1.019, pos.Speed, 0.01, "near-perihelion solar speed")
	assert.False(t, pos.Retrograde)
}

func TestOracle_GreatConjunction2020(t *testing.T) {
	// 2020-12-21 18:00 UTC: Jupiter-Saturn conjunction at ~0.1 deg, both
	// direct near 300 deg (0 Aquarius).
	jd := ephemeris.JulianDate(time.Date(2020, 12, 21, 18, 0, 0, 0, time.UTC))
	oracle := ephemeris.New()

	jup, err := oracle.Position(domain.Jupiter, jd)
	require.NoError(t, err)
	sat, err := oracle.Position(domain.Saturn, jd)
	require.NoError(t, err)

	assert.Less(t, angle.Separation(jup.Longitude, sat.Longitude), 0.5)
	assert.InDelta(t, 300.2, jup.Longitude, 1.0)
	assert.InDelta(t, 300.2, sat.Longitude, 1.0)
	assert.Positive(t, jup.Speed)
	assert.Positive(t, sat.Speed)
}

func TestOracle_MoonAtSolarEclipse(t *testing.T) {
	// Total solar eclipse of 2024-04-08, maximum ~18:18 UTC: the Moon must
	// sit on top of the Sun in longitude.
	jd := ephemeris.JulianDate(time.Date(2024, 4, 8, 18, 18, 0, 0, time.UTC))
	oracle := ephemeris.New()

	sun, err := oracle.Position(domain.Sun, jd)
	require.NoError(t, err)
	moon, err := oracle.Position(domain.Moon, jd)
	require.NoError(t, err)

	assert.Less(t, angle.Separation(sun.Longitude, moon.Longitude), 1.0)
	assert.InDelta(t, 19.1, sun.Longitude, 0.5)
	assert.Greater(t, moon.Speed, 11.0)
	assert.Less(t, moon.Speed, 15.5)
}

func TestOracle_RetrogradeFlagMatchesSpeedSign(t *testing.T) {
	oracle := ephemeris.New()
	start := ephemeris.JulianDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	for _, body := range domain.Bodies() {
		sawRetro := false
		for i := 0; i < 120; i++ {
			pos, err := oracle.Position(body, start+float64(i)*3)
			require.NoError(t, err)
			assert.Equal(t, pos.Speed < 0, pos.Retrograde, "%s at step %d", body, i)
			assert.GreaterOrEqual(t, pos.Longitude, 0.0)
			assert.Less(t, pos.Longitude, 360.0)
			if pos.Retrograde {
				sawRetro = true
			}
		}
		if body.IsLuminary() {
			assert.False(t, sawRetro, "%s must never be retrograde", body)
		}
	}
}

func TestOracle_MercuryRetrogradeInApril2024(t *testing.T) {
	// Mercury was retrograde 2024-04-02 through 2024-04-25.
	oracle := ephemeris.New()
	mid := ephemeris.JulianDate(time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC))

	pos, err := oracle.Position(domain.Mercury, mid)
	require.NoError(t, err)
	assert.True(t, pos.Retrograde)
	assert.Negative(t, pos.Speed)
}

func TestOracle_Rejections(t *testing.T) {
	oracle := ephemeris.New()

	_, err := oracle.Position("vulcan", ephemeris.J2000)
	assert.ErrorIs(t, err, domain.ErrUnknownBody)

	_, err = oracle.Position(domain.Mars, ephemeris.MaxJD+100)
	assert.ErrorIs(t, err, domain.ErrDateOutOfRange)
}
