package cli

import (
	"testing"
	"time"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ephemeris"
	"github.com/Anonyfox/celestine-sub000/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestRenderSearchResult(t *testing.T) {
	exact := time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC)
	result := &search.Result{
		Timings: []domain.TransitTiming{{
			Body:              domain.Mercury,
			NatalPoint:        domain.NatalPoint{Name: "Natal Sun"},
			AspectType:        domain.Conjunction,
			ExactJDs:          []float64{ephemeris.JulianDate(exact)},
			ExactDates:        []time.Time{exact},
			EnterOrbDate:      exact.AddDate(0, 0, -8),
			LeaveOrbDate:      exact.AddDate(0, 0, 8),
			ExactPasses:       3,
			HasRetrogradePass: true,
		}},
		Summary: search.Summary{
			Total:   1,
			StartJD: ephemeris.JulianDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			EndJD:   ephemeris.JulianDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
	}

	md := RenderSearchResult("Example", result)
	assert.Contains(t, md, "# Transit Report: Example")
	assert.Contains(t, md, "## 2024-03")
	assert.Contains(t, md, "mercury conjunction Natal Sun")
	assert.Contains(t, md, "3 passes, retrograde")
	assert.Contains(t, md, "2024-03-12")

	empty := &search.Result{Summary: search.Summary{
		StartJD: result.Summary.StartJD, EndJD: result.Summary.EndJD,
	}}
	assert.Contains(t, RenderSearchResult("Example", empty), "No transits found")
}

func TestRenderStations(t *testing.T) {
	jd := ephemeris.JulianDate(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
	md := RenderStations(domain.Mercury, []domain.StationPoint{
		{Body: domain.Mercury, Type: domain.StationRetrograde, JD: jd, Longitude: 27.2},
	})
	assert.Contains(t, md, "# Stations: mercury")
	assert.Contains(t, md, "station-retrograde")
	assert.Contains(t, md, "2024-04-02")

	assert.Contains(t, RenderStations(domain.Sun, nil), "No stations")
}

func TestRenderRetrogrades(t *testing.T) {
	retro := ephemeris.JulianDate(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
	md := RenderRetrogrades(domain.Mercury, []domain.RetrogradePeriod{{
		Body:                   domain.Mercury,
		StationRetroJD:         retro,
		StationDirectJD:        retro + 23,
		StationRetroLongitude:  27.2,
		StationDirectLongitude: 15.9,
		DurationDays:           23,
	}})
	assert.Contains(t, md, "# Retrograde Periods: mercury")
	assert.Contains(t, md, "23.0 days")

	assert.Contains(t, RenderRetrogrades(domain.Mercury, nil), "No retrograde periods")
}
