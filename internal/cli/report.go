package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ephemeris"
	"github.com/Anonyfox/celestine-sub000/pkg/search"
)

const dateLayout = "2006-01-02"

// RenderSearchResult formats a search result as markdown.
func RenderSearchResult(chartName string, result *search.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Transit Report: %s\n\n", chartName)
	fmt.Fprintf(&b, "%s to %s: %d event(s)\n\n",
		ephemeris.Time(result.Summary.StartJD).Format(dateLayout),
		ephemeris.Time(result.Summary.EndJD).Format(dateLayout),
		result.Summary.Total)

	if result.Summary.Total == 0 {
		b.WriteString("No transits found.\n")
		return b.String()
	}

	byMonth := result.ByMonth()
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	for _, month := range months {
		fmt.Fprintf(&b, "## %s\n\n", month)
		for _, t := range byMonth[month] {
			fmt.Fprintf(&b, "- **%s %s %s**: exact %s",
				t.Body, t.AspectType, t.NatalPoint.Name,
				t.ExactDates[0].Format(dateLayout))
			if t.ExactPasses > 1 {
				fmt.Fprintf(&b, " (%d passes", t.ExactPasses)
				if t.HasRetrogradePass {
					b.WriteString(", retrograde")
				}
				b.WriteString(")")
			}
			fmt.Fprintf(&b, ", in orb %s to %s\n",
				t.EnterOrbDate.Format(dateLayout),
				t.LeaveOrbDate.Format(dateLayout))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderStations formats station points as markdown.
func RenderStations(body domain.Body, stations []domain.StationPoint) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Stations: %s\n\n", body)
	if len(stations) == 0 {
		b.WriteString("No stations in range.\n")
		return b.String()
	}

	for _, s := range stations {
		fmt.Fprintf(&b, "- **%s** on %s at %.2f°\n",
			s.Type, ephemeris.Time(s.JD).Format(dateLayout), s.Longitude)
	}
	return b.String()
}

// RenderRetrogrades formats retrograde periods as markdown.
func RenderRetrogrades(body domain.Body, periods []domain.RetrogradePeriod) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Retrograde Periods: %s\n\n", body)
	if len(periods) == 0 {
		b.WriteString("No retrograde periods in range.\n")
		return b.String()
	}

	for _, p := range periods {
		fmt.Fprintf(&b, "- %s to %s (%.1f days), %.2f° back to %.2f°\n",
			ephemeris.Time(p.StationRetroJD).Format(dateLayout),
			ephemeris.Time(p.StationDirectJD).Format(dateLayout),
			p.DurationDays,
			p.StationRetroLongitude,
			p.StationDirectLongitude)
	}
	return b.String()
}
