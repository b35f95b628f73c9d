/*
Package celestine is a transit-timing engine for astrology software: it finds
when moving planets form exact aspects to fixed natal chart points, and the
complete lifecycle of each event (orb entry, exact passes, orb exit).

The core problem is root-finding over non-monotonic functions. Planetary
longitude is not monotonic in time: apparent retrograde motion means a planet
can cross the same zodiacal degree three (occasionally five) times in one
approach. The engine therefore never assumes a single root. It windows the
date range by body speed, bisects each sign change of the deviation function
separately, and assembles the crossings into one logical event per cluster.

# Architecture

The library is layered hexagonally. The pure math lives in small packages
(angle, orb, detect, solver, station, timing, search); the position oracle is
a port (ports.Ephemeris) with a built-in Keplerian implementation and an
optional cache decorator; HTTP, MCP and Redis adapters sit at the edge and
depend only on the ports.

# Usage

Construct an Engine and run a search:

	package main

	import (
		"context"
		"fmt"
		"log"
		"time"

		celestine "github.com/Anonyfox/celestine-sub000"
		"github.com/Anonyfox/celestine-sub000/pkg/domain"
		"github.com/Anonyfox/celestine-sub000/pkg/search"
	)

	func main() {
		engine := celestine.New()

		chart := []domain.NatalPoint{
			{Name: "Natal Sun", Longitude: 125.5, Class: domain.ClassLuminary},
			{Name: "Ascendant", Longitude: 212.3, Class: domain.ClassAngle},
		}

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		result, err := engine.SearchTransits(context.Background(), chart, start, end, search.Config{})
		if err != nil {
			log.Fatal(err)
		}
		for _, t := range result.Timings {
			fmt.Printf("%s %s %s: %d exact pass(es)\n",
				t.Body, t.AspectType, t.NatalPoint.Name, t.ExactPasses)
		}
	}

Dates anywhere in 1800-2200 are supported; the built-in oracle rejects
anything outside that envelope rather than degrade silently.
*/
package celestine
