/*
Package domain contains the core value types for the Celestine transit engine.

It defines the fundamental entities of the search: transiting Bodies, natal
points, aspect and orb catalogs, and the computed records (TransitEvent,
StationPoint, RetrogradePeriod, TransitTiming). This package is kept pure and
free of external dependencies like I/O or persistence; every record is an
immutable value object with no back-reference into the position oracle.

# Key Entities

  - Body: A transiting celestial body (Sun through Pluto).
  - NatalPoint: A fixed reference longitude from a chart.
  - TransitEvent: The classification of one (time, body, natal point) sample.
  - StationPoint / RetrogradePeriod: Speed zero-crossings and their pairing.
  - TransitTiming: The full orb-entry -> exact passes -> orb-exit lifecycle.
*/
package domain
