/*
Package ephemeris implements the default position oracle: geocentric ecliptic
longitudes and daily speeds for the Sun, the Moon and the eight classical
planets plus Pluto.

Planetary longitudes come from heliocentric Keplerian elements with linear
per-century rates (solved through an iterative Kepler equation), reduced to
geocentric coordinates against the Earth-Moon barycenter. The Moon uses a
truncated mean-element series. Accuracy is in the arcminute range across the
supported envelope (1800-2200), which is sufficient for orb-scale transit
work; this is deliberately not an arbitrary-precision theory.

Speeds are symmetric finite differences, so the contract
Retrograde == (Speed < 0) holds by construction.
*/
package ephemeris
