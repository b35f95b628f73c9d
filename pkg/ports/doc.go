/*
Package ports defines the interfaces between the transit engine and its
collaborators, following Hexagonal Architecture: the engine depends on these
contracts, adapters implement them.

  - Ephemeris: the position oracle every solver consumes.
  - PositionStore: a get/put memo for oracle samples (memory, Redis, ...).
*/
package ports
