package domain

import "errors"

// ErrUnknownBody is returned when a body name is not in the catalog.
var ErrUnknownBody = errors.New("unknown body")

// ErrUnknownAspect is returned when an aspect type is not in the catalog.
var ErrUnknownAspect = errors.New("unknown aspect type")

// ErrNegativeOrb is returned when an orb override composes to a negative orb.
var ErrNegativeOrb = errors.New("negative orb")

// ErrDateOutOfRange is returned for dates outside the ephemeris accuracy envelope.
var ErrDateOutOfRange = errors.New("date outside ephemeris range")

// ErrEmptyRange is returned when a search range has end <= start.
var ErrEmptyRange = errors.New("empty date range")

// ErrPositionNotCached is returned by position stores on a cache miss.
var ErrPositionNotCached = errors.New("position not cached")

// ErrBudgetExhausted is returned when a search stops early because its
// step-count or wall-clock budget ran out. Partial results accompany it.
var ErrBudgetExhausted = errors.New("search budget exhausted")
