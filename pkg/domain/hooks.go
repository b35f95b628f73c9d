package domain

import "context"

// CombinationEvent describes one (body, natal point, aspect) unit of search work.
type CombinationEvent struct {
	Body       Body       `json:"body"`
	NatalPoint string     `json:"natal_point"`
	AspectType AspectType `json:"aspect_type"`
}

// TimingEvent wraps an assembled lifecycle for observers.
type TimingEvent struct {
	Timing TransitTiming `json:"timing"`
}

// SearchHooks defines optional callbacks for search observability.
// All callbacks may be nil and must not mutate their arguments.
type SearchHooks struct {
	OnCombination func(context.Context, *CombinationEvent)
	OnTimingFound func(context.Context, *TimingEvent)
}
