package celestine

import (
	"context"
	"log/slog"
	"time"

	"github.com/Anonyfox/celestine-sub000/internal/logging"
	"github.com/Anonyfox/celestine-sub000/pkg/detect"
	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ephemeris"
	"github.com/Anonyfox/celestine-sub000/pkg/orb"
	"github.com/Anonyfox/celestine-sub000/pkg/ports"
	"github.com/Anonyfox/celestine-sub000/pkg/search"
	"github.com/Anonyfox/celestine-sub000/pkg/station"
)

// Version is the library version, overridable at build time via ldflags.
var Version = "0.1.0"

// Engine is the high-level entry point for the Celestine library.
// It wires the position oracle, orb policy and solvers behind a simplified
// API for consumers.
type Engine struct {
	eph         ports.Ephemeris
	store       ports.PositionStore
	policy      orb.Policy
	logger      *slog.Logger
	hooks       domain.SearchHooks
	parallelism int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithEphemeris injects a custom position oracle, bypassing the built-in one.
func WithEphemeris(eph ports.Ephemeris) Option {
	return func(e *Engine) {
		e.eph = eph
	}
}

// WithPositionStore caches oracle samples in the given store.
func WithPositionStore(store ports.PositionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithOrbPolicy replaces the default orb policy.
func WithOrbPolicy(policy orb.Policy) Option {
	return func(e *Engine) {
		e.policy = policy
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks for search runs.
func WithHooks(hooks domain.SearchHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithParallelism fans search combinations out over this many workers.
func WithParallelism(workers int) Option {
	return func(e *Engine) {
		e.parallelism = workers
	}
}

// New initializes a new Engine. Without options it uses the built-in
// Keplerian oracle, the default orb policy and no cache.
func New(opts ...Option) *Engine {
	eng := &Engine{policy: orb.DefaultPolicy()}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.eph == nil {
		eng.eph = ephemeris.New()
	}
	if eng.store != nil {
		eng.eph = ephemeris.NewCached(eng.eph, eng.store)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	return eng
}

// SearchTransits scans the date range for transits of the configured bodies
// against the natal points. See search.Config for the tuning knobs; the
// zero value searches all bodies against the major aspects.
func (e *Engine) SearchTransits(ctx context.Context, points []domain.NatalPoint, start, end time.Time, cfg search.Config) (*search.Result, error) {
	if cfg.Parallelism == 0 {
		cfg.Parallelism = e.parallelism
	}
	orch := search.New(e.eph, e.policy, e.logger, e.hooks)
	return orch.SearchTransits(ctx, points, ephemeris.JulianDate(start), ephemeris.JulianDate(end), cfg)
}

// DetectAt classifies the instantaneous aspects of the configured bodies
// against the natal points at one moment. MinStrength and the aspect/body
// subsets of cfg apply; the date-range and budget fields are ignored.
func (e *Engine) DetectAt(ctx context.Context, points []domain.NatalPoint, at time.Time, cfg search.Config) ([]domain.TransitEvent, error) {
	jd := ephemeris.JulianDate(at)
	if err := ephemeris.ValidateJD(jd); err != nil {
		return nil, err
	}

	bodies := cfg.Bodies
	if len(bodies) == 0 {
		bodies = domain.Bodies()
	}

	detCfg := detect.DefaultConfig()
	if cfg.Motion != nil {
		detCfg.Motion = cfg.Motion
	}
	det := detect.New(e.policy, cfg.Aspects, detCfg)

	var events []domain.TransitEvent
	for _, body := range bodies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pos, err := e.eph.Position(body, jd)
		if err != nil {
			return nil, err
		}
		for _, point := range points {
			found, err := det.Detect(body, pos, point, cfg.OrbOverrides)
			if err != nil {
				return nil, err
			}
			for _, ev := range found {
				if ev.Strength >= cfg.MinStrength {
					events = append(events, ev)
				}
			}
		}
	}
	return events, nil
}

// FindStations returns the stations of one body in the date range,
// chronological and strictly alternating in type.
func (e *Engine) FindStations(ctx context.Context, body domain.Body, start, end time.Time) ([]domain.StationPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !body.Valid() {
		return nil, domain.ErrUnknownBody
	}
	f := station.New(e.eph, nil)
	return f.FindStationPoints(body, ephemeris.JulianDate(start), ephemeris.JulianDate(end))
}

// FindRetrogradePeriods returns the complete retrograde periods of one body
// in the date range.
func (e *Engine) FindRetrogradePeriods(ctx context.Context, body domain.Body, start, end time.Time) ([]domain.RetrogradePeriod, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !body.Valid() {
		return nil, domain.ErrUnknownBody
	}
	f := station.New(e.eph, nil)
	return f.FindRetrogradePeriods(body, ephemeris.JulianDate(start), ephemeris.JulianDate(end))
}

// CurrentRetrogradePeriod returns the retrograde period bracketing the
// given moment, or nil when the body is direct.
func (e *Engine) CurrentRetrogradePeriod(ctx context.Context, body domain.Body, at time.Time) (*domain.RetrogradePeriod, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !body.Valid() {
		return nil, domain.ErrUnknownBody
	}
	f := station.New(e.eph, nil)
	return f.GetCurrentRetrogradePeriod(body, ephemeris.JulianDate(at))
}
