// Package search orchestrates transit scans over bodies, natal points and
// aspect types. It owns the outer triple loop, combination dedup, result
// ordering and grouping; the per-combination work lives in package timing.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Anonyfox/celestine-sub000/internal/logging"
	"github.com/Anonyfox/celestine-sub000/pkg/angle"
	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/ephemeris"
	"github.com/Anonyfox/celestine-sub000/pkg/orb"
	"github.com/Anonyfox/celestine-sub000/pkg/ports"
	"github.com/Anonyfox/celestine-sub000/pkg/solver"
	"github.com/Anonyfox/celestine-sub000/pkg/timing"
)

// Config tunes one search call. The zero value searches every body against
// the major aspects with default orbs and no budget.
type Config struct {
	// Bodies restricts the transiting bodies; empty means all.
	Bodies []domain.Body `json:"bodies,omitempty" yaml:"bodies,omitempty" mapstructure:"bodies"`

	// Aspects restricts the aspect types; empty means the major five.
	Aspects []domain.AspectType `json:"aspects,omitempty" yaml:"aspects,omitempty" mapstructure:"aspects"`

	// OrbOverrides replaces base orbs per aspect type; extensions still apply.
	OrbOverrides domain.OrbTable `json:"orb_overrides,omitempty" yaml:"orb_overrides,omitempty" mapstructure:"orb_overrides"`

	// MinStrength drops sampled events below this strength (0..100). It
	// binds point-in-time detection; assembled lifecycles always peak at
	// strength 100 on their exact passes and are never dropped by it.
	MinStrength int `json:"min_strength,omitempty" yaml:"min_strength,omitempty" mapstructure:"min_strength"`

	// DedupGuardDays tunes cluster grouping; zero takes the default.
	DedupGuardDays float64 `json:"dedup_guard_days,omitempty" yaml:"dedup_guard_days,omitempty" mapstructure:"dedup_guard_days"`

	// Motion substitutes the mean-motion catalog that sizes scan steps.
	Motion domain.MotionTable `json:"-" yaml:"-" mapstructure:"-"`

	// MaxCombinations bounds the search by unit of work; zero means no
	// bound. An exhausted budget returns the partial result alongside
	// domain.ErrBudgetExhausted.
	MaxCombinations int `json:"max_combinations,omitempty" yaml:"max_combinations,omitempty" mapstructure:"max_combinations"`

	// MaxDuration is the wall-clock analogue of MaxCombinations.
	MaxDuration time.Duration `json:"max_duration,omitempty" yaml:"max_duration,omitempty" mapstructure:"max_duration"`

	// Parallelism fans combinations out over this many workers; values
	// below 2 keep the scan sequential.
	Parallelism int `json:"parallelism,omitempty" yaml:"parallelism,omitempty" mapstructure:"parallelism"`
}

// Summary aggregates one search result.
type Summary struct {
	Total    int                       `json:"total"`
	ByAspect map[domain.AspectType]int `json:"by_aspect"`
	ByBody   map[domain.Body]int       `json:"by_body"`
	StartJD  float64                   `json:"start_jd"`
	EndJD    float64                   `json:"end_jd"`
	SpanDays float64                   `json:"span_days"`
}

// Result is the complete outcome of one search: lifecycles sorted by first
// exact pass, plus grouping views and a summary. It holds plain data with
// no oracle handles.
type Result struct {
	Timings []domain.TransitTiming `json:"timings"`
	Summary Summary                `json:"summary"`
}

// ByMonth groups timings by the calendar month ("2024-03") of their first
// exact pass.
func (r *Result) ByMonth() map[string][]domain.TransitTiming {
	out := make(map[string][]domain.TransitTiming)
	for _, t := range r.Timings {
		key := ephemeris.Time(t.FirstExactJD()).Format("2006-01")
		out[key] = append(out[key], t)
	}
	return out
}

// ByBody groups timings by transiting body.
func (r *Result) ByBody() map[domain.Body][]domain.TransitTiming {
	out := make(map[domain.Body][]domain.TransitTiming)
	for _, t := range r.Timings {
		out[t.Body] = append(out[t.Body], t)
	}
	return out
}

// ByNatalPoint groups timings by natal point name.
func (r *Result) ByNatalPoint() map[string][]domain.TransitTiming {
	out := make(map[string][]domain.TransitTiming)
	for _, t := range r.Timings {
		out[t.NatalPoint.Name] = append(out[t.NatalPoint.Name], t)
	}
	return out
}

// Orchestrator runs transit searches against one oracle and orb policy.
type Orchestrator struct {
	eph    ports.Ephemeris
	policy orb.Policy
	logger *slog.Logger
	hooks  domain.SearchHooks
}

// New creates an Orchestrator. A nil logger discards.
func New(eph ports.Ephemeris, policy orb.Policy, logger *slog.Logger, hooks domain.SearchHooks) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{eph: eph, policy: policy, logger: logger, hooks: hooks}
}

type combination struct {
	body   domain.Body
	point  domain.NatalPoint
	aspect domain.AspectType
}

// SearchTransits runs the triple loop over bodies, natal points and aspect
// types for [startJD, endJD). Cancellation is honored between combinations;
// an exhausted budget returns the partial result with ErrBudgetExhausted.
func (o *Orchestrator) SearchTransits(ctx context.Context, points []domain.NatalPoint, startJD, endJD float64, cfg Config) (*Result, error) {
	if err := validate(points, startJD, endJD, cfg); err != nil {
		return nil, err
	}

	bodies := cfg.Bodies
	if len(bodies) == 0 {
		bodies = domain.Bodies()
	}
	aspects := cfg.Aspects
	if len(aspects) == 0 {
		aspects = domain.MajorAspects()
	}
	motion := cfg.Motion
	if motion == nil {
		motion = domain.DefaultMeanDailyMotion()
	}

	combos := buildCombinations(bodies, points, aspects)
	truncated := cfg.MaxCombinations > 0 && len(combos) > cfg.MaxCombinations
	if truncated {
		combos = combos[:cfg.MaxCombinations]
	}

	o.logger.InfoContext(ctx, "transit search started",
		"bodies", len(bodies), "points", len(points), "aspects", len(aspects),
		"combinations", len(combos), "start_jd", startJD, "end_jd", endJD)

	asm := timing.New(solver.New(o.eph, motion), o.eph, motion)

	timings, err := o.run(ctx, asm, combos, startJD, endJD, cfg, truncated)
	if err != nil && len(timings) == 0 {
		return nil, err
	}

	sort.Slice(timings, func(i, j int) bool {
		return timings[i].FirstExactJD() < timings[j].FirstExactJD()
	})

	result := &Result{Timings: timings, Summary: summarize(timings, startJD, endJD)}
	o.logger.InfoContext(ctx, "transit search finished", "timings", len(timings))
	return result, err
}

func (o *Orchestrator) run(ctx context.Context, asm *timing.Assembler, combos []combination, startJD, endJD float64, cfg Config, truncated bool) ([]domain.TransitTiming, error) {
	deadline := time.Time{}
	if cfg.MaxDuration > 0 {
		deadline = time.Now().Add(cfg.MaxDuration)
	}

	collector := newCollector()
	var budgetErr error

	process := func(c combination) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return domain.ErrBudgetExhausted
		}
		if o.hooks.OnCombination != nil {
			o.hooks.OnCombination(ctx, &domain.CombinationEvent{
				Body: c.body, NatalPoint: c.point.Name, AspectType: c.aspect,
			})
		}

		effOrb, err := o.policy.EffectiveOrb(c.aspect, c.point.EffectiveClass(), c.body, cfg.OrbOverrides)
		if err != nil {
			return err
		}
		if effOrb <= 0 {
			return nil
		}

		found, err := asm.Assemble(c.body, c.point, c.aspect, effOrb, startJD, endJD, cfg.DedupGuardDays)
		if err != nil {
			return err
		}
		for _, t := range found {
			if collector.add(c, t, guardFor(asm, c.body, cfg.DedupGuardDays)) && o.hooks.OnTimingFound != nil {
				o.hooks.OnTimingFound(ctx, &domain.TimingEvent{Timing: t})
			}
		}
		return nil
	}

	if cfg.Parallelism > 1 {
		if err := runParallel(combos, cfg.Parallelism, process); err != nil {
			if err == domain.ErrBudgetExhausted {
				budgetErr = err
			} else {
				return collector.timings(), err
			}
		}
	} else {
		for _, c := range combos {
			if err := process(c); err != nil {
				if err == domain.ErrBudgetExhausted {
					budgetErr = err
					break
				}
				return collector.timings(), err
			}
		}
	}

	if budgetErr == nil && truncated {
		budgetErr = domain.ErrBudgetExhausted
	}
	return collector.timings(), budgetErr
}

// collector dedups lifecycles under a mutex so parallel workers can share it.
// The key is the logical combination; two clusters under the same key whose
// first exact passes fall within the guard window are one physical event.
type collector struct {
	mu   sync.Mutex
	seen map[combination][]domain.TransitTiming
}

func newCollector() *collector {
	return &collector{seen: make(map[combination][]domain.TransitTiming)}
}

// add records t unless an equivalent timing is already present; it reports
// whether the timing was new.
func (c *collector) add(key combination, t domain.TransitTiming, guard float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, prev := range c.seen[key] {
		if diff := t.FirstExactJD() - prev.FirstExactJD(); diff < guard && diff > -guard {
			return false
		}
	}
	c.seen[key] = append(c.seen[key], t)
	return true
}

func (c *collector) timings() []domain.TransitTiming {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.TransitTiming
	for _, ts := range c.seen {
		out = append(out, ts...)
	}
	return out
}

func runParallel(combos []combination, workers int, process func(combination) error) error {
	jobs := make(chan combination)
	errs := make(chan error, workers)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// A failed worker keeps draining jobs: the producer sends on an
			// unbuffered channel and must never be left without receivers.
			failed := false
			for c := range jobs {
				if failed {
					continue
				}
				if err := process(c); err != nil {
					select {
					case errs <- err:
					default:
					}
					failed = true
				}
			}
		}()
	}

	for _, c := range combos {
		jobs <- c
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}

func buildCombinations(bodies []domain.Body, points []domain.NatalPoint, aspects []domain.AspectType) []combination {
	combos := make([]combination, 0, len(bodies)*len(points)*len(aspects))
	for _, b := range bodies {
		for _, p := range points {
			p.Longitude = angle.Normalize(p.Longitude)
			for _, a := range aspects {
				combos = append(combos, combination{body: b, point: p, aspect: a})
			}
		}
	}
	return combos
}

func validate(points []domain.NatalPoint, startJD, endJD float64, cfg Config) error {
	if err := ephemeris.ValidateRange(startJD, endJD); err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("search: %w: no natal points", domain.ErrEmptyRange)
	}
	for _, b := range cfg.Bodies {
		if !b.Valid() {
			return fmt.Errorf("body %q: %w", b, domain.ErrUnknownBody)
		}
	}
	for _, a := range cfg.Aspects {
		if !a.Valid() {
			return fmt.Errorf("aspect %q: %w", a, domain.ErrUnknownAspect)
		}
	}
	for a, v := range cfg.OrbOverrides {
		if !a.Valid() {
			return fmt.Errorf("orb override %q: %w", a, domain.ErrUnknownAspect)
		}
		if v < 0 {
			return fmt.Errorf("orb override %q = %f: %w", a, v, domain.ErrNegativeOrb)
		}
	}
	if cfg.MinStrength < 0 || cfg.MinStrength > 100 {
		return fmt.Errorf("min strength %d outside [0,100]", cfg.MinStrength)
	}
	return nil
}

func summarize(timings []domain.TransitTiming, startJD, endJD float64) Summary {
	s := Summary{
		ByAspect: make(map[domain.AspectType]int),
		ByBody:   make(map[domain.Body]int),
		StartJD:  startJD,
		EndJD:    endJD,
		SpanDays: endJD - startJD,
	}
	for _, t := range timings {
		s.Total++
		s.ByAspect[t.AspectType]++
		s.ByBody[t.Body]++
	}
	return s
}

func guardFor(asm *timing.Assembler, body domain.Body, guardDays float64) float64 {
	return asm.ClusterGuard(body, guardDays)
}
