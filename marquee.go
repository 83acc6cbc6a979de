package marquee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/marquee/internal/config"
	"github.com/aretw0/marquee/internal/runtime"
	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/anim"
	"github.com/aretw0/marquee/pkg/clock"
	"github.com/aretw0/marquee/pkg/cycle"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/emitter"
	"github.com/aretw0/marquee/pkg/observability"
	"github.com/aretw0/marquee/pkg/pipeline"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/aretw0/marquee/pkg/scheduler"
)

// Config is the presentation configuration.
type Config = config.Config

// LoadConfig reads a YAML or TOML file over the embedded defaults. An empty
// path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() (*Config, error) {
	return config.Default()
}

// Presentation is the high-level entry point of the library.
// It wires the stage, animator, orchestrator and scheduler from a Config.
type Presentation struct {
	cfg      *Config
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	clock    clock.Clock
	animator ports.Animator
	engine   *anim.Engine
	rnd      *rand.Rand
	metrics  *observability.Metrics

	stage    *memory.Stage
	effects  *emitter.Factory
	composer *pipeline.Composer
	orch     *runtime.Orchestrator
	sched    *scheduler.Scheduler

	completed atomic.Int64
}

// Option defines a functional option for configuring the Presentation.
type Option func(*Presentation)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Presentation) {
		p.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Presentation) {
		p.hooks = hooks
	}
}

// WithClock replaces the wall clock driving schedule, finale and emitter
// timers.
func WithClock(c clock.Clock) Option {
	return func(p *Presentation) {
		p.clock = c
	}
}

// WithAnimator replaces the default frame engine.
func WithAnimator(a ports.Animator) Option {
	return func(p *Presentation) {
		p.animator = a
	}
}

// WithRand seeds particle placement and spawn jitter.
func WithRand(r *rand.Rand) Option {
	return func(p *Presentation) {
		p.rnd = r
	}
}

// WithMetrics records lifecycle events into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Presentation) {
		p.metrics = m
	}
}

// New validates cfg and builds a presentation. A nil cfg uses the embedded
// defaults.
func New(cfg *Config, opts ...Option) (*Presentation, error) {
	if cfg == nil {
		var err error
		if cfg, err = config.Default(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	p := &Presentation{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if p.clock == nil {
		p.clock = clock.New()
	}
	if p.animator == nil {
		p.engine = anim.NewEngine(
			anim.WithFrameInterval(cfg.Engine.FrameInterval),
			anim.WithLogger(p.logger.With("component", "engine")),
		)
		p.animator = p.engine
	} else if e, ok := p.animator.(*anim.Engine); ok {
		p.engine = e
	}

	sets := []domain.LifecycleHooks{p.hooks, {
		OnTransitionEnd: func(context.Context, *domain.TransitionEvent) { p.completed.Add(1) },
	}}
	if p.metrics != nil {
		sets = append(sets, p.metrics.Hooks())
	}
	hooks := observability.Chain(sets...)

	modes, err := cfg.Modes()
	if err != nil {
		return nil, err
	}
	machine, err := cycle.New(modes...)
	if err != nil {
		return nil, err
	}

	p.stage = memory.NewStage(cfg.ItemSpecs(), cfg.Highlights,
		memory.WithViewport(cfg.Viewport.Width, cfg.Viewport.Height))

	effectOpts := []emitter.Option{
		emitter.WithSettings(cfg.Emitter),
		emitter.WithLogger(p.logger.With("component", "emitter")),
		emitter.WithLifecycleHooks(hooks),
	}
	if p.rnd != nil {
		effectOpts = append(effectOpts, emitter.WithRand(p.rnd))
	}
	p.effects = emitter.NewFactory(p.animator, p.clock, effectOpts...)

	p.composer = pipeline.NewComposer(cfg.NarrativeTable(), p.effects, p.animator,
		pipeline.WithTiming(cfg.Timing),
		pipeline.WithLogger(p.logger.With("component", "pipeline")),
	)

	p.orch = runtime.NewOrchestrator(machine, p.stage, p.animator, p.composer, p.clock,
		runtime.WithLogger(p.logger.With("component", "orchestrator")),
		runtime.WithLifecycleHooks(hooks),
		runtime.WithFinaleDelay(cfg.Engine.FinaleDelay),
	)

	p.sched = scheduler.New(p.orch, p.animator, p.clock,
		scheduler.WithTiming(cfg.Schedule),
		scheduler.WithEntrance(func() (*anim.Timeline, error) {
			return p.composer.Entrance(p.stage.Items(), true)
		}),
		scheduler.WithLogger(p.logger.With("component", "scheduler")),
		scheduler.WithLifecycleHooks(hooks),
	)
	return p, nil
}

// Start plays the entrance and arms the transition loop. With the default
// engine, frames must be driven by Run or by the caller.
func (p *Presentation) Start(ctx context.Context) error {
	return p.sched.Start(ctx)
}

// Run drives the frame engine and the scheduler until ctx is done, then stops
// every timer.
func (p *Presentation) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	if p.engine != nil {
		g.Go(func() error { return p.engine.Run(ctx) })
	}
	g.Go(func() error { return p.sched.Run(ctx) })
	err := g.Wait()
	p.Stop()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Transition requests one transition now, outside the loop cadence.
func (p *Presentation) Transition(ctx context.Context) (bool, error) {
	return p.orch.Transition(ctx)
}

// Resize updates the viewport and debounces a loop run. It reports whether
// the reschedule was accepted.
func (p *Presentation) Resize(width, height int) bool {
	p.stage.Resize(width, height)
	return p.sched.Reschedule()
}

// SetVisible pauses playback while hidden.
func (p *Presentation) SetVisible(visible bool) {
	p.sched.SetVisible(visible)
}

// TogglePause flips playback and returns the new paused state.
func (p *Presentation) TogglePause() bool {
	if p.animator.Paused() {
		p.sched.Resume()
		return false
	}
	p.sched.Pause()
	return true
}

// Paused reports whether playback is frozen.
func (p *Presentation) Paused() bool {
	return p.animator.Paused()
}

// Stop cancels the loop, the pending finale and every emitter.
func (p *Presentation) Stop() {
	p.sched.Stop()
	p.orch.Close()
	p.effects.StopAll()
	p.logger.Debug("presentation stopped", "transitions", p.completed.Load())
}

// State returns a snapshot of the cycle.
func (p *Presentation) State() domain.CycleState {
	return p.orch.State()
}

// Completed returns the number of finished transitions.
func (p *Presentation) Completed() int {
	return int(p.completed.Load())
}

// Pending returns the names of armed timers, including the finale.
func (p *Presentation) Pending() []string {
	out := p.sched.Pending()
	if p.orch.FinalePending() {
		out = append(out, domain.SlotFinale)
	}
	return out
}

// Stage exposes the surface for rendering.
func (p *Presentation) Stage() *memory.Stage {
	return p.stage
}

// Effects exposes the particle emitter factory.
func (p *Presentation) Effects() *emitter.Factory {
	return p.effects
}

// Config returns the validated configuration.
func (p *Presentation) Config() *Config {
	return p.cfg
}
