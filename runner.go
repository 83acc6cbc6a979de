package marquee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/marquee/pkg/anim"
	"github.com/aretw0/marquee/pkg/clock"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/observability"
)

// DefaultStep is the virtual clock increment used by Runner.
const DefaultStep = 100 * time.Millisecond

// ErrStalled is returned when a trace has no pending timer left before
// reaching its transition count.
var ErrStalled = errors.New("presentation stalled: no pending timers")

// Runner drives a presentation headlessly on a virtual clock with the
// discrete-event animator. Each lifecycle event becomes one output line.
type Runner struct {
	Output   io.Writer
	Step     time.Duration
	Renderer LineRenderer
}

// LineRenderer styles a trace line before it is written.
// This allows colour output without coupling the core package to a terminal.
type LineRenderer func(kind domain.EventType, line string) string

// NewRunner creates a Runner writing to Stdout.
func NewRunner() *Runner {
	return &Runner{Output: os.Stdout, Step: DefaultStep}
}

// Trace builds a presentation from cfg and runs it until n transitions have
// finished. The presentation is stopped before Trace returns.
func (r *Runner) Trace(ctx context.Context, cfg *Config, n int, opts ...Option) (*Presentation, error) {
	out := r.Output
	if out == nil {
		out = os.Stdout
	}
	step := r.Step
	if step <= 0 {
		step = DefaultStep
	}

	origin := time.Unix(0, 0).UTC()
	fake := clock.NewFake(origin)
	opts = append(opts,
		WithClock(fake),
		WithAnimator(anim.NewInstant(nil)),
		func(p *Presentation) { p.hooks = observability.Chain(p.hooks, r.hooks(out, origin)) },
	)
	p, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	defer p.Stop()

	if err := p.Start(ctx); err != nil {
		return p, err
	}
	for p.Completed() < n {
		if err := ctx.Err(); err != nil {
			return p, err
		}
		if fake.Pending() == 0 {
			return p, ErrStalled
		}
		fake.Advance(step)
	}
	st := p.State()
	r.line(out, domain.EventTransitionEnd, stamp(origin, fake.Now()), "done",
		fmt.Sprintf("%d transitions, mode %s [%d]", p.Completed(), st.Mode, st.Index))
	return p, nil
}

func stamp(origin, t time.Time) string {
	return "+" + t.Sub(origin).Round(time.Millisecond).String()
}

func (r *Runner) hooks(out io.Writer, origin time.Time) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnModeChange: func(_ context.Context, e *domain.ModeEvent) {
			r.line(out, e.Type, stamp(origin, e.Timestamp), "mode", fmt.Sprintf("%s -> %s [%d]", e.From, e.To, e.Index))
		},
		OnFinale: func(_ context.Context, e *domain.FinaleEvent) {
			r.line(out, e.Type, stamp(origin, e.Timestamp), "finale", fmt.Sprintf("%d items", e.Items))
		},
		OnTransitionEnd: func(_ context.Context, e *domain.TransitionEvent) {
			if e.Err != nil {
				r.line(out, e.Type, stamp(origin, e.Timestamp), "failed", fmt.Sprintf("%s: %v", e.From, e.Err))
			}
		},
		OnTransitionDropped: func(_ context.Context, e *domain.TransitionEvent) {
			r.line(out, e.Type, stamp(origin, e.Timestamp), "dropped", string(e.From))
		},
	}
}

// line writes "<offset> <what> <detail>" in fixed-width columns.
func (r *Runner) line(out io.Writer, kind domain.EventType, at, what, detail string) {
	text := fmt.Sprintf("%-7s %-7s %s", at, what, detail)
	if r.Renderer != nil {
		text = r.Renderer(kind, text)
	}
	fmt.Fprintln(out, text)
}
