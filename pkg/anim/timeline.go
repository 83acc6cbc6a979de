package anim

import (
	"fmt"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
)

// Kind discriminates the phase primitives.
type Kind int

const (
	KindTween Kind = iota // interpolate properties over a duration
	KindSet               // assign properties instantly
	KindCall              // invoke a function
)

func (k Kind) String() string {
	switch k {
	case KindTween:
		return "tween"
	case KindSet:
		return "set"
	case KindCall:
		return "call"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Tween configures an interpolating phase.
type Tween struct {
	Duration time.Duration
	Ease     Ease
	// Stagger delays each successive target's start.
	Stagger time.Duration
	// Yoyo plays forward then back to the starting values.
	Yoyo bool
	// OnComplete runs once every target of the phase has finished.
	OnComplete func()
}

// Phase is one resolved step of a timeline.
type Phase struct {
	Label      string
	Kind       Kind
	Targets    []domain.Target
	To         domain.Props
	Duration   time.Duration
	Ease       Ease
	Stagger    time.Duration
	Yoyo       bool
	Call       func()
	OnComplete func()
	// Start is the resolved offset from the timeline start.
	Start time.Duration

	ease EaseFunc
}

// TargetSpan is the active time of one target within the phase.
func (p *Phase) TargetSpan() time.Duration {
	if p.Yoyo {
		return 2 * p.Duration
	}
	return p.Duration
}

// TargetStart is the offset at which the i-th target begins.
func (p *Phase) TargetStart(i int) time.Duration {
	return p.Start + time.Duration(i)*p.Stagger
}

// Span is the phase's total length including stagger.
func (p *Phase) Span() time.Duration {
	if p.Kind != KindTween || len(p.Targets) == 0 {
		return 0
	}
	return time.Duration(len(p.Targets)-1)*p.Stagger + p.TargetSpan()
}

// End is the offset at which the phase finishes.
func (p *Phase) End() time.Duration {
	return p.Start + p.Span()
}

// value computes a property at local progress t (0..TargetSpan) of one target.
func (p *Phase) value(from, to float64, t time.Duration) float64 {
	if p.Duration <= 0 {
		if p.Yoyo {
			return from
		}
		return to
	}
	var lin float64
	switch {
	case t <= 0:
		lin = 0
	case p.Yoyo && t > p.Duration:
		back := t - p.Duration
		if back >= p.Duration {
			return from
		}
		lin = 1 - float64(back)/float64(p.Duration)
	case t >= p.Duration:
		lin = 1
	default:
		lin = float64(t) / float64(p.Duration)
	}
	return from + (to-from)*p.ease(lin)
}

// final is the value a target holds once its span has elapsed.
func (p *Phase) final(from, to float64) float64 {
	if p.Yoyo {
		return from
	}
	return to
}

// Timeline is an ordered composition of phases on a shared time axis.
// Builder methods record the first contract violation and become no-ops
// afterwards; Err reports it and Play settles with it.
type Timeline struct {
	label  string
	phases []*Phase
	end    time.Duration
	err    error
}

// New returns an empty timeline.
func New(label string) *Timeline {
	return &Timeline{label: label}
}

func (tl *Timeline) Label() string { return tl.label }

// Err returns the first contract violation recorded while building.
func (tl *Timeline) Err() error { return tl.err }

// Phases returns the resolved phases in insertion order.
func (tl *Timeline) Phases() []*Phase { return tl.phases }

// Len returns the number of phases.
func (tl *Timeline) Len() int { return len(tl.phases) }

// Duration returns the end of the last-finishing phase.
func (tl *Timeline) Duration() time.Duration { return tl.end }

func (tl *Timeline) fail(label string, err error) {
	if tl.err == nil {
		tl.err = fmt.Errorf("%s/%s: %w", tl.label, label, err)
	}
}

func (tl *Timeline) resolve(pos Position) time.Duration {
	var base time.Duration
	switch pos.anchor {
	case anchorStart:
		base = 0
	case anchorEnd:
		base = tl.end
	case anchorPrevStart:
		if n := len(tl.phases); n > 0 {
			base = tl.phases[n-1].Start
		}
	case anchorPrevEnd:
		if n := len(tl.phases); n > 0 {
			base = tl.phases[n-1].End()
		}
	}
	start := base + pos.offset
	if start < 0 {
		start = 0
	}
	return start
}

func (tl *Timeline) push(p *Phase) {
	tl.phases = append(tl.phases, p)
	if e := p.End(); e > tl.end {
		tl.end = e
	}
}

func checkTargets(targets []domain.Target) error {
	for i, t := range targets {
		if t == nil {
			return fmt.Errorf("%w: target %d is nil", domain.ErrMissingTarget, i)
		}
	}
	return nil
}

// To interpolates props on targets from their current values.
func (tl *Timeline) To(label string, targets []domain.Target, props domain.Props, tw Tween, pos Position) *Timeline {
	if tl.err != nil {
		return tl
	}
	if err := checkTargets(targets); err != nil {
		tl.fail(label, err)
		return tl
	}
	if tw.Duration < 0 || tw.Stagger < 0 {
		tl.fail(label, domain.ErrNegativeDuration)
		return tl
	}
	fn, err := tw.Ease.Func()
	if err != nil {
		tl.fail(label, err)
		return tl
	}
	tl.push(&Phase{
		Label:      label,
		Kind:       KindTween,
		Targets:    targets,
		To:         props.Clone(),
		Duration:   tw.Duration,
		Ease:       tw.Ease,
		Stagger:    tw.Stagger,
		Yoyo:       tw.Yoyo,
		OnComplete: tw.OnComplete,
		Start:      tl.resolve(pos),
		ease:       fn,
	})
	return tl
}

// Set assigns props on targets instantly.
func (tl *Timeline) Set(label string, targets []domain.Target, props domain.Props, pos Position) *Timeline {
	if tl.err != nil {
		return tl
	}
	if err := checkTargets(targets); err != nil {
		tl.fail(label, err)
		return tl
	}
	tl.push(&Phase{
		Label:   label,
		Kind:    KindSet,
		Targets: targets,
		To:      props.Clone(),
		Start:   tl.resolve(pos),
	})
	return tl
}

// Call invokes fn when playback reaches the position.
func (tl *Timeline) Call(label string, fn func(), pos Position) *Timeline {
	if tl.err != nil {
		return tl
	}
	if fn == nil {
		tl.fail(label, fmt.Errorf("%w: nil callback", domain.ErrMissingTarget))
		return tl
	}
	tl.push(&Phase{
		Label: label,
		Kind:  KindCall,
		Call:  fn,
		Start: tl.resolve(pos),
	})
	return tl
}

// Add nests sub at pos. Phases of sub are copied and shifted; sub itself is
// left untouched.
func (tl *Timeline) Add(sub *Timeline, pos Position) *Timeline {
	if tl.err != nil || sub == nil {
		return tl
	}
	if sub.err != nil {
		tl.err = sub.err
		return tl
	}
	offset := tl.resolve(pos)
	for _, p := range sub.phases {
		cp := *p
		cp.Start += offset
		tl.push(&cp)
	}
	if e := offset + sub.end; e > tl.end {
		tl.end = e
	}
	return tl
}

// Resolve returns the absolute start offset of every phase in insertion order.
func (tl *Timeline) Resolve() []time.Duration {
	out := make([]time.Duration, len(tl.phases))
	for i, p := range tl.phases {
		out[i] = p.Start
	}
	return out
}
