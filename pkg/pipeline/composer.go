// Package pipeline composes the recurring transition shapes out of anim
// phase primitives: reveal, fade, grid entry and exit, entrance, finale,
// highlights and reflow.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/marquee/pkg/anim"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/emitter"
	"github.com/aretw0/marquee/pkg/ports"
)

// contentTween is the duration of content phases that carry no explicit timing.
const contentTween = 500 * time.Millisecond

// Effects starts particle emitters for reveals.
type Effects interface {
	Start(host domain.ParticleHost, v domain.Variant) *emitter.Emitter
}

// Composer builds timelines for a fixed narrative table and pacing.
type Composer struct {
	narratives ports.NarrativeLookup
	effects    Effects
	animator   ports.Animator
	timing     Timing
	logger     *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithTiming overrides DefaultTiming.
func WithTiming(t Timing) Option {
	return func(c *Composer) {
		c.timing = t
	}
}

// WithLogger sets the composer logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewComposer creates a composer. The animator plays the untracked side
// timelines (entrance hue pulses, finale reveals).
func NewComposer(narratives ports.NarrativeLookup, effects Effects, animator ports.Animator, opts ...Option) *Composer {
	c := &Composer{
		narratives: narratives,
		effects:    effects,
		animator:   animator,
		timing:     DefaultTiming(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timing returns the pacing in use.
func (c *Composer) Timing() Timing {
	return c.timing
}

func (c *Composer) narrative(it domain.Item) (domain.Narrative, error) {
	if it == nil {
		return domain.Narrative{}, fmt.Errorf("%w: nil item", domain.ErrMissingTarget)
	}
	n, err := c.narratives.Lookup(it.Key())
	if err != nil {
		return domain.Narrative{}, fmt.Errorf("item %s: %w", it.ID(), err)
	}
	return n, nil
}

func one(t domain.Target) []domain.Target { return []domain.Target{t} }

// Reveal is the dramatic per-item reveal. With staggered set, every offset is
// shifted by index × LetterStagger.
func (c *Composer) Reveal(it domain.Item, index int, staggered bool) (*anim.Timeline, error) {
	arc, err := c.narrative(it)
	if err != nil {
		return nil, err
	}
	t := c.timing
	var base time.Duration
	if staggered {
		base = time.Duration(index) * t.LetterStagger
	}
	at := func(d time.Duration) anim.Position { return anim.At(base + d) }
	label := t.LabelDelay

	tl := anim.New("reveal:"+it.ID()).
		Call("reveal-active", func() { it.SetFlag(domain.FlagRevealActive, true) }, at(0)).
		To("emphasis", one(it), domain.Props{
			domain.PropScale:     1.15,
			domain.PropRotationY: 10,
			domain.PropZ:         50,
			domain.PropShadow:    1,
		}, anim.Tween{Duration: t.DramaDuration, Ease: "elastic.out(1,0.5)"}, at(0)).
		Call("effect", func() {
			c.effects.Start(it.Particles(), domain.VariantFor(arc.Emotion))
		}, at(500*time.Millisecond)).
		To("label", one(it.Label()), domain.Props{
			domain.PropOpacity: 1,
			domain.PropY:       0,
			domain.PropScale:   1.05,
			domain.PropBlur:    0,
		}, anim.Tween{Duration: contentTween, Ease: "back.out(1.7)"}, at(label)).
		To("detail", one(it.Detail()), domain.Props{
			domain.PropOpacity:   1,
			domain.PropY:         0,
			domain.PropScale:     1,
			domain.PropRotationX: 0,
			domain.PropBlur:      0,
		}, anim.Tween{Duration: contentTween, Ease: anim.Power3Out}, at(label+t.NarrativeDelay)).
		Call("color-shift", func() { it.SetFlag(domain.FlagColorShift, true) }, at(2*time.Second)).
		To("rest", one(it), domain.Props{
			domain.PropScale:     1,
			domain.PropRotationY: 0,
			domain.PropZ:         0,
			domain.PropShadow:    0,
		}, anim.Tween{Duration: contentTween, Ease: anim.Power2InOut}, at(4*time.Second)).
		Call("calm", func() {
			it.SetFlag(domain.FlagRevealActive, false)
			it.SetFlag(domain.FlagColorShift, false)
		}, at(4*time.Second))
	return tl, tl.Err()
}

// Fade dims items, invokes mutate exactly once after the dim phase and its
// stagger have ended, then restores them. With no items the callback still
// runs and the timeline settles immediately.
func (c *Composer) Fade(items []domain.Item, mutate func()) (*anim.Timeline, error) {
	t := c.timing
	targets := domain.Targets(items)
	tl := anim.New("fade").
		To("dim", targets, domain.Props{domain.PropOpacity: 0.3, domain.PropScale: 0.9},
			anim.Tween{Duration: t.FadeOut, Ease: anim.Power2InOut, Stagger: t.FadeStagger}, anim.At(0)).
		Call("mutate", mutate, anim.AfterPrev(0)).
		To("restore", targets, domain.Props{domain.PropOpacity: 1, domain.PropScale: 1},
			anim.Tween{Duration: t.FadeIn, Ease: anim.Power2InOut, Stagger: t.FadeStagger}, anim.AfterPrev(0))
	return tl, tl.Err()
}

// GridEntry scales items into the grid stance and reveals their content,
// overlapping the tail of the scale-down.
func (c *Composer) GridEntry(items []domain.Item) (*anim.Timeline, error) {
	t := c.timing
	tl := anim.New("grid-entry").
		To("grid-scale", domain.Targets(items), domain.Props{domain.PropScale: t.GridScale},
			anim.Tween{Duration: t.GridScaleDuration, Ease: anim.Power2InOut, Stagger: 80 * time.Millisecond}, anim.At(0))
	if tl.Err() != nil {
		return tl, tl.Err()
	}
	span := tl.Duration()
	content := span - time.Duration(float64(span)*t.GridOverlap)

	for i, it := range items {
		arc, err := c.narrative(it)
		if err != nil {
			return nil, err
		}
		start := content + time.Duration(i)*t.GridItemStride
		labelEase := anim.Power2Out
		if arc.Emotion == domain.EmotionDetermination {
			labelEase = anim.Power4Out
		}
		tl.To("label:"+it.ID(), one(it.Label()), domain.Props{domain.PropOpacity: 1, domain.PropY: 0},
			anim.Tween{Duration: t.WordReveal, Ease: labelEase}, anim.At(start))
		tl.To("detail:"+it.ID(), one(it.Detail()), domain.Props{
			domain.PropOpacity: 1, domain.PropY: 0, domain.PropScale: 1,
		}, anim.Tween{Duration: 1500 * time.Millisecond, Ease: anim.Power3Out}, anim.At(start+t.NarrativeDelay))
		if arc.Theme == domain.ThemeResilience {
			tl.To("accent:"+it.ID(), one(it), domain.Props{domain.PropShadow: 1},
				anim.Tween{Duration: contentTween, Yoyo: true}, anim.At(start+time.Second))
		}
	}
	return tl, tl.Err()
}

// GridExit hides revealed content, then restores item scale.
func (c *Composer) GridExit(items []domain.Item) (*anim.Timeline, error) {
	tl := anim.New("grid-exit").
		To("details-out", domain.Details(items), domain.Props{
			domain.PropOpacity: 0, domain.PropY: 20, domain.PropScale: 0.9,
		}, anim.Tween{Duration: 600 * time.Millisecond, Ease: anim.Power2InOut, Stagger: 80 * time.Millisecond}, anim.At(0)).
		To("labels-out", domain.Labels(items), domain.Props{
			domain.PropOpacity: 0, domain.PropY: 10,
		}, anim.Tween{Duration: 600 * time.Millisecond, Ease: anim.Power2InOut, Stagger: 50 * time.Millisecond}, anim.At(300*time.Millisecond)).
		To("unscale", domain.Targets(items), domain.Props{domain.PropScale: 1},
			anim.Tween{Duration: 800 * time.Millisecond, Stagger: 80 * time.Millisecond}, anim.AtEnd(0))
	return tl, tl.Err()
}

// Entrance brings items in from a collapsed pose. Items with the wonder
// emotion get a hue pulse once their own entrance completes.
func (c *Composer) Entrance(items []domain.Item, staggered bool) (*anim.Timeline, error) {
	tl := anim.New("entrance").
		Set("collapsed", domain.Targets(items), domain.Props{
			domain.PropScale:     0.3,
			domain.PropOpacity:   0,
			domain.PropRotationY: -90,
			domain.PropZ:         -200,
		}, anim.At(0))
	for i, it := range items {
		arc, err := c.narrative(it)
		if err != nil {
			return nil, err
		}
		delay := 300 * time.Millisecond
		if staggered {
			delay += time.Duration(i) * 150 * time.Millisecond
		}
		var done func()
		if arc.Emotion == domain.EmotionWonder {
			done = func() { c.animator.Play(c.huePulse(it)) }
		}
		tl.To("enter:"+it.ID(), one(it), domain.Props{
			domain.PropScale:     1,
			domain.PropOpacity:   1,
			domain.PropRotationY: 0,
			domain.PropZ:         0,
		}, anim.Tween{Duration: 1500 * time.Millisecond, Ease: "back.out(1.4)", OnComplete: done}, anim.At(delay))
	}
	return tl, tl.Err()
}

func (c *Composer) huePulse(it domain.Item) *anim.Timeline {
	return anim.New("hue:"+it.ID()).
		To("pulse", one(it), domain.Props{domain.PropHue: 30},
			anim.Tween{Duration: contentTween, Yoyo: true}, anim.At(0))
}

// Finale is the once-per-cycle crescendo: every item gets a simultaneous
// reveal at its own offset, then the highlights enter.
func (c *Composer) Finale(items []domain.Item, highlights []domain.Target) (*anim.Timeline, error) {
	t := c.timing
	tl := anim.New("finale")
	for i, it := range items {
		reveal, err := c.Reveal(it, i, false)
		if err != nil {
			return nil, err
		}
		tl.Call("final-reveal:"+it.ID(), func() {
			it.SetFlag(domain.FlagFinaleActive, true)
			c.animator.Play(reveal)
		}, anim.At(time.Duration(i)*t.FinalRevealStagger))
	}
	if len(highlights) > 0 {
		tl.Set("highlights-display", highlights, domain.Props{domain.PropDisplay: 1}, anim.At(time.Second)).
			To("highlights-enter", highlights, domain.Props{
				domain.PropOpacity: 1,
				domain.PropScale:   1.1,
				domain.PropY:       -10,
				domain.PropShadow:  1,
			}, anim.Tween{Duration: t.FinalRevealDuration, Ease: "elastic.out(1,0.3)", Stagger: 500 * time.Millisecond}, anim.At(time.Second))
	}
	return tl, tl.Err()
}

// Highlights shows or hides the final-mode decorations.
func (c *Composer) Highlights(targets []domain.Target, show bool) (*anim.Timeline, error) {
	tl := anim.New("highlights")
	if show {
		tl.Set("display", targets, domain.Props{domain.PropDisplay: 1}, anim.At(0)).
			To("show", targets, domain.Props{
				domain.PropOpacity: 1,
				domain.PropScale:   1.05,
				domain.PropShadow:  0.6,
			}, anim.Tween{Duration: 1200 * time.Millisecond, Ease: "elastic.out(1,0.3)", Stagger: 300 * time.Millisecond}, anim.At(500*time.Millisecond))
		return tl, tl.Err()
	}
	tl.To("hide", targets, domain.Props{domain.PropOpacity: 0},
		anim.Tween{Duration: 400 * time.Millisecond, Ease: anim.Power2InOut}, anim.At(0)).
		Set("undisplay", targets, domain.Props{domain.PropDisplay: 0}, anim.AfterPrev(0))
	return tl, tl.Err()
}

// Reflow animates targets from their captured geometry to the geometry the
// stage computed after the mode change. Each target is first offset and
// stretched so it renders in its old box, then eased back to its new one.
func (c *Composer) Reflow(snaps []anim.Snapshot) (*anim.Timeline, error) {
	t := c.timing
	tl := anim.New("reflow")
	moved := make([]domain.Target, 0, len(snaps))
	for _, s := range snaps {
		p, ok := s.Target.(domain.Placed)
		if !ok {
			continue
		}
		now := p.Box()
		tl.Set("invert:"+p.ID(), one(p), domain.Props{
			domain.PropX:      s.Box.X - now.X,
			domain.PropY:      s.Box.Y - now.Y,
			domain.PropScaleX: ratio(s.Box.W, now.W),
			domain.PropScaleY: ratio(s.Box.H, now.H),
		}, anim.At(0))
		moved = append(moved, p)
	}
	tl.To("play", moved, domain.Props{
		domain.PropX:      0,
		domain.PropY:      0,
		domain.PropScaleX: 1,
		domain.PropScaleY: 1,
	},
		anim.Tween{Duration: t.FlipDuration, Ease: anim.Power2InOut, Stagger: t.FlipStagger}, anim.At(0))
	return tl, tl.Err()
}

// ratio is old/now, or 1 when either side has no extent.
func ratio(old, now float64) float64 {
	if old <= 0 || now <= 0 {
		return 1
	}
	return old / now
}
