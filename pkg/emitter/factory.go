package emitter

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/marquee/pkg/anim"
	"github.com/aretw0/marquee/pkg/clock"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/ports"
)

// Factory creates emitters sharing one animator, clock and random source, and
// tracks live emitters and particles across them.
type Factory struct {
	animator ports.Animator
	clock    clock.Clock
	settings Settings
	hooks    domain.LifecycleHooks
	logger   *slog.Logger

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu   sync.Mutex
	live map[*Emitter]struct{}
	seq  int

	particles atomic.Int64
	spawned   atomic.Int64
}

// Option configures a Factory.
type Option func(*Factory)

// WithSettings overrides DefaultSettings.
func WithSettings(s Settings) Option {
	return func(f *Factory) {
		f.settings = s
	}
}

// WithRand sets the random source. Seed it for deterministic runs.
func WithRand(r *rand.Rand) Option {
	return func(f *Factory) {
		if r != nil {
			f.rnd = r
		}
	}
}

// WithLogger sets the factory logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithLifecycleHooks reports particle spawn and removal.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(f *Factory) {
		f.hooks = h
	}
}

// NewFactory creates a factory playing particle timelines on animator and
// scheduling spawns on clk.
func NewFactory(animator ports.Animator, clk clock.Clock, opts ...Option) *Factory {
	f := &Factory{
		animator: animator,
		clock:    clk,
		settings: DefaultSettings(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		rnd:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6d61727175656521)),
		live:     make(map[*Emitter]struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Settings returns the cadence in use.
func (f *Factory) Settings() Settings {
	return f.settings
}

// New creates an inactive emitter for host.
func (f *Factory) New(host domain.ParticleHost, v domain.Variant) *Emitter {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	f.mu.Unlock()
	return &Emitter{
		factory:  f,
		host:     host,
		variant:  v,
		seq:      seq,
		spawn:    clock.NewSlot(domain.SlotSpawn, f.clock),
		lifetime: clock.NewSlot(domain.SlotLifetime, f.clock),
	}
}

// Start creates an emitter for host and starts it.
func (f *Factory) Start(host domain.ParticleHost, v domain.Variant) *Emitter {
	e := f.New(host, v)
	e.Start()
	return e
}

// Active returns the number of emitters still spawning.
func (f *Factory) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// Particles returns the number of particles not yet removed.
func (f *Factory) Particles() int {
	return int(f.particles.Load())
}

// Spawned returns the total number of particles ever spawned.
func (f *Factory) Spawned() int {
	return int(f.spawned.Load())
}

// StopAll stops every live emitter. In-flight particles still settle and are
// removed by their own timelines.
func (f *Factory) StopAll() {
	f.mu.Lock()
	live := make([]*Emitter, 0, len(f.live))
	for e := range f.live {
		live = append(live, e)
	}
	f.mu.Unlock()
	for _, e := range live {
		e.Stop()
	}
}

func (f *Factory) track(e *Emitter, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if on {
		f.live[e] = struct{}{}
	} else {
		delete(f.live, e)
	}
}

func (f *Factory) float() float64 {
	f.rndMu.Lock()
	defer f.rndMu.Unlock()
	return f.rnd.Float64()
}

func (f *Factory) nextDelay() time.Duration {
	return f.settings.SpawnBase + time.Duration(f.float()*float64(f.settings.SpawnJitter))
}

func (f *Factory) spawnParticle(host domain.ParticleHost, v domain.Variant) {
	p := host.Spawn(v)
	if p == nil {
		return
	}
	f.particles.Add(1)
	f.spawned.Add(1)
	f.emit(domain.EventParticleSpawn, f.hooks.OnParticleSpawn, host, p, v)

	var once sync.Once
	remove := func() {
		once.Do(func() {
			host.Remove(p)
			f.particles.Add(-1)
			f.emit(domain.EventParticleRemove, f.hooks.OnParticleRemove, host, p, v)
		})
	}

	s := f.settings
	tl := anim.New("particle").
		Set("place", []domain.Target{p}, domain.Props{
			domain.PropLeft:    f.float() * 100,
			domain.PropTop:     f.float() * 100,
			domain.PropOpacity: 0,
		}, anim.At(0)).
		To("rise", []domain.Target{p}, domain.Props{
			domain.PropY:        -100 - f.float()*50,
			domain.PropX:        (f.float() - 0.5) * 100,
			domain.PropOpacity:  1,
			domain.PropScale:    1 + f.float()*0.5,
			domain.PropRotation: f.float() * 360,
		}, anim.Tween{Duration: s.Rise, Ease: anim.Power2Out}, anim.AtEnd(0)).
		To("fade", []domain.Target{p}, domain.Props{
			domain.PropOpacity: 0,
			domain.PropScale:   0,
		}, anim.Tween{Duration: s.Fade, Ease: anim.Power2In}, anim.AtEnd(-s.Fade)).
		Call("remove", remove, anim.AtEnd(0))

	if err := tl.Err(); err != nil {
		f.logger.Error("particle timeline rejected", "err", err)
		remove()
		return
	}
	f.animator.Play(tl)
}

func (f *Factory) emit(typ domain.EventType, hook func(context.Context, *domain.ParticleEvent), host domain.ParticleHost, p domain.Target, v domain.Variant) {
	if hook == nil {
		return
	}
	hook(context.Background(), &domain.ParticleEvent{
		EventBase: domain.EventBase{Timestamp: f.clock.Now(), Type: typ},
		Particle:  p.ID(),
		Variant:   v,
		Live:      host.Count(),
	})
}
