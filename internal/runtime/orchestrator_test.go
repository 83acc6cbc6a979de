package runtime_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/marquee/internal/runtime"
	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/anim"
	"github.com/aretw0/marquee/pkg/clock"
	"github.com/aretw0/marquee/pkg/cycle"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/emitter"
	"github.com/aretw0/marquee/pkg/pipeline"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	clock   *clock.Fake
	stage   *memory.Stage
	orch    *runtime.Orchestrator
	machine *cycle.Machine
	effects *emitter.Factory
}

func newHarness(t *testing.T, a ports.Animator, opts ...runtime.Option) *harness {
	t.Helper()
	return newHarnessWith(t, a, memory.NewStage(memory.DefaultItems(), memory.DefaultHighlights()), cycle.Default(), opts...)
}

func newHarnessWith(t *testing.T, a ports.Animator, stage *memory.Stage, m *cycle.Machine, opts ...runtime.Option) *harness {
	t.Helper()
	clk := clock.NewFake(time.Unix(0, 0))
	effects := emitter.NewFactory(a, clk, emitter.WithRand(rand.New(rand.NewPCG(7, 7))))
	composer := pipeline.NewComposer(memory.DefaultNarratives(), effects, a)
	return &harness{
		clock:   clk,
		stage:   stage,
		machine: m,
		effects: effects,
		orch:    runtime.NewOrchestrator(m, stage, a, composer, clk, opts...),
	}
}

// gatedAnimator holds every play until Release.
type gatedAnimator struct {
	inner *anim.Instant

	mu      sync.Mutex
	open    bool
	pending []func()
}

func newGatedAnimator() *gatedAnimator { return &gatedAnimator{inner: anim.NewInstant(nil)} }

func (g *gatedAnimator) Play(tl *anim.Timeline) *anim.Completion {
	g.mu.Lock()
	if g.open {
		g.mu.Unlock()
		return g.inner.Play(tl)
	}
	c := anim.NewCompletion()
	g.pending = append(g.pending, func() { c.Resolve(g.inner.Play(tl).Err()) })
	g.mu.Unlock()
	return c
}

func (g *gatedAnimator) Held() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

func (g *gatedAnimator) Release() {
	g.mu.Lock()
	g.open = true
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()
	for _, run := range pending {
		run()
	}
}

func (g *gatedAnimator) Snapshot(t []domain.Target) []anim.Snapshot { return anim.Capture(t) }
func (g *gatedAnimator) Pause()                                     {}
func (g *gatedAnimator) Resume()                                    {}
func (g *gatedAnimator) Paused() bool                               { return false }

// faultyAnimator fails selected timelines without running them.
type faultyAnimator struct {
	*anim.Instant

	mu   sync.Mutex
	fail map[string]error
}

func newFaultyAnimator() *faultyAnimator {
	return &faultyAnimator{Instant: anim.NewInstant(nil), fail: map[string]error{}}
}

func (f *faultyAnimator) FailOn(label string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, label)
		return
	}
	f.fail[label] = err
}

func (f *faultyAnimator) Play(tl *anim.Timeline) *anim.Completion {
	f.mu.Lock()
	err := f.fail[tl.Label()]
	f.mu.Unlock()
	if err != nil {
		return anim.Completed(err)
	}
	return f.Instant.Play(tl)
}

type panickingAnimator struct{ *anim.Instant }

func (panickingAnimator) Snapshot([]domain.Target) []anim.Snapshot { panic("snapshot exploded") }

func transitionN(t *testing.T, o *runtime.Orchestrator, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		ok, err := o.Transition(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestOrchestrator_SingleFlight(t *testing.T) {
	g := newGatedAnimator()
	var dropped int
	h := newHarness(t, g, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnTransitionDropped: func(context.Context, *domain.TransitionEvent) { dropped++ },
	}))

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		ok, err := h.orch.Transition(context.Background())
		done <- result{ok, err}
	}()

	require.Eventually(t, func() bool { return g.Held() > 0 }, time.Second, time.Millisecond)
	assert.True(t, h.orch.InFlight())
	assert.Equal(t, domain.StatusInTransition, h.orch.State().Status())

	for i := 0; i < 3; i++ {
		ok, err := h.orch.Transition(context.Background())
		assert.False(t, ok, "concurrent request is dropped")
		assert.NoError(t, err)
	}
	assert.Equal(t, 3, dropped)
	assert.Equal(t, domain.ModeFinal, h.orch.Current(), "no mutation while the first run is held")

	g.Release()
	r := <-done
	assert.True(t, r.ok)
	assert.NoError(t, r.err)
	assert.False(t, h.orch.InFlight())
	assert.Equal(t, domain.ModePlain, h.orch.Current(), "exactly one advance")
}

func TestOrchestrator_FullCycleResetsFinale(t *testing.T) {
	in := anim.NewInstant(nil)
	finales := 0
	h := newHarness(t, in, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnFinale: func(_ context.Context, ev *domain.FinaleEvent) {
			finales++
			assert.Equal(t, 7, ev.Items)
		},
	}))
	assert.Equal(t, []domain.LayoutMode{domain.ModeFinal}, h.stage.Modes())

	transitionN(t, h.orch, 3)
	assert.Equal(t, domain.ModeRows, h.orch.Current())
	assert.False(t, h.orch.FinalePending())

	transitionN(t, h.orch, 1) // rows -> grid arms the finale
	assert.Equal(t, domain.ModeGrid, h.orch.Current())
	require.True(t, h.orch.FinalePending())

	h.clock.Advance(2 * time.Second)
	assert.Equal(t, 1, finales)
	st := h.orch.State()
	assert.True(t, st.FinalSequenceFired)
	for _, it := range h.stage.Items() {
		assert.True(t, it.Flags().Has(domain.FlagFinaleActive))
	}

	transitionN(t, h.orch, 1) // grid -> final wraps
	st = h.orch.State()
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, domain.ModeFinal, st.Mode)
	assert.False(t, st.FinalSequenceFired)
	assert.False(t, st.InFlight)
	for _, it := range h.stage.Items() {
		assert.False(t, it.Flags().Has(domain.FlagFinaleActive))
	}
	assert.Equal(t, []domain.LayoutMode{domain.ModeFinal}, h.stage.Modes(), "stage tag matches the cycle")
	assert.Equal(t, 1, h.stage.Settles(), "leaving grid settles layout once")
}

func TestOrchestrator_FiveTransitionScenario(t *testing.T) {
	h := newHarness(t, anim.NewInstant(nil))
	for i := 0; i < 5; i++ {
		transitionN(t, h.orch, 1)
		h.clock.Advance(3 * time.Second)
	}
	// Let the emitters started by the finale reach their lifetime.
	h.clock.Advance(10 * time.Second)

	st := h.orch.State()
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, domain.ModeFinal, st.Mode)
	assert.False(t, st.FinalSequenceFired)
	assert.False(t, h.orch.FinalePending())
	assert.Equal(t, 0, h.clock.Pending(), "no pending timers")
	assert.Equal(t, 0, h.effects.Active(), "no live emitters")
	assert.Equal(t, 0, h.effects.Particles(), "no leaked particles")
	assert.Positive(t, h.effects.Spawned())
	for _, it := range h.stage.StageItems() {
		assert.Equal(t, 0, it.Host().Count())
	}
}

func TestOrchestrator_PendingFinaleCancelledAtWrap(t *testing.T) {
	finales := 0
	h := newHarness(t, anim.NewInstant(nil), runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnFinale: func(context.Context, *domain.FinaleEvent) { finales++ },
	}))

	transitionN(t, h.orch, 4)
	require.True(t, h.orch.FinalePending())

	// The wrap happens before the virtual clock reaches the finale deadline.
	transitionN(t, h.orch, 1)
	assert.False(t, h.orch.FinalePending())

	h.clock.Advance(time.Minute)
	assert.Equal(t, 0, finales)
	assert.False(t, h.orch.State().FinalSequenceFired)
}

func TestOrchestrator_FinaleAtMostOncePerCycle(t *testing.T) {
	fa := newFaultyAnimator()
	finales := 0
	var ends []error
	h := newHarness(t, fa, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnFinale:        func(context.Context, *domain.FinaleEvent) { finales++ },
		OnTransitionEnd: func(_ context.Context, ev *domain.TransitionEvent) { ends = append(ends, ev.Err) },
	}))
	transitionN(t, h.orch, 3)
	require.Equal(t, domain.ModeRows, h.orch.Current())

	engineDown := errors.New("engine down")
	fa.FailOn("fade", engineDown)
	for i := 0; i < 3; i++ {
		ok, err := h.orch.Transition(context.Background())
		assert.True(t, ok)
		assert.NoError(t, err, "runtime failures are logged, not returned")
	}
	assert.Equal(t, domain.ModeRows, h.orch.Current(), "failed fade never mutates")
	assert.True(t, h.orch.FinalePending())
	require.Len(t, ends, 6)
	assert.ErrorIs(t, ends[5], engineDown)

	h.clock.Advance(2 * time.Second)
	assert.Equal(t, 1, finales)

	fa.FailOn("fade", nil)
	transitionN(t, h.orch, 1)
	assert.Equal(t, domain.ModeGrid, h.orch.Current())
	h.clock.Advance(time.Minute)
	assert.Equal(t, 1, finales, "fired flag blocks re-arming")
	assert.False(t, h.orch.InFlight())
}

func TestOrchestrator_ContractViolationIsReturned(t *testing.T) {
	stage := memory.NewStage([]memory.ItemSpec{{Key: "shores"}, {Key: "missing"}}, nil)
	m, err := cycle.New(domain.ModePlain, domain.ModeGrid)
	require.NoError(t, err)
	var endErr error
	h := newHarnessWith(t, anim.NewInstant(nil), stage, m, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnTransitionEnd: func(_ context.Context, ev *domain.TransitionEvent) { endErr = ev.Err },
	}))

	ok, err := h.orch.Transition(context.Background())
	assert.True(t, ok)
	assert.ErrorIs(t, err, domain.ErrMissingNarrative)
	assert.ErrorIs(t, endErr, domain.ErrContract)
	assert.False(t, h.orch.InFlight())
	assert.Equal(t, domain.ModeGrid, h.orch.Current(), "mutation already happened before grid entry")
}

func TestOrchestrator_PanicReleasesGuard(t *testing.T) {
	var endErr error
	h := newHarness(t, panickingAnimator{anim.NewInstant(nil)}, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnTransitionEnd: func(_ context.Context, ev *domain.TransitionEvent) { endErr = ev.Err },
	}))

	ok, err := h.orch.Transition(context.Background())
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.ErrorIs(t, endErr, runtime.ErrTransitionPanic)
	assert.False(t, h.orch.InFlight())
	assert.Equal(t, domain.ModeFinal, h.orch.Current())
}

func TestOrchestrator_CancelledContextHoldsGuardUntilSettled(t *testing.T) {
	g := newGatedAnimator()
	var endErr error
	h := newHarness(t, g, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnTransitionEnd: func(_ context.Context, ev *domain.TransitionEvent) { endErr = ev.Err },
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := h.orch.Transition(ctx)
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.ErrorIs(t, endErr, context.Canceled)
	assert.Equal(t, 1, g.Held(), "the fade started and keeps playing")
	assert.True(t, h.orch.InFlight(), "guard held while the fade plays")

	ok, err = h.orch.Transition(context.Background())
	assert.False(t, ok, "a second request cannot overlap the abandoned fade")
	assert.NoError(t, err)
	assert.Equal(t, domain.ModeFinal, h.orch.Current())

	g.Release()
	require.Eventually(t, func() bool { return !h.orch.InFlight() }, time.Second, time.Millisecond)
	st := h.orch.State()
	assert.Equal(t, domain.ModePlain, st.Mode, "the fade midpoint advanced exactly once")
	assert.Equal(t, 1, st.Index)

	transitionN(t, h.orch, 1)
	assert.Equal(t, domain.ModeColumns, h.orch.Current())
}

func TestOrchestrator_CancelledAfterSettleReleasesImmediately(t *testing.T) {
	h := newHarness(t, anim.NewInstant(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := h.orch.Transition(ctx)
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.False(t, h.orch.InFlight(), "settled timelines leave nothing to wait for")
}

func TestOrchestrator_HooksDescribeTheRun(t *testing.T) {
	var starts, modes []domain.LayoutMode
	var ids []string
	h := newHarness(t, anim.NewInstant(nil), runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnTransitionStart: func(_ context.Context, ev *domain.TransitionEvent) {
			starts = append(starts, ev.From)
			ids = append(ids, ev.ID)
		},
		OnModeChange: func(_ context.Context, ev *domain.ModeEvent) {
			modes = append(modes, ev.To)
			assert.Equal(t, ids[len(ids)-1], ev.TransitionID)
		},
	}))
	transitionN(t, h.orch, 2)

	assert.Equal(t, []domain.LayoutMode{domain.ModeFinal, domain.ModePlain}, starts)
	assert.Equal(t, []domain.LayoutMode{domain.ModePlain, domain.ModeColumns}, modes)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestOrchestrator_HighlightsFollowFinalMode(t *testing.T) {
	h := newHarness(t, anim.NewInstant(nil))
	transitionN(t, h.orch, 5)
	for _, hl := range h.stage.HighlightElements() {
		assert.True(t, hl.Visible(), "highlights shown on entering final")
	}
	transitionN(t, h.orch, 1)
	for _, hl := range h.stage.HighlightElements() {
		assert.False(t, hl.Visible())
	}
}
