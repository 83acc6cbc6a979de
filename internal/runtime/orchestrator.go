package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/marquee/pkg/anim"
	"github.com/aretw0/marquee/pkg/clock"
	"github.com/aretw0/marquee/pkg/cycle"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/pipeline"
	"github.com/aretw0/marquee/pkg/ports"
)

// ErrTransitionPanic wraps a panic recovered inside a transition run.
var ErrTransitionPanic = errors.New("transition panicked")

// Orchestrator runs layout transitions one at a time.
//
// The cycle machine and the finale flag live behind mu and are written only
// at the mutation point and at wrap cleanup. No lock is held while a
// timeline is awaited.
type Orchestrator struct {
	machine  *cycle.Machine
	stage    ports.Stage
	animator ports.Animator
	composer *pipeline.Composer
	clock    clock.Clock

	finale      *clock.Slot
	finaleDelay time.Duration

	logger *slog.Logger
	hooks  domain.LifecycleHooks

	inFlight atomic.Bool

	mu          sync.Mutex
	finaleFired bool
}

// NewOrchestrator wires the orchestrator. The stage receives the machine's
// current mode tag immediately.
func NewOrchestrator(machine *cycle.Machine, stage ports.Stage, animator ports.Animator, composer *pipeline.Composer, clk clock.Clock, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		machine:     machine,
		stage:       stage,
		animator:    animator,
		composer:    composer,
		clock:       clk,
		finale:      clock.NewSlot(domain.SlotFinale, clk),
		finaleDelay: DefaultFinaleDelay,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	stage.AddMode(machine.Current())
	return o
}

// InFlight reports whether a transition is running.
func (o *Orchestrator) InFlight() bool {
	return o.inFlight.Load()
}

// Current returns the current layout mode.
func (o *Orchestrator) Current() domain.LayoutMode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.machine.Current()
}

// State returns a snapshot of the cycle.
func (o *Orchestrator) State() domain.CycleState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return domain.CycleState{
		Index:              o.machine.Index(),
		Mode:               o.machine.Current(),
		InFlight:           o.inFlight.Load(),
		FinalSequenceFired: o.finaleFired,
	}
}

// FinalePending reports whether the deferred finale timer is armed.
func (o *Orchestrator) FinalePending() bool {
	return o.finale.Pending()
}

// Close cancels the deferred finale timer.
func (o *Orchestrator) Close() {
	o.finale.Cancel()
}

// Transition runs one transition to the next mode. A request arriving while
// another transition runs is dropped and reports accepted=false.
//
// Failures during the run are logged and reported to OnTransitionEnd; the
// orchestrator returns to idle either way. Only contract violations are
// returned.
//
// A cancelled ctx ends the call early, but a timeline that already started
// keeps playing. The guard stays held until that timeline settles, so its
// callbacks never overlap another transition.
func (o *Orchestrator) Transition(ctx context.Context) (accepted bool, err error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		st := o.State()
		o.logger.Debug("transition dropped", "mode", st.Mode)
		o.emitDropped(ctx, st.Mode, st.Index)
		return false, nil
	}
	var abandoned *anim.Completion
	defer func() {
		if abandoned == nil {
			o.inFlight.Store(false)
			return
		}
		go func() {
			<-abandoned.Done()
			o.inFlight.Store(false)
		}()
	}()

	id := uuid.NewString()
	logger := o.logger.With("transition", id)
	from := o.Current()
	o.emitStart(ctx, id, from, o.State().Index)
	started := o.clock.Now()

	runErr := o.run(ctx, id, logger, &abandoned)

	st := o.State()
	o.emitEnd(ctx, id, from, st.Mode, st.Index, o.clock.Now().Sub(started), runErr)
	if runErr != nil {
		logger.Error("transition failed", "from", from, "mode", st.Mode, "err", runErr)
		if errors.Is(runErr, domain.ErrContract) {
			return true, runErr
		}
		return true, nil
	}
	logger.Debug("transition complete", "from", from, "to", st.Mode, "index", st.Index)
	return true, nil
}

func (o *Orchestrator) run(ctx context.Context, id string, logger *slog.Logger, abandoned **anim.Completion) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTransitionPanic, r)
		}
	}()

	items := o.stage.Items()
	wait := o.awaiter(ctx, abandoned)

	// 1. Pre-trigger the finale ahead of reaching the last mode.
	o.mu.Lock()
	from := o.machine.Current()
	if o.machine.IsPenultimate() && !o.finaleFired && !o.finale.Pending() {
		o.finale.Arm(o.finaleDelay, o.fireFinale)
		logger.Debug("finale armed", "delay", o.finaleDelay)
	}
	o.mu.Unlock()

	// 2. Exit effects.
	if from == domain.ModeGrid {
		if err := wait(o.composer.GridExit(items)); err != nil {
			return err
		}
		o.stage.Settle()
	}

	// 3. Capture geometry.
	snaps := o.animator.Snapshot(domain.Targets(items))

	// 4. Mutate inside the fade.
	if err := wait(o.composer.Fade(items, func() { o.mutate(ctx, id) })); err != nil {
		return err
	}
	to := o.Current()

	// 5. Highlights side channel, not awaited.
	hl, err := o.composer.Highlights(o.stage.Highlights(), to == domain.ModeFinal)
	if err != nil {
		return fmt.Errorf("highlights: %w", err)
	}
	o.animator.Play(hl)

	// 6. Reflow from the captured geometry.
	if err := wait(o.composer.Reflow(snaps)); err != nil {
		return err
	}

	// 7. Enter effects.
	if to == domain.ModeGrid {
		if err := wait(o.composer.GridEntry(items)); err != nil {
			return err
		}
	}

	// 8. Wrap cleanup.
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.machine.Index() == 0 {
		o.finaleFired = false
		for _, it := range items {
			it.SetFlag(domain.FlagFinaleActive, false)
		}
		if o.finale.Cancel() {
			logger.Debug("pending finale cancelled at wrap")
		}
	}
	return nil
}

// mutate is the only place the mode changes.
func (o *Orchestrator) mutate(ctx context.Context, id string) {
	o.mu.Lock()
	old := o.machine.Current()
	o.stage.RemoveMode(old)
	next := o.machine.Advance()
	o.stage.AddMode(next)
	index := o.machine.Index()
	o.mu.Unlock()

	o.emitModeChange(ctx, id, old, next, index)
}

// awaiter plays a freshly built timeline and blocks until it settles or ctx
// is done. A build error is returned without playing. A timeline left
// playing after ctx is done is stored in abandoned.
func (o *Orchestrator) awaiter(ctx context.Context, abandoned **anim.Completion) func(*anim.Timeline, error) error {
	return func(tl *anim.Timeline, err error) error {
		if err != nil {
			return err
		}
		c := o.animator.Play(tl)
		if err := c.Wait(ctx); err != nil {
			if !c.Resolved() {
				*abandoned = c
			}
			return fmt.Errorf("%s: %w", tl.Label(), err)
		}
		return nil
	}
}

// fireFinale runs from the finale slot. The flag is checked again under the
// lock because a wrap or an earlier firing may have happened meanwhile.
func (o *Orchestrator) fireFinale() {
	o.mu.Lock()
	if o.finaleFired {
		o.mu.Unlock()
		return
	}
	o.finaleFired = true
	o.mu.Unlock()

	items := o.stage.Items()
	tl, err := o.composer.Finale(items, o.stage.Highlights())
	if err != nil {
		o.logger.Error("finale rejected", "err", err)
		return
	}
	o.logger.Info("finale", "items", len(items))
	o.emitFinale(context.Background(), len(items))
	o.animator.Play(tl)
}
