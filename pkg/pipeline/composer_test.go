package pipeline_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/anim"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/emitter"
	"github.com/aretw0/marquee/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEffects struct {
	mu       sync.Mutex
	variants []domain.Variant
}

func (r *recordedEffects) Start(_ domain.ParticleHost, v domain.Variant) *emitter.Emitter {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variants = append(r.variants, v)
	return nil
}

type fixture struct {
	stage    *memory.Stage
	animator *anim.Instant
	effects  *recordedEffects
	composer *pipeline.Composer
}

func newFixture() *fixture {
	f := &fixture{
		stage:    memory.NewStage(memory.DefaultItems(), memory.DefaultHighlights()),
		animator: anim.NewInstant(nil),
		effects:  &recordedEffects{},
	}
	f.composer = pipeline.NewComposer(memory.DefaultNarratives(), f.effects, f.animator)
	return f
}

func phaseStart(t *testing.T, tl *anim.Timeline, label string) time.Duration {
	t.Helper()
	for _, p := range tl.Phases() {
		if p.Label == label {
			return p.Start
		}
	}
	t.Fatalf("phase %q not found", label)
	return 0
}

func TestReveal_Offsets(t *testing.T) {
	f := newFixture()
	it := f.stage.Items()[2]

	tl, err := f.composer.Reveal(it, 2, true)
	require.NoError(t, err)
	base := 400 * time.Millisecond
	assert.Equal(t, base, phaseStart(t, tl, "emphasis"))
	assert.Equal(t, base+500*time.Millisecond, phaseStart(t, tl, "effect"))
	assert.Equal(t, base+800*time.Millisecond, phaseStart(t, tl, "label"))
	assert.Equal(t, base+1600*time.Millisecond, phaseStart(t, tl, "detail"), "detail trails the label by the narrative delay")
	assert.Equal(t, base+2*time.Second, phaseStart(t, tl, "color-shift"))
	assert.Equal(t, base+4*time.Second, phaseStart(t, tl, "rest"))

	flat, err := f.composer.Reveal(it, 2, false)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), phaseStart(t, flat, "emphasis"))
}

func TestReveal_NarrativeDelayMovesOnlyTheDetail(t *testing.T) {
	f := newFixture()
	tm := pipeline.DefaultTiming()
	tm.NarrativeDelay = 2 * time.Second
	c := pipeline.NewComposer(memory.DefaultNarratives(), f.effects, f.animator, pipeline.WithTiming(tm))

	tl, err := c.Reveal(f.stage.Items()[0], 0, false)
	require.NoError(t, err)
	assert.Equal(t, 800*time.Millisecond, phaseStart(t, tl, "label"))
	assert.Equal(t, 2800*time.Millisecond, phaseStart(t, tl, "detail"))

	tm.LabelDelay = 300 * time.Millisecond
	c = pipeline.NewComposer(memory.DefaultNarratives(), f.effects, f.animator, pipeline.WithTiming(tm))
	tl, err = c.Reveal(f.stage.Items()[0], 0, false)
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, phaseStart(t, tl, "label"))
	assert.Equal(t, 2300*time.Millisecond, phaseStart(t, tl, "detail"))
}

func TestReveal_PlaysEffectsAndFlags(t *testing.T) {
	f := newFixture()
	items := f.stage.Items()
	for i, it := range items[:3] {
		tl, err := f.composer.Reveal(it, i, true)
		require.NoError(t, err)
		f.animator.Play(tl)
	}
	assert.Equal(t, []domain.Variant{domain.VariantGold, domain.VariantDefault, domain.VariantSilver}, f.effects.variants)
	assert.Equal(t, domain.ItemFlag(0), items[0].Flags(), "flags are cleared on return to rest")
	assert.Equal(t, 1.0, items[0].Label().Get(domain.PropOpacity))
	assert.Equal(t, 1.0, items[0].Get(domain.PropScale))
}

func TestReveal_MissingNarrative(t *testing.T) {
	f := newFixture()
	stray := memory.NewItem("stray", memory.ItemSpec{Key: "unknown"})
	_, err := f.composer.Reveal(stray, 0, true)
	assert.ErrorIs(t, err, domain.ErrMissingNarrative)
	assert.ErrorIs(t, err, domain.ErrContract)
}

func TestFade_CallbackBetweenDimAndRestore(t *testing.T) {
	f := newFixture()
	items := f.stage.Items()
	calls := 0
	var dimmed []float64
	tl, err := f.composer.Fade(items, func() {
		calls++
		for _, it := range items {
			dimmed = append(dimmed, it.Get(domain.PropOpacity))
		}
	})
	require.NoError(t, err)

	dimEnd := tl.Phases()[0].End()
	assert.Equal(t, 400*time.Millisecond+6*50*time.Millisecond, dimEnd)
	assert.Equal(t, dimEnd, phaseStart(t, tl, "mutate"))
	assert.Equal(t, dimEnd, phaseStart(t, tl, "restore"))

	require.True(t, f.animator.Play(tl).Resolved())
	assert.Equal(t, 1, calls)
	for _, o := range dimmed {
		assert.InDelta(t, 0.3, o, 1e-9)
	}
	for _, it := range items {
		assert.Equal(t, 1.0, it.Get(domain.PropOpacity))
	}

	var order []string
	for _, ev := range f.animator.Log() {
		if ev.Kind == anim.EventComplete || ev.Kind == anim.EventCall {
			order = append(order, ev.Phase)
		}
	}
	assert.Equal(t, []string{"dim", "mutate", "restore"}, order)
}

func TestFade_EmptyItemsStillRunsCallback(t *testing.T) {
	f := newFixture()
	ran := false
	tl, err := f.composer.Fade(nil, func() { ran = true })
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), tl.Duration())

	engine := anim.NewEngine()
	c := engine.Play(tl)
	assert.True(t, c.Resolved(), "zero-length fade settles without a tick")
	assert.True(t, ran)
}

func TestGridEntry_OverlapAndAccents(t *testing.T) {
	f := newFixture()
	items := f.stage.Items()
	tl, err := f.composer.GridEntry(items)
	require.NoError(t, err)

	scaleSpan := time.Second + 6*80*time.Millisecond
	content := scaleSpan - scaleSpan/4
	assert.Equal(t, content, phaseStart(t, tl, "label:"+items[0].ID()))
	assert.Equal(t, content+800*time.Millisecond, phaseStart(t, tl, "detail:"+items[0].ID()))
	assert.Equal(t, content+3*800*time.Millisecond, phaseStart(t, tl, "label:"+items[3].ID()))
	assert.Equal(t, content+3*800*time.Millisecond+time.Second, phaseStart(t, tl, "accent:"+items[3].ID()), "strength has the resilience accent")

	var labelEase anim.Ease
	for _, p := range tl.Phases() {
		if p.Label == "label:"+items[3].ID() {
			labelEase = p.Ease
		}
	}
	assert.Equal(t, anim.Power4Out, labelEase, "determination uses the sharper ease")

	f.animator.Play(tl)
	assert.InDelta(t, 0.65, items[0].Get(domain.PropScale), 1e-9)
	assert.Equal(t, 1.0, items[6].Detail().Get(domain.PropOpacity))
	assert.Equal(t, 0.0, items[3].Get(domain.PropShadow), "accent yoyos back")
}

func TestGridExit_HidesContentThenUnscales(t *testing.T) {
	f := newFixture()
	items := f.stage.Items()
	entry, err := f.composer.GridEntry(items)
	require.NoError(t, err)
	f.animator.Play(entry)

	exit, err := f.composer.GridExit(items)
	require.NoError(t, err)
	detailsEnd := 600*time.Millisecond + 6*80*time.Millisecond
	labelsEnd := 300*time.Millisecond + 600*time.Millisecond + 6*50*time.Millisecond
	assert.Equal(t, max(detailsEnd, labelsEnd), phaseStart(t, exit, "unscale"))

	f.animator.Play(exit)
	for _, it := range items {
		assert.Equal(t, 0.0, it.Label().Get(domain.PropOpacity))
		assert.Equal(t, 0.0, it.Detail().Get(domain.PropOpacity))
		assert.Equal(t, 1.0, it.Get(domain.PropScale))
	}
}

func TestEntrance_WonderPulse(t *testing.T) {
	f := newFixture()
	items := f.stage.Items()
	tl, err := f.composer.Entrance(items, true)
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond+6*150*time.Millisecond, phaseStart(t, tl, "enter:"+items[6].ID()))

	f.animator.Play(tl)
	pulses := 0
	for _, ev := range f.animator.Log() {
		if ev.Timeline == "hue:"+items[0].ID() && ev.Kind == anim.EventComplete {
			pulses++
		}
	}
	assert.Equal(t, 1, pulses, "only the wonder item pulses")
	for _, it := range items {
		assert.Equal(t, 1.0, it.Get(domain.PropOpacity))
		assert.Equal(t, 0.0, it.Get(domain.PropHue))
	}
}

func TestFinale_RevealsEveryItemAndShowsHighlights(t *testing.T) {
	f := newFixture()
	items := f.stage.Items()
	tl, err := f.composer.Finale(items, f.stage.Highlights())
	require.NoError(t, err)
	assert.Equal(t, 6*300*time.Millisecond, phaseStart(t, tl, "final-reveal:"+items[6].ID()))

	f.animator.Play(tl)
	for _, it := range items {
		assert.True(t, it.Flags().Has(domain.FlagFinaleActive))
	}
	assert.Len(t, f.effects.variants, len(items))
	for _, h := range f.stage.HighlightElements() {
		assert.True(t, h.Visible())
		assert.InDelta(t, 1.1, h.Get(domain.PropScale), 1e-9)
	}
}

func TestHighlights_ShowAndHide(t *testing.T) {
	f := newFixture()
	hl := f.stage.Highlights()

	show, err := f.composer.Highlights(hl, true)
	require.NoError(t, err)
	f.animator.Play(show)
	for _, h := range f.stage.HighlightElements() {
		assert.True(t, h.Visible())
	}

	hide, err := f.composer.Highlights(hl, false)
	require.NoError(t, err)
	f.animator.Play(hide)
	for _, h := range f.stage.HighlightElements() {
		assert.False(t, h.Visible())
		assert.Equal(t, 0.0, h.Get(domain.PropDisplay))
	}
}

func TestReflow_InvertsThenPlaysToNewLayout(t *testing.T) {
	f := newFixture()
	items := f.stage.Items()
	f.stage.AddMode(domain.ModeColumns)
	snaps := f.animator.Snapshot(domain.Targets(items))

	f.stage.RemoveMode(domain.ModeColumns)
	f.stage.AddMode(domain.ModeRows)
	tl, err := f.composer.Reflow(snaps)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond+6*100*time.Millisecond, tl.Duration())

	var inverted []domain.Props
	for _, p := range tl.Phases() {
		if p.Kind == anim.KindSet {
			inverted = append(inverted, p.To)
		}
	}
	require.Len(t, inverted, len(items))
	assert.Equal(t, snaps[3].Box.X-items[3].Box().X, inverted[3][domain.PropX])

	// The inverted pose renders each item in its old box, size included.
	for i, it := range items {
		inv := inverted[i]
		old := it.Box().
			Translate(inv[domain.PropX], inv[domain.PropY]).
			Stretch(inv[domain.PropScaleX], inv[domain.PropScaleY])
		assert.InDelta(t, snaps[i].Box.X, old.X, 1e-9)
		assert.InDelta(t, snaps[i].Box.Y, old.Y, 1e-9)
		assert.InDelta(t, snaps[i].Box.W, old.W, 1e-9)
		assert.InDelta(t, snaps[i].Box.H, old.H, 1e-9)
	}
	assert.NotEqual(t, 1.0, inverted[0][domain.PropScaleX], "columns to rows widens every item")

	f.animator.Play(tl)
	for _, it := range items {
		assert.Equal(t, 0.0, it.Get(domain.PropX))
		assert.Equal(t, 0.0, it.Get(domain.PropY))
		assert.InDelta(t, 1.0, it.Get(domain.PropScaleX), 1e-9)
		assert.InDelta(t, 1.0, it.Get(domain.PropScaleY), 1e-9)
	}
}

func TestReflow_ZeroSizedBoxKeepsScale(t *testing.T) {
	f := newFixture()
	it := f.stage.Items()[0]
	snaps := []anim.Snapshot{{Target: it, Box: domain.Box{X: 1, Y: 1}}}

	tl, err := f.composer.Reflow(snaps)
	require.NoError(t, err)
	set := tl.Phases()[0]
	assert.Equal(t, 1.0, set.To[domain.PropScaleX])
	assert.Equal(t, 1.0, set.To[domain.PropScaleY])
}

func TestTiming_Validate(t *testing.T) {
	assert.NoError(t, pipeline.DefaultTiming().Validate())

	tm := pipeline.DefaultTiming()
	tm.FadeOut = -1
	assert.ErrorIs(t, tm.Validate(), domain.ErrNegativeDuration)

	tm = pipeline.DefaultTiming()
	tm.GridOverlap = 2
	assert.ErrorIs(t, tm.Validate(), domain.ErrContract)
}
