package marquee_test

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/pkg/anim"
	"github.com/aretw0/marquee/pkg/clock"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/observability"
)

func newInstant(t *testing.T, opts ...marquee.Option) (*marquee.Presentation, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(time.Unix(0, 0))
	opts = append([]marquee.Option{
		marquee.WithClock(fake),
		marquee.WithAnimator(anim.NewInstant(nil)),
		marquee.WithRand(rand.New(rand.NewPCG(1, 2))),
	}, opts...)
	p, err := marquee.New(nil, opts...)
	require.NoError(t, err)
	return p, fake
}

func TestPresentation_FullCycle(t *testing.T) {
	metrics := observability.NewMetrics()
	p, fake := newInstant(t, marquee.WithMetrics(metrics))
	require.NoError(t, p.Start(context.Background()))

	fake.Advance(20 * time.Second)
	st := p.State()
	assert.Equal(t, 5, p.Completed())
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, domain.ModeFinal, st.Mode)
	assert.False(t, st.FinalSequenceFired)

	p.Stop()
	assert.Empty(t, p.Pending())
	assert.Equal(t, 0, fake.Pending())
	assert.Equal(t, 0, p.Effects().Particles())

	var buf bytes.Buffer
	require.NoError(t, metrics.Summary(&buf))
	assert.Contains(t, buf.String(), `marquee_transitions_total{result="ok"} 5`)
	assert.Contains(t, buf.String(), "marquee_finales_total 1")
	assert.Contains(t, buf.String(), "marquee_particles_live 0")
}

func TestPresentation_Resize(t *testing.T) {
	p, fake := newInstant(t)
	require.NoError(t, p.Start(context.Background()))

	assert.True(t, p.Resize(120, 40))
	w, h := p.Stage().Viewport()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
	assert.Equal(t, []string{domain.SlotLoop, domain.SlotResize}, p.Pending())

	fake.Advance(2500 * time.Millisecond)
	assert.Equal(t, 1, p.Completed())
	assert.Equal(t, []string{domain.SlotLoop}, p.Pending(), "the debounced run replaced the loop timer")

	fake.Advance(2900 * time.Millisecond)
	assert.Equal(t, 1, p.Completed())
	p.Stop()
}

func TestPresentation_TogglePause(t *testing.T) {
	p, _ := newInstant(t)
	assert.True(t, p.TogglePause())
	assert.True(t, p.Paused())
	assert.False(t, p.TogglePause())

	p.SetVisible(false)
	assert.True(t, p.Paused())
	p.SetVisible(true)
	assert.False(t, p.Paused())
}

func TestPresentation_InvalidConfig(t *testing.T) {
	cfg, err := marquee.DefaultConfig()
	require.NoError(t, err)
	cfg.Layouts = []string{"spiral"}
	_, err = marquee.New(cfg)
	assert.ErrorIs(t, err, domain.ErrContract)
}

func TestPresentation_RunStopsOnCancel(t *testing.T) {
	if testing.Short() {
		t.Skip("plays the entrance in real time")
	}
	cfg, err := marquee.DefaultConfig()
	require.NoError(t, err)
	cfg.Schedule.InitialDelay = time.Hour
	p, err := marquee.New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	// The entrance plays in real time on the frame engine.
	require.Eventually(t, func() bool {
		return strings.Contains(strings.Join(p.Pending(), ","), domain.SlotLoop)
	}, 8*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.Empty(t, p.Pending())
}

func TestRunner_Trace(t *testing.T) {
	var buf bytes.Buffer
	r := &marquee.Runner{Output: &buf, Renderer: func(kind domain.EventType, line string) string {
		return string(kind) + "|" + line
	}}
	p, err := r.Trace(context.Background(), nil, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, p.Completed())
	assert.Equal(t, domain.ModePlain, p.State().Mode)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "mode_change|+3s"))
	assert.True(t, strings.HasPrefix(lines[4], "finale|+14s"))
	assert.Contains(t, lines[7], "6 transitions, mode plain [1]")
}

func TestRunner_Cancelled(t *testing.T) {
	cfg, err := marquee.DefaultConfig()
	require.NoError(t, err)
	r := &marquee.Runner{Output: &bytes.Buffer{}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Trace(ctx, cfg, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
