package cli

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/internal/presentation/tui"
	"github.com/aretw0/marquee/pkg/observability"
)

// TraceOptions configures a headless trace.
type TraceOptions struct {
	Options
	Transitions int
	Seed        uint64
	Metrics     bool
	Verbose     bool
}

// RunTrace runs the configured cycle on a virtual clock and prints one line
// per lifecycle event, followed by a metrics summary when requested.
func RunTrace(ctx context.Context, opts TraceOptions) error {
	if opts.Transitions <= 0 {
		return fmt.Errorf("transitions must be positive, got %d", opts.Transitions)
	}
	cfg, err := loadConfig(opts.Options)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.Options)
	if err != nil {
		return err
	}

	out := opts.out()
	metrics := observability.NewMetrics()
	presOpts := []marquee.Option{
		marquee.WithLogger(logger),
		marquee.WithMetrics(metrics),
		marquee.WithRand(rand.New(rand.NewPCG(opts.Seed, opts.Seed))),
	}
	if opts.Verbose {
		presOpts = append(presOpts, marquee.WithLifecycleHooks(observability.LogHooks(logger)))
	}

	r := &marquee.Runner{Output: out, Renderer: tui.TraceStyler(out)}
	if _, err := r.Trace(ctx, cfg, opts.Transitions, presOpts...); err != nil {
		return fmt.Errorf("trace failed: %w", err)
	}
	if opts.Metrics {
		fmt.Fprintln(out)
		return metrics.Summary(out)
	}
	return nil
}
