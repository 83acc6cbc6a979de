package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/internal/logging"
	"github.com/aretw0/marquee/internal/presentation/tui"
)

// RunPlay runs the interactive presentation until the user quits or ctx is
// cancelled.
func RunPlay(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	// The TUI owns the terminal, so logs are discarded unless a file is given.
	logger := logging.NewNop()
	if opts.Err != nil {
		if logger, err = newLogger(cfg, opts); err != nil {
			return err
		}
	}

	p, err := marquee.New(cfg, marquee.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("error initializing presentation: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	prog := tea.NewProgram(tui.NewModel(gctx, p),
		tea.WithContext(gctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	g.Go(func() error { return p.Run(gctx) })
	g.Go(func() error {
		defer cancel()
		_, err := prog.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
