package cli

import (
	"fmt"

	"github.com/aretw0/marquee/internal/presentation/tui"
)

// RunNarratives prints the narrative table. Plain emits raw markdown.
func RunNarratives(opts Options, plain bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	md := tui.NarrativeTable(cfg.Narratives)
	if plain {
		_, err := fmt.Fprint(opts.out(), md)
		return err
	}
	render, err := tui.NewRenderer(0)
	if err != nil {
		return err
	}
	text, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render narratives: %w", err)
	}
	_, err = fmt.Fprint(opts.out(), text)
	return err
}
