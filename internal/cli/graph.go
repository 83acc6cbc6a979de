package cli

import (
	"fmt"

	"github.com/aretw0/marquee/internal/presentation/graph"
)

// RunGraph prints the layout cycle as a Mermaid flowchart.
func RunGraph(opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	modes, err := cfg.Modes()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(opts.out(), graph.GenerateMermaid(modes, nil))
	return err
}
