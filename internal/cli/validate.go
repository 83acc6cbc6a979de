package cli

import (
	"fmt"
)

// RunValidate loads and validates the config, reporting a short summary.
func RunValidate(opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(opts.out(), "Config is valid: %d layouts, %d items, %d narratives\n",
		len(cfg.Layouts), len(cfg.Items), len(cfg.Narratives))
	return err
}
