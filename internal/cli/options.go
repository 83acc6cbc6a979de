package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/internal/logging"
)

// Options carries the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string

	// Out receives command output; nil means Stdout.
	Out io.Writer
	// Err receives logs; nil means Stderr.
	Err *os.File
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts Options) (*marquee.Config, error) {
	cfg, err := marquee.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.Log.Format = opts.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", opts.ConfigPath, err)
	}
	return cfg, nil
}

// newLogger builds the logger selected by the config.
func newLogger(cfg *marquee.Config, opts Options) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	f := opts.Err
	if f == nil {
		f = os.Stderr
	}
	return logging.ForFormat(f, cfg.Log.Format, level)
}
