package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// New creates a configured application logger.
// It writes to Stderr (to keep Stdout for trace lines and the TUI).
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return NewText(os.Stderr, level)
}

// NewText creates a plain text logger writing to w.
func NewText(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewPretty creates a colourised human logger backed by charmbracelet/log.
func NewPretty(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.Level(level),
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ForFormat picks the handler for format: "pretty", "text", or "auto"
// (pretty when f is a terminal).
func ForFormat(f *os.File, format string, level slog.Level) (*slog.Logger, error) {
	switch format {
	case "pretty":
		return NewPretty(f, level), nil
	case "text":
		return NewText(f, level), nil
	case "", "auto":
		if term.IsTerminal(int(f.Fd())) {
			return NewPretty(f, level), nil
		}
		return NewText(f, level), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}
