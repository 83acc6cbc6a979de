package tui

import (
	"io"

	"github.com/muesli/termenv"

	"github.com/aretw0/marquee/pkg/domain"
)

// TraceStyler colours trace lines by event kind for the profile of w.
func TraceStyler(w io.Writer) func(domain.EventType, string) string {
	out := termenv.NewOutput(w)
	colors := map[domain.EventType]termenv.Color{
		domain.EventModeChange:        out.Color("#a78bfa"),
		domain.EventFinale:            out.Color("#fbbf24"),
		domain.EventTransitionDropped: out.Color("#94a3b8"),
		domain.EventTransitionEnd:     out.Color("#34d399"),
	}
	return func(kind domain.EventType, line string) string {
		c, ok := colors[kind]
		if !ok {
			return line
		}
		s := out.String(line).Foreground(c)
		if kind == domain.EventFinale {
			s = s.Bold()
		}
		return s.String()
	}
}
