package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/marquee/pkg/domain"
)

// CycleOverlay contains dynamic state data to visualize on the cycle.
type CycleOverlay struct {
	Current      domain.LayoutMode
	FinaleFired  bool
	VisitedModes []domain.LayoutMode
}

// GenerateMermaid produces a Mermaid flowchart of a layout cycle.
// Shapes:
// - First mode (cycle origin): ((Circle))
// - Grid, which runs its own entry and exit effects: [[Subroutine]]
// - Default: [Rectangle]
// The edge leaving the penultimate mode carries the finale pre-trigger and
// the wrap back to the origin is dotted.
func GenerateMermaid(modes []domain.LayoutMode, overlay *CycleOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	n := len(modes)
	for i, m := range modes {
		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case m == domain.ModeGrid:
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", string(m), opener, m, closer))
	}
	if n < 2 {
		return withOverlay(&sb, overlay)
	}

	for i, m := range modes {
		next := modes[(i+1)%n]
		arrow := "-->"
		switch {
		case i == n-2:
			arrow = "-- \"✨ finale +delay\" -->"
		case i == n-1:
			arrow = "-. \"wrap\" .->"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", m, arrow, next))
	}
	return withOverlay(&sb, overlay)
}

func withOverlay(sb *strings.Builder, overlay *CycleOverlay) string {
	if overlay == nil {
		return sb.String()
	}
	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	seen := make(map[domain.LayoutMode]bool)
	for _, m := range overlay.VisitedModes {
		if !seen[m] && m != "" {
			seen[m] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", m))
		}
	}
	if overlay.Current != "" {
		sb.WriteString(fmt.Sprintf("    class %s current;\n", overlay.Current))
	}
	if overlay.FinaleFired {
		sb.WriteString("    %% finale fired this cycle\n")
	}
	return sb.String()
}
