package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/marquee/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// A positive width enables word wrap at that column.
func NewRenderer(width int) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// NarrativeTable formats the narrative table as markdown, sorted by key.
func NarrativeTable(entries map[string]domain.Narrative) string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("# Narratives\n\n")
	b.WriteString("| Item | Emotion | Theme | Climax | Particles |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, k := range keys {
		n := entries[k]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", k, n.Emotion, n.Theme, n.Climax, domain.VariantFor(n.Emotion))
	}
	return b.String()
}
