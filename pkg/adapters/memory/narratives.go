package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/marquee/pkg/domain"
)

// Narratives implements ports.NarrativeLookup over a static map.
type Narratives struct {
	entries map[string]domain.Narrative
}

// NewNarratives copies entries into a read-only table.
func NewNarratives(entries map[string]domain.Narrative) *Narratives {
	cp := make(map[string]domain.Narrative, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	return &Narratives{entries: cp}
}

// DefaultNarratives returns the stock seven-entry table.
func DefaultNarratives() *Narratives {
	return NewNarratives(map[string]domain.Narrative{
		"shores":     {Emotion: "wonder", Theme: "natural beauty", Climax: "architectural transformation"},
		"heritage":   {Emotion: "reverence", Theme: "ancient wisdom", Climax: "generational continuity"},
		"welcome":    {Emotion: "warmth", Theme: "human connection", Climax: "universal family"},
		"strength":   {Emotion: "determination", Theme: "resilience", Climax: "triumphant growth"},
		"dreams":     {Emotion: "aspiration", Theme: "boundless vision", Climax: "stellar achievement"},
		"innovation": {Emotion: "curiosity", Theme: "creative fusion", Climax: "technological poetry"},
		"honor":      {Emotion: "dignity", Theme: "moral leadership", Climax: "sovereign grace"},
	})
}

// Lookup returns the narrative for key.
func (n *Narratives) Lookup(key string) (domain.Narrative, error) {
	v, ok := n.entries[key]
	if !ok {
		return domain.Narrative{}, fmt.Errorf("%w: %q", domain.ErrMissingNarrative, key)
	}
	return v, nil
}

// Keys returns the table keys in sorted order.
func (n *Narratives) Keys() []string {
	keys := make([]string, 0, len(n.entries))
	for k := range n.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (n *Narratives) Len() int {
	return len(n.entries)
}
