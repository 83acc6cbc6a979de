package memory

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/aretw0/marquee/pkg/domain"
)

// Default viewport in surface cells.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Stage is an in-memory presentation surface. Mode tags drive a simple
// geometry model: applying or removing a tag recomputes every item box
// instantly, like a style recalculation.
type Stage struct {
	items      []*Item
	highlights []*Element

	mu      sync.RWMutex
	modes   []domain.LayoutMode
	width   int
	height  int
	settles int
}

// StageOption configures a Stage.
type StageOption func(*Stage)

// WithViewport sets the initial surface size.
func WithViewport(w, h int) StageOption {
	return func(s *Stage) {
		if w > 0 && h > 0 {
			s.width, s.height = w, h
		}
	}
}

// WithInitialMode applies a mode tag at construction.
func WithInitialMode(m domain.LayoutMode) StageOption {
	return func(s *Stage) {
		s.modes = []domain.LayoutMode{m}
	}
}

// NewStage builds items from specs and highlight elements from their labels.
func NewStage(specs []ItemSpec, highlights []string, opts ...StageOption) *Stage {
	s := &Stage{width: DefaultWidth, height: DefaultHeight}
	for i, spec := range specs {
		s.items = append(s.items, NewItem(fmt.Sprintf("item-%d-%s", i, spec.Key), spec))
	}
	for i, text := range highlights {
		h := NewElement(fmt.Sprintf("highlight-%d", i), text)
		h.Set(domain.PropOpacity, 0)
		h.Set(domain.PropDisplay, 0)
		s.highlights = append(s.highlights, h)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.layout()
	return s
}

// Items returns the items as domain.Item.
func (s *Stage) Items() []domain.Item {
	out := make([]domain.Item, len(s.items))
	for i, it := range s.items {
		out[i] = it
	}
	return out
}

// StageItems returns the concrete items.
func (s *Stage) StageItems() []*Item {
	return slices.Clone(s.items)
}

// Highlights returns the highlight elements as targets.
func (s *Stage) Highlights() []domain.Target {
	out := make([]domain.Target, len(s.highlights))
	for i, h := range s.highlights {
		out[i] = h
	}
	return out
}

// HighlightElements returns the concrete highlight elements.
func (s *Stage) HighlightElements() []*Element {
	return slices.Clone(s.highlights)
}

// AddMode applies a mode tag. Adding a present tag is a no-op.
func (s *Stage) AddMode(m domain.LayoutMode) {
	s.mu.Lock()
	if !slices.Contains(s.modes, m) {
		s.modes = append(s.modes, m)
	}
	s.mu.Unlock()
	s.layout()
}

// RemoveMode removes a mode tag. Removing an absent tag is a no-op.
func (s *Stage) RemoveMode(m domain.LayoutMode) {
	s.mu.Lock()
	s.modes = slices.DeleteFunc(s.modes, func(x domain.LayoutMode) bool { return x == m })
	s.mu.Unlock()
	s.layout()
}

// Modes returns the applied tags in application order.
func (s *Stage) Modes() []domain.LayoutMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.modes)
}

// Mode is the tag that currently drives geometry. With no tag applied the
// stage lays out as plain.
func (s *Stage) Mode() domain.LayoutMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeMode()
}

func (s *Stage) activeMode() domain.LayoutMode {
	if n := len(s.modes); n > 0 {
		return s.modes[n-1]
	}
	return domain.ModePlain
}

// Settle recomputes geometry.
func (s *Stage) Settle() {
	s.mu.Lock()
	s.settles++
	s.mu.Unlock()
	s.layout()
}

// Settles counts explicit Settle calls.
func (s *Stage) Settles() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settles
}

// Resize changes the viewport and recomputes geometry.
func (s *Stage) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.mu.Lock()
	s.width, s.height = w, h
	s.mu.Unlock()
	s.layout()
}

// Viewport returns the surface size.
func (s *Stage) Viewport() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

func (s *Stage) layout() {
	s.mu.RLock()
	mode := s.activeMode()
	w, h := float64(s.width), float64(s.height)
	s.mu.RUnlock()

	boxes := Layout(mode, len(s.items), w, h)
	for i, it := range s.items {
		it.setBox(boxes[i])
	}
	for i, hl := range s.highlights {
		hw := w / float64(len(s.highlights)+1)
		hl.setBox(domain.Box{X: hw*float64(i) + hw/2, Y: h * 0.7, W: hw, H: 1})
	}
}

// Layout computes n item boxes for a mode in a w×h viewport.
func Layout(mode domain.LayoutMode, n int, w, h float64) []domain.Box {
	boxes := make([]domain.Box, n)
	if n == 0 {
		return boxes
	}
	switch mode {
	case domain.ModeColumns:
		cw := w / float64(n)
		for i := range boxes {
			boxes[i] = domain.Box{X: cw * float64(i), Y: 0, W: cw, H: h}
		}
	case domain.ModeRows:
		rh := h / float64(n)
		for i := range boxes {
			boxes[i] = domain.Box{X: 0, Y: rh * float64(i), W: w, H: rh}
		}
	case domain.ModeGrid:
		cols := int(math.Ceil(math.Sqrt(float64(n))))
		rows := (n + cols - 1) / cols
		cw, rh := w/float64(cols), h/float64(rows)
		for i := range boxes {
			boxes[i] = domain.Box{X: cw * float64(i%cols), Y: rh * float64(i/cols), W: cw, H: rh}
		}
	default:
		// plain and final share a single centred row; final sits higher to
		// leave room for the highlights.
		cw := w / float64(n)
		y := h / 3
		if mode == domain.ModeFinal {
			y = h / 4
		}
		for i := range boxes {
			boxes[i] = domain.Box{X: cw * float64(i), Y: y, W: cw, H: h / 3}
		}
	}
	return boxes
}

// DefaultItems returns the stock seven items matching DefaultNarratives.
func DefaultItems() []ItemSpec {
	return []ItemSpec{
		{Key: "shores", Glyph: "B", Word: "Shores", Caption: "architectural transformation"},
		{Key: "heritage", Glyph: "A", Word: "Heritage", Caption: "generational continuity"},
		{Key: "welcome", Glyph: "H", Word: "Welcome", Caption: "universal family"},
		{Key: "strength", Glyph: "R", Word: "Strength", Caption: "triumphant growth"},
		{Key: "dreams", Glyph: "A", Word: "Dreams", Caption: "stellar achievement"},
		{Key: "innovation", Glyph: "I", Word: "Innovation", Caption: "technological poetry"},
		{Key: "honor", Glyph: "N", Word: "Honor", Caption: "sovereign grace"},
	}
}

// DefaultHighlights returns the stock final-mode decorations.
func DefaultHighlights() []string {
	return []string{"Kingdom", "Bahrain"}
}
