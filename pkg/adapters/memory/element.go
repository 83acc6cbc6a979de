package memory

import (
	"sync"

	"github.com/aretw0/marquee/pkg/domain"
)

// Element is an in-memory animatable target with layout geometry.
// Safe for concurrent use.
type Element struct {
	id   string
	text string

	mu    sync.RWMutex
	props domain.Props
	box   domain.Box
}

// NewElement creates an element with the given display text.
func NewElement(id, text string) *Element {
	return &Element{id: id, text: text, props: make(domain.Props)}
}

func (e *Element) ID() string { return e.id }

// Text is the content the surface renders for the element.
func (e *Element) Text() string { return e.text }

// Get returns a property value, or its default when never set.
func (e *Element) Get(p domain.Prop) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if v, ok := e.props[p]; ok {
		return v
	}
	return domain.DefaultValue(p)
}

// Set writes a property value.
func (e *Element) Set(p domain.Prop, v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.props[p] = v
}

// Props returns a copy of every property explicitly set.
func (e *Element) Props() domain.Props {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.props.Clone()
}

// Box returns the layout box computed by the stage.
func (e *Element) Box() domain.Box {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.box
}

func (e *Element) setBox(b domain.Box) {
	e.mu.Lock()
	e.box = b
	e.mu.Unlock()
}

// Rendered is the layout box translated by the x/y props and stretched by
// scaleX/scaleY.
func (e *Element) Rendered() domain.Box {
	e.mu.RLock()
	box := e.box
	e.mu.RUnlock()
	return box.Translate(e.Get(domain.PropX), e.Get(domain.PropY)).
		Stretch(e.Get(domain.PropScaleX), e.Get(domain.PropScaleY))
}

// Visible reports whether the element is displayed with non-zero opacity.
func (e *Element) Visible() bool {
	return e.Get(domain.PropDisplay) > 0 && e.Get(domain.PropOpacity) > 0
}
