package memory

import (
	"fmt"
	"sync"

	"github.com/aretw0/marquee/pkg/domain"
)

// ItemSpec describes one presentation item.
type ItemSpec struct {
	Key     string `mapstructure:"key" yaml:"key"`
	Glyph   string `mapstructure:"glyph" yaml:"glyph"`
	Word    string `mapstructure:"word" yaml:"word"`
	Caption string `mapstructure:"caption" yaml:"caption"`
}

// Item is an in-memory domain.Item: a glyph element carrying a label, a
// detail and a particle host.
type Item struct {
	*Element

	key       string
	label     *Element
	detail    *Element
	particles *ParticleHost

	flagMu sync.RWMutex
	flags  domain.ItemFlag
}

// NewItem builds an item in its initial pose: content hidden and offset.
func NewItem(id string, spec ItemSpec) *Item {
	it := &Item{
		Element:   NewElement(id, spec.Glyph),
		key:       spec.Key,
		label:     NewElement(id+"/label", spec.Word),
		detail:    NewElement(id+"/detail", spec.Caption),
		particles: NewParticleHost(id + "/particles"),
	}
	it.label.Set(domain.PropOpacity, 0)
	it.label.Set(domain.PropY, 20)
	it.detail.Set(domain.PropOpacity, 0)
	it.detail.Set(domain.PropY, 30)
	it.detail.Set(domain.PropScale, 0.9)
	return it
}

func (it *Item) Key() string { return it.key }

func (it *Item) Label() domain.Target { return it.label }

func (it *Item) Detail() domain.Target { return it.detail }

func (it *Item) Particles() domain.ParticleHost { return it.particles }

// LabelElement and DetailElement expose the concrete sub-elements to renderers.
func (it *Item) LabelElement() *Element { return it.label }

func (it *Item) DetailElement() *Element { return it.detail }

func (it *Item) Host() *ParticleHost { return it.particles }

func (it *Item) Flags() domain.ItemFlag {
	it.flagMu.RLock()
	defer it.flagMu.RUnlock()
	return it.flags
}

func (it *Item) SetFlag(f domain.ItemFlag, on bool) {
	it.flagMu.Lock()
	defer it.flagMu.Unlock()
	if on {
		it.flags |= f
	} else {
		it.flags &^= f
	}
}

// ParticleHost attaches particle elements to an item.
type ParticleHost struct {
	id string

	mu        sync.Mutex
	seq       int
	particles map[domain.Target]domain.Variant
	order     []*Element
}

// NewParticleHost creates an empty host.
func NewParticleHost(id string) *ParticleHost {
	return &ParticleHost{id: id, particles: make(map[domain.Target]domain.Variant)}
}

func (h *ParticleHost) ID() string { return h.id }

// Spawn attaches a new particle element.
func (h *ParticleHost) Spawn(v domain.Variant) domain.Target {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	p := NewElement(fmt.Sprintf("%s/%d", h.id, h.seq), string(v))
	h.particles[p] = v
	h.order = append(h.order, p)
	return p
}

// Remove detaches a particle. Unknown particles are ignored.
func (h *ParticleHost) Remove(t domain.Target) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.particles[t]; !ok {
		return
	}
	delete(h.particles, t)
	for i, p := range h.order {
		if domain.Target(p) == t {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Count returns the number of attached particles.
func (h *ParticleHost) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.particles)
}

// Live returns attached particles in spawn order.
func (h *ParticleHost) Live() []*Element {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Element, len(h.order))
	copy(out, h.order)
	return out
}
