package anim_test

import (
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
)

type box struct {
	id string

	mu     sync.Mutex
	props  domain.Props
	layout domain.Box
}

func newBox(id string) *box {
	return &box{id: id, props: domain.Props{}}
}

func (b *box) ID() string { return b.id }

func (b *box) Get(p domain.Prop) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v, ok := b.props[p]; ok {
		return v
	}
	return domain.DefaultValue(p)
}

func (b *box) Set(p domain.Prop, v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.props[p] = v
}

func (b *box) Box() domain.Box {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.layout
}

func boxes(n int) []domain.Target {
	out := make([]domain.Target, n)
	for i := range out {
		out[i] = newBox(fmt.Sprintf("b%d", i))
	}
	return out
}

type manualTime struct {
	mu  sync.Mutex
	now time.Time
}

func newManualTime() *manualTime {
	return &manualTime{now: time.Unix(1_700_000_000, 0)}
}

func (m *manualTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *manualTime) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
