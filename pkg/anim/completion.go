package anim

import (
	"context"
	"sync"
)

// Completion is the eventual settlement of a played timeline.
type Completion struct {
	done chan struct{}
	once sync.Once
	err  error
}

// NewCompletion returns an unresolved completion.
func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Completed returns a completion already resolved with err.
func Completed(err error) *Completion {
	c := NewCompletion()
	c.Resolve(err)
	return c
}

// Resolve settles the completion. Only the first call has an effect.
func (c *Completion) Resolve(err error) {
	c.once.Do(func() {
		c.err = err
		close(c.done)
	})
}

// Done is closed once the completion resolves.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Resolved reports whether the completion has settled.
func (c *Completion) Resolved() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Err returns the settlement error. It is nil until the completion resolves.
func (c *Completion) Err() error {
	if !c.Resolved() {
		return nil
	}
	return c.err
}

// Wait blocks until the completion resolves or ctx is done.
func (c *Completion) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
