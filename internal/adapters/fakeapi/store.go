package fakeapi

import (
	"sync"
)

// collection is an insertion-ordered in-memory table.
type collection[T any] struct {
	mu    sync.RWMutex
	order []string
	rows  map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{rows: make(map[string]T)}
}

func (c *collection[T]) list() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.rows[id])
	}
	return out
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.rows[id]
	return v, ok
}

func (c *collection[T]) insert(id string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rows[id]; !ok {
		c.order = append(c.order, id)
	}
	c.rows[id] = v
}

// update applies fn to the row under the write lock.
func (c *collection[T]) update(id string, fn func(T) T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.rows[id]
	if !ok {
		return v, false
	}
	v = fn(v)
	c.rows[id] = v
	return v, true
}

func (c *collection[T]) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rows[id]; !ok {
		return false
	}
	delete(c.rows, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}
