package query

import (
	"context"
	"sync"

	"go.trai.ch/smartmate/internal/core/domain"
)

// MutationState is what a UI reads from a mutation.
type MutationState[T any] struct {
	Data      T
	IsLoading bool
	Err       error
}

// MutationOptions describes how a mutation touches the cache.
type MutationOptions[In, Out any] struct {
	// OnMutate applies an optimistic change before the request and returns
	// the function that undoes it. It may be nil.
	OnMutate func(c *Client, in In) (rollback func())
	// OnSuccess writes the server's result into the cache, typically with
	// SetQueryData. It may be nil.
	OnSuccess func(c *Client, in In, out Out)
	// Invalidates lists key prefixes to mark stale after success.
	Invalidates []domain.QueryKey
	// OnError is called after the cache has been restored. It may be nil.
	OnError func(in In, err error)
	// Retry is off unless set explicitly.
	Retry RetryPolicy
}

// Mutation performs writes through the cache. A failed mutation leaves the
// cache exactly as it was before Mutate was called.
type Mutation[In, Out any] struct {
	client *Client
	fn     func(ctx context.Context, in In) (Out, error)
	opts   MutationOptions[In, Out]

	mu      sync.Mutex
	state   MutationState[Out]
	pending int
}

// NewMutation creates a mutation bound to c.
func NewMutation[In, Out any](
	c *Client,
	fn func(ctx context.Context, in In) (Out, error),
	opts MutationOptions[In, Out],
) *Mutation[In, Out] {
	return &Mutation[In, Out]{
		client: c,
		fn:     fn,
		opts:   opts,
	}
}

// State returns the state of the most recent call.
func (m *Mutation[In, Out]) State() MutationState[Out] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Mutate performs the write. On success the configured cache updates run
// before Mutate returns; on failure any optimistic change is rolled back
// and the error is returned unchanged.
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In) (Out, error) {
	m.mu.Lock()
	m.pending++
	m.state.IsLoading = true
	m.state.Err = nil
	m.mu.Unlock()

	var rollback func()
	if m.opts.OnMutate != nil {
		rollback = m.opts.OnMutate(m.client, in)
	}

	v, err := m.opts.Retry.Do(ctx, func(ctx context.Context) (any, error) {
		return m.fn(ctx, in)
	}, nil)
	out, _ := v.(Out)

	if err != nil {
		if rollback != nil {
			rollback()
		}
		m.finish(out, err, false)
		if m.opts.OnError != nil {
			m.opts.OnError(in, err)
		}
		var zero Out
		return zero, err
	}

	if m.opts.OnSuccess != nil {
		m.opts.OnSuccess(m.client, in, out)
	}
	for _, prefix := range m.opts.Invalidates {
		m.client.Invalidate(prefix)
	}
	m.finish(out, nil, true)
	return out, nil
}

func (m *Mutation[In, Out]) finish(out Out, err error, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending--
	m.state.IsLoading = m.pending > 0
	m.state.Err = err
	if ok {
		m.state.Data = out
	}
}
