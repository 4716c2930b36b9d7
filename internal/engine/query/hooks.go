package query

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/zerr"
)

// State is what a UI reads from a query: data, loading flag and error.
type State[T any] struct {
	Data       T
	HasData    bool
	Err        error
	Status     domain.QueryStatus
	IsLoading  bool
	IsFetching bool
	UpdatedAt  time.Time
	Version    uint64
}

// Settled reports whether the query has a result and nothing is in flight.
func (s State[T]) Settled() bool {
	return (s.Status == domain.StatusSuccess || s.Status == domain.StatusError) && !s.IsFetching
}

// Query is a subscription to one key. Use Changes to learn when State moved.
type Query[T any] struct {
	client *Client
	key    domain.QueryKey
	fetch  Fetcher
	sub    *subscriber

	mu     sync.Mutex
	closed bool
}

// Use subscribes to key. If the cached value is missing or stale a
// background fetch starts; Use itself never blocks on the network.
func Use[T any](c *Client, key domain.QueryKey, fn func(ctx context.Context) (T, error)) *Query[T] {
	fetch := typed(fn)
	return &Query[T]{
		client: c,
		key:    key,
		fetch:  fetch,
		sub:    c.subscribe(key, fetch),
	}
}

// Key returns the subscribed key.
func (q *Query[T]) Key() domain.QueryKey {
	return q.key
}

// State returns the current state of the query.
func (q *Query[T]) State() State[T] {
	return stateOf[T](q.client.Peek(q.key))
}

// Changes receives a value whenever the entry changes. Notifications are
// coalesced; read State after each one.
func (q *Query[T]) Changes() <-chan struct{} {
	return q.sub.ch
}

// Refetch forces a new request and returns its result.
func (q *Query[T]) Refetch(ctx context.Context) (T, error) {
	var zero T
	if q.isClosed() {
		return zero, zerr.With(zerr.Wrap(domain.ErrQueryClosed, "refetch"), "key", q.key.String())
	}
	v, err := q.client.Refetch(ctx, q.key, q.fetch)
	if err != nil {
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}

// Wait blocks until the query has settled or ctx is done.
func (q *Query[T]) Wait(ctx context.Context) (State[T], error) {
	for {
		st := q.State()
		if st.Settled() {
			return st, nil
		}
		select {
		case <-q.sub.ch:
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

// Close unsubscribes. Closing the last subscriber of a pending query
// cancels the request and its response is ignored.
func (q *Query[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	q.client.unsubscribe(q.key, q.sub)
}

func (q *Query[T]) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Fetch is the typed form of Client.Fetch.
func Fetch[T any](ctx context.Context, c *Client, key domain.QueryKey, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, typed(fn))
	if err != nil {
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}

// GetQueryData returns the cached value of key, if any.
func GetQueryData[T any](c *Client, key domain.QueryKey) (T, bool) {
	snap := c.Peek(key)
	out, ok := snap.Data.(T)
	return out, ok && snap.HasData
}

// SetQueryData is the typed form of Client.SetQueryData.
func SetQueryData[T any](c *Client, key domain.QueryKey, update func(old T, ok bool) T) (restore func()) {
	return c.SetQueryData(key, func(old any, ok bool) any {
		typedOld, isT := old.(T)
		return update(typedOld, ok && isT)
	})
}

func typed[T any](fn func(ctx context.Context) (T, error)) Fetcher {
	return func(ctx context.Context) (any, error) {
		return fn(ctx)
	}
}

func stateOf[T any](s Snapshot) State[T] {
	data, _ := s.Data.(T)
	return State[T]{
		Data:       data,
		HasData:    s.HasData,
		Err:        s.Err,
		Status:     s.Status,
		IsLoading:  s.Status == domain.StatusLoading,
		IsFetching: s.IsFetching,
		UpdatedAt:  s.UpdatedAt,
		Version:    s.Version,
	}
}
