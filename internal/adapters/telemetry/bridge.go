// Package telemetry turns request spans into events the UI can show.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Span attribute keys written by the HTTP client.
const (
	AttrMethod     attribute.Key = "http.request.method"
	AttrPath       attribute.Key = "url.path"
	AttrStatusCode attribute.Key = "http.response.status_code"
)

// RequestEvent describes one finished request.
type RequestEvent struct {
	Name       string
	Method     string
	Path       string
	StatusCode int
	Duration   time.Duration
	// Err is the span status description of a failed request.
	Err string
}

// Failed reports whether the request ended with an error status.
func (e RequestEvent) Failed() bool {
	return e.Err != ""
}

// Bridge implements sdktrace.SpanProcessor and forwards finished request
// spans to subscribers.
type Bridge struct {
	mu      sync.RWMutex
	subs    map[int]func(RequestEvent)
	nextID  int
	last    RequestEvent
	hasLast bool
}

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// NewBridge returns a new Bridge.
func NewBridge() *Bridge {
	return &Bridge{subs: make(map[int]func(RequestEvent))}
}

// Subscribe registers fn for every finished request until cancel is called.
func (b *Bridge) Subscribe(fn func(RequestEvent)) (cancel func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Last returns the most recent request, if any.
func (b *Bridge) Last() (RequestEvent, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last, b.hasLast
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	ev := RequestEvent{
		Name:     s.Name(),
		Duration: s.EndTime().Sub(s.StartTime()),
	}
	for _, kv := range s.Attributes() {
		switch kv.Key {
		case AttrMethod:
			ev.Method = kv.Value.AsString()
		case AttrPath:
			ev.Path = kv.Value.AsString()
		case AttrStatusCode:
			ev.StatusCode = int(kv.Value.AsInt64())
		}
	}
	if ev.Method == "" {
		return
	}
	if s.Status().Code == codes.Error {
		ev.Err = s.Status().Description
		if ev.Err == "" {
			ev.Err = "request failed"
		}
	}

	b.mu.Lock()
	b.last, b.hasLast = ev, true
	subs := make([]func(RequestEvent), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
