// Package query implements the query and mutation layer over an owned cache.
//
// A Client holds one entry per query key. Reads go through singleflight so
// concurrent callers for the same key share one request. Every request
// carries a per-key sequence number and a response is written only when it
// is newer than the last one applied, so a superseded response never
// overwrites fresher data.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Fetcher loads the value for a query key.
type Fetcher func(ctx context.Context) (any, error)

// Options configures a Client.
type Options struct {
	// StaleTime is how long a successful result counts as fresh. Zero means
	// every mount revalidates.
	StaleTime time.Duration
	// GCTime is how long an entry without subscribers is kept. Zero uses
	// domain.DefaultGCTime.
	GCTime time.Duration
	// Retry applies to query fetches only. Mutations never inherit it.
	Retry RetryPolicy
	// Logger receives retry and discard notices. It may be nil.
	Logger ports.Logger
}

// OptionsFrom converts the loaded configuration.
func OptionsFrom(cfg domain.Config, log ports.Logger) Options {
	return Options{
		StaleTime: cfg.Cache.StaleTime,
		GCTime:    cfg.Cache.GCTime,
		Retry:     RetryPolicyFrom(cfg.Retry),
		Logger:    log,
	}
}

// Client owns the query cache. It is safe for concurrent use.
type Client struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
	opts    Options

	ctx    context.Context
	cancel context.CancelFunc
}

type entry struct {
	key     domain.QueryKey
	fetcher Fetcher

	data        any
	hasData     bool
	fingerprint uint64
	version     uint64
	err         error
	status      domain.QueryStatus
	updatedAt   time.Time
	invalidated bool

	issued   uint64
	applied  uint64
	inflight map[uint64]context.CancelFunc

	// shared is the newest request a non-forced start joins; zero when none.
	shared        uint64
	sharedCall    func() (any, error)
	invalidatedAt uint64

	subs map[*subscriber]struct{}
	gc   *time.Timer
}

type subscriber struct {
	ch chan struct{}
}

// NewClient creates an empty cache.
func NewClient(opts Options) *Client {
	if opts.GCTime <= 0 {
		opts.GCTime = domain.DefaultGCTime
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		entries: make(map[string]*entry),
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Close cancels every in-flight request and stops eviction timers.
func (c *Client) Close() {
	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.gc != nil {
			e.gc.Stop()
		}
	}
}

// Fetch returns the value for key, sharing the request with any concurrent
// caller of the same key. ctx bounds only this caller's wait.
func (c *Client) Fetch(ctx context.Context, key domain.QueryKey, fn Fetcher) (any, error) {
	return c.await(ctx, c.start(key, fn, false))
}

// Refetch issues a new request for key even when one is already in flight.
// The older request's response is discarded if it arrives later.
func (c *Client) Refetch(ctx context.Context, key domain.QueryKey, fn Fetcher) (any, error) {
	return c.await(ctx, c.start(key, fn, true))
}

func (c *Client) await(ctx context.Context, ch <-chan singleflight.Result) (any, error) {
	select {
	case r := <-ch:
		return r.Val, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) start(key domain.QueryKey, fn Fetcher, force bool) <-chan singleflight.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.ensureLocked(key)
	if fn != nil {
		e.fetcher = fn
	}
	return c.startLocked(e, force)
}

func (c *Client) startLocked(e *entry, force bool) <-chan singleflight.Result {
	k := e.key.String()
	if !force && e.shared != 0 {
		return c.group.DoChan(callKey(k, e.shared), e.sharedCall)
	}

	e.issued++
	seq := e.issued
	reqCtx, cancel := context.WithCancel(c.ctx)
	e.inflight[seq] = cancel
	e.status = domain.StatusLoading
	c.notifyLocked(e)

	fn := e.fetcher
	call := func() (any, error) {
		return c.run(reqCtx, cancel, k, e, seq, fn)
	}
	e.shared = seq
	e.sharedCall = call
	return c.group.DoChan(callKey(k, seq), call)
}

// callKey gives every issued request its own singleflight call. Joining an
// in-flight request goes through entry.shared instead.
func callKey(k string, seq uint64) string {
	return k + "#" + strconv.FormatUint(seq, 10)
}

// run performs request seq for e and applies its result if it is still current.
func (c *Client) run(reqCtx context.Context, cancel context.CancelFunc, k string, e *entry, seq uint64, fn Fetcher) (any, error) {
	val, err := c.opts.Retry.Do(reqCtx, fn, c.retryNotice(k))

	c.mu.Lock()
	defer c.mu.Unlock()

	canceled := reqCtx.Err() != nil
	cancel()
	delete(e.inflight, seq)
	if e.shared == seq {
		e.shared = 0
		e.sharedCall = nil
	}

	current := c.entries[k] == e
	switch {
	case canceled:
		if current {
			c.settleLocked(e)
			c.notifyLocked(e)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrQueryCanceled, "request canceled"), "key", k)
	case !current:
		return val, err
	case seq <= e.applied:
		c.info("discarded superseded response for " + k)
		c.settleLocked(e)
		c.notifyLocked(e)
		return val, err
	}

	e.applied = seq
	if err != nil {
		e.err = err
		e.status = domain.StatusError
	} else {
		c.writeLocked(e, val, seq > e.invalidatedAt)
	}
	c.settleLocked(e)
	c.notifyLocked(e)
	return val, err
}

// settleLocked restores a terminal status once no request is left in flight.
func (c *Client) settleLocked(e *entry) {
	if len(e.inflight) > 0 {
		return
	}
	switch {
	case e.err != nil:
		e.status = domain.StatusError
	case e.hasData:
		e.status = domain.StatusSuccess
	default:
		e.status = domain.StatusIdle
	}
	if e.gcEligible() {
		c.armGCLocked(e)
	}
}

// writeLocked stores a successful value. Identical content keeps the
// previous value so readers can compare by version. fresh is false for
// responses to requests issued before the last invalidation.
func (c *Client) writeLocked(e *entry, val any, fresh bool) {
	fp, ok := fingerprint(val)
	if !e.hasData || !ok || fp != e.fingerprint {
		e.data = val
		e.fingerprint = fp
		e.version++
	}
	e.hasData = true
	e.err = nil
	e.status = domain.StatusSuccess
	e.updatedAt = time.Now()
	if fresh {
		e.invalidated = false
	}
}

func (c *Client) ensureLocked(key domain.QueryKey) *entry {
	k := key.String()
	if e, ok := c.entries[k]; ok {
		return e
	}
	e := &entry{
		key:      append(domain.QueryKey(nil), key...),
		inflight: make(map[uint64]context.CancelFunc),
		subs:     make(map[*subscriber]struct{}),
	}
	c.entries[k] = e
	c.armGCLocked(e)
	return e
}

func (e *entry) gcEligible() bool {
	return len(e.subs) == 0
}

func (c *Client) armGCLocked(e *entry) {
	if e.gc != nil {
		e.gc.Stop()
	}
	k := e.key.String()
	e.gc = time.AfterFunc(c.opts.GCTime, func() {
		c.collect(k, e)
	})
}

func (c *Client) collect(k string, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries[k] != e || !e.gcEligible() {
		return
	}
	if len(e.inflight) > 0 {
		c.armGCLocked(e)
		return
	}
	delete(c.entries, k)
}

func (c *Client) notifyLocked(e *entry) {
	for s := range e.subs {
		select {
		case s.ch <- struct{}{}:
		default:
		}
	}
}

func (c *Client) subscribe(key domain.QueryKey, fn Fetcher) *subscriber {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.ensureLocked(key)
	if fn != nil {
		e.fetcher = fn
	}
	if e.gc != nil {
		e.gc.Stop()
		e.gc = nil
	}
	s := &subscriber{ch: make(chan struct{}, 1)}
	e.subs[s] = struct{}{}

	stale := e.invalidated || !e.hasData || time.Since(e.updatedAt) >= c.opts.StaleTime
	if stale && len(e.inflight) == 0 && e.fetcher != nil {
		c.startLocked(e, false)
	}
	return s
}

// unsubscribe removes s. When the last subscriber leaves, in-flight
// requests are canceled and the entry is scheduled for eviction.
func (c *Client) unsubscribe(key domain.QueryKey, s *subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key.String()
	e, ok := c.entries[k]
	if !ok {
		return
	}
	if _, ok := e.subs[s]; !ok {
		return
	}
	delete(e.subs, s)
	if len(e.subs) > 0 {
		return
	}

	for _, cancel := range e.inflight {
		cancel()
	}
	e.shared = 0
	e.sharedCall = nil
	c.armGCLocked(e)
}

// Snapshot is the observable state of one entry.
type Snapshot struct {
	Data       any
	HasData    bool
	Err        error
	Status     domain.QueryStatus
	IsFetching bool
	UpdatedAt  time.Time
	Version    uint64
	Stale      bool
}

// Peek returns the current state of key without subscribing or fetching.
func (c *Client) Peek(key domain.QueryKey) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return Snapshot{Status: domain.StatusIdle, Stale: true}
	}
	return Snapshot{
		Data:       e.data,
		HasData:    e.hasData,
		Err:        e.err,
		Status:     e.status,
		IsFetching: len(e.inflight) > 0,
		UpdatedAt:  e.updatedAt,
		Version:    e.version,
		Stale:      e.invalidated || !e.hasData || time.Since(e.updatedAt) >= c.opts.StaleTime,
	}
}

// Has reports whether an entry exists for key.
func (c *Client) Has(key domain.QueryKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key.String()]
	return ok
}

// SetQueryData replaces the value of key with the result of update. The
// write supersedes every request issued before it. It returns a function
// that puts the previous state back, unless the entry was written again since.
func (c *Client) SetQueryData(key domain.QueryKey, update func(old any, ok bool) any) (restore func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key.String()
	prev, existed := c.entries[k]
	var saved entryState
	if existed {
		saved = prev.state()
	}

	e := c.ensureLocked(key)
	val := update(e.data, e.hasData)
	c.writeLocked(e, val, true)
	e.applied = e.issued
	written := e.version
	c.notifyLocked(e)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		cur, ok := c.entries[k]
		if !ok || cur != e || cur.version != written {
			return
		}
		if !existed {
			if len(cur.subs) == 0 && len(cur.inflight) == 0 {
				if cur.gc != nil {
					cur.gc.Stop()
				}
				delete(c.entries, k)
				return
			}
			saved = entryState{status: domain.StatusIdle}
		}
		cur.restore(saved)
		c.notifyLocked(cur)
	}
}

// Invalidate marks every entry under prefix as stale and refetches those
// that have subscribers. Entries without subscribers refetch on next mount.
func (c *Client) Invalidate(prefix domain.QueryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if !e.key.HasPrefix(prefix) {
			continue
		}
		e.invalidated = true
		e.invalidatedAt = e.issued
		if len(e.subs) > 0 && e.fetcher != nil {
			c.startLocked(e, true)
		}
	}
}

// Remove drops key from the cache and cancels its requests. Subscribed
// entries are reset to idle instead of being dropped.
func (c *Client) Remove(key domain.QueryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key.String()
	e, ok := c.entries[k]
	if !ok {
		return
	}
	for _, cancel := range e.inflight {
		cancel()
	}
	e.shared = 0
	e.sharedCall = nil

	if len(e.subs) > 0 {
		e.restore(entryState{status: domain.StatusIdle})
		e.applied = e.issued
		c.notifyLocked(e)
		return
	}
	if e.gc != nil {
		e.gc.Stop()
	}
	delete(c.entries, k)
}

// Len returns the number of cached entries.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

type entryState struct {
	data        any
	hasData     bool
	fingerprint uint64
	err         error
	status      domain.QueryStatus
	updatedAt   time.Time
	invalidated bool
}

func (e *entry) state() entryState {
	return entryState{
		data:        e.data,
		hasData:     e.hasData,
		fingerprint: e.fingerprint,
		err:         e.err,
		status:      e.status,
		updatedAt:   e.updatedAt,
		invalidated: e.invalidated,
	}
}

func (e *entry) restore(s entryState) {
	e.data = s.data
	e.hasData = s.hasData
	e.fingerprint = s.fingerprint
	e.err = s.err
	e.status = s.status
	e.updatedAt = s.updatedAt
	e.invalidated = s.invalidated
	e.version++
}

func (c *Client) retryNotice(k string) func(error, time.Duration) {
	if c.opts.Logger == nil {
		return nil
	}
	return func(err error, wait time.Duration) {
		c.opts.Logger.Warn("retrying " + k + " in " + wait.String() + ": " + err.Error())
	}
}

func (c *Client) info(msg string) {
	if c.opts.Logger != nil {
		c.opts.Logger.Info(msg)
	}
}

func fingerprint(v any) (uint64, bool) {
	raw, err := json.Marshal(v)
	if err != nil {
		return 0, false
	}
	return xxhash.Sum64(raw), true
}

// IsCanceled reports whether err comes from a request dropped by the cache.
func IsCanceled(err error) bool {
	return errors.Is(err, domain.ErrQueryCanceled)
}
