// Package coalescer converts many small "enrich this id" requests into few
// batched authoritative API calls. Requests arriving within a short
// debounce window merge into one pending set, which is then drained in
// bounded chunks fetched concurrently; results fan back out as events on a
// serialized delivery channel and are persisted in the cache store.
package coalescer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/safak4545x/swifttube/infrastructure/cache"
	youtubeclient "github.com/safak4545x/swifttube/infrastructure/clients/youtube"
	"github.com/safak4545x/swifttube/infrastructure/logger"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultDebounce batches everything requested within one
	// user-interaction burst into as few network calls as possible.
	DefaultDebounce = 250 * time.Millisecond
	fetchTimeout    = 30 * time.Second
	updateBuffer    = 1024
)

// Coalescer batches id lookups for one stats kind. T is the enrichment
// payload (model.ChannelStats, model.PlaylistStats).
type Coalescer[T any] struct {
	fetch     func(ctx context.Context, ids []string) ([]T, error)
	idOf      func(T) string
	cacheKey  func(id string) string
	store     *cache.Store
	ttl       time.Duration
	debounce  time.Duration
	chunkSize int

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	closed  bool

	updates chan T

	logMissingKey sync.Once
	logRejected   sync.Once
	logBackpress  sync.Once
}

// New creates a coalescer. cacheKey maps an entity id to its cache
// composite key; fetch is the batched authoritative call, bounded by
// chunkSize ids per invocation.
func New[T any](
	store *cache.Store,
	ttl time.Duration,
	fetch func(ctx context.Context, ids []string) ([]T, error),
	idOf func(T) string,
	cacheKey func(id string) string,
) *Coalescer[T] {
	return &Coalescer[T]{
		fetch:     fetch,
		idOf:      idOf,
		cacheKey:  cacheKey,
		store:     store,
		ttl:       ttl,
		debounce:  DefaultDebounce,
		chunkSize: youtubeclient.MaxIDsPerCall,
		pending:   make(map[string]struct{}),
		updates:   make(chan T, updateBuffer),
	}
}

// WithDebounce overrides the debounce window (tests use a tiny one).
func (c *Coalescer[T]) WithDebounce(d time.Duration) *Coalescer[T] {
	c.debounce = d
	return c
}

// Updates is the serialized delivery channel. A single consumer applying
// events in order gives the merge step single-writer semantics.
func (c *Coalescer[T]) Updates() <-chan T {
	return c.updates
}

// Request registers ids for enrichment. Cache hits are delivered
// immediately without touching the network; misses join the pending set and
// (re)arm the debounce timer. There is no return value — results arrive
// asynchronously on Updates and in the cache store.
func (c *Coalescer[T]) Request(ids ...string) {
	var misses []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if hit := cache.Get[T](c.store, cache.NamespaceResults, c.cacheKey(id)); hit != nil {
			c.deliver(*hit)
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for _, id := range misses {
		c.pending[id] = struct{}{}
	}
	if c.timer == nil {
		c.timer = time.AfterFunc(c.debounce, c.flush)
	} else {
		// Extend the window so a burst of requests collapses into one drain.
		c.timer.Reset(c.debounce)
	}
}

// Close stops the timer and the delivery channel. Pending ids are dropped.
func (c *Coalescer[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.mu.Unlock()
	close(c.updates)
}

// flush drains a snapshot of the pending set, partitions it into chunks,
// and fetches the chunks concurrently. A failed chunk leaves the cache
// untouched for its ids; other chunks are unaffected.
func (c *Coalescer[T]) flush() {
	c.mu.Lock()
	if c.closed || len(c.pending) == 0 {
		c.timer = nil
		c.mu.Unlock()
		return
	}
	snapshot := make([]string, 0, len(c.pending))
	for id := range c.pending {
		snapshot = append(snapshot, id)
	}
	c.pending = make(map[string]struct{})
	c.timer = nil
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(snapshot); start += c.chunkSize {
		end := start + c.chunkSize
		if end > len(snapshot) {
			end = len(snapshot)
		}
		chunk := snapshot[start:end]
		g.Go(func() error {
			results, err := c.fetch(ctx, chunk)
			if err != nil {
				c.logFetchError(err)
				return nil // one bad chunk must not cancel its siblings
			}
			for _, result := range results {
				id := c.idOf(result)
				if err := cache.Set(c.store, cache.NamespaceResults, c.cacheKey(id), result, c.ttl); err != nil {
					logger.GetLogger().WithField("id", id).WithField("error", err).Warn("Failed to cache enrichment result")
				}
				c.deliver(result)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Coalescer[T]) deliver(result T) {
	// Non-blocking send under the lock so Close cannot race a delivery.
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.updates <- result:
	default:
		// Consumer stalled; the value is still in cache, so drop rather
		// than block the fetch path.
		c.logBackpress.Do(func() {
			logger.GetLogger().Warn("Enrichment update channel full, dropping events")
		})
	}
}

// logFetchError logs each failure condition once, not per occurrence, so
// repeated UI-triggered bursts do not spam the log.
func (c *Coalescer[T]) logFetchError(err error) {
	if errors.Is(err, youtubeclient.ErrNoAPIKey) {
		c.logMissingKey.Do(func() {
			logger.GetLogger().Warn("Authoritative API key missing; enrichment disabled until one is supplied")
		})
		return
	}
	c.logRejected.Do(func() {
		logger.GetLogger().WithField("error", err).Warn("Authoritative API rejected enrichment request")
	})
}
