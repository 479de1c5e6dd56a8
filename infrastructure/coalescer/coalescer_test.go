package coalescer_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/infrastructure/cache"
	"github.com/safak4545x/swifttube/infrastructure/coalescer"

	"github.com/stretchr/testify/assert"
)

type statsFetcher struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (f *statsFetcher) fetch(_ context.Context, ids []string) ([]model.ChannelStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, append([]string(nil), ids...))
	out := make([]model.ChannelStats, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.ChannelStats{ChannelID: id, SubscriberCount: 100})
	}
	return out, nil
}

func (f *statsFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newChannelCoalescer(t *testing.T, fetcher *statsFetcher) *coalescer.Coalescer[model.ChannelStats] {
	t.Helper()
	store, err := cache.NewStore(t.TempDir(), 32)
	assert.NoError(t, err)
	c := coalescer.New(
		store, time.Minute,
		fetcher.fetch,
		func(s model.ChannelStats) string { return s.ChannelID },
		func(id string) string { return cache.Key("channel_stats", "id="+id) },
	).WithDebounce(20 * time.Millisecond)
	t.Cleanup(c.Close)
	return c
}

func drain(t *testing.T, c *coalescer.Coalescer[model.ChannelStats], want int) []model.ChannelStats {
	t.Helper()
	var out []model.ChannelStats
	deadline := time.After(2 * time.Second)
	for len(out) < want {
		select {
		case stats := <-c.Updates():
			out = append(out, stats)
		case <-deadline:
			t.Fatalf("timed out waiting for %d updates, got %d", want, len(out))
		}
	}
	return out
}

func TestCoalescerBatchesBurstIntoOneCall(t *testing.T) {
	fetcher := &statsFetcher{}
	c := newChannelCoalescer(t, fetcher)

	c.Request("UCaaa")
	c.Request("UCbbb", "UCccc")
	c.Request("UCaaa") // duplicate within the window

	updates := drain(t, c, 3)
	assert.Equal(t, 1, fetcher.callCount())

	ids := make([]string, 0, len(updates))
	for _, u := range updates {
		ids = append(ids, u.ChannelID)
	}
	sort.Strings(ids)
	assert.Equal(t, []string{"UCaaa", "UCbbb", "UCccc"}, ids)
}

func TestCoalescerChunksLargePendingSet(t *testing.T) {
	fetcher := &statsFetcher{}
	c := newChannelCoalescer(t, fetcher)

	ids := make([]string, 0, 120)
	for i := 0; i < 120; i++ {
		ids = append(ids, fmt.Sprintf("UCchan%03d", i))
	}
	c.Request(ids...)

	drain(t, c, 120)
	// 120 ids at 50 per authoritative call.
	assert.Equal(t, 3, fetcher.callCount())
	fetcher.mu.Lock()
	defer fetcher.mu.Unlock()
	for _, call := range fetcher.calls {
		assert.LessOrEqual(t, len(call), 50)
	}
}

func TestCoalescerCacheHitSkipsTheNetwork(t *testing.T) {
	fetcher := &statsFetcher{}
	c := newChannelCoalescer(t, fetcher)

	c.Request("UCaaa")
	drain(t, c, 1)
	assert.Equal(t, 1, fetcher.callCount())

	// A repeat request is served from cache: delivered again, no new call.
	c.Request("UCaaa")
	updates := drain(t, c, 1)
	assert.Equal(t, "UCaaa", updates[0].ChannelID)
	assert.Equal(t, int64(100), updates[0].SubscriberCount)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestCoalescerFetchFailureDeliversNothing(t *testing.T) {
	fetcher := &statsFetcher{err: fmt.Errorf("quota exceeded")}
	c := newChannelCoalescer(t, fetcher)

	c.Request("UCaaa")

	select {
	case stats := <-c.Updates():
		t.Fatalf("unexpected update %+v", stats)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCoalescerEmptyAndBlankIDsAreIgnored(t *testing.T) {
	fetcher := &statsFetcher{}
	c := newChannelCoalescer(t, fetcher)

	c.Request()
	c.Request("")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, fetcher.callCount())
}

func TestCoalescerRequestAfterCloseIsANoOp(t *testing.T) {
	fetcher := &statsFetcher{}
	store, err := cache.NewStore(t.TempDir(), 32)
	assert.NoError(t, err)
	c := coalescer.New(
		store, time.Minute,
		fetcher.fetch,
		func(s model.ChannelStats) string { return s.ChannelID },
		func(id string) string { return cache.Key("channel_stats", "id="+id) },
	).WithDebounce(10 * time.Millisecond)

	c.Close()
	c.Request("UCaaa")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, fetcher.callCount())

	_, open := <-c.Updates()
	assert.False(t, open)
}
