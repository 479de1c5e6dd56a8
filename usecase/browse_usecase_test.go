package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/safak4545x/swifttube/domain/dto"
	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/infrastructure/cache"
	"github.com/safak4545x/swifttube/usecase"

	"github.com/stretchr/testify/assert"
)

// fakeScraper is a programmable scraper double. onSearch receives the query
// and the running call count for that query.
type fakeScraper struct {
	mu             sync.Mutex
	searchCalls    map[string]int
	onSearch       func(query string, call int) ([]model.Video, error)
	onRelated      func(videoID string) ([]model.Video, error)
	onChannelInfo  func(channelID string) (*model.Channel, error)
	onChannelFeed  func(channelID string) ([]model.Video, error)
	onPlaylistFeed func(playlistID string, minCount int) ([]model.Video, error)
}

func newFakeScraper() *fakeScraper {
	return &fakeScraper{searchCalls: make(map[string]int)}
}

func (f *fakeScraper) Search(_ context.Context, query, _, _ string) ([]model.Video, error) {
	f.mu.Lock()
	f.searchCalls[query]++
	call := f.searchCalls[query]
	fn := f.onSearch
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(query, call)
}

func (f *fakeScraper) Related(_ context.Context, videoID, _, _ string) ([]model.Video, error) {
	if f.onRelated == nil {
		return nil, nil
	}
	return f.onRelated(videoID)
}

func (f *fakeScraper) ChannelVideos(_ context.Context, channelID, _, _ string) ([]model.Video, error) {
	if f.onChannelFeed == nil {
		return nil, nil
	}
	return f.onChannelFeed(channelID)
}

func (f *fakeScraper) ChannelInfo(_ context.Context, channelID, _, _ string) (*model.Channel, error) {
	if f.onChannelInfo == nil {
		return &model.Channel{ID: channelID}, nil
	}
	return f.onChannelInfo(channelID)
}

func (f *fakeScraper) PlaylistItems(_ context.Context, playlistID string, minCount int, _, _ string) ([]model.Video, error) {
	if f.onPlaylistFeed == nil {
		return nil, nil
	}
	return f.onPlaylistFeed(playlistID, minCount)
}

func (f *fakeScraper) searchCount(query string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls[query]
}

func newBrowseFixture(t *testing.T, scraper *fakeScraper) (usecase.IBrowseUseCase, *cache.Store) {
	t.Helper()
	store, err := cache.NewStore(t.TempDir(), 32)
	assert.NoError(t, err)
	settings := usecase.NewSettingsUseCase(store, time.Hour, "en", "US")
	return usecase.NewBrowseUseCase(scraper, settings, store, time.Minute), store
}

func TestSearchCachesResolvedResults(t *testing.T) {
	scraper := newFakeScraper()
	scraper.onSearch = func(query string, _ int) ([]model.Video, error) {
		return []model.Video{{ID: "cachedvideo1", Title: query}}, nil
	}
	browse, _ := newBrowseFixture(t, scraper)
	req := &dto.SearchRequest{Q: "lofi", Language: "en", Region: "US"}

	first, err := browse.Search(context.Background(), req)
	assert.NoError(t, err)
	assert.Len(t, first.Items, 1)
	assert.Equal(t, 1, first.Total)

	second, err := browse.Search(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, 1, scraper.searchCount("lofi"))
}

func TestSearchDifferentLocaleMissesTheCache(t *testing.T) {
	scraper := newFakeScraper()
	scraper.onSearch = func(query string, _ int) ([]model.Video, error) {
		return []model.Video{{ID: "localized001", Title: query}}, nil
	}
	browse, _ := newBrowseFixture(t, scraper)

	_, err := browse.Search(context.Background(), &dto.SearchRequest{Q: "lofi", Language: "en", Region: "US"})
	assert.NoError(t, err)
	_, err = browse.Search(context.Background(), &dto.SearchRequest{Q: "lofi", Language: "tr", Region: "TR"})
	assert.NoError(t, err)

	assert.Equal(t, 2, scraper.searchCount("lofi"))
}

func TestSearchTransportFailureDegradesToEmpty(t *testing.T) {
	scraper := newFakeScraper()
	scraper.onSearch = func(string, int) ([]model.Video, error) {
		return nil, assert.AnError
	}
	browse, _ := newBrowseFixture(t, scraper)

	resp, err := browse.Search(context.Background(), &dto.SearchRequest{Q: "down", Language: "en", Region: "US"})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, resp.Items)
}

func TestSearchEmptyFirstLoadRetriesOnce(t *testing.T) {
	scraper := newFakeScraper()
	scraper.onSearch = func(query string, call int) ([]model.Video, error) {
		if call == 1 {
			return nil, nil
		}
		return []model.Video{{ID: "retryvideo01", Title: query}}, nil
	}
	browse, _ := newBrowseFixture(t, scraper)

	resp, err := browse.Search(context.Background(), &dto.SearchRequest{Q: "warmup", Language: "en", Region: "US"})
	assert.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 2, scraper.searchCount("warmup"))

	// The retry is a one-shot startup compensation, not a general policy.
	scraper.onSearch = func(string, int) ([]model.Video, error) { return nil, nil }
	resp, err = browse.Search(context.Background(), &dto.SearchRequest{Q: "later", Language: "en", Region: "US"})
	assert.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 1, scraper.searchCount("later"))
}

func TestSearchSupersededFetchIsDiscarded(t *testing.T) {
	scraper := newFakeScraper()
	browse, store := newBrowseFixture(t, scraper)

	// While the first query is in flight, a newer search for the same pane
	// begins; the older result must come back stale and stay out of cache.
	scraper.onSearch = func(query string, _ int) ([]model.Video, error) {
		if query == "old" {
			scraper.mu.Lock()
			scraper.onSearch = func(q string, _ int) ([]model.Video, error) {
				return []model.Video{{ID: "newervideo01", Title: q}}, nil
			}
			scraper.mu.Unlock()
			newer, err := browse.Search(context.Background(), &dto.SearchRequest{Q: "new", Language: "en", Region: "US"})
			assert.NoError(t, err)
			assert.Len(t, newer.Items, 1)
			return []model.Video{{ID: "stalevideo01", Title: "old"}}, nil
		}
		return []model.Video{{ID: "newervideo01", Title: query}}, nil
	}

	resp, err := browse.Search(context.Background(), &dto.SearchRequest{Q: "old", Language: "en", Region: "US"})
	assert.NoError(t, err)
	assert.True(t, resp.Stale)
	assert.Empty(t, resp.Items)

	staleKey := cache.Key("search", "q=old", "hl=en", "gl=US")
	assert.Nil(t, cache.Get[[]model.Video](store, cache.NamespaceResults, staleKey))
}

func TestChannelInfoCachesAndPropagatesErrors(t *testing.T) {
	scraper := newFakeScraper()
	calls := 0
	scraper.onChannelInfo = func(channelID string) (*model.Channel, error) {
		calls++
		return &model.Channel{ID: channelID, Title: "A Channel"}, nil
	}
	browse, _ := newBrowseFixture(t, scraper)

	ch, err := browse.ChannelInfo(context.Background(), "UCinfo", "en", "US")
	assert.NoError(t, err)
	assert.Equal(t, "A Channel", ch.Title)

	_, err = browse.ChannelInfo(context.Background(), "UCinfo", "en", "US")
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)

	scraper.onChannelInfo = func(string) (*model.Channel, error) { return nil, assert.AnError }
	_, err = browse.ChannelInfo(context.Background(), "UCother", "en", "US")
	assert.Error(t, err)
}

func TestChannelInfoAppliesCachedEnrichmentStats(t *testing.T) {
	scraper := newFakeScraper()
	scraper.onChannelInfo = func(channelID string) (*model.Channel, error) {
		return &model.Channel{ID: channelID, Title: "Enrichable"}, nil
	}
	browse, store := newBrowseFixture(t, scraper)

	statsKey := cache.Key("channel_stats", "id=UCenrich")
	err := cache.Set(store, cache.NamespaceResults, statsKey,
		model.ChannelStats{ChannelID: "UCenrich", SubscriberCount: 9000, VideoCount: 12}, time.Minute)
	assert.NoError(t, err)

	ch, err := browse.ChannelInfo(context.Background(), "UCenrich", "en", "US")
	assert.NoError(t, err)
	assert.Equal(t, int64(9000), ch.SubscriberCount)
	assert.Equal(t, int64(12), ch.VideoCount)
}

func TestHomeMergesQueriesAndDeduplicates(t *testing.T) {
	scraper := newFakeScraper()
	scraper.onSearch = func(query string, _ int) ([]model.Video, error) {
		return []model.Video{
			{ID: "sharedvideo1", Title: "everywhere"},
			{ID: "per-" + query, Title: query},
		}, nil
	}
	browse, store := newBrowseFixture(t, scraper)

	settings := usecase.NewSettingsUseCase(store, time.Hour, "en", "US")
	err := settings.Save(context.Background(), &model.Settings{
		Language:   "en",
		Region:     "US",
		Categories: []model.Category{{Name: "Music", Keywords: []string{"lofi"}}},
	})
	assert.NoError(t, err)

	resp, err := browse.Home(context.Background(), "en", "US")
	assert.NoError(t, err)

	ids := make(map[string]int)
	for _, v := range resp.Items {
		ids[v.ID]++
	}
	assert.Equal(t, 1, ids["sharedvideo1"])
	// Fanout is bounded: three queries, each contributing one unique id.
	assert.Len(t, resp.Items, 4)
}
