package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/safak4545x/swifttube/domain/dto"
	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/domain/repository"
	"github.com/safak4545x/swifttube/infrastructure/cache"
	"github.com/safak4545x/swifttube/infrastructure/locale"
	"github.com/safak4545x/swifttube/infrastructure/logger"

	"golang.org/x/sync/singleflight"
)

// homeQueryFanout bounds how many composed queries one home refresh scrapes.
const homeQueryFanout = 3

// IBrowseUseCase defines the search-like browse operations. Transport
// failures degrade to empty result sets here; flows where emptiness is
// ambiguous (explicit playlist fetch) live in IPlaylistUseCase instead.
type IBrowseUseCase interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.VideoListResponse, error)
	Related(ctx context.Context, videoID, hl, gl string) (*dto.VideoListResponse, error)
	ChannelVideos(ctx context.Context, channelID, hl, gl string) (*dto.VideoListResponse, error)
	ChannelInfo(ctx context.Context, channelID, hl, gl string) (*model.Channel, error)
	Home(ctx context.Context, hl, gl string) (*dto.VideoListResponse, error)
}

// BrowseUseCase resolves browse requests through cache-then-scrape:
// build key, check store, on miss scrape and extract (one flight per key),
// commit to store, return records. Generation stamps suppress stale
// in-flight results when a slot is re-requested mid-flight.
type BrowseUseCase struct {
	scraper   repository.IScraper
	settings  ISettingsUseCase
	store     *cache.Store
	resultTTL time.Duration
	flights   singleflight.Group
	gens      *generations
	// firstLoadTried gates the single empty-result retry compensating for
	// the cookie/locale race on the very first fetch after startup.
	firstLoadTried atomic.Bool
}

// NewBrowseUseCase creates a browse use case instance.
func NewBrowseUseCase(scraper repository.IScraper, settings ISettingsUseCase, store *cache.Store, resultTTL time.Duration) IBrowseUseCase {
	return &BrowseUseCase{
		scraper:   scraper,
		settings:  settings,
		store:     store,
		resultTTL: resultTTL,
		gens:      newGenerations(),
	}
}

// Search scrapes the results page for a query, serving from cache when the
// same logical query was resolved recently.
func (u *BrowseUseCase) Search(ctx context.Context, req *dto.SearchRequest) (*dto.VideoListResponse, error) {
	key := cache.Key("search", "q="+req.Q, "hl="+req.Language, "gl="+req.Region)
	return u.resolve(ctx, "search", key, func(ctx context.Context) ([]model.Video, error) {
		videos, err := u.scraper.Search(ctx, req.Q, req.Language, req.Region)
		if err != nil {
			return nil, err
		}
		return u.retryFirstEmpty(ctx, videos, func(ctx context.Context) ([]model.Video, error) {
			return u.scraper.Search(ctx, req.Q, req.Language, req.Region)
		})
	})
}

// Related resolves the watch-next rail for a video.
func (u *BrowseUseCase) Related(ctx context.Context, videoID, hl, gl string) (*dto.VideoListResponse, error) {
	key := cache.Key("related", "v="+videoID, "hl="+hl, "gl="+gl)
	return u.resolve(ctx, "related", key, func(ctx context.Context) ([]model.Video, error) {
		return u.scraper.Related(ctx, videoID, hl, gl)
	})
}

// ChannelVideos resolves recent uploads for a channel.
func (u *BrowseUseCase) ChannelVideos(ctx context.Context, channelID, hl, gl string) (*dto.VideoListResponse, error) {
	key := cache.Key("channel_videos", "id="+channelID, "hl="+hl, "gl="+gl)
	return u.resolve(ctx, "channel", key, func(ctx context.Context) ([]model.Video, error) {
		return u.scraper.ChannelVideos(ctx, channelID, hl, gl)
	})
}

// ChannelInfo resolves the scraped channel header.
func (u *BrowseUseCase) ChannelInfo(ctx context.Context, channelID, hl, gl string) (*model.Channel, error) {
	key := cache.Key("channel_info", "id="+channelID, "hl="+hl, "gl="+gl)
	if hit := cache.Get[model.Channel](u.store, cache.NamespaceResults, key); hit != nil {
		return u.withChannelStats(*hit), nil
	}
	result, err, _ := u.flights.Do(key, func() (interface{}, error) {
		return u.scraper.ChannelInfo(ctx, channelID, hl, gl)
	})
	if err != nil {
		return nil, fmt.Errorf("channel info %s: %w", channelID, err)
	}
	ch := result.(*model.Channel)
	if err := cache.Set(u.store, cache.NamespaceResults, key, *ch, u.resultTTL); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to cache channel info")
	}
	return u.withChannelStats(*ch), nil
}

// withChannelStats applies previously enriched authoritative counts to a
// scraped header when the coalescer has them cached.
func (u *BrowseUseCase) withChannelStats(ch model.Channel) *model.Channel {
	key := cache.Key("channel_stats", "id="+ch.ID)
	if stats := cache.Get[model.ChannelStats](u.store, cache.NamespaceResults, key); stats != nil {
		ch = ch.WithStats(*stats)
	}
	return &ch
}

// Home composes diversified queries from the user's settings (categories,
// region) and merges the scraped results of the first few candidates.
func (u *BrowseUseCase) Home(ctx context.Context, hl, gl string) (*dto.VideoListResponse, error) {
	seeds := locale.Seeds{}
	if settings, err := u.settings.Get(ctx); err == nil && settings != nil {
		if len(settings.Categories) > 0 {
			seeds.Category = &settings.Categories[0]
		}
	}
	queries := locale.ComposeQueries(hl, gl, seeds)
	if len(queries) > homeQueryFanout {
		queries = queries[:homeQueryFanout]
	}

	key := cache.Key("home", "hl="+hl, "gl="+gl, "q="+fmt.Sprint(queries))
	return u.resolve(ctx, "home", key, func(ctx context.Context) ([]model.Video, error) {
		var merged []model.Video
		index := make(map[string]int)
		for _, q := range queries {
			videos, err := u.scraper.Search(ctx, q, hl, gl)
			if err != nil {
				logger.GetLogger().WithField("query", q).WithField("error", err).Warn("Home query failed, skipping")
				continue
			}
			for _, v := range videos {
				if at, ok := index[v.ID]; ok {
					merged[at] = merged[at].Merge(v)
					continue
				}
				index[v.ID] = len(merged)
				merged = append(merged, v)
			}
		}
		return u.retryFirstEmpty(ctx, merged, func(ctx context.Context) ([]model.Video, error) {
			if len(queries) == 0 {
				return nil, nil
			}
			return u.scraper.Search(ctx, queries[0], hl, gl)
		})
	})
}

// resolve implements the shared cache-then-fetch flow for video lists.
func (u *BrowseUseCase) resolve(ctx context.Context, slot, key string, fetch func(context.Context) ([]model.Video, error)) (*dto.VideoListResponse, error) {
	stamp := u.gens.begin(slot)

	if hit := cache.Get[[]model.Video](u.store, cache.NamespaceResults, key); hit != nil {
		return &dto.VideoListResponse{Items: *hit, Total: len(*hit)}, nil
	}

	result, err, _ := u.flights.Do(key, func() (interface{}, error) {
		return fetch(ctx)
	})
	if err != nil {
		// Search-like flows degrade to empty rather than failing the pane.
		logger.GetLogger().WithField("key", key).WithField("error", err).Warn("Browse fetch failed, returning empty result set")
		return &dto.VideoListResponse{Items: []model.Video{}}, nil
	}
	videos, _ := result.([]model.Video)
	if videos == nil {
		videos = []model.Video{}
	}

	if !u.gens.isCurrent(slot, stamp) {
		// Superseded mid-flight; do not overwrite newer state.
		return &dto.VideoListResponse{Items: []model.Video{}, Stale: true}, nil
	}
	if len(videos) > 0 {
		if err := cache.Set(u.store, cache.NamespaceResults, key, videos, u.resultTTL); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to cache browse result")
		}
	}
	return &dto.VideoListResponse{Items: videos, Total: len(videos)}, nil
}

// retryFirstEmpty performs the single bounded empty-result retry for the
// very first content load after startup, compensating for the locale
// cookie not having been established yet.
func (u *BrowseUseCase) retryFirstEmpty(ctx context.Context, videos []model.Video, fetch func(context.Context) ([]model.Video, error)) ([]model.Video, error) {
	if len(videos) > 0 {
		u.firstLoadTried.Store(true)
		return videos, nil
	}
	if u.firstLoadTried.Swap(true) {
		return videos, nil
	}
	logger.GetLogger().Info("First load returned no results, retrying once")
	retried, err := fetch(ctx)
	if err != nil {
		return videos, nil
	}
	return retried, nil
}
