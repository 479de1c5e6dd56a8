package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/safak4545x/swifttube/domain/dto"
	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/domain/repository"
	"github.com/safak4545x/swifttube/infrastructure/cache"
	"github.com/safak4545x/swifttube/infrastructure/logger"

	"golang.org/x/sync/singleflight"
)

// IPlaylistUseCase resolves playlist items. Unlike the search-like flows,
// a transport failure here propagates: an empty playlist response is
// ambiguous with "fetch failed" for an explicit fetch by id.
type IPlaylistUseCase interface {
	PlaylistItems(ctx context.Context, req *dto.PlaylistItemsRequest) (*dto.VideoListResponse, error)
}

// PlaylistUseCase serves local (user-imported) playlists from settings and
// remote playlists through the continuation pagination engine, cached.
type PlaylistUseCase struct {
	scraper   repository.IScraper
	settings  ISettingsUseCase
	store     *cache.Store
	resultTTL time.Duration
	flights   singleflight.Group
}

// NewPlaylistUseCase creates a playlist use case instance.
func NewPlaylistUseCase(scraper repository.IScraper, settings ISettingsUseCase, store *cache.Store, resultTTL time.Duration) IPlaylistUseCase {
	return &PlaylistUseCase{
		scraper:   scraper,
		settings:  settings,
		store:     store,
		resultTTL: resultTTL,
	}
}

// PlaylistItems returns at least MinCount unique items when the upstream
// has that many, fewer when the token chain exhausts first.
func (u *PlaylistUseCase) PlaylistItems(ctx context.Context, req *dto.PlaylistItemsRequest) (*dto.VideoListResponse, error) {
	if req.MinCount <= 0 {
		req.MinCount = 100
	}

	// Local playlists carry their members inline; no network involved.
	if local := u.localPlaylist(ctx, req.PlaylistID); local != nil {
		items := make([]model.Video, 0, len(local.VideoIDs))
		for _, id := range local.VideoIDs {
			items = append(items, model.Video{ID: id, Title: id})
		}
		return &dto.VideoListResponse{Items: items, Total: len(items)}, nil
	}

	key := cache.Key("playlist", "id="+req.PlaylistID, "hl="+req.Language, "gl="+req.Region)
	if hit := cache.Get[[]model.Video](u.store, cache.NamespaceResults, key); hit != nil {
		// A cached page set shorter than the requested minimum forces a
		// refetch; the upstream may simply have more now.
		if len(*hit) >= req.MinCount {
			return &dto.VideoListResponse{Items: *hit, Total: len(*hit)}, nil
		}
	}

	result, err, _ := u.flights.Do(key, func() (interface{}, error) {
		return u.scraper.PlaylistItems(ctx, req.PlaylistID, req.MinCount, req.Language, req.Region)
	})
	if err != nil {
		return nil, fmt.Errorf("playlist items %s: %w", req.PlaylistID, err)
	}
	items, _ := result.([]model.Video)
	if items == nil {
		items = []model.Video{}
	}
	if len(items) > 0 {
		if err := cache.Set(u.store, cache.NamespaceResults, key, items, u.resultTTL); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to cache playlist items")
		}
	}
	return &dto.VideoListResponse{Items: items, Total: len(items)}, nil
}

func (u *PlaylistUseCase) localPlaylist(ctx context.Context, id string) *model.Playlist {
	settings, err := u.settings.Get(ctx)
	if err != nil || settings == nil {
		return nil
	}
	for i := range settings.LocalPlaylists {
		p := &settings.LocalPlaylists[i]
		if p.ID == id && p.IsLocal() {
			return p
		}
	}
	return nil
}
