package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/safak4545x/swifttube/domain/dto"
	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/domain/repository"
	"github.com/safak4545x/swifttube/infrastructure/cache"
	youtubeclient "github.com/safak4545x/swifttube/infrastructure/clients/youtube"
	"github.com/safak4545x/swifttube/infrastructure/logger"
)

// ICommentUseCase fetches comment threads through the authoritative API,
// cached per page.
type ICommentUseCase interface {
	VideoComments(ctx context.Context, req *dto.CommentListRequest) (*dto.CommentListResponse, error)
}

// CommentUseCase degrades to an empty thread list when no API key is
// configured; comments simply stay blank until one is supplied.
type CommentUseCase struct {
	youtubeRepo   repository.IYouTube
	store         *cache.Store
	ttl           time.Duration
	logMissingKey sync.Once
}

// NewCommentUseCase creates a comment use case instance.
func NewCommentUseCase(youtubeRepo repository.IYouTube, store *cache.Store, ttl time.Duration) ICommentUseCase {
	return &CommentUseCase{youtubeRepo: youtubeRepo, store: store, ttl: ttl}
}

// VideoComments returns one cached page of comment threads.
func (u *CommentUseCase) VideoComments(ctx context.Context, req *dto.CommentListRequest) (*dto.CommentListResponse, error) {
	if req == nil || req.VideoID == "" {
		return nil, fmt.Errorf("video id required")
	}
	if req.MaxResults == 0 {
		req.MaxResults = 25
	}
	if req.Order == "" {
		req.Order = "relevance"
	}

	key := cache.Key("comments", "v="+req.VideoID, "page="+req.PageToken, "order="+req.Order)
	if hit := cache.Get[dto.CommentListResponse](u.store, cache.NamespaceResults, key); hit != nil {
		return hit, nil
	}

	response, err := u.youtubeRepo.VideoComments(ctx, req)
	if err != nil {
		if errors.Is(err, youtubeclient.ErrNoAPIKey) {
			u.logMissingKey.Do(func() {
				logger.GetLogger().Warn("Authoritative API key missing; comments disabled until one is supplied")
			})
			return &dto.CommentListResponse{Items: []model.Comment{}}, nil
		}
		return nil, fmt.Errorf("video comments %s: %w", req.VideoID, err)
	}
	if err := cache.Set(u.store, cache.NamespaceResults, key, *response, u.ttl); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to cache comment page")
	}
	return response, nil
}
