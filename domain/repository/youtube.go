package repository

import (
	"context"

	"github.com/safak4545x/swifttube/domain/dto"
	"github.com/safak4545x/swifttube/domain/model"
)

// IYouTube defines the authoritative (quota'd) Data API operations. They are
// consumed only for counts the scraping path cannot provide reliably, plus
// comment threads.
type IYouTube interface {
	// ChannelStats fetches subscriber/video counts for up to the API's
	// per-call id bound in one request.
	ChannelStats(ctx context.Context, ids []string) ([]model.ChannelStats, error)
	// PlaylistStats fetches item counts for up to the per-call id bound.
	PlaylistStats(ctx context.Context, ids []string) ([]model.PlaylistStats, error)
	// VideoComments fetches one page of comment threads with inline replies.
	VideoComments(ctx context.Context, req *dto.CommentListRequest) (*dto.CommentListResponse, error)
}
