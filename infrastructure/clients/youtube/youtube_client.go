// Package youtube wraps the official quota'd Data API. It is used only for
// the counts the scraping path cannot provide (subscribers, playlist sizes)
// and for comment threads.
package youtube

import (
	"context"
	"fmt"
	"strings"

	"github.com/safak4545x/swifttube/domain/dto"
	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/domain/repository"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// MaxIDsPerCall is the Data API bound on ids per list call; the batch
// coalescer partitions its pending set into chunks of this size.
const MaxIDsPerCall = 50

// ErrNoAPIKey is returned when the client was constructed without a key.
var ErrNoAPIKey = fmt.Errorf("youtube api key not configured")

// Client implements repository.IYouTube in API-key (read-only) mode.
type Client struct {
	service *youtube.Service
}

// NewClient creates a Data API client. An empty key yields a client whose
// operations all fail with ErrNoAPIKey so callers can degrade gracefully
// instead of crashing startup.
func NewClient(ctx context.Context, apiKey string) (repository.IYouTube, error) {
	if apiKey == "" {
		return &Client{}, nil
	}
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
	}
	return &Client{service: service}, nil
}

// ChannelStats fetches subscriber and video counts for up to MaxIDsPerCall
// channel ids in one request.
func (c *Client) ChannelStats(ctx context.Context, ids []string) ([]model.ChannelStats, error) {
	if c.service == nil {
		return nil, ErrNoAPIKey
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxIDsPerCall {
		ids = ids[:MaxIDsPerCall]
	}
	response, err := c.service.Channels.List([]string{"statistics"}).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel statistics: %w", err)
	}
	stats := make([]model.ChannelStats, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Statistics == nil {
			continue
		}
		stats = append(stats, model.ChannelStats{
			ChannelID:       item.Id,
			SubscriberCount: int64(item.Statistics.SubscriberCount),
			VideoCount:      int64(item.Statistics.VideoCount),
		})
	}
	return stats, nil
}

// PlaylistStats fetches item counts for up to MaxIDsPerCall playlist ids.
func (c *Client) PlaylistStats(ctx context.Context, ids []string) ([]model.PlaylistStats, error) {
	if c.service == nil {
		return nil, ErrNoAPIKey
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxIDsPerCall {
		ids = ids[:MaxIDsPerCall]
	}
	response, err := c.service.Playlists.List([]string{"contentDetails"}).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist details: %w", err)
	}
	stats := make([]model.PlaylistStats, 0, len(response.Items))
	for _, item := range response.Items {
		if item.ContentDetails == nil {
			continue
		}
		stats = append(stats, model.PlaylistStats{
			PlaylistID: item.Id,
			ItemCount:  item.ContentDetails.ItemCount,
		})
	}
	return stats, nil
}

// VideoComments fetches one page of comment threads with inline replies.
func (c *Client) VideoComments(ctx context.Context, req *dto.CommentListRequest) (*dto.CommentListResponse, error) {
	if c.service == nil {
		return nil, ErrNoAPIKey
	}
	call := c.service.CommentThreads.List([]string{"snippet", "replies"}).
		VideoId(req.VideoID).
		TextFormat("plainText").
		Context(ctx)
	if req.MaxResults > 0 {
		call = call.MaxResults(req.MaxResults)
	} else {
		call = call.MaxResults(25)
	}
	if req.PageToken != "" {
		call = call.PageToken(req.PageToken)
	}
	if req.Order != "" {
		call = call.Order(req.Order)
	}

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get comment threads: %w", err)
	}

	items := make([]model.Comment, 0, len(response.Items))
	for _, thread := range response.Items {
		if thread.Snippet == nil || thread.Snippet.TopLevelComment == nil {
			continue
		}
		comment := convertComment(thread.Snippet.TopLevelComment)
		comment.ReplyCount = thread.Snippet.TotalReplyCount
		if thread.Replies != nil {
			for _, reply := range thread.Replies.Comments {
				comment.Replies = append(comment.Replies, convertComment(reply))
			}
			// More replies exist than the thread inlined; hand the caller a
			// token to page through them.
			if int64(len(thread.Replies.Comments)) < thread.Snippet.TotalReplyCount {
				comment.RepliesContinuation = thread.Id
			}
		}
		items = append(items, comment)
	}
	return &dto.CommentListResponse{
		Items:         items,
		NextPageToken: response.NextPageToken,
	}, nil
}

func convertComment(c *youtube.Comment) model.Comment {
	out := model.Comment{ID: c.Id}
	if c.Snippet == nil {
		return out
	}
	out.Author = c.Snippet.AuthorDisplayName
	out.Text = c.Snippet.TextDisplay
	out.AuthorAvatar = c.Snippet.AuthorProfileImageUrl
	out.LikeCount = c.Snippet.LikeCount
	out.PublishedText = c.Snippet.PublishedAt
	return out
}
