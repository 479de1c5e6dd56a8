package dto

import "github.com/safak4545x/swifttube/domain/model"

// SearchRequest represents a search-like browse request.
type SearchRequest struct {
	Q        string `json:"q" binding:"required"`
	Language string `json:"hl,omitempty"`
	Region   string `json:"gl,omitempty"`
}

// PlaylistItemsRequest represents a playlist retrieval request.
type PlaylistItemsRequest struct {
	PlaylistID string `json:"playlist_id" binding:"required"`
	MinCount   int    `json:"min_count,omitempty"`
	Language   string `json:"hl,omitempty"`
	Region     string `json:"gl,omitempty"`
}

// CommentListRequest represents a comment-thread listing request.
type CommentListRequest struct {
	VideoID    string `json:"video_id" binding:"required"`
	MaxResults int64  `json:"max_results,omitempty"`
	PageToken  string `json:"page_token,omitempty"`
	Order      string `json:"order,omitempty"` // time, relevance
}

// VideoListResponse wraps a list of resolved video records.
type VideoListResponse struct {
	Items []model.Video `json:"items"`
	Total int           `json:"total"`
	// Stale is set when a superseded fetch was discarded and the caller
	// should expect a follow-up result for the newer request.
	Stale bool `json:"stale,omitempty"`
}

// CommentListResponse wraps a page of comment threads.
type CommentListResponse struct {
	Items         []model.Comment `json:"items"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

// EnrichRequest carries entity ids whose authoritative counts are wanted.
type EnrichRequest struct {
	IDs []string `json:"ids" binding:"required"`
}
