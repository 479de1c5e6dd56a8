package repository

import (
	"context"

	"github.com/safak4545x/swifttube/domain/model"
)

// IScraper defines the scraping-path operations backed by YouTube's public
// pages and the innertube RPC surface. Implementations never treat "no
// renderers found" as an error; an empty slice with a nil error is a valid,
// frequent outcome.
type IScraper interface {
	// Search scrapes the results page for the given query and locale.
	Search(ctx context.Context, query, hl, gl string) ([]model.Video, error)
	// Related returns videos related to the given video id.
	Related(ctx context.Context, videoID, hl, gl string) ([]model.Video, error)
	// ChannelVideos returns recent uploads for a channel.
	ChannelVideos(ctx context.Context, channelID, hl, gl string) ([]model.Video, error)
	// ChannelInfo returns the scraped channel header.
	ChannelInfo(ctx context.Context, channelID, hl, gl string) (*model.Channel, error)
	// PlaylistItems drives continuation pagination until at least minCount
	// unique items are collected, the token queue drains, or the page
	// ceiling is hit. Transport failures surface as errors because an empty
	// playlist is ambiguous with "fetch failed".
	PlaylistItems(ctx context.Context, playlistID string, minCount int, hl, gl string) ([]model.Video, error)
}
