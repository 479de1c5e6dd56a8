package model_test

import (
	"testing"
	"time"

	"github.com/safak4545x/swifttube/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestVideoMergeFillsOnlyEmptyFields(t *testing.T) {
	published := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sparse := model.Video{ID: "abcdefghijk", Title: "Kept Title"}
	rich := model.Video{
		ID:              "abcdefghijk",
		Title:           "Other Title",
		ChannelTitle:    "Channel",
		ViewCountText:   "1.2M views",
		PublishedAt:     &published,
		DurationText:    "3:33",
		DurationSeconds: 213,
	}

	merged := sparse.Merge(rich)

	assert.Equal(t, "Kept Title", merged.Title)
	assert.Equal(t, "Channel", merged.ChannelTitle)
	assert.Equal(t, "1.2M views", merged.ViewCountText)
	assert.Equal(t, &published, merged.PublishedAt)
	assert.Equal(t, 213, merged.DurationSeconds)
	// The receiver is a value; the original stays untouched.
	assert.Empty(t, sparse.ChannelTitle)
}

func TestChannelWithStats(t *testing.T) {
	ch := model.Channel{ID: "UCx", Title: "A Channel", VideoCount: 3}

	enriched := ch.WithStats(model.ChannelStats{ChannelID: "UCx", SubscriberCount: 12000, VideoCount: 450})
	assert.Equal(t, int64(12000), enriched.SubscriberCount)
	assert.Equal(t, int64(450), enriched.VideoCount)

	// A zero video count from the API never erases a known one.
	partial := ch.WithStats(model.ChannelStats{ChannelID: "UCx", SubscriberCount: 12000})
	assert.Equal(t, int64(3), partial.VideoCount)
}
