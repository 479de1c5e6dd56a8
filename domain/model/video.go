package model

import "time"

// Video represents one scraped video entry. ID is the only field guaranteed
// to be present; everything else defaults to empty so partially-extracted
// records stay usable as placeholders.
type Video struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	ChannelTitle    string     `json:"channel_title"`
	ChannelID       string     `json:"channel_id"`
	ViewCountText   string     `json:"view_count_text"`
	PublishedText   string     `json:"published_text"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	Thumbnail       string     `json:"thumbnail"`
	Description     string     `json:"description"`
	ChannelAvatar   string     `json:"channel_avatar"`
	LikeCountText   string     `json:"like_count_text"`
	DurationText    string     `json:"duration_text"`
	DurationSeconds int        `json:"duration_seconds,omitempty"`
}

// Merge returns a copy of v with every empty field filled from other.
// Records are value objects; enrichment never mutates a shared instance.
func (v Video) Merge(other Video) Video {
	if v.Title == "" {
		v.Title = other.Title
	}
	if v.ChannelTitle == "" {
		v.ChannelTitle = other.ChannelTitle
	}
	if v.ChannelID == "" {
		v.ChannelID = other.ChannelID
	}
	if v.ViewCountText == "" {
		v.ViewCountText = other.ViewCountText
	}
	if v.PublishedText == "" {
		v.PublishedText = other.PublishedText
	}
	if v.PublishedAt == nil {
		v.PublishedAt = other.PublishedAt
	}
	if v.Thumbnail == "" {
		v.Thumbnail = other.Thumbnail
	}
	if v.Description == "" {
		v.Description = other.Description
	}
	if v.ChannelAvatar == "" {
		v.ChannelAvatar = other.ChannelAvatar
	}
	if v.LikeCountText == "" {
		v.LikeCountText = other.LikeCountText
	}
	if v.DurationText == "" {
		v.DurationText = other.DurationText
	}
	if v.DurationSeconds == 0 {
		v.DurationSeconds = other.DurationSeconds
	}
	return v
}
