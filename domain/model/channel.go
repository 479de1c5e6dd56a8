package model

// Channel represents a scraped channel page header plus authoritative stats.
type Channel struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	Banner      string `json:"banner,omitempty"`
	// SubscriberCount comes only from the Data API; the scraping path leaves
	// it at zero until enrichment lands.
	SubscriberCount int64 `json:"subscriber_count"`
	VideoCount      int64 `json:"video_count"`
}

// ChannelStats is the enrichment payload for a channel, delivered by the
// batch coalescer after an authoritative fetch.
type ChannelStats struct {
	ChannelID       string `json:"channel_id"`
	SubscriberCount int64  `json:"subscriber_count"`
	VideoCount      int64  `json:"video_count"`
}

// WithStats returns a copy of c with authoritative counts applied.
func (c Channel) WithStats(s ChannelStats) Channel {
	c.SubscriberCount = s.SubscriberCount
	if s.VideoCount > 0 {
		c.VideoCount = s.VideoCount
	}
	return c
}
