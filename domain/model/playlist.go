package model

// Playlist represents a playlist reference. VideoIDs is populated only for
// local (user-imported) playlists; remote playlists fetch their items on
// demand through the pagination engine.
type Playlist struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Cover       string   `json:"cover"`
	ItemCount   int64    `json:"item_count"`
	VideoIDs    []string `json:"video_ids,omitempty"`
}

// IsLocal reports whether the playlist carries its members inline.
func (p Playlist) IsLocal() bool { return p.VideoIDs != nil }

// PlaylistStats is the enrichment payload for a playlist item count.
type PlaylistStats struct {
	PlaylistID string `json:"playlist_id"`
	ItemCount  int64  `json:"item_count"`
}
