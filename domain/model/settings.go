package model

// Category is a user-defined keyword bundle used to seed home-feed queries.
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Settings holds the locally persisted browser preferences. They live in the
// cache store under a very long TTL, not in a separate persistence layer.
type Settings struct {
	Language   string     `json:"language"`
	Region     string     `json:"region"`
	Categories []Category `json:"categories,omitempty"`
	// LocalPlaylists are user-imported playlists whose members are kept
	// inline rather than fetched remotely.
	LocalPlaylists []Playlist `json:"local_playlists,omitempty"`
}
