package model

// Comment represents a video comment fetched through the Data API.
// Replies carry the same shape recursively; RepliesContinuation is set when
// more replies exist than the thread response inlined.
type Comment struct {
	ID                  string    `json:"id"`
	Author              string    `json:"author"`
	Text                string    `json:"text"`
	AuthorAvatar        string    `json:"author_avatar"`
	LikeCount           int64     `json:"like_count"`
	PublishedText       string    `json:"published_text"`
	ReplyCount          int64     `json:"reply_count"`
	Pinned              bool      `json:"pinned"`
	Replies             []Comment `json:"replies,omitempty"`
	RepliesContinuation string    `json:"replies_continuation,omitempty"`
}
