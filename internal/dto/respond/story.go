package respond

// StoryRespond is one story in the feed or a view acknowledgement.
type StoryRespond struct {
	StoryID    uint   `json:"story_id"`
	AuthorID   uint   `json:"author_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	MediaURL   string `json:"media_url"`
	MediaType  string `json:"media_type"`
	CreatedAt  string `json:"created_at"`
	ExpiresAt  string `json:"expires_at"`
	ViewCount  int64  `json:"view_count"`
}
