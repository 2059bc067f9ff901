package request

// CreateStoryRequest posts a story; it expires 24h after creation.
type CreateStoryRequest struct {
	Content    string `json:"content"`
	MediaURL   string `json:"media_url"`
	MediaType  string `json:"media_type" binding:"omitempty,oneof=image video"`
	Visibility string `json:"visibility" binding:"omitempty,oneof=everyone contacts nobody"`
}
