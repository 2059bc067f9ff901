package respond

// MessageRespond is one message in a history listing. Fields mirror the
// realtime new_message payload so clients render both identically.
type MessageRespond struct {
	MessageID   string `json:"message_id"`
	Content     string `json:"content"`
	SenderID    uint   `json:"sender_id"`
	SenderName  string `json:"sender_name"`
	Timestamp   string `json:"timestamp"`
	MessageType string `json:"message_type"`
	FileURL     string `json:"file_url,omitempty"`
	FileName    string `json:"file_name,omitempty"`
	ReadAt      string `json:"read_at,omitempty"`
}
