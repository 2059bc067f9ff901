package event

// JoinRoomRequest subscribes the connection to a room.
type JoinRoomRequest struct {
	Room string `json:"room"`
	Type string `json:"type"` // direct or group
}

// LeaveRoomRequest unsubscribes the connection from a room.
type LeaveRoomRequest struct {
	Room string `json:"room"`
}

// SendMessageRequest carries one outgoing message. Exactly one of
// RecipientID and GroupID must be set; the sender identity comes from
// the authenticated connection, never from the payload.
type SendMessageRequest struct {
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
	RecipientID *uint  `json:"recipient_id,omitempty"`
	GroupID     *uint  `json:"group_id,omitempty"`
	FileURL     string `json:"file_url,omitempty"`
	FileName    string `json:"file_name,omitempty"`
}

// TypingRequest signals a typing-state change; never persisted.
type TypingRequest struct {
	Room     string `json:"room"`
	IsTyping bool   `json:"is_typing"`
}

// MarkReadRequest acknowledges a direct message as read.
type MarkReadRequest struct {
	MessageID string `json:"message_id"`
}
