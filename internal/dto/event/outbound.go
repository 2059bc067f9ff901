package event

// StatusUpdatePayload announces a presence transition. LastSeen is set
// on offline transitions only, ISO-8601 UTC.
type StatusUpdatePayload struct {
	UserID   uint   `json:"user_id"`
	Status   string `json:"status"` // online or offline
	LastSeen string `json:"last_seen,omitempty"`
}

// RoomAck confirms a join_room or leave_room to the requester.
type RoomAck struct {
	Room string `json:"room"`
}

// NewMessagePayload is the broadcast form of a persisted message.
// MessageID is the server-assigned id as a decimal string; Timestamp is
// the server creation time, ISO-8601 UTC.
type NewMessagePayload struct {
	MessageID   string `json:"message_id"`
	Content     string `json:"content"`
	SenderID    uint   `json:"sender_id"`
	SenderName  string `json:"sender_name"`
	SenderImage string `json:"sender_image"`
	Timestamp   string `json:"timestamp"`
	MessageType string `json:"message_type"`
	FileURL     string `json:"file_url,omitempty"`
	FileName    string `json:"file_name,omitempty"`
}

// UserTypingPayload propagates a typing indicator to the room, excluding
// its origin.
type UserTypingPayload struct {
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
	IsTyping bool   `json:"is_typing"`
}

// MessageReadPayload notifies a sender that their direct message was
// read.
type MessageReadPayload struct {
	MessageID string `json:"message_id"`
	ReadBy    uint   `json:"read_by"`
	ReadAt    string `json:"read_at"`
}

// OnlineUser is one entry of an online_users snapshot.
type OnlineUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// OnlineUsersPayload is the one-shot snapshot answering
// get_online_users.
type OnlineUsersPayload struct {
	Users []OnlineUser `json:"users"`
}

// ErrorPayload is sent to the originating connection only.
type ErrorPayload struct {
	Message string `json:"message"`
}
