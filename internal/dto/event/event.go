// Package event defines the realtime wire contract: every frame is
// {"event": <name>, "data": <payload>} in both directions. Names and
// payload fields are the compatibility surface and must not change.
package event

import "encoding/json"

// Inbound event names.
const (
	JoinRoom       = "join_room"
	LeaveRoom      = "leave_room"
	SendMessage    = "send_message"
	Typing         = "typing"
	MarkRead       = "mark_read"
	GetOnlineUsers = "get_online_users"
)

// Outbound event names.
const (
	StatusUpdate = "status_update"
	JoinedRoom   = "joined_room"
	LeftRoom     = "left_room"
	NewMessage   = "new_message"
	UserTyping   = "user_typing"
	MessageRead  = "message_read"
	OnlineUsers  = "online_users"
	Error        = "error"
)

// Room types accepted by join_room.
const (
	RoomTypeDirect = "direct"
	RoomTypeGroup  = "group"
)

// Frame is the envelope for every websocket message.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Marshal builds a serialized frame from an event name and payload.
func Marshal(name string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: name, Data: raw})
}
