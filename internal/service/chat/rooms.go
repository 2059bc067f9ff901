// Package chat implements the realtime messaging engine: room registry,
// presence tracker, authorization guard, message delivery pipeline and
// the websocket gateway that ties them to connections.
package chat

import (
	"fmt"
	"strconv"
	"strings"

	"pulse_chat_server/pkg/errorx"
)

// Room kinds derived from a room id.
const (
	roomKindDirect  = "direct"
	roomKindGroup   = "group"
	roomKindPrivate = "private"
)

// Room is a parsed conversation identity.
type Room struct {
	ID   string
	Kind string
	// Direct rooms: the two participants, sorted.
	UserA, UserB uint
	// Group rooms.
	GroupID uint
	// Private rooms (user_{id}): the owner.
	OwnerID uint
}

// DirectRoomID derives the room id for a user pair. The pair is sorted
// so both participants compute the same id regardless of who initiates.
func DirectRoomID(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("user_%d_%d", a, b)
}

// GroupRoomID derives the room id for a group conversation.
func GroupRoomID(groupID uint) string {
	return fmt.Sprintf("group_%d", groupID)
}

// UserRoomID derives a user's private room, used for events addressed to
// one user wherever they are connected (read receipts).
func UserRoomID(userID uint) string {
	return fmt.Sprintf("user_%d", userID)
}

// ParseRoomID splits a room id into its conversation identity.
// Accepted forms: user_{a}_{b}, group_{id}, user_{id}.
func ParseRoomID(room string) (Room, error) {
	parts := strings.Split(room, "_")
	switch {
	case len(parts) == 3 && parts[0] == "user":
		a, errA := parseID(parts[1])
		b, errB := parseID(parts[2])
		if errA != nil || errB != nil {
			return Room{}, errorx.Newf(errorx.CodeInvalidParam, "invalid room id %q", room)
		}
		if a > b {
			a, b = b, a
		}
		return Room{ID: DirectRoomID(a, b), Kind: roomKindDirect, UserA: a, UserB: b}, nil
	case len(parts) == 2 && parts[0] == "group":
		id, err := parseID(parts[1])
		if err != nil {
			return Room{}, errorx.Newf(errorx.CodeInvalidParam, "invalid room id %q", room)
		}
		return Room{ID: room, Kind: roomKindGroup, GroupID: id}, nil
	case len(parts) == 2 && parts[0] == "user":
		id, err := parseID(parts[1])
		if err != nil {
			return Room{}, errorx.Newf(errorx.CodeInvalidParam, "invalid room id %q", room)
		}
		return Room{ID: room, Kind: roomKindPrivate, OwnerID: id}, nil
	}
	return Room{}, errorx.Newf(errorx.CodeInvalidParam, "invalid room id %q", room)
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(v), nil
}
