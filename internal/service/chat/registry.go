package chat

import (
	"sync"

	"go.uber.org/zap"
)

// RoomRegistry maps conversation identities to the live set of
// subscribed connections. All methods are safe for concurrent use; the
// mutation surface is one RWMutex over both indexes so join/leave/drop
// never leave a dangling reference.
type RoomRegistry struct {
	mu sync.RWMutex
	// rooms: room id -> subscriber set.
	rooms map[string]map[*UserConn]struct{}
	// conns: every registered connection -> the rooms it subscribes to.
	conns map[*UserConn]map[string]struct{}
}

// NewRoomRegistry creates an empty registry.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]map[*UserConn]struct{}),
		conns: make(map[*UserConn]map[string]struct{}),
	}
}

// Register adds a connection with no subscriptions yet. Global
// broadcasts (presence updates) reach registered connections even before
// their first join.
func (r *RoomRegistry) Register(conn *UserConn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[conn]; !ok {
		r.conns[conn] = make(map[string]struct{})
	}
}

// Join subscribes a connection to a room. Idempotent: joining a room the
// connection already subscribes to is a no-op.
func (r *RoomRegistry) Join(conn *UserConn, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs, ok := r.rooms[roomID]
	if !ok {
		subs = make(map[*UserConn]struct{})
		r.rooms[roomID] = subs
	}
	subs[conn] = struct{}{}
	if _, ok := r.conns[conn]; !ok {
		r.conns[conn] = make(map[string]struct{})
	}
	r.conns[conn][roomID] = struct{}{}
}

// Leave unsubscribes a connection from a room. Removing a non-member is
// a no-op, not an error.
func (r *RoomRegistry) Leave(conn *UserConn, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(conn, roomID)
}

func (r *RoomRegistry) leaveLocked(conn *UserConn, roomID string) {
	if subs, ok := r.rooms[roomID]; ok {
		delete(subs, conn)
		if len(subs) == 0 {
			delete(r.rooms, roomID)
		}
	}
	if rooms, ok := r.conns[conn]; ok {
		delete(rooms, roomID)
	}
}

// Drop removes a connection from every room it subscribed to and from
// the registry, returning the rooms it left. Idempotent; called on every
// disconnect, graceful or abrupt.
func (r *RoomRegistry) Drop(conn *UserConn) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	rooms, ok := r.conns[conn]
	if !ok {
		return nil
	}
	left := make([]string, 0, len(rooms))
	for roomID := range rooms {
		left = append(left, roomID)
		r.leaveLocked(conn, roomID)
	}
	delete(r.conns, conn)
	return left
}

// Broadcast delivers a frame to every subscriber of a room, optionally
// excluding one connection. Delivery is best effort per subscriber: a
// slow or failed subscriber never aborts delivery to the rest. Returns
// the number of connections the frame was queued for.
func (r *RoomRegistry) Broadcast(roomID string, frame []byte, exclude *UserConn) int {
	r.mu.RLock()
	subs := r.rooms[roomID]
	targets := make([]*UserConn, 0, len(subs))
	for conn := range subs {
		if conn != exclude {
			targets = append(targets, conn)
		}
	}
	r.mu.RUnlock()

	delivered := 0
	for _, conn := range targets {
		if conn.Enqueue(frame) {
			delivered++
		}
	}
	if delivered < len(targets) {
		zap.L().Warn("partial room broadcast",
			zap.String("room", roomID),
			zap.Int("delivered", delivered),
			zap.Int("targets", len(targets)))
	}
	return delivered
}

// BroadcastAll delivers a frame to every registered connection,
// optionally excluding one. Used for global presence transitions.
func (r *RoomRegistry) BroadcastAll(frame []byte, exclude *UserConn) {
	r.mu.RLock()
	targets := make([]*UserConn, 0, len(r.conns))
	for conn := range r.conns {
		if conn != exclude {
			targets = append(targets, conn)
		}
	}
	r.mu.RUnlock()

	for _, conn := range targets {
		conn.Enqueue(frame)
	}
}

// IsSubscribed reports whether a connection currently subscribes to a
// room.
func (r *RoomRegistry) IsSubscribed(conn *UserConn, roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[roomID][conn]
	return ok
}

// Subscribers returns the current subscriber count of a room.
func (r *RoomRegistry) Subscribers(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[roomID])
}
