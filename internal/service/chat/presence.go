package chat

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"pulse_chat_server/internal/dao/mysql/repository"
	"pulse_chat_server/internal/dao/redis"
	"pulse_chat_server/internal/dto/event"
	"pulse_chat_server/pkg/constants"
)

// redis set holding the ids of currently online users.
const onlineUsersKey = "online_users"

// PresenceTracker reference-counts live connections per user. A user
// turns online when their first connection opens and offline only when
// their last connection closes, so a second device never flaps presence.
type PresenceTracker struct {
	mu   sync.Mutex
	refs map[uint]int

	users    repository.UserRepository
	cache    redis.AsyncCacheService
	registry *RoomRegistry
}

// NewPresenceTracker builds a tracker. cache may be nil in tests.
func NewPresenceTracker(users repository.UserRepository, cache redis.AsyncCacheService, registry *RoomRegistry) *PresenceTracker {
	return &PresenceTracker{
		refs:     make(map[uint]int),
		users:    users,
		cache:    cache,
		registry: registry,
	}
}

// ConnectionOpened records a new connection for a user. On the first
// connection it persists the online flag, updates the online set and
// broadcasts a status_update to every other connection.
func (p *PresenceTracker) ConnectionOpened(ctx context.Context, conn *UserConn) {
	p.mu.Lock()
	p.refs[conn.UserID]++
	first := p.refs[conn.UserID] == 1
	p.mu.Unlock()

	if !first {
		return
	}
	now := time.Now().UTC()
	if err := p.users.SetPresence(ctx, conn.UserID, true, now); err != nil {
		zap.L().Error("persist online presence failed",
			zap.Uint("user", conn.UserID), zap.Error(err))
	}
	if p.cache != nil {
		userID := conn.UserID
		p.cache.SubmitTask(func() {
			if err := p.cache.AddToSet(context.Background(), onlineUsersKey, userID); err != nil {
				zap.L().Warn("online set add failed", zap.Error(err))
			}
		})
	}
	p.broadcastStatus(conn.UserID, "online", "", conn)
}

// ConnectionClosed records a closed connection. When the user's last
// connection goes it persists the offline flag, stamps last_seen and
// broadcasts the transition.
func (p *PresenceTracker) ConnectionClosed(ctx context.Context, conn *UserConn) {
	p.mu.Lock()
	p.refs[conn.UserID]--
	last := p.refs[conn.UserID] <= 0
	if last {
		delete(p.refs, conn.UserID)
	}
	p.mu.Unlock()

	if !last {
		return
	}
	now := time.Now().UTC()
	if err := p.users.SetPresence(ctx, conn.UserID, false, now); err != nil {
		zap.L().Error("persist offline presence failed",
			zap.Uint("user", conn.UserID), zap.Error(err))
	}
	if p.cache != nil {
		userID := conn.UserID
		p.cache.SubmitTask(func() {
			if err := p.cache.RemoveFromSet(context.Background(), onlineUsersKey, userID); err != nil {
				zap.L().Warn("online set remove failed", zap.Error(err))
			}
		})
	}
	p.broadcastStatus(conn.UserID, "offline", now.Format(time.RFC3339), conn)
}

// OnlineUsers answers a get_online_users request with everyone flagged
// online except the requester.
func (p *PresenceTracker) OnlineUsers(ctx context.Context, excludeID uint) (*event.OnlineUsersPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.STORE_TIMEOUT)
	defer cancel()
	users, err := p.users.FindOnlineExcept(ctx, excludeID)
	if err != nil {
		return nil, err
	}
	payload := &event.OnlineUsersPayload{Users: make([]event.OnlineUser, 0, len(users))}
	for i := range users {
		payload.Users = append(payload.Users, event.OnlineUser{
			ID:    users[i].ID,
			Name:  users[i].DisplayName(),
			Image: users[i].ProfileImageURL,
		})
	}
	return payload, nil
}

func (p *PresenceTracker) broadcastStatus(userID uint, status, lastSeen string, exclude *UserConn) {
	frame, err := event.Marshal(event.StatusUpdate, event.StatusUpdatePayload{
		UserID:   userID,
		Status:   status,
		LastSeen: lastSeen,
	})
	if err != nil {
		zap.L().Error("marshal status_update failed", zap.Error(err))
		return
	}
	p.registry.BroadcastAll(frame, exclude)
}
