package chat

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"pulse_chat_server/internal/dao/mysql/repository"
	"pulse_chat_server/internal/dao/redis"
	"pulse_chat_server/internal/dto/respond"
	"pulse_chat_server/internal/model"
	"pulse_chat_server/pkg/constants"
)

// History serves conversation listings over HTTP. Listings are cached;
// the delivery pipeline invalidates the cache on every new message so
// the next read repopulates it.
type History struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	guard    *Guard
	cache    redis.CacheService
}

// NewHistory wires the history reader. cache may be nil.
func NewHistory(messages repository.MessageRepository, users repository.UserRepository,
	guard *Guard, cache redis.CacheService) *History {
	return &History{messages: messages, users: users, guard: guard, cache: cache}
}

// Direct lists the conversation between the caller and another user,
// oldest first.
func (h *History) Direct(ctx context.Context, callerID, otherID uint) ([]respond.MessageRespond, error) {
	a, b := callerID, otherID
	if a > b {
		a, b = b, a
	}
	key := messageListKey(a, b)
	if cached, ok := h.fromCache(ctx, key); ok {
		return cached, nil
	}
	messages, err := h.messages.FindDirect(ctx, callerID, otherID)
	if err != nil {
		return nil, err
	}
	out := h.respond(ctx, messages)
	h.toCache(ctx, key, out)
	return out, nil
}

// Group lists a group conversation; the caller must be a member.
func (h *History) Group(ctx context.Context, callerID, groupID uint) ([]respond.MessageRespond, error) {
	if err := h.guard.CanJoinGroup(ctx, callerID, groupID); err != nil {
		return nil, err
	}
	key := groupMessageListKey(groupID)
	if cached, ok := h.fromCache(ctx, key); ok {
		return cached, nil
	}
	messages, err := h.messages.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	out := h.respond(ctx, messages)
	h.toCache(ctx, key, out)
	return out, nil
}

func (h *History) respond(ctx context.Context, messages []model.Message) []respond.MessageRespond {
	// Resolve sender names in one query.
	seen := make(map[uint]struct{})
	var ids []uint
	for i := range messages {
		if _, ok := seen[messages[i].SenderID]; !ok {
			seen[messages[i].SenderID] = struct{}{}
			ids = append(ids, messages[i].SenderID)
		}
	}
	names := make(map[uint]string, len(ids))
	if users, err := h.users.FindByIDs(ctx, ids); err == nil {
		for i := range users {
			names[users[i].ID] = users[i].DisplayName()
		}
	}

	out := make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		m := &messages[i]
		item := respond.MessageRespond{
			MessageID:   strconv.FormatInt(m.Uuid, 10),
			Content:     m.Content,
			SenderID:    m.SenderID,
			SenderName:  names[m.SenderID],
			Timestamp:   m.CreatedAt.UTC().Format(time.RFC3339),
			MessageType: m.MessageType,
			FileURL:     m.FileURL,
			FileName:    m.FileName,
		}
		if m.ReadAt.Valid {
			item.ReadAt = m.ReadAt.Time.UTC().Format(time.RFC3339)
		}
		out = append(out, item)
	}
	return out
}

func (h *History) fromCache(ctx context.Context, key string) ([]respond.MessageRespond, bool) {
	if h.cache == nil {
		return nil, false
	}
	raw, err := h.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}
	var out []respond.MessageRespond
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		zap.L().Warn("corrupt cached message list", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return out, true
}

func (h *History) toCache(ctx context.Context, key string, list []respond.MessageRespond) {
	if h.cache == nil {
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, key, string(raw), constants.REDIS_TIMEOUT); err != nil {
		zap.L().Warn("cache message list failed", zap.String("key", key), zap.Error(err))
	}
}
