package chat

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"go.uber.org/zap"

	"pulse_chat_server/internal/dao/mysql/repository"
	"pulse_chat_server/internal/dao/redis"
	"pulse_chat_server/internal/dto/event"
	"pulse_chat_server/internal/model"
	"pulse_chat_server/pkg/constants"
	"pulse_chat_server/pkg/errorx"
	"pulse_chat_server/pkg/util/snowflake"
)

// Sender identifies the authenticated origin of a realtime event.
type Sender struct {
	ID    uint
	Name  string
	Image string
}

// MessagePipeline validates, persists and fans out messages and the
// read/typing events that accompany them.
type MessagePipeline struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	guard    *Guard
	registry *RoomRegistry
	cache    redis.AsyncCacheService
}

// NewMessagePipeline wires the delivery path. cache may be nil in tests.
func NewMessagePipeline(messages repository.MessageRepository, users repository.UserRepository,
	guard *Guard, registry *RoomRegistry, cache redis.AsyncCacheService) *MessagePipeline {
	return &MessagePipeline{
		messages: messages,
		users:    users,
		guard:    guard,
		registry: registry,
		cache:    cache,
	}
}

// Deliver runs the full send path for one message: destination check,
// authorization, persistence, then broadcast to the conversation room
// (sender's connections included). The returned error is routed back to
// the originating connection only.
func (p *MessagePipeline) Deliver(ctx context.Context, sender Sender, req *event.SendMessageRequest) error {
	ctx, cancel := context.WithTimeout(ctx, constants.STORE_TIMEOUT)
	defer cancel()

	var roomID string
	switch {
	case req.RecipientID != nil && req.GroupID == nil:
		if *req.RecipientID == 0 || *req.RecipientID == sender.ID {
			return errorx.New(errorx.CodeInvalidDestination, "invalid message destination")
		}
		if err := p.guard.CanSendDirect(ctx, sender.ID, *req.RecipientID); err != nil {
			return err
		}
		roomID = DirectRoomID(sender.ID, *req.RecipientID)
	case req.GroupID != nil && req.RecipientID == nil:
		if *req.GroupID == 0 {
			return errorx.New(errorx.CodeInvalidDestination, "invalid message destination")
		}
		if err := p.guard.CanSendToGroup(ctx, sender.ID, *req.GroupID); err != nil {
			return err
		}
		roomID = GroupRoomID(*req.GroupID)
	default:
		return errorx.New(errorx.CodeInvalidDestination, "invalid message destination")
	}

	msgType := req.MessageType
	if msgType == "" {
		msgType = model.MessageTypeText
	}
	msg := &model.Message{
		Uuid:        snowflake.GenerateID(),
		SenderID:    sender.ID,
		RecipientID: req.RecipientID,
		GroupID:     req.GroupID,
		Content:     req.Content,
		MessageType: msgType,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		DeliveredAt: sql.NullTime{Time: time.Now().UTC(), Valid: true},
	}

	if err := p.messages.Create(ctx, msg); err != nil {
		return err
	}

	payload := event.NewMessagePayload{
		MessageID:   strconv.FormatInt(msg.Uuid, 10),
		Content:     msg.Content,
		SenderID:    sender.ID,
		SenderName:  sender.Name,
		SenderImage: sender.Image,
		Timestamp:   msg.CreatedAt.UTC().Format(time.RFC3339),
		MessageType: msg.MessageType,
		FileURL:     msg.FileURL,
		FileName:    msg.FileName,
	}
	frame, err := event.Marshal(event.NewMessage, payload)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeInternal, "marshal new_message")
	}
	p.registry.Broadcast(roomID, frame, nil)

	p.cacheAppend(msg)
	return nil
}

// MarkRead stamps a direct message read on behalf of its recipient and
// notifies the sender's private room. Repeated calls are absorbed after
// the first; senders of a message cannot acknowledge it themselves.
func (p *MessagePipeline) MarkRead(ctx context.Context, reader Sender, req *event.MarkReadRequest) error {
	ctx, cancel := context.WithTimeout(ctx, constants.STORE_TIMEOUT)
	defer cancel()

	uuid, err := strconv.ParseInt(req.MessageID, 10, 64)
	if err != nil || uuid <= 0 {
		return errorx.New(errorx.CodeInvalidParam, "invalid message id")
	}
	msg, err := p.messages.FindByUuid(ctx, uuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "message not found")
		}
		return err
	}
	if msg.RecipientID == nil || *msg.RecipientID != reader.ID {
		return errorx.New(errorx.CodeUnauthorized, "not authorized to acknowledge this message")
	}

	now := time.Now().UTC()
	stamped, err := p.messages.MarkRead(ctx, uuid, now)
	if err != nil {
		return err
	}
	if !stamped {
		// Already read; keep mark_read idempotent and silent.
		return nil
	}

	user, err := p.users.FindByID(ctx, reader.ID)
	if err == nil && !user.ReadReceipts {
		// Reader opted out of read receipts; the row is stamped but the
		// sender is not notified.
		return nil
	}

	frame, err := event.Marshal(event.MessageRead, event.MessageReadPayload{
		MessageID: req.MessageID,
		ReadBy:    reader.ID,
		ReadAt:    now.Format(time.RFC3339),
	})
	if err != nil {
		return errorx.Wrap(err, errorx.CodeInternal, "marshal message_read")
	}
	p.registry.Broadcast(UserRoomID(msg.SenderID), frame, nil)
	return nil
}

// Typing fans a typing indicator out to the room, excluding the
// connection that produced it. Nothing is persisted. Only subscribers
// may signal typing; join_room already authorized the subscription.
func (p *MessagePipeline) Typing(origin *UserConn, req *event.TypingRequest) error {
	if _, err := ParseRoomID(req.Room); err != nil {
		return err
	}
	if !p.registry.IsSubscribed(origin, req.Room) {
		return errorx.New(errorx.CodeUnauthorized, "not authorized for this room")
	}
	frame, err := event.Marshal(event.UserTyping, event.UserTypingPayload{
		UserID:   origin.UserID,
		UserName: origin.Name,
		IsTyping: req.IsTyping,
	})
	if err != nil {
		return errorx.Wrap(err, errorx.CodeInternal, "marshal user_typing")
	}
	p.registry.Broadcast(req.Room, frame, origin)
	return nil
}

// cacheAppend invalidates the cached history list for the conversation
// off the delivery path. History reads repopulate it lazily.
func (p *MessagePipeline) cacheAppend(msg *model.Message) {
	if p.cache == nil {
		return
	}
	var key string
	switch {
	case msg.RecipientID != nil:
		a, b := msg.SenderID, *msg.RecipientID
		if a > b {
			a, b = b, a
		}
		key = messageListKey(a, b)
	case msg.GroupID != nil:
		key = groupMessageListKey(*msg.GroupID)
	default:
		return
	}
	p.cache.SubmitTask(func() {
		if err := p.cache.Delete(context.Background(), key); err != nil {
			zap.L().Warn("message cache invalidation failed",
				zap.String("key", key), zap.Error(err))
		}
	})
}

func messageListKey(a, b uint) string {
	return "message_list_" + strconv.FormatUint(uint64(a), 10) + "_" + strconv.FormatUint(uint64(b), 10)
}

func groupMessageListKey(groupID uint) string {
	return "group_message_list_" + strconv.FormatUint(uint64(groupID), 10)
}
