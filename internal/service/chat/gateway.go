package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pulse_chat_server/internal/dao/mysql/repository"
	"pulse_chat_server/internal/dto/event"
	"pulse_chat_server/pkg/constants"
	"pulse_chat_server/pkg/errorx"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checks happen at the HTTP layer (cors middleware) before
	// the upgrade is reached.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Gateway owns the websocket lifecycle: it upgrades connections,
// dispatches inbound events to the engine and routes per-connection
// errors back to their origin.
type Gateway struct {
	registry *RoomRegistry
	presence *PresenceTracker
	guard    *Guard
	pipeline *MessagePipeline
	users    repository.UserRepository

	// broker is set after construction; the broker needs the gateway as
	// its consumer.
	broker MessageBroker

	// conns indexes live connections by connection id for error routing
	// from the broker consumer. map[string]*UserConn.
	conns sync.Map

	handlers map[string]func(*UserConn, json.RawMessage) error
}

// NewGateway wires the gateway over the engine components.
func NewGateway(registry *RoomRegistry, presence *PresenceTracker, guard *Guard,
	pipeline *MessagePipeline, users repository.UserRepository) *Gateway {
	g := &Gateway{
		registry: registry,
		presence: presence,
		guard:    guard,
		pipeline: pipeline,
		users:    users,
	}
	g.handlers = map[string]func(*UserConn, json.RawMessage) error{
		event.JoinRoom:       g.handleJoinRoom,
		event.LeaveRoom:      g.handleLeaveRoom,
		event.SendMessage:    g.handleSendMessage,
		event.Typing:         g.handleTyping,
		event.MarkRead:       g.handleMarkRead,
		event.GetOnlineUsers: g.handleGetOnlineUsers,
	}
	return g
}

// SetBroker attaches the message broker. Must be called before the first
// connection is served.
func (g *Gateway) SetBroker(broker MessageBroker) {
	g.broker = broker
}

// HandleConnection upgrades an authenticated HTTP request and serves the
// connection until it closes. userID comes from the verified token, not
// from the request.
func (g *Gateway) HandleConnection(w http.ResponseWriter, r *http.Request, userID uint) {
	user, err := g.users.FindByID(r.Context(), userID)
	if err != nil {
		zap.L().Warn("websocket connect for unknown user",
			zap.Uint("user", userID), zap.Error(err))
		http.Error(w, "user not found", http.StatusUnauthorized)
		return
	}
	socket, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := NewUserConn(socket, user.ID, user.DisplayName(), user.ProfileImageURL)
	g.conns.Store(conn.ID, conn)
	g.registry.Register(conn)
	g.presence.ConnectionOpened(r.Context(), conn)
	// Every connection is implicitly subscribed to its owner's private
	// room so read receipts reach all devices.
	g.registry.Join(conn, UserRoomID(user.ID))

	go conn.WritePump()
	g.readLoop(conn)
}

// readLoop consumes inbound frames until the socket closes, then tears
// the connection down exactly once.
func (g *Gateway) readLoop(conn *UserConn) {
	defer func() {
		g.registry.Drop(conn)
		g.conns.Delete(conn.ID)
		conn.Close()
		ctx, cancel := context.WithTimeout(context.Background(), constants.STORE_TIMEOUT)
		defer cancel()
		g.presence.ConnectionClosed(ctx, conn)
	}()

	_ = conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.Conn.SetPongHandler(func(string) error {
		return conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("websocket closed unexpectedly",
					zap.String("conn", conn.ID), zap.Error(err))
			}
			return
		}
		g.dispatch(conn, raw)
	}
}

// dispatch decodes one frame and runs its handler. Handler errors and
// panics reach the originating connection only; the read loop survives
// both.
func (g *Gateway) dispatch(conn *UserConn, raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("event handler panic",
				zap.String("conn", conn.ID), zap.Any("panic", r))
			conn.SendError("internal server error")
		}
	}()

	var frame event.Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		conn.SendError("malformed frame")
		return
	}
	handler, ok := g.handlers[frame.Event]
	if !ok {
		conn.SendError(fmt.Sprintf("unknown event %q", frame.Event))
		return
	}
	if err := handler(conn, frame.Data); err != nil {
		zap.L().Info("event rejected",
			zap.String("event", frame.Event),
			zap.Uint("user", conn.UserID),
			zap.Int("code", errorx.GetCode(err)),
			zap.Error(err))
		conn.SendError(errorMessage(err))
	}
}

func (g *Gateway) handleJoinRoom(conn *UserConn, data json.RawMessage) error {
	var req event.JoinRoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return errorx.ErrInvalidParam
	}
	room, err := ParseRoomID(req.Room)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), constants.STORE_TIMEOUT)
	defer cancel()
	switch room.Kind {
	case roomKindGroup:
		if err := g.guard.CanJoinGroup(ctx, conn.UserID, room.GroupID); err != nil {
			return err
		}
	case roomKindDirect:
		if conn.UserID != room.UserA && conn.UserID != room.UserB {
			return errorx.New(errorx.CodeUnauthorized, "not authorized for this room")
		}
	case roomKindPrivate:
		if conn.UserID != room.OwnerID {
			return errorx.New(errorx.CodeUnauthorized, "not authorized for this room")
		}
	}
	g.registry.Join(conn, room.ID)
	conn.SendEvent(event.JoinedRoom, event.RoomAck{Room: room.ID})
	return nil
}

func (g *Gateway) handleLeaveRoom(conn *UserConn, data json.RawMessage) error {
	var req event.LeaveRoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return errorx.ErrInvalidParam
	}
	// Leaving an unjoined or unknown room still acks; the state converges
	// either way.
	g.registry.Leave(conn, req.Room)
	conn.SendEvent(event.LeftRoom, event.RoomAck{Room: req.Room})
	return nil
}

func (g *Gateway) handleSendMessage(conn *UserConn, data json.RawMessage) error {
	var req event.SendMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return errorx.ErrInvalidParam
	}
	env := &TransmitEnvelope{
		ConnID:      conn.ID,
		SenderID:    conn.UserID,
		SenderName:  conn.Name,
		SenderImage: conn.Image,
		Request:     req,
	}
	return g.broker.Publish(context.Background(), env)
}

// ConsumeEnvelope is the broker consumer: it runs the delivery pipeline
// for one envelope and routes failures back to the originating
// connection when it is still attached to this node.
func (g *Gateway) ConsumeEnvelope(ctx context.Context, env *TransmitEnvelope) {
	sender := Sender{ID: env.SenderID, Name: env.SenderName, Image: env.SenderImage}
	if err := g.pipeline.Deliver(ctx, sender, &env.Request); err != nil {
		zap.L().Info("message delivery rejected",
			zap.Uint("sender", env.SenderID),
			zap.Int("code", errorx.GetCode(err)),
			zap.Error(err))
		if v, ok := g.conns.Load(env.ConnID); ok {
			v.(*UserConn).SendError(errorMessage(err))
		}
	}
}

func (g *Gateway) handleTyping(conn *UserConn, data json.RawMessage) error {
	var req event.TypingRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return errorx.ErrInvalidParam
	}
	return g.pipeline.Typing(conn, &req)
}

func (g *Gateway) handleMarkRead(conn *UserConn, data json.RawMessage) error {
	var req event.MarkReadRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return errorx.ErrInvalidParam
	}
	reader := Sender{ID: conn.UserID, Name: conn.Name, Image: conn.Image}
	return g.pipeline.MarkRead(context.Background(), reader, &req)
}

func (g *Gateway) handleGetOnlineUsers(conn *UserConn, data json.RawMessage) error {
	payload, err := g.presence.OnlineUsers(context.Background(), conn.UserID)
	if err != nil {
		return err
	}
	conn.SendEvent(event.OnlineUsers, payload)
	return nil
}

// errorMessage picks the client-facing text for a rejected event.
// Internal details never leak; coded messages pass through.
func errorMessage(err error) string {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		switch codeErr.Code {
		case errorx.CodeInternal, errorx.CodeDBError, errorx.CodeCacheError:
			return "internal server error"
		}
		return codeErr.Msg
	}
	return "internal server error"
}
