package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pulse_chat_server/internal/dto/event"
	"pulse_chat_server/pkg/constants"
)

// Keepalive timing: the peer must answer a ping within pongWait or the
// read side tears the connection down.
const (
	pongWait     = 60 * time.Second
	pingInterval = (pongWait * 9) / 10
	writeWait    = 10 * time.Second
)

// UserConn is one live websocket connection bound to an authenticated
// user. A user may hold several connections (multi-device); each gets
// its own outbound buffer and pumps.
type UserConn struct {
	// ID identifies the connection, not the user.
	ID     string
	UserID uint
	Name   string
	Image  string

	Conn     *websocket.Conn
	SendBack chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

// NewUserConn wraps an upgraded websocket connection.
func NewUserConn(conn *websocket.Conn, userID uint, name, image string) *UserConn {
	return &UserConn{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		Image:    image,
		Conn:     conn,
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
		closed:   make(chan struct{}),
	}
}

// Enqueue queues a frame for delivery to this connection. Delivery is
// best effort: when the buffer stays full past the send timeout the
// frame is dropped for this subscriber only.
func (c *UserConn) Enqueue(frame []byte) bool {
	select {
	case <-c.closed:
		return false
	default:
	}
	select {
	case c.SendBack <- frame:
		return true
	case <-c.closed:
		return false
	case <-time.After(constants.SEND_TIMEOUT):
		zap.L().Warn("dropping frame for slow subscriber",
			zap.String("conn", c.ID), zap.Uint("user", c.UserID))
		return false
	}
}

// SendEvent marshals and enqueues an outbound event.
func (c *UserConn) SendEvent(name string, data any) {
	frame, err := event.Marshal(name, data)
	if err != nil {
		zap.L().Error("marshal outbound event failed",
			zap.String("event", name), zap.Error(err))
		return
	}
	c.Enqueue(frame)
}

// SendError delivers an error event to this connection only.
func (c *UserConn) SendError(msg string) {
	c.SendEvent(event.Error, event.ErrorPayload{Message: msg})
}

// Close marks the connection closed exactly once and closes the socket.
// SendBack itself is never closed so concurrent Enqueue calls stay safe;
// the write pump exits via the closed signal.
func (c *UserConn) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		if c.Conn == nil {
			return
		}
		if err := c.Conn.Close(); err != nil {
			zap.L().Debug("websocket close", zap.Error(err))
		}
	})
}

// WritePump drains SendBack onto the socket until the connection closes
// or a write fails, pinging the peer on an interval to keep the read
// deadline alive.
func (c *UserConn) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.closed:
			return
		case frame := <-c.SendBack:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				zap.L().Debug("websocket write failed",
					zap.String("conn", c.ID), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
