package handler

import (
	"github.com/gin-gonic/gin"

	"pulse_chat_server/internal/infrastructure/middleware"
	"pulse_chat_server/internal/service/chat"
)

// WsHandler bridges the authenticated HTTP route to the websocket
// gateway.
type WsHandler struct {
	gateway *chat.Gateway
}

func NewWsHandler(gateway *chat.Gateway) *WsHandler {
	return &WsHandler{gateway: gateway}
}

// Connect handles GET /ws. JWTAuth has already verified the token; the
// gateway owns the connection from here on.
func (h *WsHandler) Connect(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.AbortWithStatus(401)
		return
	}
	h.gateway.HandleConnection(c.Writer, c.Request, userID)
}
