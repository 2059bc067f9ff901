package handler

import (
	"github.com/gin-gonic/gin"

	"pulse_chat_server/internal/infrastructure/middleware"
	"pulse_chat_server/internal/service/chat"
)

// MessageHandler serves conversation history.
type MessageHandler struct {
	history *chat.History
}

func NewMessageHandler(history *chat.History) *MessageHandler {
	return &MessageHandler{history: history}
}

// Direct handles GET /messages/direct/:id, the conversation with one
// other user.
func (h *MessageHandler) Direct(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	otherID, err := pathID(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	rsp, err := h.history.Direct(c.Request.Context(), userID, otherID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// Group handles GET /messages/group/:id.
func (h *MessageHandler) Group(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	groupID, err := pathID(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	rsp, err := h.history.Group(c.Request.Context(), userID, groupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}
