package handler

import (
	"github.com/gin-gonic/gin"

	"pulse_chat_server/internal/dto/request"
	"pulse_chat_server/internal/infrastructure/middleware"
	"pulse_chat_server/internal/service/group"
)

// GroupHandler serves group lifecycle and membership routes.
type GroupHandler struct {
	svc *group.Service
}

func NewGroupHandler(svc *group.Service) *GroupHandler {
	return &GroupHandler{svc: svc}
}

// Create handles POST /groups.
func (h *GroupHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// Get handles GET /groups/:id.
func (h *GroupHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	groupID, err := pathID(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	rsp, err := h.svc.Get(c.Request.Context(), userID, groupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// Join handles POST /groups/:id/join.
func (h *GroupHandler) Join(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	groupID, err := pathID(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.svc.Join(c.Request.Context(), userID, groupID); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Leave handles POST /groups/:id/leave.
func (h *GroupHandler) Leave(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	groupID, err := pathID(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.svc.Leave(c.Request.Context(), userID, groupID); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Members handles GET /groups/:id/members.
func (h *GroupHandler) Members(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	groupID, err := pathID(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	rsp, err := h.svc.Members(c.Request.Context(), userID, groupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}
