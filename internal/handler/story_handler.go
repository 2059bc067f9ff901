package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pulse_chat_server/internal/dto/request"
	"pulse_chat_server/internal/infrastructure/middleware"
	"pulse_chat_server/internal/service/story"
	"pulse_chat_server/pkg/errorx"
)

// StoryHandler serves the story feed and view tracking.
type StoryHandler struct {
	svc *story.Service
}

func NewStoryHandler(svc *story.Service) *StoryHandler {
	return &StoryHandler{svc: svc}
}

// Create handles POST /stories.
func (h *StoryHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	var req request.CreateStoryRequest
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

// Feed handles GET /stories.
func (h *StoryHandler) Feed(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	rsp, err := h.svc.Feed(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// View handles POST /stories/:id/view.
func (h *StoryHandler) View(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	storyID, err := pathID(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	rsp, err := h.svc.View(c.Request.Context(), userID, storyID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// pathID parses a positive uint path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, errorx.Newf(errorx.CodeInvalidParam, "invalid %s", name)
	}
	return uint(v), nil
}
