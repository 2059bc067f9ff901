package handler

import (
	"github.com/gin-gonic/gin"

	"pulse_chat_server/internal/dto/request"
	"pulse_chat_server/internal/infrastructure/middleware"
	"pulse_chat_server/internal/service/contact"
)

// ContactHandler serves contact-list and block-list routes.
type ContactHandler struct {
	svc *contact.Service
}

func NewContactHandler(svc *contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Add handles POST /contacts.
func (h *ContactHandler) Add(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	var req request.AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.svc.Add(c.Request.Context(), userID, req.ContactID); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Block handles POST /contacts/block.
func (h *ContactHandler) Block(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	var req request.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.svc.Block(c.Request.Context(), userID, req.UserID); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Unblock handles POST /contacts/unblock.
func (h *ContactHandler) Unblock(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	var req request.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.svc.Unblock(c.Request.Context(), userID, req.UserID); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
