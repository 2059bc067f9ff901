package handler

import (
	"pulse_chat_server/internal/infrastructure/blob"
	"pulse_chat_server/internal/service/auth"
	"pulse_chat_server/internal/service/chat"
	"pulse_chat_server/internal/service/contact"
	"pulse_chat_server/internal/service/group"
	"pulse_chat_server/internal/service/story"
)

// Handlers aggregates all handler instances; the router registers routes
// through it.
type Handlers struct {
	Auth    *AuthHandler
	Ws      *WsHandler
	Story   *StoryHandler
	Group   *GroupHandler
	Contact *ContactHandler
	Message *MessageHandler
	Upload  *UploadHandler
}

// NewHandlers builds every handler from its service.
func NewHandlers(authSvc *auth.Service, chatSrv *chat.ChatServer, storySvc *story.Service,
	groupSvc *group.Service, contactSvc *contact.Service, store blob.Store) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(authSvc),
		Ws:      NewWsHandler(chatSrv.Gateway),
		Story:   NewStoryHandler(storySvc),
		Group:   NewGroupHandler(groupSvc),
		Contact: NewContactHandler(contactSvc),
		Message: NewMessageHandler(chatSrv.History),
		Upload:  NewUploadHandler(store),
	}
}
