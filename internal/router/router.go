// Package router registers the HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"

	"pulse_chat_server/internal/handler"
	"pulse_chat_server/internal/infrastructure/middleware"
)

// Router registers routes against a Handlers aggregate.
type Router struct {
	handlers *handler.Handlers
}

func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes attaches every route to the engine. Everything except
// registration, login and token refresh sits behind JWT auth.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	h := rt.handlers

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
	}

	api := r.Group("/", middleware.JWTAuth())
	{
		api.GET("/ws", h.Ws.Connect)

		api.POST("/upload", h.Upload.Upload)

		stories := api.Group("/stories")
		{
			stories.POST("", h.Story.Create)
			stories.GET("", h.Story.Feed)
			stories.POST("/:id/view", h.Story.View)
		}

		groups := api.Group("/groups")
		{
			groups.POST("", h.Group.Create)
			groups.GET("/:id", h.Group.Get)
			groups.POST("/:id/join", h.Group.Join)
			groups.POST("/:id/leave", h.Group.Leave)
			groups.GET("/:id/members", h.Group.Members)
		}

		contacts := api.Group("/contacts")
		{
			contacts.POST("", h.Contact.Add)
			contacts.POST("/block", h.Contact.Block)
			contacts.POST("/unblock", h.Contact.Unblock)
		}

		messages := api.Group("/messages")
		{
			messages.GET("/direct/:id", h.Message.Direct)
			messages.GET("/group/:id", h.Message.Group)
		}
	}
}
