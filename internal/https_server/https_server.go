// Package https_server builds the gin engine: middleware, CORS and
// route registration.
package https_server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pulse_chat_server/internal/config"
	"pulse_chat_server/internal/handler"
	"pulse_chat_server/internal/infrastructure/logger"
	"pulse_chat_server/internal/router"
)

// Init returns a configured engine. gin.New is used instead of
// gin.Default so logging and recovery go through zap.
func Init(handlers *handler.Handlers) *gin.Engine {
	if config.GetConfig().MainConfig.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// TLS redirection is handled by the reverse proxy in production;
	// enable middleware.TlsHandler here when serving TLS directly.

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}
