// Package middleware holds gin middleware shared by the HTTP routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pulse_chat_server/pkg/errorx"
	"pulse_chat_server/pkg/util/jwt"
)

// UserIDKey is the gin context key carrying the authenticated user id.
const UserIDKey = "user_id"

// JWTAuth validates the access token and stores the user id in the
// request context. The websocket route also accepts the token as a
// query parameter because browser websocket clients cannot set headers.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthenticated(c, "authentication required")
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			abortUnauthenticated(c, "token expired or invalid")
			return
		}
		if claims.Subject != "access_token" {
			abortUnauthenticated(c, "access token required")
			return
		}
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// GetUserID reads the authenticated user id set by JWTAuth.
func GetUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Query("token")
}

func abortUnauthenticated(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code": errorx.CodeUnauthenticated,
		"msg":  msg,
	})
}
