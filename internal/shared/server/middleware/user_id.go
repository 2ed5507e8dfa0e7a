package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docvoice-backend/internal/shared/server/respond"
)

const userIDKey = "userId"

// UserID extracts the transport-authenticated user from the X-User-Id
// header. The chat transport in front of this service owns authentication;
// the core only needs a stable identity to key per-user state.
func UserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasSuffix(c.Request.URL.Path, "/health") {
			c.Next()
			return
		}
		id := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if id == "" {
			respond.Error(c, http.StatusUnauthorized, "user_required", "X-User-Id header is required", nil)
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// UserIDFromContext fetches the user id stored by UserID middleware.
func UserIDFromContext(c *gin.Context) string {
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
