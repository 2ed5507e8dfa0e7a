package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docvoice-backend/internal/dialog"
	"docvoice-backend/internal/shared/config"
	"docvoice-backend/internal/shared/server/middleware"
	"docvoice-backend/internal/shared/server/respond"
	"docvoice-backend/internal/uploads"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config config.Config

	DialogHandler  *dialog.Handler
	UploadsHandler *uploads.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.UserID(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.UploadsHandler.RegisterRoutes(api)
	deps.DialogHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
