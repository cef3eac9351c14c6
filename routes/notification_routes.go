package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vedanthcy46/Crisis-Management-System/internal/config"
	"github.com/vedanthcy46/Crisis-Management-System/internal/middleware"
)

func SetupNotificationRoutes(r *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthRequired(cfg.Security.JWTSecret))
	{
		notifications.GET("", h.Notification.List)
	}
}
