package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vedanthcy46/Crisis-Management-System/internal/config"
	"github.com/vedanthcy46/Crisis-Management-System/internal/middleware"
)

func SetupUserRoutes(r *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	users := r.Group("/users")
	users.Use(middleware.AuthRequired(cfg.Security.JWTSecret))
	{
		users.GET("/profile", h.User.GetProfile)
		users.PUT("/profile", h.User.UpdateProfile)
		users.PUT("/change-password", h.User.ChangePassword)
	}
}
