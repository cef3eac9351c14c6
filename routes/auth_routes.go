package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vedanthcy46/Crisis-Management-System/internal/config"
	"github.com/vedanthcy46/Crisis-Management-System/internal/middleware"
)

func SetupAuthRoutes(r *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/check-email", h.Auth.CheckEmail)
		auth.POST("/login", h.Auth.Login)
	}

	profile := r.Group("/auth")
	profile.Use(middleware.AuthRequired(cfg.Security.JWTSecret))
	{
		profile.GET("/profile", h.User.GetProfile)
	}
}
