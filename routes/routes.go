package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vedanthcy46/Crisis-Management-System/internal/config"
	"github.com/vedanthcy46/Crisis-Management-System/internal/handlers"
	"github.com/vedanthcy46/Crisis-Management-System/internal/middleware"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Incident     *handlers.IncidentHandler
	Team         *handlers.TeamHandler
	Admin        *handlers.AdminHandler
	Notification *handlers.NotificationHandler
}

// Setup builds the gin engine with all middleware and API routes mounted
// under /api/v1.
func Setup(cfg *config.Config, h *Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	SetupAuthRoutes(api, cfg, h)
	SetupUserRoutes(api, cfg, h)
	SetupIncidentRoutes(api, cfg, h)
	SetupTeamRoutes(api, cfg, h)
	SetupAdminRoutes(api, cfg, h)
	SetupNotificationRoutes(api, cfg, h)

	return r
}
