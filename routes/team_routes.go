package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vedanthcy46/Crisis-Management-System/internal/config"
	"github.com/vedanthcy46/Crisis-Management-System/internal/middleware"
)

func SetupTeamRoutes(r *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	teams := r.Group("/rescue-teams")
	teams.Use(middleware.AuthRequired(cfg.Security.JWTSecret))
	{
		teams.GET("", h.Team.List)
		teams.GET("/:id", h.Team.Get)
	}

	// Self-service routes for the logged-in rescue team.
	own := r.Group("/rescue-teams")
	own.Use(middleware.AuthRequired(cfg.Security.JWTSecret), middleware.RescueTeamRequired())
	{
		own.GET("/profile", h.Team.GetProfile)
		own.PUT("/availability", h.Team.UpdateAvailability)
		own.PUT("/location", h.Team.UpdateLocation)
		own.PUT("/profile", h.Team.UpdateProfile)
		own.GET("/incidents", h.Team.AssignedIncidents)
		own.GET("/history", h.Team.History)
		own.PUT("/assignments/:id/respond", h.Team.Respond)
	}
}
