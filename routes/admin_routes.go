package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vedanthcy46/Crisis-Management-System/internal/config"
	"github.com/vedanthcy46/Crisis-Management-System/internal/middleware"
)

func SetupAdminRoutes(r *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(cfg.Security.JWTSecret), middleware.AdminRequired())
	{
		admin.GET("/dashboard", h.Admin.Dashboard)
		admin.POST("/reset-password", h.Admin.ResetPassword)

		teams := admin.Group("/rescue-teams")
		{
			teams.GET("", h.Team.List)
			teams.GET("/:id", h.Team.Get)
			teams.POST("", h.Admin.CreateTeam)
			teams.PUT("/:id/status", h.Admin.UpdateTeamStatus)
			teams.DELETE("/:id", h.Admin.DeleteTeam)
		}

		incidents := admin.Group("/incidents")
		{
			incidents.GET("", h.Incident.List)
			incidents.GET("/:id", h.Incident.Get)
			incidents.POST("/:id/assign", h.Admin.AssignTeam)
		}
	}
}
