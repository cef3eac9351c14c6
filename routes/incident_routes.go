package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vedanthcy46/Crisis-Management-System/internal/config"
	"github.com/vedanthcy46/Crisis-Management-System/internal/middleware"
	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
)

func SetupIncidentRoutes(r *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	// Image URLs are embedded in incident payloads and fetched by <img>
	// tags, so this route stays public.
	r.GET("/images/*key", h.Incident.ServeImage)

	incidents := r.Group("/incidents")
	incidents.Use(middleware.AuthRequired(cfg.Security.JWTSecret))
	{
		incidents.POST("", middleware.RoleRequired(models.UserRoleCitizen), h.Incident.Create)
		incidents.GET("", h.Incident.List)
		incidents.GET("/my-reports", h.Incident.MyReports)
		incidents.GET("/:id", h.Incident.Get)
		incidents.PUT("/:id/status", h.Incident.UpdateStatus)
	}
}
