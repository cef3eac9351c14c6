package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/services"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
	"github.com/vedanthcy46/Crisis-Management-System/internal/validators"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) CreateTeam(c *gin.Context) {
	var req validators.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateCreateTeam(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	team, err := h.adminService.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Team created", team)
}

func (h *AdminHandler) UpdateTeamStatus(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid team ID")
		return
	}

	var req validators.UpdateTeamStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	if err := h.adminService.UpdateTeamStatus(c.Request.Context(), teamID, models.TeamStatus(req.Status)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Team status updated", gin.H{"status": req.Status})
}

func (h *AdminHandler) DeleteTeam(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid team ID")
		return
	}

	if err := h.adminService.DeleteTeam(c.Request.Context(), teamID); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Team deleted", nil)
}

// AssignTeam manually dispatches a team to an incident.
func (h *AdminHandler) AssignTeam(c *gin.Context) {
	incidentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid incident ID")
		return
	}

	var req validators.AssignTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid team ID")
		return
	}

	assignment, err := h.adminService.AssignTeam(c.Request.Context(), incidentID, teamID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Team assigned", assignment)
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Dashboard retrieved", stats)
}

func (h *AdminHandler) ResetPassword(c *gin.Context) {
	var req validators.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	if err := h.adminService.ResetPassword(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Password reset", nil)
}
