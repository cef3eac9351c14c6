package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vedanthcy46/Crisis-Management-System/internal/middleware"
	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/services"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
	"github.com/vedanthcy46/Crisis-Management-System/internal/validators"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) List(c *gin.Context) {
	includeInactive := middleware.CurrentUserRole(c) == models.UserRoleAdmin &&
		c.Query("include_inactive") == "true"

	teams, err := h.teamService.List(c.Request.Context(), includeInactive)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Teams retrieved", teams, &utils.Meta{Count: len(teams)})
}

func (h *TeamHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid team ID")
		return
	}

	team, err := h.teamService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Team retrieved", team)
}

// GetProfile returns the calling team's own profile and case statistics.
func (h *TeamHandler) GetProfile(c *gin.Context) {
	teamID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	profile, err := h.teamService.GetProfile(c.Request.Context(), teamID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", profile)
}

func (h *TeamHandler) UpdateAvailability(c *gin.Context) {
	teamID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	if err := h.teamService.UpdateAvailability(c.Request.Context(), teamID, models.TeamStatus(req.Status)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Availability updated", gin.H{"status": req.Status})
}

func (h *TeamHandler) UpdateLocation(c *gin.Context) {
	teamID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	if err := h.teamService.UpdateLocation(c.Request.Context(), teamID, req.Latitude, req.Longitude); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Location updated", nil)
}

func (h *TeamHandler) UpdateProfile(c *gin.Context) {
	teamID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.UpdateTeamProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	team, err := h.teamService.UpdateProfile(c.Request.Context(), teamID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile updated", team)
}

// AssignedIncidents lists the calling team's current workload.
func (h *TeamHandler) AssignedIncidents(c *gin.Context) {
	teamID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	incidents, err := h.teamService.AssignedIncidents(c.Request.Context(), teamID, true)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Incidents retrieved", incidents, &utils.Meta{Count: len(incidents)})
}

// History lists every incident the team was ever assigned to.
func (h *TeamHandler) History(c *gin.Context) {
	teamID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	incidents, err := h.teamService.AssignedIncidents(c.Request.Context(), teamID, false)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "History retrieved", incidents, &utils.Meta{Count: len(incidents)})
}

// Respond records the team's accept/reject answer to an assignment.
func (h *TeamHandler) Respond(c *gin.Context) {
	teamID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid assignment ID")
		return
	}

	var req validators.RespondAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	assignment, err := h.teamService.Respond(c.Request.Context(), teamID, assignmentID,
		models.AssignmentStatus(req.Status))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Response recorded", assignment)
}
