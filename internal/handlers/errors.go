package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
	"github.com/vedanthcy46/Crisis-Management-System/internal/services"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
)

// handleServiceError maps service and repository sentinels to API error
// responses. Unrecognized errors become an opaque 500.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		utils.NotFoundResponse(c, "Resource")
	case errors.Is(err, services.ErrEmailExists):
		utils.ErrorResponse(c, http.StatusBadRequest, "EMAIL_EXISTS", "Email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, services.ErrAccountDisabled):
		utils.ErrorResponse(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_TRANSITION", "Status change is not allowed from the current state")
	case errors.Is(err, services.ErrNotAssigned):
		utils.ErrorResponse(c, http.StatusForbidden, "NOT_ASSIGNED", "Team is not assigned to this incident")
	case errors.Is(err, services.ErrAlreadyResponded):
		utils.ErrorResponse(c, http.StatusBadRequest, "ALREADY_RESPONDED", "Assignment already responded to")
	case errors.Is(err, services.ErrTeamHasActiveAssignments):
		utils.ErrorResponse(c, http.StatusBadRequest, "TEAM_HAS_ACTIVE_ASSIGNMENTS", "Team still has active assignments")
	case errors.Is(err, interfaces.ErrDuplicateAssignment):
		utils.ErrorResponse(c, http.StatusBadRequest, "DUPLICATE_ASSIGNMENT", "Team is already assigned to this incident")
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c)
	case errors.Is(err, services.ErrTooManyImages):
		utils.BadRequestResponse(c, "Too many images attached")
	case errors.Is(err, services.ErrUnsupportedImageType):
		utils.BadRequestResponse(c, "Unsupported image type")
	default:
		utils.InternalServerErrorResponse(c)
	}
}
