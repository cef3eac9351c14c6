package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vedanthcy46/Crisis-Management-System/internal/middleware"
	"github.com/vedanthcy46/Crisis-Management-System/internal/services"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	notifications, total, err := h.notificationService.ListByUser(c.Request.Context(), userID, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Notifications retrieved", notifications, &utils.Meta{
		Pagination: utils.NewPaginationMeta(params, total),
	})
}
