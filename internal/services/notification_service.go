package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
)

type NotificationService struct {
	notificationRepo interfaces.NotificationRepository
}

func NewNotificationService(notificationRepo interfaces.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) ListByUser(ctx context.Context, userID uuid.UUID, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return s.notificationRepo.ListByUser(ctx, userID, params)
}
