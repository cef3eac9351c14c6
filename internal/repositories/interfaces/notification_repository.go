package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	CreateTx(ctx context.Context, tx pgx.Tx, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, params *utils.PaginationParams) ([]*models.Notification, int64, error)
	DeleteByUserTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
}
