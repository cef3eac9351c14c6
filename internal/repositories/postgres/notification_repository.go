package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
)

type notificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) interfaces.NotificationRepository {
	return &notificationRepository{db: db}
}

const insertNotificationQuery = `
	INSERT INTO notifications (id, user_id, title, message, type)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at;
`

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.create(ctx, r.db, notification)
}

func (r *notificationRepository) CreateTx(ctx context.Context, tx pgx.Tx, notification *models.Notification) error {
	return r.create(ctx, tx, notification)
}

func (r *notificationRepository) create(ctx context.Context, q rowQuerier, notification *models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.Type == "" {
		notification.Type = models.NotificationTypeGeneral
	}

	err := q.QueryRow(ctx, insertNotificationQuery,
		notification.ID,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Type,
	).Scan(&notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1;`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, user_id, title, message, type, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		notification := &models.Notification{}
		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Title,
			&notification.Message,
			&notification.Type,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read notifications: %w", err)
	}
	return notifications, total, nil
}

func (r *notificationRepository) DeleteByUserTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM notifications WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to delete notifications for user: %w", err)
	}
	return nil
}
