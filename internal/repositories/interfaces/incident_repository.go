package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
)

// IncidentFilter narrows incident listings; zero values mean "no filter".
type IncidentFilter struct {
	Status string
	Type   string
	UserID *uuid.UUID
	TeamID *uuid.UUID
}

type IncidentRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Incident, error)
	List(ctx context.Context, filter IncidentFilter, params *utils.PaginationParams) ([]*models.Incident, int64, error)
	ListAssignedToTeam(ctx context.Context, teamID uuid.UUID, activeOnly bool) ([]*models.Incident, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.IncidentStatus) error
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status models.IncidentStatus) error
	CountByStatus(ctx context.Context) (map[models.IncidentStatus]int64, error)
	Recent(ctx context.Context, limit int) ([]*models.Incident, error)
	AddImageTx(ctx context.Context, tx pgx.Tx, image *models.IncidentImage) error
}
