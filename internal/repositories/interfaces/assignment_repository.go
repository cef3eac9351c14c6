package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
)

type AssignmentRepository interface {
	// CreateTx inserts an assignment, returning ErrDuplicateAssignment if
	// the (incident, team) pair already exists.
	CreateTx(ctx context.Context, tx pgx.Tx, assignment *models.Assignment) error
	GetByIDForTeam(ctx context.Context, id, teamID uuid.UUID) (*models.Assignment, error)
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*models.Assignment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.AssignmentStatus) error
	CountActiveByTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
	DeleteByTeamTx(ctx context.Context, tx pgx.Tx, teamID uuid.UUID) error
}
