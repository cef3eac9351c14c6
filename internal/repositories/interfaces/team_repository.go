package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
)

// TeamCounts is the dashboard summary for rescue teams.
type TeamCounts struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

type TeamRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, team *models.RescueTeam) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RescueTeam, error)
	List(ctx context.Context, includeInactive bool) ([]*models.RescueTeam, error)

	// FindNearestTx selects active teams of the given type within radiusKM
	// of the point, nearest first, capped at limit. Runs inside the
	// caller's transaction so matching and assignment share a snapshot.
	FindNearestTx(ctx context.Context, tx pgx.Tx, lat, lng float64, teamType models.TeamType, radiusKM float64, limit int) ([]*models.TeamWithDistance, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TeamStatus) error
	UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error
	UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string, teamType models.TeamType, serviceArea string) error
	CaseStats(ctx context.Context, id uuid.UUID) (*models.TeamCaseStats, error)
	Counts(ctx context.Context) (*TeamCounts, error)
	DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}
