package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
)

type assignmentRepository struct {
	db *pgxpool.Pool
}

func NewAssignmentRepository(db *pgxpool.Pool) interfaces.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) CreateTx(ctx context.Context, tx pgx.Tx, assignment *models.Assignment) error {
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	if assignment.Status == "" {
		assignment.Status = models.AssignmentStatusNotified
	}

	query := `
		INSERT INTO incident_assignments (id, incident_id, team_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at;
	`
	err := tx.QueryRow(ctx, query,
		assignment.ID,
		assignment.IncidentID,
		assignment.TeamID,
		assignment.Status,
	).Scan(&assignment.CreatedAt)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (r *assignmentRepository) GetByIDForTeam(ctx context.Context, id, teamID uuid.UUID) (*models.Assignment, error) {
	query := `
		SELECT ia.id, ia.incident_id, ia.team_id, ia.status, rt.name, ia.created_at
		FROM incident_assignments ia
		JOIN rescue_teams rt ON rt.id = ia.team_id
		WHERE ia.id = $1 AND ia.team_id = $2;
	`
	assignment := &models.Assignment{}
	err := r.db.QueryRow(ctx, query, id, teamID).Scan(
		&assignment.ID,
		&assignment.IncidentID,
		&assignment.TeamID,
		&assignment.Status,
		&assignment.TeamName,
		&assignment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return assignment, nil
}

func (r *assignmentRepository) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*models.Assignment, error) {
	query := `
		SELECT ia.id, ia.incident_id, ia.team_id, ia.status, rt.name, ia.created_at
		FROM incident_assignments ia
		JOIN rescue_teams rt ON rt.id = ia.team_id
		WHERE ia.incident_id = $1
		ORDER BY ia.created_at;
	`
	rows, err := r.db.Query(ctx, query, incidentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		assignment := &models.Assignment{}
		err := rows.Scan(
			&assignment.ID,
			&assignment.IncidentID,
			&assignment.TeamID,
			&assignment.Status,
			&assignment.TeamName,
			&assignment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}

func (r *assignmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AssignmentStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE incident_assignments SET status = $1 WHERE id = $2;`,
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

// CountActiveByTeam counts assignments on incidents that are still being
// worked. Team deletion is refused while this is non-zero.
func (r *assignmentRepository) CountActiveByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM incident_assignments ia
		JOIN incidents i ON i.id = ia.incident_id
		WHERE ia.team_id = $1 AND i.status IN ('assigned', 'in_progress');
	`
	var count int64
	if err := r.db.QueryRow(ctx, query, teamID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active assignments: %w", err)
	}
	return count, nil
}

func (r *assignmentRepository) DeleteByTeamTx(ctx context.Context, tx pgx.Tx, teamID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM incident_assignments WHERE team_id = $1;`, teamID); err != nil {
		return fmt.Errorf("failed to delete assignments for team: %w", err)
	}
	return nil
}
