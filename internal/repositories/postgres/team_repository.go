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

type teamRepository struct {
	db *pgxpool.Pool
}

func NewTeamRepository(db *pgxpool.Pool) interfaces.TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) CreateTx(ctx context.Context, tx pgx.Tx, team *models.RescueTeam) error {
	if team.Status == "" {
		team.Status = models.TeamStatusActive
	}

	query := `
		INSERT INTO rescue_teams (id, name, phone, type, latitude, longitude, status, service_area)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at;
	`
	err := tx.QueryRow(ctx, query,
		team.ID,
		team.Name,
		team.Phone,
		team.Type,
		team.Latitude,
		team.Longitude,
		team.Status,
		team.ServiceArea,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create rescue team: %w", err)
	}
	return nil
}

const selectTeamQuery = `
	SELECT
		rt.id, rt.name, u.email, rt.phone, rt.type, rt.latitude, rt.longitude,
		rt.status, rt.service_area, rt.created_at, rt.updated_at
	FROM rescue_teams rt
	JOIN users u ON u.id = rt.id
`

func (r *teamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RescueTeam, error) {
	team := &models.RescueTeam{}
	err := scanTeam(r.db.QueryRow(ctx, selectTeamQuery+` WHERE rt.id = $1;`, id), team)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rescue team: %w", err)
	}
	return team, nil
}

func (r *teamRepository) List(ctx context.Context, includeInactive bool) ([]*models.RescueTeam, error) {
	query := selectTeamQuery
	if !includeInactive {
		query += ` WHERE rt.status <> 'inactive'`
	}
	query += ` ORDER BY rt.name;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rescue teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.RescueTeam
	for rows.Next() {
		team := &models.RescueTeam{}
		if err := scanTeam(rows, team); err != nil {
			return nil, fmt.Errorf("failed to scan rescue team: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *teamRepository) FindNearestTx(ctx context.Context, tx pgx.Tx, lat, lng float64, teamType models.TeamType, radiusKM float64, limit int) ([]*models.TeamWithDistance, error) {
	// Haversine via the spherical law of cosines; least() clamps rounding
	// noise so acos never sees an argument above 1.
	query := `
		SELECT * FROM (
			SELECT
				rt.id, rt.name, u.email, rt.phone, rt.type, rt.latitude, rt.longitude,
				rt.status, rt.service_area, rt.created_at, rt.updated_at,
				(6371 * acos(least(1.0,
					cos(radians($1)) * cos(radians(rt.latitude)) *
					cos(radians(rt.longitude) - radians($2)) +
					sin(radians($1)) * sin(radians(rt.latitude))
				))) AS distance
			FROM rescue_teams rt
			JOIN users u ON u.id = rt.id
			WHERE rt.status = 'active' AND rt.type = $3
		) t
		WHERE t.distance < $4
		ORDER BY t.distance
		LIMIT $5;
	`
	rows, err := tx.Query(ctx, query, lat, lng, teamType, radiusKM, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find nearest teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.TeamWithDistance
	for rows.Next() {
		team := &models.TeamWithDistance{}
		err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Email,
			&team.Phone,
			&team.Type,
			&team.Latitude,
			&team.Longitude,
			&team.Status,
			&team.ServiceArea,
			&team.CreatedAt,
			&team.UpdatedAt,
			&team.DistanceKM,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nearest team: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *teamRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TeamStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE rescue_teams SET status = $1, updated_at = NOW() WHERE id = $2;`,
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update team status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *teamRepository) UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE rescue_teams SET latitude = $1, longitude = $2, updated_at = NOW() WHERE id = $3;`,
		lat, lng, id)
	if err != nil {
		return fmt.Errorf("failed to update team location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *teamRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string, teamType models.TeamType, serviceArea string) error {
	query := `
		UPDATE rescue_teams SET
			name = COALESCE(NULLIF($1, ''), name),
			phone = COALESCE(NULLIF($2, ''), phone),
			type = COALESCE(NULLIF($3, ''), type),
			service_area = COALESCE(NULLIF($4, ''), service_area),
			updated_at = NOW()
		WHERE id = $5;
	`
	cmdTag, err := r.db.Exec(ctx, query, name, phone, string(teamType), serviceArea, id)
	if err != nil {
		return fmt.Errorf("failed to update team profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *teamRepository) CaseStats(ctx context.Context, id uuid.UUID) (*models.TeamCaseStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE i.status = 'resolved') AS resolved,
			COUNT(*) FILTER (WHERE i.status IN ('assigned', 'in_progress')) AS active
		FROM incident_assignments ia
		JOIN incidents i ON i.id = ia.incident_id
		WHERE ia.team_id = $1;
	`
	stats := &models.TeamCaseStats{}
	err := r.db.QueryRow(ctx, query, id).Scan(&stats.TotalCases, &stats.ResolvedCases, &stats.ActiveCases)
	if err != nil {
		return nil, fmt.Errorf("failed to get team case stats: %w", err)
	}
	return stats, nil
}

func (r *teamRepository) Counts(ctx context.Context) (*interfaces.TeamCounts, error) {
	counts := &interfaces.TeamCounts{}
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'active') FROM rescue_teams;`,
	).Scan(&counts.Total, &counts.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to count rescue teams: %w", err)
	}
	return counts, nil
}

func (r *teamRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM rescue_teams WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rescue team: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func scanTeam(row pgx.Row, team *models.RescueTeam) error {
	return row.Scan(
		&team.ID,
		&team.Name,
		&team.Email,
		&team.Phone,
		&team.Type,
		&team.Latitude,
		&team.Longitude,
		&team.Status,
		&team.ServiceArea,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
}
