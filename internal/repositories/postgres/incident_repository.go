package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
)

type incidentRepository struct {
	db *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) interfaces.IncidentRepository {
	return &incidentRepository{db: db}
}

func (r *incidentRepository) CreateTx(ctx context.Context, tx pgx.Tx, incident *models.Incident) error {
	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	if incident.Status == "" {
		incident.Status = models.IncidentStatusPending
	}

	query := `
		INSERT INTO incidents (id, user_id, type, description, latitude, longitude, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at;
	`
	err := tx.QueryRow(ctx, query,
		incident.ID,
		incident.UserID,
		incident.Type,
		incident.Description,
		incident.Latitude,
		incident.Longitude,
		incident.Status,
	).Scan(&incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// selectIncidentQuery aggregates image URLs and assigned team names so a
// single round trip produces the full API shape.
const selectIncidentQuery = `
	SELECT
		i.id, i.user_id, i.type, i.description, i.latitude, i.longitude,
		i.status, i.created_at, i.updated_at,
		u.name AS reporter_name,
		COALESCE(ARRAY_AGG(DISTINCT ii.url) FILTER (WHERE ii.url IS NOT NULL), '{}') AS images,
		COALESCE(ARRAY_AGG(DISTINCT rt.name) FILTER (WHERE rt.name IS NOT NULL), '{}') AS assigned_teams
	FROM incidents i
	JOIN users u ON u.id = i.user_id
	LEFT JOIN incident_images ii ON ii.incident_id = i.id
	LEFT JOIN incident_assignments ia ON ia.incident_id = i.id
	LEFT JOIN rescue_teams rt ON rt.id = ia.team_id
`

const groupIncidentClause = ` GROUP BY i.id, u.name`

func (r *incidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := selectIncidentQuery + ` WHERE i.id = $1` + groupIncidentClause + `;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get incident: %w", err)
	}
	return incident, nil
}

func (r *incidentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Incident, error) {
	query := selectIncidentQuery + ` WHERE i.user_id = $1` + groupIncidentClause + ` ORDER BY i.created_at DESC;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents by user: %w", err)
	}
	defer rows.Close()

	return collectIncidents(rows)
}

func (r *incidentRepository) List(ctx context.Context, filter interfaces.IncidentFilter, params *utils.PaginationParams) ([]*models.Incident, int64, error) {
	where, args := buildIncidentFilter(filter)

	countQuery := `
		SELECT COUNT(DISTINCT i.id)
		FROM incidents i
		LEFT JOIN incident_assignments ia ON ia.incident_id = i.id
	` + where + `;`

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count incidents: %w", err)
	}

	limitArg := strconv.Itoa(len(args) + 1)
	offsetArg := strconv.Itoa(len(args) + 2)
	args = append(args, params.PageSize, params.Offset())

	query := selectIncidentQuery + where + groupIncidentClause +
		` ORDER BY i.created_at DESC LIMIT $` + limitArg + ` OFFSET $` + offsetArg + `;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents, err := collectIncidents(rows)
	if err != nil {
		return nil, 0, err
	}
	return incidents, total, nil
}

func buildIncidentFilter(filter interfaces.IncidentFilter) (string, []any) {
	var conditions []string
	var args []any

	add := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Status != "" {
		add("i.status = $%d", filter.Status)
	}
	if filter.Type != "" {
		add("i.type = $%d", filter.Type)
	}
	if filter.UserID != nil {
		add("i.user_id = $%d", *filter.UserID)
	}
	if filter.TeamID != nil {
		add("ia.team_id = $%d", *filter.TeamID)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *incidentRepository) ListAssignedToTeam(ctx context.Context, teamID uuid.UUID, activeOnly bool) ([]*models.Incident, error) {
	query := selectIncidentQuery + `
		WHERE i.id IN (SELECT incident_id FROM incident_assignments WHERE team_id = $1)`
	if activeOnly {
		query += ` AND i.status IN ('assigned', 'in_progress')`
	}
	query += groupIncidentClause + ` ORDER BY i.created_at DESC;`

	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned incidents: %w", err)
	}
	defer rows.Close()

	return collectIncidents(rows)
}

func (r *incidentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.IncidentStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE incidents SET status = $1, updated_at = NOW() WHERE id = $2;`,
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update incident status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *incidentRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status models.IncidentStatus) error {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE incidents SET status = $1, updated_at = NOW() WHERE id = $2;`,
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update incident status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *incidentRepository) CountByStatus(ctx context.Context) (map[models.IncidentStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM incidents GROUP BY status;`)
	if err != nil {
		return nil, fmt.Errorf("failed to count incidents: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.IncidentStatus]int64)
	for rows.Next() {
		var status models.IncidentStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan incident counts: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *incidentRepository) Recent(ctx context.Context, limit int) ([]*models.Incident, error) {
	query := selectIncidentQuery + groupIncidentClause + ` ORDER BY i.created_at DESC LIMIT $1;`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent incidents: %w", err)
	}
	defer rows.Close()

	return collectIncidents(rows)
}

func (r *incidentRepository) AddImageTx(ctx context.Context, tx pgx.Tx, image *models.IncidentImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}

	query := `
		INSERT INTO incident_images (id, incident_id, storage_key, content_type, url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at;
	`
	err := tx.QueryRow(ctx, query,
		image.ID,
		image.IncidentID,
		image.StorageKey,
		image.ContentType,
		image.URL,
	).Scan(&image.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add incident image: %w", err)
	}
	return nil
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	err := row.Scan(
		&incident.ID,
		&incident.UserID,
		&incident.Type,
		&incident.Description,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Status,
		&incident.CreatedAt,
		&incident.UpdatedAt,
		&incident.ReporterName,
		&incident.Images,
		&incident.AssignedTeams,
	)
	if err != nil {
		return nil, err
	}
	if incident.Images == nil {
		incident.Images = []string{}
	}
	if incident.AssignedTeams == nil {
		incident.AssignedTeams = []string{}
	}
	return incident, nil
}

func collectIncidents(rows pgx.Rows) ([]*models.Incident, error) {
	var incidents []*models.Incident
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read incidents: %w", err)
	}
	return incidents, nil
}
