package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
	"github.com/vedanthcy46/Crisis-Management-System/internal/validators"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/cache"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/logger"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/sms"
)

const (
	dashboardCacheKey = "admin:dashboard"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	IncidentsByStatus map[models.IncidentStatus]int64 `json:"incidents_by_status"`
	Teams             *interfaces.TeamCounts          `json:"teams"`
	RecentIncidents   []*models.Incident              `json:"recent_incidents"`
	GeneratedAt       time.Time                       `json:"generated_at"`
}

type AdminService struct {
	pool             Pool
	userRepo         interfaces.UserRepository
	teamRepo         interfaces.TeamRepository
	incidentRepo     interfaces.IncidentRepository
	assignmentRepo   interfaces.AssignmentRepository
	notificationRepo interfaces.NotificationRepository
	cache            *cache.RedisCache
	sms              sms.SMSProvider
	logger           *logger.Logger
}

func NewAdminService(
	pool Pool,
	userRepo interfaces.UserRepository,
	teamRepo interfaces.TeamRepository,
	incidentRepo interfaces.IncidentRepository,
	assignmentRepo interfaces.AssignmentRepository,
	notificationRepo interfaces.NotificationRepository,
	redisCache *cache.RedisCache,
	smsProvider sms.SMSProvider,
	log *logger.Logger,
) *AdminService {
	return &AdminService{
		pool:             pool,
		userRepo:         userRepo,
		teamRepo:         teamRepo,
		incidentRepo:     incidentRepo,
		assignmentRepo:   assignmentRepo,
		notificationRepo: notificationRepo,
		cache:            redisCache,
		sms:              smsProvider,
		logger:           log,
	}
}

// CreateTeam provisions a rescue team: the login account and the team row
// share one ID and are inserted in a single transaction.
func (s *AdminService) CreateTeam(ctx context.Context, req *validators.CreateTeamRequest) (*models.RescueTeam, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := uuid.New()
	user := &models.User{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		Role:     models.UserRoleRescueTeam,
		Status:   models.UserStatusActive,
	}
	team := &models.RescueTeam{
		ID:          id,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Type:        models.TeamType(req.Type),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      models.TeamStatusActive,
		ServiceArea: req.ServiceArea,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.userRepo.CreateTx(ctx, tx, user); err != nil {
		if errors.Is(err, interfaces.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	if err := s.teamRepo.CreateTx(ctx, tx, team); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.WithTeamID(id).WithField("type", team.Type).Info("rescue team created")
	s.invalidateDashboard(ctx)

	return team, nil
}

func (s *AdminService) UpdateTeamStatus(ctx context.Context, teamID uuid.UUID, status models.TeamStatus) error {
	if err := s.teamRepo.UpdateStatus(ctx, teamID, status); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// DeleteTeam removes a team and its account. Refused while the team still
// has assignments on unresolved incidents; otherwise notifications,
// assignments, the team row and the user row go in one transaction.
func (s *AdminService) DeleteTeam(ctx context.Context, teamID uuid.UUID) error {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return err
	}

	active, err := s.assignmentRepo.CountActiveByTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrTeamHasActiveAssignments
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.notificationRepo.DeleteByUserTx(ctx, tx, teamID); err != nil {
		return err
	}
	if err := s.assignmentRepo.DeleteByTeamTx(ctx, tx, teamID); err != nil {
		return err
	}
	if err := s.teamRepo.DeleteTx(ctx, tx, teamID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteTx(ctx, tx, teamID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.WithTeamID(teamID).Info("rescue team deleted")
	s.invalidateDashboard(ctx)
	return nil
}

// AssignTeam manually attaches a team to an incident, bypassing the
// proximity matcher. The unique constraint on (incident, team) rejects
// duplicates without a prior read.
func (s *AdminService) AssignTeam(ctx context.Context, incidentID, teamID uuid.UUID) (*models.Assignment, error) {
	incident, err := s.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	if incident.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		IncidentID: incidentID,
		TeamID:     teamID,
		Status:     models.AssignmentStatusNotified,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.assignmentRepo.CreateTx(ctx, tx, assignment); err != nil {
		return nil, err
	}

	distance := utils.CalculateDistance(team.Latitude, team.Longitude, incident.Latitude, incident.Longitude)
	notification := &models.Notification{
		UserID:  teamID,
		Title:   "New incident assigned",
		Message: fmt.Sprintf("You have been assigned to a %s incident %.1f km from your position.", incident.Type, distance),
		Type:    models.NotificationTypeAssignment,
	}
	if err := s.notificationRepo.CreateTx(ctx, tx, notification); err != nil {
		return nil, err
	}

	if incident.Status == models.IncidentStatusPending {
		if err := s.incidentRepo.UpdateStatusTx(ctx, tx, incidentID, models.IncidentStatusAssigned); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if s.sms != nil && team.Phone != "" {
		_, err := s.sms.SendSMS(ctx, &sms.SMSRequest{
			To:      team.Phone,
			Message: fmt.Sprintf("CrisisManagement: you have been assigned to a %s incident. Open the app to respond.", incident.Type),
		})
		if err != nil {
			s.logger.WithError(err).WithTeamID(teamID).Warn("failed to send dispatch SMS")
		}
	}

	s.logger.WithIncidentID(incidentID).WithTeamID(teamID).Info("team assigned manually")
	return assignment, nil
}

// Dashboard returns the cached summary, rebuilding it on a miss.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if s.cache != nil {
		var cached DashboardStats
		err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.WithError(err).Warn("dashboard cache read failed")
		}
	}

	byStatus, err := s.incidentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	teamCounts, err := s.teamRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.incidentRepo.Recent(ctx, 10)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		IncidentsByStatus: byStatus,
		Teams:             teamCounts,
		RecentIncidents:   recent,
		GeneratedAt:       time.Now().UTC(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
			s.logger.WithError(err).Warn("dashboard cache write failed")
		}
	}
	return stats, nil
}

func (s *AdminService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, dashboardCacheKey); err != nil {
		s.logger.WithError(err).Warn("dashboard cache invalidation failed")
	}
}

// ResetPassword sets a new password for any account by email.
func (s *AdminService) ResetPassword(ctx context.Context, req *validators.ResetPasswordRequest) error {
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordByEmail(ctx, req.Email, hash); err != nil {
		return err
	}
	s.logger.WithField("email", req.Email).Info("password reset by admin")
	return nil
}
