package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
	"github.com/vedanthcy46/Crisis-Management-System/internal/validators"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/logger"
)

// TeamProfile is a rescue team's profile view with its case history summary.
type TeamProfile struct {
	Team  *models.RescueTeam    `json:"team"`
	Stats *models.TeamCaseStats `json:"stats"`
}

type TeamService struct {
	teamRepo         interfaces.TeamRepository
	incidentRepo     interfaces.IncidentRepository
	assignmentRepo   interfaces.AssignmentRepository
	notificationRepo interfaces.NotificationRepository
	logger           *logger.Logger
}

func NewTeamService(
	teamRepo interfaces.TeamRepository,
	incidentRepo interfaces.IncidentRepository,
	assignmentRepo interfaces.AssignmentRepository,
	notificationRepo interfaces.NotificationRepository,
	log *logger.Logger,
) *TeamService {
	return &TeamService{
		teamRepo:         teamRepo,
		incidentRepo:     incidentRepo,
		assignmentRepo:   assignmentRepo,
		notificationRepo: notificationRepo,
		logger:           log,
	}
}

func (s *TeamService) List(ctx context.Context, includeInactive bool) ([]*models.RescueTeam, error) {
	return s.teamRepo.List(ctx, includeInactive)
}

func (s *TeamService) Get(ctx context.Context, id uuid.UUID) (*models.RescueTeam, error) {
	return s.teamRepo.GetByID(ctx, id)
}

func (s *TeamService) GetProfile(ctx context.Context, teamID uuid.UUID) (*TeamProfile, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	stats, err := s.teamRepo.CaseStats(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &TeamProfile{Team: team, Stats: stats}, nil
}

func (s *TeamService) UpdateAvailability(ctx context.Context, teamID uuid.UUID, status models.TeamStatus) error {
	if err := s.teamRepo.UpdateStatus(ctx, teamID, status); err != nil {
		return err
	}
	s.logger.WithTeamID(teamID).WithField("status", status).Info("team availability updated")
	return nil
}

func (s *TeamService) UpdateLocation(ctx context.Context, teamID uuid.UUID, lat, lng float64) error {
	return s.teamRepo.UpdateLocation(ctx, teamID, lat, lng)
}

func (s *TeamService) UpdateProfile(ctx context.Context, teamID uuid.UUID, req *validators.UpdateTeamProfileRequest) (*models.RescueTeam, error) {
	err := s.teamRepo.UpdateProfile(ctx, teamID, req.Name, req.Phone, models.TeamType(req.Type), req.ServiceArea)
	if err != nil {
		return nil, err
	}
	return s.teamRepo.GetByID(ctx, teamID)
}

// AssignedIncidents lists the incidents routed to this team; activeOnly
// narrows to incidents still being worked.
func (s *TeamService) AssignedIncidents(ctx context.Context, teamID uuid.UUID, activeOnly bool) ([]*models.Incident, error) {
	return s.incidentRepo.ListAssignedToTeam(ctx, teamID, activeOnly)
}

// Respond records a team's answer to an assignment. Accepting moves the
// incident into in_progress and marks the team busy; either answer notifies
// the reporter.
func (s *TeamService) Respond(ctx context.Context, teamID, assignmentID uuid.UUID, status models.AssignmentStatus) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByIDForTeam(ctx, assignmentID, teamID)
	if err != nil {
		return nil, err
	}

	if assignment.Status != models.AssignmentStatusNotified {
		return nil, ErrAlreadyResponded
	}

	if err := s.assignmentRepo.UpdateStatus(ctx, assignmentID, status); err != nil {
		return nil, err
	}
	assignment.Status = status

	incident, err := s.incidentRepo.GetByID(ctx, assignment.IncidentID)
	if err != nil {
		return nil, err
	}

	if status == models.AssignmentStatusAccepted {
		if models.CanTransition(incident.Status, models.IncidentStatusInProgress) {
			if err := s.incidentRepo.UpdateStatus(ctx, incident.ID, models.IncidentStatusInProgress); err != nil {
				return nil, err
			}
		}
		if err := s.teamRepo.UpdateStatus(ctx, teamID, models.TeamStatusBusy); err != nil {
			s.logger.WithError(err).WithTeamID(teamID).Warn("failed to mark team busy")
		}
	}

	notification := &models.Notification{
		UserID:  incident.UserID,
		Title:   "Team responded",
		Message: "A rescue team has " + string(status) + " your incident.",
		Type:    models.NotificationTypeStatus,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.WithError(err).WithIncidentID(incident.ID).Warn("failed to notify reporter")
	}

	s.logger.WithTeamID(teamID).WithIncidentID(incident.ID).
		WithField("response", status).Info("assignment response recorded")

	return assignment, nil
}
