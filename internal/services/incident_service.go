package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
	"github.com/vedanthcy46/Crisis-Management-System/internal/validators"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/logger"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/sms"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/storage"
)

// Pool is the transaction entry point; *pgxpool.Pool satisfies it.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ImageUpload is one incoming image file from a multipart report.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type IncidentService struct {
	pool             Pool
	incidentRepo     interfaces.IncidentRepository
	teamRepo         interfaces.TeamRepository
	assignmentRepo   interfaces.AssignmentRepository
	notificationRepo interfaces.NotificationRepository
	storage          storage.StorageProvider
	sms              sms.SMSProvider
	logger           *logger.Logger
}

func NewIncidentService(
	pool Pool,
	incidentRepo interfaces.IncidentRepository,
	teamRepo interfaces.TeamRepository,
	assignmentRepo interfaces.AssignmentRepository,
	notificationRepo interfaces.NotificationRepository,
	storageProvider storage.StorageProvider,
	smsProvider sms.SMSProvider,
	log *logger.Logger,
) *IncidentService {
	return &IncidentService{
		pool:             pool,
		incidentRepo:     incidentRepo,
		teamRepo:         teamRepo,
		assignmentRepo:   assignmentRepo,
		notificationRepo: notificationRepo,
		storage:          storageProvider,
		sms:              smsProvider,
		logger:           log,
	}
}

// Create files a new incident report and dispatches it in one transaction:
// the incident row, its image metadata, assignments for the nearest matching
// teams and their notifications either all land or none do. Uploaded blobs
// are removed again if the transaction fails.
func (s *IncidentService) Create(ctx context.Context, userID uuid.UUID, req *validators.CreateIncidentRequest, images []*ImageUpload) (*models.Incident, error) {
	if len(images) > utils.MaxImagesPerIncident {
		return nil, ErrTooManyImages
	}
	for _, img := range images {
		if !utils.IsAllowedImageType(img.ContentType) {
			return nil, ErrUnsupportedImageType
		}
	}

	incident := &models.Incident{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        models.TeamType(req.Type),
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      models.IncidentStatusPending,
	}

	var uploadedKeys []string
	matched, err := s.createInTx(ctx, incident, images, &uploadedKeys)
	if err != nil {
		s.cleanupBlobs(ctx, uploadedKeys)
		return nil, err
	}

	log := s.logger.WithIncidentID(incident.ID).WithUserID(userID)
	log.WithField("matched_teams", len(matched)).Info("incident reported")

	// Dispatch SMS after commit; a carrier failure must not undo the report.
	s.notifyTeamsBySMS(ctx, incident, matched)

	return s.incidentRepo.GetByID(ctx, incident.ID)
}

func (s *IncidentService) createInTx(ctx context.Context, incident *models.Incident, images []*ImageUpload, uploadedKeys *[]string) ([]*models.TeamWithDistance, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.incidentRepo.CreateTx(ctx, tx, incident); err != nil {
		return nil, err
	}

	for _, img := range images {
		key := utils.GenerateImageKey(incident.ID, img.Filename)
		uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
			Key:         key,
			Reader:      img.Reader,
			ContentType: img.ContentType,
			Size:        img.Size,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		*uploadedKeys = append(*uploadedKeys, uploaded.Key)

		image := &models.IncidentImage{
			IncidentID:  incident.ID,
			StorageKey:  uploaded.Key,
			ContentType: img.ContentType,
			URL:         uploaded.URL,
		}
		if err := s.incidentRepo.AddImageTx(ctx, tx, image); err != nil {
			return nil, err
		}
	}

	matched, err := s.teamRepo.FindNearestTx(ctx, tx, incident.Latitude, incident.Longitude,
		incident.Type, utils.DispatchRadiusKM, utils.MaxTeamsPerMatch)
	if err != nil {
		return nil, err
	}

	for _, team := range matched {
		assignment := &models.Assignment{
			IncidentID: incident.ID,
			TeamID:     team.ID,
			Status:     models.AssignmentStatusNotified,
		}
		if err := s.assignmentRepo.CreateTx(ctx, tx, assignment); err != nil {
			return nil, err
		}

		notification := &models.Notification{
			UserID:  team.ID,
			Title:   "New incident assigned",
			Message: fmt.Sprintf("A %s incident was reported %.1f km from your position.", incident.Type, team.DistanceKM),
			Type:    models.NotificationTypeAssignment,
		}
		if err := s.notificationRepo.CreateTx(ctx, tx, notification); err != nil {
			return nil, err
		}
	}

	if len(matched) > 0 {
		incident.Status = models.IncidentStatusAssigned
		if err := s.incidentRepo.UpdateStatusTx(ctx, tx, incident.ID, models.IncidentStatusAssigned); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return matched, nil
}

func (s *IncidentService) cleanupBlobs(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("failed to clean up uploaded image")
		}
	}
}

func (s *IncidentService) notifyTeamsBySMS(ctx context.Context, incident *models.Incident, teams []*models.TeamWithDistance) {
	if s.sms == nil {
		return
	}
	for _, team := range teams {
		if team.Phone == "" {
			continue
		}
		_, err := s.sms.SendSMS(ctx, &sms.SMSRequest{
			To:      team.Phone,
			Message: fmt.Sprintf("CrisisManagement: %s incident %.1f km away. Open the app to respond.", incident.Type, team.DistanceKM),
		})
		if err != nil {
			s.logger.WithError(err).WithTeamID(team.ID).Warn("failed to send dispatch SMS")
		}
	}
}

func (s *IncidentService) ListMine(ctx context.Context, userID uuid.UUID) ([]*models.Incident, error) {
	return s.incidentRepo.ListByUser(ctx, userID)
}

// Get enforces visibility: reporters see their own incidents, rescue teams
// see incidents they are assigned to, admins see everything.
func (s *IncidentService) Get(ctx context.Context, id, actorID uuid.UUID, role models.UserRole) (*models.Incident, error) {
	incident, err := s.incidentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.UserRoleAdmin:
		return incident, nil
	case models.UserRoleCitizen:
		if incident.UserID != actorID {
			return nil, ErrForbidden
		}
		return incident, nil
	case models.UserRoleRescueTeam:
		assigned, err := s.isTeamAssigned(ctx, id, actorID)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, ErrForbidden
		}
		return incident, nil
	}
	return nil, ErrForbidden
}

func (s *IncidentService) isTeamAssigned(ctx context.Context, incidentID, teamID uuid.UUID) (bool, error) {
	assignments, err := s.assignmentRepo.ListByIncident(ctx, incidentID)
	if err != nil {
		return false, err
	}
	for _, a := range assignments {
		if a.TeamID == teamID {
			return true, nil
		}
	}
	return false, nil
}

// List returns a filtered incident listing scoped to the caller: citizens
// see their own reports, rescue teams see incidents assigned to them, and
// admins see everything.
func (s *IncidentService) List(ctx context.Context, actorID uuid.UUID, role models.UserRole, filter interfaces.IncidentFilter, params *utils.PaginationParams) ([]*models.Incident, int64, error) {
	switch role {
	case models.UserRoleCitizen:
		filter.UserID = &actorID
	case models.UserRoleRescueTeam:
		filter.TeamID = &actorID
	}
	return s.incidentRepo.List(ctx, filter, params)
}

// UpdateStatus moves an incident through its workflow. Rescue teams may only
// move incidents they are assigned to; citizens may only cancel their own
// pending reports. The reporter is notified of every change made by someone
// else.
func (s *IncidentService) UpdateStatus(ctx context.Context, id, actorID uuid.UUID, role models.UserRole, status models.IncidentStatus) (*models.Incident, error) {
	incident, err := s.incidentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(incident.Status, status) {
		return nil, ErrInvalidTransition
	}

	switch role {
	case models.UserRoleAdmin:
		// admins may perform any legal transition
	case models.UserRoleRescueTeam:
		assigned, err := s.isTeamAssigned(ctx, id, actorID)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, ErrNotAssigned
		}
	case models.UserRoleCitizen:
		if incident.UserID != actorID || status != models.IncidentStatusCancelled {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if err := s.incidentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	// The reporter is always told about status changes, including their own.
	notification := &models.Notification{
		UserID:  incident.UserID,
		Title:   "Incident status updated",
		Message: fmt.Sprintf("Your %s incident is now %s.", incident.Type, status),
		Type:    models.NotificationTypeStatus,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.WithError(err).WithIncidentID(id).Warn("failed to notify reporter")
	}

	s.logger.WithIncidentID(id).
		WithFields(map[string]interface{}{"from": incident.Status, "to": status}).
		Info("incident status updated")

	incident.Status = status
	return incident, nil
}

// GetImage streams an image blob for the serving endpoint.
func (s *IncidentService) GetImage(ctx context.Context, key string) (*storage.DownloadResponse, error) {
	resp, err := s.storage.Download(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return nil, interfaces.ErrNotFound
		}
		return nil, err
	}
	return resp, nil
}
