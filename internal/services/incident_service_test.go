package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
	"github.com/vedanthcy46/Crisis-Management-System/internal/validators"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/logger"
)

func newIncidentService(pool *fakePool, incidents *fakeIncidentRepo, teams *fakeTeamRepo,
	assignments *fakeAssignmentRepo, notifications *fakeNotificationRepo,
	store *fakeStorage, smsProvider *fakeSMS) *IncidentService {
	return NewIncidentService(pool, incidents, teams, assignments, notifications, store, smsProvider, logger.NewNop())
}

func nearbyTeam(distance float64) *models.TeamWithDistance {
	return &models.TeamWithDistance{
		RescueTeam: models.RescueTeam{
			ID:     uuid.New(),
			Name:   "Team",
			Phone:  "+15550100",
			Type:   models.TeamTypeFire,
			Status: models.TeamStatusActive,
		},
		DistanceKM: distance,
	}
}

func createRequest() *validators.CreateIncidentRequest {
	return &validators.CreateIncidentRequest{
		Type:        "fire",
		Description: "Warehouse fire spreading to the adjacent building",
		Latitude:    18.9398,
		Longitude:   72.8355,
	}
}

func TestCreateIncident_DispatchesNearestTeams(t *testing.T) {
	pool := &fakePool{}
	incidents := newFakeIncidentRepo()
	teams := newFakeTeamRepo()
	teams.nearest = []*models.TeamWithDistance{nearbyTeam(1.2), nearbyTeam(4.8)}
	assignments := newFakeAssignmentRepo()
	notifications := &fakeNotificationRepo{}
	store := &fakeStorage{}
	smsProvider := &fakeSMS{}

	svc := newIncidentService(pool, incidents, teams, assignments, notifications, store, smsProvider)

	incident, err := svc.Create(context.Background(), uuid.New(), createRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, models.IncidentStatusAssigned, incident.Status)
	assert.Len(t, assignments.assignments, 2)
	assert.Len(t, notifications.notifications, 2)
	assert.Len(t, smsProvider.sent, 2)
	require.NotNil(t, pool.tx)
	assert.True(t, pool.tx.committed)

	for _, a := range assignments.assignments {
		assert.Equal(t, models.AssignmentStatusNotified, a.Status)
		assert.Equal(t, incident.ID, a.IncidentID)
	}
}

func TestCreateIncident_NoTeamsNearby(t *testing.T) {
	pool := &fakePool{}
	incidents := newFakeIncidentRepo()
	teams := newFakeTeamRepo()
	assignments := newFakeAssignmentRepo()
	notifications := &fakeNotificationRepo{}

	svc := newIncidentService(pool, incidents, teams, assignments, notifications, &fakeStorage{}, &fakeSMS{})

	incident, err := svc.Create(context.Background(), uuid.New(), createRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, models.IncidentStatusPending, incident.Status)
	assert.Empty(t, assignments.assignments)
	assert.Empty(t, notifications.notifications)
	assert.True(t, pool.tx.committed)
}

func TestCreateIncident_UploadFailureCleansUpBlobs(t *testing.T) {
	pool := &fakePool{}
	incidents := newFakeIncidentRepo()
	store := &fakeStorage{failOn: 2}

	svc := newIncidentService(pool, incidents, newFakeTeamRepo(), newFakeAssignmentRepo(),
		&fakeNotificationRepo{}, store, &fakeSMS{})

	images := []*ImageUpload{
		{Filename: "one.jpg", ContentType: "image/jpeg", Size: 10, Reader: bytes.NewReader([]byte("aa"))},
		{Filename: "two.jpg", ContentType: "image/jpeg", Size: 10, Reader: bytes.NewReader([]byte("bb"))},
	}

	_, err := svc.Create(context.Background(), uuid.New(), createRequest(), images)
	require.Error(t, err)

	require.NotNil(t, pool.tx)
	assert.True(t, pool.tx.rolled)
	assert.False(t, pool.tx.committed)

	// The image that made it to storage before the failure is removed.
	require.Len(t, store.uploaded, 1)
	assert.Equal(t, store.uploaded, store.deleted)
}

func TestCreateIncident_TooManyImages(t *testing.T) {
	svc := newIncidentService(&fakePool{}, newFakeIncidentRepo(), newFakeTeamRepo(),
		newFakeAssignmentRepo(), &fakeNotificationRepo{}, &fakeStorage{}, &fakeSMS{})

	images := make([]*ImageUpload, 6)
	for i := range images {
		images[i] = &ImageUpload{Filename: "a.jpg", ContentType: "image/jpeg", Reader: bytes.NewReader(nil)}
	}

	_, err := svc.Create(context.Background(), uuid.New(), createRequest(), images)
	assert.ErrorIs(t, err, ErrTooManyImages)
}

func TestCreateIncident_UnsupportedImageType(t *testing.T) {
	svc := newIncidentService(&fakePool{}, newFakeIncidentRepo(), newFakeTeamRepo(),
		newFakeAssignmentRepo(), &fakeNotificationRepo{}, &fakeStorage{}, &fakeSMS{})

	images := []*ImageUpload{{Filename: "a.pdf", ContentType: "application/pdf", Reader: bytes.NewReader(nil)}}

	_, err := svc.Create(context.Background(), uuid.New(), createRequest(), images)
	assert.ErrorIs(t, err, ErrUnsupportedImageType)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	incidents := newFakeIncidentRepo()
	incident := &models.Incident{ID: uuid.New(), UserID: uuid.New(), Status: models.IncidentStatusPending}
	incidents.incidents[incident.ID] = incident

	svc := newIncidentService(&fakePool{}, incidents, newFakeTeamRepo(), newFakeAssignmentRepo(),
		&fakeNotificationRepo{}, &fakeStorage{}, &fakeSMS{})

	_, err := svc.UpdateStatus(context.Background(), incident.ID, uuid.New(), models.UserRoleAdmin,
		models.IncidentStatusResolved)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_TeamNotAssigned(t *testing.T) {
	incidents := newFakeIncidentRepo()
	incident := &models.Incident{ID: uuid.New(), UserID: uuid.New(), Status: models.IncidentStatusAssigned}
	incidents.incidents[incident.ID] = incident

	svc := newIncidentService(&fakePool{}, incidents, newFakeTeamRepo(), newFakeAssignmentRepo(),
		&fakeNotificationRepo{}, &fakeStorage{}, &fakeSMS{})

	_, err := svc.UpdateStatus(context.Background(), incident.ID, uuid.New(), models.UserRoleRescueTeam,
		models.IncidentStatusInProgress)
	assert.ErrorIs(t, err, ErrNotAssigned)
}

func TestUpdateStatus_NotifiesReporter(t *testing.T) {
	incidents := newFakeIncidentRepo()
	reporterID := uuid.New()
	incident := &models.Incident{ID: uuid.New(), UserID: reporterID, Type: models.TeamTypeFire, Status: models.IncidentStatusInProgress}
	incidents.incidents[incident.ID] = incident

	notifications := &fakeNotificationRepo{}
	svc := newIncidentService(&fakePool{}, incidents, newFakeTeamRepo(), newFakeAssignmentRepo(),
		notifications, &fakeStorage{}, &fakeSMS{})

	updated, err := svc.UpdateStatus(context.Background(), incident.ID, uuid.New(), models.UserRoleAdmin,
		models.IncidentStatusResolved)
	require.NoError(t, err)

	assert.Equal(t, models.IncidentStatusResolved, updated.Status)
	require.Len(t, notifications.notifications, 1)
	assert.Equal(t, reporterID, notifications.notifications[0].UserID)
}

func TestUpdateStatus_CitizenCanOnlyCancelOwnPending(t *testing.T) {
	incidents := newFakeIncidentRepo()
	reporterID := uuid.New()
	incident := &models.Incident{ID: uuid.New(), UserID: reporterID, Status: models.IncidentStatusPending}
	incidents.incidents[incident.ID] = incident

	svc := newIncidentService(&fakePool{}, incidents, newFakeTeamRepo(), newFakeAssignmentRepo(),
		&fakeNotificationRepo{}, &fakeStorage{}, &fakeSMS{})

	// Another citizen cannot cancel it.
	_, err := svc.UpdateStatus(context.Background(), incident.ID, uuid.New(), models.UserRoleCitizen,
		models.IncidentStatusCancelled)
	assert.ErrorIs(t, err, ErrForbidden)

	// The reporter can.
	updated, err := svc.UpdateStatus(context.Background(), incident.ID, reporterID, models.UserRoleCitizen,
		models.IncidentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentStatusCancelled, updated.Status)
}

func TestList_ScopedByRole(t *testing.T) {
	incidents := newFakeIncidentRepo()
	svc := newIncidentService(&fakePool{}, incidents, newFakeTeamRepo(), newFakeAssignmentRepo(),
		&fakeNotificationRepo{}, &fakeStorage{}, &fakeSMS{})
	params := &utils.PaginationParams{Page: 1, PageSize: 20}
	actorID := uuid.New()

	_, _, err := svc.List(context.Background(), actorID, models.UserRoleCitizen,
		interfaces.IncidentFilter{}, params)
	require.NoError(t, err)
	require.NotNil(t, incidents.lastFilter.UserID)
	assert.Equal(t, actorID, *incidents.lastFilter.UserID)
	assert.Nil(t, incidents.lastFilter.TeamID)

	_, _, err = svc.List(context.Background(), actorID, models.UserRoleRescueTeam,
		interfaces.IncidentFilter{Status: "assigned"}, params)
	require.NoError(t, err)
	require.NotNil(t, incidents.lastFilter.TeamID)
	assert.Equal(t, actorID, *incidents.lastFilter.TeamID)
	assert.Nil(t, incidents.lastFilter.UserID)
	assert.Equal(t, "assigned", incidents.lastFilter.Status)

	_, _, err = svc.List(context.Background(), actorID, models.UserRoleAdmin,
		interfaces.IncidentFilter{}, params)
	require.NoError(t, err)
	assert.Nil(t, incidents.lastFilter.UserID)
	assert.Nil(t, incidents.lastFilter.TeamID)
}

func TestGet_CitizenCannotSeeOthers(t *testing.T) {
	incidents := newFakeIncidentRepo()
	incident := &models.Incident{ID: uuid.New(), UserID: uuid.New(), Status: models.IncidentStatusPending}
	incidents.incidents[incident.ID] = incident

	svc := newIncidentService(&fakePool{}, incidents, newFakeTeamRepo(), newFakeAssignmentRepo(),
		&fakeNotificationRepo{}, &fakeStorage{}, &fakeSMS{})

	_, err := svc.Get(context.Background(), incident.ID, uuid.New(), models.UserRoleCitizen)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(context.Background(), incident.ID, incident.UserID, models.UserRoleCitizen)
	require.NoError(t, err)
	assert.Equal(t, incident.ID, got.ID)
}
