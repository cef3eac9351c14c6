package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
	"github.com/vedanthcy46/Crisis-Management-System/internal/validators"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/logger"
)

func newAdminService(pool *fakePool, users *fakeUserRepo, teams *fakeTeamRepo,
	incidents *fakeIncidentRepo, assignments *fakeAssignmentRepo,
	notifications *fakeNotificationRepo, smsProvider *fakeSMS) *AdminService {
	return NewAdminService(pool, users, teams, incidents, assignments, notifications, nil, smsProvider, logger.NewNop())
}

func createTeamRequest() *validators.CreateTeamRequest {
	return &validators.CreateTeamRequest{
		Name:        "Central Fire Brigade",
		Email:       "fire@example.com",
		Password:    "secret123",
		Phone:       "+15550100",
		Type:        "fire",
		Latitude:    18.94,
		Longitude:   72.83,
		ServiceArea: "South Mumbai",
	}
}

func TestCreateTeam_SharesIDWithUser(t *testing.T) {
	pool := &fakePool{}
	users := newFakeUserRepo()
	teams := newFakeTeamRepo()

	svc := newAdminService(pool, users, teams, newFakeIncidentRepo(), newFakeAssignmentRepo(),
		&fakeNotificationRepo{}, &fakeSMS{})

	team, err := svc.CreateTeam(context.Background(), createTeamRequest())
	require.NoError(t, err)

	user, err := users.GetByID(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, user.ID)
	assert.Equal(t, models.UserRoleRescueTeam, user.Role)
	assert.True(t, pool.tx.committed)
}

func TestCreateTeam_DuplicateEmail(t *testing.T) {
	pool := &fakePool{}
	users := newFakeUserRepo()
	users.add(&models.User{ID: uuid.New(), Email: "fire@example.com"})

	svc := newAdminService(pool, users, newFakeTeamRepo(), newFakeIncidentRepo(),
		newFakeAssignmentRepo(), &fakeNotificationRepo{}, &fakeSMS{})

	_, err := svc.CreateTeam(context.Background(), createTeamRequest())
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.True(t, pool.tx.rolled)
	assert.False(t, pool.tx.committed)
}

func TestDeleteTeam_RefusedWhileActive(t *testing.T) {
	teamID := uuid.New()
	teams := newFakeTeamRepo()
	teams.teams[teamID] = &models.RescueTeam{ID: teamID}
	assignments := newFakeAssignmentRepo()
	assignments.activeCount = 2

	svc := newAdminService(&fakePool{}, newFakeUserRepo(), teams, newFakeIncidentRepo(),
		assignments, &fakeNotificationRepo{}, &fakeSMS{})

	err := svc.DeleteTeam(context.Background(), teamID)
	assert.ErrorIs(t, err, ErrTeamHasActiveAssignments)
	assert.Empty(t, teams.deleted)
}

func TestDeleteTeam_RemovesEverything(t *testing.T) {
	teamID := uuid.New()
	pool := &fakePool{}
	users := newFakeUserRepo()
	users.add(&models.User{ID: teamID, Email: "fire@example.com"})
	teams := newFakeTeamRepo()
	teams.teams[teamID] = &models.RescueTeam{ID: teamID}
	assignments := newFakeAssignmentRepo()
	notifications := &fakeNotificationRepo{}

	svc := newAdminService(pool, users, teams, newFakeIncidentRepo(), assignments, notifications, &fakeSMS{})

	err := svc.DeleteTeam(context.Background(), teamID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{teamID}, notifications.deletedFor)
	assert.Equal(t, []uuid.UUID{teamID}, assignments.deletedFor)
	assert.Equal(t, []uuid.UUID{teamID}, teams.deleted)
	assert.Equal(t, []uuid.UUID{teamID}, users.deleted)
	assert.True(t, pool.tx.committed)
}

func TestAssignTeam_Manual(t *testing.T) {
	pool := &fakePool{}
	incidents := newFakeIncidentRepo()
	incident := &models.Incident{ID: uuid.New(), UserID: uuid.New(), Type: models.TeamTypeFire,
		Status: models.IncidentStatusPending, Latitude: 12.97, Longitude: 77.59}
	incidents.incidents[incident.ID] = incident

	teamID := uuid.New()
	teams := newFakeTeamRepo()
	// Roughly 2 km north of the incident.
	teams.teams[teamID] = &models.RescueTeam{ID: teamID, Phone: "+15550100", Latitude: 12.988, Longitude: 77.59}

	assignments := newFakeAssignmentRepo()
	notifications := &fakeNotificationRepo{}
	smsProvider := &fakeSMS{}

	svc := newAdminService(pool, newFakeUserRepo(), teams, incidents, assignments, notifications, smsProvider)

	assignment, err := svc.AssignTeam(context.Background(), incident.ID, teamID)
	require.NoError(t, err)

	assert.Equal(t, models.AssignmentStatusNotified, assignment.Status)
	assert.Equal(t, models.IncidentStatusAssigned, incident.Status)
	require.Len(t, notifications.notifications, 1)
	assert.Equal(t, teamID, notifications.notifications[0].UserID)
	assert.Contains(t, notifications.notifications[0].Message, "2.0 km from your position")
	assert.Len(t, smsProvider.sent, 1)
	assert.True(t, pool.tx.committed)
}

func TestAssignTeam_DuplicateRejected(t *testing.T) {
	pool := &fakePool{}
	incidents := newFakeIncidentRepo()
	incident := &models.Incident{ID: uuid.New(), Status: models.IncidentStatusAssigned}
	incidents.incidents[incident.ID] = incident

	teamID := uuid.New()
	teams := newFakeTeamRepo()
	teams.teams[teamID] = &models.RescueTeam{ID: teamID}

	assignments := newFakeAssignmentRepo()
	assignments.createErr = interfaces.ErrDuplicateAssignment

	svc := newAdminService(pool, newFakeUserRepo(), teams, incidents, assignments, &fakeNotificationRepo{}, &fakeSMS{})

	_, err := svc.AssignTeam(context.Background(), incident.ID, teamID)
	assert.ErrorIs(t, err, interfaces.ErrDuplicateAssignment)
	assert.True(t, pool.tx.rolled)
}

func TestAssignTeam_TerminalIncident(t *testing.T) {
	incidents := newFakeIncidentRepo()
	incident := &models.Incident{ID: uuid.New(), Status: models.IncidentStatusResolved}
	incidents.incidents[incident.ID] = incident

	svc := newAdminService(&fakePool{}, newFakeUserRepo(), newFakeTeamRepo(), incidents,
		newFakeAssignmentRepo(), &fakeNotificationRepo{}, &fakeSMS{})

	_, err := svc.AssignTeam(context.Background(), incident.ID, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDashboard_WithoutCache(t *testing.T) {
	incidents := newFakeIncidentRepo()
	incidents.incidents[uuid.New()] = &models.Incident{ID: uuid.New(), Status: models.IncidentStatusPending}
	teams := newFakeTeamRepo()
	teams.counts = &interfaces.TeamCounts{Total: 3, Active: 2}

	svc := newAdminService(&fakePool{}, newFakeUserRepo(), teams, incidents,
		newFakeAssignmentRepo(), &fakeNotificationRepo{}, &fakeSMS{})

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.IncidentsByStatus[models.IncidentStatusPending])
	assert.Equal(t, int64(3), stats.Teams.Total)
	assert.Len(t, stats.RecentIncidents, 1)
}
