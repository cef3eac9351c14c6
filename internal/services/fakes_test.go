package services

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/sms"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/storage"
)

type fakePool struct {
	tx       *fakeTx
	beginErr error
}

func (f *fakePool) Begin(ctx context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	f.tx = &fakeTx{}
	return f.tx, nil
}

type fakeTx struct {
	rolled    bool
	committed bool
}

func (f *fakeTx) Begin(context.Context) (pgx.Tx, error) {
	return nil, errors.New("fakeTx does not support nested transactions")
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolled = true
	return nil
}

func (f *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}

func (f *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}

func (f *fakeTx) LargeObjects() pgx.LargeObjects {
	panic("not implemented")
}

func (f *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}

func (f *fakeTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}

func (f *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("not implemented")
}

func (f *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("not implemented")
}

func (f *fakeTx) Conn() *pgx.Conn {
	return nil
}

type fakeUserRepo struct {
	users     map[uuid.UUID]*models.User
	byEmail   map[string]*models.User
	createErr error
	deleted   []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[uuid.UUID]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (f *fakeUserRepo) add(user *models.User) {
	f.users[user.ID] = user
	f.byEmail[user.Email] = user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return interfaces.ErrDuplicateEmail
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	return f.Create(ctx, user)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) error {
	user, ok := f.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	user.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	user, ok := f.byEmail[email]
	if !ok {
		return interfaces.ErrNotFound
	}
	user.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.users, id)
	return nil
}

type fakeIncidentRepo struct {
	incidents     map[uuid.UUID]*models.Incident
	images        []*models.IncidentImage
	createErr     error
	addImageErr   error
	statusUpdates []models.IncidentStatus
	lastFilter    interfaces.IncidentFilter
}

func newFakeIncidentRepo() *fakeIncidentRepo {
	return &fakeIncidentRepo{incidents: make(map[uuid.UUID]*models.Incident)}
}

func (f *fakeIncidentRepo) CreateTx(ctx context.Context, tx pgx.Tx, incident *models.Incident) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.incidents[incident.ID] = incident
	return nil
}

func (f *fakeIncidentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	incident, ok := f.incidents[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return incident, nil
}

func (f *fakeIncidentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Incident, error) {
	var out []*models.Incident
	for _, i := range f.incidents {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeIncidentRepo) List(ctx context.Context, filter interfaces.IncidentFilter, params *utils.PaginationParams) ([]*models.Incident, int64, error) {
	f.lastFilter = filter
	var out []*models.Incident
	for _, i := range f.incidents {
		out = append(out, i)
	}
	return out, int64(len(out)), nil
}

func (f *fakeIncidentRepo) ListAssignedToTeam(ctx context.Context, teamID uuid.UUID, activeOnly bool) ([]*models.Incident, error) {
	return nil, nil
}

func (f *fakeIncidentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.IncidentStatus) error {
	incident, ok := f.incidents[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	incident.Status = status
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeIncidentRepo) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status models.IncidentStatus) error {
	return f.UpdateStatus(ctx, id, status)
}

func (f *fakeIncidentRepo) CountByStatus(ctx context.Context) (map[models.IncidentStatus]int64, error) {
	counts := make(map[models.IncidentStatus]int64)
	for _, i := range f.incidents {
		counts[i.Status]++
	}
	return counts, nil
}

func (f *fakeIncidentRepo) Recent(ctx context.Context, limit int) ([]*models.Incident, error) {
	var out []*models.Incident
	for _, i := range f.incidents {
		out = append(out, i)
	}
	return out, nil
}

func (f *fakeIncidentRepo) AddImageTx(ctx context.Context, tx pgx.Tx, image *models.IncidentImage) error {
	if f.addImageErr != nil {
		return f.addImageErr
	}
	f.images = append(f.images, image)
	return nil
}

type fakeTeamRepo struct {
	teams          map[uuid.UUID]*models.RescueTeam
	nearest        []*models.TeamWithDistance
	nearestErr     error
	stats          *models.TeamCaseStats
	counts         *interfaces.TeamCounts
	statusByTeam   map[uuid.UUID]models.TeamStatus
	deleted        []uuid.UUID
	createTeamErr  error
	updateStatuses int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:        make(map[uuid.UUID]*models.RescueTeam),
		statusByTeam: make(map[uuid.UUID]models.TeamStatus),
	}
}

func (f *fakeTeamRepo) CreateTx(ctx context.Context, tx pgx.Tx, team *models.RescueTeam) error {
	if f.createTeamErr != nil {
		return f.createTeamErr
	}
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.RescueTeam, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return team, nil
}

func (f *fakeTeamRepo) List(ctx context.Context, includeInactive bool) ([]*models.RescueTeam, error) {
	var out []*models.RescueTeam
	for _, t := range f.teams {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTeamRepo) FindNearestTx(ctx context.Context, tx pgx.Tx, lat, lng float64, teamType models.TeamType, radiusKM float64, limit int) ([]*models.TeamWithDistance, error) {
	if f.nearestErr != nil {
		return nil, f.nearestErr
	}
	if len(f.nearest) > limit {
		return f.nearest[:limit], nil
	}
	return f.nearest, nil
}

func (f *fakeTeamRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TeamStatus) error {
	f.statusByTeam[id] = status
	f.updateStatuses++
	return nil
}

func (f *fakeTeamRepo) UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	team, ok := f.teams[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	team.Latitude = lat
	team.Longitude = lng
	return nil
}

func (f *fakeTeamRepo) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string, teamType models.TeamType, serviceArea string) error {
	if _, ok := f.teams[id]; !ok {
		return interfaces.ErrNotFound
	}
	return nil
}

func (f *fakeTeamRepo) CaseStats(ctx context.Context, id uuid.UUID) (*models.TeamCaseStats, error) {
	if f.stats == nil {
		return &models.TeamCaseStats{}, nil
	}
	return f.stats, nil
}

func (f *fakeTeamRepo) Counts(ctx context.Context) (*interfaces.TeamCounts, error) {
	if f.counts == nil {
		return &interfaces.TeamCounts{}, nil
	}
	return f.counts, nil
}

func (f *fakeTeamRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.teams, id)
	return nil
}

type fakeAssignmentRepo struct {
	assignments map[uuid.UUID]*models.Assignment
	createErr   error
	activeCount int64
	deletedFor  []uuid.UUID
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[uuid.UUID]*models.Assignment)}
}

func (f *fakeAssignmentRepo) CreateTx(ctx context.Context, tx pgx.Tx, assignment *models.Assignment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	for _, a := range f.assignments {
		if a.IncidentID == assignment.IncidentID && a.TeamID == assignment.TeamID {
			return interfaces.ErrDuplicateAssignment
		}
	}
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeAssignmentRepo) GetByIDForTeam(ctx context.Context, id, teamID uuid.UUID) (*models.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok || a.TeamID != teamID {
		return nil, interfaces.ErrNotFound
	}
	return a, nil
}

func (f *fakeAssignmentRepo) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for _, a := range f.assignments {
		if a.IncidentID == incidentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AssignmentStatus) error {
	a, ok := f.assignments[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAssignmentRepo) CountActiveByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	return f.activeCount, nil
}

func (f *fakeAssignmentRepo) DeleteByTeamTx(ctx context.Context, tx pgx.Tx, teamID uuid.UUID) error {
	f.deletedFor = append(f.deletedFor, teamID)
	return nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
	createErr     error
	deletedFor    []uuid.UUID
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) CreateTx(ctx context.Context, tx pgx.Tx, n *models.Notification) error {
	return f.Create(ctx, n)
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) DeleteByUserTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	f.deletedFor = append(f.deletedFor, userID)
	return nil
}

type fakeStorage struct {
	uploaded []string
	deleted  []string
	calls    int
	failOn   int // 1-based index of the upload that fails; 0 means never
}

func (f *fakeStorage) Upload(ctx context.Context, request *storage.UploadRequest) (*storage.UploadResponse, error) {
	f.calls++
	if f.failOn > 0 && f.calls >= f.failOn {
		return nil, errors.New("upload failed")
	}
	f.uploaded = append(f.uploaded, request.Key)
	return &storage.UploadResponse{
		Key:  request.Key,
		URL:  "http://localhost/" + request.Key,
		Size: request.Size,
	}, nil
}

func (f *fakeStorage) Download(ctx context.Context, key string) (*storage.DownloadResponse, error) {
	for _, k := range f.uploaded {
		if k == key {
			return &storage.DownloadResponse{
				Reader:      io.NopCloser(bytes.NewReader([]byte("blob"))),
				Size:        4,
				ContentType: "image/jpeg",
			}, nil
		}
	}
	return nil, storage.ErrBlobNotFound
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeSMS struct {
	sent    []*sms.SMSRequest
	sendErr error
}

func (f *fakeSMS) SendSMS(ctx context.Context, request *sms.SMSRequest) (*sms.SMSResponse, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, request)
	return &sms.SMSResponse{MessageID: "SM123", Status: "queued"}, nil
}
