package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bloodbank_backend/internal/email"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/repositories"
	"bloodbank_backend/internal/services/dto"
	"bloodbank_backend/ws"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// Mocks embed the repository interface; calling a method that was not
// stubbed panics, which flags unexpected repository traffic.

type mockUserRepo struct {
	repositories.UserRepository
	findByID       func(id string) (*models.User, error)
	findByUsername func(username string) (*models.User, error)
	findByIDs      func(ids []string) ([]models.User, error)
	exists         func(username, email string) (bool, error)
	create         func(user *models.User) error
	setActive      func(id string, active bool) error
	countAdmins    func() (int64, error)
}

func (m *mockUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) { return m.findByID(id) }
func (m *mockUserRepo) FindByUsername(_ *gorm.DB, username string) (*models.User, error) {
	return m.findByUsername(username)
}
func (m *mockUserRepo) FindByIDs(_ *gorm.DB, ids []string) ([]models.User, error) {
	return m.findByIDs(ids)
}
func (m *mockUserRepo) ExistsByUsernameOrEmail(_ *gorm.DB, username, email string) (bool, error) {
	return m.exists(username, email)
}
func (m *mockUserRepo) Create(_ *gorm.DB, user *models.User) error { return m.create(user) }
func (m *mockUserRepo) SetActive(_ *gorm.DB, id string, active bool) error {
	return m.setActive(id, active)
}
func (m *mockUserRepo) CountAdmins(_ *gorm.DB) (int64, error) { return m.countAdmins() }

type mockProfileRepo struct {
	repositories.ProfileRepository
	hospitalByUserID   func(userID string) (*models.HospitalProfile, error)
	updateLastDonation func(donorID string, date time.Time) error
	countByType        func() ([]repositories.BloodTypeCount, error)
	searchDonors       func(filter repositories.DonorSearchFilter) ([]models.DonorProfile, error)
}

func (m *mockProfileRepo) FindHospitalByUserID(_ *gorm.DB, userID string) (*models.HospitalProfile, error) {
	return m.hospitalByUserID(userID)
}
func (m *mockProfileRepo) UpdateLastDonationDate(_ *gorm.DB, donorID string, date time.Time) error {
	return m.updateLastDonation(donorID, date)
}
func (m *mockProfileRepo) CountDonorsByBloodType(_ *gorm.DB) ([]repositories.BloodTypeCount, error) {
	return m.countByType()
}
func (m *mockProfileRepo) SearchDonors(_ *gorm.DB, filter repositories.DonorSearchFilter) ([]models.DonorProfile, error) {
	return m.searchDonors(filter)
}

type mockRequestRepo struct {
	repositories.BloodRequestRepository
	findByID     func(id string) (*models.BloodRequest, error)
	updateStatus func(id string, status models.RequestStatus) error
}

func (m *mockRequestRepo) FindByID(_ *gorm.DB, id string) (*models.BloodRequest, error) {
	return m.findByID(id)
}
func (m *mockRequestRepo) UpdateStatusFromActive(_ *gorm.DB, id string, status models.RequestStatus) error {
	return m.updateStatus(id, status)
}

type mockResponseRepo struct {
	repositories.ResponseRepository
	rows    map[string]*models.BloodRequestResponse
	inserts int
}

func newMockResponseRepo() *mockResponseRepo {
	return &mockResponseRepo{rows: map[string]*models.BloodRequestResponse{}}
}

func (m *mockResponseRepo) CreateIfAbsent(_ *gorm.DB, r *models.BloodRequestResponse) (bool, error) {
	key := r.RequestID + "/" + r.DonorID
	if _, ok := m.rows[key]; ok {
		return false, nil
	}
	m.inserts++
	m.rows[key] = r
	return true, nil
}

func (m *mockResponseRepo) FindByRequestAndDonor(_ *gorm.DB, requestID, donorID string) (*models.BloodRequestResponse, error) {
	if r, ok := m.rows[requestID+"/"+donorID]; ok {
		return r, nil
	}
	return nil, repositories.ErrResponseNotFound
}

func (m *mockResponseRepo) ListByRequest(_ *gorm.DB, requestID string) ([]models.BloodRequestResponse, error) {
	var out []models.BloodRequestResponse
	for _, r := range m.rows {
		if r.RequestID == requestID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type mockDonationRepo struct {
	repositories.DonationRepository
	created []*models.Donation
}

func (m *mockDonationRepo) Create(_ *gorm.DB, d *models.Donation) error {
	m.created = append(m.created, d)
	return nil
}

type mockEventRepo struct {
	repositories.EventRepository
	created []*models.DonationEvent
}

func (m *mockEventRepo) Create(_ *gorm.DB, e *models.DonationEvent) error {
	m.created = append(m.created, e)
	return nil
}

type fakePublisher struct {
	mu   sync.Mutex
	sent map[string][]ws.Event
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{sent: map[string][]ws.Event{}}
}

func (p *fakePublisher) SendToUser(userID string, event ws.Event) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent[userID] = append(p.sent[userID], event)
	return 1
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []*email.NotificationMail
	err  error
}

func (f *fakeMailer) Send(*email.Email) error { return f.err }
func (f *fakeMailer) SendNotification(mail *email.NotificationMail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, mail)
	return f.err
}
func (f *fakeMailer) Validate() error { return nil }
func (f *fakeMailer) Close() error    { return nil }

// recordingNotifier captures Dispatch calls made after commit.
type recordingNotifier struct {
	NotificationService
	dispatched [][]*models.Notification
}

func (r *recordingNotifier) Dispatch(_ context.Context, _ *gorm.DB, ns []*models.Notification) {
	r.dispatched = append(r.dispatched, ns)
}

var (
	_ repositories.UserRepository         = (*mockUserRepo)(nil)
	_ repositories.ProfileRepository      = (*mockProfileRepo)(nil)
	_ repositories.BloodRequestRepository = (*mockRequestRepo)(nil)
	_ repositories.ResponseRepository     = (*mockResponseRepo)(nil)
	_ RealtimePublisher                   = (*fakePublisher)(nil)
	_ email.Provider                      = (*fakeMailer)(nil)
)

func hospitalCaller(userID string) dto.Caller {
	return dto.Caller{UserID: userID, Role: models.UserRoleHospital}
}
