package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/repositories"
	"bloodbank_backend/internal/services/dto"
	"bloodbank_backend/pkg/apperrors"
)

var donorColumns = []string{"id", "user_id", "full_name", "blood_type", "is_available", "last_donation_date"}

func newFanoutService(notifier NotificationService) *bloodRequestService {
	return &bloodRequestService{
		requestRepo:         repositories.NewBloodRequestRepository(),
		profileRepo:         repositories.NewProfileRepository(),
		notificationRepo:    repositories.NewNotificationRepository(),
		notificationService: notifier,
		clock:               fixedClock,
	}
}

func testHospital() *models.HospitalProfile {
	h := &models.HospitalProfile{UserID: "hospital-user", HospitalName: "St. Mary"}
	h.ID = "hospital-1"
	return h
}

func newRequestInput(bt models.BloodType) *dto.CreateBloodRequestRequest {
	return &dto.CreateBloodRequestRequest{
		BloodType:    bt,
		UnitsNeeded:  3,
		UrgencyLevel: models.UrgencyCritical,
		Description:  "Trauma ward",
		NeededBy:     "2024-03-20",
	}
}

func TestCreateRequest_FansOutToCompatibleAvailableDonors(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &recordingNotifier{}
	svc := newFanoutService(notifier)

	recent := testNow.AddDate(0, 0, -3)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "blood_requests"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "donor_profiles" WHERE blood_type IN \(\$1,\$2,\$3,\$4\) AND is_available = \$5`).
		WithArgs("A+", "A-", "O+", "O-", true).
		WillReturnRows(sqlmock.NewRows(donorColumns).
			AddRow("d1", "u1", "Ann", "A+", true, nil).
			AddRow("d2", "u2", "Bob", "O-", true, nil).
			// donated three days ago; still notified since only availability gates fan-out
			AddRow("d3", "u3", "Cy", "A-", true, recent))
	mock.ExpectExec(`INSERT INTO "notifications"`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	result, err := svc.CreateRequest(context.Background(), db, testHospital(), newRequestInput(models.BloodTypeAPos))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 3, result.NotifiedDonors)
	assert.Equal(t, models.RequestStatusActive, result.Request.Status)
	assert.Equal(t, "St. Mary", result.Request.HospitalName)
	assert.Equal(t, "dark", result.Request.UrgencyBadge)
	assert.Equal(t, testNow, result.Request.RequestedAt)

	require.Len(t, notifier.dispatched, 1)
	sent := notifier.dispatched[0]
	require.Len(t, sent, 3)
	var recipients []string
	for _, n := range sent {
		recipients = append(recipients, n.UserID)
		assert.Equal(t, "Blood Request - A+", n.Title)
		assert.Equal(t, "St. Mary needs 3 units of A+ blood. Urgency: Critical", n.Message)
		assert.Equal(t, models.NotificationTypeBloodRequest, n.Type)
		assert.Contains(t, string(n.Data), result.Request.ID)
	}
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, recipients)
}

func TestCreateRequest_UniversalDonorTargetsOnlyONeg(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newFanoutService(&recordingNotifier{})

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "blood_requests"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "donor_profiles" WHERE blood_type IN \(\$1\) AND is_available = \$2`).
		WithArgs("O-", true).
		WillReturnRows(sqlmock.NewRows(donorColumns).AddRow("d2", "u2", "Bob", "O-", true, nil))
	mock.ExpectExec(`INSERT INTO "notifications"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.CreateRequest(context.Background(), db, testHospital(), newRequestInput(models.BloodTypeONeg))
	require.NoError(t, err)
	assert.Equal(t, 1, result.NotifiedDonors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequest_NoMatchingDonorsStillPersists(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &recordingNotifier{}
	svc := newFanoutService(notifier)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "blood_requests"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "donor_profiles"`).WillReturnRows(sqlmock.NewRows(donorColumns))
	mock.ExpectCommit()

	result, err := svc.CreateRequest(context.Background(), db, testHospital(), newRequestInput(models.BloodTypeABNeg))
	require.NoError(t, err)
	assert.Zero(t, result.NotifiedDonors)
	assert.NotEmpty(t, result.Request.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequest_RollsBackWhenNotificationsFail(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &recordingNotifier{}
	svc := newFanoutService(notifier)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "blood_requests"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "donor_profiles"`).
		WillReturnRows(sqlmock.NewRows(donorColumns).AddRow("d1", "u1", "Ann", "B+", true, nil))
	mock.ExpectExec(`INSERT INTO "notifications"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := svc.CreateRequest(context.Background(), db, testHospital(), newRequestInput(models.BloodTypeBPos))
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInternalError, appErr.Code)
	assert.Empty(t, notifier.dispatched, "nothing is pushed for a rolled back request")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequest_RejectsBadInputWithoutTouchingDB(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newFanoutService(&recordingNotifier{})

	bad := newRequestInput("C+")
	_, err := svc.CreateRequest(context.Background(), db, testHospital(), bad)
	assert.ErrorIs(t, err, apperrors.ErrInvalidBloodType)

	bad = newRequestInput(models.BloodTypeAPos)
	bad.UnitsNeeded = 21
	_, err = svc.CreateRequest(context.Background(), db, testHospital(), bad)
	require.Error(t, err)

	bad = newRequestInput(models.BloodTypeAPos)
	bad.NeededBy = "next week"
	_, err = svc.CreateRequest(context.Background(), db, testHospital(), bad)
	require.Error(t, err)

	_, err = svc.CreateRequest(context.Background(), db, nil, newRequestInput(models.BloodTypeAPos))
	assert.ErrorIs(t, err, apperrors.ErrProfileRequired)

	require.NoError(t, mock.ExpectationsWereMet())
}

func newStatusService(request *models.BloodRequest, hospitalID string) (*bloodRequestService, *[]models.RequestStatus) {
	var updates []models.RequestStatus
	svc := &bloodRequestService{
		requestRepo: &mockRequestRepo{
			findByID: func(id string) (*models.BloodRequest, error) {
				if request == nil || id != request.ID {
					return nil, repositories.ErrBloodRequestNotFound
				}
				return request, nil
			},
			updateStatus: func(id string, status models.RequestStatus) error {
				updates = append(updates, status)
				return nil
			},
		},
		profileRepo: &mockProfileRepo{
			hospitalByUserID: func(userID string) (*models.HospitalProfile, error) {
				h := &models.HospitalProfile{UserID: userID}
				h.ID = hospitalID
				return h, nil
			},
		},
		clock: fixedClock,
	}
	return svc, &updates
}

func activeRequest() *models.BloodRequest {
	r := &models.BloodRequest{HospitalID: "hospital-1", Status: models.RequestStatusActive, RequestedAt: time.Now()}
	r.ID = "req-1"
	return r
}

func TestUpdateStatus_OwnerCanFulfil(t *testing.T) {
	svc, updates := newStatusService(activeRequest(), "hospital-1")

	err := svc.UpdateStatus(context.Background(), nil, hospitalCaller("hospital-user"), "req-1", models.RequestStatusFulfilled)
	require.NoError(t, err)
	assert.Equal(t, []models.RequestStatus{models.RequestStatusFulfilled}, *updates)
}

func TestUpdateStatus_OtherHospitalForbidden(t *testing.T) {
	svc, updates := newStatusService(activeRequest(), "hospital-2")

	err := svc.UpdateStatus(context.Background(), nil, hospitalCaller("someone-else"), "req-1", models.RequestStatusCancelled)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)
	assert.Empty(t, *updates)
}

func TestUpdateStatus_AdminBypassesOwnership(t *testing.T) {
	svc, updates := newStatusService(activeRequest(), "unused")

	admin := dto.Caller{UserID: "root", Role: models.UserRoleAdmin}
	require.NoError(t, svc.UpdateStatus(context.Background(), nil, admin, "req-1", models.RequestStatusCancelled))
	assert.Len(t, *updates, 1)
}

func TestUpdateStatus_TerminalRequestRejected(t *testing.T) {
	req := activeRequest()
	req.Status = models.RequestStatusCancelled
	svc, updates := newStatusService(req, "hospital-1")

	err := svc.UpdateStatus(context.Background(), nil, hospitalCaller("hospital-user"), "req-1", models.RequestStatusFulfilled)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotActive)
	assert.Empty(t, *updates)
}

func TestUpdateStatus_ConcurrentTransitionLoses(t *testing.T) {
	svc, _ := newStatusService(activeRequest(), "hospital-1")
	svc.requestRepo.(*mockRequestRepo).updateStatus = func(string, models.RequestStatus) error {
		return repositories.ErrRequestNotActive
	}

	err := svc.UpdateStatus(context.Background(), nil, hospitalCaller("hospital-user"), "req-1", models.RequestStatusFulfilled)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotActive)
}

func TestUpdateStatus_ActiveIsNotATarget(t *testing.T) {
	svc, _ := newStatusService(activeRequest(), "hospital-1")

	err := svc.UpdateStatus(context.Background(), nil, hospitalCaller("hospital-user"), "req-1", models.RequestStatusActive)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestUpdateStatus_UnknownRequest(t *testing.T) {
	svc, _ := newStatusService(nil, "hospital-1")

	err := svc.UpdateStatus(context.Background(), nil, hospitalCaller("hospital-user"), "missing", models.RequestStatusFulfilled)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}
