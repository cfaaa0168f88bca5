package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodbank_backend/internal/models"
)

func TestBloodRequestFindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBloodRequestRepository()

	mock.ExpectQuery(`SELECT \* FROM "blood_requests" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req, err := repo.FindByID(db, "missing")
	assert.Nil(t, req)
	assert.ErrorIs(t, err, ErrBloodRequestNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBloodRequestFindByID_Found(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBloodRequestRepository()

	rows := sqlmock.NewRows([]string{"id", "hospital_id", "blood_type", "units_needed", "urgency_level", "status"}).
		AddRow("req-1", "hosp-1", "B-", 3, "high", "active")
	mock.ExpectQuery(`SELECT \* FROM "blood_requests"`).WillReturnRows(rows)

	req, err := repo.FindByID(db, "req-1")
	require.NoError(t, err)
	assert.Equal(t, models.BloodTypeBNeg, req.BloodType)
	assert.Equal(t, 3, req.UnitsNeeded)
	assert.Equal(t, models.RequestStatusActive, req.Status)
}

func TestUpdateStatusFromActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBloodRequestRepository()

	mock.ExpectExec(`UPDATE "blood_requests" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatusFromActive(db, "req-1", models.RequestStatusFulfilled))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusFromActive_NotActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBloodRequestRepository()

	mock.ExpectExec(`UPDATE "blood_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatusFromActive(db, "req-1", models.RequestStatusCancelled)
	assert.ErrorIs(t, err, ErrRequestNotActive)
}

func TestListActiveByTypes_EmptyTypesSkipsQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBloodRequestRepository()

	requests, err := repo.ListActiveByTypes(db, nil, 5)
	require.NoError(t, err)
	assert.Empty(t, requests)
	require.NoError(t, mock.ExpectationsWereMet())
}
