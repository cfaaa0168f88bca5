package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodbank_backend/internal/models"
)

func newResponse() *models.BloodRequestResponse {
	return &models.BloodRequestResponse{
		RequestID:    "11111111-1111-1111-1111-111111111111",
		DonorID:      "22222222-2222-2222-2222-222222222222",
		Status:       models.ResponseStatusAccepted,
		ResponseDate: time.Now(),
	}
}

func TestCreateIfAbsent_Inserted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResponseRepository()

	mock.ExpectExec(`INSERT INTO "blood_request_responses" .* ON CONFLICT \("request_id","donor_id"\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp := newResponse()
	created, err := repo.CreateIfAbsent(db, resp)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, resp.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIfAbsent_AlreadyThere(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResponseRepository()

	mock.ExpectExec(`INSERT INTO "blood_request_responses"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.CreateIfAbsent(db, newResponse())
	require.NoError(t, err)
	assert.False(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIfAbsent_PropagatesError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResponseRepository()

	mock.ExpectExec(`INSERT INTO "blood_request_responses"`).
		WillReturnError(errors.New("connection reset"))

	created, err := repo.CreateIfAbsent(db, newResponse())
	assert.EqualError(t, err, "connection reset")
	assert.False(t, created)
}
