package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bloodbank_backend/internal/models"
)

func TestInventoryUpsert(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO "blood_inventory" .* ON CONFLICT \("blood_type","location"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewInventoryRepository().Upsert(db, &models.BloodInventory{
		BloodType:      models.BloodTypeABNeg,
		UnitsAvailable: 4,
		Location:       "Central",
		LastUpdated:    time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate_DuplicateKey(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(gorm.ErrDuplicatedKey)

	err := NewUserRepository().Create(db, &models.User{Username: "jo", Email: "jo@x.io", Role: models.UserRoleDonor})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserSetActive_Missing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE "users" SET "is_active"=\$1`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewUserRepository().SetActive(db, "ghost", false)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}
