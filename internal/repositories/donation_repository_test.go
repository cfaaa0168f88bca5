package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCompletePast(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository()
	today := time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE "donation_events" SET "status"=\$1,"updated_at"=\$2 WHERE event_date < \$3 AND status IN \(\$4,\$5\)`).
		WithArgs("completed", sqlmock.AnyArg(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "upcoming", "ongoing").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.CompletePast(db, today)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventCompletePast_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository()

	mock.ExpectExec(`UPDATE "donation_events"`).WillReturnError(errors.New("db down"))

	n, err := repo.CompletePast(db, time.Now())
	assert.Error(t, err)
	assert.Zero(t, n)
}

func TestDonationListRecentByDonor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDonationRepository()

	rows := sqlmock.NewRows([]string{"id", "donor_id", "units_donated"}).
		AddRow("d-2", "donor-1", 1).
		AddRow("d-1", "donor-1", 2)
	mock.ExpectQuery(`SELECT \* FROM "donations" WHERE donor_id = \$1 ORDER BY donation_date DESC LIMIT`).
		WillReturnRows(rows)

	donations, err := repo.ListRecentByDonor(db, "donor-1", 5)
	require.NoError(t, err)
	require.Len(t, donations, 2)
	assert.Equal(t, "d-2", donations[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
