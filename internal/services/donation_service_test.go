package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/services/dto"
	"bloodbank_backend/pkg/apperrors"
)

func newDonationFixture() (*donationService, *mockDonationRepo, *[]time.Time) {
	donations := &mockDonationRepo{}
	var updated []time.Time
	svc := &donationService{
		donationRepo: donations,
		profileRepo: &mockProfileRepo{
			updateLastDonation: func(_ string, date time.Time) error {
				updated = append(updated, date)
				return nil
			},
		},
		clock: fixedClock,
	}
	return svc, donations, &updated
}

func TestRecordDonation_FirstDonation(t *testing.T) {
	db, mock := newMockDB(t)
	svc, donations, updated := newDonationFixture()
	mock.ExpectBegin()
	mock.ExpectCommit()

	donor := testDonor()
	d, err := svc.RecordDonation(context.Background(), db, donor, &dto.RecordDonationRequest{DonationDate: "2024-03-15"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 1, d.UnitsDonated)
	assert.Equal(t, models.BloodTypeOPos, d.BloodType)
	assert.Len(t, donations.created, 1)
	require.Len(t, *updated, 1)
	require.NotNil(t, donor.LastDonationDate)
	assert.Equal(t, "2024-03-15", donor.LastDonationDate.Format(dto.DateLayout))
}

func TestRecordDonation_CooldownBoundary(t *testing.T) {
	last := time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC) // 56 days before 2024-03-15

	t.Run("day 55 rejected", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc, donations, _ := newDonationFixture()
		donor := testDonor()
		donor.LastDonationDate = &last

		_, err := svc.RecordDonation(context.Background(), db, donor, &dto.RecordDonationRequest{DonationDate: "2024-03-14"})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeDonorNotEligible, appErr.Code)
		assert.Equal(t, map[string]string{"next_eligible_date": "2024-03-15"}, appErr.Details)
		assert.Empty(t, donations.created)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("day 56 accepted", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc, donations, _ := newDonationFixture()
		donor := testDonor()
		donor.LastDonationDate = &last
		mock.ExpectBegin()
		mock.ExpectCommit()

		_, err := svc.RecordDonation(context.Background(), db, donor, &dto.RecordDonationRequest{DonationDate: "2024-03-15", UnitsDonated: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, donations.created[0].UnitsDonated)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRecordDonation_FutureDateRejected(t *testing.T) {
	db, _ := newMockDB(t)
	svc, donations, _ := newDonationFixture()

	_, err := svc.RecordDonation(context.Background(), db, testDonor(), &dto.RecordDonationRequest{DonationDate: "2024-03-16"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	assert.Empty(t, donations.created)
}

func TestCreateEvent_EndMustFollowStart(t *testing.T) {
	events := &mockEventRepo{}
	svc := &eventService{eventRepo: events, clock: fixedClock}
	org := &models.OrganizationProfile{OrganizationName: "Red Drop"}
	org.ID = "org-1"

	req := &dto.CreateEventRequest{
		EventName: "Campus drive",
		EventDate: "2024-04-01",
		StartTime: "14:00",
		EndTime:   "09:00",
		Location:  "Hall B",
		Address:   "1 College Rd",
		City:      "Springfield",
		State:     "IL",
	}
	_, err := svc.CreateEvent(context.Background(), nil, org, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidEventWindow)

	req.EndTime = "18:30"
	event, err := svc.CreateEvent(context.Background(), nil, org, req)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusUpcoming, event.Status)
	assert.Equal(t, "org-1", event.OrganizationID)
	assert.Len(t, events.created, 1)
}
