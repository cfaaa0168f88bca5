package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bloodbank_backend/internal/algorithms"
	"bloodbank_backend/internal/logger"
	"bloodbank_backend/internal/metrics"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/repositories"
	"bloodbank_backend/internal/services/dto"
	"bloodbank_backend/pkg/apperrors"
)

const recentDonationsLimit = 5

type DonationService interface {
	RecordDonation(ctx context.Context, db *gorm.DB, donor *models.DonorProfile, req *dto.RecordDonationRequest) (*models.Donation, error)
	ListRecentDonations(db *gorm.DB, donor *models.DonorProfile) ([]models.Donation, error)
}

type donationService struct {
	donationRepo repositories.DonationRepository
	profileRepo  repositories.ProfileRepository
	clock        func() time.Time
}

func NewDonationService(donationRepo repositories.DonationRepository, profileRepo repositories.ProfileRepository) DonationService {
	return &donationService{
		donationRepo: donationRepo,
		profileRepo:  profileRepo,
		clock:        time.Now,
	}
}

// RecordDonation stores a donation and moves the donor's last donation date,
// unless the donor is still inside the cooldown window on that date.
func (s *donationService) RecordDonation(ctx context.Context, db *gorm.DB, donor *models.DonorProfile, req *dto.RecordDonationRequest) (*models.Donation, error) {
	if donor == nil {
		return nil, apperrors.ErrProfileRequired
	}
	date, err := dto.ParseDate(req.DonationDate)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"donation_date": "Must be formatted as YYYY-MM-DD"})
	}
	if date.After(models.DateOnly(s.clock())) {
		return nil, apperrors.ValidationError(map[string]string{"donation_date": "Cannot be in the future"})
	}
	if !algorithms.CanDonate(donor.LastDonationDate, date) {
		next := algorithms.NextEligibleDate(donor.LastDonationDate, date)
		return nil, apperrors.ErrDonorNotEligible.WithDetails(map[string]string{
			"next_eligible_date": next.Format(dto.DateLayout),
		})
	}

	units := req.UnitsDonated
	if units == 0 {
		units = 1
	}
	donation := &models.Donation{
		DonorID:      donor.ID,
		DonationDate: date,
		BloodType:    donor.BloodType,
		UnitsDonated: units,
		Location:     req.Location,
		Notes:        req.Notes,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.donationRepo.Create(tx, donation); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.profileRepo.UpdateLastDonationDate(tx, donor.ID, date); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	donor.LastDonationDate = &date
	metrics.DonationsRecorded.Inc()
	logger.CtxInfo(ctx, "donation recorded", "donor_id", donor.ID, "date", req.DonationDate, "units", units)
	return donation, nil
}

func (s *donationService) ListRecentDonations(db *gorm.DB, donor *models.DonorProfile) ([]models.Donation, error) {
	donations, err := s.donationRepo.ListRecentByDonor(db, donor.ID, recentDonationsLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return donations, nil
}
