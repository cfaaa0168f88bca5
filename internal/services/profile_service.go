package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"bloodbank_backend/internal/algorithms"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/repositories"
	"bloodbank_backend/internal/services/dto"
	"bloodbank_backend/pkg/apperrors"
)

type ProfileService interface {
	// Require* resolve the caller's profile or fail with PROFILE_REQUIRED.
	RequireDonor(db *gorm.DB, userID string) (*models.DonorProfile, error)
	RequireHospital(db *gorm.DB, userID string) (*models.HospitalProfile, error)
	RequireOrganization(db *gorm.DB, userID string) (*models.OrganizationProfile, error)

	GetDonorProfile(db *gorm.DB, userID string) (*dto.DonorProfileResponse, error)
	UpsertDonorProfile(db *gorm.DB, userID string, req *dto.DonorProfileRequest) (*dto.DonorProfileResponse, error)
	GetHospitalProfile(db *gorm.DB, userID string) (*models.HospitalProfile, error)
	UpsertHospitalProfile(db *gorm.DB, userID string, req *dto.HospitalProfileRequest) (*models.HospitalProfile, error)
	GetOrganizationProfile(db *gorm.DB, userID string) (*models.OrganizationProfile, error)
	UpsertOrganizationProfile(db *gorm.DB, userID string, req *dto.OrganizationProfileRequest) (*models.OrganizationProfile, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	clock       func() time.Time
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		clock:       time.Now,
	}
}

func profileLookupError(err error, role string) error {
	if errors.Is(err, repositories.ErrProfileNotFound) {
		return apperrors.ErrProfileRequired.WithDetails(map[string]string{"profile": role})
	}
	return apperrors.InternalError(err)
}

func (s *profileService) RequireDonor(db *gorm.DB, userID string) (*models.DonorProfile, error) {
	p, err := s.profileRepo.FindDonorByUserID(db, userID)
	if err != nil {
		return nil, profileLookupError(err, "donor")
	}
	return p, nil
}

func (s *profileService) RequireHospital(db *gorm.DB, userID string) (*models.HospitalProfile, error) {
	p, err := s.profileRepo.FindHospitalByUserID(db, userID)
	if err != nil {
		return nil, profileLookupError(err, "hospital")
	}
	return p, nil
}

func (s *profileService) RequireOrganization(db *gorm.DB, userID string) (*models.OrganizationProfile, error) {
	p, err := s.profileRepo.FindOrganizationByUserID(db, userID)
	if err != nil {
		return nil, profileLookupError(err, "organization")
	}
	return p, nil
}

// --- Donor ---

// DonorView derives age and eligibility for today.
func DonorView(p *models.DonorProfile, today time.Time) *dto.DonorProfileResponse {
	return &dto.DonorProfileResponse{
		DonorProfile:     p,
		Age:              algorithms.Age(p.DateOfBirth, today),
		CanDonate:        algorithms.CanDonate(p.LastDonationDate, today),
		NextEligibleDate: algorithms.NextEligibleDate(p.LastDonationDate, today),
		UrgencyScore:     algorithms.UrgencyScore(p.BloodType),
	}
}

func (s *profileService) GetDonorProfile(db *gorm.DB, userID string) (*dto.DonorProfileResponse, error) {
	p, err := s.RequireDonor(db, userID)
	if err != nil {
		return nil, err
	}
	return DonorView(p, s.clock()), nil
}

func (s *profileService) UpsertDonorProfile(db *gorm.DB, userID string, req *dto.DonorProfileRequest) (*dto.DonorProfileResponse, error) {
	if !req.BloodType.IsValid() {
		return nil, apperrors.ErrInvalidBloodType
	}
	dob, err := dto.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"date_of_birth": "Must be formatted as YYYY-MM-DD"})
	}
	if dob.After(s.clock()) {
		return nil, apperrors.ValidationError(map[string]string{"date_of_birth": "Must not be in the future"})
	}

	p, err := s.profileRepo.FindDonorByUserID(db, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}
		p = &models.DonorProfile{UserID: userID, IsAvailable: true}
	}

	p.FullName = req.FullName
	p.BloodType = req.BloodType
	p.Phone = req.Phone
	p.Address = req.Address
	p.City = req.City
	p.State = req.State
	p.ZipCode = req.ZipCode
	p.DateOfBirth = dob
	p.MedicalConditions = req.MedicalConditions
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}

	if err := s.profileRepo.SaveDonor(db, p); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return DonorView(p, s.clock()), nil
}

// --- Hospital ---

func (s *profileService) GetHospitalProfile(db *gorm.DB, userID string) (*models.HospitalProfile, error) {
	return s.RequireHospital(db, userID)
}

func (s *profileService) UpsertHospitalProfile(db *gorm.DB, userID string, req *dto.HospitalProfileRequest) (*models.HospitalProfile, error) {
	p, err := s.profileRepo.FindHospitalByUserID(db, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}
		p = &models.HospitalProfile{UserID: userID}
	}

	p.HospitalName = req.HospitalName
	p.LicenseNumber = req.LicenseNumber
	p.ContactPerson = req.ContactPerson
	p.Phone = req.Phone
	p.Address = req.Address
	p.City = req.City
	p.State = req.State
	p.ZipCode = req.ZipCode

	if err := s.profileRepo.SaveHospital(db, p); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return p, nil
}

// --- Organization ---

func (s *profileService) GetOrganizationProfile(db *gorm.DB, userID string) (*models.OrganizationProfile, error) {
	return s.RequireOrganization(db, userID)
}

func (s *profileService) UpsertOrganizationProfile(db *gorm.DB, userID string, req *dto.OrganizationProfileRequest) (*models.OrganizationProfile, error) {
	p, err := s.profileRepo.FindOrganizationByUserID(db, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}
		p = &models.OrganizationProfile{UserID: userID}
	}

	p.OrganizationName = req.OrganizationName
	p.RegistrationNumber = req.RegistrationNumber
	p.ContactPerson = req.ContactPerson
	p.Phone = req.Phone
	p.Address = req.Address
	p.City = req.City
	p.State = req.State
	p.ZipCode = req.ZipCode

	if err := s.profileRepo.SaveOrganization(db, p); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return p, nil
}
