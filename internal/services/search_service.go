package services

import (
	"time"

	"gorm.io/gorm"

	"bloodbank_backend/internal/algorithms"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/repositories"
	"bloodbank_backend/internal/services/dto"
	"bloodbank_backend/pkg/apperrors"
)

type SearchService interface {
	SearchDonors(db *gorm.DB, query *dto.SearchDonorsQuery) ([]*dto.DonorSearchResult, error)
	Compatibility(bloodType models.BloodType) (*dto.CompatibilityResponse, error)
}

type searchService struct {
	profileRepo repositories.ProfileRepository
	clock       func() time.Time
}

func NewSearchService(profileRepo repositories.ProfileRepository) SearchService {
	return &searchService{
		profileRepo: profileRepo,
		clock:       time.Now,
	}
}

func (s *searchService) SearchDonors(db *gorm.DB, query *dto.SearchDonorsQuery) ([]*dto.DonorSearchResult, error) {
	if query.BloodType != "" && !query.BloodType.IsValid() {
		return nil, apperrors.ErrInvalidBloodType
	}
	donors, err := s.profileRepo.SearchDonors(db, repositories.DonorSearchFilter{
		BloodType: query.BloodType,
		City:      query.City,
		State:     query.State,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	today := s.clock()
	results := make([]*dto.DonorSearchResult, 0, len(donors))
	for _, d := range donors {
		results = append(results, &dto.DonorSearchResult{
			ID:          d.ID,
			FullName:    d.FullName,
			BloodType:   d.BloodType,
			City:        d.City,
			State:       d.State,
			Phone:       d.Phone,
			IsAvailable: d.IsAvailable,
			CanDonate:   algorithms.CanDonate(d.LastDonationDate, today),
		})
	}
	return results, nil
}

func (s *searchService) Compatibility(bloodType models.BloodType) (*dto.CompatibilityResponse, error) {
	if !bloodType.IsValid() {
		return nil, apperrors.ErrInvalidBloodType
	}
	return &dto.CompatibilityResponse{
		BloodType:            bloodType,
		CompatibleDonorTypes: algorithms.CompatibleDonorTypes(bloodType),
		UrgencyScore:         algorithms.UrgencyScore(bloodType),
	}, nil
}
