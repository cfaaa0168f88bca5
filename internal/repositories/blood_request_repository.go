package repositories

import (
	"errors"

	"bloodbank_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBloodRequestNotFound = errors.New("blood request not found")
	// ErrRequestNotActive - a conditional status update matched no active row.
	ErrRequestNotActive = errors.New("blood request is not active")
)

type BloodRequestRepository interface {
	Create(db *gorm.DB, request *models.BloodRequest) error
	FindByID(db *gorm.DB, id string) (*models.BloodRequest, error)
	FindByIDWithDetails(db *gorm.DB, id string) (*models.BloodRequest, error)
	ListByHospital(db *gorm.DB, hospitalID string, limit int) ([]models.BloodRequest, error)
	ListActiveByTypes(db *gorm.DB, types []models.BloodType, limit int) ([]models.BloodRequest, error)
	UpdateStatusFromActive(db *gorm.DB, id string, status models.RequestStatus) error
}

type BloodRequestRepositoryImpl struct{}

func NewBloodRequestRepository() BloodRequestRepository {
	return &BloodRequestRepositoryImpl{}
}

func (r *BloodRequestRepositoryImpl) Create(db *gorm.DB, request *models.BloodRequest) error {
	return db.Create(request).Error
}

func (r *BloodRequestRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.BloodRequest, error) {
	var request models.BloodRequest
	err := db.First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBloodRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindByIDWithDetails also loads the hospital and every response with its donor.
func (r *BloodRequestRepositoryImpl) FindByIDWithDetails(db *gorm.DB, id string) (*models.BloodRequest, error) {
	var request models.BloodRequest
	err := db.Preload("Hospital").
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("response_date ASC")
		}).
		Preload("Responses.Donor").
		First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBloodRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *BloodRequestRepositoryImpl) ListByHospital(db *gorm.DB, hospitalID string, limit int) ([]models.BloodRequest, error) {
	var requests []models.BloodRequest
	err := db.Where("hospital_id = ?", hospitalID).
		Order("requested_at DESC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

func (r *BloodRequestRepositoryImpl) ListActiveByTypes(db *gorm.DB, types []models.BloodType, limit int) ([]models.BloodRequest, error) {
	var requests []models.BloodRequest
	if len(types) == 0 {
		return requests, nil
	}
	err := db.Preload("Hospital").
		Where("status = ? AND blood_type IN ?", models.RequestStatusActive, types).
		Order("requested_at DESC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

// UpdateStatusFromActive moves an active request to status. The WHERE on the current
// status makes concurrent transitions race-free: only one of them matches a row.
func (r *BloodRequestRepositoryImpl) UpdateStatusFromActive(db *gorm.DB, id string, status models.RequestStatus) error {
	result := db.Model(&models.BloodRequest{}).
		Where("id = ? AND status = ?", id, models.RequestStatusActive).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotActive
	}
	return nil
}
