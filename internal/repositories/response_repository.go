package repositories

import (
	"errors"

	"bloodbank_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrResponseNotFound = errors.New("response not found")

type ResponseRepository interface {
	CreateIfAbsent(db *gorm.DB, response *models.BloodRequestResponse) (bool, error)
	FindByRequestAndDonor(db *gorm.DB, requestID, donorID string) (*models.BloodRequestResponse, error)
	ListByRequest(db *gorm.DB, requestID string) ([]models.BloodRequestResponse, error)
	CountByRequestAndStatus(db *gorm.DB, requestID string, status models.ResponseStatus) (int64, error)
}

type ResponseRepositoryImpl struct{}

func NewResponseRepository() ResponseRepository {
	return &ResponseRepositoryImpl{}
}

// CreateIfAbsent inserts the response unless (request_id, donor_id) already exists.
// created is false when a row was already there; the existing row is left untouched.
func (r *ResponseRepositoryImpl) CreateIfAbsent(db *gorm.DB, response *models.BloodRequestResponse) (bool, error) {
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "request_id"}, {Name: "donor_id"}},
		DoNothing: true,
	}).Create(response)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ResponseRepositoryImpl) FindByRequestAndDonor(db *gorm.DB, requestID, donorID string) (*models.BloodRequestResponse, error) {
	var response models.BloodRequestResponse
	err := db.First(&response, "request_id = ? AND donor_id = ?", requestID, donorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}
	return &response, nil
}

func (r *ResponseRepositoryImpl) ListByRequest(db *gorm.DB, requestID string) ([]models.BloodRequestResponse, error) {
	var responses []models.BloodRequestResponse
	err := db.Preload("Donor").
		Where("request_id = ?", requestID).
		Order("response_date ASC").
		Find(&responses).Error
	return responses, err
}

func (r *ResponseRepositoryImpl) CountByRequestAndStatus(db *gorm.DB, requestID string, status models.ResponseStatus) (int64, error) {
	var count int64
	err := db.Model(&models.BloodRequestResponse{}).
		Where("request_id = ? AND status = ?", requestID, status).
		Count(&count).Error
	return count, err
}
