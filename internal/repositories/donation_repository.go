package repositories

import (
	"time"

	"bloodbank_backend/internal/models"

	"gorm.io/gorm"
)

type DonationRepository interface {
	Create(db *gorm.DB, donation *models.Donation) error
	ListRecentByDonor(db *gorm.DB, donorID string, limit int) ([]models.Donation, error)
	CountByDonor(db *gorm.DB, donorID string) (int64, error)
}

type DonationRepositoryImpl struct{}

func NewDonationRepository() DonationRepository {
	return &DonationRepositoryImpl{}
}

func (r *DonationRepositoryImpl) Create(db *gorm.DB, donation *models.Donation) error {
	return db.Create(donation).Error
}

func (r *DonationRepositoryImpl) ListRecentByDonor(db *gorm.DB, donorID string, limit int) ([]models.Donation, error) {
	var donations []models.Donation
	err := db.Where("donor_id = ?", donorID).
		Order("donation_date DESC").
		Limit(limit).
		Find(&donations).Error
	return donations, err
}

func (r *DonationRepositoryImpl) CountByDonor(db *gorm.DB, donorID string) (int64, error) {
	var count int64
	err := db.Model(&models.Donation{}).Where("donor_id = ?", donorID).Count(&count).Error
	return count, err
}

type EventRepository interface {
	Create(db *gorm.DB, event *models.DonationEvent) error
	ListUpcoming(db *gorm.DB, today time.Time, limit int) ([]models.DonationEvent, error)
	ListByOrganization(db *gorm.DB, organizationID string) ([]models.DonationEvent, error)
	CompletePast(db *gorm.DB, today time.Time) (int64, error)
}

type EventRepositoryImpl struct{}

func NewEventRepository() EventRepository {
	return &EventRepositoryImpl{}
}

func (r *EventRepositoryImpl) Create(db *gorm.DB, event *models.DonationEvent) error {
	return db.Create(event).Error
}

// ListUpcoming returns events dated today or later still in "upcoming" status, soonest first.
func (r *EventRepositoryImpl) ListUpcoming(db *gorm.DB, today time.Time, limit int) ([]models.DonationEvent, error) {
	var events []models.DonationEvent
	err := db.Preload("Organization").
		Where("event_date >= ? AND status = ?", models.DateOnly(today), models.EventStatusUpcoming).
		Order("event_date ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *EventRepositoryImpl) ListByOrganization(db *gorm.DB, organizationID string) ([]models.DonationEvent, error) {
	var events []models.DonationEvent
	err := db.Where("organization_id = ?", organizationID).
		Order("event_date DESC").
		Find(&events).Error
	return events, err
}

// CompletePast moves upcoming and ongoing events dated before today to completed.
func (r *EventRepositoryImpl) CompletePast(db *gorm.DB, today time.Time) (int64, error) {
	result := db.Model(&models.DonationEvent{}).
		Where("event_date < ? AND status IN ?", models.DateOnly(today),
			[]models.EventStatus{models.EventStatusUpcoming, models.EventStatusOngoing}).
		Update("status", models.EventStatusCompleted)
	return result.RowsAffected, result.Error
}
