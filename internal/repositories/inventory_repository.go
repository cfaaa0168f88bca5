package repositories

import (
	"bloodbank_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	Upsert(db *gorm.DB, item *models.BloodInventory) error
	List(db *gorm.DB) ([]models.BloodInventory, error)
}

type InventoryRepositoryImpl struct{}

func NewInventoryRepository() InventoryRepository {
	return &InventoryRepositoryImpl{}
}

// Upsert keys on (blood_type, location).
func (r *InventoryRepositoryImpl) Upsert(db *gorm.DB, item *models.BloodInventory) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blood_type"}, {Name: "location"}},
		DoUpdates: clause.AssignmentColumns([]string{"units_available", "last_updated", "updated_at"}),
	}).Create(item).Error
}

func (r *InventoryRepositoryImpl) List(db *gorm.DB) ([]models.BloodInventory, error) {
	var items []models.BloodInventory
	err := db.Order("location ASC, blood_type ASC").Find(&items).Error
	return items, err
}
