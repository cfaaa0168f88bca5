package repositories

import (
	"errors"
	"time"

	"bloodbank_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// DonorSearchFilter - empty fields are not applied.
type DonorSearchFilter struct {
	BloodType models.BloodType
	City      string
	State     string
}

type BloodTypeCount struct {
	BloodType models.BloodType
	Count     int64
}

type ProfileRepository interface {
	// Donor
	FindDonorByUserID(db *gorm.DB, userID string) (*models.DonorProfile, error)
	FindDonorByID(db *gorm.DB, id string) (*models.DonorProfile, error)
	SaveDonor(db *gorm.DB, profile *models.DonorProfile) error
	FindAvailableDonorsByTypes(db *gorm.DB, types []models.BloodType) ([]models.DonorProfile, error)
	SearchDonors(db *gorm.DB, filter DonorSearchFilter) ([]models.DonorProfile, error)
	UpdateLastDonationDate(db *gorm.DB, donorID string, date time.Time) error
	CountDonorsByBloodType(db *gorm.DB) ([]BloodTypeCount, error)

	// Hospital
	FindHospitalByUserID(db *gorm.DB, userID string) (*models.HospitalProfile, error)
	FindHospitalByID(db *gorm.DB, id string) (*models.HospitalProfile, error)
	SaveHospital(db *gorm.DB, profile *models.HospitalProfile) error

	// Organization
	FindOrganizationByUserID(db *gorm.DB, userID string) (*models.OrganizationProfile, error)
	SaveOrganization(db *gorm.DB, profile *models.OrganizationProfile) error
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func notFoundAsProfile(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProfileNotFound
	}
	return err
}

// save inserts profiles without an id and updates all columns otherwise.
func save(db *gorm.DB, id string, value interface{}) error {
	if id == "" {
		return db.Create(value).Error
	}
	return db.Save(value).Error
}

// --- Donor ---

func (r *ProfileRepositoryImpl) FindDonorByUserID(db *gorm.DB, userID string) (*models.DonorProfile, error) {
	var profile models.DonorProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, notFoundAsProfile(err)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindDonorByID(db *gorm.DB, id string) (*models.DonorProfile, error) {
	var profile models.DonorProfile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, notFoundAsProfile(err)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) SaveDonor(db *gorm.DB, profile *models.DonorProfile) error {
	return save(db, profile.ID, profile)
}

// FindAvailableDonorsByTypes is the fan-out query: blood type in types and available.
// Cooldown is not checked here.
func (r *ProfileRepositoryImpl) FindAvailableDonorsByTypes(db *gorm.DB, types []models.BloodType) ([]models.DonorProfile, error) {
	var donors []models.DonorProfile
	if len(types) == 0 {
		return donors, nil
	}
	err := db.Where("blood_type IN ? AND is_available = ?", types, true).
		Find(&donors).Error
	return donors, err
}

func (r *ProfileRepositoryImpl) SearchDonors(db *gorm.DB, filter DonorSearchFilter) ([]models.DonorProfile, error) {
	var donors []models.DonorProfile
	query := db.Model(&models.DonorProfile{}).
		Joins("JOIN users ON users.id = donor_profiles.user_id").
		Where("users.is_active = ?", true)

	if filter.BloodType != "" {
		query = query.Where("donor_profiles.blood_type = ?", filter.BloodType)
	}
	if filter.City != "" {
		query = query.Where("donor_profiles.city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.State != "" {
		query = query.Where("donor_profiles.state ILIKE ?", "%"+filter.State+"%")
	}

	err := query.Order("donor_profiles.full_name ASC").Find(&donors).Error
	return donors, err
}

func (r *ProfileRepositoryImpl) UpdateLastDonationDate(db *gorm.DB, donorID string, date time.Time) error {
	result := db.Model(&models.DonorProfile{}).
		Where("id = ?", donorID).
		Update("last_donation_date", date)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) CountDonorsByBloodType(db *gorm.DB) ([]BloodTypeCount, error) {
	var counts []BloodTypeCount
	err := db.Model(&models.DonorProfile{}).
		Select("blood_type, COUNT(*) AS count").
		Group("blood_type").
		Scan(&counts).Error
	return counts, err
}

// --- Hospital ---

func (r *ProfileRepositoryImpl) FindHospitalByUserID(db *gorm.DB, userID string) (*models.HospitalProfile, error) {
	var profile models.HospitalProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, notFoundAsProfile(err)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindHospitalByID(db *gorm.DB, id string) (*models.HospitalProfile, error) {
	var profile models.HospitalProfile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, notFoundAsProfile(err)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) SaveHospital(db *gorm.DB, profile *models.HospitalProfile) error {
	return save(db, profile.ID, profile)
}

// --- Organization ---

func (r *ProfileRepositoryImpl) FindOrganizationByUserID(db *gorm.DB, userID string) (*models.OrganizationProfile, error) {
	var profile models.OrganizationProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, notFoundAsProfile(err)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) SaveOrganization(db *gorm.DB, profile *models.OrganizationProfile) error {
	return save(db, profile.ID, profile)
}
