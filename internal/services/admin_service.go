package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"bloodbank_backend/internal/logger"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/repositories"
	"bloodbank_backend/internal/services/dto"
	"bloodbank_backend/pkg/apperrors"
)

type AdminService interface {
	ListUsersByRole(db *gorm.DB, role models.UserRole) ([]*dto.UserResponse, error)
	// ToggleUserStatus flips is_active and returns the new value.
	ToggleUserStatus(ctx context.Context, db *gorm.DB, caller dto.Caller, userID string) (bool, error)
	BloodTypeDistribution(db *gorm.DB) ([]dto.BloodTypeCount, error)
	SetInventory(ctx context.Context, db *gorm.DB, req *dto.SetInventoryRequest) (*models.BloodInventory, error)
	ListInventory(db *gorm.DB) ([]models.BloodInventory, error)
}

type adminService struct {
	userRepo      repositories.UserRepository
	profileRepo   repositories.ProfileRepository
	inventoryRepo repositories.InventoryRepository
	clock         func() time.Time
}

func NewAdminService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	inventoryRepo repositories.InventoryRepository,
) AdminService {
	return &adminService{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		inventoryRepo: inventoryRepo,
		clock:         time.Now,
	}
}

func (s *adminService) ListUsersByRole(db *gorm.DB, role models.UserRole) ([]*dto.UserResponse, error) {
	switch role {
	case "", models.UserRoleDonor, models.UserRoleHospital, models.UserRoleOrganization, models.UserRoleAdmin:
	default:
		return nil, apperrors.ValidationError(map[string]string{"role": "Unknown role"})
	}

	users, err := s.userRepo.FindByRole(db, role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return out, nil
}

func (s *adminService) ToggleUserStatus(ctx context.Context, db *gorm.DB, caller dto.Caller, userID string) (bool, error) {
	if caller.UserID == userID {
		return false, apperrors.ErrCannotModifySelf
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return false, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return false, apperrors.InternalError(err)
	}

	active := !user.IsActive
	if err := s.userRepo.SetActive(db, userID, active); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return false, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return false, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user status toggled", "user_id", userID, "is_active", active, "by", caller.UserID)
	return active, nil
}

// BloodTypeDistribution counts donors per blood type, zero-filled in the fixed type order.
func (s *adminService) BloodTypeDistribution(db *gorm.DB) ([]dto.BloodTypeCount, error) {
	counts, err := s.profileRepo.CountDonorsByBloodType(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	byType := make(map[models.BloodType]int64, len(counts))
	for _, c := range counts {
		byType[c.BloodType] = c.Count
	}

	out := make([]dto.BloodTypeCount, 0, len(models.AllBloodTypes))
	for _, bt := range models.AllBloodTypes {
		out = append(out, dto.BloodTypeCount{BloodType: bt, Count: byType[bt]})
	}
	return out, nil
}

func (s *adminService) SetInventory(ctx context.Context, db *gorm.DB, req *dto.SetInventoryRequest) (*models.BloodInventory, error) {
	if !req.BloodType.IsValid() {
		return nil, apperrors.ErrInvalidBloodType
	}
	if req.UnitsAvailable < 0 {
		return nil, apperrors.ValidationError(map[string]string{"units_available": "Must be 0 or greater"})
	}

	item := &models.BloodInventory{
		BloodType:      req.BloodType,
		Location:       req.Location,
		UnitsAvailable: req.UnitsAvailable,
		LastUpdated:    s.clock(),
	}
	if err := s.inventoryRepo.Upsert(db, item); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "inventory updated", "blood_type", item.BloodType, "location", item.Location, "units", item.UnitsAvailable)
	return item, nil
}

func (s *adminService) ListInventory(db *gorm.DB) ([]models.BloodInventory, error) {
	items, err := s.inventoryRepo.List(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return items, nil
}
