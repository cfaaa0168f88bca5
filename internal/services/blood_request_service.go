package services

import (
	"context"
	"errors"
	"fmt"
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

const (
	hospitalRequestsLimit = 10
	donorRequestsLimit    = 5
)

type BloodRequestService interface {
	// CreateRequest stores the request and one notification per matching donor in a single transaction.
	CreateRequest(ctx context.Context, db *gorm.DB, hospital *models.HospitalProfile, req *dto.CreateBloodRequestRequest) (*dto.CreateRequestResult, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, caller dto.Caller, requestID string, status models.RequestStatus) error
	GetRequest(db *gorm.DB, requestID string) (*dto.BloodRequestResponse, error)
	ListHospitalRequests(db *gorm.DB, hospital *models.HospitalProfile) ([]*dto.BloodRequestResponse, error)
	ListRequestsForDonor(db *gorm.DB, donor *models.DonorProfile) ([]*dto.BloodRequestResponse, error)
	// AuthorizeOwner fails unless caller is an admin or the hospital that posted the request.
	AuthorizeOwner(db *gorm.DB, caller dto.Caller, request *models.BloodRequest) error
}

type bloodRequestService struct {
	requestRepo         repositories.BloodRequestRepository
	profileRepo         repositories.ProfileRepository
	notificationRepo    repositories.NotificationRepository
	notificationService NotificationService
	clock               func() time.Time
}

func NewBloodRequestService(
	requestRepo repositories.BloodRequestRepository,
	profileRepo repositories.ProfileRepository,
	notificationRepo repositories.NotificationRepository,
	notificationService NotificationService,
) BloodRequestService {
	return &bloodRequestService{
		requestRepo:         requestRepo,
		profileRepo:         profileRepo,
		notificationRepo:    notificationRepo,
		notificationService: notificationService,
		clock:               time.Now,
	}
}

func toRequestResponse(r *models.BloodRequest) *dto.BloodRequestResponse {
	return dto.NewBloodRequestResponse(r, algorithms.UrgencyBadge(r.UrgencyLevel), algorithms.UrgencyScore(r.BloodType))
}

// BloodRequestNotification is the message a donor receives about a new request.
func BloodRequestNotification(hospital *models.HospitalProfile, request *models.BloodRequest) (title, message string) {
	title = fmt.Sprintf("Blood Request - %s", request.BloodType)
	message = fmt.Sprintf("%s needs %d units of %s blood. Urgency: %s",
		hospital.HospitalName,
		request.UnitsNeeded,
		request.BloodType,
		algorithms.TitleCase(string(request.UrgencyLevel)),
	)
	return title, message
}

func (s *bloodRequestService) CreateRequest(ctx context.Context, db *gorm.DB, hospital *models.HospitalProfile, req *dto.CreateBloodRequestRequest) (*dto.CreateRequestResult, error) {
	if hospital == nil {
		return nil, apperrors.ErrProfileRequired
	}
	if !req.BloodType.IsValid() {
		return nil, apperrors.ErrInvalidBloodType
	}
	if req.UnitsNeeded < 1 || req.UnitsNeeded > 20 {
		return nil, apperrors.ValidationError(map[string]string{"units_needed": "Must be between 1 and 20"})
	}
	if !req.UrgencyLevel.IsValid() {
		return nil, apperrors.ValidationError(map[string]string{"urgency_level": "Must be one of: low, medium, high, critical"})
	}
	neededBy, err := dto.ParseDate(req.NeededBy)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"needed_by": "Must be formatted as YYYY-MM-DD"})
	}

	request := &models.BloodRequest{
		HospitalID:   hospital.ID,
		BloodType:    req.BloodType,
		UnitsNeeded:  req.UnitsNeeded,
		UrgencyLevel: req.UrgencyLevel,
		Description:  req.Description,
		Status:       models.RequestStatusActive,
		RequestedAt:  s.clock(),
		NeededBy:     neededBy,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.requestRepo.Create(tx, request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// availability is the only gate here; cooldown is not re-checked at fan-out
	targets := algorithms.NotificationTargetTypes(request.BloodType)
	donors, err := s.profileRepo.FindAvailableDonorsByTypes(tx, targets)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	title, message := BloodRequestNotification(hospital, request)
	data := map[string]interface{}{
		"request_id":    request.ID,
		"blood_type":    request.BloodType,
		"urgency_level": request.UrgencyLevel,
	}
	notifications := make([]*models.Notification, 0, len(donors))
	for _, donor := range donors {
		n, err := NewNotification(donor.UserID, title, message, models.NotificationTypeBloodRequest, data)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		notifications = append(notifications, n)
	}

	if err := s.notificationRepo.CreateBulk(tx, notifications); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.BloodRequestsCreated.WithLabelValues(string(request.BloodType), string(request.UrgencyLevel)).Inc()
	metrics.NotificationFanout.Observe(float64(len(notifications)))
	logger.CtxInfo(ctx, "blood request created",
		"request_id", request.ID,
		"blood_type", request.BloodType,
		"urgency", request.UrgencyLevel,
		"notified_donors", len(notifications),
	)

	s.notificationService.Dispatch(ctx, db, notifications)

	request.Hospital = hospital
	return &dto.CreateRequestResult{
		Request:        toRequestResponse(request),
		NotifiedDonors: len(notifications),
	}, nil
}

func (s *bloodRequestService) AuthorizeOwner(db *gorm.DB, caller dto.Caller, request *models.BloodRequest) error {
	if caller.IsAdmin() {
		return nil
	}
	if caller.Role != models.UserRoleHospital {
		return apperrors.ErrInsufficientPermissions
	}
	hospital, err := s.profileRepo.FindHospitalByUserID(db, caller.UserID)
	if err != nil {
		return profileLookupError(err, "hospital")
	}
	if hospital.ID != request.HospitalID {
		return apperrors.NewForbiddenError("Blood request belongs to another hospital")
	}
	return nil
}

func (s *bloodRequestService) findRequest(db *gorm.DB, requestID string) (*models.BloodRequest, error) {
	request, err := s.requestRepo.FindByID(db, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrBloodRequestNotFound) {
			return nil, apperrors.ErrNotFound(err, "blood_request", "Blood request not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return request, nil
}

// UpdateStatus performs the manual active -> fulfilled|cancelled transition.
func (s *bloodRequestService) UpdateStatus(ctx context.Context, db *gorm.DB, caller dto.Caller, requestID string, status models.RequestStatus) error {
	if !status.IsTerminal() {
		return apperrors.ErrInvalidStatus("blood_request", "Status must be fulfilled or cancelled")
	}

	request, err := s.findRequest(db, requestID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeOwner(db, caller, request); err != nil {
		return err
	}
	if request.Status.IsTerminal() {
		return apperrors.ErrRequestNotActive
	}

	if err := s.requestRepo.UpdateStatusFromActive(db, requestID, status); err != nil {
		if errors.Is(err, repositories.ErrRequestNotActive) {
			return apperrors.ErrRequestNotActive
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "blood request status changed", "request_id", requestID, "status", status)
	return nil
}

func (s *bloodRequestService) GetRequest(db *gorm.DB, requestID string) (*dto.BloodRequestResponse, error) {
	request, err := s.requestRepo.FindByIDWithDetails(db, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrBloodRequestNotFound) {
			return nil, apperrors.ErrNotFound(err, "blood_request", "Blood request not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return toRequestResponse(request), nil
}

func (s *bloodRequestService) ListHospitalRequests(db *gorm.DB, hospital *models.HospitalProfile) ([]*dto.BloodRequestResponse, error) {
	requests, err := s.requestRepo.ListByHospital(db, hospital.ID, hospitalRequestsLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.BloodRequestResponse, 0, len(requests))
	for i := range requests {
		requests[i].Hospital = hospital
		out = append(out, toRequestResponse(&requests[i]))
	}
	return out, nil
}

// ListRequestsForDonor shows active requests whose type is in the donor's compatibility row.
func (s *bloodRequestService) ListRequestsForDonor(db *gorm.DB, donor *models.DonorProfile) ([]*dto.BloodRequestResponse, error) {
	types := algorithms.CompatibleDonorTypes(donor.BloodType)
	requests, err := s.requestRepo.ListActiveByTypes(db, types, donorRequestsLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.BloodRequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, toRequestResponse(&requests[i]))
	}
	return out, nil
}
