package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bloodbank_backend/internal/logger"
	"bloodbank_backend/internal/metrics"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/repositories"
	"bloodbank_backend/internal/services/dto"
	"bloodbank_backend/pkg/apperrors"
)

const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

const msgAlreadyResponded = "You have already responded to this request."

type ResponseService interface {
	// Respond records a donor's answer to a blood request. Duplicate and
	// unknown actions are reported through the outcome, never as errors.
	Respond(ctx context.Context, db *gorm.DB, donor *models.DonorProfile, requestID, action, notes string) (*dto.RespondResult, error)
	ListRequestResponses(db *gorm.DB, caller dto.Caller, requestID string) ([]models.BloodRequestResponse, error)
}

type responseService struct {
	responseRepo   repositories.ResponseRepository
	requestRepo    repositories.BloodRequestRepository
	requestService BloodRequestService
	clock          func() time.Time
}

func NewResponseService(
	responseRepo repositories.ResponseRepository,
	requestRepo repositories.BloodRequestRepository,
	requestService BloodRequestService,
) ResponseService {
	return &responseService{
		responseRepo:   responseRepo,
		requestRepo:    requestRepo,
		requestService: requestService,
		clock:          time.Now,
	}
}

func statusForAction(action string) (models.ResponseStatus, bool) {
	switch action {
	case ActionAccept:
		return models.ResponseStatusAccepted, true
	case ActionDecline:
		return models.ResponseStatusDeclined, true
	}
	return "", false
}

func (s *responseService) Respond(ctx context.Context, db *gorm.DB, donor *models.DonorProfile, requestID, action, notes string) (*dto.RespondResult, error) {
	if donor == nil {
		return nil, apperrors.ErrProfileRequired
	}

	if _, err := s.requestRepo.FindByID(db, requestID); err != nil {
		if errors.Is(err, repositories.ErrBloodRequestNotFound) {
			return nil, apperrors.ErrNotFound(err, "blood_request", "Blood request not found")
		}
		return nil, apperrors.InternalError(err)
	}

	status, ok := statusForAction(action)
	if !ok {
		result, err := s.unknownAction(db, donor, requestID)
		if err != nil {
			return nil, err
		}
		s.record(ctx, result.Outcome, requestID, donor.ID)
		return result, nil
	}

	response := &models.BloodRequestResponse{
		RequestID:    requestID,
		DonorID:      donor.ID,
		Status:       status,
		ResponseDate: s.clock(),
		Notes:        notes,
	}
	created, err := s.responseRepo.CreateIfAbsent(db, response)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var result *dto.RespondResult
	if !created {
		result = &dto.RespondResult{Outcome: dto.OutcomeAlreadyResponded, Message: msgAlreadyResponded}
	} else {
		outcome := dto.OutcomeAccepted
		if status == models.ResponseStatusDeclined {
			outcome = dto.OutcomeDeclined
		}
		result = &dto.RespondResult{
			Outcome:  outcome,
			Message:  fmt.Sprintf("You have %s the blood request.", status),
			Response: response,
		}
	}

	s.record(ctx, result.Outcome, requestID, donor.ID)
	return result, nil
}

// unknownAction never writes; it only tells an earlier responder apart.
func (s *responseService) unknownAction(db *gorm.DB, donor *models.DonorProfile, requestID string) (*dto.RespondResult, error) {
	_, err := s.responseRepo.FindByRequestAndDonor(db, requestID, donor.ID)
	switch {
	case err == nil:
		return &dto.RespondResult{Outcome: dto.OutcomeAlreadyResponded, Message: msgAlreadyResponded}, nil
	case errors.Is(err, repositories.ErrResponseNotFound):
		return &dto.RespondResult{Outcome: dto.OutcomeIgnored, Message: "No action taken."}, nil
	default:
		return nil, apperrors.InternalError(err)
	}
}

func (s *responseService) record(ctx context.Context, outcome dto.RespondOutcome, requestID, donorID string) {
	metrics.DonorResponses.WithLabelValues(string(outcome)).Inc()
	logger.CtxInfo(ctx, "donor responded",
		"request_id", requestID,
		"donor_id", donorID,
		"outcome", outcome,
	)
}

func (s *responseService) ListRequestResponses(db *gorm.DB, caller dto.Caller, requestID string) ([]models.BloodRequestResponse, error) {
	request, err := s.requestRepo.FindByID(db, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrBloodRequestNotFound) {
			return nil, apperrors.ErrNotFound(err, "blood_request", "Blood request not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if err := s.requestService.AuthorizeOwner(db, caller, request); err != nil {
		return nil, err
	}

	responses, err := s.responseRepo.ListByRequest(db, requestID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return responses, nil
}
