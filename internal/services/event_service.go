package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bloodbank_backend/internal/logger"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/repositories"
	"bloodbank_backend/internal/services/dto"
	"bloodbank_backend/pkg/apperrors"
)

const (
	upcomingEventsLimit = 5
	clockLayout         = "15:04"
)

type EventService interface {
	CreateEvent(ctx context.Context, db *gorm.DB, org *models.OrganizationProfile, req *dto.CreateEventRequest) (*models.DonationEvent, error)
	ListUpcomingEvents(db *gorm.DB) ([]models.DonationEvent, error)
	ListOrganizationEvents(db *gorm.DB, org *models.OrganizationProfile) ([]models.DonationEvent, error)
}

type eventService struct {
	eventRepo repositories.EventRepository
	clock     func() time.Time
}

func NewEventService(eventRepo repositories.EventRepository) EventService {
	return &eventService{
		eventRepo: eventRepo,
		clock:     time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, db *gorm.DB, org *models.OrganizationProfile, req *dto.CreateEventRequest) (*models.DonationEvent, error) {
	if org == nil {
		return nil, apperrors.ErrProfileRequired
	}
	date, err := dto.ParseDate(req.EventDate)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"event_date": "Must be formatted as YYYY-MM-DD"})
	}
	start, err := time.Parse(clockLayout, req.StartTime)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"start_time": "Must be formatted as HH:MM"})
	}
	end, err := time.Parse(clockLayout, req.EndTime)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"end_time": "Must be formatted as HH:MM"})
	}
	if !end.After(start) {
		return nil, apperrors.ErrInvalidEventWindow
	}

	event := &models.DonationEvent{
		OrganizationID:  org.ID,
		EventName:       req.EventName,
		Description:     req.Description,
		EventDate:       date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		MaxParticipants: req.MaxParticipants,
		Status:          models.EventStatusUpcoming,
	}
	if err := s.eventRepo.Create(db, event); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "donation event created", "event_id", event.ID, "organization_id", org.ID, "date", req.EventDate)
	event.Organization = org
	return event, nil
}

func (s *eventService) ListUpcomingEvents(db *gorm.DB) ([]models.DonationEvent, error) {
	events, err := s.eventRepo.ListUpcoming(db, s.clock(), upcomingEventsLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return events, nil
}

func (s *eventService) ListOrganizationEvents(db *gorm.DB, org *models.OrganizationProfile) ([]models.DonationEvent, error) {
	events, err := s.eventRepo.ListByOrganization(db, org.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return events, nil
}
