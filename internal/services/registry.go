package services

import (
	"bloodbank_backend/internal/auth"
	"bloodbank_backend/internal/email"
	"bloodbank_backend/internal/repositories"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	BloodRequestService BloodRequestService
	ResponseService     ResponseService
	DonationService     DonationService
	EventService        EventService
	NotificationService NotificationService
	SearchService       SearchService
	AdminService        AdminService
	EmailService        email.Provider
}

// NewServiceContainer wires the services over the stateless repositories.
func NewServiceContainer(tokens *auth.TokenManager, publisher RealtimePublisher, mailer email.Provider, mailEnabled bool) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	requestRepo := repositories.NewBloodRequestRepository()
	responseRepo := repositories.NewResponseRepository()
	donationRepo := repositories.NewDonationRepository()
	eventRepo := repositories.NewEventRepository()
	inventoryRepo := repositories.NewInventoryRepository()
	notificationRepo := repositories.NewNotificationRepository()

	notificationService := NewNotificationService(notificationRepo, userRepo, publisher, mailer, mailEnabled)
	requestService := NewBloodRequestService(requestRepo, profileRepo, notificationRepo, notificationService)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, tokens),
		ProfileService:      NewProfileService(profileRepo),
		BloodRequestService: requestService,
		ResponseService:     NewResponseService(responseRepo, requestRepo, requestService),
		DonationService:     NewDonationService(donationRepo, profileRepo),
		EventService:        NewEventService(eventRepo),
		NotificationService: notificationService,
		SearchService:       NewSearchService(profileRepo),
		AdminService:        NewAdminService(userRepo, profileRepo, inventoryRepo),
		EmailService:        mailer,
	}
}
