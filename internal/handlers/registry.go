package handlers

import (
	"github.com/gin-gonic/gin"

	"bloodbank_backend/internal/services"
	"bloodbank_backend/internal/validator"
	"bloodbank_backend/ws"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	BloodRequestHandler *BloodRequestHandler
	DonationHandler     *DonationHandler
	NotificationHandler *NotificationHandler
	SearchHandler       *SearchHandler
	AdminHandler        *AdminHandler
	WSHandler           *WSHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator, authMiddleware gin.HandlerFunc, manager *ws.WebSocketManager) *AppHandlers {
	base := NewBaseHandler(v, authMiddleware)
	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, svc.AuthService),
		ProfileHandler:      NewProfileHandler(base, svc.ProfileService),
		BloodRequestHandler: NewBloodRequestHandler(base, svc.ProfileService, svc.BloodRequestService, svc.ResponseService),
		DonationHandler:     NewDonationHandler(base, svc.ProfileService, svc.DonationService, svc.EventService),
		NotificationHandler: NewNotificationHandler(base, svc.NotificationService),
		SearchHandler:       NewSearchHandler(base, svc.SearchService),
		AdminHandler:        NewAdminHandler(base, svc.AdminService),
		WSHandler:           NewWSHandler(base, manager),
	}
}

// RegisterRoutes mounts every handler on the API group.
func (a *AppHandlers) RegisterRoutes(api *gin.RouterGroup) {
	a.AuthHandler.RegisterRoutes(api)
	a.ProfileHandler.RegisterRoutes(api)
	a.BloodRequestHandler.RegisterRoutes(api)
	a.DonationHandler.RegisterRoutes(api)
	a.NotificationHandler.RegisterRoutes(api)
	a.SearchHandler.RegisterRoutes(api)
	a.AdminHandler.RegisterRoutes(api)
	a.WSHandler.RegisterRoutes(api)
}
