package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bloodbank_backend/internal/middleware"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/services"
	"bloodbank_backend/internal/services/dto"
)

// DonationHandler covers donor donations and organization donation events.
type DonationHandler struct {
	*BaseHandler
	profileService  services.ProfileService
	donationService services.DonationService
	eventService    services.EventService
}

func NewDonationHandler(
	base *BaseHandler,
	profileService services.ProfileService,
	donationService services.DonationService,
	eventService services.EventService,
) *DonationHandler {
	return &DonationHandler{
		BaseHandler:     base,
		profileService:  profileService,
		donationService: donationService,
		eventService:    eventService,
	}
}

func (h *DonationHandler) RegisterRoutes(r *gin.RouterGroup) {
	donations := r.Group("/donor/donations")
	donations.Use(h.Auth, middleware.RoleMiddleware(models.UserRoleDonor))
	{
		donations.POST("", h.RecordDonation)
		donations.GET("", h.ListDonations)
	}

	orgEvents := r.Group("/organization/events")
	orgEvents.Use(h.Auth, middleware.RoleMiddleware(models.UserRoleOrganization))
	{
		orgEvents.POST("", h.CreateEvent)
		orgEvents.GET("", h.ListOrganizationEvents)
	}

	events := r.Group("/events")
	events.Use(h.Auth)
	{
		events.GET("/upcoming", h.ListUpcomingEvents)
	}
}

func (h *DonationHandler) RecordDonation(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.RecordDonationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	donor, err := h.profileService.RequireDonor(db, caller.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	donation, err := h.donationService.RecordDonation(c.Request.Context(), db, donor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, donation)
}

func (h *DonationHandler) ListDonations(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	donor, err := h.profileService.RequireDonor(db, caller.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	donations, err := h.donationService.ListRecentDonations(db, donor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donations": donations})
}

func (h *DonationHandler) CreateEvent(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	org, err := h.profileService.RequireOrganization(db, caller.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), db, org, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *DonationHandler) ListOrganizationEvents(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	org, err := h.profileService.RequireOrganization(db, caller.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	events, err := h.eventService.ListOrganizationEvents(db, org)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *DonationHandler) ListUpcomingEvents(c *gin.Context) {
	events, err := h.eventService.ListUpcomingEvents(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
