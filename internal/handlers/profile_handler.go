package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bloodbank_backend/internal/middleware"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/services"
	"bloodbank_backend/internal/services/dto"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	donor := r.Group("/donor/profile")
	donor.Use(h.Auth, middleware.RoleMiddleware(models.UserRoleDonor))
	{
		donor.GET("", h.GetDonorProfile)
		donor.PUT("", h.UpsertDonorProfile)
	}

	hospital := r.Group("/hospital/profile")
	hospital.Use(h.Auth, middleware.RoleMiddleware(models.UserRoleHospital))
	{
		hospital.GET("", h.GetHospitalProfile)
		hospital.PUT("", h.UpsertHospitalProfile)
	}

	org := r.Group("/organization/profile")
	org.Use(h.Auth, middleware.RoleMiddleware(models.UserRoleOrganization))
	{
		org.GET("", h.GetOrganizationProfile)
		org.PUT("", h.UpsertOrganizationProfile)
	}
}

func (h *ProfileHandler) GetDonorProfile(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetDonorProfile(h.GetDB(c), caller.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpsertDonorProfile(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.DonorProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpsertDonorProfile(h.GetDB(c), caller.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetHospitalProfile(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetHospitalProfile(h.GetDB(c), caller.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpsertHospitalProfile(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.HospitalProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpsertHospitalProfile(h.GetDB(c), caller.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetOrganizationProfile(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetOrganizationProfile(h.GetDB(c), caller.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpsertOrganizationProfile(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.OrganizationProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpsertOrganizationProfile(h.GetDB(c), caller.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
