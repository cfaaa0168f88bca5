package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bloodbank_backend/internal/middleware"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/services"
	"bloodbank_backend/internal/services/dto"
)

// BloodRequestHandler serves hospital requests and donor responses to them.
type BloodRequestHandler struct {
	*BaseHandler
	profileService  services.ProfileService
	requestService  services.BloodRequestService
	responseService services.ResponseService
}

func NewBloodRequestHandler(
	base *BaseHandler,
	profileService services.ProfileService,
	requestService services.BloodRequestService,
	responseService services.ResponseService,
) *BloodRequestHandler {
	return &BloodRequestHandler{
		BaseHandler:     base,
		profileService:  profileService,
		requestService:  requestService,
		responseService: responseService,
	}
}

func (h *BloodRequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	hospital := r.Group("/hospital/requests")
	hospital.Use(h.Auth, middleware.RoleMiddleware(models.UserRoleHospital))
	{
		hospital.POST("", h.CreateRequest)
		hospital.GET("", h.ListHospitalRequests)
	}

	donor := r.Group("/donor/requests")
	donor.Use(h.Auth, middleware.RoleMiddleware(models.UserRoleDonor))
	{
		donor.GET("", h.ListDonorRequests)
	}

	requests := r.Group("/requests")
	requests.Use(h.Auth)
	{
		requests.GET("/:id", h.GetRequest)
		requests.PUT("/:id/status", middleware.RequireRoles(models.UserRoleHospital, models.UserRoleAdmin), h.UpdateStatus)
		requests.GET("/:id/responses", middleware.RequireRoles(models.UserRoleHospital, models.UserRoleAdmin), h.ListResponses)
		requests.POST("/:id/respond/:action", middleware.RoleMiddleware(models.UserRoleDonor), h.Respond)
	}
}

func (h *BloodRequestHandler) CreateRequest(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.CreateBloodRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	hospital, err := h.profileService.RequireHospital(db, caller.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	result, err := h.requestService.CreateRequest(c.Request.Context(), db, hospital, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *BloodRequestHandler) ListHospitalRequests(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	hospital, err := h.profileService.RequireHospital(db, caller.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	requests, err := h.requestService.ListHospitalRequests(db, hospital)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *BloodRequestHandler) ListDonorRequests(c *gin.Context) {
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

	requests, err := h.requestService.ListRequestsForDonor(db, donor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *BloodRequestHandler) GetRequest(c *gin.Context) {
	request, err := h.requestService.GetRequest(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *BloodRequestHandler) UpdateStatus(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.UpdateRequestStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	requestID := c.Param("id")
	if err := h.requestService.UpdateStatus(c.Request.Context(), h.GetDB(c), caller, requestID, req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": requestID, "status": req.Status})
}

func (h *BloodRequestHandler) ListResponses(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	responses, err := h.responseService.ListRequestResponses(h.GetDB(c), caller, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"responses": responses})
}

// Respond answers 201 when a response row was written and 200 for every other outcome.
func (h *BloodRequestHandler) Respond(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.RespondRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	donor, err := h.profileService.RequireDonor(db, caller.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	result, err := h.responseService.Respond(c.Request.Context(), db, donor, c.Param("id"), c.Param("action"), req.Notes)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if result.Response != nil {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}
