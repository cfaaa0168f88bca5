package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bloodbank_backend/internal/middleware"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/services"
	"bloodbank_backend/internal/services/dto"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(h.Auth, middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id/toggle", h.ToggleUserStatus)
		admin.GET("/blood-type-distribution", h.BloodTypeDistribution)
		admin.GET("/inventory", h.ListInventory)
		admin.PUT("/inventory", h.SetInventory)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsersByRole(h.GetDB(c), models.UserRole(c.Query("role")))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

func (h *AdminHandler) ToggleUserStatus(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	userID := c.Param("id")
	active, err := h.adminService.ToggleUserStatus(c.Request.Context(), h.GetDB(c), caller, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": userID, "is_active": active})
}

func (h *AdminHandler) BloodTypeDistribution(c *gin.Context) {
	dist, err := h.adminService.BloodTypeDistribution(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"distribution": dist})
}

func (h *AdminHandler) ListInventory(c *gin.Context) {
	items, err := h.adminService.ListInventory(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"inventory": items})
}

func (h *AdminHandler) SetInventory(c *gin.Context) {
	var req dto.SetInventoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.adminService.SetInventory(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}
