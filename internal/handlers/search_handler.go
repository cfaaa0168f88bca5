package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/services"
	"bloodbank_backend/internal/services/dto"
)

type SearchHandler struct {
	*BaseHandler
	searchService services.SearchService
}

func NewSearchHandler(base *BaseHandler, searchService services.SearchService) *SearchHandler {
	return &SearchHandler{
		BaseHandler:   base,
		searchService: searchService,
	}
}

func (h *SearchHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/blood-types/:type/compatibility", h.Compatibility)

	search := r.Group("/search")
	search.Use(h.Auth)
	{
		search.GET("/donors", h.SearchDonors)
	}
}

func (h *SearchHandler) SearchDonors(c *gin.Context) {
	var query dto.SearchDonorsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	donors, err := h.searchService.SearchDonors(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donors": donors, "total": len(donors)})
}

// Compatibility needs no authentication.
func (h *SearchHandler) Compatibility(c *gin.Context) {
	resp, err := h.searchService.Compatibility(models.BloodType(c.Param("type")))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
