package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"

	"bloodbank_backend/internal/logger"
	"bloodbank_backend/internal/middleware"
	"bloodbank_backend/internal/services/dto"
	"bloodbank_backend/internal/validator"
	"bloodbank_backend/pkg/apperrors"
	"bloodbank_backend/pkg/contextkeys"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// BaseHandler carries what every handler needs: validation and the auth guard.
type BaseHandler struct {
	validator *validator.Validator
	Auth      gin.HandlerFunc
}

func NewBaseHandler(v *validator.Validator, authMiddleware gin.HandlerFunc) *BaseHandler {
	return &BaseHandler{
		validator: v,
		Auth:      authMiddleware,
	}
}

// GetDB returns the request-scoped *gorm.DB set by DBMiddleware.
// A missing value is a wiring bug, so it panics and gin.Recovery answers 500.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	val, _ := c.Get(string(contextkeys.DBContextKey))
	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "DBMiddleware missing from chain", "type", fmt.Sprintf("%T", val))
		panic("handlers: no *gorm.DB in gin context")
	}
	return db
}

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	return h.bind(c, obj, binding.JSON, "Invalid request body")
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	return h.bind(c, obj, binding.Query, "Invalid query parameters")
}

// bind decodes with b and then runs the domain validator. gin's own struct
// validation is not used; DTOs carry `validate` tags, not `binding` tags.
func (h *BaseHandler) bind(c *gin.Context, obj interface{}, b binding.Binding, badInput string) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindWith(obj, b); err != nil {
		logger.CtxWarn(ctx, badInput, "error", err.Error(), "path", c.FullPath())
		apperrors.HandleError(c, apperrors.NewBadRequestError(badInput+": "+err.Error()))
		return false
	}

	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}
	if vErr, ok := err.(*validator.ValidationError); ok {
		logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.FullPath())
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		return false
	}
	logger.CtxWithError(ctx, "Validator misconfigured", err, "path", c.FullPath())
	apperrors.HandleError(c, apperrors.InternalError(err))
	return false
}

// HandleServiceError logs err at a level matching its status and writes the response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(ctx, "Request failed", err, "path", c.FullPath())
	} else {
		logger.CtxWarn(ctx, "Request rejected",
			"code", appErr.Code,
			"message", appErr.Message,
			"path", c.FullPath(),
		)
	}
	apperrors.HandleError(c, appErr)
}

// Caller resolves the authenticated user set by the auth middleware.
func (h *BaseHandler) Caller(c *gin.Context) (dto.Caller, bool) {
	userID := middleware.GetUserID(c)
	role, ok := middleware.GetRole(c)
	if userID == "" || !ok {
		logger.CtxWarn(c.Request.Context(), "Caller missing from context", "path", c.FullPath(), "ip", c.ClientIP())
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return dto.Caller{}, false
	}
	return dto.Caller{UserID: userID, Role: role}, true
}

// ParsePagination reads page and page_size, falling back to 1 and 20 and capping the size at 100.
func ParsePagination(c *gin.Context) (page int, pageSize int) {
	page = queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}

	pageSize = queryInt(c, "page_size", defaultPageSize)
	switch {
	case pageSize < 1:
		pageSize = defaultPageSize
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}
	return page, pageSize
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
