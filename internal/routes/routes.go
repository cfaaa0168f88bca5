package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"bloodbank_backend/internal/handlers"
	"bloodbank_backend/internal/logger"
	"bloodbank_backend/internal/middleware"
)

// NewRouter builds the engine with the middleware chain and every route mounted.
func NewRouter(db *gorm.DB, appHandlers *handlers.AppHandlers, allowedOrigins ...string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins...))
	router.Use(middleware.DBMiddleware(db))

	RegisterRoutes(router, db, appHandlers)
	return router
}

// RegisterRoutes mounts the operational endpoints and the /api/v1 tree.
func RegisterRoutes(ginRouter *gin.Engine, db *gorm.DB, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/healthz", healthz(db))
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := ginRouter.Group("/api/v1")
	appHandlers.RegisterRoutes(api)

	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			logger.CtxWithError(c.Request.Context(), "health check failed", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
