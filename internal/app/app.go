package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bloodbank_backend/internal/auth"
	"bloodbank_backend/internal/config"
	"bloodbank_backend/internal/email"
	"bloodbank_backend/internal/handlers"
	"bloodbank_backend/internal/logger"
	"bloodbank_backend/internal/metrics"
	"bloodbank_backend/internal/middleware"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/repositories"
	"bloodbank_backend/internal/routes"
	"bloodbank_backend/internal/services"
	"bloodbank_backend/internal/validator"
	"bloodbank_backend/internal/workers"
	"bloodbank_backend/ws"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.Register()

	gormDB, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := Migrate(gormDB); err != nil {
			logger.Fatal("Database migration failed", "error", err)
		}
		logger.Info("Database schema migrated")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wsManager := ws.NewWebSocketManager()
	go wsManager.Run(ctx)
	workers.NewEventWorker(gormDB, repositories.NewEventRepository()).Start(ctx)

	mailer := email.NewProvider(cfg)
	if cfg.Email.Enabled {
		if err := mailer.Validate(); err != nil {
			logger.Fatal("Invalid e-mail configuration", "error", err)
		}
	}
	defer mailer.Close()

	router, serviceContainer := SetupRouter(cfg, gormDB, wsManager, mailer)
	if err := serviceContainer.AuthService.SeedFirstAdmin(ctx, gormDB, cfg.FirstAdminEmail, cfg.FirstAdminPassword); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("Server stopped")
}

// SetupRouter wires services and handlers over db and returns the ready engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, wsManager *ws.WebSocketManager, mailer email.Provider) (*gin.Engine, *services.ServiceContainer) {
	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)
	serviceContainer := services.NewServiceContainer(tokens, wsManager, mailer, cfg.Email.Enabled)

	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New(), middleware.AuthMiddleware(tokens), wsManager)
	return routes.NewRouter(db, appHandlers, cfg.Server.AllowedOrigins...), serviceContainer
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if !cfg.IsProduction() {
		logLevel = gormlogger.Info
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return gormDB, nil
}

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.DonorProfile{},
		&models.HospitalProfile{},
		&models.OrganizationProfile{},
		&models.BloodRequest{},
		&models.BloodRequestResponse{},
		&models.Donation{},
		&models.DonationEvent{},
		&models.BloodInventory{},
		&models.Notification{},
	)
}
