package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lms-slot-api/api/swagger"
	"github.com/noah-isme/lms-slot-api/internal/handler"
	"github.com/noah-isme/lms-slot-api/internal/middleware"
	"github.com/noah-isme/lms-slot-api/internal/repository"
	"github.com/noah-isme/lms-slot-api/internal/router"
	"github.com/noah-isme/lms-slot-api/internal/service"
	"github.com/noah-isme/lms-slot-api/pkg/cache"
	"github.com/noah-isme/lms-slot-api/pkg/config"
	"github.com/noah-isme/lms-slot-api/pkg/database"
	"github.com/noah-isme/lms-slot-api/pkg/logger"
)

// @title LMS Teacher Availability & Slot API
// @version 1.0.0
// @description Weekly availability templates and bookable hour slots for LMS teachers.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db.DB, logr); err != nil {
			logr.Fatal("database migration failed", zap.Error(err))
		}
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	cacheRepo := repository.NewCacheRepository(nil)
	cacheEnabled := cfg.Slots.CacheEnabled
	if cacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, slot cache disabled", zap.Error(err))
			cacheEnabled = false
		} else {
			cacheRepo = repository.NewCacheRepository(client)
		}
	}
	defer cacheRepo.Close() //nolint:errcheck
	var cachePinger handler.CachePinger
	if cacheEnabled {
		cachePinger = cacheRepo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Slots.CacheTTL, logr, cacheEnabled)

	validate := validator.New()
	users := repository.NewUserRepository(db)
	availabilitySvc := service.NewAvailabilityService(users, repository.NewAvailabilityRepository(db), logr)
	slotSvc := service.NewTimeSlotService(users, repository.NewTimeSlotRepository(db), cacheSvc, metrics, validate, logr, cfg.Slots)

	var tokens middleware.TokenValidator
	if cfg.JWT.Enabled {
		tokens = service.NewTokenService(cfg.JWT)
	} else {
		logr.Warn("authentication disabled, every route is open")
	}

	var observer middleware.RequestObserver
	var metricsHandler http.Handler
	if metrics != nil {
		observer = metrics
		metricsHandler = metrics.Handler()
	}

	engine := router.Setup(cfg, router.Handlers{
		Availability: handler.NewAvailabilityHandler(availabilitySvc),
		TimeSlots:    handler.NewTimeSlotHandler(slotSvc),
		Health:       handler.NewHealthHandler(db, cachePinger, metricsHandler),
	}, tokens, observer, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Slots.RequestTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logr.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
