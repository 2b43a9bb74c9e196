package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-slot-api/internal/handler"
	"github.com/noah-isme/lms-slot-api/internal/middleware"
	"github.com/noah-isme/lms-slot-api/internal/models"
	"github.com/noah-isme/lms-slot-api/pkg/config"
	"github.com/noah-isme/lms-slot-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lms-slot-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lms-slot-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Availability *handler.AvailabilityHandler
	TimeSlots    *handler.TimeSlotHandler
	Health       *handler.HealthHandler
}

// Setup builds the gin engine. tokens may be nil when authentication is disabled.
func Setup(cfg *config.Config, h Handlers, tokens middleware.TokenValidator, metrics middleware.RequestObserver, logr *zap.Logger) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, h.Health.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authEnabled := cfg.JWT.Enabled && tokens != nil
	guard := func(check gin.HandlerFunc) gin.HandlerFunc {
		if !authEnabled {
			return func(c *gin.Context) { c.Next() }
		}
		return check
	}
	adminOrSelf := guard(middleware.RBAC(string(models.RoleAdmin), middleware.Self))
	adminOrTeacher := guard(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))

	api := r.Group(cfg.APIPrefix)
	if authEnabled {
		api.Use(middleware.JWT(tokens))
	}

	teachers := api.Group("/teachers/:id")
	{
		teachers.GET("/availability", h.Availability.Get)
		teachers.PUT("/availability", adminOrSelf, h.Availability.Upsert)
		teachers.POST("/availability", adminOrSelf, h.Availability.Upsert)
		teachers.GET("/time-slots", h.TimeSlots.List)
		teachers.GET("/time-slots/export", h.TimeSlots.Export)
	}

	// Ownership of the target teacher is checked in the service once the
	// teacher or slot is known.
	slots := api.Group("/time-slots")
	{
		slots.POST("/bulk", adminOrTeacher, h.TimeSlots.BulkCreate)
		slots.DELETE("/:id", adminOrTeacher, h.TimeSlots.Delete)
	}

	return r
}
