package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/calbook-api/api/swagger"
	"github.com/noah-isme/calbook-api/internal/handler"
	internalmiddleware "github.com/noah-isme/calbook-api/internal/middleware"
	"github.com/noah-isme/calbook-api/internal/repository"
	"github.com/noah-isme/calbook-api/internal/service"
	"github.com/noah-isme/calbook-api/pkg/cache"
	"github.com/noah-isme/calbook-api/pkg/config"
	"github.com/noah-isme/calbook-api/pkg/database"
	"github.com/noah-isme/calbook-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/calbook-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/calbook-api/pkg/middleware/requestid"
	"github.com/redis/go-redis/v9"
)

// @title Calbook API
// @version 0.1.0
// @description Scheduling and booking service
// @BasePath /
// @schemes http

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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, slot caching disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	scheduleRepo := repository.NewScheduleRepository(db)
	eventTypeRepo := repository.NewEventTypeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	scheduleSvc := service.NewScheduleService(scheduleRepo, cacheRepo, validate, logr, cfg.Booking.DefaultTimezone)
	eventTypeSvc := service.NewEventTypeService(eventTypeRepo, cacheRepo, validate, logr)
	slotsSvc := service.NewSlotsService(scheduleRepo, eventTypeRepo, bookingRepo, cacheRepo, cfg.Slots.CacheTTL, metricsSvc, logr)
	bookingSvc := service.NewBookingService(bookingRepo, eventTypeRepo, cacheRepo, service.BookingOptions{
		RequireManageToken: cfg.Booking.RequireManageToken,
		ManageTokenSecret:  cfg.Booking.ManageTokenSecret,
		DefaultTimezone:    cfg.Booking.DefaultTimezone,
	}, validate, logr)
	exportSvc := service.NewExportService(bookingSvc)

	eventTypeHandler := handler.NewEventTypeHandler(eventTypeSvc)
	availabilityHandler := handler.NewAvailabilityHandler(scheduleSvc)
	slotsHandler := handler.NewSlotsHandler(slotsSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	eventTypes := api.Group("/event-types")
	eventTypes.GET("", eventTypeHandler.List)
	eventTypes.POST("", eventTypeHandler.Create)
	eventTypes.GET("/slug/:slug", eventTypeHandler.GetBySlug)
	eventTypes.GET("/:id", eventTypeHandler.Get)
	eventTypes.PUT("/:id", eventTypeHandler.Update)
	eventTypes.DELETE("/:id", eventTypeHandler.Delete)

	availability := api.Group("/availability")
	availability.GET("", availabilityHandler.List)
	availability.PUT("", availabilityHandler.ReplaceAvailability)
	availability.POST("/schedules", availabilityHandler.CreateSchedule)
	availability.GET("/schedules/:id", availabilityHandler.GetSchedule)
	availability.PUT("/schedules/:id", availabilityHandler.UpdateSchedule)
	availability.DELETE("/schedules/:id", availabilityHandler.DeleteSchedule)

	api.GET("/slots", slotsHandler.List)

	bookings := api.Group("/bookings")
	bookings.GET("", bookingHandler.List)
	bookings.POST("", bookingHandler.Create)
	bookings.GET("/export", bookingHandler.Export)
	bookings.PUT("/:id/cancel", bookingHandler.Cancel)
	bookings.GET("/:id/calendar.ics", bookingHandler.Calendar)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
