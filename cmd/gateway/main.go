package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/kpiexport/gateway/api/swagger"
	"github.com/kpiexport/gateway/internal/handler"
	"github.com/kpiexport/gateway/internal/middleware"
	"github.com/kpiexport/gateway/internal/repository"
	"github.com/kpiexport/gateway/internal/service"
	"github.com/kpiexport/gateway/pkg/cache"
	"github.com/kpiexport/gateway/pkg/config"
	"github.com/kpiexport/gateway/pkg/jobs"
	"github.com/kpiexport/gateway/pkg/logger"
	corsmiddleware "github.com/kpiexport/gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/kpiexport/gateway/pkg/middleware/requestid"
)

// @title KPI Export Gateway
// @version 1.0.0
// @description Exports KPI group schedules into Google Calendar
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logr.Sugar().Fatalw("failed to load schedule timezone", "timezone", cfg.Timezone, "error", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, falling back to in-memory stores", "error", err)
			redisClient = nil
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	rozkladRepo := repository.NewRozkladRepository(cfg.Backend)
	gcalRepo := repository.NewGCalRepository(cfg.Google)
	exportRepo := repository.NewExportRepository()
	sessionRepo := repository.NewAuthSessionRepository()

	var prefRepo repository.PreferenceRepository
	if redisClient != nil {
		prefRepo = repository.NewRedisPreferenceRepository(redisClient)
	} else {
		prefRepo = repository.NewMemoryPreferenceRepository()
	}

	termSvc := service.NewTermService(nil, loc)
	eventSvc, err := service.NewEventService(cfg.Timezone)
	if err != nil {
		logr.Sugar().Fatalw("failed to init event builder", "error", err)
	}

	groupSvc := service.NewGroupService(rozkladRepo, redisClient, cfg.Cache.GroupsTTL, metricsSvc, logr)
	authSvc := service.NewAuthService(sessionRepo, cfg.Google, cfg.Export.PollInterval, cfg.Export.AuthTimeout, logr)
	exportSvc := service.NewExportService(exportRepo, prefRepo, groupSvc, gcalRepo, authSvc, termSvc, eventSvc, metricsSvc, validate, logr)

	queue := jobs.NewQueue("exports", exportSvc.Process, jobs.QueueConfig{
		Workers:    cfg.Export.Workers,
		BufferSize: cfg.Export.QueueSize,
		Logger:     logr,
	})
	exportSvc.SetQueue(queue)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Start(ctx)
	defer queue.Stop()

	groupHandler := handler.NewGroupHandler(groupSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	prefHandler := handler.NewPreferenceHandler(prefRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	r.GET("/oauth", authHandler.Landing)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/groups", groupHandler.List)
		api.GET("/groups/:name/schedule", groupHandler.Schedule)

		api.POST("/auth/sessions", authHandler.CreateSession)
		api.POST("/auth/sessions/:id/fragment", authHandler.DepositFragment)

		api.POST("/exports", exportHandler.Create)
		api.GET("/exports/:id", exportHandler.Status)

		api.GET("/preferences/:deviceId", prefHandler.Get)
		api.PUT("/preferences/:deviceId", prefHandler.Update)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
