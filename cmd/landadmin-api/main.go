package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/landgov/landadmin-api/api/swagger"
	"github.com/landgov/landadmin-api/internal/handler"
	"github.com/landgov/landadmin-api/internal/middleware"
	"github.com/landgov/landadmin-api/internal/models"
	"github.com/landgov/landadmin-api/internal/repository"
	"github.com/landgov/landadmin-api/internal/service"
	"github.com/landgov/landadmin-api/pkg/cache"
	"github.com/landgov/landadmin-api/pkg/config"
	"github.com/landgov/landadmin-api/pkg/database"
	"github.com/landgov/landadmin-api/pkg/logger"
	corsmiddleware "github.com/landgov/landadmin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/landgov/landadmin-api/pkg/middleware/requestid"
	"github.com/landgov/landadmin-api/pkg/storage"
)

// @title Land Administration API
// @version 1.0.0
// @description Planning division backend for inter-division legal requests, parcels and spatial evidence.
// @BasePath /api/v1
// @schemes http
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	fileStore, err := storage.NewLocalStorage(cfg.Documents.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare document storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Documents.SignedURLSecret, cfg.Documents.SignedURLTTL)

	// Repositories.
	requestRepo := repository.NewLegalRequestRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	evidenceRepo := repository.NewEvidenceRepository(db)
	parcelRepo := repository.NewParcelRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Services.
	bus := service.NewRequestEventBus(logr)
	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer, logr)
	requestSvc := service.NewLegalRequestService(
		requestRepo, activityRepo, userRepo, documentRepo, parcelRepo,
		cacheRepo, bus, logr, cfg.Legal.DefaultSLADays, cfg.Legal.UnreadCacheTTL)
	documentSvc := service.NewDocumentService(
		documentRepo, requestRepo, activityRepo, fileStore, signer, bus, logr,
		service.DocumentOptions{
			MaxFileSizeBytes: cfg.Documents.MaxFileSizeBytes,
			AllowedMIMEs:     cfg.Documents.AllowedMIMEs,
		})
	evidenceSvc := service.NewEvidenceService(evidenceRepo, logr)
	parcelSvc := service.NewParcelService(parcelRepo, requestRepo, evidenceRepo, cacheRepo, logr)
	exportSvc := service.NewExportService(requestRepo, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var notificationSvc *service.NotificationService
	if cfg.Notifications.Enabled {
		notificationSvc = service.NewNotificationService(
			notificationRepo, requestRepo, userRepo, bus, logr,
			service.NotificationOptions{
				QueueWorkers:        cfg.Notifications.QueueWorkers,
				QueueRetries:        cfg.Notifications.QueueRetries,
				DeadlineScanEvery:   cfg.Notifications.DeadlineScanEvery,
				DeadlineWarningDays: cfg.Notifications.DeadlineWarningDays,
			})
		notificationSvc.Start(ctx)
		defer notificationSvc.Stop()
	}

	go refreshWorkloadGauges(ctx, requestRepo, metricsSvc, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r, cfg, authSvc, metricsSvc,
		handler.NewAuthHandler(authSvc),
		handler.NewLegalRequestHandler(requestSvc, exportSvc),
		handler.NewDocumentHandler(documentSvc),
		handler.NewNotificationHandler(notificationSvc),
		handler.NewEvidenceHandler(evidenceSvc),
		handler.NewParcelHandler(parcelSvc),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

// refreshWorkloadGauges keeps the open/overdue request gauges current.
func refreshWorkloadGauges(ctx context.Context, requests *repository.LegalRequestRepository, metricsSvc *service.MetricsService, logr *zap.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		open, err := requests.CountByStatus(ctx,
			models.StatusSubmitted, models.StatusReceived, models.StatusAssigned,
			models.StatusInProgress, models.StatusPendingInformation, models.StatusUnderReview)
		if err != nil {
			logr.Sugar().Warnw("workload gauge refresh failed", "error", err)
		} else {
			overdue := 0
			now := time.Now().UTC()
			if due, err := requests.ListOpenDueBefore(ctx, now); err == nil {
				for i := range due {
					service.DecorateSLA(&due[i], now)
					if due[i].IsOverdue {
						overdue++
					}
				}
			}
			metricsSvc.SetWorkloadGauges(open, overdue)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func registerRoutes(
	r *gin.Engine,
	cfg *config.Config,
	authSvc *service.AuthService,
	metricsSvc *service.MetricsService,
	authHandler *handler.AuthHandler,
	requestHandler *handler.LegalRequestHandler,
	documentHandler *handler.DocumentHandler,
	notificationHandler *handler.NotificationHandler,
	evidenceHandler *handler.EvidenceHandler,
	parcelHandler *handler.ParcelHandler,
) {
	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.GET("/auth/me", authHandler.Me)

	officerWrite := middleware.RequireRoles(models.RolePlanningOfficer)
	legalWrite := middleware.RequireRoles(models.RoleLegalOfficer)

	requests := authed.Group("/legal-requests")
	{
		requests.POST("", legalWrite, requestHandler.Create)
		requests.GET("", requestHandler.List)
		requests.GET("/unread-count", requestHandler.UnreadCount)
		if cfg.Exports.Enabled {
			requests.GET("/export", requestHandler.Export)
		}
		requests.GET("/:id", requestHandler.Get)
		requests.POST("/:id/assign", officerWrite, requestHandler.Assign)
		requests.POST("/:id/transition", officerWrite, requestHandler.Transition)
		requests.POST("/:id/response", officerWrite, requestHandler.Respond)
		requests.POST("/:id/withdraw", legalWrite, requestHandler.Withdraw)
		requests.POST("/:id/extend-deadline", officerWrite, requestHandler.ExtendDeadline)
		requests.POST("/:id/comments", requestHandler.AddComment)
		requests.GET("/:id/activity", requestHandler.ListActivity)
		if cfg.Exports.Enabled {
			requests.GET("/:id/letter", requestHandler.Letter)
		}
		requests.POST("/:id/documents", documentHandler.Upload)
		requests.GET("/:id/documents", documentHandler.List)
	}

	documents := authed.Group("/documents")
	{
		documents.GET("/:id/download-url", documentHandler.SignDownload)
	}
	// Token download authenticates via the signed token itself.
	api.GET("/documents/download", documentHandler.Download)

	if cfg.Notifications.Enabled {
		notifications := authed.Group("/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/:id/dismiss", notificationHandler.Dismiss)
		}
	}

	evidence := authed.Group("/spatial-evidence")
	{
		evidence.POST("", officerWrite, evidenceHandler.Create)
		evidence.GET("", evidenceHandler.List)
	}

	if cfg.GIS.Enabled {
		parcels := authed.Group("/parcels")
		{
			parcels.GET("", parcelHandler.List)
			parcels.GET("/geojson", parcelHandler.GeoJSON)
			parcels.GET("/:id", parcelHandler.Get)
			parcels.GET("/:id/legal-info", parcelHandler.LegalInfo)
		}
	}

	authed.GET("/metrics/system", middleware.RequireRoles(), handler.NewMetricsHandler(metricsSvc).System)
}
