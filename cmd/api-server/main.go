package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/kahu-edu/badge-portfolio-api/api/swagger"
	"github.com/kahu-edu/badge-portfolio-api/internal/handler"
	"github.com/kahu-edu/badge-portfolio-api/internal/middleware"
	"github.com/kahu-edu/badge-portfolio-api/internal/models"
	"github.com/kahu-edu/badge-portfolio-api/internal/repository"
	"github.com/kahu-edu/badge-portfolio-api/internal/service"
	"github.com/kahu-edu/badge-portfolio-api/pkg/cache"
	"github.com/kahu-edu/badge-portfolio-api/pkg/config"
	"github.com/kahu-edu/badge-portfolio-api/pkg/database"
	"github.com/kahu-edu/badge-portfolio-api/pkg/export"
	"github.com/kahu-edu/badge-portfolio-api/pkg/jobs"
	"github.com/kahu-edu/badge-portfolio-api/pkg/logger"
	corsmiddleware "github.com/kahu-edu/badge-portfolio-api/pkg/middleware/cors"
	reqidmiddleware "github.com/kahu-edu/badge-portfolio-api/pkg/middleware/requestid"
	"github.com/kahu-edu/badge-portfolio-api/pkg/storage"
)

// @title Badge Portfolio API
// @version 1.0.0
// @description Student badge tracking with graduate profile progress and slide deck generation
// @BasePath /api
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, catalog cache disabled", "error", err)
	} else {
		redisClient = client
		defer redisClient.Close() //nolint:errcheck
	}

	uploadStore, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}
	slideStore, err := storage.NewLocalStorage(cfg.Slides.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init slide storage", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	evidenceRepo := repository.NewEvidenceRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	badgeSvc := service.NewBadgeService(badgeRepo, redisClient, service.BadgeCacheConfig{
		Enabled: cfg.Catalog.CacheEnabled,
		TTL:     cfg.Catalog.CacheTTL,
	}, validate, logr)
	applicationSvc := service.NewApplicationService(applicationRepo, badgeRepo, validate, logr)
	evidenceSvc := service.NewEvidenceService(evidenceRepo, applicationRepo, uploadStore, service.UploadPolicy{
		MaxFileSizeBytes:  cfg.Uploads.MaxFileSizeBytes,
		AllowedExtensions: cfg.Uploads.AllowedExtensions,
	}, validate, logr)
	progressSvc := service.NewProgressService(progressRepo, logr)
	signer := storage.NewShareSigner(cfg.Slides.ShareSecret, cfg.Slides.ShareTTL)
	slideSvc := service.NewSlideService(badgeRepo, slideStore, export.NewPDFRenderer(), signer, service.SlideConfig{
		BaseURL:   cfg.BaseURL,
		APIPrefix: cfg.APIPrefix,
	}, validate, logr)
	metricsSvc := service.NewMetricsService()

	authHandler := handler.NewAuthHandler(authSvc)
	badgeHandler := handler.NewBadgeHandler(badgeSvc)
	userHandler := handler.NewUserHandler(authSvc, applicationSvc, progressSvc)
	applicationHandler := handler.NewApplicationHandler(applicationSvc)
	evidenceHandler := handler.NewEvidenceHandler(evidenceSvc, metricsSvc)
	slideHandler := handler.NewSlideHandler(slideSvc, metricsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	r.Static("/uploads", cfg.Uploads.StorageDir)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Student flows stay open; a bearer token, when present, only attaches an
	// identity. The strict guard covers /auth/me, badge writes, and the
	// teacher review queue.
	api := r.Group(cfg.APIPrefix, middleware.OptionalJWT(authSvc))

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

	badges := api.Group("/badges")
	badges.GET("", badgeHandler.List)
	badges.GET("/:id", badgeHandler.Get)
	badges.POST("", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin), badgeHandler.Create)
	badges.PUT("/:id", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin), badgeHandler.Update)

	users := api.Group("/users")
	users.GET("/:id", userHandler.Get)
	users.GET("/:id/applications", userHandler.Applications)
	users.GET("/:id/stats", userHandler.Stats)
	users.GET("/:id/progress", userHandler.Progress)

	applications := api.Group("/applications")
	applications.POST("", applicationHandler.Create)
	applications.GET("/review", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin), applicationHandler.ReviewQueue)
	applications.GET("/:id", applicationHandler.Get)
	applications.PATCH("/:id/status", applicationHandler.UpdateStatus)
	applications.GET("/:id/evidence", evidenceHandler.ListByApplication)

	evidence := api.Group("/evidence")
	evidence.POST("", evidenceHandler.Create)
	evidence.DELETE("/:id", evidenceHandler.Delete)

	slides := api.Group("/slides")
	slides.POST("/generate", slideHandler.Generate)
	slides.GET("/share/:badgeId", slideHandler.Share)
	slides.GET("/download/:filename", slideHandler.Download)
	slides.GET("/pdf/:filename", slideHandler.DownloadPDF)
	slides.GET("/view/:badgeId", slideHandler.View)
	slides.GET("/shared/:token", slideHandler.Shared)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cleanupQueue := startRetention(ctx, cfg, slideStore, logr)
	if cleanupQueue != nil {
		defer cleanupQueue.Stop()
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}

// startRetention launches the artifact cleanup queue when a retention TTL is
// configured. A zero TTL keeps artifacts forever.
func startRetention(ctx context.Context, cfg *config.Config, slideStore *storage.LocalStorage, logr *zap.Logger) *jobs.Queue {
	if cfg.Slides.RetentionTTL <= 0 {
		return nil
	}

	queue := jobs.NewQueue("slides-cleanup", func(ctx context.Context, job jobs.Job) error {
		deleted, err := slideStore.CleanupOlderThan(cfg.Slides.RetentionTTL)
		if err != nil {
			return err
		}
		if len(deleted) > 0 {
			logr.Sugar().Infow("expired deck artifacts removed", "count", len(deleted))
		}
		return nil
	}, jobs.QueueConfig{
		Workers:    cfg.Slides.CleanupWorkers,
		MaxRetries: cfg.Slides.CleanupRetries,
		Logger:     logr,
	})
	queue.Start(ctx)

	go func() {
		ticker := time.NewTicker(cfg.Slides.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				job := jobs.Job{ID: uuid.NewString(), Type: "cleanup"}
				if err := queue.Enqueue(job); err != nil {
					logr.Sugar().Warnw("failed to enqueue cleanup", "error", err)
				}
			}
		}
	}()

	return queue
}
