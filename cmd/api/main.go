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

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/openvta/van-terminal-api/internal/handler"
	"github.com/openvta/van-terminal-api/internal/middleware"
	"github.com/openvta/van-terminal-api/internal/models"
	"github.com/openvta/van-terminal-api/internal/repository"
	"github.com/openvta/van-terminal-api/internal/service"
	"github.com/openvta/van-terminal-api/pkg/cache"
	"github.com/openvta/van-terminal-api/pkg/config"
	"github.com/openvta/van-terminal-api/pkg/database"
	"github.com/openvta/van-terminal-api/pkg/export"
	"github.com/openvta/van-terminal-api/pkg/logger"
	corsmiddleware "github.com/openvta/van-terminal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/openvta/van-terminal-api/pkg/middleware/requestid"
)

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
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	var cacheRepo *repository.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close() //nolint:errcheck
	}

	validate := validator.New()

	assignmentRepo := repository.NewAssignmentRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)
	vanRepo := repository.NewVanRepository(db)
	userRepo := repository.NewUserRepository(db)

	assignmentSvc := service.NewAssignmentService(assignmentRepo, validate, logr)
	operatorSvc := service.NewOperatorService(operatorRepo, cacheRepo, cfg.Directory.CacheTTL, validate, logr)
	vanSvc := service.NewVanService(vanRepo, cacheRepo, cfg.Directory.CacheTTL, validate, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      "van-terminal-api",
	})
	metricsSvc := service.NewMetricsService()

	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc, operatorSvc, vanSvc, export.NewPDFExporter())
	operatorHandler := handler.NewOperatorHandler(operatorSvc)
	vanHandler := handler.NewVanHandler(vanSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth", authHandler.Login)
	api.POST("/register", authHandler.Register)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.GET("/users", authHandler.ListUsers)
	authed.DELETE("/users/:id", middleware.RequireRoles(models.RoleAdmin), authHandler.ArchiveUser)

	authed.GET("/assignments", assignmentHandler.List)
	authed.GET("/assignments/overview", assignmentHandler.Overview)
	authed.GET("/assignments/export", assignmentHandler.Export)
	authed.POST("/assignments", assignmentHandler.Create)
	authed.PUT("/assignments", assignmentHandler.Update)
	authed.DELETE("/assignments/:id", assignmentHandler.Delete)

	authed.GET("/operators", operatorHandler.List)
	authed.GET("/operators/:id", operatorHandler.Get)
	authed.POST("/operators", operatorHandler.Create)
	authed.PUT("/operators/:id", operatorHandler.Update)
	authed.DELETE("/operators/:id", middleware.RequireRoles(models.RoleAdmin), operatorHandler.Archive)

	authed.GET("/vans", vanHandler.List)
	authed.GET("/vans/:id", vanHandler.Get)
	authed.POST("/vans", vanHandler.Create)
	authed.PUT("/vans/:id", vanHandler.Update)
	authed.DELETE("/vans/:id", middleware.RequireRoles(models.RoleAdmin), vanHandler.Archive)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
