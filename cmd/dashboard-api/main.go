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
	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/handler"
	"github.com/noah-isme/school-dashboard-api/internal/repository"
	"github.com/noah-isme/school-dashboard-api/internal/service"
	"github.com/noah-isme/school-dashboard-api/pkg/config"
	"github.com/noah-isme/school-dashboard-api/pkg/database"
	"github.com/noah-isme/school-dashboard-api/pkg/logger"
)

// @title School Dashboard API
// @version 1.0.0
// @description Teacher and student dashboard backend
// @BasePath /
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if db == nil {
		logr.Fatal("failed to open database", zap.Error(err))
	}
	if err != nil {
		logr.Warn("database unreachable at startup, serving degraded", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	store := repository.NewStore(db, repository.StoreOptions{
		QueryTimeout:  cfg.Database.QueryTimeout,
		RetryAttempts: cfg.Database.RetryAttempts,
		RetryBackoff:  cfg.Database.RetryBackoff,
	}, metrics, logr)

	teacherRepo := repository.NewTeacherRepository(store)
	studentRepo := repository.NewStudentRepository(store)
	userRepo := repository.NewUserRepository(store)

	authSvc := service.NewAuthService(
		service.NewCredentialStoreProvider(userRepo, logr),
		validator.New(),
		logr,
		service.AuthConfig{
			AccessTokenSecret: cfg.JWT.Secret,
			AccessTokenExpiry: cfg.JWT.Expiration,
			Issuer:            "school-dashboard-api",
		},
	)

	handlers := handler.Handlers{
		Teachers: handler.NewTeacherHandler(service.NewTeacherService(teacherRepo, logr)),
		Students: handler.NewStudentHandler(service.NewStudentService(studentRepo, logr)),
		Dashboard: handler.NewDashboardHandler(
			service.NewSummaryService(teacherRepo, studentRepo, logr),
			service.NewHealthService(store, cfg.Version, cfg.Env, logr),
		),
		Auth:    handler.NewAuthHandler(authSvc, metrics),
		Metrics: handler.NewMetricsHandler(metrics.Handler()),
	}
	router := handler.NewRouter(cfg, logr, handlers, authSvc, metrics)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "require_auth", cfg.Dashboard.RequireAuth)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
