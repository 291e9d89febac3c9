package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/justsurfingit/senior-job-match/internal/config"
	"github.com/justsurfingit/senior-job-match/internal/database"
	"github.com/justsurfingit/senior-job-match/internal/export"
	"github.com/justsurfingit/senior-job-match/internal/handlers"
	"github.com/justsurfingit/senior-job-match/internal/logging"
	"github.com/justsurfingit/senior-job-match/internal/middleware"
	"github.com/justsurfingit/senior-job-match/internal/notify"
	"github.com/justsurfingit/senior-job-match/internal/repository"
	"github.com/justsurfingit/senior-job-match/internal/services"
)

func main() {
	// 1. Configuration & logging
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// 2. Database Connection
	db, err := database.Connect(database.Options{
		DSN:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		ConnMaxLife:  cfg.DBConnMaxLife,
	}, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db, logger)
	if cfg.AutoMigrate {
		if err := database.Migrate(db, logger); err != nil {
			logger.Error("migration failed", "error", err)
			os.Exit(1)
		}
	}
	store := repository.NewGormStore(db)

	// 3. Rate limiting, shared through Redis when configured
	var limiter middleware.Limiter = middleware.NewRateLimiter()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		limiter = middleware.NewRedisLimiter(client, "senior-job-match:rl", logger)
		logger.Info("rate limiting through redis", "addr", cfg.RedisAddr)
	}

	// 4. Services
	workerService := services.NewWorkerService(store, logger)
	employerService := services.NewEmployerService(store, nil, logger)
	jobService := services.NewJobService(store, cfg.RequireApprovalBeforePosting, logger)
	applicationService := services.NewApplicationService(store, logger)
	matcherService := services.NewMatcherService(store, logger)
	notificationService := services.NewNotificationService(store, notify.NewLogSender(logger), logger)
	exportService := export.NewService(store, logger)

	watchCtx, stopWatcher := context.WithCancel(context.Background())
	watcherDone := services.NewDispatchWatcher(notificationService, cfg.NotifyDispatchInterval, 100, logger).Start(watchCtx)

	// 5. Handlers & router
	router := handlers.NewRouter(handlers.Handlers{
		Workers:       handlers.NewWorkerHandler(workerService, logger),
		Employers:     handlers.NewEmployerHandler(employerService, logger),
		Jobs:          handlers.NewJobHandler(jobService, logger),
		Applications:  handlers.NewApplicationHandler(applicationService, matcherService, exportService, logger),
		Notifications: handlers.NewNotificationHandler(notificationService, logger),
	}, handlers.RouterOptions{
		CORSOrigins:     cfg.CORSOrigins,
		Limiter:         limiter,
		RateLimitPerMin: cfg.RateLimitPerMin,
		RequestTimeout:  cfg.RequestTimeout,
		Log:             logger,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	stopWatcher()
	<-watcherDone
}
