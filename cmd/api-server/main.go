// cmd/api-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"jobboard-api/internal/common/config"
	"jobboard-api/internal/common/database"
	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/common/observability"
	"jobboard-api/internal/handlers"
	"jobboard-api/internal/repository"
	"jobboard-api/internal/search"
	"jobboard-api/internal/service"
)

// application bundles what the HTTP layer needs: handlers, middleware
// dependencies and the shared logger.
type application struct {
	cfg       *config.Config
	logger    logger.Logger
	errors    *apperrors.ErrorHandler
	auth      *service.AuthService
	jobs      *handlers.JobHandler
	authH     *handlers.AuthHandler
	users     *handlers.UserHandler
	recruitrs *handlers.RecruiterHandler
	pg        *database.PostgresClient
	redis     *database.RedisClient
	es        *database.ElasticsearchClient
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting api server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("address", cfg.Server.Address),
	)

	obs := observability.New("api-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	if err := esClient.EnsureJobsIndex(ctx, cfg.Database.Elasticsearch.JobsIndex); err != nil {
		zapLog.Fatal("jobs index setup failed", zap.Error(err))
	}

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Wire repositories, search and services ---
	jobRepo := repository.NewJobRepository(pg.GetDB())
	userRepo := repository.NewUserRepository(pg.GetDB())
	recruiterRepo := repository.NewRecruiterRepository(pg.GetDB())

	jobIndex := search.NewESIndex(esClient.GetClient(), cfg.Database.Elasticsearch.JobsIndex,
		time.Duration(cfg.Search.RequestTimeout)*time.Millisecond)
	searchSvc := search.NewService(redisClient, jobIndex, log,
		cfg.Cache.JobExpiry(), cfg.Cache.SearchPageExpiry()).WithObservability(obs)

	jobSvc := service.NewJobService(jobRepo, recruiterRepo, searchSvc, log)
	authSvc := service.NewAuthService(userRepo, recruiterRepo, redisClient,
		cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry(), cfg.Auth.BcryptCost, log)
	userSvc := service.NewUserService(userRepo)
	recruiterSvc := service.NewRecruiterService(recruiterRepo)

	errHandler := apperrors.NewErrorHandler(log)

	app := &application{
		cfg:       cfg,
		logger:    log,
		errors:    errHandler,
		auth:      authSvc,
		jobs:      handlers.NewJobHandler(jobSvc, errHandler),
		authH:     handlers.NewAuthHandler(authSvc, errHandler),
		users:     handlers.NewUserHandler(userSvc, errHandler),
		recruitrs: handlers.NewRecruiterHandler(recruiterSvc, errHandler),
		pg:        pg,
		redis:     redisClient,
		es:        esClient,
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      c.Handler(app.routes()),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.GetDuration(cfg.Server.IdleTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown error", zap.Error(err))
	}

	zapLog.Info("Server stopped gracefully")
}
