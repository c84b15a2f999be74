package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/groomer-manager/internal/audit"
	"github.com/BruksfildServices01/groomer-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/groomer-manager/internal/db"
	"github.com/BruksfildServices01/groomer-manager/internal/infra/objectstore"
	"github.com/BruksfildServices01/groomer-manager/internal/infra/repository"
	"github.com/BruksfildServices01/groomer-manager/internal/logger"
	"github.com/BruksfildServices01/groomer-manager/internal/middleware"
	"github.com/BruksfildServices01/groomer-manager/internal/routes"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
	"github.com/BruksfildServices01/groomer-manager/internal/validators"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment wins anyway.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.SlogLevel()
	log := logger.New("groomer-manager", level)
	slog.SetDefault(log)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	defer dbpkg.Close(db)

	store := repository.NewGormStore(log, db)
	auditLogger := audit.New(db)
	dispatcher := audit.NewDispatcher(auditLogger, log)

	deps := routes.Deps{
		Config:     cfg,
		Log:        log,
		Store:      store,
		Clock:      timezone.NewClock(cfg.Timezone),
		AuditLogs:  auditLogger,
		Audit:      dispatcher,
		EmailCheck: validators.IsEmailDomainValid,
	}

	if s3 := objectstore.NewS3Store(cfg); s3 != nil {
		deps.Photos = s3
	} else {
		log.Info("dog photos disabled, S3_BUCKET not set")
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unreachable, login rate limit fails open", "error", err)
		}
		deps.Limiter = middleware.NewRedisCounter(rdb)
	}

	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr(), "timezone", cfg.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error("audit drain", "error", err)
	}
	return nil
}
