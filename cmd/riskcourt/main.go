package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/config"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/db"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/logging"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/publisher"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/retry"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	logger.Info("=== Fortuna RiskCourt v0 ===")

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("riskcourt stopped")
	}

	logger.Info("✓ Shutdown complete")
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("parse Redis URL: %w", err)
	}

	startup := retry.NewRetryPolicy(cfg.Startup.RetryAttempts, time.Second)

	// Connect to the ledger
	ledger, err := db.NewLedgerPostgres(cfg.Ledger.DSN)
	if err != nil {
		return fmt.Errorf("open ledger database: %w", err)
	}
	defer ledger.Close()

	err = startup.Execute(ctx, func(ctx context.Context) error {
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		defer pingCancel()
		return ledger.Ping(pingCtx)
	}, logRetry(logger, "ledger"))
	if err != nil {
		return fmt.Errorf("connect to ledger database: %w", err)
	}

	if err := ledger.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("prepare ledger schema: %w", err)
	}
	logger.Info("✓ Connected to ledger database")

	// Connect to Redis
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	err = startup.Execute(ctx, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	}, logRetry(logger, "redis"))
	if err != nil {
		return fmt.Errorf("connect to Redis: %w", err)
	}
	logger.Info("✓ Connected to Redis")

	router := handlers.NewRouter(handlers.RouterDeps{
		DB:          ledger,
		Publisher:   publisher.NewStreamPublisher(redisClient, cfg.Redis.StreamMaxLen),
		Defaults:    cfg.Sizing,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Server.Addr).Info("✓ RiskCourt listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		logger.WithField("signal", sig.String()).Warn("received signal, shutting down")

		// Give outstanding requests a deadline for completion
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("graceful shutdown failed")
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
	}

	return nil
}

func logRetry(logger logrus.FieldLogger, dependency string) func(int, error) {
	return func(attempt int, err error) {
		logger.WithError(err).WithFields(logrus.Fields{
			"dependency": dependency,
			"attempt":    attempt,
		}).Warn("dependency not ready, retrying")
	}
}
