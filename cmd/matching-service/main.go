// cmd/matching-service/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"worklink-matching/internal/common/config"
	"worklink-matching/internal/common/database"
	"worklink-matching/internal/common/logger"
	"worklink-matching/internal/common/observability"
	"worklink-matching/internal/matching"
	"worklink-matching/internal/notify"
	"worklink-matching/internal/server"
	"worklink-matching/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff.
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
			delay *= 2
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
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting matching service...",
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
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

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Notifications (optional) ---
	notifier, err := notify.New(ctx, cfg.Notifications, log)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	// --- Stores and matching pipeline ---
	jobs := store.NewJobStore(pg.DB)
	workers := store.NewWorkerStore(pg.DB, rdb.Client, cfg.Matching.CandidateCacheTTL, log)
	tasks := store.NewTaskStore(pg.DB)
	reservations := store.NewReservationStore(rdb.Client, cfg.Matching.ReservationTTL)

	scorer := matching.NewScorer(jobs, workers, log)
	if len(cfg.Matching.Weights) > 0 {
		if err := scorer.SetDefaultWeights(matching.FromMap(cfg.Matching.Weights)); err != nil {
			zapLog.Fatal("invalid matching weights in config", zap.Error(err))
		}
	}
	optimizer := matching.NewOptimizer(scorer, jobs, tasks, reservations, notifier, log)

	handlers := server.NewHandlers(scorer, optimizer, log)
	srv := server.New(cfg.Server, cfg.App.Environment, log, obs, handlers, map[string]server.Pinger{
		"postgres": pg,
		"redis":    rdb,
	})

	httpServer := srv.HTTPServer()

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.Server.Addr()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// pprof on a side port, never exposed through the main listener.
	go func() {
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			zapLog.Warn("pprof server exited", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
