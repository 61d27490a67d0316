// The worker binary runs the expiration sweep and index reconciliation jobs
// without the HTTP server, for deployments that separate API and background
// processing.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"subtrack/internal/infrastructure/config"
	"subtrack/internal/infrastructure/database"
	"subtrack/internal/infrastructure/scheduler"
	httpRouter "subtrack/internal/interfaces/http"
	"subtrack/internal/shared/logger"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting expiration worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatalw("failed to connect to redis", "error", err)
	}
	pingCancel()
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	container := httpRouter.NewContainer(database.Get(), redisClient, &cfg.Retry, log)

	schedulerManager, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
	if err != nil {
		log.Fatalw("failed to create scheduler", "error", err)
	}
	if err := schedulerManager.RegisterExpirationJob(container.ExpireUC, cfg.Worker.SweepInterval()); err != nil {
		log.Fatalw("failed to register expiration job", "error", err)
	}
	if err := schedulerManager.RegisterReconciliationJob(container.ReconcileUC, cfg.Worker.ReconcileInterval()); err != nil {
		log.Fatalw("failed to register reconciliation job", "error", err)
	}

	schedulerManager.Start()
	log.Infow("expiration worker started",
		"sweep_interval", cfg.Worker.SweepInterval(),
		"reconcile_interval", cfg.Worker.ReconcileInterval(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)

	if err := schedulerManager.Stop(); err != nil {
		log.Errorw("scheduler shutdown failed", "error", err)
	}

	log.Infow("expiration worker stopped")
}
