package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"expensync/internal/infrastructure/postgres"
	"expensync/internal/interfaces/scheduler"
	"expensync/internal/shared/config"
	"expensync/internal/shared/logger"
	"expensync/internal/shared/telemetry"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flush, err := logger.Init(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer flush()

	// Amounts leave the API as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			Environment:  cfg.Telemetry.Environment,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		})
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
		defer func() {
			tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTelemetry(tctx); err != nil {
				zap.L().Warn("telemetry shutdown", zap.Error(err))
			}
		}()
	}

	if err := postgres.RunMigrations(cfg.Database.URL()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	deps, err := NewDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	// Initialize scheduler (if enabled)
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(scheduler.Config{
			ScheduleTimes: cfg.Scheduler.ScheduleTimes,
			WorkerCount:   cfg.Scheduler.WorkerCount,
			JobDelay:      cfg.Scheduler.JobDelay,
			QueueSize:     cfg.Scheduler.QueueSize,
			RunOnStartup:  cfg.Scheduler.RunOnStartup,
			JobProvider:   scheduler.ReminderJobs(deps.Dispatcher),
		})
		if err != nil {
			return err
		}
		sched.Start()
		zap.L().Info("scheduler started",
			zap.Strings("times", cfg.Scheduler.ScheduleTimes),
			zap.Time("next_run", sched.NextRun(time.Now())),
		)
	} else {
		zap.L().Info("scheduler is disabled")
	}

	handler, limiter := SetupRoutes(deps, cfg)
	defer limiter.Stop()

	return NewServers(handler, cfg, sched).Serve(ctx, shutdownTimeout)
}
