package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"expensync/internal/domain/alert"
	"expensync/internal/domain/categorygoal"
	"expensync/internal/domain/event"
	"expensync/internal/domain/notification"
	"expensync/internal/domain/transaction"
	"expensync/internal/infrastructure/amqp"
	"expensync/internal/infrastructure/firebase"
	"expensync/internal/infrastructure/postgres"
	"expensync/internal/shared/config"
	"expensync/internal/shared/logger"
	"expensync/internal/shared/messages"
	"expensync/internal/shared/telemetry"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Worker error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.AMQP.Enabled() {
		return errors.New("AMQP_URL is required for the event worker")
	}

	flush, err := logger.Init(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName + "-worker",
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

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	msgs := messages.Default()
	if cfg.Messages.File != "" {
		if msgs, err = messages.Load(cfg.Messages.File); err != nil {
			return fmt.Errorf("load messages: %w", err)
		}
	}

	notificationRepo := postgres.NewNotificationRepository(db)
	var messenger notification.Messenger = notification.LogMessenger{}
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, notificationRepo.DeactivateToken)
		if err != nil {
			return fmt.Errorf("init firebase: %w", err)
		}
		messenger = fcm
	}

	// The worker only reads transactions, so nothing is republished.
	transactions := transaction.NewService(postgres.NewTransactionRepository(db), event.NopPublisher{})
	goals := categorygoal.NewService(postgres.NewCategoryGoalRepository(db))
	notifications := notification.NewService(notificationRepo, messenger)
	alerts := alert.NewService(goals, transactions, notifications, msgs)

	broker, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
	if err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}
	defer broker.Close()

	zap.L().Info("event worker started", zap.String("queue", cfg.AMQP.Queue))
	if err := broker.Consume(ctx, alerts.Handle); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	zap.L().Info("event worker stopped")
	return nil
}
