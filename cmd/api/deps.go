package main

import (
	"context"
	"fmt"

	"expensync/internal/domain/budget"
	"expensync/internal/domain/categorygoal"
	"expensync/internal/domain/debt"
	"expensync/internal/domain/event"
	"expensync/internal/domain/notification"
	"expensync/internal/domain/reminder"
	"expensync/internal/domain/session"
	"expensync/internal/domain/summary"
	"expensync/internal/domain/transaction"
	"expensync/internal/infrastructure/amqp"
	"expensync/internal/infrastructure/firebase"
	"expensync/internal/infrastructure/postgres"
	httphandlers "expensync/internal/interfaces/http"
	"expensync/internal/shared/auth"
	"expensync/internal/shared/config"
	"expensync/internal/shared/messages"

	"go.uber.org/zap"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB     *postgres.DB
	Broker *amqp.Client

	// Handlers
	AuthHandler         *httphandlers.AuthHandler
	UserHandler         *httphandlers.UserHandler
	TransactionHandler  *httphandlers.TransactionHandler
	BudgetHandler       *httphandlers.BudgetHandler
	CategoryGoalHandler *httphandlers.CategoryGoalHandler
	DebtHandler         *httphandlers.DebtHandler
	ReminderHandler     *httphandlers.ReminderHandler
	SummaryHandler      *httphandlers.SummaryHandler
	NotificationHandler *httphandlers.NotificationHandler

	// Auth
	Tokens *auth.TokenIssuer

	// Reminder dispatch (for scheduler)
	Dispatcher *reminder.DispatchService
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	zap.L().Info("connected to database", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

	deps := &Dependencies{DB: db}

	msgs := messages.Default()
	if cfg.Messages.File != "" {
		if msgs, err = messages.Load(cfg.Messages.File); err != nil {
			deps.Close()
			return nil, fmt.Errorf("load messages: %w", err)
		}
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	refreshRepo := postgres.NewRefreshTokenRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	goalRepo := postgres.NewCategoryGoalRepository(db)
	debtRepo := postgres.NewDebtRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Event publisher
	var publisher event.Publisher = event.NopPublisher{}
	if cfg.AMQP.Enabled() {
		broker, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("connect to broker: %w", err)
		}
		deps.Broker = broker
		publisher = broker
		zap.L().Info("transaction events enabled", zap.String("exchange", cfg.AMQP.Exchange))
	} else {
		zap.L().Warn("AMQP_URL not set, transaction events are dropped")
	}

	// Push messenger
	var messenger notification.Messenger = notification.LogMessenger{}
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, notificationRepo.DeactivateToken)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("init firebase: %w", err)
		}
		messenger = fcm
	} else {
		zap.L().Warn("FIREBASE_CREDENTIALS_FILE not set, push messages are only logged")
	}

	// Initialize domain services
	tokens := auth.NewTokenIssuer(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	sessionService := session.NewService(userRepo, refreshRepo, tokens)
	transactionService := transaction.NewService(transactionRepo, publisher)
	budgetService := budget.NewService(budgetRepo)
	goalService := categorygoal.NewService(goalRepo)
	debtService := debt.NewService(debtRepo)
	reminderService := reminder.NewService(reminderRepo)
	notificationService := notification.NewService(notificationRepo, messenger)
	summaryService := summary.NewService(transactionService, budgetService, goalService, debtService, reminderService)

	deps.Tokens = tokens
	deps.Dispatcher = reminder.NewDispatchService(reminderRepo, notificationService, msgs, cfg.Scheduler.ReminderLeadTime)

	// Initialize handlers
	deps.AuthHandler = httphandlers.NewAuthHandler(sessionService)
	deps.UserHandler = httphandlers.NewUserHandler(sessionService)
	deps.TransactionHandler = httphandlers.NewTransactionHandler(transactionService)
	deps.BudgetHandler = httphandlers.NewBudgetHandler(budgetService)
	deps.CategoryGoalHandler = httphandlers.NewCategoryGoalHandler(goalService)
	deps.DebtHandler = httphandlers.NewDebtHandler(debtService)
	deps.ReminderHandler = httphandlers.NewReminderHandler(reminderService)
	deps.SummaryHandler = httphandlers.NewSummaryHandler(summaryService)
	deps.NotificationHandler = httphandlers.NewNotificationHandler(notificationService)

	return deps, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.Broker != nil {
		if err := d.Broker.Close(); err != nil {
			zap.L().Warn("close broker", zap.Error(err))
		}
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
