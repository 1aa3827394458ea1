package main

import (
	"net/http"
	"time"

	httphandlers "expensync/internal/interfaces/http"
	"expensync/internal/shared/config"
	"expensync/internal/shared/middleware"

	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// SetupRoutes configures all HTTP routes and returns the final handler with
// middleware. The returned limiter must be stopped on shutdown.
func SetupRoutes(deps *Dependencies, cfg *config.Config) (http.Handler, *middleware.RateLimiter) {
	mux := http.NewServeMux()

	// Liveness
	mux.HandleFunc("/", httphandlers.HandleRoot)
	mux.HandleFunc(apiPrefix, httphandlers.HandleAPIRoot)
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes; credential endpoints are rate limited per client IP
	limiter := middleware.NewRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst, 5*time.Minute, cfg.Server.TrustedProxies...)
	public := func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }

	mux.Handle(apiPrefix+"/auth/signup", public(deps.AuthHandler.HandleSignup))
	mux.Handle(apiPrefix+"/auth/login", public(deps.AuthHandler.HandleLogin))
	mux.Handle(apiPrefix+"/auth/refresh-token", public(deps.AuthHandler.HandleRefreshToken))
	mux.HandleFunc(apiPrefix+"/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.Tokens)
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(apiPrefix+pattern, authMiddleware(h))
	}

	protected("/auth/me", deps.UserHandler.HandleMe)

	protected("/transactions", deps.TransactionHandler.HandleTransactions)
	protected("/transactions/create", deps.TransactionHandler.HandleCreate)
	protected("/transactions/summary", deps.TransactionHandler.HandleSummary)
	protected("/transactions/{id}", deps.TransactionHandler.HandleTransaction)

	protected("/budgets", deps.BudgetHandler.HandleBudgets)
	protected("/budgets/{id}", deps.BudgetHandler.HandleBudget)

	protected("/category-goals", deps.CategoryGoalHandler.HandleCategoryGoals)
	protected("/category-goals/set", deps.CategoryGoalHandler.HandleSet)

	protected("/debts", deps.DebtHandler.HandleDebts)
	protected("/debts/create", deps.DebtHandler.HandleCreate)
	protected("/debts/{id}", deps.DebtHandler.HandleDebt)

	protected("/reminders", deps.ReminderHandler.HandleReminders)
	protected("/reminders/create", deps.ReminderHandler.HandleCreate)
	protected("/reminders/{id}", deps.ReminderHandler.HandleReminder)

	protected("/summary", deps.SummaryHandler.HandleSummary)
	protected("/dashboard", deps.SummaryHandler.HandleDashboard)

	protected("/notifications", deps.NotificationHandler.HandleNotifications)
	protected("/notifications/{id}", deps.NotificationHandler.HandleNotification)
	protected("/notifications/devices", deps.NotificationHandler.HandleRegisterDevice)
	protected("/notifications/devices/{token}", deps.NotificationHandler.HandleDevice)

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedOrigins)(mux))
	handler = middleware.Tracing(handler)
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(cfg.Telemetry.ServiceName)(handler)
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		zap.L().Info("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler, limiter
}
