package http

import (
	"context"
	"time"

	"expensync/internal/domain/budget"
	"expensync/internal/domain/categorygoal"
	"expensync/internal/domain/debt"
	"expensync/internal/domain/notification"
	"expensync/internal/domain/reminder"
	"expensync/internal/domain/session"
	"expensync/internal/domain/transaction"
	"expensync/internal/domain/user"
	"expensync/internal/shared/middleware"

	"github.com/shopspring/decimal"
)

func withUser(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, middleware.UserIDKey, userID)
}

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc     func(ctx context.Context, params user.CreateUserParams) (*user.User, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) List(ctx context.Context) ([]*user.User, error) {
	return nil, nil
}

// MockRefreshTokenRepo implements session.RefreshTokenRepository for testing
type MockRefreshTokenRepo struct {
	CreateFunc func(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
	GetFunc    func(ctx context.Context, jti string) (*session.RefreshToken, error)
	RevokeFunc func(ctx context.Context, jti string) error
}

func (m *MockRefreshTokenRepo) Create(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, jti, userID, expiresAt)
	}
	return nil
}

func (m *MockRefreshTokenRepo) Get(ctx context.Context, jti string) (*session.RefreshToken, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, jti)
	}
	return nil, nil
}

func (m *MockRefreshTokenRepo) Revoke(ctx context.Context, jti string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, jti)
	}
	return nil
}

func (m *MockRefreshTokenRepo) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	CreateFunc    func(ctx context.Context, userID int64, params transaction.CreateParams) (*transaction.Transaction, error)
	GetByIDFunc   func(ctx context.Context, userID int64, id string) (*transaction.Transaction, error)
	ListFunc      func(ctx context.Context, userID int64, q transaction.ListQuery) ([]*transaction.Transaction, int64, error)
	ListAllFunc   func(ctx context.Context, userID int64) ([]*transaction.Transaction, error)
	UpdateFunc    func(ctx context.Context, userID int64, id string, params transaction.UpdateParams) (*transaction.Transaction, error)
	DeleteFunc    func(ctx context.Context, userID int64, id string) error
	SummarizeFunc func(ctx context.Context, userID int64) (*transaction.Summary, error)
}

func (m *MockTransactionRepo) Create(ctx context.Context, userID int64, params transaction.CreateParams) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, userID int64, id string) (*transaction.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockTransactionRepo) List(ctx context.Context, userID int64, q transaction.ListQuery) ([]*transaction.Transaction, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, q)
	}
	return nil, 0, nil
}

func (m *MockTransactionRepo) ListAll(ctx context.Context, userID int64) ([]*transaction.Transaction, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Update(ctx context.Context, userID int64, id string, params transaction.UpdateParams) (*transaction.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Delete(ctx context.Context, userID int64, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockTransactionRepo) Summarize(ctx context.Context, userID int64) (*transaction.Summary, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, userID)
	}
	return &transaction.Summary{}, nil
}

func (m *MockTransactionRepo) SpentByCategory(ctx context.Context, userID int64, from, to time.Time) (map[string]decimal.Decimal, error) {
	return map[string]decimal.Decimal{}, nil
}

func (m *MockTransactionRepo) SpentThrough(ctx context.Context, userID int64, id string, from, to time.Time) (*transaction.RunningSpend, error) {
	return nil, nil
}

// MockBudgetRepo implements budget.Repository for testing
type MockBudgetRepo struct {
	CreateFunc func(ctx context.Context, userID int64, params budget.CreateParams) (*budget.Budget, error)
	ListFunc   func(ctx context.Context, userID int64) ([]*budget.Budget, error)
	DeleteFunc func(ctx context.Context, userID int64, id string) error
}

func (m *MockBudgetRepo) Create(ctx context.Context, userID int64, params budget.CreateParams) (*budget.Budget, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockBudgetRepo) ListByUserID(ctx context.Context, userID int64) ([]*budget.Budget, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBudgetRepo) Delete(ctx context.Context, userID int64, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockBudgetRepo) TotalForMonth(ctx context.Context, userID int64, month string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// MockCategoryGoalRepo implements categorygoal.Repository for testing
type MockCategoryGoalRepo struct {
	UpsertFunc func(ctx context.Context, userID int64, goals []categorygoal.Goal) error
	ListFunc   func(ctx context.Context, userID int64) ([]categorygoal.Goal, error)
}

func (m *MockCategoryGoalRepo) Upsert(ctx context.Context, userID int64, goals []categorygoal.Goal) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, userID, goals)
	}
	return nil
}

func (m *MockCategoryGoalRepo) ListByUserID(ctx context.Context, userID int64) ([]categorygoal.Goal, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCategoryGoalRepo) Get(ctx context.Context, userID int64, category string) (*categorygoal.Goal, error) {
	return nil, nil
}

// MockDebtRepo implements debt.Repository for testing
type MockDebtRepo struct {
	CreateFunc func(ctx context.Context, userID int64, params debt.CreateParams) (*debt.Debt, error)
	ListFunc   func(ctx context.Context, userID int64) ([]*debt.Debt, error)
	DeleteFunc func(ctx context.Context, userID int64, id string) error
}

func (m *MockDebtRepo) Create(ctx context.Context, userID int64, params debt.CreateParams) (*debt.Debt, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockDebtRepo) ListByUserID(ctx context.Context, userID int64) ([]*debt.Debt, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockDebtRepo) Delete(ctx context.Context, userID int64, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockDebtRepo) Total(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// MockReminderRepo implements reminder.Repository for testing
type MockReminderRepo struct {
	CreateFunc func(ctx context.Context, userID int64, params reminder.CreateParams) (*reminder.Reminder, error)
	ListFunc   func(ctx context.Context, userID int64) ([]*reminder.Reminder, error)
	DeleteFunc func(ctx context.Context, userID int64, id string) error
}

func (m *MockReminderRepo) Create(ctx context.Context, userID int64, params reminder.CreateParams) (*reminder.Reminder, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockReminderRepo) ListByUserID(ctx context.Context, userID int64) ([]*reminder.Reminder, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockReminderRepo) Delete(ctx context.Context, userID int64, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockReminderRepo) Upcoming(ctx context.Context, userID int64, from time.Time, limit int) ([]*reminder.Reminder, error) {
	return nil, nil
}

func (m *MockReminderRepo) UsersWithDue(ctx context.Context, before time.Time) ([]int64, error) {
	return nil, nil
}

func (m *MockReminderRepo) DueForUser(ctx context.Context, userID int64, before time.Time) ([]*reminder.Reminder, error) {
	return nil, nil
}

func (m *MockReminderRepo) Claim(ctx context.Context, id string, at time.Time) (bool, error) {
	return true, nil
}

func (m *MockReminderRepo) Release(ctx context.Context, id string, at time.Time) error {
	return nil
}

// MockNotificationRepo implements notification.Repository for testing
type MockNotificationRepo struct {
	UpsertDeviceTokenFunc   func(ctx context.Context, params notification.RegisterDeviceParams) (*notification.DeviceToken, error)
	DeactivateUserTokenFunc func(ctx context.Context, userID int64, token string) error
	ListByUserIDFunc        func(ctx context.Context, userID int64, page, perPage int) ([]*notification.Notification, int, error)
	MarkOpenedFunc          func(ctx context.Context, notificationID string, userID int64) error
}

func (m *MockNotificationRepo) UpsertDeviceToken(ctx context.Context, params notification.RegisterDeviceParams) (*notification.DeviceToken, error) {
	if m.UpsertDeviceTokenFunc != nil {
		return m.UpsertDeviceTokenFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockNotificationRepo) GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*notification.DeviceToken, error) {
	return nil, nil
}

func (m *MockNotificationRepo) DeactivateUserToken(ctx context.Context, userID int64, token string) error {
	if m.DeactivateUserTokenFunc != nil {
		return m.DeactivateUserTokenFunc(ctx, userID, token)
	}
	return nil
}

func (m *MockNotificationRepo) DeactivateToken(ctx context.Context, token string) error {
	return nil
}

func (m *MockNotificationRepo) CreateNotification(ctx context.Context, params notification.CreateNotificationParams) (*notification.Notification, error) {
	return &notification.Notification{}, nil
}

func (m *MockNotificationRepo) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*notification.Notification, int, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID, page, perPage)
	}
	return nil, 0, nil
}

func (m *MockNotificationRepo) MarkOpened(ctx context.Context, notificationID string, userID int64) error {
	if m.MarkOpenedFunc != nil {
		return m.MarkOpenedFunc(ctx, notificationID, userID)
	}
	return nil
}
