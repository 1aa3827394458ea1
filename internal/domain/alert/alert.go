package alert

import (
	"context"
	"fmt"
	"time"

	"expensync/internal/domain/categorygoal"
	"expensync/internal/domain/event"
	"expensync/internal/domain/notification"
	"expensync/internal/domain/transaction"
	"expensync/internal/shared/messages"

	"go.uber.org/zap"
)

type GoalSource interface {
	Get(ctx context.Context, userID int64, category string) (*categorygoal.Goal, error)
}

type SpendingSource interface {
	SpentThrough(ctx context.Context, userID int64, id string, from, to time.Time) (*transaction.RunningSpend, error)
}

type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, title, body, category string, data map[string]string) error
}

// Service turns transaction events into goal alerts.
type Service struct {
	goals    GoalSource
	spending SpendingSource
	notifier Notifier
	text     messages.MessageText
}

func NewService(goals GoalSource, spending SpendingSource, notifier Notifier, msgs *messages.Messages) *Service {
	if msgs == nil {
		msgs = messages.Default()
	}
	return &Service{goals: goals, spending: spending, notifier: notifier, text: msgs.GoalExceeded}
}

// Handle routes an event to its handler. Unknown types are ignored.
func (s *Service) Handle(ctx context.Context, e event.Event) error {
	switch e.Type {
	case event.TransactionCreated:
		_, err := s.HandleTransactionCreated(ctx, e)
		return err
	default:
		zap.L().Debug("event ignored", zap.String("type", string(e.Type)))
		return nil
	}
}

// HandleTransactionCreated notifies the user when this expense pushes the
// month's spending in its category past the goal. It reports whether a
// notification was sent.
func (s *Service) HandleTransactionCreated(ctx context.Context, e event.Event) (bool, error) {
	if !e.Amount.IsNegative() {
		return false, nil
	}

	goal, err := s.goals.Get(ctx, e.UserID, e.Category)
	if err != nil {
		return false, fmt.Errorf("failed to load category goal: %w", err)
	}
	if goal == nil {
		return false, nil
	}

	from, to := transaction.MonthRange(e.Date)
	rs, err := s.spending.SpentThrough(ctx, e.UserID, e.TransactionID, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to compute spending: %w", err)
	}
	// Deleted or recategorized since the event was published.
	if rs == nil || rs.Category != e.Category || !rs.Amount.IsNegative() {
		return false, nil
	}
	spentBefore, spentAfter := rs.Before(), rs.Spent

	if !(spentBefore.LessThanOrEqual(goal.Goal) && spentAfter.GreaterThan(goal.Goal)) {
		return false, nil
	}

	title, body := s.text.Render(map[string]string{
		"category": e.Category,
		"spent":    spentAfter.StringFixed(2),
		"goal":     goal.Goal.StringFixed(2),
	})
	data := map[string]string{"category": e.Category, "transactionId": e.TransactionID}
	if err := s.notifier.NotifyUser(ctx, e.UserID, title, body, notification.CategoryGoals, data); err != nil {
		return false, fmt.Errorf("failed to send goal alert: %w", err)
	}

	zap.L().Info("goal exceeded alert sent",
		zap.Int64("user_id", e.UserID),
		zap.String("category", e.Category),
	)
	return true, nil
}
