package reminder

import (
	"context"
	"fmt"
	"time"

	"expensync/internal/shared/messages"

	"go.uber.org/zap"
)

// Notifier pushes a message to every device of a user.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, title, body, category string, data map[string]string) error
}

// DispatchService sends due-reminder notifications. Each reminder is
// notified at most once.
type DispatchService struct {
	repo     Repository
	notifier Notifier
	text     messages.MessageText
	leadTime time.Duration
	now      func() time.Time
}

func NewDispatchService(repo Repository, notifier Notifier, msgs *messages.Messages, leadTime time.Duration) *DispatchService {
	if msgs == nil {
		msgs = messages.Default()
	}
	return &DispatchService{
		repo:     repo,
		notifier: notifier,
		text:     msgs.ReminderDue,
		leadTime: leadTime,
		now:      time.Now,
	}
}

func (d *DispatchService) cutoff() time.Time {
	return d.now().Add(d.leadTime)
}

// UsersWithDueReminders lists users to dispatch for in this run.
func (d *DispatchService) UsersWithDueReminders(ctx context.Context) ([]int64, error) {
	return d.repo.UsersWithDue(ctx, d.cutoff())
}

// NotifyUser claims each due reminder and then sends its notification, so a
// concurrent run cannot push the same reminder twice. A failed send releases
// the claim for the next run. It stops at the first failure.
func (d *DispatchService) NotifyUser(ctx context.Context, userID int64) (int, error) {
	due, err := d.repo.DueForUser(ctx, userID, d.cutoff())
	if err != nil {
		return 0, fmt.Errorf("failed to load due reminders: %w", err)
	}

	sent := 0
	for _, r := range due {
		// Postgres keeps microseconds; Release matches on the stored value.
		at := d.now().UTC().Truncate(time.Microsecond)
		claimed, err := d.repo.Claim(ctx, r.ID, at)
		if err != nil {
			return sent, fmt.Errorf("failed to claim reminder %s: %w", r.ID, err)
		}
		if !claimed {
			continue
		}

		vars := map[string]string{
			"title": r.Title,
			"date":  r.DueDate.Format(time.DateOnly),
		}
		if r.Amount != nil {
			vars["amount"] = r.Amount.StringFixed(2)
		}
		title, body := d.text.Render(vars)

		data := map[string]string{"reminderId": r.ID}
		if err := d.notifier.NotifyUser(ctx, userID, title, body, "reminders", data); err != nil {
			if rerr := d.repo.Release(ctx, r.ID, at); rerr != nil {
				zap.L().Error("failed to release reminder claim", zap.String("reminder_id", r.ID), zap.Error(rerr))
			}
			return sent, fmt.Errorf("failed to notify reminder %s: %w", r.ID, err)
		}
		sent++
	}

	if sent > 0 {
		zap.L().Info("reminders dispatched", zap.Int64("user_id", userID), zap.Int("count", sent))
	}
	return sent, nil
}
