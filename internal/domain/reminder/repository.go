package reminder

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID int64, params CreateParams) (*Reminder, error)
	// ListByUserID orders by due date ascending.
	ListByUserID(ctx context.Context, userID int64) ([]*Reminder, error)
	Delete(ctx context.Context, userID int64, id string) error
	// Upcoming returns at most limit reminders due at or after from.
	Upcoming(ctx context.Context, userID int64, from time.Time, limit int) ([]*Reminder, error)

	// UsersWithDue lists users owning unnotified reminders due before the cutoff.
	UsersWithDue(ctx context.Context, before time.Time) ([]int64, error)
	DueForUser(ctx context.Context, userID int64, before time.Time) ([]*Reminder, error)
	// Claim stamps notified_at if the reminder is still unstamped and reports
	// whether this caller won it. Release undoes a claim stamped at `at`.
	Claim(ctx context.Context, id string, at time.Time) (bool, error)
	Release(ctx context.Context, id string, at time.Time) error
}
