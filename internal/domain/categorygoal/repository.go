package categorygoal

import "context"

type Repository interface {
	// Upsert writes all goals atomically.
	Upsert(ctx context.Context, userID int64, goals []Goal) error
	// ListByUserID orders by category.
	ListByUserID(ctx context.Context, userID int64) ([]Goal, error)
	// Get returns nil, nil when the user has no goal for category.
	Get(ctx context.Context, userID int64, category string) (*Goal, error)
}
