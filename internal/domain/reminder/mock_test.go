package reminder

import (
	"context"
	"time"
)

// MockRepository implements Repository for testing
type MockRepository struct {
	CreateFunc       func(ctx context.Context, userID int64, params CreateParams) (*Reminder, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*Reminder, error)
	DeleteFunc       func(ctx context.Context, userID int64, id string) error
	UpcomingFunc     func(ctx context.Context, userID int64, from time.Time, limit int) ([]*Reminder, error)
	UsersWithDueFunc func(ctx context.Context, before time.Time) ([]int64, error)
	DueForUserFunc   func(ctx context.Context, userID int64, before time.Time) ([]*Reminder, error)
	ClaimFunc        func(ctx context.Context, id string, at time.Time) (bool, error)
	ReleaseFunc      func(ctx context.Context, id string, at time.Time) error
}

func (m *MockRepository) Create(ctx context.Context, userID int64, params CreateParams) (*Reminder, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockRepository) ListByUserID(ctx context.Context, userID int64) ([]*Reminder, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) Delete(ctx context.Context, userID int64, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockRepository) Upcoming(ctx context.Context, userID int64, from time.Time, limit int) ([]*Reminder, error) {
	if m.UpcomingFunc != nil {
		return m.UpcomingFunc(ctx, userID, from, limit)
	}
	return nil, nil
}

func (m *MockRepository) UsersWithDue(ctx context.Context, before time.Time) ([]int64, error) {
	if m.UsersWithDueFunc != nil {
		return m.UsersWithDueFunc(ctx, before)
	}
	return nil, nil
}

func (m *MockRepository) DueForUser(ctx context.Context, userID int64, before time.Time) ([]*Reminder, error) {
	if m.DueForUserFunc != nil {
		return m.DueForUserFunc(ctx, userID, before)
	}
	return nil, nil
}

func (m *MockRepository) Claim(ctx context.Context, id string, at time.Time) (bool, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(ctx, id, at)
	}
	return true, nil
}

func (m *MockRepository) Release(ctx context.Context, id string, at time.Time) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, id, at)
	}
	return nil
}
