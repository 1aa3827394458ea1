package transaction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"expensync/internal/domain/event"
)

// MockRepository implements Repository for testing
type MockRepository struct {
	CreateFunc          func(ctx context.Context, userID int64, params CreateParams) (*Transaction, error)
	GetByIDFunc         func(ctx context.Context, userID int64, id string) (*Transaction, error)
	ListFunc            func(ctx context.Context, userID int64, q ListQuery) ([]*Transaction, int64, error)
	ListAllFunc         func(ctx context.Context, userID int64) ([]*Transaction, error)
	UpdateFunc          func(ctx context.Context, userID int64, id string, params UpdateParams) (*Transaction, error)
	DeleteFunc          func(ctx context.Context, userID int64, id string) error
	SummarizeFunc       func(ctx context.Context, userID int64) (*Summary, error)
	SpentByCategoryFunc func(ctx context.Context, userID int64, from, to time.Time) (map[string]decimal.Decimal, error)
	SpentThroughFunc    func(ctx context.Context, userID int64, id string, from, to time.Time) (*RunningSpend, error)
}

func (m *MockRepository) Create(ctx context.Context, userID int64, params CreateParams) (*Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockRepository) GetByID(ctx context.Context, userID int64, id string) (*Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context, userID int64, q ListQuery) ([]*Transaction, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, q)
	}
	return nil, 0, nil
}

func (m *MockRepository) ListAll(ctx context.Context, userID int64) ([]*Transaction, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, userID int64, id string, params UpdateParams) (*Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockRepository) Delete(ctx context.Context, userID int64, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockRepository) Summarize(ctx context.Context, userID int64) (*Summary, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, userID)
	}
	return &Summary{}, nil
}

func (m *MockRepository) SpentByCategory(ctx context.Context, userID int64, from, to time.Time) (map[string]decimal.Decimal, error) {
	if m.SpentByCategoryFunc != nil {
		return m.SpentByCategoryFunc(ctx, userID, from, to)
	}
	return map[string]decimal.Decimal{}, nil
}

func (m *MockRepository) SpentThrough(ctx context.Context, userID int64, id string, from, to time.Time) (*RunningSpend, error) {
	if m.SpentThroughFunc != nil {
		return m.SpentThroughFunc(ctx, userID, id, from, to)
	}
	return nil, nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	events []event.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, e event.Event) error {
	p.events = append(p.events, e)
	return p.err
}
