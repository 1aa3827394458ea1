package budget

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRepository implements Repository for testing
type MockRepository struct {
	CreateFunc        func(ctx context.Context, userID int64, params CreateParams) (*Budget, error)
	ListByUserIDFunc  func(ctx context.Context, userID int64) ([]*Budget, error)
	DeleteFunc        func(ctx context.Context, userID int64, id string) error
	TotalForMonthFunc func(ctx context.Context, userID int64, month string) (decimal.Decimal, error)
}

func (m *MockRepository) Create(ctx context.Context, userID int64, params CreateParams) (*Budget, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockRepository) ListByUserID(ctx context.Context, userID int64) ([]*Budget, error) {
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

func (m *MockRepository) TotalForMonth(ctx context.Context, userID int64, month string) (decimal.Decimal, error) {
	if m.TotalForMonthFunc != nil {
		return m.TotalForMonthFunc(ctx, userID, month)
	}
	return decimal.Zero, nil
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateParams
		wantErr bool
	}{
		{name: "valid", params: CreateParams{Title: "Groceries", Amount: amount("400"), Month: "2026-02"}},
		{name: "missing title", params: CreateParams{Amount: amount("400"), Month: "2026-02"}, wantErr: true},
		{name: "missing amount", params: CreateParams{Title: "Rent", Month: "2026-02"}, wantErr: true},
		{name: "zero amount", params: CreateParams{Title: "Rent", Amount: amount("0"), Month: "2026-02"}, wantErr: true},
		{name: "amount overflows", params: CreateParams{Title: "Rent", Amount: amount("1000000000000"), Month: "2026-02"}, wantErr: true},
		{name: "sub-cent amount", params: CreateParams{Title: "Rent", Amount: amount("10.001"), Month: "2026-02"}, wantErr: true},
		{name: "bad month", params: CreateParams{Title: "Rent", Amount: amount("1"), Month: "02/2026"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_Create_Defaults(t *testing.T) {
	var got CreateParams
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, userID int64, params CreateParams) (*Budget, error) {
			got = params
			return &Budget{ID: "b1", Title: params.Title}, nil
		},
	}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC) }

	_, err := svc.Create(context.Background(), 1, CreateParams{Title: " Fun ", Amount: amount("50")})
	require.NoError(t, err)

	assert.Equal(t, "Fun", got.Title)
	assert.Equal(t, "Others", got.Category)
	assert.Equal(t, "2026-07", got.Month)
}

func TestService_List_NeverNil(t *testing.T) {
	budgets, err := NewService(&MockRepository{}).List(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, budgets)
}

func TestService_Delete_InvalidID(t *testing.T) {
	repo := &MockRepository{
		DeleteFunc: func(ctx context.Context, userID int64, id string) error {
			t.Error("repository should not be called")
			return nil
		},
	}
	assert.ErrorIs(t, NewService(repo).Delete(context.Background(), 1, "nope"), ErrBudgetNotFound)
}
