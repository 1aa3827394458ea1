package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensync/internal/domain/event"
)

const testID = "6f1c1d0e-8a3b-4f4e-9d4a-2b7c0e9a1f10"

func TestService_Create(t *testing.T) {
	pub := &recordingPublisher{}
	var stored CreateParams
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, userID int64, params CreateParams) (*Transaction, error) {
			stored = params
			return &Transaction{ID: testID, UserID: userID, Title: params.Title, Amount: *params.Amount, Category: params.Category, Date: *params.Date}, nil
		},
	}
	svc := NewService(repo, pub)
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	tx, err := svc.Create(context.Background(), 7, CreateParams{Title: " Coffee ", Amount: decPtr("-3.5")})
	require.NoError(t, err)
	assert.Equal(t, testID, tx.ID)
	assert.Equal(t, "Coffee", stored.Title)
	assert.Equal(t, DefaultCategory, stored.Category)
	assert.Equal(t, fixed, *stored.Date)
	assert.NotNil(t, stored.Tags)

	require.Len(t, pub.events, 1)
	assert.Equal(t, event.TransactionCreated, pub.events[0].Type)
	assert.Equal(t, int64(7), pub.events[0].UserID)
	assert.True(t, pub.events[0].Amount.Equal(decimal.RequireFromString("-3.5")))
}

func TestService_Create_ValidationError(t *testing.T) {
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, userID int64, params CreateParams) (*Transaction, error) {
			t.Error("Create should not reach the repository")
			return nil, nil
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), 1, CreateParams{Title: "   ", Amount: decPtr("1")})
	assert.ErrorIs(t, err, ErrTitleAndAmountRequired)
}

func TestService_Create_PublishFailureIsNotFatal(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, userID int64, params CreateParams) (*Transaction, error) {
			return &Transaction{ID: testID, Amount: *params.Amount}, nil
		},
	}

	_, err := NewService(repo, pub).Create(context.Background(), 1, CreateParams{Title: "x", Amount: decPtr("1")})
	assert.NoError(t, err)
}

func TestService_List(t *testing.T) {
	var got ListQuery
	repo := &MockRepository{
		ListFunc: func(ctx context.Context, userID int64, q ListQuery) ([]*Transaction, int64, error) {
			got = q
			return []*Transaction{{ID: "a"}, {ID: "b"}}, 12, nil
		},
	}

	page, err := NewService(repo, nil).List(context.Background(), 1, ListQuery{Page: 0, Limit: 0, Search: " rent "})
	require.NoError(t, err)

	assert.Equal(t, ListQuery{Page: 1, Limit: 10, Search: "rent"}, got)
	assert.Len(t, page.Transactions, 2)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasMore)
}

func TestService_Get(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, userID int64, id string) (*Transaction, error) {
			if userID == 1 {
				return &Transaction{ID: id, UserID: 1}, nil
			}
			return nil, nil
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Get(context.Background(), 1, testID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), 2, testID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	_, err = svc.Get(context.Background(), 1, "not-a-uuid")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestService_Delete(t *testing.T) {
	pub := &recordingPublisher{}
	deleted := false
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, userID int64, id string) (*Transaction, error) {
			return &Transaction{ID: id, UserID: userID, Category: "Food", Amount: decimal.RequireFromString("-10")}, nil
		},
		DeleteFunc: func(ctx context.Context, userID int64, id string) error {
			deleted = true
			return nil
		},
		ListAllFunc: func(ctx context.Context, userID int64) ([]*Transaction, error) {
			return nil, nil
		},
	}

	remaining, err := NewService(repo, pub).Delete(context.Background(), 1, testID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NotNil(t, remaining)
	assert.Empty(t, remaining)
	require.Len(t, pub.events, 1)
	assert.Equal(t, event.TransactionDeleted, pub.events[0].Type)
	assert.Equal(t, "Food", pub.events[0].Category)
}

func TestService_Delete_NotOwned(t *testing.T) {
	repo := &MockRepository{
		DeleteFunc: func(ctx context.Context, userID int64, id string) error {
			t.Error("Delete should not be called for a missing transaction")
			return nil
		},
	}

	_, err := NewService(repo, nil).Delete(context.Background(), 1, testID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestService_SpentThrough(t *testing.T) {
	var gotID string
	repo := &MockRepository{
		SpentThroughFunc: func(ctx context.Context, userID int64, id string, from, to time.Time) (*RunningSpend, error) {
			gotID = id
			return &RunningSpend{
				Category: "Food",
				Amount:   decimal.RequireFromString("-30"),
				Spent:    decimal.RequireFromString("80"),
			}, nil
		},
	}
	svc := NewService(repo, nil)
	from, to := MonthRange(time.Now())

	rs, err := svc.SpentThrough(context.Background(), 1, testID, from, to)
	require.NoError(t, err)
	require.NotNil(t, rs)
	assert.Equal(t, testID, gotID)
	assert.True(t, rs.Before().Equal(decimal.RequireFromString("50")))

	gotID = ""
	rs, err = svc.SpentThrough(context.Background(), 1, "not-a-uuid", from, to)
	require.NoError(t, err)
	assert.Nil(t, rs)
	assert.Empty(t, gotID)
}

func TestRunningSpend_BeforeIgnoresIncome(t *testing.T) {
	rs := RunningSpend{Amount: decimal.NewFromInt(20), Spent: decimal.NewFromInt(80)}
	assert.True(t, rs.Before().Equal(decimal.NewFromInt(80)))
}
