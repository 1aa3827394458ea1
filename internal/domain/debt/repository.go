package debt

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, userID int64, params CreateParams) (*Debt, error)
	// ListByUserID orders by due date (undated last), then newest first.
	ListByUserID(ctx context.Context, userID int64) ([]*Debt, error)
	Delete(ctx context.Context, userID int64, id string) error
	Total(ctx context.Context, userID int64) (decimal.Decimal, error)
}
