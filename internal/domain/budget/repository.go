package budget

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, userID int64, params CreateParams) (*Budget, error)
	// ListByUserID orders by month desc, then title.
	ListByUserID(ctx context.Context, userID int64) ([]*Budget, error)
	// Delete returns ErrBudgetNotFound when nothing matched.
	Delete(ctx context.Context, userID int64, id string) error
	TotalForMonth(ctx context.Context, userID int64, month string) (decimal.Decimal, error)
}
