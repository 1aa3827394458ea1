package transaction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for transaction data access.
// Every method is scoped to userID; rows owned by other users are invisible.
type Repository interface {
	Create(ctx context.Context, userID int64, params CreateParams) (*Transaction, error)
	// GetByID returns nil, nil when the transaction does not exist for userID.
	GetByID(ctx context.Context, userID int64, id string) (*Transaction, error)
	// List returns one page ordered by date desc and the total match count.
	List(ctx context.Context, userID int64, q ListQuery) ([]*Transaction, int64, error)
	ListAll(ctx context.Context, userID int64) ([]*Transaction, error)
	// Update and Delete return ErrTransactionNotFound when nothing matched.
	Update(ctx context.Context, userID int64, id string, params UpdateParams) (*Transaction, error)
	Delete(ctx context.Context, userID int64, id string) error
	Summarize(ctx context.Context, userID int64) (*Summary, error)
	// SpentByCategory sums the absolute value of expenses in [from, to) per category.
	SpentByCategory(ctx context.Context, userID int64, from, to time.Time) (map[string]decimal.Decimal, error)
	// SpentThrough sums expenses in the transaction's category in [from, to)
	// that sort at or before it. It returns nil, nil when id is gone.
	SpentThrough(ctx context.Context, userID int64, id string, from, to time.Time) (*RunningSpend, error)
}
