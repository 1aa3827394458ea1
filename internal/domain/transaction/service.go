package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"expensync/internal/domain/event"
)

// Service contains the business logic for transaction operations
type Service struct {
	repo      Repository
	publisher event.Publisher
	now       func() time.Time
}

// NewService creates a new transaction service. A nil publisher discards events.
func NewService(repo Repository, publisher event.Publisher) *Service {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher, now: time.Now}
}

// Create normalizes, validates and stores a transaction.
func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Transaction, error) {
	params.Normalize(s.now())
	if err := params.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.TransactionCreated, t)
	return t, nil
}

// List returns one page of the user's transactions.
func (s *Service) List(ctx context.Context, userID int64, q ListQuery) (*Page, error) {
	q.Normalize()

	items, total, err := s.repo.List(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	return NewPage(items, q, total), nil
}

// Get returns ErrTransactionNotFound when the ID is unknown or not owned.
func (s *Service) Get(ctx context.Context, userID int64, id string) (*Transaction, error) {
	if !validID(id) {
		return nil, ErrTransactionNotFound
	}
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTransactionNotFound
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, userID int64, id string, params UpdateParams) (*Transaction, error) {
	if !validID(id) {
		return nil, ErrTransactionNotFound
	}
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, userID, id, params)
}

// Delete removes an owned transaction and returns the user's remaining
// transactions, newest first.
func (s *Service) Delete(ctx context.Context, userID int64, id string) ([]*Transaction, error) {
	t, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return nil, err
	}
	s.publish(ctx, event.TransactionDeleted, t)

	remaining, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if remaining == nil {
		remaining = []*Transaction{}
	}
	return remaining, nil
}

func (s *Service) Summary(ctx context.Context, userID int64) (*Summary, error) {
	return s.repo.Summarize(ctx, userID)
}

// SpentByCategory sums expenses per category in [from, to).
func (s *Service) SpentByCategory(ctx context.Context, userID int64, from, to time.Time) (map[string]decimal.Decimal, error) {
	return s.repo.SpentByCategory(ctx, userID, from, to)
}

// SpentThrough reports the category spending as of one transaction, ignoring
// anything stored after it. It returns nil, nil when the transaction is gone.
func (s *Service) SpentThrough(ctx context.Context, userID int64, id string, from, to time.Time) (*RunningSpend, error) {
	if !validID(id) {
		return nil, nil
	}
	return s.repo.SpentThrough(ctx, userID, id, from, to)
}

// publish logs delivery errors instead of returning them.
func (s *Service) publish(ctx context.Context, t event.Type, tx *Transaction) {
	e := event.New(t, tx.UserID, tx.ID, tx.Category, tx.Amount, tx.Date)
	if err := s.publisher.Publish(ctx, e); err != nil {
		zap.L().Warn("failed to publish transaction event",
			zap.String("type", string(t)),
			zap.String("transaction_id", tx.ID),
			zap.Error(err),
		)
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
