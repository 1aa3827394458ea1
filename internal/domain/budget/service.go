package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Budget, error) {
	params.Normalize(s.now())
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, userID, params)
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Budget, error) {
	budgets, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if budgets == nil {
		budgets = []*Budget{}
	}
	return budgets, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrBudgetNotFound
	}
	return s.repo.Delete(ctx, userID, id)
}

// TotalForMonth sums every budget the user set for month (YYYY-MM).
func (s *Service) TotalForMonth(ctx context.Context, userID int64, month string) (decimal.Decimal, error) {
	return s.repo.TotalForMonth(ctx, userID, month)
}
