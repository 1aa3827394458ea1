package debt

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Debt, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, userID, params)
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Debt, error) {
	debts, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if debts == nil {
		debts = []*Debt{}
	}
	return debts, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrDebtNotFound
	}
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) Total(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.repo.Total(ctx, userID)
}
