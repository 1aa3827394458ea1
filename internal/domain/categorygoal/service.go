package categorygoal

import (
	"context"
	"encoding/json"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Set validates every entry before writing any of them.
func (s *Service) Set(ctx context.Context, userID int64, raw json.RawMessage) error {
	goals, err := ParseGoals(raw)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		return nil
	}
	if err := s.repo.Upsert(ctx, userID, Dedupe(goals)); err != nil {
		return fmt.Errorf("failed to save category goals: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]Goal, error) {
	goals, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []Goal{}
	}
	return goals, nil
}

func (s *Service) Get(ctx context.Context, userID int64, category string) (*Goal, error) {
	return s.repo.Get(ctx, userID, category)
}
