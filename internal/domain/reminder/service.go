package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const upcomingLimit = 5

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Reminder, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, userID, params)
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Reminder, error) {
	reminders, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []*Reminder{}
	}
	return reminders, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrReminderNotFound
	}
	return s.repo.Delete(ctx, userID, id)
}

// Upcoming returns the next few reminders from the start of today.
func (s *Service) Upcoming(ctx context.Context, userID int64) ([]*Reminder, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	reminders, err := s.repo.Upcoming(ctx, userID, today, upcomingLimit)
	if err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []*Reminder{}
	}
	return reminders, nil
}
