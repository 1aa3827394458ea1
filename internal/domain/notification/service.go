package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service contains the business logic for notification operations
type Service struct {
	repo      Repository
	messenger Messenger
}

// NewService creates a notification service. A nil messenger logs instead of delivering.
func NewService(repo Repository, messenger Messenger) *Service {
	if messenger == nil {
		messenger = LogMessenger{}
	}
	return &Service{repo: repo, messenger: messenger}
}

// RegisterDevice registers a device token for the user. A token already owned
// by another user is reassigned.
func (s *Service) RegisterDevice(ctx context.Context, params RegisterDeviceParams) (*DeviceToken, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpsertDeviceToken(ctx, params)
}

func (s *Service) UnregisterDevice(ctx context.Context, userID int64, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	return s.repo.DeactivateUserToken(ctx, userID, token)
}

// DeactivateToken matches firebase.TokenDeactivator.
func (s *Service) DeactivateToken(ctx context.Context, token string) error {
	return s.repo.DeactivateToken(ctx, token)
}

// ListNotifications returns paginated notifications for a user
func (s *Service) ListNotifications(ctx context.Context, userID int64, page, perPage int) ([]*Notification, int, error) {
	if userID <= 0 {
		return nil, 0, errors.New("valid user ID is required")
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	items, total, err := s.repo.ListByUserID(ctx, userID, page, perPage)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*Notification{}
	}
	return items, total, nil
}

func (s *Service) MarkOpened(ctx context.Context, notificationID string, userID int64) error {
	if _, err := uuid.Parse(notificationID); err != nil {
		return ErrNotificationNotFound
	}
	return s.repo.MarkOpened(ctx, notificationID, userID)
}

// NotifyUser pushes to every active device of the user and stores a record.
// A user without devices still gets the record. Delivery and storage failures
// are logged; only a failed token lookup is returned.
func (s *Service) NotifyUser(ctx context.Context, userID int64, title, body, category string, data map[string]string) error {
	tokens, err := s.repo.GetActiveTokensByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if data == nil {
		data = make(map[string]string)
	}
	if _, ok := data["route"]; !ok && category != "" {
		data["route"] = category
	}

	if len(tokens) > 0 {
		tokenStrings := make([]string, len(tokens))
		for i, t := range tokens {
			tokenStrings[i] = t.Token
		}
		if err := s.messenger.SendMulticast(ctx, tokenStrings, title, body, data); err != nil {
			zap.L().Error("failed to send notification", zap.Int64("user_id", userID), zap.Error(err))
		}
	} else {
		zap.L().Debug("no active device tokens", zap.Int64("user_id", userID))
	}

	_, err = s.repo.CreateNotification(ctx, CreateNotificationParams{
		UserID:   userID,
		Title:    title,
		Body:     body,
		Category: category,
		Data:     data,
	})
	if err != nil {
		zap.L().Error("failed to store notification", zap.Int64("user_id", userID), zap.Error(err))
	}
	return nil
}
