package notification

import "context"

// Repository defines the interface for notification data access.
type Repository interface {
	// UpsertDeviceToken inserts the token or reassigns it to params.UserID and reactivates it.
	UpsertDeviceToken(ctx context.Context, params RegisterDeviceParams) (*DeviceToken, error)
	GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*DeviceToken, error)
	// DeactivateUserToken returns ErrDeviceTokenNotFound when the user does not own token.
	DeactivateUserToken(ctx context.Context, userID int64, token string) error
	// DeactivateToken is used when the push provider rejects a token.
	DeactivateToken(ctx context.Context, token string) error

	CreateNotification(ctx context.Context, params CreateNotificationParams) (*Notification, error)
	ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*Notification, int, error)
	MarkOpened(ctx context.Context, notificationID string, userID int64) error
}
